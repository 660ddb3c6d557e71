/*
Copyright 2025 The gofixbuf Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ipfix

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/netip"
)

// MacAddress implements the macAddress abstract data type.
type MacAddress struct {
	value net.HardwareAddr
}

func NewMacAddress() DataType {
	return &MacAddress{}
}

func (t *MacAddress) String() string {
	return t.value.String()
}

func (*MacAddress) Type() string {
	return "macAddress"
}

func (t *MacAddress) Value() interface{} {
	return t.value
}

func (t *MacAddress) SetValue(v any) DataType {
	switch ty := v.(type) {
	case net.HardwareAddr:
		t.value = ty
	case string:
		hw, err := net.ParseMAC(ty)
		if err != nil {
			panic(fmt.Errorf("cannot parse %q as MAC address: %w", ty, err))
		}
		t.value = hw
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (*MacAddress) Length() uint16 {
	return 6
}

func (*MacAddress) DefaultLength() uint16 {
	return 6
}

func (t *MacAddress) SetLength(uint16) DataType {
	return t
}

func (*MacAddress) IsReducedLength() bool {
	return false
}

func (t *MacAddress) Clone() DataType {
	v := make(net.HardwareAddr, len(t.value))
	copy(v, t.value)
	return &MacAddress{value: v}
}

func (t *MacAddress) Decode(b []byte) error {
	if len(b) != 6 {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = make(net.HardwareAddr, 6)
	copy(t.value, b)
	return nil
}

func (t *MacAddress) Encode(w io.Writer) (int, error) {
	b := make([]byte, 6)
	copy(b, t.value)
	return w.Write(b)
}

func (t *MacAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value.String())
}

// IPv4Address implements the ipv4Address abstract data type.
type IPv4Address struct {
	value netip.Addr
}

func NewIPv4Address() DataType {
	return &IPv4Address{}
}

func (t *IPv4Address) String() string {
	return t.value.String()
}

func (*IPv4Address) Type() string {
	return "ipv4Address"
}

func (t *IPv4Address) Value() interface{} {
	return t.value
}

func (t *IPv4Address) SetValue(v any) DataType {
	switch ty := v.(type) {
	case netip.Addr:
		t.value = ty
	case net.IP:
		a, ok := netip.AddrFromSlice(ty.To4())
		if !ok {
			panic(fmt.Errorf("%v is not an IPv4 address", ty))
		}
		t.value = a
	case string:
		a, err := netip.ParseAddr(ty)
		if err != nil {
			panic(fmt.Errorf("cannot parse %q as IPv4 address: %w", ty, err))
		}
		t.value = a
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (*IPv4Address) Length() uint16 {
	return 4
}

func (*IPv4Address) DefaultLength() uint16 {
	return 4
}

func (t *IPv4Address) SetLength(uint16) DataType {
	return t
}

func (*IPv4Address) IsReducedLength() bool {
	return false
}

func (t *IPv4Address) Clone() DataType {
	return &IPv4Address{value: t.value}
}

func (t *IPv4Address) Decode(b []byte) error {
	if len(b) != 4 {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = netip.AddrFrom4([4]byte(b))
	return nil
}

func (t *IPv4Address) Encode(w io.Writer) (int, error) {
	b := t.value.As4()
	return w.Write(b[:])
}

func (t *IPv4Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value.String())
}

// IPv6Address implements the ipv6Address abstract data type.
type IPv6Address struct {
	value netip.Addr
}

func NewIPv6Address() DataType {
	return &IPv6Address{}
}

func (t *IPv6Address) String() string {
	return t.value.String()
}

func (*IPv6Address) Type() string {
	return "ipv6Address"
}

func (t *IPv6Address) Value() interface{} {
	return t.value
}

func (t *IPv6Address) SetValue(v any) DataType {
	switch ty := v.(type) {
	case netip.Addr:
		t.value = ty
	case net.IP:
		a, ok := netip.AddrFromSlice(ty.To16())
		if !ok {
			panic(fmt.Errorf("%v is not an IPv6 address", ty))
		}
		t.value = a
	case string:
		a, err := netip.ParseAddr(ty)
		if err != nil {
			panic(fmt.Errorf("cannot parse %q as IPv6 address: %w", ty, err))
		}
		t.value = a
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (*IPv6Address) Length() uint16 {
	return 16
}

func (*IPv6Address) DefaultLength() uint16 {
	return 16
}

func (t *IPv6Address) SetLength(uint16) DataType {
	return t
}

func (*IPv6Address) IsReducedLength() bool {
	return false
}

func (t *IPv6Address) Clone() DataType {
	return &IPv6Address{value: t.value}
}

func (t *IPv6Address) Decode(b []byte) error {
	if len(b) != 16 {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = netip.AddrFrom16([16]byte(b))
	return nil
}

func (t *IPv6Address) Encode(w io.Writer) (int, error) {
	b := t.value.As16()
	return w.Write(b[:])
}

func (t *IPv6Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value.String())
}

var _ DataTypeConstructor = NewMacAddress
var _ DataTypeConstructor = NewIPv4Address
var _ DataTypeConstructor = NewIPv6Address
var _ DataType = &MacAddress{}
var _ DataType = &IPv4Address{}
var _ DataType = &IPv6Address{}
