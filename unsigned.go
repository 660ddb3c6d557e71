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
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// Unsigned8 implements the unsigned8 abstract data type.
type Unsigned8 struct {
	value uint8
}

func NewUnsigned8() DataType {
	return &Unsigned8{}
}

func (t *Unsigned8) String() string {
	return fmt.Sprintf("%d", t.value)
}

func (*Unsigned8) Type() string {
	return "unsigned8"
}

func (t *Unsigned8) Value() interface{} {
	return t.value
}

func (t *Unsigned8) SetValue(v any) DataType {
	switch ty := v.(type) {
	case uint8:
		t.value = ty
	case int:
		t.value = uint8(ty)
	case float64:
		t.value = uint8(ty)
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (*Unsigned8) Length() uint16 {
	return 1
}

func (*Unsigned8) DefaultLength() uint16 {
	return 1
}

func (t *Unsigned8) SetLength(uint16) DataType {
	// single-octet types have no reduced-length form
	return t
}

func (*Unsigned8) IsReducedLength() bool {
	return false
}

func (t *Unsigned8) Clone() DataType {
	return &Unsigned8{value: t.value}
}

func (t *Unsigned8) Decode(b []byte) error {
	if len(b) != 1 {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = b[0]
	return nil
}

func (t *Unsigned8) Encode(w io.Writer) (int, error) {
	return w.Write([]byte{t.value})
}

func (t *Unsigned8) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

// Unsigned16 implements the unsigned16 abstract data type, including
// reduced-length encoding to 1 octet.
type Unsigned16 struct {
	value uint16

	length uint16
}

func NewUnsigned16() DataType {
	return &Unsigned16{}
}

func (t *Unsigned16) String() string {
	return fmt.Sprintf("%d", t.value)
}

func (*Unsigned16) Type() string {
	return "unsigned16"
}

func (t *Unsigned16) Value() interface{} {
	return t.value
}

func (t *Unsigned16) SetValue(v any) DataType {
	switch ty := v.(type) {
	case uint16:
		t.value = ty
	case int:
		t.value = uint16(ty)
	case float64:
		t.value = uint16(ty)
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (t *Unsigned16) Length() uint16 {
	if t.length > 0 {
		return t.length
	}
	return t.DefaultLength()
}

func (*Unsigned16) DefaultLength() uint16 {
	return 2
}

func (t *Unsigned16) SetLength(length uint16) DataType {
	if length > 0 && length < t.DefaultLength() {
		t.length = length
	} else {
		t.length = t.DefaultLength()
	}
	return t
}

func (t *Unsigned16) IsReducedLength() bool {
	return t.length > 0 && t.length < t.DefaultLength()
}

func (t *Unsigned16) Clone() DataType {
	return &Unsigned16{value: t.value, length: t.length}
}

func (t *Unsigned16) Decode(b []byte) error {
	if len(b) != int(t.Length()) {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = uint16(decodeUnsigned(b))
	return nil
}

func (t *Unsigned16) Encode(w io.Writer) (int, error) {
	return w.Write(encodeUnsigned(uint64(t.value), int(t.Length())))
}

func (t *Unsigned16) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

// Unsigned32 implements the unsigned32 abstract data type, including
// reduced-length encoding down to 1 octet.
type Unsigned32 struct {
	value uint32

	length uint16
}

func NewUnsigned32() DataType {
	return &Unsigned32{}
}

func (t *Unsigned32) String() string {
	return fmt.Sprintf("%d", t.value)
}

func (*Unsigned32) Type() string {
	return "unsigned32"
}

func (t *Unsigned32) Value() interface{} {
	return t.value
}

func (t *Unsigned32) SetValue(v any) DataType {
	switch ty := v.(type) {
	case uint32:
		t.value = ty
	case int:
		t.value = uint32(ty)
	case float64:
		t.value = uint32(ty)
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (t *Unsigned32) Length() uint16 {
	if t.length > 0 {
		return t.length
	}
	return t.DefaultLength()
}

func (*Unsigned32) DefaultLength() uint16 {
	return 4
}

func (t *Unsigned32) SetLength(length uint16) DataType {
	if length > 0 && length < t.DefaultLength() {
		t.length = length
	} else {
		t.length = t.DefaultLength()
	}
	return t
}

func (t *Unsigned32) IsReducedLength() bool {
	return t.length > 0 && t.length < t.DefaultLength()
}

func (t *Unsigned32) Clone() DataType {
	return &Unsigned32{value: t.value, length: t.length}
}

func (t *Unsigned32) Decode(b []byte) error {
	if len(b) != int(t.Length()) {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = uint32(decodeUnsigned(b))
	return nil
}

func (t *Unsigned32) Encode(w io.Writer) (int, error) {
	return w.Write(encodeUnsigned(uint64(t.value), int(t.Length())))
}

func (t *Unsigned32) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

// Unsigned64 implements the unsigned64 abstract data type, including
// reduced-length encoding down to 1 octet.
type Unsigned64 struct {
	value uint64

	length uint16
}

func NewUnsigned64() DataType {
	return &Unsigned64{}
}

func (t *Unsigned64) String() string {
	return fmt.Sprintf("%d", t.value)
}

func (*Unsigned64) Type() string {
	return "unsigned64"
}

func (t *Unsigned64) Value() interface{} {
	return t.value
}

func (t *Unsigned64) SetValue(v any) DataType {
	switch ty := v.(type) {
	case uint64:
		t.value = ty
	case int:
		t.value = uint64(ty)
	case float64:
		t.value = uint64(ty)
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (t *Unsigned64) Length() uint16 {
	if t.length > 0 {
		return t.length
	}
	return t.DefaultLength()
}

func (*Unsigned64) DefaultLength() uint16 {
	return 8
}

func (t *Unsigned64) SetLength(length uint16) DataType {
	if length > 0 && length < t.DefaultLength() {
		t.length = length
	} else {
		t.length = t.DefaultLength()
	}
	return t
}

func (t *Unsigned64) IsReducedLength() bool {
	return t.length > 0 && t.length < t.DefaultLength()
}

func (t *Unsigned64) Clone() DataType {
	return &Unsigned64{value: t.value, length: t.length}
}

func (t *Unsigned64) Decode(b []byte) error {
	if len(b) != int(t.Length()) {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = decodeUnsigned(b)
	return nil
}

func (t *Unsigned64) Encode(w io.Writer) (int, error) {
	return w.Write(encodeUnsigned(t.value, int(t.Length())))
}

func (t *Unsigned64) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

// decodeUnsigned zero-extends a big-endian reduced-length integer of up to
// 8 octets (RFC 7011, Section 6.2).
func decodeUnsigned(b []byte) uint64 {
	var buf [8]byte
	copy(buf[8-len(b):], b)
	return binary.BigEndian.Uint64(buf[:])
}

// encodeUnsigned emits the length low-order octets of v in big-endian order.
func encodeUnsigned(v uint64, length int) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return buf[8-length:]
}

var _ DataTypeConstructor = NewUnsigned8
var _ DataTypeConstructor = NewUnsigned16
var _ DataTypeConstructor = NewUnsigned32
var _ DataTypeConstructor = NewUnsigned64
var _ DataType = &Unsigned8{}
var _ DataType = &Unsigned16{}
var _ DataType = &Unsigned32{}
var _ DataType = &Unsigned64{}
