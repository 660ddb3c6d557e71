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
)

// Signed8 implements the signed8 abstract data type.
type Signed8 struct {
	value int8
}

func NewSigned8() DataType {
	return &Signed8{}
}

func (t *Signed8) String() string {
	return fmt.Sprintf("%d", t.value)
}

func (*Signed8) Type() string {
	return "signed8"
}

func (t *Signed8) Value() interface{} {
	return t.value
}

func (t *Signed8) SetValue(v any) DataType {
	switch ty := v.(type) {
	case int8:
		t.value = ty
	case int:
		t.value = int8(ty)
	case float64:
		t.value = int8(ty)
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (*Signed8) Length() uint16 {
	return 1
}

func (*Signed8) DefaultLength() uint16 {
	return 1
}

func (t *Signed8) SetLength(uint16) DataType {
	return t
}

func (*Signed8) IsReducedLength() bool {
	return false
}

func (t *Signed8) Clone() DataType {
	return &Signed8{value: t.value}
}

func (t *Signed8) Decode(b []byte) error {
	if len(b) != 1 {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = int8(b[0])
	return nil
}

func (t *Signed8) Encode(w io.Writer) (int, error) {
	return w.Write([]byte{uint8(t.value)})
}

func (t *Signed8) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

// Signed16 implements the signed16 abstract data type, with sign-extending
// reduced-length encoding.
type Signed16 struct {
	value int16

	length uint16
}

func NewSigned16() DataType {
	return &Signed16{}
}

func (t *Signed16) String() string {
	return fmt.Sprintf("%d", t.value)
}

func (*Signed16) Type() string {
	return "signed16"
}

func (t *Signed16) Value() interface{} {
	return t.value
}

func (t *Signed16) SetValue(v any) DataType {
	switch ty := v.(type) {
	case int16:
		t.value = ty
	case int:
		t.value = int16(ty)
	case float64:
		t.value = int16(ty)
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (t *Signed16) Length() uint16 {
	if t.length > 0 {
		return t.length
	}
	return t.DefaultLength()
}

func (*Signed16) DefaultLength() uint16 {
	return 2
}

func (t *Signed16) SetLength(length uint16) DataType {
	if length > 0 && length < t.DefaultLength() {
		t.length = length
	} else {
		t.length = t.DefaultLength()
	}
	return t
}

func (t *Signed16) IsReducedLength() bool {
	return t.length > 0 && t.length < t.DefaultLength()
}

func (t *Signed16) Clone() DataType {
	return &Signed16{value: t.value, length: t.length}
}

func (t *Signed16) Decode(b []byte) error {
	if len(b) != int(t.Length()) {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = int16(decodeSigned(b))
	return nil
}

func (t *Signed16) Encode(w io.Writer) (int, error) {
	return w.Write(encodeUnsigned(uint64(t.value), int(t.Length())))
}

func (t *Signed16) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

// Signed32 implements the signed32 abstract data type, with sign-extending
// reduced-length encoding.
type Signed32 struct {
	value int32

	length uint16
}

func NewSigned32() DataType {
	return &Signed32{}
}

func (t *Signed32) String() string {
	return fmt.Sprintf("%d", t.value)
}

func (*Signed32) Type() string {
	return "signed32"
}

func (t *Signed32) Value() interface{} {
	return t.value
}

func (t *Signed32) SetValue(v any) DataType {
	switch ty := v.(type) {
	case int32:
		t.value = ty
	case int:
		t.value = int32(ty)
	case float64:
		t.value = int32(ty)
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (t *Signed32) Length() uint16 {
	if t.length > 0 {
		return t.length
	}
	return t.DefaultLength()
}

func (*Signed32) DefaultLength() uint16 {
	return 4
}

func (t *Signed32) SetLength(length uint16) DataType {
	if length > 0 && length < t.DefaultLength() {
		t.length = length
	} else {
		t.length = t.DefaultLength()
	}
	return t
}

func (t *Signed32) IsReducedLength() bool {
	return t.length > 0 && t.length < t.DefaultLength()
}

func (t *Signed32) Clone() DataType {
	return &Signed32{value: t.value, length: t.length}
}

func (t *Signed32) Decode(b []byte) error {
	if len(b) != int(t.Length()) {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = int32(decodeSigned(b))
	return nil
}

func (t *Signed32) Encode(w io.Writer) (int, error) {
	return w.Write(encodeUnsigned(uint64(t.value), int(t.Length())))
}

func (t *Signed32) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

// Signed64 implements the signed64 abstract data type, with sign-extending
// reduced-length encoding.
type Signed64 struct {
	value int64

	length uint16
}

func NewSigned64() DataType {
	return &Signed64{}
}

func (t *Signed64) String() string {
	return fmt.Sprintf("%d", t.value)
}

func (*Signed64) Type() string {
	return "signed64"
}

func (t *Signed64) Value() interface{} {
	return t.value
}

func (t *Signed64) SetValue(v any) DataType {
	switch ty := v.(type) {
	case int64:
		t.value = ty
	case int:
		t.value = int64(ty)
	case float64:
		t.value = int64(ty)
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (t *Signed64) Length() uint16 {
	if t.length > 0 {
		return t.length
	}
	return t.DefaultLength()
}

func (*Signed64) DefaultLength() uint16 {
	return 8
}

func (t *Signed64) SetLength(length uint16) DataType {
	if length > 0 && length < t.DefaultLength() {
		t.length = length
	} else {
		t.length = t.DefaultLength()
	}
	return t
}

func (t *Signed64) IsReducedLength() bool {
	return t.length > 0 && t.length < t.DefaultLength()
}

func (t *Signed64) Clone() DataType {
	return &Signed64{value: t.value, length: t.length}
}

func (t *Signed64) Decode(b []byte) error {
	if len(b) != int(t.Length()) {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = decodeSigned(b)
	return nil
}

func (t *Signed64) Encode(w io.Writer) (int, error) {
	return w.Write(encodeUnsigned(uint64(t.value), int(t.Length())))
}

func (t *Signed64) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

// decodeSigned sign-extends a big-endian reduced-length integer of up to
// 8 octets (RFC 7011, Section 6.2).
func decodeSigned(b []byte) int64 {
	v := int64(decodeUnsigned(b))
	shift := 64 - 8*len(b)
	return v << shift >> shift
}

var _ DataTypeConstructor = NewSigned8
var _ DataTypeConstructor = NewSigned16
var _ DataTypeConstructor = NewSigned32
var _ DataTypeConstructor = NewSigned64
var _ DataType = &Signed8{}
var _ DataType = &Signed16{}
var _ DataType = &Signed32{}
var _ DataType = &Signed64{}
