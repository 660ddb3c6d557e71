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
	"math"
)

// Float32 implements the float32 abstract data type (IEEE 754 single
// precision, RFC 7011, Section 6.1.5).
type Float32 struct {
	value float32
}

func NewFloat32() DataType {
	return &Float32{}
}

func (t *Float32) String() string {
	return fmt.Sprintf("%v", t.value)
}

func (*Float32) Type() string {
	return "float32"
}

func (t *Float32) Value() interface{} {
	return t.value
}

func (t *Float32) SetValue(v any) DataType {
	switch ty := v.(type) {
	case float32:
		t.value = ty
	case float64:
		t.value = float32(ty)
	case int:
		t.value = float32(ty)
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (*Float32) Length() uint16 {
	return 4
}

func (*Float32) DefaultLength() uint16 {
	return 4
}

func (t *Float32) SetLength(uint16) DataType {
	return t
}

func (*Float32) IsReducedLength() bool {
	return false
}

func (t *Float32) Clone() DataType {
	return &Float32{value: t.value}
}

func (t *Float32) Decode(b []byte) error {
	if len(b) != 4 {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = math.Float32frombits(binary.BigEndian.Uint32(b))
	return nil
}

func (t *Float32) Encode(w io.Writer) (int, error) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], math.Float32bits(t.value))
	return w.Write(b[:])
}

func (t *Float32) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

// Float64 implements the float64 abstract data type. The only legal reduced
// length is 4 octets, in which case the value is carried as IEEE 754 single
// precision (RFC 7011, Section 6.2).
type Float64 struct {
	value float64

	length uint16
}

func NewFloat64() DataType {
	return &Float64{}
}

func (t *Float64) String() string {
	return fmt.Sprintf("%v", t.value)
}

func (*Float64) Type() string {
	return "float64"
}

func (t *Float64) Value() interface{} {
	return t.value
}

func (t *Float64) SetValue(v any) DataType {
	switch ty := v.(type) {
	case float64:
		t.value = ty
	case float32:
		t.value = float64(ty)
	case int:
		t.value = float64(ty)
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (t *Float64) Length() uint16 {
	if t.length > 0 {
		return t.length
	}
	return t.DefaultLength()
}

func (*Float64) DefaultLength() uint16 {
	return 8
}

func (t *Float64) SetLength(length uint16) DataType {
	if length == 4 {
		t.length = 4
	} else {
		t.length = t.DefaultLength()
	}
	return t
}

func (t *Float64) IsReducedLength() bool {
	return t.length == 4
}

func (t *Float64) Clone() DataType {
	return &Float64{value: t.value, length: t.length}
}

func (t *Float64) Decode(b []byte) error {
	switch len(b) {
	case 8:
		t.value = math.Float64frombits(binary.BigEndian.Uint64(b))
	case 4:
		t.value = float64(math.Float32frombits(binary.BigEndian.Uint32(b)))
	default:
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	return nil
}

func (t *Float64) Encode(w io.Writer) (int, error) {
	if t.IsReducedLength() {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], math.Float32bits(float32(t.value)))
		return w.Write(b[:])
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(t.value))
	return w.Write(b[:])
}

func (t *Float64) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

var _ DataTypeConstructor = NewFloat32
var _ DataTypeConstructor = NewFloat64
var _ DataType = &Float32{}
var _ DataType = &Float64{}
