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

// String implements the string abstract data type, a UTF-8 octet sequence
// that is usually variable-length encoded.
type String struct {
	value string

	length uint16
}

func NewString() DataType {
	return &String{length: VariableLength}
}

func (t *String) String() string {
	return t.value
}

func (*String) Type() string {
	return "string"
}

func (t *String) Value() interface{} {
	return t.value
}

func (t *String) SetValue(v any) DataType {
	switch ty := v.(type) {
	case string:
		t.value = ty
	case []byte:
		t.value = string(ty)
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

// Length returns the current value's length for variable-length fields, or
// the fixed field length otherwise.
func (t *String) Length() uint16 {
	if isVariableLength(t.length) {
		return uint16(len(t.value))
	}
	return t.length
}

func (*String) DefaultLength() uint16 {
	return VariableLength
}

func (t *String) SetLength(length uint16) DataType {
	t.length = length
	return t
}

func (*String) IsReducedLength() bool {
	return false
}

func (t *String) Clone() DataType {
	return &String{value: t.value, length: t.length}
}

// Decode interprets b as UTF-8 content. The conversion copies, so the
// resulting value does not alias the message buffer. Fixed-length string
// fields are padded with NUL, which is kept in the value; callers strip it
// if unwanted.
func (t *String) Decode(b []byte) error {
	t.value = string(b)
	return nil
}

func (t *String) Encode(w io.Writer) (int, error) {
	if isVariableLength(t.length) {
		return io.WriteString(w, t.value)
	}
	// fixed-length field: truncate or NUL-pad to the declared length
	b := make([]byte, t.length)
	copy(b, t.value)
	return w.Write(b)
}

func (t *String) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

var _ DataTypeConstructor = NewString
var _ DataType = &String{}
