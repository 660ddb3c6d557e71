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

// Boolean implements the boolean abstract data type, encoded per the SMIv2
// TruthValue convention: 1 is true, 2 is false (RFC 7011, Section 6.1.6).
type Boolean struct {
	value bool
}

func NewBoolean() DataType {
	return &Boolean{}
}

func (t *Boolean) String() string {
	return fmt.Sprintf("%v", t.value)
}

func (*Boolean) Type() string {
	return "boolean"
}

func (t *Boolean) Value() interface{} {
	return t.value
}

func (t *Boolean) SetValue(v any) DataType {
	b, ok := v.(bool)
	if !ok {
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	t.value = b
	return t
}

func (*Boolean) Length() uint16 {
	return 1
}

func (*Boolean) DefaultLength() uint16 {
	return 1
}

func (t *Boolean) SetLength(uint16) DataType {
	return t
}

func (*Boolean) IsReducedLength() bool {
	return false
}

func (t *Boolean) Clone() DataType {
	return &Boolean{value: t.value}
}

func (t *Boolean) Decode(b []byte) error {
	if len(b) != 1 {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	switch b[0] {
	case 1:
		t.value = true
	case 2:
		t.value = false
	default:
		return fmt.Errorf("%d is not a TruthValue: %w", b[0], ErrIllegalDataTypeEncoding)
	}
	return nil
}

func (t *Boolean) Encode(w io.Writer) (int, error) {
	v := uint8(2)
	if t.value {
		v = 1
	}
	return w.Write([]byte{v})
}

func (t *Boolean) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

var _ DataTypeConstructor = NewBoolean
var _ DataType = &Boolean{}
