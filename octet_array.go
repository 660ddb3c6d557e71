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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
)

// OctetArray implements the octetArray abstract data type. It is also the
// fallback encoding for elements of unknown type.
type OctetArray struct {
	value []byte

	length uint16
}

func NewOctetArray() DataType {
	return &OctetArray{length: VariableLength}
}

func (t *OctetArray) String() string {
	return hex.EncodeToString(t.value)
}

func (*OctetArray) Type() string {
	return "octetArray"
}

func (t *OctetArray) Value() interface{} {
	return t.value
}

func (t *OctetArray) SetValue(v any) DataType {
	switch ty := v.(type) {
	case []byte:
		t.value = ty
	case string:
		b, err := hex.DecodeString(ty)
		if err != nil {
			panic(fmt.Errorf("cannot decode %q as hex octets: %w", ty, err))
		}
		t.value = b
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (t *OctetArray) Length() uint16 {
	if isVariableLength(t.length) {
		return uint16(len(t.value))
	}
	return t.length
}

func (*OctetArray) DefaultLength() uint16 {
	return VariableLength
}

func (t *OctetArray) SetLength(length uint16) DataType {
	t.length = length
	return t
}

func (*OctetArray) IsReducedLength() bool {
	return false
}

func (t *OctetArray) Clone() DataType {
	v := make([]byte, len(t.value))
	copy(v, t.value)
	return &OctetArray{value: v, length: t.length}
}

// Decode aliases b instead of copying; the value is only valid until the
// buffer passed to MessageBuffer.StartMessage is reused.
func (t *OctetArray) Decode(b []byte) error {
	t.value = b
	return nil
}

func (t *OctetArray) Encode(w io.Writer) (int, error) {
	if isVariableLength(t.length) || int(t.length) == len(t.value) {
		return w.Write(t.value)
	}
	b := make([]byte, t.length)
	copy(b, t.value)
	return w.Write(b)
}

func (t *OctetArray) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(t.value))
}

var _ DataTypeConstructor = NewOctetArray
var _ DataType = &OctetArray{}
