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
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// BasicList implements the basicList abstract data type: a list of zero or
// more values of a single information element (RFC 6313, Section 4.5.1).
type BasicList struct {
	semantic ListSemantic
	element  InformationElement

	// fieldLength is the per-element wire length declared in the list
	// header, VariableLength for variable-length elements.
	fieldLength uint16

	values []DataType

	session *Session
	length  uint16
}

func NewBasicList() DataType {
	return &BasicList{semantic: SemanticUndefined, length: VariableLength}
}

// BasicListOf builds a basicList for export. Values must all be of ie's
// data type; fieldLength 0 means the element's canonical length.
func BasicListOf(ie InformationElement, sem ListSemantic, fieldLength uint16, values ...DataType) *BasicList {
	if fieldLength == 0 {
		fieldLength = ie.constructor()().DefaultLength()
	}
	return &BasicList{
		semantic:    sem,
		element:     ie,
		fieldLength: fieldLength,
		values:      values,
		length:      VariableLength,
	}
}

func (t *BasicList) bind(s *Session) {
	t.session = s
}

func (t *BasicList) Semantic() ListSemantic {
	return t.semantic
}

func (t *BasicList) SetSemantic(s ListSemantic) *BasicList {
	t.semantic = s
	return t
}

// ListElement returns the information element all list values share.
func (t *BasicList) ListElement() InformationElement {
	return t.element
}

func (t *BasicList) Elements() []DataType {
	return t.values
}

func (t *BasicList) String() string {
	return fmt.Sprintf("basicList(%s)%v", t.element.Name, t.values)
}

func (*BasicList) Type() string {
	return "basicList"
}

func (t *BasicList) Value() interface{} {
	return t.values
}

func (t *BasicList) SetValue(v any) DataType {
	values, ok := v.([]DataType)
	if !ok {
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.values))
	}
	t.values = values
	return t
}

// headerLength is the size of the basicList header: semantic, field id, and
// element length, plus the enterprise number when present.
func (t *BasicList) headerLength() int {
	if t.element.EnterpriseId != 0 {
		return 9
	}
	return 5
}

func (t *BasicList) Length() uint16 {
	n := t.headerLength()
	for _, v := range t.values {
		l := int(v.Length())
		if isVariableLength(t.fieldLength) {
			n += varlenPrefixSize(l)
		}
		n += l
	}
	return uint16(n)
}

func (*BasicList) DefaultLength() uint16 {
	return VariableLength
}

func (t *BasicList) SetLength(length uint16) DataType {
	t.length = length
	return t
}

func (*BasicList) IsReducedLength() bool {
	return false
}

func (t *BasicList) Clone() DataType {
	values := make([]DataType, len(t.values))
	for i, v := range t.values {
		values[i] = v.Clone()
	}
	return &BasicList{
		semantic:    t.semantic,
		element:     t.element,
		fieldLength: t.fieldLength,
		values:      values,
		session:     t.session,
		length:      t.length,
	}
}

// Decode parses the list content in b: the semantic and field specifier
// header followed by packed values until b is exhausted (RFC 6313,
// Section 4.5.1).
func (t *BasicList) Decode(b []byte) error {
	if len(b) < 5 {
		return fmt.Errorf("short basicList header: %w", ErrIllegalDataTypeEncoding)
	}
	t.semantic = ListSemantic(b[0])
	rawId := binary.BigEndian.Uint16(b[1:3])
	t.fieldLength = binary.BigEndian.Uint16(b[3:5])
	offset := 5
	var pen uint32
	if isEnterpriseField(rawId) {
		if len(b) < 9 {
			return fmt.Errorf("short basicList enterprise header: %w", ErrIllegalDataTypeEncoding)
		}
		pen = binary.BigEndian.Uint32(b[5:9])
		offset = 9
	}
	if t.session == nil {
		return fmt.Errorf("basicList decoded outside a session: %w", ErrIllegalDataTypeEncoding)
	}
	t.element = t.session.Model().resolve(pen, rawId&^enterpriseBit)

	t.values = t.values[:0]
	for offset < len(b) {
		length := int(t.fieldLength)
		if isVariableLength(t.fieldLength) {
			l, prefix, err := decodeVarlen(b[offset:])
			if err != nil {
				return err
			}
			offset += prefix
			length = l
		}
		if len(b) < offset+length {
			return fmt.Errorf("basicList element exceeds content: %w", ErrIllegalDataTypeEncoding)
		}
		dt := t.element.constructor()()
		dt.SetLength(t.fieldLength)
		if lb, ok := dt.(sessionBound); ok {
			lb.bind(t.session)
		}
		if err := dt.Decode(b[offset : offset+length]); err != nil {
			return err
		}
		offset += length
		t.values = append(t.values, dt)
	}
	return nil
}

func (t *BasicList) Encode(w io.Writer) (int, error) {
	var buf bytes.Buffer
	buf.WriteByte(uint8(t.semantic))
	id := t.element.Id
	if t.element.EnterpriseId != 0 {
		id |= enterpriseBit
	}
	var hdr [4]byte
	binary.BigEndian.PutUint16(hdr[0:2], id)
	binary.BigEndian.PutUint16(hdr[2:4], t.fieldLength)
	buf.Write(hdr[:])
	if t.element.EnterpriseId != 0 {
		var pen [4]byte
		binary.BigEndian.PutUint32(pen[:], t.element.EnterpriseId)
		buf.Write(pen[:])
	}
	for _, v := range t.values {
		if isVariableLength(t.fieldLength) {
			if _, err := encodeVarlen(&buf, int(v.Length())); err != nil {
				return 0, err
			}
		}
		if _, err := v.Encode(&buf); err != nil {
			return 0, err
		}
	}
	return w.Write(buf.Bytes())
}

func (t *BasicList) MarshalJSON() ([]byte, error) {
	values := make([]json.Marshaler, len(t.values))
	for i, v := range t.values {
		values[i] = v
	}
	return json.Marshal(map[string]any{
		"semantic": t.semantic.String(),
		"element":  t.element.Name,
		"values":   values,
	})
}

var _ DataTypeConstructor = NewBasicList
var _ DataType = &BasicList{}
var _ sessionBound = &BasicList{}
