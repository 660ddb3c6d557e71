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
	"fmt"
	"io"
	"strings"
)

// Template is an immutable, ordered list of field specifiers describing the
// wire layout of data records. Templates carry no id of their own; sessions
// map template ids to templates per direction.
type Template struct {
	fields     []TemplateField
	scopeCount uint16

	// minWireLength is the smallest number of octets a record under this
	// template can occupy; variable-length fields count their 1-octet
	// short-form prefix.
	minWireLength int

	// memLength is the size of a decoded record with every fixed-width
	// field widened to its canonical width. Fixed-length string and
	// octetArray fields contribute their declared length; variable-length
	// fields contribute nothing.
	memLength int

	hasVariableLength bool
	hasListField      bool

	// positions of structured-data fields, for clearing and re-binding
	// nested list values without walking the whole record
	basicListFields            []int
	subTemplateListFields      []int
	subTemplateMultiListFields []int
}

func (t *Template) Fields() []TemplateField {
	return t.fields
}

func (t *Template) Field(i int) TemplateField {
	return t.fields[i]
}

func (t *Template) FieldCount() uint16 {
	return uint16(len(t.fields))
}

// ScopeCount returns the number of leading scope fields; non-zero marks an
// options template.
func (t *Template) ScopeCount() uint16 {
	return t.scopeCount
}

func (t *Template) IsOptions() bool {
	return t.scopeCount > 0
}

// MinWireLength returns the smallest record size possible under this
// template. Record walking uses it to decide whether a set can hold another
// record or only padding remains.
func (t *Template) MinWireLength() int {
	return t.minWireLength
}

func (t *Template) HasVariableLength() bool {
	return t.hasVariableLength
}

// MemLength returns the decoded size of a record under this template,
// canonical widths for fixed-width fields, declared lengths for fixed
// string/octetArray fields, and nothing for variable-length ones.
func (t *Template) MemLength() int {
	return t.memLength
}

func (t *Template) HasListField() bool {
	return t.hasListField
}

// BasicListFields returns the positions of basicList fields.
func (t *Template) BasicListFields() []int {
	return t.basicListFields
}

// SubTemplateListFields returns the positions of subTemplateList fields.
func (t *Template) SubTemplateListFields() []int {
	return t.subTemplateListFields
}

// SubTemplateMultiListFields returns the positions of subTemplateMultiList
// fields.
func (t *Template) SubTemplateMultiListFields() []int {
	return t.subTemplateMultiListFields
}

// Contains reports whether the template carries the element (pen, id).
func (t *Template) Contains(pen uint32, id uint16) bool {
	for _, f := range t.fields {
		if f.element.EnterpriseId == pen && f.element.Id == id {
			return true
		}
	}
	return false
}

func (t *Template) String() string {
	names := make([]string, len(t.fields))
	for i, f := range t.fields {
		names[i] = f.String()
	}
	return "{" + strings.Join(names, " ") + "}"
}

// specLength is the wire size of the template record describing t,
// excluding the template record header.
func (t *Template) specLength() int {
	n := 0
	for _, f := range t.fields {
		n += f.specLength()
	}
	return n
}

func fieldMinLength(length uint16) int {
	if isVariableLength(length) {
		return 1
	}
	return int(length)
}

func newTemplate(fields []TemplateField, scopeCount uint16) *Template {
	t := &Template{fields: fields, scopeCount: scopeCount}
	for i := range fields {
		fields[i].scope = uint16(i) < scopeCount
		t.minWireLength += fieldMinLength(fields[i].length)
		if fields[i].IsVariableLength() {
			t.hasVariableLength = true
		}
		def := fields[i].element.constructor()().DefaultLength()
		switch {
		case !isVariableLength(def):
			t.memLength += int(def)
		case !fields[i].IsVariableLength():
			t.memLength += int(fields[i].length)
		}
		switch fields[i].element.typeName() {
		case "basicList":
			t.hasListField = true
			t.basicListFields = append(t.basicListFields, i)
		case "subTemplateList":
			t.hasListField = true
			t.subTemplateListFields = append(t.subTemplateListFields, i)
		case "subTemplateMultiList":
			t.hasListField = true
			t.subTemplateMultiListFields = append(t.subTemplateMultiListFields, i)
		}
	}
	return t
}

// TemplateBuilder accumulates field specifiers and produces an immutable
// Template. Errors stick: the first failing append poisons the builder and
// surfaces from Complete.
type TemplateBuilder struct {
	model *InfoModel

	fields     []TemplateField
	scopeCount uint16
	done       bool
	err        error
}

func NewTemplateBuilder(model *InfoModel) *TemplateBuilder {
	return &TemplateBuilder{model: model}
}

// Append adds the named element with its canonical length.
func (b *TemplateBuilder) Append(name string) *TemplateBuilder {
	return b.AppendWithLength(name, 0)
}

// AppendWithLength adds the named element with an explicit length: a
// reduced length for integers and floats, a fixed length or VariableLength
// for octetArray and string fields. Length 0 means canonical.
func (b *TemplateBuilder) AppendWithLength(name string, length uint16) *TemplateBuilder {
	if b.err != nil {
		return b
	}
	if b.done {
		b.err = ErrTemplateActive
		return b
	}
	ie, err := b.model.GetByName(name)
	if err != nil {
		b.err = err
		return b
	}
	b.appendElement(ie, length)
	return b
}

// AppendElement adds ie with its canonical length. The element need not be
// registered with the model.
func (b *TemplateBuilder) AppendElement(ie InformationElement) *TemplateBuilder {
	if b.err != nil {
		return b
	}
	if b.done {
		b.err = ErrTemplateActive
		return b
	}
	b.appendElement(ie, 0)
	return b
}

// AppendAll adds every element in order with its canonical length,
// the bulk form for application-defined schemas.
func (b *TemplateBuilder) AppendAll(ies ...InformationElement) *TemplateBuilder {
	for _, ie := range ies {
		b.AppendElement(ie)
	}
	return b
}

// AppendById adds the element (pen, id), synthesizing an alien octetArray
// element when the model has no entry. Alien elements require an explicit
// length.
func (b *TemplateBuilder) AppendById(pen uint32, id uint16, length uint16) *TemplateBuilder {
	if b.err != nil {
		return b
	}
	if b.done {
		b.err = ErrTemplateActive
		return b
	}
	b.appendElement(b.model.resolve(pen, id), length)
	return b
}

func (b *TemplateBuilder) appendElement(ie InformationElement, length uint16) {
	if length == 0 {
		length = ie.constructor()().DefaultLength()
	}
	checked, err := b.model.checkLength(ie, length)
	if err != nil {
		b.err = err
		return
	}
	b.fields = append(b.fields, TemplateField{element: checked, length: length})
}

// SetScopeCount marks the first n fields as scope, making the template an
// options template.
func (b *TemplateBuilder) SetScopeCount(n uint16) *TemplateBuilder {
	if b.err != nil {
		return b
	}
	if b.done {
		b.err = ErrTemplateActive
		return b
	}
	b.scopeCount = n
	return b
}

// Complete finalizes the builder into an immutable Template. The builder
// cannot be appended to afterwards.
func (b *TemplateBuilder) Complete() (*Template, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.done {
		return nil, ErrTemplateActive
	}
	if len(b.fields) == 0 {
		return nil, fmt.Errorf("template has no fields: %w", ErrMalformedMessage)
	}
	if int(b.scopeCount) > len(b.fields) {
		return nil, fmt.Errorf("scope count %d exceeds %d fields: %w", b.scopeCount, len(b.fields), ErrMalformedMessage)
	}
	b.done = true
	return newTemplate(b.fields, b.scopeCount), nil
}

// decodeTemplateRecord parses one (options) template record from b,
// returning the announced template id, the template, and the number of
// octets consumed. A nil template with field count zero is a withdrawal
// (RFC 7011, Section 8.1).
func decodeTemplateRecord(model *InfoModel, b []byte, options bool) (uint16, *Template, int, error) {
	headerLen := 4
	if options {
		headerLen = 6
	}
	if len(b) < headerLen {
		return 0, nil, 0, fmt.Errorf("short template record header: %w", ErrMalformedMessage)
	}
	id := binary.BigEndian.Uint16(b[0:2])
	fieldCount := binary.BigEndian.Uint16(b[2:4])
	var scopeCount uint16
	if options {
		scopeCount = binary.BigEndian.Uint16(b[4:6])
	}
	if id < MinTemplateId {
		return 0, nil, 0, fmt.Errorf("template id %d below %d: %w", id, MinTemplateId, ErrMalformedMessage)
	}
	if fieldCount == 0 {
		// withdrawal record
		return id, nil, headerLen, nil
	}
	if scopeCount > fieldCount {
		return 0, nil, 0, fmt.Errorf("scope count %d exceeds field count %d: %w", scopeCount, fieldCount, ErrMalformedMessage)
	}

	offset := headerLen
	fields := make([]TemplateField, 0, fieldCount)
	for i := uint16(0); i < fieldCount; i++ {
		if len(b) < offset+4 {
			return 0, nil, 0, fmt.Errorf("short field specifier: %w", ErrMalformedMessage)
		}
		rawId := binary.BigEndian.Uint16(b[offset : offset+2])
		length := binary.BigEndian.Uint16(b[offset+2 : offset+4])
		offset += 4
		var pen uint32
		if isEnterpriseField(rawId) {
			if len(b) < offset+4 {
				return 0, nil, 0, fmt.Errorf("short enterprise field specifier: %w", ErrMalformedMessage)
			}
			pen = binary.BigEndian.Uint32(b[offset : offset+4])
			offset += 4
		}
		ie := model.resolve(pen, rawId&^enterpriseBit)
		checked, err := model.checkLength(ie, length)
		if err != nil {
			return 0, nil, 0, err
		}
		fields = append(fields, TemplateField{element: checked, length: length})
	}
	return id, newTemplate(fields, scopeCount), offset, nil
}

// encodeTemplateRecord writes the (options) template record announcing t
// under the given id.
func encodeTemplateRecord(w io.Writer, id uint16, t *Template) (int, error) {
	headerLen := 4
	if t.IsOptions() {
		headerLen = 6
	}
	header := make([]byte, headerLen)
	binary.BigEndian.PutUint16(header[0:2], id)
	binary.BigEndian.PutUint16(header[2:4], t.FieldCount())
	if t.IsOptions() {
		binary.BigEndian.PutUint16(header[4:6], t.scopeCount)
	}
	n, err := w.Write(header)
	if err != nil {
		return n, err
	}
	for _, f := range t.fields {
		m, err := f.encodeSpec(w)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
