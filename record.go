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
)

// DataField is one decoded field of a data record: the template field
// specifier plus its value.
type DataField struct {
	field TemplateField
	value DataType
}

func (f DataField) Name() string {
	return f.field.element.Name
}

func (f DataField) Element() InformationElement {
	return f.field.element
}

func (f DataField) Field() TemplateField {
	return f.field
}

// Value returns the decoded value as its natural Go type.
func (f DataField) Value() interface{} {
	return f.value.Value()
}

// DataType exposes the underlying typed value, e.g. for setting values on
// records under construction.
func (f DataField) DataType() DataType {
	return f.value
}

func (f DataField) String() string {
	return fmt.Sprintf("%s=%s", f.Name(), f.value.String())
}

func (f DataField) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]json.Marshaler{f.Name(): f.value})
}

// DataRecord is one record of a data set, decoded under (or to be encoded
// under) a template. Fields appear in template order.
type DataRecord struct {
	templateId uint16
	template   *Template
	fields     []DataField
}

// NewDataRecord instantiates an empty record under t, with one zero value
// per template field, ready for Set calls and export.
func NewDataRecord(t *Template) *DataRecord {
	fields := make([]DataField, len(t.fields))
	for i, f := range t.fields {
		fields[i] = DataField{field: f, value: f.value()}
	}
	return &DataRecord{template: t, fields: fields}
}

// TemplateId returns the id of the set the record was read from, or 0 for
// records under construction.
func (r *DataRecord) TemplateId() uint16 {
	return r.templateId
}

func (r *DataRecord) Template() *Template {
	return r.template
}

func (r *DataRecord) Fields() []DataField {
	return r.fields
}

func (r *DataRecord) Field(i int) DataField {
	return r.fields[i]
}

// Lookup returns the first field with the given element name.
func (r *DataRecord) Lookup(name string) (DataField, bool) {
	for _, f := range r.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return DataField{}, false
}

// Set assigns v to the first field with the given element name. It panics
// if v cannot be converted to the field's data type, mirroring
// DataType.SetValue.
func (r *DataRecord) Set(name string, v any) error {
	for i := range r.fields {
		if r.fields[i].Name() == name {
			r.fields[i].value.SetValue(v)
			return nil
		}
	}
	return elementNotFoundByName(name)
}

func (r *DataRecord) String() string {
	return fmt.Sprintf("%v", r.fields)
}

func (r *DataRecord) MarshalJSON() ([]byte, error) {
	m := make(map[string]json.Marshaler, len(r.fields))
	for _, f := range r.fields {
		m[f.Name()] = f.value
	}
	return json.Marshal(m)
}

// wireLength is the number of octets the record occupies when encoded,
// including varlen prefixes.
func (r *DataRecord) wireLength() int {
	n := 0
	for _, f := range r.fields {
		if f.field.IsVariableLength() {
			l := int(f.value.Length())
			n += varlenPrefixSize(l) + l
		} else {
			n += int(f.field.Length())
		}
	}
	return n
}
