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
)

// TemplateField is one field specifier of a template: an information
// element plus the wire length the template declares for it, which may be a
// reduced length or the variable-length sentinel.
type TemplateField struct {
	element InformationElement
	length  uint16
	scope   bool
}

func (f TemplateField) Element() InformationElement {
	return f.element
}

// Length returns the declared wire length, VariableLength for
// variable-length fields.
func (f TemplateField) Length() uint16 {
	return f.length
}

func (f TemplateField) IsVariableLength() bool {
	return isVariableLength(f.length)
}

// IsScope reports whether the field belongs to the scope portion of an
// options template.
func (f TemplateField) IsScope() bool {
	return f.scope
}

func (f TemplateField) String() string {
	return fmt.Sprintf("%s:%d", f.element.Name, f.length)
}

// value instantiates a DataType configured with this field's declared
// length, ready to decode or encode one value.
func (f TemplateField) value() DataType {
	dt := f.element.constructor()()
	dt.SetLength(f.length)
	return dt
}

// specLength is the size of this field's specifier in a template record:
// 4 octets, plus 4 for the enterprise number when present.
func (f TemplateField) specLength() int {
	if f.element.EnterpriseId != 0 {
		return 8
	}
	return 4
}

// encodeSpec writes the field specifier in template record format
// (RFC 7011, Section 3.2).
func (f TemplateField) encodeSpec(w io.Writer) (int, error) {
	b := make([]byte, f.specLength())
	id := f.element.Id
	if f.element.EnterpriseId != 0 {
		id |= enterpriseBit
	}
	binary.BigEndian.PutUint16(b[0:2], id)
	binary.BigEndian.PutUint16(b[2:4], f.length)
	if f.element.EnterpriseId != 0 {
		binary.BigEndian.PutUint32(b[4:8], f.element.EnterpriseId)
	}
	return w.Write(b)
}
