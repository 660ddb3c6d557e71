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

	"github.com/flowtools/gofixbuf/iana/semantics"
	"github.com/flowtools/gofixbuf/iana/units"
)

// InformationElementRange bounds the legal values of an element, as declared
// in RFC 5610 option records.
type InformationElementRange struct {
	Low  uint64 `json:"low,omitempty" yaml:"low,omitempty"`
	High uint64 `json:"high,omitempty" yaml:"high,omitempty"`
}

func (r *InformationElementRange) Clone() *InformationElementRange {
	if r == nil {
		return nil
	}
	return &InformationElementRange{Low: r.Low, High: r.High}
}

// InformationElement describes one entry of the information model: an
// element identified by (EnterpriseId, Id), with a name, an abstract data
// type, and optional registry metadata.
type InformationElement struct {
	Constructor DataTypeConstructor `json:"-" yaml:"-"`

	Id           uint16 `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	EnterpriseId uint32 `json:"pen,omitempty" yaml:"pen,omitempty"`

	// Type is the IANA name of the element's abstract data type, e.g.
	// "unsigned64". Empty means unknown, which decodes as octetArray.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	Semantics   semantics.Semantic       `json:"semantics,omitempty" yaml:"semantics,omitempty"`
	Units       units.Unit               `json:"units,omitempty" yaml:"units,omitempty"`
	Range       *InformationElementRange `json:"range,omitempty" yaml:"range,omitempty"`
	Description string                   `json:"description,omitempty" yaml:"description,omitempty"`

	// Reversible marks elements eligible for a reverse counterpart under
	// the reverse private enterprise number (RFC 5103).
	Reversible bool `json:"reversible,omitempty" yaml:"reversible,omitempty"`

	// Reversed marks derived reverse-direction elements.
	Reversed bool `json:"reversed,omitempty" yaml:"reversed,omitempty"`
}

func (i InformationElement) String() string {
	return fmt.Sprintf("%s(%d/%d)<%s>", i.Name, i.EnterpriseId, i.Id, i.typeName())
}

func (i *InformationElement) typeName() string {
	if i.Type != "" {
		return i.Type
	}
	if i.Constructor != nil {
		return i.Constructor().Type()
	}
	return "octetArray"
}

// constructor returns the element's data type constructor, falling back to
// octetArray for elements of unknown type.
func (i *InformationElement) constructor() DataTypeConstructor {
	if i.Constructor != nil {
		return i.Constructor
	}
	if c := LookupConstructor(i.Type); c != nil {
		return c
	}
	return NewOctetArray
}

func (i *InformationElement) Clone() InformationElement {
	ie := *i
	ie.Range = i.Range.Clone()
	return ie
}

// ValidLength reports whether length is a legal wire length for the
// element's abstract data type, including reduced-length encodings
// (RFC 7011, Section 6.2) and the variable-length sentinel.
func (i *InformationElement) ValidLength(length uint16) bool {
	proto := i.constructor()()
	def := proto.DefaultLength()
	if isVariableLength(def) {
		switch proto.Type() {
		case "basicList", "subTemplateList", "subTemplateMultiList":
			// list content carries its own framing; only zero is illegal
			return isVariableLength(length) || length > 0
		default:
			// octetArray and string accept any length, including 0 and
			// the variable-length sentinel
			return true
		}
	}
	if isVariableLength(length) || length == 0 {
		return false
	}
	switch proto.Type() {
	case "unsigned8", "unsigned16", "unsigned32", "unsigned64",
		"signed8", "signed16", "signed32", "signed64":
		return length <= def
	case "float64":
		return length == 4 || length == 8
	default:
		// booleans, addresses, timestamps, float32: exact width only
		return length == def
	}
}

func (i *InformationElement) MarshalJSON() ([]byte, error) {
	type serializable InformationElement
	s := serializable(*i)
	s.Type = i.typeName()
	return json.Marshal(s)
}

func (i *InformationElement) UnmarshalJSON(in []byte) error {
	type serializable InformationElement
	var s serializable
	if err := json.Unmarshal(in, &s); err != nil {
		return err
	}
	*i = InformationElement(s)
	i.Constructor = LookupConstructor(i.Type)
	return nil
}
