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

// ListSemantic captures the IANA-assigned structured data type semantics of
// RFC 6313, Section 4.4. The semantic annotates how the elements of a list
// relate to the enclosing data record; the codec carries it through
// unchanged.
type ListSemantic uint8

const (
	// SemanticNoneOf: none of the list elements are actual properties of the
	// data record.
	SemanticNoneOf ListSemantic = 0

	// SemanticExactlyOneOf: exactly one element applies (logical XOR).
	SemanticExactlyOneOf ListSemantic = 1

	// SemanticOneOrMoreOf: one or more elements apply (logical OR).
	SemanticOneOrMoreOf ListSemantic = 2

	// SemanticAllOf: every element applies.
	SemanticAllOf ListSemantic = 3

	// SemanticOrdered: the elements apply and their order is meaningful.
	SemanticOrdered ListSemantic = 4

	// SemanticUndefined is the default when the exporter declares no
	// semantic.
	SemanticUndefined ListSemantic = 255
)

func (s ListSemantic) String() string {
	switch s {
	case SemanticNoneOf:
		return "noneOf"
	case SemanticExactlyOneOf:
		return "exactlyOneOf"
	case SemanticOneOrMoreOf:
		return "oneOrMoreOf"
	case SemanticAllOf:
		return "allOf"
	case SemanticOrdered:
		return "ordered"
	case SemanticUndefined:
		return "undefined"
	default:
		return "unassigned"
	}
}

func (s ListSemantic) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ListSemantic) UnmarshalText(in []byte) error {
	switch string(in) {
	case "noneOf":
		*s = SemanticNoneOf
	case "exactlyOneOf":
		*s = SemanticExactlyOneOf
	case "oneOrMoreOf":
		*s = SemanticOneOrMoreOf
	case "allOf":
		*s = SemanticAllOf
	case "ordered":
		*s = SemanticOrdered
	default:
		*s = SemanticUndefined
	}
	return nil
}
