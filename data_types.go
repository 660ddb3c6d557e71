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

// DataType is the common interface of all IPFIX abstract data types
// (RFC 7011, Section 6, plus the structured types of RFC 6313).
//
// A DataType instance carries both a decoded value and its wire-level
// length, which for integer and float types may be a reduced-length
// encoding shorter than the canonical width.
type DataType interface {
	json.Marshaler
	fmt.Stringer

	// Type returns the IANA name of the abstract data type, e.g.
	// "unsigned64" or "subTemplateList".
	Type() string

	// Length returns the number of octets this value occupies on the wire.
	// For variable-length types this is the current value's length, not
	// including the varlen prefix.
	Length() uint16

	// DefaultLength returns the canonical width of the data type as defined
	// by RFC 7011; variable-length types return VariableLength.
	DefaultLength() uint16

	// Decode interprets b as the wire representation of this type. b holds
	// exactly the field's content (varlen prefixes already stripped).
	// Implementations of types with indeterminate octet content (octetArray,
	// string) may alias b rather than copy.
	Decode(b []byte) error

	// Encode writes the value in IPFIX binary format. It returns the number
	// of octets written.
	Encode(w io.Writer) (int, error)

	// Value returns the decoded value as its natural Go type.
	Value() interface{}

	// SetValue sets the value from a natural Go type, returning the receiver
	// for chaining. SetValue panics if v cannot be converted.
	SetValue(v any) DataType

	// SetLength establishes a field-level length override, used for
	// reduced-length encodings and for sizing variable-length values.
	SetLength(length uint16) DataType

	// IsReducedLength reports whether the value uses a reduced-length
	// encoding shorter than the canonical width.
	IsReducedLength() bool

	// Clone returns a fresh DataType carrying the same value and length
	// configuration.
	Clone() DataType
}

// DataTypeConstructor is the nullary constructor all data types provide for
// uniform instantiation from the registry.
type DataTypeConstructor func() DataType

var constructors = map[string]DataTypeConstructor{
	"octetArray":           NewOctetArray,
	"unsigned8":            NewUnsigned8,
	"unsigned16":           NewUnsigned16,
	"unsigned32":           NewUnsigned32,
	"unsigned64":           NewUnsigned64,
	"signed8":              NewSigned8,
	"signed16":             NewSigned16,
	"signed32":             NewSigned32,
	"signed64":             NewSigned64,
	"float32":              NewFloat32,
	"float64":              NewFloat64,
	"boolean":              NewBoolean,
	"macAddress":           NewMacAddress,
	"string":               NewString,
	"dateTimeSeconds":      NewDateTimeSeconds,
	"dateTimeMilliseconds": NewDateTimeMilliseconds,
	"dateTimeMicroseconds": NewDateTimeMicroseconds,
	"dateTimeNanoseconds":  NewDateTimeNanoseconds,
	"ipv4Address":          NewIPv4Address,
	"ipv6Address":          NewIPv6Address,
	"basicList":            NewBasicList,
	"subTemplateList":      NewSubTemplateList,
	"subTemplateMultiList": NewSubTemplateMultiList,
}

// LookupConstructor returns the constructor registered under the IANA type
// name, or nil if the name is unknown.
func LookupConstructor(name string) DataTypeConstructor {
	return constructors[name]
}

// DataTypeFromNumber returns the constructor for the abstract data type with
// the IANA-assigned identifier id (the informationElementDataType registry,
// RFC 5610, Section 3.9). Unassigned ids yield octetArray, the universal
// fallback encoding.
func DataTypeFromNumber(id uint8) DataTypeConstructor {
	switch id {
	case 0:
		return NewOctetArray
	case 1:
		return NewUnsigned8
	case 2:
		return NewUnsigned16
	case 3:
		return NewUnsigned32
	case 4:
		return NewUnsigned64
	case 5:
		return NewSigned8
	case 6:
		return NewSigned16
	case 7:
		return NewSigned32
	case 8:
		return NewSigned64
	case 9:
		return NewFloat32
	case 10:
		return NewFloat64
	case 11:
		return NewBoolean
	case 12:
		return NewMacAddress
	case 13:
		return NewString
	case 14:
		return NewDateTimeSeconds
	case 15:
		return NewDateTimeMilliseconds
	case 16:
		return NewDateTimeMicroseconds
	case 17:
		return NewDateTimeNanoseconds
	case 18:
		return NewIPv4Address
	case 19:
		return NewIPv6Address
	case 20:
		return NewBasicList
	case 21:
		return NewSubTemplateList
	case 22:
		return NewSubTemplateMultiList
	default:
		return NewOctetArray
	}
}

// DataTypeNumber is the inverse of DataTypeFromNumber; it maps a type name
// back to the registry identifier for export in RFC 5610 option records.
func DataTypeNumber(name string) uint8 {
	switch name {
	case "octetArray":
		return 0
	case "unsigned8":
		return 1
	case "unsigned16":
		return 2
	case "unsigned32":
		return 3
	case "unsigned64":
		return 4
	case "signed8":
		return 5
	case "signed16":
		return 6
	case "signed32":
		return 7
	case "signed64":
		return 8
	case "float32":
		return 9
	case "float64":
		return 10
	case "boolean":
		return 11
	case "macAddress":
		return 12
	case "string":
		return 13
	case "dateTimeSeconds":
		return 14
	case "dateTimeMilliseconds":
		return 15
	case "dateTimeMicroseconds":
		return 16
	case "dateTimeNanoseconds":
		return 17
	case "ipv4Address":
		return 18
	case "ipv6Address":
		return 19
	case "basicList":
		return 20
	case "subTemplateList":
		return 21
	case "subTemplateMultiList":
		return 22
	default:
		return 0
	}
}
