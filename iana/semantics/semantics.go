// Package semantics captures the IANA "informationElementSemantics"
// sub-registry used to annotate information elements (RFC 5610, Section 3.10).
package semantics

import (
	"encoding"
	"fmt"
)

type Semantic uint8

const (
	Default Semantic = iota
	Quantity
	TotalCounter
	DeltaCounter
	Identifier
	Flags
	List
	SNMPCounter
	SNMPGauge

	// Undefined is not an IANA-assigned value; it marks elements whose
	// semantics were never declared, which serializes to the empty string.
	Undefined Semantic = 255
)

func (s Semantic) String() string {
	switch s {
	case Default:
		return "default"
	case Quantity:
		return "quantity"
	case TotalCounter:
		return "totalCounter"
	case DeltaCounter:
		return "deltaCounter"
	case Identifier:
		return "identifier"
	case Flags:
		return "flags"
	case List:
		return "list"
	case SNMPCounter:
		return "snmpCounter"
	case SNMPGauge:
		return "snmpGauge"
	case Undefined:
		return ""
	default:
		return "unassigned"
	}
}

// FromNumber maps the numeric registry value carried in RFC 5610 option
// records to a Semantic. Unassigned values map to Undefined.
func FromNumber(i uint8) Semantic {
	if i <= uint8(SNMPGauge) {
		return Semantic(i)
	}
	return Undefined
}

func Parse(s string) Semantic {
	for _, c := range []Semantic{Default, Quantity, TotalCounter, DeltaCounter, Identifier, Flags, List, SNMPCounter, SNMPGauge} {
		if c.String() == s {
			return c
		}
	}
	return Undefined
}

func (s Semantic) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Semantic) UnmarshalText(in []byte) error {
	*s = Parse(string(in))
	return nil
}

var _ fmt.Stringer = Semantic(0)
var _ encoding.TextMarshaler = Semantic(0)
var _ encoding.TextUnmarshaler = (*Semantic)(nil)
