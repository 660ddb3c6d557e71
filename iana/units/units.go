// Package units captures the IANA "informationElementUnits" sub-registry
// (RFC 5610, Section 3.11).
package units

import (
	"encoding"
	"fmt"
)

type Unit uint16

const (
	None Unit = iota
	Bits
	Octets
	Packets
	Flows
	Seconds
	Milliseconds
	Microseconds
	Nanoseconds
	FourOctetWords
	Messages
	Hops
	Entries
	Frames
	Ports
	Inferred
)

func (u Unit) String() string {
	switch u {
	case None:
		return "none"
	case Bits:
		return "bits"
	case Octets:
		return "octets"
	case Packets:
		return "packets"
	case Flows:
		return "flows"
	case Seconds:
		return "seconds"
	case Milliseconds:
		return "milliseconds"
	case Microseconds:
		return "microseconds"
	case Nanoseconds:
		return "nanoseconds"
	case FourOctetWords:
		return "4-octet words"
	case Messages:
		return "messages"
	case Hops:
		return "hops"
	case Entries:
		return "entries"
	case Frames:
		return "frames"
	case Ports:
		return "ports"
	case Inferred:
		return "inferred"
	default:
		return "unassigned"
	}
}

// FromNumber maps the numeric registry value carried in RFC 5610 option
// records to a Unit. Unassigned values map to None.
func FromNumber(i uint16) Unit {
	if i <= uint16(Inferred) {
		return Unit(i)
	}
	return None
}

func Parse(s string) Unit {
	for u := None; u <= Inferred; u++ {
		if u.String() == s {
			return u
		}
	}
	return None
}

func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Unit) UnmarshalText(in []byte) error {
	*u = Parse(string(in))
	return nil
}

var _ fmt.Stringer = Unit(0)
var _ encoding.TextMarshaler = Unit(0)
var _ encoding.TextUnmarshaler = (*Unit)(nil)
