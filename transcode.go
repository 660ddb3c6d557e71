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

// sessionBound is implemented by the structured data types of RFC 6313,
// which need a session (and through it the information model) to interpret
// their content.
type sessionBound interface {
	bind(s *Session)
}

// varlenPrefixSize returns the size of the length prefix for a
// variable-length field of the given content length: 1 octet for lengths up
// to 254, 3 octets otherwise (RFC 7011, Section 7).
func varlenPrefixSize(length int) int {
	if length < 255 {
		return 1
	}
	return 3
}

// decodeVarlen reads the variable-length prefix at the start of b and
// returns the content length and the prefix size.
func decodeVarlen(b []byte) (int, int, error) {
	if len(b) < 1 {
		return 0, 0, fmt.Errorf("missing varlen prefix: %w", ErrMalformedMessage)
	}
	if b[0] < 255 {
		return int(b[0]), 1, nil
	}
	if len(b) < 3 {
		return 0, 0, fmt.Errorf("short varlen prefix: %w", ErrMalformedMessage)
	}
	return int(binary.BigEndian.Uint16(b[1:3])), 3, nil
}

// encodeVarlen writes the variable-length prefix for a field of the given
// content length. Lengths of 255 and above always use the three-octet long
// form; the short form caps at 254.
func encodeVarlen(w io.Writer, length int) (int, error) {
	if length < 255 {
		return w.Write([]byte{uint8(length)})
	}
	var b [3]byte
	b[0] = 255
	binary.BigEndian.PutUint16(b[1:3], uint16(length))
	return w.Write(b[:])
}

// decodeRecord walks one data record of template t at the start of b,
// returning the decoded record and the number of octets consumed. Decoded
// octetArray values alias b.
func decodeRecord(s *Session, t *Template, b []byte) (*DataRecord, int, error) {
	fields := make([]DataField, len(t.fields))
	offset := 0
	for i, f := range t.fields {
		length := int(f.length)
		if f.IsVariableLength() {
			l, prefix, err := decodeVarlen(b[offset:])
			if err != nil {
				return nil, 0, err
			}
			offset += prefix
			length = l
		}
		if len(b) < offset+length {
			return nil, 0, fmt.Errorf("record field %s exceeds set: %w", f.element.Name, ErrMalformedMessage)
		}
		dt := f.value()
		if lb, ok := dt.(sessionBound); ok {
			lb.bind(s)
		}
		if err := dt.Decode(b[offset : offset+length]); err != nil {
			return nil, 0, err
		}
		offset += length
		fields[i] = DataField{field: f, value: dt}
	}
	return &DataRecord{template: t, fields: fields}, offset, nil
}

// encodeRecord writes r's fields in wire format, varlen prefixes included.
func encodeRecord(w io.Writer, r *DataRecord) (int, error) {
	n := 0
	for _, f := range r.fields {
		if f.field.IsVariableLength() {
			m, err := encodeVarlen(w, int(f.value.Length()))
			n += m
			if err != nil {
				return n, err
			}
		}
		m, err := f.value.Encode(w)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// projectRecord maps a record decoded under an external template onto an
// internal template: for each internal field, the first not-yet-consumed
// wire field with the same (enterprise number, element id) supplies the
// value; internal fields with no wire counterpart stay zero. This is the
// collector-side half of template pairing, where the caller's internal
// template selects and orders the fields it cares about.
func projectRecord(internal *Template, wire *DataRecord) *DataRecord {
	out := NewDataRecord(internal)
	consumed := make([]bool, len(wire.fields))
	for i, f := range internal.fields {
		for j, wf := range wire.fields {
			if consumed[j] {
				continue
			}
			if wf.field.element.EnterpriseId == f.element.EnterpriseId && wf.field.element.Id == f.element.Id {
				out.fields[i] = DataField{field: f, value: widen(f, wf.value)}
				consumed[j] = true
				break
			}
		}
	}
	out.templateId = wire.templateId
	return out
}

// widen carries a wire value into an internal field, re-instantiating it at
// the internal field's length so reduced-length wire encodings land in
// canonical-width values.
func widen(f TemplateField, v DataType) DataType {
	if f.IsVariableLength() || v.Type() != f.element.typeName() || v.Length() == f.length {
		return v
	}
	dt := f.value()
	dt.SetValue(v.Value())
	return dt
}
