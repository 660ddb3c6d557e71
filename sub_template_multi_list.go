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

// SubTemplateMultiListEntry is one segment of a subTemplateMultiList: a
// template id and the records encoded under it.
type SubTemplateMultiListEntry struct {
	TemplateId uint16
	Records    []*DataRecord

	// Raw holds the undecoded segment content when the session has no
	// template for TemplateId.
	Raw []byte
}

func (e SubTemplateMultiListEntry) contentLength() int {
	n := 0
	for _, r := range e.Records {
		n += r.wireLength()
	}
	return n + len(e.Raw)
}

// SubTemplateMultiList implements the subTemplateMultiList abstract data
// type: a sequence of record segments, each under its own template
// (RFC 6313, Section 4.5.3).
type SubTemplateMultiList struct {
	semantic ListSemantic
	entries  []SubTemplateMultiListEntry

	session *Session
	length  uint16
}

func NewSubTemplateMultiList() DataType {
	return &SubTemplateMultiList{semantic: SemanticUndefined, length: VariableLength}
}

// SubTemplateMultiListOf builds a subTemplateMultiList for export.
func SubTemplateMultiListOf(sem ListSemantic, entries ...SubTemplateMultiListEntry) *SubTemplateMultiList {
	return &SubTemplateMultiList{semantic: sem, entries: entries, length: VariableLength}
}

func (t *SubTemplateMultiList) bind(s *Session) {
	t.session = s
}

func (t *SubTemplateMultiList) Semantic() ListSemantic {
	return t.semantic
}

func (t *SubTemplateMultiList) SetSemantic(s ListSemantic) *SubTemplateMultiList {
	t.semantic = s
	return t
}

func (t *SubTemplateMultiList) Entries() []SubTemplateMultiListEntry {
	return t.entries
}

func (t *SubTemplateMultiList) String() string {
	return fmt.Sprintf("subTemplateMultiList[%d entries]", len(t.entries))
}

func (*SubTemplateMultiList) Type() string {
	return "subTemplateMultiList"
}

func (t *SubTemplateMultiList) Value() interface{} {
	return t.entries
}

func (t *SubTemplateMultiList) SetValue(v any) DataType {
	entries, ok := v.([]SubTemplateMultiListEntry)
	if !ok {
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.entries))
	}
	t.entries = entries
	return t
}

func (t *SubTemplateMultiList) Length() uint16 {
	n := 1
	for _, e := range t.entries {
		// 4-octet segment header plus content
		n += 4 + e.contentLength()
	}
	return uint16(n)
}

func (*SubTemplateMultiList) DefaultLength() uint16 {
	return VariableLength
}

func (t *SubTemplateMultiList) SetLength(length uint16) DataType {
	t.length = length
	return t
}

func (*SubTemplateMultiList) IsReducedLength() bool {
	return false
}

func (t *SubTemplateMultiList) Clone() DataType {
	entries := make([]SubTemplateMultiListEntry, len(t.entries))
	copy(entries, t.entries)
	return &SubTemplateMultiList{
		semantic: t.semantic,
		entries:  entries,
		session:  t.session,
		length:   t.length,
	}
}

// Decode parses the list content: the semantic, then segments of
// (template id, segment length, records) until b is exhausted. Each
// segment's records are bounded by the segment's declared length, which
// includes the 4-octet segment header (RFC 6313, Section 4.5.3).
func (t *SubTemplateMultiList) Decode(b []byte) error {
	if len(b) < 1 {
		return fmt.Errorf("short subTemplateMultiList header: %w", ErrIllegalDataTypeEncoding)
	}
	t.semantic = ListSemantic(b[0])
	t.entries = t.entries[:0]
	if t.session == nil {
		return fmt.Errorf("subTemplateMultiList decoded outside a session: %w", ErrIllegalDataTypeEncoding)
	}
	offset := 1
	for offset < len(b) {
		if len(b) < offset+4 {
			return fmt.Errorf("short subTemplateMultiList segment header: %w", ErrIllegalDataTypeEncoding)
		}
		templateId := binary.BigEndian.Uint16(b[offset : offset+2])
		segmentLength := int(binary.BigEndian.Uint16(b[offset+2 : offset+4]))
		if segmentLength < 4 || offset+segmentLength > len(b) {
			return fmt.Errorf("subTemplateMultiList segment length %d exceeds content: %w",
				segmentLength, ErrIllegalDataTypeEncoding)
		}
		content := b[offset+4 : offset+segmentLength]
		offset += segmentLength

		entry := SubTemplateMultiListEntry{TemplateId: templateId}
		pair, err := t.session.ResolvePair(templateId)
		if err != nil {
			getLogger().V(1).Info("subTemplateMultiList segment with unknown template, keeping raw content",
				"templateId", templateId)
			entry.Raw = content
			t.entries = append(t.entries, entry)
			continue
		}
		if pair.decodeDisabled() {
			t.entries = append(t.entries, entry)
			continue
		}
		inner := 0
		for inner < len(content) {
			record, n, err := decodeRecord(t.session, pair.External, content[inner:])
			if err != nil {
				return err
			}
			record.templateId = templateId
			if pair.Internal != pair.External {
				record = projectRecord(pair.Internal, record)
			}
			entry.Records = append(entry.Records, record)
			inner += n
		}
		t.entries = append(t.entries, entry)
	}
	return nil
}

func (t *SubTemplateMultiList) Encode(w io.Writer) (int, error) {
	var buf bytes.Buffer
	buf.WriteByte(uint8(t.semantic))
	for _, e := range t.entries {
		var hdr [4]byte
		binary.BigEndian.PutUint16(hdr[0:2], e.TemplateId)
		binary.BigEndian.PutUint16(hdr[2:4], uint16(4+e.contentLength()))
		buf.Write(hdr[:])
		for _, r := range e.Records {
			if _, err := encodeRecord(&buf, r); err != nil {
				return 0, err
			}
		}
		buf.Write(e.Raw)
	}
	return w.Write(buf.Bytes())
}

func (t *SubTemplateMultiList) MarshalJSON() ([]byte, error) {
	entries := make([]map[string]any, len(t.entries))
	for i, e := range t.entries {
		records := make([]json.Marshaler, len(e.Records))
		for j, r := range e.Records {
			records[j] = r
		}
		entries[i] = map[string]any{
			"templateId": e.TemplateId,
			"records":    records,
		}
	}
	return json.Marshal(map[string]any{
		"semantic": t.semantic.String(),
		"entries":  entries,
	})
}

var _ DataTypeConstructor = NewSubTemplateMultiList
var _ DataType = &SubTemplateMultiList{}
var _ sessionBound = &SubTemplateMultiList{}
