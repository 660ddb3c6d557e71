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

// SubTemplateList implements the subTemplateList abstract data type: a list
// of records that all share one template (RFC 6313, Section 4.5.2).
type SubTemplateList struct {
	semantic   ListSemantic
	templateId uint16

	records []*DataRecord

	// raw holds the undecoded record content when the session has no
	// template for templateId; the records can be recovered later once the
	// template arrives.
	raw []byte

	session *Session
	length  uint16
}

func NewSubTemplateList() DataType {
	return &SubTemplateList{semantic: SemanticUndefined, length: VariableLength}
}

// SubTemplateListOf builds a subTemplateList for export; records must be
// built under the template the receiver announces as templateId.
func SubTemplateListOf(templateId uint16, sem ListSemantic, records ...*DataRecord) *SubTemplateList {
	return &SubTemplateList{
		semantic:   sem,
		templateId: templateId,
		records:    records,
		length:     VariableLength,
	}
}

func (t *SubTemplateList) bind(s *Session) {
	t.session = s
}

func (t *SubTemplateList) Semantic() ListSemantic {
	return t.semantic
}

func (t *SubTemplateList) SetSemantic(s ListSemantic) *SubTemplateList {
	t.semantic = s
	return t
}

func (t *SubTemplateList) TemplateId() uint16 {
	return t.templateId
}

func (t *SubTemplateList) Records() []*DataRecord {
	return t.records
}

func (t *SubTemplateList) String() string {
	return fmt.Sprintf("subTemplateList(%d)[%d records]", t.templateId, len(t.records))
}

func (*SubTemplateList) Type() string {
	return "subTemplateList"
}

func (t *SubTemplateList) Value() interface{} {
	return t.records
}

func (t *SubTemplateList) SetValue(v any) DataType {
	records, ok := v.([]*DataRecord)
	if !ok {
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.records))
	}
	t.records = records
	return t
}

func (t *SubTemplateList) Length() uint16 {
	n := 3
	for _, r := range t.records {
		n += r.wireLength()
	}
	n += len(t.raw)
	return uint16(n)
}

func (*SubTemplateList) DefaultLength() uint16 {
	return VariableLength
}

func (t *SubTemplateList) SetLength(length uint16) DataType {
	t.length = length
	return t
}

func (*SubTemplateList) IsReducedLength() bool {
	return false
}

func (t *SubTemplateList) Clone() DataType {
	records := make([]*DataRecord, len(t.records))
	copy(records, t.records)
	return &SubTemplateList{
		semantic:   t.semantic,
		templateId: t.templateId,
		records:    records,
		raw:        t.raw,
		session:    t.session,
		length:     t.length,
	}
}

// Decode parses the list content: semantic, template id, then records until
// b is exhausted. Record decoding honors the session's template pairing the
// same way top-level data sets do. Content under an unknown template id is
// retained raw rather than failing the enclosing record.
func (t *SubTemplateList) Decode(b []byte) error {
	if len(b) < 3 {
		return fmt.Errorf("short subTemplateList header: %w", ErrIllegalDataTypeEncoding)
	}
	t.semantic = ListSemantic(b[0])
	t.templateId = binary.BigEndian.Uint16(b[1:3])
	t.records = t.records[:0]
	t.raw = nil
	if t.session == nil {
		return fmt.Errorf("subTemplateList decoded outside a session: %w", ErrIllegalDataTypeEncoding)
	}
	content := b[3:]

	pair, err := t.session.ResolvePair(t.templateId)
	if err != nil {
		getLogger().V(1).Info("subTemplateList with unknown template, keeping raw content",
			"templateId", t.templateId)
		t.raw = content
		return nil
	}
	if pair.decodeDisabled() {
		return nil
	}
	offset := 0
	for offset < len(content) {
		record, n, err := decodeRecord(t.session, pair.External, content[offset:])
		if err != nil {
			return err
		}
		record.templateId = t.templateId
		if pair.Internal != pair.External {
			record = projectRecord(pair.Internal, record)
		}
		t.records = append(t.records, record)
		offset += n
	}
	return nil
}

func (t *SubTemplateList) Encode(w io.Writer) (int, error) {
	var buf bytes.Buffer
	buf.WriteByte(uint8(t.semantic))
	var id [2]byte
	binary.BigEndian.PutUint16(id[:], t.templateId)
	buf.Write(id[:])
	for _, r := range t.records {
		if _, err := encodeRecord(&buf, r); err != nil {
			return 0, err
		}
	}
	buf.Write(t.raw)
	return w.Write(buf.Bytes())
}

func (t *SubTemplateList) MarshalJSON() ([]byte, error) {
	records := make([]json.Marshaler, len(t.records))
	for i, r := range t.records {
		records[i] = r
	}
	return json.Marshal(map[string]any{
		"semantic":   t.semantic.String(),
		"templateId": t.templateId,
		"records":    records,
	})
}

var _ DataTypeConstructor = NewSubTemplateList
var _ DataType = &SubTemplateList{}
var _ sessionBound = &SubTemplateList{}
