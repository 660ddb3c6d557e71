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
	"errors"
	"fmt"
	"io"
	"time"
)

type bufferState int

const (
	bufferEmpty bufferState = iota
	bufferCollecting
	bufferExporting
)

// MessageBufferOption configures a MessageBuffer at construction time.
type MessageBufferOption func(*MessageBuffer)

// WithMTU caps the size of exported messages. Messages are flushed before
// they would exceed the cap.
func WithMTU(mtu int) MessageBufferOption {
	return func(b *MessageBuffer) {
		b.mtu = mtu
	}
}

// WithRetransmissionPolicy controls how often exported messages re-announce
// the session's internal templates: 0 announces once per export stream, 1 in
// every message, k > 1 in every k-th message. UDP exporters need periodic
// re-announcement since RFC 7011 gives wire templates no reliability there.
func WithRetransmissionPolicy(n int) MessageBufferOption {
	return func(b *MessageBuffer) {
		b.retransmit = n
	}
}

// WithClock overrides the export time source.
func WithClock(now func() time.Time) MessageBufferOption {
	return func(b *MessageBuffer) {
		b.now = now
	}
}

// MessageBuffer transcodes one IPFIX message at a time against a session:
// on the collecting side StartMessage and Next walk a received message
// record by record, learning templates on the way; on the exporting side
// StartExport, Append, and Flush assemble messages under an MTU cap.
//
// A MessageBuffer is not safe for concurrent use; wire one buffer per
// goroutine and share the session.
type MessageBuffer struct {
	session *Session

	state bufferState

	// collecting
	data      []byte
	header    MessageHeader
	offset    int
	setEnd    int
	pair      *TemplatePair
	setsInMsg int
	recsInMsg int

	// exporting
	out          io.Writer
	buf          bytes.Buffer
	odid         uint32
	mtu          int
	retransmit   int
	messageIndex int
	setStart     int
	setTid       uint16
	recsPending  int
	now          func() time.Time
}

func NewMessageBuffer(session *Session, opts ...MessageBufferOption) *MessageBuffer {
	b := &MessageBuffer{
		session: session,
		mtu:     DefaultMTU,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *MessageBuffer) Session() *Session {
	return b.session
}

// Header returns the header of the message under collection.
func (b *MessageBuffer) Header() MessageHeader {
	return b.header
}

// StartMessage begins collecting from msg, which must hold one complete
// IPFIX message. Values decoded from octetArray fields alias msg and stay
// valid only until the next StartMessage call.
func (b *MessageBuffer) StartMessage(msg []byte) error {
	header, err := decodeMessageHeader(msg)
	if err != nil {
		return err
	}
	if int(header.Length) > len(msg) {
		return fmt.Errorf("message header declares %d octets, %d present: %w",
			header.Length, len(msg), ErrMalformedMessage)
	}
	b.state = bufferCollecting
	b.header = header
	b.data = msg[:header.Length]
	b.offset = messageHeaderLength
	b.setEnd = b.offset
	b.pair = nil
	b.setsInMsg = 0
	b.recsInMsg = 0
	b.session.CheckSequence(header.ObservationDomainId, header.SequenceNumber)
	messagesDecoded.Inc()
	return nil
}

// Next returns the next data record of the current message, crossing set
// boundaries. Template sets encountered on the way are processed
// internally. Next returns ErrEndOfMessage once the message is exhausted.
func (b *MessageBuffer) Next() (*DataRecord, error) {
	for {
		record, err := b.NextInSet()
		if errors.Is(err, ErrEndOfSet) {
			continue
		}
		return record, err
	}
}

// NextInSet returns the next data record of the current set. It returns
// ErrEndOfSet when the set is exhausted (or a non-data set was processed)
// and ErrEndOfMessage when the message is.
func (b *MessageBuffer) NextInSet() (*DataRecord, error) {
	if b.state != bufferCollecting {
		return nil, ErrEndOfMessage
	}
	if b.offset >= b.setEnd {
		if err := b.nextSet(); err != nil {
			return nil, err
		}
	}
	if b.pair == nil {
		// template set, reserved set, or skipped data set
		b.offset = b.setEnd
		return nil, ErrEndOfSet
	}

	remaining := b.setEnd - b.offset
	if remaining < b.pair.External.MinWireLength() {
		// padding (RFC 7011, Section 3.3.1)
		b.offset = b.setEnd
		return nil, ErrEndOfSet
	}

	record, n, err := decodeRecord(b.session, b.pair.External, b.data[b.offset:b.setEnd])
	if err != nil {
		return nil, err
	}
	b.offset += n
	record.templateId = b.pair.ExternalId
	b.recsInMsg++
	recordsDecoded.Inc()

	if isTypeInformationRecord(record) {
		learnTypeInformation(b.session.Model(), record)
	}
	if b.pair.Internal != b.pair.External {
		record = projectRecord(b.pair.Internal, record)
	}
	return record, nil
}

// nextSet advances to the next set of the message, processing template sets
// and resolving the template pair for data sets.
func (b *MessageBuffer) nextSet() error {
	b.pair = nil
	if b.offset >= len(b.data) {
		b.state = bufferEmpty
		b.session.AdvanceSequence(b.header.ObservationDomainId, b.recsInMsg)
		return ErrEndOfMessage
	}
	header, err := decodeSetHeader(b.data[b.offset:])
	if err != nil {
		return err
	}
	setEnd := b.offset + int(header.length)
	if setEnd > len(b.data) {
		return fmt.Errorf("set length %d exceeds message: %w", header.length, ErrMalformedMessage)
	}
	content := b.data[b.offset+setHeaderLength : setEnd]
	b.offset += setHeaderLength
	b.setEnd = setEnd
	b.setsInMsg++

	switch {
	case header.id == SetIdTemplate || header.id == SetIdOptionsTemplate:
		return b.decodeTemplateSet(content, header.id == SetIdOptionsTemplate)
	case header.id < MinTemplateId:
		getLogger().Info("skipping set with reserved id", "setId", header.id)
		return nil
	}

	pair, err := b.session.ResolvePair(header.id)
	if errors.Is(err, ErrTemplateNotFound) {
		setsSkipped.Inc()
		getLogger().V(1).Info("skipping data set without template",
			"templateId", header.id, "odid", b.header.ObservationDomainId)
		return nil
	}
	if err != nil {
		return err
	}
	if pair.decodeDisabled() {
		// the peer still counted these records into its sequence number
		b.recsInMsg += countRecords(pair.External, content)
		return nil
	}
	b.pair = pair
	return nil
}

// countRecords walks the records of a data set by their declared lengths
// without decoding them, so skipped sets keep the sequence accounting in
// step with the peer. Trailing padding and malformed tails stop the count.
func countRecords(t *Template, content []byte) int {
	count := 0
	offset := 0
	for len(content)-offset >= t.MinWireLength() {
		for _, f := range t.Fields() {
			length := int(f.Length())
			if f.IsVariableLength() {
				l, prefix, err := decodeVarlen(content[offset:])
				if err != nil {
					return count
				}
				offset += prefix
				length = l
			}
			if len(content)-offset < length {
				return count
			}
			offset += length
		}
		count++
	}
	return count
}

// decodeTemplateSet registers every template record in the set with the
// session, handling withdrawals (field count zero).
func (b *MessageBuffer) decodeTemplateSet(content []byte, options bool) error {
	offset := 0
	// a template record needs at least its header; anything shorter at the
	// tail is padding
	minRecord := 4
	if options {
		minRecord = 6
	}
	for len(content)-offset >= minRecord {
		id, tpl, n, err := decodeTemplateRecord(b.session.Model(), content[offset:], options)
		if err != nil {
			return err
		}
		offset += n
		if tpl == nil {
			b.session.RemoveExternalTemplate(id)
			getLogger().V(1).Info("template withdrawn", "templateId", id)
			continue
		}
		if err := b.session.AddExternalTemplate(id, tpl); err != nil {
			return err
		}
		templatesLearned.Inc()
	}
	return nil
}

// StartExport begins assembling messages for the observation domain,
// emitting completed messages to w. Templates are announced according to
// the retransmission policy.
func (b *MessageBuffer) StartExport(odid uint32, w io.Writer) error {
	if b.state == bufferExporting && b.buf.Len() > 0 {
		if err := b.Flush(); err != nil {
			return err
		}
	}
	b.state = bufferExporting
	b.out = w
	b.odid = odid
	b.messageIndex = 0
	b.buf.Reset()
	b.setTid = 0
	b.recsPending = 0
	return nil
}

// Append adds rec as a data record under the internal template id tid,
// flushing the current message first when the record would not fit. A
// record that cannot fit even into an empty message yields a
// BufferSizeError.
func (b *MessageBuffer) Append(tid uint16, rec *DataRecord) error {
	if b.state != bufferExporting {
		return fmt.Errorf("no export in progress: %w", ErrMalformedMessage)
	}
	if _, err := b.session.GetInternalTemplate(tid); err != nil {
		return err
	}
	recordLength := rec.wireLength()
	need := recordLength
	if b.setTid != tid {
		need += setHeaderLength
	}
	if b.buf.Len() > 0 && b.buf.Len()+need > b.mtu {
		if err := b.flushMessage(); err != nil {
			return err
		}
	}
	if b.buf.Len() == 0 {
		if err := b.beginMessage(); err != nil {
			return err
		}
		need = recordLength + setHeaderLength
	}
	if b.buf.Len()+need > b.mtu {
		return &BufferSizeError{Required: b.buf.Len() + need}
	}
	if b.setTid != tid {
		b.closeSet()
		b.setStart = b.buf.Len()
		b.setTid = tid
		var hdr [setHeaderLength]byte
		b.buf.Write(hdr[:]) // patched by closeSet
	}
	if _, err := encodeRecord(&b.buf, rec); err != nil {
		return err
	}
	b.recsPending++
	return nil
}

// Flush completes and emits the message under assembly, if any.
func (b *MessageBuffer) Flush() error {
	if b.state != bufferExporting || b.buf.Len() == 0 {
		return nil
	}
	return b.flushMessage()
}

// beginMessage writes the header placeholder and, per the retransmission
// policy, the template sets announcing the session's internal templates.
func (b *MessageBuffer) beginMessage() error {
	var hdr [messageHeaderLength]byte
	b.buf.Write(hdr[:])
	b.setTid = 0
	if b.announceTemplates() {
		if err := b.writeTemplateSets(); err != nil {
			return err
		}
	}
	return nil
}

func (b *MessageBuffer) announceTemplates() bool {
	switch {
	case b.retransmit <= 0:
		return b.messageIndex == 0
	case b.retransmit == 1:
		return true
	default:
		return b.messageIndex%b.retransmit == 0
	}
}

func (b *MessageBuffer) writeTemplateSets() error {
	templates := b.session.InternalTemplates()
	for _, options := range []bool{false, true} {
		setStart := -1
		for id, tpl := range templates {
			if tpl.IsOptions() != options {
				continue
			}
			if setStart < 0 {
				setStart = b.buf.Len()
				var hdr [setHeaderLength]byte
				b.buf.Write(hdr[:])
			}
			if _, err := encodeTemplateRecord(&b.buf, id, tpl); err != nil {
				return err
			}
		}
		if setStart >= 0 {
			setId := SetIdTemplate
			if options {
				setId = SetIdOptionsTemplate
			}
			h := setHeader{id: setId, length: uint16(b.buf.Len() - setStart)}
			h.encode(b.buf.Bytes()[setStart:])
		}
	}
	return nil
}

// closeSet patches the header of the data set under assembly.
func (b *MessageBuffer) closeSet() {
	if b.setTid == 0 {
		return
	}
	h := setHeader{id: b.setTid, length: uint16(b.buf.Len() - b.setStart)}
	h.encode(b.buf.Bytes()[b.setStart:])
	b.setTid = 0
}

func (b *MessageBuffer) flushMessage() error {
	b.closeSet()
	header := MessageHeader{
		Version:             Version,
		Length:              uint16(b.buf.Len()),
		ExportTime:          b.now(),
		SequenceNumber:      b.session.NextSequence(b.odid),
		ObservationDomainId: b.odid,
	}
	header.encode(b.buf.Bytes())
	if _, err := b.out.Write(b.buf.Bytes()); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	b.session.AdvanceSequence(b.odid, b.recsPending)
	messagesExported.Inc()
	b.messageIndex++
	b.recsPending = 0
	b.buf.Reset()
	return nil
}
