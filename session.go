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
	"fmt"
	"sync"
)

// TemplateContextDestructor tears down an application context attached to a
// template when the template is withdrawn, replaced, or its session closes.
type TemplateContextDestructor func(ctx any)

// NewTemplateCallback runs whenever an external template becomes known to a
// session, either learned from the wire or added explicitly. The returned
// context is attached to the template id and handed back alongside records
// decoded under it; the destructor, if non-nil, runs when the template goes
// away.
//
// SetTemplatePair calls from inside the callback are the usual way to
// direct decoding of the new template.
type NewTemplateCallback func(s *Session, id uint16, tpl *Template, appCtx any) (any, TemplateContextDestructor)

// TemplatePair is the outcome of resolving an external template id for
// decoding. External is always the wire-side template. Internal is the
// template records are projected onto, nil when records under this id
// should be skipped.
type TemplatePair struct {
	ExternalId uint16
	InternalId uint16
	External   *Template
	Internal   *Template

	// Context is the application context attached by the new-template
	// callback, if any.
	Context any
}

// decodeDisabled reports whether records under this pair are skipped.
func (p *TemplatePair) decodeDisabled() bool {
	return p.Internal == nil
}

type templateContext struct {
	ctx        any
	destructor TemplateContextDestructor
}

type domainSequence struct {
	next  uint32
	valid bool
}

// Session tracks the template state shared by all messages of one transport
// session (RFC 7011, Section 3): external templates learned from the wire,
// internal templates registered by the application, the pairing between
// them, and per-observation-domain sequence counters. Safe for concurrent
// use.
type Session struct {
	mu sync.Mutex

	model *InfoModel

	internal map[uint16]*Template
	external map[uint16]*Template

	// pairs maps external template ids to internal ids; 0 disables decoding
	// for that external id. Pairing is inactive until the first
	// SetTemplatePair call; while inactive every external template decodes
	// as itself.
	pairs          map[uint16]uint16
	pairingEnabled bool

	contexts map[uint16]templateContext

	callback       NewTemplateCallback
	callbackAppCtx any

	sequences map[uint32]*domainSequence
}

func NewSession(model *InfoModel) *Session {
	return &Session{
		model:     model,
		internal:  make(map[uint16]*Template),
		external:  make(map[uint16]*Template),
		pairs:     make(map[uint16]uint16),
		contexts:  make(map[uint16]templateContext),
		sequences: make(map[uint32]*domainSequence),
	}
}

func (s *Session) Model() *InfoModel {
	return s.model
}

// SetNewTemplateCallback installs the callback invoked for every external
// template the session learns. appCtx is handed through to each invocation.
func (s *Session) SetNewTemplateCallback(cb NewTemplateCallback, appCtx any) {
	s.mu.Lock()
	s.callback = cb
	s.callbackAppCtx = appCtx
	s.mu.Unlock()
}

// AddInternalTemplate registers tpl under id on the internal (application)
// side of the session.
func (s *Session) AddInternalTemplate(id uint16, tpl *Template) error {
	if id < MinTemplateId {
		return fmt.Errorf("template id %d below %d: %w", id, MinTemplateId, ErrMalformedMessage)
	}
	s.mu.Lock()
	s.internal[id] = tpl
	s.mu.Unlock()
	return nil
}

// AddExternalTemplate registers tpl under id on the external (wire) side,
// replacing any previous definition, and fires the new-template callback.
func (s *Session) AddExternalTemplate(id uint16, tpl *Template) error {
	if id < MinTemplateId {
		return fmt.Errorf("template id %d below %d: %w", id, MinTemplateId, ErrMalformedMessage)
	}
	s.mu.Lock()
	s.destroyContextLocked(id)
	s.external[id] = tpl
	cb := s.callback
	appCtx := s.callbackAppCtx
	s.mu.Unlock()

	if cb != nil {
		ctx, destructor := cb(s, id, tpl, appCtx)
		s.mu.Lock()
		// the template may have been withdrawn by a concurrent message in
		// the meantime; only attach while it is still current
		if s.external[id] == tpl {
			s.contexts[id] = templateContext{ctx: ctx, destructor: destructor}
		} else if destructor != nil {
			destructor(ctx)
		}
		s.mu.Unlock()
	}
	return nil
}

// RemoveExternalTemplate withdraws the external template id, running its
// context destructor. Withdrawing an unknown id is not an error; RFC 7011
// permits withdrawals for templates the collector never saw.
func (s *Session) RemoveExternalTemplate(id uint16) {
	s.mu.Lock()
	s.destroyContextLocked(id)
	delete(s.external, id)
	s.mu.Unlock()
}

func (s *Session) destroyContextLocked(id uint16) {
	if tc, ok := s.contexts[id]; ok {
		delete(s.contexts, id)
		if tc.destructor != nil {
			tc.destructor(tc.ctx)
		}
	}
}

// GetInternalTemplate looks up an internal template by id.
func (s *Session) GetInternalTemplate(id uint16) (*Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl, ok := s.internal[id]
	if !ok {
		return nil, templateNotFound(id)
	}
	return tpl, nil
}

// GetExternalTemplate looks up an external template by id.
func (s *Session) GetExternalTemplate(id uint16) (*Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl, ok := s.external[id]
	if !ok {
		return nil, templateNotFound(id)
	}
	return tpl, nil
}

// InternalTemplates returns a snapshot of the internal template table, used
// by exporters to (re)announce templates.
func (s *Session) InternalTemplates() map[uint16]*Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uint16]*Template, len(s.internal))
	for id, tpl := range s.internal {
		out[id] = tpl
	}
	return out
}

// SetTemplatePair directs records under the external id to be decoded into
// the internal template internalId; 0 disables decoding for that external
// id. The first call enables pairing session-wide, which flips the default
// for unpaired external ids from "decode as is" to "skip".
func (s *Session) SetTemplatePair(externalId, internalId uint16) {
	s.mu.Lock()
	s.pairingEnabled = true
	s.pairs[externalId] = internalId
	s.mu.Unlock()
}

// ClearTemplatePairs removes all pairings and disables pairing, restoring
// the decode-everything default.
func (s *Session) ClearTemplatePairs() {
	s.mu.Lock()
	s.pairs = make(map[uint16]uint16)
	s.pairingEnabled = false
	s.mu.Unlock()
}

// ResolvePair decides how records under the external template id are
// decoded:
//
//   - unknown external id: ErrTemplateNotFound, the caller skips the set
//   - pairing disabled: records decode under the external template as is
//   - pairing enabled, id unpaired or paired to 0: records are skipped
//   - paired to a registered internal template: records are projected onto
//     the internal template
//   - paired to its own id with no internal template registered there: the
//     external template doubles as the internal one
//   - paired to any other internal id with no internal template:
//     ErrDanglingTemplatePair
func (s *Session) ResolvePair(externalId uint16) (*TemplatePair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ext, ok := s.external[externalId]
	if !ok {
		return nil, templateNotFound(externalId)
	}
	pair := &TemplatePair{
		ExternalId: externalId,
		External:   ext,
		Context:    s.contexts[externalId].ctx,
	}
	if !s.pairingEnabled {
		pair.InternalId = externalId
		pair.Internal = ext
		return pair, nil
	}
	internalId := s.pairs[externalId]
	if internalId == 0 {
		return pair, nil
	}
	internal, ok := s.internal[internalId]
	if !ok {
		if internalId == externalId {
			// self-pair: the external template doubles as the internal one
			pair.InternalId = externalId
			pair.Internal = ext
			return pair, nil
		}
		return nil, fmt.Errorf("external template %d paired to internal %d: %w",
			externalId, internalId, ErrDanglingTemplatePair)
	}
	pair.InternalId = internalId
	pair.Internal = internal
	return pair, nil
}

// CheckSequence verifies seq against the expected sequence number for the
// observation domain. Discontinuities are logged and counted but never
// fatal; the expected value resynchronizes to the observed one.
func (s *Session) CheckSequence(odid uint32, seq uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, ok := s.sequences[odid]
	if !ok {
		ds = &domainSequence{}
		s.sequences[odid] = ds
	}
	if !ds.valid {
		ds.next = seq
		ds.valid = true
		return
	}
	if ds.next != seq {
		sequenceGaps.Inc()
		getLogger().Info("sequence discontinuity",
			"odid", odid, "expected", ds.next, "got", seq, "delta", int64(seq)-int64(ds.next))
		ds.next = seq
	}
}

// AdvanceSequence accounts n decoded or exported data records against the
// observation domain's sequence counter.
func (s *Session) AdvanceSequence(odid uint32, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, ok := s.sequences[odid]
	if !ok {
		ds = &domainSequence{}
		s.sequences[odid] = ds
	}
	ds.valid = true
	ds.next += uint32(n)
}

// NextSequence returns the sequence number the next exported message of the
// observation domain must carry.
func (s *Session) NextSequence(odid uint32) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, ok := s.sequences[odid]
	if !ok {
		ds = &domainSequence{valid: true}
		s.sequences[odid] = ds
	}
	return ds.next
}

// Clone derives a fresh session sharing the model, internal templates,
// pairings, and callback, with empty external state. UDP peer tables clone
// a base session per peer, since RFC 7011 scopes wire templates to the
// exporting peer.
func (s *Session) Clone() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := NewSession(s.model)
	for id, tpl := range s.internal {
		c.internal[id] = tpl
	}
	for ext, int_ := range s.pairs {
		c.pairs[ext] = int_
	}
	c.pairingEnabled = s.pairingEnabled
	c.callback = s.callback
	c.callbackAppCtx = s.callbackAppCtx
	return c
}

// Close releases all external template state, running every attached
// context destructor.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.contexts {
		tc := s.contexts[id]
		if tc.destructor != nil {
			tc.destructor(tc.ctx)
		}
	}
	s.contexts = make(map[uint16]templateContext)
	s.external = make(map[uint16]*Template)
}
