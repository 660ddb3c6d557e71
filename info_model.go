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

// LengthPolicy decides what happens when a template declares a field length
// that is illegal for the element's abstract data type.
type LengthPolicy int

const (
	// LengthPolicyReject fails template interpretation with a LengthError.
	// This is the default.
	LengthPolicyReject LengthPolicy = iota

	// LengthPolicyWarn logs the violation and decodes the field as
	// octetArray.
	LengthPolicyWarn
)

// InfoModelOption configures an InfoModel at construction time.
type InfoModelOption func(*InfoModel)

// WithLengthPolicy sets how illegal field lengths in templates are handled.
func WithLengthPolicy(p LengthPolicy) InfoModelOption {
	return func(m *InfoModel) {
		m.lengthPolicy = p
	}
}

// WithoutBuiltinElements constructs an empty model without the IANA
// registry preloaded. Useful for tests and for models populated entirely
// from a YAML registry dump.
func WithoutBuiltinElements() InfoModelOption {
	return func(m *InfoModel) {
		m.skipBuiltin = true
	}
}

type elementKey struct {
	pen uint32
	id  uint16
}

// InfoModel is the registry of known information elements, addressable both
// by (enterprise number, element id) and by name. A fresh model is seeded
// with the IANA registry subset this package ships, including the derived
// reverse-direction elements of RFC 5103. Safe for concurrent use.
type InfoModel struct {
	mu sync.RWMutex

	byId   map[elementKey]InformationElement
	byName map[string]InformationElement

	lengthPolicy LengthPolicy
	skipBuiltin  bool
}

func NewInfoModel(opts ...InfoModelOption) *InfoModel {
	m := &InfoModel{
		byId:   make(map[elementKey]InformationElement),
		byName: make(map[string]InformationElement),
	}
	for _, opt := range opts {
		opt(m)
	}
	if !m.skipBuiltin {
		for _, ie := range builtinElements {
			m.add(ie)
		}
	}
	return m
}

// Add registers ie, replacing any previous element with the same
// (enterprise number, id). For reversible IANA elements the derived
// reverse-direction counterpart is registered alongside.
func (m *InfoModel) Add(ie InformationElement) error {
	if ie.Name == "" {
		return fmt.Errorf("information element (%d/%d) has no name", ie.EnterpriseId, ie.Id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.add(ie)
	return nil
}

func (m *InfoModel) add(ie InformationElement) {
	if ie.Constructor == nil {
		ie.Constructor = LookupConstructor(ie.Type)
	}
	m.byId[elementKey{ie.EnterpriseId, ie.Id}] = ie
	m.byName[ie.Name] = ie
	if rev, ok := reverseOf(ie); ok {
		m.byId[elementKey{rev.EnterpriseId, rev.Id}] = rev
		m.byName[rev.Name] = rev
	}
}

// GetById looks up an element by enterprise number and id.
func (m *InfoModel) GetById(pen uint32, id uint16) (InformationElement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ie, ok := m.byId[elementKey{pen, id}]
	if !ok {
		return InformationElement{}, elementNotFound(pen, id)
	}
	return ie, nil
}

// GetByName looks up an element by name, including derived reverse names
// and previously synthesized alien names.
func (m *InfoModel) GetByName(name string) (InformationElement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ie, ok := m.byName[name]
	if !ok {
		return InformationElement{}, elementNotFoundByName(name)
	}
	return ie, nil
}

// Len returns the number of registered elements.
func (m *InfoModel) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byId)
}

// All returns a snapshot of every registered element, in unspecified order.
func (m *InfoModel) All() []InformationElement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]InformationElement, 0, len(m.byId))
	for _, ie := range m.byId {
		out = append(out, ie)
	}
	return out
}

// resolve returns the element for (pen, id), synthesizing and registering an
// alien octetArray element when the model has no entry. Templates can
// therefore always be interpreted, even when the exporter uses elements this
// process has never heard of (the "export unknowns as octets" behavior).
func (m *InfoModel) resolve(pen uint32, id uint16) InformationElement {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ie, ok := m.byId[elementKey{pen, id}]; ok {
		return ie
	}
	alien := InformationElement{
		Id:           id,
		EnterpriseId: pen,
		Name:         fmt.Sprintf("alien_%d_%d", pen, id),
		Type:         "octetArray",
		Constructor:  NewOctetArray,
	}
	m.byId[elementKey{pen, id}] = alien
	m.byName[alien.Name] = alien
	return alien
}

// checkLength applies the model's length policy to a template field
// declaration. Under LengthPolicyWarn an illegal length demotes the element
// to octetArray so the record can still be walked; under LengthPolicyReject
// the error fails template interpretation.
func (m *InfoModel) checkLength(ie InformationElement, length uint16) (InformationElement, error) {
	if ie.ValidLength(length) {
		return ie, nil
	}
	if m.lengthPolicy == LengthPolicyReject {
		return ie, &LengthError{Name: ie.Name, Length: length}
	}
	getLogger().Info("illegal field length, decoding as octetArray",
		"element", ie.Name, "pen", ie.EnterpriseId, "id", ie.Id, "length", length)
	demoted := ie.Clone()
	demoted.Type = "octetArray"
	demoted.Constructor = NewOctetArray
	return demoted, nil
}
