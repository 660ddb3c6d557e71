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
	"errors"
	"fmt"
)

var (
	// ErrUnknownVersion is returned when a message header does not carry
	// version 10.
	ErrUnknownVersion = errors.New("unknown protocol version")

	// ErrMalformedMessage is returned when lengths in a message, set, or
	// record contradict the amount of data actually present.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrTemplateNotFound is returned when a template id has no definition
	// in the queried session table.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrDanglingTemplatePair is returned by ResolvePair when a pairing
	// points at an internal template id that was never added.
	ErrDanglingTemplatePair = errors.New("template pair references unknown internal template")

	// ErrTemplateActive is returned when a builder is modified after the
	// template has been activated.
	ErrTemplateActive = errors.New("template is already active")

	// ErrEndOfMessage signals that all records of the current message have
	// been read. It is a condition, not a failure.
	ErrEndOfMessage = errors.New("end of message")

	// ErrEndOfSet signals that the current set is exhausted; the caller may
	// continue with the next set of the same message.
	ErrEndOfSet = errors.New("end of set")

	// ErrEndOfStream signals that the underlying transport reached a clean
	// end of input.
	ErrEndOfStream = errors.New("end of stream")

	// ErrIllegalDataTypeEncoding is returned when a value cannot be decoded
	// or encoded under its element's abstract data type rules.
	ErrIllegalDataTypeEncoding = errors.New("illegal data type encoding")

	// ErrElementNotFound is returned when an information element lookup by
	// name or (enterprise, id) misses.
	ErrElementNotFound = errors.New("information element not found")
)

func templateNotFound(id uint16) error {
	return fmt.Errorf("no template for id %d: %w", id, ErrTemplateNotFound)
}

func elementNotFound(pen uint32, id uint16) error {
	return fmt.Errorf("no element for (%d/%d): %w", pen, id, ErrElementNotFound)
}

func elementNotFoundByName(name string) error {
	return fmt.Errorf("no element named %q: %w", name, ErrElementNotFound)
}

// BufferSizeError reports that an export buffer is too small to hold the
// pending record; Required is the number of octets that would have sufficed.
type BufferSizeError struct {
	Required int
}

func (e *BufferSizeError) Error() string {
	return fmt.Sprintf("buffer too small, %d octets required", e.Required)
}

// LengthError reports an information element length that violates the
// element's abstract data type.
type LengthError struct {
	Name   string
	Length uint16
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("illegal length %d for information element %s", e.Length, e.Name)
}

// TransportError wraps errors surfaced by a Transport so callers can
// distinguish I/O failures from protocol end conditions.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
