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
	"context"
)

// Exporter drives a MessageBuffer against a Transport. A write failure
// closes the transport; the next append reopens it and re-announces
// templates, since a reconnect starts a fresh transport session.
type Exporter struct {
	session   *Session
	transport Transport
	buffer    *MessageBuffer

	ctx    context.Context
	odid   uint32
	opts   []MessageBufferOption
	active bool
}

func NewExporter(session *Session, transport Transport, opts ...MessageBufferOption) *Exporter {
	return &Exporter{
		session:   session,
		transport: transport,
		opts:      opts,
	}
}

func (e *Exporter) Session() *Session {
	return e.session
}

// Start opens the transport and begins an export stream for the
// observation domain.
func (e *Exporter) Start(ctx context.Context, odid uint32) error {
	e.ctx = ctx
	e.odid = odid
	return e.restart()
}

func (e *Exporter) restart() error {
	if err := e.transport.Open(e.ctx); err != nil {
		return err
	}
	e.buffer = NewMessageBuffer(e.session, e.opts...)
	if err := e.buffer.StartExport(e.odid, e); err != nil {
		return err
	}
	e.active = true
	return nil
}

// Write hands a completed message to the transport. On failure the
// transport is closed and the exporter deactivated; the error propagates to
// the caller of Append or Flush.
func (e *Exporter) Write(b []byte) (int, error) {
	n, err := e.transport.Write(b)
	if err != nil {
		getLogger().Error(err, "export write failed, closing transport")
		e.transport.Close()
		e.active = false
	}
	return n, err
}

// Append adds a record under the internal template id, transparently
// reconnecting a failed transport first.
func (e *Exporter) Append(tid uint16, rec *DataRecord) error {
	if !e.active {
		if err := e.restart(); err != nil {
			return err
		}
	}
	return e.buffer.Append(tid, rec)
}

// Flush emits the message under assembly, if any.
func (e *Exporter) Flush() error {
	if !e.active {
		return nil
	}
	return e.buffer.Flush()
}

// Close flushes pending data and closes the transport.
func (e *Exporter) Close() error {
	flushErr := e.Flush()
	closeErr := e.transport.Close()
	e.active = false
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
