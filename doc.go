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

// Package ipfix implements the IPFIX wire protocol (RFC 7011) with support
// for structured data types (RFC 6313), bidirectional flow elements
// (RFC 5103), and information-element discovery via options records
// (RFC 5610).
//
// The package is organized around four cooperating pieces:
//
//   - InfoModel: the registry of information elements, keyed by
//     (enterprise number, element id) and by name, including length
//     validation for reduced-length encodings.
//   - Template and TemplateBuilder: ordered, immutable field lists that
//     describe the wire layout of records; built field by field, then
//     activated.
//   - Session: per-endpoint bookkeeping of internal and external template
//     ids, template pairing, per-observation-domain sequence counters, and
//     the new-template callback.
//   - MessageBuffer: the per-message transcoder that parses and builds
//     message headers and sets, registers templates learned from the wire,
//     and copies data records field by field between wire bytes and decoded
//     values.
//
// A collecting process on a stream transport looks like:
//
//	model := ipfix.NewInfoModel()
//	session := ipfix.NewSession(model)
//	buf := ipfix.NewMessageBuffer(session)
//	for {
//		msg, err := readMessage(conn) // whole IPFIX message
//		...
//		if err := buf.StartMessage(msg); err != nil { ... }
//		for {
//			record, err := buf.Next()
//			if errors.Is(err, ipfix.ErrEndOfMessage) {
//				break
//			}
//			...
//		}
//	}
//
// For UDP, where RFC 7011 scopes templates to the exporting peer, wrap the
// session in a PeerTable and resolve a per-peer session from the packet's
// source address and observation domain before decoding.
//
// Values decoded from variable-length fields alias the message buffer
// passed to StartMessage and are only valid until the next StartMessage
// call; callers that need them longer must copy.
package ipfix
