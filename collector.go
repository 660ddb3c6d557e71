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
	"errors"
)

// RecordHandler consumes decoded data records. Returning an error stops
// collection. Records alias the message buffer they were decoded from;
// handlers that retain octetArray or string values across calls must copy.
type RecordHandler func(ctx context.Context, record *DataRecord) error

// CollectStream decodes messages from a framed stream source until the
// stream ends or ctx is canceled. next is called once per message and
// usually wraps ReadMessage on a connection; CollectStream handles the
// decode loop and end conditions.
func CollectStream(ctx context.Context, session *Session, next func() ([]byte, error), handle RecordHandler) error {
	buf := NewMessageBuffer(session)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := next()
		if errors.Is(err, ErrEndOfStream) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := buf.StartMessage(msg); err != nil {
			return err
		}
		for {
			record, err := buf.Next()
			if errors.Is(err, ErrEndOfMessage) {
				break
			}
			if err != nil {
				return err
			}
			if err := handle(ctx, record); err != nil {
				return err
			}
		}
	}
}

// CollectMessage decodes a single standalone message, e.g. one UDP
// datagram, invoking handle per record. Malformed records abort the rest of
// the message but the session keeps any templates already learned.
func CollectMessage(ctx context.Context, buf *MessageBuffer, msg []byte, handle RecordHandler) error {
	if err := buf.StartMessage(msg); err != nil {
		return err
	}
	for {
		record, err := buf.Next()
		if errors.Is(err, ErrEndOfMessage) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := handle(ctx, record); err != nil {
			return err
		}
	}
}
