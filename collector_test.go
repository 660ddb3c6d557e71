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
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectStream(t *testing.T) {
	model := NewInfoModel()
	exportSession := NewSession(model)
	tpl := testTemplate(t, model, "sourceTransportPort")
	require.NoError(t, exportSession.AddInternalTemplate(300, tpl))

	var records []*DataRecord
	for _, port := range []uint16{80, 443, 8080} {
		rec := NewDataRecord(tpl)
		require.NoError(t, rec.Set("sourceTransportPort", port))
		records = append(records, rec)
	}
	stream := exportMessages(t, exportSession, 300, records)

	t.Run("drains the stream", func(t *testing.T) {
		r := bytes.NewReader(stream)
		var ports []uint16
		err := CollectStream(context.Background(), NewSession(NewInfoModel()),
			func() ([]byte, error) { return ReadMessage(r) },
			func(ctx context.Context, record *DataRecord) error {
				f, ok := record.Lookup("sourceTransportPort")
				require.True(t, ok)
				ports = append(ports, f.Value().(uint16))
				return nil
			})
		require.NoError(t, err)
		assert.Equal(t, []uint16{80, 443, 8080}, ports)
	})

	t.Run("handler error stops collection", func(t *testing.T) {
		r := bytes.NewReader(stream)
		boom := errors.New("boom")
		seen := 0
		err := CollectStream(context.Background(), NewSession(NewInfoModel()),
			func() ([]byte, error) { return ReadMessage(r) },
			func(ctx context.Context, record *DataRecord) error {
				seen++
				return boom
			})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, seen)
	})

	t.Run("canceled context stops collection", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := CollectStream(ctx, NewSession(NewInfoModel()),
			func() ([]byte, error) { return ReadMessage(bytes.NewReader(stream)) },
			func(ctx context.Context, record *DataRecord) error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCollectMessage(t *testing.T) {
	model := NewInfoModel()
	exportSession := NewSession(model)
	tpl := testTemplate(t, model, "octetDeltaCount")
	require.NoError(t, exportSession.AddInternalTemplate(300, tpl))
	rec := NewDataRecord(tpl)
	require.NoError(t, rec.Set("octetDeltaCount", uint64(99)))
	msg := exportMessages(t, exportSession, 300, []*DataRecord{rec})

	buf := NewMessageBuffer(NewSession(NewInfoModel()))
	count := 0
	err := CollectMessage(context.Background(), buf, msg,
		func(ctx context.Context, record *DataRecord) error {
			count++
			f, ok := record.Lookup("octetDeltaCount")
			require.True(t, ok)
			assert.Equal(t, uint64(99), f.Value())
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
