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
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMessage(t *testing.T) {
	t.Run("clean end of stream", func(t *testing.T) {
		_, err := ReadMessage(bytes.NewReader(nil))
		assert.ErrorIs(t, err, ErrEndOfStream)
	})

	t.Run("truncated header", func(t *testing.T) {
		_, err := ReadMessage(bytes.NewReader([]byte{0x00, 0x0A, 0x00, 0x10, 0xFF}))
		assert.ErrorIs(t, err, ErrMalformedMessage)
	})

	t.Run("length shorter than header", func(t *testing.T) {
		msg := buildMessage(1, 0)
		msg[2], msg[3] = 0x00, 0x08
		_, err := ReadMessage(bytes.NewReader(msg))
		assert.ErrorIs(t, err, ErrMalformedMessage)
	})

	t.Run("truncated body", func(t *testing.T) {
		msg := buildMessage(1, 0, buildSet(999, []byte{1, 2, 3, 4}))
		_, err := ReadMessage(bytes.NewReader(msg[:len(msg)-2]))
		assert.ErrorIs(t, err, ErrMalformedMessage)
	})

	t.Run("frames back-to-back messages", func(t *testing.T) {
		first := buildMessage(1, 0, buildSet(999, []byte{1, 2, 3, 4}))
		second := buildMessage(1, 1)
		r := bytes.NewReader(append(append([]byte(nil), first...), second...))

		got, err := ReadMessage(r)
		require.NoError(t, err)
		assert.Equal(t, first, got)

		got, err = ReadMessage(r)
		require.NoError(t, err)
		assert.Equal(t, second, got)

		_, err = ReadMessage(r)
		assert.ErrorIs(t, err, ErrEndOfStream)
	})
}

func TestTransportWriteBeforeOpen(t *testing.T) {
	var terr *TransportError

	_, err := (&TCPTransport{Addr: "192.0.2.1:4739"}).Write([]byte{0})
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, terr.Err, net.ErrClosed)

	_, err = (&UDPTransport{Addr: "192.0.2.1:4739"}).Write([]byte{0})
	assert.ErrorAs(t, err, &terr)
}

// fakeTransport counts lifecycle calls and can be told to fail writes.
type fakeTransport struct {
	opens, closes int
	failWrites    bool
	writes        [][]byte
}

func (f *fakeTransport) Open(ctx context.Context) error {
	f.opens++
	return nil
}

func (f *fakeTransport) Close() error {
	f.closes++
	return nil
}

func (f *fakeTransport) Write(b []byte) (int, error) {
	if f.failWrites {
		return 0, errors.New("wire cut")
	}
	f.writes = append(f.writes, append([]byte(nil), b...))
	return len(b), nil
}

func TestExporterReconnect(t *testing.T) {
	model := NewInfoModel()
	session := NewSession(model)
	tpl := testTemplate(t, model, "sourceTransportPort", "octetDeltaCount")
	require.NoError(t, session.AddInternalTemplate(300, tpl))

	record := func(port uint16) *DataRecord {
		rec := NewDataRecord(tpl)
		require.NoError(t, rec.Set("sourceTransportPort", port))
		require.NoError(t, rec.Set("octetDeltaCount", uint64(1)))
		return rec
	}

	transport := &fakeTransport{}
	exporter := NewExporter(session, transport, WithClock(testClock))
	require.NoError(t, exporter.Start(context.Background(), 1))
	assert.Equal(t, 1, transport.opens)

	require.NoError(t, exporter.Append(300, record(80)))
	require.NoError(t, exporter.Flush())
	require.Equal(t, 1, len(transport.writes))

	// the wire goes away mid-session
	transport.failWrites = true
	require.NoError(t, exporter.Append(300, record(81)))
	assert.Error(t, exporter.Flush())
	assert.Equal(t, 1, transport.closes)

	// the next append reopens the transport and a fresh message buffer
	transport.failWrites = false
	require.NoError(t, exporter.Append(300, record(82)))
	require.NoError(t, exporter.Flush())
	assert.Equal(t, 2, transport.opens)
	require.Equal(t, 2, len(transport.writes))

	// the reconnect message re-announces templates, so a collector that
	// saw nothing before the failure still decodes it
	got := collectRecords(t, NewSession(NewInfoModel()), transport.writes[1])
	require.Equal(t, 1, len(got))
	port, ok := got[0].Lookup("sourceTransportPort")
	require.True(t, ok)
	assert.Equal(t, uint16(82), port.Value())

	require.NoError(t, exporter.Close())
	assert.Equal(t, 2, transport.closes)
}
