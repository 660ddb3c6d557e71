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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarlenBoundaries(t *testing.T) {
	for _, length := range []int{0, 1, 254, 255, 256, 65534} {
		var buf bytes.Buffer
		n, err := encodeVarlen(&buf, length)
		require.NoError(t, err)
		if length < 255 {
			assert.Equal(t, 1, n, "length %d uses the short form", length)
		} else {
			assert.Equal(t, 3, n, "length %d uses the long form", length)
		}

		got, prefix, err := decodeVarlen(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, length, got)
		assert.Equal(t, n, prefix)
	}
}

func TestVarlenDecodeShortInput(t *testing.T) {
	_, _, err := decodeVarlen(nil)
	assert.ErrorIs(t, err, ErrMalformedMessage)

	// long form announced but truncated
	_, _, err = decodeVarlen([]byte{0xFF, 0x01})
	assert.ErrorIs(t, err, ErrMalformedMessage)
}

func TestRecordRoundTrip(t *testing.T) {
	model := NewInfoModel()
	session := NewSession(model)

	tpl, err := NewTemplateBuilder(model).
		Append("sourceIPv4Address").
		AppendWithLength("octetDeltaCount", 4).
		AppendWithLength("interfaceName", VariableLength).
		Complete()
	require.NoError(t, err)

	rec := NewDataRecord(tpl)
	require.NoError(t, rec.Set("sourceIPv4Address", "192.0.2.7"))
	require.NoError(t, rec.Set("octetDeltaCount", uint64(1234)))
	require.NoError(t, rec.Set("interfaceName", "eth0"))

	var buf bytes.Buffer
	n, err := encodeRecord(&buf, rec)
	require.NoError(t, err)
	assert.Equal(t, rec.wireLength(), n)
	// 4 (address) + 4 (reduced counter) + 1 (varlen prefix) + 4 (name)
	assert.Equal(t, 13, n)

	got, consumed, err := decodeRecord(session, tpl, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, n, consumed)

	counter, ok := got.Lookup("octetDeltaCount")
	require.True(t, ok)
	assert.Equal(t, uint64(1234), counter.Value())

	name, ok := got.Lookup("interfaceName")
	require.True(t, ok)
	assert.Equal(t, "eth0", name.Value())
}

func TestProjectRecord(t *testing.T) {
	model := NewInfoModel()
	session := NewSession(model)

	wireTpl, err := NewTemplateBuilder(model).
		Append("sourceTransportPort").
		AppendWithLength("octetDeltaCount", 4).
		Append("destinationTransportPort").
		Complete()
	require.NoError(t, err)

	// internal template reorders, narrows to two fields, and adds one the
	// wire never carries
	internal, err := NewTemplateBuilder(model).
		Append("octetDeltaCount").
		Append("sourceTransportPort").
		Append("packetDeltaCount").
		Complete()
	require.NoError(t, err)

	rec := NewDataRecord(wireTpl)
	require.NoError(t, rec.Set("sourceTransportPort", uint16(443)))
	require.NoError(t, rec.Set("octetDeltaCount", uint64(99)))
	require.NoError(t, rec.Set("destinationTransportPort", uint16(55555)))

	var buf bytes.Buffer
	_, err = encodeRecord(&buf, rec)
	require.NoError(t, err)
	wire, _, err := decodeRecord(session, wireTpl, buf.Bytes())
	require.NoError(t, err)

	got := projectRecord(internal, wire)
	require.Equal(t, 3, len(got.Fields()))

	// reduced-length wire value lands in a canonical-width field
	assert.Equal(t, uint64(99), got.Field(0).Value())
	assert.Equal(t, uint16(443), got.Field(1).Value())
	// missing on the wire: stays zero
	assert.Equal(t, uint64(0), got.Field(2).Value())
}
