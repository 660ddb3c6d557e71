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
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsigned64ReducedLength(t *testing.T) {
	t.Run("decode zero-extends", func(t *testing.T) {
		v := NewUnsigned64().SetLength(4)
		require.NoError(t, v.Decode([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
		assert.Equal(t, uint64(0xDEADBEEF), v.Value())
	})
	t.Run("encode emits low-order octets", func(t *testing.T) {
		v := NewUnsigned64().SetLength(4).SetValue(uint64(0xDEADBEEF))
		var buf bytes.Buffer
		n, err := v.Encode(&buf)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, buf.Bytes())
	})
	t.Run("full width", func(t *testing.T) {
		v := NewUnsigned64()
		require.NoError(t, v.Decode([]byte{0, 0, 0, 0, 0xDE, 0xAD, 0xBE, 0xEF}))
		assert.Equal(t, uint64(0xDEADBEEF), v.Value())
		assert.False(t, v.IsReducedLength())
	})
	t.Run("length mismatch fails", func(t *testing.T) {
		v := NewUnsigned64()
		assert.ErrorIs(t, v.Decode([]byte{1, 2, 3}), ErrIllegalDataTypeEncoding)
	})
}

func TestSignedReducedLengthSignExtends(t *testing.T) {
	t.Run("signed32 at 2 octets", func(t *testing.T) {
		v := NewSigned32().SetLength(2)
		require.NoError(t, v.Decode([]byte{0xFF, 0xFE}))
		assert.Equal(t, int32(-2), v.Value())
	})
	t.Run("signed64 at 3 octets", func(t *testing.T) {
		v := NewSigned64().SetLength(3)
		require.NoError(t, v.Decode([]byte{0x80, 0x00, 0x01}))
		assert.Equal(t, int64(-0x7FFFFF), v.Value())
	})
	t.Run("positive stays positive", func(t *testing.T) {
		v := NewSigned16().SetLength(1)
		require.NoError(t, v.Decode([]byte{0x7F}))
		assert.Equal(t, int16(127), v.Value())
	})
	t.Run("round trip", func(t *testing.T) {
		v := NewSigned32().SetLength(2).SetValue(int32(-12345))
		var buf bytes.Buffer
		_, err := v.Encode(&buf)
		require.NoError(t, err)
		w := NewSigned32().SetLength(2)
		require.NoError(t, w.Decode(buf.Bytes()))
		assert.Equal(t, int32(-12345), w.Value())
	})
}

func TestFloat64ReducedLength(t *testing.T) {
	v := NewFloat64().SetLength(4).SetValue(1.5)
	var buf bytes.Buffer
	n, err := v.Encode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	w := NewFloat64().SetLength(4)
	require.NoError(t, w.Decode(buf.Bytes()))
	assert.Equal(t, 1.5, w.Value())
}

func TestBooleanTruthValue(t *testing.T) {
	for _, tc := range []struct {
		in   byte
		want bool
	}{
		{1, true},
		{2, false},
	} {
		v := NewBoolean()
		require.NoError(t, v.Decode([]byte{tc.in}))
		assert.Equal(t, tc.want, v.Value())
	}

	v := NewBoolean()
	assert.ErrorIs(t, v.Decode([]byte{3}), ErrIllegalDataTypeEncoding)
}

func TestAddressRoundTrips(t *testing.T) {
	t.Run("ipv4", func(t *testing.T) {
		v := NewIPv4Address().SetValue(netip.MustParseAddr("192.0.2.1"))
		var buf bytes.Buffer
		_, err := v.Encode(&buf)
		require.NoError(t, err)
		w := NewIPv4Address()
		require.NoError(t, w.Decode(buf.Bytes()))
		assert.Equal(t, netip.MustParseAddr("192.0.2.1"), w.Value())
	})
	t.Run("ipv6", func(t *testing.T) {
		v := NewIPv6Address().SetValue(netip.MustParseAddr("2001:db8::1"))
		var buf bytes.Buffer
		_, err := v.Encode(&buf)
		require.NoError(t, err)
		w := NewIPv6Address()
		require.NoError(t, w.Decode(buf.Bytes()))
		assert.Equal(t, netip.MustParseAddr("2001:db8::1"), w.Value())
	})
	t.Run("mac", func(t *testing.T) {
		v := NewMacAddress().SetValue("02:00:5e:10:00:01")
		var buf bytes.Buffer
		_, err := v.Encode(&buf)
		require.NoError(t, err)
		w := NewMacAddress()
		require.NoError(t, w.Decode(buf.Bytes()))
		assert.Equal(t, "02:00:5e:10:00:01", w.String())
	})
}

func TestDateTimeRoundTrips(t *testing.T) {
	t.Run("seconds", func(t *testing.T) {
		at := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
		v := NewDateTimeSeconds().SetValue(at)
		var buf bytes.Buffer
		_, err := v.Encode(&buf)
		require.NoError(t, err)
		w := NewDateTimeSeconds()
		require.NoError(t, w.Decode(buf.Bytes()))
		assert.Equal(t, at, w.Value())
	})
	t.Run("milliseconds", func(t *testing.T) {
		at := time.Date(2025, time.March, 1, 12, 0, 0, 250_000_000, time.UTC)
		v := NewDateTimeMilliseconds().SetValue(at)
		var buf bytes.Buffer
		_, err := v.Encode(&buf)
		require.NoError(t, err)
		w := NewDateTimeMilliseconds()
		require.NoError(t, w.Decode(buf.Bytes()))
		assert.Equal(t, at, w.Value())
	})
	t.Run("microseconds keep precision within half a microsecond", func(t *testing.T) {
		at := time.Date(2025, time.March, 1, 12, 0, 0, 123_456_000, time.UTC)
		v := NewDateTimeMicroseconds().SetValue(at)
		var buf bytes.Buffer
		_, err := v.Encode(&buf)
		require.NoError(t, err)
		w := NewDateTimeMicroseconds()
		require.NoError(t, w.Decode(buf.Bytes()))
		got := w.Value().(time.Time)
		assert.Less(t, got.Sub(at).Abs(), time.Microsecond)
	})
	t.Run("nanoseconds keep sub-microsecond fraction", func(t *testing.T) {
		at := time.Date(2025, time.March, 1, 12, 0, 0, 123_456_789, time.UTC)
		v := NewDateTimeNanoseconds().SetValue(at)
		var buf bytes.Buffer
		_, err := v.Encode(&buf)
		require.NoError(t, err)
		w := NewDateTimeNanoseconds()
		require.NoError(t, w.Decode(buf.Bytes()))
		got := w.Value().(time.Time)
		assert.Less(t, got.Sub(at).Abs(), 10*time.Nanosecond)
	})
}

func TestStringDecodeCopies(t *testing.T) {
	b := []byte("hello")
	v := NewString()
	require.NoError(t, v.Decode(b))
	b[0] = 'x'
	assert.Equal(t, "hello", v.Value())
}

func TestOctetArrayDecodeAliases(t *testing.T) {
	b := []byte{1, 2, 3}
	v := NewOctetArray()
	require.NoError(t, v.Decode(b))
	b[0] = 9
	assert.Equal(t, []byte{9, 2, 3}, v.Value())
}

func TestDataTypeFromNumber(t *testing.T) {
	for id, want := range map[uint8]string{
		0:  "octetArray",
		4:  "unsigned64",
		11: "boolean",
		13: "string",
		18: "ipv4Address",
		20: "basicList",
		21: "subTemplateList",
		22: "subTemplateMultiList",
	} {
		assert.Equal(t, want, DataTypeFromNumber(id)().Type())
	}
	// unassigned ids fall back to octetArray
	assert.Equal(t, "octetArray", DataTypeFromNumber(99)().Type())
}
