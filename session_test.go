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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplate(t *testing.T, model *InfoModel, names ...string) *Template {
	t.Helper()
	b := NewTemplateBuilder(model)
	for _, name := range names {
		b.Append(name)
	}
	tpl, err := b.Complete()
	require.NoError(t, err)
	return tpl
}

func TestResolvePair(t *testing.T) {
	model := NewInfoModel()
	ext := testTemplate(t, model, "sourceTransportPort", "octetDeltaCount")
	internal := testTemplate(t, model, "octetDeltaCount")

	t.Run("unknown external id", func(t *testing.T) {
		s := NewSession(model)
		_, err := s.ResolvePair(256)
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("pairing disabled decodes as is", func(t *testing.T) {
		s := NewSession(model)
		require.NoError(t, s.AddExternalTemplate(256, ext))
		pair, err := s.ResolvePair(256)
		require.NoError(t, err)
		assert.Same(t, ext, pair.External)
		assert.Same(t, ext, pair.Internal)
		assert.Equal(t, uint16(256), pair.InternalId)
	})

	t.Run("pairing enabled skips unpaired ids", func(t *testing.T) {
		s := NewSession(model)
		require.NoError(t, s.AddExternalTemplate(256, ext))
		require.NoError(t, s.AddExternalTemplate(257, ext))
		require.NoError(t, s.AddInternalTemplate(300, internal))
		s.SetTemplatePair(257, 300)

		pair, err := s.ResolvePair(256)
		require.NoError(t, err)
		assert.True(t, pair.decodeDisabled())
	})

	t.Run("pair to zero disables decoding", func(t *testing.T) {
		s := NewSession(model)
		require.NoError(t, s.AddExternalTemplate(256, ext))
		s.SetTemplatePair(256, 0)
		pair, err := s.ResolvePair(256)
		require.NoError(t, err)
		assert.True(t, pair.decodeDisabled())
	})

	t.Run("self-pair falls back to the external template", func(t *testing.T) {
		s := NewSession(model)
		require.NoError(t, s.AddExternalTemplate(256, ext))
		s.SetTemplatePair(256, 256)
		pair, err := s.ResolvePair(256)
		require.NoError(t, err)
		assert.Same(t, ext, pair.External)
		assert.Same(t, ext, pair.Internal)
		assert.Equal(t, uint16(256), pair.InternalId)
	})

	t.Run("self-pair prefers a registered internal template", func(t *testing.T) {
		s := NewSession(model)
		require.NoError(t, s.AddExternalTemplate(256, ext))
		require.NoError(t, s.AddInternalTemplate(256, internal))
		s.SetTemplatePair(256, 256)
		pair, err := s.ResolvePair(256)
		require.NoError(t, err)
		assert.Same(t, internal, pair.Internal)
	})

	t.Run("dangling pair", func(t *testing.T) {
		s := NewSession(model)
		require.NoError(t, s.AddExternalTemplate(256, ext))
		s.SetTemplatePair(256, 300)
		_, err := s.ResolvePair(256)
		assert.ErrorIs(t, err, ErrDanglingTemplatePair)
	})

	t.Run("pair resolves to internal template", func(t *testing.T) {
		s := NewSession(model)
		require.NoError(t, s.AddExternalTemplate(256, ext))
		require.NoError(t, s.AddInternalTemplate(300, internal))
		s.SetTemplatePair(256, 300)
		pair, err := s.ResolvePair(256)
		require.NoError(t, err)
		assert.Same(t, ext, pair.External)
		assert.Same(t, internal, pair.Internal)
		assert.Equal(t, uint16(300), pair.InternalId)
	})

	t.Run("clearing pairs restores decode-everything", func(t *testing.T) {
		s := NewSession(model)
		require.NoError(t, s.AddExternalTemplate(256, ext))
		s.SetTemplatePair(256, 0)
		s.ClearTemplatePairs()
		pair, err := s.ResolvePair(256)
		require.NoError(t, err)
		assert.Same(t, ext, pair.Internal)
	})
}

func TestNewTemplateCallback(t *testing.T) {
	model := NewInfoModel()
	tpl := testTemplate(t, model, "octetDeltaCount")

	s := NewSession(model)
	var seen []uint16
	destroyed := 0
	s.SetNewTemplateCallback(func(s *Session, id uint16, tpl *Template, appCtx any) (any, TemplateContextDestructor) {
		seen = append(seen, id)
		assert.Equal(t, "app", appCtx)
		return int(id), func(ctx any) { destroyed++ }
	}, "app")

	require.NoError(t, s.AddExternalTemplate(256, tpl))
	require.NoError(t, s.AddExternalTemplate(257, tpl))
	assert.Equal(t, []uint16{256, 257}, seen)

	pair, err := s.ResolvePair(256)
	require.NoError(t, err)
	assert.Equal(t, 256, pair.Context)

	t.Run("withdrawal runs destructor", func(t *testing.T) {
		s.RemoveExternalTemplate(256)
		assert.Equal(t, 1, destroyed)
	})

	t.Run("replacement runs destructor", func(t *testing.T) {
		require.NoError(t, s.AddExternalTemplate(257, tpl))
		assert.Equal(t, 2, destroyed)
	})

	t.Run("close runs remaining destructors", func(t *testing.T) {
		s.Close()
		assert.Equal(t, 3, destroyed)
	})
}

func TestSessionClone(t *testing.T) {
	model := NewInfoModel()
	ext := testTemplate(t, model, "octetDeltaCount")
	internal := testTemplate(t, model, "octetDeltaCount")

	base := NewSession(model)
	require.NoError(t, base.AddInternalTemplate(300, internal))
	base.SetTemplatePair(256, 300)

	clone := base.Clone()

	// internal state carried over
	got, err := clone.GetInternalTemplate(300)
	require.NoError(t, err)
	assert.Same(t, internal, got)

	// external state is per clone
	require.NoError(t, clone.AddExternalTemplate(256, ext))
	_, err = base.GetExternalTemplate(256)
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	pair, err := clone.ResolvePair(256)
	require.NoError(t, err)
	assert.Same(t, internal, pair.Internal)
}
