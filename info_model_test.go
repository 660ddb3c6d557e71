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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoModelBuiltins(t *testing.T) {
	model := NewInfoModel()

	ie, err := model.GetByName("octetDeltaCount")
	require.NoError(t, err)
	assert.Equal(t, uint16(1), ie.Id)
	assert.Equal(t, "unsigned64", ie.Type)

	byId, err := model.GetById(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "octetDeltaCount", byId.Name)

	_, err = model.GetByName("noSuchElement")
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestReverseElements(t *testing.T) {
	model := NewInfoModel()

	t.Run("reversible builtins get reverse counterparts", func(t *testing.T) {
		rev, err := model.GetByName("reverseOctetDeltaCount")
		require.NoError(t, err)
		assert.Equal(t, uint16(1), rev.Id)
		assert.Equal(t, ReversePEN, rev.EnterpriseId)
		assert.True(t, rev.Reversed)

		byId, err := model.GetById(ReversePEN, 1)
		require.NoError(t, err)
		assert.Equal(t, "reverseOctetDeltaCount", byId.Name)
	})

	t.Run("non-reversible elements have none", func(t *testing.T) {
		_, err := model.GetByName("reverseBiflowDirection")
		assert.ErrorIs(t, err, ErrElementNotFound)
		_, err = model.GetByName("reversePaddingOctets")
		assert.ErrorIs(t, err, ErrElementNotFound)
	})

	t.Run("reverse name derivation", func(t *testing.T) {
		assert.Equal(t, "reverseOctetDeltaCount", reverseName("octetDeltaCount"))
		assert.Equal(t, "reverseTcpControlBits", reverseName("tcpControlBits"))
	})
}

func TestAlienElementSynthesis(t *testing.T) {
	model := NewInfoModel()

	ie := model.resolve(4242, 100)
	assert.Equal(t, "alien_4242_100", ie.Name)
	assert.Equal(t, "octetArray", ie.Type)

	// synthesized once, then stable
	again, err := model.GetByName("alien_4242_100")
	require.NoError(t, err)
	assert.Equal(t, ie.Id, again.Id)
}

func TestValidLength(t *testing.T) {
	model := NewInfoModel()
	u64, err := model.GetByName("octetDeltaCount")
	require.NoError(t, err)
	addr, err := model.GetByName("sourceIPv4Address")
	require.NoError(t, err)
	str, err := model.GetByName("interfaceName")
	require.NoError(t, err)

	for _, l := range []uint16{1, 4, 8} {
		assert.True(t, u64.ValidLength(l), "unsigned64 at %d", l)
	}
	assert.False(t, u64.ValidLength(9))
	assert.False(t, u64.ValidLength(VariableLength))

	assert.True(t, addr.ValidLength(4))
	assert.False(t, addr.ValidLength(3))

	assert.True(t, str.ValidLength(VariableLength))
	assert.True(t, str.ValidLength(10))
	assert.True(t, str.ValidLength(0))

	list, err := model.GetByName("basicList")
	require.NoError(t, err)
	assert.True(t, list.ValidLength(VariableLength))
	assert.True(t, list.ValidLength(5))
	assert.False(t, list.ValidLength(0))
}

func TestYAMLRegistryRoundTrip(t *testing.T) {
	const registry = `
- id: 10
  pen: 6871
  name: vendorSessionCount
  type: unsigned32
  semantics: totalCounter
  units: flows
- id: 11
  pen: 6871
  name: vendorLabel
  type: string
`
	model := NewInfoModel(WithoutBuiltinElements())
	require.NoError(t, model.LoadYAML(strings.NewReader(registry)))

	ie, err := model.GetByName("vendorSessionCount")
	require.NoError(t, err)
	assert.Equal(t, uint32(6871), ie.EnterpriseId)
	assert.Equal(t, "unsigned32", ie.Type)

	var buf bytes.Buffer
	require.NoError(t, model.DumpYAML(&buf))

	reloaded := NewInfoModel(WithoutBuiltinElements())
	require.NoError(t, reloaded.LoadYAML(&buf))
	assert.Equal(t, model.Len(), reloaded.Len())
	back, err := reloaded.GetById(6871, 11)
	require.NoError(t, err)
	assert.Equal(t, "vendorLabel", back.Name)
}

func TestLoadYAMLRejectsUnknownType(t *testing.T) {
	model := NewInfoModel(WithoutBuiltinElements())
	err := model.LoadYAML(strings.NewReader("- {id: 1, name: broken, type: quux}"))
	assert.Error(t, err)
}
