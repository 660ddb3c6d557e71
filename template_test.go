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

func TestTemplateBuilder(t *testing.T) {
	model := NewInfoModel()

	t.Run("builds in order with canonical lengths", func(t *testing.T) {
		tpl, err := NewTemplateBuilder(model).
			Append("sourceIPv4Address").
			Append("octetDeltaCount").
			Complete()
		require.NoError(t, err)
		assert.Equal(t, uint16(2), tpl.FieldCount())
		assert.Equal(t, uint16(4), tpl.Field(0).Length())
		assert.Equal(t, uint16(8), tpl.Field(1).Length())
		assert.Equal(t, 12, tpl.MinWireLength())
		assert.False(t, tpl.IsOptions())
	})

	t.Run("unknown name fails", func(t *testing.T) {
		_, err := NewTemplateBuilder(model).Append("noSuchElement").Complete()
		assert.ErrorIs(t, err, ErrElementNotFound)
	})

	t.Run("append after complete fails", func(t *testing.T) {
		b := NewTemplateBuilder(model).Append("octetDeltaCount")
		_, err := b.Complete()
		require.NoError(t, err)
		_, err = b.Append("packetDeltaCount").Complete()
		assert.ErrorIs(t, err, ErrTemplateActive)
	})

	t.Run("scope count marks options template", func(t *testing.T) {
		tpl, err := NewTemplateBuilder(model).
			Append("observationDomainId").
			Append("exportedMessageTotalCount").
			SetScopeCount(1).
			Complete()
		require.NoError(t, err)
		assert.True(t, tpl.IsOptions())
		assert.True(t, tpl.Field(0).IsScope())
		assert.False(t, tpl.Field(1).IsScope())
	})

	t.Run("variable-length field counts its prefix", func(t *testing.T) {
		tpl, err := NewTemplateBuilder(model).
			AppendWithLength("interfaceName", VariableLength).
			Complete()
		require.NoError(t, err)
		assert.True(t, tpl.HasVariableLength())
		assert.Equal(t, 1, tpl.MinWireLength())
	})

	t.Run("append by element", func(t *testing.T) {
		ie, err := model.GetByName("octetDeltaCount")
		require.NoError(t, err)
		tpl, err := NewTemplateBuilder(model).AppendElement(ie).Complete()
		require.NoError(t, err)
		assert.Equal(t, "octetDeltaCount", tpl.Field(0).Element().Name)
		assert.Equal(t, uint16(8), tpl.Field(0).Length())
	})

	t.Run("append in bulk", func(t *testing.T) {
		var ies []InformationElement
		for _, name := range []string{"sourceIPv4Address", "destinationIPv4Address", "octetDeltaCount"} {
			ie, err := model.GetByName(name)
			require.NoError(t, err)
			ies = append(ies, ie)
		}
		tpl, err := NewTemplateBuilder(model).AppendAll(ies...).Complete()
		require.NoError(t, err)
		require.Equal(t, uint16(3), tpl.FieldCount())
		assert.Equal(t, "destinationIPv4Address", tpl.Field(1).Element().Name)
		assert.Equal(t, 16, tpl.MinWireLength())
	})

	t.Run("alien element by id", func(t *testing.T) {
		tpl, err := NewTemplateBuilder(model).
			AppendById(9999, 42, 6).
			Complete()
		require.NoError(t, err)
		assert.Equal(t, "alien_9999_42", tpl.Field(0).Element().Name)
		assert.Equal(t, "octetArray", tpl.Field(0).Element().Type)
	})
}

func TestTemplateDerivedData(t *testing.T) {
	model := NewInfoModel()

	tpl, err := NewTemplateBuilder(model).
		Append("octetDeltaCount").
		Append("basicList").
		AppendWithLength("interfaceName", VariableLength).
		Append("subTemplateList").
		Append("sourceIPv4Address").
		Complete()
	require.NoError(t, err)

	// three variable-length fields count a 1-octet prefix each
	assert.Equal(t, 15, tpl.MinWireLength())
	// canonical widths of the fixed fields only
	assert.Equal(t, 12, tpl.MemLength())
	assert.True(t, tpl.HasVariableLength())
	assert.True(t, tpl.HasListField())
	assert.Equal(t, []int{1}, tpl.BasicListFields())
	assert.Equal(t, []int{3}, tpl.SubTemplateListFields())
	assert.Empty(t, tpl.SubTemplateMultiListFields())

	t.Run("fixed-length octet fields count their declared length", func(t *testing.T) {
		tpl, err := NewTemplateBuilder(model).
			AppendWithLength("interfaceName", 10).
			Append("sourceTransportPort").
			Complete()
		require.NoError(t, err)
		assert.Equal(t, 12, tpl.MemLength())
		assert.False(t, tpl.HasListField())
		assert.False(t, tpl.HasVariableLength())
	})

	t.Run("multi-list positions", func(t *testing.T) {
		tpl, err := NewTemplateBuilder(model).
			Append("subTemplateMultiList").
			Append("octetDeltaCount").
			Complete()
		require.NoError(t, err)
		assert.Equal(t, []int{0}, tpl.SubTemplateMultiListFields())
		assert.True(t, tpl.HasListField())
	})
}

func TestTemplateRecordRoundTrip(t *testing.T) {
	model := NewInfoModel()
	require.NoError(t, model.Add(InformationElement{
		Id: 7, EnterpriseId: 12345, Name: "vendorCounter", Type: "unsigned32",
	}))

	tpl, err := NewTemplateBuilder(model).
		Append("sourceIPv4Address").
		AppendWithLength("octetDeltaCount", 4).
		Append("vendorCounter").
		Complete()
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = encodeTemplateRecord(&buf, 301, tpl)
	require.NoError(t, err)

	id, got, consumed, err := decodeTemplateRecord(model, buf.Bytes(), false)
	require.NoError(t, err)
	assert.Equal(t, uint16(301), id)
	assert.Equal(t, buf.Len(), consumed)
	require.Equal(t, uint16(3), got.FieldCount())
	assert.Equal(t, uint16(4), got.Field(1).Length())
	assert.Equal(t, uint32(12345), got.Field(2).Element().EnterpriseId)
	assert.Equal(t, "vendorCounter", got.Field(2).Element().Name)
}

func TestTemplateWithdrawalRecord(t *testing.T) {
	model := NewInfoModel()
	// field count zero announces a withdrawal
	id, tpl, consumed, err := decodeTemplateRecord(model, []byte{0x01, 0x2D, 0x00, 0x00}, false)
	require.NoError(t, err)
	assert.Equal(t, uint16(301), id)
	assert.Nil(t, tpl)
	assert.Equal(t, 4, consumed)
}

func TestTemplateLengthPolicy(t *testing.T) {
	t.Run("rejects illegal lengths by default", func(t *testing.T) {
		model := NewInfoModel()
		_, err := NewTemplateBuilder(model).
			AppendWithLength("sourceIPv4Address", 2).
			Complete()
		var lengthErr *LengthError
		assert.ErrorAs(t, err, &lengthErr)
		assert.Equal(t, uint16(2), lengthErr.Length)
	})

	t.Run("reject fails with the offending length", func(t *testing.T) {
		model := NewInfoModel(WithLengthPolicy(LengthPolicyReject))
		_, err := NewTemplateBuilder(model).
			AppendWithLength("sourceIPv4Address", 6).
			Complete()
		var lengthErr *LengthError
		assert.ErrorAs(t, err, &lengthErr)
		assert.Equal(t, uint16(6), lengthErr.Length)
	})

	t.Run("warn demotes to octetArray", func(t *testing.T) {
		model := NewInfoModel(WithLengthPolicy(LengthPolicyWarn))
		tpl, err := NewTemplateBuilder(model).
			AppendWithLength("sourceIPv4Address", 6).
			Complete()
		require.NoError(t, err)
		assert.Equal(t, "octetArray", tpl.Field(0).Element().Type)
		assert.Equal(t, uint16(6), tpl.Field(0).Length())
	})
}
