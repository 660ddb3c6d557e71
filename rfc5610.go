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
	"github.com/flowtools/gofixbuf/iana/semantics"
	"github.com/flowtools/gofixbuf/iana/units"
)

// RFC 5610 lets exporters describe non-standard information elements in
// options records. Collectors that learn these descriptions can decode
// enterprise-specific fields with proper types instead of falling back to
// octetArray.

const (
	fieldInformationElementId          uint16 = 303
	fieldInformationElementDescription uint16 = 340
	fieldInformationElementName        uint16 = 341
	fieldInformationElementRangeBegin  uint16 = 342
	fieldInformationElementRangeEnd    uint16 = 343
	fieldInformationElementSemantics   uint16 = 344
	fieldInformationElementUnits       uint16 = 345
	fieldInformationElementDataType    uint16 = 339
	fieldPrivateEnterpriseNumber       uint16 = 346
)

// isTypeInformationRecord reports whether r is an RFC 5610 information
// element description: an options record scoped by at least the element id
// and the private enterprise number.
func isTypeInformationRecord(r *DataRecord) bool {
	t := r.Template()
	if t == nil || !t.IsOptions() {
		return false
	}
	scopeHasId := false
	scopeHasPEN := false
	for _, f := range t.fields[:t.scopeCount] {
		if f.element.EnterpriseId != 0 {
			continue
		}
		switch f.element.Id {
		case fieldInformationElementId:
			scopeHasId = true
		case fieldPrivateEnterpriseNumber:
			scopeHasPEN = true
		}
	}
	return scopeHasId && scopeHasPEN
}

// learnTypeInformation registers the information element described by r
// with the model. Records missing the element id or name are ignored.
func learnTypeInformation(model *InfoModel, r *DataRecord) {
	ie := InformationElement{Type: "octetArray"}
	var rangeBegin, rangeEnd uint64
	for _, f := range r.Fields() {
		if f.Element().EnterpriseId != 0 {
			continue
		}
		switch f.Element().Id {
		case fieldInformationElementId:
			if v, ok := f.Value().(uint16); ok {
				ie.Id = v
			}
		case fieldPrivateEnterpriseNumber:
			if v, ok := f.Value().(uint32); ok {
				ie.EnterpriseId = v
			}
		case fieldInformationElementDataType:
			if v, ok := f.Value().(uint8); ok {
				ie.Constructor = DataTypeFromNumber(v)
				ie.Type = ie.Constructor().Type()
			}
		case fieldInformationElementName:
			if v, ok := f.Value().(string); ok {
				ie.Name = v
			}
		case fieldInformationElementDescription:
			if v, ok := f.Value().(string); ok {
				ie.Description = v
			}
		case fieldInformationElementSemantics:
			if v, ok := f.Value().(uint8); ok {
				ie.Semantics = semantics.FromNumber(v)
			}
		case fieldInformationElementUnits:
			if v, ok := f.Value().(uint16); ok {
				ie.Units = units.FromNumber(v)
			}
		case fieldInformationElementRangeBegin:
			if v, ok := f.Value().(uint64); ok {
				rangeBegin = v
			}
		case fieldInformationElementRangeEnd:
			if v, ok := f.Value().(uint64); ok {
				rangeEnd = v
			}
		}
	}
	if ie.Id == 0 || ie.Name == "" {
		return
	}
	if rangeBegin != 0 || rangeEnd != 0 {
		ie.Range = &InformationElementRange{Low: rangeBegin, High: rangeEnd}
	}
	if err := model.Add(ie); err != nil {
		getLogger().Error(err, "cannot register learned information element", "name", ie.Name)
		return
	}
	getLogger().V(1).Info("learned information element",
		"name", ie.Name, "pen", ie.EnterpriseId, "id", ie.Id, "type", ie.Type)
}

// NewTypeInformationTemplate builds the options template an exporter
// announces to describe its enterprise-specific elements (RFC 5610,
// Section 3.9).
func NewTypeInformationTemplate(model *InfoModel) (*Template, error) {
	return NewTemplateBuilder(model).
		Append("privateEnterpriseNumber").
		Append("informationElementId").
		Append("informationElementDataType").
		Append("informationElementSemantics").
		Append("informationElementUnits").
		Append("informationElementRangeBegin").
		Append("informationElementRangeEnd").
		AppendWithLength("informationElementName", VariableLength).
		AppendWithLength("informationElementDescription", VariableLength).
		SetScopeCount(2).
		Complete()
}

// NewTypeInformationRecord fills a record of the type information template
// describing ie.
func NewTypeInformationRecord(t *Template, ie InformationElement) *DataRecord {
	r := NewDataRecord(t)
	r.Set("privateEnterpriseNumber", ie.EnterpriseId)
	r.Set("informationElementId", ie.Id)
	r.Set("informationElementDataType", DataTypeNumber(ie.typeName()))
	r.Set("informationElementSemantics", uint8(ie.Semantics))
	r.Set("informationElementUnits", uint16(ie.Units))
	if ie.Range != nil {
		r.Set("informationElementRangeBegin", ie.Range.Low)
		r.Set("informationElementRangeEnd", ie.Range.High)
	}
	r.Set("informationElementName", ie.Name)
	r.Set("informationElementDescription", ie.Description)
	return r
}
