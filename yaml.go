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
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads information element definitions from a YAML document
// holding a sequence of elements and registers them with the model. This is
// how full IANA registry dumps or site-local enterprise registries are
// brought in without recompiling.
//
//	- id: 1
//	  name: octetDeltaCount
//	  type: unsigned64
//	  semantics: deltaCounter
//	  units: octets
func (m *InfoModel) LoadYAML(r io.Reader) error {
	var elements []InformationElement
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&elements); err != nil {
		return fmt.Errorf("decoding information element registry: %w", err)
	}
	for i := range elements {
		ie := elements[i]
		if ie.Type != "" && LookupConstructor(ie.Type) == nil {
			return fmt.Errorf("element %s declares unknown data type %q", ie.Name, ie.Type)
		}
		ie.Constructor = LookupConstructor(ie.Type)
		if err := m.Add(ie); err != nil {
			return err
		}
	}
	return nil
}

// DumpYAML writes the model's elements as a YAML sequence, sorted by
// (enterprise number, id). Derived reverse elements are skipped; they are
// re-derived on load.
func (m *InfoModel) DumpYAML(w io.Writer) error {
	elements := m.All()
	sort.Slice(elements, func(i, j int) bool {
		if elements[i].EnterpriseId != elements[j].EnterpriseId {
			return elements[i].EnterpriseId < elements[j].EnterpriseId
		}
		return elements[i].Id < elements[j].Id
	})
	out := make([]InformationElement, 0, len(elements))
	for _, ie := range elements {
		if ie.Reversed {
			continue
		}
		if ie.Type == "" {
			ie.Type = ie.typeName()
		}
		out = append(out, ie)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(out)
}
