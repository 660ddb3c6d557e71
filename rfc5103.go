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

import "unicode"

// ReversePEN is the private enterprise number under which reverse-direction
// counterparts of IANA information elements are addressed (RFC 5103,
// Section 6.1).
const ReversePEN uint32 = 29305

// reverseName derives the reverse-direction name of an information element
// by prefixing "reverse" and upper-casing the first rune, e.g. "octetCount"
// becomes "reverseOctetCount" (RFC 5103, Section 6.1).
func reverseName(name string) string {
	if name == "" {
		return "reverse"
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return "reverse" + string(r)
}

// nonReversibleElements lists the IANA element ids that describe the whole
// biflow or the export process itself and therefore have no meaningful
// reverse counterpart (RFC 5103, Section 6.1).
var nonReversibleElements = map[uint16]bool{
	40:  true, // exportedOctetTotalCount
	41:  true, // exportedMessageTotalCount
	42:  true, // exportedFlowRecordTotalCount
	130: true, // exporterIPv4Address
	131: true, // exporterIPv6Address
	137: true, // commonPropertiesId
	145: true, // templateId
	148: true, // flowId
	149: true, // observationDomainId
	163: true, // observedFlowTotalCount
	164: true, // ignoredPacketTotalCount
	165: true, // ignoredOctetTotalCount
	166: true, // notSentFlowTotalCount
	167: true, // notSentPacketTotalCount
	168: true, // notSentOctetTotalCount
	173: true, // flowKeyIndicator
	210: true, // paddingOctets
	211: true, // collectorIPv4Address
	212: true, // collectorIPv6Address
	213: true, // exportInterface
	214: true, // exportProtocolVersion
	215: true, // exportTransportProtocol
	216: true, // collectorTransportPort
	217: true, // exporterTransportPort
	239: true, // biflowDirection
}

// reverseOf derives the reverse-direction counterpart of an IANA element,
// keeping the id and moving the element under ReversePEN. The second return
// is false for elements that are not reversible.
func reverseOf(ie InformationElement) (InformationElement, bool) {
	if ie.EnterpriseId != 0 || !ie.Reversible || nonReversibleElements[ie.Id] {
		return InformationElement{}, false
	}
	rev := ie.Clone()
	rev.EnterpriseId = ReversePEN
	rev.Name = reverseName(ie.Name)
	rev.Reversible = false
	rev.Reversed = true
	return rev, true
}
