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

// builtinElements is the subset of the IANA "IPFIX Information Elements"
// registry that NewInfoModel preloads: the common flow elements plus
// everything the package itself needs for structured data (RFC 6313) and
// information element discovery (RFC 5610). Larger registries load via
// ElementsFromYAML.
var builtinElements = []InformationElement{
	{Id: 1, Name: "octetDeltaCount", Type: "unsigned64", Semantics: semantics.DeltaCounter, Units: units.Octets, Reversible: true},
	{Id: 2, Name: "packetDeltaCount", Type: "unsigned64", Semantics: semantics.DeltaCounter, Units: units.Packets, Reversible: true},
	{Id: 4, Name: "protocolIdentifier", Type: "unsigned8", Semantics: semantics.Identifier, Reversible: true},
	{Id: 5, Name: "ipClassOfService", Type: "unsigned8", Semantics: semantics.Identifier, Reversible: true},
	{Id: 6, Name: "tcpControlBits", Type: "unsigned16", Semantics: semantics.Flags, Reversible: true},
	{Id: 7, Name: "sourceTransportPort", Type: "unsigned16", Semantics: semantics.Identifier, Units: units.Ports, Reversible: true},
	{Id: 8, Name: "sourceIPv4Address", Type: "ipv4Address", Reversible: true},
	{Id: 9, Name: "sourceIPv4PrefixLength", Type: "unsigned8", Units: units.Bits, Reversible: true},
	{Id: 10, Name: "ingressInterface", Type: "unsigned32", Semantics: semantics.Identifier, Reversible: true},
	{Id: 11, Name: "destinationTransportPort", Type: "unsigned16", Semantics: semantics.Identifier, Units: units.Ports, Reversible: true},
	{Id: 12, Name: "destinationIPv4Address", Type: "ipv4Address", Reversible: true},
	{Id: 13, Name: "destinationIPv4PrefixLength", Type: "unsigned8", Units: units.Bits, Reversible: true},
	{Id: 14, Name: "egressInterface", Type: "unsigned32", Semantics: semantics.Identifier, Reversible: true},
	{Id: 21, Name: "flowEndSysUpTime", Type: "unsigned32", Units: units.Milliseconds, Reversible: true},
	{Id: 22, Name: "flowStartSysUpTime", Type: "unsigned32", Units: units.Milliseconds, Reversible: true},
	{Id: 27, Name: "sourceIPv6Address", Type: "ipv6Address", Reversible: true},
	{Id: 28, Name: "destinationIPv6Address", Type: "ipv6Address", Reversible: true},
	{Id: 31, Name: "flowLabelIPv6", Type: "unsigned32", Semantics: semantics.Identifier, Reversible: true},
	{Id: 32, Name: "icmpTypeCodeIPv4", Type: "unsigned16", Semantics: semantics.Identifier, Reversible: true},
	{Id: 40, Name: "exportedOctetTotalCount", Type: "unsigned64", Semantics: semantics.TotalCounter, Units: units.Octets},
	{Id: 41, Name: "exportedMessageTotalCount", Type: "unsigned64", Semantics: semantics.TotalCounter, Units: units.Messages},
	{Id: 42, Name: "exportedFlowRecordTotalCount", Type: "unsigned64", Semantics: semantics.TotalCounter, Units: units.Flows},
	{Id: 56, Name: "sourceMacAddress", Type: "macAddress", Semantics: semantics.Identifier, Reversible: true},
	{Id: 80, Name: "destinationMacAddress", Type: "macAddress", Semantics: semantics.Identifier, Reversible: true},
	{Id: 82, Name: "interfaceName", Type: "string", Reversible: true},
	{Id: 83, Name: "interfaceDescription", Type: "string", Reversible: true},
	{Id: 84, Name: "samplerName", Type: "string"},
	{Id: 136, Name: "flowEndReason", Type: "unsigned8", Semantics: semantics.Identifier, Reversible: true},
	{Id: 145, Name: "templateId", Type: "unsigned16", Semantics: semantics.Identifier},
	{Id: 148, Name: "flowId", Type: "unsigned64", Semantics: semantics.Identifier},
	{Id: 149, Name: "observationDomainId", Type: "unsigned32", Semantics: semantics.Identifier},
	{Id: 150, Name: "flowStartSeconds", Type: "dateTimeSeconds", Units: units.Seconds, Reversible: true},
	{Id: 151, Name: "flowEndSeconds", Type: "dateTimeSeconds", Units: units.Seconds, Reversible: true},
	{Id: 152, Name: "flowStartMilliseconds", Type: "dateTimeMilliseconds", Units: units.Milliseconds, Reversible: true},
	{Id: 153, Name: "flowEndMilliseconds", Type: "dateTimeMilliseconds", Units: units.Milliseconds, Reversible: true},
	{Id: 154, Name: "flowStartMicroseconds", Type: "dateTimeMicroseconds", Units: units.Microseconds, Reversible: true},
	{Id: 155, Name: "flowEndMicroseconds", Type: "dateTimeMicroseconds", Units: units.Microseconds, Reversible: true},
	{Id: 156, Name: "flowStartNanoseconds", Type: "dateTimeNanoseconds", Units: units.Nanoseconds, Reversible: true},
	{Id: 157, Name: "flowEndNanoseconds", Type: "dateTimeNanoseconds", Units: units.Nanoseconds, Reversible: true},
	{Id: 161, Name: "flowDurationMilliseconds", Type: "unsigned32", Units: units.Milliseconds, Reversible: true},
	{Id: 184, Name: "tcpSequenceNumber", Type: "unsigned32", Reversible: true},
	{Id: 210, Name: "paddingOctets", Type: "octetArray"},
	{Id: 239, Name: "biflowDirection", Type: "unsigned8", Semantics: semantics.Identifier},
	{Id: 291, Name: "basicList", Type: "basicList", Semantics: semantics.List},
	{Id: 292, Name: "subTemplateList", Type: "subTemplateList", Semantics: semantics.List},
	{Id: 293, Name: "subTemplateMultiList", Type: "subTemplateMultiList", Semantics: semantics.List},
	{Id: 303, Name: "informationElementId", Type: "unsigned16", Semantics: semantics.Identifier},
	{Id: 339, Name: "informationElementDataType", Type: "unsigned8", Semantics: semantics.Identifier},
	{Id: 340, Name: "informationElementDescription", Type: "string"},
	{Id: 341, Name: "informationElementName", Type: "string"},
	{Id: 342, Name: "informationElementRangeBegin", Type: "unsigned64", Semantics: semantics.Quantity},
	{Id: 343, Name: "informationElementRangeEnd", Type: "unsigned64", Semantics: semantics.Quantity},
	{Id: 344, Name: "informationElementSemantics", Type: "unsigned8", Semantics: semantics.Identifier},
	{Id: 345, Name: "informationElementUnits", Type: "unsigned16", Semantics: semantics.Identifier},
	{Id: 346, Name: "privateEnterpriseNumber", Type: "unsigned32", Semantics: semantics.Identifier},
}
