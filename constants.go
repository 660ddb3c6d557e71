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

import "time"

const (
	// Version is the protocol version number carried in every message
	// header. 10 is the only legal value for IPFIX (RFC 7011, Section 3.1).
	Version uint16 = 10

	// SetIdTemplate and SetIdOptionsTemplate are the reserved set ids for
	// template and options template sets. Set ids 0 and 1 belong to NetFlow
	// v9, 4 through 255 are reserved, and 256 and up address data sets by
	// template id.
	SetIdTemplate        uint16 = 2
	SetIdOptionsTemplate uint16 = 3

	// MinTemplateId is the smallest id assignable to a template; everything
	// below is reserved for set markers.
	MinTemplateId uint16 = 256

	// VariableLength is the sentinel field length announcing variable-length
	// encoding in template records (RFC 7011, Section 7).
	VariableLength uint16 = 0xFFFF

	messageHeaderLength = 16
	setHeaderLength     = 4

	// enterpriseBit marks enterprise-specific elements in field specifiers.
	enterpriseBit uint16 = 0x8000
)

// DefaultMTU is the default upper bound for exported message sizes. It
// matches the conventional 1500-byte path MTU minus IP/UDP headers and some
// encapsulation headroom, the same assumption yaf makes for UDP export.
const DefaultMTU = 1420

// NTPEpoch is the zero point of the NTP timestamp format used by the
// dateTimeMicroseconds and dateTimeNanoseconds abstract data types
// (RFC 7011, Sections 6.1.9 and 6.1.10).
var NTPEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

func isVariableLength(length uint16) bool {
	return length == VariableLength
}

func isEnterpriseField(rawFieldId uint16) bool {
	return rawFieldId&enterpriseBit != 0
}
