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
	"encoding/binary"
	"fmt"
	"time"
)

// MessageHeader is the 16-octet header leading every IPFIX message
// (RFC 7011, Section 3.1).
type MessageHeader struct {
	Version             uint16
	Length              uint16
	ExportTime          time.Time
	SequenceNumber      uint32
	ObservationDomainId uint32
}

func decodeMessageHeader(b []byte) (MessageHeader, error) {
	if len(b) < messageHeaderLength {
		return MessageHeader{}, fmt.Errorf("message shorter than header: %w", ErrMalformedMessage)
	}
	h := MessageHeader{
		Version:             binary.BigEndian.Uint16(b[0:2]),
		Length:              binary.BigEndian.Uint16(b[2:4]),
		ExportTime:          time.Unix(int64(binary.BigEndian.Uint32(b[4:8])), 0).UTC(),
		SequenceNumber:      binary.BigEndian.Uint32(b[8:12]),
		ObservationDomainId: binary.BigEndian.Uint32(b[12:16]),
	}
	if h.Version != Version {
		return h, fmt.Errorf("version %d: %w", h.Version, ErrUnknownVersion)
	}
	if int(h.Length) < messageHeaderLength {
		return h, fmt.Errorf("message length %d shorter than header: %w", h.Length, ErrMalformedMessage)
	}
	return h, nil
}

func (h MessageHeader) encode(b []byte) {
	binary.BigEndian.PutUint16(b[0:2], h.Version)
	binary.BigEndian.PutUint16(b[2:4], h.Length)
	binary.BigEndian.PutUint32(b[4:8], uint32(h.ExportTime.Unix()))
	binary.BigEndian.PutUint32(b[8:12], h.SequenceNumber)
	binary.BigEndian.PutUint32(b[12:16], h.ObservationDomainId)
}

// setHeader is the 4-octet header of every set (RFC 7011, Section 3.3.2).
type setHeader struct {
	id     uint16
	length uint16
}

func decodeSetHeader(b []byte) (setHeader, error) {
	if len(b) < setHeaderLength {
		return setHeader{}, fmt.Errorf("set shorter than header: %w", ErrMalformedMessage)
	}
	h := setHeader{
		id:     binary.BigEndian.Uint16(b[0:2]),
		length: binary.BigEndian.Uint16(b[2:4]),
	}
	if int(h.length) < setHeaderLength {
		return h, fmt.Errorf("set length %d shorter than header: %w", h.length, ErrMalformedMessage)
	}
	return h, nil
}

func (h setHeader) encode(b []byte) {
	binary.BigEndian.PutUint16(b[0:2], h.id)
	binary.BigEndian.PutUint16(b[2:4], h.length)
}
