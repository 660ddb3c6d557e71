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
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// DateTimeSeconds implements the dateTimeSeconds abstract data type, a
// 32-bit count of seconds since the UNIX epoch (RFC 7011, Section 6.1.7).
type DateTimeSeconds struct {
	value time.Time
}

func NewDateTimeSeconds() DataType {
	return &DateTimeSeconds{}
}

func (t *DateTimeSeconds) String() string {
	return t.value.UTC().Format(time.RFC3339)
}

func (*DateTimeSeconds) Type() string {
	return "dateTimeSeconds"
}

func (t *DateTimeSeconds) Value() interface{} {
	return t.value
}

func (t *DateTimeSeconds) SetValue(v any) DataType {
	switch ty := v.(type) {
	case time.Time:
		t.value = ty
	case uint32:
		t.value = time.Unix(int64(ty), 0).UTC()
	case int:
		t.value = time.Unix(int64(ty), 0).UTC()
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (*DateTimeSeconds) Length() uint16 {
	return 4
}

func (*DateTimeSeconds) DefaultLength() uint16 {
	return 4
}

func (t *DateTimeSeconds) SetLength(uint16) DataType {
	return t
}

func (*DateTimeSeconds) IsReducedLength() bool {
	return false
}

func (t *DateTimeSeconds) Clone() DataType {
	return &DateTimeSeconds{value: t.value}
}

func (t *DateTimeSeconds) Decode(b []byte) error {
	if len(b) != 4 {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = time.Unix(int64(binary.BigEndian.Uint32(b)), 0).UTC()
	return nil
}

func (t *DateTimeSeconds) Encode(w io.Writer) (int, error) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(t.value.Unix()))
	return w.Write(b[:])
}

func (t *DateTimeSeconds) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value.UTC())
}

// DateTimeMilliseconds implements the dateTimeMilliseconds abstract data
// type, a 64-bit count of milliseconds since the UNIX epoch.
type DateTimeMilliseconds struct {
	value time.Time
}

func NewDateTimeMilliseconds() DataType {
	return &DateTimeMilliseconds{}
}

func (t *DateTimeMilliseconds) String() string {
	return t.value.UTC().Format(time.RFC3339Nano)
}

func (*DateTimeMilliseconds) Type() string {
	return "dateTimeMilliseconds"
}

func (t *DateTimeMilliseconds) Value() interface{} {
	return t.value
}

func (t *DateTimeMilliseconds) SetValue(v any) DataType {
	switch ty := v.(type) {
	case time.Time:
		t.value = ty
	case uint64:
		t.value = time.UnixMilli(int64(ty)).UTC()
	case int:
		t.value = time.UnixMilli(int64(ty)).UTC()
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (*DateTimeMilliseconds) Length() uint16 {
	return 8
}

func (*DateTimeMilliseconds) DefaultLength() uint16 {
	return 8
}

func (t *DateTimeMilliseconds) SetLength(uint16) DataType {
	return t
}

func (*DateTimeMilliseconds) IsReducedLength() bool {
	return false
}

func (t *DateTimeMilliseconds) Clone() DataType {
	return &DateTimeMilliseconds{value: t.value}
}

func (t *DateTimeMilliseconds) Decode(b []byte) error {
	if len(b) != 8 {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = time.UnixMilli(int64(binary.BigEndian.Uint64(b))).UTC()
	return nil
}

func (t *DateTimeMilliseconds) Encode(w io.Writer) (int, error) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(t.value.UnixMilli()))
	return w.Write(b[:])
}

func (t *DateTimeMilliseconds) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value.UTC())
}

// DateTimeMicroseconds implements the dateTimeMicroseconds abstract data
// type, carried in 64-bit NTP timestamp format with the bottom 11 fraction
// bits cleared (RFC 7011, Section 6.1.9).
type DateTimeMicroseconds struct {
	value time.Time
}

func NewDateTimeMicroseconds() DataType {
	return &DateTimeMicroseconds{}
}

func (t *DateTimeMicroseconds) String() string {
	return t.value.UTC().Format(time.RFC3339Nano)
}

func (*DateTimeMicroseconds) Type() string {
	return "dateTimeMicroseconds"
}

func (t *DateTimeMicroseconds) Value() interface{} {
	return t.value
}

func (t *DateTimeMicroseconds) SetValue(v any) DataType {
	switch ty := v.(type) {
	case time.Time:
		t.value = ty
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (*DateTimeMicroseconds) Length() uint16 {
	return 8
}

func (*DateTimeMicroseconds) DefaultLength() uint16 {
	return 8
}

func (t *DateTimeMicroseconds) SetLength(uint16) DataType {
	return t
}

func (*DateTimeMicroseconds) IsReducedLength() bool {
	return false
}

func (t *DateTimeMicroseconds) Clone() DataType {
	return &DateTimeMicroseconds{value: t.value}
}

func (t *DateTimeMicroseconds) Decode(b []byte) error {
	if len(b) != 8 {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = decodeNTPTimestamp(b, microsecondsFractionMask)
	return nil
}

func (t *DateTimeMicroseconds) Encode(w io.Writer) (int, error) {
	var b [8]byte
	encodeNTPTimestamp(b[:], t.value, microsecondsFractionMask)
	return w.Write(b[:])
}

func (t *DateTimeMicroseconds) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value.UTC())
}

// DateTimeNanoseconds implements the dateTimeNanoseconds abstract data type,
// carried in 64-bit NTP timestamp format (RFC 7011, Section 6.1.10).
type DateTimeNanoseconds struct {
	value time.Time
}

func NewDateTimeNanoseconds() DataType {
	return &DateTimeNanoseconds{}
}

func (t *DateTimeNanoseconds) String() string {
	return t.value.UTC().Format(time.RFC3339Nano)
}

func (*DateTimeNanoseconds) Type() string {
	return "dateTimeNanoseconds"
}

func (t *DateTimeNanoseconds) Value() interface{} {
	return t.value
}

func (t *DateTimeNanoseconds) SetValue(v any) DataType {
	switch ty := v.(type) {
	case time.Time:
		t.value = ty
	default:
		panic(fmt.Errorf("%T cannot be asserted to %T", v, t.value))
	}
	return t
}

func (*DateTimeNanoseconds) Length() uint16 {
	return 8
}

func (*DateTimeNanoseconds) DefaultLength() uint16 {
	return 8
}

func (t *DateTimeNanoseconds) SetLength(uint16) DataType {
	return t
}

func (*DateTimeNanoseconds) IsReducedLength() bool {
	return false
}

func (t *DateTimeNanoseconds) Clone() DataType {
	return &DateTimeNanoseconds{value: t.value}
}

func (t *DateTimeNanoseconds) Decode(b []byte) error {
	if len(b) != 8 {
		return fmt.Errorf("decoding %T from %d octets: %w", t, len(b), ErrIllegalDataTypeEncoding)
	}
	t.value = decodeNTPTimestamp(b, 0xFFFFFFFF)
	return nil
}

func (t *DateTimeNanoseconds) Encode(w io.Writer) (int, error) {
	var b [8]byte
	encodeNTPTimestamp(b[:], t.value, 0xFFFFFFFF)
	return w.Write(b[:])
}

func (t *DateTimeNanoseconds) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value.UTC())
}

// microsecondsFractionMask clears the bottom 11 bits of the NTP fraction,
// bounding precision at roughly half a microsecond as RFC 7011 requires.
const microsecondsFractionMask uint32 = 0xFFFFF800

func decodeNTPTimestamp(b []byte, fractionMask uint32) time.Time {
	seconds := binary.BigEndian.Uint32(b[0:4])
	fraction := binary.BigEndian.Uint32(b[4:8]) & fractionMask
	nanos := uint64(fraction) * uint64(time.Second) >> 32
	return NTPEpoch.Add(time.Duration(seconds)*time.Second + time.Duration(nanos))
}

func encodeNTPTimestamp(b []byte, v time.Time, fractionMask uint32) {
	d := v.Sub(NTPEpoch)
	seconds := uint32(d / time.Second)
	nanos := uint64(d % time.Second)
	fraction := uint32(nanos<<32/uint64(time.Second)) & fractionMask
	binary.BigEndian.PutUint32(b[0:4], seconds)
	binary.BigEndian.PutUint32(b[4:8], fraction)
}

var _ DataTypeConstructor = NewDateTimeSeconds
var _ DataTypeConstructor = NewDateTimeMilliseconds
var _ DataTypeConstructor = NewDateTimeMicroseconds
var _ DataTypeConstructor = NewDateTimeNanoseconds
var _ DataType = &DateTimeSeconds{}
var _ DataType = &DateTimeMilliseconds{}
var _ DataType = &DateTimeMicroseconds{}
var _ DataType = &DateTimeNanoseconds{}
