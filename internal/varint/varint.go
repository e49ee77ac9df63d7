// Package varint implements the variable-length integer encoding from
// RFC 9000 Section 16, as used by Binary HTTP (RFC 9292).
//
// The two most significant bits of the first byte select the length class:
//
//	00xxxxxx                    1 byte  (0 - 63)
//	01xxxxxx + 1 byte           2 bytes (0 - 16383)
//	10xxxxxx + 3 bytes          4 bytes (0 - 1073741823)
//	11xxxxxx + 7 bytes          8 bytes (0 - 4611686018427387903)
//
// The remaining bits are the value in network byte order.
package varint

import (
	"encoding/binary"
	"errors"
)

// MaxValue is the largest value that can be encoded.
const MaxValue = 1<<62 - 1

const (
	max1 = 1<<6 - 1
	max2 = 1<<14 - 1
	max4 = 1<<30 - 1
)

var (
	// ErrOutOfRange is returned when encoding a value greater than MaxValue.
	ErrOutOfRange = errors.New("varint: value out of range")

	// ErrShortBuffer is returned when a buffer ends before the encoded integer.
	ErrShortBuffer = errors.New("varint: short buffer")
)

// Len returns the number of bytes the minimal encoding of v occupies,
// or 0 if v is greater than MaxValue.
func Len(v uint64) int {
	switch {
	case v <= max1:
		return 1
	case v <= max2:
		return 2
	case v <= max4:
		return 4
	case v <= MaxValue:
		return 8
	}
	return 0
}

// PrefixLen returns the encoded length announced by the first byte of a varint.
func PrefixLen(first byte) int {
	return 1 << (first >> 6)
}

// Append appends the minimal encoding of v to b.
func Append(b []byte, v uint64) ([]byte, error) {
	switch Len(v) {
	case 1:
		return append(b, byte(v)), nil
	case 2:
		return binary.BigEndian.AppendUint16(b, uint16(v)|0x4000), nil
	case 4:
		return binary.BigEndian.AppendUint32(b, uint32(v)|0x80000000), nil
	case 8:
		return binary.BigEndian.AppendUint64(b, v|0xC000000000000000), nil
	}
	return b, ErrOutOfRange
}

// Encode returns the minimal encoding of v.
func Encode(v uint64) ([]byte, error) {
	return Append(make([]byte, 0, 8), v)
}

// Parse decodes the varint at the front of b and returns its value and the
// number of bytes consumed. Encodings longer than necessary are accepted.
func Parse(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrShortBuffer
	}
	n := PrefixLen(b[0])
	if len(b) < n {
		return 0, 0, ErrShortBuffer
	}
	v := uint64(b[0] & 0x3F)
	for _, c := range b[1:n] {
		v = v<<8 | uint64(c)
	}
	return v, n, nil
}
