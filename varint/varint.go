// Package varint implements VSF's variable-length integer codec: a
// one-byte width tag followed by a fixed number of big-endian bytes of
// that width. Every size, count, offset, and auto-sized numeric value in
// VSF is encoded this way.
//
// Width tags:
//
//	'3' -> 1 byte   (0..255)
//	'4' -> 2 bytes  (0..65535)
//	'5' -> 4 bytes  (0..2^32-1)
//	'6' -> 8 bytes  (0..2^64-1)
//	'7' -> 16 bytes (0..2^128-1)
//
// Two legacy sub-byte width tags, '1' and '2', are decode-only: they
// pack a 2-bit or 4-bit value into the high bits of the single byte that
// follows the tag. No encoder in this package emits them; they exist so
// this module can read files produced by the original format's earlier
// revisions.
package varint

import (
	"github.com/nspiker/vsf/errs"
)

// Width tag bytes.
const (
	Tag1Bit  byte = '1' // legacy: 2-bit value packed in bits 6-7, decode-only
	Tag2Bit  byte = '2' // legacy: 4-bit value packed in bits 4-7, decode-only
	Tag1Byte byte = '3'
	Tag2Byte byte = '4'
	Tag4Byte byte = '5'
	Tag8Byte byte = '6'
	Tag16Byte byte = '7'
)

// byteWidth returns the number of payload bytes a full-byte width tag
// encodes, or 0 if tag is not a full-byte width tag.
func byteWidth(tag byte) int {
	switch tag {
	case Tag1Byte:
		return 1
	case Tag2Byte:
		return 2
	case Tag4Byte:
		return 4
	case Tag8Byte:
		return 8
	case Tag16Byte:
		return 16
	default:
		return 0
	}
}

// Uint128 is an unsigned 128-bit integer represented as two 64-bit
// halves, used only by the width-'7' varint and the u7/i7 fixed types.
// VSF only requires bit-exact round-tripping of 128-bit values, not
// arithmetic on them, so a pair of halves is sufficient and avoids
// pulling in an arbitrary-precision arithmetic dependency for a shape
// the wire format only ever moves, never computes with.
type Uint128 struct {
	Hi, Lo uint64
}

// Uint64 reports whether the value fits in a uint64 and, if so, returns it.
func (v Uint128) Uint64() (uint64, bool) {
	return v.Lo, v.Hi == 0
}

// FromUint64 builds a Uint128 from a uint64.
func FromUint64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// addSmall adds a small (< 2^16) unsigned value to v, returning the sum
// with 128-bit carry propagation.
func (v Uint128) addSmall(n uint64) Uint128 {
	lo := v.Lo + n
	hi := v.Hi
	if lo < v.Lo { // carry
		hi++
	}
	return Uint128{Hi: hi, Lo: lo}
}

// putBE writes v into buf (len(buf) bytes, big-endian); buf may be 1, 2,
// 4, 8, or 16 bytes.
func putBE(buf []byte, v Uint128) {
	n := len(buf)
	if n <= 8 {
		lo := v.Lo
		for i := n - 1; i >= 0; i-- {
			buf[i] = byte(lo)
			lo >>= 8
		}
		return
	}
	// 16 bytes: high 8 bytes from Hi, low 8 from Lo.
	hi, lo := v.Hi, v.Lo
	for i := 7; i >= 0; i-- {
		buf[i] = byte(hi)
		hi >>= 8
	}
	for i := 15; i >= 8; i-- {
		buf[i] = byte(lo)
		lo >>= 8
	}
}

// getBE reads a big-endian unsigned value from buf into a Uint128.
func getBE(buf []byte) Uint128 {
	n := len(buf)
	if n <= 8 {
		var lo uint64
		for _, b := range buf {
			lo = lo<<8 | uint64(b)
		}
		return Uint128{Lo: lo}
	}
	var hi, lo uint64
	for _, b := range buf[:n-8] {
		hi = hi<<8 | uint64(b)
	}
	for _, b := range buf[n-8:] {
		lo = lo<<8 | uint64(b)
	}
	return Uint128{Hi: hi, Lo: lo}
}

// fitsWidth reports whether v fits in an unsigned integer of the given
// byte width.
func fitsWidth(v Uint128, width int) bool {
	if width >= 16 {
		return true
	}
	if width <= 8 {
		if v.Hi != 0 {
			return false
		}
		if width == 8 {
			return true
		}
		return v.Lo>>(uint(width)*8) == 0
	}
	return false
}

// EncodeUint appends the smallest-width varint encoding of v to dst and
// returns the result, per the Encoder contract: the smallest width that
// holds the value.
func EncodeUint(dst []byte, v Uint128) []byte {
	for _, w := range [...]int{1, 2, 4, 8, 16} {
		if fitsWidth(v, w) {
			return appendWidth(dst, w, v)
		}
	}
	// unreachable: 16 bytes always fits a Uint128
	return appendWidth(dst, 16, v)
}

// EncodeUint64 is a convenience wrapper for the common uint64 case.
func EncodeUint64(dst []byte, v uint64) []byte {
	return EncodeUint(dst, FromUint64(v))
}

func appendWidth(dst []byte, width int, v Uint128) []byte {
	tag := tagForWidth(width)
	buf := make([]byte, width)
	putBE(buf, v)
	dst = append(dst, tag)
	dst = append(dst, buf...)
	return dst
}

func tagForWidth(width int) byte {
	switch width {
	case 1:
		return Tag1Byte
	case 2:
		return Tag2Byte
	case 4:
		return Tag4Byte
	case 8:
		return Tag8Byte
	case 16:
		return Tag16Byte
	default:
		panic("varint: invalid width")
	}
}

// EncodeInclusive appends the "inclusive" varint encoding of v: the
// encoded value covers the byte length of its own width-tag-plus-payload
// prefix. It selects the smallest width W (in {1,2,4,8,16}) such that
// v+1+W fits in W bytes, and encodes v+1+W. The header's own bit-length
// field does not use it: container.Header writes that field as a plain
// varint.
func EncodeInclusive(dst []byte, v uint64) []byte {
	for _, w := range [...]int{1, 2, 4, 8, 16} {
		adjusted := FromUint64(v).addSmall(uint64(1 + w))
		if fitsWidth(adjusted, w) {
			return appendWidth(dst, w, adjusted)
		}
	}
	// Not reached: width 16 always holds v+17 for a uint64 v.
	adjusted := FromUint64(v).addSmall(17)
	return appendWidth(dst, 16, adjusted)
}

// Decode reads one width-tag byte from data followed by that many
// big-endian bytes, returning the decoded value and the number of bytes
// consumed (tag + payload). It recognizes the full-byte tags '3'..'7'
// and the legacy sub-byte tags '1'/'2'.
func Decode(data []byte) (Uint128, int, error) {
	if len(data) < 1 {
		return Uint128{}, 0, errs.ErrUnexpectedEOF
	}

	tag := data[0]
	switch tag {
	case Tag1Bit:
		if len(data) < 2 {
			return Uint128{}, 0, errs.ErrUnexpectedEOF
		}
		return FromUint64(uint64((data[1] & 0b1100_0000) >> 6)), 2, nil
	case Tag2Bit:
		if len(data) < 2 {
			return Uint128{}, 0, errs.ErrUnexpectedEOF
		}
		return FromUint64(uint64((data[1] & 0b1111_0000) >> 4)), 2, nil
	}

	width := byteWidth(tag)
	if width == 0 {
		return Uint128{}, 0, errs.ErrInvalidWidthTag
	}
	if len(data) < 1+width {
		return Uint128{}, 0, errs.ErrUnexpectedEOF
	}

	return getBE(data[1 : 1+width]), 1 + width, nil
}

// DecodeUint64 decodes a varint known to fit in a uint64, failing with
// ErrInvariantViolation if the decoded value needs the full 128 bits.
func DecodeUint64(data []byte) (uint64, int, error) {
	v, n, err := Decode(data)
	if err != nil {
		return 0, 0, err
	}
	lo, ok := v.Uint64()
	if !ok {
		return 0, 0, errs.ErrInvariantViolation
	}
	return lo, n, nil
}

// EncodeInt64 appends the smallest-width two's-complement encoding of a
// signed value, per the Encoder contract (i3 is one signed byte, not
// u3's unsigned range).
func EncodeInt64(dst []byte, v int64) []byte {
	switch {
	case v >= -(1<<7) && v < (1<<7):
		return appendSigned(dst, 1, v)
	case v >= -(1<<15) && v < (1<<15):
		return appendSigned(dst, 2, v)
	case v >= -(1<<31) && v < (1<<31):
		return appendSigned(dst, 4, v)
	default:
		return appendSigned(dst, 8, v)
	}
}

func appendSigned(dst []byte, width int, v int64) []byte {
	dst = append(dst, tagForWidth(width))
	buf := make([]byte, width)
	uv := uint64(v)
	for i := width - 1; i >= 0; i-- {
		buf[i] = byte(uv)
		uv >>= 8
	}
	return append(dst, buf...)
}

// DecodeInt64 decodes a fixed-width two's-complement signed varint (tags
// '3'..'6'; width '7' does not fit in int64 and is rejected).
func DecodeInt64(data []byte) (int64, int, error) {
	if len(data) < 1 {
		return 0, 0, errs.ErrUnexpectedEOF
	}
	width := byteWidth(data[0])
	if width == 0 || width == 16 {
		return 0, 0, errs.ErrInvalidWidthTag
	}
	if len(data) < 1+width {
		return 0, 0, errs.ErrUnexpectedEOF
	}
	var uv uint64
	for _, b := range data[1 : 1+width] {
		uv = uv<<8 | uint64(b)
	}
	shift := uint(64 - width*8)
	sv := int64(uv<<shift) >> shift // sign-extend
	return sv, 1 + width, nil
}

// Len reports the number of bytes EncodeUint64 would produce for v,
// without allocating.
func Len(v uint64) int {
	switch {
	case v <= 0xFF:
		return 2
	case v <= 0xFFFF:
		return 3
	case v <= 0xFFFFFFFF:
		return 5
	default:
		return 9
	}
}
