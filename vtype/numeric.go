package vtype

import (
	"math"

	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/varint"
)

// Bool is the one-byte boolean family: 0x00 is false, 0xFF is true.
type Bool bool

func (Bool) Family() format.Family { return format.FamilyBool }

func (b Bool) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyBool))
	if b {
		return append(dst, format.BoolTrue)
	}
	return append(dst, format.BoolFalse)
}

// Uint is an auto-sized unsigned integer: the encoder picks the
// smallest varint width that holds the value. The resulting bytes are
// the same as a FixedUint of that width, so Decode returns them as a
// FixedUint.
type Uint uint64

func (Uint) Family() format.Family { return format.FamilyBool }

func (u Uint) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyBool))
	return varint.EncodeUint64(dst, uint64(u))
}

// FixedUint is a fixed-width unsigned integer, one of u3..u7 (8..128
// bits). Width128 values use varint.Uint128 since they do not fit a
// uint64.
type FixedUint struct {
	Width byte // format.Size8 .. format.Size128
	Value varint.Uint128
}

func (FixedUint) Family() format.Family { return format.FamilyBool }

func (u FixedUint) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyBool), u.Width)
	return appendFixedWidth(dst, u.Width, u.Value)
}

func appendFixedWidth(dst []byte, width byte, v varint.Uint128) []byte {
	n := widthBytes(width)
	buf := make([]byte, n)
	putUint128BE(buf, v)
	return append(dst, buf...)
}

func widthBytes(tag byte) int {
	switch tag {
	case format.Size8:
		return 1
	case format.Size16:
		return 2
	case format.Size32:
		return 4
	case format.Size64:
		return 8
	case format.Size128:
		return 16
	default:
		return 0
	}
}

func putUint128BE(buf []byte, v varint.Uint128) {
	n := len(buf)
	if n <= 8 {
		lo := v.Lo
		for i := n - 1; i >= 0; i-- {
			buf[i] = byte(lo)
			lo >>= 8
		}
		return
	}
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

func readUint128BE(buf []byte) varint.Uint128 {
	n := len(buf)
	if n <= 8 {
		var lo uint64
		for _, b := range buf {
			lo = lo<<8 | uint64(b)
		}
		return varint.Uint128{Lo: lo}
	}
	var hi, lo uint64
	for _, b := range buf[:n-8] {
		hi = hi<<8 | uint64(b)
	}
	for _, b := range buf[n-8:] {
		lo = lo<<8 | uint64(b)
	}
	return varint.Uint128{Hi: hi, Lo: lo}
}

// decodeUint handles family tag 'u': a following 0x00/0xFF byte means
// boolean, a following width tag '3'..'7' means fixed-width unsigned,
// anything else backs up one byte and reads an auto-sized varint.
func decodeUint(data []byte) (Value, int, error) {
	if len(data) < 2 {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	s := data[1]
	switch s {
	case format.BoolFalse:
		return Bool(false), 2, nil
	case format.BoolTrue:
		return Bool(true), 2, nil
	case format.Size8, format.Size16, format.Size32, format.Size64, format.Size128:
		n := widthBytes(s)
		if len(data) < 2+n {
			return nil, 0, errs.ErrUnexpectedEOF
		}
		v := readUint128BE(data[2 : 2+n])
		return FixedUint{Width: s, Value: v}, 2 + n, nil
	default:
		v, consumed, err := varint.Decode(data[1:])
		if err != nil {
			return nil, 0, err
		}
		lo, ok := v.Uint64()
		if !ok {
			return nil, 0, errs.ErrInvariantViolation
		}
		return Uint(lo), 1 + consumed, nil
	}
}

// Int is an auto-sized signed integer. The resulting bytes are the same
// as a FixedInt of the chosen width, so Decode returns them as a
// FixedInt.
type Int int64

func (Int) Family() format.Family { return format.FamilySignedInt }

func (i Int) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilySignedInt))
	return varint.EncodeInt64(dst, int64(i))
}

// FixedInt is a fixed-width two's-complement signed integer, one of
// i3..i7. i7 (128-bit) stores its two's-complement bytes directly since
// int64 cannot represent the full range.
type FixedInt struct {
	Width byte
	Value [16]byte // only the low widthBytes(Width) bytes are meaningful
}

func (FixedInt) Family() format.Family { return format.FamilySignedInt }

func (i FixedInt) Encode(dst []byte) []byte {
	n := widthBytes(i.Width)
	dst = append(dst, byte(format.FamilySignedInt), i.Width)
	return append(dst, i.Value[16-n:]...)
}

func decodeInt(data []byte) (Value, int, error) {
	if len(data) < 2 {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	s := data[1]
	switch s {
	case format.Size8, format.Size16, format.Size32, format.Size64, format.Size128:
		n := widthBytes(s)
		if len(data) < 2+n {
			return nil, 0, errs.ErrUnexpectedEOF
		}
		var buf [16]byte
		copy(buf[16-n:], data[2:2+n])
		// sign-extend into the unused high bytes for widths < 16
		if n < 16 && data[2]&0x80 != 0 {
			for i := 0; i < 16-n; i++ {
				buf[i] = 0xFF
			}
		}
		return FixedInt{Width: s, Value: buf}, 2 + n, nil
	default:
		v, consumed, err := varint.DecodeInt64(data[1:])
		if err != nil {
			return nil, 0, err
		}
		return Int(v), 1 + consumed, nil
	}
}

// Float32 and Float64 are IEEE-754 values, big-endian, family 'f'.
type Float32 float32
type Float64 float64

func (Float32) Family() format.Family { return format.FamilyFloat }
func (Float64) Family() format.Family { return format.FamilyFloat }

func (f Float32) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyFloat), format.Size32)
	return appendUint32BE(dst, math.Float32bits(float32(f)))
}

func (f Float64) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyFloat), format.Size64)
	return appendUint64BE(dst, math.Float64bits(float64(f)))
}

func appendUint32BE(dst []byte, v uint32) []byte {
	return append(dst, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func appendUint64BE(dst []byte, v uint64) []byte {
	return append(dst,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func readUint32BE(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func readUint64BE(b []byte) uint64 {
	var v uint64
	for _, c := range b[:8] {
		v = v<<8 | uint64(c)
	}
	return v
}

func decodeFloat(data []byte) (Value, int, error) {
	if len(data) < 2 {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	switch data[1] {
	case format.Size32:
		if len(data) < 6 {
			return nil, 0, errs.ErrUnexpectedEOF
		}
		return Float32(math.Float32frombits(readUint32BE(data[2:6]))), 6, nil
	case format.Size64:
		if len(data) < 10 {
			return nil, 0, errs.ErrUnexpectedEOF
		}
		return Float64(math.Float64frombits(readUint64BE(data[2:10]))), 10, nil
	default:
		return nil, 0, errs.ErrInvalidData
	}
}

// Complex64 and Complex128 are family 'j': two floats, real then
// imaginary, concatenated.
type Complex64 complex64
type Complex128 complex128

func (Complex64) Family() format.Family  { return format.FamilyComplex }
func (Complex128) Family() format.Family { return format.FamilyComplex }

func (c Complex64) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyComplex), format.Size32)
	dst = appendUint32BE(dst, math.Float32bits(real(complex64(c))))
	return appendUint32BE(dst, math.Float32bits(imag(complex64(c))))
}

func (c Complex128) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyComplex), format.Size64)
	dst = appendUint64BE(dst, math.Float64bits(real(complex128(c))))
	return appendUint64BE(dst, math.Float64bits(imag(complex128(c))))
}

func decodeComplex(data []byte) (Value, int, error) {
	if len(data) < 2 {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	switch data[1] {
	case format.Size32:
		if len(data) < 10 {
			return nil, 0, errs.ErrUnexpectedEOF
		}
		re := math.Float32frombits(readUint32BE(data[2:6]))
		im := math.Float32frombits(readUint32BE(data[6:10]))
		return Complex64(complex(re, im)), 10, nil
	case format.Size64:
		if len(data) < 18 {
			return nil, 0, errs.ErrUnexpectedEOF
		}
		re := math.Float64frombits(readUint64BE(data[2:10]))
		im := math.Float64frombits(readUint64BE(data[10:18]))
		return Complex128(complex(re, im)), 18, nil
	default:
		return nil, 0, errs.ErrInvalidData
	}
}
