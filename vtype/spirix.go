package vtype

import (
	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
)

// SpirixScalar is VSF's custom floating-point format: value = fraction *
// 2^exponent, where fraction and exponent are independently sized signed
// integers. F and E are width tags ('3'..'7') selecting 1/2/4/8/16 bytes
// each, giving 25 (F, E) combinations. Fraction and Exponent are stored
// as their raw big-endian two's-complement bytes rather than decoded
// into a Go integer type, since the format only requires bit-exact
// round-tripping, not arithmetic (see DESIGN.md).
type SpirixScalar struct {
	F, E     byte
	Fraction []byte // len == widthBytes(F)
	Exponent []byte // len == widthBytes(E)
}

func (SpirixScalar) Family() format.Family { return format.FamilySpirix }

func (s SpirixScalar) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilySpirix), s.F, s.E)
	dst = append(dst, s.Fraction...)
	return append(dst, s.Exponent...)
}

func decodeSpirixScalar(data []byte) (Value, int, error) {
	if len(data) < 3 {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	f, e := data[1], data[2]
	fw, ew := widthBytes(f), widthBytes(e)
	if fw == 0 || ew == 0 {
		return nil, 0, errs.ErrInvalidData
	}
	total := 3 + fw + ew
	if len(data) < total {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	frac := append([]byte(nil), data[3:3+fw]...)
	exp := append([]byte(nil), data[3+fw:total]...)
	return SpirixScalar{F: f, E: e, Fraction: frac, Exponent: exp}, total, nil
}

// SpirixCircle is the three-field Spirix variant: real and imaginary
// fractional components (each F-wide) plus one shared exponent (E-wide).
type SpirixCircle struct {
	F, E     byte
	Real     []byte
	Imag     []byte
	Exponent []byte
}

func (SpirixCircle) Family() format.Family { return format.FamilyCircle }

func (s SpirixCircle) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyCircle), s.F, s.E)
	dst = append(dst, s.Real...)
	dst = append(dst, s.Imag...)
	return append(dst, s.Exponent...)
}

func decodeSpirixCircle(data []byte) (Value, int, error) {
	if len(data) < 3 {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	f, e := data[1], data[2]
	fw, ew := widthBytes(f), widthBytes(e)
	if fw == 0 || ew == 0 {
		return nil, 0, errs.ErrInvalidData
	}
	total := 3 + fw + fw + ew
	if len(data) < total {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	re := append([]byte(nil), data[3:3+fw]...)
	im := append([]byte(nil), data[3+fw:3+2*fw]...)
	exp := append([]byte(nil), data[3+2*fw:total]...)
	return SpirixCircle{F: f, E: e, Real: re, Imag: im, Exponent: exp}, total, nil
}

// spirixScalarElemWidth and spirixCircleElemWidth return the total
// encoded byte width (excluding the family and F/E tag bytes) of a
// Spirix scalar or circle element, for tensor element-stream sizing.
func spirixScalarElemWidth(f, e byte) int { return widthBytes(f) + widthBytes(e) }
func spirixCircleElemWidth(f, e byte) int { return 2*widthBytes(f) + widthBytes(e) }
