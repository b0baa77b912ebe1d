package vtype

import (
	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
)

// ElemTag identifies the element type of a dense or strided tensor: one
// family byte plus one precision byte, or two precision bytes (F, E) for
// the Spirix families. This is the "parametric" half of the Spirix/
// tensor design spec.md §9 recommends in place of one generated Go type
// per (family, precision) pair — a tensor carries one ElemTag at
// runtime and every element in its data stream is dispatched through it.
type ElemTag struct {
	Family format.Family
	P1     byte // size tag for u/i/f/j; F for s/c
	P2     byte // unused except E for s/c
}

// IsBool reports whether this tag denotes the boolean element type,
// whose elements are bit-packed rather than byte-aligned.
func (t ElemTag) IsBool() bool {
	return t.Family == format.FamilyBool && t.P1 == 0x00
}

// ByteWidth returns the per-element byte width for every non-boolean
// element type. Calling it on a boolean tag is a programming error
// (bool elements have no fixed byte width; use the bit-packing helpers).
func (t ElemTag) ByteWidth() (int, error) {
	switch t.Family {
	case format.FamilyBool:
		n := widthBytes(t.P1)
		if n == 0 {
			return 0, errs.ErrUnknownFamilyTag
		}
		return n, nil
	case format.FamilySignedInt:
		n := widthBytes(t.P1)
		if n == 0 {
			return 0, errs.ErrUnknownFamilyTag
		}
		return n, nil
	case format.FamilyFloat:
		switch t.P1 {
		case format.Size32:
			return 4, nil
		case format.Size64:
			return 8, nil
		}
		return 0, errs.ErrUnknownFamilyTag
	case format.FamilyComplex:
		switch t.P1 {
		case format.Size32:
			return 8, nil
		case format.Size64:
			return 16, nil
		}
		return 0, errs.ErrUnknownFamilyTag
	case format.FamilySpirix:
		w := spirixScalarElemWidth(t.P1, t.P2)
		if w <= 0 {
			return 0, errs.ErrUnknownFamilyTag
		}
		return w, nil
	case format.FamilyCircle:
		w := spirixCircleElemWidth(t.P1, t.P2)
		if w <= 0 {
			return 0, errs.ErrUnknownFamilyTag
		}
		return w, nil
	default:
		return 0, errs.ErrUnknownFamilyTag
	}
}

func (t ElemTag) encode(dst []byte) []byte {
	dst = append(dst, byte(t.Family), t.P1)
	if t.Family == format.FamilySpirix || t.Family == format.FamilyCircle {
		dst = append(dst, t.P2)
	}
	return dst
}

func decodeElemTag(data []byte) (ElemTag, int, error) {
	if len(data) < 2 {
		return ElemTag{}, 0, errs.ErrUnexpectedEOF
	}
	family := format.Family(data[0])
	p1 := data[1]
	if family == format.FamilySpirix || family == format.FamilyCircle {
		if len(data) < 3 {
			return ElemTag{}, 0, errs.ErrUnexpectedEOF
		}
		return ElemTag{Family: family, P1: p1, P2: data[2]}, 3, nil
	}
	return ElemTag{Family: family, P1: p1}, 2, nil
}
