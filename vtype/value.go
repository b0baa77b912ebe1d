// Package vtype implements VSF's type algebra (spec §3/§4.2): the family
// tags, the Spirix custom float grid, tensors, and the container-scalar
// value types, each able to encode itself to bytes and decode itself
// back from the same byte-for-byte layout.
//
// Per the reference design notes, the ~200 nominal type variants are not
// generated as 200 Go types. Small scalars (bool through u128, f32/f64,
// complex) get one Go type each, since the type system earns its keep
// there. The Spirix F×E grid and the three tensor kinds are parametric:
// one Go type per shape, carrying a runtime element tag, with dispatch
// happening once at the family/size-byte boundary in Decode below.
package vtype

import (
	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
)

// Value is any typed value this package can encode and decode.
type Value interface {
	// Family returns the one-byte family tag this value encodes under.
	Family() format.Family

	// Encode appends this value's byte-exact encoding (including its
	// family tag and any size/precision bytes) to dst and returns the
	// result.
	Encode(dst []byte) []byte
}

// Decode reads one typed value from the front of data, dispatching on
// its family tag (and, for several families, one or more following
// bytes) per spec §4.2's dispatch table. It returns the decoded value
// and the number of bytes consumed.
func Decode(data []byte) (Value, int, error) {
	if len(data) < 1 {
		return nil, 0, errs.ErrUnexpectedEOF
	}

	switch format.Family(data[0]) {
	case format.FamilyBool: // also unsigned int; disambiguated by S byte
		return decodeUint(data)
	case format.FamilySignedInt:
		return decodeInt(data)
	case format.FamilyFloat:
		return decodeFloat(data)
	case format.FamilyComplex:
		return decodeComplex(data)
	case format.FamilySpirix:
		return decodeSpirixScalar(data)
	case format.FamilyCircle:
		return decodeSpirixCircle(data)
	case format.FamilyString:
		return decodeString(data)
	case format.FamilyEagleTime:
		return decodeEagleTime(data)
	case format.FamilyGeo:
		return decodeGeo(data)
	case format.FamilyTensor:
		return decodeTensor(data)
	case format.FamilyStrided:
		return decodeStridedTensor(data)
	case format.FamilyBitpacked:
		return decodeBitpackedTensor(data)
	case format.FamilyDataName:
		return decodeDataName(data)
	case format.FamilyLabel:
		return decodeLabelRef(data)
	case format.FamilyOffset:
		return decodeOffset(data)
	case format.FamilyBitLength:
		return decodeBitLength(data)
	case format.FamilyCount:
		return decodeCount(data)
	case format.FamilyVersion:
		return decodeVersion(data)
	case format.FamilyCompatVer:
		return decodeCompatVersion(data)
	case format.FamilyMarker:
		return decodeMarker(data)
	case format.FamilyReference:
		return decodeReference(data)
	case format.FamilyHash:
		return decodeHash(data)
	case format.FamilySignature:
		return decodeSignature(data)
	case format.FamilyKey:
		return decodeKey(data)
	case format.FamilyMAC:
		return decodeMAC(data)
	case format.FamilyWrap:
		return decodeWrap(data)
	default:
		return nil, 0, errs.ErrUnknownFamilyTag
	}
}
