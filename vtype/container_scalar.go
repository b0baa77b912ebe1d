package vtype

import (
	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/varint"
)

// DataName is a name value (family 'd'): the same varint-length-prefixed
// UTF-8 shape as String, used for section names and field names in the
// label table, preamble, and field list.
type DataName string

func (DataName) Family() format.Family { return format.FamilyDataName }

func (n DataName) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyDataName))
	dst = varint.EncodeUint64(dst, uint64(len(n)))
	return append(dst, n...)
}

func decodeDataName(data []byte) (Value, int, error) {
	return decodeLengthPrefixed(data, format.FamilyDataName)
}

// VarintScalar is the shared shape of the remaining container scalars —
// label reference ('l'), offset ('o'), bit length ('b'), count ('n'),
// version ('z'), backward-compat version ('y'), and reference ('r') —
// each just a family tag followed by one auto-sized varint. The family
// is fixed at construction time by the NewXxx helpers below so a
// VarintScalar always encodes under the tag it was built for.
type VarintScalar struct {
	family format.Family
	value  uint64
}

func (v VarintScalar) Family() format.Family { return v.family }

// Uint64 returns the scalar's value.
func (v VarintScalar) Uint64() uint64 { return v.value }

func (v VarintScalar) Encode(dst []byte) []byte {
	dst = append(dst, byte(v.family))
	return varint.EncodeUint64(dst, v.value)
}

func decodeVarintScalar(data []byte, family format.Family) (Value, int, error) {
	v, n, err := varint.DecodeUint64(data[1:])
	if err != nil {
		return nil, 0, err
	}
	return VarintScalar{family: family, value: v}, 1 + n, nil
}

func NewLabelRef(v uint64) VarintScalar       { return VarintScalar{format.FamilyLabel, v} }
func NewOffset(v uint64) VarintScalar         { return VarintScalar{format.FamilyOffset, v} }
func NewBitLength(v uint64) VarintScalar       { return VarintScalar{format.FamilyBitLength, v} }
func NewCount(v uint64) VarintScalar          { return VarintScalar{format.FamilyCount, v} }
func NewVersion(v uint64) VarintScalar        { return VarintScalar{format.FamilyVersion, v} }
func NewCompatVersion(v uint64) VarintScalar  { return VarintScalar{format.FamilyCompatVer, v} }
func NewReference(v uint64) VarintScalar      { return VarintScalar{format.FamilyReference, v} }

func decodeLabelRef(data []byte) (Value, int, error) {
	return decodeVarintScalar(data, format.FamilyLabel)
}
func decodeOffset(data []byte) (Value, int, error) {
	return decodeVarintScalar(data, format.FamilyOffset)
}
func decodeBitLength(data []byte) (Value, int, error) {
	return decodeVarintScalar(data, format.FamilyBitLength)
}
func decodeCount(data []byte) (Value, int, error) {
	return decodeVarintScalar(data, format.FamilyCount)
}
func decodeVersion(data []byte) (Value, int, error) {
	return decodeVarintScalar(data, format.FamilyVersion)
}
func decodeCompatVersion(data []byte) (Value, int, error) {
	return decodeVarintScalar(data, format.FamilyCompatVer)
}
func decodeReference(data []byte) (Value, int, error) {
	return decodeVarintScalar(data, format.FamilyReference)
}

// Marker is a single opaque sentinel byte (family 'm'), used for
// structural markers that carry no other payload.
type Marker byte

func (Marker) Family() format.Family { return format.FamilyMarker }

func (m Marker) Encode(dst []byte) []byte {
	return append(dst, byte(format.FamilyMarker), byte(m))
}

func decodeMarker(data []byte) (Value, int, error) {
	if len(data) < 2 {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	return Marker(data[1]), 2, nil
}
