package vtype

import (
	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/varint"
)

// elemCount returns the product of shape, failing with
// ErrInvariantViolation on overflow rather than silently wrapping.
func elemCount(shape []uint64) (uint64, error) {
	var total uint64 = 1
	for _, dim := range shape {
		if dim != 0 && total > (1<<64-1)/dim {
			return 0, errs.ErrInvariantViolation
		}
		total *= dim
	}
	return total, nil
}

// elemStreamSize returns the number of data bytes a dense row-major
// element stream of count elements of tag occupies: ceil(count/8) for
// boolean elements (packed 8 per byte, MSB-first, spec §4.2 "Tensor
// element stream policy"), count*width otherwise.
func elemStreamSize(tag ElemTag, count uint64) (uint64, error) {
	if tag.IsBool() {
		return (count + 7) / 8, nil
	}
	w, err := tag.ByteWidth()
	if err != nil {
		return 0, err
	}
	return count * uint64(w), nil
}

// Tensor is a dense, row-major, N-dimensional array of a single element
// type (family 't'). Data holds the encoded element stream exactly as it
// appears on the wire (bit-packed for boolean elements, else
// concatenated fixed-width elements in row-major order); this mirrors
// spec.md §9's parametric recommendation — one Go type for every
// (element family, precision) combination, with the element type
// resolved at runtime via Elem rather than at compile time.
type Tensor struct {
	Elem  ElemTag
	Shape []uint64
	Data  []byte
}

func (Tensor) Family() format.Family { return format.FamilyTensor }

func (t Tensor) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyTensor))
	dst = varint.EncodeUint64(dst, uint64(len(t.Shape)))
	dst = t.Elem.encode(dst)
	for _, dim := range t.Shape {
		dst = varint.EncodeUint64(dst, dim)
	}
	return append(dst, t.Data...)
}

func decodeTensor(data []byte) (Value, int, error) {
	shape, elem, pos, err := decodeTensorHeader(data)
	if err != nil {
		return nil, 0, err
	}
	count, err := elemCount(shape)
	if err != nil {
		return nil, 0, err
	}
	size, err := elemStreamSize(elem, count)
	if err != nil {
		return nil, 0, err
	}
	end := pos + int(size)
	if end < pos || end > len(data) {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	body := append([]byte(nil), data[pos:end]...)
	return Tensor{Elem: elem, Shape: shape, Data: body}, end, nil
}

// decodeTensorHeader parses the ndim/elem-tag/shape prefix shared by
// dense and strided tensors (family byte already consumed by caller via
// data[0]; parsing starts after it).
func decodeTensorHeader(data []byte) (shape []uint64, elem ElemTag, pos int, err error) {
	if len(data) < 1 {
		return nil, ElemTag{}, 0, errs.ErrUnexpectedEOF
	}
	ndim, n, err := varint.DecodeUint64(data[1:])
	if err != nil {
		return nil, ElemTag{}, 0, err
	}
	pos = 1 + n

	elem, n, err = decodeElemTag(data[pos:])
	if err != nil {
		return nil, ElemTag{}, 0, err
	}
	pos += n

	shape = make([]uint64, ndim)
	for i := range shape {
		v, n, err := varint.DecodeUint64(data[pos:])
		if err != nil {
			return nil, ElemTag{}, 0, err
		}
		shape[i] = v
		pos += n
	}
	return shape, elem, pos, nil
}

// StridedTensor is a dense tensor plus an explicit per-dimension stride
// (family 'q'), e.g. for column-major layouts. Encoding preserves shape
// and stride exactly; it performs no layout transformation itself.
type StridedTensor struct {
	Elem   ElemTag
	Shape  []uint64
	Stride []uint64
	Data   []byte
}

func (StridedTensor) Family() format.Family { return format.FamilyStrided }

func (t StridedTensor) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyStrided))
	dst = varint.EncodeUint64(dst, uint64(len(t.Shape)))
	dst = t.Elem.encode(dst)
	for _, dim := range t.Shape {
		dst = varint.EncodeUint64(dst, dim)
	}
	for _, s := range t.Stride {
		dst = varint.EncodeUint64(dst, s)
	}
	return append(dst, t.Data...)
}

func decodeStridedTensor(data []byte) (Value, int, error) {
	shape, elem, pos, err := decodeTensorHeader(data)
	if err != nil {
		return nil, 0, err
	}
	stride := make([]uint64, len(shape))
	for i := range stride {
		v, n, err := varint.DecodeUint64(data[pos:])
		if err != nil {
			return nil, 0, err
		}
		stride[i] = v
		pos += n
	}

	count, err := elemCount(shape)
	if err != nil {
		return nil, 0, err
	}
	size, err := elemStreamSize(elem, count)
	if err != nil {
		return nil, 0, err
	}
	end := pos + int(size)
	if end < pos || end > len(data) {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	body := append([]byte(nil), data[pos:end]...)
	return StridedTensor{Elem: elem, Shape: shape, Stride: stride, Data: body}, end, nil
}

// BitpackedTensor is an N-dimensional array of integers at an arbitrary
// 1..256 bit depth (family 'p'). BitDepth 0 on the wire denotes 256.
type BitpackedTensor struct {
	BitDepth int // 1..256
	Shape    []uint64
	Data     []byte
}

func (BitpackedTensor) Family() format.Family { return format.FamilyBitpacked }

func (t BitpackedTensor) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyBitpacked))
	dst = varint.EncodeUint64(dst, uint64(len(t.Shape)))
	wireDepth := byte(t.BitDepth)
	if t.BitDepth == 256 {
		wireDepth = 0
	}
	dst = append(dst, wireDepth)
	for _, dim := range t.Shape {
		dst = varint.EncodeUint64(dst, dim)
	}
	return append(dst, t.Data...)
}

func decodeBitpackedTensor(data []byte) (Value, int, error) {
	if len(data) < 2 {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	ndim, n, err := varint.DecodeUint64(data[1:])
	if err != nil {
		return nil, 0, err
	}
	pos := 1 + n

	if pos >= len(data) {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	depth := int(data[pos])
	if depth == 0 {
		depth = 256
	}
	pos++

	shape := make([]uint64, ndim)
	for i := range shape {
		v, n, err := varint.DecodeUint64(data[pos:])
		if err != nil {
			return nil, 0, err
		}
		shape[i] = v
		pos += n
	}

	count, err := elemCount(shape)
	if err != nil {
		return nil, 0, err
	}
	totalBits := count * uint64(depth)
	size := (totalBits + 7) / 8
	end := pos + int(size)
	if end < pos || end > len(data) {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	body := append([]byte(nil), data[pos:end]...)
	return BitpackedTensor{BitDepth: depth, Shape: shape, Data: body}, end, nil
}

// PackBits packs count values, each depth bits wide (depth <= 64), from
// values MSB-first into a new byte slice, per the bitpacked tensor wire
// format: ceil(count*depth/8) bytes, last byte zero-padded.
func PackBits(values []uint64, depth int) []byte {
	totalBits := uint64(len(values)) * uint64(depth)
	out := make([]byte, (totalBits+7)/8)
	var bitPos uint64
	for _, v := range values {
		for b := depth - 1; b >= 0; b-- {
			if v&(1<<uint(b)) != 0 {
				out[bitPos/8] |= 1 << uint(7-bitPos%8)
			}
			bitPos++
		}
	}
	return out
}

// UnpackBits is the inverse of PackBits.
func UnpackBits(data []byte, depth int, count uint64) []uint64 {
	out := make([]uint64, count)
	var bitPos uint64
	for i := range out {
		var v uint64
		for b := 0; b < depth; b++ {
			bit := (data[bitPos/8] >> uint(7-bitPos%8)) & 1
			v = v<<1 | uint64(bit)
			bitPos++
		}
		out[i] = v
	}
	return out
}

// PackBools packs boolean values 8 per byte, MSB-first, matching the
// tensor element stream policy for boolean element tensors.
func PackBools(values []bool) []byte {
	out := make([]byte, (len(values)+7)/8)
	for i, v := range values {
		if v {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// UnpackBools is the inverse of PackBools.
func UnpackBools(data []byte, count uint64) []bool {
	out := make([]bool, count)
	for i := range out {
		out[i] = (data[i/8]>>uint(7-i%8))&1 != 0
	}
	return out
}
