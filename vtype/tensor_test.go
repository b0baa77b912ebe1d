package vtype_test

import (
	"testing"

	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/vtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenseTensorU8RoundTrip(t *testing.T) {
	elem := vtype.ElemTag{Family: format.FamilyBool, P1: format.Size8}
	tensor := vtype.Tensor{
		Elem:  elem,
		Shape: []uint64{2, 3},
		Data:  []byte{1, 2, 3, 4, 5, 6},
	}
	buf := tensor.Encode(nil)
	got, n, err := vtype.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, tensor, got)
}

func TestDenseTensorBoolElementsBitPacked(t *testing.T) {
	elem := vtype.ElemTag{Family: format.FamilyBool, P1: 0x00}
	values := []bool{true, false, true, true, false, false, false, true, true}
	data := vtype.PackBools(values)
	tensor := vtype.Tensor{Elem: elem, Shape: []uint64{9}, Data: data}

	buf := tensor.Encode(nil)
	got, n, err := vtype.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	decoded := got.(vtype.Tensor)
	assert.Equal(t, data, decoded.Data)
	assert.Equal(t, values, vtype.UnpackBools(decoded.Data, 9))
}

// TestBitpackBoundary covers spec.md §8 scenario S3: shape [3], bit
// depth 3 -> 9 bits -> 2 payload bytes, last 7 bits zero-padded.
func TestBitpackBoundary(t *testing.T) {
	values := []uint64{0b101, 0b110, 0b011}
	data := vtype.PackBits(values, 3)
	require.Len(t, data, 2)

	tensor := vtype.BitpackedTensor{BitDepth: 3, Shape: []uint64{3}, Data: data}
	buf := tensor.Encode(nil)
	got, n, err := vtype.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	decoded := got.(vtype.BitpackedTensor)
	assert.Equal(t, values, vtype.UnpackBits(decoded.Data, 3, 3))
}

func TestBitpackedTensorDepth256Wire(t *testing.T) {
	tensor := vtype.BitpackedTensor{BitDepth: 256, Shape: []uint64{1}, Data: make([]byte, 32)}
	buf := tensor.Encode(nil)
	// wire depth byte (index 1+len(ndim varint)) must be 0x00 for 256.
	got, n, err := vtype.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, 256, got.(vtype.BitpackedTensor).BitDepth)
}

// TestStridedTensorColumnMajor covers spec.md §8 scenario S5: a 100x50
// f6 strided tensor with stride [1, 100] (column-major).
func TestStridedTensorColumnMajor(t *testing.T) {
	elem := vtype.ElemTag{Family: format.FamilyFloat, P1: format.Size64}
	shape := []uint64{100, 50}
	stride := []uint64{1, 100}
	data := make([]byte, 100*50*8)
	for i := range data {
		data[i] = byte(i)
	}
	tensor := vtype.StridedTensor{Elem: elem, Shape: shape, Stride: stride, Data: data}

	buf := tensor.Encode(nil)
	got, n, err := vtype.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, tensor, got)
}
