package varint_test

import (
	"testing"

	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeUint64RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 255, 256, 65535, 65536, 1<<32 - 1, 1 << 32, 1<<64 - 1}

	for _, v := range values {
		buf := varint.EncodeUint64(nil, v)
		got, n, err := varint.DecodeUint64(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(buf), n)
	}
}

func TestEncodeUint64PicksSmallestWidth(t *testing.T) {
	cases := []struct {
		v    uint64
		tag  byte
		size int
	}{
		{0, '3', 2},
		{255, '3', 2},
		{256, '4', 3},
		{65535, '4', 3},
		{65536, '5', 5},
		{1<<32 - 1, '5', 5},
		{1 << 32, '6', 9},
		{1<<64 - 1, '6', 9},
	}

	for _, c := range cases {
		buf := varint.EncodeUint64(nil, c.v)
		assert.Equal(t, c.tag, buf[0])
		assert.Len(t, buf, c.size)
		assert.Equal(t, varint.Len(c.v), c.size)
	}
}

func TestDecodeUnexpectedEOF(t *testing.T) {
	_, _, err := varint.Decode(nil)
	assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)

	_, _, err = varint.Decode([]byte{'5', 0x01, 0x02})
	assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestDecodeInvalidWidthTag(t *testing.T) {
	_, _, err := varint.Decode([]byte{'x', 0x00})
	assert.ErrorIs(t, err, errs.ErrInvalidData)
}

func TestDecodeLegacySubByteTags(t *testing.T) {
	v, n, err := varint.Decode([]byte{'1', 0b1100_0000})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	lo, ok := v.Uint64()
	require.True(t, ok)
	assert.Equal(t, uint64(3), lo)

	v, n, err = varint.Decode([]byte{'2', 0b1111_0000})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	lo, ok = v.Uint64()
	require.True(t, ok)
	assert.Equal(t, uint64(15), lo)
}

func TestUint128RoundTrip(t *testing.T) {
	v := varint.Uint128{Hi: 0x0102030405060708, Lo: 0x090a0b0c0d0e0f10}
	buf := varint.EncodeUint(nil, v)
	require.Equal(t, byte('7'), buf[0])
	require.Len(t, buf, 17)

	got, n, err := varint.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, 17, n)
	assert.Equal(t, v, got)
}

func TestEncodeInclusiveCoversOwnLength(t *testing.T) {
	for _, v := range []uint64{0, 1, 250, 65530, 1<<32 - 10} {
		buf := varint.EncodeInclusive(nil, v)
		decoded, n, err := varint.DecodeUint64(buf)
		require.NoError(t, err)
		assert.Equal(t, n, len(buf))
		assert.Equal(t, v+uint64(len(buf)), decoded)
	}
}

func TestEncodeDecodeInt64RoundTrip(t *testing.T) {
	values := []int64{0, -1, 127, -128, 128, -129, 32767, -32768, 32768,
		1<<31 - 1, -(1 << 31), 1 << 31, 1<<63 - 1, -(1 << 63)}

	for _, v := range values {
		buf := varint.EncodeInt64(nil, v)
		got, n, err := varint.DecodeInt64(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(buf), n)
	}
}

func TestDecodeInt64RejectsWidth16(t *testing.T) {
	buf := make([]byte, 17)
	buf[0] = '7'
	_, _, err := varint.DecodeInt64(buf)
	assert.ErrorIs(t, err, errs.ErrInvalidData)
}
