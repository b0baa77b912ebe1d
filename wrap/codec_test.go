package wrap_test

import (
	"testing"

	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/wrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChaCha20Poly1305RoundTrip(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	codec, err := wrap.CreateCodec(format.WrapChaCha20Poly1305, key)
	require.NoError(t, err)
	assert.Equal(t, format.WrapChaCha20Poly1305, codec.Algorithm())

	plaintext := []byte("section body to encrypt")
	sealed, err := codec.Seal(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, sealed)

	opened, err := codec.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestChaCha20Poly1305RejectsTamperedCiphertext(t *testing.T) {
	key := make([]byte, 32)
	codec, err := wrap.CreateCodec(format.WrapChaCha20Poly1305, key)
	require.NoError(t, err)

	sealed, err := codec.Seal([]byte("secret"))
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0xFF

	_, err = codec.Open(sealed)
	assert.Error(t, err)
}

func TestAES256GCMRoundTrip(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(255 - i)
	}
	codec, err := wrap.CreateCodec(format.WrapAES256GCM, key)
	require.NoError(t, err)

	plaintext := []byte("another section body")
	sealed, err := codec.Seal(plaintext)
	require.NoError(t, err)

	opened, err := codec.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestZstdRoundTrip(t *testing.T) {
	codec, err := wrap.CreateCodec(wrap.AlgoZstd, nil)
	require.NoError(t, err)

	plaintext := []byte("compress me compress me compress me compress me")
	sealed, err := codec.Seal(plaintext)
	require.NoError(t, err)

	opened, err := codec.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestLZ4RoundTrip(t *testing.T) {
	codec, err := wrap.CreateCodec(wrap.AlgoLZ4, nil)
	require.NoError(t, err)

	plaintext := []byte("lz4 lz4 lz4 lz4 lz4 lz4 lz4 lz4 lz4 lz4 lz4 lz4")
	sealed, err := codec.Seal(plaintext)
	require.NoError(t, err)

	opened, err := codec.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestCreateCodecUnknownAlgorithm(t *testing.T) {
	_, err := wrap.CreateCodec(format.Algorithm('?'), nil)
	assert.Error(t, err)
}
