package vtype_test

import (
	"testing"

	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/vtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashRoundTrip(t *testing.T) {
	payload := make([]byte, 32)
	for i := range payload {
		payload[i] = byte(i)
	}
	h := vtype.NewHash(format.HashSHA256, payload)
	got, _ := roundTrip(t, h)
	assert.Equal(t, h, got)
}

func TestHashRejectsWrongFixedLength(t *testing.T) {
	h := vtype.NewHash(format.HashSHA256, make([]byte, 16))
	buf := h.Encode(nil)
	_, _, err := vtype.Decode(buf)
	assert.ErrorIs(t, err, errs.ErrInvariantViolation)
}

func TestSignatureRoundTrip(t *testing.T) {
	sig := vtype.NewSignature(format.SigEd25519, make([]byte, 64))
	got, _ := roundTrip(t, sig)
	assert.Equal(t, sig, got)
}

func TestWrapRoundTripNoLengthCheck(t *testing.T) {
	w := vtype.NewWrap(format.WrapChaCha20Poly1305, []byte("ciphertext of arbitrary length"))
	got, n := roundTrip(t, w)
	require.Greater(t, n, 0)
	assert.Equal(t, w, got)
}

func TestCryptoBytesRejectsMisalignedBitLength(t *testing.T) {
	// h<algo>[7 bits] is not a multiple of 8.
	buf := []byte{'h', byte(format.HashBLAKE3), '3', 7}
	_, _, err := vtype.Decode(buf)
	assert.ErrorIs(t, err, errs.ErrInvalidData)
}
