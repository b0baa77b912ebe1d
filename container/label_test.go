package container_test

import (
	"testing"

	"github.com/nspiker/vsf/container"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/vtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelRoundTripNoExtras(t *testing.T) {
	l := &container.Label{Name: "m", Offset: 42, Size: 7, ChildCount: 1}
	buf := l.Encode(nil)

	got, n, err := container.DecodeLabel(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, l, got)
}

func TestLabelRoundTripWithHashAndSignature(t *testing.T) {
	h := vtype.NewHash(format.HashSHA256, make([]byte, 32))
	sig := vtype.NewSignature(format.SigEd25519, make([]byte, 64))
	l := &container.Label{Name: "raw", Hash: &h, Signature: &sig, Offset: 100, Size: 50, ChildCount: 3}

	buf := l.Encode(nil)
	got, n, err := container.DecodeLabel(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, l, got)
}

func TestLabelOmitsChildCountWhenWrapped(t *testing.T) {
	w := vtype.NewWrap(format.WrapChaCha20Poly1305, []byte("ciphertext"))
	l := &container.Label{Name: "secret", Wrap: &w, Offset: 10, Size: 20}

	buf := l.Encode(nil)
	got, n, err := container.DecodeLabel(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, uint64(0), got.ChildCount)
	assert.Equal(t, l.Name, got.Name)
	assert.Equal(t, l.Offset, got.Offset)
	assert.Equal(t, l.Size, got.Size)
}
