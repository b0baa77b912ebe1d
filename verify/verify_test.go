package verify_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/nspiker/vsf/container"
	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFile(t *testing.T, bodies map[string][]byte) ([]byte, *container.Header) {
	t.Helper()
	h := &container.Header{}
	var sizes []container.SectionSize
	var ordered [][]byte
	for _, name := range []string{"alpha", "beta"} {
		body := bodies[name]
		h.Labels = append(h.Labels, &container.Label{Name: name, ChildCount: 1})
		sizes = append(sizes, container.SectionSize{Name: name, Size: uint64(len(body))})
		ordered = append(ordered, body)
	}

	encoded, err := verify.Relayout(h, sizes, ordered)
	require.NoError(t, err)
	return encoded, h
}

// TestS4FileHashZeroPlaceholder covers spec.md §8 testable property 4
// and scenario S4: zeroing the 32 file-hash bytes and recomputing must
// reproduce exactly what is stored at the hash position.
func TestS4FileHashZeroPlaceholder(t *testing.T) {
	file, h := buildFile(t, map[string][]byte{
		"alpha": []byte("alpha-body-bytes"),
		"beta":  []byte("beta-body-bytes!"),
	})

	require.NoError(t, verify.VerifyFileHash(file, h.FileHashOffset))

	corrupted := append([]byte(nil), file...)
	corrupted[len(corrupted)-1] ^= 0xFF
	err := verify.VerifyFileHash(corrupted, h.FileHashOffset)
	assert.ErrorIs(t, err, errs.ErrFileHashMismatch)
}

// TestSectionHashLocality covers spec.md §8 testable property 5:
// mutating a byte outside a section's own range must not change that
// section's hash.
func TestSectionHashLocality(t *testing.T) {
	alpha := []byte("alpha-section-body")
	beta := []byte("beta-section-body-unchanged")

	want, err := verify.ComputeSectionHash(format.HashBLAKE3, alpha)
	require.NoError(t, err)

	mutatedBeta := append([]byte(nil), beta...)
	mutatedBeta[0] ^= 0xFF

	err = verify.VerifySectionHash(format.HashBLAKE3, alpha, want)
	assert.NoError(t, err)

	gotAfterBetaMutated, err := verify.ComputeSectionHash(format.HashBLAKE3, alpha)
	require.NoError(t, err)
	assert.Equal(t, want, gotAfterBetaMutated)
}

func TestSectionHashAlgorithms(t *testing.T) {
	body := []byte("section body content")

	for _, algo := range []format.Algorithm{format.HashBLAKE3, format.HashSHA256, format.HashSHA512} {
		digest, err := verify.ComputeSectionHash(algo, body)
		require.NoError(t, err)
		require.NoError(t, verify.VerifySectionHash(algo, body, digest))

		tampered := append([]byte(nil), digest...)
		tampered[0] ^= 0xFF
		assert.ErrorIs(t, verify.VerifySectionHash(algo, body, tampered), errs.ErrSectionHashMismatch)
	}
}

// TestSignatureForgeResistance covers spec.md §8 testable property 6.
func TestSignatureForgeResistance(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	other, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	section := []byte("signed section body")
	sig := verify.SignSection(section, priv)

	require.NoError(t, verify.VerifySectionSignature(section, sig, pub))
	assert.ErrorIs(t, verify.VerifySectionSignature(section, sig, other), errs.ErrSignatureInvalid)
}

func TestAttachHashValidatesFixedOutputSize(t *testing.T) {
	l := &container.Label{Name: "s"}
	err := verify.AttachHash(l, format.HashSHA256, make([]byte, 31))
	assert.ErrorIs(t, err, errs.ErrLengthMismatch)

	err = verify.AttachHash(l, format.HashSHA256, make([]byte, 32))
	require.NoError(t, err)
	assert.NotNil(t, l.Hash)
}

// TestS6RelayoutAttachingHashGrowsHeader covers spec.md §8 scenario S6:
// attaching a hash to a section's label after the file was already
// built must re-layout the header and leave the file self-consistent.
func TestS6RelayoutAttachingHashGrowsHeader(t *testing.T) {
	alpha := []byte("alpha-body")
	beta := []byte("beta-body-longer-than-alpha")

	h := &container.Header{
		Labels: []*container.Label{
			{Name: "alpha", ChildCount: 1},
			{Name: "beta", ChildCount: 1},
		},
	}
	sizes := []container.SectionSize{
		{Name: "alpha", Size: uint64(len(alpha))},
		{Name: "beta", Size: uint64(len(beta))},
	}
	bodies := [][]byte{alpha, beta}

	original, err := verify.Relayout(h, sizes, bodies)
	require.NoError(t, err)
	require.NoError(t, verify.VerifyFileHash(original, h.FileHashOffset))
	originalBetaOffset := h.Labels[1].Offset

	digest, err := verify.ComputeSectionHash(format.HashBLAKE3, alpha)
	require.NoError(t, err)
	require.NoError(t, verify.AttachHash(h.Labels[0], format.HashBLAKE3, digest))

	grown, err := verify.Relayout(h, sizes, bodies)
	require.NoError(t, err)

	require.NoError(t, verify.VerifyFileHash(grown, h.FileHashOffset))
	assert.Greater(t, h.Labels[1].Offset, originalBetaOffset)

	// Section bodies must be unchanged and still found at their new
	// offsets.
	assert.Equal(t, alpha, grown[h.Labels[0].Offset:h.Labels[0].Offset+uint64(len(alpha))])
	assert.Equal(t, beta, grown[h.Labels[1].Offset:h.Labels[1].Offset+uint64(len(beta))])
}

func TestAttachWrapOmitsKeyWhenNotProvided(t *testing.T) {
	l := &container.Label{Name: "secret"}
	err := verify.AttachWrap(l, format.WrapChaCha20Poly1305, []byte("nonce+tag-meta"), format.KeyX25519, nil)
	require.NoError(t, err)
	assert.NotNil(t, l.Wrap)
	assert.Nil(t, l.Key)
}

func TestAttachWrapWithKey(t *testing.T) {
	l := &container.Label{Name: "secret"}
	pub := make([]byte, 32)
	err := verify.AttachWrap(l, format.WrapChaCha20Poly1305, []byte("meta"), format.KeyX25519, pub)
	require.NoError(t, err)
	assert.NotNil(t, l.Wrap)
	require.NotNil(t, l.Key)
	assert.Equal(t, format.KeyX25519, l.Key.Algorithm())
}
