package container_test

import (
	"testing"

	"github.com/nspiker/vsf/container"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/vtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderStabilizeAndDecodeRoundTrip(t *testing.T) {
	h := &container.Header{
		Version: 1,
		Labels: []*container.Label{
			{Name: "alpha", ChildCount: 2},
			{Name: "beta", ChildCount: 1},
		},
	}
	sizes := []container.SectionSize{
		{Name: "alpha", Size: 40},
		{Name: "beta", Size: 60},
	}

	encoded, err := h.Stabilize(sizes)
	require.NoError(t, err)
	require.NotEmpty(t, encoded)

	// beta's offset must point exactly past alpha's body.
	assert.Equal(t, h.Labels[0].Offset+sizes[0].Size, h.Labels[1].Offset)

	got, n, err := container.DecodeHeader(encoded)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), n)
	require.Len(t, got.Labels, 2)
	assert.Equal(t, h.Labels[0].Offset, got.Labels[0].Offset)
	assert.Equal(t, h.Labels[1].Offset, got.Labels[1].Offset)
	assert.Equal(t, uint64(40), got.Labels[0].Size)
	assert.Equal(t, uint64(60), got.Labels[1].Size)
}

// TestS2OffsetStabilizationAcrossVarintWidth covers spec.md §8 scenario
// S2: adding a hash to the 1st section's label must push the 2nd
// section's offset across the 256-byte boundary, forcing the offset
// varint to grow from width '3' to '4', and the header must still end
// up self-consistent.
func TestS2OffsetStabilizationAcrossVarintWidth(t *testing.T) {
	build := func(withHash bool) *container.Header {
		h := &container.Header{
			Labels: []*container.Label{
				{Name: "first", ChildCount: 1},
				{Name: "second", ChildCount: 1},
			},
		}
		if withHash {
			hv := vtype.NewHash(format.HashBLAKE3, make([]byte, 220))
			h.Labels[0].Hash = &hv
		}
		return h
	}

	sizes := []container.SectionSize{
		{Name: "first", Size: 10},
		{Name: "second", Size: 10},
	}

	small := build(false)
	_, err := small.Stabilize(sizes)
	require.NoError(t, err)

	grown := build(true)
	_, err = grown.Stabilize(sizes)
	require.NoError(t, err)

	assert.Greater(t, grown.Labels[1].Offset, small.Labels[1].Offset)
	assert.Equal(t, grown.Labels[0].Offset+sizes[0].Size, grown.Labels[1].Offset)
}

func TestHeaderStabilizeFailsOnSizeMismatch(t *testing.T) {
	h := &container.Header{Labels: []*container.Label{{Name: "a"}}}
	_, err := h.Stabilize(nil)
	assert.Error(t, err)
}
