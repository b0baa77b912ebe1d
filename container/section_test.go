package container_test

import (
	"testing"

	"github.com/nspiker/vsf/container"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/varint"
	"github.com/nspiker/vsf/vtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestS1MinimalDocumentSection covers spec.md §8 scenario S1: a section
// "m" with one field "v" of value u3(42).
func TestS1MinimalDocumentSection(t *testing.T) {
	field := container.Field{Name: "v", Value: vtype.FixedUint{Width: format.Size8, Value: varint.FromUint64(42)}}
	section := &container.Section{
		Name:   "m",
		Fields: []container.Field{field},
	}
	section.Preamble = container.Preamble{Count: 1}

	buf := section.Encode(nil)
	got, n, err := container.DecodeSection(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, "m", got.Name)
	require.Len(t, got.Fields, 1)
	assert.Equal(t, "v", got.Fields[0].Name)

	fu, ok := got.Fields[0].Value.(vtype.FixedUint)
	require.True(t, ok)
	lo, ok := fu.Value.Uint64()
	require.True(t, ok)
	assert.Equal(t, uint64(42), lo)
}

func TestSectionFieldCountMismatchFails(t *testing.T) {
	section := &container.Section{
		Name:     "m",
		Preamble: container.Preamble{Count: 2}, // lies about the count
		Fields: []container.Field{
			{Name: "v", Value: vtype.Bool(true)},
		},
	}
	buf := section.Encode(nil)
	_, _, err := container.DecodeSection(buf)
	assert.Error(t, err)
}

func TestPreambleRoundTripWithHash(t *testing.T) {
	h := vtype.NewHash(format.HashBLAKE3, make([]byte, 32))
	p := &container.Preamble{Count: 3, SizeBits: 800, Hash: &h}
	buf := p.Encode(nil)

	got, n, err := container.DecodePreamble(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, p, got)
}

func TestFieldRoundTrip(t *testing.T) {
	f := container.Field{Name: "value", Value: vtype.Float64(3.14)}
	buf := f.Encode(nil)

	got, n, err := container.DecodeField(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, f.Name, got.Name)
	assert.Equal(t, f.Value, got.Value)
}
