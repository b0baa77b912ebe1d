package vsf_test

import (
	"testing"

	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/varint"
	"github.com/nspiker/vsf/vsf"
	"github.com/nspiker/vsf/vtype"
	"github.com/nspiker/vsf/wrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestS1MinimalDocumentBuildAndRead covers spec.md §8 scenario S1 at the
// facade layer: a single section "m" with one field "v" of value
// u3(42), built then read back.
func TestS1MinimalDocumentBuildAndRead(t *testing.T) {
	b, err := vsf.NewBuilder()
	require.NoError(t, err)

	require.NoError(t, b.StartSection("m", 1))
	require.NoError(t, b.AddField("v", vtype.FixedUint{Width: format.Size8, Value: varint.FromUint64(42)}))
	require.NoError(t, b.EndSection())

	file, err := b.Build()
	require.NoError(t, err)
	require.True(t, len(file) > 4)
	assert.Equal(t, byte('R'), file[0])

	r, err := vsf.NewReader(file)
	require.NoError(t, err)
	require.NoError(t, r.VerifyFileHash())

	fields, err := r.Section("m")
	require.NoError(t, err)

	seen := map[string]vtype.Value{}
	for name, val := range fields {
		seen[name] = val
	}
	require.Contains(t, seen, "v")

	fu, ok := seen["v"].(vtype.FixedUint)
	require.True(t, ok)
	lo, ok := fu.Value.Uint64()
	require.True(t, ok)
	assert.Equal(t, uint64(42), lo)
}

func TestBuildMultipleSectionsAndIterate(t *testing.T) {
	b, err := vsf.NewBuilder(vsf.WithVersion(2), vsf.WithCompatVersion(1))
	require.NoError(t, err)

	require.NoError(t, b.StartSection("alpha", 1))
	require.NoError(t, b.AddField("x", vtype.Uint(10)))
	require.NoError(t, b.EndSection())

	require.NoError(t, b.StartSection("beta", 1))
	require.NoError(t, b.AddField("y", vtype.String("hello")))
	require.NoError(t, b.EndSection())

	file, err := b.Build()
	require.NoError(t, err)

	r, err := vsf.NewReader(file)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), r.Version())
	assert.Equal(t, uint64(1), r.CompatVersion())

	var names []string
	for l := range r.Sections() {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"alpha", "beta"}, names)
}

func TestBuilderRejectsDuplicateSectionName(t *testing.T) {
	b, err := vsf.NewBuilder()
	require.NoError(t, err)
	require.NoError(t, b.StartSection("dup", 0))
	require.NoError(t, b.EndSection())
	assert.Error(t, b.StartSection("dup", 0))
}

func TestBuilderRejectsDuplicateFieldName(t *testing.T) {
	b, err := vsf.NewBuilder()
	require.NoError(t, err)
	require.NoError(t, b.StartSection("s", 2))
	require.NoError(t, b.AddField("f", vtype.Bool(true)))
	assert.Error(t, b.AddField("f", vtype.Bool(false)))
}

func TestEncryptedSectionRoundTrip(t *testing.T) {
	key := make([]byte, 32)
	codec, err := wrap.CreateCodec(format.WrapChaCha20Poly1305, key)
	require.NoError(t, err)

	b, err := vsf.NewBuilder()
	require.NoError(t, err)
	require.NoError(t, b.StartSection("secret", 1))
	require.NoError(t, b.AddField("v", vtype.Uint(99)))
	require.NoError(t, b.EndEncryptedSection(codec))

	file, err := b.Build()
	require.NoError(t, err)

	r, err := vsf.NewReader(file)
	require.NoError(t, err)

	_, err = r.Section("secret")
	assert.Error(t, err)

	fields, err := r.DecryptSection("secret", codec)
	require.NoError(t, err)

	var gotValue uint64
	for name, val := range fields {
		if name == "v" {
			// Uint(99) has the same wire bytes as a FixedUint and
			// decodes as one.
			fu, _ := val.(vtype.FixedUint)
			gotValue, _ = fu.Value.Uint64()
		}
	}
	assert.Equal(t, uint64(99), gotValue)
}
