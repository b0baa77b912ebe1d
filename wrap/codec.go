// Package wrap is the companion codec registry for spec.md §4.4's
// "Encryption metadata" fields (`v` wrap algorithm, `k` key). VSF's core
// never encrypts, decrypts, compresses, or decompresses section bodies
// itself (spec.md §1 Non-goals: "the core never encrypts or decrypts");
// this package supplies ready-made codecs that callers hand to
// vsf.Builder.EndEncryptedSection, which calls Seal on the encoded
// section, and to vsf.Reader.DecryptSection, which calls Open.
//
// The registry is keyed by the same one-letter algorithm identifiers
// spec.md §6 reserves for the wrap family, plus a small extension into
// the family's otherwise-reserved letters for compression codecs that
// also fit the wrap slot structurally (a label with a `v` field and an
// opaque body) even though they are not encryption.
package wrap

import (
	"fmt"

	"github.com/nspiker/vsf/format"
)

// Codec combines sealing (encrypt or compress) and opening (decrypt or
// decompress) for one wrap algorithm.
type Codec interface {
	Algorithm() format.Algorithm
	Seal(plaintext []byte) ([]byte, error)
	Open(ciphertext []byte) ([]byte, error)
}

// Compression-only algorithm identifiers, in the wrap family's reserved
// letter space beyond the two spec.md §6 names (c, a). These have no
// key material; Open is lossless decompression.
const (
	AlgoZstd format.Algorithm = 'z'
	AlgoLZ4  format.Algorithm = 'l'
)

// CreateCodec builds a Codec for the given wrap algorithm. Encryption
// algorithms (ChaCha20-Poly1305, AES-256-GCM) require key to be the
// correct length for that cipher; compression algorithms (Zstd, LZ4)
// ignore key.
func CreateCodec(algo format.Algorithm, key []byte) (Codec, error) {
	switch algo {
	case format.WrapChaCha20Poly1305:
		return NewChaCha20Poly1305Codec(key)
	case format.WrapAES256GCM:
		return NewAES256GCMCodec(key)
	case AlgoZstd:
		return NewZstdCodec(), nil
	case AlgoLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("wrap: unsupported algorithm %q", byte(algo))
	}
}
