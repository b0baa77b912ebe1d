package wrap

import (
	"crypto/rand"
	"fmt"

	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"golang.org/x/crypto/chacha20poly1305"
)

// chacha20Poly1305Codec seals with a fresh random nonce each call,
// prepending it to the returned ciphertext so Open is self-contained.
type chacha20Poly1305Codec struct {
	aead chacha20poly1305aead
}

// aead is the subset of cipher.AEAD this codec needs; named locally so
// the struct above doesn't have to import cipher just for the type.
type chacha20poly1305aead interface {
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	NonceSize() int
	Overhead() int
}

// NewChaCha20Poly1305Codec constructs a Codec from a 32-byte key.
func NewChaCha20Poly1305Codec(key []byte) (Codec, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("wrap: chacha20poly1305: %w", err)
	}
	return &chacha20Poly1305Codec{aead: aead}, nil
}

func (c *chacha20Poly1305Codec) Algorithm() format.Algorithm {
	return format.WrapChaCha20Poly1305
}

func (c *chacha20Poly1305Codec) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("wrap: nonce generation: %w", err)
	}
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (c *chacha20Poly1305Codec) Open(ciphertext []byte) ([]byte, error) {
	ns := c.aead.NonceSize()
	if len(ciphertext) < ns {
		return nil, errs.ErrUnexpectedEOF
	}
	nonce, sealed := ciphertext[:ns], ciphertext[ns:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, errs.ErrCryptoFailure
	}
	return plaintext, nil
}
