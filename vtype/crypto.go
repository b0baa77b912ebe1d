package vtype

import (
	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/varint"
)

// cryptoBytes is the shared wire shape for hash ('h'), signature ('g'),
// key ('k'), MAC ('a'), and wrap ('v') values: one algorithm byte, a
// varint bit-length (must be a multiple of 8), then that many bits'
// worth of payload bytes.
type cryptoBytes struct {
	family  format.Family
	algo    format.Algorithm
	payload []byte
}

func (c cryptoBytes) Family() format.Family { return c.family }

// Algorithm returns the one-byte algorithm identifier.
func (c cryptoBytes) Algorithm() format.Algorithm { return c.algo }

// Payload returns the raw bytes.
func (c cryptoBytes) Payload() []byte { return c.payload }

func (c cryptoBytes) Encode(dst []byte) []byte {
	dst = append(dst, byte(c.family), byte(c.algo))
	dst = varint.EncodeUint64(dst, uint64(len(c.payload))*8)
	return append(dst, c.payload...)
}

func decodeCryptoBytes(data []byte, family format.Family) (cryptoBytes, int, error) {
	if len(data) < 2 {
		return cryptoBytes{}, 0, errs.ErrUnexpectedEOF
	}
	algo := format.Algorithm(data[1])
	bits, consumed, err := varint.DecodeUint64(data[2:])
	if err != nil {
		return cryptoBytes{}, 0, err
	}
	if bits%8 != 0 {
		return cryptoBytes{}, 0, errs.ErrMisalignedLength
	}
	n := int(bits / 8)
	start := 2 + consumed
	end := start + n
	if end > len(data) || end < start {
		return cryptoBytes{}, 0, errs.ErrUnexpectedEOF
	}
	payload := append([]byte(nil), data[start:end]...)
	return cryptoBytes{family: family, algo: algo, payload: payload}, end, nil
}

// Hash is a hash value (family 'h'): algorithm byte + varint bit-length
// + payload. BLAKE3's output length is not fixed by the algorithm, so
// its declared bit-length is not checked against a table; SHA-256 and
// SHA-512 payloads are checked against format.HashOutputSize.
type Hash struct{ cryptoBytes }

func NewHash(algo format.Algorithm, payload []byte) Hash {
	return Hash{cryptoBytes{family: format.FamilyHash, algo: algo, payload: payload}}
}

func decodeHash(data []byte) (Value, int, error) {
	c, n, err := decodeCryptoBytes(data, format.FamilyHash)
	if err != nil {
		return nil, 0, err
	}
	if want, ok := format.HashOutputSize(c.algo); ok && want != len(c.payload) {
		return nil, 0, errs.ErrLengthMismatch
	}
	return Hash{c}, n, nil
}

// Signature is a signature value (family 'g').
type Signature struct{ cryptoBytes }

func NewSignature(algo format.Algorithm, payload []byte) Signature {
	return Signature{cryptoBytes{family: format.FamilySignature, algo: algo, payload: payload}}
}

func decodeSignature(data []byte) (Value, int, error) {
	c, n, err := decodeCryptoBytes(data, format.FamilySignature)
	if err != nil {
		return nil, 0, err
	}
	if want, ok := format.SigOutputSize(c.algo); ok && want != len(c.payload) {
		return nil, 0, errs.ErrLengthMismatch
	}
	return Signature{c}, n, nil
}

// Key is a key value (family 'k').
type Key struct{ cryptoBytes }

func NewKey(algo format.Algorithm, payload []byte) Key {
	return Key{cryptoBytes{family: format.FamilyKey, algo: algo, payload: payload}}
}

func decodeKey(data []byte) (Value, int, error) {
	c, n, err := decodeCryptoBytes(data, format.FamilyKey)
	if err != nil {
		return nil, 0, err
	}
	if want, ok := format.KeyOutputSize(c.algo); ok && want != len(c.payload) {
		return nil, 0, errs.ErrLengthMismatch
	}
	return Key{c}, n, nil
}

// MAC is a message authentication code value (family 'a').
type MAC struct{ cryptoBytes }

func NewMAC(algo format.Algorithm, payload []byte) MAC {
	return MAC{cryptoBytes{family: format.FamilyMAC, algo: algo, payload: payload}}
}

func decodeMAC(data []byte) (Value, int, error) {
	c, n, err := decodeCryptoBytes(data, format.FamilyMAC)
	if err != nil {
		return nil, 0, err
	}
	if want, ok := format.MACOutputSize(c.algo); ok && want != len(c.payload) {
		return nil, 0, errs.ErrLengthMismatch
	}
	return MAC{c}, n, nil
}

// Wrap is an encrypted-payload wrapper value (family 'v'): the core
// never encrypts or decrypts this payload, it only carries the
// algorithm identifier and opaque ciphertext bytes. See the wrap package
// for codecs that can actually transform bytes under these algorithms.
type Wrap struct{ cryptoBytes }

func NewWrap(algo format.Algorithm, payload []byte) Wrap {
	return Wrap{cryptoBytes{family: format.FamilyWrap, algo: algo, payload: payload}}
}

func decodeWrap(data []byte) (Value, int, error) {
	c, n, err := decodeCryptoBytes(data, format.FamilyWrap)
	if err != nil {
		return nil, 0, err
	}
	return Wrap{c}, n, nil
}
