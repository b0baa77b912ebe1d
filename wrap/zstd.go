package wrap

import (
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
)

// zstdCodec has no key material; it implements Codec purely so the wrap
// registry can hand back a pluggable compressor under the same
// interface an encryption codec uses, per the teacher's
// compress.Codec abstraction (compress/codec.go).
type zstdCodec struct{}

// NewZstdCodec returns a Codec that compresses/decompresses with Zstd.
func NewZstdCodec() Codec { return zstdCodec{} }

func (zstdCodec) Algorithm() format.Algorithm { return AlgoZstd }

var zstdEncoderPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			panic(err)
		}
		return enc
	},
}

var zstdDecoderPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(err)
		}
		return dec
	},
}

func (zstdCodec) Seal(plaintext []byte) ([]byte, error) {
	enc := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(enc)
	return enc.EncodeAll(plaintext, nil), nil
}

func (zstdCodec) Open(ciphertext []byte) ([]byte, error) {
	dec := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(dec)
	out, err := dec.DecodeAll(ciphertext, nil)
	if err != nil {
		return nil, errs.ErrInvalidData
	}
	return out, nil
}
