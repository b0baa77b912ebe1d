package wrap

import (
	"encoding/binary"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
)

// lz4Codec compresses with LZ4 block mode, prefixing the 8-byte
// big-endian original length so Open can size its destination buffer
// (lz4's block API, unlike zstd's, needs the caller to know the
// decompressed size up front). Grounded on compress/lz4.go's pooled
// lz4.Compressor usage.
type lz4Codec struct{}

// NewLZ4Codec returns a Codec that compresses/decompresses with LZ4.
func NewLZ4Codec() Codec { return lz4Codec{} }

func (lz4Codec) Algorithm() format.Algorithm { return AlgoLZ4 }

var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

func (lz4Codec) Seal(plaintext []byte) ([]byte, error) {
	dst := make([]byte, 8+lz4.CompressBlockBound(len(plaintext)))
	binary.BigEndian.PutUint64(dst[:8], uint64(len(plaintext)))

	c := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(c)

	n, err := c.CompressBlock(plaintext, dst[8:])
	if err != nil {
		return nil, err
	}
	return dst[:8+n], nil
}

func (lz4Codec) Open(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 8 {
		return nil, errs.ErrUnexpectedEOF
	}
	origLen := binary.BigEndian.Uint64(ciphertext[:8])
	dst := make([]byte, origLen)
	n, err := lz4.UncompressBlock(ciphertext[8:], dst)
	if err != nil {
		return nil, errs.ErrInvalidData
	}
	return dst[:n], nil
}
