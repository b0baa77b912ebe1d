package verify

import (
	"github.com/nspiker/vsf/container"
	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/internal/pool"
	"github.com/nspiker/vsf/vtype"
)

// AttachHash records a hash digest on label, validating the digest
// length against the algorithm's fixed output size where the algorithm
// has one (BLAKE3 is variable-length and skips this check).
func AttachHash(label *container.Label, algo format.Algorithm, digest []byte) error {
	if size, ok := format.HashOutputSize(algo); ok && len(digest) != size {
		return errs.ErrLengthMismatch
	}
	h := vtype.NewHash(algo, digest)
	label.Hash = &h
	return nil
}

// AttachSignature records a signature on label.
func AttachSignature(label *container.Label, algo format.Algorithm, sig []byte) error {
	if size, ok := format.SigOutputSize(algo); ok && len(sig) != size {
		return errs.ErrLengthMismatch
	}
	s := vtype.NewSignature(algo, sig)
	label.Signature = &s
	return nil
}

// AttachKey records a public key descriptor on label, used alongside
// AttachSignature (the verifying key) or AttachWrap (the recipient's
// wrap key, spec.md §4.4 "Encryption metadata").
func AttachKey(label *container.Label, algo format.Algorithm, pub []byte) error {
	if size, ok := format.KeyOutputSize(algo); ok && len(pub) != size {
		return errs.ErrLengthMismatch
	}
	k := vtype.NewKey(algo, pub)
	label.Key = &k
	return nil
}

// AttachWrap records that label's section body is encrypted under algo,
// optionally alongside a key descriptor. Per spec.md §4.4 "Encryption
// metadata", this only records a pointer to the algorithm that encrypted
// the bytes externally; the core never calls into an encryption routine
// itself. Setting Wrap causes Label.Encode to omit the child-count field
// (an encrypted body's field count is opaque to VSF).
func AttachWrap(label *container.Label, algo format.Algorithm, meta []byte, keyAlgo format.Algorithm, pub []byte) error {
	w := vtype.NewWrap(algo, meta)
	label.Wrap = &w
	if pub != nil {
		return AttachKey(label, keyAlgo, pub)
	}
	return nil
}

// Relayout re-runs the §4.3 stabilization algorithm, assembles the full
// file (new header followed by the unchanged section bodies, copied
// verbatim and in the same order as sizes), and re-stamps the file hash.
// This completes steps 3 through 5 of spec.md §4.4's "adding
// verification to an already-built file" sequence.
//
// Per-section hashes and signatures do not depend on a section's final
// offset (they cover the body's own bytes, which Relayout never
// changes), so callers may compute those either before or after calling
// Relayout; spec.md §4.4's ordering requirement only matters in that a
// section's body bytes must already be final, which bodies here always
// are.
func Relayout(header *container.Header, sizes []container.SectionSize, bodies [][]byte) ([]byte, error) {
	if len(bodies) != len(sizes) {
		return nil, errs.ErrLengthMismatch
	}
	headerBytes, err := header.Stabilize(sizes)
	if err != nil {
		return nil, err
	}

	total := len(headerBytes)
	for _, b := range bodies {
		total += len(b)
	}

	bb := pool.GetFileBuffer()
	defer pool.PutFileBuffer(bb)
	bb.Reset()
	bb.Grow(total)
	bb.MustWrite(headerBytes)
	for _, b := range bodies {
		bb.MustWrite(b)
	}

	file := make([]byte, bb.Len())
	copy(file, bb.Bytes())

	return StampFileHash(file, header.FileHashOffset)
}
