// Package verify implements spec.md §4.4: whole-file BLAKE3 hashing with
// a zero-placeholder trick, per-section hashing (BLAKE3/SHA-256/
// SHA-512), per-section Ed25519 signing, encryption-metadata attachment,
// and the re-layout sequence required whenever a crypto field grows a
// label past its previous encoded size.
//
// Every function here is a pure transform over already-assembled file or
// section bytes; nothing in this package performs I/O, and nothing in
// the container/vtype layers ever calls into it — verification is
// opt-in, applied by a caller (typically vsf.Builder) after layout.
package verify

import (
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/sha512"

	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"lukechampine.com/blake3"
)

// ComputeFileHash returns the BLAKE3-256 hash of file with the 32 bytes
// at hashOffset zeroed first, per spec.md §4.4(1)(b)-(c). It does not
// mutate file.
func ComputeFileHash(file []byte, hashOffset uint64) ([32]byte, error) {
	end := hashOffset + 32
	if end > uint64(len(file)) {
		return [32]byte{}, errs.ErrOffsetOutOfRange
	}
	working := make([]byte, len(file))
	copy(working, file)
	for i := hashOffset; i < end; i++ {
		working[i] = 0
	}
	return blake3.Sum256(working), nil
}

// StampFileHash computes the file hash over file (with the placeholder
// zeroed) and writes the result back into file at hashOffset, completing
// spec.md §4.4(1). It mutates file in place and also returns it.
func StampFileHash(file []byte, hashOffset uint64) ([]byte, error) {
	sum, err := ComputeFileHash(file, hashOffset)
	if err != nil {
		return nil, err
	}
	copy(file[hashOffset:hashOffset+32], sum[:])
	return file, nil
}

// VerifyFileHash reverses StampFileHash: zero the stored hash, recompute,
// and compare against what was actually stored at hashOffset.
func VerifyFileHash(file []byte, hashOffset uint64) error {
	end := hashOffset + 32
	if end > uint64(len(file)) {
		return errs.ErrOffsetOutOfRange
	}
	var stored [32]byte
	copy(stored[:], file[hashOffset:end])

	sum, err := ComputeFileHash(file, hashOffset)
	if err != nil {
		return err
	}
	if sum != stored {
		return errs.ErrFileHashMismatch
	}
	return nil
}

// ComputeSectionHash hashes section (the byte range [label.offset,
// label.offset+label.size), preamble plus body, per spec.md §4.4(2))
// under the given algorithm. Only the hash-family algorithms apply here;
// passing a sig/key/mac algorithm byte is a caller error.
func ComputeSectionHash(algo format.Algorithm, section []byte) ([]byte, error) {
	switch algo {
	case format.HashBLAKE3:
		sum := blake3.Sum256(section)
		return sum[:], nil
	case format.HashSHA256:
		sum := sha256.Sum256(section)
		return sum[:], nil
	case format.HashSHA512:
		sum := sha512.Sum512(section)
		return sum[:], nil
	default:
		return nil, errs.ErrUnknownAlgorithm
	}
}

// VerifySectionHash recomputes the section hash and compares it to want,
// failing with ErrSectionHashMismatch on any difference.
func VerifySectionHash(algo format.Algorithm, section []byte, want []byte) error {
	got, err := ComputeSectionHash(algo, section)
	if err != nil {
		return err
	}
	if len(got) != len(want) {
		return errs.ErrSectionHashMismatch
	}
	for i := range got {
		if got[i] != want[i] {
			return errs.ErrSectionHashMismatch
		}
	}
	return nil
}

// SignSection signs section under priv, returning a 64-byte Ed25519
// signature over the same byte range a per-section hash would cover
// (spec.md §4.4(3)).
func SignSection(section []byte, priv ed25519.PrivateKey) []byte {
	return ed25519.Sign(priv, section)
}

// VerifySectionSignature checks sig against section under pub. Any key
// other than the one that produced sig fails with ErrSignatureInvalid
// (spec.md §8 testable property 6, forge-resistance).
func VerifySectionSignature(section []byte, sig []byte, pub ed25519.PublicKey) error {
	if !ed25519.Verify(pub, section, sig) {
		return errs.ErrSignatureInvalid
	}
	return nil
}
