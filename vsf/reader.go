package vsf

import (
	"iter"

	"github.com/nspiker/vsf/container"
	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/verify"
	"github.com/nspiker/vsf/vtype"
	"github.com/nspiker/vsf/wrap"
)

// FieldIter ranges over a decoded section's (name, value) pairs in
// on-wire order, the same range-over-func idiom the teacher uses for
// BlobSetIterator (blob/blob_set.go's iter.Seq2-returning methods).
type FieldIter = iter.Seq2[string, vtype.Value]

// Reader parses a VSF document's magic and header eagerly; section
// bodies are decoded lazily, one at a time, on Section/DecryptSection,
// giving O(1) seeks per spec.md §4.5 ("no scan required past the
// header").
type Reader struct {
	file   []byte
	header *container.Header
	index  *container.Index
}

// NewReader parses file's magic, header, and label table, and builds
// the name index used by Section's O(1) lookup.
func NewReader(file []byte) (*Reader, error) {
	header, _, err := container.DecodeHeader(file)
	if err != nil {
		return nil, err
	}
	index, err := container.BuildIndex(header.Labels)
	if err != nil {
		return nil, err
	}
	return &Reader{file: file, header: header, index: index}, nil
}

// Version returns the document's format version (the `z` header field).
func (r *Reader) Version() uint64 { return r.header.Version }

// CompatVersion returns the document's backward-compatibility version
// (the `y` header field).
func (r *Reader) CompatVersion() uint64 { return r.header.CompatVersion }

// VerifyFileHash checks the document's whole-file BLAKE3 hash against
// its own bytes (spec.md §4.4(1)).
func (r *Reader) VerifyFileHash() error {
	return verify.VerifyFileHash(r.file, r.header.FileHashOffset)
}

// Sections returns an iterator over every label in header order.
func (r *Reader) Sections() iter.Seq[*container.Label] {
	return r.index.Labels()
}

// rawSectionBytes returns the label and its on-disk byte range
// [offset, offset+size), whether or not it is encrypted.
func (r *Reader) rawSectionBytes(name string) (*container.Label, []byte, error) {
	label, err := r.index.Lookup(name)
	if err != nil {
		return nil, nil, err
	}
	end := label.Offset + label.Size
	if end > uint64(len(r.file)) {
		return nil, nil, errs.ErrOffsetOutOfRange
	}
	return label, r.file[label.Offset:end], nil
}

// Section decodes and returns an iterator over the named section's
// fields. It fails with ErrOpaqueSection if the section is encrypted
// (its label carries a `v` field); use DecryptSection instead.
func (r *Reader) Section(name string) (FieldIter, error) {
	label, body, err := r.rawSectionBytes(name)
	if err != nil {
		return nil, err
	}
	if label.Wrap != nil {
		return nil, errs.ErrOpaqueSection
	}

	section, _, err := container.DecodeSection(body)
	if err != nil {
		return nil, err
	}
	return fieldIterOf(section), nil
}

// DecryptSection opens the named section's ciphertext body with codec
// and decodes the resulting plaintext as a section, per spec.md §4.4
// "Encryption metadata": the core never decrypts on its own, so the
// caller supplies the codec (keyed to match label.Wrap's algorithm).
func (r *Reader) DecryptSection(name string, codec wrap.Codec) (FieldIter, error) {
	label, body, err := r.rawSectionBytes(name)
	if err != nil {
		return nil, err
	}
	if label.Wrap == nil {
		return nil, errs.ErrInvalidData
	}
	if label.Wrap.Algorithm() != codec.Algorithm() {
		return nil, errs.ErrUnknownWrapAlgorithm
	}

	plaintext, err := codec.Open(body)
	if err != nil {
		return nil, err
	}
	section, _, err := container.DecodeSection(plaintext)
	if err != nil {
		return nil, err
	}
	return fieldIterOf(section), nil
}

func fieldIterOf(section *container.Section) FieldIter {
	return func(yield func(string, vtype.Value) bool) {
		for _, f := range section.Fields {
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}
