// Package errs defines the sentinel errors returned throughout this
// module, grouped by the four error kinds VSF distinguishes: a decoder
// running out of bytes, a byte pattern that isn't valid VSF, a value
// that parses but violates a documented invariant, and a cryptographic
// verification failure. All four kinds are unrecoverable at the call
// site — VSF is a data format, not a protocol, so there is no partial
// result worth returning.
//
// Callers should use errors.Is against either a specific sentinel (e.g.
// ErrInvalidHeaderSize) or one of the four kind sentinels below, since
// every specific sentinel wraps its kind.
package errs

import "errors"

// Kind sentinels. Every other error in this package wraps exactly one of
// these, so errors.Is(err, ErrUnexpectedEOF) etc. matches regardless of
// which specific sentinel was actually returned.
var (
	ErrUnexpectedEOF      = errors.New("vsf: unexpected end of buffer")
	ErrInvalidData        = errors.New("vsf: invalid data")
	ErrInvariantViolation = errors.New("vsf: invariant violation")
	ErrCryptoFailure      = errors.New("vsf: cryptographic verification failed")
)

// kindErr is a specific error that also matches errors.Is(err, kind).
type kindErr struct {
	kind error
	msg  string
}

func (e *kindErr) Error() string { return e.msg }
func (e *kindErr) Unwrap() error { return e.kind }

func wrap(kind error, msg string) error {
	return &kindErr{kind: kind, msg: "vsf: " + msg}
}

// Specific sentinels, each wrapping exactly one Kind above.
var (
	ErrInvalidWidthTag  = wrap(ErrInvalidData, "invalid varint width tag")
	ErrInvalidMagic     = wrap(ErrInvalidData, "invalid magic bytes")
	ErrInvalidHeaderSize = wrap(ErrInvalidData, "invalid header size")
	ErrInvalidHeaderFlags = wrap(ErrInvalidData, "invalid header flags")
	ErrUnknownFamilyTag = wrap(ErrInvalidData, "unknown type family tag")
	ErrUnknownAlgorithm = wrap(ErrInvalidData, "unknown algorithm identifier")
	ErrInvalidUTF8      = wrap(ErrInvalidData, "invalid UTF-8 string")
	ErrMisalignedLength = wrap(ErrInvalidData, "length not a multiple of 8 bits")
	ErrDuplicateSection = wrap(ErrInvalidData, "duplicate section name")
	ErrDuplicateField   = wrap(ErrInvalidData, "duplicate field name")

	ErrShapeMismatch       = wrap(ErrInvariantViolation, "tensor shape does not match element count")
	ErrStrideMismatch      = wrap(ErrInvariantViolation, "stride rank does not match shape rank")
	ErrBitpackSizeMismatch = wrap(ErrInvariantViolation, "bitpacked tensor payload size mismatch")
	ErrLengthMismatch      = wrap(ErrInvariantViolation, "declared length does not match payload length")
	ErrOffsetOutOfRange    = wrap(ErrInvariantViolation, "section offset falls outside the file")
	ErrSizeMismatch        = wrap(ErrInvariantViolation, "declared section size does not match actual bytes")
	ErrPreambleMismatch    = wrap(ErrInvariantViolation, "preamble count or size disagrees with label")
	ErrStabilizationFailed = wrap(ErrInvariantViolation, "header layout failed to stabilize")
	ErrLabelNotFound       = wrap(ErrInvariantViolation, "label not found")
	ErrFieldNotFound       = wrap(ErrInvariantViolation, "field not found")
	ErrHashCollision       = wrap(ErrInvariantViolation, "section name hash collision could not be resolved")
	ErrOpaqueSection       = wrap(ErrInvariantViolation, "section is encrypted and has no child count")

	ErrFileHashMismatch     = wrap(ErrCryptoFailure, "file hash does not match")
	ErrSectionHashMismatch  = wrap(ErrCryptoFailure, "section hash does not match")
	ErrSignatureInvalid     = wrap(ErrCryptoFailure, "signature verification failed")
	ErrUnknownWrapAlgorithm = wrap(ErrCryptoFailure, "no codec registered for wrap algorithm")
)
