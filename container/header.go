package container

import (
	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/internal/pool"
	"github.com/nspiker/vsf/vtype"
)

// MaxStabilizationIterations bounds the offset-stabilization loop (spec
// §4.3: "implementations must cap at 10 iterations and report failure
// if it does not converge — this cannot occur with correct encoding, so
// failure indicates a bug").
const MaxStabilizationIterations = 10

// Header is VSF's header body: total header bit-length, version,
// backward-compat version, file hash, and the label table.
type Header struct {
	Version       uint64
	CompatVersion uint64
	FileHash      [32]byte // always present, BLAKE3-256
	Labels        []*Label

	// FileHashOffset is the absolute byte offset, within the fully
	// encoded file, of FileHash's 32-byte payload. Stabilize and
	// DecodeHeader both populate it; verify.StampFileHash uses it to
	// find the placeholder bytes to zero and then overwrite without
	// re-parsing the header.
	FileHashOffset uint64
}

// SectionSize is the caller-supplied size of one section's encoded body
// (preamble through closing `]`), known before layout since it does not
// depend on the section's final offset.
type SectionSize struct {
	Name  string
	Size  uint64
}

// encodeBody encodes everything after the `b` field: z, y, h, n, and the
// label table, assuming each label's Offset has already been assigned,
// into bb (reset by the caller). It also returns the byte offset of
// FileHash's 32-byte payload relative to the start of bb's contents.
func (h *Header) encodeBody(bb *pool.ByteBuffer) uint64 {
	bb.B = vtype.NewVersion(h.Version).Encode(bb.B)
	bb.B = vtype.NewCompatVersion(h.CompatVersion).Encode(bb.B)
	bb.B = vtype.NewHash(format.HashBLAKE3, h.FileHash[:]).Encode(bb.B)
	hashPayloadOffset := uint64(bb.Len() - 32)
	bb.B = vtype.NewCount(uint64(len(h.Labels))).Encode(bb.B)
	for _, l := range h.Labels {
		bb.B = l.Encode(bb.B)
	}
	return hashPayloadOffset
}

// encodeWithHeaderLen renders the full header (magic through `>`) given
// a trial total header length headerLen, which is used both to compute
// the `b` field's value and to assign each label's Offset. It records
// the absolute FileHashOffset on h as a side effect.
//
// Stabilize calls this once to seed its estimate and then up to
// MaxStabilizationIterations more times per document, with only the
// final result kept; body and dst are scratch
// buffers drawn from internal/pool and reset on each call so the
// discarded trial encodings reuse one growing backing array instead of
// allocating fresh on every iteration, the same pooling the teacher
// applies to its own repeated-encode paths (blob/numeric_encoder.go).
func (h *Header) encodeWithHeaderLen(body, dst *pool.ByteBuffer, headerLen uint64, sizes []SectionSize) []byte {
	offset := headerLen
	for i, l := range h.Labels {
		l.Offset = offset
		offset += sizes[i].Size
	}

	body.Reset()
	hashPayloadOffset := h.encodeBody(body)

	dst.Reset()
	dst.MustWrite(format.Magic[:])
	dst.MustWrite([]byte{format.HeaderOpen})
	dst.B = vtype.NewBitLength(uint64(body.Len()) * 8).Encode(dst.B)
	h.FileHashOffset = uint64(dst.Len()) + hashPayloadOffset
	dst.MustWrite(body.Bytes())
	dst.MustWrite([]byte{format.HeaderClose})

	out := make([]byte, dst.Len())
	copy(out, dst.Bytes())
	return out
}

// Stabilize runs spec §4.3's offset-stabilization algorithm: it assigns
// each label's Offset and returns the final encoded header bytes. sizes
// must be in the same order as h.Labels and give each section's already-
// known encoded body size. It fails with ErrStabilizationFailed if the
// layout does not converge within MaxStabilizationIterations, which per
// spec.md indicates an implementation bug rather than a normal failure
// mode.
func (h *Header) Stabilize(sizes []SectionSize) ([]byte, error) {
	if len(sizes) != len(h.Labels) {
		return nil, errs.ErrLengthMismatch
	}
	for i, l := range h.Labels {
		l.Size = sizes[i].Size
	}

	body := pool.GetSectionBuffer()
	dst := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(body)
	defer pool.PutSectionBuffer(dst)

	// Seed the trial header length with a cheap first estimate: encode
	// once with headerLen=0 to get a starting point.
	trial := uint64(len(h.encodeWithHeaderLen(body, dst, 0, sizes)))

	for i := 0; i < MaxStabilizationIterations; i++ {
		encoded := h.encodeWithHeaderLen(body, dst, trial, sizes)
		if uint64(len(encoded)) == trial {
			return encoded, nil
		}
		trial = uint64(len(encoded))
	}

	return nil, errs.ErrStabilizationFailed
}

// DecodeHeader reads the magic, header open brace, `b`/`z`/`y`/`h`/`n`
// fields, and the label table from the front of data.
func DecodeHeader(data []byte) (*Header, int, error) {
	if len(data) < 4 {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	if data[0] != format.Magic[0] || data[1] != format.Magic[1] || data[2] != format.Magic[2] {
		return nil, 0, errs.ErrInvalidMagic
	}
	if data[3] != format.HeaderOpen {
		return nil, 0, errs.ErrInvalidData
	}
	pos := 4

	bitLen, n, err := decodeVarintScalarValue(data[pos:], format.FamilyBitLength)
	if err != nil {
		return nil, 0, err
	}
	if bitLen%8 != 0 {
		return nil, 0, errs.ErrMisalignedLength
	}
	pos += n
	bodyStart := pos
	bodyEnd := bodyStart + int(bitLen/8)
	if bodyEnd > len(data) {
		return nil, 0, errs.ErrUnexpectedEOF
	}

	version, n, err := decodeVarintScalarValue(data[pos:], format.FamilyVersion)
	if err != nil {
		return nil, 0, err
	}
	pos += n

	compatVersion, n, err := decodeVarintScalarValue(data[pos:], format.FamilyCompatVer)
	if err != nil {
		return nil, 0, err
	}
	pos += n

	fileHashVal, n, err := vtype.Decode(data[pos:])
	if err != nil {
		return nil, 0, err
	}
	fileHash, ok := fileHashVal.(vtype.Hash)
	if !ok || len(fileHash.Payload()) != 32 {
		return nil, 0, errs.ErrInvalidHeaderFlags
	}
	fileHashOffset := uint64(pos+n) - 32
	pos += n

	labelCount, n, err := decodeVarintScalarValue(data[pos:], format.FamilyCount)
	if err != nil {
		return nil, 0, err
	}
	pos += n

	labels := make([]*Label, 0, labelCount)
	for i := uint64(0); i < labelCount; i++ {
		l, n, err := DecodeLabel(data[pos:])
		if err != nil {
			return nil, 0, err
		}
		labels = append(labels, l)
		pos += n
	}

	if pos != bodyEnd {
		return nil, 0, errs.ErrInvalidHeaderSize
	}
	if pos >= len(data) || data[pos] != format.HeaderClose {
		return nil, 0, errs.ErrInvalidData
	}
	pos++

	h := &Header{Version: version, CompatVersion: compatVersion, Labels: labels, FileHashOffset: fileHashOffset}
	copy(h.FileHash[:], fileHash.Payload())

	return h, pos, nil
}
