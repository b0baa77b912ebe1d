// Package vsf provides the top-level Builder and Reader facades for
// VSF documents, implementing spec.md §4.5.
package vsf

import (
	"github.com/nspiker/vsf/container"
	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/internal/options"
	"github.com/nspiker/vsf/internal/pool"
	"github.com/nspiker/vsf/verify"
	"github.com/nspiker/vsf/vtype"
	"github.com/nspiker/vsf/wrap"
)

// BuilderOption configures a Builder at construction time.
type BuilderOption = options.Option[*Builder]

// WithVersion sets the document's format version (the `z` header
// field). Defaults to 0 if never set.
func WithVersion(v uint64) BuilderOption {
	return options.NoError(func(b *Builder) { b.version = v })
}

// WithCompatVersion sets the document's backward-compatibility version
// (the `y` header field).
func WithCompatVersion(v uint64) BuilderOption {
	return options.NoError(func(b *Builder) { b.compatVersion = v })
}

type pendingSection struct {
	name       string
	fields     []container.Field
	fieldCount int

	// wrapAlgo/encryptedBody are set instead of the plain field list's
	// natural encoding when EndEncryptedSection was used in place of
	// EndSection.
	wrapAlgo      format.Algorithm
	encryptedBody []byte
}

// Builder accumulates an ordered list of sections, each an ordered list
// of named fields, matching the teacher's NumericEncoder
// start-section/add-field/end-section lifecycle (blob/numeric_encoder.go's
// StartMetricID/AddDataPoint/EndMetric/Finish shape) but generalized to
// arbitrary typed fields instead of fixed timestamp/value/tag columns.
//
// Builder is not thread-safe and not reusable: once Build returns, a new
// Builder must be created for further encoding (spec.md §4.5).
type Builder struct {
	version       uint64
	compatVersion uint64

	sections []pendingSection
	names    map[string]struct{}
	current  *pendingSection
}

// NewBuilder creates a Builder ready to accept sections.
func NewBuilder(opts ...BuilderOption) (*Builder, error) {
	b := &Builder{names: make(map[string]struct{})}
	if err := options.Apply(b, opts...); err != nil {
		return nil, err
	}
	return b, nil
}

// StartSection begins a new section named name. fieldCount is an
// advance hint used to preallocate the field slice; it is never
// checked against the number of AddField calls.
func (b *Builder) StartSection(name string, fieldCount int) error {
	if b.current != nil {
		return errs.ErrInvalidData
	}
	if _, dup := b.names[name]; dup {
		return errs.ErrDuplicateSection
	}
	b.current = &pendingSection{
		name:       name,
		fields:     make([]container.Field, 0, fieldCount),
		fieldCount: fieldCount,
	}
	return nil
}

// AddField appends one named field to the section currently open via
// StartSection.
func (b *Builder) AddField(name string, value vtype.Value) error {
	if b.current == nil {
		return errs.ErrInvalidData
	}
	for _, f := range b.current.fields {
		if f.Name == name {
			return errs.ErrDuplicateField
		}
	}
	b.current.fields = append(b.current.fields, container.Field{Name: name, Value: value})
	return nil
}

// EndSection closes the section opened by StartSection and queues it
// for encoding on Build.
func (b *Builder) EndSection() error {
	if b.current == nil {
		return errs.ErrInvalidData
	}
	b.names[b.current.name] = struct{}{}
	b.sections = append(b.sections, *b.current)
	b.current = nil
	return nil
}

// EndEncryptedSection closes the section opened by StartSection, seals
// its fully encoded body (preamble plus fields) with codec, and queues
// the ciphertext as the section's on-disk body. Per spec.md §4.4
// "Encryption metadata", the resulting label carries a `v` field naming
// the wrap algorithm and omits the child-count field entirely, since an
// encrypted body's field count is opaque to VSF; the core never calls
// codec itself outside of this one Seal call the caller explicitly
// requested.
func (b *Builder) EndEncryptedSection(codec wrap.Codec) error {
	if b.current == nil {
		return errs.ErrInvalidData
	}

	plaintext, err := stabilizeSection(b.current.name, b.current.fields)
	if err != nil {
		return err
	}
	ciphertext, err := codec.Seal(plaintext)
	if err != nil {
		return err
	}

	b.current.wrapAlgo = codec.Algorithm()
	b.current.encryptedBody = ciphertext
	b.names[b.current.name] = struct{}{}
	b.sections = append(b.sections, *b.current)
	b.current = nil
	return nil
}

// Build encodes every queued section, runs §4.3 offset stabilization,
// assembles the final file, and fills the file hash per spec.md
// §4.4(1). It fails with ErrInvalidData if a section was started but
// never closed with EndSection.
func (b *Builder) Build() ([]byte, error) {
	if b.current != nil {
		return nil, errs.ErrInvalidData
	}

	header := &container.Header{Version: b.version, CompatVersion: b.compatVersion}
	sizes := make([]container.SectionSize, len(b.sections))
	bodies := make([][]byte, len(b.sections))

	for i, sec := range b.sections {
		label := &container.Label{Name: sec.name, ChildCount: uint64(len(sec.fields))}

		var body []byte
		if sec.encryptedBody != nil {
			body = sec.encryptedBody
			if err := verify.AttachWrap(label, sec.wrapAlgo, nil, 0, nil); err != nil {
				return nil, err
			}
		} else {
			var err error
			body, err = stabilizeSection(sec.name, sec.fields)
			if err != nil {
				return nil, err
			}
		}

		bodies[i] = body
		sizes[i] = container.SectionSize{Name: sec.name, Size: uint64(len(body))}
		header.Labels = append(header.Labels, label)
	}

	return verify.Relayout(header, sizes, bodies)
}

// maxPreambleStabilizationIterations bounds the same kind of
// fixed-point search as container.Header.Stabilize, applied to a
// section preamble's own self-referential size field (spec.md §4.3:
// "preamble bit-size MUST equal label byte-size x 8", where the label
// byte-size is the full encoded section including the preamble itself).
const maxPreambleStabilizationIterations = 10

// stabilizeSection finds a SizeBits value for the section's preamble
// that correctly describes the section's own total encoded length, then
// returns that final encoding.
func stabilizeSection(name string, fields []container.Field) ([]byte, error) {
	section := &container.Section{
		Name:   name,
		Fields: fields,
		Preamble: container.Preamble{
			Count: uint64(len(fields)),
		},
	}

	bb := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(bb)

	trial := uint64(0)
	for i := 0; i < maxPreambleStabilizationIterations; i++ {
		section.Preamble.SizeBits = trial
		bb.Reset()
		bb.B = section.Encode(bb.B)
		total := uint64(bb.Len()) * 8
		if total == trial {
			out := make([]byte, bb.Len())
			copy(out, bb.Bytes())
			return out, nil
		}
		trial = total
	}
	return nil, errs.ErrStabilizationFailed
}
