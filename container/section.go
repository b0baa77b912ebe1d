package container

import (
	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/vtype"
)

// Preamble carries a restated count and size at the start of every
// section body (spec §4.3 "Section preamble"), so a reader can parse a
// section standalone without the header's label table, plus optional
// per-section hash/signature.
type Preamble struct {
	Count    uint64
	SizeBits uint64

	Hash      *vtype.Hash
	Signature *vtype.Signature
}

// Encode appends `{n[count] b[size_bits] h[...]? g[...]?}` to dst.
func (p *Preamble) Encode(dst []byte) []byte {
	dst = append(dst, '{')
	dst = vtype.NewCount(p.Count).Encode(dst)
	dst = vtype.NewBitLength(p.SizeBits).Encode(dst)
	if p.Hash != nil {
		dst = p.Hash.Encode(dst)
	}
	if p.Signature != nil {
		dst = p.Signature.Encode(dst)
	}
	return append(dst, '}')
}

// DecodePreamble reads a preamble from the front of data.
func DecodePreamble(data []byte) (*Preamble, int, error) {
	if len(data) < 1 || data[0] != '{' {
		return nil, 0, errs.ErrInvalidData
	}
	pos := 1

	count, n, err := decodeVarintScalarValue(data[pos:], format.FamilyCount)
	if err != nil {
		return nil, 0, err
	}
	pos += n

	size, n, err := decodeVarintScalarValue(data[pos:], format.FamilyBitLength)
	if err != nil {
		return nil, 0, err
	}
	pos += n

	p := &Preamble{Count: count, SizeBits: size}

	for pos < len(data) && (format.Family(data[pos]) == format.FamilyHash || format.Family(data[pos]) == format.FamilySignature) {
		v, n, err := vtype.Decode(data[pos:])
		if err != nil {
			return nil, 0, err
		}
		switch val := v.(type) {
		case vtype.Hash:
			p.Hash = &val
		case vtype.Signature:
			p.Signature = &val
		}
		pos += n
	}

	if pos >= len(data) || data[pos] != '}' {
		return nil, 0, errs.ErrInvalidData
	}
	pos++

	if p.SizeBits%8 != 0 {
		return nil, 0, errs.ErrMisalignedLength
	}

	return p, pos, nil
}

// Field is one (name, value) pair inside a section body.
type Field struct {
	Name  string
	Value vtype.Value
}

// Encode appends `(d[name]:value)` to dst.
func (f Field) Encode(dst []byte) []byte {
	dst = append(dst, '(')
	dst = vtype.DataName(f.Name).Encode(dst)
	dst = append(dst, ':')
	dst = f.Value.Encode(dst)
	return append(dst, ')')
}

// DecodeField reads one field from the front of data.
func DecodeField(data []byte) (Field, int, error) {
	if len(data) < 1 || data[0] != '(' {
		return Field{}, 0, errs.ErrInvalidData
	}
	pos := 1

	name, n, err := decodeDataNameValue(data[pos:])
	if err != nil {
		return Field{}, 0, err
	}
	pos += n

	if pos >= len(data) || data[pos] != ':' {
		return Field{}, 0, errs.ErrInvalidData
	}
	pos++

	val, n, err := vtype.Decode(data[pos:])
	if err != nil {
		return Field{}, 0, err
	}
	pos += n

	if pos >= len(data) || data[pos] != ')' {
		return Field{}, 0, errs.ErrInvalidData
	}
	pos++

	return Field{Name: name, Value: val}, pos, nil
}

// Section is a full section body: preamble, name, and field list.
type Section struct {
	Preamble Preamble
	Name     string
	Fields   []Field
}

// Encode appends the section's full wire encoding to dst: preamble,
// `[`, name, fields, `]`.
func (s *Section) Encode(dst []byte) []byte {
	dst = s.Preamble.Encode(dst)
	dst = append(dst, '[')
	dst = vtype.DataName(s.Name).Encode(dst)
	for _, f := range s.Fields {
		dst = f.Encode(dst)
	}
	return append(dst, ']')
}

// DecodeSection reads a full section body from the front of data.
func DecodeSection(data []byte) (*Section, int, error) {
	preamble, n, err := DecodePreamble(data)
	if err != nil {
		return nil, 0, err
	}
	pos := n

	if pos >= len(data) || data[pos] != '[' {
		return nil, 0, errs.ErrInvalidData
	}
	pos++

	name, n, err := decodeDataNameValue(data[pos:])
	if err != nil {
		return nil, 0, err
	}
	pos += n

	fields := make([]Field, 0, preamble.Count)
	for pos < len(data) && data[pos] == '(' {
		f, n, err := DecodeField(data[pos:])
		if err != nil {
			return nil, 0, err
		}
		fields = append(fields, f)
		pos += n
	}

	if pos >= len(data) || data[pos] != ']' {
		return nil, 0, errs.ErrInvalidData
	}
	pos++

	if uint64(len(fields)) != preamble.Count {
		return nil, 0, errs.ErrPreambleMismatch
	}

	return &Section{Preamble: *preamble, Name: name, Fields: fields}, pos, nil
}

// BodyBytes returns the byte range of this section's encoded body
// (preamble through the closing `]`), used as the scope for per-section
// hashing and signing (spec §4.4 "over the same section-body byte
// range").
func (s *Section) BodyBytes() []byte {
	return s.Encode(nil)
}
