// Package container implements VSF's container framing (spec §3
// "Container entities" and §4.3/§4.4): the header and its label table,
// section preambles and bodies, field framing, offset stabilization, and
// a name-hash index for O(1) section lookup.
package container

import (
	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/vtype"
)

// Label is one header entry: it names a section and records its offset,
// size, and any optional cryptographic metadata. ChildCount is omitted
// from the wire entirely when Wrap is set, since an encrypted section's
// contents are opaque (spec §4.4 "Encryption metadata").
type Label struct {
	Name string

	Hash      *vtype.Hash
	Signature *vtype.Signature
	Key       *vtype.Key
	Wrap      *vtype.Wrap

	Offset uint64
	Size   uint64

	// ChildCount is the section's field count. It is always populated by
	// callers; Encode omits it from the wire only when Wrap != nil.
	ChildCount uint64
}

// Encode appends this label's byte-exact encoding to dst: name, then any
// of hash/signature/key/wrap present (in that canonical order), then
// offset, size, and (unless encrypted) child count.
func (l *Label) Encode(dst []byte) []byte {
	dst = vtype.DataName(l.Name).Encode(dst)
	if l.Hash != nil {
		dst = l.Hash.Encode(dst)
	}
	if l.Signature != nil {
		dst = l.Signature.Encode(dst)
	}
	if l.Key != nil {
		dst = l.Key.Encode(dst)
	}
	if l.Wrap != nil {
		dst = l.Wrap.Encode(dst)
	}
	dst = vtype.NewOffset(l.Offset).Encode(dst)
	dst = vtype.NewBitLength(l.Size).Encode(dst)
	if l.Wrap == nil {
		dst = vtype.NewCount(l.ChildCount).Encode(dst)
	}
	return dst
}

// DecodeLabel reads one label from the front of data. The optional
// hash/signature/key/wrap fields may appear in any combination and, per
// the original implementation's parser, any order: decoding loops while
// the next family tag is one of h/g/k/v.
func DecodeLabel(data []byte) (*Label, int, error) {
	name, n, err := decodeDataNameValue(data)
	if err != nil {
		return nil, 0, err
	}
	pos := n
	l := &Label{Name: name}

cryptoFields:
	for pos < len(data) {
		switch format.Family(data[pos]) {
		case format.FamilyHash:
			v, n, err := vtype.Decode(data[pos:])
			if err != nil {
				return nil, 0, err
			}
			h := v.(vtype.Hash)
			l.Hash = &h
			pos += n
		case format.FamilySignature:
			v, n, err := vtype.Decode(data[pos:])
			if err != nil {
				return nil, 0, err
			}
			s := v.(vtype.Signature)
			l.Signature = &s
			pos += n
		case format.FamilyKey:
			v, n, err := vtype.Decode(data[pos:])
			if err != nil {
				return nil, 0, err
			}
			k := v.(vtype.Key)
			l.Key = &k
			pos += n
		case format.FamilyWrap:
			v, n, err := vtype.Decode(data[pos:])
			if err != nil {
				return nil, 0, err
			}
			w := v.(vtype.Wrap)
			l.Wrap = &w
			pos += n
		default:
			break cryptoFields
		}
	}

	offset, n, err := decodeVarintScalarValue(data[pos:], format.FamilyOffset)
	if err != nil {
		return nil, 0, err
	}
	l.Offset = offset
	pos += n

	size, n, err := decodeVarintScalarValue(data[pos:], format.FamilyBitLength)
	if err != nil {
		return nil, 0, err
	}
	l.Size = size
	pos += n

	if l.Wrap == nil {
		count, n, err := decodeVarintScalarValue(data[pos:], format.FamilyCount)
		if err != nil {
			return nil, 0, err
		}
		l.ChildCount = count
		pos += n
	}

	return l, pos, nil
}

func decodeDataNameValue(data []byte) (string, int, error) {
	v, n, err := vtype.Decode(data)
	if err != nil {
		return "", 0, err
	}
	name, ok := v.(vtype.DataName)
	if !ok {
		return "", 0, errs.ErrInvalidData
	}
	return string(name), n, nil
}

func decodeVarintScalarValue(data []byte, family format.Family) (uint64, int, error) {
	v, n, err := vtype.Decode(data)
	if err != nil {
		return 0, 0, err
	}
	scalar, ok := v.(vtype.VarintScalar)
	if !ok || scalar.Family() != family {
		return 0, 0, errs.ErrInvalidData
	}
	return scalar.Uint64(), n, nil
}
