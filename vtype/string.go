package vtype

import (
	"unicode/utf8"

	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/varint"
)

// String is a UTF-8 string, family 'x': varint length prefix then bytes.
type String string

func (String) Family() format.Family { return format.FamilyString }

func (s String) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyString))
	dst = varint.EncodeUint64(dst, uint64(len(s)))
	return append(dst, s...)
}

func decodeString(data []byte) (Value, int, error) {
	return decodeLengthPrefixed(data, format.FamilyString)
}

// decodeLengthPrefixed is shared by the 'x' (String) and 'd' (DataName)
// families, which have identical wire shapes and differ only in tag.
func decodeLengthPrefixed(data []byte, family format.Family) (Value, int, error) {
	if len(data) < 1 {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	n, consumed, err := varint.DecodeUint64(data[1:])
	if err != nil {
		return nil, 0, err
	}
	start := 1 + consumed
	end := start + int(n)
	if end > len(data) || end < start {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	s := data[start:end]
	if !utf8.Valid(s) {
		return nil, 0, errs.ErrInvalidUTF8
	}
	if family == format.FamilyDataName {
		return DataName(s), end, nil
	}
	return String(s), end, nil
}
