package vtype

import (
	"math"

	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/varint"
)

// EagleTime is a timestamp measured in seconds (unsigned, signed, or
// floating point) since the Eagle Time epoch, the Apollo 11 lunar
// landing (1969-07-20T20:17:40Z). The sub-tag selects the representation.
//
// The float sub-tag carries an explicit width byte ('5' or '6') rather
// than inferring f32-vs-f64 from the remaining buffer length, per
// spec.md §9 Open Question 2's own recommendation (see DESIGN.md).
type EagleTime struct {
	Sub byte // format.EagleTimeUnsigned / Signed / Float

	Unsigned   uint64
	Signed     int64
	FloatWidth byte // format.Size32 or format.Size64, only when Sub == Float
	Float32    float32
	Float64    float64
}

func (EagleTime) Family() format.Family { return format.FamilyEagleTime }

func (t EagleTime) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyEagleTime), t.Sub)
	switch t.Sub {
	case format.EagleTimeUnsigned:
		return varint.EncodeUint64(dst, t.Unsigned)
	case format.EagleTimeSigned:
		return varint.EncodeInt64(dst, t.Signed)
	case format.EagleTimeFloat:
		dst = append(dst, t.FloatWidth)
		if t.FloatWidth == format.Size64 {
			return appendUint64BE(dst, math.Float64bits(t.Float64))
		}
		return appendUint32BE(dst, math.Float32bits(t.Float32))
	default:
		return dst
	}
}

func decodeEagleTime(data []byte) (Value, int, error) {
	if len(data) < 2 {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	sub := data[1]
	switch sub {
	case format.EagleTimeUnsigned:
		v, n, err := varint.DecodeUint64(data[2:])
		if err != nil {
			return nil, 0, err
		}
		return EagleTime{Sub: sub, Unsigned: v}, 2 + n, nil
	case format.EagleTimeSigned:
		v, n, err := varint.DecodeInt64(data[2:])
		if err != nil {
			return nil, 0, err
		}
		return EagleTime{Sub: sub, Signed: v}, 2 + n, nil
	case format.EagleTimeFloat:
		if len(data) < 3 {
			return nil, 0, errs.ErrUnexpectedEOF
		}
		width := data[2]
		switch width {
		case format.Size32:
			if len(data) < 7 {
				return nil, 0, errs.ErrUnexpectedEOF
			}
			f := math.Float32frombits(readUint32BE(data[3:7]))
			return EagleTime{Sub: sub, FloatWidth: width, Float32: f}, 7, nil
		case format.Size64:
			if len(data) < 11 {
				return nil, 0, errs.ErrUnexpectedEOF
			}
			f := math.Float64frombits(readUint64BE(data[3:11]))
			return EagleTime{Sub: sub, FloatWidth: width, Float64: f}, 11, nil
		default:
			return nil, 0, errs.ErrInvalidData
		}
	default:
		return nil, 0, errs.ErrInvalidData
	}
}
