package vtype

import (
	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/format"
)

// geoScale converts between degrees and the E7 fixed-point integer
// representation (1 unit = 1e-7 degree, about 1.1cm of precision at the
// equator).
const geoScale = 1e7

// Geo is a geographic coordinate, family 'w': latitude and longitude
// each packed as a signed 32-bit E7 fixed-point integer into one 64-bit
// field, latitude in the high bits, longitude in the low bits,
// big-endian. This packing is an implementation choice (see DESIGN.md);
// spec.md specifies only "single 64-bit packed lat/lon".
type Geo struct {
	LatE7 int32
	LonE7 int32
}

func (Geo) Family() format.Family { return format.FamilyGeo }

// NewGeo builds a Geo from floating-point degrees.
func NewGeo(lat, lon float64) Geo {
	return Geo{
		LatE7: int32(lat * geoScale),
		LonE7: int32(lon * geoScale),
	}
}

// Degrees returns the coordinate as floating-point degrees.
func (g Geo) Degrees() (lat, lon float64) {
	return float64(g.LatE7) / geoScale, float64(g.LonE7) / geoScale
}

func (g Geo) Encode(dst []byte) []byte {
	dst = append(dst, byte(format.FamilyGeo))
	return appendUint64BE(dst, uint64(uint32(g.LatE7))<<32|uint64(uint32(g.LonE7)))
}

func decodeGeo(data []byte) (Value, int, error) {
	if len(data) < 9 {
		return nil, 0, errs.ErrUnexpectedEOF
	}
	packed := readUint64BE(data[1:9])
	return Geo{
		LatE7: int32(uint32(packed >> 32)),
		LonE7: int32(uint32(packed)),
	}, 9, nil
}
