// Package format defines the byte-level constants shared by every VSF
// encoder and decoder: family tags, the magic prefix, and the
// cryptographic algorithm identifier registry.
package format

// Family is the one-byte tag that opens every typed value.
type Family byte

// Family tags, in the order the spec's data model lists them.
const (
	FamilyBool       Family = 'u' // also covers unsigned int; S byte disambiguates
	FamilySignedInt  Family = 'i'
	FamilyFloat      Family = 'f'
	FamilyComplex    Family = 'j'
	FamilySpirix     Family = 's' // Spirix scalar
	FamilyCircle     Family = 'c' // Spirix circle
	FamilyString     Family = 'x'
	FamilyEagleTime  Family = 'e'
	FamilyGeo        Family = 'w'
	FamilyTensor     Family = 't'
	FamilyStrided    Family = 'q'
	FamilyBitpacked  Family = 'p'
	FamilyDataName   Family = 'd'
	FamilyLabel      Family = 'l'
	FamilyOffset     Family = 'o'
	FamilyBitLength  Family = 'b'
	FamilyCount      Family = 'n'
	FamilyVersion    Family = 'z'
	FamilyCompatVer  Family = 'y'
	FamilyMarker     Family = 'm'
	FamilyReference  Family = 'r'
	FamilyHash       Family = 'h'
	FamilySignature  Family = 'g'
	FamilyKey        Family = 'k'
	FamilyMAC        Family = 'a'
	FamilyWrap       Family = 'v'
)

func (f Family) String() string {
	switch f {
	case FamilyBool:
		return "Bool/UnsignedInt"
	case FamilySignedInt:
		return "SignedInt"
	case FamilyFloat:
		return "Float"
	case FamilyComplex:
		return "Complex"
	case FamilySpirix:
		return "Spirix"
	case FamilyCircle:
		return "SpirixCircle"
	case FamilyString:
		return "String"
	case FamilyEagleTime:
		return "EagleTime"
	case FamilyGeo:
		return "GeoCoordinate"
	case FamilyTensor:
		return "DenseTensor"
	case FamilyStrided:
		return "StridedTensor"
	case FamilyBitpacked:
		return "BitpackedTensor"
	case FamilyDataName:
		return "DataName"
	case FamilyLabel:
		return "Label"
	case FamilyOffset:
		return "Offset"
	case FamilyBitLength:
		return "BitLength"
	case FamilyCount:
		return "Count"
	case FamilyVersion:
		return "Version"
	case FamilyCompatVer:
		return "CompatVersion"
	case FamilyMarker:
		return "Marker"
	case FamilyReference:
		return "Reference"
	case FamilyHash:
		return "Hash"
	case FamilySignature:
		return "Signature"
	case FamilyKey:
		return "Key"
	case FamilyMAC:
		return "MAC"
	case FamilyWrap:
		return "Wrap"
	default:
		return "Unknown"
	}
}

// Magic is the three-byte prefix that opens every VSF file: 'R'
// followed by 'Å' (0xC3 0x85 in UTF-8). The '<' that follows it in the
// file is HeaderOpen.
var Magic = [3]byte{'R', 0xC3, 0x85}

// HeaderOpen and HeaderClose delimit the header body within the file,
// immediately after Magic and immediately before the first section body.
const (
	HeaderOpen  = '<'
	HeaderClose = '>'
)

// Section and field delimiters.
const (
	SectionOpen   = '['
	SectionClose  = ']'
	FieldOpen     = '('
	FieldClose    = ')'
	FieldSep      = ':'
)

// Size tags used after a fixed-width family tag ('3'..'7') and as the
// F/E precision components of a Spirix tag. These are the same bytes as
// varint.Tag1Byte..Tag16Byte; format does not import varint, so the
// values are restated here and must be kept equal by hand.
const (
	Size8   byte = '3'
	Size16  byte = '4'
	Size32  byte = '5'
	Size64  byte = '6'
	Size128 byte = '7'
)

// BoolFalse and BoolTrue are the two byte values a FamilyBool value may
// carry when the following byte is not a size tag.
const (
	BoolFalse byte = 0x00
	BoolTrue  byte = 0xFF
)

// Eagle Time sub-tags.
const (
	EagleTimeUnsigned byte = 'u'
	EagleTimeSigned   byte = 'i'
	EagleTimeFloat    byte = 'f'
)

// Container scalar tags double as field-name/value family tags in the
// label table and section preamble; aliased here under the names §3.4
// uses so container code reads the way the spec does.
const (
	TagDataName  = FamilyDataName
	TagLabel     = FamilyLabel
	TagOffset    = FamilyOffset
	TagBitLength = FamilyBitLength
	TagCount     = FamilyCount
	TagVersion   = FamilyVersion
	TagCompatVer = FamilyCompatVer
	TagMarker    = FamilyMarker
	TagReference = FamilyReference
	TagHash      = FamilyHash
	TagSignature = FamilySignature
	TagKey       = FamilyKey
	TagMAC       = FamilyMAC
	TagWrap      = FamilyWrap
)
