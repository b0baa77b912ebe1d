// Package endian provides a byte-order engine.
//
// It extends the standard encoding/binary package by combining
// ByteOrder and AppendByteOrder into a single EndianEngine interface,
// which lets encoders append multi-byte values without an intermediate
// temporary buffer.
//
// VSF's wire format is always big-endian (spec: "two's complement
// big-endian", "IEEE float ... big-endian") — there is no per-file
// byte-order flag. No other package in this module imports endian: the
// vtype and container encoders and decoders write and read their
// big-endian bytes directly.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine VSF uses on the wire.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine. VSF's wire
// format never uses it.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
