// Package endian provides byte order utilities for binary encoding and decoding.
//
// This package combines the ByteOrder and AppendByteOrder interfaces of
// encoding/binary into a single EndianEngine interface, so a codec can both
// read fixed-width integers at an offset and append them to a growing buffer
// through one value.
//
// # Basic Usage
//
// The flattened device tree format is big-endian throughout, so most callers
// want the FDT engine:
//
//	engine := endian.FDT()
//	v := engine.Uint32(buf[pos:])
//	buf = engine.AppendUint32(buf, v)
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// FDT returns the engine mandated by the flattened device tree format.
func FDT() EndianEngine {
	return binary.BigEndian
}

// Detect returns the engine under which the first four bytes of word read as
// magic. It reports false if neither byte order matches or word is too short.
func Detect(word []byte, magic uint32) (EndianEngine, bool) {
	if len(word) < 4 {
		return nil, false
	}

	for _, engine := range []EndianEngine{GetBigEndianEngine(), GetLittleEndianEngine()} {
		if engine.Uint32(word) == magic {
			return engine, true
		}
	}

	return nil, false
}
