// Package encoding provides the bounds checked binary codec every page of the storage kernel is built on.
//
//   - Unsigned 64-bit integers are stored as eight bytes in big-endian order.
//   - Byte strings are stored as an unsigned 64-bit length followed by that many raw bytes.
//   - Strings are byte strings holding the UTF-8 encoding of the text.
//
// All functions work on a caller provided buffer and an offset into it. An offset which does not leave enough room
// for the whole encoded value results in ErrOutOfBounds instead of a panic.
package encoding

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Endian is the endianness the storage kernel uses for serializing/deserializing integers to file.
var Endian = binary.BigEndian

// Uint64Size is the number of bytes an encoded unsigned 64-bit integer occupies. It is also the size of the length
// prefix of byte strings.
const Uint64Size = 8

var (
	ErrOutOfBounds = errors.New("offset out of bounds")
	ErrInvalidUTF8 = errors.New("invalid UTF-8 string")
)

// checkBounds makes sure that size bytes starting at offset fit into a buffer of bufferLen bytes.
func checkBounds(bufferLen int, offset int, size uint64) error {
	if offset < 0 || offset > bufferLen || uint64(bufferLen-offset) < size { //nolint:gosec // bufferLen-offset cannot be negative here
		return outOfBoundsError(bufferLen, offset, size)
	}
	return nil
}

func outOfBoundsError(bufferLen int, offset int, size uint64) error {
	return fmt.Errorf("accessing %d bytes at offset %d of a %d byte buffer: %w", size, offset, bufferLen, ErrOutOfBounds)
}
