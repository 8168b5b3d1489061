package encoding

import (
	"fmt"
	"unicode/utf8"
)

// MaxLengthForString returns the number of bytes the encoded string occupies. This is the byte length of its UTF-8
// encoding plus the length prefix, which is more than the number of characters for multi-byte encodings.
func MaxLengthForString(value string) int {
	return BytesSize(len(value))
}

// PutString writes the UTF-8 encoding of value as a byte string at offset.
func PutString(buffer []byte, offset int, value string) error {
	if err := checkBounds(len(buffer), offset, uint64(MaxLengthForString(value))); err != nil { //nolint:gosec // sizes are never negative
		return err
	}
	Endian.PutUint64(buffer[offset:offset+Uint64Size], uint64(len(value)))
	copy(buffer[offset+Uint64Size:], value)
	return nil
}

// String reads the string stored at offset. It fails when the stored bytes are not valid UTF-8.
func String(buffer []byte, offset int) (string, error) {
	data, err := Bytes(buffer, offset)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("decoding string at offset %d: %w", offset, ErrInvalidUTF8)
	}
	return string(data), nil
}
