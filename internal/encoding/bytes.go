package encoding

// BytesSize returns the number of bytes a byte string of the given length occupies when encoded.
func BytesSize(length int) int {
	return Uint64Size + length
}

// PutBytes writes the length of data followed by data itself at offset. Nothing is written when the encoded value
// does not fit into the buffer.
func PutBytes(buffer []byte, offset int, data []byte) error {
	if err := checkBounds(len(buffer), offset, uint64(BytesSize(len(data)))); err != nil { //nolint:gosec // sizes are never negative
		return err
	}
	Endian.PutUint64(buffer[offset:offset+Uint64Size], uint64(len(data)))
	copy(buffer[offset+Uint64Size:], data)
	return nil
}

// Bytes reads the byte string stored at offset. The returned slice is a view into buffer and is only valid as long as
// buffer is not modified.
func Bytes(buffer []byte, offset int) ([]byte, error) {
	length, err := Uint64(buffer, offset)
	if err != nil {
		return nil, err
	}

	// The length comes from the buffer itself and might be garbage. We check it against the remaining bytes before
	// converting it to int to not overflow on corrupted data.
	start := offset + Uint64Size
	if err := checkBounds(len(buffer), start, length); err != nil {
		return nil, err
	}
	return buffer[start : start+int(length)], nil //nolint:gosec // length was checked against the buffer length
}
