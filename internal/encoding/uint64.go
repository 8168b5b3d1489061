package encoding

// PutUint64 writes value at offset.
func PutUint64(buffer []byte, offset int, value uint64) error {
	if err := checkBounds(len(buffer), offset, Uint64Size); err != nil {
		return err
	}
	Endian.PutUint64(buffer[offset:offset+Uint64Size], value)
	return nil
}

// Uint64 reads the value stored at offset.
func Uint64(buffer []byte, offset int) (uint64, error) {
	if err := checkBounds(len(buffer), offset, Uint64Size); err != nil {
		return 0, err
	}
	return Endian.Uint64(buffer[offset : offset+Uint64Size]), nil
}
