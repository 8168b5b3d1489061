package file

import (
	"fmt"
	"hash/fnv"

	"github.com/backbone81/storage-kernel/internal/encoding"
)

// BlockID names a single block inside a managed file. It is a comparable value and can be used as a map key directly.
type BlockID struct {
	filename string
	number   uint64
}

// NewBlockID returns the identifier for the block with the given number in the given file.
func NewBlockID(filename string, number uint64) BlockID {
	return BlockID{
		filename: filename,
		number:   number,
	}
}

// Filename returns the name of the file the block belongs to.
func (b BlockID) Filename() string {
	return b.filename
}

// Number returns the number of the block inside its file.
func (b BlockID) Number() uint64 {
	return b.number
}

// Equal reports if both identifiers name the same block.
func (b BlockID) Equal(other BlockID) bool {
	return b.filename == other.filename && b.number == other.number
}

// HashCode returns a hash over the file name and the block number.
func (b BlockID) HashCode() uint64 {
	var number [encoding.Uint64Size]byte
	encoding.Endian.PutUint64(number[:], b.number)

	h := fnv.New64a()
	_, _ = h.Write([]byte(b.filename))
	_, _ = h.Write(number[:])
	return h.Sum64()
}

func (b BlockID) String() string {
	return fmt.Sprintf("[file %q, block %d]", b.filename, b.number)
}
