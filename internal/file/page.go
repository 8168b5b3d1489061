package file

import (
	"sync"

	"github.com/backbone81/storage-kernel/internal/encoding"
)

// Page is an in-memory buffer holding the content of a block, with a typed codec on top. A page can also have an
// arbitrary size when it is used to stage a single log record.
//
// Instances of Page are NOT safe to use concurrently. You need to provide external synchronization, for example by
// wrapping it into a LockedPage.
type Page struct {
	buffer []byte
}

// NewPage returns a zeroed page of size bytes.
func NewPage(size int) *Page {
	return &Page{
		buffer: make([]byte, size),
	}
}

// NewPageFromBytes returns a page holding a copy of data.
func NewPageFromBytes(data []byte) *Page {
	return &Page{
		buffer: append(make([]byte, 0, len(data)), data...),
	}
}

// Size returns the length of the page buffer in bytes.
func (p *Page) Size() int {
	return len(p.buffer)
}

// Uint64 returns the unsigned 64-bit integer stored at offset.
func (p *Page) Uint64(offset int) (uint64, error) {
	return encoding.Uint64(p.buffer, offset)
}

// SetUint64 stores value at offset.
func (p *Page) SetUint64(offset int, value uint64) error {
	return encoding.PutUint64(p.buffer, offset, value)
}

// Bytes returns the byte string stored at offset. The returned slice is a view into the page and changes with it.
func (p *Page) Bytes(offset int) ([]byte, error) {
	return encoding.Bytes(p.buffer, offset)
}

// SetBytes stores data as a length prefixed byte string at offset, overwriting whatever was there.
func (p *Page) SetBytes(offset int, data []byte) error {
	return encoding.PutBytes(p.buffer, offset, data)
}

// String returns the string stored at offset.
func (p *Page) String(offset int) (string, error) {
	return encoding.String(p.buffer, offset)
}

// SetString stores the UTF-8 encoding of value at offset.
func (p *Page) SetString(offset int, value string) error {
	return encoding.PutString(p.buffer, offset, value)
}

// Contents exposes the whole buffer for positioned I/O.
func (p *Page) Contents() []byte {
	return p.buffer
}

// MaxLengthForString returns the number of bytes value occupies in a page.
func MaxLengthForString(value string) int {
	return encoding.MaxLengthForString(value)
}

// LockedPage is a Page with its own mutex. The self-locking entry points of Manager take a LockedPage, so that a
// caller can prepare or inspect the page without contending on the lock of the manager.
type LockedPage struct {
	sync.Mutex
	*Page
}

// NewLockedPage wraps page with a mutex.
func NewLockedPage(page *Page) *LockedPage {
	return &LockedPage{
		Page: page,
	}
}
