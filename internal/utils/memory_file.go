package utils

import (
	"errors"
	"io"
	"io/fs"
	"time"
)

// MemoryFile provides a stub for a block file which keeps all data in memory. It allows us to exercise the file
// manager without touching the disk and to inspect what was written.
type MemoryFile struct {
	FileName string
	Data     []byte
	Closed   bool
	Syncs    int
}

func (m *MemoryFile) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("negative offset")
	}
	if off >= int64(len(m.Data)) {
		return 0, io.EOF
	}
	n := copy(p, m.Data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *MemoryFile) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("negative offset")
	}
	if end := off + int64(len(p)); end > int64(len(m.Data)) {
		grown := make([]byte, end)
		copy(grown, m.Data)
		m.Data = grown
	}
	return copy(m.Data[off:], p), nil
}

func (m *MemoryFile) Stat() (fs.FileInfo, error) {
	return memoryFileInfo{name: m.FileName, size: int64(len(m.Data))}, nil
}

func (m *MemoryFile) Sync() error {
	m.Syncs++
	return nil
}

func (m *MemoryFile) Close() error {
	m.Closed = true
	return nil
}

type memoryFileInfo struct {
	name string
	size int64
}

func (i memoryFileInfo) Name() string       { return i.name }
func (i memoryFileInfo) Size() int64        { return i.size }
func (i memoryFileInfo) Mode() fs.FileMode  { return 0o664 }
func (i memoryFileInfo) ModTime() time.Time { return time.Time{} }
func (i memoryFileInfo) IsDir() bool        { return false }
func (i memoryFileInfo) Sys() any           { return nil }
