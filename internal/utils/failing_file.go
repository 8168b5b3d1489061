package utils

import "io/fs"

// FailingFile provides a stub for a block file which wraps a MemoryFile and fails the operations configured with an
// error. It allows us to test that I/O errors are propagated instead of being swallowed.
type FailingFile struct {
	MemoryFile

	ReadErr  error
	WriteErr error
	StatErr  error
	SyncErr  error
	CloseErr error

	// The number of writes which succeed before WriteErr is returned.
	WriteErrAfter int
	writes        int
}

func (f *FailingFile) ReadAt(p []byte, off int64) (int, error) {
	if f.ReadErr != nil {
		return 0, f.ReadErr
	}
	return f.MemoryFile.ReadAt(p, off)
}

func (f *FailingFile) WriteAt(p []byte, off int64) (int, error) {
	f.writes++
	if f.WriteErr != nil && f.writes > f.WriteErrAfter {
		return 0, f.WriteErr
	}
	return f.MemoryFile.WriteAt(p, off)
}

func (f *FailingFile) Stat() (fs.FileInfo, error) {
	if f.StatErr != nil {
		return nil, f.StatErr
	}
	return f.MemoryFile.Stat()
}

func (f *FailingFile) Sync() error {
	if f.SyncErr != nil {
		return f.SyncErr
	}
	return f.MemoryFile.Sync()
}

func (f *FailingFile) Close() error {
	if f.CloseErr != nil {
		return f.CloseErr
	}
	return f.MemoryFile.Close()
}
