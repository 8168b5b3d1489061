package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-logr/logr"
)

// TempFilePrefix is the file name prefix of scratch files. Those files are removed when a Manager is created.
const TempFilePrefix = "temp"

var (
	ErrInvalidBlockSize = errors.New("invalid block size")
	ErrFileNotOpen      = errors.New("file has not been opened by the file manager")
	ErrPageSizeMismatch = errors.New("page size does not match the block size")
	ErrShortRead        = errors.New("short read of block")
	ErrClosed           = errors.New("file manager is closed")
)

// BlockFile is the interface which needs to be implemented by the files a Manager is working with. It is satisfied
// by *os.File.
type BlockFile interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
	Stat() (fs.FileInfo, error)
	Sync() error
}

// OpenFunc is the function signature for opening or creating the file at the given path.
type OpenFunc func(filePath string) (BlockFile, error)

// OpenFile opens the file at filePath for reading and writing, creating it when it does not exist.
func OpenFile(filePath string) (BlockFile, error) {
	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE, 0o664) //nolint:gosec // We can not validate paths in a library.
	if err != nil {
		return nil, err
	}
	return file, nil
}

// Manager provides block granular access to all files in a single storage directory. Files are opened lazily on first
// reference and kept open until the manager is closed.
//
// Manager is safe to use from multiple Go routines concurrently. Every method holds the manager lock for its full
// duration. The methods with a Locked suffix are the exception: they expect the caller to already hold the lock
// through Lock and must not be called otherwise. They exist for components which need several block accesses as one
// step, as the lock of the manager is not reentrant.
type Manager struct {
	mutex sync.Mutex

	// The directory all managed files are located in.
	directory string

	// The size of every block in every file in bytes.
	blockSize uint64

	// Reports if the storage directory had to be created.
	isNew bool

	// All files which were opened so far, keyed by their name relative to directory.
	openFiles map[string]BlockFile

	// Set after Close. No file can be opened afterward.
	closed bool

	openFunc OpenFunc
	logger   logr.Logger
}

// Manager implements sync.Locker.
var _ sync.Locker = (*Manager)(nil)

// ManagerOption describes the function signature which all manager options need to implement.
type ManagerOption func(m *Manager)

// WithLogger overwrites the default logger which discards everything.
func WithLogger(logger logr.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithOpenFunc overwrites the function used for opening files. This allows for files which are not backed by the
// file system.
func WithOpenFunc(openFunc OpenFunc) ManagerOption {
	return func(m *Manager) {
		m.openFunc = openFunc
	}
}

// NewManager creates a manager for the given storage directory. The directory is created if it does not exist yet,
// and left over temporary files are removed.
func NewManager(directory string, blockSize uint64, options ...ManagerOption) (*Manager, error) {
	if blockSize == 0 {
		return nil, fmt.Errorf("block size must be positive: %w", ErrInvalidBlockSize)
	}

	newManager := Manager{
		directory: directory,
		blockSize: blockSize,
		openFiles: make(map[string]BlockFile),
		openFunc:  OpenFile,
		logger:    logr.Discard(),
	}
	for _, option := range options {
		option(&newManager)
	}

	isNew, err := newManager.prepareDirectory()
	if err != nil {
		return nil, err
	}
	newManager.isNew = isNew
	return &newManager, nil
}

// prepareDirectory creates the storage directory if necessary and removes temporary files. It reports if the
// directory was created.
func (m *Manager) prepareDirectory() (bool, error) {
	isNew := false
	if _, err := os.Stat(m.directory); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("inspecting the storage directory %q: %w", m.directory, err)
		}
		if err := os.MkdirAll(m.directory, 0o755); err != nil { //nolint:gosec // Other users may read the storage.
			return false, fmt.Errorf("creating the storage directory %q: %w", m.directory, err)
		}
		isNew = true
		m.logger.Info("Created storage directory", "directory", m.directory)
	}

	dirEntries, err := os.ReadDir(m.directory)
	if err != nil {
		return false, fmt.Errorf("reading the storage directory %q: %w", m.directory, err)
	}
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !strings.HasPrefix(dirEntry.Name(), TempFilePrefix) {
			continue
		}
		tempFilePath := filepath.Join(m.directory, dirEntry.Name())
		if err := os.Remove(tempFilePath); err != nil {
			return false, fmt.Errorf("removing the temporary file %q: %w", tempFilePath, err)
		}
		m.logger.Info("Removed temporary file", "file", tempFilePath)
	}
	return isNew, nil
}

// Directory returns the storage directory.
func (m *Manager) Directory() string {
	return m.directory
}

// BlockSize returns the size of every block in bytes.
func (m *Manager) BlockSize() uint64 {
	return m.blockSize
}

// IsNew reports if the storage directory did not exist before the manager was created.
func (m *Manager) IsNew() bool {
	return m.isNew
}

// Lock acquires the manager lock. Hold it while calling the methods with a Locked suffix.
func (m *Manager) Lock() {
	m.mutex.Lock()
}

// Unlock releases the manager lock.
func (m *Manager) Unlock() {
	m.mutex.Unlock()
}

// Read reads the content of block into page. See ReadLocked for details.
func (m *Manager) Read(block BlockID, page *LockedPage) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	page.Lock()
	defer page.Unlock()

	return m.ReadLocked(block, page.Page)
}

// ReadLocked reads the content of block into page and returns the number of bytes read. The page must be exactly one
// block in size. Reading at or across the end of the file is not an error, the returned count is just smaller than
// the block size then. The caller decides if that is acceptable.
// The caller must hold the manager lock.
func (m *Manager) ReadLocked(block BlockID, page *Page) (int, error) {
	if err := m.checkPageSize(page); err != nil {
		return 0, err
	}
	file, err := m.openLocked(block.Filename())
	if err != nil {
		return 0, err
	}

	n, err := file.ReadAt(page.Contents(), m.blockOffset(block))
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("reading block %s: %w", block, err)
	}
	BlocksReadTotal.Inc()
	BytesReadTotal.Add(float64(n))
	return n, nil
}

// Write writes page to block. See WriteLocked for details.
func (m *Manager) Write(block BlockID, page *LockedPage) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	page.Lock()
	defer page.Unlock()

	return m.WriteLocked(block, page.Page)
}

// WriteLocked writes page to the location of block and returns the number of bytes written. The page must be exactly
// one block in size. Writing past the end of the file grows it up to and including block, as the page is always a
// whole block. AppendLocked is the way to add the next block with a known number.
// The caller must hold the manager lock.
func (m *Manager) WriteLocked(block BlockID, page *Page) (int, error) {
	if err := m.checkPageSize(page); err != nil {
		return 0, err
	}
	file, err := m.openLocked(block.Filename())
	if err != nil {
		return 0, err
	}

	n, err := file.WriteAt(page.Contents(), m.blockOffset(block))
	if err != nil {
		return n, fmt.Errorf("writing block %s: %w", block, err)
	}
	BlocksWrittenTotal.Inc()
	BytesWrittenTotal.Add(float64(n))
	return n, nil
}

// Append adds a new zeroed block at the end of the file. See AppendLocked for details.
func (m *Manager) Append(filename string) (BlockID, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.AppendLocked(filename)
}

// AppendLocked adds a new zeroed block at the end of the file and returns its identifier. The file is created if it
// does not exist yet. This is the only operation which grows a file.
// The caller must hold the manager lock.
func (m *Manager) AppendLocked(filename string) (BlockID, error) {
	file, err := m.openLocked(filename)
	if err != nil {
		return BlockID{}, err
	}
	blockCount, err := m.blockCount(filename, file)
	if err != nil {
		return BlockID{}, err
	}

	block := NewBlockID(filename, blockCount)
	if _, err := file.WriteAt(make([]byte, m.blockSize), m.blockOffset(block)); err != nil {
		return BlockID{}, fmt.Errorf("appending block %s: %w", block, err)
	}
	BlocksAppendedTotal.Inc()
	BytesWrittenTotal.Add(float64(m.blockSize))
	m.logger.V(1).Info("Appended block", "file", filename, "block", block.Number())
	return block, nil
}

// BlockNum returns the number of blocks in the file. The file must have been referenced through the manager before,
// otherwise ErrFileNotOpen is returned.
func (m *Manager) BlockNum(filename string) (uint64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.closed {
		return 0, ErrClosed
	}
	file, ok := m.openFiles[filename]
	if !ok {
		return 0, fmt.Errorf("counting blocks of %q: %w", filename, ErrFileNotOpen)
	}
	return m.blockCount(filename, file)
}

// Length returns the number of blocks in the file. See LengthLocked for details.
func (m *Manager) Length(filename string) (uint64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.LengthLocked(filename)
}

// LengthLocked returns the number of blocks in the file. In contrast to BlockNum, the file is opened or created when
// it was not referenced before.
// The caller must hold the manager lock.
func (m *Manager) LengthLocked(filename string) (uint64, error) {
	file, err := m.openLocked(filename)
	if err != nil {
		return 0, err
	}
	return m.blockCount(filename, file)
}

// Sync flushes the content of the file to stable storage. See SyncLocked for details.
func (m *Manager) Sync(filename string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.SyncLocked(filename)
}

// SyncLocked flushes the content of the file to stable storage. The file must have been referenced before.
// The caller must hold the manager lock.
func (m *Manager) SyncLocked(filename string) error {
	if m.closed {
		return ErrClosed
	}
	file, ok := m.openFiles[filename]
	if !ok {
		return fmt.Errorf("syncing %q: %w", filename, ErrFileNotOpen)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("syncing %q: %w", filename, err)
	}
	return nil
}

// Close closes all open files. The manager cannot be used afterward.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var errs []error
	for filename, file := range m.openFiles {
		if err := file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %q: %w", filename, err))
		}
		OpenFiles.Dec()
	}
	clear(m.openFiles)
	m.closed = true
	return errors.Join(errs...)
}

// openLocked returns the open file for filename, opening it first if necessary.
func (m *Manager) openLocked(filename string) (BlockFile, error) {
	if m.closed {
		return nil, ErrClosed
	}
	if file, ok := m.openFiles[filename]; ok {
		return file, nil
	}

	filePath := filepath.Join(m.directory, filename)
	file, err := m.openFunc(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening the file %q: %w", filePath, err)
	}
	m.openFiles[filename] = file
	OpenFiles.Inc()
	m.logger.V(1).Info("Opened file", "file", filePath)
	return file, nil
}

func (m *Manager) blockCount(filename string, file BlockFile) (uint64, error) {
	fileInfo, err := file.Stat()
	if err != nil {
		return 0, fmt.Errorf("reading the size of %q: %w", filename, err)
	}
	return uint64(fileInfo.Size()) / m.blockSize, nil //nolint:gosec // file sizes are never negative
}

func (m *Manager) blockOffset(block BlockID) int64 {
	return int64(block.Number() * m.blockSize) //nolint:gosec // chances are low that offsets will overflow
}

func (m *Manager) checkPageSize(page *Page) error {
	if uint64(page.Size()) != m.blockSize { //nolint:gosec // sizes are never negative
		return fmt.Errorf("page of %d bytes for block size %d: %w", page.Size(), m.blockSize, ErrPageSizeMismatch)
	}
	return nil
}
