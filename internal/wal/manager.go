package wal

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/backbone81/storage-kernel/internal/encoding"
	"github.com/backbone81/storage-kernel/internal/file"
	"github.com/backbone81/storage-kernel/internal/utils"
)

// BoundarySize is the number of bytes at the start of every log block which store the boundary.
const BoundarySize = encoding.Uint64Size

// DefaultSlowFlushThreshold is the duration after which a flush is reported as too slow.
const DefaultSlowFlushThreshold = time.Second

var (
	ErrRecordTooLarge = errors.New("record does not fit into a log block")
	ErrCorruptBlock   = errors.New("log block is corrupt")
)

// Manager appends records to the write-ahead log. It keeps the newest block of the log file in memory as tail page
// and writes it to disk when it is full or when a flush is requested.
//
// Instances of this struct are NOT safe for concurrent use. Either use it on a single Go routine or provide your own
// external synchronization around appending and flushing. The file manager itself can still be shared with other
// components.
type Manager struct {
	noCopy utils.NoCopy

	fileManager *file.Manager
	logFile     string

	// The in-memory copy of currentBlock. Appended records are only visible on disk after a flush.
	logPage      *file.Page
	currentBlock file.BlockID

	// The sequence number of the most recently appended record.
	latestSequenceNumber uint64

	// The sequence number up to which the log is known to be on disk.
	lastSavedSequenceNumber uint64

	// A block which was added to the log file by a rollover that failed before the block was initialized. The next
	// rollover continues with it instead of adding yet another block.
	pendingBlock    file.BlockID
	hasPendingBlock bool

	syncPolicy         SyncPolicy
	slowFlushThreshold time.Duration
	logger             logr.Logger
}

// ManagerOption describes the function signature which all manager options need to implement.
type ManagerOption func(m *Manager)

// WithLogger overwrites the default logger which discards everything.
func WithLogger(logger logr.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithSlowFlushThreshold overwrites the default duration after which a flush is reported as too slow.
func WithSlowFlushThreshold(slowFlushThreshold time.Duration) ManagerOption {
	return func(m *Manager) {
		m.slowFlushThreshold = slowFlushThreshold
	}
}

// WithSyncPolicy overwrites the default sync policy.
func WithSyncPolicy(syncPolicy SyncPolicy) ManagerOption {
	return func(m *Manager) {
		m.syncPolicy = syncPolicy
	}
}

// WithSyncPolicyNone overwrites the default sync policy with sync policy none.
func WithSyncPolicyNone() ManagerOption {
	return WithSyncPolicy(NewSyncPolicyNone())
}

// WithSyncPolicyImmediate overwrites the default sync policy with sync policy immediate.
func WithSyncPolicyImmediate() ManagerOption {
	return WithSyncPolicy(NewSyncPolicyImmediate())
}

// WithSyncPolicyPeriodic overwrites the default sync policy with sync policy periodic.
func WithSyncPolicyPeriodic(syncAfterFlushCount int, syncEvery time.Duration) ManagerOption {
	return WithSyncPolicy(NewSyncPolicyPeriodic(syncAfterFlushCount, syncEvery))
}

// NewManager creates a log manager for logFile. An empty or missing log file gets its first block. Otherwise, the last
// block of the log file becomes the tail page and new records are added to the space left in it.
func NewManager(fileManager *file.Manager, logFile string, options ...ManagerOption) (*Manager, error) {
	blockSize := fileManager.BlockSize()
	if blockSize < 2*BoundarySize {
		return nil, fmt.Errorf("block size %d is too small for log blocks: %w", blockSize, file.ErrInvalidBlockSize)
	}

	newManager := Manager{
		fileManager:        fileManager,
		logFile:            logFile,
		logPage:            file.NewPage(int(blockSize)), //nolint:gosec // block sizes fit into memory
		syncPolicy:         NewSyncPolicyNone(),
		slowFlushThreshold: DefaultSlowFlushThreshold,
		logger:             logr.Discard(),
	}
	for _, option := range options {
		option(&newManager)
	}

	// Determining the length and reading or creating the last block needs to be one step for the file manager.
	fileManager.Lock()
	defer fileManager.Unlock()

	blockCount, err := fileManager.LengthLocked(logFile)
	if err != nil {
		return nil, err
	}
	if blockCount == 0 {
		if err := newManager.appendNewBlockLocked(); err != nil {
			return nil, err
		}
		return &newManager, nil
	}

	newManager.currentBlock = file.NewBlockID(logFile, blockCount-1)
	if err := readBlockLocked(fileManager, newManager.currentBlock, newManager.logPage); err != nil {
		return nil, err
	}
	if _, err := readBoundary(newManager.logPage, newManager.currentBlock); err != nil {
		return nil, err
	}
	newManager.logger.Info("Opened log", "file", logFile, "block", newManager.currentBlock.Number())
	return &newManager, nil
}

// LogFile returns the name of the log file relative to the storage directory.
func (m *Manager) LogFile() string {
	return m.logFile
}

// CurrentBlock returns the block the tail page belongs to.
func (m *Manager) CurrentBlock() file.BlockID {
	return m.currentBlock
}

// LatestSequenceNumber returns the sequence number of the most recently appended record.
func (m *Manager) LatestSequenceNumber() uint64 {
	return m.latestSequenceNumber
}

// LastSavedSequenceNumber returns the sequence number which was last confirmed through FlushBySequenceNumber.
func (m *Manager) LastSavedSequenceNumber() uint64 {
	return m.lastSavedSequenceNumber
}

// Append adds record to the tail page and returns its sequence number. When the tail page does not have enough space
// left, the tail page is flushed and a new block is allocated first. A record is never split across blocks.
//
// The record is only stored in memory. Use Flush or FlushBySequenceNumber to make sure it reached the disk.
func (m *Manager) Append(record []byte) (uint64, error) {
	blockSize := m.fileManager.BlockSize()
	need := uint64(encoding.BytesSize(len(record))) //nolint:gosec // sizes are never negative
	if need+BoundarySize > blockSize {
		return 0, fmt.Errorf("record of %d bytes with block size %d: %w", len(record), blockSize, ErrRecordTooLarge)
	}

	boundary, err := readBoundary(m.logPage, m.currentBlock)
	if err != nil {
		return 0, err
	}
	if boundary < need+BoundarySize {
		if err := m.rollover(); err != nil {
			return 0, err
		}
		boundary = blockSize
	}

	position := boundary - need
	if err := m.logPage.SetBytes(int(position), record); err != nil { //nolint:gosec // position is within the block
		return 0, fmt.Errorf("writing record to the tail page: %w", err)
	}
	if err := m.logPage.SetUint64(0, position); err != nil {
		return 0, fmt.Errorf("writing boundary to the tail page: %w", err)
	}

	m.latestSequenceNumber++
	AppendTotal.Inc()
	AppendBytesTotal.Add(float64(len(record)))
	return m.latestSequenceNumber, nil
}

// Flush writes the tail page to its block on disk, no matter if it changed since the last flush.
func (m *Manager) Flush() error {
	m.fileManager.Lock()
	defer m.fileManager.Unlock()

	return m.flushLocked()
}

// FlushBySequenceNumber makes sure that all records up to sequenceNumber are on disk. It only flushes if
// sequenceNumber was not confirmed before. This allows several callers to share a single flush.
func (m *Manager) FlushBySequenceNumber(sequenceNumber uint64) error {
	if sequenceNumber <= m.lastSavedSequenceNumber {
		FlushSkippedTotal.Inc()
		return nil
	}
	if err := m.Flush(); err != nil {
		return err
	}
	m.lastSavedSequenceNumber = sequenceNumber
	return nil
}

// Iterator flushes the tail page and returns an iterator over all records, starting with the most recently appended
// one.
func (m *Manager) Iterator() (*Iterator, error) {
	if err := m.Flush(); err != nil {
		return nil, err
	}
	return NewIterator(m.fileManager, m.currentBlock)
}

// Close flushes the tail page and shuts down the sync policy. The manager cannot be used afterward. The file manager
// is not closed, as it is shared with other components.
func (m *Manager) Close() error {
	flushErr := m.Flush()
	syncErr := m.syncPolicy.Close(m.fileManager, m.logFile)

	return errors.Join(flushErr, syncErr)
}

// rollover flushes the full tail page and continues with a new block.
func (m *Manager) rollover() error {
	m.fileManager.Lock()
	defer m.fileManager.Unlock()

	if err := m.flushLocked(); err != nil {
		return err
	}
	return m.appendNewBlockLocked()
}

// flushLocked writes the tail page to its block and applies the sync policy.
// The caller must hold the file manager lock.
func (m *Manager) flushLocked() error {
	FlushTotal.Inc()
	start := time.Now()

	if _, err := m.fileManager.WriteLocked(m.currentBlock, m.logPage); err != nil {
		return fmt.Errorf("flushing the tail page: %w", err)
	}
	if err := m.syncPolicy.BlockFlushed(m.fileManager, m.logFile); err != nil {
		return err
	}

	duration := time.Since(start)
	if duration >= m.slowFlushThreshold {
		m.logger.Error(nil, "Log flush is too slow", "file", m.logFile, "block", m.currentBlock.Number(), "duration", duration)
	}
	FlushDuration.Observe(duration.Seconds())
	return nil
}

// appendNewBlockLocked allocates a new block at the end of the log file, writes it as empty block and makes it the
// tail page. The tail page and the current block are only replaced after the new block was written, so a failure
// leaves the manager with the block it had before.
// The caller must hold the file manager lock.
func (m *Manager) appendNewBlockLocked() error {
	block := m.pendingBlock
	if !m.hasPendingBlock {
		var err error
		block, err = m.fileManager.AppendLocked(m.logFile)
		if err != nil {
			return err
		}
		m.pendingBlock = block
		m.hasPendingBlock = true
	}

	page := file.NewPage(m.logPage.Size())
	if err := page.SetUint64(0, m.fileManager.BlockSize()); err != nil {
		return fmt.Errorf("initializing the boundary of %s: %w", block, err)
	}
	if _, err := m.fileManager.WriteLocked(block, page); err != nil {
		return fmt.Errorf("initializing %s: %w", block, err)
	}

	m.logPage = page
	m.currentBlock = block
	m.hasPendingBlock = false
	NewBlockTotal.Inc()
	m.logger.V(1).Info("Allocated log block", "file", m.logFile, "block", block.Number())
	return nil
}

// readBlockLocked reads block into page and reports a block which is not fully present on disk.
// The caller must hold the file manager lock.
func readBlockLocked(fileManager *file.Manager, block file.BlockID, page *file.Page) error {
	n, err := fileManager.ReadLocked(block, page)
	if err != nil {
		return err
	}
	if n != page.Size() {
		return fmt.Errorf("reading %s returned %d of %d bytes: %w", block, n, page.Size(), file.ErrShortRead)
	}
	return nil
}

// readBoundary returns the boundary stored in page. A boundary of zero belongs to a block which was added to the log
// file but never initialized, it is treated as empty block. Any other boundary which does not point into the record
// area of the block means that the block was not written by a Manager.
func readBoundary(page *file.Page, block file.BlockID) (uint64, error) {
	boundary, err := page.Uint64(0)
	if err != nil {
		return 0, fmt.Errorf("reading the boundary of %s: %w", block, err)
	}
	if boundary == 0 {
		return uint64(page.Size()), nil //nolint:gosec // sizes are never negative
	}
	if boundary < BoundarySize || boundary > uint64(page.Size()) { //nolint:gosec // sizes are never negative
		return 0, fmt.Errorf("boundary %d of %s: %w", boundary, block, ErrCorruptBlock)
	}
	return boundary, nil
}
