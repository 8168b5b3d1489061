package wal

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/backbone81/storage-kernel/internal/encoding"
	"github.com/backbone81/storage-kernel/internal/file"
	"github.com/backbone81/storage-kernel/internal/utils"
)

// Iterator provides the records of the write-ahead log from the most recently appended to the oldest one. It walks
// the records of a block upward from the boundary and then continues with the next lower block until block 0 is
// exhausted.
//
// Iteration only sees what is on disk. Use Manager.Iterator to flush the tail page before iterating.
//
// Instances of this struct are NOT safe for concurrent use. Either use it on a single Go routine or provide your own
// external synchronization.
type Iterator struct {
	noCopy utils.NoCopy

	fileManager *file.Manager

	// The block currently loaded into page.
	block file.BlockID
	page  *file.LockedPage

	// The offset of the next record in page. When it reaches the block size, the block is exhausted.
	position uint64

	// The record returned by the last successful call to Next.
	value []byte

	// The error which ended the iteration early.
	err error
}

// NewIterator creates an iterator starting at the newest record of block. The block is loaded right away.
func NewIterator(fileManager *file.Manager, block file.BlockID) (*Iterator, error) {
	newIterator := Iterator{
		fileManager: fileManager,
		page:        file.NewLockedPage(file.NewPage(int(fileManager.BlockSize()))), //nolint:gosec // block sizes fit into memory
	}
	if err := newIterator.load(block); err != nil {
		return nil, err
	}
	return &newIterator, nil
}

// Next reports if a record has been successfully read. When it returns true, Value() contains the record. When it
// returns false, all records have been read or the iteration ended early because a block could not be loaded or a
// record could not be decoded. Err() tells those cases apart.
func (i *Iterator) Next() bool {
	if i.err != nil {
		return false
	}

	// Empty blocks are skipped, so we might need to go down several blocks before we find the next record.
	for i.position >= uint64(i.page.Size()) { //nolint:gosec // sizes are never negative
		if i.block.Number() == 0 {
			return false
		}
		if err := i.load(file.NewBlockID(i.block.Filename(), i.block.Number()-1)); err != nil {
			i.err = err
			return false
		}
	}

	record, err := i.page.Bytes(int(i.position)) //nolint:gosec // position is within the block
	if err != nil {
		i.err = fmt.Errorf("reading the record at offset %d of %s: %w", i.position, i.block, err)
		return false
	}
	i.position += uint64(encoding.BytesSize(len(record))) //nolint:gosec // sizes are never negative
	i.value = bytes.Clone(record)
	return true
}

// Value returns the record read by the last call to Next. The record is a copy which is owned by the caller.
func (i *Iterator) Value() []byte {
	return i.value
}

// Err returns the error which ended the iteration early. It is nil when all records have been read.
func (i *Iterator) Err() error {
	return i.err
}

// All returns the remaining records as a sequence for use with range.
func (i *Iterator) All() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for i.Next() {
			if !yield(i.Value()) {
				return
			}
		}
	}
}

// load reads block into the page and positions the iterator at the newest record of that block.
func (i *Iterator) load(block file.BlockID) error {
	n, err := i.fileManager.Read(block, i.page)
	if err != nil {
		return err
	}
	if n != i.page.Size() {
		return fmt.Errorf("reading %s returned %d of %d bytes: %w", block, n, i.page.Size(), file.ErrShortRead)
	}

	boundary, err := readBoundary(i.page.Page, block)
	if err != nil {
		return err
	}
	i.block = block
	i.position = boundary
	return nil
}
