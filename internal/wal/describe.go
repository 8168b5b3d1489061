package wal

import (
	"fmt"

	"github.com/backbone81/storage-kernel/internal/encoding"
	"github.com/backbone81/storage-kernel/internal/file"
)

// BlockInfo describes the space usage of a single log block.
type BlockInfo struct {
	Block       file.BlockID
	Boundary    uint64
	UsedBytes   uint64
	FreeBytes   uint64
	RecordCount int
}

// Describe reads every block of logFile from disk and reports how its space is used. Records which are only in the
// tail page of a Manager are not visible until they are flushed.
func Describe(fileManager *file.Manager, logFile string) ([]BlockInfo, error) {
	blockCount, err := fileManager.Length(logFile)
	if err != nil {
		return nil, err
	}

	blockSize := fileManager.BlockSize()
	page := file.NewLockedPage(file.NewPage(int(blockSize))) //nolint:gosec // block sizes fit into memory
	infos := make([]BlockInfo, 0, blockCount)
	for number := range blockCount {
		block := file.NewBlockID(logFile, number)
		n, err := fileManager.Read(block, page)
		if err != nil {
			return nil, err
		}
		if n != page.Size() {
			return nil, fmt.Errorf("reading %s returned %d of %d bytes: %w", block, n, page.Size(), file.ErrShortRead)
		}
		boundary, err := readBoundary(page.Page, block)
		if err != nil {
			return nil, err
		}

		info := BlockInfo{
			Block:     block,
			Boundary:  boundary,
			UsedBytes: blockSize - boundary,
			FreeBytes: boundary - BoundarySize,
		}
		for position := boundary; position < blockSize; {
			record, err := page.Bytes(int(position)) //nolint:gosec // position is within the block
			if err != nil {
				return nil, fmt.Errorf("reading the record at offset %d of %s: %w", position, block, err)
			}
			position += uint64(encoding.BytesSize(len(record))) //nolint:gosec // sizes are never negative
			info.RecordCount++
		}
		infos = append(infos, info)
	}
	return infos, nil
}
