package wal

import intwal "github.com/backbone81/storage-kernel/internal/wal"

// Iterator provides the records of the write-ahead log from the most recently appended to the oldest one.
//
// Instances of this struct are NOT safe for concurrent use. Either use it on a single Go routine or provide your own
// external synchronization.
type Iterator = intwal.Iterator

// NewIterator creates an iterator starting at the newest record of the given block.
var NewIterator = intwal.NewIterator
