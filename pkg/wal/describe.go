package wal

import intwal "github.com/backbone81/storage-kernel/internal/wal"

// BlockInfo describes the space usage of a single log block.
type BlockInfo = intwal.BlockInfo

// Describe reads every block of the log file from disk and reports how its space is used.
var Describe = intwal.Describe
