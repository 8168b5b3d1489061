// Package wal provides a write-ahead log on top of the block files of a file.Manager.
//
//   - The write-ahead log is a single file made up of blocks. Every block starts with a boundary which points to the
//     most recently written record in that block. Records grow backward from the end of the block toward the
//     boundary and are never split across blocks.
//   - Every record is made up of its length followed by the data itself. Records are arbitrary bytes, their meaning is
//     up to the caller.
//   - A Manager appends records to the newest block in memory and writes it to disk when the block is full or when a
//     flush is requested. FlushBySequenceNumber allows several callers to share a single flush.
//   - An Iterator returns all records from the most recently appended to the oldest one, which is the order recovery
//     needs.
package wal
