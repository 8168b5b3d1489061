// Package wal provides an implementation of a write-ahead log on top of the block files of a file.Manager.
//
// The on-disk structure looks like this:
//
//   - The write-ahead log is a single file made up of blocks. New blocks are only ever appended at the end of the
//     file, so the block with the highest number is the newest one.
//   - The first 8 bytes of every block store the boundary as a big-endian unsigned 64-bit integer. The boundary is the
//     offset of the most recently written record in the block. A block without records has a boundary equal to the
//     block size.
//   - Records grow backward from the end of the block toward the boundary field. Every record is made up of its
//     length as a big-endian unsigned 64-bit integer followed by the data itself. Records are never split across
//     blocks.
//   - Sequence numbers count the records appended through a Manager. They start at 0 for every Manager and are not
//     stored on disk.
//
// Reading the records of a block upward from the boundary and then moving on to the next lower block yields all
// records from newest to oldest, which is the order recovery needs.
package wal
