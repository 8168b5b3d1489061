// Package file provides block granular access to the files of a storage directory.
//
//   - All files are located in a single storage directory and are made up of blocks of the same fixed size. Block
//     numbers are dense and start at 0 for every file.
//   - A Page is the in-memory copy of a block with a codec for unsigned 64-bit integers, byte strings and UTF-8
//     strings. Integers and lengths are stored in big-endian byte order.
//   - The Manager opens files lazily and serializes all access to them, so a single Manager can be shared by all Go
//     routines working with the same storage directory.
//   - Files with a name starting with TempFilePrefix are deleted when a Manager is created.
package file
