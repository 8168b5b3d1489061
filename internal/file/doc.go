// Package file provides block granular access to the files of a storage directory.
//
// The on-disk structure looks like this:
//
//   - All files managed by a Manager are located in the same storage directory. Every file is made up of blocks of
//     the same fixed size, which is chosen when the Manager is created. Block numbers are dense and start at 0 for
//     every file. The block with number n is located at byte offset n * block size.
//   - Blocks carry no header. What is stored inside a block is up to the caller, usually through the codec of a Page.
//   - Files are only ever grown by Manager.Append, which adds exactly one zeroed block. This keeps the file length a
//     multiple of the block size.
//   - Files with a name starting with TempFilePrefix are scratch files. They are deleted when a Manager is created for
//     the storage directory, as they must never survive a restart.
package file
