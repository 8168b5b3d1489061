package file

import intfile "github.com/backbone81/storage-kernel/internal/file"

// Page is an in-memory buffer holding the content of a block, with a typed codec on top.
//
// Instances of Page are NOT safe to use concurrently. You need to provide external synchronization, for example by
// wrapping it into a LockedPage.
type Page = intfile.Page

// LockedPage is a Page with its own mutex.
type LockedPage = intfile.LockedPage

// NewPage returns a zeroed page of the given size in bytes.
var NewPage = intfile.NewPage

// NewPageFromBytes returns a page holding a copy of the given data.
var NewPageFromBytes = intfile.NewPageFromBytes

// NewLockedPage wraps a page with a mutex.
var NewLockedPage = intfile.NewLockedPage

// MaxLengthForString returns the number of bytes a string occupies in a page.
var MaxLengthForString = intfile.MaxLengthForString
