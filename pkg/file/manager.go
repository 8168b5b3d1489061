package file

import intfile "github.com/backbone81/storage-kernel/internal/file"

// TempFilePrefix is the file name prefix of scratch files which are removed when a Manager is created.
const TempFilePrefix = intfile.TempFilePrefix

var (
	ErrInvalidBlockSize = intfile.ErrInvalidBlockSize
	ErrFileNotOpen      = intfile.ErrFileNotOpen
	ErrPageSizeMismatch = intfile.ErrPageSizeMismatch
	ErrShortRead        = intfile.ErrShortRead
	ErrClosed           = intfile.ErrClosed
)

// Manager provides block granular access to all files in a single storage directory.
//
// Manager is safe to use from multiple Go routines concurrently.
type Manager = intfile.Manager

// ManagerOption describes the function signature which all manager options need to implement.
type ManagerOption = intfile.ManagerOption

// BlockFile is the interface which needs to be implemented by the files a Manager is working with.
type BlockFile = intfile.BlockFile

// NewManager creates a manager for the given storage directory and block size.
var NewManager = intfile.NewManager

// WithLogger overwrites the default logger which discards everything.
var WithLogger = intfile.WithLogger

// WithOpenFunc overwrites the function used for opening files.
var WithOpenFunc = intfile.WithOpenFunc
