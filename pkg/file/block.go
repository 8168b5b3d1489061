package file

import intfile "github.com/backbone81/storage-kernel/internal/file"

// BlockID identifies a block by the name of its file and its number inside that file.
type BlockID = intfile.BlockID

// NewBlockID returns the identifier of the block with the given number in filename.
var NewBlockID = intfile.NewBlockID
