package wal

import (
	"fmt"

	"github.com/backbone81/storage-kernel/internal/file"
)

// SyncPolicyImmediate is flushing the content of the log file to disk after every flush of the tail block. This
// reduces the chances of data loss because of hardware failure, but it has a negative impact on performance.
type SyncPolicyImmediate struct{}

// SyncPolicyImmediate implements SyncPolicy.
var _ SyncPolicy = (*SyncPolicyImmediate)(nil)

func NewSyncPolicyImmediate() *SyncPolicyImmediate {
	return &SyncPolicyImmediate{}
}

func (s *SyncPolicyImmediate) BlockFlushed(fileManager *file.Manager, logFile string) error {
	if err := fileManager.SyncLocked(logFile); err != nil {
		return fmt.Errorf("synching the log file: %w", err)
	}
	return nil
}

func (s *SyncPolicyImmediate) Close(fileManager *file.Manager, logFile string) error {
	return nil
}
