package wal

import "github.com/backbone81/storage-kernel/internal/file"

// SyncPolicyNone is never flushing the content of the log file to disk. This might improve performance but increases
// the risk of data loss in case of a hardware failure.
type SyncPolicyNone struct{}

// SyncPolicyNone implements SyncPolicy.
var _ SyncPolicy = (*SyncPolicyNone)(nil)

func NewSyncPolicyNone() *SyncPolicyNone {
	return &SyncPolicyNone{}
}

func (s *SyncPolicyNone) BlockFlushed(fileManager *file.Manager, logFile string) error {
	return nil
}

func (s *SyncPolicyNone) Close(fileManager *file.Manager, logFile string) error {
	return nil
}
