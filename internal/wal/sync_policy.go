package wal

import (
	"errors"
	"fmt"

	"github.com/backbone81/storage-kernel/internal/file"
)

var ErrSyncPolicyUnsupported = errors.New("unsupported WAL sync policy")

// SyncPolicyType describes the type of sync policy to apply when the tail block is flushed to the log file.
type SyncPolicyType int

const (
	SyncPolicyTypeNone SyncPolicyType = iota
	SyncPolicyTypeImmediate
	SyncPolicyTypePeriodic
)

// String returns a string representation of the sync policy type.
func (s SyncPolicyType) String() string {
	switch s {
	case SyncPolicyTypeNone:
		return "none"
	case SyncPolicyTypeImmediate:
		return "immediate"
	case SyncPolicyTypePeriodic:
		return "periodic"
	default:
		return "unknown"
	}
}

// SyncPolicyTypes provides a list of supported sync policies. Helpful for writing tests and benchmarks which iterate
// over all possibilities.
var SyncPolicyTypes = []SyncPolicyType{
	SyncPolicyTypeNone,
	SyncPolicyTypeImmediate,
	SyncPolicyTypePeriodic,
}

// DefaultSyncPolicy is the sync policy type which is used when no other sync policy is configured. It leaves it to
// the operating system when written blocks reach stable storage.
const DefaultSyncPolicy = SyncPolicyTypeNone

// ParseSyncPolicyType returns the sync policy type with the given string representation.
func ParseSyncPolicyType(value string) (SyncPolicyType, error) {
	for _, syncPolicyType := range SyncPolicyTypes {
		if syncPolicyType.String() == value {
			return syncPolicyType, nil
		}
	}
	return 0, fmt.Errorf("sync policy %q: %w", value, ErrSyncPolicyUnsupported)
}

// SyncPolicy is the interface every sync policy needs to implement.
type SyncPolicy interface {
	// BlockFlushed is called after the tail block was written to logFile. The caller holds the lock of fileManager.
	BlockFlushed(fileManager *file.Manager, logFile string) error

	// Close makes sure that everything flushed so far is synced and stops all background work. The caller does not
	// hold the lock of fileManager.
	Close(fileManager *file.Manager, logFile string) error
}

// GetSyncPolicy returns an instance of the sync policy matching the sync policy type.
func GetSyncPolicy(syncPolicyType SyncPolicyType) (SyncPolicy, error) {
	switch syncPolicyType {
	case SyncPolicyTypeNone:
		return NewSyncPolicyNone(), nil
	case SyncPolicyTypeImmediate:
		return NewSyncPolicyImmediate(), nil
	case SyncPolicyTypePeriodic:
		return NewSyncPolicyPeriodic(DefaultSyncAfterFlushCount, DefaultSyncEvery), nil
	default:
		return nil, ErrSyncPolicyUnsupported
	}
}
