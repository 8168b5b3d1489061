package wal

import intwal "github.com/backbone81/storage-kernel/internal/wal"

// SyncPolicyType describes the type of sync policy to apply when the tail block is flushed to the log file.
type SyncPolicyType = intwal.SyncPolicyType

// SyncPolicy is the interface every sync policy needs to implement.
type SyncPolicy = intwal.SyncPolicy

const (
	SyncPolicyTypeNone      = intwal.SyncPolicyTypeNone
	SyncPolicyTypeImmediate = intwal.SyncPolicyTypeImmediate
	SyncPolicyTypePeriodic  = intwal.SyncPolicyTypePeriodic
	DefaultSyncPolicy       = intwal.DefaultSyncPolicy

	DefaultSyncAfterFlushCount = intwal.DefaultSyncAfterFlushCount
	DefaultSyncEvery           = intwal.DefaultSyncEvery
)

// SyncPolicyTypes provides a list of supported sync policies.
var SyncPolicyTypes = intwal.SyncPolicyTypes

// ParseSyncPolicyType returns the sync policy type with the given string representation.
var ParseSyncPolicyType = intwal.ParseSyncPolicyType

// GetSyncPolicy returns an instance of the sync policy matching the sync policy type.
var GetSyncPolicy = intwal.GetSyncPolicy
