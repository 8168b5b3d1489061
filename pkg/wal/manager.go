package wal

import intwal "github.com/backbone81/storage-kernel/internal/wal"

var (
	ErrRecordTooLarge        = intwal.ErrRecordTooLarge
	ErrCorruptBlock          = intwal.ErrCorruptBlock
	ErrSyncPolicyUnsupported = intwal.ErrSyncPolicyUnsupported
)

// Manager appends records to the write-ahead log.
//
// Instances of this struct are NOT safe for concurrent use. Either use it on a single Go routine or provide your own
// external synchronization.
type Manager = intwal.Manager

// ManagerOption describes the function signature which all manager options need to implement.
type ManagerOption = intwal.ManagerOption

// NewManager creates a log manager for the given log file. An empty log file gets its first block.
var NewManager = intwal.NewManager

// WithLogger overwrites the default logger which discards everything.
var WithLogger = intwal.WithLogger

// WithSyncPolicy overwrites the default sync policy.
var WithSyncPolicy = intwal.WithSyncPolicy

// WithSyncPolicyNone overwrites the default sync policy with sync policy none.
var WithSyncPolicyNone = intwal.WithSyncPolicyNone

// WithSyncPolicyImmediate overwrites the default sync policy with sync policy immediate.
var WithSyncPolicyImmediate = intwal.WithSyncPolicyImmediate

// WithSyncPolicyPeriodic overwrites the default sync policy with sync policy periodic.
var WithSyncPolicyPeriodic = intwal.WithSyncPolicyPeriodic

// WithSlowFlushThreshold overwrites the default duration after which a flush is reported as too slow.
var WithSlowFlushThreshold = intwal.WithSlowFlushThreshold

// DefaultSlowFlushThreshold is the duration after which a flush is reported as too slow.
const DefaultSlowFlushThreshold = intwal.DefaultSlowFlushThreshold
