package wal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/backbone81/storage-kernel/internal/file"
)

const (
	// DefaultSyncAfterFlushCount is the number of flushes after which sync policy periodic syncs when created through
	// GetSyncPolicy.
	DefaultSyncAfterFlushCount = 10

	// DefaultSyncEvery is the interval in which sync policy periodic syncs when created through GetSyncPolicy.
	DefaultSyncEvery = time.Second
)

// SyncPolicyPeriodic is syncing the log file to disk after the tail block was flushed some number of times, or after
// some time interval has passed.
// The interval is handled by a go routine which is started with the first flush and stopped by Close.
type SyncPolicyPeriodic struct {
	mutex sync.Mutex

	syncAfterFlushCount int
	syncEvery           time.Duration

	syncTicker        *time.Ticker
	shutdown          chan struct{}
	shutdownWaitGroup sync.WaitGroup

	unsyncedFlushCount int

	// The error of the last sync done by the go routine. It is reported by the next flush or by Close.
	backgroundErr error
}

// SyncPolicyPeriodic implements SyncPolicy.
var _ SyncPolicy = (*SyncPolicyPeriodic)(nil)

// NewSyncPolicyPeriodic creates a new SyncPolicyPeriodic.
func NewSyncPolicyPeriodic(syncAfterFlushCount int, syncEvery time.Duration) *SyncPolicyPeriodic {
	return &SyncPolicyPeriodic{
		syncAfterFlushCount: max(syncAfterFlushCount, 1),
		syncEvery:           max(syncEvery, 100*time.Microsecond),
	}
}

func (s *SyncPolicyPeriodic) BlockFlushed(fileManager *file.Manager, logFile string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.syncTicker == nil {
		s.syncTicker = time.NewTicker(s.syncEvery)
		s.shutdown = make(chan struct{})
		s.shutdownWaitGroup.Add(1)
		go s.backgroundTask(s.syncTicker.C, s.shutdown, fileManager, logFile)
	}
	if err := s.takeBackgroundErr(); err != nil {
		return err
	}

	s.unsyncedFlushCount++
	if s.unsyncedFlushCount < s.syncAfterFlushCount {
		return nil
	}

	// We already hold the lock of the file manager here.
	if err := fileManager.SyncLocked(logFile); err != nil {
		return fmt.Errorf("synching the log file: %w", err)
	}
	s.unsyncedFlushCount = 0
	return nil
}

func (s *SyncPolicyPeriodic) Close(fileManager *file.Manager, logFile string) error {
	s.mutex.Lock()
	started := s.syncTicker != nil
	if started {
		s.syncTicker.Stop()
		close(s.shutdown)
		s.syncTicker = nil
	}
	s.mutex.Unlock()

	if !started {
		return nil
	}
	s.shutdownWaitGroup.Wait()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	backgroundErr := s.takeBackgroundErr()
	return errors.Join(backgroundErr, s.syncUnsynced(fileManager, logFile))
}

func (s *SyncPolicyPeriodic) backgroundTask(tick <-chan time.Time, shutdown <-chan struct{}, fileManager *file.Manager, logFile string) {
	defer s.shutdownWaitGroup.Done()
	for {
		select {
		case <-tick:
			s.periodicSync(fileManager, logFile)
		case <-shutdown:
			return
		}
	}
}

func (s *SyncPolicyPeriodic) periodicSync(fileManager *file.Manager, logFile string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.syncUnsynced(fileManager, logFile); err != nil {
		s.backgroundErr = err
	}
}

// syncUnsynced syncs the log file if there was a flush since the last sync. The caller must hold the policy mutex but
// not the lock of the file manager. Flushes call into the policy while holding the file manager lock, so the policy
// mutex is released while syncing to keep the lock order of file manager before policy.
func (s *SyncPolicyPeriodic) syncUnsynced(fileManager *file.Manager, logFile string) error {
	if s.unsyncedFlushCount == 0 {
		return nil
	}
	unsyncedFlushCount := s.unsyncedFlushCount
	s.unsyncedFlushCount = 0

	s.mutex.Unlock()
	err := fileManager.Sync(logFile)
	s.mutex.Lock()

	if err != nil {
		s.unsyncedFlushCount += unsyncedFlushCount
		return fmt.Errorf("synching the log file: %w", err)
	}
	return nil
}

func (s *SyncPolicyPeriodic) takeBackgroundErr() error {
	err := s.backgroundErr
	s.backgroundErr = nil
	return err
}
