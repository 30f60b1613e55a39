package godb

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// RWPerm is the mode a caller wants a page in: ReadPerm for a shared hold,
// WritePerm for an exclusive one.
type RWPerm int

const (
	ReadPerm RWPerm = iota
	WritePerm
)

// LockManager owns one PageLock per page ever touched, created lazily on
// first acquire, and applies a single configured timeout to every
// acquisition it brokers.
type LockManager struct {
	mu      sync.Mutex
	locks   map[PageID]*PageLock
	timeout time.Duration
	log     *zap.Logger
}

func newLockManager(timeout time.Duration, log *zap.Logger) *LockManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &LockManager{
		locks:   make(map[PageID]*PageLock),
		timeout: timeout,
		log:     log,
	}
}

func (lm *LockManager) lockFor(pid PageID) *PageLock {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	pl, ok := lm.locks[pid]
	if !ok {
		pl = newPageLock(pid)
		lm.locks[pid] = pl
	}
	return pl
}

// acquire blocks tid until it holds mode on pid, or returns a
// TransactionAbortedError once the configured timeout elapses.
func (lm *LockManager) acquire(tid TransactionID, pid PageID, mode RWPerm) error {
	pl := lm.lockFor(pid)
	var err error
	if mode == ReadPerm {
		err = pl.readLock(tid, lm.timeout)
	} else {
		err = pl.writeLock(tid, lm.timeout)
	}
	if err != nil {
		lm.log.Warn("lock acquisition timed out",
			zap.Stringer("tid", tid), zap.Any("page", pid), zap.Int("mode", int(mode)))
	}
	return err
}

func (lm *LockManager) release(tid TransactionID, pid PageID) error {
	return lm.lockFor(pid).releaseOne(tid)
}

func (lm *LockManager) releaseAll(tid TransactionID, pid PageID) error {
	return lm.lockFor(pid).releaseAll(tid)
}

func (lm *LockManager) holdsLock(tid TransactionID, pid PageID) bool {
	return lm.lockFor(pid).holdsLock(tid)
}
