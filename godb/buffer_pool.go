package godb

import (
	"sync"

	"go.uber.org/zap"
)

// BufferPool is the fixed-capacity, insertion-ordered page cache that sits
// between every operator and the heap files on disk. It is the sole path
// through which pages are read or written, and the only component that
// knows about page-level locking: HeapFile never calls LockManager itself.
//
// Eviction follows a strict NO-STEAL policy: a dirty page is never evicted,
// because GoDB has no undo log to recover it if the process died right
// after. If every cached page is dirty, GetPage fails with
// BufferPoolFullError rather than evict one.
type BufferPool struct {
	mu       sync.Mutex
	capacity int
	order    []PageID // insertion order, oldest first; approximates LRU
	pages    map[PageID]*HeapPage
	touched  map[TransactionID]map[PageID]struct{}

	locks   *LockManager
	catalog *Catalog
	txnLog  TxnLog
	log     *zap.Logger
}

// BufferPoolOption configures optional collaborators on a new BufferPool.
type BufferPoolOption func(*BufferPool)

func WithTxnLog(l TxnLog) BufferPoolOption {
	return func(bp *BufferPool) { bp.txnLog = l }
}

func WithLogger(l *zap.Logger) BufferPoolOption {
	return func(bp *BufferPool) { bp.log = l }
}

// NewBufferPool builds a pool with room for cfg.BufferPoolPages pages,
// backed by catalog for resolving table ids to heap files on a cache miss,
// and a LockManager enforcing cfg.LockTimeout on every acquisition.
func NewBufferPool(catalog *Catalog, cfg Config, opts ...BufferPoolOption) *BufferPool {
	bp := &BufferPool{
		capacity: cfg.BufferPoolPages,
		pages:    make(map[PageID]*HeapPage),
		touched:  make(map[TransactionID]map[PageID]struct{}),
		catalog:  catalog,
		txnLog:   NopLog{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(bp)
	}
	bp.locks = newLockManager(cfg.LockTimeout, bp.log)
	return bp
}

// GetPage returns the page named by pid, locked in mode on tid's behalf.
// It blocks in LockManager.acquire until the lock is granted or the
// configured timeout elapses, then serves the page from cache or loads it
// from disk through the catalog, evicting a clean page first if the pool is
// full.
func (bp *BufferPool) GetPage(tid TransactionID, pid PageID, mode RWPerm) (*HeapPage, error) {
	if err := bp.locks.acquire(tid, pid, mode); err != nil {
		return nil, err
	}

	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.touched[tid] == nil {
		bp.touched[tid] = make(map[PageID]struct{})
	}
	bp.touched[tid][pid] = struct{}{}

	if page, ok := bp.pages[pid]; ok {
		return page, nil
	}

	if len(bp.pages) >= bp.capacity {
		if err := bp.evictLocked(); err != nil {
			return nil, err
		}
	}

	file, err := bp.catalog.GetFile(pid.Table)
	if err != nil {
		return nil, err
	}
	page, err := file.readPage(pid.Page)
	if err != nil {
		return nil, err
	}
	bp.pages[pid] = page
	bp.order = append(bp.order, pid)
	bp.log.Debug("page loaded", zap.Any("page", pid))
	return page, nil
}

// ReleasePage drops a single hold tid has on pid without ending the
// transaction. HeapFile.insertTuple uses this to release a read lock on a
// full page it's done probing, ahead of the eventual transaction_complete.
func (bp *BufferPool) ReleasePage(tid TransactionID, pid PageID) error {
	return bp.locks.release(tid, pid)
}

// evictLocked removes the first clean page in insertion order. Caller must
// hold bp.mu.
func (bp *BufferPool) evictLocked() error {
	for i, pid := range bp.order {
		page := bp.pages[pid]
		if _, dirty := page.isDirty(); dirty {
			continue
		}
		delete(bp.pages, pid)
		bp.order = append(bp.order[:i:i], bp.order[i+1:]...)
		return nil
	}
	return GoDBError{BufferPoolFullError, "buffer pool is full of dirty pages"}
}

// TransactionComplete ends tid: on commit, every page it dirtied is logged
// and flushed to disk before its locks are released; on abort, every page
// it dirtied is discarded from the cache (a NO-STEAL pool guarantees the
// disk copy was never touched, so discarding is enough to undo it). Either
// way, tid's locks on every page it touched are released and its
// touched-set is forgotten.
func (bp *BufferPool) TransactionComplete(tid TransactionID, commit bool) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	touched := bp.touched[tid]
	for pid := range touched {
		page, cached := bp.pages[pid]
		if cached {
			if dirtyTid, isDirty := page.isDirty(); isDirty && dirtyTid == tid {
				if commit {
					if err := bp.flushLocked(pid, page); err != nil {
						return err
					}
				} else {
					delete(bp.pages, pid)
					bp.order = removePageID(bp.order, pid)
				}
			}
		}
		if err := bp.locks.releaseAll(tid, pid); err != nil {
			return err
		}
	}
	delete(bp.touched, tid)
	return nil
}

// flushLocked logs then writes page through the log interface and the
// catalog's file for pid.Table. Caller must hold bp.mu.
func (bp *BufferPool) flushLocked(pid PageID, page *HeapPage) error {
	after, err := page.toBytes()
	if err != nil {
		return err
	}
	dirtyTid, _ := page.isDirty()
	if err := bp.txnLog.LogWrite(dirtyTid, page.getBeforeImage(), after); err != nil {
		return GoDBError{DbError, err.Error()}
	}
	if err := bp.txnLog.Force(); err != nil {
		return GoDBError{DbError, err.Error()}
	}

	file, err := bp.catalog.GetFile(pid.Table)
	if err != nil {
		return err
	}
	if err := file.writePage(page); err != nil {
		return err
	}
	page.markDirty(false, TransactionID{})
	page.setBeforeImage()
	return nil
}

// FlushAllPages forces every dirty cached page to disk, bypassing locking
// and transaction bookkeeping. Intended for tests and clean shutdown.
func (bp *BufferPool) FlushAllPages() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	for pid, page := range bp.pages {
		if _, dirty := page.isDirty(); !dirty {
			continue
		}
		if err := bp.flushLocked(pid, page); err != nil {
			return err
		}
	}
	return nil
}

// DiscardPage drops pid from the cache unconditionally, without flushing
// it. Intended for tests that need to force the next GetPage to re-read
// from disk.
func (bp *BufferPool) DiscardPage(pid PageID) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	delete(bp.pages, pid)
	bp.order = removePageID(bp.order, pid)
}

func removePageID(order []PageID, pid PageID) []PageID {
	for i, p := range order {
		if p == pid {
			return append(order[:i:i], order[i+1:]...)
		}
	}
	return order
}
