package godb

import "time"

// Config bundles the core's tunables, other than the page size: the page
// size is a package-level var (PageSize, in types.go) because HeapPage and
// HeapFile consult it directly while decoding on-disk bytes, exactly as the
// teacher's heap_page.go does. Tests that need a non-default page size set
// that var directly before building a BufferPool; production callers never
// touch it.
type Config struct {
	// BufferPoolPages is the buffer pool's capacity, in pages.
	BufferPoolPages int

	// LockTimeout bounds how long LockManager.acquire blocks before failing
	// with TransactionAborted.
	LockTimeout time.Duration
}

// DefaultConfig returns the core's default tunables: a 50-page buffer pool
// and a 500ms lock timeout.
func DefaultConfig() Config {
	return Config{
		BufferPoolPages: 50,
		LockTimeout:     500 * time.Millisecond,
	}
}
