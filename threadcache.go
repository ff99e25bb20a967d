package tcmalloc

import "runtime"
import "sync"
import "unsafe"

import "github.com/bnclabs/tcmalloc/lib"

// tcClass is one size class's private free chain inside a ThreadCache.
type tcClass struct {
	head  unsafe.Pointer
	count int64
}

// maskWords is the size of the active-class bitmap: one bit per size
// class, packed 8 to a lib.Bit8, so Drain can skip directly to the
// classes that actually hold free blocks instead of probing all
// FreeListSize of them.
const maskWords = FreeListSize / 8

// ThreadCache is tier 1: a single-owner, unsynchronized set of free
// chains, one per size class. It is not safe for concurrent use -- the
// entire point is to avoid synchronization on the hot path -- so a
// ThreadCache must either be confined to one goroutine for its whole
// lifetime, or obtained and released around a single call via the
// package-level Allocate/Deallocate functions.
type ThreadCache struct {
	classes  [FreeListSize]tcClass
	active   [maskWords]lib.Bit8
	central  *centralCache
	released bool
}

func (tc *ThreadCache) markActive(i int) {
	w, b := i/8, uint8(i%8)
	tc.active[w] = tc.active[w].Setbit(b)
}

func (tc *ThreadCache) markEmpty(i int) {
	w, b := i/8, uint8(i%8)
	tc.active[w] = tc.active[w].Clearbit(b)
}

// NewThreadCache returns a fresh ThreadCache backed by the package's
// shared CentralCache/PageCache tiers. Callers that want strict
// single-owner semantics should keep the returned value confined to one
// goroutine and call Drain before letting it go out of scope, returning
// any accumulated free blocks to the shared CentralCache rather than
// stranding them.
func NewThreadCache() *ThreadCache {
	_, central := defaultCaches()
	return &ThreadCache{central: central}
}

// Allocate returns a block of at least n bytes, or ErrOutOfMemory. A
// request larger than MaxBytes bypasses all three tiers and is served
// directly from the OS.
func (tc *ThreadCache) Allocate(n int) (unsafe.Pointer, error) {
	if tc.released {
		panicerr("tcmalloc: Allocate called on a released ThreadCache, call the programmer!")
	}
	if n <= 0 {
		n = 1
	}
	recordRequest(n)
	size := int64(n)
	if size > MaxBytes {
		return largeAllocate(size)
	}

	rsize := roundUp(size)
	i := indexOf(rsize)
	c := &tc.classes[i]

	if c.head == nil {
		head, got := tc.central.fetchRange(i, batchCount(rsize))
		if got == 0 {
			return nil, ErrOutOfMemory
		}
		c.head = head
		c.count = got
		tc.markActive(i)
	}

	// The reference design checked count == 0 only after decrementing
	// it, which could drive count negative under a spurious empty head.
	// Check emptiness first, then pop -- never the other order.
	if c.head == nil || c.count == 0 {
		return nil, ErrOutOfMemory
	}
	p := c.head
	c.head = readNext(p)
	c.count--
	if c.head == nil {
		tc.markEmpty(i)
	}
	poisonBlock(p, rsize)
	return p, nil
}

// Deallocate returns a block of n bytes, previously obtained from
// Allocate(n), to this ThreadCache. n must match the size originally
// requested; passing a mismatched size is undefined behaviour.
func (tc *ThreadCache) Deallocate(ptr unsafe.Pointer, n int) {
	if tc.released {
		panicerr("tcmalloc: Deallocate called on a released ThreadCache, call the programmer!")
	}
	if ptr == nil {
		return
	}
	if n <= 0 {
		n = 1
	}
	size := int64(n)
	if size > MaxBytes {
		largeDeallocate(ptr, size)
		return
	}

	rsize := roundUp(size)
	i := indexOf(rsize)
	c := &tc.classes[i]

	linkNext(ptr, c.head)
	c.head = ptr
	c.count++
	tc.markActive(i)

	if c.count > spillThreshold {
		tc.spill(i, c, rsize)
	}
}

// spill ships half of class i's free chain back to CentralCache,
// keeping ThreadCache's footprint bounded under a long deallocate
// streak on one class.
func (tc *ThreadCache) spill(i int, c *tcClass, rsize int64) {
	half := c.count / 2
	if half == 0 {
		return
	}
	front, rest, took := takeFront(c.head, half)
	c.head = rest
	c.count -= took
	if c.head == nil {
		tc.markEmpty(i)
	}
	logThreadSpill(i, rsize, took)
	tc.central.returnRange(front, took, i)
}

// Drain returns every block currently cached in this ThreadCache to
// CentralCache. Callers holding an explicit *ThreadCache should call
// this before discarding it. Uses the active-class bitmap to visit only
// the classes that actually hold free blocks.
func (tc *ThreadCache) Drain() {
	for w := range tc.active {
		word := tc.active[w]
		for word != 0 {
			bit := word.Findfirstset()
			if bit < 0 {
				break
			}
			i := w*8 + int(bit)
			c := &tc.classes[i]
			tc.central.returnRange(c.head, c.count, i)
			c.head = nil
			c.count = 0
			word = word.Clearbit(uint8(bit))
		}
		tc.active[w] = 0
	}
}

// Release drains this ThreadCache back into CentralCache and marks it
// unusable; any later Allocate/Deallocate call is a programmer error
// and panics rather than silently operating on a released cache.
// Calling Release a second time is a no-op that reports ErrReleased
// instead of draining again.
func (tc *ThreadCache) Release() error {
	if tc.released {
		return ErrReleased
	}
	tc.Drain()
	tc.released = true
	return nil
}

// largeAllocate serves requests over MaxBytes directly from the OS,
// bypassing ThreadCache/CentralCache/PageCache entirely.
func largeAllocate(size int64) (unsafe.Pointer, error) {
	pages := ceilDiv(size, PageSize)
	return mmapPages(pages)
}

// largeDeallocate releases memory obtained from largeAllocate. Unlike
// pooled spans, this mapping is owned by nobody else and is unmapped
// immediately.
func largeDeallocate(ptr unsafe.Pointer, size int64) {
	pages := ceilDiv(size, PageSize)
	_ = munmapPages(ptr, pages)
}

var (
	defaultOnce    sync.Once
	defaultPages   *pageCache
	defaultCentral *centralCache
)

func defaultCaches() (*pageCache, *centralCache) {
	defaultOnce.Do(func() {
		defaultPages = newPageCache()
		defaultCentral = newCentralCache(defaultPages)
	})
	return defaultPages, defaultCentral
}

// pooledCache backs the package-level Allocate/Deallocate functions.
// Go has no portable per-goroutine storage, so this only approximates
// per-thread affinity: sync.Pool's per-P local free lists give repeated
// calls from the same goroutine a good chance of reusing the same
// ThreadCache, but neither Get nor Put guarantee it, and the runtime
// may drop a pooled ThreadCache entirely during garbage collection.
// runtime.SetFinalizer is the backstop for that last case: once the
// garbage collector finds a Pool-evicted ThreadCache unreachable, its
// finalizer drains the cached blocks back into CentralCache.
var pooledCache = sync.Pool{
	New: func() interface{} {
		tc := NewThreadCache()
		runtime.SetFinalizer(tc, func(tc *ThreadCache) { tc.Drain() })
		return tc
	},
}

// Allocate is the package-level convenience form of ThreadCache.Allocate,
// for callers that don't need to manage an explicit *ThreadCache.
func Allocate(n int) (unsafe.Pointer, error) {
	tc := pooledCache.Get().(*ThreadCache)
	p, err := tc.Allocate(n)
	pooledCache.Put(tc)
	return p, err
}

// Deallocate is the package-level convenience form of
// ThreadCache.Deallocate.
func Deallocate(ptr unsafe.Pointer, n int) {
	tc := pooledCache.Get().(*ThreadCache)
	tc.Deallocate(ptr, n)
	pooledCache.Put(tc)
}
