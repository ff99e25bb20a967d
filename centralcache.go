package tcmalloc

import "unsafe"

// centralClass is one size class's slice of tier 2: a spin-locked free
// chain shared by every ThreadCache, plus the spans currently backing
// it. Spans are never handed back to PageCache once carved -- per the
// no-compaction design, memory only ever moves up the tiers, never
// back down to the OS from a live size class.
type centralClass struct {
	mu    spinlock
	head  unsafe.Pointer
	count int64
	spans []*span
}

// centralCache is tier 2.
type centralCache struct {
	classes [FreeListSize]centralClass
	pages   *pageCache
}

func newCentralCache(pages *pageCache) *centralCache {
	return &centralCache{pages: pages}
}

// fetchRange hands ThreadCache up to want blocks of class i, pulling a
// fresh span from PageCache on a miss. It can return fewer than want
// (including zero) if PageCache is out of memory.
func (cc *centralCache) fetchRange(i int, want int64) (unsafe.Pointer, int64) {
	c := &cc.classes[i]
	c.mu.lock()
	defer c.mu.unlock()

	if c.count < want {
		cc.refill(i, c)
	}

	n := want
	if c.count < n {
		n = c.count
	}
	front, rest, took := takeFront(c.head, n)
	c.head = rest
	c.count -= took
	return front, took
}

// refill carves a fresh span for class i and splices it onto the
// class's free chain. Caller holds c.mu.
func (cc *centralCache) refill(i int, c *centralClass) {
	size := blockSize(i)
	logCentralMiss(i, size)

	pages := spanPagesFor(size)
	sp, err := cc.pages.allocateSpan(pages)
	if err != nil {
		return
	}

	total := (sp.pages * PageSize) / size
	head, tail := sliceIntoChain(sp.base, size, total)
	linkNext(tail, c.head)
	c.head = head
	c.count += total
	c.spans = append(c.spans, sp)
}

// returnRange splices a chain of count blocks of class i back onto the
// class's free chain.
func (cc *centralCache) returnRange(head unsafe.Pointer, count int64, i int) {
	if head == nil || count == 0 {
		return
	}
	c := &cc.classes[i]
	c.mu.lock()
	defer c.mu.unlock()

	n, tail := chainLength(head)
	linkNext(tail, c.head)
	c.head = head
	c.count += n
}

// freeCount reports the number of free blocks currently cached for
// class i, used by Stats.
func (cc *centralCache) freeCount(i int) int64 {
	c := &cc.classes[i]
	c.mu.lock()
	defer c.mu.unlock()
	return c.count
}

// spanCount reports the number of spans backing class i, used by Stats.
func (cc *centralCache) spanCount(i int) int64 {
	c := &cc.classes[i]
	c.mu.lock()
	defer c.mu.unlock()
	return int64(len(c.spans))
}
