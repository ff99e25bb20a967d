package tcmalloc

import "sync"
import "unsafe"

// pageCache is tier 3: the OS-backed span manager. A single mutex
// guards it, since span allocation/coalescing only happens on
// CentralCache misses and is expected to be rare next to the
// ThreadCache/CentralCache hot paths.
type pageCache struct {
	mu sync.Mutex

	free   spanList          // free spans, bucketed by page count
	byBase map[uintptr]*span // free spans keyed by base address, for adjacency lookups during coalescing
}

func newPageCache() *pageCache {
	return &pageCache{byBase: make(map[uintptr]*span)}
}

// allocateSpan returns a span of at least k pages, best-fit among the
// free spans it already holds, carving a fresh mapping from the OS only
// on a miss. The returned span is removed from the free structure; the
// caller (CentralCache) owns it until it calls deallocateSpan.
func (pc *pageCache) allocateSpan(k int64) (*span, error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if b := pc.free.bestFit(k); b != nil {
		sp := pc.free.popFrom(pc.find(b.pages))
		delete(pc.byBase, uintptr(sp.base))
		if sp.pages > k {
			pc.splitAndReinsert(sp, k)
			sp.pages = k
		}
		return sp, nil
	}

	base, err := mmapPages(k)
	if err != nil {
		return nil, err
	}
	logSpanCarve(k * PageSize)
	return &span{base: base, pages: k}, nil
}

// find locates the bucket index for an exact page count; helper so
// allocateSpan can reuse spanList.find without duplicating its search.
func (pc *pageCache) find(pages int64) int {
	return pc.free.find(pages)
}

// splitAndReinsert carves a k-page span off the front of sp (which has
// more than k pages) and returns the remainder to the free structure.
func (pc *pageCache) splitAndReinsert(sp *span, k int64) {
	remPages := sp.pages - k
	remBase := unsafe.Pointer(uintptr(sp.base) + uintptr(k*PageSize))
	rem := &span{base: remBase, pages: remPages}
	pc.free.insert(rem)
	pc.byBase[uintptr(remBase)] = rem
}

// deallocateSpan returns sp to the free structure. Coalescing is
// forward-only: sp is merged with the span immediately following it in
// address order, if that span is currently free, but never with the
// span immediately preceding it. This keeps the common case (spans
// freed in roughly the order they were carved) cheap without needing a
// doubly-linked address-order index.
func (pc *pageCache) deallocateSpan(sp *span) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	for {
		nextBase := uintptr(sp.base) + uintptr(sp.pages*PageSize)
		next, ok := pc.byBase[nextBase]
		if !ok || !pc.free.remove(next) {
			break
		}
		delete(pc.byBase, nextBase)
		sp.pages += next.pages
		logSpanCoalesce(sp.pages * PageSize)
	}

	pc.free.insert(sp)
	pc.byBase[uintptr(sp.base)] = sp
}
