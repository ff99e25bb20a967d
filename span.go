package tcmalloc

import "sort"
import "unsafe"

// A span is a contiguous run of pages owned by PageCache. free spans are
// kept in singly-linked chains bucketed by page count (spanList), and
// are also indexed by base address (pageCache.byBase) so deallocateSpan
// can find a free successor to coalesce with. Spans handed out to
// CentralCache are not tracked by PageCache at all.
type span struct {
	base  unsafe.Pointer
	pages int64
	next  *span // free-list link within a spanList bucket
}

// spanList is a sorted-by-pages list of buckets, each a chain of free
// spans that all have the same page count. Kept sorted so allocateSpan
// can binary-search for the best (smallest adequate) fit, mirroring the
// ordered free_spans map in the reference design without needing a
// balanced tree -- a plain sorted slice is how this codebase reaches for
// ordered-by-key structures elsewhere.
type spanList struct {
	buckets []*spanBucket
}

type spanBucket struct {
	pages int64
	head  *span
}

// find returns the index of the bucket whose spans have exactly `pages`
// pages, or -1.
func (sl *spanList) find(pages int64) int {
	i := sort.Search(len(sl.buckets), func(i int) bool {
		return sl.buckets[i].pages >= pages
	})
	if i < len(sl.buckets) && sl.buckets[i].pages == pages {
		return i
	}
	return -1
}

// bestFit returns the smallest bucket whose pages >= pages, or nil.
func (sl *spanList) bestFit(pages int64) *spanBucket {
	i := sort.Search(len(sl.buckets), func(i int) bool {
		return sl.buckets[i].pages >= pages
	})
	if i == len(sl.buckets) {
		return nil
	}
	return sl.buckets[i]
}

// insert pushes sp onto the front of the bucket matching its page
// count, creating that bucket (at the sorted position) if needed.
func (sl *spanList) insert(sp *span) {
	i := sort.Search(len(sl.buckets), func(i int) bool {
		return sl.buckets[i].pages >= sp.pages
	})
	if i < len(sl.buckets) && sl.buckets[i].pages == sp.pages {
		sp.next = sl.buckets[i].head
		sl.buckets[i].head = sp
		return
	}
	nb := &spanBucket{pages: sp.pages, head: sp}
	sl.buckets = append(sl.buckets, nil)
	copy(sl.buckets[i+1:], sl.buckets[i:])
	sl.buckets[i] = nb
}

// popFrom detaches and returns the head span of the given bucket,
// removing the bucket entirely if it becomes empty.
func (sl *spanList) popFrom(idx int) *span {
	b := sl.buckets[idx]
	sp := b.head
	b.head = sp.next
	sp.next = nil
	if b.head == nil {
		sl.buckets = append(sl.buckets[:idx], sl.buckets[idx+1:]...)
	}
	return sp
}

// remove detaches sp from whichever bucket holds sp.pages. Used during
// coalescing, where a specific neighbour span (not necessarily the
// bucket head) must be pulled out of the free structure.
func (sl *spanList) remove(sp *span) bool {
	idx := sl.find(sp.pages)
	if idx < 0 {
		return false
	}
	b := sl.buckets[idx]
	if b.head == sp {
		b.head = sp.next
		sp.next = nil
		if b.head == nil {
			sl.buckets = append(sl.buckets[:idx], sl.buckets[idx+1:]...)
		}
		return true
	}
	prev := b.head
	for prev != nil && prev.next != sp {
		prev = prev.next
	}
	if prev == nil {
		return false
	}
	prev.next = sp.next
	sp.next = nil
	return true
}
