package tcmalloc

import "testing"
import "unsafe"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestPageCacheAllocateSpanFromOS(t *testing.T) {
	pc := newPageCache()
	sp, err := pc.allocateSpan(SpanPages)
	require.NoError(t, err)
	assert.EqualValues(t, SpanPages, sp.pages)
	assert.NotNil(t, sp.base)
}

func TestPageCacheReuseFreedSpan(t *testing.T) {
	pc := newPageCache()
	sp, err := pc.allocateSpan(SpanPages)
	require.NoError(t, err)
	base := sp.base
	pc.deallocateSpan(sp)

	sp2, err := pc.allocateSpan(SpanPages)
	require.NoError(t, err)
	assert.Equal(t, base, sp2.base, "expected the freed span to be reused, got a fresh mapping")
}

func TestPageCacheBestFitSplits(t *testing.T) {
	pc := newPageCache()
	big, err := pc.allocateSpan(SpanPages * 4)
	require.NoError(t, err)
	pc.deallocateSpan(big)

	small, err := pc.allocateSpan(SpanPages)
	require.NoError(t, err)
	assert.EqualValues(t, SpanPages, small.pages)
	assert.Equal(t, big.base, small.base, "expected the split to come off the front of the original span")

	// the remainder (3*SpanPages) should still be reusable
	rem, err := pc.allocateSpan(SpanPages * 3)
	require.NoError(t, err)
	wantBase := unsafe.Pointer(uintptr(big.base) + uintptr(SpanPages*PageSize))
	assert.Equal(t, wantBase, rem.base)
}

func TestPageCacheForwardCoalesce(t *testing.T) {
	pc := newPageCache()
	// Synthesize two adjacent spans without going through the OS, so the
	// test is deterministic regardless of what the allocator returns.
	base := unsafe.Pointer(uintptr(0x10000))
	first := &span{base: base, pages: 2}
	second := &span{base: unsafe.Pointer(uintptr(base) + uintptr(2*PageSize)), pages: 2}

	pc.deallocateSpan(second)
	pc.deallocateSpan(first)

	b := pc.free.bestFit(4)
	require.NotNil(t, b, "expected first to coalesce forward with second into a 4-page span")
	assert.EqualValues(t, 4, b.pages)
}

// Coalescing never looks backward: freeing a span whose lower-address
// neighbour is already free must not merge the two. Only the direction
// from a freed span toward the one immediately following it is ever
// checked.
func TestPageCacheNoBackwardCoalesce(t *testing.T) {
	pc := newPageCache()
	base := unsafe.Pointer(uintptr(0x20000))
	first := &span{base: base, pages: 2}
	second := &span{base: unsafe.Pointer(uintptr(base) + uintptr(2*PageSize)), pages: 2}

	pc.deallocateSpan(first)  // free, with no successor free yet
	pc.deallocateSpan(second) // second's own successor is absent; first precedes it

	assert.Nil(t, pc.free.bestFit(4), "expected no merge across the two 2-page spans")

	idx := pc.free.find(2)
	require.GreaterOrEqual(t, idx, 0)

	count := 0
	for sp := pc.free.buckets[idx].head; sp != nil; sp = sp.next {
		count++
	}
	assert.Equal(t, 2, count, "expected both spans to remain as separate free entries")
}
