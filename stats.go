package tcmalloc

import "github.com/bnclabs/tcmalloc/api"
import "github.com/bnclabs/tcmalloc/lib"

var _ api.Allocator = (*ThreadCache)(nil)

// requestSizes histograms every Allocate call's requested size (before
// rounding), bucketed in 64-byte widths up to MaxBytes. Observability
// only; never consulted on the allocate/free hot path.
var requestSizes = lib.NewHistogramInt64(0, MaxBytes, 64)

func recordRequest(n int) {
	requestSizes.Add(int64(n))
}

// Stats reports a snapshot of every size class whose free list in this
// ThreadCache currently holds blocks, merged with CentralCache's view of
// the same class. Classes with an empty ThreadCache free list are
// omitted, including classes this ThreadCache has used before.
func (tc *ThreadCache) Stats() map[int]api.ClassStats {
	out := make(map[int]api.ClassStats)
	for w := range tc.active {
		word := tc.active[w]
		for word != 0 {
			bit := word.Findfirstset()
			if bit < 0 {
				break
			}
			i := w*8 + int(bit)
			out[i] = tc.classStats(i)
			word = word.Clearbit(uint8(bit))
		}
	}
	return out
}

func (tc *ThreadCache) classStats(i int) api.ClassStats {
	c := &tc.classes[i]
	return api.ClassStats{
		BlockSize:   blockSize(i),
		ThreadFree:  c.count,
		CentralFree: tc.central.freeCount(i),
		SpansLive:   tc.central.spanCount(i),
	}
}

// RequestSizeDistribution returns a log-ready summary of every size
// passed to Allocate across the whole process, independent of which
// ThreadCache served it.
func RequestSizeDistribution() string {
	return requestSizes.Logstring()
}
