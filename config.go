package tcmalloc

// Alignment every size class is a multiple of this many bytes, and
// every block handed back by Allocate is aligned to it.
const Alignment = int64(8)

// MaxBytes is the largest request size managed by the pool; anything
// bigger bypasses all three tiers and is delegated straight to the OS.
const MaxBytes = int64(256 * 1024)

// FreeListSize is the number of distinct size classes: class i serves
// blocks of exactly (i+1)*Alignment bytes, for i in [0, FreeListSize).
const FreeListSize = int(MaxBytes / Alignment)

// PageSize is the OS page granularity PageCache allocates in.
const PageSize = int64(4096)

// SpanPages is the number of pages carved into a single span for any
// size class whose block size fits within SpanPages*PageSize; larger
// classes get a span sized to fit exactly one block's worth of pages.
const SpanPages = int64(8)

// spillThreshold is ThreadCache's high-water mark: once a class free
// list's length passes this count on a Deallocate, roughly half the
// list is shipped to CentralCache.
const spillThreshold = int64(64)

// blockSize returns the exact block size, in bytes, served by class i.
func blockSize(i int) int64 {
	return int64(i+1) * Alignment
}

// batchCount returns how many blocks ThreadCache pulls from
// CentralCache in one fetch for a class of the given block size,
// chosen so one batch is close to 2KiB and never exceeds 4KiB.
func batchCount(size int64) int64 {
	const maxBatchBytes = int64(4 * 1024)

	var baseline int64
	switch {
	case size <= 32:
		baseline = 64
	case size <= 64:
		baseline = 32
	case size <= 128:
		baseline = 16
	case size <= 256:
		baseline = 8
	case size <= 512:
		baseline = 4
	case size <= 1024:
		baseline = 2
	default:
		baseline = 1
	}

	maxNum := maxBatchBytes / size
	if maxNum < 1 {
		maxNum = 1
	}
	if baseline < maxNum {
		return max64(1, baseline)
	}
	return max64(1, maxNum)
}

// spanPagesFor returns how many pages PageCache should carve into a
// span for a class serving blocks of the given size.
func spanPagesFor(size int64) int64 {
	if size <= SpanPages*PageSize {
		return SpanPages
	}
	return ceilDiv(size, PageSize)
}

func ceilDiv(n, d int64) int64 {
	if n%d == 0 {
		return n / d
	}
	return (n / d) + 1
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
