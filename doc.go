// Package tcmalloc implements a general-purpose, multi-threaded
// small-object memory allocator inspired by tcmalloc's three-tier
// design: a per-goroutine ThreadCache, backed by a shared CentralCache
// with one spin-lock per size class, backed in turn by a PageCache
// that carves contiguous page runs ("spans") out of memory obtained
// from the OS via anonymous mmap.
//
// allocation flow (leaf to root): a request walks ThreadCache (T1) ->
// CentralCache (T2) -> PageCache (T3) only on a miss; a free only
// walks back up when the lower tier is over its retention threshold.
// SizeClass, in sizeclass.go, is the stateless function shared by all
// three tiers to translate a byte count to a size-class index.
//
// Public API:
//
//	Allocate:
//
// Returns an uninitialized, naturally-aligned block of at least
// byteCount bytes, using a pool of goroutine-affine ThreadCache
// instances under the hood. byteCount == 0 is treated as Alignment.
// Requests larger than MaxBytes bypass the pool entirely and are
// served directly by the OS.
//
//	Deallocate:
//
// Returns a block obtained from Allocate. The caller must supply the
// same byteCount (or any byteCount within the same size class) used at
// allocation time — this allocator keeps no per-block metadata, so
// supplying a mismatched size, a foreign pointer, or double-freeing a
// block is undefined behaviour, not a detected error.
//
// Applications that want strict single-owner semantics (one cache per
// goroutine, never shared) should construct their own *ThreadCache with
// NewThreadCache and keep it for the life of that goroutine instead of
// using the package-level functions, calling Drain before discarding it.
package tcmalloc
