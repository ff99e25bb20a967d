package tcmalloc

import "errors"
import "fmt"

// ErrOutOfMemory is returned (as a nil pointer at the public API) when
// the OS refuses a page request and no cached span of adequate size
// exists in PageCache.
var ErrOutOfMemory = errors.New("tcmalloc.outofmemory")

// ErrReleased is returned by ThreadCache.Release when the ThreadCache
// has already been released.
var ErrReleased = errors.New("tcmalloc.released")

// panicerr raises an internal-invariant violation. Bad deallocate
// arguments (wrong size, foreign pointer, double free) are, per spec,
// undefined behaviour rather than a detected error; this allocator does
// not attempt to catch them.
func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
