//go:build debug

package tcmalloc

import "unsafe"

// poisonByte fills every block handed out by ThreadCache.Allocate with a
// non-zero pattern in debug builds, so a program that reads an allocated-but-never-written
// block sees garbage instead of zeros and is more likely to fail
// loudly. Never done in production builds — see production.go.
const poisonByte = byte(0xCD)

func poisonBlock(p unsafe.Pointer, size int64) {
	dst := unsafe.Slice((*byte)(p), int(size))
	for i := range dst {
		dst[i] = poisonByte
	}
}
