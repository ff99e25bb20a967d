//go:build linux || darwin

package tcmalloc

import "unsafe"

import sigar "github.com/cloudfoundry/gosigar"
import "golang.org/x/sys/unix"

// mmapPages asks the OS for n pages of fresh, zero-initialized,
// anonymous memory and returns a pointer to the start of the mapping.
// The returned mapping is never passed to munmap by the pooled paths --
// PageCache only ever grows -- except on the large-allocation bypass
// path (see threadcache.go), which owns its mapping outright and frees
// it with munmapPages.
func mmapPages(n int64) (unsafe.Pointer, error) {
	size := int(n * PageSize)
	b, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		logMmapFailure(size, err)
		return nil, ErrOutOfMemory
	}
	return unsafe.Pointer(&b[0]), nil
}

// munmapPages releases a mapping obtained from mmapPages. Only used by
// the large-allocation bypass path.
func munmapPages(p unsafe.Pointer, n int64) error {
	size := int(n * PageSize)
	b := unsafe.Slice((*byte)(p), size)
	return unix.Munmap(b)
}

// logMmapFailure reports free-memory pressure from the OS alongside the
// mmap error, so a failure under genuine memory exhaustion is
// distinguishable in logs from one caused by an overlarge single
// request.
func logMmapFailure(wantBytes int, err error) {
	var mem sigar.Mem
	if merr := mem.Get(); merr == nil {
		logf("mmap failed: want=%d err=%v sys_free=%d sys_total=%d",
			wantBytes, err, mem.Free, mem.Total)
		return
	}
	logf("mmap failed: want=%d err=%v", wantBytes, err)
}
