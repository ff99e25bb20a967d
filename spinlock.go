package tcmalloc

import "runtime"
import "sync/atomic"

// A spinlock guarding a single CentralCache size class. Contention on
// one class's lock is expected to be brief (a chain splice or a takeFront
// walk), so spinning beats parking a goroutine through the scheduler.
type spinlock int32

func (s *spinlock) lock() {
	for !atomic.CompareAndSwapInt32((*int32)(s), 0, 1) {
		runtime.Gosched()
	}
}

func (s *spinlock) unlock() {
	atomic.StoreInt32((*int32)(s), 0)
}
