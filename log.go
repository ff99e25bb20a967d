package tcmalloc

import "sync/atomic"

import log "github.com/bnclabs/golog"
import "github.com/dustin/go-humanize"

// logok gates every logging call behind a single atomic flag so the
// fast allocate/deallocate paths never pay for a disabled log call
// beyond one atomic load. Off by default.
var logok = int64(0)

// EnableLogging turns on slow-path logging: spans carved from the OS,
// span coalescing, CentralCache fetch misses and ThreadCache spills.
// Allocate/Deallocate hot paths never log regardless of this setting.
func EnableLogging() {
	atomic.StoreInt64(&logok, 1)
}

// DisableLogging turns logging back off.
func DisableLogging() {
	atomic.StoreInt64(&logok, 0)
}

func logf(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Debugf(format, v...)
	}
}

func logSpanCarve(bytes int64) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Infof("pagecache: carved new span of %v from OS", humanize.Bytes(uint64(bytes)))
	}
}

func logSpanCoalesce(bytes int64) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Debugf("pagecache: coalesced forward into %v span", humanize.Bytes(uint64(bytes)))
	}
}

func logCentralMiss(class int, size int64) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Debugf("centralcache: fetch miss for class %d (%v blocks), pulling from pagecache",
			class, humanize.Bytes(uint64(size)))
	}
}

func logThreadSpill(class int, size int64, n int64) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Debugf("threadcache: spilling %d blocks of class %d (%v each) to centralcache",
			n, class, humanize.Bytes(uint64(size)))
	}
}
