package tcmalloc

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestBlockSizeMatchesFreeListSizeBounds(t *testing.T) {
	assert.Equal(t, Alignment, blockSize(0))
	assert.Equal(t, MaxBytes, blockSize(FreeListSize-1))
}

func TestBatchCountNeverExceedsFourKiB(t *testing.T) {
	for size := Alignment; size <= MaxBytes; size += Alignment * 37 {
		n := batchCount(size)
		require.GreaterOrEqual(t, n, int64(1), "batchCount(%d)", size)
		if n > 1 {
			assert.LessOrEqual(t, n*size, int64(4*1024), "batchCount(%d)", size)
		}
	}
}

// spanPagesFor must compare byte counts to byte counts. The documented
// source bug compared a page count directly against SPAN_PAGES*PAGE_SIZE,
// which meant classes above roughly SPAN_PAGES pages but still small in
// byte terms could be mis-sized; this checks the fixed comparison.
func TestSpanPagesForCompareByBytesNotPages(t *testing.T) {
	limit := SpanPages * PageSize
	assert.Equal(t, SpanPages, spanPagesFor(limit))
	assert.Greater(t, spanPagesFor(limit+1), SpanPages)

	big := MaxBytes
	want := ceilDiv(big, PageSize)
	assert.Equal(t, want, spanPagesFor(big))
}

func TestCeilDiv(t *testing.T) {
	cases := []struct{ n, d, want int64 }{
		{0, 4, 0}, {1, 4, 1}, {4, 4, 1}, {5, 4, 2}, {4096, 4096, 1}, {4097, 4096, 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ceilDiv(c.n, c.d))
	}
}
