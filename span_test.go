package tcmalloc

import "testing"
import "unsafe"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestSpanListInsertBestFit(t *testing.T) {
	var sl spanList
	sl.insert(&span{base: unsafe.Pointer(uintptr(0x1000)), pages: 4})
	sl.insert(&span{base: unsafe.Pointer(uintptr(0x2000)), pages: 16})
	sl.insert(&span{base: unsafe.Pointer(uintptr(0x3000)), pages: 8})

	b := sl.bestFit(5)
	require.NotNil(t, b)
	assert.EqualValues(t, 8, b.pages)

	b = sl.bestFit(8)
	require.NotNil(t, b)
	assert.EqualValues(t, 8, b.pages)

	b = sl.bestFit(17)
	assert.Nil(t, b)
}

func TestSpanListPopFromRemovesEmptyBucket(t *testing.T) {
	var sl spanList
	sl.insert(&span{base: unsafe.Pointer(uintptr(0x1000)), pages: 4})
	idx := sl.find(4)
	require.GreaterOrEqual(t, idx, 0)

	sl.popFrom(idx)
	assert.Len(t, sl.buckets, 0)
}

func TestSpanListRemoveNonHead(t *testing.T) {
	var sl spanList
	a := &span{base: unsafe.Pointer(uintptr(0x1000)), pages: 4}
	b := &span{base: unsafe.Pointer(uintptr(0x2000)), pages: 4}
	sl.insert(a)
	sl.insert(b)

	require.True(t, sl.remove(a))

	idx := sl.find(4)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, b, sl.buckets[idx].head)
}

func TestSpanListRemoveUnknownReturnsFalse(t *testing.T) {
	var sl spanList
	sp := &span{base: unsafe.Pointer(uintptr(0x1000)), pages: 4}
	assert.False(t, sl.remove(sp))
}
