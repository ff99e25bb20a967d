package lib

import "fmt"
import "sort"
import "strconv"
import "strings"

// HistogramInt64 is a fixed-width bucketed histogram over int64
// samples. The allocator keeps a single process-wide one to track the
// distribution of requested allocation sizes, reported by
// RequestSizeDistribution — observability only, never consulted by
// the allocation/free hot path.
type HistogramInt64 struct {
	n      int64
	minval int64
	maxval int64
	sum    int64
	init   bool

	buckets []int64
	from    int64
	till    int64
	width   int64
}

// NewHistogramInt64 returns a histogram bucketing samples in
// [from,till) into buckets of the given width; samples outside the
// range collapse into the first/last bucket.
func NewHistogramInt64(from, till, width int64) *HistogramInt64 {
	from = (from / width) * width
	till = (till / width) * width
	h := &HistogramInt64{from: from, till: till, width: width}
	h.buckets = make([]int64, 2+((till-from)/width))
	return h
}

// Add a sample.
func (h *HistogramInt64) Add(sample int64) {
	h.n++
	h.sum += sample
	if !h.init || sample < h.minval {
		h.minval, h.init = sample, true
	}
	if sample > h.maxval {
		h.maxval = sample
	}
	switch {
	case sample < h.from:
		h.buckets[0]++
	case sample >= h.till:
		h.buckets[len(h.buckets)-1]++
	default:
		h.buckets[((sample-h.from)/h.width)+1]++
	}
}

// Samples total number of samples added.
func (h *HistogramInt64) Samples() int64 { return h.n }

// Min sample value seen.
func (h *HistogramInt64) Min() int64 { return h.minval }

// Max sample value seen.
func (h *HistogramInt64) Max() int64 { return h.maxval }

// Sum of all samples.
func (h *HistogramInt64) Sum() int64 { return h.sum }

// Mean of all samples, 0 if empty.
func (h *HistogramInt64) Mean() int64 {
	if h.n == 0 {
		return 0
	}
	return h.sum / h.n
}

// Stats returns cumulative counts for every bucket up to the highest
// non-empty one: each entry, keyed by a bucket's upper bound, counts the
// samples below that bound. The highest non-empty bucket is keyed "+"
// and holds the total. An empty histogram yields an empty map.
func (h *HistogramInt64) Stats() map[string]int64 {
	m := make(map[string]int64)
	cumm := int64(0)
	for i := len(h.buckets) - 1; i >= 0; i-- {
		if h.buckets[i] == 0 {
			continue
		}
		for j := 0; j <= i; j++ {
			cumm += h.buckets[j]
			if j == i {
				m["+"] = cumm
			} else {
				m[strconv.FormatInt(h.from+(int64(j)*h.width), 10)] = cumm
			}
		}
		break
	}
	return m
}

// Logstring renders Samples/Min/Max/Mean and the bucket counts as a
// single JSON-ish line suitable for a log statement.
func (h *HistogramInt64) Logstring() string {
	stats := h.Stats()
	keys := make([]int, 0, len(stats))
	for k := range stats {
		if k == "+" {
			continue
		}
		n, _ := strconv.Atoi(k)
		keys = append(keys, n)
	}
	sort.Ints(keys)

	parts := []string{
		fmt.Sprintf(`"samples": %v`, h.Samples()),
		fmt.Sprintf(`"min": %v`, h.Min()),
		fmt.Sprintf(`"max": %v`, h.Max()),
		fmt.Sprintf(`"mean": %v`, h.Mean()),
	}
	buckets := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		ks := strconv.Itoa(k)
		buckets = append(buckets, fmt.Sprintf(`"%v": %v`, ks, stats[ks]))
	}
	if v, ok := stats["+"]; ok {
		buckets = append(buckets, fmt.Sprintf(`"+": %v`, v))
	}
	parts = append(parts, "\"histogram\": {"+strings.Join(buckets, ",")+"}")
	return "{" + strings.Join(parts, ",") + "}"
}
