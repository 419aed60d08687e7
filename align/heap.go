package align

import "container/heap"

// heapItem is one entry of the top-N pruning heap. bwa-sw.c packs
// score<<32|id into a single uint64 so one comparison orders by score
// then by id; Go's container/heap works from a Less method instead, so
// the two fields are kept separate rather than bit-packed.
type heapItem struct {
	score int32
	seq   int32
	c     *cell
}

type heapItems []heapItem

func (h heapItems) Len() int { return len(h) }
func (h heapItems) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score < h[j].score
	}
	return h[i].seq < h[j].seq
}
func (h heapItems) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *heapItems) Push(x any) { *h = append(*h, x.(heapItem)) }

func (h *heapItems) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// topHeap keeps the N candidates with the highest H, mirroring
// sw_heap_insert1's bounded min-heap: once full, an incoming candidate
// replaces the current minimum only if it strictly beats it. spec.md §9
// notes that the same heap is reused for both the initial snapshot (step
// B) and the post-F-closure snapshot (step D); topHeap's reset lets a
// caller do the same without reallocating.
type topHeap struct {
	items heapItems
	cap   int
}

func newTopHeap(capacity int) *topHeap {
	return &topHeap{cap: capacity}
}

func (h *topHeap) reset(capacity int) {
	h.items = h.items[:0]
	h.cap = capacity
}

// insert reports whether c was kept (either the heap wasn't full yet, or
// c displaced the current minimum).
func (h *topHeap) insert(score, seq int32, c *cell) bool {
	it := heapItem{score: score, seq: seq, c: c}
	if len(h.items) < h.cap {
		heap.Push(&h.items, it)
		return true
	}
	if it.score > h.items[0].score || (it.score == h.items[0].score && it.seq > h.items[0].seq) {
		h.items[0] = it
		heap.Fix(&h.items, 0)
		return true
	}
	return false
}

func (h *topHeap) full() bool { return len(h.items) == h.cap }

func (h *topHeap) min() int32 {
	if len(h.items) == 0 {
		return 0
	}
	return h.items[0].score
}

func (h *topHeap) Len() int { return len(h.items) }

// sorted returns the kept cells ordered by H descending (the
// ks_heapsort_rb3_64 step in sw_core), without disturbing the heap.
func (h *topHeap) sorted() []*cell {
	items := make(heapItems, len(h.items))
	copy(items, h.items)
	out := make([]*cell, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		out[i] = items[0].c
		heap.Pop(&items)
	}
	return out
}
