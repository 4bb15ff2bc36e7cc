// Package tickqueue provides the two small data structures the
// scheduler's event queue is built from: a min-heap of tick keys (ticks
// that currently have pending gates) and an insertion-ordered, dedup-by-
// key set of pending entries for a single tick.
//
// Neither structure appears as a library anywhere in the retrieved
// reference pack, so both are built directly on stdlib container/heap
// and container/list — see DESIGN.md's grounding ledger.
package tickqueue

import "container/heap"

// TickHeap is a min-heap of tick keys. Duplicate keys may be pushed (the
// scheduler dedupes at the queue-map level, not here); Pop always
// returns the smallest remaining key.
type TickHeap struct {
	h intHeap
}

// NewTickHeap returns an empty tick heap.
func NewTickHeap() *TickHeap {
	return &TickHeap{}
}

// Push adds a tick key to the heap.
func (t *TickHeap) Push(tick int64) {
	heap.Push(&t.h, tick)
}

// Pop removes and returns the smallest tick key. ok is false if the heap
// is empty.
func (t *TickHeap) Pop() (tick int64, ok bool) {
	if len(t.h) == 0 {
		return 0, false
	}
	return heap.Pop(&t.h).(int64), true
}

// Peek returns the smallest tick key without removing it, and whether the
// heap is non-empty.
func (t *TickHeap) Peek() (int64, bool) {
	if len(t.h) == 0 {
		return 0, false
	}
	return t.h[0], true
}

// Len returns the number of keys currently in the heap (including
// duplicates).
func (t *TickHeap) Len() int { return len(t.h) }

type intHeap []int64

func (h intHeap) Len() int            { return len(h) }
func (h intHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *intHeap) Push(x interface{}) { *h = append(*h, x.(int64)) }
func (h *intHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
