// Package ranking keeps the k best scored candidates out of an arbitrarily
// long stream.
//
// Every recommender builds its own TopK per call; instances are not safe for
// concurrent use.
package ranking

import (
	"cmp"
	"container/heap"
)

// Candidate is an (id, score) pair competing for a place in a ranking.
type Candidate[K cmp.Ordered] struct {
	ID    K
	Score float64
}

// TopK is a fixed-capacity min-heap. The root is always the weakest candidate:
// the lowest score, and among equal scores the largest id. Push inserts and
// then evicts the root while more than k candidates are held, so equal scores
// are resolved in favour of the smaller id.
type TopK[K cmp.Ordered] struct {
	k int
	h candidateHeap[K]
}

// NewTopK returns a selector keeping at most k candidates. k <= 0 keeps none.
func NewTopK[K cmp.Ordered](k int) *TopK[K] {
	if k < 0 {
		k = 0
	}
	return &TopK[K]{k: k, h: make(candidateHeap[K], 0, k+1)}
}

// Push adds a candidate, evicting the weakest one when over capacity.
func (t *TopK[K]) Push(id K, score float64) {
	heap.Push(&t.h, Candidate[K]{ID: id, Score: score})
	if t.h.Len() > t.k {
		heap.Pop(&t.h)
	}
}

// Len is the number of candidates currently held.
func (t *TopK[K]) Len() int { return t.h.Len() }

// Drain returns the held candidates ordered by descending score (ascending
// id on ties) and leaves the selector empty.
func (t *TopK[K]) Drain() []Candidate[K] {
	out := make([]Candidate[K], t.h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&t.h).(Candidate[K])
	}
	return out
}

// DrainIDs is Drain without the scores.
func (t *TopK[K]) DrainIDs() []K {
	return IDs(t.Drain())
}

// SelectTop reduces a score map to its k best ids, best first.
func SelectTop[K cmp.Ordered](scores map[K]float64, k int) []K {
	top := NewTopK[K](k)
	for id, score := range scores {
		top.Push(id, score)
	}
	return top.DrainIDs()
}

// IDs strips the scores from a ranked candidate list.
func IDs[K cmp.Ordered](cs []Candidate[K]) []K {
	ids := make([]K, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}

type candidateHeap[K cmp.Ordered] []Candidate[K]

func (h candidateHeap[K]) Len() int { return len(h) }

// Less orders weaker candidates first.
func (h candidateHeap[K]) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	return h[i].ID > h[j].ID
}

func (h candidateHeap[K]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap[K]) Push(x any) { *h = append(*h, x.(Candidate[K])) }

func (h *candidateHeap[K]) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}
