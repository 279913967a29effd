// Package similarity compares finite sets of identifiers.
package similarity

import "math"

// Set is a finite set of comparable identifiers.
type Set[T comparable] map[T]struct{}

// NewSet builds a set from the given items, dropping duplicates.
func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Add inserts v.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has reports whether v is in the set.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Len is the set cardinality.
func (s Set[T]) Len() int { return len(s) }

// Intersect counts the elements present in both sets.
func Intersect[T comparable](a, b Set[T]) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for v := range a {
		if b.Has(v) {
			n++
		}
	}
	return n
}

// Cosine returns |a ∩ b| / sqrt(|a|·|b|). Either set being empty yields 0.
func Cosine[T comparable](a, b Set[T]) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return float64(Intersect(a, b)) / math.Sqrt(float64(len(a))*float64(len(b)))
}
