package common

import (
	"sort"
	"sync"
)

// Tally counts occurrences of comparable keys. The zero value is ready to
// use and safe for concurrent use.
type Tally[K comparable] struct {
	mu     sync.Mutex
	counts map[K]int
	total  int
}

// Add records one occurrence of key
func (t *Tally[K]) Add(key K) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.counts == nil {
		t.counts = make(map[K]int)
	}
	t.counts[key]++
	t.total++
}

// Count returns how often key was added
func (t *Tally[K]) Count(key K) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[key]
}

// Total returns the number of Add calls
func (t *Tally[K]) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// Ranked returns the keys by descending count; ties keep less's order
func (t *Tally[K]) Ranked(less func(a, b K) bool) []K {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := make([]K, 0, len(t.counts))
	for k := range t.counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := t.counts[keys[i]], t.counts[keys[j]]
		if ci != cj {
			return ci > cj
		}
		return less(keys[i], keys[j])
	})
	return keys
}
