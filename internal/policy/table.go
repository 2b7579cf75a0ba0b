// Package policy implements the tabular policies that learn the game: a
// greedy policy over a lazily grown value table, an epsilon-greedy wrapper
// with a decaying exploration schedule, a Boltzmann softmax variant, and a
// uniform random baseline, plus the text codec and file store that persist
// them between runs.
package policy

// pair identifies one table entry.
type pair[K, A comparable] struct {
	key    K
	action A
}

// Table maps visited (key, action) pairs to value estimates. Lookups of
// unvisited pairs return zero without inserting, so Len stays an accurate
// count of the pairs actually updated. Entries are never removed.
type Table[K, A comparable] struct {
	values map[pair[K, A]]float64
}

// NewTable returns an empty value table.
func NewTable[K, A comparable]() *Table[K, A] {
	return &Table[K, A]{values: make(map[pair[K, A]]float64)}
}

// Get returns the stored value for the pair, or zero when it was never set.
func (t *Table[K, A]) Get(key K, action A) float64 {
	return t.values[pair[K, A]{key, action}]
}

// Set stores a value for the pair, creating the entry on first visit.
func (t *Table[K, A]) Set(key K, action A, value float64) {
	t.values[pair[K, A]{key, action}] = value
}

// Len reports how many (key, action) pairs have been set.
func (t *Table[K, A]) Len() int {
	return len(t.values)
}
