package service

import "github.com/shopspring/decimal"

// The reducers below rely on "first insertion wins" bucket ordering, which Go
// maps do not provide. Each accumulator pairs a hash index with an
// insertion-order list so iteration order is the encounter order of keys.

type counterEntry struct {
	Key   string
	Count int
}

type orderedCounter struct {
	index   map[string]int
	entries []counterEntry
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{index: make(map[string]int)}
}

// Add increments the counter for key, registering the key on first sight
func (c *orderedCounter) Add(key string, n int) {
	if i, ok := c.index[key]; ok {
		c.entries[i].Count += n
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, counterEntry{Key: key, Count: n})
}

// Entries returns the accumulated buckets in first-seen order
func (c *orderedCounter) Entries() []counterEntry {
	return c.entries
}

type sumEntry struct {
	Key string
	Sum decimal.Decimal
}

type orderedSum struct {
	index   map[string]int
	entries []sumEntry
}

func newOrderedSum() *orderedSum {
	return &orderedSum{index: make(map[string]int)}
}

// Add accumulates v into the running sum for key
func (s *orderedSum) Add(key string, v decimal.Decimal) {
	if i, ok := s.index[key]; ok {
		s.entries[i].Sum = s.entries[i].Sum.Add(v)
		return
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, sumEntry{Key: key, Sum: v})
}

// Entries returns the accumulated buckets in first-seen order
func (s *orderedSum) Entries() []sumEntry {
	return s.entries
}
