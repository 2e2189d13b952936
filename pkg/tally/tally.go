// Package tally provides a counter that remembers first-seen order, so every
// ranking built on it breaks ties by first appearance.
package tally

import "sort"

// Counter counts occurrences of comparable keys.
type Counter[K comparable] struct {
	order  []K
	counts map[K]int
}

// New returns an empty Counter.
func New[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

// Add counts one occurrence of key.
func (c *Counter[K]) Add(key K) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Count returns the occurrences of key.
func (c *Counter[K]) Count(key K) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.order)
}

// Total returns the sum of all counts.
func (c *Counter[K]) Total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// Ranked returns keys by descending count. limit <= 0 returns all keys.
func (c *Counter[K]) Ranked(limit int) []K {
	keys := append([]K(nil), c.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

// Top returns the most frequent key, or the zero value when empty.
func (c *Counter[K]) Top() K {
	var best K
	max := 0
	for _, k := range c.order {
		if c.counts[k] > max {
			best, max = k, c.counts[k]
		}
	}
	return best
}
