// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package cache

import (
	"container/list"
	"fmt"
	"sort"
)

// LFU is a capacity-bounded cache that evicts the least frequently used key
// on overflow, ties broken by arrival order within a frequency bucket.
//
// Entries live in per-frequency buckets: buckets[f] holds every entry
// accessed exactly f times, oldest arrival at the front. minFreq tracks the
// smallest non-empty bucket and is meaningful only while the cache holds at
// least one entry. Buckets are sparse, so whenever the minFreq bucket drains
// the new minimum is re-derived by scanning the remaining buckets; it is
// never blindly incremented. Stale minFreq would silently corrupt every
// later eviction choice.
type LFU[K comparable, V any] struct {
	capacity int
	index    map[K]*list.Element
	buckets  map[int]*list.List
	minFreq  int
}

var _ Policy[string, string] = (*LFU[string, string])(nil)

type lfuEntry[K comparable, V any] struct {
	key   K
	value V
	freq  int
}

// NewLFU constructs an LFU cache. capacity must be non-negative; a zero
// capacity cache accepts operations but never stores anything.
func NewLFU[K comparable, V any](capacity int) (*LFU[K, V], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("lfu: capacity must be non-negative, got %d", capacity)
	}
	return &LFU[K, V]{
		capacity: capacity,
		index:    make(map[K]*list.Element, capacity),
		buckets:  make(map[int]*list.List),
	}, nil
}

// Get returns the value for key and counts the access: the entry moves from
// bucket f to the back of bucket f+1. A miss returns the zero value and
// false.
func (c *LFU[K, V]) Get(key K) (V, bool) {
	el, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	e := el.Value.(*lfuEntry[K, V])
	c.touch(el, e)
	return e.value, true
}

// Put stores key/value. An existing key is overwritten and its access
// counted, exactly as Get counts it. A new key is admitted at frequency 1
// (evicting first if the cache is full), which always makes 1 the minimum
// frequency. Put on a zero-capacity cache is a no-op.
func (c *LFU[K, V]) Put(key K, value V) {
	if c.capacity == 0 {
		return
	}

	if el, ok := c.index[key]; ok {
		e := el.Value.(*lfuEntry[K, V])
		e.value = value
		c.touch(el, e)
		return
	}

	if len(c.index) == c.capacity {
		c.evict()
	}

	e := &lfuEntry[K, V]{key: key, value: value, freq: 1}
	c.index[key] = c.bucket(1).PushBack(e)
	c.minFreq = 1
}

// Remove deletes key if present. Removing an absent key is a no-op and
// leaves all bookkeeping, including minFreq, untouched.
func (c *LFU[K, V]) Remove(key K) {
	el, ok := c.index[key]
	if !ok {
		return
	}
	e := el.Value.(*lfuEntry[K, V])
	c.buckets[e.freq].Remove(el)
	delete(c.index, key)
	c.dropIfEmpty(e.freq)
}

// Peek returns the value for key without counting an access.
func (c *LFU[K, V]) Peek(key K) (V, bool) {
	el, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return el.Value.(*lfuEntry[K, V]).value, true
}

// Contains reports whether key is cached, without counting an access.
func (c *LFU[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Freq returns the access count for key without counting an access.
func (c *LFU[K, V]) Freq(key K) (int, bool) {
	el, ok := c.index[key]
	if !ok {
		return 0, false
	}
	return el.Value.(*lfuEntry[K, V]).freq, true
}

// Len returns the number of cached entries.
func (c *LFU[K, V]) Len() int {
	return len(c.index)
}

// Keys returns keys ordered by ascending frequency, arrival order within a
// frequency. Debug/report helper, O(n log n).
func (c *LFU[K, V]) Keys() []K {
	freqs := make([]int, 0, len(c.buckets))
	for f := range c.buckets {
		freqs = append(freqs, f)
	}
	sort.Ints(freqs)

	out := make([]K, 0, len(c.index))
	for _, f := range freqs {
		for el := c.buckets[f].Front(); el != nil; el = el.Next() {
			out = append(out, el.Value.(*lfuEntry[K, V]).key)
		}
	}
	return out
}

// touch moves an entry from bucket e.freq to the back of the next bucket and
// repairs minFreq if the old bucket drained.
func (c *LFU[K, V]) touch(el *list.Element, e *lfuEntry[K, V]) {
	old := e.freq
	c.buckets[old].Remove(el)
	e.freq++
	c.index[e.key] = c.bucket(e.freq).PushBack(e)
	c.dropIfEmpty(old)
}

// evict removes the front entry of the minFreq bucket: the earliest arrival
// at the lowest frequency.
func (c *LFU[K, V]) evict() {
	bucket := c.buckets[c.minFreq]
	e := bucket.Remove(bucket.Front()).(*lfuEntry[K, V])
	delete(c.index, e.key)
	c.dropIfEmpty(e.freq)
}

// dropIfEmpty discards bucket f once it drains and, when f was the tracked
// minimum, rescans for the new minimum. The buckets map holds only non-empty
// lists, so the scan is over live frequencies.
func (c *LFU[K, V]) dropIfEmpty(f int) {
	if c.buckets[f].Len() > 0 {
		return
	}
	delete(c.buckets, f)
	if f != c.minFreq {
		return
	}
	c.minFreq = 0
	for g := range c.buckets {
		if c.minFreq == 0 || g < c.minFreq {
			c.minFreq = g
		}
	}
}

// bucket returns the list for frequency f, creating it on first use.
func (c *LFU[K, V]) bucket(f int) *list.List {
	l, ok := c.buckets[f]
	if !ok {
		l = list.New()
		c.buckets[f] = l
	}
	return l
}
