// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package cache

import (
	"container/list"
	"fmt"
)

// LRU is a capacity-bounded cache that evicts the least recently used key
// on overflow.
//
// The map gives O(1) key lookup and the doubly-linked list maintains recency
// order: Front = most recently used, Back = least recently used. Every key in
// the index has exactly one node in the list and vice versa.
type LRU[K comparable, V any] struct {
	capacity int
	index    map[K]*list.Element
	order    *list.List
}

var _ Policy[string, string] = (*LRU[string, string])(nil)

// lruEntry is the value stored in the list elements. The key lives here too
// because eviction starts from the list node.
type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRU constructs an LRU cache. capacity must be positive.
func NewLRU[K comparable, V any](capacity int) (*LRU[K, V], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("lru: capacity must be positive, got %d", capacity)
	}
	return &LRU[K, V]{
		capacity: capacity,
		index:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}, nil
}

// Get returns the value for key and promotes it to most recently used.
// A miss returns the zero value and false.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	el, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry[K, V]).value, true
}

// Put stores key/value. An existing key is overwritten and promoted. A new
// key evicts the least recently used entry first if the cache is full, so
// capacity is never exceeded.
func (c *LRU[K, V]) Put(key K, value V) {
	if el, ok := c.index[key]; ok {
		el.Value.(*lruEntry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}

	if len(c.index) == c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.unlink(oldest)
		}
	}

	c.index[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
}

// Remove deletes key if present. Removing an absent key is a no-op.
func (c *LRU[K, V]) Remove(key K) {
	if el, ok := c.index[key]; ok {
		c.unlink(el)
	}
}

// Peek returns the value for key without refreshing its recency.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	el, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return el.Value.(*lruEntry[K, V]).value, true
}

// Contains reports whether key is cached, without refreshing its recency.
func (c *LRU[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return len(c.index)
}

// Keys returns keys in MRU -> LRU order. Debug/report helper, O(n).
func (c *LRU[K, V]) Keys() []K {
	out := make([]K, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*lruEntry[K, V]).key)
	}
	return out
}

func (c *LRU[K, V]) unlink(el *list.Element) {
	e := c.order.Remove(el).(*lruEntry[K, V])
	delete(c.index, e.key)
}
