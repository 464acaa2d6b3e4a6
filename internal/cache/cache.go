// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package cache

// Policy is the operation surface shared by the eviction policies. Get is a
// use of the key (it reorders or recounts); Peek and Contains are not.
type Policy[K comparable, V any] interface {
	Get(key K) (V, bool)
	Put(key K, value V)
	Remove(key K)
	Peek(key K) (V, bool)
	Contains(key K) bool
	Len() int
	Keys() []K
}
