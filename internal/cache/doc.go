// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache provides the in-process key-value caches that front the file
// store: an LRU policy (map index + recency list) and an LFU policy (map
// index + frequency buckets + tracked minimum frequency). Both offer O(1)
// amortized Get/Put/Remove and report a miss as a normal comma-ok result,
// not an error.
//
// The caches are single-threaded by contract. A caller that needs concurrent
// access must serialize every operation on an instance behind one lock: the
// index and its ordering structure form a single critical section, and a
// partial update must never be observable.
package cache
