// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fsys

import (
	"fmt"

	"github.com/apex/log"

	"github.com/staranto/cachefsgo/internal/cache"
	"github.com/staranto/cachefsgo/internal/store"
)

// Source identifies where a read was satisfied.
type Source string

const (
	SourceCache Source = "cache"
	SourceStore Source = "store"
)

// Stats counts how the read path was served.
type Stats struct {
	Hits   int `json:"hits"`   // reads served from the front (LRU) cache
	Misses int `json:"misses"` // reads that fell through to the store
}

// Entry is one row of a listing: the stored file plus its cache residency.
type Entry struct {
	store.FileInfo
	InLRU bool `json:"in_lru"`
	InLFU bool `json:"in_lfu"`
	Freq  int  `json:"freq"` // LFU access count, 0 when not resident
}

// FileSystem fronts the authoritative store with two independent caches over
// the same keyspace, one per eviction policy. Reads probe the LRU cache
// first and fall through to the store; every read is also shown to the LFU
// cache so both policies observe the same access sequence. Writes and
// deletes go through to the store and keep both caches in sync. Eviction
// never touches the store.
type FileSystem struct {
	dir   *store.Directory
	lru   *cache.LRU[string, string]
	lfu   *cache.LFU[string, string]
	stats Stats
}

// New constructs a FileSystem over dir with both caches sized to cacheSize.
func New(dir *store.Directory, cacheSize int) (*FileSystem, error) {
	lru, err := cache.NewLRU[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build lru cache: %w", err)
	}
	lfu, err := cache.NewLFU[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build lfu cache: %w", err)
	}
	return &FileSystem{dir: dir, lru: lru, lfu: lfu}, nil
}

// Create allocates a new file in the store and write-throughs the content to
// both caches. Fails with store.ErrExists if the name is taken.
func (fs *FileSystem) Create(name, content string) error {
	if err := fs.dir.Create(name, content); err != nil {
		return err
	}
	fs.lru.Put(name, content)
	fs.lfu.Put(name, content)
	log.Debugf("created %s (%d bytes)", name, len(content))
	return nil
}

// Read returns the content of name. A cache hit is served from the LRU
// cache and the access is replayed into the LFU cache; a miss reads the
// store and populates both caches. Fails with store.ErrNotFound if the file
// does not exist anywhere.
func (fs *FileSystem) Read(name string) (string, Source, error) {
	if content, ok := fs.lru.Get(name); ok {
		fs.stats.Hits++
		// Keep the LFU view of the access sequence in lockstep.
		if _, ok := fs.lfu.Get(name); !ok {
			fs.lfu.Put(name, content)
		}
		log.Debugf("cache hit: %s", name)
		return content, SourceCache, nil
	}

	content, err := fs.dir.Read(name)
	if err != nil {
		return "", SourceStore, err
	}

	fs.stats.Misses++
	fs.lru.Put(name, content)
	fs.lfu.Put(name, content)
	log.Debugf("cache miss, read through: %s", name)
	return content, SourceStore, nil
}

// Write replaces the content of an existing file and write-throughs the new
// content to both caches. Fails with store.ErrNotFound; a failed write
// leaves the caches untouched.
func (fs *FileSystem) Write(name, content string) error {
	if err := fs.dir.Write(name, content); err != nil {
		return err
	}
	fs.lru.Put(name, content)
	fs.lfu.Put(name, content)
	log.Debugf("wrote %s (%d bytes)", name, len(content))
	return nil
}

// Delete removes the file from the store and invalidates it in both caches.
func (fs *FileSystem) Delete(name string) error {
	if err := fs.dir.Delete(name); err != nil {
		return err
	}
	fs.lru.Remove(name)
	fs.lfu.Remove(name)
	log.Debugf("deleted %s", name)
	return nil
}

// List returns the store listing annotated with cache residency. The probes
// are non-perturbing: listing never reorders or recounts either cache.
func (fs *FileSystem) List() []Entry {
	infos := fs.dir.List()
	out := make([]Entry, 0, len(infos))
	for _, fi := range infos {
		e := Entry{FileInfo: fi}
		e.InLRU = fs.lru.Contains(fi.Name)
		if f, ok := fs.lfu.Freq(fi.Name); ok {
			e.InLFU = true
			e.Freq = f
		}
		out = append(out, e)
	}
	return out
}

// Stats returns the read-path counters.
func (fs *FileSystem) Stats() Stats {
	return fs.stats
}

// LRU exposes the recency cache for reporting.
func (fs *FileSystem) LRU() *cache.LRU[string, string] {
	return fs.lru
}

// LFU exposes the frequency cache for reporting.
func (fs *FileSystem) LFU() *cache.LFU[string, string] {
	return fs.lfu
}
