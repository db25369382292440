// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store guards a tree.Tree with a single lock and speeds up lookups
// with a bloom filter for absent keys and a short-lived cache for recent hits.
package store

import (
	"sync"
	"time"

	"github.com/cybrota/bidtree/tree"
	"github.com/patrickmn/go-cache"
	"github.com/willf/bloom"
)

const (
	DefaultBloomSize   uint = 1 << 16
	DefaultBloomHashes uint = 5
	DefaultCacheTTL         = 30 * time.Minute
	cacheCleanup            = 5 * time.Minute
)

// Config sizes the filter and cache of a Store.
type Config struct {
	Duplicates  tree.DuplicatePolicy
	BloomSize   uint
	BloomHashes uint
	CacheTTL    time.Duration
}

func (c Config) withDefaults() Config {
	if c.BloomSize == 0 {
		c.BloomSize = DefaultBloomSize
	}
	if c.BloomHashes == 0 {
		c.BloomHashes = DefaultBloomHashes
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	return c
}

// Store is safe for concurrent use. Every operation holds one mutex for its
// whole duration, since removal rewrites ancestor links.
type Store[R tree.Keyed] struct {
	mu     sync.Mutex
	cfg    Config
	tree   *tree.Tree[R]
	filter *bloom.BloomFilter
	hits   *cache.Cache

	filtered int // lookups answered by the filter alone
	cached   int // lookups answered by the cache
}

// Stats is a point-in-time summary of a Store.
type Stats struct {
	Records     int
	Height      int
	CachedItems int
	Filtered    int
	CacheHits   int
	Duplicates  tree.DuplicatePolicy
}

func New[R tree.Keyed](cfg Config) *Store[R] {
	cfg = cfg.withDefaults()
	return &Store[R]{
		cfg:    cfg,
		tree:   tree.New[R](tree.WithDuplicates(cfg.Duplicates)),
		filter: bloom.New(cfg.BloomSize, cfg.BloomHashes),
		hits:   cache.New(cfg.CacheTTL, cacheCleanup),
	}
}

// Insert adds r; see tree.Tree.Insert for duplicate handling.
func (s *Store[R]) Insert(r R) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tree.Insert(r); err != nil {
		return err
	}
	s.filter.AddString(r.Key())
	s.hits.Delete(r.Key())
	return nil
}

// Search looks key up. The filter only ever short-circuits to "absent"; a
// positive answer always comes from the tree or from a cached tree answer.
func (s *Store[R]) Search(key string) (R, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.filter.TestString(key) {
		s.filtered++
		var zero R
		return zero, false
	}
	if v, ok := s.hits.Get(key); ok {
		s.cached++
		return v.(R), true
	}
	r, ok := s.tree.Search(key)
	if ok {
		s.hits.Set(key, r, cache.DefaultExpiration)
	}
	return r, ok
}

// Remove deletes one record stored under key.
func (s *Store[R]) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.tree.Remove(key)
	if removed {
		s.hits.Delete(key)
	}
	return removed
}

// Records returns a snapshot of every record in the given order.
func (s *Store[R]) Records(order tree.Order) []R {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]R, 0, s.tree.Len())
	for r := range s.tree.All(order) {
		out = append(out, r)
	}
	return out
}

func (s *Store[R]) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.IsEmpty()
}

func (s *Store[R]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Len()
}

// Reset drops every record and starts over with a fresh filter and cache.
func (s *Store[R]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tree.Clear()
	s.filter.ClearAll()
	s.hits.Flush()
	s.filtered, s.cached = 0, 0
}

func (s *Store[R]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Records:     s.tree.Len(),
		Height:      s.tree.Height(),
		CachedItems: s.hits.ItemCount(),
		Filtered:    s.filtered,
		CacheHits:   s.cached,
		Duplicates:  s.tree.Policy(),
	}
}
