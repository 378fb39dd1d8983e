// Copyright 2025 Contriboss
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

package settree

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// OSLister reads directories from the local filesystem.
type OSLister struct{}

// ListDirectory returns the names of the entries directly inside path.
func (OSLister) ListDirectory(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

// IsDirectory reports whether path is an existing directory.
func (OSLister) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// MemoryLister serves fixed directory listings. It is the simplest lister
// and is useful for tests, examples and prototyping.
//
// Example:
//
//	lister := &MemoryLister{}
//	lister.AddDirectory("/music", "a.flac", "b.flac")
//	tree := New(WithLister(lister))
type MemoryLister struct {
	Directories map[string][]string
}

// ListDirectory returns the entries registered for path.
func (m *MemoryLister) ListDirectory(path string) ([]string, error) {
	entries, ok := m.Directories[filepath.Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: fs.ErrNotExist}
	}
	return slices.Clone(entries), nil
}

// IsDirectory reports whether path was registered.
func (m *MemoryLister) IsDirectory(path string) bool {
	_, ok := m.Directories[filepath.Clean(path)]
	return ok
}

// AddDirectory registers path with the given entries, replacing any
// earlier listing. The map is initialized on first use.
func (m *MemoryLister) AddDirectory(path string, entries ...string) {
	if m.Directories == nil {
		m.Directories = make(map[string][]string)
	}
	m.Directories[filepath.Clean(path)] = slices.Clone(entries)
}

// RemoveDirectory makes path unavailable.
func (m *MemoryLister) RemoveDirectory(path string) {
	delete(m.Directories, filepath.Clean(path))
}

// CachedLister wraps a DirLister and memoizes listings.
//
// A refresh sweep may reach the same directory more than once, for example
// when a directory set is rescanned and then validated through resolution.
// The cache assumes listings do not change during one sweep; call
// ClearCache between sweeps.
type CachedLister struct {
	lister DirLister

	listings   map[string]cachedListing
	listCalls  int
	listHits   int
	probeCalls int
	probes     map[string]bool
	probeHits  int
}

type cachedListing struct {
	entries []string
	err     error
}

// NewCachedLister creates a caching wrapper around lister.
func NewCachedLister(lister DirLister) *CachedLister {
	return &CachedLister{
		lister:   lister,
		listings: make(map[string]cachedListing),
		probes:   make(map[string]bool),
	}
}

// ListDirectory returns the entries of path, caching both listings and
// failures.
func (c *CachedLister) ListDirectory(path string) ([]string, error) {
	c.listCalls++
	key := filepath.Clean(path)
	if l, ok := c.listings[key]; ok {
		c.listHits++
		return slices.Clone(l.entries), l.err
	}
	entries, err := c.lister.ListDirectory(path)
	c.listings[key] = cachedListing{entries: slices.Clone(entries), err: err}
	return entries, err
}

// IsDirectory reports whether path is a directory, caching the answer.
func (c *CachedLister) IsDirectory(path string) bool {
	c.probeCalls++
	key := filepath.Clean(path)
	if ok, cached := c.probes[key]; cached {
		c.probeHits++
		return ok
	}
	ok := c.lister.IsDirectory(path)
	c.probes[key] = ok
	return ok
}

// CacheStats reports cache performance.
type CacheStats struct {
	ListCalls   int
	ListHits    int
	ListHitRate float64

	ProbeCalls   int
	ProbeHits    int
	ProbeHitRate float64
}

// String summarizes the stats for logs.
func (s CacheStats) String() string {
	return fmt.Sprintf("listings %d/%d hits, probes %d/%d hits", s.ListHits, s.ListCalls, s.ProbeHits, s.ProbeCalls)
}

// GetCacheStats returns cache performance statistics.
func (c *CachedLister) GetCacheStats() CacheStats {
	stats := CacheStats{
		ListCalls:  c.listCalls,
		ListHits:   c.listHits,
		ProbeCalls: c.probeCalls,
		ProbeHits:  c.probeHits,
	}
	if stats.ListCalls > 0 {
		stats.ListHitRate = float64(stats.ListHits) / float64(stats.ListCalls)
	}
	if stats.ProbeCalls > 0 {
		stats.ProbeHitRate = float64(stats.ProbeHits) / float64(stats.ProbeCalls)
	}
	return stats
}

// ClearCache drops every cached listing and resets the counters.
func (c *CachedLister) ClearCache() {
	c.listings = make(map[string]cachedListing)
	c.probes = make(map[string]bool)
	c.listCalls, c.listHits = 0, 0
	c.probeCalls, c.probeHits = 0, 0
}

var (
	_ DirLister = OSLister{}
	_ DirLister = &MemoryLister{}
	_ DirLister = &CachedLister{}
)
