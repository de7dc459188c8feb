// Package listcache tracks a monotonic version per list collection.
// Mutation handlers bump the collection's version after committing; list
// responses carry it so a client can tell a cached page has gone stale.
package listcache

import "sync"

type Versions struct {
	mu sync.Mutex
	m  map[string]uint64
}

func New() *Versions {
	return &Versions{m: make(map[string]uint64)}
}

// Bump marks every cached view of the collection stale and returns the new
// version.
func (v *Versions) Bump(collection string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.m[collection]++
	return v.m[collection]
}

// Current returns the collection's version; zero for a never-mutated one.
func (v *Versions) Current(collection string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.m[collection]
}
