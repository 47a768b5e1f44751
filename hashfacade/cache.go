package hashfacade

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ledgerwatch/tokenstore/tokenstore"
)

// CachedStore fronts Store's TryGetSnapshot with a bounded read-through
// LRU cache, for callers that repeatedly look up the same hash strings
// between commits (the demo CLI's `snapshot` command run in a loop, for
// instance). The core Store itself stays an unbounded map per §4.1 — this
// cache is purely an optional façade-level convenience and never
// participates in the state machine's invariants.
type CachedStore struct {
	*Store
	cache *lru.Cache[string, Snapshot]
}

// NewCached wraps a fresh Store with an LRU cache of the given capacity.
func NewCached(capacity int) (*CachedStore, error) {
	cache, err := lru.New[string, Snapshot](capacity)
	if err != nil {
		return nil, err
	}
	return &CachedStore{Store: New(), cache: cache}, nil
}

// TryGetSnapshot serves from cache when possible, falling back to the
// underlying Store and populating the cache on a miss.
func (c *CachedStore) TryGetSnapshot(hashString string) (Snapshot, bool) {
	if snap, ok := c.cache.Get(hashString); ok {
		return snap, true
	}
	snap, ok := c.Store.TryGetSnapshot(hashString)
	if ok {
		c.cache.Add(hashString, snap)
	}
	return snap, ok
}

// Stage stages the underlying Store's change and invalidates the cache.
// A staged pending delete hides its hash from TryGetSnapshot (reader.go)
// well before Commit, so a cached hit from before the Stage call would
// otherwise go on serving a snapshot the store no longer reports.
func (c *CachedStore) Stage(oldHashString, newHashString string, value Value) tokenstore.OpResult {
	res := c.Store.Stage(oldHashString, newHashString, value)
	c.cache.Purge()
	return res
}

// Commit commits the underlying Store and invalidates the cache — every
// cached snapshot may now be stale.
func (c *CachedStore) Commit() {
	c.Store.Commit()
	c.cache.Purge()
}

// Discard discards the underlying Store's staged changes and invalidates
// the cache.
func (c *CachedStore) Discard() {
	c.Store.Discard()
	c.cache.Purge()
}
