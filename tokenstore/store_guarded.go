package tokenstore

import (
	"sync"

	"go.uber.org/zap"
)

// Guarded is the concurrency wrapper of §4.4/§5: a single mutex serializes
// every Store-touching operation. Reader methods copy their result into a
// freshly allocated slice before releasing the lock, so callers iterate a
// frozen image rather than a live view. Readers may in principle run
// concurrently with each other, but this implementation takes the
// specification's baseline option and serializes everyone behind one
// mutex rather than a read-write lock, trading potential read parallelism
// for a trivially-correct linearization point.
type Guarded[V any] struct {
	mu      sync.Mutex
	store   *Store[V]
	mutator *Mutator[V]
	reader  *Reader[V]
}

// NewGuarded constructs a Guarded store for value type V, using equal for
// StageModify's value-collision check.
func NewGuarded[V any](equal func(a, b V) bool) *Guarded[V] {
	store := NewStore[V](equal)
	return &Guarded[V]{
		store:   store,
		mutator: NewMutator[V](store),
		reader:  NewReader[V](store),
	}
}

// Seed seeds hash with value under the lock.
func (g *Guarded[V]) Seed(hash Hash, value V) OpResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mutator.Seed(hash, value)
}

// SeedBatch seeds every pair under one lock acquisition.
func (g *Guarded[V]) SeedBatch(hashes []Hash, values []V) []OpResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mutator.SeedBatch(hashes, values)
}

// Stage stages old->new with value under the lock.
func (g *Guarded[V]) Stage(old, newHash *Hash, value V) OpResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mutator.Stage(old, newHash, value)
}

// Commit commits all staged changes under the lock.
func (g *Guarded[V]) Commit() {
	g.mu.Lock()
	defer g.mu.Unlock()
	before := len(g.store.allStaged())
	g.mutator.Commit()
	logger.Debug("tokenstore commit", zap.Int("staged", before), zap.Int("pool_size", len(g.store.pool)))
}

// Discard clears staging under the lock.
func (g *Guarded[V]) Discard() {
	g.mu.Lock()
	defer g.mu.Unlock()
	before := len(g.store.allStaged())
	g.mutator.Discard()
	logger.Debug("tokenstore discard", zap.Int("staged_discarded", before))
}

// TryGetSnapshot returns the committed point snapshot for hash.
func (g *Guarded[V]) TryGetSnapshot(hash Hash) (Snapshot[V], bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reader.TryGetSnapshot(hash)
}

// GetCommittedDiff returns a frozen copy of the last commit's diff.
func (g *Guarded[V]) GetCommittedDiff() []Diff[V] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reader.GetCommittedDiff()
}

// GetUncommittedDiff returns a frozen copy of the current staged diff.
func (g *Guarded[V]) GetUncommittedDiff() []Diff[V] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reader.GetUncommittedDiff()
}

// GetFullDiff returns a frozen copy of the initial->current diff for every
// token.
func (g *Guarded[V]) GetFullDiff() []Diff[V] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reader.GetFullDiff()
}

// GetFullCurrentSnapshot returns a frozen copy of the uncommitted-aware
// snapshot for every token.
func (g *Guarded[V]) GetFullCurrentSnapshot() []Snapshot[V] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reader.GetFullCurrentSnapshot()
}

// Stats is a read-only, lock-protected snapshot of store size used for
// introspection and by tests asserting Prune's effect.
type Stats struct {
	Tokens  int
	Staged  int
	PoolLen int
}

// Stats reports token count (deleted tokens included, since they are
// retained), staged count, and pool size.
func (g *Guarded[V]) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Stats{
		Tokens:  len(g.store.states),
		Staged:  len(g.store.staging),
		PoolLen: len(g.store.pool),
	}
}
