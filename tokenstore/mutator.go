package tokenstore

// Mutator implements Seed, Stage, Commit, Discard and Prune over a Store,
// enforcing the invariants of §3 and producing the committed-change
// records Commit appends to the log. Mutator is not itself safe for
// concurrent use — see store_guarded.go.
type Mutator[V any] struct {
	store *Store[V]
}

// NewMutator wraps store for mutation.
func NewMutator[V any](store *Store[V]) *Mutator[V] {
	return &Mutator[V]{store: store}
}

// Seed creates a committed-alive token directly: identity, hash and value
// state = (hash, hash, hash). Fails DuplicateHash if hash is already
// mapped.
func (m *Mutator[V]) Seed(hash Hash, value V) OpResult {
	if _, ok := m.store.lookupHash(hash); ok {
		return DuplicateHash
	}
	id := newIdentity()
	m.store.mapHash(hash, id)
	m.store.setPoolValue(hash, value)
	m.store.setSanctuaryValue(id, value)
	m.store.setState(id, tokenState{Initial: hashPtr(hash), Previous: hashPtr(hash), Current: hashPtr(hash)})
	return Success
}

// Stage dispatches to StageInsert/StageModify/StageDelete based on which of
// old/new are present, per §4.2.
func (m *Mutator[V]) Stage(old, newHash *Hash, value V) OpResult {
	switch {
	case old == nil && newHash == nil:
		return InvalidInput
	case old != nil && newHash == nil:
		return m.stageDelete(*old)
	case old == nil && newHash != nil:
		return m.stageInsert(*newHash, value)
	default:
		return m.stageModify(*old, *newHash, value)
	}
}

func (m *Mutator[V]) stageDelete(old Hash) OpResult {
	id, ok := m.store.lookupHash(old)
	if !ok {
		return UnknownHash
	}
	if m.store.isStaged(id) {
		return AlreadyStaged
	}
	m.store.stage(id, nil)
	return Success
}

func (m *Mutator[V]) stageInsert(newHash Hash, value V) OpResult {
	if _, ok := m.store.lookupHash(newHash); ok {
		return DuplicateHash
	}
	id := newIdentity()
	m.store.mapHash(newHash, id)
	m.store.setPoolValue(newHash, value)
	m.store.setSanctuaryValue(id, value)
	m.store.setState(id, tokenState{})
	m.store.stage(id, hashPtr(newHash))
	m.store.recordUndo(id, stagingUndo{isInsert: true})
	return Success
}

func (m *Mutator[V]) stageModify(old, newHash Hash, value V) OpResult {
	id, ok := m.store.lookupHash(old)
	if !ok {
		return UnknownHash
	}
	otherID, alreadyMapped := m.store.lookupHash(newHash)
	if alreadyMapped && otherID != id {
		return Collision
	}
	if m.store.isStaged(id) {
		return AlreadyStaged
	}
	if existing, ok := m.store.getPoolValue(newHash); ok && !m.store.equal(existing, value) {
		return Collision
	}
	m.store.mapHash(newHash, id)
	m.store.setPoolValue(newHash, value)
	m.store.stage(id, hashPtr(newHash))

	// alreadyMapped (to this same identity) means newHash was already its
	// committed current hash before this call — the mapping predates
	// staging, so Discard must not touch it. Otherwise this call installed
	// the mapping, and Discard must unwind it.
	if alreadyMapped {
		m.store.recordUndo(id, stagingUndo{})
	} else {
		m.store.recordUndo(id, stagingUndo{mappedHash: hashPtr(newHash)})
	}
	return Success
}

// SeedBatch seeds every (hash, value) pair in order, returning one result
// per pair. It is a convenience wrapper, not an atomic unit — a
// DuplicateHash on one pair does not roll back the pairs already seeded.
func (m *Mutator[V]) SeedBatch(hashes []Hash, values []V) []OpResult {
	n := len(hashes)
	if len(values) < n {
		n = len(values)
	}
	results := make([]OpResult, n)
	for i := 0; i < n; i++ {
		results[i] = m.Seed(hashes[i], values[i])
	}
	return results
}

// Commit applies every staged change: clears and refills the
// committed-change log, advances (previous, current) for each staged
// identity, updates the hash→identity index, clears staging, and prunes
// the pool. Ordering across identities is unobservable — no two
// identities share a live hash.
func (m *Mutator[V]) Commit() {
	m.store.clearChangeLog()
	for _, it := range m.store.allStaged() {
		state, ok := m.store.getState(it.Identity)
		if !ok {
			continue // cannot happen under the invariants of §3
		}
		target := it.Target
		m.store.appendChange(changeRecord{Identity: it.Identity, Left: state.Current, Right: target})

		if state.Current != nil && !hashEqual(state.Current, target) {
			m.store.unmapHash(*state.Current)
		}
		m.store.setState(it.Identity, tokenState{
			Initial:  state.Initial,
			Previous: state.Current,
			Current:  target,
		})
		if target != nil {
			m.store.mapHash(*target, it.Identity)
		}
	}
	m.store.clearStaging()
	m.Prune()
}

// Discard unwinds every staged change without transitioning any committed
// state: a staged insert's phantom identity is deleted outright, a staged
// modify's eagerly-installed hash mapping is removed (unless that mapping
// predated the staged change), and a staged delete leaves no mapping to
// unwind. Only then does it clear the staging map and prune the pool —
// Discard must be a left inverse of Stage (§8), and §3 invariant 1 forbids
// any hash mapping to an identity that isn't its current, committed owner.
func (m *Mutator[V]) Discard() {
	for _, it := range m.store.allStaged() {
		undo := m.store.undoFor(it.Identity)
		switch {
		case undo.isInsert:
			m.store.deletePhantomIdentity(it.Identity, *it.Target)
		case undo.mappedHash != nil:
			m.store.unmapHash(*undo.mappedHash)
		}
	}
	m.store.clearStaging()
	m.Prune()
}

// Prune removes every pool entry whose hash is not referenced by a
// committed state slot or a pending staged target.
func (m *Mutator[V]) Prune() {
	m.store.prune(m.store.liveHashes())
}
