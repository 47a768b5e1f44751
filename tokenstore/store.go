package tokenstore

import "github.com/ledgerwatch/tokenstore/tokenstore/livehash"

// Store owns the raw maps backing the token state machine: identity state,
// the hash→identity renaming index, the value pool, the initial-value
// sanctuary, the staging map, and the committed-change log.
//
// Store is a pure container: every method here implements §4.1 exactly as
// written and performs no validation of §3's invariants — that is the
// Mutator's job. Store itself is not safe for concurrent use; the
// concurrency wrapper in store_guarded.go is what serializes access.
type Store[V any] struct {
	equal func(a, b V) bool

	states         map[Identity]tokenState
	hashToIdentity map[Hash]Identity
	pool           map[Hash]V
	sanctuary      map[Identity]V
	staging        map[Identity]*Hash
	stagingUndo    map[Identity]stagingUndo
	changeLog      []changeRecord
}

// stagingUndo records what a staged change installed eagerly, so Discard
// can unwind it instead of just dropping the staging entry. Without this,
// the hash→identity mapping (and, for a staged insert, the phantom
// identity itself) installed at Stage time would survive a Discard.
type stagingUndo struct {
	// isInsert marks a staged insert: Discard must delete the phantom
	// identity entirely, not just forget it was staged.
	isInsert bool
	// mappedHash is the hash a staged modify newly mapped to this identity,
	// if any. nil when the hash was already mapped to this identity before
	// staging (a no-op modify onto an already-owned hash), in which case
	// Discard must leave the mapping alone.
	mappedHash *Hash
}

// NewStore constructs an empty Store parameterized over value type V. equal
// must implement value-type equality for StageModify's collision check
// (§4.2); the default string façade supplies byte-exact *string equality.
func NewStore[V any](equal func(a, b V) bool) *Store[V] {
	return &Store[V]{
		equal:          equal,
		states:         make(map[Identity]tokenState),
		hashToIdentity: make(map[Hash]Identity),
		pool:           make(map[Hash]V),
		sanctuary:      make(map[Identity]V),
		staging:        make(map[Identity]*Hash),
		stagingUndo:    make(map[Identity]stagingUndo),
	}
}

func (s *Store[V]) getState(id Identity) (tokenState, bool) {
	st, ok := s.states[id]
	return st, ok
}

func (s *Store[V]) setState(id Identity, st tokenState) {
	s.states[id] = st
}

type identityState struct {
	Identity Identity
	State    tokenState
}

// allStates enumerates every (identity, state) pair, identity-sorted.
func (s *Store[V]) allStates() []identityState {
	ids := make([]Identity, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	sortedIdentities(ids)
	out := make([]identityState, 0, len(ids))
	for _, id := range ids {
		out = append(out, identityState{Identity: id, State: s.states[id]})
	}
	return out
}

func (s *Store[V]) lookupHash(h Hash) (Identity, bool) {
	id, ok := s.hashToIdentity[h]
	return id, ok
}

func (s *Store[V]) mapHash(h Hash, id Identity) {
	s.hashToIdentity[h] = id
}

func (s *Store[V]) unmapHash(h Hash) {
	delete(s.hashToIdentity, h)
}

func (s *Store[V]) getPoolValue(h Hash) (V, bool) {
	v, ok := s.pool[h]
	return v, ok
}

func (s *Store[V]) setPoolValue(h Hash, v V) {
	s.pool[h] = v
}

func (s *Store[V]) getSanctuaryValue(id Identity) (V, bool) {
	v, ok := s.sanctuary[id]
	return v, ok
}

// setSanctuaryValue writes the identity's permanent initial value. Callers
// must only call this once per identity (at Seed or staged-Insert time) —
// invariant 4 of §3 requires the sanctuary to never mutate thereafter.
func (s *Store[V]) setSanctuaryValue(id Identity, v V) {
	s.sanctuary[id] = v
}

// stage records a pending change for id. target == nil stages a deletion
// (tombstone); a non-nil target stages an insert or modify.
func (s *Store[V]) stage(id Identity, target *Hash) {
	s.staging[id] = target
}

func (s *Store[V]) isStaged(id Identity) bool {
	_, ok := s.staging[id]
	return ok
}

func (s *Store[V]) stagedTarget(id Identity) (*Hash, bool) {
	t, ok := s.staging[id]
	return t, ok
}

// recordUndo attaches undo information to an identity's staged change. Only
// stageInsert and stageModify call this — a staged delete installs no new
// mapping, so it has nothing to unwind on Discard.
func (s *Store[V]) recordUndo(id Identity, undo stagingUndo) {
	s.stagingUndo[id] = undo
}

// undoFor returns the undo information for id's staged change, or the zero
// value (no-op revert) if none was recorded.
func (s *Store[V]) undoFor(id Identity) stagingUndo {
	return s.stagingUndo[id]
}

func (s *Store[V]) clearStaging() {
	s.staging = make(map[Identity]*Hash)
	s.stagingUndo = make(map[Identity]stagingUndo)
}

// deletePhantomIdentity removes an identity staged by stageInsert and never
// committed: its state, its sanctuary entry, and its hash mapping. Pool
// cleanup is left to the subsequent Prune pass.
func (s *Store[V]) deletePhantomIdentity(id Identity, hash Hash) {
	delete(s.states, id)
	delete(s.sanctuary, id)
	s.unmapHash(hash)
}

type identityTarget struct {
	Identity Identity
	Target   *Hash
}

// allStaged enumerates every pending staged change, identity-sorted.
func (s *Store[V]) allStaged() []identityTarget {
	ids := make([]Identity, 0, len(s.staging))
	for id := range s.staging {
		ids = append(ids, id)
	}
	sortedIdentities(ids)
	out := make([]identityTarget, 0, len(ids))
	for _, id := range ids {
		out = append(out, identityTarget{Identity: id, Target: s.staging[id]})
	}
	return out
}

func (s *Store[V]) appendChange(rec changeRecord) {
	s.changeLog = append(s.changeLog, rec)
}

func (s *Store[V]) clearChangeLog() {
	s.changeLog = nil
}

// changeLogEntries returns a copy of the committed-change log in commit
// order.
func (s *Store[V]) changeLogEntries() []changeRecord {
	out := make([]changeRecord, len(s.changeLog))
	copy(out, s.changeLog)
	return out
}

// liveHashes computes the union of every Some state slot and every Some
// staged target, as §4.2 Prune specifies.
func (s *Store[V]) liveHashes() *livehash.Set {
	live := livehash.New()
	for _, st := range s.states {
		if st.Initial != nil {
			live.Add(*st.Initial)
		}
		if st.Previous != nil {
			live.Add(*st.Previous)
		}
		if st.Current != nil {
			live.Add(*st.Current)
		}
	}
	for _, target := range s.staging {
		if target != nil {
			live.Add(*target)
		}
	}
	return live
}

// prune removes every pool entry whose hash is not in live. The sanctuary
// and identity map are untouched, per §4.2.
func (s *Store[V]) prune(live *livehash.Set) {
	for h := range s.pool {
		if !live.Contains(h) {
			delete(s.pool, h)
		}
	}
}
