package hashfacade

import "github.com/ledgerwatch/tokenstore/tokenstore"

// Snapshot mirrors tokenstore.Snapshot with string hashes, per §6's
// Snapshot fields.
type Snapshot struct {
	InitialHash  string
	PreviousHash string
	CurrentHash  string

	InitialValue  Value
	PreviousValue Value
	CurrentValue  Value
}

// Diff mirrors tokenstore.Diff with string hashes, per §6's Diff fields.
type Diff struct {
	LeftHash  string
	RightHash string

	LeftValue  Value
	RightValue Value
}

// Store is the default façade: the Mutator and Reader façades of §6,
// instantiated with string hashes and nullable-string values over a
// tokenstore.Guarded core.
type Store struct {
	core *tokenstore.Guarded[Value]
}

// New constructs an empty Store.
func New() *Store {
	return &Store{core: tokenstore.NewGuarded[Value](StringEqual)}
}

// Seed implements the Mutator façade's seed(hash_string, value).
func (s *Store) Seed(hashString string, value Value) tokenstore.OpResult {
	hash, ok := ParseHash(hashString)
	if !ok || hash == nil {
		return tokenstore.InvalidInput
	}
	return s.core.Seed(*hash, value)
}

// Stage implements the Mutator façade's
// stage(old_hash_string, new_hash_string, value).
func (s *Store) Stage(oldHashString, newHashString string, value Value) tokenstore.OpResult {
	old, ok := ParseHash(oldHashString)
	if !ok {
		return tokenstore.InvalidInput
	}
	newHash, ok := ParseHash(newHashString)
	if !ok {
		return tokenstore.InvalidInput
	}
	return s.core.Stage(old, newHash, value)
}

// Commit implements the Mutator façade's commit().
func (s *Store) Commit() { s.core.Commit() }

// Discard implements the Mutator façade's discard().
func (s *Store) Discard() { s.core.Discard() }

// TryGetSnapshot implements the Reader façade's try_get_snapshot(hash_string).
func (s *Store) TryGetSnapshot(hashString string) (Snapshot, bool) {
	hash, ok := ParseHash(hashString)
	if !ok || hash == nil {
		return Snapshot{}, false
	}
	snap, found := s.core.TryGetSnapshot(*hash)
	if !found {
		return Snapshot{}, false
	}
	return toFacadeSnapshot(snap), true
}

// GetCommittedDiff implements the Reader façade's get_committed_diff().
func (s *Store) GetCommittedDiff() []Diff {
	return toFacadeDiffs(s.core.GetCommittedDiff())
}

// GetUncommittedDiff implements the Reader façade's get_uncommitted_diff().
func (s *Store) GetUncommittedDiff() []Diff {
	return toFacadeDiffs(s.core.GetUncommittedDiff())
}

// GetFullDiff implements the Reader façade's get_full_diff().
func (s *Store) GetFullDiff() []Diff {
	return toFacadeDiffs(s.core.GetFullDiff())
}

// GetFullCurrentSnapshot implements the Reader façade's
// get_full_current_snapshot().
func (s *Store) GetFullCurrentSnapshot() []Snapshot {
	in := s.core.GetFullCurrentSnapshot()
	out := make([]Snapshot, len(in))
	for i, snap := range in {
		out[i] = toFacadeSnapshot(snap)
	}
	return out
}

// Stats exposes the core's introspection counters.
func (s *Store) Stats() tokenstore.Stats { return s.core.Stats() }

func toFacadeSnapshot(snap tokenstore.Snapshot[Value]) Snapshot {
	return Snapshot{
		InitialHash:   FormatHash(snap.InitialHash),
		PreviousHash:  FormatHash(snap.PreviousHash),
		CurrentHash:   FormatHash(snap.CurrentHash),
		InitialValue:  snap.InitialValue,
		PreviousValue: snap.PreviousValue,
		CurrentValue:  snap.CurrentValue,
	}
}

func toFacadeDiffs(in []tokenstore.Diff[Value]) []Diff {
	out := make([]Diff, len(in))
	for i, d := range in {
		out[i] = Diff{
			LeftHash:   FormatHash(d.LeftHash),
			RightHash:  FormatHash(d.RightHash),
			LeftValue:  d.LeftValue,
			RightValue: d.RightValue,
		}
	}
	return out
}
