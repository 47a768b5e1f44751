package tokenstore

import "sort"

// Hash names a token at a point in time. A nil *Hash means "absent" —
// unassigned, tombstoned, or never seeded — everywhere this package uses it.
type Hash = int64

// OpResult is the closed result enum every mutating entry point returns.
// Reader operations never fail and so never produce one.
type OpResult int

const (
	Success OpResult = iota
	DuplicateHash
	UnknownHash
	Collision
	AlreadyStaged
	InvalidInput
)

func (r OpResult) String() string {
	switch r {
	case Success:
		return "Success"
	case DuplicateHash:
		return "DuplicateHash"
	case UnknownHash:
		return "UnknownHash"
	case Collision:
		return "Collision"
	case AlreadyStaged:
		return "AlreadyStaged"
	case InvalidInput:
		return "InvalidInput"
	default:
		return "Unknown"
	}
}

// tokenState is the per-identity (initial, previous, current) triple of
// §3. current == nil iff the token has been committed-deleted or is a
// staged insert not yet committed; initial == nil iff the token was
// inserted and never seeded.
type tokenState struct {
	Initial  *Hash
	Previous *Hash
	Current  *Hash
}

// changeRecord is one entry of the committed-change log: the pre- and
// post-commit `current` hash for one identity, as produced by the most
// recent Commit.
type changeRecord struct {
	Identity Identity
	Left     *Hash
	Right    *Hash
}

// Snapshot is the six-field point-in-time view of a single token.
type Snapshot[V any] struct {
	InitialHash  *Hash
	PreviousHash *Hash
	CurrentHash  *Hash

	InitialValue  V
	PreviousValue V
	CurrentValue  V
}

// Diff is a four-field transition between two hashes and their values.
type Diff[V any] struct {
	LeftHash  *Hash
	RightHash *Hash

	LeftValue  V
	RightValue V
}

func hashPtr(h Hash) *Hash {
	v := h
	return &v
}

func hashEqual(a, b *Hash) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// sortedIdentities returns ks sorted, so map-backed enumerations produce the
// stable sequences §4.1 requires without the Store needing an auxiliary
// ordered index.
func sortedIdentities(ks []Identity) []Identity {
	sort.Slice(ks, func(i, j int) bool { return ks[i] < ks[j] })
	return ks
}
