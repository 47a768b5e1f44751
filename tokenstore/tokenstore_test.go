package tokenstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func stringEqual(a, b string) bool { return a == b }

func newTestGuarded() *Guarded[string] {
	return NewGuarded[string](stringEqual)
}

func TestSeedThenModifyCommit(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Seed(1, "A"))

	require.Equal(t, Success, g.Stage(hashPtr(1), hashPtr(2), "B"))
	g.Commit()

	snap, ok := g.TryGetSnapshot(2)
	require.True(t, ok)
	require.Equal(t, int64(1), *snap.InitialHash)
	require.Equal(t, int64(1), *snap.PreviousHash)
	require.Equal(t, int64(2), *snap.CurrentHash)
	require.Equal(t, "A", snap.InitialValue)
	require.Equal(t, "A", snap.PreviousValue)
	require.Equal(t, "B", snap.CurrentValue)

	_, ok = g.TryGetSnapshot(1)
	require.False(t, ok)
}

func TestThreeStepChain(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Seed(1, "A"))
	require.Equal(t, Success, g.Stage(hashPtr(1), hashPtr(2), "B"))
	g.Commit()
	require.Equal(t, Success, g.Stage(hashPtr(2), hashPtr(3), "C"))
	g.Commit()

	snap, ok := g.TryGetSnapshot(3)
	require.True(t, ok)
	require.Equal(t, int64(1), *snap.InitialHash)
	require.Equal(t, int64(2), *snap.PreviousHash)
	require.Equal(t, int64(3), *snap.CurrentHash)
	require.Equal(t, "A", snap.InitialValue)
	require.Equal(t, "B", snap.PreviousValue)
	require.Equal(t, "C", snap.CurrentValue)
}

func TestDeleteThenReinsertSameHash(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Seed(1, "X"))
	require.Equal(t, Success, g.Stage(hashPtr(1), nil, ""))
	g.Commit()

	require.Equal(t, Success, g.Stage(nil, hashPtr(1), "Y"))
	g.Commit()

	snaps := g.GetFullCurrentSnapshot()
	require.Len(t, snaps, 2)

	var sawDeleted, sawInserted bool
	for _, s := range snaps {
		switch {
		case s.InitialHash != nil && s.CurrentHash == nil:
			sawDeleted = true
			require.Equal(t, int64(1), *s.InitialHash)
		case s.InitialHash == nil && s.CurrentHash != nil:
			sawInserted = true
			require.Equal(t, int64(1), *s.CurrentHash)
			require.Equal(t, "Y", s.CurrentValue)
		}
	}
	require.True(t, sawDeleted)
	require.True(t, sawInserted)
}

func TestModifyCollidesWithExistingHash(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Seed(1, "A"))
	require.Equal(t, Success, g.Seed(2, "B"))

	require.Equal(t, Collision, g.Stage(hashPtr(1), hashPtr(2), "A*"))

	snap, ok := g.TryGetSnapshot(1)
	require.True(t, ok)
	require.Equal(t, "A", snap.CurrentValue)
}

func TestDiscardRollsBack(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Seed(1, "A"))
	require.Equal(t, Success, g.Stage(hashPtr(1), hashPtr(2), "A*"))
	g.Discard()

	require.Empty(t, g.GetUncommittedDiff())
	snap, ok := g.TryGetSnapshot(1)
	require.True(t, ok)
	require.Equal(t, int64(1), *snap.CurrentHash)
}

func TestDiscardModifyFreesTheStagedHash(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Seed(1, "A"))
	require.Equal(t, Success, g.Stage(hashPtr(1), hashPtr(2), "A*"))
	g.Discard()

	// Hash 2 must be fully unmapped again: it was never committed, so
	// querying it must report nothing, and a fresh Seed must be free to
	// claim it rather than bouncing off a leftover mapping.
	_, ok := g.TryGetSnapshot(2)
	require.False(t, ok)
	require.Equal(t, Success, g.Seed(2, "fresh"))
}

func TestDiscardInsertDeletesThePhantomIdentity(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Stage(nil, hashPtr(5), "v"))
	g.Discard()

	_, ok := g.TryGetSnapshot(5)
	require.False(t, ok)
	require.Equal(t, Success, g.Seed(5, "fresh"))

	stats := g.Stats()
	require.Equal(t, 1, stats.Tokens) // only the fresh Seed(5, ...) above, no leftover phantom

	snaps := g.GetFullCurrentSnapshot()
	require.Len(t, snaps, 1)
	require.Equal(t, "fresh", snaps[0].CurrentValue)
}

func TestDiscardModifyOntoAlreadyOwnedHashKeepsMapping(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Seed(1, "A"))
	// new == old's already-committed hash: the mapping predates this Stage
	// call, so Discard must not unmap it out from under the live token.
	require.Equal(t, Success, g.Stage(hashPtr(1), hashPtr(1), "A"))
	g.Discard()

	snap, ok := g.TryGetSnapshot(1)
	require.True(t, ok)
	require.Equal(t, "A", snap.CurrentValue)
}

func TestMixedBatchCommittedDiff(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Seed(1, "one"))
	require.Equal(t, Success, g.Seed(2, "two"))
	require.Equal(t, Success, g.Seed(3, "three"))

	require.Equal(t, Success, g.Stage(hashPtr(1), hashPtr(11), "one"))
	require.Equal(t, Success, g.Stage(hashPtr(2), nil, ""))
	require.Equal(t, Success, g.Stage(nil, hashPtr(12), "twelve"))
	g.Commit()

	diffs := g.GetCommittedDiff()
	require.Len(t, diffs, 3)

	seen := map[string]bool{}
	for _, d := range diffs {
		key := hashKey(d.LeftHash) + "->" + hashKey(d.RightHash)
		seen[key] = true
	}
	require.True(t, seen["1->11"])
	require.True(t, seen["2->nil"])
	require.True(t, seen["nil->12"])
}

func hashKey(h *Hash) string {
	if h == nil {
		return "nil"
	}
	switch *h {
	case 1:
		return "1"
	case 2:
		return "2"
	case 11:
		return "11"
	case 12:
		return "12"
	default:
		return "?"
	}
}

func TestStageBoundaryBehaviors(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, InvalidInput, g.Stage(nil, nil, ""))

	require.Equal(t, Success, g.Seed(1, "A"))
	require.Equal(t, UnknownHash, g.Stage(hashPtr(99), hashPtr(2), "B"))

	require.Equal(t, Success, g.Stage(hashPtr(1), hashPtr(2), "A"))
	require.Equal(t, AlreadyStaged, g.Stage(hashPtr(1), hashPtr(3), "A"))
}

func TestStageModifyValueCollisionAfterDelete(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Seed(1, "A"))
	require.Equal(t, Success, g.Seed(2, "B"))
	require.Equal(t, Success, g.Stage(hashPtr(2), nil, ""))
	g.Commit()

	// Hash 2 is unmapped from its (now deleted) identity, but the pool
	// entry for it survives Prune: it's still "live" because the deleted
	// token's initial/previous slots still reference it (§4.2, §9). A
	// different identity may claim hash 2 for modify only if it supplies
	// the exact value already pooled there.
	require.Equal(t, Collision, g.Stage(hashPtr(1), hashPtr(2), "different"))
	require.Equal(t, Success, g.Stage(hashPtr(1), hashPtr(2), "B"))
}

func TestStageModifyCollisionWithDifferentIdentity(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Seed(1, "A"))
	require.Equal(t, Success, g.Seed(2, "A"))

	// Hash 2 still belongs to a live identity — Collision fires even
	// though the values match, since §7 says modify-to-a-claimed-hash is
	// a collision regardless of value equality.
	require.Equal(t, Collision, g.Stage(hashPtr(1), hashPtr(2), "A"))
}

func TestSeedDuplicateHash(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Seed(1, "A"))
	require.Equal(t, DuplicateHash, g.Seed(1, "A2"))
}

func TestCommitIdempotentWhenStagingEmpty(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Seed(1, "A"))
	g.Commit()
	first := g.GetCommittedDiff()
	g.Commit()
	second := g.GetCommittedDiff()

	require.Empty(t, first)
	require.Empty(t, second)
}

func TestPrunePoolAfterDiscard(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Seed(1, "A"))
	require.Equal(t, Success, g.Stage(hashPtr(1), hashPtr(2), "B"))

	statsBefore := g.Stats()
	require.Equal(t, 2, statsBefore.PoolLen) // hash 1 and staged hash 2

	g.Discard()

	statsAfter := g.Stats()
	require.Equal(t, 1, statsAfter.PoolLen) // only hash 1 remains live
}

func TestSeedHashReuseAfterDelete(t *testing.T) {
	g := newTestGuarded()
	require.Equal(t, Success, g.Seed(1, "v1"))
	require.Equal(t, Success, g.Stage(hashPtr(1), nil, ""))
	g.Commit()

	require.Equal(t, Success, g.Seed(1, "v2"))
}

func TestSeedBatch(t *testing.T) {
	g := newTestGuarded()
	results := g.SeedBatch([]Hash{1, 2, 1}, []string{"a", "b", "c"})
	require.Equal(t, []OpResult{Success, Success, DuplicateHash}, results)
}
