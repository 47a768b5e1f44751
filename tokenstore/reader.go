package tokenstore

// Reader derives the point and bulk snapshot views, and the three diff
// views, from Store state. Every method here is read-only and pure; it
// never mutates the Store and never fails.
type Reader[V any] struct {
	store *Store[V]
}

// NewReader wraps store for reading.
func NewReader[V any](store *Store[V]) *Reader[V] {
	return &Reader[V]{store: store}
}

func (r *Reader[V]) valueAt(h *Hash) V {
	var zero V
	if h == nil {
		return zero
	}
	v, ok := r.store.getPoolValue(*h)
	if !ok {
		return zero
	}
	return v
}

// sanctuaryOrPool returns the sanctuary value for id when h equals the
// identity's initial hash, else the pool value at h. This is the
// "left_value"/"current_value" rule shared by GetCommittedDiff,
// GetUncommittedDiff and GetFullDiff.
func (r *Reader[V]) sanctuaryOrPool(id Identity, h, initial *Hash) V {
	if hashEqual(h, initial) {
		if v, ok := r.store.getSanctuaryValue(id); ok {
			return v
		}
	}
	return r.valueAt(h)
}

// TryGetSnapshot reports the committed image of the token currently named
// by hash. A pending staged deletion hides the token entirely, even
// though the committed state is technically untouched — this asymmetry
// with GetFullCurrentSnapshot is specified, not a bug.
func (r *Reader[V]) TryGetSnapshot(hash Hash) (Snapshot[V], bool) {
	var zero Snapshot[V]
	id, ok := r.store.lookupHash(hash)
	if !ok {
		return zero, false
	}
	if target, staged := r.store.stagedTarget(id); staged && target == nil {
		return zero, false
	}
	state, ok := r.store.getState(id)
	if !ok || state.Current == nil {
		return zero, false
	}
	initialValue, _ := r.store.getSanctuaryValue(id)
	return Snapshot[V]{
		InitialHash:   state.Initial,
		PreviousHash:  state.Previous,
		CurrentHash:   state.Current,
		InitialValue:  initialValue,
		PreviousValue: r.valueAt(state.Previous),
		CurrentValue:  r.valueAt(state.Current),
	}, true
}

// GetCommittedDiff replays the most recent Commit's change log into
// left/right hash and value pairs, skipping no-op entries.
func (r *Reader[V]) GetCommittedDiff() []Diff[V] {
	var out []Diff[V]
	for _, rec := range r.store.changeLogEntries() {
		if hashEqual(rec.Left, rec.Right) {
			continue
		}
		state, _ := r.store.getState(rec.Identity)
		out = append(out, Diff[V]{
			LeftHash:   rec.Left,
			RightHash:  rec.Right,
			LeftValue:  r.sanctuaryOrPool(rec.Identity, rec.Left, state.Initial),
			RightValue: r.valueAt(rec.Right),
		})
	}
	return out
}

// GetUncommittedDiff emits one Diff per identity whose staged target
// differs from its committed current hash.
func (r *Reader[V]) GetUncommittedDiff() []Diff[V] {
	var out []Diff[V]
	for _, it := range r.store.allStaged() {
		state, ok := r.store.getState(it.Identity)
		if !ok {
			continue
		}
		if hashEqual(state.Current, it.Target) {
			continue
		}
		out = append(out, Diff[V]{
			LeftHash:   state.Current,
			RightHash:  it.Target,
			LeftValue:  r.sanctuaryOrPool(it.Identity, state.Current, state.Initial),
			RightValue: r.valueAt(it.Target),
		})
	}
	return out
}

// GetFullDiff emits the net initial→current change for every identity,
// ignoring intermediate commits. Deleted tokens (initial Some, current
// None) still contribute an (initial → None) diff; tokens that were
// inserted and then deleted before ever being observed (initial None,
// current None) contribute nothing — the resolution to the Open Question
// of §9.
func (r *Reader[V]) GetFullDiff() []Diff[V] {
	var out []Diff[V]
	for _, is := range r.store.allStates() {
		state := is.State
		switch {
		case state.Initial != nil && !hashEqual(state.Initial, state.Current):
			out = append(out, Diff[V]{
				LeftHash:   state.Initial,
				RightHash:  state.Current,
				LeftValue:  r.sanctuaryOrPool(is.Identity, state.Initial, state.Initial),
				RightValue: r.valueAt(state.Current),
			})
		case state.Initial == nil && state.Current != nil:
			out = append(out, Diff[V]{
				LeftHash:   nil,
				RightHash:  state.Current,
				RightValue: r.valueAt(state.Current),
			})
		}
	}
	return out
}

// GetFullCurrentSnapshot emits one Snapshot per identity reflecting the
// uncommitted image: a pending staged change moves current to the
// staged target and previous to the committed current, "previewing" the
// commit that hasn't happened yet. Unstaged identities report their
// committed triple as-is, including deleted tokens (current hash and
// value both nil/zero).
func (r *Reader[V]) GetFullCurrentSnapshot() []Snapshot[V] {
	var out []Snapshot[V]
	for _, is := range r.store.allStates() {
		state := is.State
		initialValue, _ := r.store.getSanctuaryValue(is.Identity)

		snap := Snapshot[V]{
			InitialHash:  state.Initial,
			InitialValue: initialValue,
		}
		if target, staged := r.store.stagedTarget(is.Identity); staged {
			snap.PreviousHash = state.Current
			snap.PreviousValue = r.valueAt(state.Current)
			snap.CurrentHash = target
			snap.CurrentValue = r.valueAt(target)
		} else {
			snap.PreviousHash = state.Previous
			snap.PreviousValue = r.valueAt(state.Previous)
			snap.CurrentHash = state.Current
			snap.CurrentValue = r.valueAt(state.Current)
		}
		out = append(out, snap)
	}
	return out
}
