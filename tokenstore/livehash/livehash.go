// Package livehash tracks the set of hashes a Prune pass must keep, backed
// by a 64-bit Roaring bitmap instead of a map[int64]struct{}. Commit and
// Discard run Prune on every call, so this set is built and thrown away
// once per mutation — a bitmap keeps that allocation cheap even for large
// token populations, the same role roaring bitmaps play for the changeset
// indexes elsewhere in this codebase's lineage.
package livehash

import "github.com/RoaringBitmap/roaring/v2/roaring64"

// Set is a mutable set of int64 hashes.
type Set struct {
	bitmap *roaring64.Bitmap
}

// New returns an empty Set.
func New() *Set {
	return &Set{bitmap: roaring64.New()}
}

// Add marks h live. A no-op if h is already in the set.
func (s *Set) Add(h int64) {
	s.bitmap.Add(encode(h))
}

// Contains reports whether h was previously Add-ed.
func (s *Set) Contains(h int64) bool {
	return s.bitmap.Contains(encode(h))
}

// Len reports the number of distinct hashes in the set.
func (s *Set) Len() int {
	return int(s.bitmap.GetCardinality())
}

// encode maps an int64 hash onto the uint64 domain roaring64 indexes.
// Two's-complement reinterpretation is a bijection over int64, so bitmap
// membership exactly matches int64 equality; no information is lost.
func encode(h int64) uint64 {
	return uint64(h)
}
