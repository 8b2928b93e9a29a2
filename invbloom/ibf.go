// Copyright 2024 The invbloom Authors
// This file is part of invbloom.
//
// invbloom is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// invbloom is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with invbloom. If not, see <http://www.gnu.org/licenses/>.

// Package invbloom implements Invertible Bloom data structures: IBF, a
// probabilistic set, and IBD, a probabilistic dictionary. Both behave like a
// classical Bloom filter for membership (no false negatives, possible false
// positives) and additionally support peeling their contents back out via
// ListAll, with success depending on load and the chosen K.
package invbloom

// IBF is the probabilistic set variant: insertion, removal, membership, and
// (load permitting) full enumeration of the live key set. C is the bucket
// occupancy counter width; pick one wide enough for the expected load and
// repeated-insert workload.
type IBF[K xorable, C counter] struct {
	eng *engine[K, noValue, C]
}

// NewIBF allocates a directory of directorySize zero buckets and draws K
// pairwise-distinct seeds for hasher. directorySize may be zero (spec.md
// §4.1): the resulting instance is well-defined but every mutation is a
// no-op on the (empty) directory.
func NewIBF[K xorable, C counter](directorySize int, hasher Hasher[K], opts ...Option) (*IBF[K, C], error) {
	eng, err := newEngine[K, noValue, C](directorySize, hasher, opts...)
	if err != nil {
		return nil, err
	}
	return &IBF[K, C]{eng: eng}, nil
}

// Insert never fails in the sense of erroring or panicking. It reports
// false and leaves the instance untouched if key is already unambiguously
// present (Contains(key) == Exists): re-inserting an already-live key would
// XOR it into the same buckets a second time and permanently lock them out
// of purity, so that case is rejected rather than silently corrupting the
// directory. A key that is merely ambiguous (MightExist, due to unrelated
// bucket collisions) is inserted normally.
func (f *IBF[K, C]) Insert(key K) bool {
	return f.eng.insert(key, 0)
}

// Contains reports Exists, MightExist or NotFound for key (spec.md §4.5).
func (f *IBF[K, C]) Contains(key K) ContainsResult {
	return f.eng.contains(key)
}

// Remove deletes key if and only if Contains(key) == Exists; any other
// state (absent, or merely ambiguous) leaves the instance untouched and
// returns false, since removal would otherwise require knowledge the
// structure cannot recover.
func (f *IBF[K, C]) Remove(key K) bool {
	if f.eng.contains(key) != Exists {
		return false
	}
	idxs := f.eng.distinctIndices(key)
	f.eng.removeIndices(key, 0, idxs)
	return true
}

// ListAll runs the peeling decoder (spec.md §4.8) on a snapshot clone,
// leaving this instance untouched either way. ok is false if peeling
// stalled with ambiguous buckets remaining.
func (f *IBF[K, C]) ListAll() (keys []K, ok bool) {
	entries, ok := f.eng.peelAll()
	if len(entries) == 0 {
		return nil, ok
	}
	keys = make([]K, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys, ok
}

// Clone returns an independent copy sharing no mutable state with f.
func (f *IBF[K, C]) Clone() *IBF[K, C] {
	return &IBF[K, C]{eng: f.eng.clone()}
}

// Size returns the number of successful inserts minus successful removes.
func (f *IBF[K, C]) Size() uint64 { return f.eng.size }

// DirectorySize returns M, fixed at construction.
func (f *IBF[K, C]) DirectorySize() int { return len(f.eng.buckets) }

// ListSeeds returns the K seeds drawn at construction, enabling a peer
// structure built with the same hasher, M and seeds to interoperate.
func (f *IBF[K, C]) ListSeeds() []uint64 {
	return append([]uint64(nil), f.eng.seeds...)
}
