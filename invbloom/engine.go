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

package invbloom

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// noValue is the placeholder value type IBF instantiates engine with, since
// the set variant shares the peeling engine with the dictionary variant but
// never reads the value accumulator. One byte, never XORed with anything
// but its own zero value.
type noValue = uint8

// engine is the shared skeleton behind both IBF and IBD (spec.md §9: "the
// IBF and IBD templates are structurally identical except for the presence
// of a value accumulator"). K, V and C are the key, value and counter type
// parameters; IBF instantiates V as noValue and never calls get.
type engine[K xorable, V xorable, C counter] struct {
	buckets []bucket[K, V, C]
	seeds   []uint64
	hasher  Hasher[K]
	size    uint64
}

func newEngine[K xorable, V xorable, C counter](directorySize int, hasher Hasher[K], opts ...Option) (*engine[K, V, C], error) {
	cfg := newConfig(opts...)
	seeds, err := deriveSeeds(cfg.hashCount, cfg.genSeed)
	if err != nil {
		return nil, err
	}
	return &engine[K, V, C]{
		buckets: make([]bucket[K, V, C], directorySize),
		seeds:   seeds,
		hasher:  hasher,
	}, nil
}

// probeIndices returns the K indices for key in seed order, without
// de-duplication — contains and get rely on probing in this exact order so
// their short-circuit logic matches spec.md §4.5/§4.6. An empty directory
// (M=0, a legal but degenerate construction per spec.md §4.1) yields no
// indices at all.
func (e *engine[K, V, C]) probeIndices(key K) []int {
	if len(e.buckets) == 0 {
		return nil
	}
	h := e.hasher(key)
	m := len(e.buckets)
	idxs := make([]int, len(e.seeds))
	for i, seed := range e.seeds {
		idxs[i] = hashIndex(h, seed, m)
	}
	return idxs
}

// distinctIndices is probeIndices with de-duplication, the rule spec.md
// §4.3 requires for every mutating operation: an index that collides
// between two seeds is touched once, never twice, or XOR would cancel
// the key back out of that bucket.
func (e *engine[K, V, C]) distinctIndices(key K) []int {
	raw := e.probeIndices(key)
	if len(raw) == 0 {
		return raw
	}
	out := make([]int, 0, len(raw))
	for _, idx := range raw {
		dup := false
		for _, seen := range out {
			if seen == idx {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, idx)
		}
	}
	return out
}

// insert folds key/value into every bucket key's indices touch and grows
// size — unless key is already unambiguously live (contains == Exists), in
// which case it is a no-op and insert reports the rejection. Without this
// guard, re-inserting the same key XORs it into the exact same buckets a
// second time (same key, same hash, same indices): cumulativeKey cancels
// back to its zero value and count becomes 2 with nothing else ever able to
// decrement it, permanently locking those buckets out of purity - Contains
// would never report Exists again and Remove could never succeed. The guard
// only catches the case it can prove (Exists); an ambiguous bucket shared
// with unrelated keys is not a self-duplicate and is inserted normally.
func (e *engine[K, V, C]) insert(key K, value V) bool {
	if e.contains(key) == Exists {
		return false
	}
	for _, idx := range e.distinctIndices(key) {
		e.buckets[idx].add(key, value)
	}
	e.size++
	return true
}

// removeIndices is the mutating half of remove, split out so that both the
// public Remove path and the peeling decoder's internal peel step (which
// removes from a clone) share one implementation.
func (e *engine[K, V, C]) removeIndices(key K, value V, idxs []int) {
	for _, idx := range idxs {
		e.buckets[idx].remove(key, value)
	}
	e.size--
}

// contains implements spec.md §4.5. A pure bucket along the probe path
// decides the answer immediately, matching or not; an empty bucket is a
// definitive negative; only all-ambiguous paths answer MightExist.
func (e *engine[K, V, C]) contains(key K) ContainsResult {
	sawAmbiguous := false
	for _, idx := range e.probeIndices(key) {
		b := &e.buckets[idx]
		switch {
		case b.isEmpty():
			return NotFound
		case b.isPure():
			if b.cumulativeKey == key {
				return Exists
			}
			return NotFound
		default:
			sawAmbiguous = true
		}
	}
	if sawAmbiguous {
		return MightExist
	}
	return NotFound
}

// get implements spec.md §4.6: the first pure bucket on the probe path
// settles the query, whether it matches or not. No pure bucket at all means
// absent, which is indistinguishable at the caller level from "not present".
func (e *engine[K, V, C]) get(key K) (V, bool) {
	var zero V
	for _, idx := range e.probeIndices(key) {
		b := &e.buckets[idx]
		if b.isPure() {
			if b.cumulativeKey == key {
				return b.cumulativeValue, true
			}
			return zero, false
		}
	}
	return zero, false
}

func (e *engine[K, V, C]) clone() *engine[K, V, C] {
	cp := *e
	cp.buckets = make([]bucket[K, V, C], len(e.buckets))
	copy(cp.buckets, e.buckets)
	cp.seeds = append([]uint64(nil), e.seeds...)
	return &cp
}

// entry is one recovered (key, value) pair. IBF's ListAll discards Value.
type entry[K xorable, V xorable] struct {
	Key   K
	Value V
}

// peelAll is the decoder of spec.md §4.8. It operates on a clone, so the
// receiver is left untouched, and tracks the frontier of buckets that might
// be pure with a roaring bitmap rather than rescanning the whole directory
// every pass: removing a key can only newly expose purity in the buckets
// that key's removal touched, so only those need re-checking. This mirrors
// turbo-geth's ethdb/bitmapdb, which keeps a compact bitmap of dirty
// positions instead of a parallel boolean slice for the same reason.
func (e *engine[K, V, C]) peelAll() ([]entry[K, V], bool) {
	clone := e.clone()
	if len(clone.buckets) == 0 {
		return nil, clone.size == 0
	}

	frontier := roaring.New()
	for i := range clone.buckets {
		if clone.buckets[i].isPure() {
			frontier.Add(uint32(i))
		}
	}

	var recovered []entry[K, V]
	for !frontier.IsEmpty() {
		idx := frontier.Minimum()
		frontier.Remove(idx)

		b := &clone.buckets[idx]
		if !b.isPure() {
			// went stale between being enqueued and being drained: a later
			// peel in this same pass already touched it.
			continue
		}

		key := b.cumulativeKey
		value := b.cumulativeValue
		recovered = append(recovered, entry[K, V]{Key: key, Value: value})

		touched := clone.distinctIndices(key)
		clone.removeIndices(key, value, touched)
		for _, t := range touched {
			if clone.buckets[t].isPure() {
				frontier.Add(uint32(t))
			}
		}
	}

	for i := range clone.buckets {
		if !clone.buckets[i].isEmpty() {
			return recovered, false
		}
	}
	return recovered, uint64(len(recovered)) == e.size
}
