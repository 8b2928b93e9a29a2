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

// IBD is the probabilistic dictionary variant: everything IBF does, plus
// Get, which recovers a key's value when it happens to sit in a currently
// pure bucket.
type IBD[K xorable, V xorable, C counter] struct {
	eng *engine[K, V, C]
}

// NewIBD mirrors NewIBF, additionally carrying the value accumulator.
func NewIBD[K xorable, V xorable, C counter](directorySize int, hasher Hasher[K], opts ...Option) (*IBD[K, V, C], error) {
	eng, err := newEngine[K, V, C](directorySize, hasher, opts...)
	if err != nil {
		return nil, err
	}
	return &IBD[K, V, C]{eng: eng}, nil
}

// Insert never errors or panics; see IBF.Insert for the repeated-key
// rejection rule. Re-inserting a key that Contains reports as Exists is
// rejected (false) rather than
// accepted with a new value, since the structure has no way to update a
// key's value in place without the same permanent-ambiguity risk.
func (d *IBD[K, V, C]) Insert(key K, value V) bool {
	return d.eng.insert(key, value)
}

// Contains uses the same key-only algorithm as IBF.Contains (spec.md §4.5):
// it never inspects the value accumulator.
func (d *IBD[K, V, C]) Contains(key K) ContainsResult {
	return d.eng.contains(key)
}

// Get returns key's value if it sits in a pure bucket along the probe
// path, and false otherwise — including when the key is present but not
// currently uniquely recoverable (spec.md §4.6). Callers cannot
// distinguish that case from genuine absence.
func (d *IBD[K, V, C]) Get(key K) (V, bool) {
	return d.eng.get(key)
}

// Remove deletes key only if Get(key) currently yields a value; an
// ambiguous-but-present key is left alone and Remove returns false, since
// removal needs the value the structure cannot supply in that state.
func (d *IBD[K, V, C]) Remove(key K) bool {
	value, ok := d.eng.get(key)
	if !ok {
		return false
	}
	idxs := d.eng.distinctIndices(key)
	d.eng.removeIndices(key, value, idxs)
	return true
}

// KV is one recovered (key, value) pair returned by ListAll.
type KV[K xorable, V xorable] struct {
	Key   K
	Value V
}

// ListAll runs the peeling decoder on a snapshot clone; see IBF.ListAll.
func (d *IBD[K, V, C]) ListAll() (pairs []KV[K, V], ok bool) {
	entries, ok := d.eng.peelAll()
	if len(entries) == 0 {
		return nil, ok
	}
	pairs = make([]KV[K, V], len(entries))
	for i, e := range entries {
		pairs[i] = KV[K, V]{Key: e.Key, Value: e.Value}
	}
	return pairs, ok
}

// Clone returns an independent copy sharing no mutable state with d.
func (d *IBD[K, V, C]) Clone() *IBD[K, V, C] {
	return &IBD[K, V, C]{eng: d.eng.clone()}
}

func (d *IBD[K, V, C]) Size() uint64 { return d.eng.size }

func (d *IBD[K, V, C]) DirectorySize() int { return len(d.eng.buckets) }

func (d *IBD[K, V, C]) ListSeeds() []uint64 {
	return append([]uint64(nil), d.eng.seeds...)
}
