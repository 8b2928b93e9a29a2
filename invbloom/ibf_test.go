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
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestIBF(t *testing.T, m int, seed uint32) *IBF[uint64, uint16] {
	t.Helper()
	f, err := NewIBF[uint64, uint16](m, FinalizerHash[uint64], WithGeneratorSeed(seed))
	require.NoError(t, err)
	return f
}

// S1 - construct empty.
func TestIBFConstructEmpty(t *testing.T) {
	f := newTestIBF(t, 0, 1)
	require.Equal(t, uint64(0), f.Size())
	require.Equal(t, 0, f.DirectorySize())

	seeds := f.ListSeeds()
	require.Len(t, seeds, DefaultHashCount)
	seen := map[uint64]struct{}{}
	for _, s := range seeds {
		_, dup := seen[s]
		require.False(t, dup)
		seen[s] = struct{}{}
	}
}

// S2 - construct sized.
func TestIBFConstructSized(t *testing.T) {
	f := newTestIBF(t, 10, 2)
	require.Equal(t, uint64(0), f.Size())
	require.Equal(t, 10, f.DirectorySize())
}

func TestIBFInsertContainsRemove(t *testing.T) {
	f := newTestIBF(t, 10, 0)

	require.Equal(t, NotFound, f.Contains(1337))
	f.Insert(1337)
	require.Equal(t, Exists, f.Contains(1337))
	require.Equal(t, uint64(1), f.Size())

	f.Insert(84)
	require.Equal(t, Exists, f.Contains(84))
	require.Equal(t, uint64(2), f.Size())

	require.True(t, f.Remove(1337))
	require.Equal(t, NotFound, f.Contains(1337))
	require.Equal(t, uint64(1), f.Size())

	require.True(t, f.Remove(84))
	require.Equal(t, NotFound, f.Contains(84))
	require.Equal(t, uint64(0), f.Size())
}

func TestIBFRemoveAbsentFails(t *testing.T) {
	f := newTestIBF(t, 10, 0)
	require.False(t, f.Remove(999))
	require.Equal(t, uint64(0), f.Size())
}

// Regression: re-inserting an already-live key must be rejected, not
// silently corrupt the bucket it maps to. Before the guard in engine.insert,
// a second Insert of the same key would XOR it back into the identical
// indices, cancelling cumulativeKey to zero and locking count at 2 forever -
// Contains would never report Exists again and Remove could never succeed.
func TestIBFDuplicateInsertRejected(t *testing.T) {
	f := newTestIBF(t, 10, 0)

	require.True(t, f.Insert(1337))
	require.Equal(t, uint64(1), f.Size())
	before := snapshotIBF(f)

	require.False(t, f.Insert(1337))
	require.Equal(t, uint64(1), f.Size(), "rejected duplicate must not grow size")
	require.Equal(t, before, snapshotIBF(f), "rejected duplicate must not touch any bucket")

	require.Equal(t, Exists, f.Contains(1337))
	require.True(t, f.Remove(1337))
	require.Equal(t, uint64(0), f.Size())

	// after a successful remove the key is genuinely gone, so re-inserting
	// it is a fresh logical insert, not a duplicate, and must succeed.
	require.True(t, f.Insert(1337))
	require.Equal(t, uint64(1), f.Size())
}

// S5-equivalent for the set variant.
func TestIBFListAllSucceeds(t *testing.T) {
	f := newTestIBF(t, 10, 0)
	for _, k := range []uint64{1, 1337, 86} {
		f.Insert(k)
	}
	require.Equal(t, uint64(3), f.Size())

	got, ok := f.ListAll()
	require.True(t, ok)
	require.ElementsMatch(t, []uint64{1, 1337, 86}, got)
}

// S6 - overload failure.
func TestIBFListAllFailsUnderOverload(t *testing.T) {
	f := newTestIBF(t, 2, 0)
	for i := uint64(0); i < 50; i++ {
		f.Insert(i)
	}
	require.Equal(t, uint64(50), f.Size())

	_, ok := f.ListAll()
	require.False(t, ok)
	require.Equal(t, uint64(50), f.Size(), "a failed decode must not mutate the original")
}

// Property: ListAll never mutates the receiver, win or lose.
func TestIBFListAllNonMutating(t *testing.T) {
	f := newTestIBF(t, 32, 7)
	for i := uint64(0); i < 10; i++ {
		f.Insert(i * 3)
	}
	before := snapshotIBF(f)

	_, _ = f.ListAll()

	after := snapshotIBF(f)
	require.Equal(t, before, after)
}

func snapshotIBF(f *IBF[uint64, uint16]) []bucket[uint64, noValue, uint16] {
	return append([]bucket[uint64, noValue, uint16](nil), f.eng.buckets...)
}

// Property: no false negatives. Contains's guarantee (spec.md §4.5) holds
// at any load, ambiguous or not - 60 keys in 200 buckets (still under the
// decode threshold) leaves enough keys sharing buckets to exercise the
// MightExist/Exists split, not only the all-pure case.
func TestIBFNoFalseNegatives(t *testing.T) {
	const m = 200
	f := newTestIBF(t, m, 99)

	rng := rand.New(rand.NewPCG(1, 2))
	live := map[uint64]bool{}
	for len(live) < 60 {
		live[rng.Uint64()] = true
	}
	for k := range live {
		f.Insert(k)
	}

	for k := range live {
		require.NotEqual(t, NotFound, f.Contains(k), "live key reported not_found")
	}
}

// Property: remove inverts insert across a sparse, disjoint key set, where
// every key is expected to sit in a directly-pure bucket (no peeling
// needed) so Remove's Contains==Exists precondition holds for each one.
func TestIBFRemoveSparseDisjointKeys(t *testing.T) {
	const m = 5000
	f := newTestIBF(t, m, 99)

	keys := []uint64{10, 20, 30, 40, 50, 60, 70, 80}
	for _, k := range keys {
		f.Insert(k)
	}
	for _, k := range keys {
		require.True(t, f.Remove(k))
	}
	require.Equal(t, uint64(0), f.Size())
}

// Property: remove inverts insert - buckets return to their pre-insert
// contents for a single-key round trip.
func TestIBFRemoveInvertsInsert(t *testing.T) {
	f := newTestIBF(t, 20, 55)
	before := snapshotIBF(f)

	f.Insert(424242)
	require.True(t, f.Remove(424242))

	after := snapshotIBF(f)
	require.Equal(t, before, after)
}

// Property: round-trip enumeration succeeds with high probability at
// moderate load.
func TestIBFRoundTripEnumerationAtModerateLoad(t *testing.T) {
	const m = 500
	rng := rand.New(rand.NewPCG(11, 22))
	f := newTestIBF(t, m, 123)

	want := make([]uint64, 0, 150)
	seen := map[uint64]bool{}
	for len(want) < 150 { // load factor 0.3, comfortably under the ~0.7 guidance
		k := rng.Uint64()
		if seen[k] {
			continue
		}
		seen[k] = true
		want = append(want, k)
		f.Insert(k)
	}

	got, ok := f.ListAll()
	require.True(t, ok)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	require.Equal(t, want, got)
}

func TestIBFSizeAccounting(t *testing.T) {
	f := newTestIBF(t, 50, 3)
	for i := uint64(0); i < 5; i++ {
		f.Insert(i)
	}
	require.Equal(t, uint64(5), f.Size())
	require.True(t, f.Remove(0))
	require.True(t, f.Remove(1))
	require.Equal(t, uint64(3), f.Size())
	require.False(t, f.Remove(0)) // already gone
	require.Equal(t, uint64(3), f.Size())
}

func TestIBFListSeedsStable(t *testing.T) {
	f := newTestIBF(t, 10, 4)
	first := f.ListSeeds()
	f.Insert(1)
	f.Insert(2)
	_, _ = f.ListAll()
	require.Equal(t, first, f.ListSeeds())
}

func TestIBFCloneIsIndependent(t *testing.T) {
	f := newTestIBF(t, 20, 8)
	f.Insert(1)
	clone := f.Clone()

	clone.Insert(2)
	require.Equal(t, Exists, clone.Contains(2))
	require.NotEqual(t, Exists, f.Contains(2))
}
