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

import "github.com/pkg/errors"

// bucket is the atomic storage cell of the directory. cumulativeValue is the
// XOR-accumulator for the dictionary variant; the set variant (IBF) still
// instantiates one but never reads it, which is cheaper than maintaining two
// near-identical bucket types for the two templates.
type bucket[K xorable, V xorable, C counter] struct {
	cumulativeKey   K
	cumulativeValue V
	count           C
}

func (b *bucket[K, V, C]) isPure() bool {
	return b.count == 1
}

func (b *bucket[K, V, C]) isEmpty() bool {
	return b.count == 0
}

// add folds key/value into the bucket and bumps its occupancy. Called once
// per distinct bucket index a key maps to, never twice for the same
// insertion (see engine.distinctIndices) — a double XOR of the same key
// would cancel itself out and silently corrupt the bucket.
func (b *bucket[K, V, C]) add(key K, value V) {
	next, overflowed := safeIncrement(b.count)
	if overflowed {
		panic(errors.Wrap(errInvariantViolation, "bucket counter overflow on add"))
	}
	b.cumulativeKey ^= key
	b.cumulativeValue ^= value
	b.count = next
}

// remove is the inverse of add. Decrementing a bucket already at zero is a
// programmer error (concurrent mutation, or a removal that bypassed the
// Remove precondition check) and is never expected in correct use.
func (b *bucket[K, V, C]) remove(key K, value V) {
	if b.count == 0 {
		panic(errors.Wrap(errInvariantViolation, "bucket count underflow on remove"))
	}
	b.cumulativeKey ^= key
	b.cumulativeValue ^= value
	b.count--
}
