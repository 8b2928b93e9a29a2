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

// safeIncrement adds 1 to x and reports whether that wrapped around zero.
// Generalizes the wraparound check erigon-lib/common/math.SafeAdd performs
// for uint64 (via bits.Add64) to any unsigned counter width: a bucket
// counter overflowing its representable range is exactly the "counter
// overflow" programmer error spec.md §7 calls out, and callers are expected
// to size C generously enough that this never legitimately fires.
func safeIncrement[C counter](x C) (C, bool) {
	next := x + 1
	return next, next == 0
}
