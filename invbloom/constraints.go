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

import "golang.org/x/exp/constraints"

// xorable bounds the Key and Value type parameters: anything the structure
// only ever combines with ^ and compares against its zero value. The
// standard library has no numeric-constraint package of its own, so this
// leans on x/exp/constraints the way erigon-lib already does.
type xorable interface {
	constraints.Integer
}

// counter bounds the bucket occupancy counter. Narrower types save memory
// per bucket; wider types tolerate heavier load and repeated-key workloads.
// Callers pick the width, the structure never widens it for them.
type counter interface {
	constraints.Unsigned
}
