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

// errInvariantViolation marks programmer errors (a bucket count underflowing
// on remove, a bucket counter overflowing on add) rather than
// expected outcomes. Ambiguity and absence are reported through ordinary
// return values everywhere else in this package; nothing in the public
// surface returns this error.
var errInvariantViolation = errors.New("invbloom: invariant violation")

// errReadingEntropy wraps a failed read from the OS entropy source used to
// seed the generator when the caller supplies no explicit seed.
var errReadingEntropy = errors.New("invbloom: reading entropy for seed generator")
