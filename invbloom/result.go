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

// ContainsResult is the three-way outcome of a membership query (spec.md
// §4.5): unlike a classical Bloom filter's boolean, a pure bucket can make
// a positive answer definitive.
type ContainsResult int

const (
	NotFound ContainsResult = iota
	MightExist
	Exists
)

func (r ContainsResult) String() string {
	switch r {
	case Exists:
		return "exists"
	case MightExist:
		return "might_exist"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
