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

// Package classicfilter wraps a plain, non-invertible Bloom filter
// (github.com/holiman/bloomfilter/v2) behind the same hasher-driven
// construction invbloom uses, so callers can put the two side by side: a
// classic filter rejects faster and never enumerates; an invertible one
// costs more per bucket but can peel its contents back out.
package classicfilter

import (
	"github.com/holiman/bloomfilter/v2"
	"github.com/pkg/errors"
)

// Filter is a thin generic adapter over *bloomfilter.Filter.
type Filter[K any] struct {
	bf     *bloomfilter.Filter
	hasher func(K) uint64
}

// New sizes a filter for maxElements keys at the given false-positive rate
// and binds it to hasher.
func New[K any](maxElements uint64, falsePositiveRate float64, hasher func(K) uint64) (*Filter[K], error) {
	bf, err := bloomfilter.NewOptimal(maxElements, falsePositiveRate)
	if err != nil {
		return nil, errors.Wrap(err, "classicfilter: constructing bloom filter")
	}
	return &Filter[K]{bf: bf, hasher: hasher}, nil
}

// Add inserts key. Like a classical Bloom filter, it cannot be undone.
func (f *Filter[K]) Add(key K) {
	f.bf.Add(bloomfilter.NewUint64(f.hasher(key)))
}

// MightContain reports whether key may have been inserted; false is
// definitive, true may be a false positive.
func (f *Filter[K]) MightContain(key K) bool {
	return f.bf.Contains(bloomfilter.NewUint64(f.hasher(key)))
}

// K returns the number of hash functions the underlying filter uses.
func (f *Filter[K]) K() uint64 { return f.bf.K() }

// M returns the underlying filter's bit-array size.
func (f *Filter[K]) M() uint64 { return f.bf.M() }
