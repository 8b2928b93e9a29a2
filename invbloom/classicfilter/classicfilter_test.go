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

package classicfilter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/invbloom/invbloom"
)

func TestFilterNoFalseNegatives(t *testing.T) {
	f, err := New[uint64](100, 0.01, invbloom.FinalizerHash[uint64])
	require.NoError(t, err)

	keys := []uint64{1, 2, 3, 42, 1337}
	for _, k := range keys {
		f.Add(k)
	}
	for _, k := range keys {
		require.True(t, f.MightContain(k))
	}
}

func TestFilterRejectsMost(t *testing.T) {
	f, err := New[uint64](100, 0.01, invbloom.FinalizerHash[uint64])
	require.NoError(t, err)

	for i := uint64(0); i < 100; i++ {
		f.Add(i * 2)
	}

	falsePositives := 0
	for i := uint64(1); i < 400; i += 2 {
		if f.MightContain(i) {
			falsePositives++
		}
	}
	// at a 1% target false-positive rate across 200 odd probes, a handful
	// of hits is expected; a large fraction would mean the filter is
	// mis-sized.
	require.Less(t, falsePositives, 50)
}

func TestFilterReportsKAndM(t *testing.T) {
	f, err := New[uint64](1000, 0.01, invbloom.FinalizerHash[uint64])
	require.NoError(t, err)
	require.Greater(t, f.K(), uint64(0))
	require.Greater(t, f.M(), uint64(0))
}
