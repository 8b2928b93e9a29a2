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
	cryptorand "crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"

	"github.com/pkg/errors"
	"github.com/spaolacci/murmur3"
)

// Hasher is the caller-supplied pure function from Key to an unsigned
// integer of at least 64 bits. Implementations must accept any conforming
// hasher; this package ships two (FinalizerHash and Murmur3Hash) but an
// instance never requires either specifically.
type Hasher[K xorable] func(key K) uint64

// FinalizerHash is the Murmur3 64-bit finalizer mix applied directly to the
// key's bit pattern, reinterpreted as uint64. This is the exact mix the
// reference test suite hashes keys with.
func FinalizerHash[K xorable](key K) uint64 {
	x := uint64(key)
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// Murmur3Hash hashes the key's big-endian byte representation with
// spaolacci/murmur3, demonstrating that the Hasher contract is satisfied by
// any avalanching 64-bit mix, not only the finalizer formula above.
func Murmur3Hash[K xorable](key K) uint64 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(key))
	return murmur3.Sum64WithSeed(buf[:], 0)
}

// hashIndex implements spec's hash_index(key, seed) = (H(key) ^ seed) mod M.
// The caller guarantees m > 0.
func hashIndex(h uint64, seed uint64, m int) int {
	return int((h ^ seed) % uint64(m))
}

// deriveSeeds draws k pairwise-distinct uint64 seeds by rejection sampling
// over a uniform 64-bit distribution. genSeed, when non-nil, makes the draw
// deterministic; otherwise two 64-bit values are pulled from the OS entropy
// source to seed the generator, the same crypto/rand-backed approach
// erigon-lib's math.RandInt64 uses for non-reproducible randomness.
func deriveSeeds(k int, genSeed *uint32) ([]uint64, error) {
	var s1, s2 uint64
	if genSeed != nil {
		s1 = uint64(*genSeed)
		s2 = uint64(*genSeed) ^ 0x9e3779b97f4a7c15 // decorrelate the two PCG streams from a single caller seed
	} else {
		var buf [16]byte
		if _, err := cryptorand.Read(buf[:]); err != nil {
			return nil, errors.Wrap(errReadingEntropy, err.Error())
		}
		s1 = binary.BigEndian.Uint64(buf[:8])
		s2 = binary.BigEndian.Uint64(buf[8:])
	}

	rng := mathrand.New(mathrand.NewPCG(s1, s2))
	seeds := make([]uint64, 0, k)
	seen := make(map[uint64]struct{}, k)
	for len(seeds) < k {
		candidate := rng.Uint64()
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		seeds = append(seeds, candidate)
	}
	return seeds, nil
}
