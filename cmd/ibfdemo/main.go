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

// Command ibfdemo drives an IBF or IBD with random keys and reports
// Contains/ListAll behavior, to exercise the library end to end and to
// compare it against a classical (non-invertible) Bloom filter.
package main

import (
	"math/rand/v2"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/erigontech/invbloom/invbloom"
	"github.com/erigontech/invbloom/invbloom/classicfilter"
)

type cli struct {
	Buckets int    `help:"directory size (M)." default:"64"`
	Probes  int    `help:"number of hash seeds (K)." default:"3"`
	Keys    int    `help:"number of distinct keys to insert." default:"40"`
	Seed    uint32 `help:"generator seed for reproducible seeds." default:"1"`
	Dict    bool   `help:"build an IBD (dictionary) instead of an IBF (set)."`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("ibfdemo"),
		kong.Description("exercise an Invertible Bloom Filter/Dictionary with random keys"),
	)

	log := logrus.StandardLogger()
	keys := randomKeys(uint64(c.Seed), c.Keys)

	if c.Dict {
		runDict(log, &c, keys)
	} else {
		runSet(log, &c, keys)
	}
}

func randomKeys(seed uint64, n int) []uint64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x2545f4914f6cdd1d))
	seen := make(map[uint64]struct{}, n)
	keys := make([]uint64, 0, n)
	for len(keys) < n {
		k := rng.Uint64()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

func runSet(log *logrus.Logger, c *cli, keys []uint64) {
	f, err := invbloom.NewIBF[uint64, uint16](c.Buckets, invbloom.FinalizerHash[uint64],
		invbloom.WithHashCount(c.Probes), invbloom.WithGeneratorSeed(c.Seed))
	if err != nil {
		log.WithError(err).Fatal("constructing IBF")
	}

	classic, err := classicfilter.New[uint64](uint64(len(keys)), 0.01, invbloom.FinalizerHash[uint64])
	if err != nil {
		log.WithError(err).Fatal("constructing classic Bloom filter")
	}

	for _, k := range keys {
		f.Insert(k)
		classic.Add(k)
	}
	log.WithFields(logrus.Fields{
		"variant":        "ibf",
		"directory_size": f.DirectorySize(),
		"size":           f.Size(),
		"seeds":          f.ListSeeds(),
	}).Info("inserted keys")

	for _, k := range keys[:min(5, len(keys))] {
		log.WithFields(logrus.Fields{
			"key":             k,
			"ibf_contains":    f.Contains(k).String(),
			"classic_maybein": classic.MightContain(k),
		}).Info("membership probe")
	}

	recovered, ok := f.ListAll()
	log.WithFields(logrus.Fields{
		"decoded": ok,
		"count":   len(recovered),
		"want":    f.Size(),
	}).Info("listAll")
}

func runDict(log *logrus.Logger, c *cli, keys []uint64) {
	d, err := invbloom.NewIBD[uint64, uint64, uint16](c.Buckets, invbloom.FinalizerHash[uint64],
		invbloom.WithHashCount(c.Probes), invbloom.WithGeneratorSeed(c.Seed))
	if err != nil {
		log.WithError(err).Fatal("constructing IBD")
	}

	for _, k := range keys {
		d.Insert(k, k^0xdeadbeef)
	}
	log.WithFields(logrus.Fields{
		"variant":        "ibd",
		"directory_size": d.DirectorySize(),
		"size":           d.Size(),
		"seeds":          d.ListSeeds(),
	}).Info("inserted keys")

	for _, k := range keys[:min(5, len(keys))] {
		v, ok := d.Get(k)
		log.WithFields(logrus.Fields{
			"key":          k,
			"ibd_get_ok":   ok,
			"ibd_get_want": k ^ 0xdeadbeef,
			"ibd_get_have": v,
		}).Info("get probe")
	}

	recovered, ok := d.ListAll()
	log.WithFields(logrus.Fields{
		"decoded": ok,
		"count":   len(recovered),
		"want":    d.Size(),
	}).Info("listAll")
}
