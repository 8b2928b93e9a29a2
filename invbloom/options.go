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

// DefaultHashCount is K from spec.md: the number of bucket probes per key.
const DefaultHashCount = 3

// config collects construction-time parameters shared by IBF and IBD.
type config struct {
	hashCount int
	genSeed   *uint32
}

func newConfig(opts ...Option) *config {
	c := &config{hashCount: DefaultHashCount}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures an IBF or IBD at construction time.
type Option func(*config)

// WithHashCount overrides the default K=3 probes-per-key.
func WithHashCount(k int) Option {
	return func(c *config) { c.hashCount = k }
}

// WithGeneratorSeed makes seed derivation deterministic in s, per spec.md
// §6's 32-bit generator seed. Without this option the seeds are drawn from
// the OS entropy source.
func WithGeneratorSeed(s uint32) Option {
	return func(c *config) { c.genSeed = &s }
}
