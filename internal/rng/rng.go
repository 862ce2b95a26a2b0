// Package rng provides the deterministic random streams behind every level
// layout. Each concern (obstacles, stickers, pickups, boss) draws from its own
// generator so that changing one never perturbs another.
package rng

import "hash/fnv"

// zeroSeedReplacement is used instead of 0, which is a fixed point of xorshift.
const zeroSeedReplacement uint32 = 0x9E3779B9

// HashToSeed folds a string into a 32-bit seed using FNV-1a.
// The hash is order-sensitive: "a:b" and "b:a" give different seeds.
func HashToSeed(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// Generator is a xorshift32 stream. It holds no shared state; two generators
// built from the same seed return identical sequences.
type Generator struct {
	seed  uint32
	state uint32
}

// NewGenerator creates a generator for the given seed.
func NewGenerator(seed uint32) *Generator {
	g := &Generator{seed: seed}
	g.Reset()
	return g
}

// Reset rewinds the generator to its initial seed.
func (g *Generator) Reset() {
	g.state = g.seed
	if g.state == 0 {
		g.state = zeroSeedReplacement
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() uint32 {
	return g.seed
}

// Next advances the stream and returns the raw 32-bit value.
func (g *Generator) Next() uint32 {
	x := g.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	g.state = x
	return x
}

// Float64 returns the next value in [0, 1).
func (g *Generator) Float64() float64 {
	return float64(g.Next()) / 4294967296.0
}

// Range returns a float in [min, max).
func (g *Generator) Range(min, max float64) float64 {
	return min + g.Float64()*(max-min)
}

// Intn returns an int in [0, n). Returns 0 if n <= 0.
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(g.Float64() * float64(n))
}

// Chance reports whether a roll falls under probability p.
// Always consumes exactly one draw.
func (g *Generator) Chance(p float64) bool {
	return g.Float64() < p
}

// Shuffle returns a permutation of 0..n-1 (Fisher-Yates, n-1 draws).
func (g *Generator) Shuffle(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
