// Package randutil derives reproducible math/rand/v2 sources.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Every component that needs randomness takes a *rand.Rand built here so runs
// replay exactly from a single seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Child derives an independent source from parent. Drawing a child advances
// the parent, so children taken in the same order are reproducible.
func Child(parent *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(mix(parent.Uint64()), mix(parent.Uint64())))
}

// Seed returns seed when non-zero, otherwise a seed drawn from the wall
// clock.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
