// Package randutil centralises how the module derives random sources so that
// every shuffle can be replayed from a single seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a PCG-backed *rand.Rand seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenRatio64)))
}

// Seed returns a fresh seed from the wall clock. Callers log it so a session
// can be replayed with New.
func Seed() int64 {
	return time.Now().UnixNano()
}

// splitmix is the SplitMix64 finaliser; it spreads nearby seeds across the PCG state.
func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
