package core

// RNG is a deterministic pseudo-random number generator.
// Uses a 64-bit LCG so sequences are stable across Go releases.
// It satisfies invaders.Source.
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &RNG{state: s}
}

// Next generates the next random uint64.
func (r *RNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits of an LCG are far better distributed than the low ones.
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Read fills p with random bytes. It never fails.
func (r *RNG) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.Next()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (56 - 8*j))
		}
	}
	return len(p), nil
}

// State returns the internal generator state.
func (r *RNG) State() uint64 {
	return r.state
}
