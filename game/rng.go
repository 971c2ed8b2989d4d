package game

// RNG is a Mulberry32 pseudo-random number generator. Given the same seed it
// emits the same sequence on every platform, which is what makes a player's
// card reproducible from (event id, player name) alone.
//
// All arithmetic is 32-bit with wraparound; the multiplications truncate to
// the low 32 bits exactly like JS Math.imul, so sequences match the widely
// used JS implementation bit for bit.
type RNG struct {
	state uint32
}

// NewRNG creates a generator with the given seed.
func NewRNG(seed uint32) *RNG {
	return &RNG{state: seed}
}

// Uint32 advances the state and returns the next raw 32-bit word.
func (r *RNG) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Uint32()) / 4294967296.0
}
