package game

// Shuffle returns a new slice holding a Fisher-Yates permutation of items,
// driven by rng. The input is never mutated. Exactly len(items)-1 draws are
// consumed (none for length <= 1), so callers sharing one RNG across several
// shuffles stay in lockstep with the reference sequence.
func Shuffle[T any](items []T, rng *RNG) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i >= 1; i-- {
		j := int(rng.Float64() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
