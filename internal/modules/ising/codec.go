package ising

// Basis-state codec.
//
// Convention (applied consistently across the whole pipeline): variable i
// (1-based) occupies bit n-i of the basis-state index, so variable 1 is the
// most significant bit. Bit value b maps to spin 2b-1 (0 → -1, 1 → +1).
// Basis state 0 is therefore the all-down assignment.

// SpinsFromIndex decodes a basis-state index into a spin assignment of
// length n.
func SpinsFromIndex(index uint64, n int) []int8 {
	spins := make([]int8, n)
	for i := 0; i < n; i++ {
		bit := int((index >> uint(n-1-i)) & 1)
		spins[i] = int8(2*bit - 1)
	}
	return spins
}

// IndexFromSpins encodes a spin assignment back into its basis-state index.
// Inverse of SpinsFromIndex.
func IndexFromSpins(spins []int8) uint64 {
	var index uint64
	for _, s := range spins {
		index <<= 1
		if s > 0 {
			index |= 1
		}
	}
	return index
}
