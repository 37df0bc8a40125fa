package ising

// Energy scores a spin assignment under the model objective:
//
//	Scale · (Σ_i h_i s_i + Σ_{(i,j)} J_ij s_i s_j) + Offset
//
// spins is 1-indexed by variable: spins[i-1] holds the value of variable i.
// Runs in O(n + |J|). Pure function.
func (m Model) Energy(spins []int8) float64 {
	var sum float64
	for i, h := range m.H {
		sum += h * float64(spins[i-1])
	}
	for p, j := range m.J {
		sum += j * float64(spins[p.I-1]) * float64(spins[p.J-1])
	}
	return m.Scale*sum + m.Offset
}
