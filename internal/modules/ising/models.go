// Package ising provides the spin-model representation used throughout the
// sampler: linear biases, quadratic couplings, the affine scale factors that
// relate spin and binary objective conventions, and the basis-state codec.
package ising

// Vartype identifies the variable domain of a problem.
type Vartype string

const (
	// Spin variables take values in {-1, +1}
	Spin Vartype = "spin"
	// Binary variables take values in {0, 1} (QUBO convention)
	Binary Vartype = "binary"
)

// Pair is an unordered variable-index pair keying a quadratic coupling.
// Constructors normalize ordering so (2,1) and (1,2) address the same coupling.
type Pair struct {
	I int
	J int
}

// NewPair returns the pair with its indices in canonical (ascending) order.
func NewPair(i, j int) Pair {
	if j < i {
		i, j = j, i
	}
	return Pair{I: i, J: j}
}

// Problem is the caller-facing description of an optimization problem.
// Variable indices run 1..NumVariables.
type Problem struct {
	Vartype      Vartype
	NumVariables int
	Linear       map[int]float64
	Quadratic    map[Pair]float64
	Offset       float64
}

// Model is a problem expressed in spin domain. Evaluating
//
//	Scale · (Σ h_i s_i + Σ J_ij s_i s_j) + Offset
//
// reproduces the original problem's objective for any valid spin assignment.
type Model struct {
	NumVariables int
	H            map[int]float64
	J            map[Pair]float64
	Scale        float64
	Offset       float64
}

// MergedBiases combines linear and quadratic biases into a single keyed
// structure, the form the simulation primitive expects. Linear biases appear
// on diagonal keys (i, i).
func (m Model) MergedBiases() map[Pair]float64 {
	merged := make(map[Pair]float64, len(m.H)+len(m.J))
	for i, h := range m.H {
		merged[Pair{I: i, J: i}] = h
	}
	for p, j := range m.J {
		merged[p] = j
	}
	return merged
}
