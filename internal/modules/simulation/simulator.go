package simulation

import (
	"gonum.org/v1/gonum/mat"

	"github.com/aristath/annealer/internal/modules/ising"
)

// Simulator is the external simulation primitive consumed as a black box.
// It evolves a quantum state of n spins under the annealing schedule described
// by params and returns the resulting density matrix of dimension 2^n.
//
// biases merges linear and quadratic terms into one keyed structure: linear
// biases sit on diagonal keys (i, i), couplings on off-diagonal keys.
//
// Implementations own their internal iteration loop and tolerance bookkeeping;
// the call is synchronous and non-cancellable once started.
type Simulator interface {
	Simulate(biases map[ising.Pair]float64, n int, params Params) (*mat.CDense, error)
}
