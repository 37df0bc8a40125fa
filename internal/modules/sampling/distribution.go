package sampling

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Cumulative converts the real diagonal of a density matrix into a cumulative
// probability vector over the 2^n basis states: cum[i] = Σ_{k≤i} Re(diag[k]).
//
// Numerical policy: diagonal entries with a small negative real part due to
// floating error are clamped to zero before accumulation, and the final entry
// is forced to exactly 1 so every draw in [0,1) resolves to a valid index.
// Runs in O(2^n).
func Cumulative(dm *mat.CDense, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative variable count %d", ErrDimension, n)
	}
	r, c := dm.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: matrix is %dx%d, expected square", ErrDimension, r, c)
	}
	dim := 1 << uint(n)
	if r != dim {
		return nil, fmt.Errorf("%w: matrix dimension %d, expected 2^%d = %d", ErrDimension, r, n, dim)
	}

	probs := make([]float64, dim)
	for i := 0; i < dim; i++ {
		p := real(dm.At(i, i))
		if p < 0 {
			p = 0
		}
		probs[i] = p
	}

	cum := make([]float64, dim)
	floats.CumSum(cum, probs)
	cum[dim-1] = 1.0
	return cum, nil
}
