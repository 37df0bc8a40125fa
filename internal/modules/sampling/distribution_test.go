package sampling

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// diagonalMatrix builds a density matrix with the given real diagonal.
func diagonalMatrix(diag []float64) *mat.CDense {
	dim := len(diag)
	dm := mat.NewCDense(dim, dim, nil)
	for i, p := range diag {
		dm.Set(i, i, complex(p, 0))
	}
	return dm
}

func TestCumulative_UniformDistribution(t *testing.T) {
	dm := diagonalMatrix([]float64{0.25, 0.25, 0.25, 0.25})

	cum, err := Cumulative(dm, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.5, 0.75, 1.0}, cum)
}

func TestCumulative_NonDecreasingFinalOne(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for n := 0; n <= 8; n++ {
		dim := 1 << uint(n)
		diag := make([]float64, dim)
		total := 0.0
		for i := range diag {
			diag[i] = rng.Float64()
			total += diag[i]
		}
		for i := range diag {
			diag[i] /= total
		}

		cum, err := Cumulative(diagonalMatrix(diag), n)
		require.NoError(t, err)
		require.Len(t, cum, dim)

		for i := 1; i < dim; i++ {
			require.GreaterOrEqual(t, cum[i], cum[i-1], "n=%d: cumulative vector must be non-decreasing", n)
		}
		require.InDelta(t, 1.0, cum[dim-1], 1e-9, "n=%d", n)
		require.Equal(t, 1.0, cum[dim-1], "final entry is forced to exactly 1")
	}
}

func TestCumulative_ClampsNegativeRoundingError(t *testing.T) {
	dm := diagonalMatrix([]float64{0.5, -1e-15, 0.5, 1e-15})

	cum, err := Cumulative(dm, 2)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cum[0])
	assert.Equal(t, 0.5, cum[1], "tiny negative mass is clamped to zero")
	assert.InDelta(t, 1.0, cum[2], 1e-12)
	assert.Equal(t, 1.0, cum[3])
}

func TestCumulative_IgnoresImaginaryParts(t *testing.T) {
	dm := mat.NewCDense(2, 2, nil)
	dm.Set(0, 0, complex(0.3, 0.9))
	dm.Set(1, 1, complex(0.7, -0.4))

	cum, err := Cumulative(dm, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, cum[0], 1e-12)
	assert.Equal(t, 1.0, cum[1])
}

func TestCumulative_DimensionErrors(t *testing.T) {
	tests := []struct {
		name string
		dm   *mat.CDense
		n    int
	}{
		{"not square", mat.NewCDense(4, 2, nil), 2},
		{"dimension not 2^n", mat.NewCDense(3, 3, nil), 2},
		{"mismatched n", mat.NewCDense(4, 4, nil), 3},
		{"negative n", mat.NewCDense(1, 1, nil), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Cumulative(tt.dm, tt.n)
			assert.ErrorIs(t, err, ErrDimension)
		})
	}
}
