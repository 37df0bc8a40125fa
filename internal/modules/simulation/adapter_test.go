package simulation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/aristath/annealer/internal/modules/ising"
)

// stubSimulator returns a canned density matrix or error and records the
// biases it was handed.
type stubSimulator struct {
	dm     *mat.CDense
	err    error
	biases map[ising.Pair]float64
	calls  int
}

func (s *stubSimulator) Simulate(biases map[ising.Pair]float64, n int, params Params) (*mat.CDense, error) {
	s.calls++
	s.biases = biases
	if s.err != nil {
		return nil, s.err
	}
	return s.dm, nil
}

func uniformDiagonal(n int) *mat.CDense {
	dim := 1 << uint(n)
	dm := mat.NewCDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		dm.Set(i, i, complex(1.0/float64(dim), 0))
	}
	return dm
}

func TestAdapter_Run(t *testing.T) {
	stub := &stubSimulator{dm: uniformDiagonal(2)}
	adapter := NewAdapter(stub, testLogger())

	model := ising.Model{
		NumVariables: 2,
		H:            map[int]float64{1: 0.5},
		J:            map[ising.Pair]float64{ising.NewPair(1, 2): -1.0},
		Scale:        1.0,
	}

	dm, elapsed, err := adapter.Run(model, DefaultParams())
	require.NoError(t, err)
	require.NotNil(t, dm)

	assert.Equal(t, 1, stub.calls, "simulator must be invoked exactly once")
	assert.GreaterOrEqual(t, elapsed.Nanoseconds(), int64(0))

	// Linear and quadratic biases arrive merged into one keyed structure.
	require.Len(t, stub.biases, 2)
	assert.Equal(t, 0.5, stub.biases[ising.Pair{I: 1, J: 1}])
	assert.Equal(t, -1.0, stub.biases[ising.Pair{I: 1, J: 2}])
}

func TestAdapter_WrapsSimulatorFailure(t *testing.T) {
	cause := fmt.Errorf("hardware on fire")
	stub := &stubSimulator{err: cause}
	adapter := NewAdapter(stub, testLogger())

	_, _, err := adapter.Run(ising.Model{NumVariables: 1}, DefaultParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSimulation)
	assert.ErrorIs(t, err, cause, "original cause must stay attached")
}

func TestAdapter_PassesThroughConvergenceError(t *testing.T) {
	stub := &stubSimulator{err: fmt.Errorf("%w: stuck", ErrConvergence)}
	adapter := NewAdapter(stub, testLogger())

	_, _, err := adapter.Run(ising.Model{NumVariables: 1}, DefaultParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConvergence)
	assert.False(t, errors.Is(err, ErrSimulation), "convergence failures are not simulator failures")
}
