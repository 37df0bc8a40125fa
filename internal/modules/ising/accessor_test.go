package ising

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToIsing_SpinPassthrough(t *testing.T) {
	p := Problem{
		Vartype:      Spin,
		NumVariables: 2,
		Linear:       map[int]float64{1: 0.5, 2: -0.25},
		Quadratic:    map[Pair]float64{NewPair(1, 2): -1.0},
		Offset:       3.0,
	}

	m, err := ToIsing(p)
	require.NoError(t, err)

	assert.Equal(t, 2, m.NumVariables)
	assert.Equal(t, 1.0, m.Scale)
	assert.Equal(t, 3.0, m.Offset)
	assert.Equal(t, 0.5, m.H[1])
	assert.Equal(t, -0.25, m.H[2])
	assert.Equal(t, -1.0, m.J[NewPair(1, 2)])
}

func TestToIsing_SpinCopiesMaps(t *testing.T) {
	p := Problem{
		Vartype:      Spin,
		NumVariables: 1,
		Linear:       map[int]float64{1: 1.0},
	}

	m, err := ToIsing(p)
	require.NoError(t, err)

	p.Linear[1] = 99.0
	assert.Equal(t, 1.0, m.H[1], "extracted model should not alias the problem maps")
}

func TestToIsing_BinaryReproducesQUBOEnergy(t *testing.T) {
	// QUBO: E(x) = x1 - 2·x2 + 3·x1·x2 + 0.5
	p := Problem{
		Vartype:      Binary,
		NumVariables: 2,
		Linear:       map[int]float64{1: 1.0, 2: -2.0},
		Quadratic:    map[Pair]float64{NewPair(1, 2): 3.0},
		Offset:       0.5,
	}

	m, err := ToIsing(p)
	require.NoError(t, err)

	quboEnergy := func(x1, x2 float64) float64 {
		return 1.0*x1 - 2.0*x2 + 3.0*x1*x2 + 0.5
	}

	// Every binary assignment must score identically under the spin model
	// with x_i = (s_i + 1)/2.
	for index := uint64(0); index < 4; index++ {
		spins := SpinsFromIndex(index, 2)
		x1 := float64(spins[0]+1) / 2.0
		x2 := float64(spins[1]+1) / 2.0
		assert.InDelta(t, quboEnergy(x1, x2), m.Energy(spins), 1e-12,
			"state %02b should score the same in both conventions", index)
	}
}

func TestToIsing_Errors(t *testing.T) {
	tests := []struct {
		name string
		p    Problem
	}{
		{
			name: "unsupported vartype",
			p:    Problem{Vartype: Vartype("integer"), NumVariables: 2},
		},
		{
			name: "linear index out of range",
			p: Problem{
				Vartype:      Spin,
				NumVariables: 2,
				Linear:       map[int]float64{3: 1.0},
			},
		},
		{
			name: "coupling index out of range",
			p: Problem{
				Vartype:      Spin,
				NumVariables: 2,
				Quadratic:    map[Pair]float64{NewPair(1, 5): 1.0},
			},
		},
		{
			name: "self coupling",
			p: Problem{
				Vartype:      Spin,
				NumVariables: 2,
				Quadratic:    map[Pair]float64{{I: 1, J: 1}: 1.0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToIsing(tt.p)
			assert.ErrorIs(t, err, ErrModelExtraction)
		})
	}
}

func TestNewPair_CanonicalOrder(t *testing.T) {
	assert.Equal(t, NewPair(1, 2), NewPair(2, 1))
	assert.Equal(t, 1, NewPair(2, 1).I)
	assert.Equal(t, 2, NewPair(2, 1).J)
}

func TestMergedBiases(t *testing.T) {
	m := Model{
		NumVariables: 2,
		H:            map[int]float64{1: 0.5, 2: -0.5},
		J:            map[Pair]float64{NewPair(1, 2): -1.0},
	}

	merged := m.MergedBiases()
	require.Len(t, merged, 3)
	assert.Equal(t, 0.5, merged[Pair{I: 1, J: 1}])
	assert.Equal(t, -0.5, merged[Pair{I: 2, J: 2}])
	assert.Equal(t, -1.0, merged[Pair{I: 1, J: 2}])
}
