package simulation

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/aristath/annealer/internal/modules/ising"
)

// MaxLocalVariables caps problem size for the local simulator. The density
// matrix is dense with 4^n complex entries; 10 variables keep it under 20 MB.
const MaxLocalVariables = 10

// BoltzmannSimulator is an in-process reference implementation of the
// simulation primitive. It performs imaginary-time evolution of the diagonal
// state populations: starting from the uniform distribution, each time step
// reweights state i by a truncated-series approximation of exp(-dt·E_i) and
// renormalizes, driving the populations toward the low-energy states as the
// annealing schedule advances.
//
// It honors the full tuning-attribute set: steps (0 = adaptive), order
// (series truncation), mean_tol/max_tol/iteration_limit (refinement past the
// schedule end) and state_steps (intermediate progress reporting).
type BoltzmannSimulator struct {
	log zerolog.Logger
}

// NewBoltzmannSimulator creates a new local simulator.
func NewBoltzmannSimulator(log zerolog.Logger) *BoltzmannSimulator {
	return &BoltzmannSimulator{
		log: log.With().Str("component", "boltzmann_simulator").Logger(),
	}
}

// Simulate evolves the populations and returns the diagonal density matrix.
func (s *BoltzmannSimulator) Simulate(biases map[ising.Pair]float64, n int, params Params) (*mat.CDense, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("negative variable count %d", n)
	}
	if n > MaxLocalVariables {
		return nil, fmt.Errorf("problem has %d variables, local simulator supports at most %d", n, MaxLocalVariables)
	}

	shape, err := scheduleShape(params.Schedule)
	if err != nil {
		return nil, err
	}

	dim := 1 << uint(n)
	energies := stateEnergies(biases, n)

	// Shift energies so the per-step weights stay in (0, 1]; a constant
	// shift cancels in the normalization.
	shifted := make([]float64, dim)
	minEnergy := floats.Min(energies)
	for i, e := range energies {
		shifted[i] = e - minEnergy
	}

	steps := params.Steps
	if steps == 0 {
		steps = adaptiveSteps(n, params.AnnealingTime, shifted)
	}

	// Uniform initial populations.
	probs := make([]float64, dim)
	for i := range probs {
		probs[i] = 1.0 / float64(dim)
	}

	next := make([]float64, dim)
	var meanDelta, maxDelta float64

	// Advance through the schedule. Step k evolves over the slice of
	// imaginary time the schedule shape assigns to it.
	prev := 0.0
	for k := 1; k <= steps; k++ {
		frac := shape(float64(k) / float64(steps))
		dt := params.AnnealingTime * (frac - prev)
		prev = frac

		meanDelta, maxDelta, err = s.evolveStep(probs, next, shifted, dt, params.Order)
		if err != nil {
			return nil, err
		}

		if params.StateSteps > 0 && k%params.StateSteps == 0 {
			s.log.Debug().
				Int("step", k).
				Int("steps", steps).
				Float64("mean_delta", meanDelta).
				Float64("max_delta", maxDelta).
				Msg("Annealing progress")
		}
	}

	// Hold at the final Hamiltonian until the populations settle within
	// tolerance, bounded by the iteration limit. The hold step is sized so
	// the largest weight argument is 0.5, keeping the truncated expansion
	// accurate while converging quickly.
	dtFinal := params.AnnealingTime / float64(steps)
	if spread := floats.Max(shifted); spread > 0 {
		dtFinal = 0.5 / spread
	}
	iterations := 0
	for meanDelta > params.MeanTol || maxDelta > params.MaxTol {
		iterations++
		if iterations > params.IterationLimit {
			return nil, fmt.Errorf("%w: mean_delta=%g max_delta=%g after %d iterations",
				ErrConvergence, meanDelta, maxDelta, params.IterationLimit)
		}
		meanDelta, maxDelta, err = s.evolveStep(probs, next, shifted, dtFinal, params.Order)
		if err != nil {
			return nil, err
		}
	}

	dm := mat.NewCDense(dim, dim, nil)
	for i, p := range probs {
		dm.Set(i, i, complex(p, 0))
	}
	return dm, nil
}

// evolveStep reweights the populations by the truncated exponential of
// -dt·E_i and renormalizes, reporting the mean and maximum per-state change.
func (s *BoltzmannSimulator) evolveStep(probs, next, energies []float64, dt float64, order int) (meanDelta, maxDelta float64, err error) {
	for i, p := range probs {
		w := truncExp(-dt*energies[i], order)
		if w < 0 {
			w = 0
		}
		next[i] = p * w
	}

	total := floats.Sum(next)
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, 0, fmt.Errorf("population normalization collapsed (sum=%g); reduce steps or increase order", total)
	}
	floats.Scale(1.0/total, next)

	for i := range next {
		delta := math.Abs(next[i] - probs[i])
		meanDelta += delta
		if delta > maxDelta {
			maxDelta = delta
		}
	}
	meanDelta /= float64(len(next))

	copy(probs, next)
	return meanDelta, maxDelta, nil
}

// truncExp evaluates the Taylor expansion of exp(x) truncated at the given
// order.
func truncExp(x float64, order int) float64 {
	sum := 1.0
	term := 1.0
	for j := 1; j <= order; j++ {
		term *= x / float64(j)
		sum += term
	}
	return sum
}

// stateEnergies evaluates the merged-bias Hamiltonian for every basis state.
// Diagonal keys (i, i) carry linear biases, off-diagonal keys couplings.
func stateEnergies(biases map[ising.Pair]float64, n int) []float64 {
	dim := 1 << uint(n)
	energies := make([]float64, dim)
	for index := 0; index < dim; index++ {
		spins := ising.SpinsFromIndex(uint64(index), n)
		var e float64
		for pair, v := range biases {
			if pair.I == pair.J {
				e += v * float64(spins[pair.I-1])
			} else {
				e += v * float64(spins[pair.I-1]) * float64(spins[pair.J-1])
			}
		}
		energies[index] = e
	}
	return energies
}

// adaptiveSteps picks a discretization fine enough that each step's weight
// argument stays small for the given energy spread.
func adaptiveSteps(n int, annealingTime float64, shifted []float64) int {
	spread := floats.Max(shifted)
	steps := int(math.Ceil(2.0 * annealingTime * spread))
	if min := 8 * (n + 1); steps < min {
		steps = min
	}
	if steps > 4096 {
		steps = 4096
	}
	return steps
}

// scheduleShape maps a schedule descriptor to a monotone interpolation
// s: [0,1] → [0,1] with s(0)=0 and s(1)=1.
func scheduleShape(schedule string) (func(float64) float64, error) {
	switch schedule {
	case "linear":
		return func(t float64) float64 { return t }, nil
	case "quadratic":
		return func(t float64) float64 { return t * t }, nil
	case "sqrt":
		return math.Sqrt, nil
	default:
		return nil, fmt.Errorf("unsupported annealing schedule %q", schedule)
	}
}
