package simulation

import "fmt"

// Defaults for solver-tuning parameters. These mirror the attribute defaults
// declared by the sampler's configuration surface.
const (
	DefaultNumReads       = 1000
	DefaultAnnealingTime  = 1.0
	DefaultSchedule       = "linear"
	DefaultSteps          = 0 // adaptive
	DefaultOrder          = 4
	DefaultMeanTol        = 1e-6
	DefaultMaxTol         = 1e-4
	DefaultIterationLimit = 100
	DefaultStateSteps     = 0 // automatic
)

// Params holds the per-call attributes forwarded to the simulation primitive,
// plus the read count consumed by the sampling phase. Explicit, typed and
// defaulted; validated once at construction rather than threaded through as
// untyped key-value pairs.
type Params struct {
	// NumReads is the number of samples drawn from the final distribution.
	NumReads int

	// AnnealingTime is the total (dimensionless) evolution duration.
	AnnealingTime float64

	// Schedule describes how the Hamiltonian is interpolated over time.
	// Opaque to the pipeline; interpreted by the simulator.
	Schedule string

	// Steps is the time-discretization count. 0 selects an adaptive count.
	Steps int

	// Order is the truncation order of the exponential expansion.
	Order int

	// MeanTol and MaxTol are the convergence tolerances on the mean and
	// maximum per-state distribution change.
	MeanTol float64
	MaxTol  float64

	// IterationLimit bounds refinement iterations past the schedule end.
	IterationLimit int

	// StateSteps controls intermediate-state reporting. 0 means automatic
	// (no intermediate reporting).
	StateSteps int
}

// DefaultParams returns the declared defaults.
func DefaultParams() Params {
	return Params{
		NumReads:       DefaultNumReads,
		AnnealingTime:  DefaultAnnealingTime,
		Schedule:       DefaultSchedule,
		Steps:          DefaultSteps,
		Order:          DefaultOrder,
		MeanTol:        DefaultMeanTol,
		MaxTol:         DefaultMaxTol,
		IterationLimit: DefaultIterationLimit,
		StateSteps:     DefaultStateSteps,
	}
}

// Validate checks positivity where semantically required.
func (p Params) Validate() error {
	if p.NumReads < 1 {
		return fmt.Errorf("num_reads must be positive, got %d", p.NumReads)
	}
	if p.AnnealingTime <= 0 {
		return fmt.Errorf("annealing_time must be positive, got %g", p.AnnealingTime)
	}
	if p.Schedule == "" {
		return fmt.Errorf("annealing_schedule must not be empty")
	}
	if p.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", p.Steps)
	}
	if p.Order < 1 {
		return fmt.Errorf("order must be positive, got %d", p.Order)
	}
	if p.MeanTol <= 0 {
		return fmt.Errorf("mean_tol must be positive, got %g", p.MeanTol)
	}
	if p.MaxTol <= 0 {
		return fmt.Errorf("max_tol must be positive, got %g", p.MaxTol)
	}
	if p.IterationLimit < 1 {
		return fmt.Errorf("iteration_limit must be positive, got %d", p.IterationLimit)
	}
	if p.StateSteps < 0 {
		return fmt.Errorf("state_steps must be non-negative, got %d", p.StateSteps)
	}
	return nil
}
