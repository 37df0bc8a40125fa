package simulation

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/aristath/annealer/internal/modules/ising"
)

// Adapter packages a spin model and its time-control attributes into a call
// to the simulation primitive and measures the wall-clock duration of the
// call. Exactly one simulator invocation happens per sampling request.
type Adapter struct {
	sim Simulator
	log zerolog.Logger
}

// NewAdapter creates a new simulation adapter. Pass a disabled logger to
// suppress progress output.
func NewAdapter(sim Simulator, log zerolog.Logger) *Adapter {
	return &Adapter{
		sim: sim,
		log: log.With().Str("component", "simulation_adapter").Logger(),
	}
}

// Run merges the model biases, invokes the simulator once and returns the
// density matrix together with the elapsed wall time.
//
// Convergence failures pass through as ErrConvergence; any other simulator
// failure is wrapped in ErrSimulation with the original cause attached.
func (a *Adapter) Run(model ising.Model, params Params) (*mat.CDense, time.Duration, error) {
	biases := model.MergedBiases()

	a.log.Debug().
		Int("num_variables", model.NumVariables).
		Int("num_biases", len(biases)).
		Float64("annealing_time", params.AnnealingTime).
		Str("schedule", params.Schedule).
		Msg("Starting simulation")

	start := time.Now()
	dm, err := a.sim.Simulate(biases, model.NumVariables, params)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, ErrConvergence) {
			return nil, elapsed, err
		}
		return nil, elapsed, fmt.Errorf("%w: %w", ErrSimulation, err)
	}

	a.log.Debug().
		Dur("elapsed", elapsed).
		Msg("Simulation complete")

	return dm, elapsed, nil
}
