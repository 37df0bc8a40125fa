package sampling

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/annealer/internal/modules/ising"
	"github.com/aristath/annealer/internal/modules/simulation"
)

// Service orchestrates the full sampling pipeline: model extraction →
// simulation → distribution building → inverse-transform sampling → scoring
// → result assembly.
type Service struct {
	adapter *simulation.Adapter
	sampler *Sampler
	log     zerolog.Logger
}

// NewService creates a new sampling service. Pass a disabled logger to run
// silently.
func NewService(adapter *simulation.Adapter, sampler *Sampler, log zerolog.Logger) *Service {
	return &Service{
		adapter: adapter,
		sampler: sampler,
		log:     log.With().Str("component", "sampling_service").Logger(),
	}
}

// Sample runs the pipeline once and returns the assembled collection.
//
// All failures propagate synchronously; there is no partial-result mode:
// either all num_reads samples are produced or the call fails entirely.
func (s *Service) Sample(problem ising.Problem, params simulation.Params) (*Collection, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling parameters: %w", err)
	}

	model, err := ising.ToIsing(problem)
	if err != nil {
		return nil, err
	}

	dm, simElapsed, err := s.adapter.Run(model, params)
	if err != nil {
		return nil, err
	}

	cum, err := Cumulative(dm, model.NumVariables)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	assignments := s.sampler.DrawAll(cum, model.NumVariables, params.NumReads)
	samples := make([]Sample, len(assignments))
	for i, spins := range assignments {
		samples[i] = Sample{Spins: spins, Energy: model.Energy(spins)}
	}
	samplingElapsed := time.Since(start)

	collection := &Collection{
		ID:        uuid.New().String(),
		Origin:    Origin,
		CreatedAt: time.Now().UTC(),
		Samples:   samples,
		Timing: Timing{
			Simulation: simElapsed,
			Sampling:   samplingElapsed,
			Total:      simElapsed + samplingElapsed,
		},
	}

	event := s.log.Info().
		Str("collection_id", collection.ID).
		Int("num_variables", model.NumVariables).
		Int("num_reads", len(samples)).
		Dur("simulation", simElapsed).
		Dur("sampling", samplingElapsed)
	if best := collection.Best(); best != nil {
		event = event.Float64("best_energy", best.Energy)
	}
	event.Msg("Sampling complete")

	return collection, nil
}
