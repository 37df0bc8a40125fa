// Package runs records sampling invocations so past results can be listed,
// inspected and pruned.
package runs

import (
	"time"

	"github.com/aristath/annealer/internal/modules/sampling"
)

// Run is the persisted record of one sampling invocation.
type Run struct {
	ID            string    `json:"id"`
	Origin        string    `json:"origin"`
	CreatedAt     time.Time `json:"created_at"`
	NumVariables  int       `json:"num_variables"`
	NumReads      int       `json:"num_reads"`
	AnnealingTime float64   `json:"annealing_time"`
	Schedule      string    `json:"schedule"`
	BestEnergy    float64   `json:"best_energy"`
	SimulationNS  int64     `json:"simulation_ns"`
	SamplingNS    int64     `json:"sampling_ns"`

	// Samples holds the full scored sample list. Persisted as a msgpack
	// blob; populated on Get, left nil by List.
	Samples []sampling.Sample `json:"samples,omitempty"`
}
