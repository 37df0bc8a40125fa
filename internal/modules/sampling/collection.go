package sampling

import (
	"sort"
	"time"
)

// Origin tags every collection produced by this sampler so downstream
// frameworks can attribute results to the time-evolution pipeline.
const Origin = "time-evolution-sampler"

// Sample pairs a spin assignment with its objective value.
type Sample struct {
	Spins  []int8  `json:"spins"`
	Energy float64 `json:"energy"`
}

// Timing is the wall-clock breakdown of one sampling invocation.
type Timing struct {
	Simulation time.Duration `json:"simulation"`
	Sampling   time.Duration `json:"sampling"`
	Total      time.Duration `json:"total"`
}

// Collection is the immutable result of one sampling invocation: exactly
// num_reads scored samples plus timing and provenance metadata.
type Collection struct {
	ID        string    `json:"id"`
	Origin    string    `json:"origin"`
	CreatedAt time.Time `json:"created_at"`
	Samples   []Sample  `json:"samples"`
	Timing    Timing    `json:"timing"`
}

// Best returns the sample with the lowest energy, or nil for an empty
// collection.
func (c *Collection) Best() *Sample {
	if len(c.Samples) == 0 {
		return nil
	}
	best := &c.Samples[0]
	for i := 1; i < len(c.Samples); i++ {
		if c.Samples[i].Energy < best.Energy {
			best = &c.Samples[i]
		}
	}
	return best
}

// SortByEnergy orders samples from lowest to highest energy (stable), giving
// the ranked candidate list optimization frameworks expect.
func (c *Collection) SortByEnergy() {
	sort.SliceStable(c.Samples, func(i, j int) bool {
		return c.Samples[i].Energy < c.Samples[j].Energy
	})
}
