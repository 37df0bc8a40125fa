package sampling

import (
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/aristath/annealer/internal/modules/ising"
)

// Draw maps one uniform variate u ∈ [0,1) to a spin assignment by
// inverse-transform sampling: a lower-bound search over the non-decreasing
// cumulative vector selects the smallest index i with cum[i] ≥ u, so basis
// state i is chosen with probability cum[i] - cum[i-1].
//
// A draw of exactly 0 resolves to the first index carrying probability mass,
// never to a leading zero-mass state. Pure function.
func Draw(cum []float64, n int, u float64) []int8 {
	idx := sort.SearchFloat64s(cum, u)
	if idx >= len(cum) {
		idx = len(cum) - 1
	}
	if u == 0 {
		for idx < len(cum)-1 && cum[idx] == 0 {
			idx++
		}
	}
	return ising.SpinsFromIndex(uint64(idx), n)
}

// Sampler draws batches of independent spin assignments from a cumulative
// distribution. Draws are i.i.d. and share no mutable state, so the batch
// fans out across a bounded worker pool; each sample index derives its own
// seeded source from the base seed, which keeps results reproducible
// regardless of worker scheduling.
type Sampler struct {
	seed    int64
	workers int
}

// NewSampler creates a sampler with the given base seed. workers <= 0 selects
// one worker per CPU.
func NewSampler(seed int64, workers int) *Sampler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Sampler{seed: seed, workers: workers}
}

// DrawAll produces m spin assignments of length n.
func (s *Sampler) DrawAll(cum []float64, n, m int) [][]int8 {
	if m <= 0 {
		return [][]int8{}
	}

	assignments := make([][]int8, m)

	workers := s.workers
	if m < workers {
		workers = m
	}

	jobs := make(chan int, m)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rng := rand.New(rand.NewSource(s.seed + int64(i)))
				assignments[i] = Draw(cum, n, rng.Float64())
			}
		}()
	}

	for i := 0; i < m; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return assignments
}
