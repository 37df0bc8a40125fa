package runs

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/annealer/internal/database"
	"github.com/aristath/annealer/internal/modules/sampling"
)

// ErrNotFound indicates the requested run record does not exist.
var ErrNotFound = errors.New("run not found")

// Repository handles database operations for run records.
// Database: runs.db (runs table).
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a new run repository.
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("component", "run_repository").Logger(),
	}
}

// Init creates the runs table if it does not exist.
func (r *Repository) Init() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id             TEXT PRIMARY KEY,
			origin         TEXT NOT NULL,
			created_at     TIMESTAMP NOT NULL,
			num_variables  INTEGER NOT NULL,
			num_reads      INTEGER NOT NULL,
			annealing_time REAL NOT NULL,
			schedule       TEXT NOT NULL,
			best_energy    REAL NOT NULL,
			simulation_ns  INTEGER NOT NULL,
			sampling_ns    INTEGER NOT NULL,
			samples        BLOB NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}

// Save persists a run record with its msgpack-encoded samples.
func (r *Repository) Save(run Run) error {
	payload, err := msgpack.Marshal(run.Samples)
	if err != nil {
		return fmt.Errorf("failed to encode samples: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO runs (id, origin, created_at, num_variables, num_reads,
			annealing_time, schedule, best_energy, simulation_ns, sampling_ns, samples)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Origin, run.CreatedAt.UTC(), run.NumVariables, run.NumReads,
		run.AnnealingTime, run.Schedule, run.BestEnergy, run.SimulationNS, run.SamplingNS, payload)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}

	r.log.Debug().
		Str("run_id", run.ID).
		Int("num_reads", run.NumReads).
		Msg("Run saved")

	return nil
}

// List returns the most recent runs, newest first, without sample payloads.
func (r *Repository) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(`
		SELECT id, origin, created_at, num_variables, num_reads,
			annealing_time, schedule, best_energy, simulation_ns, sampling_ns
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var result []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Origin, &run.CreatedAt, &run.NumVariables,
			&run.NumReads, &run.AnnealingTime, &run.Schedule, &run.BestEnergy,
			&run.SimulationNS, &run.SamplingNS); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		result = append(result, run)
	}
	return result, rows.Err()
}

// Get returns one run with its decoded samples.
func (r *Repository) Get(id string) (*Run, error) {
	var run Run
	var payload []byte

	err := r.db.QueryRow(`
		SELECT id, origin, created_at, num_variables, num_reads,
			annealing_time, schedule, best_energy, simulation_ns, sampling_ns, samples
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Origin, &run.CreatedAt, &run.NumVariables,
		&run.NumReads, &run.AnnealingTime, &run.Schedule, &run.BestEnergy,
		&run.SimulationNS, &run.SamplingNS, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}

	if err := msgpack.Unmarshal(payload, &run.Samples); err != nil {
		return nil, fmt.Errorf("failed to decode samples for run %s: %w", id, err)
	}
	return &run, nil
}

// PruneOlderThan deletes run records created before the cutoff and returns
// the number of rows removed.
func (r *Repository) PruneOlderThan(age time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-age)

	result, err := r.db.Exec(`DELETE FROM runs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}

	removed, _ := result.RowsAffected()
	if removed > 0 {
		r.log.Info().
			Int64("removed", removed).
			Time("cutoff", cutoff).
			Msg("Pruned old runs")
	}
	return removed, nil
}

// FromCollection builds a run record from a sample collection and the
// parameters that produced it.
func FromCollection(c *sampling.Collection, numVariables, numReads int, annealingTime float64, schedule string) Run {
	run := Run{
		ID:            c.ID,
		Origin:        c.Origin,
		CreatedAt:     c.CreatedAt,
		NumVariables:  numVariables,
		NumReads:      numReads,
		AnnealingTime: annealingTime,
		Schedule:      schedule,
		SimulationNS:  c.Timing.Simulation.Nanoseconds(),
		SamplingNS:    c.Timing.Sampling.Nanoseconds(),
		Samples:       c.Samples,
	}
	if best := c.Best(); best != nil {
		run.BestEnergy = best.Energy
	}
	return run
}
