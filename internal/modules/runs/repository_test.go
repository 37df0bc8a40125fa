package runs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/annealer/internal/database"
	"github.com/aristath/annealer/internal/modules/sampling"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), "runs.db"),
		Profile: database.ProfileStandard,
		Name:    "runs",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewRepository(db, zerolog.New(nil).Level(zerolog.Disabled))
	require.NoError(t, repo.Init())
	return repo
}

func testRun(id string, createdAt time.Time) Run {
	return Run{
		ID:            id,
		Origin:        sampling.Origin,
		CreatedAt:     createdAt,
		NumVariables:  2,
		NumReads:      3,
		AnnealingTime: 1.0,
		Schedule:      "linear",
		BestEnergy:    -1.0,
		SimulationNS:  1500,
		SamplingNS:    300,
		Samples: []sampling.Sample{
			{Spins: []int8{-1, -1}, Energy: -1.0},
			{Spins: []int8{-1, 1}, Energy: 1.0},
			{Spins: []int8{1, 1}, Energy: -1.0},
		},
	}
}

func TestRepository_SaveAndGet(t *testing.T) {
	repo := setupTestRepo(t)

	run := testRun("run-1", time.Now().UTC())
	require.NoError(t, repo.Save(run))

	loaded, err := repo.Get("run-1")
	require.NoError(t, err)

	assert.Equal(t, run.ID, loaded.ID)
	assert.Equal(t, run.Origin, loaded.Origin)
	assert.Equal(t, run.NumVariables, loaded.NumVariables)
	assert.Equal(t, run.NumReads, loaded.NumReads)
	assert.Equal(t, run.BestEnergy, loaded.BestEnergy)
	assert.Equal(t, run.SimulationNS, loaded.SimulationNS)
	require.Len(t, loaded.Samples, 3)
	assert.Equal(t, run.Samples, loaded.Samples, "samples must round-trip through the msgpack payload")
}

func TestRepository_GetMissing(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_ListNewestFirst(t *testing.T) {
	repo := setupTestRepo(t)

	base := time.Now().UTC()
	require.NoError(t, repo.Save(testRun("old", base.Add(-2*time.Hour))))
	require.NoError(t, repo.Save(testRun("mid", base.Add(-1*time.Hour))))
	require.NoError(t, repo.Save(testRun("new", base)))

	listed, err := repo.List(10)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "new", listed[0].ID)
	assert.Equal(t, "mid", listed[1].ID)
	assert.Equal(t, "old", listed[2].ID)
	assert.Nil(t, listed[0].Samples, "List must not load payloads")

	limited, err := repo.List(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRepository_PruneOlderThan(t *testing.T) {
	repo := setupTestRepo(t)

	base := time.Now().UTC()
	require.NoError(t, repo.Save(testRun("ancient", base.Add(-72*time.Hour))))
	require.NoError(t, repo.Save(testRun("recent", base)))

	removed, err := repo.PruneOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	listed, err := repo.List(10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "recent", listed[0].ID)
}

func TestRetentionJob(t *testing.T) {
	repo := setupTestRepo(t)
	require.NoError(t, repo.Save(testRun("ancient", time.Now().UTC().Add(-72*time.Hour))))

	job := NewRetentionJob(repo, 24*time.Hour, zerolog.New(nil).Level(zerolog.Disabled))
	assert.Equal(t, "run_retention", job.Name())
	require.NoError(t, job.Run())

	listed, err := repo.List(10)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestFromCollection(t *testing.T) {
	c := &sampling.Collection{
		ID:        "abc",
		Origin:    sampling.Origin,
		CreatedAt: time.Now().UTC(),
		Samples: []sampling.Sample{
			{Spins: []int8{1, -1}, Energy: 1.0},
			{Spins: []int8{-1, -1}, Energy: -1.0},
		},
		Timing: sampling.Timing{
			Simulation: 2 * time.Millisecond,
			Sampling:   time.Millisecond,
			Total:      3 * time.Millisecond,
		},
	}

	run := FromCollection(c, 2, 2, 1.5, "quadratic")
	assert.Equal(t, "abc", run.ID)
	assert.Equal(t, 2, run.NumVariables)
	assert.Equal(t, 1.5, run.AnnealingTime)
	assert.Equal(t, "quadratic", run.Schedule)
	assert.Equal(t, -1.0, run.BestEnergy)
	assert.Equal(t, int64(2_000_000), run.SimulationNS)
	assert.Equal(t, int64(1_000_000), run.SamplingNS)
	assert.Len(t, run.Samples, 2)
}
