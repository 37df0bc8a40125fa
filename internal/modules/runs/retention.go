package runs

import (
	"time"

	"github.com/rs/zerolog"
)

// RetentionJob prunes run records past the configured retention window.
// Registered with the scheduler and run on a cron cadence.
type RetentionJob struct {
	repo *Repository
	age  time.Duration
	log  zerolog.Logger
}

// NewRetentionJob creates a retention job keeping runs for the given age.
func NewRetentionJob(repo *Repository, age time.Duration, log zerolog.Logger) *RetentionJob {
	return &RetentionJob{
		repo: repo,
		age:  age,
		log:  log.With().Str("component", "run_retention").Logger(),
	}
}

// Name implements scheduler.Job.
func (j *RetentionJob) Name() string {
	return "run_retention"
}

// Run implements scheduler.Job.
func (j *RetentionJob) Run() error {
	removed, err := j.repo.PruneOlderThan(j.age)
	if err != nil {
		return err
	}
	j.log.Debug().Int64("removed", removed).Msg("Retention pass complete")
	return nil
}
