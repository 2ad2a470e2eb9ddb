// Package job holds the background jobs the API server runs on a cron
// schedule.
package job

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const jobTimeout = 5 * time.Minute

// Maintenance is implemented by service.MaintenanceService.
type Maintenance interface {
	PurgeRefreshTokens(ctx context.Context) (int64, error)
	ReconcileRatings(ctx context.Context) (int64, error)
}

// Sweeper drops idle per-client state, e.g. rate limiter buckets.
type Sweeper interface {
	Cleanup() int
}

type Schedules struct {
	TokenPurge     string
	Reconcile      string
	LimiterCleanup string
}

// NewScheduler registers every job. The returned cron is not started.
func NewScheduler(schedules Schedules, maintenance Maintenance, sweeper Sweeper, log *slog.Logger) (*cron.Cron, error) {
	cl := cronLogger{log: log}
	c := cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)), cron.WithLogger(cl))

	jobs := []struct {
		spec string
		job  cron.Job
	}{
		{schedules.TokenPurge, NewPurgeTokensJob(maintenance, log)},
		{schedules.Reconcile, NewReconcileRatingsJob(maintenance, log)},
		{schedules.LimiterCleanup, NewLimiterCleanupJob(sweeper, log)},
	}
	for _, j := range jobs {
		if j.spec == "" {
			continue
		}
		if _, err := c.AddJob(j.spec, j.job); err != nil {
			return nil, fmt.Errorf("invalid schedule %q: %w", j.spec, err)
		}
	}
	return c, nil
}

// PurgeTokensJob deletes expired and revoked refresh tokens.
type PurgeTokensJob struct {
	maintenance Maintenance
	log         *slog.Logger
}

func NewPurgeTokensJob(m Maintenance, log *slog.Logger) *PurgeTokensJob {
	return &PurgeTokensJob{maintenance: m, log: log}
}

func (j *PurgeTokensJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := j.maintenance.PurgeRefreshTokens(ctx)
	if err != nil {
		j.log.Warn("refresh token purge failed", "error", err)
		return
	}
	j.log.Debug("refresh token purge completed", "deleted", n)
}

// ReconcileRatingsJob recomputes every manga's rating aggregates from the
// ratings table.
type ReconcileRatingsJob struct {
	maintenance Maintenance
	log         *slog.Logger
}

func NewReconcileRatingsJob(m Maintenance, log *slog.Logger) *ReconcileRatingsJob {
	return &ReconcileRatingsJob{maintenance: m, log: log}
}

func (j *ReconcileRatingsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := j.maintenance.ReconcileRatings(ctx)
	if err != nil {
		j.log.Warn("rating reconcile failed", "error", err)
		return
	}
	j.log.Debug("rating reconcile completed", "manga", n)
}

type LimiterCleanupJob struct {
	sweeper Sweeper
	log     *slog.Logger
}

func NewLimiterCleanupJob(s Sweeper, log *slog.Logger) *LimiterCleanupJob {
	return &LimiterCleanupJob{sweeper: s, log: log}
}

func (j *LimiterCleanupJob) Run() {
	if n := j.sweeper.Cleanup(); n > 0 {
		j.log.Debug("rate limiter buckets dropped", "count", n)
	}
}

// cronLogger routes cron's own messages through slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
