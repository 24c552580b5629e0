package scheduler

import (
	"context"
	"errors"
	"time"

	"phone_tools_backend/platform/logger"
)

const (
	defaultReapInterval = time.Minute
	defaultStaleAfter   = 15 * time.Minute
)

// JobReaper fails batch jobs that stayed pending for too long, e.g. because
// the task was lost or the worker died mid-run.
type JobReaper struct {
	store      *JobStore
	log        *logger.Logger
	interval   time.Duration
	staleAfter time.Duration
	now        func() time.Time
}

func NewJobReaper(store *JobStore, log *logger.Logger, interval, staleAfter time.Duration) *JobReaper {
	if interval <= 0 {
		interval = defaultReapInterval
	}
	if staleAfter <= 0 {
		staleAfter = defaultStaleAfter
	}

	return &JobReaper{
		store:      store,
		log:        log,
		interval:   interval,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

func (r *JobReaper) Run(ctx context.Context) {
	if r == nil || r.store == nil {
		return
	}

	r.reap(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.reap(ctx)
		}
	}
}

func (r *JobReaper) reap(ctx context.Context) int {
	now := r.now()
	ids, err := r.store.PendingBefore(ctx, now.Add(-r.staleAfter))
	if err != nil {
		r.log.Warn("batch job reaper failed", "error", err)
		return 0
	}

	reaped := 0
	for _, id := range ids {
		job, err := r.store.Get(ctx, id)
		if errors.Is(err, ErrJobNotFound) {
			_ = r.store.Forget(ctx, id)
			continue
		}
		if err != nil {
			r.log.Warn("batch job reaper lookup failed", "job_id", id, "error", err)
			continue
		}
		if job.Status != JobPending {
			_ = r.store.Forget(ctx, id)
			continue
		}

		job.Status = JobFailed
		job.Error = "timed out waiting for a worker"
		job.CompletedAt = &now
		if err := r.store.Save(ctx, job); err != nil {
			r.log.Warn("batch job reaper update failed", "job_id", id, "error", err)
			continue
		}
		reaped++
	}

	if reaped > 0 {
		r.log.Info("batch job reaper failed stale jobs", "reaped", reaped)
	}
	return reaped
}
