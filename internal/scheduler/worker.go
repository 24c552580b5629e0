package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"phone_tools_backend/platform/config"
	"phone_tools_backend/platform/logger"
	"phone_tools_backend/platform/phone"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	store  *JobStore
	log    *logger.Logger
	now    func() time.Time
}

func NewWorker(cfg config.SchedulerConfig, store *JobStore, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	w := newWorker(store, log)
	w.server = asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(w.handleTaskError),
	})

	return w, nil
}

func newWorker(store *JobStore, log *logger.Logger) *Worker {
	w := &Worker{
		mux:   asynq.NewServeMux(),
		store: store,
		log:   log,
		now:   time.Now,
	}
	w.mux.HandleFunc(TaskBatchValidate, w.handleBatchValidate)
	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("batch worker stopped", "error", err)
	}
}

func (w *Worker) handleBatchValidate(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseBatchValidatePayload(task)
	if err != nil {
		return fmt.Errorf("%w: decode payload: %v", asynq.SkipRetry, err)
	}
	if payload.JobID == "" {
		return fmt.Errorf("%w: payload has no job id", asynq.SkipRetry)
	}

	job, err := w.store.Get(ctx, payload.JobID)
	if errors.Is(err, ErrJobNotFound) {
		job = BatchJob{ID: payload.JobID, Region: payload.Region, CreatedAt: w.now()}
	} else if err != nil {
		return err
	}
	if job.Status == JobCompleted {
		return nil
	}

	completedAt := w.now()
	job.Status = JobCompleted
	job.Items = len(payload.Numbers)
	job.Results = phone.BatchValidate(payload.Numbers, payload.Region)
	job.Error = ""
	job.CompletedAt = &completedAt

	if err := w.store.Save(ctx, job); err != nil {
		return err
	}
	w.log.BatchJob(job.ID, string(job.Status), job.Items)
	return nil
}

// handleTaskError marks the job failed once asynq gives up on it.
func (w *Worker) handleTaskError(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	if retried < maxRetry && !errors.Is(err, asynq.SkipRetry) {
		return
	}

	payload, perr := ParseBatchValidatePayload(task)
	if perr != nil || payload.JobID == "" {
		w.log.Warn("batch task failed with unreadable payload", "error", err)
		return
	}
	w.markFailed(ctx, payload.JobID, err.Error())
}

func (w *Worker) markFailed(ctx context.Context, jobID, reason string) {
	job, err := w.store.Get(ctx, jobID)
	if err != nil {
		w.log.Warn("batch job lookup failed", "job_id", jobID, "error", err)
		return
	}
	if job.Status != JobPending {
		return
	}

	completedAt := w.now()
	job.Status = JobFailed
	job.Error = reason
	job.CompletedAt = &completedAt
	if err := w.store.Save(ctx, job); err != nil {
		w.log.Warn("batch job update failed", "job_id", jobID, "error", err)
		return
	}
	w.log.BatchJob(job.ID, string(job.Status), job.Items)
}
