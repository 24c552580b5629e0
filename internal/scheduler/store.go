package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	jobKeyPrefix   = "phone:batch:"
	pendingJobsKey = "phone:batch:pending"
)

type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// ErrJobNotFound is returned by JobStore.Get for unknown or expired jobs.
var ErrJobNotFound = errors.New("batch job not found")

// BatchJob is the stored state of a batch validation job.
type BatchJob struct {
	ID          string          `json:"id"`
	Status      JobStatus       `json:"status"`
	Region      string          `json:"region"`
	Items       int             `json:"items"`
	Results     map[string]bool `json:"results,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

// JobStore keeps batch jobs in Redis. Every record expires after ttl;
// pending jobs are also indexed by creation time so stale ones can be reaped.
type JobStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewJobStore(client redis.Cmdable, ttl time.Duration) *JobStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JobStore{client: client, ttl: ttl}
}

func (s *JobStore) Save(ctx context.Context, job BatchJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job %s: %w", job.ID, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, jobKeyPrefix+job.ID, data, s.ttl)
		if job.Status == JobPending {
			pipe.ZAdd(ctx, pendingJobsKey, redis.Z{Score: float64(job.CreatedAt.Unix()), Member: job.ID})
		} else {
			pipe.ZRem(ctx, pendingJobsKey, job.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save job %s: %w", job.ID, err)
	}
	return nil
}

func (s *JobStore) Get(ctx context.Context, id string) (BatchJob, error) {
	data, err := s.client.Get(ctx, jobKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return BatchJob{}, ErrJobNotFound
	}
	if err != nil {
		return BatchJob{}, fmt.Errorf("load job %s: %w", id, err)
	}

	var job BatchJob
	if err := json.Unmarshal(data, &job); err != nil {
		return BatchJob{}, fmt.Errorf("decode job %s: %w", id, err)
	}
	return job, nil
}

// PendingBefore lists the IDs of jobs still pending that were created before cutoff.
func (s *JobStore) PendingBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	ids, err := s.client.ZRangeByScore(ctx, pendingJobsKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", cutoff.Unix()),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("list pending jobs: %w", err)
	}
	return ids, nil
}

// Forget drops a job from the pending index without touching its record.
func (s *JobStore) Forget(ctx context.Context, id string) error {
	return s.client.ZRem(ctx, pendingJobsKey, id).Err()
}
