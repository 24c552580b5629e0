// Package service holds the phone lookup use cases behind the HTTP and tool
// adapters: config defaults, cached location lookups and batch jobs.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"phone_tools_backend/internal/lookup/transport"
	"phone_tools_backend/internal/scheduler"
	"phone_tools_backend/platform/apperr"
	"phone_tools_backend/platform/cache"
	"phone_tools_backend/platform/config"
	"phone_tools_backend/platform/logger"
	"phone_tools_backend/platform/phone"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/sync/singleflight"
)

// BatchStore persists batch job records.
type BatchStore interface {
	Save(ctx context.Context, job scheduler.BatchJob) error
	Get(ctx context.Context, id string) (scheduler.BatchJob, error)
}

// Service provides the phone lookup operations.
type Service struct {
	cfg      config.PhoneConfig
	cache    cache.Cache
	cacheTTL time.Duration
	log      *logger.Logger
	group    singleflight.Group

	queue scheduler.BatchEnqueuer
	store BatchStore
	now   func() time.Time
}

// New creates a lookup service. A nil cache disables caching.
func New(cfg config.PhoneConfig, c cache.Cache, cacheTTL time.Duration, log *logger.Logger) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	return &Service{
		cfg:      cfg,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      log,
		now:      time.Now,
	}
}

// SetBatchJobs enables asynchronous batch validation.
func (s *Service) SetBatchJobs(queue scheduler.BatchEnqueuer, store BatchStore) {
	s.queue = queue
	s.store = store
}

func (s *Service) region(region string) string {
	if strings.TrimSpace(region) == "" {
		return s.cfg.GetDefaultRegion()
	}
	return phone.NormalizeRegion(region)
}

func (s *Service) lang(lang string) string {
	if lang = strings.TrimSpace(lang); lang == "" {
		return s.cfg.GetDefaultLang()
	}
	return lang
}

// Validate reports whether a number is valid, with its E.164 form when it is.
func (s *Service) Validate(_ context.Context, req transport.ValidateRequest) transport.ValidateResponse {
	region := s.region(req.Region)
	resp := transport.ValidateResponse{Number: req.Number, Valid: phone.Validate(req.Number, region)}
	if resp.Valid {
		resp.E164 = phone.NormalizeE164(req.Number, region)
	}
	return resp
}

// Format renders a number in the requested format.
func (s *Service) Format(_ context.Context, req transport.FormatRequest) (transport.FormatResponse, error) {
	kind, err := phone.ParseFormat(req.Format)
	if err != nil {
		return transport.FormatResponse{}, apperr.Validation(err.Error()).WithOp("lookup.Format")
	}
	return transport.FormatResponse{
		Number:    req.Number,
		Format:    kind.String(),
		Formatted: phone.Format(req.Number, s.region(req.Region), kind),
	}, nil
}

// Extract lists the valid numbers found in free text.
func (s *Service) Extract(_ context.Context, text, region string) []string {
	return phone.Extract(text, s.region(region))
}

// BatchValidate validates up to BatchMaxItems numbers synchronously.
func (s *Service) BatchValidate(_ context.Context, req transport.BatchValidateRequest) (transport.BatchValidateResponse, error) {
	if err := s.checkBatchSize(len(req.Numbers)); err != nil {
		return transport.BatchValidateResponse{}, err
	}
	return transport.BatchValidateResponse{Results: phone.BatchValidate(req.Numbers, s.region(req.Region))}, nil
}

func (s *Service) checkBatchSize(n int) error {
	if limit := s.cfg.GetBatchMaxItems(); limit > 0 && n > limit {
		return apperr.Validation(fmt.Sprintf("at most %d numbers per batch", limit)).
			WithDetails(map[string]int{"maxItems": limit, "items": n})
	}
	return nil
}

// Locate returns the localized location mapping for number, or the error
// mapping when it does not parse. Lookups are cached per language and E.164
// number.
func (s *Service) Locate(ctx context.Context, number, region, lang string) map[string]string {
	lang = s.lang(lang)

	num, err := phone.Parse(number, s.region(region))
	if err != nil {
		return phone.ErrorMapping(lang)
	}

	key := locateCacheKey(lang, phonenumbers.Format(num, phonenumbers.E164))
	if cached, ok := s.cachedMapping(ctx, key); ok {
		return cached
	}

	value, _, _ := s.group.Do(key, func() (any, error) {
		mapping := phone.Describe(num, lang).Render(lang)
		s.storeMapping(ctx, key, mapping)
		return mapping, nil
	})
	return copyMapping(value.(map[string]string))
}

func locateCacheKey(lang, e164 string) string {
	return "locate:" + strings.ToLower(lang) + ":" + e164
}

func (s *Service) cachedMapping(ctx context.Context, key string) (map[string]string, bool) {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.WithContext(ctx).CacheError("get", key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		s.log.WithContext(ctx).CacheError("decode", key, err)
		return nil, false
	}
	return mapping, true
}

func (s *Service) storeMapping(ctx context.Context, key string, mapping map[string]string) {
	data, err := json.Marshal(mapping)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.log.WithContext(ctx).CacheError("set", key, err)
	}
}

func copyMapping(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// SubmitBatch stores a pending job and queues it for the worker.
func (s *Service) SubmitBatch(ctx context.Context, req transport.BatchJobRequest) (transport.BatchJobResponse, error) {
	if s.queue == nil || s.store == nil {
		return transport.BatchJobResponse{}, apperr.Unavailable("batch jobs are not configured").WithOp("lookup.SubmitBatch")
	}
	if err := s.checkBatchSize(len(req.Numbers)); err != nil {
		return transport.BatchJobResponse{}, err
	}

	region := s.region(req.Region)
	job := scheduler.BatchJob{
		ID:        uuid.NewString(),
		Status:    scheduler.JobPending,
		Region:    region,
		Items:     len(req.Numbers),
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Save(ctx, job); err != nil {
		return transport.BatchJobResponse{}, apperr.Wrap(apperr.KindInternal, "failed to store batch job", err).WithOp("lookup.SubmitBatch")
	}

	err := s.queue.EnqueueBatchValidation(ctx, scheduler.BatchValidatePayload{
		JobID:   job.ID,
		Numbers: req.Numbers,
		Region:  region,
	})
	if err != nil {
		completedAt := s.now().UTC()
		job.Status = scheduler.JobFailed
		job.Error = "failed to enqueue"
		job.CompletedAt = &completedAt
		if saveErr := s.store.Save(ctx, job); saveErr != nil {
			s.log.WithContext(ctx).Warn("batch job update failed", "job_id", job.ID, "error", saveErr)
		}
		return transport.BatchJobResponse{}, apperr.Wrap(apperr.KindInternal, "failed to enqueue batch job", err).WithOp("lookup.SubmitBatch")
	}

	s.log.WithContext(ctx).BatchJob(job.ID, string(job.Status), job.Items)
	return toJobResponse(job), nil
}

// GetBatch returns a batch job by ID.
func (s *Service) GetBatch(ctx context.Context, id string) (transport.BatchJobResponse, error) {
	if s.store == nil {
		return transport.BatchJobResponse{}, apperr.Unavailable("batch jobs are not configured").WithOp("lookup.GetBatch")
	}
	if _, err := uuid.Parse(id); err != nil {
		return transport.BatchJobResponse{}, apperr.BadRequest("invalid job id").WithOp("lookup.GetBatch")
	}

	job, err := s.store.Get(ctx, id)
	if errors.Is(err, scheduler.ErrJobNotFound) {
		return transport.BatchJobResponse{}, apperr.NotFound("batch job not found").WithOp("lookup.GetBatch")
	}
	if err != nil {
		return transport.BatchJobResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load batch job", err).WithOp("lookup.GetBatch")
	}
	return toJobResponse(job), nil
}

func toJobResponse(job scheduler.BatchJob) transport.BatchJobResponse {
	return transport.BatchJobResponse{
		JobID:       job.ID,
		Status:      string(job.Status),
		Items:       job.Items,
		Results:     job.Results,
		Error:       job.Error,
		CreatedAt:   job.CreatedAt,
		CompletedAt: job.CompletedAt,
	}
}
