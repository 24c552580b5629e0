package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"phone_tools_backend/internal/lookup/transport"
	"phone_tools_backend/internal/scheduler"
	"phone_tools_backend/platform/apperr"
	"phone_tools_backend/platform/cache"
	"phone_tools_backend/platform/config"
	"phone_tools_backend/platform/logger"
	"phone_tools_backend/platform/phone"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
)

func testConfig() *config.Config {
	return &config.Config{DefaultRegion: "CN", DefaultLang: "en", BatchMaxItems: 3}
}

type countingCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func (c *countingCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	value, ok := c.data[key]
	return value, ok, nil
}

func (c *countingCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = value
	return nil
}

type fakeQueue struct {
	payloads []scheduler.BatchValidatePayload
	err      error
}

func (q *fakeQueue) EnqueueBatchValidation(_ context.Context, payload scheduler.BatchValidatePayload) error {
	q.payloads = append(q.payloads, payload)
	return q.err
}

func newJobStore(t *testing.T) *scheduler.JobStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return scheduler.NewJobStore(client, time.Hour)
}

func TestValidateUsesDefaultRegion(t *testing.T) {
	svc := New(testConfig(), nil, 0, logger.Discard())

	got := svc.Validate(context.Background(), transport.ValidateRequest{Number: "13812345678"})
	want := transport.ValidateResponse{Number: "13812345678", Valid: true, E164: "+8613812345678"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected response (-want +got):\n%s", diff)
	}

	got = svc.Validate(context.Background(), transport.ValidateRequest{Number: "1381234"})
	if got.Valid || got.E164 != "" {
		t.Fatalf("expected short number to be invalid, got %+v", got)
	}
}

func TestFormat(t *testing.T) {
	svc := New(testConfig(), nil, 0, logger.Discard())

	got, err := svc.Format(context.Background(), transport.FormatRequest{Number: "13812345678", Format: "INTERNATIONAL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Formatted != "+86 138 1234 5678" || got.Format != "international" {
		t.Fatalf("unexpected response %+v", got)
	}

	got, _ = svc.Format(context.Background(), transport.FormatRequest{Number: "junk"})
	if got.Formatted != "invalid" || got.Format != "e164" {
		t.Fatalf("expected invalid marker, got %+v", got)
	}

	if _, err := svc.Format(context.Background(), transport.FormatRequest{Number: "1", Format: "fancy"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBatchValidateLimit(t *testing.T) {
	svc := New(testConfig(), nil, 0, logger.Discard())

	got, err := svc.BatchValidate(context.Background(), transport.BatchValidateRequest{Numbers: []string{"13812345678", "x"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]bool{"13812345678": true, "x": false}, got.Results); diff != "" {
		t.Fatalf("unexpected results (-want +got):\n%s", diff)
	}

	_, err = svc.BatchValidate(context.Background(), transport.BatchValidateRequest{Numbers: []string{"1", "2", "3", "4"}})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error above the limit, got %v", err)
	}
}

func TestLocateCachesValidNumbers(t *testing.T) {
	c := &countingCache{data: map[string][]byte{}}
	svc := New(testConfig(), c, time.Hour, logger.Discard())
	ctx := context.Background()

	first := svc.Locate(ctx, "13812345678", "", "")
	second := svc.Locate(ctx, "+86 138 1234 5678", "", "en")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("cached mapping differs (-first +second):\n%s", diff)
	}
	if c.sets != 1 {
		t.Fatalf("expected one cache fill, got %d", c.sets)
	}
	if _, ok := c.data["locate:en:+8613812345678"]; !ok {
		t.Fatalf("expected cache key by language and E.164, got %v", c.data)
	}

	invalid := svc.Locate(ctx, "not-a-number", "", "")
	if diff := cmp.Diff(map[string]string{"error": "invalid number"}, invalid); diff != "" {
		t.Fatalf("unexpected mapping (-want +got):\n%s", diff)
	}
	if c.sets != 1 {
		t.Fatal("expected unparseable numbers not to be cached")
	}
}

func TestLocateDescribesNumbersThatOnlyParse(t *testing.T) {
	c := &countingCache{data: map[string][]byte{}}
	svc := New(testConfig(), c, time.Hour, logger.Discard())

	got := svc.Locate(context.Background(), "1-234-5678", "", "")
	if phone.IsErrorMapping(got, "en") {
		t.Fatalf("expected a location mapping, got %v", got)
	}
	if got["region"] != "CN" {
		t.Fatalf("expected region CN, got %v", got)
	}
	if _, ok := c.data["locate:en:+8612345678"]; !ok {
		t.Fatalf("expected mapping cached under its E.164 form, got %v", c.data)
	}
}

func TestLocateWithRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	svc := New(testConfig(), cache.NewRedisCache(client, "phone:"), time.Hour, logger.Discard())
	got := svc.Locate(context.Background(), "13812345678", "", "zh")
	if got["国家"] != "中国" {
		t.Fatalf("unexpected mapping %#v", got)
	}
	if !mr.Exists("phone:locate:zh:+8613812345678") {
		t.Fatal("expected mapping to be stored in redis")
	}

	mr.Close()
	if again := svc.Locate(context.Background(), "13812345678", "", "zh"); again["国家"] != "中国" {
		t.Fatalf("expected lookups to survive a cache outage, got %#v", again)
	}
}

func TestSubmitBatchWithoutQueue(t *testing.T) {
	svc := New(testConfig(), nil, 0, logger.Discard())

	_, err := svc.SubmitBatch(context.Background(), transport.BatchJobRequest{Numbers: []string{"1"}})
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestSubmitAndGetBatch(t *testing.T) {
	store := newJobStore(t)
	queue := &fakeQueue{}
	svc := New(testConfig(), nil, 0, logger.Discard())
	svc.SetBatchJobs(queue, store)
	ctx := context.Background()

	resp, err := svc.SubmitBatch(ctx, transport.BatchJobRequest{Numbers: []string{"13812345678", "1"}, Region: "cn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != string(scheduler.JobPending) || resp.Items != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(queue.payloads) != 1 || queue.payloads[0].JobID != resp.JobID || queue.payloads[0].Region != "CN" {
		t.Fatalf("unexpected queued payloads %+v", queue.payloads)
	}

	got, err := svc.GetBatch(ctx, resp.JobID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.JobID != resp.JobID || got.Status != "pending" {
		t.Fatalf("unexpected job %+v", got)
	}
}

func TestSubmitBatchMarksFailedOnEnqueueError(t *testing.T) {
	store := newJobStore(t)
	svc := New(testConfig(), nil, 0, logger.Discard())
	svc.SetBatchJobs(&fakeQueue{err: errors.New("redis down")}, store)

	_, err := svc.SubmitBatch(context.Background(), transport.BatchJobRequest{Numbers: []string{"1"}})
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestGetBatchErrors(t *testing.T) {
	svc := New(testConfig(), nil, 0, logger.Discard())
	svc.SetBatchJobs(&fakeQueue{}, newJobStore(t))
	ctx := context.Background()

	if _, err := svc.GetBatch(ctx, "not-a-uuid"); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
	if _, err := svc.GetBatch(ctx, "6f1c8a34-0c52-4a4e-9df4-1f6f0c1a2b3c"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
