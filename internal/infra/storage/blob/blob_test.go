package blob

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeMetrics struct {
	mu      sync.Mutex
	retries map[string]int
	results map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{retries: map[string]int{}, results: map[string]int{}}
}

func (m *fakeMetrics) ObserveStoreOperation(op, result string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[op+":"+result]++
}

func (m *fakeMetrics) IncStoreRetry(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retries[op]++
}

// flakyStore возвращает ошибку первые failures вызовов
type flakyStore struct {
	inner    *MemoryStore
	failures int
	calls    int
	err      error
}

func (s *flakyStore) Load(ctx context.Context, path string) ([]byte, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, s.err
	}
	return s.inner.Load(ctx, path)
}

func (s *flakyStore) Overwrite(ctx context.Context, path string, body []byte) error {
	s.calls++
	if s.calls <= s.failures {
		return s.err
	}
	return s.inner.Overwrite(ctx, path, body)
}

func fastPolicy(retries int) RetryPolicy {
	return RetryPolicy{
		MaxRetries:       retries,
		BaseDelay:        time.Millisecond,
		MaxDelay:         5 * time.Millisecond,
		OperationTimeout: time.Second,
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Load(ctx, "requests/2025-09/education.json")
	assert.ErrorIs(t, err, ErrNotFound)

	body := []byte(`{"month":"2025-09"}`)
	require.NoError(t, s.Overwrite(ctx, "requests/2025-09/education.json", body))

	// Изменение исходного буфера не должно влиять на хранилище
	body[0] = 'X'

	got, err := s.Load(ctx, "requests/2025-09/education.json")
	require.NoError(t, err)
	assert.Equal(t, `{"month":"2025-09"}`, string(got))
	assert.Equal(t, []string{"requests/2025-09/education.json"}, s.Paths())

	assert.ErrorIs(t, s.Overwrite(ctx, "", body), ErrInvalidPath)
}

func TestRetryingStore_RecoversFromTransientErrors(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	require.NoError(t, inner.Overwrite(ctx, "p", []byte("doc")))

	flaky := &flakyStore{inner: inner, failures: 2, err: errors.New("rate limited")}
	m := newFakeMetrics()
	s := NewRetryingStore(flaky, fastPolicy(3), m, nopLogger{})

	got, err := s.Load(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, "doc", string(got))
	assert.Equal(t, 3, flaky.calls)
	assert.Equal(t, 2, m.retries["load"])
	assert.Equal(t, 1, m.results["load:ok"])
}

func TestRetryingStore_SurfacesUnavailable(t *testing.T) {
	flaky := &flakyStore{inner: NewMemoryStore(), failures: 100, err: errors.New("connection refused")}
	s := NewRetryingStore(flaky, fastPolicy(2), nil, nopLogger{})

	err := s.Overwrite(context.Background(), "p", []byte("doc"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, flaky.calls)
}

func TestRetryingStore_NotFoundIsNotRetried(t *testing.T) {
	flaky := &flakyStore{inner: NewMemoryStore()}
	s := NewRetryingStore(flaky, fastPolicy(3), nil, nopLogger{})

	_, err := s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, flaky.calls)
}

type slowStore struct{}

func (slowStore) Load(ctx context.Context, _ string) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowStore) Overwrite(ctx context.Context, _ string, _ []byte) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRetryingStore_TimesOutHangingStore(t *testing.T) {
	policy := fastPolicy(1)
	policy.OperationTimeout = 10 * time.Millisecond
	s := NewRetryingStore(slowStore{}, policy, nil, nopLogger{})

	start := time.Now()
	_, err := s.Load(context.Background(), "p")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Less(t, time.Since(start), time.Second)
}
