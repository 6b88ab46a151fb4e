package blob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy параметры повторных попыток
type RetryPolicy struct {
	MaxRetries       int           // количество повторов после первой попытки
	BaseDelay        time.Duration // задержка перед первым повтором, далее растёт экспоненциально
	MaxDelay         time.Duration
	OperationTimeout time.Duration // таймаут одной попытки
}

// DefaultRetryPolicy политика по умолчанию
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:       3,
		BaseDelay:        200 * time.Millisecond,
		MaxDelay:         2 * time.Second,
		OperationTimeout: 5 * time.Second,
	}
}

// RetryingStore добавляет к хранилищу таймауты и ограниченные повторы с backoff.
// ErrNotFound и ErrInvalidPath не повторяются. Исчерпание попыток даёт ErrUnavailable.
type RetryingStore struct {
	next    Store
	policy  RetryPolicy
	metrics Metrics
	logger  Logger
}

// NewRetryingStore оборачивает хранилище; metrics может быть nil
func NewRetryingStore(next Store, policy RetryPolicy, metrics Metrics, logger Logger) *RetryingStore {
	return &RetryingStore{
		next:    next,
		policy:  policy,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *RetryingStore) Load(ctx context.Context, path string) ([]byte, error) {
	var body []byte
	err := s.do(ctx, "load", path, func(ctx context.Context) error {
		b, err := s.next.Load(ctx, path)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (s *RetryingStore) Overwrite(ctx context.Context, path string, body []byte) error {
	// Перезапись идемпотентна, поэтому повтор после таймаута безопасен
	return s.do(ctx, "overwrite", path, func(ctx context.Context) error {
		return s.next.Overwrite(ctx, path, body)
	})
}

func (s *RetryingStore) do(ctx context.Context, op, path string, fn func(ctx context.Context) error) error {
	backoff := retry.NewExponential(s.policy.BaseDelay)
	if s.policy.MaxDelay > 0 {
		backoff = retry.WithCappedDuration(s.policy.MaxDelay, backoff)
	}
	backoff = retry.WithMaxRetries(uint64(s.policy.MaxRetries), backoff)

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if attempt > 1 && s.metrics != nil {
			s.metrics.IncStoreRetry(op)
		}

		opCtx := ctx
		if s.policy.OperationTimeout > 0 {
			var cancel context.CancelFunc
			opCtx, cancel = context.WithTimeout(ctx, s.policy.OperationTimeout)
			defer cancel()
		}

		start := time.Now()
		err := fn(opCtx)
		s.observe(op, err, time.Since(start))

		if err == nil || isPermanent(err) {
			return err
		}

		s.logger.Warn("BlobStore: %s path=%s attempt=%d failed: %v", op, path, attempt, err)
		return retry.RetryableError(err)
	})

	if err == nil || isPermanent(err) {
		return err
	}

	s.logger.Error("BlobStore: %s path=%s gave up after %d attempts: %v", op, path, attempt, err)
	return fmt.Errorf("%w: %s %s after %d attempts: %v", ErrUnavailable, op, path, attempt, err)
}

func (s *RetryingStore) observe(op string, err error, d time.Duration) {
	if s.metrics == nil {
		return
	}
	result := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	s.metrics.ObserveStoreOperation(op, result, d)
}

func isPermanent(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidPath) || errors.Is(err, ErrBuildQuery)
}
