package services

import (
	"context"
	"errors"
	"math"
	"time"

	"alfredoptarigan/ats-analyzer/internal/apperrors"
	"alfredoptarigan/ats-analyzer/internal/logger"
)

// RetryPolicy bounds the Model Caller. The wait before retry n (counted
// from 0) is BaseDelay * 2^n; there is no jitter.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}
}

// Delay returns the backoff slept after the given failed attempt. It
// saturates at the largest time.Duration instead of overflowing.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if p.BaseDelay <= 0 || attempt < 0 {
		return 0
	}
	if attempt >= 63 || p.BaseDelay > time.Duration(math.MaxInt64>>uint(attempt)) {
		return time.Duration(math.MaxInt64)
	}
	return p.BaseDelay << uint(attempt)
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type ModelCaller interface {
	Call(ctx context.Context, prompt string) (string, error)
}

type modelCaller struct {
	generator TextGenerator
	policy    RetryPolicy
	sleep     Sleeper
}

type ModelCallerOption func(*modelCaller)

// WithSleeper replaces the real timer, mainly for tests.
func WithSleeper(s Sleeper) ModelCallerOption {
	return func(m *modelCaller) { m.sleep = s }
}

func NewModelCaller(generator TextGenerator, policy RetryPolicy, opts ...ModelCallerOption) ModelCaller {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	m := &modelCaller{
		generator: generator,
		policy:    policy,
		sleep:     contextSleep,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Call implements ModelCaller. Every failure of the generator is retried;
// once MaxAttempts is spent the last error comes back as
// *apperrors.ModelCallError. A context that ends during backoff stops the
// loop early and the error carries both the last failure and ctx.Err().
func (m *modelCaller) Call(ctx context.Context, prompt string) (string, error) {
	log := logger.Ctx(ctx)
	var lastErr error

	for attempt := 0; attempt < m.policy.MaxAttempts; attempt++ {
		text, err := m.generator.GenerateText(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt == m.policy.MaxAttempts-1 {
			break
		}

		delay := m.policy.Delay(attempt)
		log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_attempts", m.policy.MaxAttempts).
			Dur("backoff", delay).
			Msg("⚠️ Model call failed. Retrying...")

		if err := m.sleep(ctx, delay); err != nil {
			return "", &apperrors.ModelCallError{Attempts: attempt + 1, Err: errors.Join(lastErr, err)}
		}
	}

	return "", &apperrors.ModelCallError{Attempts: m.policy.MaxAttempts, Err: lastErr}
}
