package main

import (
	"context"
	"errors"
	"time"
)

// ErrRetriesExhausted останавливает воркер целиком (не отдельное сообщение).
var ErrRetriesExhausted = errors.New("max retry attempts exceeded")

// min(base * 2^attempt, max) без переполнения на больших attempt
func backoffDelay(r RetryConfig, attempt int) time.Duration {
	d := r.BaseDelay
	for i := 0; i < attempt; i++ {
		if d >= r.MaxDelay {
			return r.MaxDelay
		}
		d *= 2
	}
	if d > r.MaxDelay {
		return r.MaxDelay
	}
	return d
}

// retryState - счётчик, принадлежащий одному воркеру; между экземплярами не делится.
type retryState struct {
	cfg     RetryConfig
	retries int
}

func (s *retryState) reset() { s.retries = 0 }

// fail учитывает очередную ошибку и возвращает паузу перед повтором
// или ErrRetriesExhausted, если потолок превышен.
func (s *retryState) fail() (time.Duration, error) {
	s.retries++
	if s.retries > s.cfg.MaxRetries {
		return 0, ErrRetriesExhausted
	}
	return backoffDelay(s.cfg, s.retries), nil
}

// Пауза, прерываемая отменой контекста
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
