// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package docstore

import (
	"context"
	"log/slog"
	"time"
)

// Retry policy for transient store failures.
const (
	// MaxRetries is the number of additional attempts after the first failure.
	MaxRetries = 2
	// BaseBackoff is the delay before the first retry; it doubles per attempt.
	BaseBackoff = 100 * time.Millisecond
)

// Resilient decorates a [Store] with error classification and bounded retry.
//
// # Policy
//
// Every failure is classified via [Classify]. NETWORK_ERROR and TIMEOUT
// failures are retried up to [MaxRetries] times with exponential backoff
// starting at [BaseBackoff]; every other kind fails immediately. Errors that
// survive the retry budget are returned as [*ClassifiedError] so callers see
// the "KIND:message" form.
//
// The client itself carries no timeout primitive — callers bound the total
// wait through their context deadline, which is honored between attempts.
type Resilient struct {
	inner  Store
	logger *slog.Logger

	// sleep is swapped out in tests to avoid real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewResilient wraps a store with the retry/classification policy.
func NewResilient(inner Store, logger *slog.Logger) *Resilient {
	return &Resilient{
		inner:  inner,
		logger: logger,
		sleep:  sleepContext,
	}
}

// Find implements [Store].
func (r *Resilient) Find(ctx context.Context, params FindParams) (FindResult, error) {
	return withRetry(ctx, r, "find", params.Collection, func() (FindResult, error) {
		return r.inner.Find(ctx, params)
	})
}

// FindOne implements [Store].
func (r *Resilient) FindOne(ctx context.Context, collection string, where *Where) (Document, error) {
	return withRetry(ctx, r, "find_one", collection, func() (Document, error) {
		return r.inner.FindOne(ctx, collection, where)
	})
}

// Create implements [Store].
func (r *Resilient) Create(ctx context.Context, collection string, doc Document) (Document, error) {
	return withRetry(ctx, r, "create", collection, func() (Document, error) {
		return r.inner.Create(ctx, collection, doc)
	})
}

// Update implements [Store].
func (r *Resilient) Update(ctx context.Context, collection string, where *Where, doc Document) (Document, error) {
	return withRetry(ctx, r, "update", collection, func() (Document, error) {
		return r.inner.Update(ctx, collection, where, doc)
	})
}

// Delete implements [Store].
func (r *Resilient) Delete(ctx context.Context, collection string, where *Where) error {
	_, err := withRetry(ctx, r, "delete", collection, func() (struct{}, error) {
		return struct{}{}, r.inner.Delete(ctx, collection, where)
	})
	return err
}

// Count implements [Store].
func (r *Resilient) Count(ctx context.Context, params CountParams) (int, error) {
	return withRetry(ctx, r, "count", params.Collection, func() (int, error) {
		return r.inner.Count(ctx, params)
	})
}

// withRetry runs one store call under the retry policy.
func withRetry[T any](ctx context.Context, r *Resilient, op, collection string, call func() (T, error)) (T, error) {
	var zero T
	backoff := BaseBackoff

	for attempt := 0; ; attempt++ {
		result, err := call()
		if err == nil {
			return result, nil
		}

		// Not-found is a domain outcome, not a transport failure.
		if err == ErrNotFound {
			return zero, err
		}

		kind := Classify(err)
		if !kind.Retryable() || attempt >= MaxRetries {
			return zero, &ClassifiedError{Kind: kind, Cause: err}
		}

		r.logger.Warn("docstore_retrying",
			slog.String("op", op),
			slog.String("collection", collection),
			slog.String("kind", string(kind)),
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", backoff),
		)

		if sleepErr := r.sleep(ctx, backoff); sleepErr != nil {
			return zero, &ClassifiedError{Kind: kind, Cause: err}
		}
		backoff *= 2
	}
}

// sleepContext suspends for d, waking early if the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
