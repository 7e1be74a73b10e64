// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package docstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedStore fails a fixed number of times before succeeding.
type scriptedStore struct {
	failures int
	err      error
	calls    int
}

func (s *scriptedStore) attempt() error {
	s.calls++
	if s.calls <= s.failures {
		return s.err
	}
	return nil
}

func (s *scriptedStore) Find(ctx context.Context, params FindParams) (FindResult, error) {
	if err := s.attempt(); err != nil {
		return FindResult{}, err
	}
	return FindResult{TotalDocs: 1, Docs: []Document{{"id": 1}}}, nil
}

func (s *scriptedStore) FindOne(ctx context.Context, collection string, where *Where) (Document, error) {
	if err := s.attempt(); err != nil {
		return nil, err
	}
	return Document{"id": 1}, nil
}

func (s *scriptedStore) Create(ctx context.Context, collection string, doc Document) (Document, error) {
	if err := s.attempt(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *scriptedStore) Update(ctx context.Context, collection string, where *Where, doc Document) (Document, error) {
	if err := s.attempt(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *scriptedStore) Delete(ctx context.Context, collection string, where *Where) error {
	return s.attempt()
}

func (s *scriptedStore) Count(ctx context.Context, params CountParams) (int, error) {
	if err := s.attempt(); err != nil {
		return 0, err
	}
	return 1, nil
}

// newTestResilient wires the decorator with an instant fake sleep that
// records the requested backoff durations.
func newTestResilient(inner Store) (*Resilient, *[]time.Duration) {
	var slept []time.Duration
	r := NewResilient(inner, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return r, &slept
}

/*
TestResilient_RetriesTransientFailures retries network failures and succeeds
once the backend recovers, doubling the backoff per attempt.
*/
func TestResilient_RetriesTransientFailures(t *testing.T) {
	inner := &scriptedStore{failures: 2, err: errors.New("connection refused")}
	r, slept := newTestResilient(inner)

	result, err := r.Find(context.Background(), FindParams{Collection: "posts"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalDocs)
	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, []time.Duration{BaseBackoff, 2 * BaseBackoff}, *slept)
}

/*
TestResilient_ExhaustsBudget stops after MaxRetries extra attempts and wraps
the final failure with its classification.
*/
func TestResilient_ExhaustsBudget(t *testing.T) {
	inner := &scriptedStore{failures: 10, err: errors.New("operation timed out")}
	r, _ := newTestResilient(inner)

	_, err := r.FindOne(context.Background(), "posts", nil)
	require.Error(t, err)
	assert.Equal(t, 1+MaxRetries, inner.calls)

	var classified *ClassifiedError
	require.ErrorAs(t, err, &classified)
	assert.Equal(t, KindTimeout, classified.Kind)
	assert.Equal(t, "TIMEOUT:operation timed out", classified.Error())
}

/*
TestResilient_NonRetryableFailsImmediately never retries database or unknown
failures.
*/
func TestResilient_NonRetryableFailsImmediately(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
	}{
		{"db_error", errors.New("E11000 duplicate key error"), KindDB},
		{"cors_error", errors.New("blocked by CORS policy"), KindCORS},
		{"unknown_error", errors.New("weird state"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &scriptedStore{failures: 10, err: tt.err}
			r, slept := newTestResilient(inner)

			_, err := r.Count(context.Background(), CountParams{Collection: "posts"})
			require.Error(t, err)
			assert.Equal(t, 1, inner.calls)
			assert.Empty(t, *slept)

			var classified *ClassifiedError
			require.ErrorAs(t, err, &classified)
			assert.Equal(t, tt.wantKind, classified.Kind)
		})
	}
}

/*
TestResilient_NotFoundPassesThrough keeps the not-found sentinel unwrapped:
it is a domain outcome, not a transport failure.
*/
func TestResilient_NotFoundPassesThrough(t *testing.T) {
	inner := &scriptedStore{failures: 10, err: ErrNotFound}
	r, slept := newTestResilient(inner)

	_, err := r.FindOne(context.Background(), "posts", nil)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, inner.calls)
	assert.Empty(t, *slept)

	var classified *ClassifiedError
	assert.False(t, errors.As(err, &classified))
}

/*
TestResilient_ContextCancelledDuringBackoff abandons the retry loop when the
caller's context dies between attempts.
*/
func TestResilient_ContextCancelledDuringBackoff(t *testing.T) {
	inner := &scriptedStore{failures: 10, err: errors.New("connection reset by peer")}
	r := NewResilient(inner, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.sleep = func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}

	err := r.Delete(context.Background(), "posts", nil)
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)

	var classified *ClassifiedError
	require.ErrorAs(t, err, &classified)
	assert.Equal(t, KindNetwork, classified.Kind)
}

/*
TestSleepContext wakes early on cancellation.
*/
func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleepContext(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)

	require.NoError(t, sleepContext(context.Background(), time.Millisecond))
}
