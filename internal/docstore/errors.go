// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package docstore

import (
	"context"
	"errors"
	"strings"
)

// Kind tags a transport/backend failure with one of a fixed set of
// classifications that drive the retry policy.
type Kind string

const (
	KindNetwork Kind = "NETWORK_ERROR"
	KindTimeout Kind = "TIMEOUT"
	KindCORS    Kind = "CORS_ERROR"
	KindDB      Kind = "DB_ERROR"
	KindUnknown Kind = "UNKNOWN"
)

// Retryable reports whether a failure of this kind is worth retrying.
// Only transient transport failures qualify.
func (k Kind) Retryable() bool {
	return k == KindNetwork || k == KindTimeout
}

// ClassifiedError is a store failure tagged with its [Kind].
//
// Its message follows the "KIND:original message" convention so callers and
// log pipelines can match on the classification prefix.
type ClassifiedError struct {
	Kind  Kind
	Cause error
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	return string(e.Kind) + ":" + e.Cause.Error()
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *ClassifiedError) Unwrap() error { return e.Cause }

// Classify inspects an error and assigns it a [Kind].
//
// Classification is primarily message-based: drivers and proxies bury the
// interesting signal in the message text, so a set of substring probes covers
// far more failure shapes than sentinel comparisons alone. Context sentinels
// are checked first since their messages are ambiguous.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out") ||
		strings.Contains(msg, "deadline exceeded"):
		return KindTimeout

	case strings.Contains(msg, "network") || strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") || strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "broken pipe") || strings.Contains(msg, "fetch failed"):
		return KindNetwork

	case strings.Contains(msg, "cors") || strings.Contains(msg, "cross-origin"):
		return KindCORS

	case strings.Contains(msg, "database") || strings.Contains(msg, "mongo") ||
		strings.Contains(msg, "duplicate key") || strings.Contains(msg, "write exception") ||
		strings.Contains(msg, "db error"):
		return KindDB
	}

	return KindUnknown
}

// ErrNotFound is the sentinel returned by FindOne when no document matches.
var ErrNotFound = errors.New("docstore: document not found")
