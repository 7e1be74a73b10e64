// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package docstore_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell/internal/docstore"
)

/*
TestClassify assigns each failure shape its kind via message probes, with
context sentinels checked before the text.
*/
func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want docstore.Kind
	}{
		{"deadline_sentinel", context.DeadlineExceeded, docstore.KindTimeout},
		{"wrapped_deadline", fmt.Errorf("find: %w", context.DeadlineExceeded), docstore.KindTimeout},
		{"timeout_text", errors.New("operation timed out after 5s"), docstore.KindTimeout},
		{"connection_refused", errors.New("dial tcp 10.0.0.1:27017: connection refused"), docstore.KindNetwork},
		{"connection_reset", errors.New("read: connection reset by peer"), docstore.KindNetwork},
		{"dns_failure", errors.New("lookup db.internal: no such host"), docstore.KindNetwork},
		{"fetch_failed", errors.New("fetch failed"), docstore.KindNetwork},
		{"cors", errors.New("blocked by CORS policy"), docstore.KindCORS},
		{"cross_origin", errors.New("cross-origin request denied"), docstore.KindCORS},
		{"duplicate_key", errors.New("E11000 duplicate key error"), docstore.KindDB},
		{"driver_error", errors.New("mongo: server selection error"), docstore.KindDB},
		{"unknown", errors.New("something odd happened"), docstore.KindUnknown},
		{"nil", nil, docstore.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, docstore.Classify(tt.err))
		})
	}
}

/*
TestKind_Retryable marks only transient transport failures as retryable.
*/
func TestKind_Retryable(t *testing.T) {
	assert.True(t, docstore.KindNetwork.Retryable())
	assert.True(t, docstore.KindTimeout.Retryable())
	assert.False(t, docstore.KindCORS.Retryable())
	assert.False(t, docstore.KindDB.Retryable())
	assert.False(t, docstore.KindUnknown.Retryable())
}

/*
TestClassifiedError_Message follows the "KIND:message" convention and keeps
the cause chain traversable.
*/
func TestClassifiedError_Message(t *testing.T) {
	cause := errors.New("connection refused")
	classified := &docstore.ClassifiedError{Kind: docstore.KindNetwork, Cause: cause}

	assert.Equal(t, "NETWORK_ERROR:connection refused", classified.Error())
	require.True(t, errors.Is(classified, cause))
}
