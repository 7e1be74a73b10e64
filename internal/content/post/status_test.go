// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package post_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell/internal/content/post"
	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
)

/*
TestParseStatus accepts exactly the two canonical literals.
*/
func TestParseStatus(t *testing.T) {
	draft, err := post.ParseStatus("draft")
	require.NoError(t, err)
	assert.True(t, draft.IsDraft())
	assert.False(t, draft.IsPublished())

	published, err := post.ParseStatus("published")
	require.NoError(t, err)
	assert.True(t, published.IsPublished())
	assert.False(t, published.IsDraft())
}

/*
TestParseStatus_Invalid rejects everything else, naming the offending value.
*/
func TestParseStatus_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"unknown", "archived"},
		{"wrong_case", "Draft"},
		{"padded", " draft"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := post.ParseStatus(tt.value)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "POST_STATUS_INVALID", ae.Code)
			assert.Contains(t, ae.Message, "draft")
			assert.Contains(t, ae.Message, "published")
		})
	}
}

/*
TestStatus_Equality compares structurally and round-trips through String.
*/
func TestStatus_Equality(t *testing.T) {
	assert.True(t, post.Draft().Equals(post.Draft()))
	assert.False(t, post.Draft().Equals(post.Published()))
	assert.Equal(t, "draft", post.Draft().String())
	assert.Equal(t, "published", post.Published().String())

	parsed, err := post.ParseStatus("published")
	require.NoError(t, err)
	assert.True(t, parsed.Equals(post.Published()))
}
