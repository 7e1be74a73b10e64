// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
	"github.com/inkwell-cms/inkwell/pkg/slug"
)

/*
TestNew_Valid accepts values in the canonical slug alphabet.
*/
func TestNew_Valid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"simple", "my-first-post"},
		{"digits", "post-123"},
		{"underscores", "my_post"},
		{"single_char", "a"},
		{"max_length", strings.Repeat("a", slug.MaxLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := slug.New(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.value, s.String())
		})
	}
}

/*
TestNew_Invalid rejects empty, malformed and oversized values with distinct
error codes.
*/
func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantCode string
	}{
		{"empty", "", "SLUG_REQUIRED"},
		{"uppercase", "My-Post", "SLUG_INVALID_FORMAT"},
		{"spaces", "my post", "SLUG_INVALID_FORMAT"},
		{"accents", "café", "SLUG_INVALID_FORMAT"},
		{"punctuation", "post!", "SLUG_INVALID_FORMAT"},
		{"too_long", strings.Repeat("a", slug.MaxLength+1), "SLUG_TOO_LONG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := slug.New(tt.value)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

/*
TestNew_TooLongMessage carries both the maximum and the actual length so the
client can show a precise message.
*/
func TestNew_TooLongMessage(t *testing.T) {
	_, err := slug.New(strings.Repeat("a", 150))
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Contains(t, ae.Message, "100")
	assert.Contains(t, ae.Message, "150")
}

/*
TestFromTitle covers the derivation pipeline: accent folding, lowercasing,
sanitization, and whitespace hyphenation.
*/
func TestFromTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "My First Post", "my-first-post"},
		{"accents", "Café au Lait", "cafe-au-lait"},
		{"punctuation_stripped", "Hello, World!", "hello-world"},
		{"whitespace_collapsed", "a  \t b", "a-b"},
		{"leading_trailing_space", "  trimmed  ", "trimmed"},
		{"digits_kept", "Top 10 Posts of 2026", "top-10-posts-of-2026"},
		{"underscores_kept", "snake_case title", "snake_case-title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := slug.FromTitle(tt.title)
			require.True(t, ok)
			assert.Equal(t, tt.want, s.String())
		})
	}
}

/*
TestFromTitle_Underivable returns ok=false when nothing usable survives the
pipeline instead of failing.
*/
func TestFromTitle_Underivable(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{"empty", ""},
		{"whitespace_only", "   "},
		{"punctuation_only", "!!! ???"},
		{"symbols_only", "@#$%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := slug.FromTitle(tt.title)
			assert.False(t, ok)
		})
	}
}

/*
TestEquals compares slugs structurally on the normalized value.
*/
func TestEquals(t *testing.T) {
	a, err := slug.New("same-post")
	require.NoError(t, err)
	b, err := slug.New("same-post")
	require.NoError(t, err)
	c, err := slug.New("other-post")
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
