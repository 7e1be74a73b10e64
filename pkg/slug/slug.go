// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

// Package slug defines the validated URL identifier for posts.
//
// # Usage
//
// Slugs are the human-readable identifiers used in post URLs (e.g.,
// "my-first-post"). This package handles creation-time validation as well as
// derivation from arbitrary Unicode titles (normalization, accent removal,
// character sanitization).
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
)

// MaxLength is the upper bound for a slug's byte length.
const MaxLength = 100

var (
	// validSlug matches the canonical slug alphabet.
	validSlug = regexp.MustCompile(`^[a-z0-9_-]+$`)
	// whitespaceRun matches one or more consecutive whitespace characters.
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Slug is an immutable, validated URL identifier.
//
// The zero value is invalid; construct one through [New] or [FromTitle].
type Slug struct {
	value string
}

// New validates a raw string and returns it as a [Slug].
//
// # Errors
//
//   - SLUG_REQUIRED when the value is empty.
//   - SLUG_INVALID_FORMAT when the value contains characters outside [a-z0-9_-].
//   - SLUG_TOO_LONG when the value exceeds [MaxLength] (the message carries
//     both the maximum and the actual length).
func New(value string) (Slug, error) {
	if value == "" {
		return Slug{}, apperr.Invalid("SLUG_REQUIRED", "Slug is required")
	}

	if !validSlug.MatchString(value) {
		return Slug{}, apperr.Invalid("SLUG_INVALID_FORMAT",
			"Slug may only contain lowercase letters, digits, hyphens and underscores")
	}

	if len(value) > MaxLength {
		return Slug{}, apperr.Invalid("SLUG_TOO_LONG",
			fmt.Sprintf("Slug must be at most %d characters, got %d", MaxLength, len(value)))
	}

	return Slug{value: value}, nil
}

// FromTitle derives a slug from an arbitrary Unicode title.
//
// # Transformation Pipeline
//
//  1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
//  2. Removes combining marks (accents).
//  3. Converts to lowercase.
//  4. Strips characters outside the letter/digit/space/underscore/hyphen set.
//  5. Collapses whitespace runs into single hyphens and trims the edges.
//
// It never fails: when the title yields nothing usable (punctuation-only,
// whitespace-only, empty) the second return value is false and callers must
// treat the result as "could not derive".
func FromTitle(title string) (Slug, bool) {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	normalized, _, _ := transform.String(t, title)

	// 2. Lowercase
	normalized = strings.ToLower(normalized)

	// 3. Keep only letters, digits, whitespace, underscores and hyphens
	var b strings.Builder
	for _, r := range normalized {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	// 4. Hyphenate whitespace runs and trim
	candidate := whitespaceRun.ReplaceAllString(b.String(), "-")
	candidate = strings.Trim(candidate, "-")

	if candidate == "" {
		return Slug{}, false
	}

	// The pipeline should always produce a valid slug; re-validate anyway so a
	// pipeline bug can never leak an invalid value into the domain.
	s, err := New(candidate)
	if err != nil {
		return Slug{}, false
	}

	return s, true
}

// String returns the normalized slug value.
func (s Slug) String() string { return s.value }

// Equals reports structural equality on the normalized value.
func (s Slug) Equals(other Slug) bool { return s.value == other.value }

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
