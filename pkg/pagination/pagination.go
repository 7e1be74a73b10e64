// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

// Package pagination provides the validated page-navigation value object and
// helpers for API list endpoints.
//
// # Overview
//
// [Pagination] is constructed from the requested page, the page size and the
// backend-reported total document count, and derives all navigation metadata
// (total pages, next/previous availability, query offset). [Params] and
// [FromRequest] cover the HTTP side: parsing and clamping query parameters
// before a repository call is made.
package pagination

import (
	"fmt"
	"net/http"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
	"github.com/inkwell-cms/inkwell/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Pagination is an immutable value object describing one page of a result set.
//
// Construct it through [New]; the zero value represents an empty first page.
type Pagination struct {
	page      int
	limit     int
	totalDocs int
}

// New validates the three inputs and returns a [Pagination].
//
// # Guards
//
// Checks run in order and each violation fails with its own validation error:
//
//  1. page must be at least 1.
//  2. limit must be at least 1.
//  3. totalDocs must not be negative.
func New(page, limit, totalDocs int) (Pagination, error) {
	if page < 1 {
		return Pagination{}, apperr.Invalid("PAGINATION_INVALID_PAGE",
			fmt.Sprintf("Page must be at least 1, got %d", page))
	}

	if limit < 1 {
		return Pagination{}, apperr.Invalid("PAGINATION_INVALID_LIMIT",
			fmt.Sprintf("Limit must be at least 1, got %d", limit))
	}

	if totalDocs < 0 {
		return Pagination{}, apperr.Invalid("PAGINATION_INVALID_TOTAL",
			fmt.Sprintf("Total documents must not be negative, got %d", totalDocs))
	}

	return Pagination{page: page, limit: limit, totalDocs: totalDocs}, nil
}

// Page returns the 1-indexed current page.
func (p Pagination) Page() int { return p.page }

// Limit returns the page size.
func (p Pagination) Limit() int { return p.limit }

// TotalDocs returns the backend-reported total document count.
func (p Pagination) TotalDocs() int { return p.totalDocs }

// TotalPages returns ceil(totalDocs / limit).
func (p Pagination) TotalPages() int {
	if p.limit < 1 {
		return 0
	}
	return (p.totalDocs + p.limit - 1) / p.limit
}

// HasNextPage reports whether a page after the current one exists.
func (p Pagination) HasNextPage() bool { return p.page < p.TotalPages() }

// HasPrevPage reports whether a page before the current one exists.
func (p Pagination) HasPrevPage() bool { return p.page > 1 }

// IsFirstPage reports whether the current page is the first one.
func (p Pagination) IsFirstPage() bool { return p.page == 1 }

// IsLastPage reports whether the current page is the last one.
//
// An empty result set (zero total pages) counts as its own last page.
func (p Pagination) IsLastPage() bool { return !p.HasNextPage() }

// Offset returns the number of documents to skip for the current page.
func (p Pagination) Offset() int {
	if p.page <= 1 {
		return 0
	}
	return (p.page - 1) * p.limit
}

// NextPage returns the following page number; ok is false when there is none.
func (p Pagination) NextPage() (int, bool) {
	if !p.HasNextPage() {
		return 0, false
	}
	return p.page + 1, true
}

// PrevPage returns the preceding page number; ok is false when there is none.
func (p Pagination) PrevPage() (int, bool) {
	if !p.HasPrevPage() {
		return 0, false
	}
	return p.page - 1, true
}

// Equals reports whether both instances were built from the same three inputs.
func (p Pagination) Equals(other Pagination) bool {
	return p.page == other.page && p.limit == other.limit && p.totalDocs == other.totalDocs
}

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the skip value derived from [Params.Page] and [Params.Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalDocs   int  `json:"total_docs"`
	TotalPages  int  `json:"total_pages"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

// MetaFor flattens a [Pagination] into the JSON response metadata block.
func MetaFor(p Pagination) Meta {
	return Meta{
		Page:        p.Page(),
		Limit:       p.Limit(),
		TotalDocs:   p.TotalDocs(),
		TotalPages:  p.TotalPages(),
		HasNextPage: p.HasNextPage(),
		HasPrevPage: p.HasPrevPage(),
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit].
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	return convert.ToIntD(r.URL.Query().Get(key), defaultVal)
}
