// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package post

import (
	"context"

	"github.com/inkwell-cms/inkwell/pkg/pagination"
)

// ListOptions filters and pages a post listing.
type ListOptions struct {
	// Page and Limit select the result window (1-indexed, clamped upstream).
	Page  int
	Limit int

	// Status restricts by lifecycle state. When nil, listings default to
	// published-only — drafts must be requested explicitly.
	Status *Status

	// Tags restricts to posts carrying any of the named tags (combined
	// with Status via AND).
	Tags []string
}

// CountOptions filters a post count. Same status defaulting as [ListOptions].
type CountOptions struct {
	Status *Status
	Tags   []string
}

// ListResult is one page of posts plus the validated pagination metadata
// built from the requested window and the backend-reported total.
type ListResult struct {
	Posts      []*Post
	Pagination pagination.Pagination
}

// Repository is the abstract contract for loading and storing posts.
type Repository interface {
	FindByID(ctx context.Context, id int) (*Post, error)
	FindBySlug(ctx context.Context, slug string) (*Post, error)
	FindAll(ctx context.Context, opts ListOptions) (ListResult, error)
	FindByTag(ctx context.Context, tag string, opts ListOptions) (ListResult, error)

	// AllTags returns the distinct tag names across published posts.
	AllTags(ctx context.Context) ([]string, error)

	// PublishedSlugs returns the slugs of all published posts, for sitemap
	// and static-path generation.
	PublishedSlugs(ctx context.Context) ([]string, error)

	Save(ctx context.Context, p *Post) (*Post, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context, opts CountOptions) (int, error)
}
