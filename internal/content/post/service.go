// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package post

import (
	"context"
	"log/slog"

	"github.com/inkwell-cms/inkwell/internal/access"
	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
	"github.com/inkwell-cms/inkwell/internal/platform/validate"
	"github.com/inkwell-cms/inkwell/pkg/pagination"
	"github.com/inkwell-cms/inkwell/pkg/slug"
)

// Service applies access control on top of the repository and owns the
// read-path caching policy.
type Service struct {
	repo   Repository
	cache  *SlugCache
	logger *slog.Logger
}

// NewService constructs the post service. cache may be nil to disable the
// published-slug cache.
func NewService(repo Repository, cache *SlugCache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// List returns one page of posts visible to the requester.
//
// # Access
//
// The read rule may restrict anonymous requesters to published posts. That
// restriction combines with the requested status via AND — an anonymous
// request for drafts is therefore an empty page, not an error.
func (service *Service) List(ctx context.Context, requester access.Identity, opts ListOptions) (ListResult, error) {
	decision := access.PostsRead(requester)
	if !decision.Allowed() {
		return ListResult{}, apperr.Forbidden("Not allowed to read posts")
	}

	if _, filtered := decision.Filter(); filtered {
		if opts.Status != nil && opts.Status.IsDraft() {
			return emptyPage(opts)
		}
		published := Published()
		opts.Status = &published
	}

	return service.repo.FindAll(ctx, opts)
}

// GetBySlug returns a single post visible to the requester.
//
// Posts hidden by the access filter surface as not-found rather than
// forbidden, so their existence is not leaked.
func (service *Service) GetBySlug(ctx context.Context, requester access.Identity, slugValue string) (*Post, error) {
	decision := access.PostsRead(requester)
	if !decision.Allowed() {
		return nil, apperr.Forbidden("Not allowed to read posts")
	}

	p, err := service.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}

	if _, filtered := decision.Filter(); filtered && !p.IsPublished() {
		return nil, apperr.NotFound("Post")
	}
	return p, nil
}

// Tags returns the distinct tag names across published posts.
func (service *Service) Tags(ctx context.Context, requester access.Identity) ([]string, error) {
	if !access.PostsRead(requester).Allowed() {
		return nil, apperr.Forbidden("Not allowed to read posts")
	}
	return service.repo.AllTags(ctx)
}

// PublishedSlugs returns the slugs of all published posts, read through the
// cache when one is configured. Cache failures degrade to the repository.
func (service *Service) PublishedSlugs(ctx context.Context, requester access.Identity) ([]string, error) {
	if !access.PostsRead(requester).Allowed() {
		return nil, apperr.Forbidden("Not allowed to read posts")
	}

	if service.cache != nil {
		if slugs, ok := service.cache.Get(ctx); ok {
			return slugs, nil
		}
	}

	slugs, err := service.repo.PublishedSlugs(ctx)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		service.cache.Set(ctx, slugs)
	}
	return slugs, nil
}

// Count returns the number of posts matching the options, under the same
// access filtering as [Service.List].
func (service *Service) Count(ctx context.Context, requester access.Identity, opts CountOptions) (int, error) {
	decision := access.PostsRead(requester)
	if !decision.Allowed() {
		return 0, apperr.Forbidden("Not allowed to read posts")
	}

	if _, filtered := decision.Filter(); filtered {
		if opts.Status != nil && opts.Status.IsDraft() {
			return 0, nil
		}
		published := Published()
		opts.Status = &published
	}

	return service.repo.Count(ctx, opts)
}

// CreateInput carries the caller-supplied fields of a new draft.
type CreateInput struct {
	Title   string   `json:"title"`
	Content RichText `json:"content"`
	Excerpt *string  `json:"excerpt"`
	Tags    []string `json:"tags"`
}

// Create validates the input, derives a slug from the title and persists a
// new draft owned by the requester.
//
// On the current read-oriented deployment the final save fails with
// NOT_IMPLEMENTED; the validation and access path is still enforced so the
// API surface behaves consistently once writes are enabled.
func (service *Service) Create(ctx context.Context, requester access.Identity, input CreateInput) (*Post, error) {
	if !access.PostsCreate(requester).Allowed() {
		return nil, apperr.Forbidden("Not allowed to create posts")
	}

	v := &validate.Validator{}
	v.Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Custom("content", input.Content != nil && !input.Content.HasRoot(), "Content must carry a root node")
	if err := v.Err(); err != nil {
		return nil, err
	}

	derived, ok := slug.FromTitle(input.Title)
	if !ok {
		return nil, validate.RequiredError("title", "Title must contain at least one alphanumeric character")
	}

	draft := NewPost(input.Title, derived.String(), input.Content, requester.UserID)
	draft = draft.UpdateExcerpt(input.Excerpt)
	for _, name := range input.Tags {
		draft = draft.AddTag(Tag{Name: name})
	}

	return service.repo.Save(ctx, draft)
}

// Delete removes a post. Gated on the delete rule; the current repository
// rejects the write path explicitly.
func (service *Service) Delete(ctx context.Context, requester access.Identity, id int) error {
	if !access.PostsDelete(requester).Allowed() {
		return apperr.Forbidden("Not allowed to delete posts")
	}
	return service.repo.Delete(ctx, id)
}

// emptyPage builds a valid zero-result page for the requested window.
func emptyPage(opts ListOptions) (ListResult, error) {
	page, limit := windowOf(opts)
	meta, err := pagination.New(page, limit, 0)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Posts: []*Post{}, Pagination: meta}, nil
}
