// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package post

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkwell-cms/inkwell/internal/docstore"
	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
	"github.com/inkwell-cms/inkwell/internal/platform/constants"
	"github.com/inkwell-cms/inkwell/pkg/pagination"
)

// defaultSort orders listings newest-published first.
const defaultSort = "-publishedDate"

// DocumentRepository implements [Repository] against the external
// document-collection service, typically through the resilient client.
//
// # Write Path
//
// Save and Delete fail explicitly: the current deployment is read-oriented
// and writes flow through the admin surface of the external service. The
// seam is intentional, not a gap.
type DocumentRepository struct {
	store docstore.Store
}

// NewDocumentRepository wraps a document store as a post [Repository].
func NewDocumentRepository(store docstore.Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

// FindByID loads a single post by its numeric id.
func (r *DocumentRepository) FindByID(ctx context.Context, id int) (*Post, error) {
	where := docstore.Eq("id", id)
	return r.findOne(ctx, &where)
}

// FindBySlug loads a single post by its slug.
func (r *DocumentRepository) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	where := docstore.Eq("slug", slug)
	return r.findOne(ctx, &where)
}

// FindAll returns one page of posts matching the options.
//
// # Filtering
//
// The status filter (explicit status, else published-only) and the optional
// tag filter combine with logical AND.
func (r *DocumentRepository) FindAll(ctx context.Context, opts ListOptions) (ListResult, error) {
	page, limit := windowOf(opts)

	result, err := r.store.Find(ctx, docstore.FindParams{
		Collection: constants.CollectionPosts,
		Where:      listFilter(opts.Status, opts.Tags),
		Sort:       defaultSort,
		Limit:      limit,
		Page:       page,
	})
	if err != nil {
		return ListResult{}, err
	}

	posts := make([]*Post, 0, len(result.Docs))
	for _, doc := range result.Docs {
		p, err := FromDocument(doc)
		if err != nil {
			return ListResult{}, err
		}
		posts = append(posts, p)
	}

	meta, err := pagination.New(page, limit, result.TotalDocs)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{Posts: posts, Pagination: meta}, nil
}

// FindByTag returns one page of posts carrying the tag.
func (r *DocumentRepository) FindByTag(ctx context.Context, tag string, opts ListOptions) (ListResult, error) {
	opts.Tags = []string{tag}
	return r.FindAll(ctx, opts)
}

// AllTags returns the distinct tag names across published posts, in order of
// first appearance.
func (r *DocumentRepository) AllTags(ctx context.Context) ([]string, error) {
	result, err := r.store.Find(ctx, docstore.FindParams{
		Collection: constants.CollectionPosts,
		Where:      listFilter(nil, nil),
		Select:     []string{"tags"},
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var tags []string
	for _, doc := range result.Docs {
		for _, t := range tagsFrom(doc["tags"]) {
			if _, dup := seen[t.Name]; dup {
				continue
			}
			seen[t.Name] = struct{}{}
			tags = append(tags, t.Name)
		}
	}
	return tags, nil
}

// PublishedSlugs returns the slugs of all published posts.
func (r *DocumentRepository) PublishedSlugs(ctx context.Context) ([]string, error) {
	result, err := r.store.Find(ctx, docstore.FindParams{
		Collection: constants.CollectionPosts,
		Where:      listFilter(nil, nil),
		Select:     []string{"slug"},
	})
	if err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(result.Docs))
	for _, doc := range result.Docs {
		if slug, ok := asString(doc["slug"]); ok && slug != "" {
			slugs = append(slugs, slug)
		}
	}
	return slugs, nil
}

// Save is not supported by the read-oriented deployment.
func (r *DocumentRepository) Save(ctx context.Context, p *Post) (*Post, error) {
	return nil, apperr.NotImplemented("Saving posts")
}

// Delete is not supported by the read-oriented deployment.
func (r *DocumentRepository) Delete(ctx context.Context, id int) error {
	return apperr.NotImplemented("Deleting posts")
}

// Count returns the number of posts matching the options.
func (r *DocumentRepository) Count(ctx context.Context, opts CountOptions) (int, error) {
	return r.store.Count(ctx, docstore.CountParams{
		Collection: constants.CollectionPosts,
		Where:      listFilter(opts.Status, opts.Tags),
	})
}

// findOne loads and maps a single document, translating the store's
// not-found sentinel into the standard API error.
func (r *DocumentRepository) findOne(ctx context.Context, where *docstore.Where) (*Post, error) {
	doc, err := r.store.FindOne(ctx, constants.CollectionPosts, where)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, apperr.NotFound("Post")
		}
		return nil, fmt.Errorf("post: find one: %w", err)
	}
	return FromDocument(doc)
}

// listFilter builds the AND of the status filter (explicit, else
// published-only) and the optional tag filter. Multiple tags match any-of.
func listFilter(status *Status, tags []string) *docstore.Where {
	statusValue := statusPublished
	if status != nil {
		statusValue = status.String()
	}

	statusCond := docstore.Eq("status", statusValue)
	if len(tags) == 0 {
		return &statusCond
	}

	var tagCond docstore.Where
	if len(tags) == 1 {
		tagCond = docstore.Eq("tags.tag", tags[0])
	} else {
		values := make([]any, len(tags))
		for i, t := range tags {
			values[i] = t
		}
		tagCond = docstore.In("tags.tag", values...)
	}

	combined := docstore.And(statusCond, tagCond)
	return &combined
}

// windowOf normalizes the requested page window.
func windowOf(opts ListOptions) (page, limit int) {
	page = opts.Page
	if page < 1 {
		page = pagination.DefaultPage
	}
	limit = opts.Limit
	if limit < 1 {
		limit = pagination.DefaultLimit
	}
	return page, limit
}
