// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkwell-cms/inkwell/internal/docstore"
	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
	"github.com/inkwell-cms/inkwell/internal/platform/constants"
	"github.com/inkwell-cms/inkwell/pkg/pagination"
)

// ListOptions selects one page of the asset catalog.
type ListOptions struct {
	Page  int
	Limit int
}

// ListResult is one page of assets plus its pagination block.
type ListResult struct {
	Media      []*Media
	Pagination pagination.Pagination
}

// Repository is the persistence port of the media catalog.
type Repository interface {
	FindByID(ctx context.Context, id int) (*Media, error)
	FindAll(ctx context.Context, opts ListOptions) (ListResult, error)
}

// DocumentRepository implements [Repository] against the document store.
type DocumentRepository struct {
	store docstore.Store
}

func NewDocumentRepository(store docstore.Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

// FindByID loads a single asset by its numeric id.
func (r *DocumentRepository) FindByID(ctx context.Context, id int) (*Media, error) {
	where := docstore.Eq("id", id)
	doc, err := r.store.FindOne(ctx, constants.CollectionMedia, &where)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, apperr.NotFound("Media")
		}
		return nil, fmt.Errorf("media: find one: %w", err)
	}
	return FromDocument(doc)
}

// FindAll returns one page of assets, newest first.
func (r *DocumentRepository) FindAll(ctx context.Context, opts ListOptions) (ListResult, error) {
	page := opts.Page
	if page < 1 {
		page = pagination.DefaultPage
	}
	limit := opts.Limit
	if limit < 1 {
		limit = pagination.DefaultLimit
	}

	result, err := r.store.Find(ctx, docstore.FindParams{
		Collection: constants.CollectionMedia,
		Sort:       "-createdAt",
		Limit:      limit,
		Page:       page,
	})
	if err != nil {
		return ListResult{}, err
	}

	assets := make([]*Media, 0, len(result.Docs))
	for _, doc := range result.Docs {
		m, err := FromDocument(doc)
		if err != nil {
			return ListResult{}, err
		}
		assets = append(assets, m)
	}

	meta, err := pagination.New(page, limit, result.TotalDocs)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{Media: assets, Pagination: meta}, nil
}
