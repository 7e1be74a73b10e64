// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkwell-cms/inkwell/internal/docstore"
	"github.com/inkwell-cms/inkwell/internal/platform/constants"
	"github.com/inkwell-cms/inkwell/pkg/pagination"
)

// ListOptions selects one page of accounts, optionally restricted to a
// single id (the self-only visibility case).
type ListOptions struct {
	Page   int
	Limit  int
	OnlyID int
}

// ListResult is one page of accounts plus its pagination block.
type ListResult struct {
	Users      []*User
	Pagination pagination.Pagination
}

// Repository is the persistence port of the users collection. It also
// satisfies [access.UserCounter] for the bootstrap rule.
type Repository interface {
	FindByID(ctx context.Context, id int) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, opts ListOptions) (ListResult, error)
	Create(ctx context.Context, u *User) (*User, error)
	Update(ctx context.Context, u *User) (*User, error)
	Delete(ctx context.Context, id int) error
	CountUsers(ctx context.Context) (int, error)
}

// DocumentRepository implements [Repository] against the document store.
type DocumentRepository struct {
	store docstore.Store
}

func NewDocumentRepository(store docstore.Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

// FindByID loads a single account by its numeric id.
func (r *DocumentRepository) FindByID(ctx context.Context, id int) (*User, error) {
	where := docstore.Eq("id", id)
	return r.findOne(ctx, &where)
}

// FindByEmail loads a single account by email.
func (r *DocumentRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	where := docstore.Eq("email", email)
	return r.findOne(ctx, &where)
}

// FindAll returns one page of accounts, oldest first.
func (r *DocumentRepository) FindAll(ctx context.Context, opts ListOptions) (ListResult, error) {
	page := opts.Page
	if page < 1 {
		page = pagination.DefaultPage
	}
	limit := opts.Limit
	if limit < 1 {
		limit = pagination.DefaultLimit
	}

	var where *docstore.Where
	if opts.OnlyID != 0 {
		w := docstore.Eq("id", opts.OnlyID)
		where = &w
	}

	result, err := r.store.Find(ctx, docstore.FindParams{
		Collection: constants.CollectionUsers,
		Where:      where,
		Sort:       "createdAt",
		Limit:      limit,
		Page:       page,
	})
	if err != nil {
		return ListResult{}, err
	}

	accounts := make([]*User, 0, len(result.Docs))
	for _, doc := range result.Docs {
		u, err := FromDocument(doc)
		if err != nil {
			return ListResult{}, err
		}
		accounts = append(accounts, u)
	}

	meta, err := pagination.New(page, limit, result.TotalDocs)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{Users: accounts, Pagination: meta}, nil
}

// Create persists a new account. The store assigns the sequential id when
// the document carries none.
func (r *DocumentRepository) Create(ctx context.Context, u *User) (*User, error) {
	doc := ToDocument(u)
	if u.ID == 0 {
		delete(doc, "id")
	}

	created, err := r.store.Create(ctx, constants.CollectionUsers, doc)
	if err != nil {
		return nil, fmt.Errorf("users: create: %w", err)
	}
	return FromDocument(created)
}

// Update overwrites the mutable fields of an existing account.
func (r *DocumentRepository) Update(ctx context.Context, u *User) (*User, error) {
	where := docstore.Eq("id", u.ID)

	doc := ToDocument(u)
	delete(doc, "id")
	delete(doc, "createdAt")

	updated, err := r.store.Update(ctx, constants.CollectionUsers, &where, doc)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("users: update: %w", err)
	}
	return FromDocument(updated)
}

// Delete removes an account.
func (r *DocumentRepository) Delete(ctx context.Context, id int) error {
	where := docstore.Eq("id", id)
	if err := r.store.Delete(ctx, constants.CollectionUsers, &where); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return notFound()
		}
		return fmt.Errorf("users: delete: %w", err)
	}
	return nil
}

// CountUsers returns the total number of accounts.
func (r *DocumentRepository) CountUsers(ctx context.Context) (int, error) {
	return r.store.Count(ctx, docstore.CountParams{Collection: constants.CollectionUsers})
}

func (r *DocumentRepository) findOne(ctx context.Context, where *docstore.Where) (*User, error) {
	doc, err := r.store.FindOne(ctx, constants.CollectionUsers, where)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("users: find one: %w", err)
	}
	return FromDocument(doc)
}
