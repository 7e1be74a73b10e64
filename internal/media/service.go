// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package media

import (
	"context"

	"github.com/inkwell-cms/inkwell/internal/access"
	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
)

// Service applies access control on top of the media repository.
//
// Reads are public, so the gate is currently a formality; it stays in place
// so the policy lives in one package when that changes.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a single asset by id.
func (service *Service) Get(ctx context.Context, requester access.Identity, id int) (*Media, error) {
	if !access.MediaRead(requester).Allowed() {
		return nil, apperr.Forbidden("Not allowed to read media")
	}
	return service.repo.FindByID(ctx, id)
}

// List returns one page of the asset catalog.
func (service *Service) List(ctx context.Context, requester access.Identity, opts ListOptions) (ListResult, error) {
	if !access.MediaRead(requester).Allowed() {
		return ListResult{}, apperr.Forbidden("Not allowed to read media")
	}
	return service.repo.FindAll(ctx, opts)
}
