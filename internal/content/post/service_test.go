// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package post_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell/internal/access"
	"github.com/inkwell-cms/inkwell/internal/content/post"
	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
	"github.com/inkwell-cms/inkwell/internal/platform/sec"
	"github.com/inkwell-cms/inkwell/pkg/pagination"
)

// fakeRepo is a canned-response post repository recording the options it was
// called with.
type fakeRepo struct {
	bySlug   *post.Post
	slugErr  error
	list     post.ListResult
	slugs    []string
	lastOpts post.ListOptions
	slugHits int
}

func (r *fakeRepo) FindByID(ctx context.Context, id int) (*post.Post, error) { return r.bySlug, nil }

func (r *fakeRepo) FindBySlug(ctx context.Context, slug string) (*post.Post, error) {
	return r.bySlug, r.slugErr
}

func (r *fakeRepo) FindAll(ctx context.Context, opts post.ListOptions) (post.ListResult, error) {
	r.lastOpts = opts
	return r.list, nil
}

func (r *fakeRepo) FindByTag(ctx context.Context, tag string, opts post.ListOptions) (post.ListResult, error) {
	opts.Tags = []string{tag}
	return r.FindAll(ctx, opts)
}

func (r *fakeRepo) AllTags(ctx context.Context) ([]string, error) { return []string{"golang"}, nil }

func (r *fakeRepo) PublishedSlugs(ctx context.Context) ([]string, error) {
	r.slugHits++
	return r.slugs, nil
}

func (r *fakeRepo) Save(ctx context.Context, p *post.Post) (*post.Post, error) {
	return nil, apperr.NotImplemented("Saving posts")
}

func (r *fakeRepo) Delete(ctx context.Context, id int) error {
	return apperr.NotImplemented("Deleting posts")
}

func (r *fakeRepo) Count(ctx context.Context, opts post.CountOptions) (int, error) { return 0, nil }

func newService(repo post.Repository) *post.Service {
	return post.NewService(repo, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func emptyListResult(t *testing.T) post.ListResult {
	t.Helper()
	meta, err := pagination.New(1, 20, 0)
	require.NoError(t, err)
	return post.ListResult{Posts: []*post.Post{}, Pagination: meta}
}

var authenticated = access.Identity{UserID: 5, Role: sec.RoleEditor}

/*
TestList_AnonymousForcedToPublished overrides the status with published-only
for anonymous requesters.
*/
func TestList_AnonymousForcedToPublished(t *testing.T) {
	repo := &fakeRepo{list: emptyListResult(t)}
	service := newService(repo)

	_, err := service.List(context.Background(), access.Anonymous(), post.ListOptions{})
	require.NoError(t, err)
	require.NotNil(t, repo.lastOpts.Status)
	assert.True(t, repo.lastOpts.Status.IsPublished())
}

/*
TestList_AnonymousDraftRequestIsEmpty resolves the AND of "drafts only" and
"published only" to an empty page rather than an error.
*/
func TestList_AnonymousDraftRequestIsEmpty(t *testing.T) {
	repo := &fakeRepo{}
	service := newService(repo)

	draft := post.Draft()
	result, err := service.List(context.Background(), access.Anonymous(), post.ListOptions{Status: &draft})
	require.NoError(t, err)
	assert.Empty(t, result.Posts)
	assert.Equal(t, 0, result.Pagination.TotalDocs())
	assert.Zero(t, repo.lastOpts, "repository must not be queried")
}

/*
TestList_AuthenticatedKeepsRequestedStatus passes draft listings through for
signed-in requesters.
*/
func TestList_AuthenticatedKeepsRequestedStatus(t *testing.T) {
	repo := &fakeRepo{list: emptyListResult(t)}
	service := newService(repo)

	draft := post.Draft()
	_, err := service.List(context.Background(), authenticated, post.ListOptions{Status: &draft})
	require.NoError(t, err)
	require.NotNil(t, repo.lastOpts.Status)
	assert.True(t, repo.lastOpts.Status.IsDraft())
}

/*
TestGetBySlug_HidesDraftsFromAnonymous surfaces invisible drafts as
not-found, not forbidden.
*/
func TestGetBySlug_HidesDraftsFromAnonymous(t *testing.T) {
	draft := post.NewPost("Hidden", "hidden", post.RichText{"root": 1}, 1)
	repo := &fakeRepo{bySlug: draft}
	service := newService(repo)

	_, err := service.GetBySlug(context.Background(), access.Anonymous(), "hidden")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)

	// The same draft is visible to a signed-in requester.
	got, err := service.GetBySlug(context.Background(), authenticated, "hidden")
	require.NoError(t, err)
	assert.Equal(t, "hidden", got.Slug())
}

/*
TestPublishedSlugs_NoCache degrades to the repository when no cache is
configured.
*/
func TestPublishedSlugs_NoCache(t *testing.T) {
	repo := &fakeRepo{slugs: []string{"a", "b"}}
	service := newService(repo)

	slugs, err := service.PublishedSlugs(context.Background(), access.Anonymous())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, slugs)
	assert.Equal(t, 1, repo.slugHits)
}

/*
TestCreate_Validation rejects missing titles, rootless content and
underivable slugs before touching the repository.
*/
func TestCreate_Validation(t *testing.T) {
	service := newService(&fakeRepo{})
	ctx := context.Background()

	_, err := service.Create(ctx, authenticated, post.CreateInput{Title: "", Content: post.RichText{"root": 1}})
	require.Error(t, err)

	_, err = service.Create(ctx, authenticated, post.CreateInput{Title: "Ok", Content: post.RichText{}})
	require.Error(t, err)

	_, err = service.Create(ctx, authenticated, post.CreateInput{Title: "!!!", Content: post.RichText{"root": 1}})
	require.Error(t, err)
}

/*
TestCreate_AccessAndSeam denies anonymous creation; authenticated creation
reaches the repository's explicit write seam.
*/
func TestCreate_AccessAndSeam(t *testing.T) {
	service := newService(&fakeRepo{})
	ctx := context.Background()
	input := post.CreateInput{Title: "My Post", Content: post.RichText{"root": 1}}

	_, err := service.Create(ctx, access.Anonymous(), input)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	_, err = service.Create(ctx, authenticated, input)
	require.Error(t, err)
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_IMPLEMENTED", ae.Code)
}
