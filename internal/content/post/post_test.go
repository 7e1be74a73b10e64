// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package post_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell/internal/content/post"
	"github.com/inkwell-cms/inkwell/pkg/pointer"
)

func sampleContent() post.RichText {
	return post.RichText{"root": map[string]any{"children": []any{}}}
}

func draftPost(t *testing.T, id int) *post.Post {
	t.Helper()
	p, err := post.Reconstruct(post.Props{
		ID:        id,
		Title:     "Getting Started",
		Slug:      "getting-started",
		Content:   sampleContent(),
		AuthorID:  1,
		Status:    post.Draft(),
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return p
}

/*
TestNewPost starts every post as an unpersisted draft.
*/
func TestNewPost(t *testing.T) {
	p := post.NewPost("Getting Started", "getting-started", sampleContent(), 7)

	assert.Equal(t, 0, p.ID())
	assert.Equal(t, "Getting Started", p.Title())
	assert.Equal(t, "getting-started", p.Slug())
	assert.Equal(t, 7, p.AuthorID())
	assert.True(t, p.IsDraft())
	assert.Nil(t, p.PublishedDate())
	assert.Empty(t, p.Tags())
}

/*
TestReconstruct_RejectsZeroStatus refuses to rebuild an aggregate whose
status was never parsed.
*/
func TestReconstruct_RejectsZeroStatus(t *testing.T) {
	_, err := post.Reconstruct(post.Props{ID: 1, Title: "x", Slug: "x"})
	require.Error(t, err)
}

/*
TestPublish stamps the publish date on first publish only and leaves the
original instance untouched.
*/
func TestPublish(t *testing.T) {
	draft := draftPost(t, 1)

	published := draft.Publish()
	require.True(t, published.IsPublished())
	require.NotNil(t, published.PublishedDate())
	firstDate := *published.PublishedDate()
	assert.WithinDuration(t, time.Now(), firstDate, time.Second)

	// The receiver is immutable.
	assert.True(t, draft.IsDraft())
	assert.Nil(t, draft.PublishedDate())

	// Re-publishing never resets the timestamp.
	republished := published.Publish()
	require.NotNil(t, republished.PublishedDate())
	assert.Equal(t, firstDate, *republished.PublishedDate())
}

/*
TestUnpublish moves back to draft but keeps the historical publish date, so
status is the only source of truth for visibility.
*/
func TestUnpublish(t *testing.T) {
	published := draftPost(t, 1).Publish()

	unpublished := published.Unpublish()
	assert.True(t, unpublished.IsDraft())
	assert.NotNil(t, unpublished.PublishedDate())
}

/*
TestFieldUpdates returns fresh instances with the one field replaced.
*/
func TestFieldUpdates(t *testing.T) {
	p := draftPost(t, 1)

	retitled := p.UpdateTitle("Renamed")
	assert.Equal(t, "Renamed", retitled.Title())
	assert.Equal(t, "Getting Started", p.Title())

	excerpted := p.UpdateExcerpt(pointer.To("A short summary"))
	require.NotNil(t, excerpted.Excerpt())
	assert.Equal(t, "A short summary", *excerpted.Excerpt())
	assert.Nil(t, p.Excerpt())

	newContent := post.RichText{"root": map[string]any{"children": []any{"x"}}}
	rewritten := p.UpdateContent(newContent)
	assert.Equal(t, newContent, rewritten.Content())
}

/*
TestAddTag appends unless the name already exists; the duplicate case returns
the receiver itself with no timestamp refresh.
*/
func TestAddTag(t *testing.T) {
	p := draftPost(t, 1)

	tagged := p.AddTag(post.Tag{Name: "golang"})
	require.True(t, tagged.HasTag("golang"))
	assert.False(t, p.HasTag("golang"))

	again := tagged.AddTag(post.Tag{Name: "golang"})
	assert.Same(t, tagged, again)
	assert.Len(t, again.Tags(), 1)
}

/*
TestRemoveTag filters by name. The update timestamp refreshes even on a
no-match removal; that behavior is load-bearing for existing consumers.
*/
func TestRemoveTag(t *testing.T) {
	p := draftPost(t, 1).
		AddTag(post.Tag{Name: "golang"}).
		AddTag(post.Tag{Name: "testing"})

	removed := p.RemoveTag("golang")
	assert.False(t, removed.HasTag("golang"))
	assert.True(t, removed.HasTag("testing"))

	before := p.UpdatedAt()
	noop := p.RemoveTag("does-not-exist")
	assert.Len(t, noop.Tags(), 2)
	assert.False(t, noop.UpdatedAt().Before(before))
	assert.NotSame(t, p, noop)
}

/*
TestTags_DefensiveCopy prevents callers from mutating internal state through
the returned slice.
*/
func TestTags_DefensiveCopy(t *testing.T) {
	p := draftPost(t, 1).AddTag(post.Tag{Name: "golang"})

	tags := p.Tags()
	tags[0].Name = "mutated"

	assert.True(t, p.HasTag("golang"))
	assert.False(t, p.HasTag("mutated"))
}

/*
TestEquals implements identity equality on the id alone; unpersisted posts
are never equal to anything.
*/
func TestEquals(t *testing.T) {
	a := draftPost(t, 1)
	sameID := draftPost(t, 1).UpdateTitle("Different In-Memory State")
	other := draftPost(t, 2)

	assert.True(t, a.Equals(sameID))
	assert.False(t, a.Equals(other))
	assert.False(t, a.Equals(nil))

	unsaved := post.NewPost("t", "t", sampleContent(), 1)
	assert.False(t, unsaved.Equals(unsaved))
}

/*
TestHasFeaturedImage reports presence of the optional media reference.
*/
func TestHasFeaturedImage(t *testing.T) {
	plain := draftPost(t, 1)
	assert.False(t, plain.HasFeaturedImage())

	withImage, err := post.Reconstruct(post.Props{
		ID:              2,
		Title:           "x",
		Slug:            "x",
		FeaturedImageID: pointer.To(42),
		Status:          post.Draft(),
	})
	require.NoError(t, err)
	assert.True(t, withImage.HasFeaturedImage())
}

/*
TestRichText_HasRoot checks the only structural requirement on content.
*/
func TestRichText_HasRoot(t *testing.T) {
	assert.True(t, sampleContent().HasRoot())
	assert.False(t, post.RichText{}.HasRoot())
	assert.False(t, post.RichText{"other": 1}.HasRoot())
}
