// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

/*
Package post implements the content-domain core: the immutable Post aggregate,
its publish lifecycle, and the repository contract for loading and storing it.

# Architecture

The Post entity is copy-on-write: every mutator returns a new instance with a
fresh props copy, so concurrent callers holding the same instance never
observe torn writes. Identity is the numeric id alone — two posts with equal
ids are the same aggregate regardless of their in-memory field values.
*/
package post

import (
	"time"
)

// RichText is the structured rich-content payload of a post. The tree is
// opaque to the domain; only the required top-level "root" shape is checked
// before a post is accepted.
type RichText map[string]any

// HasRoot reports whether the payload carries the required root node.
func (rt RichText) HasRoot() bool {
	_, ok := rt["root"]
	return ok
}

// Tag is one entry of a post's ordered tag list.
type Tag struct {
	// Name is the tag text; it identifies the tag within the post.
	Name string `json:"tag"`
	// ID is the optional stored identifier of the embedded tag row.
	ID string `json:"id,omitempty"`
}

// Props carries the full attribute set of a post. It is the single input of
// [Reconstruct] and the value copied on every mutation.
type Props struct {
	// ID is assigned by the persistence layer; zero until persisted.
	ID              int
	Title           string
	Slug            string
	Excerpt         *string
	Content         RichText
	FeaturedImageID *int
	PublishedDate   *time.Time
	Tags            []Tag
	AuthorID        int
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Post is the immutable content aggregate.
type Post struct {
	props Props
}

// NewPost creates a fresh draft with no persistence identity (id = 0).
//
// The slug arrives as a plain string: callers derive and validate it through
// pkg/slug before construction, keeping the entity free of value-object
// imports.
func NewPost(title, slugValue string, content RichText, authorID int) *Post {
	now := time.Now().UTC()
	return &Post{props: Props{
		Title:     title,
		Slug:      slugValue,
		Content:   content,
		AuthorID:  authorID,
		Status:    Draft(),
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

// Reconstruct rebuilds an aggregate from stored data. The full props set is
// required; the status must have been parsed upstream.
func Reconstruct(props Props) (*Post, error) {
	if props.Status == (Status{}) {
		// A zero status would make the lifecycle queries lie.
		_, err := ParseStatus("")
		return nil, err
	}
	return &Post{props: cloneProps(props)}, nil
}

// # Accessors

func (p *Post) ID() int                  { return p.props.ID }
func (p *Post) Title() string            { return p.props.Title }
func (p *Post) Slug() string             { return p.props.Slug }
func (p *Post) Excerpt() *string         { return p.props.Excerpt }
func (p *Post) Content() RichText        { return p.props.Content }
func (p *Post) FeaturedImageID() *int    { return p.props.FeaturedImageID }
func (p *Post) PublishedDate() *time.Time { return p.props.PublishedDate }
func (p *Post) AuthorID() int            { return p.props.AuthorID }
func (p *Post) Status() Status           { return p.props.Status }
func (p *Post) CreatedAt() time.Time     { return p.props.CreatedAt }
func (p *Post) UpdatedAt() time.Time     { return p.props.UpdatedAt }

// Tags returns a defensive copy of the ordered tag list.
func (p *Post) Tags() []Tag {
	tags := make([]Tag, len(p.props.Tags))
	copy(tags, p.props.Tags)
	return tags
}

// # Lifecycle Transitions

// Publish moves the post to published and stamps the publish date on first
// publish only — re-publishing never resets an existing timestamp.
func (p *Post) Publish() *Post {
	props := cloneProps(p.props)
	props.Status = Published()
	if props.PublishedDate == nil {
		now := time.Now().UTC()
		props.PublishedDate = &now
	}
	props.UpdatedAt = time.Now().UTC()
	return &Post{props: props}
}

// Unpublish moves the post back to draft. The publish date is deliberately
// left untouched: callers must check the status, not date presence.
func (p *Post) Unpublish() *Post {
	props := cloneProps(p.props)
	props.Status = Draft()
	props.UpdatedAt = time.Now().UTC()
	return &Post{props: props}
}

// # Field Updates

// UpdateTitle replaces the title.
func (p *Post) UpdateTitle(title string) *Post {
	props := cloneProps(p.props)
	props.Title = title
	props.UpdatedAt = time.Now().UTC()
	return &Post{props: props}
}

// UpdateContent replaces the rich-content payload.
func (p *Post) UpdateContent(content RichText) *Post {
	props := cloneProps(p.props)
	props.Content = content
	props.UpdatedAt = time.Now().UTC()
	return &Post{props: props}
}

// UpdateExcerpt replaces the optional excerpt.
func (p *Post) UpdateExcerpt(excerpt *string) *Post {
	props := cloneProps(p.props)
	props.Excerpt = excerpt
	props.UpdatedAt = time.Now().UTC()
	return &Post{props: props}
}

// AddTag appends a tag unless one with the same name already exists, in which
// case the receiver itself is returned and no timestamp is touched.
func (p *Post) AddTag(tag Tag) *Post {
	if p.HasTag(tag.Name) {
		return p
	}
	props := cloneProps(p.props)
	props.Tags = append(props.Tags, tag)
	props.UpdatedAt = time.Now().UTC()
	return &Post{props: props}
}

// RemoveTag filters out tags matching the name.
//
// The update timestamp is refreshed even when nothing matched. This quirk is
// intentional and kept for compatibility with existing consumers.
func (p *Post) RemoveTag(tagName string) *Post {
	props := cloneProps(p.props)
	kept := props.Tags[:0]
	for _, t := range props.Tags {
		if t.Name != tagName {
			kept = append(kept, t)
		}
	}
	props.Tags = kept
	props.UpdatedAt = time.Now().UTC()
	return &Post{props: props}
}

// # Queries

// IsPublished reports whether the post is currently published.
func (p *Post) IsPublished() bool { return p.props.Status.IsPublished() }

// IsDraft reports whether the post is currently a draft.
func (p *Post) IsDraft() bool { return p.props.Status.IsDraft() }

// HasTag reports whether a tag with the given name exists.
func (p *Post) HasTag(name string) bool {
	for _, t := range p.props.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// HasFeaturedImage reports whether a featured media asset is referenced.
func (p *Post) HasFeaturedImage() bool { return p.props.FeaturedImageID != nil }

// Equals implements aggregate identity: posts are equal iff their ids match.
// Unpersisted posts (id 0) are never equal to anything, themselves included.
func (p *Post) Equals(other *Post) bool {
	if other == nil {
		return false
	}
	if p.props.ID == 0 || other.props.ID == 0 {
		return false
	}
	return p.props.ID == other.props.ID
}

// cloneProps deep-copies the mutable parts of a props value (the tag slice);
// Content is treated as immutable by convention and shared.
func cloneProps(props Props) Props {
	tags := make([]Tag, len(props.Tags))
	copy(tags, props.Tags)
	props.Tags = tags
	return props
}
