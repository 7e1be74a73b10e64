// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package post

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/inkwell-cms/inkwell/internal/docstore"
)

// FromDocument maps a raw store document into a [Post] aggregate.
//
// # Relation Handling
//
// Author and featured-image references arrive either as bare numeric ids or
// as populated sub-documents carrying an "id" field; both shapes collapse to
// the reference id — the entity never holds full related objects.
func FromDocument(doc docstore.Document) (*Post, error) {
	id, ok := asInt(doc["id"])
	if !ok {
		return nil, fmt.Errorf("post: document missing numeric id")
	}

	statusRaw, _ := asString(doc["status"])
	status, err := ParseStatus(statusRaw)
	if err != nil {
		return nil, fmt.Errorf("post: document %d: %w", id, err)
	}

	props := Props{
		ID:     id,
		Status: status,
	}

	props.Title, _ = asString(doc["title"])
	props.Slug, _ = asString(doc["slug"])

	if excerpt, ok := asString(doc["excerpt"]); ok && excerpt != "" {
		props.Excerpt = &excerpt
	}

	if content, ok := asMap(doc["content"]); ok {
		props.Content = RichText(content)
	}

	if authorID, ok := relationID(doc["author"]); ok {
		props.AuthorID = authorID
	}

	if imageID, ok := relationID(doc["featuredImage"]); ok {
		props.FeaturedImageID = &imageID
	}

	if published, ok := asTime(doc["publishedDate"]); ok {
		props.PublishedDate = &published
	}

	if createdAt, ok := asTime(doc["createdAt"]); ok {
		props.CreatedAt = createdAt
	}
	if updatedAt, ok := asTime(doc["updatedAt"]); ok {
		props.UpdatedAt = updatedAt
	}

	props.Tags = tagsFrom(doc["tags"])

	return Reconstruct(props)
}

// ToDocument maps an aggregate back into the external document shape.
func ToDocument(p *Post) docstore.Document {
	doc := docstore.Document{
		"title":     p.Title(),
		"slug":      p.Slug(),
		"status":    p.Status().String(),
		"author":    p.AuthorID(),
		"createdAt": p.CreatedAt(),
		"updatedAt": p.UpdatedAt(),
	}

	if p.ID() != 0 {
		doc["id"] = p.ID()
	}
	if excerpt := p.Excerpt(); excerpt != nil {
		doc["excerpt"] = *excerpt
	}
	if content := p.Content(); content != nil {
		doc["content"] = map[string]any(content)
	}
	if imageID := p.FeaturedImageID(); imageID != nil {
		doc["featuredImage"] = *imageID
	}
	if published := p.PublishedDate(); published != nil {
		doc["publishedDate"] = *published
	}

	tags := make([]any, 0, len(p.Tags()))
	for _, t := range p.Tags() {
		entry := map[string]any{"tag": t.Name}
		if t.ID != "" {
			entry["id"] = t.ID
		}
		tags = append(tags, entry)
	}
	doc["tags"] = tags

	return doc
}

// tagsFrom normalizes the embedded tag array.
func tagsFrom(value any) []Tag {
	items, ok := asSlice(value)
	if !ok {
		return nil
	}

	var tags []Tag
	for _, item := range items {
		entry, ok := asMap(item)
		if !ok {
			continue
		}
		name, _ := asString(entry["tag"])
		if name == "" {
			continue
		}
		tag := Tag{Name: name}
		if tagID, ok := asString(entry["id"]); ok {
			tag.ID = tagID
		}
		tags = append(tags, tag)
	}
	return tags
}

// relationID collapses a relation value (bare id or populated sub-document)
// to its numeric id.
func relationID(value any) (int, bool) {
	if id, ok := asInt(value); ok {
		return id, true
	}
	if sub, ok := asMap(value); ok {
		return asInt(sub["id"])
	}
	return 0, false
}

// # Decoding Helpers
//
// The BSON decoder hands back its own named types (bson.M, bson.A,
// bson.DateTime) when the target is an untyped map, so every accessor
// switches over both the driver shapes and the plain Go ones.

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func asString(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case bson.M:
		return map[string]any(v), true
	case docstore.Document:
		return map[string]any(v), true
	case RichText:
		return map[string]any(v), true
	}
	return nil, false
}

func asSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case bson.A:
		return []any(v), true
	}
	return nil, false
}

func asTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case bson.DateTime:
		return v.Time(), true
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
