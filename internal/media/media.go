// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

// Package media exposes the uploaded asset catalog (images attached to
// posts) as a read-only API surface.
package media

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/inkwell-cms/inkwell/internal/docstore"
	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
)

// Media describes one uploaded asset as stored in the media collection.
type Media struct {
	ID        int       `json:"id"`
	Filename  string    `json:"filename"`
	Alt       string    `json:"alt,omitempty"`
	MimeType  string    `json:"mimeType,omitempty"`
	Filesize  int       `json:"filesize,omitempty"`
	Width     *int      `json:"width,omitempty"`
	Height    *int      `json:"height,omitempty"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDocument maps a raw document onto a Media value. Only the id is
// mandatory; assets uploaded before the metadata backfill lack dimensions.
func FromDocument(doc docstore.Document) (*Media, error) {
	id, ok := intField(doc, "id")
	if !ok {
		return nil, apperr.Internal(errors.New("media document missing numeric id"))
	}

	m := &Media{
		ID:       id,
		Filename: stringField(doc, "filename"),
		Alt:      stringField(doc, "alt"),
		MimeType: stringField(doc, "mimeType"),
		URL:      stringField(doc, "url"),
	}
	if size, ok := intField(doc, "filesize"); ok {
		m.Filesize = size
	}
	if w, ok := intField(doc, "width"); ok {
		m.Width = &w
	}
	if h, ok := intField(doc, "height"); ok {
		m.Height = &h
	}
	m.CreatedAt = timeField(doc, "createdAt")
	m.UpdatedAt = timeField(doc, "updatedAt")
	return m, nil
}

func intField(doc docstore.Document, key string) (int, bool) {
	switch v := doc[key].(type) {
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

func stringField(doc docstore.Document, key string) string {
	s, _ := doc[key].(string)
	return s
}

func timeField(doc docstore.Document, key string) time.Time {
	switch v := doc[key].(type) {
	case time.Time:
		return v
	case bson.DateTime:
		return v.Time()
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
