// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

/*
Package docstore defines the contract with the external document-collection
service that backs all Inkwell content.

# Architecture

The domain layer never talks to a database driver directly. It issues
structured queries — a collection name, a boolean filter tree, sort and page
hints — against the [Store] interface and receives raw documents back. Two
implementations exist:

  - [Mongo]: translates queries into MongoDB driver calls.
  - [Resilient]: a decorator adding error classification and retry with
    exponential backoff around any other Store.

The repository layer above maps raw [Document] values into domain entities.
*/
package docstore

import "context"

// Document is a raw, schemaless record as returned by the collection service.
type Document map[string]any

// FindParams describes a filtered, paginated query against one collection.
type FindParams struct {
	// Collection is the target collection name (e.g. "posts").
	Collection string

	// Where is the optional filter tree. A nil Where matches everything.
	Where *Where

	// Sort is a field name, prefixed with '-' for descending order.
	Sort string

	// Limit caps the number of documents per page. Zero means no limit.
	Limit int

	// Page is the 1-indexed page to fetch. Zero is treated as page 1.
	Page int

	// Select optionally restricts the returned fields.
	Select []string
}

// FindResult is one page of documents plus the navigation metadata the
// service reports alongside it.
type FindResult struct {
	Docs        []Document
	TotalDocs   int
	TotalPages  int
	HasNextPage bool
	HasPrevPage bool
}

// CountParams describes a filtered count against one collection.
type CountParams struct {
	Collection string
	Where      *Where
}

// Store is the abstract document-collection service.
//
// All methods are single-flight request/response calls; implementations do
// not retain references to the passed parameters.
type Store interface {
	Find(ctx context.Context, params FindParams) (FindResult, error)
	FindOne(ctx context.Context, collection string, where *Where) (Document, error)
	Create(ctx context.Context, collection string, doc Document) (Document, error)
	Update(ctx context.Context, collection string, where *Where, doc Document) (Document, error)
	Delete(ctx context.Context, collection string, where *Where) error
	Count(ctx context.Context, params CountParams) (int, error)
}
