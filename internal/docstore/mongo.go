// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// counterCollection holds the per-collection sequence counters used to assign
// numeric document ids on insert.
const counterCollection = "_counters"

// Mongo implements [Store] on top of a MongoDB database.
//
// Filter trees translate 1:1 into MongoDB query documents, so the external
// service contract and the backing queries stay structurally identical.
type Mongo struct {
	db *mongo.Database
}

// NewMongo wraps a database handle as a [Store].
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

// Find implements [Store].
func (m *Mongo) Find(ctx context.Context, params FindParams) (FindResult, error) {
	filter := toBSON(params.Where)
	coll := m.db.Collection(params.Collection)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return FindResult{}, fmt.Errorf("docstore: count %s: %w", params.Collection, err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}

	findOpts := options.Find()
	if params.Limit > 0 {
		findOpts.SetLimit(int64(params.Limit))
		findOpts.SetSkip(int64((page - 1) * params.Limit))
	}
	if params.Sort != "" {
		findOpts.SetSort(sortSpec(params.Sort))
	}
	if len(params.Select) > 0 {
		projection := bson.D{}
		for _, field := range params.Select {
			projection = append(projection, bson.E{Key: field, Value: 1})
		}
		findOpts.SetProjection(projection)
	}

	cursor, err := coll.Find(ctx, filter, findOpts)
	if err != nil {
		return FindResult{}, fmt.Errorf("docstore: find %s: %w", params.Collection, err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		doc := Document{}
		if err := cursor.Decode(&doc); err != nil {
			return FindResult{}, fmt.Errorf("docstore: decode %s: %w", params.Collection, err)
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return FindResult{}, fmt.Errorf("docstore: cursor %s: %w", params.Collection, err)
	}

	totalPages := 0
	if params.Limit > 0 {
		totalPages = (int(total) + params.Limit - 1) / params.Limit
	} else if total > 0 {
		totalPages = 1
	}

	return FindResult{
		Docs:        docs,
		TotalDocs:   int(total),
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}, nil
}

// FindOne implements [Store]. It returns [ErrNotFound] when nothing matches.
func (m *Mongo) FindOne(ctx context.Context, collection string, where *Where) (Document, error) {
	doc := Document{}
	err := m.db.Collection(collection).FindOne(ctx, toBSON(where)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("docstore: find one %s: %w", collection, err)
	}
	return doc, nil
}

// Create implements [Store]. Documents without a numeric "id" are assigned
// the next value of the per-collection sequence.
func (m *Mongo) Create(ctx context.Context, collection string, doc Document) (Document, error) {
	if _, ok := doc["id"]; !ok {
		id, err := m.nextSequence(ctx, collection)
		if err != nil {
			return nil, err
		}
		doc["id"] = id
	}

	if _, err := m.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("docstore: insert %s: %w", collection, err)
	}
	return doc, nil
}

// Update implements [Store]. It updates the first matching document and
// returns its post-update state.
func (m *Mongo) Update(ctx context.Context, collection string, where *Where, doc Document) (Document, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	updated := Document{}
	err := m.db.Collection(collection).
		FindOneAndUpdate(ctx, toBSON(where), bson.D{{Key: "$set", Value: doc}}, opts).
		Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("docstore: update %s: %w", collection, err)
	}
	return updated, nil
}

// Delete implements [Store].
func (m *Mongo) Delete(ctx context.Context, collection string, where *Where) error {
	result, err := m.db.Collection(collection).DeleteMany(ctx, toBSON(where))
	if err != nil {
		return fmt.Errorf("docstore: delete %s: %w", collection, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count implements [Store].
func (m *Mongo) Count(ctx context.Context, params CountParams) (int, error) {
	total, err := m.db.Collection(params.Collection).CountDocuments(ctx, toBSON(params.Where))
	if err != nil {
		return 0, fmt.Errorf("docstore: count %s: %w", params.Collection, err)
	}
	return int(total), nil
}

// nextSequence atomically increments and returns the id counter for a collection.
func (m *Mongo) nextSequence(ctx context.Context, collection string) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int `bson:"seq"`
	}
	err := m.db.Collection(counterCollection).
		FindOneAndUpdate(ctx,
			bson.D{{Key: "_id", Value: collection}},
			bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: 1}}}},
			opts).
		Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("docstore: next sequence %s: %w", collection, err)
	}
	return counter.Seq, nil
}

// toBSON converts a filter tree into a MongoDB query document.
func toBSON(w *Where) bson.D {
	if w == nil || w.IsZero() {
		return bson.D{}
	}
	return whereToBSON(*w)
}

func whereToBSON(w Where) bson.D {
	switch {
	case len(w.And) > 0:
		children := make(bson.A, 0, len(w.And))
		for _, child := range w.And {
			children = append(children, whereToBSON(child))
		}
		return bson.D{{Key: "$and", Value: children}}

	case len(w.Or) > 0:
		children := make(bson.A, 0, len(w.Or))
		for _, child := range w.Or {
			children = append(children, whereToBSON(child))
		}
		return bson.D{{Key: "$or", Value: children}}
	}

	cond := w.Cond
	switch {
	case cond.Equals != nil:
		return bson.D{{Key: w.Field, Value: cond.Equals}}
	case cond.NotEquals != nil:
		return bson.D{{Key: w.Field, Value: bson.D{{Key: "$ne", Value: cond.NotEquals}}}}
	case len(cond.In) > 0:
		return bson.D{{Key: w.Field, Value: bson.D{{Key: "$in", Value: bson.A(cond.In)}}}}
	case cond.Exists != nil:
		return bson.D{{Key: w.Field, Value: bson.D{{Key: "$exists", Value: *cond.Exists}}}}
	}

	return bson.D{}
}

// sortSpec parses a "-field" style sort hint into a MongoDB sort document.
func sortSpec(sort string) bson.D {
	direction := 1
	field := sort
	if strings.HasPrefix(sort, "-") {
		direction = -1
		field = strings.TrimPrefix(sort, "-")
	}
	return bson.D{{Key: field, Value: direction}}
}
