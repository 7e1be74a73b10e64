// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package docstore

// Where is a structured boolean filter tree.
//
// # Shape
//
// A Where node is either a leaf (Field plus a [Condition]) or a branch
// combining child filters with AND/OR semantics. The zero value matches
// everything. This mirrors the wire shape of the external collection service
// ({field: {equals: v}}, {"and": [...]}, {"or": [...]}).
type Where struct {
	// Field and Cond form a leaf condition. Field is empty on branch nodes.
	Field string
	Cond  Condition

	// And combines child filters; every child must match.
	And []Where

	// Or combines child filters; at least one child must match.
	Or []Where
}

// Condition is the per-field comparison of a leaf node.
type Condition struct {
	// Equals matches documents whose field equals the value.
	Equals any
	// NotEquals matches documents whose field differs from the value.
	NotEquals any
	// In matches documents whose field equals any of the values.
	In []any
	// Exists matches on field presence (true) or absence (false).
	Exists *bool
}

// Eq builds a leaf filter matching field == value.
func Eq(field string, value any) Where {
	return Where{Field: field, Cond: Condition{Equals: value}}
}

// Ne builds a leaf filter matching field != value.
func Ne(field string, value any) Where {
	return Where{Field: field, Cond: Condition{NotEquals: value}}
}

// In builds a leaf filter matching field ∈ values.
func In(field string, values ...any) Where {
	return Where{Field: field, Cond: Condition{In: values}}
}

// Exists builds a leaf filter on field presence.
func Exists(field string, present bool) Where {
	return Where{Field: field, Cond: Condition{Exists: &present}}
}

// And combines filters so that every one must match.
func And(filters ...Where) Where {
	return Where{And: filters}
}

// Or combines filters so that at least one must match.
func Or(filters ...Where) Where {
	return Where{Or: filters}
}

// IsZero reports whether the node carries no constraint at all.
func (w Where) IsZero() bool {
	return w.Field == "" && len(w.And) == 0 && len(w.Or) == 0
}
