// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

/*
Package access holds the role-based, field-level authorization rules that gate
every read and write against a post, media asset, or user record.

# Architecture

Rules are pure predicates over a typed requester [Identity] and, where needed,
a live collection statistic (the first-user bootstrap case). Each rule yields
a [Decision] — a tagged union of Allow, Deny, or Allow-with-filter — so the
query layer can branch without duck-typing return shapes: a filtered Allow is
merged into the backing query, restricting which documents the requester can
see rather than rejecting the call outright.
*/
package access

import (
	"context"

	"github.com/inkwell-cms/inkwell/internal/docstore"
	"github.com/inkwell-cms/inkwell/internal/platform/sec"
)

// Identity is the authenticated requester, threaded explicitly through every
// rule. The zero value is the anonymous requester.
type Identity struct {
	// UserID is the requester's numeric id; zero for anonymous requests.
	UserID int
	// Role is the requester's authorization level.
	Role sec.Role
}

// Anonymous returns the unauthenticated identity.
func Anonymous() Identity { return Identity{} }

// FromClaims maps verified JWT claims onto an identity. Nil claims mean an
// anonymous request.
func FromClaims(claims *sec.AuthClaims) Identity {
	if claims == nil {
		return Anonymous()
	}
	return Identity{UserID: claims.UserID, Role: claims.Role}
}

// IsAuthenticated reports whether the identity belongs to a signed-in user.
func (i Identity) IsAuthenticated() bool { return i.UserID != 0 }

// IsAdmin reports whether the identity is an authenticated administrator.
func (i Identity) IsAdmin() bool { return i.IsAuthenticated() && i.Role.IsAdmin() }

// decisionKind discriminates the [Decision] union.
type decisionKind int

const (
	decisionDeny decisionKind = iota
	decisionAllow
	decisionAllowWhere
)

// Decision is the tagged result of an access rule.
type Decision struct {
	kind   decisionKind
	filter docstore.Where
}

// Allow grants unrestricted access to the operation.
func Allow() Decision { return Decision{kind: decisionAllow} }

// Deny rejects the operation.
func Deny() Decision { return Decision{kind: decisionDeny} }

// AllowWhere grants access restricted to documents matching the filter.
func AllowWhere(filter docstore.Where) Decision {
	return Decision{kind: decisionAllowWhere, filter: filter}
}

// Allowed reports whether the operation may proceed (possibly filtered).
func (d Decision) Allowed() bool { return d.kind != decisionDeny }

// Filter returns the restricting filter; ok is false for unfiltered decisions.
func (d Decision) Filter() (docstore.Where, bool) {
	if d.kind != decisionAllowWhere {
		return docstore.Where{}, false
	}
	return d.filter, true
}

// Operation is a CRUD verb used to key the rule dispatch table.
type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Rule is the uniform shape every collection/verb rule is dispatched as.
type Rule func(ctx context.Context, requester Identity) (Decision, error)

// UserCounter reports the current number of user records. It backs the
// first-user bootstrap rule and is the only rule input beyond the identity.
type UserCounter interface {
	CountUsers(ctx context.Context) (int, error)
}

// Rules is the per-collection, per-operation dispatch table.
type Rules struct {
	users UserCounter
}

// NewRules builds the dispatch table. The counter backs users.create.
func NewRules(users UserCounter) *Rules {
	return &Rules{users: users}
}

// For returns the rule keyed by collection name and CRUD verb.
// ok is false for unknown collection/operation pairs.
func (r *Rules) For(collection string, op Operation) (Rule, bool) {
	switch collection {
	case "posts":
		switch op {
		case OpRead:
			return asRule(PostsRead), true
		case OpCreate:
			return asRule(PostsCreate), true
		case OpUpdate:
			return asRule(PostsUpdate), true
		case OpDelete:
			return asRule(PostsDelete), true
		}
	case "media":
		switch op {
		case OpRead:
			return asRule(MediaRead), true
		case OpCreate:
			return asRule(MediaCreate), true
		case OpUpdate:
			return asRule(MediaUpdate), true
		case OpDelete:
			return asRule(MediaDelete), true
		}
	case "users":
		switch op {
		case OpRead:
			return asRule(UsersRead), true
		case OpCreate:
			return func(ctx context.Context, requester Identity) (Decision, error) {
				return UsersCreate(ctx, requester, r.users)
			}, true
		case OpUpdate:
			return asRule(UsersUpdate), true
		case OpDelete:
			return asRule(UsersDelete), true
		}
	}
	return nil, false
}

// asRule lifts a pure predicate into the uniform [Rule] shape.
func asRule(fn func(Identity) Decision) Rule {
	return func(_ context.Context, requester Identity) (Decision, error) {
		return fn(requester), nil
	}
}
