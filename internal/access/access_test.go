// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell/internal/access"
	"github.com/inkwell-cms/inkwell/internal/docstore"
	"github.com/inkwell-cms/inkwell/internal/platform/sec"
)

var (
	anonymous = access.Anonymous()
	admin     = access.Identity{UserID: 1, Role: sec.RoleAdmin}
	editor    = access.Identity{UserID: 2, Role: sec.RoleEditor}
	reader    = access.Identity{UserID: 3, Role: sec.RoleUser}
)

// fixedCounter returns a preset user count.
type fixedCounter struct {
	total int
	err   error
}

func (c fixedCounter) CountUsers(context.Context) (int, error) {
	return c.total, c.err
}

/*
TestIdentity covers the authenticated/admin predicates on the typed requester.
*/
func TestIdentity(t *testing.T) {
	assert.False(t, anonymous.IsAuthenticated())
	assert.False(t, anonymous.IsAdmin())
	assert.True(t, admin.IsAuthenticated())
	assert.True(t, admin.IsAdmin())
	assert.True(t, editor.IsAuthenticated())
	assert.False(t, editor.IsAdmin())

	// An admin role without a user id is still anonymous.
	forged := access.Identity{Role: sec.RoleAdmin}
	assert.False(t, forged.IsAdmin())
}

/*
TestFromClaims maps nil claims to the anonymous identity.
*/
func TestFromClaims(t *testing.T) {
	assert.Equal(t, anonymous, access.FromClaims(nil))

	claims := &sec.AuthClaims{UserID: 9, Role: sec.RoleEditor}
	got := access.FromClaims(claims)
	assert.Equal(t, 9, got.UserID)
	assert.Equal(t, sec.RoleEditor, got.Role)
}

/*
TestPostsRead gives authenticated requesters full visibility and restricts
anonymous requesters to published posts via a query filter.
*/
func TestPostsRead(t *testing.T) {
	for _, requester := range []access.Identity{admin, editor, reader} {
		decision := access.PostsRead(requester)
		assert.True(t, decision.Allowed())
		_, filtered := decision.Filter()
		assert.False(t, filtered)
	}

	decision := access.PostsRead(anonymous)
	require.True(t, decision.Allowed())
	filter, filtered := decision.Filter()
	require.True(t, filtered)
	assert.Equal(t, docstore.Eq("status", "published"), filter)
}

/*
TestPostsMutations permit any authenticated requester and deny anonymous.
*/
func TestPostsMutations(t *testing.T) {
	rules := []func(access.Identity) access.Decision{
		access.PostsCreate, access.PostsUpdate, access.PostsDelete,
	}
	for _, rule := range rules {
		assert.True(t, rule(reader).Allowed())
		assert.True(t, rule(admin).Allowed())
		assert.False(t, rule(anonymous).Allowed())
	}
}

/*
TestMediaRules keep reads public and mutations authenticated.
*/
func TestMediaRules(t *testing.T) {
	assert.True(t, access.MediaRead(anonymous).Allowed())
	assert.True(t, access.MediaRead(reader).Allowed())

	assert.False(t, access.MediaCreate(anonymous).Allowed())
	assert.True(t, access.MediaCreate(reader).Allowed())
	assert.False(t, access.MediaDelete(anonymous).Allowed())
	assert.True(t, access.MediaUpdate(editor).Allowed())
}

/*
TestUsersRead lets admins see everyone, others only themselves, anonymous
nothing.
*/
func TestUsersRead(t *testing.T) {
	decision := access.UsersRead(admin)
	assert.True(t, decision.Allowed())
	_, filtered := decision.Filter()
	assert.False(t, filtered)

	decision = access.UsersRead(reader)
	require.True(t, decision.Allowed())
	filter, filtered := decision.Filter()
	require.True(t, filtered)
	assert.Equal(t, docstore.Eq("id", reader.UserID), filter)

	assert.False(t, access.UsersRead(anonymous).Allowed())
}

/*
TestUsersCreate_Bootstrap lets anyone create the first user; afterwards
creation is admin-only.
*/
func TestUsersCreate_Bootstrap(t *testing.T) {
	ctx := context.Background()

	empty := fixedCounter{total: 0}
	decision, err := access.UsersCreate(ctx, anonymous, empty)
	require.NoError(t, err)
	assert.True(t, decision.Allowed())

	populated := fixedCounter{total: 3}

	decision, err = access.UsersCreate(ctx, admin, populated)
	require.NoError(t, err)
	assert.True(t, decision.Allowed())

	for _, requester := range []access.Identity{anonymous, editor, reader} {
		decision, err = access.UsersCreate(ctx, requester, populated)
		require.NoError(t, err)
		assert.False(t, decision.Allowed())
	}
}

/*
TestUsersCreate_CounterFailure denies closed when the count cannot be read.
*/
func TestUsersCreate_CounterFailure(t *testing.T) {
	broken := fixedCounter{err: errors.New("connection refused")}

	decision, err := access.UsersCreate(context.Background(), admin, broken)
	require.Error(t, err)
	assert.False(t, decision.Allowed())
}

/*
TestUsersUpdateDelete: admins update anyone and delete; others update only
themselves and never delete.
*/
func TestUsersUpdateDelete(t *testing.T) {
	decision := access.UsersUpdate(admin)
	assert.True(t, decision.Allowed())
	_, filtered := decision.Filter()
	assert.False(t, filtered)

	decision = access.UsersUpdate(reader)
	require.True(t, decision.Allowed())
	filter, filtered := decision.Filter()
	require.True(t, filtered)
	assert.Equal(t, docstore.Eq("id", reader.UserID), filter)

	assert.False(t, access.UsersUpdate(anonymous).Allowed())

	assert.True(t, access.UsersDelete(admin).Allowed())
	assert.False(t, access.UsersDelete(editor).Allowed())
	assert.False(t, access.UsersDelete(anonymous).Allowed())
}

/*
TestUserFieldRules gate email reads to admin-or-self and role updates to
admins, blocking self-escalation.
*/
func TestUserFieldRules(t *testing.T) {
	// Email read: admin or the record owner.
	assert.True(t, access.UserFieldRead(access.UserFieldEmail, admin, reader.UserID))
	assert.True(t, access.UserFieldRead(access.UserFieldEmail, reader, reader.UserID))
	assert.False(t, access.UserFieldRead(access.UserFieldEmail, editor, reader.UserID))
	assert.False(t, access.UserFieldRead(access.UserFieldEmail, anonymous, reader.UserID))

	// Unlisted fields follow document-level visibility.
	assert.True(t, access.UserFieldRead("name", anonymous, reader.UserID))

	// Email update mirrors the read rule.
	assert.True(t, access.UserFieldUpdate(access.UserFieldEmail, reader, reader.UserID))
	assert.False(t, access.UserFieldUpdate(access.UserFieldEmail, editor, reader.UserID))

	// Role update is admin-only, even on the requester's own record.
	assert.True(t, access.UserFieldUpdate(access.UserFieldRole, admin, reader.UserID))
	assert.False(t, access.UserFieldUpdate(access.UserFieldRole, reader, reader.UserID))
}

/*
TestRulesDispatch resolves rules by collection and verb, including the
counter-backed users.create rule.
*/
func TestRulesDispatch(t *testing.T) {
	rules := access.NewRules(fixedCounter{total: 0})
	ctx := context.Background()

	rule, ok := rules.For("posts", access.OpRead)
	require.True(t, ok)
	decision, err := rule(ctx, anonymous)
	require.NoError(t, err)
	assert.True(t, decision.Allowed())

	rule, ok = rules.For("users", access.OpCreate)
	require.True(t, ok)
	decision, err = rule(ctx, anonymous)
	require.NoError(t, err)
	assert.True(t, decision.Allowed(), "bootstrap on empty collection")

	_, ok = rules.For("unknown", access.OpRead)
	assert.False(t, ok)
	_, ok = rules.For("posts", access.Operation("purge"))
	assert.False(t, ok)
}
