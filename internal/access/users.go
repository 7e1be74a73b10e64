// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package access

import (
	"context"
	"fmt"

	"github.com/inkwell-cms/inkwell/internal/docstore"
)

// UsersRead lets admins see every record; other authenticated requesters are
// restricted to their own record; anonymous requesters see nothing.
func UsersRead(requester Identity) Decision {
	if requester.IsAdmin() {
		return Allow()
	}
	if requester.IsAuthenticated() {
		return AllowWhere(docstore.Eq("id", requester.UserID))
	}
	return Deny()
}

// UsersCreate implements the first-user bootstrap rule: while the collection
// is empty anyone (even anonymous) may create a user; once a user exists,
// creation is admin-only.
//
// The count-then-create sequence is not atomic against the store; concurrent
// first-user creation is an accepted race.
func UsersCreate(ctx context.Context, requester Identity, counter UserCounter) (Decision, error) {
	total, err := counter.CountUsers(ctx)
	if err != nil {
		return Deny(), fmt.Errorf("access: bootstrap count: %w", err)
	}

	if total == 0 {
		return Allow(), nil
	}

	if requester.IsAdmin() {
		return Allow(), nil
	}
	return Deny(), nil
}

// UsersUpdate lets admins update anyone; non-admins only themselves.
func UsersUpdate(requester Identity) Decision {
	if requester.IsAdmin() {
		return Allow()
	}
	if requester.IsAuthenticated() {
		return AllowWhere(docstore.Eq("id", requester.UserID))
	}
	return Deny()
}

// UsersDelete is admin-only.
func UsersDelete(requester Identity) Decision {
	if requester.IsAdmin() {
		return Allow()
	}
	return Deny()
}

// # Field-Level Rules

// User field names subject to field-level gating.
const (
	UserFieldEmail = "email"
	UserFieldRole  = "role"
)

// UserFieldRead reports whether the requester may read a field of the target
// user record. Email is restricted to admin-or-self; everything else follows
// document-level visibility.
func UserFieldRead(field string, requester Identity, targetUserID int) bool {
	switch field {
	case UserFieldEmail:
		return adminOrSelf(requester, targetUserID)
	default:
		return true
	}
}

// UserFieldUpdate reports whether the requester may update a field of the
// target user record. Email is admin-or-self; role is admin-only so users
// cannot escalate their own privileges.
func UserFieldUpdate(field string, requester Identity, targetUserID int) bool {
	switch field {
	case UserFieldEmail:
		return adminOrSelf(requester, targetUserID)
	case UserFieldRole:
		return requester.IsAdmin()
	default:
		return true
	}
}

func adminOrSelf(requester Identity, targetUserID int) bool {
	if requester.IsAdmin() {
		return true
	}
	return requester.IsAuthenticated() && requester.UserID == targetUserID
}
