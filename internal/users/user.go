// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

/*
Package users implements account management and authentication.

It owns the users collection: account CRUD with the first-user bootstrap
rule, field-level redaction of sensitive attributes, and credential
verification issuing RSA-signed JWTs.

Architecture:

  - Service: Orchestrates business logic (Create, Update, Login).
  - Repository: Abstracted interface over the document store.
  - Security: Bcrypt password hashes and RSA-signed JWTs via platform/sec.
*/
package users

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/inkwell-cms/inkwell/internal/access"
	"github.com/inkwell-cms/inkwell/internal/docstore"
	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
	"github.com/inkwell-cms/inkwell/internal/platform/sec"
	"github.com/inkwell-cms/inkwell/pkg/slice"
)

// User is one account record. PasswordHash never leaves the package.
type User struct {
	ID           int
	Email        string
	Name         string
	Role         sec.Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FromDocument maps a raw users document onto a User. The id, email and a
// valid role are mandatory.
func FromDocument(doc docstore.Document) (*User, error) {
	id, ok := intField(doc, "id")
	if !ok {
		return nil, errors.New("users: document missing numeric id")
	}

	role := sec.Role(stringField(doc, "role"))
	if !role.Valid() {
		return nil, errors.New("users: document carries unknown role")
	}

	return &User{
		ID:           id,
		Email:        stringField(doc, "email"),
		Name:         stringField(doc, "name"),
		Role:         role,
		PasswordHash: stringField(doc, "passwordHash"),
		CreatedAt:    timeField(doc, "createdAt"),
		UpdatedAt:    timeField(doc, "updatedAt"),
	}, nil
}

// ToDocument maps a User onto its stored document shape.
func ToDocument(u *User) docstore.Document {
	return docstore.Document{
		"id":           u.ID,
		"email":        u.Email,
		"name":         u.Name,
		"role":         string(u.Role),
		"passwordHash": u.PasswordHash,
		"createdAt":    u.CreatedAt,
		"updatedAt":    u.UpdatedAt,
	}
}

// Response is the wire shape of a user. Email is redacted per the
// field-level read rules before it reaches a client.
type Response struct {
	ID        int       `json:"id"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name"`
	Role      sec.Role  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToResponse redacts the record for the given requester.
func ToResponse(u *User, requester access.Identity) Response {
	resp := Response{
		ID:        u.ID,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if access.UserFieldRead(access.UserFieldEmail, requester, u.ID) {
		resp.Email = u.Email
	}
	return resp
}

// ToResponses redacts a page of records for the given requester.
func ToResponses(list []*User, requester access.Identity) []Response {
	return slice.Map(list, func(u *User) Response {
		return ToResponse(u, requester)
	})
}

// notFound is the client-safe error for missing or invisible user records.
func notFound() *apperr.AppError { return apperr.NotFound("User") }

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
