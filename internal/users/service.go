// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package users

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-cms/inkwell/internal/access"
	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
	"github.com/inkwell-cms/inkwell/internal/platform/constants"
	"github.com/inkwell-cms/inkwell/internal/platform/sec"
	"github.com/inkwell-cms/inkwell/internal/platform/validate"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	GenerateAccessToken(userID int, email string, role sec.Role, timeToLive time.Duration) (string, error)
}

// Service implements account management and authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, bootstrap,
// or login logic must be reviewed carefully.
type Service struct {
	repo          Repository
	tokenProvider TokenProvider
}

// NewService constructs the users service.
func NewService(repo Repository, tokenProvider TokenProvider) *Service {
	return &Service{
		repo:          repo,
		tokenProvider: tokenProvider,
	}
}

// # Account Reads

// Get returns a single account visible to the requester. Records hidden by
// the read rule surface as not-found, so their existence is not leaked.
func (service *Service) Get(ctx context.Context, requester access.Identity, id int) (*User, error) {
	decision := access.UsersRead(requester)
	if !decision.Allowed() {
		return nil, apperr.Forbidden("Not allowed to read users")
	}
	if _, filtered := decision.Filter(); filtered && requester.UserID != id {
		return nil, notFound()
	}
	return service.repo.FindByID(ctx, id)
}

// List returns one page of accounts. Non-admin requesters only ever see
// their own record.
func (service *Service) List(ctx context.Context, requester access.Identity, opts ListOptions) (ListResult, error) {
	decision := access.UsersRead(requester)
	if !decision.Allowed() {
		return ListResult{}, apperr.Forbidden("Not allowed to read users")
	}
	if _, filtered := decision.Filter(); filtered {
		opts.OnlyID = requester.UserID
	}
	return service.repo.FindAll(ctx, opts)
}

// # Account Writes

// CreateInput holds the data required to enroll a new account.
type CreateInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

/*
Create validates, hashes, and persists a new account.

The first account ever created becomes an admin regardless of the requested
role, so a fresh deployment can be claimed. After that, creation is
admin-only and the role field follows the field-level update rule.

Returns:
  - *User: Created entity
  - err: Forbidden, Conflict (if email exists) or storage errors
*/
func (service *Service) Create(ctx context.Context, requester access.Identity, input CreateInput) (*User, error) {
	decision, err := access.UsersCreate(ctx, requester, service.repo)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return nil, apperr.Forbidden("Not allowed to create users")
	}

	v := &validate.Validator{}
	v.Required("email", input.Email).
		Email("email", input.Email).
		Required("name", input.Name).
		MinLen("password", input.Password, 8)
	if input.Role != "" {
		v.OneOf("role", input.Role, string(sec.RoleAdmin), string(sec.RoleEditor), string(sec.RoleUser))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	if _, err := service.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	role, err := service.roleFor(ctx, requester, input.Role)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("users: hash password: %w", err)
	}

	now := time.Now().UTC()
	return service.repo.Create(ctx, &User{
		Email:        input.Email,
		Name:         input.Name,
		Role:         role,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// UpdateInput holds the optional fields of an account update. Nil fields are
// left untouched.
type UpdateInput struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

/*
Update applies a partial update to an account.

Document-level visibility follows the update rule (admins anyone, others only
themselves). On top of that, each field is gated individually: email is
admin-or-self, role is admin-only so users cannot escalate their own
privileges.
*/
func (service *Service) Update(ctx context.Context, requester access.Identity, id int, input UpdateInput) (*User, error) {
	decision := access.UsersUpdate(requester)
	if !decision.Allowed() {
		return nil, apperr.Forbidden("Not allowed to update users")
	}
	if _, filtered := decision.Filter(); filtered && requester.UserID != id {
		return nil, notFound()
	}

	target, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if !access.UserFieldUpdate(access.UserFieldEmail, requester, id) {
			return nil, apperr.Forbidden("Not allowed to change this user's email")
		}
		v := &validate.Validator{}
		if err := v.Required("email", *input.Email).Email("email", *input.Email).Err(); err != nil {
			return nil, err
		}
		if existing, err := service.repo.FindByEmail(ctx, *input.Email); err == nil && existing.ID != id {
			return nil, apperr.Conflict("Email is already registered")
		}
		target.Email = *input.Email
	}

	if input.Name != nil {
		v := &validate.Validator{}
		if err := v.Required("name", *input.Name).Err(); err != nil {
			return nil, err
		}
		target.Name = *input.Name
	}

	if input.Password != nil {
		v := &validate.Validator{}
		if err := v.MinLen("password", *input.Password, 8).Err(); err != nil {
			return nil, err
		}
		hashedPassword, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("users: hash password: %w", err)
		}
		target.PasswordHash = hashedPassword
	}

	if input.Role != nil {
		if !access.UserFieldUpdate(access.UserFieldRole, requester, id) {
			return nil, apperr.Forbidden("Not allowed to change roles")
		}
		role := sec.Role(*input.Role)
		if !role.Valid() {
			return nil, validate.RequiredError("role", "Must be one of: admin, editor, user")
		}
		target.Role = role
	}

	target.UpdatedAt = time.Now().UTC()
	return service.repo.Update(ctx, target)
}

// Delete removes an account. Admin-only; admins cannot delete themselves so
// a deployment always keeps at least one admin.
func (service *Service) Delete(ctx context.Context, requester access.Identity, id int) error {
	if !access.UsersDelete(requester).Allowed() {
		return apperr.Forbidden("Not allowed to delete users")
	}
	if requester.UserID == id {
		return apperr.Conflict("Cannot delete your own account")
	}
	return service.repo.Delete(ctx, id)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginSession represents a successfully authenticated request.
type LoginSession struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *User
}

/*
Login validates credentials and issues a short-lived access token.

Description: Verifies identity using constant-time password comparison and
returns an RSA-signed JWT. Lookup and comparison failures share one generic
message to prevent account enumeration.
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, user.Role, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("users: token generation: %w", err)
	}

	return &LoginSession{
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(constants.AccessTokenTTL),
		User:        user,
	}, nil
}

// roleFor resolves the effective role of a new account.
func (service *Service) roleFor(ctx context.Context, requester access.Identity, requested string) (sec.Role, error) {
	total, err := service.repo.CountUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("users: bootstrap count: %w", err)
	}
	if total == 0 {
		return sec.RoleAdmin, nil
	}

	if requested == "" {
		return sec.RoleUser, nil
	}
	if !access.UserFieldUpdate(access.UserFieldRole, requester, 0) {
		return "", apperr.Forbidden("Not allowed to assign roles")
	}
	return sec.Role(requested), nil
}
