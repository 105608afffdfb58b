// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles user profile management and administrative controls.

It provides functionalities for users to view their private identity data,
rotate their password, and discover other members, plus the admin surface for
role assignment and account removal.

# Architecture

  - Entities: PublicProfile (DTO).
  - Domain: This package depends on the auth package for the User entity.
  - Security: Password changes and deletions revoke all refresh sessions.
*/
package account

import (
	"context"

	"github.com/taibuivan/clubbies/internal/platform/sec"
	"github.com/taibuivan/clubbies/internal/users/auth"
)

// # Domain Entities

// PublicProfile is the limited projection of a user exposed to anyone.
// It omits email, age, and role for privacy.
type PublicProfile struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// # Field Identifiers

const (
	FieldUsername        = "username"
	FieldOldPassword     = "old_password"
	FieldNewPassword     = "new_password"
	FieldConfirmPassword = "confirm_password"
	FieldRole            = "role"
	FieldMessage         = "message"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for account management.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id int64) (*auth.User, error)

	/*
		Search lists public profiles whose username contains the query.

		Parameters:
		  - context: context.Context
		  - usernameQuery: string
		  - limit: int
		  - offset: int

		Returns:
		  - []PublicProfile: Matching projections
		  - int: Total match count for pagination
		  - error: Retrieval failures
	*/
	Search(context context.Context, usernameQuery string, limit, offset int) ([]PublicProfile, int, error)

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID int64, newHash string) error

	/*
		UpdateRole replaces the user's role.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - role: sec.Role

		Returns:
		  - error: apperr.NotFound if no row matched, or storage failures
	*/
	UpdateRole(context context.Context, userID int64, role sec.Role) error

	/*
		Delete permanently removes the account and its credential.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: apperr.NotFound if no row matched, or storage failures
	*/
	Delete(context context.Context, id int64) error
}

// SessionRevoker terminates refresh sessions after security-relevant changes.
//
// Implemented by the auth service's RevokeAllSessions.
type SessionRevoker interface {
	RevokeAllSessions(context context.Context, userID int64) error
}
