// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/clubbies/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		Create persists a brand-new user account to the storage.

		Description: The caller populates ID, CreatedAt, and UpdatedAt from the
		returned row. Unique-constraint violations surface as apperr.Conflict.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		RoleByUserID returns ONLY the current role of the account.

		Description: Used by the authorization gate on every privileged call, so
		it must stay a single cheap indexed read.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - sec.Role: Current role
		  - error: apperr.NotFound if the account no longer exists
	*/
	RoleByUserID(context context.Context, userID int64) (sec.Role, error)

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
}

// # Session Data Access

// SessionStore defines the volatile storage contract for refresh sessions.
//
// Sessions are keyed by the refresh token's jti claim. A jti that is absent
// from the store is dead, whether it expired, was rotated, or was revoked.
type SessionStore interface {

	/*
		Save records a live refresh session for a user.

		Parameters:
		  - context: context.Context
		  - jti: string (the refresh token's unique ID)
		  - userID: int64
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, jti string, userID int64, ttl time.Duration) error

	/*
		Consume atomically retrieves AND removes a live session.

		Description: The removal is what makes rotation replay-safe. Two
		concurrent redemptions of the same jti race down to a single winner.

		Parameters:
		  - context: context.Context
		  - jti: string

		Returns:
		  - int64: The session's userID
		  - error: apperr.NotFound if the session is dead
	*/
	Consume(context context.Context, jti string) (int64, error)

	/*
		Revoke removes a single session if it is still live.

		Parameters:
		  - context: context.Context
		  - jti: string

		Returns:
		  - error: Persistence failures
	*/
	Revoke(context context.Context, jti string) error

	/*
		RevokeAll removes every live session belonging to the userID.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - error: Persistence failures
	*/
	RevokeAll(context context.Context, userID int64) error
}
