// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/clubbies/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Known unique constraints, mapped to client-safe conflict messages.
//
// Uniqueness is enforced HERE, at the storage layer, not by check-then-insert
// in services: two concurrent registrations of the same username race down to
// a single 23505, so exactly one caller wins.
var uniqueConstraintMessages = map[string]string{
	"users_username_key": "Username already exists",
	"users_email_key":    "Email already exists",
	"venues_slug_key":    "A venue with this name already exists",
}

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Unique violations (SQLSTATE 23505) become field-specific Conflicts
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation {
		if message, known := uniqueConstraintMessages[pgError.ConstraintName]; known {
			return apperr.Conflict(message)
		}
		return apperr.Conflict("Resource already exists")
	}

	// 3. Unknown query errors become Internal Server Errors. The action tag
	// survives in the cause for server-side logs; the client sees nothing.
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
