// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/clubbies/internal/platform/apperr"
	"github.com/taibuivan/clubbies/internal/platform/dberr"
)

/*
TestWrap_NoRows maps the pgx sentinel to a generic 404.
*/
func TestWrap_NoRows(t *testing.T) {
	err := dberr.Wrap(pgx.ErrNoRows, "get_user")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestWrap_UniqueViolation maps known constraint names to client-safe
conflict messages.
*/
func TestWrap_UniqueViolation(t *testing.T) {
	tests := []struct {
		name            string
		constraint      string
		expectedMessage string
	}{
		{"username_taken", "users_username_key", "Username already exists"},
		{"email_taken", "users_email_key", "Email already exists"},
		{"venue_slug_taken", "venues_slug_key", "A venue with this name already exists"},
		{"unknown_constraint", "mystery_key", "Resource already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgError := &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: tt.constraint,
			}

			err := dberr.Wrap(pgError, "create")
			require.True(t, apperr.IsConflict(err))
			assert.Equal(t, tt.expectedMessage, apperr.As(err).Message)
		})
	}
}

/*
TestWrap_UnknownError hides arbitrary database failures behind a 500 while
keeping the cause for server-side logs.
*/
func TestWrap_UnknownError(t *testing.T) {
	cause := errors.New("connection reset by peer")

	err := dberr.Wrap(cause, "list_venues")
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, ae.Message, "connection reset", "internals never leak to clients")
}

/*
TestWrap_Nil passes nil through untouched.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "anything"))
}
