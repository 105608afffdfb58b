// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/clubbies/internal/platform/apperr"
	"github.com/taibuivan/clubbies/internal/platform/middleware"
	"github.com/taibuivan/clubbies/internal/platform/sec"
)

// fakeVerifier accepts exactly one token string and returns fixed claims.
type fakeVerifier struct {
	validToken string
	claims     *sec.AuthClaims
}

func (v *fakeVerifier) VerifyAccessToken(tokenString string) (*sec.AuthClaims, error) {
	if tokenString == v.validToken {
		return v.claims, nil
	}
	return nil, sec.ErrTokenInvalid
}

type fakeRoleSource struct {
	roles map[int64]sec.Role
}

func (s *fakeRoleSource) RoleByUserID(_ context.Context, userID int64) (sec.Role, error) {
	if role, ok := s.roles[userID]; ok {
		return role, nil
	}
	return "", apperr.NotFound("User")
}

func newVerifier() *fakeVerifier {
	return &fakeVerifier{
		validToken: "good-token",
		claims:     &sec.AuthClaims{UserID: 42, Username: "nightowl"},
	}
}

// echoUser writes 200 and records whether claims were present in context.
func echoUser(sawClaims *bool) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*sawClaims = middleware.GetUser(request.Context()) != nil
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate covers the bearer extraction paths: anonymous pass-through,
malformed headers, rejected tokens, and successful context injection.
*/
func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectClaims   bool
	}{
		{"anonymous_passes_through", "", http.StatusOK, false},
		{"malformed_header", "NotBearer xyz", http.StatusUnauthorized, false},
		{"missing_token", "Bearer", http.StatusUnauthorized, false},
		{"invalid_token", "Bearer bad-token", http.StatusUnauthorized, false},
		{"valid_token", "Bearer good-token", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sawClaims bool
			handler := middleware.Authenticate(newVerifier())(echoUser(&sawClaims))

			request := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			if recorder.Code == http.StatusOK {
				assert.Equal(t, tt.expectClaims, sawClaims)
			}
		})
	}
}

/*
TestRequireAuth blocks anonymous requests after the Authenticate middleware
has run.
*/
func TestRequireAuth(t *testing.T) {
	var sawClaims bool
	chain := middleware.Authenticate(newVerifier())(
		middleware.RequireAuth(echoUser(&sawClaims)),
	)

	t.Run("anonymous_rejected", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/", nil)
		recorder := httptest.NewRecorder()

		chain.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("authenticated_passes", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/", nil)
		request.Header.Set("Authorization", "Bearer good-token")
		recorder := httptest.NewRecorder()

		chain.ServeHTTP(recorder, request)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, sawClaims)
	})
}

/*
TestRequireRole verifies that privilege comes from storage, not from the
token: a still-valid token is useless once the account is demoted or gone.
*/
func TestRequireRole(t *testing.T) {
	run := func(t *testing.T, roles map[int64]sec.Role, header string) int {
		t.Helper()
		var sawClaims bool
		source := &fakeRoleSource{roles: roles}
		chain := middleware.Authenticate(newVerifier())(
			middleware.RequireRole(source, sec.RoleAdmin)(echoUser(&sawClaims)),
		)

		request := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			request.Header.Set("Authorization", header)
		}
		recorder := httptest.NewRecorder()
		chain.ServeHTTP(recorder, request)
		return recorder.Code
	}

	t.Run("anonymous_rejected", func(t *testing.T) {
		code := run(t, map[int64]sec.Role{42: sec.RoleAdmin}, "")
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("current_admin_passes", func(t *testing.T) {
		code := run(t, map[int64]sec.Role{42: sec.RoleAdmin}, "Bearer good-token")
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("demoted_admin_forbidden", func(t *testing.T) {
		// The token is still cryptographically valid; the role row is not.
		code := run(t, map[int64]sec.Role{42: sec.RoleUser}, "Bearer good-token")
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("deleted_account_unauthorized", func(t *testing.T) {
		code := run(t, map[int64]sec.Role{}, "Bearer good-token")
		assert.Equal(t, http.StatusUnauthorized, code)
	})
}
