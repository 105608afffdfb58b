// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/clubbies/internal/platform/apperr"
	"github.com/taibuivan/clubbies/internal/platform/sec"
	"github.com/taibuivan/clubbies/internal/users/account"
	"github.com/taibuivan/clubbies/internal/users/auth"
	"github.com/taibuivan/clubbies/pkg/pagination"
)

// # Test Fakes

type fakeAccountRepo struct {
	users map[int64]*auth.User
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id int64) (*auth.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeAccountRepo) Search(_ context.Context, query string, limit, offset int) ([]account.PublicProfile, int, error) {
	matches := []account.PublicProfile{}
	for _, user := range r.users {
		if strings.Contains(strings.ToLower(user.Username), strings.ToLower(query)) {
			matches = append(matches, account.PublicProfile{UserID: user.ID, Username: user.Username})
		}
	}
	return matches, len(matches), nil
}

func (r *fakeAccountRepo) UpdatePassword(_ context.Context, userID int64, newHash string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func (r *fakeAccountRepo) UpdateRole(_ context.Context, userID int64, role sec.Role) error {
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Role = role
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(r.users, id)
	return nil
}

type fakeRevoker struct {
	revoked []int64
}

func (f *fakeRevoker) RevokeAllSessions(_ context.Context, userID int64) error {
	f.revoked = append(f.revoked, userID)
	return nil
}

// # Fixtures

func newTestService(t *testing.T) (*account.Service, *fakeAccountRepo, *fakeRevoker) {
	t.Helper()

	hash, err := sec.HashPassword("oldsecret")
	require.NoError(t, err)

	repo := &fakeAccountRepo{users: map[int64]*auth.User{
		1: {ID: 1, Username: "nightowl", Email: "owl@clubbies.app", PasswordHash: hash, Age: 24, Role: sec.RoleUser},
		2: {ID: 2, Username: "bouncer", Email: "bouncer@clubbies.app", PasswordHash: hash, Age: 35, Role: sec.RoleAdmin},
	}}
	revoker := &fakeRevoker{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return account.NewService(repo, revoker, logger), repo, revoker
}

// # Password Rotation

/*
TestService_ChangePassword verifies the full rotation flow including the
session revocation side effect.
*/
func TestService_ChangePassword(t *testing.T) {
	service, repo, revoker := newTestService(t)
	oldHash := repo.users[1].PasswordHash

	err := service.ChangePassword(context.Background(), 1, account.ChangePasswordInput{
		OldPassword:     "oldsecret",
		NewPassword:     "newsecret",
		ConfirmPassword: "newsecret",
	})

	require.NoError(t, err)
	assert.NotEqual(t, oldHash, repo.users[1].PasswordHash, "hash must be replaced")
	assert.True(t, sec.CheckPasswordHash("newsecret", repo.users[1].PasswordHash))
	assert.Equal(t, []int64{1}, revoker.revoked, "all sessions must be revoked")
}

/*
TestService_ChangePassword_Rejections covers the guard clauses.
*/
func TestService_ChangePassword_Rejections(t *testing.T) {
	tests := []struct {
		name         string
		input        account.ChangePasswordInput
		expectedCode string
	}{
		{
			"wrong_old_password",
			account.ChangePasswordInput{OldPassword: "not-it", NewPassword: "newsecret", ConfirmPassword: "newsecret"},
			"UNAUTHORIZED",
		},
		{
			"confirmation_mismatch",
			account.ChangePasswordInput{OldPassword: "oldsecret", NewPassword: "newsecret", ConfirmPassword: "different"},
			"VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, revoker := newTestService(t)
			oldHash := repo.users[1].PasswordHash

			err := service.ChangePassword(context.Background(), 1, tt.input)

			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, apperr.As(err).Code)
			assert.Equal(t, oldHash, repo.users[1].PasswordHash, "hash must be untouched")
			assert.Empty(t, revoker.revoked)
		})
	}
}

// # Role Assignment

/*
TestService_UpdateRole verifies role persistence and rejection of unknown roles.
*/
func TestService_UpdateRole(t *testing.T) {
	service, repo, _ := newTestService(t)

	user, err := service.UpdateRole(context.Background(), 1, sec.RoleMod)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleMod, user.Role)
	assert.Equal(t, sec.RoleMod, repo.users[1].Role)

	_, err = service.UpdateRole(context.Background(), 1, sec.Role("overlord"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.UpdateRole(context.Background(), 999, sec.RoleMod)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// # Account Deletion

/*
TestService_DeleteAccount verifies the admin-or-self policy.
*/
func TestService_DeleteAccount(t *testing.T) {
	t.Run("self_deletion_allowed", func(t *testing.T) {
		service, repo, revoker := newTestService(t)

		require.NoError(t, service.DeleteAccount(context.Background(), 1, 1))
		assert.NotContains(t, repo.users, int64(1))
		assert.Equal(t, []int64{1}, revoker.revoked)
	})

	t.Run("plain_user_cannot_delete_others", func(t *testing.T) {
		service, repo, revoker := newTestService(t)

		err := service.DeleteAccount(context.Background(), 1, 2)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
		assert.Contains(t, repo.users, int64(2))
		assert.Empty(t, revoker.revoked)
	})

	t.Run("admin_deletes_others", func(t *testing.T) {
		service, repo, revoker := newTestService(t)

		require.NoError(t, service.DeleteAccount(context.Background(), 2, 1))
		assert.NotContains(t, repo.users, int64(1))
		assert.Equal(t, []int64{1}, revoker.revoked)
	})

	t.Run("demoted_admin_rejected", func(t *testing.T) {
		service, repo, _ := newTestService(t)

		// Demote the admin in storage; the service reads the CURRENT role.
		repo.users[2].Role = sec.RoleUser

		err := service.DeleteAccount(context.Background(), 2, 1)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}

// # Discovery

/*
TestService_Search verifies the public projection never includes private data.
*/
func TestService_Search(t *testing.T) {
	service, _, _ := newTestService(t)

	profiles, total, err := service.Search(context.Background(), "owl", pagination.Params{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, profiles, 1)
	assert.Equal(t, int64(1), profiles[0].UserID)
	assert.Equal(t, "nightowl", profiles[0].Username)
}
