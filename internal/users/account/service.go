// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/clubbies/internal/platform/apperr"
	"github.com/taibuivan/clubbies/internal/platform/sec"
	"github.com/taibuivan/clubbies/internal/users/auth"
	"github.com/taibuivan/clubbies/pkg/pagination"
)

// # Service Layer

// Service orchestrates business logic for account management.
//
// It ensures that password rotation, role assignment, and account removal
// follow established security constraints.
type Service struct {
	accountRepository AccountRepository
	sessionRevoker    SessionRevoker
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accountRepo AccountRepository, sessionRevoker SessionRevoker, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		sessionRevoker:    sessionRevoker,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID int64) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Search lists public profiles whose username contains the query.

Parameters:
  - context: context.Context
  - usernameQuery: string
  - params: pagination.Params

Returns:
  - []PublicProfile: Matching projections
  - int: Total match count
  - error: Retrieval failures
*/
func (service *Service) Search(context context.Context, usernameQuery string, params pagination.Params) ([]PublicProfile, int, error) {
	return service.accountRepository.Search(context, usernameQuery, params.Limit, params.Offset())
}

// # Password Rotation

// ChangePasswordInput defines the payload for a password rotation.
type ChangePasswordInput struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password, requires a matching confirmation,
replaces the hash, and revokes EVERY refresh session so other devices must
log in again with the new password.

Parameters:
  - context: context.Context
  - userID: int64
  - input: ChangePasswordInput

Returns:
  - err: Unauthorized, validation, or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID int64, input ChangePasswordInput) error {

	// Confirmation must match before any storage work happens.
	if input.NewPassword != input.ConfirmPassword {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldConfirmPassword,
			Message: "Passwords do not match",
		})
	}

	// Fetch user by ID
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !sec.CheckPasswordHash(input.OldPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	// Hash the brand new password
	hashedPassword, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("account_service_change_password_hash_failed: %w", err)
	}

	// Update the database with the new hash
	if err := service.accountRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	// Security Side Effect: Revoke all sessions to force re-login everywhere
	_ = service.sessionRevoker.RevokeAllSessions(context, userID)

	service.logger.Info("user_password_changed", slog.Int64("user_id", userID))

	return nil
}

// # Administrative Controls

/*
UpdateRole assigns a new role to a user.

Description: Admin-only operation (enforced by the authorization gate at the
router). The role takes effect on the target's next privileged call because
the gate re-reads roles from storage.

Parameters:
  - context: context.Context
  - userID: int64
  - role: sec.Role

Returns:
  - *auth.User: The updated profile
  - err: Validation, NotFound, or storage failures
*/
func (service *Service) UpdateRole(context context.Context, userID int64, role sec.Role) (*auth.User, error) {
	if !role.IsValid() {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldRole,
			Message: "Must be one of: user, mod, admin",
		})
	}

	if err := service.accountRepository.UpdateRole(context, userID, role); err != nil {
		return nil, err
	}

	service.logger.Warn("user_role_updated",
		slog.Int64("user_id", userID),
		slog.String("role", string(role)),
	)

	return service.accountRepository.FindByID(context, userID)
}

/*
DeleteAccount permanently removes a user account.

Description: The caller may delete their own account; deleting someone else's
requires the admin role. The account row carries the credential, so both die
together, and every refresh session is revoked.

Parameters:
  - context: context.Context
  - actorID: int64 (the authenticated principal)
  - targetID: int64

Returns:
  - err: Forbidden, NotFound, or storage failures
*/
func (service *Service) DeleteAccount(context context.Context, actorID, targetID int64) error {

	// Self-service deletion is always allowed; everything else needs the
	// actor's CURRENT role, read fresh from storage rather than the token.
	if actorID != targetID {
		actor, err := service.accountRepository.FindByID(context, actorID)
		if err != nil {
			return apperr.Unauthorized("Account no longer exists")
		}
		if !actor.Role.AtLeast(sec.RoleAdmin) {
			return apperr.Forbidden("Insufficient permissions")
		}
	}

	if err := service.accountRepository.Delete(context, targetID); err != nil {
		return err
	}

	// Force global revocation of sessions for the deleted account
	_ = service.sessionRevoker.RevokeAllSessions(context, targetID)

	service.logger.Warn("user_account_deleted",
		slog.Int64("user_id", targetID),
		slog.Int64("actor_id", actorID),
	)

	return nil
}
