// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Core identity and access management for the Clubbies platform.

It handles everything from user registration and secure password hashing to
session lifecycle management via JWT access tokens and rotated refresh tokens
(tracked in Redis by jti).

Architecture:

  - Service: Orchestrates business logic (Register, Login, Refresh, Logout).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Sessions).
  - Security: Leverages Bcrypt hashing and HS256-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taibuivan/clubbies/internal/platform/apperr"
	"github.com/taibuivan/clubbies/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for generating and verifying security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID int64, username string, timeToLive time.Duration) (string, error)

	// GenerateRefreshToken creates a signed refresh JWT and returns its jti,
	// which the caller records in the session store.
	GenerateRefreshToken(userID int64, username string, timeToLive time.Duration) (string, string, error)

	// VerifyRefreshToken validates a refresh token's signature, expiry, and type.
	VerifyRefreshToken(tokenString string) (*sec.AuthClaims, error)
}

// dummyPasswordHash is a well-formed bcrypt hash compared against when the
// username lookup misses, so unknown-user and wrong-password paths cost the
// same wall time. It matches no real password in the system.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	sessionStore   SessionStore
	tokenProvider  TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, sessionStore SessionStore, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		sessionStore:   sessionStore,
		tokenProvider:  tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Age      int
}

// RegisterResult bundles the created profile with its first session.
type RegisterResult struct {
	User   *User
	Tokens *TokenPair
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Deep-enrollment of a new member, handling password hashing and
first-session issuance. Uniqueness is pre-checked for field-specific Conflict
messages, but the database unique constraints remain the real boundary: two
concurrent registrations of the same username both pass the pre-check and
race down to a single 23505, which maps to the same Conflict.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *RegisterResult: Created entity plus an initial token pair
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*RegisterResult, error) {

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username already exists")
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email already exists")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. The database assigns the ID.
	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Age:          input.Age,
		Role:         sec.RoleUser,
	}

	// Persist the user. A concurrent duplicate surfaces here as Conflict.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	// Issue the first session so the client is logged in immediately.
	tokens, err := service.issueTokenPair(context, user)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{User: user, Tokens: tokens}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult represents a successfully established user session.
type LoginResult struct {
	User   *User
	Tokens *TokenPair
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity with a constant-time password comparison and
issues a fresh token pair. Unknown-user and wrong-password attempts return
one identical Unauthorized message, and the miss path still pays a bcrypt
comparison so the two are indistinguishable by timing.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Transport-ready session credentials
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	user, err := service.userRepository.FindByUsername(context, input.Username)

	// If (err != nil) the user does not exist. Burn a bcrypt compare anyway,
	// then return the same generic message to prevent enumeration.
	if err != nil {
		sec.CheckPasswordHash(input.Password, dummyPasswordHash)
		return nil, apperr.Unauthorized("Incorrect username or password")
	}

	// Verify password hash using bcrypt's constant-time comparison.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Incorrect username or password")
	}

	tokens, err := service.issueTokenPair(context, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Tokens: tokens}, nil
}

// # Session Management

/*
Refresh implements the Refresh Token Rotation mechanism.

Description: Verifies the presented refresh token cryptographically, then
consumes its jti from the session store. Consumption removes the jti, so a
replayed (already rotated) token finds nothing and is rejected. A fresh pair
is issued and its new jti recorded.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *TokenPair: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*TokenPair, error) {

	// ── 1. Cryptographic verification ─────────────────────────────────────
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, sec.ErrTokenExpired) {
			return nil, apperr.Unauthorized("Refresh token expired")
		}
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	// ── 2. Rotation: consume the jti so it can never be redeemed again ────
	storedUserID, err := service.sessionStore.Consume(context, claims.ID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, err
	}

	// A jti bound to a different user means the store and token disagree.
	if storedUserID != claims.UserID {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// ── 3. Re-resolve the user; a deleted account ends the session chain ──
	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Account no longer exists")
	}

	// ── 4. Issue the rotated pair ─────────────────────────────────────────
	return service.issueTokenPair(context, user)
}

/*
Logout permanently revokes the presented refresh session.

Description: Idempotent. An invalid, expired, or already-revoked token still
results in a successful logout.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)

	// If (err != nil) the session is already unusable; logout is a no-op.
	if err != nil {
		return nil
	}

	if err := service.sessionStore.Revoke(context, claims.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

/*
RevokeAllSessions removes every live refresh session of a user.

Description: Exposed for the account domain, which revokes sessions after
password changes and account deletion.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - err: Revocation failures
*/
func (service *Service) RevokeAllSessions(context context.Context, userID int64) error {
	if err := service.sessionStore.RevokeAll(context, userID); err != nil {
		return fmt.Errorf("auth_service_revoke_all_failed: %w", err)
	}
	return nil
}

// issueTokenPair generates an access/refresh pair and records the refresh jti.
func (service *Service) issueTokenPair(context context.Context, user *User) (*TokenPair, error) {

	// Generate short-lived Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	// Generate long-lived Refresh Token and record its jti
	refreshToken, jti, err := service.tokenProvider.GenerateRefreshToken(user.ID, user.Username, RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	if err := service.sessionStore.Save(context, jti, user.ID, RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_save_failed: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    BearerTokenType,
	}, nil
}
