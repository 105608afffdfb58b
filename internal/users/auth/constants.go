// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (10m) to minimize the impact of a leaked token.
	AccessTokenTTL = 10 * time.Minute

	// RefreshTokenTTL is the duration a refresh session remains valid.
	// Long-lived (14 days) to provide a good user experience.
	RefreshTokenTTL = 14 * 24 * time.Hour

	// BearerTokenType is the token_type field value in every issued pair.
	BearerTokenType = "bearer"
)

// # Validation Bounds

const (
	// UsernameMinLen is the minimum username length.
	UsernameMinLen = 4

	// UsernameMaxLen matches the varchar(40) column width.
	UsernameMaxLen = 40

	// PasswordMinLen is the minimum password length.
	PasswordMinLen = 6

	// MinimumAge is the legal entry requirement for the platform.
	MinimumAge = 18
)
