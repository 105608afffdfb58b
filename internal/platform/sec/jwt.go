// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces.
package sec

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// # Token Failure Modes

var (
	// ErrTokenExpired is returned when a token's signature verifies but its
	// expiry is in the past. Expiry is enforced here, at decode time — never
	// by the caller.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid is returned for every other verification failure:
	// tampered payload, bad signature, wrong algorithm, wrong token type,
	// or a malformed string.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// # Token Types

const (
	// TokenTypeAccess marks short-lived bearer tokens used on API calls.
	TokenTypeAccess = "access"

	// TokenTypeRefresh marks longer-lived tokens redeemed for a new pair.
	TokenTypeRefresh = "refresh"
)

// AuthClaims represents the payload embedded inside a Clubbies JWT.
//
// # Trust Boundary
//
// Claims carry the user's identity (id, username) but deliberately NOT the
// role. Roles can change after a token is issued, so every privileged check
// re-reads the current role from the database instead of trusting the token.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID    int64  `json:"uid"`
	Username  string `json:"unm"`
	TokenType string `json:"typ"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// The signing secret is process-wide, loaded once at startup from config,
// and read-only thereafter.
type TokenService struct {
	secret []byte
	issuer string
}

// minSecretLength rejects secrets too short to resist brute force.
const minSecretLength = 32

// NewTokenService creates a new TokenService from the configured signing secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < minSecretLength {
		return nil, errors.New("sec: JWT secret must be at least 32 bytes")
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// GenerateAccessToken creates a new short-lived JWT access token for a user.
func (service *TokenService) GenerateAccessToken(userID int64, username string, timeToLive time.Duration) (string, error) {
	token, _, err := service.generate(userID, username, TokenTypeAccess, timeToLive)
	return token, err
}

// GenerateRefreshToken creates a new refresh token for a user.
//
// # Returns
//   - The signed token string.
//   - The token's jti, which the caller must record in the session store so
//     rotation can invalidate it later.
func (service *TokenService) GenerateRefreshToken(userID int64, username string, timeToLive time.Duration) (string, string, error) {
	return service.generate(userID, username, TokenTypeRefresh, timeToLive)
}

// generate signs a token of the given type and returns (token, jti, error).
func (service *TokenService) generate(userID int64, username, tokenType string, timeToLive time.Duration) (string, string, error) {
	currentTime := time.Now()
	jti := uuid.New().String()

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    service.issuer,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", "", errors.Join(ErrTokenInvalid, err)
	}

	return signedToken, jti, nil
}

// VerifyAccessToken checks the signature, expiry, and type of an access token.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	return service.verify(tokenString, TokenTypeAccess)
}

// VerifyRefreshToken checks the signature, expiry, and type of a refresh token.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*AuthClaims, error) {
	return service.verify(tokenString, TokenTypeRefresh)
}

// verify parses a JWT string and validates it against the expected token type.
//
// # Failure Mapping
//
// A token with a valid signature but past expiry is [ErrTokenExpired] and
// never yields claims. Every other failure — including an access token
// presented where a refresh token is expected — is [ErrTokenInvalid].
func (service *TokenService) verify(tokenString, expectedType string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Reject any algorithm other than HMAC ("none" and RSA downgrade attacks).
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.TokenType != expectedType {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
