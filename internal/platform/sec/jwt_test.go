// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/clubbies/internal/platform/sec"
)

const (
	testSecret = "test-secret-key-with-enough-length!!"
	testIssuer = "clubbies.test"
)

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testSecret, testIssuer)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_RejectsShortSecret ensures weak signing keys never make
it past startup.
*/
func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	_, err := sec.NewTokenService("too-short", testIssuer)
	assert.Error(t, err)
}

/*
TestTokenService_AccessRoundTrip verifies that a generated access token
decodes back to the same identity.
*/
func TestTokenService_AccessRoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken(42, "nightowl", 10*time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "nightowl", claims.Username)
	assert.Equal(t, sec.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID, "every token carries a jti")
}

/*
TestTokenService_RefreshCarriesJTI checks that refresh generation returns the
jti the session store needs for rotation.
*/
func TestTokenService_RefreshCarriesJTI(t *testing.T) {
	service := newTestTokenService(t)

	token, jti, err := service.GenerateRefreshToken(42, "nightowl", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := service.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, sec.TokenTypeRefresh, claims.TokenType)
}

/*
TestTokenService_Expired verifies that expiry is enforced at decode time and
mapped to the dedicated sentinel.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken(42, "nightowl", -time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyAccessToken(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
	assert.Nil(t, claims)
}

/*
TestTokenService_Tampered flips one byte of the payload and expects the
signature check to fail.
*/
func TestTokenService_Tampered(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken(42, "nightowl", 10*time.Minute)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = service.VerifyAccessToken(tampered)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestTokenService_TypeConfusion ensures an access token cannot be redeemed as
a refresh token and vice versa.
*/
func TestTokenService_TypeConfusion(t *testing.T) {
	service := newTestTokenService(t)

	accessToken, err := service.GenerateAccessToken(42, "nightowl", 10*time.Minute)
	require.NoError(t, err)

	refreshToken, _, err := service.GenerateRefreshToken(42, "nightowl", time.Hour)
	require.NoError(t, err)

	_, err = service.VerifyRefreshToken(accessToken)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)

	_, err = service.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestTokenService_RejectsUnsignedAlgorithm guards against the classic "none"
algorithm downgrade.
*/
func TestTokenService_RejectsUnsignedAlgorithm(t *testing.T) {
	service := newTestTokenService(t)

	claims := sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:    42,
		Username:  "nightowl",
		TokenType: sec.TokenTypeAccess,
	}

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(token)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestTokenService_Garbage covers strings that are not JWTs at all.
*/
func TestTokenService_Garbage(t *testing.T) {
	service := newTestTokenService(t)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := service.VerifyAccessToken(token)
		assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	}
}
