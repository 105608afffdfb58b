// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/clubbies/internal/platform/apperr"
	"github.com/taibuivan/clubbies/internal/platform/constants"
)

// # Session Store

// RedisSessionStore implements SessionStore using Redis.
//
// # Key Layout
//
//   - auth:session:<jti>        → userID (string), TTL = refresh lifetime
//   - auth:user_sessions:<uid>  → SET of live jtis, for bulk revocation
//
// The per-jti key's TTL is the source of truth for session expiry; the index
// set carries the same TTL and may hold stale members, which RevokeAll
// tolerates.
type RedisSessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed SessionStore.
func NewSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(jti string) string {
	return constants.RedisPrefixSession + jti
}

func userSessionsKey(userID int64) string {
	return constants.RedisPrefixUserSessions + strconv.FormatInt(userID, 10)
}

/*
Save records a live refresh session for a user.

Description: Writes the jti key with TTL and adds it to the user's index set
so RevokeAll can find it later.

Parameters:
  - context: context.Context
  - jti: string
  - userID: int64
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (store *RedisSessionStore) Save(context context.Context, jti string, userID int64, ttl time.Duration) error {

	// Write the session key and maintain the per-user index atomically
	pipe := store.client.TxPipeline()
	pipe.Set(context, sessionKey(jti), strconv.FormatInt(userID, 10), ttl)
	pipe.SAdd(context, userSessionsKey(userID), jti)
	pipe.Expire(context, userSessionsKey(userID), ttl)

	if _, err := pipe.Exec(context); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

/*
Consume atomically retrieves AND removes a live session.

Description: GETDEL guarantees that concurrent redemptions of the same jti
produce exactly one winner; the loser observes redis.Nil.

Parameters:
  - context: context.Context
  - jti: string

Returns:
  - int64: The session's userID
  - error: apperr.NotFound if the session is dead (expired, rotated, revoked)
*/
func (store *RedisSessionStore) Consume(context context.Context, jti string) (int64, error) {
	raw, err := store.client.GetDel(context, sessionKey(jti)).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, apperr.NotFound("Session")
		}
		return 0, apperr.Internal(err)
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Internal(err)
	}

	// Best-effort index cleanup; the set entry is harmless if it lingers.
	_ = store.client.SRem(context, userSessionsKey(userID), jti).Err()

	return userID, nil
}

/*
Revoke removes a single session if it is still live.

Description: Idempotent. Revoking an already-dead jti is a no-op.

Parameters:
  - context: context.Context
  - jti: string

Returns:
  - error: Execution errors
*/
func (store *RedisSessionStore) Revoke(context context.Context, jti string) error {
	raw, err := store.client.GetDel(context, sessionKey(jti)).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return apperr.Internal(err)
	}

	if userID, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil {
		_ = store.client.SRem(context, userSessionsKey(userID), jti).Err()
	}

	return nil
}

/*
RevokeAll removes every live session belonging to the userID.

Description: Security nuking of all active sessions, used after password
changes and account deletion.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - error: Execution errors
*/
func (store *RedisSessionStore) RevokeAll(context context.Context, userID int64) error {
	indexKey := userSessionsKey(userID)

	jtis, err := store.client.SMembers(context, indexKey).Result()
	if err != nil {
		return apperr.Internal(err)
	}

	keys := make([]string, 0, len(jtis)+1)
	for _, jti := range jtis {
		keys = append(keys, sessionKey(jti))
	}
	keys = append(keys, indexKey)

	if err := store.client.Del(context, keys...).Err(); err != nil {
		return apperr.Internal(err)
	}

	return nil
}
