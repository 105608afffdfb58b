// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/clubbies/internal/platform/apperr"
	"github.com/taibuivan/clubbies/internal/platform/dberr"
	"github.com/taibuivan/clubbies/internal/platform/sec"
	"github.com/taibuivan/clubbies/internal/users/auth"
)

// # Account Repository

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *auth.User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id int64) (*auth.User, error) {
	const query = `
		SELECT user_id, username, email, password_hash, age, role, created_at, updated_at
		FROM users
		WHERE user_id = $1`

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Age,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "postgres_account_repo_find_by_id_failed")
	}

	return user, nil
}

/*
Search lists public profiles whose username contains the query.

Description: Case-insensitive substring match (ILIKE) with pagination. Only
the public projection is selected; email and role never leave the database
on this path.

Parameters:
  - context: context.Context
  - usernameQuery: string
  - limit: int
  - offset: int

Returns:
  - []PublicProfile: Matching projections
  - int: Total match count
  - error: Retrieval failures
*/
func (repository *PostgresAccountRepository) Search(context context.Context, usernameQuery string, limit, offset int) ([]PublicProfile, int, error) {
	pattern := "%" + usernameQuery + "%"

	const countQuery = "SELECT COUNT(*) FROM users WHERE username ILIKE $1"

	var total int
	if err := repository.pool.QueryRow(context, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_account_repo_search_count_failed")
	}

	const query = `
		SELECT user_id, username
		FROM users
		WHERE username ILIKE $1
		ORDER BY username ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_account_repo_search_failed")
	}
	defer rows.Close()

	profiles := make([]PublicProfile, 0, limit)
	for rows.Next() {
		var profile PublicProfile
		if err := rows.Scan(&profile.UserID, &profile.Username); err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_account_repo_search_scan_failed")
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_account_repo_search_rows_failed")
	}

	return profiles, total, nil
}

/*
UpdatePassword updates only the password hash for a specific user.

Parameters:
  - context: context.Context
  - userID: int64
  - newHash: string

Returns:
  - error: apperr.NotFound if no row matched, or execution errors
*/
func (repository *PostgresAccountRepository) UpdatePassword(context context.Context, userID int64, newHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2, updated_at = $3
		WHERE user_id = $1`

	tag, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return dberr.Wrap(err, "postgres_account_repo_update_password_failed")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
UpdateRole replaces the user's role.

Parameters:
  - context: context.Context
  - userID: int64
  - role: sec.Role

Returns:
  - error: apperr.NotFound if no row matched, or execution errors
*/
func (repository *PostgresAccountRepository) UpdateRole(context context.Context, userID int64, role sec.Role) error {
	const query = `
		UPDATE users
		SET role = $2, updated_at = $3
		WHERE user_id = $1`

	tag, err := repository.pool.Exec(context, query, userID, role, time.Now())
	if err != nil {
		return dberr.Wrap(err, "postgres_account_repo_update_role_failed")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
Delete permanently removes the account row.

Description: The credential lives in the same row, so deleting the account
deletes the credential with it. The user's reviews cascade away too.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: apperr.NotFound if no row matched, or execution errors
*/
func (repository *PostgresAccountRepository) Delete(context context.Context, id int64) error {
	const query = "DELETE FROM users WHERE user_id = $1"

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_account_repo_delete_failed")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
