package review

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/clubbies/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByVenue(context context.Context, venueID int64, limit, offset int) ([]*Review, int, error) {
	var total int
	err := repository.db.QueryRow(context,
		"SELECT count(*) FROM reviews WHERE venue_id = $1", venueID,
	).Scan(&total)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	const query = `
		SELECT review_id, venue_id, user_id, rating, text, created_at
		FROM reviews
		WHERE venue_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, venueID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		r := &Review{}
		if err := rows.Scan(&r.ID, &r.VenueID, &r.UserID, &r.Rating, &r.Text, &r.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) GetReview(context context.Context, id int64) (*Review, error) {
	const query = `
		SELECT review_id, venue_id, user_id, rating, text, created_at
		FROM reviews
		WHERE review_id = $1`

	r := &Review{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&r.ID, &r.VenueID, &r.UserID, &r.Rating, &r.Text, &r.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_review")
	}
	return r, nil
}

func (repository *PostgresRepository) CreateReview(context context.Context, r *Review) error {
	const query = `
		INSERT INTO reviews (venue_id, user_id, rating, text)
		VALUES ($1, $2, $3, $4)
		RETURNING review_id, created_at`

	err := repository.db.QueryRow(context, query,
		r.VenueID, r.UserID, r.Rating, r.Text,
	).Scan(&r.ID, &r.CreatedAt)

	return dberr.Wrap(err, "create_review")
}

func (repository *PostgresRepository) DeleteReview(context context.Context, id int64) error {
	cmd, err := repository.db.Exec(context, "DELETE FROM reviews WHERE review_id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) VenueExists(context context.Context, venueID int64) (bool, error) {
	var exists bool
	err := repository.db.QueryRow(context,
		"SELECT EXISTS (SELECT 1 FROM venues WHERE venue_id = $1)", venueID,
	).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "venue_exists")
	}
	return exists, nil
}
