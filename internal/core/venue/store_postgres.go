package venue

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/clubbies/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const venueColumns = "venue_id, name, slug, address, hours, venue_types, age_req, description, capacity, created_at, updated_at"

func scanVenue(row interface{ Scan(...any) error }, v *Venue) error {
	return row.Scan(
		&v.ID, &v.Name, &v.Slug, &v.Address, &v.Hours, &v.VenueTypes,
		&v.AgeReq, &v.Description, &v.Capacity, &v.CreatedAt, &v.UpdatedAt,
	)
}

func (repository *PostgresRepository) ListVenues(context context.Context, f Filter, limit, offset int) ([]*Venue, int, error) {
	query := "SELECT " + venueColumns + " FROM venues WHERE TRUE"
	countQuery := "SELECT count(*) FROM venues WHERE TRUE"

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		clause := " AND name ILIKE $" + itos(len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	if f.Type != "" {
		clause := " AND $" + itos(len(args)+1) + " = ANY(venue_types)"
		query += clause
		countQuery += clause
		args = append(args, f.Type)
		countArgs = append(countArgs, f.Type)
	}

	query += " ORDER BY name ASC LIMIT $" + itos(len(args)+1) + " OFFSET $" + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_venues")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_venues")
	}
	defer rows.Close()

	var venues []*Venue
	for rows.Next() {
		v := &Venue{}
		if err := scanVenue(rows, v); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_venue")
		}
		venues = append(venues, v)
	}

	return venues, total, nil
}

func (repository *PostgresRepository) GetVenue(context context.Context, id int64) (*Venue, error) {
	const query = "SELECT " + venueColumns + " FROM venues WHERE venue_id = $1"

	v := &Venue{}
	err := scanVenue(repository.db.QueryRow(context, query, id), v)
	if err != nil {
		return nil, dberr.Wrap(err, "get_venue")
	}
	return v, nil
}

func (repository *PostgresRepository) GetVenueBySlug(context context.Context, slug string) (*Venue, error) {
	const query = "SELECT " + venueColumns + " FROM venues WHERE slug = $1"

	v := &Venue{}
	err := scanVenue(repository.db.QueryRow(context, query, slug), v)
	if err != nil {
		return nil, dberr.Wrap(err, "get_venue_by_slug")
	}
	return v, nil
}

func (repository *PostgresRepository) CreateVenue(context context.Context, v *Venue) error {
	const query = `
		INSERT INTO venues (name, slug, address, hours, venue_types, age_req, description, capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING venue_id, created_at, updated_at`

	err := repository.db.QueryRow(context, query,
		v.Name, v.Slug, v.Address, v.Hours, v.VenueTypes, v.AgeReq, v.Description, v.Capacity,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)

	return dberr.Wrap(err, "create_venue")
}

func (repository *PostgresRepository) UpdateVenue(context context.Context, v *Venue) error {
	const query = `
		UPDATE venues
		SET name = $2, slug = $3, address = $4, hours = $5, venue_types = $6,
		    age_req = $7, description = $8, capacity = $9, updated_at = NOW()
		WHERE venue_id = $1
		RETURNING updated_at`

	err := repository.db.QueryRow(context, query,
		v.ID, v.Name, v.Slug, v.Address, v.Hours, v.VenueTypes, v.AgeReq, v.Description, v.Capacity,
	).Scan(&v.UpdatedAt)

	return dberr.Wrap(err, "update_venue")
}

func (repository *PostgresRepository) DeleteVenue(context context.Context, id int64) error {
	cmd, err := repository.db.Exec(context, "DELETE FROM venues WHERE venue_id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "delete_venue")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
