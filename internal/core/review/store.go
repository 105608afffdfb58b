package review

import (
	"context"

	"github.com/taibuivan/clubbies/internal/platform/sec"
)

type Repository interface {
	ListByVenue(context context.Context, venueID int64, limit, offset int) ([]*Review, int, error)
	GetReview(context context.Context, id int64) (*Review, error)
	CreateReview(context context.Context, r *Review) error
	DeleteReview(context context.Context, id int64) error
	VenueExists(context context.Context, venueID int64) (bool, error)
}

// RoleSource resolves the actor's CURRENT role for the owner-or-admin
// deletion policy. Implemented by the auth user repository.
type RoleSource interface {
	RoleByUserID(context context.Context, userID int64) (sec.Role, error)
}
