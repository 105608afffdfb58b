package venue

import "context"

type Repository interface {
	ListVenues(context context.Context, f Filter, limit, offset int) ([]*Venue, int, error)
	GetVenue(context context.Context, id int64) (*Venue, error)
	GetVenueBySlug(context context.Context, slug string) (*Venue, error)
	CreateVenue(context context.Context, v *Venue) error
	UpdateVenue(context context.Context, v *Venue) error
	DeleteVenue(context context.Context, id int64) error
}
