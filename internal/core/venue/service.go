package venue

import (
	"context"
	"log/slog"

	"github.com/taibuivan/clubbies/internal/platform/validate"
	"github.com/taibuivan/clubbies/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListVenues(context context.Context, filter Filter, limit, offset int) ([]*Venue, int, error) {
	return service.repo.ListVenues(context, filter, limit, offset)
}

func (service *Service) GetVenue(context context.Context, id int64) (*Venue, error) {
	return service.repo.GetVenue(context, id)
}

func (service *Service) GetVenueBySlug(context context.Context, venueSlug string) (*Venue, error) {
	return service.repo.GetVenueBySlug(context, venueSlug)
}

func (service *Service) CreateVenue(context context.Context, venue *Venue) error {
	if err := validateVenue(venue); err != nil {
		return err
	}

	// The slug is derived from the name, never client-supplied. Uniqueness is
	// enforced by the venues_slug_key constraint.
	venue.Slug = slug.From(venue.Name)

	if err := service.repo.CreateVenue(context, venue); err != nil {
		return err
	}

	service.logger.Info("venue_created",
		slog.Int64("venue_id", venue.ID),
		slog.String("slug", venue.Slug),
	)
	return nil
}

func (service *Service) UpdateVenue(context context.Context, id int64, venue *Venue) error {
	venue.ID = id
	if err := validateVenue(venue); err != nil {
		return err
	}

	venue.Slug = slug.From(venue.Name)

	if err := service.repo.UpdateVenue(context, venue); err != nil {
		return err
	}

	service.logger.Info("venue_updated", slog.Int64("venue_id", id))
	return nil
}

func (service *Service) DeleteVenue(context context.Context, id int64) error {
	if err := service.repo.DeleteVenue(context, id); err != nil {
		return err
	}

	service.logger.Warn("venue_deleted", slog.Int64("venue_id", id))
	return nil
}

func validateVenue(venue *Venue) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, venue.Name).
		MaxLen(FieldName, venue.Name, 200).
		Required(FieldAddress, venue.Address).
		MaxLen(FieldAddress, venue.Address, 300).
		MaxLen(FieldDescription, venue.Description, 2000).
		Min(FieldAgeReq, venue.AgeReq, 0).
		Min(FieldCapacity, venue.Capacity, 0).
		Custom(FieldVenueTypes, len(venue.VenueTypes) == 0, "At least one venue type is required")

	return validator.Err()
}
