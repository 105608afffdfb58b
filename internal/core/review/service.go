package review

import (
	"context"
	"log/slog"

	"github.com/taibuivan/clubbies/internal/platform/apperr"
	"github.com/taibuivan/clubbies/internal/platform/sec"
	"github.com/taibuivan/clubbies/internal/platform/validate"
)

type Service struct {
	repo       Repository
	roleSource RoleSource
	logger     *slog.Logger
}

func NewService(repo Repository, roleSource RoleSource, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		roleSource: roleSource,
		logger:     logger,
	}
}

func (service *Service) ListByVenue(context context.Context, venueID int64, limit, offset int) ([]*Review, int, error) {
	exists, err := service.repo.VenueExists(context, venueID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, apperr.NotFound("Venue")
	}

	return service.repo.ListByVenue(context, venueID, limit, offset)
}

// CreateInput carries a new review. UserID is the authenticated principal,
// never client-supplied.
type CreateInput struct {
	VenueID int64
	UserID  int64
	Rating  float64
	Text    string
}

func (service *Service) CreateReview(context context.Context, input CreateInput) (*Review, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldRating, input.Rating <= 0 || input.Rating > 5, "Must be between 0.1 and 5.0").
		MaxLen(FieldText, input.Text, MaxTextLen)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	exists, err := service.repo.VenueExists(context, input.VenueID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Venue")
	}

	review := &Review{
		VenueID: input.VenueID,
		UserID:  input.UserID,
		Rating:  input.Rating,
		Text:    input.Text,
	}

	if err := service.repo.CreateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("venue_id", review.VenueID),
		slog.Int64("user_id", review.UserID),
	)
	return review, nil
}

// DeleteReview removes a review if the actor owns it or currently holds the
// admin role. The role comes from storage, not from the actor's token.
func (service *Service) DeleteReview(context context.Context, actorID, reviewID int64) error {
	review, err := service.repo.GetReview(context, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != actorID {
		role, err := service.roleSource.RoleByUserID(context, actorID)
		if err != nil {
			return apperr.Unauthorized("Account no longer exists")
		}
		if !role.AtLeast(sec.RoleAdmin) {
			return apperr.Forbidden("Insufficient permissions")
		}
	}

	if err := service.repo.DeleteReview(context, reviewID); err != nil {
		return err
	}

	service.logger.Warn("review_deleted",
		slog.Int64("review_id", reviewID),
		slog.Int64("actor_id", actorID),
	)
	return nil
}
