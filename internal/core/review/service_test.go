package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/clubbies/internal/core/review"
	"github.com/taibuivan/clubbies/internal/platform/apperr"
	"github.com/taibuivan/clubbies/internal/platform/dberr"
	"github.com/taibuivan/clubbies/internal/platform/sec"
)

type fakeRepo struct {
	reviews map[int64]*review.Review
	venues  map[int64]bool
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		reviews: map[int64]*review.Review{},
		venues:  map[int64]bool{1: true},
		nextID:  1,
	}
}

func (r *fakeRepo) ListByVenue(_ context.Context, venueID int64, limit, offset int) ([]*review.Review, int, error) {
	var matches []*review.Review
	for _, rev := range r.reviews {
		if rev.VenueID == venueID {
			matches = append(matches, rev)
		}
	}
	return matches, len(matches), nil
}

func (r *fakeRepo) GetReview(_ context.Context, id int64) (*review.Review, error) {
	if rev, ok := r.reviews[id]; ok {
		return rev, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepo) CreateReview(_ context.Context, rev *review.Review) error {
	rev.ID = r.nextID
	rev.CreatedAt = time.Now()
	r.reviews[rev.ID] = rev
	r.nextID++
	return nil
}

func (r *fakeRepo) DeleteReview(_ context.Context, id int64) error {
	if _, ok := r.reviews[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeRepo) VenueExists(_ context.Context, venueID int64) (bool, error) {
	return r.venues[venueID], nil
}

type fakeRoleSource struct {
	roles map[int64]sec.Role
}

func (s *fakeRoleSource) RoleByUserID(_ context.Context, userID int64) (sec.Role, error) {
	if role, ok := s.roles[userID]; ok {
		return role, nil
	}
	return "", apperr.NotFound("User")
}

func newTestService() (*review.Service, *fakeRepo, *fakeRoleSource) {
	repo := newFakeRepo()
	roles := &fakeRoleSource{roles: map[int64]sec.Role{
		1: sec.RoleUser,
		2: sec.RoleAdmin,
	}}
	return review.NewService(repo, roles, slog.New(slog.NewTextHandler(io.Discard, nil))), repo, roles
}

func TestService_CreateReview(t *testing.T) {
	service, repo, _ := newTestService()

	created, err := service.CreateReview(context.Background(), review.CreateInput{
		VenueID: 1,
		UserID:  1,
		Rating:  4.5,
		Text:    "Great sound system",
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(1), created.UserID, "author is the authenticated principal")
	assert.Len(t, repo.reviews, 1)
}

func TestService_CreateReview_Rejections(t *testing.T) {
	service, _, _ := newTestService()

	tests := []struct {
		name         string
		input        review.CreateInput
		expectedCode string
	}{
		{"zero_rating", review.CreateInput{VenueID: 1, UserID: 1, Rating: 0}, "VALIDATION_ERROR"},
		{"rating_above_five", review.CreateInput{VenueID: 1, UserID: 1, Rating: 5.1}, "VALIDATION_ERROR"},
		{"unknown_venue", review.CreateInput{VenueID: 99, UserID: 1, Rating: 3}, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateReview(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, apperr.As(err).Code)
		})
	}
}

func TestService_ListByVenue_UnknownVenue(t *testing.T) {
	service, _, _ := newTestService()

	_, _, err := service.ListByVenue(context.Background(), 99, 20, 0)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_DeleteReview_Policy(t *testing.T) {
	seed := func(t *testing.T) (*review.Service, *fakeRepo, *fakeRoleSource, int64) {
		t.Helper()
		service, repo, roles := newTestService()
		created, err := service.CreateReview(context.Background(), review.CreateInput{
			VenueID: 1, UserID: 1, Rating: 4,
		})
		require.NoError(t, err)
		return service, repo, roles, created.ID
	}

	t.Run("owner_deletes", func(t *testing.T) {
		service, repo, _, reviewID := seed(t)

		require.NoError(t, service.DeleteReview(context.Background(), 1, reviewID))
		assert.Empty(t, repo.reviews)
	})

	t.Run("admin_deletes_foreign_review", func(t *testing.T) {
		service, repo, _, reviewID := seed(t)

		require.NoError(t, service.DeleteReview(context.Background(), 2, reviewID))
		assert.Empty(t, repo.reviews)
	})

	t.Run("stranger_forbidden", func(t *testing.T) {
		service, repo, roles, reviewID := seed(t)
		roles.roles[3] = sec.RoleUser

		err := service.DeleteReview(context.Background(), 3, reviewID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
		assert.Len(t, repo.reviews, 1)
	})

	t.Run("demoted_admin_forbidden", func(t *testing.T) {
		service, _, roles, reviewID := seed(t)

		// The actor's token may still say admin; storage says otherwise.
		roles.roles[2] = sec.RoleUser

		err := service.DeleteReview(context.Background(), 2, reviewID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}
