package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/clubbies/internal/platform/middleware"
	requestutil "github.com/taibuivan/clubbies/internal/platform/request"
	"github.com/taibuivan/clubbies/internal/platform/respond"
	"github.com/taibuivan/clubbies/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the review endpoints. Listing is public; creation and
// deletion require authentication (ownership is checked in the service).
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/venue/{venueID}", handler.listByVenue)

	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/", handler.createReview)
		authRoute.Delete("/{id}", handler.deleteReview)
	})
}

func (handler *Handler) listByVenue(writer http.ResponseWriter, request *http.Request) {
	venueID, err := requestutil.IntID(request, "venueID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListByVenue(request.Context(), venueID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

type createReviewRequest struct {
	VenueID int64   `json:"venue_id"`
	Rating  float64 `json:"rating"`
	Text    string  `json:"text"`
}

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), CreateInput{
		VenueID: input.VenueID,
		UserID:  userID,
		Rating:  input.Rating,
		Text:    input.Text,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, review)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviewID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), userID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
