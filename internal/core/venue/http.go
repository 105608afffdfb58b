package venue

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/clubbies/internal/platform/request"
	"github.com/taibuivan/clubbies/internal/platform/respond"
	"github.com/taibuivan/clubbies/pkg/pagination"
)

type Handler struct {
	service   *Service
	adminGate func(http.Handler) http.Handler
}

// NewHandler constructs the venue handler. adminGate is the RequireRole(admin)
// middleware protecting every mutation.
func NewHandler(service *Service, adminGate func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, adminGate: adminGate}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listVenues)
	router.Get("/{id}", handler.getVenue)
	router.Get("/slug/{slug}", handler.getVenueBySlug)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(handler.adminGate)

		adminRoute.Post("/", handler.createVenue)
		adminRoute.Put("/{id}", handler.updateVenue)
		adminRoute.Delete("/{id}", handler.deleteVenue)
	})
}

func (handler *Handler) listVenues(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("q"),
		Type:  request.URL.Query().Get("type"),
	}

	venues, total, err := handler.service.ListVenues(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, venues, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getVenue(writer http.ResponseWriter, request *http.Request) {
	venueID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	venue, err := handler.service.GetVenue(request.Context(), venueID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, venue)
}

func (handler *Handler) getVenueBySlug(writer http.ResponseWriter, request *http.Request) {
	venueSlug := requestutil.Param(request, "slug")

	venue, err := handler.service.GetVenueBySlug(request.Context(), venueSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, venue)
}

func (handler *Handler) createVenue(writer http.ResponseWriter, request *http.Request) {
	var input Venue

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateVenue(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateVenue(writer http.ResponseWriter, request *http.Request) {
	venueID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Venue
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateVenue(request.Context(), venueID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteVenue(writer http.ResponseWriter, request *http.Request) {
	venueID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteVenue(request.Context(), venueID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
