// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP delivery layer for profile and account administration.

It implements the RESTful interface for users to interact with their account
data, plus the admin-gated role and deletion endpoints.

# Security

Private endpoints require an active authentication session provided by the
RequireAuth middleware; role assignment additionally passes the admin gate.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/clubbies/internal/platform/middleware"
	requestutil "github.com/taibuivan/clubbies/internal/platform/request"
	"github.com/taibuivan/clubbies/internal/platform/respond"
	"github.com/taibuivan/clubbies/internal/platform/sec"
	"github.com/taibuivan/clubbies/internal/platform/validate"
	"github.com/taibuivan/clubbies/internal/users/auth"
	"github.com/taibuivan/clubbies/pkg/pagination"
)

// Handler implements the HTTP layer for account management.
type Handler struct {
	accountService *Service
	adminGate      func(http.Handler) http.Handler
}

// NewHandler constructs a new account [Handler].
//
// adminGate is the [middleware.RequireRole] admin middleware, mounted on the
// role-assignment endpoint.
func NewHandler(service *Service, adminGate func(http.Handler) http.Handler) *Handler {
	return &Handler{
		accountService: service,
		adminGate:      adminGate,
	}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public discovery
	router.Get("/search", handler.search)

	// Private account management
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.getMe)
		r.Put("/change-password", handler.changePassword)
		r.Delete("/{id}", handler.deleteUser)
	})

	// Administrative controls
	router.Group(func(r chi.Router) {
		r.Use(handler.adminGate)
		r.Put("/{id}/role", handler.updateRole)
	})

	return router
}

// # User Profile Endpoints

/*
GET /api/v1/users/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
GET /api/v1/users/search?username=.

Description: Lists public profiles whose username contains the query.
Only {user_id, username} is exposed.

Response:
  - 200: []PublicProfile: Matching projections with pagination metadata
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get(FieldUsername)
	params := pagination.FromRequest(request)

	profiles, total, err := handler.accountService.Search(request.Context(), query, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, profiles, pagination.NewMeta(params.Page, params.Limit, total))
}

// # Password Rotation

// changePasswordRequest defines the expected JSON payload for password rotation.
type changePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

/*
PUT /api/v1/users/change-password.

Description: Verifies the old password, requires a matching confirmation,
replaces the credential, and revokes all refresh sessions.

Request:
  - Body: changePasswordRequest

Response:
  - 200: Success message
  - 400: ErrInvalidJSON/Validation: Weak password or mismatch
  - 401: ErrUnauthorized: Wrong old password or authentication required
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldOldPassword, input.OldPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, auth.PasswordMinLen).
		Required(FieldConfirmPassword, input.ConfirmPassword)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.accountService.ChangePassword(request.Context(), userID, ChangePasswordInput{
		OldPassword:     input.OldPassword,
		NewPassword:     input.NewPassword,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password changed successfully",
	})
}

// # Administrative Endpoints

// updateRoleRequest defines the expected JSON payload for role assignment.
type updateRoleRequest struct {
	Role string `json:"role"`
}

/*
PUT /api/v1/users/{id}/role.

Description: Assigns a new role to a user. Admin only; the gate re-reads the
caller's current role, so a demoted admin is rejected here even with an
unexpired token.

Request:
  - id: int64
  - Body: updateRoleRequest (Role)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON/Validation: Unknown role
  - 403: ErrForbidden: Caller is not currently an admin
  - 404: ErrNotFound: Target user does not exist
*/
func (handler *Handler) updateRole(writer http.ResponseWriter, request *http.Request) {
	targetID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.UpdateRole(request.Context(), targetID, sec.Role(input.Role))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/users/{id}.

Description: Permanently removes a user account. Users may delete themselves;
deleting anyone else requires the admin role (checked against the current
stored role).

Request:
  - id: int64

Response:
  - 204: No Content: Account deleted
  - 403: ErrForbidden: Not the owner and not an admin
  - 404: ErrNotFound: Target user does not exist
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), actorID, targetID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
