package users

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-cms/inkwell/internal/access"
	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
	"github.com/inkwell-cms/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-cms/inkwell/internal/platform/request"
	"github.com/inkwell-cms/inkwell/internal/platform/respond"
	"github.com/inkwell-cms/inkwell/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Creation stays open for the first-user bootstrap; the service decides.
	router.Post("/", handler.createUser)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/", handler.listUsers)
		protected.Get("/me", handler.getCurrentUser)
		protected.Get("/{id}", handler.getUser)
		protected.Patch("/{id}", handler.updateUser)
		protected.Delete("/{id}", handler.deleteUser)
	})
}

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	requester := access.FromClaims(requestutil.Claims(request))

	result, err := handler.service.List(request.Context(), requester, ListOptions{
		Page:  params.Page,
		Limit: params.Limit,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, ToResponses(result.Users, requester), pagination.MetaFor(result.Pagination))
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("User ID must be numeric"))
		return
	}

	requester := access.FromClaims(requestutil.Claims(request))
	user, err := handler.service.Get(request.Context(), requester, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, ToResponse(user, requester))
}

func (handler *Handler) getCurrentUser(writer http.ResponseWriter, request *http.Request) {
	requesterID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	requester := access.FromClaims(requestutil.Claims(request))
	user, err := handler.service.Get(request.Context(), requester, requesterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, ToResponse(user, requester))
}

func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	requester := access.FromClaims(requestutil.Claims(request))
	created, err := handler.service.Create(request.Context(), requester, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, ToResponse(created, requester))
}

func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("User ID must be numeric"))
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	requester := access.FromClaims(requestutil.Claims(request))
	updated, err := handler.service.Update(request.Context(), requester, userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, ToResponse(updated, requester))
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("User ID must be numeric"))
		return
	}

	requester := access.FromClaims(requestutil.Claims(request))
	if err := handler.service.Delete(request.Context(), requester, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// AuthHandler exposes the authentication endpoints.
type AuthHandler struct {
	service *Service
}

func NewAuthHandler(service *Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (handler *AuthHandler) RegisterRoutes(router chi.Router) {
	router.Post("/login", handler.login)
}

// loginResponse is the wire shape of a successful authentication.
type loginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        Response  `json:"user"`
}

func (handler *AuthHandler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The freshly authenticated user is "self" for redaction purposes.
	self := access.Identity{UserID: session.User.ID, Role: session.User.Role}
	respond.OK(writer, loginResponse{
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt,
		User:        ToResponse(session.User, self),
	})
}
