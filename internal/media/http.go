package media

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-cms/inkwell/internal/access"
	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
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
	router.Get("/", handler.listMedia)
	router.Get("/{id}", handler.getMedia)
}

func (handler *Handler) listMedia(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	result, err := handler.service.List(request.Context(), access.FromClaims(requestutil.Claims(request)), ListOptions{
		Page:  params.Page,
		Limit: params.Limit,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, result.Media, pagination.MetaFor(result.Pagination))
}

func (handler *Handler) getMedia(writer http.ResponseWriter, request *http.Request) {
	mediaID, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Media ID must be numeric"))
		return
	}

	asset, err := handler.service.Get(request.Context(), access.FromClaims(requestutil.Claims(request)), mediaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, asset)
}
