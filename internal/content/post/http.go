package post

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
	"github.com/inkwell-cms/inkwell/pkg/query"
	"github.com/inkwell-cms/inkwell/pkg/slice"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listPosts)
	router.Get("/tags", handler.listTags)
	router.Get("/slugs", handler.listSlugs)
	router.Get("/{slug}", handler.getPostBySlug)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", handler.createPost)
		protected.Delete("/{id}", handler.deletePost)
	})
}

// PostResponse is the wire shape of a post.
type PostResponse struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         *string    `json:"excerpt,omitempty"`
	Content         RichText   `json:"content"`
	FeaturedImageID *int       `json:"featuredImageId,omitempty"`
	PublishedDate   *time.Time `json:"publishedDate,omitempty"`
	Tags            []Tag      `json:"tags"`
	AuthorID        int        `json:"authorId"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func toResponse(p *Post) PostResponse {
	return PostResponse{
		ID:              p.ID(),
		Title:           p.Title(),
		Slug:            p.Slug(),
		Excerpt:         p.Excerpt(),
		Content:         p.Content(),
		FeaturedImageID: p.FeaturedImageID(),
		PublishedDate:   p.PublishedDate(),
		Tags:            p.Tags(),
		AuthorID:        p.AuthorID(),
		Status:          p.Status().String(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}

func toResponses(posts []*Post) []PostResponse {
	return slice.Map(posts, toResponse)
}

func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	opts := ListOptions{Page: params.Page, Limit: params.Limit}

	if raw := request.URL.Query().Get("status"); raw != "" {
		status, err := ParseStatus(raw)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		opts.Status = &status
	}
	opts.Tags = query.StringSlice(request.URL.Query().Get("tag"))

	result, err := handler.service.List(request.Context(), access.FromClaims(requestutil.Claims(request)), opts)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, toResponses(result.Posts), pagination.MetaFor(result.Pagination))
}

func (handler *Handler) getPostBySlug(writer http.ResponseWriter, request *http.Request) {
	slugValue := requestutil.Param(request, "slug")

	p, err := handler.service.GetBySlug(request.Context(), access.FromClaims(requestutil.Claims(request)), slugValue)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, toResponse(p))
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.Tags(request.Context(), access.FromClaims(requestutil.Claims(request)))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) listSlugs(writer http.ResponseWriter, request *http.Request) {
	slugs, err := handler.service.PublishedSlugs(request.Context(), access.FromClaims(requestutil.Claims(request)))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, slugs)
}

func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), access.FromClaims(claims), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, toResponse(created))
}

func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	postID, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Post ID must be numeric"))
		return
	}

	if err := handler.service.Delete(request.Context(), access.FromClaims(claims), postID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
