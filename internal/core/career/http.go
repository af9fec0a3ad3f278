package career

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/apperr"
	requestutil "github.com/huyhoang189/futurekey-be-sub002/internal/platform/request"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/respond"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pointer"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/query"
)

// Handler implements the HTTP layer for the career catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new career [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CategoryRoutes returns the admin router mounted at /career-categories.
func (handler *Handler) CategoryRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)
	router.Post("/", handler.createCategory)
	router.Get("/{id}", handler.getCategory)
	router.Put("/{id}", handler.updateCategory)
	router.Delete("/{id}", handler.deleteCategory)

	return router
}

// CareerRoutes returns the admin router mounted at /careers.
func (handler *Handler) CareerRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCareers)
	router.Post("/", handler.createCareer)
	router.Get("/{id}", handler.getCareer)
	router.Put("/{id}", handler.updateCareer)
	router.Delete("/{id}", handler.deleteCareer)

	return router
}

// PublicRoutes returns the read-only router mounted under /api/v2/public.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/career-categories", handler.listPublicCategories)
	router.Get("/careers", handler.listPublicCareers)
	router.Get("/careers/{id}", handler.getPublicCareer)

	return router
}

// # Categories

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	sort := pagination.SortFromRequest(request, categorySortFields, pagination.Sort{Field: "name", Direction: pagination.Asc})
	filter := CategoryFilter{Search: requestutil.Query(request, "search")}

	categories, total, err := handler.service.ListCategories(request.Context(), filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Career categories retrieved successfully", categories, pagination.NewMeta(page, total))
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.GetCategory(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Career category retrieved successfully", category)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input CreateCategoryInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Career category created successfully", category)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateCategoryInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.UpdateCategory(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Career category updated successfully", category)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCategory(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Career category deleted successfully")
}

// # Careers

func (handler *Handler) listCareers(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	sort := pagination.SortFromRequest(request, careerSortFields, pagination.Sort{Field: "created_at", Direction: pagination.Desc})
	filter := Filter{
		Search:      requestutil.Query(request, "search"),
		IsActive:    requestutil.OptionalBool(request, "is_active"),
		CategoryIDs: query.StringSlice(requestutil.Query(request, "category_id")),
	}

	careers, total, err := handler.service.ListCareers(request.Context(), filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Careers retrieved successfully", careers, pagination.NewMeta(page, total))
}

func (handler *Handler) getCareer(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	career, err := handler.service.GetCareer(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Career retrieved successfully", career)
}

func (handler *Handler) createCareer(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	career, err := handler.service.CreateCareer(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Career created successfully", career)
}

func (handler *Handler) updateCareer(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	career, err := handler.service.UpdateCareer(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Career updated successfully", career)
}

func (handler *Handler) deleteCareer(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCareer(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Career deleted successfully")
}

// # Public (v2)

func (handler *Handler) listPublicCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.AllCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Career categories retrieved successfully", categories)
}

func (handler *Handler) listPublicCareers(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	sort := pagination.SortFromRequest(request, careerSortFields, pagination.Sort{Field: "name", Direction: pagination.Asc})
	filter := Filter{
		Search:      requestutil.Query(request, "search"),
		IsActive:    pointer.To(true),
		CategoryIDs: query.StringSlice(requestutil.Query(request, "category_ids")),
	}

	careers, total, err := handler.service.ListCareers(request.Context(), filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Careers retrieved successfully", careers, pagination.NewMeta(page, total))
}

func (handler *Handler) getPublicCareer(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	career, err := handler.service.GetCareer(request.Context(), id)
	if err == nil && !career.IsActive {
		err = apperr.NotFound("Career")
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Career retrieved successfully", career)
}
