// Copyright (c) 2026 FutureKey. All rights reserved.

package school

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/huyhoang189/futurekey-be-sub002/internal/platform/request"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/respond"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

// Handler implements the HTTP layer for schools and classes.
type Handler struct {
	service *Service
}

// NewHandler constructs a new school [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SchoolRoutes returns the router mounted at /schools.
func (handler *Handler) SchoolRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listSchools)
	router.Post("/", handler.createSchool)
	router.Get("/{id}", handler.getSchool)
	router.Put("/{id}", handler.updateSchool)
	router.Delete("/{id}", handler.deleteSchool)
	router.Get("/{id}/classes", handler.listSchoolClasses)

	return router
}

// ClassRoutes returns the router mounted at /classes.
func (handler *Handler) ClassRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listClasses)
	router.Post("/", handler.createClass)
	router.Get("/{id}", handler.getClass)
	router.Put("/{id}", handler.updateClass)
	router.Delete("/{id}", handler.deleteClass)

	return router
}

// # Schools

func (handler *Handler) listSchools(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	sort := pagination.SortFromRequest(request, schoolSortFields, pagination.Sort{Field: "name", Direction: pagination.Asc})
	filter := Filter{Search: requestutil.Query(request, "search")}

	schools, total, err := handler.service.ListSchools(request.Context(), filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Schools retrieved successfully", schools, pagination.NewMeta(page, total))
}

func (handler *Handler) getSchool(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	school, err := handler.service.GetSchool(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "School retrieved successfully", school)
}

func (handler *Handler) createSchool(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	school, err := handler.service.CreateSchool(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "School created successfully", school)
}

func (handler *Handler) updateSchool(writer http.ResponseWriter, request *http.Request) {
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

	school, err := handler.service.UpdateSchool(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "School updated successfully", school)
}

func (handler *Handler) deleteSchool(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSchool(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "School deleted successfully")
}

func (handler *Handler) listSchoolClasses(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter, err := classFilter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	sort := pagination.SortFromRequest(request, classSortFields, pagination.Sort{Field: "grade_level", Direction: pagination.Asc})

	classes, total, err := handler.service.ListSchoolClasses(request.Context(), id, filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Classes retrieved successfully", classes, pagination.NewMeta(page, total))
}

// # Classes

func classFilter(request *http.Request) (ClassFilter, error) {
	gradeLevel, err := requestutil.PositiveInt(request, "grade_level", 0)
	if err != nil {
		return ClassFilter{}, err
	}

	return ClassFilter{
		Search:     requestutil.Query(request, "search"),
		SchoolID:   requestutil.Query(request, "school_id"),
		GradeLevel: gradeLevel,
	}, nil
}

func (handler *Handler) listClasses(writer http.ResponseWriter, request *http.Request) {
	filter, err := classFilter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	sort := pagination.SortFromRequest(request, classSortFields, pagination.Sort{Field: "grade_level", Direction: pagination.Asc})

	classes, total, err := handler.service.ListClasses(request.Context(), filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Classes retrieved successfully", classes, pagination.NewMeta(page, total))
}

func (handler *Handler) getClass(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	class, err := handler.service.GetClass(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Class retrieved successfully", class)
}

func (handler *Handler) createClass(writer http.ResponseWriter, request *http.Request) {
	var input CreateClassInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	class, err := handler.service.CreateClass(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Class created successfully", class)
}

func (handler *Handler) updateClass(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateClassInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	class, err := handler.service.UpdateClass(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Class updated successfully", class)
}

func (handler *Handler) deleteClass(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteClass(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Class deleted successfully")
}
