// Copyright (c) 2026 FutureKey. All rights reserved.

package location

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/huyhoang189/futurekey-be-sub002/internal/platform/request"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/respond"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for provinces and communes.
type Handler struct {
	service *Service
}

// NewHandler constructs a new location [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ProvinceRoutes returns the router mounted at /provinces.
func (handler *Handler) ProvinceRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listProvinces)
	router.Post("/", handler.createProvince)
	router.Get("/{id}", handler.getProvince)
	router.Put("/{id}", handler.updateProvince)
	router.Delete("/{id}", handler.deleteProvince)
	router.Get("/{id}/communes", handler.listProvinceCommunes)

	return router
}

// CommuneRoutes returns the router mounted at /communes.
func (handler *Handler) CommuneRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCommunes)
	router.Post("/", handler.createCommune)
	router.Get("/{id}", handler.getCommune)
	router.Put("/{id}", handler.updateCommune)
	router.Delete("/{id}", handler.deleteCommune)

	return router
}

// # Provinces

func (handler *Handler) listProvinces(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	sort := pagination.SortFromRequest(request, provinceSortFields, pagination.Sort{Field: "name", Direction: pagination.Asc})
	filter := ProvinceFilter{Search: requestutil.Query(request, "search")}

	provinces, total, err := handler.service.ListProvinces(request.Context(), filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Provinces retrieved successfully", provinces, pagination.NewMeta(page, total))
}

func (handler *Handler) getProvince(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	province, err := handler.service.GetProvince(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Province retrieved successfully", province)
}

func (handler *Handler) createProvince(writer http.ResponseWriter, request *http.Request) {
	var input CreateProvinceInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	province, err := handler.service.CreateProvince(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Province created successfully", province)
}

func (handler *Handler) updateProvince(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateProvinceInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	province, err := handler.service.UpdateProvince(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Province updated successfully", province)
}

func (handler *Handler) deleteProvince(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteProvince(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Province deleted successfully")
}

func (handler *Handler) listProvinceCommunes(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	sort := pagination.SortFromRequest(request, communeSortFields, pagination.Sort{Field: "name", Direction: pagination.Asc})
	filter := CommuneFilter{Search: requestutil.Query(request, "search")}

	communes, total, err := handler.service.ListProvinceCommunes(request.Context(), id, filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Communes retrieved successfully", communes, pagination.NewMeta(page, total))
}

// # Communes

func (handler *Handler) listCommunes(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	sort := pagination.SortFromRequest(request, communeSortFields, pagination.Sort{Field: "name", Direction: pagination.Asc})
	filter := CommuneFilter{
		Search:     requestutil.Query(request, "search"),
		Name:       requestutil.Query(request, "name"),
		ProvinceID: requestutil.Query(request, "province_id"),
	}

	communes, total, err := handler.service.ListCommunes(request.Context(), filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Communes retrieved successfully", communes, pagination.NewMeta(page, total))
}

func (handler *Handler) getCommune(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commune, err := handler.service.GetCommune(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Commune retrieved successfully", commune)
}

func (handler *Handler) createCommune(writer http.ResponseWriter, request *http.Request) {
	var input CreateCommuneInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	commune, err := handler.service.CreateCommune(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Commune created successfully", commune)
}

func (handler *Handler) updateCommune(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateCommuneInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	commune, err := handler.service.UpdateCommune(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Commune updated successfully", commune)
}

func (handler *Handler) deleteCommune(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCommune(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Commune deleted successfully")
}
