// Copyright (c) 2026 FutureKey. All rights reserved.

package overview

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/huyhoang189/futurekey-be-sub002/internal/platform/request"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/respond"
)

// Handler implements the HTTP layer for dashboard statistics.
type Handler struct {
	service *Service
}

// NewHandler constructs a new overview [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted at /system-admin/overview.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/stats", handler.stats)
	router.Get("/orders/status", handler.ordersStatus)
	router.Get("/careers/top-purchased", handler.topPurchased)
	router.Get("/licenses/status", handler.licensesStatus)
	router.Get("/licenses/expiring", handler.expiringLicenses)

	return router
}

func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.SystemStats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "System stats retrieved successfully", stats)
}

func (handler *Handler) ordersStatus(writer http.ResponseWriter, request *http.Request) {
	counts, err := handler.service.OrdersStatus(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Order status stats retrieved successfully", counts)
}

func (handler *Handler) topPurchased(writer http.ResponseWriter, request *http.Request) {
	limit, err := requestutil.PositiveInt(request, "limit", defaultTopLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	careers, err := handler.service.TopPurchased(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Top purchased careers retrieved successfully", careers)
}

func (handler *Handler) licensesStatus(writer http.ResponseWriter, request *http.Request) {
	counts, err := handler.service.LicensesStatus(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "License status stats retrieved successfully", counts)
}

func (handler *Handler) expiringLicenses(writer http.ResponseWriter, request *http.Request) {
	days, err := requestutil.PositiveInt(request, "days", defaultExpiringDays)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	licenses, err := handler.service.ExpiringLicenses(request.Context(), days)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Expiring licenses retrieved successfully", licenses)
}
