// Copyright (c) 2026 FutureKey. All rights reserved.

package question

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/huyhoang189/futurekey-be-sub002/internal/platform/request"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/respond"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

// Handler implements the HTTP layer for the question bank.
type Handler struct {
	service *Service
}

// NewHandler constructs a new question [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted at /questions.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	sort := pagination.SortFromRequest(request, sortFields, pagination.Sort{Field: "created_at", Direction: pagination.Desc})
	filter := Filter{
		Search:           requestutil.Query(request, "search"),
		CategoryID:       requestutil.Query(request, "category_id"),
		CareerCriteriaID: requestutil.Query(request, "career_criteria_id"),
		QuestionType:     strings.ToUpper(requestutil.Query(request, "question_type")),
		DifficultyLevel:  strings.ToUpper(requestutil.Query(request, "difficulty_level")),
		Tag:              requestutil.Query(request, "tag"),
		IsActive:         requestutil.OptionalBool(request, "is_active"),
	}

	questions, total, err := handler.service.ListQuestions(request.Context(), filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Questions retrieved successfully", questions, pagination.NewMeta(page, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	question, err := handler.service.GetQuestion(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Question retrieved successfully", question)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	question, err := handler.service.CreateQuestion(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Question created successfully", question)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
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

	question, err := handler.service.UpdateQuestion(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Question updated successfully", question)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteQuestion(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Question deleted successfully")
}
