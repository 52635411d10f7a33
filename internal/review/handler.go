package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"corneradvisor/internal/review/model"
	"corneradvisor/internal/review/service"
	"corneradvisor/middleware"
	"corneradvisor/pkg/logger"
	"corneradvisor/pkg/request"
	"corneradvisor/pkg/response"
	"corneradvisor/store"

	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	Service *service.ReviewService
}

func NewReviewHandler(service *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: service}
}

func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	serviceID := r.URL.Query().Get("serviceId")

	reviews, err := h.Service.ListByService(r.Context(), serviceID)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to list reviews for service %s: %v", serviceID, err)
		response.InternalError(w)
		return
	}
	response.OK(w, response.NewList(reviews))
}

// ListReviewsByEmail serves the authenticated lookup; the email comes from the query.
func (h *ReviewHandler) ListReviewsByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		logger.Sugar.Debugf("Reviews by author %s requested by %v", email, claims["email"])
	}
	h.listByEmail(w, r, email)
}

// ListReviewsByEmailBody serves the older unauthenticated lookup that
// takes {"email": "..."} in the body.
func (h *ReviewHandler) ListReviewsByEmailBody(w http.ResponseWriter, r *http.Request) {
	var req model.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.listByEmail(w, r, req.Email)
}

func (h *ReviewHandler) listByEmail(w http.ResponseWriter, r *http.Request, email string) {
	reviews, err := h.Service.ListByAuthorEmail(r.Context(), email)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to list reviews by author %s: %v", email, err)
		response.InternalError(w)
		return
	}
	response.OK(w, response.NewList(reviews))
}

func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := h.Service.GetReview(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to get review %s: %v", id, err)
		response.InternalError(w)
		return
	}
	response.OK(w, doc)
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	doc, err := request.Document(w, r)
	if err != nil {
		response.Error(w, request.Status(err), "Invalid request body: "+err.Error())
		return
	}

	ack, err := h.Service.CreateReview(r.Context(), doc)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to create review: %v", err)
		response.InternalError(w)
		return
	}
	response.OK(w, ack)
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	partial, err := request.Document(w, r)
	if err != nil {
		response.Error(w, request.Status(err), "Invalid request body: "+err.Error())
		return
	}

	ack, err := h.Service.UpdateReview(r.Context(), id, partial)
	if errors.Is(err, service.ErrEmptyUpdate) {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to update review %s: %v", id, err)
		response.InternalError(w)
		return
	}
	response.OK(w, ack)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ack, err := h.Service.DeleteReview(r.Context(), id)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to delete review %s: %v", id, err)
		response.InternalError(w)
		return
	}
	response.OK(w, ack)
}
