package handler

import (
	"errors"
	"net/http"

	"corneradvisor/internal/catalog/model"
	"corneradvisor/internal/catalog/service"
	"corneradvisor/pkg/logger"
	"corneradvisor/pkg/request"
	"corneradvisor/pkg/response"
	"corneradvisor/store"

	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	Service *service.CatalogService
}

func NewCatalogHandler(service *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: service}
}

func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := model.ParsePage(q.Get("page"), q.Get("size"))

	list, err := h.Service.ListServices(r.Context(), page)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to list services: %v", err)
		response.InternalError(w)
		return
	}
	response.OK(w, list)
}

func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := h.Service.GetService(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to get service %s: %v", id, err)
		response.InternalError(w)
		return
	}
	response.OK(w, doc)
}

func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	doc, err := request.Document(w, r)
	if err != nil {
		response.Error(w, request.Status(err), "Invalid request body: "+err.Error())
		return
	}

	ack, err := h.Service.CreateService(r.Context(), doc)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to create service: %v", err)
		response.InternalError(w)
		return
	}
	response.OK(w, ack)
}
