package response

import (
	"encoding/json"
	"net/http"

	"corneradvisor/pkg/logger"
)

// NotFoundMessage is sent, with a 200 status, for lookups that match
// nothing or use a malformed identifier.
const NotFoundMessage = "No data found.."

type Message struct {
	Message string `json:"message"`
}

// List wraps result sets as {"data": [...]}.
type List[T any] struct {
	Data []T `json:"data"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}

func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Message{Message: message})
}

func NotFound(w http.ResponseWriter) {
	JSON(w, http.StatusOK, Message{Message: NotFoundMessage})
}

func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "internal server error")
}

// NewList never produces a null data field.
func NewList[T any](items []T) List[T] {
	if items == nil {
		items = []T{}
	}
	return List[T]{Data: items}
}
