package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"corneradvisor/internal/auth/token"
	"corneradvisor/pkg/logger"
	"corneradvisor/pkg/response"
)

type TokenResponse struct {
	Token string `json:"token"`
}

type AuthHandler struct {
	Tokens *token.Manager
}

func NewAuthHandler(tokens *token.Manager) *AuthHandler {
	return &AuthHandler{Tokens: tokens}
}

// IssueToken signs whatever JSON object it is given. There is no
// credential check: any caller can obtain a token for any claims.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	signed, err := h.Tokens.Issue(payload)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to issue token: %v", err)
		response.InternalError(w)
		return
	}
	response.OK(w, TokenResponse{Token: signed})
}
