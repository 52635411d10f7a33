package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"corneradvisor/internal/auth/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protected(t *testing.T, tokens *token.Manager) http.Handler {
	t.Helper()
	return AuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok, "claims must be in context")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(claims)
	}))
}

func call(h http.Handler, authHeader string, set bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/get-reviews-by-email?email=a@x.com", nil)
	if set {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareDistinguishesMissingFromInvalid(t *testing.T) {
	tokens := token.NewManager("top-secret", time.Hour)
	h := protected(t, tokens)

	rec := call(h, "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"unauthorized access"}`, rec.Body.String())

	rec = call(h, "Bearer not-a-real-token", true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"forbidden access"}`, rec.Body.String())

	// A header with no second field still counts as a supplied credential.
	rec = call(h, "Bearer", true)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	forged, err := token.NewManager("wrong-secret", time.Hour).Issue(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)
	rec = call(h, "Bearer "+forged, true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthMiddlewarePassesClaimsThrough(t *testing.T) {
	tokens := token.NewManager("top-secret", time.Hour)
	signed, err := tokens.Issue(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)

	rec := call(protected(t, tokens), "Bearer   "+signed, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var claims map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &claims))
	assert.Equal(t, "a@x.com", claims["email"])
}

func TestAuthMiddlewareRejectsExpiredTokens(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	old := token.NewManager("top-secret", time.Hour, token.WithClock(func() time.Time { return issuedAt }))
	signed, err := old.Issue(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)

	rec := call(protected(t, token.NewManager("top-secret", time.Hour)), "Bearer "+signed, true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
