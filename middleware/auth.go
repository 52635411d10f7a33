package middleware

import (
	"context"
	"net/http"
	"strings"

	"corneradvisor/pkg/logger"
	"corneradvisor/pkg/response"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const ClaimsKey contextKey = "claims"

type TokenVerifier interface {
	Verify(tokenString string) (jwt.MapClaims, error)
}

// AuthMiddleware rejects requests without an Authorization header with 401
// and requests whose bearer token does not verify with 403. Verified
// claims are stored in the request context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Error(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			// "Bearer <token>": the token is the second field.
			var tokenString string
			if fields := strings.Fields(authHeader); len(fields) > 1 {
				tokenString = fields[1]
			}

			claims, err := verifier.Verify(tokenString)
			if err != nil {
				logger.Sugar.Infof("Invalid token: %v", err)
				response.Error(w, http.StatusForbidden, "forbidden access")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims stored by AuthMiddleware.
func ClaimsFromContext(ctx context.Context) (jwt.MapClaims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(jwt.MapClaims)
	return claims, ok
}
