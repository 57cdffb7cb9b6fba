package http

import (
	"context"
	"net/http"
	"strings"

	"library-backend/internal/domain"
	"library-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "user_claims"

// AuthMiddleware validates the bearer token and stores the caller's claims
// in the request context.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*security.UserClaims)
	return claims, ok
}

// callerID returns the authenticated user's id, or 0 when unauthenticated.
func callerID(r *http.Request) int64 {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		return 0
	}
	return claims.UserID
}

// isLibrarian reports whether the caller holds the librarian role.
func isLibrarian(r *http.Request) bool {
	claims, ok := claimsFromContext(r.Context())
	return ok && claims.Role == string(domain.RoleLibrarian)
}
