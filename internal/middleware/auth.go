package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hashforge/site-server-go/internal/audit"
	"github.com/hashforge/site-server-go/internal/model"
	"github.com/hashforge/site-server-go/internal/repository"
	"github.com/hashforge/site-server-go/internal/util"
)

type contextKey string

const AdminContextKey contextKey = "admin"

func GetAdmin(ctx context.Context) *model.AdminUser {
	if admin, ok := ctx.Value(AdminContextKey).(*model.AdminUser); ok {
		return admin
	}
	return nil
}

// AuthMiddleware gates admin endpoints behind a bearer session token. The
// token is resolved against admin_sessions; expired or unknown tokens get a
// 401 and the handler never runs.
type AuthMiddleware struct {
	sessionRepo repository.AdminSessionRepository
}

func NewAuthMiddleware(sessionRepo repository.AdminSessionRepository) *AuthMiddleware {
	return &AuthMiddleware{sessionRepo: sessionRepo}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"error":   "Missing authentication token",
			})
			return
		}

		admin, err := m.sessionRepo.ResolveAdmin(r.Context(), util.HashToken(token))
		if err != nil {
			log.Error().Err(err).Msg("auth middleware: database error")
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"error":   "Authentication failed",
			})
			return
		}

		if admin == nil {
			audit.LogFromRequest(r, audit.Event{Type: audit.EventAuthFailure})
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"error":   "Unauthorized",
			})
			return
		}

		ctx := context.WithValue(r.Context(), AdminContextKey, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
