package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashforge/site-server-go/internal/model"
	"github.com/hashforge/site-server-go/internal/repository"
	"github.com/hashforge/site-server-go/internal/util"
)

type stubSessionRepo struct {
	resolveAdminFunc func(ctx context.Context, tokenHash string) (*model.AdminUser, error)
}

func (s *stubSessionRepo) ResolveAdmin(ctx context.Context, tokenHash string) (*model.AdminUser, error) {
	return s.resolveAdminFunc(ctx, tokenHash)
}

func (s *stubSessionRepo) Create(ctx context.Context, params model.CreateAdminSessionParams) (*model.AdminSession, error) {
	return nil, nil
}

func (s *stubSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return nil
}

func (s *stubSessionRepo) DeleteByAdminID(ctx context.Context, adminID string) error {
	return nil
}

func (s *stubSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (s *stubSessionRepo) WithTx(tx *sqlx.Tx) repository.AdminSessionRepository {
	return s
}

func TestAuthMiddleware(t *testing.T) {
	admin := &model.AdminUser{ID: "admin-1", Username: "admin"}
	validHash := util.HashToken("valid-token")

	repo := &stubSessionRepo{
		resolveAdminFunc: func(ctx context.Context, tokenHash string) (*model.AdminUser, error) {
			if tokenHash == validHash {
				return admin, nil
			}
			return nil, nil
		},
	}

	var seen *model.AdminUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetAdmin(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := NewAuthMiddleware(repo).Handler(next)

	t.Run("injects the admin for a valid bearer token", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "admin-1", seen.ID)
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
		assert.Contains(t, rec.Body.String(), "Missing authentication token")
	})

	t.Run("rejects a non-bearer authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects an unknown token", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
		req.Header.Set("Authorization", "Bearer expired-or-bogus")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
		assert.Contains(t, rec.Body.String(), "Unauthorized")
	})

	t.Run("returns 500 on a database error", func(t *testing.T) {
		failing := &stubSessionRepo{
			resolveAdminFunc: func(ctx context.Context, tokenHash string) (*model.AdminUser, error) {
				return nil, errors.New("connection refused")
			},
		}
		h := NewAuthMiddleware(failing).Handler(next)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetAdminWithoutValue(t *testing.T) {
	assert.Nil(t, GetAdmin(context.Background()))
}
