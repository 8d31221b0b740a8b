package handler

import (
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/hashforge/site-server-go/internal/database"
	"github.com/hashforge/site-server-go/internal/middleware"
	"github.com/hashforge/site-server-go/internal/model"
	"github.com/hashforge/site-server-go/internal/repository"
)

// passthroughLimit stands in for the redis-backed form rate limiter.
func passthroughLimit(next http.Handler) http.Handler {
	return next
}

// injectAdmin stands in for the auth middleware and places a fixed admin
// into the request context.
func injectAdmin(admin *model.AdminUser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.AdminContextKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn database.TxFunc) error {
	return fn(nil)
}

type mockAdminUserRepo struct {
	findByIDFunc       func(ctx context.Context, id string) (*model.AdminUser, error)
	findByUsernameFunc func(ctx context.Context, username string) (*model.AdminUser, error)
	findAllFunc        func(ctx context.Context) ([]model.AdminUser, error)
	countFunc          func(ctx context.Context) (int, error)
	createFunc         func(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error)
	updateFunc         func(ctx context.Context, id string, params model.UpdateAdminUserParams) (*model.AdminUser, error)
	deleteFunc         func(ctx context.Context, id string) error
}

func (m *mockAdminUserRepo) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAdminUserRepo) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *mockAdminUserRepo) FindAll(ctx context.Context) ([]model.AdminUser, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockAdminUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockAdminUserRepo) Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockAdminUserRepo) Update(ctx context.Context, id string, params model.UpdateAdminUserParams) (*model.AdminUser, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *mockAdminUserRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockAdminUserRepo) WithTx(tx *sqlx.Tx) repository.AdminUserRepository {
	return m
}

type mockAdminSessionRepo struct {
	resolveAdminFunc      func(ctx context.Context, tokenHash string) (*model.AdminUser, error)
	createFunc            func(ctx context.Context, params model.CreateAdminSessionParams) (*model.AdminSession, error)
	deleteByTokenHashFunc func(ctx context.Context, tokenHash string) error
	deleteByAdminIDFunc   func(ctx context.Context, adminID string) error
}

func (m *mockAdminSessionRepo) ResolveAdmin(ctx context.Context, tokenHash string) (*model.AdminUser, error) {
	if m.resolveAdminFunc != nil {
		return m.resolveAdminFunc(ctx, tokenHash)
	}
	return nil, nil
}

func (m *mockAdminSessionRepo) Create(ctx context.Context, params model.CreateAdminSessionParams) (*model.AdminSession, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, params)
	}
	return &model.AdminSession{}, nil
}

func (m *mockAdminSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	if m.deleteByTokenHashFunc != nil {
		return m.deleteByTokenHashFunc(ctx, tokenHash)
	}
	return nil
}

func (m *mockAdminSessionRepo) DeleteByAdminID(ctx context.Context, adminID string) error {
	if m.deleteByAdminIDFunc != nil {
		return m.deleteByAdminIDFunc(ctx, adminID)
	}
	return nil
}

func (m *mockAdminSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockAdminSessionRepo) WithTx(tx *sqlx.Tx) repository.AdminSessionRepository {
	return m
}

type mockContactRepo struct {
	createFunc  func(ctx context.Context, params model.CreateContactSubmissionParams) (*model.ContactSubmission, error)
	findAllFunc func(ctx context.Context) ([]model.ContactSubmission, error)
	countFunc   func(ctx context.Context) (int, error)
}

func (m *mockContactRepo) Create(ctx context.Context, params model.CreateContactSubmissionParams) (*model.ContactSubmission, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, params)
	}
	return &model.ContactSubmission{}, nil
}

func (m *mockContactRepo) FindAll(ctx context.Context) ([]model.ContactSubmission, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockContactRepo) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockAppointmentRepo struct {
	findByIDFunc      func(ctx context.Context, id string) (*model.Appointment, error)
	findAllFunc       func(ctx context.Context) ([]model.Appointment, error)
	createFunc        func(ctx context.Context, params model.CreateAppointmentParams) (*model.Appointment, error)
	updateStatusFunc  func(ctx context.Context, id string, params model.UpdateAppointmentStatusParams) (*model.Appointment, error)
	countByStatusFunc func(ctx context.Context) (map[model.AppointmentStatus]int, error)
}

func (m *mockAppointmentRepo) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) FindAll(ctx context.Context) ([]model.Appointment, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) Create(ctx context.Context, params model.CreateAppointmentParams) (*model.Appointment, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, params)
	}
	return &model.Appointment{}, nil
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id string, params model.UpdateAppointmentStatusParams) (*model.Appointment, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) CountByStatus(ctx context.Context) (map[model.AppointmentStatus]int, error) {
	if m.countByStatusFunc != nil {
		return m.countByStatusFunc(ctx)
	}
	return map[model.AppointmentStatus]int{}, nil
}
