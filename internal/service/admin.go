package service

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/hashforge/site-server-go/internal/database"
	apperrors "github.com/hashforge/site-server-go/internal/errors"
	"github.com/hashforge/site-server-go/internal/model"
	"github.com/hashforge/site-server-go/internal/repository"
	"github.com/hashforge/site-server-go/internal/util"
)

// TxRunner runs a function inside a database transaction. *database.DB
// satisfies it; tests substitute a pass-through.
type TxRunner interface {
	WithTx(ctx context.Context, fn database.TxFunc) error
}

type AdminService struct {
	db              TxRunner
	userRepo        repository.AdminUserRepository
	sessionRepo     repository.AdminSessionRepository
	contactRepo     repository.ContactRepository
	appointmentRepo repository.AppointmentRepository
}

func NewAdminService(
	db TxRunner,
	userRepo repository.AdminUserRepository,
	sessionRepo repository.AdminSessionRepository,
	contactRepo repository.ContactRepository,
	appointmentRepo repository.AppointmentRepository,
) *AdminService {
	return &AdminService{
		db:              db,
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		contactRepo:     contactRepo,
		appointmentRepo: appointmentRepo,
	}
}

// EnsureDefaultAdmin seeds the first admin account when the table is empty.
// It runs once at startup and is idempotent.
func (s *AdminService) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	user, err := s.userRepo.Create(ctx, model.CreateAdminUserParams{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}

	log.Info().Str("username", user.Username).Msg("seeded default admin account")
	return nil
}

func (s *AdminService) GetAdmins(ctx context.Context) ([]model.AdminUser, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *AdminService) CreateAdmin(ctx context.Context, username, password string) (*model.AdminUser, error) {
	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, model.CreateAdminUserParams{
		Username:     username,
		PasswordHash: hash,
	})
	if errors.Is(err, repository.ErrUsernameTaken) {
		return nil, apperrors.AlreadyExists("Username")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AdminService) UpdateAdmin(ctx context.Context, id string, username, password *string) (*model.AdminUser, error) {
	params := model.UpdateAdminUserParams{Username: username}

	if password != nil {
		hash, err := util.HashPassword(*password)
		if err != nil {
			return nil, err
		}
		params.PasswordHash = &hash
	}

	user, err := s.userRepo.Update(ctx, id, params)
	if errors.Is(err, repository.ErrUsernameTaken) {
		return nil, apperrors.AlreadyExists("Username")
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("Admin")
	}
	return user, nil
}

// DeleteAdmin removes an admin account together with every session it owns,
// so a deleted admin's tokens stop resolving immediately.
func (s *AdminService) DeleteAdmin(ctx context.Context, id string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NotFound("Admin")
	}

	return s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.sessionRepo.WithTx(tx).DeleteByAdminID(ctx, id); err != nil {
			return err
		}
		return s.userRepo.WithTx(tx).Delete(ctx, id)
	})
}

type Stats struct {
	Contacts     int `json:"contacts"`
	Admins       int `json:"admins"`
	Appointments struct {
		Pending   int `json:"pending"`
		Approved  int `json:"approved"`
		Rejected  int `json:"rejected"`
		Completed int `json:"completed"`
		Total     int `json:"total"`
	} `json:"appointments"`
}

func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	contacts, err := s.contactRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.Contacts = contacts

	admins, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.Admins = admins

	byStatus, err := s.appointmentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.Appointments.Pending = byStatus[model.AppointmentStatusPending]
	stats.Appointments.Approved = byStatus[model.AppointmentStatusApproved]
	stats.Appointments.Rejected = byStatus[model.AppointmentStatusRejected]
	stats.Appointments.Completed = byStatus[model.AppointmentStatusCompleted]
	stats.Appointments.Total = stats.Appointments.Pending + stats.Appointments.Approved +
		stats.Appointments.Rejected + stats.Appointments.Completed

	return stats, nil
}
