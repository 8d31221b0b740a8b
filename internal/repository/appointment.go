package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/hashforge/site-server-go/internal/model"
)

type AppointmentRepository interface {
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	FindAll(ctx context.Context) ([]model.Appointment, error)
	Create(ctx context.Context, params model.CreateAppointmentParams) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id string, params model.UpdateAppointmentStatusParams) (*model.Appointment, error)
	CountByStatus(ctx context.Context) (map[model.AppointmentStatus]int, error)
}

type appointmentRepo struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) AppointmentRepository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.db.GetContext(ctx, &appt, `
		SELECT * FROM appointments WHERE id = $1
	`, id)
	return HandleNotFound(&appt, err)
}

func (r *appointmentRepo) FindAll(ctx context.Context) ([]model.Appointment, error) {
	appts := []model.Appointment{}
	err := r.db.SelectContext(ctx, &appts, `
		SELECT * FROM appointments ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *appointmentRepo) Create(ctx context.Context, params model.CreateAppointmentParams) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.db.GetContext(ctx, &appt, `
		INSERT INTO appointments (
			full_name, email, phone_number, company_name, service_type,
			preferred_date, preferred_time, timezone, message
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING *
	`, params.FullName, params.Email, params.PhoneNumber, params.CompanyName,
		params.ServiceType, params.PreferredDate, params.PreferredTime,
		params.Timezone, params.Message)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepo) UpdateStatus(ctx context.Context, id string, params model.UpdateAppointmentStatusParams) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.db.GetContext(ctx, &appt, `
		UPDATE appointments SET
			status = $2,
			rejection_reason = COALESCE($3, rejection_reason),
			approved_at = COALESCE($4, approved_at),
			completed_at = COALESCE($5, completed_at)
		WHERE id = $1
		RETURNING *
	`, id, params.Status, params.RejectionReason, params.ApprovedAt, params.CompletedAt)
	return HandleNotFound(&appt, err)
}

func (r *appointmentRepo) CountByStatus(ctx context.Context) (map[model.AppointmentStatus]int, error) {
	var counts struct {
		Pending   int `db:"pending"`
		Approved  int `db:"approved"`
		Rejected  int `db:"rejected"`
		Completed int `db:"completed"`
	}
	err := r.db.GetContext(ctx, &counts, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending') as pending,
			COUNT(*) FILTER (WHERE status = 'approved') as approved,
			COUNT(*) FILTER (WHERE status = 'rejected') as rejected,
			COUNT(*) FILTER (WHERE status = 'completed') as completed
		FROM appointments
	`)
	if err != nil {
		return nil, err
	}
	return map[model.AppointmentStatus]int{
		model.AppointmentStatusPending:   counts.Pending,
		model.AppointmentStatusApproved:  counts.Approved,
		model.AppointmentStatusRejected:  counts.Rejected,
		model.AppointmentStatusCompleted: counts.Completed,
	}, nil
}
