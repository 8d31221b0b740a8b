package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/hashforge/site-server-go/internal/model"
)

type ContactRepository interface {
	Create(ctx context.Context, params model.CreateContactSubmissionParams) (*model.ContactSubmission, error)
	FindAll(ctx context.Context) ([]model.ContactSubmission, error)
	Count(ctx context.Context) (int, error)
}

type contactRepo struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, params model.CreateContactSubmissionParams) (*model.ContactSubmission, error) {
	var submission model.ContactSubmission
	err := r.db.GetContext(ctx, &submission, `
		INSERT INTO contact_submissions (full_name, email, company_name, phone_number, service, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *
	`, params.FullName, params.Email, params.CompanyName, params.PhoneNumber, params.Service, params.Message)
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *contactRepo) FindAll(ctx context.Context) ([]model.ContactSubmission, error) {
	submissions := []model.ContactSubmission{}
	err := r.db.SelectContext(ctx, &submissions, `
		SELECT * FROM contact_submissions ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *contactRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM contact_submissions`)
	return count, err
}
