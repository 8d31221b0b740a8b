package service

import (
	"context"
	"time"

	apperrors "github.com/hashforge/site-server-go/internal/errors"
	"github.com/hashforge/site-server-go/internal/model"
	"github.com/hashforge/site-server-go/internal/repository"
)

type SubmissionService struct {
	contactRepo     repository.ContactRepository
	appointmentRepo repository.AppointmentRepository
}

func NewSubmissionService(
	contactRepo repository.ContactRepository,
	appointmentRepo repository.AppointmentRepository,
) *SubmissionService {
	return &SubmissionService{
		contactRepo:     contactRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (s *SubmissionService) CreateContact(ctx context.Context, params model.CreateContactSubmissionParams) (*model.ContactSubmission, error) {
	return s.contactRepo.Create(ctx, params)
}

func (s *SubmissionService) GetContacts(ctx context.Context) ([]model.ContactSubmission, error) {
	return s.contactRepo.FindAll(ctx)
}

func (s *SubmissionService) CreateAppointment(ctx context.Context, params model.CreateAppointmentParams) (*model.Appointment, error) {
	return s.appointmentRepo.Create(ctx, params)
}

func (s *SubmissionService) GetAppointments(ctx context.Context) ([]model.Appointment, error) {
	return s.appointmentRepo.FindAll(ctx)
}

// UpdateAppointmentStatus applies an admin-driven status change. Only
// pending->approved, pending->rejected and approved->completed are legal;
// approval and completion are stamped, and a rejection reason is stored only
// when the new status is rejected.
func (s *SubmissionService) UpdateAppointmentStatus(ctx context.Context, id string, status model.AppointmentStatus, rejectionReason *string) (*model.Appointment, error) {
	appt, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, apperrors.NotFound("Appointment")
	}

	if !model.CanTransition(appt.Status, status) {
		return nil, apperrors.InvalidTransition(string(appt.Status), string(status))
	}

	now := time.Now()
	params := model.UpdateAppointmentStatusParams{Status: status}
	switch status {
	case model.AppointmentStatusApproved:
		params.ApprovedAt = &now
	case model.AppointmentStatusCompleted:
		params.CompletedAt = &now
	case model.AppointmentStatusRejected:
		params.RejectionReason = rejectionReason
	}

	updated, err := s.appointmentRepo.UpdateStatus(ctx, id, params)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NotFound("Appointment")
	}
	return updated, nil
}
