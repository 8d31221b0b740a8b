package model

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusApproved  AppointmentStatus = "approved"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// legalTransitions encodes the admin-driven appointment lifecycle:
// rejected and completed are terminal.
var legalTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:  {AppointmentStatusApproved, AppointmentStatusRejected},
	AppointmentStatusApproved: {AppointmentStatusCompleted},
}

func IsValidAppointmentStatus(s string) bool {
	switch AppointmentStatus(s) {
	case AppointmentStatusPending, AppointmentStatusApproved,
		AppointmentStatusRejected, AppointmentStatusCompleted:
		return true
	}
	return false
}

func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID              string            `db:"id" json:"id"`
	FullName        string            `db:"full_name" json:"fullName"`
	Email           string            `db:"email" json:"email"`
	PhoneNumber     *string           `db:"phone_number" json:"phoneNumber,omitempty"`
	CompanyName     *string           `db:"company_name" json:"companyName,omitempty"`
	ServiceType     string            `db:"service_type" json:"serviceType"`
	PreferredDate   string            `db:"preferred_date" json:"preferredDate"`
	PreferredTime   string            `db:"preferred_time" json:"preferredTime"`
	Timezone        string            `db:"timezone" json:"timezone"`
	Message         *string           `db:"message" json:"message,omitempty"`
	Status          AppointmentStatus `db:"status" json:"status"`
	RejectionReason *string           `db:"rejection_reason" json:"rejectionReason,omitempty"`
	ApprovedAt      *time.Time        `db:"approved_at" json:"approvedAt,omitempty"`
	CompletedAt     *time.Time        `db:"completed_at" json:"completedAt,omitempty"`
	CreatedAt       time.Time         `db:"created_at" json:"createdAt"`
}

type CreateAppointmentParams struct {
	FullName      string
	Email         string
	PhoneNumber   *string
	CompanyName   *string
	ServiceType   string
	PreferredDate string
	PreferredTime string
	Timezone      string
	Message       *string
}

type UpdateAppointmentStatusParams struct {
	Status          AppointmentStatus
	RejectionReason *string
	ApprovedAt      *time.Time
	CompletedAt     *time.Time
}
