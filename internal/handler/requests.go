package handler

import (
	"strings"

	apperrors "github.com/hashforge/site-server-go/internal/errors"
	"github.com/hashforge/site-server-go/internal/model"
	"github.com/hashforge/site-server-go/internal/util"
)

// Request bodies are decoded into typed structs and validated before any
// store is touched. A validation failure produces a 4xx and no side effects.

type ContactRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
	PhoneNumber string `json:"phoneNumber"`
	Service     string `json:"service"`
	Message     string `json:"message"`
}

func (r *ContactRequest) Validate() *apperrors.AppError {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Message = strings.TrimSpace(r.Message)

	if r.FullName == "" {
		return apperrors.MissingRequired("fullName")
	}
	if r.Email == "" {
		return apperrors.MissingRequired("email")
	}
	if !util.IsValidEmail(r.Email) {
		return apperrors.InvalidInput("email", "must be a valid email address")
	}
	if r.Message == "" {
		return apperrors.MissingRequired("message")
	}
	return nil
}

func (r *ContactRequest) Params() model.CreateContactSubmissionParams {
	return model.CreateContactSubmissionParams{
		FullName:    r.FullName,
		Email:       r.Email,
		CompanyName: optional(r.CompanyName),
		PhoneNumber: optional(r.PhoneNumber),
		Service:     optional(r.Service),
		Message:     r.Message,
	}
}

type AppointmentRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
	CompanyName   string `json:"companyName"`
	ServiceType   string `json:"serviceType"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
	Timezone      string `json:"timezone"`
	Message       string `json:"message"`
}

func (r *AppointmentRequest) Validate() *apperrors.AppError {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.ServiceType = strings.TrimSpace(r.ServiceType)
	r.Timezone = strings.TrimSpace(r.Timezone)

	if r.FullName == "" {
		return apperrors.MissingRequired("fullName")
	}
	if r.Email == "" {
		return apperrors.MissingRequired("email")
	}
	if !util.IsValidEmail(r.Email) {
		return apperrors.InvalidInput("email", "must be a valid email address")
	}
	if r.ServiceType == "" {
		return apperrors.MissingRequired("serviceType")
	}
	if r.PreferredDate == "" {
		return apperrors.MissingRequired("preferredDate")
	}
	if !util.IsValidDate(r.PreferredDate) {
		return apperrors.InvalidInput("preferredDate", "must be YYYY-MM-DD")
	}
	if r.PreferredTime == "" {
		return apperrors.MissingRequired("preferredTime")
	}
	if !util.IsValidTime(r.PreferredTime) {
		return apperrors.InvalidInput("preferredTime", "must be HH:MM")
	}
	if r.Timezone == "" {
		return apperrors.MissingRequired("timezone")
	}
	return nil
}

func (r *AppointmentRequest) Params() model.CreateAppointmentParams {
	return model.CreateAppointmentParams{
		FullName:      r.FullName,
		Email:         r.Email,
		PhoneNumber:   optional(r.PhoneNumber),
		CompanyName:   optional(r.CompanyName),
		ServiceType:   r.ServiceType,
		PreferredDate: r.PreferredDate,
		PreferredTime: r.PreferredTime,
		Timezone:      r.Timezone,
		Message:       optional(r.Message),
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() *apperrors.AppError {
	if r.Username == "" {
		return apperrors.MissingRequired("username")
	}
	if r.Password == "" {
		return apperrors.MissingRequired("password")
	}
	return nil
}

type CreateAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *CreateAdminRequest) Validate(minPasswordChars int) *apperrors.AppError {
	r.Username = strings.TrimSpace(r.Username)

	if r.Username == "" {
		return apperrors.MissingRequired("username")
	}
	if len(r.Username) < 3 {
		return apperrors.InvalidInput("username", "must be at least 3 characters")
	}
	if r.Password == "" {
		return apperrors.MissingRequired("password")
	}
	if len(r.Password) < minPasswordChars {
		return apperrors.InvalidInput("password", "too short")
	}
	return nil
}

type UpdateAdminRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (r *UpdateAdminRequest) Validate(minPasswordChars int) *apperrors.AppError {
	if r.Username == nil && r.Password == nil {
		return apperrors.ValidationError("nothing to update")
	}
	if r.Username != nil {
		trimmed := strings.TrimSpace(*r.Username)
		r.Username = &trimmed
		if len(trimmed) < 3 {
			return apperrors.InvalidInput("username", "must be at least 3 characters")
		}
	}
	if r.Password != nil && len(*r.Password) < minPasswordChars {
		return apperrors.InvalidInput("password", "too short")
	}
	return nil
}

type UpdateAppointmentStatusRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason"`
}

func (r *UpdateAppointmentStatusRequest) Validate() *apperrors.AppError {
	if r.Status == "" {
		return apperrors.MissingRequired("status")
	}
	if !model.IsValidAppointmentStatus(r.Status) {
		return apperrors.InvalidInput("status", "must be one of pending, approved, rejected, completed")
	}
	return nil
}
