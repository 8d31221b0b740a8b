package model

import (
	"time"
)

type ContactSubmission struct {
	ID          string    `db:"id" json:"id"`
	FullName    string    `db:"full_name" json:"fullName"`
	Email       string    `db:"email" json:"email"`
	CompanyName *string   `db:"company_name" json:"companyName,omitempty"`
	PhoneNumber *string   `db:"phone_number" json:"phoneNumber,omitempty"`
	Service     *string   `db:"service" json:"service,omitempty"`
	Message     string    `db:"message" json:"message"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type CreateContactSubmissionParams struct {
	FullName    string
	Email       string
	CompanyName *string
	PhoneNumber *string
	Service     *string
	Message     string
}
