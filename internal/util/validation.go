package util

import (
	"regexp"
)

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

func IsValidEmail(s string) bool {
	return s != "" && emailRegex.MatchString(s)
}

// IsValidDate checks the YYYY-MM-DD shape used by the booking form.
func IsValidDate(s string) bool {
	return dateRegex.MatchString(s)
}

// IsValidTime checks the 24-hour HH:MM shape used by the booking form.
func IsValidTime(s string) bool {
	return timeRegex.MatchString(s)
}
