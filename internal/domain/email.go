package domain

import (
	"strings"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// Email is a normalized, validated email address. The zero value is invalid;
// construct via NewEmail.
type Email struct {
	value string
}

// NewEmail validates and normalizes a raw email address.
func NewEmail(raw string) (Email, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return Email{}, apperrors.NewValidationError("email cannot be empty", nil)
	}
	if len(email) > 256 {
		return Email{}, apperrors.NewValidationError("email cannot exceed 256 characters", nil)
	}

	atIndex := strings.Index(email, "@")
	if atIndex <= 0 || atIndex == len(email)-1 {
		return Email{}, apperrors.NewValidationError("invalid email format", nil)
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex <= atIndex+1 || dotIndex == len(email)-1 {
		return Email{}, apperrors.NewValidationError("invalid email format", nil)
	}

	return Email{value: email}, nil
}

func (e Email) String() string {
	return e.value
}

// IsZero reports whether the email is the uninitialized zero value.
func (e Email) IsZero() bool {
	return e.value == ""
}
