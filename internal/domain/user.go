package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// User is a system user referenced by tasks and workspace memberships.
type User struct {
	ID                    uuid.UUID
	Email                 Email
	PasswordHash          string
	DisplayName           string
	AvatarURL             string
	IsActive              bool
	ExternalID            string
	RefreshToken          string
	RefreshTokenExpiresAt *time.Time
	Audit
}

// NewUser creates an active user and returns the UserCreated event.
func NewUser(email Email, passwordHash, displayName string) (*User, Event, error) {
	if strings.TrimSpace(displayName) == "" {
		return nil, Event{}, apperrors.NewValidationError("display name cannot be empty", nil)
	}
	if len(displayName) > 100 {
		return nil, Event{}, apperrors.NewValidationError("display name cannot exceed 100 characters", nil)
	}
	if email.IsZero() {
		return nil, Event{}, apperrors.NewValidationError("email is required", nil)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  strings.TrimSpace(displayName),
		IsActive:     true,
	}
	user.SetCreated(user.ID)

	event := newEvent(EventUserCreated, UserCreatedPayload{
		UserID:      user.ID,
		Email:       email.String(),
		DisplayName: user.DisplayName,
	})
	return user, event, nil
}

// UpdateProfile changes the display name and avatar.
func (u *User) UpdateProfile(displayName, avatarURL string, updatedBy uuid.UUID) error {
	if strings.TrimSpace(displayName) == "" {
		return apperrors.NewValidationError("display name cannot be empty", nil)
	}
	if len(displayName) > 100 {
		return apperrors.NewValidationError("display name cannot exceed 100 characters", nil)
	}

	u.DisplayName = strings.TrimSpace(displayName)
	u.AvatarURL = strings.TrimSpace(avatarURL)
	u.SetUpdated(updatedBy)
	return nil
}

// SetRefreshToken rotates the refresh token.
func (u *User) SetRefreshToken(token string, expiresAt *time.Time) {
	u.RefreshToken = token
	u.RefreshTokenExpiresAt = expiresAt
}

// Deactivate disables the account.
func (u *User) Deactivate(by uuid.UUID) {
	u.IsActive = false
	u.SetUpdated(by)
}

// Activate re-enables the account.
func (u *User) Activate(by uuid.UUID) {
	u.IsActive = true
	u.SetUpdated(by)
}
