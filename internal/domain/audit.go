package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit carries creation and update stamps shared by persistent entities.
type Audit struct {
	CreatedAt time.Time
	CreatedBy uuid.UUID
	UpdatedAt *time.Time
	UpdatedBy *uuid.UUID
}

// SetCreated stamps the entity as created by the given user.
func (a *Audit) SetCreated(by uuid.UUID) {
	a.CreatedAt = time.Now().UTC()
	a.CreatedBy = by
}

// SetUpdated stamps the entity as updated by the given user.
func (a *Audit) SetUpdated(by uuid.UUID) {
	now := time.Now().UTC()
	a.UpdatedAt = &now
	a.UpdatedBy = &by
}
