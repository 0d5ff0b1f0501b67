package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// WorkspaceMember is a user's membership in a workspace. Removal is a soft
// delete so the audit trail survives.
type WorkspaceMember struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	UserID      uuid.UUID
	Role        WorkspaceRole
	IsDeleted   bool
	DeletedAt   *time.Time
	DeletedBy   *uuid.UUID
	Audit
}

func newWorkspaceMember(workspaceID, userID uuid.UUID, role WorkspaceRole, createdBy uuid.UUID) *WorkspaceMember {
	member := &WorkspaceMember{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
	}
	member.SetCreated(createdBy)
	return member
}

// ChangeRole updates the member's role. An owner can never be demoted.
func (m *WorkspaceMember) ChangeRole(newRole WorkspaceRole, changedBy uuid.UUID) error {
	if m.Role == RoleOwner && newRole != RoleOwner {
		return apperrors.NewBusinessRule("cannot demote the workspace owner")
	}

	m.Role = newRole
	m.SetUpdated(changedBy)
	return nil
}

func (m *WorkspaceMember) markDeleted(by uuid.UUID) {
	now := time.Now().UTC()
	m.IsDeleted = true
	m.DeletedAt = &now
	m.DeletedBy = &by
}
