package domain

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// WorkspaceRole enumerates membership roles within a workspace.
type WorkspaceRole string

const (
	RoleGuest          WorkspaceRole = "GUEST"
	RoleMember         WorkspaceRole = "MEMBER"
	RoleProjectManager WorkspaceRole = "PROJECT_MANAGER"
	RoleAdmin          WorkspaceRole = "ADMIN"
	RoleOwner          WorkspaceRole = "OWNER"
)

// Workspace is the tenant root container. It exclusively owns its projects
// and memberships.
type Workspace struct {
	ID          uuid.UUID
	Name        string
	Slug        Slug
	Description string
	LogoURL     string
	Projects    []*Project
	Members     []*WorkspaceMember
	Audit
}

// NewWorkspace creates a workspace and returns the WorkspaceCreated event.
func NewWorkspace(name string, slug Slug, ownerID uuid.UUID) (*Workspace, Event, error) {
	if strings.TrimSpace(name) == "" {
		return nil, Event{}, apperrors.NewValidationError("workspace name cannot be empty", nil)
	}
	if len(name) > 100 {
		return nil, Event{}, apperrors.NewValidationError("workspace name cannot exceed 100 characters", nil)
	}
	if slug.IsZero() {
		return nil, Event{}, apperrors.NewValidationError("workspace slug is required", nil)
	}

	workspace := &Workspace{
		ID:   uuid.New(),
		Name: strings.TrimSpace(name),
		Slug: slug,
	}
	workspace.SetCreated(ownerID)

	event := newEvent(EventWorkspaceCreated, WorkspaceCreatedPayload{
		WorkspaceID: workspace.ID,
		Name:        workspace.Name,
		Slug:        slug.String(),
		OwnerID:     ownerID,
	})
	return workspace, event, nil
}

// Update changes mutable workspace attributes.
func (w *Workspace) Update(name, description, logoURL string, updatedBy uuid.UUID) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("workspace name cannot be empty", nil)
	}
	if len(name) > 100 {
		return apperrors.NewValidationError("workspace name cannot exceed 100 characters", nil)
	}

	w.Name = strings.TrimSpace(name)
	w.Description = strings.TrimSpace(description)
	w.LogoURL = strings.TrimSpace(logoURL)
	w.SetUpdated(updatedBy)
	return nil
}

// AddMember adds an active membership for the user. A user may hold at most
// one active membership per workspace.
func (w *Workspace) AddMember(user *User, role WorkspaceRole, addedBy uuid.UUID) (*WorkspaceMember, error) {
	if w.ActiveMember(user.ID) != nil {
		return nil, apperrors.NewBusinessRule("user is already a member of this workspace")
	}

	member := newWorkspaceMember(w.ID, user.ID, role, addedBy)
	w.Members = append(w.Members, member)
	return member, nil
}

// RemoveMember soft-deletes the user's membership. The workspace owner can
// never be removed.
func (w *Workspace) RemoveMember(userID, removedBy uuid.UUID) error {
	member := w.ActiveMember(userID)
	if member == nil {
		return apperrors.NewBusinessRule("user is not a member of this workspace")
	}
	if member.Role == RoleOwner {
		return apperrors.NewBusinessRule("cannot remove the workspace owner")
	}

	member.markDeleted(removedBy)
	return nil
}

// ActiveMember returns the non-deleted membership for the user, or nil.
func (w *Workspace) ActiveMember(userID uuid.UUID) *WorkspaceMember {
	for _, member := range w.Members {
		if member.UserID == userID && !member.IsDeleted {
			return member
		}
	}
	return nil
}

// AddProject attaches a project to the workspace.
func (w *Workspace) AddProject(project *Project) {
	w.Projects = append(w.Projects, project)
}
