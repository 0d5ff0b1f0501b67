package dto

import (
	"time"

	"github.com/spec-kit/task-tracker/internal/domain"
)

// CreateWorkspaceRequest payload.
type CreateWorkspaceRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// UpdateWorkspaceRequest payload.
type UpdateWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}

// AddMemberRequest payload.
type AddMemberRequest struct {
	UserID string               `json:"user_id"`
	Role   domain.WorkspaceRole `json:"role"`
}

// ChangeRoleRequest payload.
type ChangeRoleRequest struct {
	Role domain.WorkspaceRole `json:"role"`
}

// LabelRequest payload.
type LabelRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// WorkspaceResponse represents a workspace.
type WorkspaceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MemberResponse represents a workspace membership.
type MemberResponse struct {
	ID     string               `json:"id"`
	UserID string               `json:"user_id"`
	Role   domain.WorkspaceRole `json:"role"`
}

// LabelResponse represents a label.
type LabelResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewWorkspaceResponse maps a workspace.
func NewWorkspaceResponse(workspace *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          workspace.ID.String(),
		Name:        workspace.Name,
		Slug:        workspace.Slug.String(),
		Description: workspace.Description,
		LogoURL:     workspace.LogoURL,
		CreatedAt:   workspace.CreatedAt,
	}
}

// NewMemberResponse maps a membership.
func NewMemberResponse(member *domain.WorkspaceMember) MemberResponse {
	return MemberResponse{
		ID:     member.ID.String(),
		UserID: member.UserID.String(),
		Role:   member.Role,
	}
}

// NewLabelResponse maps a label.
func NewLabelResponse(label *domain.Label) LabelResponse {
	return LabelResponse{
		ID:    label.ID.String(),
		Name:  label.Name,
		Color: label.Color,
	}
}
