package dto

import (
	"time"

	"github.com/spec-kit/task-tracker/internal/domain"
)

// CreateProjectRequest payload.
type CreateProjectRequest struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Prefix string `json:"prefix"`
}

// UpdateProjectRequest payload.
type UpdateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
}

// StatusRequest payload.
type StatusRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Color       string                `json:"color"`
	Category    domain.StatusCategory `json:"category"`
	Order       int                   `json:"order"`
	IsDefault   bool                  `json:"is_default"`
}

// TransitionRequest payload.
type TransitionRequest struct {
	FromStatusID     string  `json:"from_status_id"`
	ToStatusID       string  `json:"to_status_id"`
	Name             string  `json:"name"`
	AutoAssignUserID *string `json:"auto_assign_user_id"`
	RequiresComment  bool    `json:"requires_comment"`
}

// CustomFieldRequest payload.
type CustomFieldRequest struct {
	Name       string                 `json:"name"`
	FieldType  domain.CustomFieldType `json:"field_type"`
	IsRequired bool                   `json:"is_required"`
	Options    string                 `json:"options"`
	Order      int                    `json:"order"`
}

// SprintRequest payload.
type SprintRequest struct {
	Name      string    `json:"name"`
	Goal      string    `json:"goal"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ProjectResponse represents a project.
type ProjectResponse struct {
	ID              string           `json:"id"`
	WorkspaceID     string           `json:"workspace_id"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Prefix          string           `json:"prefix"`
	Description     string           `json:"description,omitempty"`
	IconURL         string           `json:"icon_url,omitempty"`
	DefaultStatusID *string          `json:"default_status_id,omitempty"`
	Statuses        []StatusResponse `json:"statuses,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// StatusResponse represents a workflow status.
type StatusResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Color       string                `json:"color"`
	Category    domain.StatusCategory `json:"category"`
	Order       int                   `json:"order"`
	IsDefault   bool                  `json:"is_default"`
	Transitions []TransitionResponse  `json:"transitions,omitempty"`
}

// TransitionResponse represents a workflow edge.
type TransitionResponse struct {
	ID               string  `json:"id"`
	ToStatusID       string  `json:"to_status_id"`
	Name             string  `json:"name,omitempty"`
	AutoAssignUserID *string `json:"auto_assign_user_id,omitempty"`
	RequiresComment  bool    `json:"requires_comment"`
}

// CustomFieldResponse represents a field definition.
type CustomFieldResponse struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	FieldType  domain.CustomFieldType `json:"field_type"`
	IsRequired bool                   `json:"is_required"`
	Options    string                 `json:"options,omitempty"`
	Order      int                    `json:"order"`
}

// SprintResponse represents a sprint.
type SprintResponse struct {
	ID        string              `json:"id"`
	ProjectID string              `json:"project_id"`
	Name      string              `json:"name"`
	Goal      string              `json:"goal,omitempty"`
	StartDate time.Time           `json:"start_date"`
	EndDate   time.Time           `json:"end_date"`
	Status    domain.SprintStatus `json:"status"`
}

// NewProjectResponse maps a project with its statuses.
func NewProjectResponse(project *domain.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          project.ID.String(),
		WorkspaceID: project.WorkspaceID.String(),
		Name:        project.Name,
		Slug:        project.Slug.String(),
		Prefix:      project.Prefix,
		Description: project.Description,
		IconURL:     project.IconURL,
		CreatedAt:   project.CreatedAt,
	}
	if project.DefaultStatusID != nil {
		id := project.DefaultStatusID.String()
		resp.DefaultStatusID = &id
	}
	for _, status := range project.Statuses {
		resp.Statuses = append(resp.Statuses, NewStatusResponse(status))
	}
	return resp
}

// NewStatusResponse maps a status with its outgoing transitions.
func NewStatusResponse(status *domain.WorkflowStatus) StatusResponse {
	resp := StatusResponse{
		ID:          status.ID.String(),
		Name:        status.Name,
		Description: status.Description,
		Color:       status.Color,
		Category:    status.Category,
		Order:       status.Order,
		IsDefault:   status.IsDefault,
	}
	for _, transition := range status.OutgoingTransitions {
		resp.Transitions = append(resp.Transitions, NewTransitionResponse(transition))
	}
	return resp
}

// NewTransitionResponse maps a transition.
func NewTransitionResponse(transition *domain.StatusTransition) TransitionResponse {
	resp := TransitionResponse{
		ID:              transition.ID.String(),
		ToStatusID:      transition.ToStatusID.String(),
		Name:            transition.Name,
		RequiresComment: transition.RequiresComment,
	}
	if transition.AutoAssignUserID != nil {
		id := transition.AutoAssignUserID.String()
		resp.AutoAssignUserID = &id
	}
	return resp
}

// NewCustomFieldResponse maps a field definition.
func NewCustomFieldResponse(field *domain.CustomFieldDefinition) CustomFieldResponse {
	return CustomFieldResponse{
		ID:         field.ID.String(),
		Name:       field.Name,
		FieldType:  field.FieldType,
		IsRequired: field.IsRequired,
		Options:    field.Options,
		Order:      field.Order,
	}
}

// NewSprintResponse maps a sprint.
func NewSprintResponse(sprint *domain.Sprint) SprintResponse {
	return SprintResponse{
		ID:        sprint.ID.String(),
		ProjectID: sprint.ProjectID.String(),
		Name:      sprint.Name,
		Goal:      sprint.Goal,
		StartDate: sprint.StartDate,
		EndDate:   sprint.EndDate,
		Status:    sprint.Status,
	}
}
