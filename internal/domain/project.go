package domain

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// Project groups tasks within a workspace. It owns the workflow status
// graph, sprint list, custom field definitions and the per-project task
// number sequence that mints FriendlyIDs.
type Project struct {
	ID              uuid.UUID
	WorkspaceID     uuid.UUID
	Name            string
	Slug            Slug
	Prefix          string
	Description     string
	IconURL         string
	NextTaskNumber  int
	DefaultStatusID *uuid.UUID

	// Version backs the optimistic concurrency check performed by the
	// persistence layer around the task-number sequencer.
	Version int64

	Statuses     []*WorkflowStatus
	CustomFields []*CustomFieldDefinition
	Sprints      []*Sprint
	Audit
}

// NewProject creates a project and returns the ProjectCreated event.
func NewProject(workspace *Workspace, name string, slug Slug, prefix string, createdBy uuid.UUID) (*Project, Event, error) {
	if strings.TrimSpace(name) == "" {
		return nil, Event{}, apperrors.NewValidationError("project name cannot be empty", nil)
	}
	if len(name) > 100 {
		return nil, Event{}, apperrors.NewValidationError("project name cannot exceed 100 characters", nil)
	}
	if strings.TrimSpace(prefix) == "" {
		return nil, Event{}, apperrors.NewValidationError("project prefix cannot be empty", nil)
	}
	if len(prefix) > 10 {
		return nil, Event{}, apperrors.NewValidationError("project prefix cannot exceed 10 characters", nil)
	}
	if !isAlphanumeric(prefix) {
		return nil, Event{}, apperrors.NewValidationError("project prefix can only contain letters and digits", nil)
	}
	if slug.IsZero() {
		return nil, Event{}, apperrors.NewValidationError("project slug is required", nil)
	}

	project := &Project{
		ID:             uuid.New(),
		WorkspaceID:    workspace.ID,
		Name:           strings.TrimSpace(name),
		Slug:           slug,
		Prefix:         strings.ToUpper(prefix),
		NextTaskNumber: 1,
	}
	project.SetCreated(createdBy)

	event := newEvent(EventProjectCreated, ProjectCreatedPayload{
		ProjectID:   project.ID,
		WorkspaceID: workspace.ID,
		Name:        project.Name,
		Slug:        slug.String(),
		Prefix:      project.Prefix,
	})
	return project, event, nil
}

// Update changes mutable project attributes.
func (p *Project) Update(name, description, iconURL string, updatedBy uuid.UUID) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("project name cannot be empty", nil)
	}
	if len(name) > 100 {
		return apperrors.NewValidationError("project name cannot exceed 100 characters", nil)
	}

	p.Name = strings.TrimSpace(name)
	p.Description = strings.TrimSpace(description)
	p.IconURL = strings.TrimSpace(iconURL)
	p.SetUpdated(updatedBy)
	return nil
}

// GetAndIncrementTaskNumber returns the next sequence number and advances
// the counter. Must be called exactly once per task creation, inside the
// same transaction that persists the task row; the persistence layer's
// version check keeps concurrent increments from colliding.
func (p *Project) GetAndIncrementTaskNumber() int {
	n := p.NextTaskNumber
	p.NextTaskNumber++
	return n
}

// AddStatus attaches a workflow status. The first status added with
// isDefault=true becomes the project default; later defaults do not
// override it.
func (p *Project) AddStatus(status *WorkflowStatus) {
	p.Statuses = append(p.Statuses, status)
	if p.DefaultStatusID == nil && status.IsDefault {
		id := status.ID
		p.DefaultStatusID = &id
	}
}

// SetDefaultStatus explicitly overrides the default status pointer.
func (p *Project) SetDefaultStatus(status *WorkflowStatus) {
	id := status.ID
	p.DefaultStatusID = &id
}

// StatusByID returns the loaded status with the given ID, or nil.
func (p *Project) StatusByID(id uuid.UUID) *WorkflowStatus {
	for _, status := range p.Statuses {
		if status.ID == id {
			return status
		}
	}
	return nil
}

// DefaultStatus resolves the initial status for new tasks: the configured
// default, or the first status when none is marked default.
func (p *Project) DefaultStatus() (*WorkflowStatus, error) {
	if p.DefaultStatusID != nil {
		if status := p.StatusByID(*p.DefaultStatusID); status != nil {
			return status, nil
		}
	}
	for _, status := range p.Statuses {
		if status.IsDefault {
			return status, nil
		}
	}
	if len(p.Statuses) > 0 {
		return p.Statuses[0], nil
	}
	return nil, apperrors.NewBusinessRule("project has no workflow statuses configured")
}

// AddCustomField attaches a custom field definition.
func (p *Project) AddCustomField(field *CustomFieldDefinition) {
	p.CustomFields = append(p.CustomFields, field)
}

// AddSprint attaches a sprint.
func (p *Project) AddSprint(sprint *Sprint) {
	p.Sprints = append(p.Sprints, sprint)
}

// SprintByID returns the loaded sprint with the given ID, or nil.
func (p *Project) SprintByID(id uuid.UUID) *Sprint {
	for _, sprint := range p.Sprints {
		if sprint.ID == id {
			return sprint
		}
	}
	return nil
}
