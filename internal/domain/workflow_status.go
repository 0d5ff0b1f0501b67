package domain

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// StatusCategory buckets workflow statuses for reporting and for the
// started/completed timestamp rules on tasks.
type StatusCategory string

const (
	CategoryToDo       StatusCategory = "TODO"
	CategoryInProgress StatusCategory = "IN_PROGRESS"
	CategoryDone       StatusCategory = "DONE"
	CategoryCancelled  StatusCategory = "CANCELLED"
)

// DefaultStatusColor is used when a status is created without a color.
const DefaultStatusColor = "#808080"

// WorkflowStatus is one node in a project's workflow graph. The set of
// statuses is project-defined data, not a fixed enum.
type WorkflowStatus struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Name        string
	Description string
	Color       string
	Category    StatusCategory
	Order       int
	IsDefault   bool

	OutgoingTransitions []*StatusTransition
	Audit
}

// StatusConfig carries the optional attributes of a new status.
type StatusConfig struct {
	Description string
	Color       string
	IsDefault   bool
}

// NewWorkflowStatus creates a status belonging to the given project.
func NewWorkflowStatus(project *Project, name string, category StatusCategory, order int, createdBy uuid.UUID, cfg StatusConfig) (*WorkflowStatus, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("status name cannot be empty", nil)
	}
	if len(name) > 50 {
		return nil, apperrors.NewValidationError("status name cannot exceed 50 characters", nil)
	}

	color := cfg.Color
	if color == "" {
		color = DefaultStatusColor
	}

	status := &WorkflowStatus{
		ID:          uuid.New(),
		ProjectID:   project.ID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(cfg.Description),
		Color:       color,
		Category:    category,
		Order:       order,
		IsDefault:   cfg.IsDefault,
	}
	status.SetCreated(createdBy)
	return status, nil
}

// Update changes mutable status attributes.
func (s *WorkflowStatus) Update(name, description, color string, category StatusCategory, order int, updatedBy uuid.UUID) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("status name cannot be empty", nil)
	}
	if len(name) > 50 {
		return apperrors.NewValidationError("status name cannot exceed 50 characters", nil)
	}

	s.Name = strings.TrimSpace(name)
	s.Description = strings.TrimSpace(description)
	s.Color = color
	s.Category = category
	s.Order = order
	s.SetUpdated(updatedBy)
	return nil
}

// SetAsDefault marks the status as a default candidate.
func (s *WorkflowStatus) SetAsDefault() {
	s.IsDefault = true
}

// UnsetAsDefault clears the default flag.
func (s *WorkflowStatus) UnsetAsDefault() {
	s.IsDefault = false
}

// AddOutgoingTransition registers an edge leaving this status.
func (s *WorkflowStatus) AddOutgoingTransition(transition *StatusTransition) {
	s.OutgoingTransitions = append(s.OutgoingTransitions, transition)
}

// TransitionTo returns the outgoing edge ending at the given status, or nil
// when the move is not modeled.
func (s *WorkflowStatus) TransitionTo(toStatusID uuid.UUID) *StatusTransition {
	for _, transition := range s.OutgoingTransitions {
		if transition.ToStatusID == toStatusID {
			return transition
		}
	}
	return nil
}
