package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// SprintStatus enumerates the sprint lifecycle. The lifecycle is strictly
// linear, a completed sprint can never be reopened.
type SprintStatus string

const (
	SprintPlanned   SprintStatus = "PLANNED"
	SprintActive    SprintStatus = "ACTIVE"
	SprintCompleted SprintStatus = "COMPLETED"
)

// Sprint is a time-boxed iteration inside a project.
type Sprint struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Name      string
	Goal      string
	StartDate time.Time
	EndDate   time.Time
	Status    SprintStatus
	Audit
}

// NewSprint creates a planned sprint. The end date must be after the start
// date.
func NewSprint(project *Project, name, goal string, startDate, endDate time.Time, createdBy uuid.UUID) (*Sprint, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("sprint name cannot be empty", nil)
	}
	if len(name) > 100 {
		return nil, apperrors.NewValidationError("sprint name cannot exceed 100 characters", nil)
	}
	if !endDate.After(startDate) {
		return nil, apperrors.NewValidationError("sprint end date must be after the start date", nil)
	}

	sprint := &Sprint{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Name:      strings.TrimSpace(name),
		Goal:      strings.TrimSpace(goal),
		StartDate: startDate.UTC(),
		EndDate:   endDate.UTC(),
		Status:    SprintPlanned,
	}
	sprint.SetCreated(createdBy)
	return sprint, nil
}

// Update changes mutable sprint attributes while the sprint is not
// completed.
func (s *Sprint) Update(name, goal string, startDate, endDate time.Time, updatedBy uuid.UUID) error {
	if s.Status == SprintCompleted {
		return apperrors.NewBusinessRule("cannot modify a completed sprint")
	}
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("sprint name cannot be empty", nil)
	}
	if len(name) > 100 {
		return apperrors.NewValidationError("sprint name cannot exceed 100 characters", nil)
	}
	if !endDate.After(startDate) {
		return apperrors.NewValidationError("sprint end date must be after the start date", nil)
	}

	s.Name = strings.TrimSpace(name)
	s.Goal = strings.TrimSpace(goal)
	s.StartDate = startDate.UTC()
	s.EndDate = endDate.UTC()
	s.SetUpdated(updatedBy)
	return nil
}

// Start activates a planned sprint.
func (s *Sprint) Start(startedBy uuid.UUID) error {
	if s.Status != SprintPlanned {
		return apperrors.NewBusinessRule("only a planned sprint can be started")
	}

	s.Status = SprintActive
	s.SetUpdated(startedBy)
	return nil
}

// Complete closes an active sprint.
func (s *Sprint) Complete(completedBy uuid.UUID) error {
	if s.Status != SprintActive {
		return apperrors.NewBusinessRule("only an active sprint can be completed")
	}

	s.Status = SprintCompleted
	s.SetUpdated(completedBy)
	return nil
}
