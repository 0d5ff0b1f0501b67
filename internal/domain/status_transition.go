package domain

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// StatusTransition is a permitted directed edge between two statuses of the
// same project. The transition graph defines the only legal moves for
// TaskItem.ChangeStatus.
type StatusTransition struct {
	ID           uuid.UUID
	FromStatusID uuid.UUID
	ToStatusID   uuid.UUID
	Name         string

	// AutoAssignUserID, when set, assigns the task to this user whenever
	// the transition fires.
	AutoAssignUserID *uuid.UUID
	RequiresComment  bool
	Audit
}

// TransitionConfig carries the optional attributes of a new transition.
type TransitionConfig struct {
	Name             string
	AutoAssignUserID *uuid.UUID
	RequiresComment  bool
}

// NewStatusTransition creates an edge between two statuses. Cross-project
// edges and self-loops are rejected.
func NewStatusTransition(from, to *WorkflowStatus, createdBy uuid.UUID, cfg TransitionConfig) (*StatusTransition, error) {
	if from.ProjectID != to.ProjectID {
		return nil, apperrors.NewBusinessRule("statuses must belong to the same project")
	}
	if from.ID == to.ID {
		return nil, apperrors.NewBusinessRule("cannot create transition to the same status")
	}

	transition := &StatusTransition{
		ID:               uuid.New(),
		FromStatusID:     from.ID,
		ToStatusID:       to.ID,
		Name:             strings.TrimSpace(cfg.Name),
		AutoAssignUserID: cfg.AutoAssignUserID,
		RequiresComment:  cfg.RequiresComment,
	}
	transition.SetCreated(createdBy)
	return transition, nil
}

// Update changes the transition's optional attributes.
func (t *StatusTransition) Update(name string, autoAssignUserID *uuid.UUID, requiresComment bool, updatedBy uuid.UUID) {
	t.Name = strings.TrimSpace(name)
	t.AutoAssignUserID = autoAssignUserID
	t.RequiresComment = requiresComment
	t.SetUpdated(updatedBy)
}
