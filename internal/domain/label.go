package domain

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// Label is a workspace-scoped tag that can be linked to tasks.
type Label struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	Name        string
	Color       string
	Audit
}

// NewLabel creates a workspace label.
func NewLabel(workspace *Workspace, name, color string, createdBy uuid.UUID) (*Label, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("label name cannot be empty", nil)
	}
	if len(name) > 50 {
		return nil, apperrors.NewValidationError("label name cannot exceed 50 characters", nil)
	}

	if color == "" {
		color = DefaultStatusColor
	}

	label := &Label{
		ID:          uuid.New(),
		WorkspaceID: workspace.ID,
		Name:        strings.TrimSpace(name),
		Color:       color,
	}
	label.SetCreated(createdBy)
	return label, nil
}

// Update changes the label name and color.
func (l *Label) Update(name, color string, updatedBy uuid.UUID) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("label name cannot be empty", nil)
	}
	if len(name) > 50 {
		return apperrors.NewValidationError("label name cannot exceed 50 characters", nil)
	}

	l.Name = strings.TrimSpace(name)
	l.Color = color
	l.SetUpdated(updatedBy)
	return nil
}

// TaskLabel links a label to a task.
type TaskLabel struct {
	ID      uuid.UUID
	TaskID  uuid.UUID
	LabelID uuid.UUID
	Audit
}

// NewTaskLabel links the given label to the given task.
func NewTaskLabel(task *TaskItem, label *Label, linkedBy uuid.UUID) *TaskLabel {
	link := &TaskLabel{
		ID:      uuid.New(),
		TaskID:  task.ID,
		LabelID: label.ID,
	}
	link.SetCreated(linkedBy)
	return link
}
