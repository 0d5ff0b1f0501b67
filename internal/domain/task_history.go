package domain

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// TaskHistory is one immutable change record on a task. Old and new values
// are stored as display strings.
type TaskHistory struct {
	ID        uuid.UUID
	TaskID    uuid.UUID
	FieldName string
	OldValue  string
	NewValue  string
	Audit
}

func newTaskHistory(taskID uuid.UUID, fieldName, oldValue, newValue string, changedBy uuid.UUID) (*TaskHistory, error) {
	if strings.TrimSpace(fieldName) == "" {
		return nil, apperrors.NewValidationError("history field name cannot be empty", nil)
	}

	entry := &TaskHistory{
		ID:        uuid.New(),
		TaskID:    taskID,
		FieldName: fieldName,
		OldValue:  oldValue,
		NewValue:  newValue,
	}
	entry.SetCreated(changedBy)
	return entry, nil
}
