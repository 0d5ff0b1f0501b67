package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported domain event identifiers.
type EventType string

const (
	EventUserCreated       EventType = "user_created"
	EventWorkspaceCreated  EventType = "workspace_created"
	EventProjectCreated    EventType = "project_created"
	EventTaskCreated       EventType = "task_created"
	EventTaskUpdated       EventType = "task_updated"
	EventTaskStatusChanged EventType = "task_status_changed"
	EventTaskAssigned      EventType = "task_assigned"
)

// Event is an immutable record of something that happened in the domain.
// Mutating operations return events explicitly; the unit of work dispatches
// them exactly once after the surrounding state is committed.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	OccurredOn time.Time `json:"occurred_on"`
	Payload    any       `json:"payload"`
}

func newEvent(eventType EventType, payload any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredOn: time.Now().UTC(),
		Payload:    payload,
	}
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
}

// WorkspaceCreatedPayload payload.
type WorkspaceCreatedPayload struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	OwnerID     uuid.UUID `json:"owner_id"`
}

// ProjectCreatedPayload payload.
type ProjectCreatedPayload struct {
	ProjectID   uuid.UUID `json:"project_id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Prefix      string    `json:"prefix"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID     uuid.UUID `json:"task_id"`
	FriendlyID string    `json:"friendly_id"`
	ProjectID  uuid.UUID `json:"project_id"`
	Title      string    `json:"title"`
	Type       TaskType  `json:"type"`
	StatusID   uuid.UUID `json:"status_id"`
}

// TaskUpdatedPayload payload.
type TaskUpdatedPayload struct {
	TaskID     uuid.UUID `json:"task_id"`
	FriendlyID string    `json:"friendly_id"`
	ProjectID  uuid.UUID `json:"project_id"`
	FieldName  string    `json:"field_name"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
}

// TaskStatusChangedPayload payload.
type TaskStatusChangedPayload struct {
	TaskID        uuid.UUID `json:"task_id"`
	FriendlyID    string    `json:"friendly_id"`
	ProjectID     uuid.UUID `json:"project_id"`
	OldStatusID   uuid.UUID `json:"old_status_id"`
	OldStatusName string    `json:"old_status_name"`
	NewStatusID   uuid.UUID `json:"new_status_id"`
	NewStatusName string    `json:"new_status_name"`
}

// TaskAssignedPayload payload.
type TaskAssignedPayload struct {
	TaskID       uuid.UUID  `json:"task_id"`
	FriendlyID   string     `json:"friendly_id"`
	ProjectID    uuid.UUID  `json:"project_id"`
	AssigneeID   *uuid.UUID `json:"assignee_id,omitempty"`
	AssigneeName *string    `json:"assignee_name,omitempty"`
}
