package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// TaskPriority enumerates task urgency levels.
type TaskPriority string

const (
	PriorityNone     TaskPriority = "NONE"
	PriorityLow      TaskPriority = "LOW"
	PriorityMedium   TaskPriority = "MEDIUM"
	PriorityHigh     TaskPriority = "HIGH"
	PriorityUrgent   TaskPriority = "URGENT"
	PriorityCritical TaskPriority = "CRITICAL"
)

// TaskType enumerates work item kinds.
type TaskType string

const (
	TypeTask        TaskType = "TASK"
	TypeBug         TaskType = "BUG"
	TypeFeature     TaskType = "FEATURE"
	TypeStory       TaskType = "STORY"
	TypeEpic        TaskType = "EPIC"
	TypeSubtask     TaskType = "SUBTASK"
	TypeImprovement TaskType = "IMPROVEMENT"
)

// TaskItem is the central work unit. Cross-aggregate references are held as
// identifiers plus cached display names; operations that need the workflow
// graph take the attached Project loaded by the caller.
type TaskItem struct {
	ID          uuid.UUID
	FriendlyID  FriendlyID
	ProjectID   uuid.UUID
	Title       string
	Description string
	Priority    TaskPriority
	Type        TaskType
	StoryPoints *int
	DueDate     *time.Time

	// StartedAt and CompletedAt are single-assignment: set the first time
	// the status category becomes IN_PROGRESS / DONE, never cleared.
	StartedAt   *time.Time
	CompletedAt *time.Time

	StatusID   uuid.UUID
	StatusName string

	AssigneeID   *uuid.UUID
	AssigneeName string

	ReporterID   uuid.UUID
	ReporterName string

	ParentTaskID *uuid.UUID
	SprintID     *uuid.UUID

	// CustomFields holds the project-defined field values as a JSON blob.
	CustomFields string

	Subtasks    []*TaskItem
	Comments    []*TaskComment
	Attachments []*TaskAttachment
	History     []*TaskHistory
	Labels      []*TaskLabel
	Audit
}

// NewTaskInput carries the creation parameters for a task.
type NewTaskInput struct {
	Title       string
	Description string
	Type        TaskType
	Priority    TaskPriority
	Status      *WorkflowStatus
	Reporter    *User
	Assignee    *User
	ParentTask  *TaskItem
	CreatedBy   uuid.UUID
}

// NewTask creates a task inside the given project, minting its FriendlyID
// from the project sequence, and returns the TaskCreated event. No history
// entry is recorded for creation itself.
func NewTask(project *Project, in NewTaskInput) (*TaskItem, Event, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, Event{}, apperrors.NewValidationError("task title cannot be empty", nil)
	}
	if len(in.Title) > 500 {
		return nil, Event{}, apperrors.NewValidationError("task title cannot exceed 500 characters", nil)
	}
	if in.Status == nil || in.Reporter == nil {
		return nil, Event{}, apperrors.NewValidationError("task status and reporter are required", nil)
	}
	if in.Status.ProjectID != project.ID {
		return nil, Event{}, apperrors.NewBusinessRule("status does not belong to the same project")
	}
	if in.ParentTask != nil && in.ParentTask.ProjectID != project.ID {
		return nil, Event{}, apperrors.NewBusinessRule("parent task must belong to the same project")
	}

	taskNumber := project.GetAndIncrementTaskNumber()
	friendlyID, err := NewFriendlyID(project.Prefix, taskNumber)
	if err != nil {
		return nil, Event{}, err
	}

	priority := in.Priority
	if priority == "" {
		priority = PriorityNone
	}
	taskType := in.Type
	if taskType == "" {
		taskType = TypeTask
	}

	task := &TaskItem{
		ID:           uuid.New(),
		FriendlyID:   friendlyID,
		ProjectID:    project.ID,
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Priority:     priority,
		Type:         taskType,
		StatusID:     in.Status.ID,
		StatusName:   in.Status.Name,
		ReporterID:   in.Reporter.ID,
		ReporterName: in.Reporter.DisplayName,
	}
	if in.Assignee != nil {
		id := in.Assignee.ID
		task.AssigneeID = &id
		task.AssigneeName = in.Assignee.DisplayName
	}
	if in.ParentTask != nil {
		id := in.ParentTask.ID
		task.ParentTaskID = &id
	}
	task.SetCreated(in.CreatedBy)

	event := newEvent(EventTaskCreated, TaskCreatedPayload{
		TaskID:     task.ID,
		FriendlyID: friendlyID.String(),
		ProjectID:  project.ID,
		Title:      task.Title,
		Type:       task.Type,
		StatusID:   task.StatusID,
	})
	return task, event, nil
}

// UpdateTitle changes the title, records history and returns a TaskUpdated
// event.
func (t *TaskItem) UpdateTitle(title string, updatedBy uuid.UUID) (Event, error) {
	if strings.TrimSpace(title) == "" {
		return Event{}, apperrors.NewValidationError("task title cannot be empty", nil)
	}
	if len(title) > 500 {
		return Event{}, apperrors.NewValidationError("task title cannot exceed 500 characters", nil)
	}

	oldValue := t.Title
	t.Title = strings.TrimSpace(title)
	t.SetUpdated(updatedBy)
	t.recordChange("title", oldValue, t.Title, updatedBy)

	return t.updatedEvent("title", oldValue, t.Title), nil
}

// UpdateDescription changes the description, records history and returns a
// TaskUpdated event. Length limits live at the request validation layer.
func (t *TaskItem) UpdateDescription(description string, updatedBy uuid.UUID) (Event, error) {
	oldValue := t.Description
	t.Description = strings.TrimSpace(description)
	t.SetUpdated(updatedBy)
	t.recordChange("description", oldValue, t.Description, updatedBy)

	return t.updatedEvent("description", oldValue, t.Description), nil
}

// ChangeStatus moves the task along an edge of the project's workflow
// graph. The project must be the task's attached aggregate with its status
// graph loaded.
func (t *TaskItem) ChangeStatus(project *Project, newStatus *WorkflowStatus, changedBy uuid.UUID, comment string) (Event, error) {
	if newStatus.ProjectID != t.ProjectID {
		return Event{}, apperrors.NewBusinessRule("status does not belong to the same project")
	}

	current := project.StatusByID(t.StatusID)
	if current == nil {
		return Event{}, apperrors.NewBusinessRule("current status is not part of the project workflow")
	}

	transition := current.TransitionTo(newStatus.ID)
	if transition == nil {
		return Event{}, apperrors.NewBusinessRule(
			fmt.Sprintf("transition from '%s' to '%s' is not allowed", current.Name, newStatus.Name))
	}
	if transition.RequiresComment && strings.TrimSpace(comment) == "" {
		return Event{}, apperrors.NewBusinessRule("this transition requires a comment")
	}

	oldStatusID := t.StatusID
	oldStatusName := current.Name

	t.StatusID = newStatus.ID
	t.StatusName = newStatus.Name

	now := time.Now().UTC()
	if newStatus.Category == CategoryInProgress && t.StartedAt == nil {
		t.StartedAt = &now
	}
	if newStatus.Category == CategoryDone && t.CompletedAt == nil {
		t.CompletedAt = &now
	}

	if transition.AutoAssignUserID != nil {
		id := *transition.AutoAssignUserID
		t.AssigneeID = &id
	}

	t.SetUpdated(changedBy)
	t.recordChange("status", oldStatusName, newStatus.Name, changedBy)

	return newEvent(EventTaskStatusChanged, TaskStatusChangedPayload{
		TaskID:        t.ID,
		FriendlyID:    t.FriendlyID.String(),
		ProjectID:     t.ProjectID,
		OldStatusID:   oldStatusID,
		OldStatusName: oldStatusName,
		NewStatusID:   newStatus.ID,
		NewStatusName: newStatus.Name,
	}), nil
}

// ChangePriority changes the priority, records history and returns a
// TaskUpdated event.
func (t *TaskItem) ChangePriority(priority TaskPriority, changedBy uuid.UUID) (Event, error) {
	oldValue := string(t.Priority)
	t.Priority = priority
	t.SetUpdated(changedBy)
	t.recordChange("priority", oldValue, string(priority), changedBy)

	return t.updatedEvent("priority", oldValue, string(priority)), nil
}

// Assign sets or clears the assignee and returns a TaskAssigned event.
func (t *TaskItem) Assign(assignee *User, assignedBy uuid.UUID) (Event, error) {
	oldValue := ""
	if t.AssigneeID != nil {
		oldValue = t.AssigneeID.String()
	}

	payload := TaskAssignedPayload{
		TaskID:     t.ID,
		FriendlyID: t.FriendlyID.String(),
		ProjectID:  t.ProjectID,
	}
	newValue := ""
	if assignee != nil {
		id := assignee.ID
		t.AssigneeID = &id
		t.AssigneeName = assignee.DisplayName
		newValue = id.String()
		payload.AssigneeID = &id
		name := assignee.DisplayName
		payload.AssigneeName = &name
	} else {
		t.AssigneeID = nil
		t.AssigneeName = ""
	}

	t.SetUpdated(assignedBy)
	t.recordChange("assignee", oldValue, newValue, assignedBy)

	return newEvent(EventTaskAssigned, payload), nil
}

// SetDueDate changes the due date. History only, no event.
func (t *TaskItem) SetDueDate(dueDate *time.Time, updatedBy uuid.UUID) error {
	oldValue := renderTime(t.DueDate)
	t.DueDate = dueDate
	t.SetUpdated(updatedBy)
	t.recordChange("due_date", oldValue, renderTime(dueDate), updatedBy)
	return nil
}

// SetStoryPoints changes the story point estimate. History only, no event.
func (t *TaskItem) SetStoryPoints(storyPoints *int, updatedBy uuid.UUID) error {
	if storyPoints != nil && *storyPoints < 0 {
		return apperrors.NewValidationError("story points cannot be negative", nil)
	}

	oldValue := renderInt(t.StoryPoints)
	t.StoryPoints = storyPoints
	t.SetUpdated(updatedBy)
	t.recordChange("story_points", oldValue, renderInt(storyPoints), updatedBy)
	return nil
}

// SetSprint moves the task into (or out of) a sprint of the same project.
// History only, no event.
func (t *TaskItem) SetSprint(sprint *Sprint, updatedBy uuid.UUID) error {
	if sprint != nil && sprint.ProjectID != t.ProjectID {
		return apperrors.NewBusinessRule("sprint does not belong to the same project")
	}

	oldValue := ""
	if t.SprintID != nil {
		oldValue = t.SprintID.String()
	}
	newValue := ""
	if sprint != nil {
		id := sprint.ID
		t.SprintID = &id
		newValue = id.String()
	} else {
		t.SprintID = nil
	}

	t.SetUpdated(updatedBy)
	t.recordChange("sprint", oldValue, newValue, updatedBy)
	return nil
}

// SetCustomFields replaces the custom field values JSON. History only, no
// event.
func (t *TaskItem) SetCustomFields(customFieldsJSON string, updatedBy uuid.UUID) error {
	oldValue := t.CustomFields
	t.CustomFields = customFieldsJSON
	t.SetUpdated(updatedBy)
	t.recordChange("custom_fields", oldValue, customFieldsJSON, updatedBy)
	return nil
}

// AddSubtask attaches a loaded subtask.
func (t *TaskItem) AddSubtask(subtask *TaskItem) {
	t.Subtasks = append(t.Subtasks, subtask)
}

// AddComment attaches a comment.
func (t *TaskItem) AddComment(comment *TaskComment) {
	t.Comments = append(t.Comments, comment)
}

// AddAttachment attaches an attachment record.
func (t *TaskItem) AddAttachment(attachment *TaskAttachment) {
	t.Attachments = append(t.Attachments, attachment)
}

// AddLabel links a label to the task.
func (t *TaskItem) AddLabel(label *TaskLabel) {
	t.Labels = append(t.Labels, label)
}

// RemoveLabel unlinks a label from the task.
func (t *TaskItem) RemoveLabel(labelID uuid.UUID) {
	for i, link := range t.Labels {
		if link.LabelID == labelID {
			t.Labels = append(t.Labels[:i], t.Labels[i+1:]...)
			return
		}
	}
}

func (t *TaskItem) recordChange(fieldName, oldValue, newValue string, changedBy uuid.UUID) {
	entry, err := newTaskHistory(t.ID, fieldName, oldValue, newValue, changedBy)
	if err != nil {
		return
	}
	t.History = append(t.History, entry)
}

func (t *TaskItem) updatedEvent(fieldName, oldValue, newValue string) Event {
	return newEvent(EventTaskUpdated, TaskUpdatedPayload{
		TaskID:     t.ID,
		FriendlyID: t.FriendlyID.String(),
		ProjectID:  t.ProjectID,
		FieldName:  fieldName,
		OldValue:   oldValue,
		NewValue:   newValue,
	})
}

func renderTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func renderInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
