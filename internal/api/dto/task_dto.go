package dto

import (
	"time"

	"github.com/spec-kit/task-tracker/internal/domain"
)

// CreateTaskRequest payload.
type CreateTaskRequest struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Type         domain.TaskType     `json:"type"`
	Priority     domain.TaskPriority `json:"priority"`
	StatusID     *string             `json:"status_id"`
	AssigneeID   *string             `json:"assignee_id"`
	ParentTaskID *string             `json:"parent_task_id"`
}

// ChangeStatusRequest payload.
type ChangeStatusRequest struct {
	StatusID string `json:"status_id"`
	Comment  string `json:"comment"`
}

// UpdateTitleRequest payload.
type UpdateTitleRequest struct {
	Title string `json:"title"`
}

// UpdateDescriptionRequest payload.
type UpdateDescriptionRequest struct {
	Description string `json:"description"`
}

// ChangePriorityRequest payload.
type ChangePriorityRequest struct {
	Priority domain.TaskPriority `json:"priority"`
}

// AssignRequest payload. A null assignee unassigns the task.
type AssignRequest struct {
	AssigneeID *string `json:"assignee_id"`
}

// DueDateRequest payload. A null due date clears it.
type DueDateRequest struct {
	DueDate *time.Time `json:"due_date"`
}

// StoryPointsRequest payload.
type StoryPointsRequest struct {
	StoryPoints *int `json:"story_points"`
}

// SprintAssignRequest payload. A null sprint removes the task from its
// sprint.
type SprintAssignRequest struct {
	SprintID *string `json:"sprint_id"`
}

// CustomFieldsRequest payload.
type CustomFieldsRequest struct {
	Values string `json:"values"`
}

// CommentRequest payload.
type CommentRequest struct {
	Content         string  `json:"content"`
	ParentCommentID *string `json:"parent_comment_id"`
}

// TaskAttachmentRequest describes attachment metadata input.
type TaskAttachmentRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	StorageKey  string `json:"storage_key"`
}

// TaskLabelRequest payload.
type TaskLabelRequest struct {
	LabelID string `json:"label_id"`
}

// TaskSummary response.
type TaskSummary struct {
	ID          string              `json:"id"`
	FriendlyID  string              `json:"friendly_id"`
	ProjectID   string              `json:"project_id"`
	Title       string              `json:"title"`
	Type        domain.TaskType     `json:"type"`
	Priority    domain.TaskPriority `json:"priority"`
	StatusID    string              `json:"status_id"`
	StatusName  string              `json:"status_name"`
	AssigneeID  *string             `json:"assignee_id,omitempty"`
	StoryPoints *int                `json:"story_points,omitempty"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// TaskDetailResponse provides full task info.
type TaskDetailResponse struct {
	TaskSummary
	Description  string               `json:"description,omitempty"`
	ReporterID   string               `json:"reporter_id"`
	ReporterName string               `json:"reporter_name,omitempty"`
	AssigneeName string               `json:"assignee_name,omitempty"`
	ParentTaskID *string              `json:"parent_task_id,omitempty"`
	SprintID     *string              `json:"sprint_id,omitempty"`
	CustomFields string               `json:"custom_fields,omitempty"`
	StartedAt    *time.Time           `json:"started_at,omitempty"`
	CompletedAt  *time.Time           `json:"completed_at,omitempty"`
	Subtasks     []TaskSummary        `json:"subtasks,omitempty"`
	Comments     []CommentResponse    `json:"comments,omitempty"`
	Attachments  []AttachmentResponse `json:"attachments,omitempty"`
	History      []HistoryResponse    `json:"history,omitempty"`
}

// CommentResponse represents a task comment.
type CommentResponse struct {
	ID              string    `json:"id"`
	AuthorID        string    `json:"author_id"`
	AuthorName      string    `json:"author_name"`
	Content         string    `json:"content"`
	ParentCommentID *string   `json:"parent_comment_id,omitempty"`
	IsEdited        bool      `json:"is_edited"`
	CreatedAt       time.Time `json:"created_at"`
}

// AttachmentResponse represents attachment metadata.
type AttachmentResponse struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryResponse represents one task change record.
type HistoryResponse struct {
	ID        string    `json:"id"`
	FieldName string    `json:"field_name"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

// NewTaskSummary maps a task to its list representation.
func NewTaskSummary(task *domain.TaskItem) TaskSummary {
	summary := TaskSummary{
		ID:          task.ID.String(),
		FriendlyID:  task.FriendlyID.String(),
		ProjectID:   task.ProjectID.String(),
		Title:       task.Title,
		Type:        task.Type,
		Priority:    task.Priority,
		StatusID:    task.StatusID.String(),
		StatusName:  task.StatusName,
		StoryPoints: task.StoryPoints,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
	}
	if task.AssigneeID != nil {
		id := task.AssigneeID.String()
		summary.AssigneeID = &id
	}
	return summary
}

// NewTaskDetail maps a task with its children.
func NewTaskDetail(task *domain.TaskItem) TaskDetailResponse {
	resp := TaskDetailResponse{
		TaskSummary:  NewTaskSummary(task),
		Description:  task.Description,
		ReporterID:   task.ReporterID.String(),
		ReporterName: task.ReporterName,
		AssigneeName: task.AssigneeName,
		CustomFields: task.CustomFields,
		StartedAt:    task.StartedAt,
		CompletedAt:  task.CompletedAt,
	}
	if task.ParentTaskID != nil {
		id := task.ParentTaskID.String()
		resp.ParentTaskID = &id
	}
	if task.SprintID != nil {
		id := task.SprintID.String()
		resp.SprintID = &id
	}
	for _, subtask := range task.Subtasks {
		resp.Subtasks = append(resp.Subtasks, NewTaskSummary(subtask))
	}
	for _, comment := range task.Comments {
		resp.Comments = append(resp.Comments, NewCommentResponse(comment))
	}
	for _, attachment := range task.Attachments {
		resp.Attachments = append(resp.Attachments, NewAttachmentResponse(attachment))
	}
	for _, entry := range task.History {
		resp.History = append(resp.History, NewHistoryResponse(entry))
	}
	return resp
}

// NewCommentResponse maps a comment.
func NewCommentResponse(comment *domain.TaskComment) CommentResponse {
	resp := CommentResponse{
		ID:         comment.ID.String(),
		AuthorID:   comment.AuthorID.String(),
		AuthorName: comment.AuthorName,
		Content:    comment.Content,
		IsEdited:   comment.IsEdited,
		CreatedAt:  comment.CreatedAt,
	}
	if comment.ParentCommentID != nil {
		id := comment.ParentCommentID.String()
		resp.ParentCommentID = &id
	}
	return resp
}

// NewAttachmentResponse maps attachment metadata.
func NewAttachmentResponse(attachment *domain.TaskAttachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          attachment.ID.String(),
		FileName:    attachment.FileName,
		ContentType: attachment.ContentType,
		SizeBytes:   attachment.SizeBytes,
		CreatedAt:   attachment.CreatedAt,
	}
}

// NewHistoryResponse maps a history entry.
func NewHistoryResponse(entry *domain.TaskHistory) HistoryResponse {
	return HistoryResponse{
		ID:        entry.ID.String(),
		FieldName: entry.FieldName,
		OldValue:  entry.OldValue,
		NewValue:  entry.NewValue,
		ChangedBy: entry.CreatedBy.String(),
		ChangedAt: entry.CreatedAt,
	}
}
