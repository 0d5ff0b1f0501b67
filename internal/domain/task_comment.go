package domain

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// TaskComment is a user comment on a task. Comments support one level of
// threading via ParentCommentID.
type TaskComment struct {
	ID              uuid.UUID
	TaskID          uuid.UUID
	AuthorID        uuid.UUID
	AuthorName      string
	Content         string
	ParentCommentID *uuid.UUID
	IsEdited        bool
	Audit
}

// NewTaskComment creates a comment on the given task.
func NewTaskComment(task *TaskItem, author *User, content string, parentCommentID *uuid.UUID) (*TaskComment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("comment content cannot be empty", nil)
	}
	if len(content) > 10000 {
		return nil, apperrors.NewValidationError("comment content cannot exceed 10000 characters", nil)
	}

	comment := &TaskComment{
		ID:              uuid.New(),
		TaskID:          task.ID,
		AuthorID:        author.ID,
		AuthorName:      author.DisplayName,
		Content:         strings.TrimSpace(content),
		ParentCommentID: parentCommentID,
	}
	comment.SetCreated(author.ID)
	return comment, nil
}

// Edit replaces the comment body. Only the author may edit.
func (c *TaskComment) Edit(content string, editedBy uuid.UUID) error {
	if editedBy != c.AuthorID {
		return apperrors.NewBusinessRule("only the author can edit a comment")
	}
	if strings.TrimSpace(content) == "" {
		return apperrors.NewValidationError("comment content cannot be empty", nil)
	}
	if len(content) > 10000 {
		return apperrors.NewValidationError("comment content cannot exceed 10000 characters", nil)
	}

	c.Content = strings.TrimSpace(content)
	c.IsEdited = true
	c.SetUpdated(editedBy)
	return nil
}
