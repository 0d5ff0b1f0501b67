package domain

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// MaxAttachmentSize caps uploads at 50 MiB.
const MaxAttachmentSize = 50 << 20

// TaskAttachment is a file attached to a task. The blob itself lives in
// object storage, the aggregate keeps only the metadata.
type TaskAttachment struct {
	ID          uuid.UUID
	TaskID      uuid.UUID
	FileName    string
	ContentType string
	SizeBytes   int64
	StorageKey  string
	Audit
}

// NewTaskAttachment records an uploaded file against a task.
func NewTaskAttachment(task *TaskItem, fileName, contentType string, sizeBytes int64, storageKey string, uploadedBy uuid.UUID) (*TaskAttachment, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, apperrors.NewValidationError("attachment file name cannot be empty", nil)
	}
	if sizeBytes <= 0 {
		return nil, apperrors.NewValidationError("attachment size must be positive", nil)
	}
	if sizeBytes > MaxAttachmentSize {
		return nil, apperrors.NewValidationError("attachment exceeds the maximum allowed size", nil)
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, apperrors.NewValidationError("attachment storage key cannot be empty", nil)
	}

	attachment := &TaskAttachment{
		ID:          uuid.New(),
		TaskID:      task.ID,
		FileName:    strings.TrimSpace(fileName),
		ContentType: contentType,
		SizeBytes:   sizeBytes,
		StorageKey:  storageKey,
	}
	attachment.SetCreated(uploadedBy)
	return attachment, nil
}
