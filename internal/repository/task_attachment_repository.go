package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-tracker/internal/domain"
)

// TaskAttachmentRepository persists attachment metadata.
type TaskAttachmentRepository interface {
	Add(ctx context.Context, attachment *domain.TaskAttachment) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskAttachment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.TaskAttachment, error)
}

type taskAttachmentRepository struct {
	db DB
}

// NewTaskAttachmentRepository instantiates repository.
func NewTaskAttachmentRepository(db DB) TaskAttachmentRepository {
	return &taskAttachmentRepository{db: db}
}

const attachmentColumns = `id, task_id, file_name, content_type, size_bytes, storage_key,
       created_at, created_by, updated_at, updated_by`

func (r *taskAttachmentRepository) Add(ctx context.Context, attachment *domain.TaskAttachment) error {
	const query = `
        INSERT INTO task_attachments (id, task_id, file_name, content_type, size_bytes, storage_key,
                                      created_at, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err := r.db.Exec(ctx, query,
		attachment.ID,
		attachment.TaskID,
		attachment.FileName,
		attachment.ContentType,
		attachment.SizeBytes,
		attachment.StorageKey,
		attachment.CreatedAt,
		attachment.CreatedBy,
	)
	return err
}

func (r *taskAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM task_attachments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskAttachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskAttachment, error) {
	var attachment domain.TaskAttachment
	if err := r.db.QueryRow(ctx, `SELECT `+attachmentColumns+` FROM task_attachments WHERE id=$1`, id).Scan(
		&attachment.ID,
		&attachment.TaskID,
		&attachment.FileName,
		&attachment.ContentType,
		&attachment.SizeBytes,
		&attachment.StorageKey,
		&attachment.CreatedAt,
		&attachment.CreatedBy,
		&attachment.UpdatedAt,
		&attachment.UpdatedBy,
	); err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *taskAttachmentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.TaskAttachment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+attachmentColumns+` FROM task_attachments WHERE task_id=$1 ORDER BY created_at`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TaskAttachment
	for rows.Next() {
		var attachment domain.TaskAttachment
		if err := rows.Scan(
			&attachment.ID,
			&attachment.TaskID,
			&attachment.FileName,
			&attachment.ContentType,
			&attachment.SizeBytes,
			&attachment.StorageKey,
			&attachment.CreatedAt,
			&attachment.CreatedBy,
			&attachment.UpdatedAt,
			&attachment.UpdatedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, attachment)
	}
	return result, rows.Err()
}
