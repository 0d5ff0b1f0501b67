package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-tracker/internal/domain"
)

// TaskCommentRepository persists task comments.
type TaskCommentRepository interface {
	Add(ctx context.Context, comment *domain.TaskComment) error
	Update(ctx context.Context, comment *domain.TaskComment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskComment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID, limit, offset int) ([]domain.TaskComment, error)
}

type taskCommentRepository struct {
	db DB
}

// NewTaskCommentRepository instantiates repository.
func NewTaskCommentRepository(db DB) TaskCommentRepository {
	return &taskCommentRepository{db: db}
}

const commentColumns = `id, task_id, author_id, author_name, content, parent_comment_id, is_edited,
       created_at, created_by, updated_at, updated_by`

func (r *taskCommentRepository) Add(ctx context.Context, comment *domain.TaskComment) error {
	const query = `
        INSERT INTO task_comments (id, task_id, author_id, author_name, content, parent_comment_id,
                                   is_edited, created_at, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.TaskID,
		comment.AuthorID,
		comment.AuthorName,
		comment.Content,
		comment.ParentCommentID,
		comment.IsEdited,
		comment.CreatedAt,
		comment.CreatedBy,
	)
	return err
}

func (r *taskCommentRepository) Update(ctx context.Context, comment *domain.TaskComment) error {
	const query = `
        UPDATE task_comments SET content=$1, is_edited=$2, updated_at=$3, updated_by=$4
        WHERE id=$5`

	cmd, err := r.db.Exec(ctx, query,
		comment.Content,
		comment.IsEdited,
		comment.UpdatedAt,
		comment.UpdatedBy,
		comment.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskComment, error) {
	var comment domain.TaskComment
	if err := r.db.QueryRow(ctx, `SELECT `+commentColumns+` FROM task_comments WHERE id=$1`, id).Scan(
		&comment.ID,
		&comment.TaskID,
		&comment.AuthorID,
		&comment.AuthorName,
		&comment.Content,
		&comment.ParentCommentID,
		&comment.IsEdited,
		&comment.CreatedAt,
		&comment.CreatedBy,
		&comment.UpdatedAt,
		&comment.UpdatedBy,
	); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *taskCommentRepository) ListByTask(ctx context.Context, taskID uuid.UUID, limit, offset int) ([]domain.TaskComment, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+commentColumns+` FROM task_comments WHERE task_id=$1 ORDER BY created_at LIMIT $2 OFFSET $3`,
		taskID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TaskComment
	for rows.Next() {
		var comment domain.TaskComment
		if err := rows.Scan(
			&comment.ID,
			&comment.TaskID,
			&comment.AuthorID,
			&comment.AuthorName,
			&comment.Content,
			&comment.ParentCommentID,
			&comment.IsEdited,
			&comment.CreatedAt,
			&comment.CreatedBy,
			&comment.UpdatedAt,
			&comment.UpdatedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
