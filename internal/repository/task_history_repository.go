package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/task-tracker/internal/domain"
)

// TaskHistoryRepository persists immutable task change records.
type TaskHistoryRepository interface {
	Add(ctx context.Context, entry *domain.TaskHistory) error
	ListByTask(ctx context.Context, taskID uuid.UUID, limit, offset int) ([]domain.TaskHistory, error)
}

type taskHistoryRepository struct {
	db DB
}

// NewTaskHistoryRepository instantiates repository.
func NewTaskHistoryRepository(db DB) TaskHistoryRepository {
	return &taskHistoryRepository{db: db}
}

func (r *taskHistoryRepository) Add(ctx context.Context, entry *domain.TaskHistory) error {
	const query = `
        INSERT INTO task_history (id, task_id, field_name, old_value, new_value, created_at, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.TaskID,
		entry.FieldName,
		entry.OldValue,
		entry.NewValue,
		entry.CreatedAt,
		entry.CreatedBy,
	)
	return err
}

func (r *taskHistoryRepository) ListByTask(ctx context.Context, taskID uuid.UUID, limit, offset int) ([]domain.TaskHistory, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
        SELECT id, task_id, field_name, old_value, new_value, created_at, created_by
        FROM task_history WHERE task_id=$1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, taskID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TaskHistory
	for rows.Next() {
		var entry domain.TaskHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&entry.FieldName,
			&entry.OldValue,
			&entry.NewValue,
			&entry.CreatedAt,
			&entry.CreatedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
