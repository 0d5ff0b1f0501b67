package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-tracker/internal/domain"
)

// LabelRepository persists workspace labels and task label links.
type LabelRepository interface {
	Create(ctx context.Context, label *domain.Label) error
	Update(ctx context.Context, label *domain.Label) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Label, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Label, error)

	Link(ctx context.Context, link *domain.TaskLabel) error
	Unlink(ctx context.Context, taskID, labelID uuid.UUID) error
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.Label, error)
}

type labelRepository struct {
	db DB
}

// NewLabelRepository instantiates repository.
func NewLabelRepository(db DB) LabelRepository {
	return &labelRepository{db: db}
}

const labelColumns = `id, workspace_id, name, color, created_at, created_by, updated_at, updated_by`

func (r *labelRepository) Create(ctx context.Context, label *domain.Label) error {
	const query = `
        INSERT INTO labels (id, workspace_id, name, color, created_at, created_by)
        VALUES ($1,$2,$3,$4,$5,$6)`

	_, err := r.db.Exec(ctx, query,
		label.ID,
		label.WorkspaceID,
		label.Name,
		label.Color,
		label.CreatedAt,
		label.CreatedBy,
	)
	return err
}

func (r *labelRepository) Update(ctx context.Context, label *domain.Label) error {
	const query = `UPDATE labels SET name=$1, color=$2, updated_at=$3, updated_by=$4 WHERE id=$5`

	cmd, err := r.db.Exec(ctx, query,
		label.Name,
		label.Color,
		label.UpdatedAt,
		label.UpdatedBy,
		label.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *labelRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Label, error) {
	var label domain.Label
	if err := r.db.QueryRow(ctx, `SELECT `+labelColumns+` FROM labels WHERE id=$1`, id).Scan(
		&label.ID,
		&label.WorkspaceID,
		&label.Name,
		&label.Color,
		&label.CreatedAt,
		&label.CreatedBy,
		&label.UpdatedAt,
		&label.UpdatedBy,
	); err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *labelRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Label, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+labelColumns+` FROM labels WHERE workspace_id=$1 ORDER BY name`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLabels(rows)
}

func (r *labelRepository) Link(ctx context.Context, link *domain.TaskLabel) error {
	const query = `
        INSERT INTO task_labels (id, task_id, label_id, created_at, created_by)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (task_id, label_id) DO NOTHING`

	_, err := r.db.Exec(ctx, query,
		link.ID,
		link.TaskID,
		link.LabelID,
		link.CreatedAt,
		link.CreatedBy,
	)
	return err
}

func (r *labelRepository) Unlink(ctx context.Context, taskID, labelID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM task_labels WHERE task_id=$1 AND label_id=$2`, taskID, labelID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *labelRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.Label, error) {
	const query = `
        SELECT l.id, l.workspace_id, l.name, l.color, l.created_at, l.created_by, l.updated_at, l.updated_by
        FROM labels l
        JOIN task_labels tl ON tl.label_id = l.id
        WHERE tl.task_id=$1
        ORDER BY l.name`

	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLabels(rows)
}

func scanLabels(rows pgx.Rows) ([]domain.Label, error) {
	var result []domain.Label
	for rows.Next() {
		var label domain.Label
		if err := rows.Scan(
			&label.ID,
			&label.WorkspaceID,
			&label.Name,
			&label.Color,
			&label.CreatedAt,
			&label.CreatedBy,
			&label.UpdatedAt,
			&label.UpdatedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, label)
	}
	return result, rows.Err()
}
