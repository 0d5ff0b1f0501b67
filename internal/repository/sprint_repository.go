package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-tracker/internal/domain"
)

// SprintRepository encapsulates sprint persistence.
type SprintRepository interface {
	Create(ctx context.Context, sprint *domain.Sprint) error
	Update(ctx context.Context, sprint *domain.Sprint) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sprint, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Sprint, error)
}

type sprintRepository struct {
	db DB
}

// NewSprintRepository instantiates repository.
func NewSprintRepository(db DB) SprintRepository {
	return &sprintRepository{db: db}
}

const sprintColumns = `id, project_id, name, goal, start_date, end_date, status,
       created_at, created_by, updated_at, updated_by`

func (r *sprintRepository) Create(ctx context.Context, sprint *domain.Sprint) error {
	const query = `
        INSERT INTO sprints (id, project_id, name, goal, start_date, end_date, status, created_at, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err := r.db.Exec(ctx, query,
		sprint.ID,
		sprint.ProjectID,
		sprint.Name,
		sprint.Goal,
		sprint.StartDate,
		sprint.EndDate,
		sprint.Status,
		sprint.CreatedAt,
		sprint.CreatedBy,
	)
	return err
}

func (r *sprintRepository) Update(ctx context.Context, sprint *domain.Sprint) error {
	const query = `
        UPDATE sprints SET name=$1, goal=$2, start_date=$3, end_date=$4, status=$5,
            updated_at=$6, updated_by=$7
        WHERE id=$8`

	cmd, err := r.db.Exec(ctx, query,
		sprint.Name,
		sprint.Goal,
		sprint.StartDate,
		sprint.EndDate,
		sprint.Status,
		sprint.UpdatedAt,
		sprint.UpdatedBy,
		sprint.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sprintRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sprint, error) {
	var sprint domain.Sprint
	if err := r.db.QueryRow(ctx, `SELECT `+sprintColumns+` FROM sprints WHERE id=$1`, id).Scan(
		&sprint.ID,
		&sprint.ProjectID,
		&sprint.Name,
		&sprint.Goal,
		&sprint.StartDate,
		&sprint.EndDate,
		&sprint.Status,
		&sprint.CreatedAt,
		&sprint.CreatedBy,
		&sprint.UpdatedAt,
		&sprint.UpdatedBy,
	); err != nil {
		return nil, err
	}
	return &sprint, nil
}

func (r *sprintRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Sprint, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+sprintColumns+` FROM sprints WHERE project_id=$1 ORDER BY start_date`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Sprint
	for rows.Next() {
		var sprint domain.Sprint
		if err := rows.Scan(
			&sprint.ID,
			&sprint.ProjectID,
			&sprint.Name,
			&sprint.Goal,
			&sprint.StartDate,
			&sprint.EndDate,
			&sprint.Status,
			&sprint.CreatedAt,
			&sprint.CreatedBy,
			&sprint.UpdatedAt,
			&sprint.UpdatedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, sprint)
	}
	return result, rows.Err()
}
