package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-tracker/internal/domain"
)

// TaskFilter captures task search parameters.
type TaskFilter struct {
	ProjectID    *uuid.UUID
	SprintID     *uuid.UUID
	AssigneeID   *uuid.UUID
	ReporterID   *uuid.UUID
	ParentTaskID *uuid.UUID
	StatusIDs    []uuid.UUID
	Priorities   []domain.TaskPriority
	Types        []domain.TaskType
	SearchTerm   *string
	DueFrom      *time.Time
	DueTo        *time.Time
	Limit        int
	Offset       int
}

// TaskRepository encapsulates task persistence.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.TaskItem) error
	Update(ctx context.Context, task *domain.TaskItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskItem, error)
	GetByFriendlyID(ctx context.Context, projectID uuid.UUID, sequenceNumber int) (*domain.TaskItem, error)
	ListWithFilter(ctx context.Context, filter TaskFilter) ([]domain.TaskItem, error)
	ListSubtasks(ctx context.Context, parentTaskID uuid.UUID) ([]domain.TaskItem, error)
}

type taskRepository struct {
	db DB
}

// NewTaskRepository instantiates repository.
func NewTaskRepository(db DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, friendly_prefix, sequence_number, project_id, title, description,
       priority, type, story_points, due_date, started_at, completed_at,
       status_id, status_name, assignee_id, assignee_name, reporter_id, reporter_name,
       parent_task_id, sprint_id, custom_fields,
       created_at, created_by, updated_at, updated_by`

func (r *taskRepository) Create(ctx context.Context, task *domain.TaskItem) error {
	const query = `
        INSERT INTO tasks (id, friendly_prefix, sequence_number, project_id, title, description,
                           priority, type, story_points, due_date, started_at, completed_at,
                           status_id, status_name, assignee_id, assignee_name, reporter_id, reporter_name,
                           parent_task_id, sprint_id, custom_fields, created_at, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)`

	_, err := r.db.Exec(ctx, query,
		task.ID,
		task.FriendlyID.ProjectPrefix,
		task.FriendlyID.SequenceNumber,
		task.ProjectID,
		task.Title,
		task.Description,
		task.Priority,
		task.Type,
		task.StoryPoints,
		task.DueDate,
		task.StartedAt,
		task.CompletedAt,
		task.StatusID,
		task.StatusName,
		task.AssigneeID,
		task.AssigneeName,
		task.ReporterID,
		task.ReporterName,
		task.ParentTaskID,
		task.SprintID,
		task.CustomFields,
		task.CreatedAt,
		task.CreatedBy,
	)
	return err
}

func (r *taskRepository) Update(ctx context.Context, task *domain.TaskItem) error {
	const query = `
        UPDATE tasks SET title=$1, description=$2, priority=$3, type=$4, story_points=$5,
            due_date=$6, started_at=$7, completed_at=$8, status_id=$9, status_name=$10,
            assignee_id=$11, assignee_name=$12, sprint_id=$13, custom_fields=$14,
            updated_at=$15, updated_by=$16
        WHERE id=$17`

	cmd, err := r.db.Exec(ctx, query,
		task.Title,
		task.Description,
		task.Priority,
		task.Type,
		task.StoryPoints,
		task.DueDate,
		task.StartedAt,
		task.CompletedAt,
		task.StatusID,
		task.StatusName,
		task.AssigneeID,
		task.AssigneeName,
		task.SprintID,
		task.CustomFields,
		task.UpdatedAt,
		task.UpdatedBy,
		task.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskItem, error) {
	return scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id=$1`, id))
}

func (r *taskRepository) GetByFriendlyID(ctx context.Context, projectID uuid.UUID, sequenceNumber int) (*domain.TaskItem, error) {
	return scanTask(r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id=$1 AND sequence_number=$2`,
		projectID, sequenceNumber))
}

func (r *taskRepository) ListSubtasks(ctx context.Context, parentTaskID uuid.UUID) ([]domain.TaskItem, error) {
	filter := TaskFilter{ParentTaskID: &parentTaskID, Limit: 500}
	return r.ListWithFilter(ctx, filter)
}

func (r *taskRepository) ListWithFilter(ctx context.Context, filter TaskFilter) ([]domain.TaskItem, error) {
	base := `SELECT ` + taskColumns + ` FROM tasks`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ProjectID != nil {
		args = append(args, *filter.ProjectID)
		clauses = append(clauses, fmt.Sprintf("project_id=$%d", len(args)))
	}
	if filter.SprintID != nil {
		args = append(args, *filter.SprintID)
		clauses = append(clauses, fmt.Sprintf("sprint_id=$%d", len(args)))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		clauses = append(clauses, fmt.Sprintf("assignee_id=$%d", len(args)))
	}
	if filter.ReporterID != nil {
		args = append(args, *filter.ReporterID)
		clauses = append(clauses, fmt.Sprintf("reporter_id=$%d", len(args)))
	}
	if filter.ParentTaskID != nil {
		args = append(args, *filter.ParentTaskID)
		clauses = append(clauses, fmt.Sprintf("parent_task_id=$%d", len(args)))
	}
	if len(filter.StatusIDs) > 0 {
		placeholders := make([]string, len(filter.StatusIDs))
		for i, id := range filter.StatusIDs {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status_id IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, priority := range filter.Priorities {
			args = append(args, priority)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, taskType := range filter.Types {
			args = append(args, taskType)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("type IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.DueFrom != nil {
		args = append(args, *filter.DueFrom)
		clauses = append(clauses, fmt.Sprintf("due_date >= $%d", len(args)))
	}
	if filter.DueTo != nil {
		args = append(args, *filter.DueTo)
		clauses = append(clauses, fmt.Sprintf("due_date <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY sequence_number DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

func scanTasks(rows pgx.Rows) ([]domain.TaskItem, error) {
	var result []domain.TaskItem
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *task)
	}
	return result, rows.Err()
}

func scanTask(row pgx.Row) (*domain.TaskItem, error) {
	var (
		task   domain.TaskItem
		prefix string
		seq    int
	)
	if err := row.Scan(
		&task.ID,
		&prefix,
		&seq,
		&task.ProjectID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&task.Type,
		&task.StoryPoints,
		&task.DueDate,
		&task.StartedAt,
		&task.CompletedAt,
		&task.StatusID,
		&task.StatusName,
		&task.AssigneeID,
		&task.AssigneeName,
		&task.ReporterID,
		&task.ReporterName,
		&task.ParentTaskID,
		&task.SprintID,
		&task.CustomFields,
		&task.CreatedAt,
		&task.CreatedBy,
		&task.UpdatedAt,
		&task.UpdatedBy,
	); err != nil {
		return nil, err
	}

	friendlyID, err := domain.NewFriendlyID(prefix, seq)
	if err != nil {
		return nil, err
	}
	task.FriendlyID = friendlyID
	return &task, nil
}
