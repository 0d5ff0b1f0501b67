package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-tracker/internal/domain"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// ProjectRepository encapsulates project persistence including the workflow
// status graph, custom field definitions and sprints.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	GetBySlug(ctx context.Context, workspaceID uuid.UUID, slug domain.Slug) (*domain.Project, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Project, error)

	AddStatus(ctx context.Context, status *domain.WorkflowStatus) error
	UpdateStatus(ctx context.Context, status *domain.WorkflowStatus) error
	AddTransition(ctx context.Context, transition *domain.StatusTransition) error
	AddCustomField(ctx context.Context, field *domain.CustomFieldDefinition) error
}

type projectRepository struct {
	db DB
}

// NewProjectRepository instantiates repository.
func NewProjectRepository(db DB) ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, workspace_id, name, slug, prefix, description, icon_url,
       next_task_number, default_status_id, version, created_at, created_by, updated_at, updated_by`

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (id, workspace_id, name, slug, prefix, description, icon_url,
                              next_task_number, default_status_id, version, created_at, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

	_, err := r.db.Exec(ctx, query,
		project.ID,
		project.WorkspaceID,
		project.Name,
		project.Slug.String(),
		project.Prefix,
		project.Description,
		project.IconURL,
		project.NextTaskNumber,
		project.DefaultStatusID,
		project.Version,
		project.CreatedAt,
		project.CreatedBy,
	)
	return err
}

// Update persists project state guarded by an optimistic version check. A
// stale version means another writer advanced the task number sequence (or
// otherwise modified the project) first.
func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET name=$1, description=$2, icon_url=$3, next_task_number=$4,
            default_status_id=$5, version=version+1, updated_at=$6, updated_by=$7
        WHERE id=$8 AND version=$9`

	cmd, err := r.db.Exec(ctx, query,
		project.Name,
		project.Description,
		project.IconURL,
		project.NextTaskNumber,
		project.DefaultStatusID,
		project.UpdatedAt,
		project.UpdatedBy,
		project.ID,
		project.Version,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewConflict("project was modified concurrently", nil)
	}
	project.Version++
	return nil
}

// GetByID loads the project with its full workflow graph, custom fields and
// sprints attached.
func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project, err := r.fetchSingle(ctx, `SELECT `+projectColumns+` FROM projects WHERE id=$1`, []any{id})
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) GetBySlug(ctx context.Context, workspaceID uuid.UUID, slug domain.Slug) (*domain.Project, error) {
	project, err := r.fetchSingle(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE workspace_id=$1 AND slug=$2`,
		[]any{workspaceID, slug.String()})
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE workspace_id=$1 ORDER BY created_at`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *project)
	}
	return result, rows.Err()
}

func (r *projectRepository) AddStatus(ctx context.Context, status *domain.WorkflowStatus) error {
	const query = `
        INSERT INTO workflow_statuses (id, project_id, name, description, color, category,
                                       sort_order, is_default, created_at, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

	_, err := r.db.Exec(ctx, query,
		status.ID,
		status.ProjectID,
		status.Name,
		status.Description,
		status.Color,
		status.Category,
		status.Order,
		status.IsDefault,
		status.CreatedAt,
		status.CreatedBy,
	)
	return err
}

func (r *projectRepository) UpdateStatus(ctx context.Context, status *domain.WorkflowStatus) error {
	const query = `
        UPDATE workflow_statuses SET name=$1, description=$2, color=$3, category=$4,
            sort_order=$5, is_default=$6, updated_at=$7, updated_by=$8
        WHERE id=$9`

	cmd, err := r.db.Exec(ctx, query,
		status.Name,
		status.Description,
		status.Color,
		status.Category,
		status.Order,
		status.IsDefault,
		status.UpdatedAt,
		status.UpdatedBy,
		status.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) AddTransition(ctx context.Context, transition *domain.StatusTransition) error {
	const query = `
        INSERT INTO status_transitions (id, from_status_id, to_status_id, name,
                                        auto_assign_user_id, requires_comment, created_at, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err := r.db.Exec(ctx, query,
		transition.ID,
		transition.FromStatusID,
		transition.ToStatusID,
		transition.Name,
		transition.AutoAssignUserID,
		transition.RequiresComment,
		transition.CreatedAt,
		transition.CreatedBy,
	)
	return err
}

func (r *projectRepository) AddCustomField(ctx context.Context, field *domain.CustomFieldDefinition) error {
	const query = `
        INSERT INTO custom_field_definitions (id, project_id, name, field_type, is_required,
                                              options, sort_order, created_at, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err := r.db.Exec(ctx, query,
		field.ID,
		field.ProjectID,
		field.Name,
		field.FieldType,
		field.IsRequired,
		field.Options,
		field.Order,
		field.CreatedAt,
		field.CreatedBy,
	)
	return err
}

func (r *projectRepository) loadChildren(ctx context.Context, project *domain.Project) error {
	if err := r.loadStatuses(ctx, project); err != nil {
		return err
	}
	if err := r.loadCustomFields(ctx, project); err != nil {
		return err
	}
	return r.loadSprints(ctx, project)
}

func (r *projectRepository) loadStatuses(ctx context.Context, project *domain.Project) error {
	const query = `
        SELECT id, project_id, name, description, color, category, sort_order, is_default,
               created_at, created_by, updated_at, updated_by
        FROM workflow_statuses WHERE project_id=$1
        ORDER BY sort_order`

	rows, err := r.db.Query(ctx, query, project.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*domain.WorkflowStatus)
	for rows.Next() {
		var status domain.WorkflowStatus
		if err := rows.Scan(
			&status.ID,
			&status.ProjectID,
			&status.Name,
			&status.Description,
			&status.Color,
			&status.Category,
			&status.Order,
			&status.IsDefault,
			&status.CreatedAt,
			&status.CreatedBy,
			&status.UpdatedAt,
			&status.UpdatedBy,
		); err != nil {
			return err
		}
		project.Statuses = append(project.Statuses, &status)
		byID[status.ID] = &status
	}
	if err := rows.Err(); err != nil {
		return err
	}

	return r.loadTransitions(ctx, byID)
}

func (r *projectRepository) loadTransitions(ctx context.Context, statuses map[uuid.UUID]*domain.WorkflowStatus) error {
	if len(statuses) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(statuses))
	for id := range statuses {
		ids = append(ids, id)
	}

	const query = `
        SELECT id, from_status_id, to_status_id, name, auto_assign_user_id, requires_comment,
               created_at, created_by, updated_at, updated_by
        FROM status_transitions WHERE from_status_id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var transition domain.StatusTransition
		if err := rows.Scan(
			&transition.ID,
			&transition.FromStatusID,
			&transition.ToStatusID,
			&transition.Name,
			&transition.AutoAssignUserID,
			&transition.RequiresComment,
			&transition.CreatedAt,
			&transition.CreatedBy,
			&transition.UpdatedAt,
			&transition.UpdatedBy,
		); err != nil {
			return err
		}
		if from, ok := statuses[transition.FromStatusID]; ok {
			from.AddOutgoingTransition(&transition)
		}
	}
	return rows.Err()
}

func (r *projectRepository) loadCustomFields(ctx context.Context, project *domain.Project) error {
	const query = `
        SELECT id, project_id, name, field_type, is_required, options, sort_order,
               created_at, created_by, updated_at, updated_by
        FROM custom_field_definitions WHERE project_id=$1
        ORDER BY sort_order`

	rows, err := r.db.Query(ctx, query, project.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var field domain.CustomFieldDefinition
		if err := rows.Scan(
			&field.ID,
			&field.ProjectID,
			&field.Name,
			&field.FieldType,
			&field.IsRequired,
			&field.Options,
			&field.Order,
			&field.CreatedAt,
			&field.CreatedBy,
			&field.UpdatedAt,
			&field.UpdatedBy,
		); err != nil {
			return err
		}
		project.CustomFields = append(project.CustomFields, &field)
	}
	return rows.Err()
}

func (r *projectRepository) loadSprints(ctx context.Context, project *domain.Project) error {
	const query = `
        SELECT id, project_id, name, goal, start_date, end_date, status,
               created_at, created_by, updated_at, updated_by
        FROM sprints WHERE project_id=$1
        ORDER BY start_date`

	rows, err := r.db.Query(ctx, query, project.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

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
			return err
		}
		project.Sprints = append(project.Sprints, &sprint)
	}
	return rows.Err()
}

func (r *projectRepository) fetchSingle(ctx context.Context, query string, args []any) (*domain.Project, error) {
	return scanProject(r.db.QueryRow(ctx, query, args...))
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		project domain.Project
		slug    string
	)
	if err := row.Scan(
		&project.ID,
		&project.WorkspaceID,
		&project.Name,
		&slug,
		&project.Prefix,
		&project.Description,
		&project.IconURL,
		&project.NextTaskNumber,
		&project.DefaultStatusID,
		&project.Version,
		&project.CreatedAt,
		&project.CreatedBy,
		&project.UpdatedAt,
		&project.UpdatedBy,
	); err != nil {
		return nil, err
	}

	parsed, err := domain.NewSlug(slug)
	if err != nil {
		return nil, err
	}
	project.Slug = parsed
	return &project, nil
}
