package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-tracker/internal/domain"
)

// WorkspaceRepository encapsulates workspace and membership persistence.
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *domain.Workspace) error
	Update(ctx context.Context, workspace *domain.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	GetBySlug(ctx context.Context, slug domain.Slug) (*domain.Workspace, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error)

	AddMember(ctx context.Context, member *domain.WorkspaceMember) error
	UpdateMember(ctx context.Context, member *domain.WorkspaceMember) error
	GetActiveMember(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error)
	ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.WorkspaceMember, error)
}

type workspaceRepository struct {
	db DB
}

// NewWorkspaceRepository instantiates repository.
func NewWorkspaceRepository(db DB) WorkspaceRepository {
	return &workspaceRepository{db: db}
}

const workspaceColumns = `id, name, slug, description, logo_url, created_at, created_by, updated_at, updated_by`

func (r *workspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	const query = `
        INSERT INTO workspaces (id, name, slug, description, logo_url, created_at, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err := r.db.Exec(ctx, query,
		workspace.ID,
		workspace.Name,
		workspace.Slug.String(),
		workspace.Description,
		workspace.LogoURL,
		workspace.CreatedAt,
		workspace.CreatedBy,
	)
	return err
}

func (r *workspaceRepository) Update(ctx context.Context, workspace *domain.Workspace) error {
	const query = `
        UPDATE workspaces SET name=$1, description=$2, logo_url=$3, updated_at=$4, updated_by=$5
        WHERE id=$6`

	cmd, err := r.db.Exec(ctx, query,
		workspace.Name,
		workspace.Description,
		workspace.LogoURL,
		workspace.UpdatedAt,
		workspace.UpdatedBy,
		workspace.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	workspace, err := r.fetchSingle(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}

	members, err := r.ListMembers(ctx, workspace.ID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		member := members[i]
		workspace.Members = append(workspace.Members, &member)
	}
	return workspace, nil
}

func (r *workspaceRepository) GetBySlug(ctx context.Context, slug domain.Slug) (*domain.Workspace, error) {
	workspace, err := r.fetchSingle(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE slug=$1`, slug.String())
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, workspace.ID)
}

func (r *workspaceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	const query = `
        SELECT w.id, w.name, w.slug, w.description, w.logo_url, w.created_at, w.created_by, w.updated_at, w.updated_by
        FROM workspaces w
        JOIN workspace_members m ON m.workspace_id = w.id
        WHERE m.user_id=$1 AND m.is_deleted=FALSE
        ORDER BY w.created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Workspace
	for rows.Next() {
		workspace, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *workspace)
	}
	return result, rows.Err()
}

func (r *workspaceRepository) AddMember(ctx context.Context, member *domain.WorkspaceMember) error {
	const query = `
        INSERT INTO workspace_members (id, workspace_id, user_id, role, is_deleted, created_at, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err := r.db.Exec(ctx, query,
		member.ID,
		member.WorkspaceID,
		member.UserID,
		member.Role,
		member.IsDeleted,
		member.CreatedAt,
		member.CreatedBy,
	)
	return err
}

func (r *workspaceRepository) UpdateMember(ctx context.Context, member *domain.WorkspaceMember) error {
	const query = `
        UPDATE workspace_members SET role=$1, is_deleted=$2, deleted_at=$3, deleted_by=$4,
            updated_at=$5, updated_by=$6
        WHERE id=$7`

	cmd, err := r.db.Exec(ctx, query,
		member.Role,
		member.IsDeleted,
		member.DeletedAt,
		member.DeletedBy,
		member.UpdatedAt,
		member.UpdatedBy,
		member.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workspaceRepository) GetActiveMember(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error) {
	const query = `
        SELECT id, workspace_id, user_id, role, is_deleted, deleted_at, deleted_by,
               created_at, created_by, updated_at, updated_by
        FROM workspace_members
        WHERE workspace_id=$1 AND user_id=$2 AND is_deleted=FALSE`

	var member domain.WorkspaceMember
	if err := r.db.QueryRow(ctx, query, workspaceID, userID).Scan(
		&member.ID,
		&member.WorkspaceID,
		&member.UserID,
		&member.Role,
		&member.IsDeleted,
		&member.DeletedAt,
		&member.DeletedBy,
		&member.CreatedAt,
		&member.CreatedBy,
		&member.UpdatedAt,
		&member.UpdatedBy,
	); err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *workspaceRepository) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.WorkspaceMember, error) {
	const query = `
        SELECT id, workspace_id, user_id, role, is_deleted, deleted_at, deleted_by,
               created_at, created_by, updated_at, updated_by
        FROM workspace_members WHERE workspace_id=$1
        ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.WorkspaceMember
	for rows.Next() {
		var member domain.WorkspaceMember
		if err := rows.Scan(
			&member.ID,
			&member.WorkspaceID,
			&member.UserID,
			&member.Role,
			&member.IsDeleted,
			&member.DeletedAt,
			&member.DeletedBy,
			&member.CreatedAt,
			&member.CreatedBy,
			&member.UpdatedAt,
			&member.UpdatedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}

func (r *workspaceRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Workspace, error) {
	row := r.db.QueryRow(ctx, query, arg)
	return scanWorkspaceRow(row)
}

func scanWorkspace(rows pgx.Rows) (*domain.Workspace, error) {
	return scanWorkspaceRow(rows)
}

func scanWorkspaceRow(row pgx.Row) (*domain.Workspace, error) {
	var (
		workspace domain.Workspace
		slug      string
	)
	if err := row.Scan(
		&workspace.ID,
		&workspace.Name,
		&slug,
		&workspace.Description,
		&workspace.LogoURL,
		&workspace.CreatedAt,
		&workspace.CreatedBy,
		&workspace.UpdatedAt,
		&workspace.UpdatedBy,
	); err != nil {
		return nil, err
	}

	parsed, err := domain.NewSlug(slug)
	if err != nil {
		return nil, err
	}
	workspace.Slug = parsed
	return &workspace, nil
}
