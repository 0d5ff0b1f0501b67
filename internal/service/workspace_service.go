package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/repository"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// WorkspaceService coordinates workspace, membership and label workflows.
type WorkspaceService struct {
	workspaces repository.WorkspaceRepository
	users      repository.UserRepository
	labels     repository.LabelRepository
	uow        *repository.UnitOfWork
}

// WorkspaceDependencies bundles repositories for the workspace service.
type WorkspaceDependencies struct {
	WorkspaceRepo repository.WorkspaceRepository
	UserRepo      repository.UserRepository
	LabelRepo     repository.LabelRepository
	UnitOfWork    *repository.UnitOfWork
}

// NewWorkspaceService constructs the service.
func NewWorkspaceService(deps WorkspaceDependencies) *WorkspaceService {
	return &WorkspaceService{
		workspaces: deps.WorkspaceRepo,
		users:      deps.UserRepo,
		labels:     deps.LabelRepo,
		uow:        deps.UnitOfWork,
	}
}

// CreateWorkspace creates a workspace with the creator as its owner.
func (s *WorkspaceService) CreateWorkspace(ctx context.Context, owner *domain.User, name, slug string) (*domain.Workspace, error) {
	parsedSlug, err := domain.NewSlug(slug)
	if err != nil {
		return nil, err
	}

	if _, err := s.workspaces.GetBySlug(ctx, parsedSlug); err == nil {
		return nil, apperrors.NewConflict("workspace slug already in use", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	workspace, created, err := domain.NewWorkspace(name, parsedSlug, owner.ID)
	if err != nil {
		return nil, err
	}
	member, err := workspace.AddMember(owner, domain.RoleOwner, owner.ID)
	if err != nil {
		return nil, err
	}

	if err := s.uow.Within(ctx, func(tx *repository.Tx) error {
		if err := tx.Workspaces.Create(ctx, workspace); err != nil {
			return err
		}
		if err := tx.Workspaces.AddMember(ctx, member); err != nil {
			return err
		}
		tx.Record(created)
		return nil
	}); err != nil {
		return nil, err
	}
	return workspace, nil
}

// UpdateWorkspace changes workspace attributes.
func (s *WorkspaceService) UpdateWorkspace(ctx context.Context, workspaceID uuid.UUID, name, description, logoURL string, updatedBy uuid.UUID) (*domain.Workspace, error) {
	workspace, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := workspace.Update(name, description, logoURL, updatedBy); err != nil {
		return nil, err
	}
	if err := s.workspaces.Update(ctx, workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

// GetWorkspace loads a workspace with its members.
func (s *WorkspaceService) GetWorkspace(ctx context.Context, workspaceID uuid.UUID) (*domain.Workspace, error) {
	return s.workspaces.GetByID(ctx, workspaceID)
}

// GetWorkspaceBySlug loads a workspace by its slug.
func (s *WorkspaceService) GetWorkspaceBySlug(ctx context.Context, slug string) (*domain.Workspace, error) {
	parsed, err := domain.NewSlug(slug)
	if err != nil {
		return nil, err
	}
	return s.workspaces.GetBySlug(ctx, parsed)
}

// ListWorkspaces returns the workspaces the user actively belongs to.
func (s *WorkspaceService) ListWorkspaces(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	return s.workspaces.ListByUser(ctx, userID)
}

// AddMember adds a user to the workspace.
func (s *WorkspaceService) AddMember(ctx context.Context, workspaceID, userID uuid.UUID, role domain.WorkspaceRole, addedBy uuid.UUID) (*domain.WorkspaceMember, error) {
	workspace, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	member, err := workspace.AddMember(user, role, addedBy)
	if err != nil {
		return nil, err
	}
	if err := s.workspaces.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember soft-deletes a membership.
func (s *WorkspaceService) RemoveMember(ctx context.Context, workspaceID, userID, removedBy uuid.UUID) error {
	workspace, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if err := workspace.RemoveMember(userID, removedBy); err != nil {
		return err
	}

	for _, member := range workspace.Members {
		if member.UserID == userID && member.IsDeleted {
			return s.workspaces.UpdateMember(ctx, member)
		}
	}
	return apperrors.NewNotFound("workspace member", nil)
}

// ChangeMemberRole updates a member's role.
func (s *WorkspaceService) ChangeMemberRole(ctx context.Context, workspaceID, userID uuid.UUID, role domain.WorkspaceRole, changedBy uuid.UUID) (*domain.WorkspaceMember, error) {
	member, err := s.workspaces.GetActiveMember(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("workspace member", nil)
		}
		return nil, err
	}
	if err := member.ChangeRole(role, changedBy); err != nil {
		return nil, err
	}
	if err := s.workspaces.UpdateMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// MemberRole resolves the user's active role, satisfying the auth
// middleware's membership resolver.
func (s *WorkspaceService) MemberRole(ctx context.Context, workspaceID, userID uuid.UUID) (domain.WorkspaceRole, error) {
	member, err := s.workspaces.GetActiveMember(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewForbidden("not a member of this workspace")
		}
		return "", err
	}
	return member.Role, nil
}

// CreateLabel creates a workspace label.
func (s *WorkspaceService) CreateLabel(ctx context.Context, workspaceID uuid.UUID, name, color string, createdBy uuid.UUID) (*domain.Label, error) {
	workspace, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	label, err := domain.NewLabel(workspace, name, color, createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.labels.Create(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

// UpdateLabel renames or recolors a label.
func (s *WorkspaceService) UpdateLabel(ctx context.Context, labelID uuid.UUID, name, color string, updatedBy uuid.UUID) (*domain.Label, error) {
	label, err := s.labels.GetByID(ctx, labelID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("label", nil)
		}
		return nil, err
	}
	if err := label.Update(name, color, updatedBy); err != nil {
		return nil, err
	}
	if err := s.labels.Update(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

// ListLabels returns the workspace's labels.
func (s *WorkspaceService) ListLabels(ctx context.Context, workspaceID uuid.UUID) ([]domain.Label, error) {
	return s.labels.ListByWorkspace(ctx, workspaceID)
}
