package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/persistence"
	"github.com/spec-kit/task-tracker/internal/repository"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// ProjectService coordinates project configuration: the workflow status
// graph, custom fields and sprints.
type ProjectService struct {
	projects   repository.ProjectRepository
	workspaces repository.WorkspaceRepository
	sprints    repository.SprintRepository
	cache      *persistence.Cache
	uow        *repository.UnitOfWork
}

// ProjectDependencies bundles repositories for the project service.
type ProjectDependencies struct {
	ProjectRepo   repository.ProjectRepository
	WorkspaceRepo repository.WorkspaceRepository
	SprintRepo    repository.SprintRepository
	Cache         *persistence.Cache
	UnitOfWork    *repository.UnitOfWork
}

// StatusInput describes a workflow status to create.
type StatusInput struct {
	Name        string
	Description string
	Color       string
	Category    domain.StatusCategory
	Order       int
	IsDefault   bool
}

// TransitionInput describes a workflow edge to create.
type TransitionInput struct {
	FromStatusID     uuid.UUID
	ToStatusID       uuid.UUID
	Name             string
	AutoAssignUserID *uuid.UUID
	RequiresComment  bool
}

// NewProjectService constructs the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	return &ProjectService{
		projects:   deps.ProjectRepo,
		workspaces: deps.WorkspaceRepo,
		sprints:    deps.SprintRepo,
		cache:      deps.Cache,
		uow:        deps.UnitOfWork,
	}
}

// CreateProject creates a project inside a workspace.
func (s *ProjectService) CreateProject(ctx context.Context, workspaceID uuid.UUID, name, slug, prefix string, createdBy uuid.UUID) (*domain.Project, error) {
	workspace, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("workspace", nil)
		}
		return nil, err
	}

	parsedSlug, err := domain.NewSlug(slug)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.GetBySlug(ctx, workspaceID, parsedSlug); err == nil {
		return nil, apperrors.NewConflict("project slug already in use in this workspace", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	project, created, err := domain.NewProject(workspace, name, parsedSlug, prefix, createdBy)
	if err != nil {
		return nil, err
	}

	if err := s.uow.Within(ctx, func(tx *repository.Tx) error {
		if err := tx.Projects.Create(ctx, project); err != nil {
			return err
		}
		tx.Record(created)
		return nil
	}); err != nil {
		return nil, err
	}
	return project, nil
}

// UpdateProject changes mutable project attributes.
func (s *ProjectService) UpdateProject(ctx context.Context, projectID uuid.UUID, name, description, iconURL string, updatedBy uuid.UUID) (*domain.Project, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := project.Update(name, description, iconURL, updatedBy); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	s.invalidateProject(ctx, projectID)
	return project, nil
}

// GetProject loads a project with its workflow graph, fields and sprints.
func (s *ProjectService) GetProject(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	return s.getProject(ctx, projectID)
}

// ListProjects returns the workspace's projects.
func (s *ProjectService) ListProjects(ctx context.Context, workspaceID uuid.UUID) ([]domain.Project, error) {
	return s.projects.ListByWorkspace(ctx, workspaceID)
}

// AddStatus adds a workflow status to the project. The first status created
// with IsDefault set becomes the project default.
func (s *ProjectService) AddStatus(ctx context.Context, projectID uuid.UUID, input StatusInput, createdBy uuid.UUID) (*domain.WorkflowStatus, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	status, err := domain.NewWorkflowStatus(project, input.Name, input.Category, input.Order, createdBy, domain.StatusConfig{
		Description: input.Description,
		Color:       input.Color,
		IsDefault:   input.IsDefault,
	})
	if err != nil {
		return nil, err
	}
	project.AddStatus(status)
	project.SetUpdated(createdBy)

	if err := s.uow.Within(ctx, func(tx *repository.Tx) error {
		if err := tx.Projects.AddStatus(ctx, status); err != nil {
			return err
		}
		return tx.Projects.Update(ctx, project)
	}); err != nil {
		return nil, err
	}
	s.invalidateProject(ctx, projectID)
	return status, nil
}

// AddTransition adds a directed edge between two statuses of the project.
func (s *ProjectService) AddTransition(ctx context.Context, projectID uuid.UUID, input TransitionInput, createdBy uuid.UUID) (*domain.StatusTransition, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	from := project.StatusByID(input.FromStatusID)
	if from == nil {
		return nil, apperrors.NewNotFound("origin status", nil)
	}
	to := project.StatusByID(input.ToStatusID)
	if to == nil {
		return nil, apperrors.NewNotFound("target status", nil)
	}
	if from.TransitionTo(to.ID) != nil {
		return nil, apperrors.NewConflict("transition already exists", nil)
	}

	transition, err := domain.NewStatusTransition(from, to, createdBy, domain.TransitionConfig{
		Name:             input.Name,
		AutoAssignUserID: input.AutoAssignUserID,
		RequiresComment:  input.RequiresComment,
	})
	if err != nil {
		return nil, err
	}
	from.AddOutgoingTransition(transition)

	if err := s.projects.AddTransition(ctx, transition); err != nil {
		return nil, err
	}
	s.invalidateProject(ctx, projectID)
	return transition, nil
}

// SetDefaultStatus overrides the project's default status.
func (s *ProjectService) SetDefaultStatus(ctx context.Context, projectID, statusID, updatedBy uuid.UUID) error {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return err
	}
	status := project.StatusByID(statusID)
	if status == nil {
		return apperrors.NewNotFound("status", nil)
	}

	project.SetDefaultStatus(status)
	project.SetUpdated(updatedBy)
	if err := s.projects.Update(ctx, project); err != nil {
		return err
	}
	s.invalidateProject(ctx, projectID)
	return nil
}

// AddCustomField defines a project-scoped custom field.
func (s *ProjectService) AddCustomField(ctx context.Context, projectID uuid.UUID, name string, fieldType domain.CustomFieldType, isRequired bool, options string, order int, createdBy uuid.UUID) (*domain.CustomFieldDefinition, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	field, err := domain.NewCustomFieldDefinition(project, name, fieldType, isRequired, options, order, createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.projects.AddCustomField(ctx, field); err != nil {
		return nil, err
	}
	s.invalidateProject(ctx, projectID)
	return field, nil
}

// CreateSprint adds a planned sprint to the project.
func (s *ProjectService) CreateSprint(ctx context.Context, projectID uuid.UUID, name, goal string, startDate, endDate time.Time, createdBy uuid.UUID) (*domain.Sprint, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	sprint, err := domain.NewSprint(project, name, goal, startDate, endDate, createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.sprints.Create(ctx, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

// UpdateSprint changes sprint attributes while it is not completed.
func (s *ProjectService) UpdateSprint(ctx context.Context, sprintID uuid.UUID, name, goal string, startDate, endDate time.Time, updatedBy uuid.UUID) (*domain.Sprint, error) {
	sprint, err := s.getSprint(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if err := sprint.Update(name, goal, startDate, endDate, updatedBy); err != nil {
		return nil, err
	}
	if err := s.sprints.Update(ctx, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

// StartSprint activates a planned sprint.
func (s *ProjectService) StartSprint(ctx context.Context, sprintID, startedBy uuid.UUID) (*domain.Sprint, error) {
	sprint, err := s.getSprint(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if err := sprint.Start(startedBy); err != nil {
		return nil, err
	}
	if err := s.sprints.Update(ctx, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

// CompleteSprint closes an active sprint.
func (s *ProjectService) CompleteSprint(ctx context.Context, sprintID, completedBy uuid.UUID) (*domain.Sprint, error) {
	sprint, err := s.getSprint(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if err := sprint.Complete(completedBy); err != nil {
		return nil, err
	}
	if err := s.sprints.Update(ctx, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

// ListSprints returns the project's sprints.
func (s *ProjectService) ListSprints(ctx context.Context, projectID uuid.UUID) ([]domain.Sprint, error) {
	return s.sprints.ListByProject(ctx, projectID)
}

func (s *ProjectService) getProject(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", nil)
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) getSprint(ctx context.Context, sprintID uuid.UUID) (*domain.Sprint, error) {
	sprint, err := s.sprints.GetByID(ctx, sprintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sprint", nil)
		}
		return nil, err
	}
	return sprint, nil
}

func (s *ProjectService) invalidateProject(ctx context.Context, projectID uuid.UUID) {
	_ = s.cache.DeleteByPrefix(ctx, "project:"+projectID.String())
}
