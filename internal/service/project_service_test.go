package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/task-tracker/internal/domain"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

func buildProject(t *testing.T) (*domain.Project, *domain.WorkflowStatus, *domain.WorkflowStatus) {
	t.Helper()
	owner := uuid.New()
	slug, err := domain.NewSlug("acme")
	require.NoError(t, err)
	workspace, _, err := domain.NewWorkspace("Acme", slug, owner)
	require.NoError(t, err)

	projectSlug, err := domain.NewSlug("engineering")
	require.NoError(t, err)
	project, _, err := domain.NewProject(workspace, "Engineering", projectSlug, "ENG", owner)
	require.NoError(t, err)

	todo, err := domain.NewWorkflowStatus(project, "To Do", domain.CategoryToDo, 0, owner, domain.StatusConfig{IsDefault: true})
	require.NoError(t, err)
	project.AddStatus(todo)

	done, err := domain.NewWorkflowStatus(project, "Done", domain.CategoryDone, 1, owner, domain.StatusConfig{})
	require.NoError(t, err)
	project.AddStatus(done)

	return project, todo, done
}

func newProjectService(projects *MockProjectRepository, workspaces *MockWorkspaceRepository, sprints *MockSprintRepository) *ProjectService {
	return NewProjectService(ProjectDependencies{
		ProjectRepo:   projects,
		WorkspaceRepo: workspaces,
		SprintRepo:    sprints,
	})
}

func TestAddTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the edge", func(t *testing.T) {
		project, todo, done := buildProject(t)
		projects := new(MockProjectRepository)
		projects.On("GetByID", ctx, project.ID).Return(project, nil)
		projects.On("AddTransition", ctx, mock.Anything).Return(nil)

		svc := newProjectService(projects, new(MockWorkspaceRepository), new(MockSprintRepository))
		transition, err := svc.AddTransition(ctx, project.ID, TransitionInput{
			FromStatusID: todo.ID,
			ToStatusID:   done.ID,
			Name:         "Finish",
		}, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, done.ID, transition.ToStatusID)
		assert.NotNil(t, todo.TransitionTo(done.ID))
		projects.AssertExpectations(t)
	})

	t.Run("unknown origin status", func(t *testing.T) {
		project, _, done := buildProject(t)
		projects := new(MockProjectRepository)
		projects.On("GetByID", ctx, project.ID).Return(project, nil)

		svc := newProjectService(projects, new(MockWorkspaceRepository), new(MockSprintRepository))
		_, err := svc.AddTransition(ctx, project.ID, TransitionInput{
			FromStatusID: uuid.New(),
			ToStatusID:   done.ID,
		}, uuid.New())
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	})

	t.Run("duplicate edge conflicts", func(t *testing.T) {
		project, todo, done := buildProject(t)
		existing, err := domain.NewStatusTransition(todo, done, uuid.New(), domain.TransitionConfig{})
		require.NoError(t, err)
		todo.AddOutgoingTransition(existing)

		projects := new(MockProjectRepository)
		projects.On("GetByID", ctx, project.ID).Return(project, nil)

		svc := newProjectService(projects, new(MockWorkspaceRepository), new(MockSprintRepository))
		_, err = svc.AddTransition(ctx, project.ID, TransitionInput{
			FromStatusID: todo.ID,
			ToStatusID:   done.ID,
		}, uuid.New())
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "CONFLICT"))
	})
}

func TestGetProjectMapsMissingRows(t *testing.T) {
	ctx := context.Background()
	projects := new(MockProjectRepository)
	id := uuid.New()
	projects.On("GetByID", ctx, id).Return(nil, pgx.ErrNoRows)

	svc := newProjectService(projects, new(MockWorkspaceRepository), new(MockSprintRepository))
	_, err := svc.GetProject(ctx, id)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestSetDefaultStatus(t *testing.T) {
	ctx := context.Background()
	project, _, done := buildProject(t)

	projects := new(MockProjectRepository)
	projects.On("GetByID", ctx, project.ID).Return(project, nil)
	projects.On("Update", ctx, project).Return(nil)

	svc := newProjectService(projects, new(MockWorkspaceRepository), new(MockSprintRepository))
	require.NoError(t, svc.SetDefaultStatus(ctx, project.ID, done.ID, uuid.New()))
	require.NotNil(t, project.DefaultStatusID)
	assert.Equal(t, done.ID, *project.DefaultStatusID)

	err := svc.SetDefaultStatus(ctx, project.ID, uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestSprintLifecycleThroughService(t *testing.T) {
	ctx := context.Background()
	project, _, _ := buildProject(t)
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	sprint, err := domain.NewSprint(project, "Sprint 1", "", start, start.AddDate(0, 0, 14), uuid.New())
	require.NoError(t, err)

	sprints := new(MockSprintRepository)
	sprints.On("GetByID", ctx, sprint.ID).Return(sprint, nil)
	sprints.On("Update", ctx, sprint).Return(nil)

	svc := newProjectService(new(MockProjectRepository), new(MockWorkspaceRepository), sprints)

	t.Run("cannot complete before starting", func(t *testing.T) {
		_, err := svc.CompleteSprint(ctx, sprint.ID, uuid.New())
		require.Error(t, err)
		assert.True(t, apperrors.IsBusinessRule(err))
	})

	t.Run("start then complete", func(t *testing.T) {
		started, err := svc.StartSprint(ctx, sprint.ID, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, domain.SprintActive, started.Status)

		completed, err := svc.CompleteSprint(ctx, sprint.ID, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, domain.SprintCompleted, completed.Status)
	})
}
