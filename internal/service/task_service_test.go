package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/task-tracker/internal/domain"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

type taskServiceMocks struct {
	tasks       *MockTaskRepository
	projects    *MockProjectRepository
	users       *MockUserRepository
	sprints     *MockSprintRepository
	history     *MockTaskHistoryRepository
	comments    *MockTaskCommentRepository
	attachments *MockTaskAttachmentRepository
	labels      *MockLabelRepository
}

func newTaskService(t *testing.T) (*TaskService, *taskServiceMocks) {
	t.Helper()
	m := &taskServiceMocks{
		tasks:       new(MockTaskRepository),
		projects:    new(MockProjectRepository),
		users:       new(MockUserRepository),
		sprints:     new(MockSprintRepository),
		history:     new(MockTaskHistoryRepository),
		comments:    new(MockTaskCommentRepository),
		attachments: new(MockTaskAttachmentRepository),
		labels:      new(MockLabelRepository),
	}
	svc := NewTaskService(TaskDependencies{
		TaskRepo:       m.tasks,
		ProjectRepo:    m.projects,
		UserRepo:       m.users,
		SprintRepo:     m.sprints,
		HistoryRepo:    m.history,
		CommentRepo:    m.comments,
		AttachmentRepo: m.attachments,
		LabelRepo:      m.labels,
	})
	return svc, m
}

func storedTask(projectID uuid.UUID, sequence int) *domain.TaskItem {
	return &domain.TaskItem{
		ID:         uuid.New(),
		FriendlyID: domain.FriendlyID{ProjectPrefix: "ENG", SequenceNumber: sequence},
		ProjectID:  projectID,
		Title:      "Stored task",
		Priority:   domain.PriorityMedium,
		Type:       domain.TypeTask,
		StatusID:   uuid.New(),
		StatusName: "To Do",
		ReporterID: uuid.New(),
	}
}

func TestGetTaskByFriendlyID(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()

	t.Run("resolves PREFIX-N", func(t *testing.T) {
		svc, m := newTaskService(t)
		task := storedTask(projectID, 3)
		m.tasks.On("GetByFriendlyID", ctx, projectID, 3).Return(task, nil)
		m.comments.On("ListByTask", ctx, task.ID, 100, 0).Return([]domain.TaskComment{}, nil)
		m.attachments.On("ListByTask", ctx, task.ID).Return([]domain.TaskAttachment{}, nil)
		m.history.On("ListByTask", ctx, task.ID, 100, 0).Return([]domain.TaskHistory{}, nil)
		m.tasks.On("ListSubtasks", ctx, task.ID).Return([]domain.TaskItem{}, nil)

		got, err := svc.GetTaskByFriendlyID(ctx, projectID, "ENG-3")
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("malformed identifier", func(t *testing.T) {
		svc, m := newTaskService(t)
		_, err := svc.GetTaskByFriendlyID(ctx, projectID, "ENG3")
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		m.tasks.AssertNotCalled(t, "GetByFriendlyID")
	})

	t.Run("unknown sequence number", func(t *testing.T) {
		svc, m := newTaskService(t)
		m.tasks.On("GetByFriendlyID", ctx, projectID, 99).Return(nil, pgx.ErrNoRows)
		_, err := svc.GetTaskByFriendlyID(ctx, projectID, "ENG-99")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	})
}

func TestAddCommentParentMustMatchTask(t *testing.T) {
	ctx := context.Background()
	svc, m := newTaskService(t)
	task := storedTask(uuid.New(), 1)
	author := &domain.User{ID: uuid.New(), DisplayName: "Arlo"}

	parentID := uuid.New()
	m.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
	m.comments.On("GetByID", ctx, parentID).
		Return(&domain.TaskComment{ID: parentID, TaskID: uuid.New()}, nil)

	_, err := svc.AddComment(ctx, task.ID, author, "replying", &parentID)
	require.Error(t, err)
	assert.True(t, apperrors.IsBusinessRule(err))
}

func TestAddLabelRejectsForeignWorkspace(t *testing.T) {
	ctx := context.Background()
	svc, m := newTaskService(t)

	project, _, _ := buildProject(t)
	task := storedTask(project.ID, 1)
	label := &domain.Label{ID: uuid.New(), WorkspaceID: uuid.New(), Name: "infra"}

	m.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
	m.labels.On("GetByID", ctx, label.ID).Return(label, nil)
	m.projects.On("GetByID", ctx, project.ID).Return(project, nil)

	err := svc.AddLabel(ctx, task.ID, label.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsBusinessRule(err))
	m.labels.AssertNotCalled(t, "Link")
}

func TestAssignTaskUnknownAssignee(t *testing.T) {
	ctx := context.Background()
	svc, m := newTaskService(t)

	assigneeID := uuid.New()
	m.users.On("GetByID", ctx, assigneeID).Return(nil, pgx.ErrNoRows)

	_, err := svc.AssignTask(ctx, uuid.New(), &assigneeID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestEditCommentNotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newTaskService(t)

	commentID := uuid.New()
	m.comments.On("GetByID", ctx, commentID).Return(nil, pgx.ErrNoRows)

	_, err := svc.EditComment(ctx, commentID, "new content", uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
