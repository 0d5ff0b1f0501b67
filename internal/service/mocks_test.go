package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/repository"
)

// MockProjectRepository mocks repository.ProjectRepository.
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) GetBySlug(ctx context.Context, workspaceID uuid.UUID, slug domain.Slug) (*domain.Project, error) {
	args := m.Called(ctx, workspaceID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Project, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) AddStatus(ctx context.Context, status *domain.WorkflowStatus) error {
	return m.Called(ctx, status).Error(0)
}

func (m *MockProjectRepository) UpdateStatus(ctx context.Context, status *domain.WorkflowStatus) error {
	return m.Called(ctx, status).Error(0)
}

func (m *MockProjectRepository) AddTransition(ctx context.Context, transition *domain.StatusTransition) error {
	return m.Called(ctx, transition).Error(0)
}

func (m *MockProjectRepository) AddCustomField(ctx context.Context, field *domain.CustomFieldDefinition) error {
	return m.Called(ctx, field).Error(0)
}

// MockWorkspaceRepository mocks repository.WorkspaceRepository.
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	return m.Called(ctx, workspace).Error(0)
}

func (m *MockWorkspaceRepository) Update(ctx context.Context, workspace *domain.Workspace) error {
	return m.Called(ctx, workspace).Error(0)
}

func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) GetBySlug(ctx context.Context, slug domain.Slug) (*domain.Workspace, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) AddMember(ctx context.Context, member *domain.WorkspaceMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockWorkspaceRepository) UpdateMember(ctx context.Context, member *domain.WorkspaceMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockWorkspaceRepository) GetActiveMember(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceRepository) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkspaceMember), args.Error(1)
}

// MockSprintRepository mocks repository.SprintRepository.
type MockSprintRepository struct {
	mock.Mock
}

func (m *MockSprintRepository) Create(ctx context.Context, sprint *domain.Sprint) error {
	return m.Called(ctx, sprint).Error(0)
}

func (m *MockSprintRepository) Update(ctx context.Context, sprint *domain.Sprint) error {
	return m.Called(ctx, sprint).Error(0)
}

func (m *MockSprintRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sprint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sprint), args.Error(1)
}

func (m *MockSprintRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Sprint, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sprint), args.Error(1)
}

// MockTaskRepository mocks repository.TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.TaskItem) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.TaskItem) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskItem), args.Error(1)
}

func (m *MockTaskRepository) GetByFriendlyID(ctx context.Context, projectID uuid.UUID, sequenceNumber int) (*domain.TaskItem, error) {
	args := m.Called(ctx, projectID, sequenceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskItem), args.Error(1)
}

func (m *MockTaskRepository) ListWithFilter(ctx context.Context, filter repository.TaskFilter) ([]domain.TaskItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskItem), args.Error(1)
}

func (m *MockTaskRepository) ListSubtasks(ctx context.Context, parentTaskID uuid.UUID) ([]domain.TaskItem, error) {
	args := m.Called(ctx, parentTaskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskItem), args.Error(1)
}

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockLabelRepository mocks repository.LabelRepository.
type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) Create(ctx context.Context, label *domain.Label) error {
	return m.Called(ctx, label).Error(0)
}

func (m *MockLabelRepository) Update(ctx context.Context, label *domain.Label) error {
	return m.Called(ctx, label).Error(0)
}

func (m *MockLabelRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Label, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Label), args.Error(1)
}

func (m *MockLabelRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Label, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Label), args.Error(1)
}

func (m *MockLabelRepository) Link(ctx context.Context, link *domain.TaskLabel) error {
	return m.Called(ctx, link).Error(0)
}

func (m *MockLabelRepository) Unlink(ctx context.Context, taskID, labelID uuid.UUID) error {
	return m.Called(ctx, taskID, labelID).Error(0)
}

func (m *MockLabelRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.Label, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Label), args.Error(1)
}

// MockTaskCommentRepository mocks repository.TaskCommentRepository.
type MockTaskCommentRepository struct {
	mock.Mock
}

func (m *MockTaskCommentRepository) Add(ctx context.Context, comment *domain.TaskComment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockTaskCommentRepository) Update(ctx context.Context, comment *domain.TaskComment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockTaskCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskComment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskComment), args.Error(1)
}

func (m *MockTaskCommentRepository) ListByTask(ctx context.Context, taskID uuid.UUID, limit, offset int) ([]domain.TaskComment, error) {
	args := m.Called(ctx, taskID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskComment), args.Error(1)
}

// MockTaskHistoryRepository mocks repository.TaskHistoryRepository.
type MockTaskHistoryRepository struct {
	mock.Mock
}

func (m *MockTaskHistoryRepository) Add(ctx context.Context, entry *domain.TaskHistory) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockTaskHistoryRepository) ListByTask(ctx context.Context, taskID uuid.UUID, limit, offset int) ([]domain.TaskHistory, error) {
	args := m.Called(ctx, taskID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskHistory), args.Error(1)
}

// MockTaskAttachmentRepository mocks repository.TaskAttachmentRepository.
type MockTaskAttachmentRepository struct {
	mock.Mock
}

func (m *MockTaskAttachmentRepository) Add(ctx context.Context, attachment *domain.TaskAttachment) error {
	return m.Called(ctx, attachment).Error(0)
}

func (m *MockTaskAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTaskAttachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskAttachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskAttachment), args.Error(1)
}

func (m *MockTaskAttachmentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.TaskAttachment, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskAttachment), args.Error(1)
}
