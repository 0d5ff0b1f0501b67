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

func newWorkspaceService(workspaces *MockWorkspaceRepository, users *MockUserRepository, labels *MockLabelRepository) *WorkspaceService {
	return NewWorkspaceService(WorkspaceDependencies{
		WorkspaceRepo: workspaces,
		UserRepo:      users,
		LabelRepo:     labels,
	})
}

func TestMemberRole(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()

	t.Run("returns the active role", func(t *testing.T) {
		workspaces := new(MockWorkspaceRepository)
		workspaces.On("GetActiveMember", ctx, workspaceID, userID).
			Return(&domain.WorkspaceMember{WorkspaceID: workspaceID, UserID: userID, Role: domain.RoleProjectManager}, nil)

		svc := newWorkspaceService(workspaces, new(MockUserRepository), new(MockLabelRepository))
		role, err := svc.MemberRole(ctx, workspaceID, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleProjectManager, role)
	})

	t.Run("non-members are forbidden", func(t *testing.T) {
		workspaces := new(MockWorkspaceRepository)
		workspaces.On("GetActiveMember", ctx, workspaceID, userID).Return(nil, pgx.ErrNoRows)

		svc := newWorkspaceService(workspaces, new(MockUserRepository), new(MockLabelRepository))
		_, err := svc.MemberRole(ctx, workspaceID, userID)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
	})
}
