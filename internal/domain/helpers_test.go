package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testUser(t *testing.T, address, displayName string) *User {
	t.Helper()
	email, err := NewEmail(address)
	require.NoError(t, err)
	user, _, err := NewUser(email, "$2a$10$hash", displayName)
	require.NoError(t, err)
	return user
}

func testWorkspace(t *testing.T, ownerID uuid.UUID) *Workspace {
	t.Helper()
	slug, err := NewSlug("acme")
	require.NoError(t, err)
	workspace, _, err := NewWorkspace("Acme", slug, ownerID)
	require.NoError(t, err)
	return workspace
}

func testProject(t *testing.T, workspace *Workspace, createdBy uuid.UUID) *Project {
	t.Helper()
	slug, err := NewSlug("engineering")
	require.NoError(t, err)
	project, _, err := NewProject(workspace, "Engineering", slug, "ENG", createdBy)
	require.NoError(t, err)
	return project
}

func addStatus(t *testing.T, project *Project, name string, category StatusCategory, isDefault bool) *WorkflowStatus {
	t.Helper()
	status, err := NewWorkflowStatus(project, name, category, len(project.Statuses), uuid.New(), StatusConfig{
		IsDefault: isDefault,
	})
	require.NoError(t, err)
	project.AddStatus(status)
	return status
}

func addTransition(t *testing.T, from, to *WorkflowStatus, cfg TransitionConfig) *StatusTransition {
	t.Helper()
	transition, err := NewStatusTransition(from, to, uuid.New(), cfg)
	require.NoError(t, err)
	from.AddOutgoingTransition(transition)
	return transition
}
