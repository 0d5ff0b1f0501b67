package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

func TestNewProjectUppercasesPrefix(t *testing.T) {
	owner := uuid.New()
	workspace := testWorkspace(t, owner)
	slug, err := NewSlug("engineering")
	require.NoError(t, err)

	project, event, err := NewProject(workspace, "Engineering", slug, "eng", owner)
	require.NoError(t, err)
	assert.Equal(t, "ENG", project.Prefix)
	assert.Equal(t, 1, project.NextTaskNumber)
	assert.Equal(t, EventProjectCreated, event.Type)
}

func TestNewProjectRejectsBadPrefix(t *testing.T) {
	owner := uuid.New()
	workspace := testWorkspace(t, owner)
	slug, err := NewSlug("engineering")
	require.NoError(t, err)

	for name, prefix := range map[string]string{
		"empty":            "",
		"too long":         "ABCDEFGHIJK",
		"non alphanumeric": "EN G",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := NewProject(workspace, "Engineering", slug, prefix, owner)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestGetAndIncrementTaskNumber(t *testing.T) {
	owner := uuid.New()
	project := testProject(t, testWorkspace(t, owner), owner)

	assert.Equal(t, 1, project.GetAndIncrementTaskNumber())
	assert.Equal(t, 2, project.GetAndIncrementTaskNumber())
	assert.Equal(t, 3, project.GetAndIncrementTaskNumber())
	assert.Equal(t, 4, project.NextTaskNumber)
}

func TestAddStatusFirstDefaultWins(t *testing.T) {
	owner := uuid.New()
	project := testProject(t, testWorkspace(t, owner), owner)

	first := addStatus(t, project, "Backlog", CategoryToDo, true)
	addStatus(t, project, "To Do", CategoryToDo, true)

	require.NotNil(t, project.DefaultStatusID)
	assert.Equal(t, first.ID, *project.DefaultStatusID)
}

func TestDefaultStatusFallbackChain(t *testing.T) {
	owner := uuid.New()

	t.Run("no statuses is a business rule violation", func(t *testing.T) {
		project := testProject(t, testWorkspace(t, owner), owner)
		_, err := project.DefaultStatus()
		require.Error(t, err)
		assert.True(t, apperrors.IsBusinessRule(err))
	})

	t.Run("falls back to first status when none is default", func(t *testing.T) {
		project := testProject(t, testWorkspace(t, owner), owner)
		first := addStatus(t, project, "Backlog", CategoryToDo, false)
		addStatus(t, project, "Done", CategoryDone, false)

		status, err := project.DefaultStatus()
		require.NoError(t, err)
		assert.Equal(t, first.ID, status.ID)
	})

	t.Run("prefers the configured default", func(t *testing.T) {
		project := testProject(t, testWorkspace(t, owner), owner)
		addStatus(t, project, "Backlog", CategoryToDo, false)
		preferred := addStatus(t, project, "To Do", CategoryToDo, false)
		project.SetDefaultStatus(preferred)

		status, err := project.DefaultStatus()
		require.NoError(t, err)
		assert.Equal(t, preferred.ID, status.ID)
	})
}

func TestNewStatusTransitionRejections(t *testing.T) {
	owner := uuid.New()
	workspace := testWorkspace(t, owner)
	project := testProject(t, workspace, owner)
	other := testProject(t, workspace, owner)

	todo := addStatus(t, project, "To Do", CategoryToDo, true)
	foreign := addStatus(t, other, "To Do", CategoryToDo, true)

	t.Run("cross project", func(t *testing.T) {
		_, err := NewStatusTransition(todo, foreign, owner, TransitionConfig{})
		require.Error(t, err)
		assert.True(t, apperrors.IsBusinessRule(err))
	})

	t.Run("self loop", func(t *testing.T) {
		_, err := NewStatusTransition(todo, todo, owner, TransitionConfig{})
		require.Error(t, err)
		assert.True(t, apperrors.IsBusinessRule(err))
	})
}
