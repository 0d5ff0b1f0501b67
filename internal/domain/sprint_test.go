package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

func testSprint(t *testing.T) (*Sprint, uuid.UUID) {
	t.Helper()
	owner := uuid.New()
	project := testProject(t, testWorkspace(t, owner), owner)
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	sprint, err := NewSprint(project, "Sprint 1", "ship search", start, start.AddDate(0, 0, 14), owner)
	require.NoError(t, err)
	return sprint, owner
}

func TestNewSprintValidatesDates(t *testing.T) {
	owner := uuid.New()
	project := testProject(t, testWorkspace(t, owner), owner)
	start := time.Now().UTC()

	_, err := NewSprint(project, "Sprint 1", "", start, start, owner)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = NewSprint(project, "Sprint 1", "", start, start.Add(-time.Hour), owner)
	require.Error(t, err)
}

func TestSprintLifecycleIsLinear(t *testing.T) {
	sprint, by := testSprint(t)
	assert.Equal(t, SprintPlanned, sprint.Status)

	t.Run("cannot complete a planned sprint", func(t *testing.T) {
		err := sprint.Complete(by)
		require.Error(t, err)
		assert.True(t, apperrors.IsBusinessRule(err))
	})

	require.NoError(t, sprint.Start(by))
	assert.Equal(t, SprintActive, sprint.Status)

	t.Run("cannot start twice", func(t *testing.T) {
		err := sprint.Start(by)
		require.Error(t, err)
		assert.True(t, apperrors.IsBusinessRule(err))
	})

	require.NoError(t, sprint.Complete(by))
	assert.Equal(t, SprintCompleted, sprint.Status)

	t.Run("completed sprint is frozen", func(t *testing.T) {
		err := sprint.Start(by)
		require.Error(t, err)

		err = sprint.Update("Sprint 1b", "", sprint.StartDate, sprint.EndDate, by)
		require.Error(t, err)
		assert.True(t, apperrors.IsBusinessRule(err))
	})
}

func TestSprintUpdate(t *testing.T) {
	sprint, by := testSprint(t)

	newEnd := sprint.EndDate.AddDate(0, 0, 7)
	require.NoError(t, sprint.Update("Sprint 1 extended", "more scope", sprint.StartDate, newEnd, by))
	assert.Equal(t, "Sprint 1 extended", sprint.Name)
	assert.Equal(t, newEnd, sprint.EndDate)

	err := sprint.Update("", "", sprint.StartDate, newEnd, by)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
