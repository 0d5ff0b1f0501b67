package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// workflow builds a small graph: To Do -> In Progress -> Done, plus a
// comment-gated edge In Progress -> Blocked.
type workflow struct {
	project    *Project
	todo       *WorkflowStatus
	inProgress *WorkflowStatus
	done       *WorkflowStatus
	blocked    *WorkflowStatus
	reporter   *User
}

func newWorkflow(t *testing.T) *workflow {
	t.Helper()
	reporter := testUser(t, "reporter@acme.dev", "Rae Reporter")
	project := testProject(t, testWorkspace(t, reporter.ID), reporter.ID)

	todo := addStatus(t, project, "To Do", CategoryToDo, true)
	inProgress := addStatus(t, project, "In Progress", CategoryInProgress, false)
	done := addStatus(t, project, "Done", CategoryDone, false)
	blocked := addStatus(t, project, "Blocked", CategoryToDo, false)

	addTransition(t, todo, inProgress, TransitionConfig{Name: "Start"})
	addTransition(t, inProgress, done, TransitionConfig{Name: "Finish"})
	addTransition(t, inProgress, blocked, TransitionConfig{Name: "Block", RequiresComment: true})
	addTransition(t, done, inProgress, TransitionConfig{Name: "Reopen"})

	return &workflow{
		project:    project,
		todo:       todo,
		inProgress: inProgress,
		done:       done,
		blocked:    blocked,
		reporter:   reporter,
	}
}

func (w *workflow) newTask(t *testing.T, title string) *TaskItem {
	t.Helper()
	task, _, err := NewTask(w.project, NewTaskInput{
		Title:     title,
		Status:    w.todo,
		Reporter:  w.reporter,
		CreatedBy: w.reporter.ID,
	})
	require.NoError(t, err)
	return task
}

func TestNewTaskMintsSequentialFriendlyIDs(t *testing.T) {
	w := newWorkflow(t)

	first, event, err := NewTask(w.project, NewTaskInput{
		Title:     "Set up CI",
		Status:    w.todo,
		Reporter:  w.reporter,
		CreatedBy: w.reporter.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "ENG-1", first.FriendlyID.String())
	assert.Equal(t, EventTaskCreated, event.Type)
	assert.Equal(t, PriorityNone, first.Priority)
	assert.Equal(t, TypeTask, first.Type)
	assert.Equal(t, "To Do", first.StatusName)
	assert.Empty(t, first.History)

	second := w.newTask(t, "Write docs")
	assert.Equal(t, "ENG-2", second.FriendlyID.String())
	assert.Equal(t, 3, w.project.NextTaskNumber)
}

func TestNewTaskValidation(t *testing.T) {
	w := newWorkflow(t)

	t.Run("empty title", func(t *testing.T) {
		_, _, err := NewTask(w.project, NewTaskInput{Title: "  ", Status: w.todo, Reporter: w.reporter})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("title too long", func(t *testing.T) {
		_, _, err := NewTask(w.project, NewTaskInput{Title: strings.Repeat("x", 501), Status: w.todo, Reporter: w.reporter})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("missing status", func(t *testing.T) {
		_, _, err := NewTask(w.project, NewTaskInput{Title: "ok", Reporter: w.reporter})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("status from another project", func(t *testing.T) {
		other := newWorkflow(t)
		_, _, err := NewTask(w.project, NewTaskInput{Title: "ok", Status: other.todo, Reporter: w.reporter})
		require.Error(t, err)
		assert.True(t, apperrors.IsBusinessRule(err))
	})

	t.Run("parent from another project", func(t *testing.T) {
		other := newWorkflow(t)
		parent := other.newTask(t, "foreign parent")
		_, _, err := NewTask(w.project, NewTaskInput{Title: "ok", Status: w.todo, Reporter: w.reporter, ParentTask: parent})
		require.Error(t, err)
		assert.True(t, apperrors.IsBusinessRule(err))
	})
}

func TestChangeStatusFollowsWorkflowGraph(t *testing.T) {
	w := newWorkflow(t)
	task := w.newTask(t, "Implement search")

	t.Run("unmodeled edge is rejected", func(t *testing.T) {
		_, err := task.ChangeStatus(w.project, w.done, w.reporter.ID, "")
		require.Error(t, err)
		assert.True(t, apperrors.IsBusinessRule(err))
		assert.Contains(t, err.Error(), "transition from 'To Do' to 'Done' is not allowed")
	})

	t.Run("allowed edge moves the task", func(t *testing.T) {
		event, err := task.ChangeStatus(w.project, w.inProgress, w.reporter.ID, "")
		require.NoError(t, err)
		assert.Equal(t, EventTaskStatusChanged, event.Type)
		assert.Equal(t, w.inProgress.ID, task.StatusID)
		assert.Equal(t, "In Progress", task.StatusName)
		require.Len(t, task.History, 1)
		assert.Equal(t, "status", task.History[0].FieldName)
		assert.Equal(t, "To Do", task.History[0].OldValue)
		assert.Equal(t, "In Progress", task.History[0].NewValue)
	})
}

func TestChangeStatusRequiresComment(t *testing.T) {
	w := newWorkflow(t)
	task := w.newTask(t, "Flaky deploy")
	_, err := task.ChangeStatus(w.project, w.inProgress, w.reporter.ID, "")
	require.NoError(t, err)

	_, err = task.ChangeStatus(w.project, w.blocked, w.reporter.ID, "   ")
	require.Error(t, err)
	assert.True(t, apperrors.IsBusinessRule(err))

	_, err = task.ChangeStatus(w.project, w.blocked, w.reporter.ID, "waiting on infra")
	require.NoError(t, err)
	assert.Equal(t, w.blocked.ID, task.StatusID)
}

func TestChangeStatusTimestampsAreSingleAssignment(t *testing.T) {
	w := newWorkflow(t)
	task := w.newTask(t, "Ship it")
	require.Nil(t, task.StartedAt)
	require.Nil(t, task.CompletedAt)

	_, err := task.ChangeStatus(w.project, w.inProgress, w.reporter.ID, "")
	require.NoError(t, err)
	require.NotNil(t, task.StartedAt)
	started := *task.StartedAt

	_, err = task.ChangeStatus(w.project, w.done, w.reporter.ID, "")
	require.NoError(t, err)
	require.NotNil(t, task.CompletedAt)
	completed := *task.CompletedAt

	// Reopen and finish again: the original timestamps survive.
	_, err = task.ChangeStatus(w.project, w.inProgress, w.reporter.ID, "")
	require.NoError(t, err)
	_, err = task.ChangeStatus(w.project, w.done, w.reporter.ID, "")
	require.NoError(t, err)

	assert.Equal(t, started, *task.StartedAt)
	assert.Equal(t, completed, *task.CompletedAt)
}

func TestChangeStatusAutoAssigns(t *testing.T) {
	w := newWorkflow(t)
	triager := testUser(t, "triager@acme.dev", "Tri Ager")
	review := addStatus(t, w.project, "In Review", CategoryInProgress, false)
	triagerID := triager.ID
	addTransition(t, w.inProgress, review, TransitionConfig{AutoAssignUserID: &triagerID})

	task := w.newTask(t, "Needs review")
	_, err := task.ChangeStatus(w.project, w.inProgress, w.reporter.ID, "")
	require.NoError(t, err)

	_, err = task.ChangeStatus(w.project, review, w.reporter.ID, "")
	require.NoError(t, err)
	require.NotNil(t, task.AssigneeID)
	assert.Equal(t, triager.ID, *task.AssigneeID)
}

func TestAssignAndUnassign(t *testing.T) {
	w := newWorkflow(t)
	task := w.newTask(t, "Rotate keys")
	assignee := testUser(t, "dev@acme.dev", "Devin")

	event, err := task.Assign(assignee, w.reporter.ID)
	require.NoError(t, err)
	assert.Equal(t, EventTaskAssigned, event.Type)
	require.NotNil(t, task.AssigneeID)
	assert.Equal(t, assignee.ID, *task.AssigneeID)
	assert.Equal(t, "Devin", task.AssigneeName)

	_, err = task.Assign(nil, w.reporter.ID)
	require.NoError(t, err)
	assert.Nil(t, task.AssigneeID)
	assert.Empty(t, task.AssigneeName)
	assert.Len(t, task.History, 2)
}

func TestFieldSettersRecordHistoryOnly(t *testing.T) {
	w := newWorkflow(t)
	task := w.newTask(t, "Estimate work")

	points := 5
	require.NoError(t, task.SetStoryPoints(&points, w.reporter.ID))

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, task.SetDueDate(&due, w.reporter.ID))

	sprint, err := NewSprint(w.project, "Sprint 1", "", due, due.AddDate(0, 0, 14), w.reporter.ID)
	require.NoError(t, err)
	require.NoError(t, task.SetSprint(sprint, w.reporter.ID))

	require.Len(t, task.History, 3)
	assert.Equal(t, "story_points", task.History[0].FieldName)
	assert.Equal(t, "5", task.History[0].NewValue)
	assert.Equal(t, "due_date", task.History[1].FieldName)
	assert.Equal(t, "sprint", task.History[2].FieldName)
}

func TestSetStoryPointsRejectsNegative(t *testing.T) {
	w := newWorkflow(t)
	task := w.newTask(t, "Estimate work")

	points := -1
	err := task.SetStoryPoints(&points, w.reporter.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, task.History)
}

func TestSetSprintRejectsForeignSprint(t *testing.T) {
	w := newWorkflow(t)
	other := newWorkflow(t)
	task := w.newTask(t, "Cross sprint")

	start := time.Now().UTC()
	sprint, err := NewSprint(other.project, "Sprint 1", "", start, start.AddDate(0, 0, 14), other.reporter.ID)
	require.NoError(t, err)

	err = task.SetSprint(sprint, w.reporter.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsBusinessRule(err))
}

func TestUpdateTitleValidatesAndEmits(t *testing.T) {
	w := newWorkflow(t)
	task := w.newTask(t, "Old title")

	_, err := task.UpdateTitle(" ", w.reporter.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	event, err := task.UpdateTitle("New title", w.reporter.ID)
	require.NoError(t, err)
	assert.Equal(t, EventTaskUpdated, event.Type)
	assert.Equal(t, "New title", task.Title)
	require.Len(t, task.History, 1)
	assert.Equal(t, "title", task.History[0].FieldName)
	assert.Equal(t, "Old title", task.History[0].OldValue)
}

func TestTaskCommentRules(t *testing.T) {
	w := newWorkflow(t)
	task := w.newTask(t, "Discuss approach")
	author := testUser(t, "author@acme.dev", "Arlo")

	comment, err := NewTaskComment(task, author, "let's use the queue", nil)
	require.NoError(t, err)
	assert.False(t, comment.IsEdited)

	t.Run("too long", func(t *testing.T) {
		_, err := NewTaskComment(task, author, strings.Repeat("a", 10001), nil)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("only the author may edit", func(t *testing.T) {
		err := comment.Edit("updated", uuid.New())
		require.Error(t, err)
		assert.True(t, apperrors.IsBusinessRule(err))

		require.NoError(t, comment.Edit("updated", author.ID))
		assert.True(t, comment.IsEdited)
		assert.Equal(t, "updated", comment.Content)
	})
}
