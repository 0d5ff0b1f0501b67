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

// TaskService coordinates task workflows: creation with sequence-minted
// identifiers, workflow transitions, field updates, comments, attachments
// and labels.
type TaskService struct {
	tasks       repository.TaskRepository
	projects    repository.ProjectRepository
	users       repository.UserRepository
	sprints     repository.SprintRepository
	history     repository.TaskHistoryRepository
	comments    repository.TaskCommentRepository
	attachments repository.TaskAttachmentRepository
	labels      repository.LabelRepository
	cache       *persistence.Cache
	uow         *repository.UnitOfWork
}

// TaskDependencies bundles repositories for the task service.
type TaskDependencies struct {
	TaskRepo       repository.TaskRepository
	ProjectRepo    repository.ProjectRepository
	UserRepo       repository.UserRepository
	SprintRepo     repository.SprintRepository
	HistoryRepo    repository.TaskHistoryRepository
	CommentRepo    repository.TaskCommentRepository
	AttachmentRepo repository.TaskAttachmentRepository
	LabelRepo      repository.LabelRepository
	Cache          *persistence.Cache
	UnitOfWork     *repository.UnitOfWork
}

// TaskCreateInput describes task creation payload. StatusID is optional;
// when absent the project's default status is used.
type TaskCreateInput struct {
	Title        string
	Description  string
	Type         domain.TaskType
	Priority     domain.TaskPriority
	StatusID     *uuid.UUID
	AssigneeID   *uuid.UUID
	ParentTaskID *uuid.UUID
}

// AttachmentInput defines attachment metadata.
type AttachmentInput struct {
	FileName    string
	ContentType string
	SizeBytes   int64
	StorageKey  string
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:       deps.TaskRepo,
		projects:    deps.ProjectRepo,
		users:       deps.UserRepo,
		sprints:     deps.SprintRepo,
		history:     deps.HistoryRepo,
		comments:    deps.CommentRepo,
		attachments: deps.AttachmentRepo,
		labels:      deps.LabelRepo,
		cache:       deps.Cache,
		uow:         deps.UnitOfWork,
	}
}

// CreateTask creates a task in the project. The task number is taken from
// the project sequence inside the same transaction that persists the task,
// so no two tasks of a project can share a FriendlyID.
func (s *TaskService) CreateTask(ctx context.Context, projectID uuid.UUID, reporter *domain.User, input TaskCreateInput) (*domain.TaskItem, error) {
	var task *domain.TaskItem

	err := s.uow.Within(ctx, func(tx *repository.Tx) error {
		project, err := tx.Projects.GetByID(ctx, projectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("project", nil)
			}
			return err
		}

		var status *domain.WorkflowStatus
		if input.StatusID != nil {
			status = project.StatusByID(*input.StatusID)
			if status == nil {
				return apperrors.NewNotFound("status", nil)
			}
		} else {
			status, err = project.DefaultStatus()
			if err != nil {
				return err
			}
		}

		var assignee *domain.User
		if input.AssigneeID != nil {
			assignee, err = tx.Users.GetByID(ctx, *input.AssigneeID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.NewNotFound("assignee", nil)
				}
				return err
			}
		}

		var parent *domain.TaskItem
		if input.ParentTaskID != nil {
			parent, err = tx.Tasks.GetByID(ctx, *input.ParentTaskID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.NewNotFound("parent task", nil)
				}
				return err
			}
		}

		created, event, err := domain.NewTask(project, domain.NewTaskInput{
			Title:       input.Title,
			Description: input.Description,
			Type:        input.Type,
			Priority:    input.Priority,
			Status:      status,
			Reporter:    reporter,
			Assignee:    assignee,
			ParentTask:  parent,
			CreatedBy:   reporter.ID,
		})
		if err != nil {
			return err
		}

		if err := tx.Tasks.Create(ctx, created); err != nil {
			return err
		}
		project.SetUpdated(reporter.ID)
		if err := tx.Projects.Update(ctx, project); err != nil {
			return err
		}

		tx.Record(event)
		task = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTask(ctx, task)
	return task, nil
}

// GetTask loads a task with its comments, attachments, history and
// subtasks. Reads go through the cache; every write invalidates it.
func (s *TaskService) GetTask(ctx context.Context, taskID uuid.UUID) (*domain.TaskItem, error) {
	cacheKey := "task:" + taskID.String()
	var cached domain.TaskItem
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.loadChildren(ctx, task); err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, cacheKey, task, 0)
	return task, nil
}

// GetTaskByFriendlyID resolves a task by its human-readable identifier,
// e.g. "ENG-42".
func (s *TaskService) GetTaskByFriendlyID(ctx context.Context, projectID uuid.UUID, friendlyID string) (*domain.TaskItem, error) {
	parsed, err := domain.ParseFriendlyID(friendlyID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByFriendlyID(ctx, projectID, parsed.SequenceNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("task", nil)
		}
		return nil, err
	}
	if err := s.loadChildren(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns tasks matching the filter.
func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.TaskItem, error) {
	return s.tasks.ListWithFilter(ctx, filter)
}

// ChangeStatus moves a task along the project workflow graph. When the
// transition requires a comment, the comment is stored on the task.
func (s *TaskService) ChangeStatus(ctx context.Context, taskID, newStatusID uuid.UUID, changedBy *domain.User, comment string) (*domain.TaskItem, error) {
	var task *domain.TaskItem

	err := s.uow.Within(ctx, func(tx *repository.Tx) error {
		loaded, err := tx.Tasks.GetByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("task", nil)
			}
			return err
		}
		project, err := tx.Projects.GetByID(ctx, loaded.ProjectID)
		if err != nil {
			return err
		}
		newStatus := project.StatusByID(newStatusID)
		if newStatus == nil {
			return apperrors.NewNotFound("status", nil)
		}

		event, err := loaded.ChangeStatus(project, newStatus, changedBy.ID, comment)
		if err != nil {
			return err
		}

		if err := tx.Tasks.Update(ctx, loaded); err != nil {
			return err
		}
		if err := persistHistory(ctx, tx, loaded); err != nil {
			return err
		}
		if comment != "" {
			entry, err := domain.NewTaskComment(loaded, changedBy, comment, nil)
			if err != nil {
				return err
			}
			if err := tx.Comments.Add(ctx, entry); err != nil {
				return err
			}
		}

		tx.Record(event)
		task = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTask(ctx, task)
	return task, nil
}

// UpdateTitle changes the task title.
func (s *TaskService) UpdateTitle(ctx context.Context, taskID uuid.UUID, title string, updatedBy uuid.UUID) (*domain.TaskItem, error) {
	return s.mutate(ctx, taskID, func(task *domain.TaskItem) (*domain.Event, error) {
		event, err := task.UpdateTitle(title, updatedBy)
		if err != nil {
			return nil, err
		}
		return &event, nil
	})
}

// UpdateDescription changes the task description.
func (s *TaskService) UpdateDescription(ctx context.Context, taskID uuid.UUID, description string, updatedBy uuid.UUID) (*domain.TaskItem, error) {
	return s.mutate(ctx, taskID, func(task *domain.TaskItem) (*domain.Event, error) {
		event, err := task.UpdateDescription(description, updatedBy)
		if err != nil {
			return nil, err
		}
		return &event, nil
	})
}

// ChangePriority changes the task priority.
func (s *TaskService) ChangePriority(ctx context.Context, taskID uuid.UUID, priority domain.TaskPriority, changedBy uuid.UUID) (*domain.TaskItem, error) {
	return s.mutate(ctx, taskID, func(task *domain.TaskItem) (*domain.Event, error) {
		event, err := task.ChangePriority(priority, changedBy)
		if err != nil {
			return nil, err
		}
		return &event, nil
	})
}

// AssignTask sets or clears the assignee.
func (s *TaskService) AssignTask(ctx context.Context, taskID uuid.UUID, assigneeID *uuid.UUID, assignedBy uuid.UUID) (*domain.TaskItem, error) {
	var assignee *domain.User
	if assigneeID != nil {
		loaded, err := s.users.GetByID(ctx, *assigneeID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("assignee", nil)
			}
			return nil, err
		}
		assignee = loaded
	}

	return s.mutate(ctx, taskID, func(task *domain.TaskItem) (*domain.Event, error) {
		event, err := task.Assign(assignee, assignedBy)
		if err != nil {
			return nil, err
		}
		return &event, nil
	})
}

// SetDueDate changes the due date. Recorded in history, no event.
func (s *TaskService) SetDueDate(ctx context.Context, taskID uuid.UUID, dueDate *time.Time, updatedBy uuid.UUID) (*domain.TaskItem, error) {
	return s.mutate(ctx, taskID, func(task *domain.TaskItem) (*domain.Event, error) {
		return nil, task.SetDueDate(dueDate, updatedBy)
	})
}

// SetStoryPoints changes the story point estimate. History only.
func (s *TaskService) SetStoryPoints(ctx context.Context, taskID uuid.UUID, storyPoints *int, updatedBy uuid.UUID) (*domain.TaskItem, error) {
	return s.mutate(ctx, taskID, func(task *domain.TaskItem) (*domain.Event, error) {
		return nil, task.SetStoryPoints(storyPoints, updatedBy)
	})
}

// SetSprint moves the task into or out of a sprint. History only.
func (s *TaskService) SetSprint(ctx context.Context, taskID uuid.UUID, sprintID *uuid.UUID, updatedBy uuid.UUID) (*domain.TaskItem, error) {
	var sprint *domain.Sprint
	if sprintID != nil {
		loaded, err := s.sprints.GetByID(ctx, *sprintID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("sprint", nil)
			}
			return nil, err
		}
		sprint = loaded
	}

	return s.mutate(ctx, taskID, func(task *domain.TaskItem) (*domain.Event, error) {
		return nil, task.SetSprint(sprint, updatedBy)
	})
}

// SetCustomFields replaces the task's custom field values. History only.
func (s *TaskService) SetCustomFields(ctx context.Context, taskID uuid.UUID, customFieldsJSON string, updatedBy uuid.UUID) (*domain.TaskItem, error) {
	return s.mutate(ctx, taskID, func(task *domain.TaskItem) (*domain.Event, error) {
		return nil, task.SetCustomFields(customFieldsJSON, updatedBy)
	})
}

// AddComment appends a comment to the task.
func (s *TaskService) AddComment(ctx context.Context, taskID uuid.UUID, author *domain.User, content string, parentCommentID *uuid.UUID) (*domain.TaskComment, error) {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if parentCommentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentCommentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("parent comment", nil)
			}
			return nil, err
		}
		if parent.TaskID != task.ID {
			return nil, apperrors.NewBusinessRule("parent comment belongs to a different task")
		}
	}

	comment, err := domain.NewTaskComment(task, author, content, parentCommentID)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Add(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// EditComment replaces a comment's body. Only the author may edit.
func (s *TaskService) EditComment(ctx context.Context, commentID uuid.UUID, content string, editedBy uuid.UUID) (*domain.TaskComment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("comment", nil)
		}
		return nil, err
	}
	if err := comment.Edit(content, editedBy); err != nil {
		return nil, err
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the task's comments.
func (s *TaskService) ListComments(ctx context.Context, taskID uuid.UUID, limit, offset int) ([]domain.TaskComment, error) {
	return s.comments.ListByTask(ctx, taskID, limit, offset)
}

// AddAttachment records attachment metadata against the task.
func (s *TaskService) AddAttachment(ctx context.Context, taskID uuid.UUID, input AttachmentInput, uploadedBy uuid.UUID) (*domain.TaskAttachment, error) {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	attachment, err := domain.NewTaskAttachment(task, input.FileName, input.ContentType, input.SizeBytes, input.StorageKey, uploadedBy)
	if err != nil {
		return nil, err
	}
	if err := s.attachments.Add(ctx, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

// RemoveAttachment deletes attachment metadata.
func (s *TaskService) RemoveAttachment(ctx context.Context, attachmentID uuid.UUID) error {
	if err := s.attachments.Delete(ctx, attachmentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("attachment", nil)
		}
		return err
	}
	return nil
}

// AddLabel links a workspace label to the task. The label must belong to
// the workspace owning the task's project.
func (s *TaskService) AddLabel(ctx context.Context, taskID, labelID, linkedBy uuid.UUID) error {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return err
	}
	label, err := s.labels.GetByID(ctx, labelID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("label", nil)
		}
		return err
	}
	project, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		return err
	}
	if label.WorkspaceID != project.WorkspaceID {
		return apperrors.NewBusinessRule("label belongs to a different workspace")
	}

	link := domain.NewTaskLabel(task, label, linkedBy)
	return s.labels.Link(ctx, link)
}

// RemoveLabel unlinks a label from the task.
func (s *TaskService) RemoveLabel(ctx context.Context, taskID, labelID uuid.UUID) error {
	if err := s.labels.Unlink(ctx, taskID, labelID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("label link", nil)
		}
		return err
	}
	return nil
}

// ListHistory returns the task's change records, newest first.
func (s *TaskService) ListHistory(ctx context.Context, taskID uuid.UUID, limit, offset int) ([]domain.TaskHistory, error) {
	return s.history.ListByTask(ctx, taskID, limit, offset)
}

// mutate runs a domain mutation inside a transaction, persisting the task,
// any history it recorded, and dispatching the returned event after commit.
func (s *TaskService) mutate(ctx context.Context, taskID uuid.UUID, op func(*domain.TaskItem) (*domain.Event, error)) (*domain.TaskItem, error) {
	var task *domain.TaskItem

	err := s.uow.Within(ctx, func(tx *repository.Tx) error {
		loaded, err := tx.Tasks.GetByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("task", nil)
			}
			return err
		}

		event, err := op(loaded)
		if err != nil {
			return err
		}

		if err := tx.Tasks.Update(ctx, loaded); err != nil {
			return err
		}
		if err := persistHistory(ctx, tx, loaded); err != nil {
			return err
		}
		if event != nil {
			tx.Record(*event)
		}

		task = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTask(ctx, task)
	return task, nil
}

// persistHistory writes history entries the domain recorded during this
// operation. Loaded tasks start with an empty history slice, so everything
// present is new.
func persistHistory(ctx context.Context, tx *repository.Tx, task *domain.TaskItem) error {
	for _, entry := range task.History {
		if err := tx.TaskHistory.Add(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func (s *TaskService) getTask(ctx context.Context, taskID uuid.UUID) (*domain.TaskItem, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("task", nil)
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) loadChildren(ctx context.Context, task *domain.TaskItem) error {
	comments, err := s.comments.ListByTask(ctx, task.ID, 100, 0)
	if err != nil {
		return err
	}
	for i := range comments {
		task.AddComment(&comments[i])
	}

	attachments, err := s.attachments.ListByTask(ctx, task.ID)
	if err != nil {
		return err
	}
	for i := range attachments {
		task.AddAttachment(&attachments[i])
	}

	history, err := s.history.ListByTask(ctx, task.ID, 100, 0)
	if err != nil {
		return err
	}
	task.History = make([]*domain.TaskHistory, 0, len(history))
	for i := range history {
		task.History = append(task.History, &history[i])
	}

	subtasks, err := s.tasks.ListSubtasks(ctx, task.ID)
	if err != nil {
		return err
	}
	for i := range subtasks {
		task.AddSubtask(&subtasks[i])
	}
	return nil
}

func (s *TaskService) invalidateTask(ctx context.Context, task *domain.TaskItem) {
	if task == nil {
		return
	}
	_ = s.cache.Delete(ctx, "task:"+task.ID.String())
	_ = s.cache.DeleteByPrefix(ctx, "project:"+task.ProjectID.String())
}
