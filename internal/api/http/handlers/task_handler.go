package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/task-tracker/internal/api/dto"
	"github.com/spec-kit/task-tracker/internal/auth"
	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/repository"
	"github.com/spec-kit/task-tracker/internal/service"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// TaskHandler exposes task lifecycle endpoints.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler constructs handler.
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: taskService}
}

// Create handles POST /projects/:projectId/tasks.
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return err
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TaskCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Priority:    req.Priority,
	}
	if input.StatusID, err = parseOptionalID(req.StatusID, "status_id"); err != nil {
		return err
	}
	if input.AssigneeID, err = parseOptionalID(req.AssigneeID, "assignee_id"); err != nil {
		return err
	}
	if input.ParentTaskID, err = parseOptionalID(req.ParentTaskID, "parent_task_id"); err != nil {
		return err
	}

	task, err := h.tasks.CreateTask(c.Context(), projectID, principal.User, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTaskDetail(task)})
}

// List handles GET /projects/:projectId/tasks.
func (h *TaskHandler) List(c *fiber.Ctx) error {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return err
	}

	filter := repository.TaskFilter{
		ProjectID: &projectID,
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
	}
	if filter.SprintID, err = parseOptionalQuery(c, "sprint_id"); err != nil {
		return err
	}
	if filter.AssigneeID, err = parseOptionalQuery(c, "assignee_id"); err != nil {
		return err
	}
	if filter.ReporterID, err = parseOptionalQuery(c, "reporter_id"); err != nil {
		return err
	}
	if filter.ParentTaskID, err = parseOptionalQuery(c, "parent_task_id"); err != nil {
		return err
	}
	if raw := c.Query("status_id"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				return apperrors.NewValidationError("invalid status_id", nil)
			}
			filter.StatusIDs = append(filter.StatusIDs, id)
		}
	}
	if raw := c.Query("priority"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			filter.Priorities = append(filter.Priorities, domain.TaskPriority(strings.TrimSpace(part)))
		}
	}
	if raw := c.Query("type"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			filter.Types = append(filter.Types, domain.TaskType(strings.TrimSpace(part)))
		}
	}
	if term := c.Query("search"); term != "" {
		filter.SearchTerm = &term
	}

	tasks, err := h.tasks.ListTasks(c.Context(), filter)
	if err != nil {
		return err
	}

	items := make([]dto.TaskSummary, 0, len(tasks))
	for i := range tasks {
		items = append(items, dto.NewTaskSummary(&tasks[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /tasks/:taskId.
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}
	task, err := h.tasks.GetTask(c.Context(), taskID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskDetail(task)})
}

// GetByFriendlyID handles GET /projects/:projectId/tasks/key/:friendlyId,
// e.g. /tasks/key/ENG-42.
func (h *TaskHandler) GetByFriendlyID(c *fiber.Ctx) error {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return err
	}
	task, err := h.tasks.GetTaskByFriendlyID(c.Context(), projectID, c.Params("friendlyId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskDetail(task)})
}

// ChangeStatus handles POST /tasks/:taskId/status.
func (h *TaskHandler) ChangeStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	statusID, err := uuid.Parse(req.StatusID)
	if err != nil {
		return apperrors.NewValidationError("invalid status_id", nil)
	}

	task, err := h.tasks.ChangeStatus(c.Context(), taskID, statusID, principal.User, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskDetail(task)})
}

// UpdateTitle handles PUT /tasks/:taskId/title.
func (h *TaskHandler) UpdateTitle(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.UpdateTitleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.tasks.UpdateTitle(c.Context(), taskID, req.Title, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskDetail(task)})
}

// UpdateDescription handles PUT /tasks/:taskId/description.
func (h *TaskHandler) UpdateDescription(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.UpdateDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.tasks.UpdateDescription(c.Context(), taskID, req.Description, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskDetail(task)})
}

// ChangePriority handles PUT /tasks/:taskId/priority.
func (h *TaskHandler) ChangePriority(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.ChangePriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.tasks.ChangePriority(c.Context(), taskID, req.Priority, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskDetail(task)})
}

// Assign handles PUT /tasks/:taskId/assignee. A null assignee unassigns.
func (h *TaskHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	assigneeID, err := parseOptionalID(req.AssigneeID, "assignee_id")
	if err != nil {
		return err
	}

	task, err := h.tasks.AssignTask(c.Context(), taskID, assigneeID, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskDetail(task)})
}

// SetDueDate handles PUT /tasks/:taskId/due-date.
func (h *TaskHandler) SetDueDate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.DueDateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.tasks.SetDueDate(c.Context(), taskID, req.DueDate, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskDetail(task)})
}

// SetStoryPoints handles PUT /tasks/:taskId/story-points.
func (h *TaskHandler) SetStoryPoints(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.StoryPointsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.tasks.SetStoryPoints(c.Context(), taskID, req.StoryPoints, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskDetail(task)})
}

// SetSprint handles PUT /tasks/:taskId/sprint. A null sprint removes the
// task from its sprint.
func (h *TaskHandler) SetSprint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.SprintAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sprintID, err := parseOptionalID(req.SprintID, "sprint_id")
	if err != nil {
		return err
	}

	task, err := h.tasks.SetSprint(c.Context(), taskID, sprintID, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskDetail(task)})
}

// SetCustomFields handles PUT /tasks/:taskId/custom-fields.
func (h *TaskHandler) SetCustomFields(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.CustomFieldsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.tasks.SetCustomFields(c.Context(), taskID, req.Values, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskDetail(task)})
}

// AddComment handles POST /tasks/:taskId/comments.
func (h *TaskHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	parentID, err := parseOptionalID(req.ParentCommentID, "parent_comment_id")
	if err != nil {
		return err
	}

	comment, err := h.tasks.AddComment(c.Context(), taskID, principal.User, req.Content, parentID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// EditComment handles PATCH /tasks/:taskId/comments/:commentId.
func (h *TaskHandler) EditComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return err
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.tasks.EditComment(c.Context(), commentID, req.Content, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// ListComments handles GET /tasks/:taskId/comments.
func (h *TaskHandler) ListComments(c *fiber.Ctx) error {
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}

	comments, err := h.tasks.ListComments(c.Context(), taskID, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, dto.NewCommentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddAttachment handles POST /tasks/:taskId/attachments.
func (h *TaskHandler) AddAttachment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.TaskAttachmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	attachment, err := h.tasks.AddAttachment(c.Context(), taskID, service.AttachmentInput{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		StorageKey:  req.StorageKey,
	}, principal.User.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAttachmentResponse(attachment)})
}

// RemoveAttachment handles DELETE /tasks/:taskId/attachments/:attachmentId.
func (h *TaskHandler) RemoveAttachment(c *fiber.Ctx) error {
	attachmentID, err := parseID(c, "attachmentId")
	if err != nil {
		return err
	}
	if err := h.tasks.RemoveAttachment(c.Context(), attachmentID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddLabel handles POST /tasks/:taskId/labels.
func (h *TaskHandler) AddLabel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.TaskLabelRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	labelID, err := uuid.Parse(req.LabelID)
	if err != nil {
		return apperrors.NewValidationError("invalid label_id", nil)
	}

	if err := h.tasks.AddLabel(c.Context(), taskID, labelID, principal.User.ID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// RemoveLabel handles DELETE /tasks/:taskId/labels/:labelId.
func (h *TaskHandler) RemoveLabel(c *fiber.Ctx) error {
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}
	labelID, err := parseID(c, "labelId")
	if err != nil {
		return err
	}
	if err := h.tasks.RemoveLabel(c.Context(), taskID, labelID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListHistory handles GET /tasks/:taskId/history.
func (h *TaskHandler) ListHistory(c *fiber.Ctx) error {
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return err
	}

	history, err := h.tasks.ListHistory(c.Context(), taskID, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	items := make([]dto.HistoryResponse, 0, len(history))
	for i := range history {
		items = append(items, dto.NewHistoryResponse(&history[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseOptionalID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid "+field, nil)
	}
	return &id, nil
}

func parseOptionalQuery(c *fiber.Ctx, param string) (*uuid.UUID, error) {
	raw := c.Query(param)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid "+param, nil)
	}
	return &id, nil
}
