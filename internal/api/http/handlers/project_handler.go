package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/task-tracker/internal/api/dto"
	"github.com/spec-kit/task-tracker/internal/auth"
	"github.com/spec-kit/task-tracker/internal/service"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// ProjectHandler exposes project, workflow, custom field and sprint
// endpoints.
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler constructs handler.
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projectService}
}

// Create handles POST /workspaces/:workspaceId/projects.
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	workspaceID, err := parseID(c, "workspaceId")
	if err != nil {
		return err
	}

	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	project, err := h.projects.CreateProject(c.Context(), workspaceID, req.Name, req.Slug, req.Prefix, principal.User.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// List handles GET /workspaces/:workspaceId/projects.
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	workspaceID, err := parseID(c, "workspaceId")
	if err != nil {
		return err
	}
	projects, err := h.projects.ListProjects(c.Context(), workspaceID)
	if err != nil {
		return err
	}

	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, dto.NewProjectResponse(&projects[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /projects/:projectId.
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return err
	}
	project, err := h.projects.GetProject(c.Context(), projectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// Update handles PATCH /projects/:projectId.
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return err
	}

	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	project, err := h.projects.UpdateProject(c.Context(), projectID, req.Name, req.Description, req.IconURL, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// AddStatus handles POST /projects/:projectId/statuses.
func (h *ProjectHandler) AddStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return err
	}

	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	status, err := h.projects.AddStatus(c.Context(), projectID, service.StatusInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Category:    req.Category,
		Order:       req.Order,
		IsDefault:   req.IsDefault,
	}, principal.User.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStatusResponse(status)})
}

// AddTransition handles POST /projects/:projectId/transitions.
func (h *ProjectHandler) AddTransition(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return err
	}

	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	fromID, err := uuid.Parse(req.FromStatusID)
	if err != nil {
		return apperrors.NewValidationError("invalid from_status_id", nil)
	}
	toID, err := uuid.Parse(req.ToStatusID)
	if err != nil {
		return apperrors.NewValidationError("invalid to_status_id", nil)
	}
	var autoAssign *uuid.UUID
	if req.AutoAssignUserID != nil {
		id, err := uuid.Parse(*req.AutoAssignUserID)
		if err != nil {
			return apperrors.NewValidationError("invalid auto_assign_user_id", nil)
		}
		autoAssign = &id
	}

	transition, err := h.projects.AddTransition(c.Context(), projectID, service.TransitionInput{
		FromStatusID:     fromID,
		ToStatusID:       toID,
		Name:             req.Name,
		AutoAssignUserID: autoAssign,
		RequiresComment:  req.RequiresComment,
	}, principal.User.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTransitionResponse(transition)})
}

// SetDefaultStatus handles PUT /projects/:projectId/statuses/:statusId/default.
func (h *ProjectHandler) SetDefaultStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return err
	}
	statusID, err := parseID(c, "statusId")
	if err != nil {
		return err
	}

	if err := h.projects.SetDefaultStatus(c.Context(), projectID, statusID, principal.User.ID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddCustomField handles POST /projects/:projectId/custom-fields.
func (h *ProjectHandler) AddCustomField(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return err
	}

	var req dto.CustomFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	field, err := h.projects.AddCustomField(c.Context(), projectID, req.Name, req.FieldType, req.IsRequired, req.Options, req.Order, principal.User.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCustomFieldResponse(field)})
}

// CreateSprint handles POST /projects/:projectId/sprints.
func (h *ProjectHandler) CreateSprint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return err
	}

	var req dto.SprintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sprint, err := h.projects.CreateSprint(c.Context(), projectID, req.Name, req.Goal, req.StartDate, req.EndDate, principal.User.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSprintResponse(sprint)})
}

// ListSprints handles GET /projects/:projectId/sprints.
func (h *ProjectHandler) ListSprints(c *fiber.Ctx) error {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return err
	}
	sprints, err := h.projects.ListSprints(c.Context(), projectID)
	if err != nil {
		return err
	}

	items := make([]dto.SprintResponse, 0, len(sprints))
	for i := range sprints {
		items = append(items, dto.NewSprintResponse(&sprints[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateSprint handles PATCH /projects/:projectId/sprints/:sprintId.
func (h *ProjectHandler) UpdateSprint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	sprintID, err := parseID(c, "sprintId")
	if err != nil {
		return err
	}

	var req dto.SprintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sprint, err := h.projects.UpdateSprint(c.Context(), sprintID, req.Name, req.Goal, req.StartDate, req.EndDate, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSprintResponse(sprint)})
}

// StartSprint handles POST /projects/:projectId/sprints/:sprintId/start.
func (h *ProjectHandler) StartSprint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	sprintID, err := parseID(c, "sprintId")
	if err != nil {
		return err
	}

	sprint, err := h.projects.StartSprint(c.Context(), sprintID, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSprintResponse(sprint)})
}

// CompleteSprint handles POST /projects/:projectId/sprints/:sprintId/complete.
func (h *ProjectHandler) CompleteSprint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	sprintID, err := parseID(c, "sprintId")
	if err != nil {
		return err
	}

	sprint, err := h.projects.CompleteSprint(c.Context(), sprintID, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSprintResponse(sprint)})
}
