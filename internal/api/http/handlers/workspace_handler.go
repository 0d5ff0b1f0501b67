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

// WorkspaceHandler exposes workspace, membership and label endpoints.
type WorkspaceHandler struct {
	workspaces *service.WorkspaceService
}

// NewWorkspaceHandler constructs handler.
func NewWorkspaceHandler(workspaceService *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaceService}
}

// Create handles POST /workspaces.
func (h *WorkspaceHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateWorkspaceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	workspace, err := h.workspaces.CreateWorkspace(c.Context(), principal.User, req.Name, req.Slug)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewWorkspaceResponse(workspace)})
}

// List handles GET /workspaces.
func (h *WorkspaceHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	workspaces, err := h.workspaces.ListWorkspaces(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}

	items := make([]dto.WorkspaceResponse, 0, len(workspaces))
	for i := range workspaces {
		items = append(items, dto.NewWorkspaceResponse(&workspaces[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /workspaces/:workspaceId.
func (h *WorkspaceHandler) Get(c *fiber.Ctx) error {
	workspaceID, err := parseID(c, "workspaceId")
	if err != nil {
		return err
	}
	workspace, err := h.workspaces.GetWorkspace(c.Context(), workspaceID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkspaceResponse(workspace)})
}

// Update handles PATCH /workspaces/:workspaceId.
func (h *WorkspaceHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	workspaceID, err := parseID(c, "workspaceId")
	if err != nil {
		return err
	}

	var req dto.UpdateWorkspaceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	workspace, err := h.workspaces.UpdateWorkspace(c.Context(), workspaceID, req.Name, req.Description, req.LogoURL, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkspaceResponse(workspace)})
}

// AddMember handles POST /workspaces/:workspaceId/members.
func (h *WorkspaceHandler) AddMember(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	workspaceID, err := parseID(c, "workspaceId")
	if err != nil {
		return err
	}

	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return apperrors.NewValidationError("invalid user_id", nil)
	}

	member, err := h.workspaces.AddMember(c.Context(), workspaceID, userID, req.Role, principal.User.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMemberResponse(member)})
}

// RemoveMember handles DELETE /workspaces/:workspaceId/members/:userId.
func (h *WorkspaceHandler) RemoveMember(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	workspaceID, err := parseID(c, "workspaceId")
	if err != nil {
		return err
	}
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}

	if err := h.workspaces.RemoveMember(c.Context(), workspaceID, userID, principal.User.ID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ChangeRole handles PATCH /workspaces/:workspaceId/members/:userId.
func (h *WorkspaceHandler) ChangeRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	workspaceID, err := parseID(c, "workspaceId")
	if err != nil {
		return err
	}
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}

	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	member, err := h.workspaces.ChangeMemberRole(c.Context(), workspaceID, userID, req.Role, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMemberResponse(member)})
}

// ListMembers handles GET /workspaces/:workspaceId/members.
func (h *WorkspaceHandler) ListMembers(c *fiber.Ctx) error {
	workspaceID, err := parseID(c, "workspaceId")
	if err != nil {
		return err
	}
	workspace, err := h.workspaces.GetWorkspace(c.Context(), workspaceID)
	if err != nil {
		return err
	}

	items := make([]dto.MemberResponse, 0, len(workspace.Members))
	for _, member := range workspace.Members {
		if member.IsDeleted {
			continue
		}
		items = append(items, dto.NewMemberResponse(member))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateLabel handles POST /workspaces/:workspaceId/labels.
func (h *WorkspaceHandler) CreateLabel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	workspaceID, err := parseID(c, "workspaceId")
	if err != nil {
		return err
	}

	var req dto.LabelRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	label, err := h.workspaces.CreateLabel(c.Context(), workspaceID, req.Name, req.Color, principal.User.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewLabelResponse(label)})
}

// UpdateLabel handles PATCH /workspaces/:workspaceId/labels/:labelId.
func (h *WorkspaceHandler) UpdateLabel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	labelID, err := parseID(c, "labelId")
	if err != nil {
		return err
	}

	var req dto.LabelRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	label, err := h.workspaces.UpdateLabel(c.Context(), labelID, req.Name, req.Color, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLabelResponse(label)})
}

// ListLabels handles GET /workspaces/:workspaceId/labels.
func (h *WorkspaceHandler) ListLabels(c *fiber.Ctx) error {
	workspaceID, err := parseID(c, "workspaceId")
	if err != nil {
		return err
	}
	labels, err := h.workspaces.ListLabels(c.Context(), workspaceID)
	if err != nil {
		return err
	}

	items := make([]dto.LabelResponse, 0, len(labels))
	for i := range labels {
		items = append(items, dto.NewLabelResponse(&labels[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("invalid "+param, nil)
	}
	return id, nil
}
