package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/task-tracker/internal/domain"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// MembershipResolver looks up the caller's active role in a workspace.
type MembershipResolver interface {
	MemberRole(ctx context.Context, workspaceID, userID uuid.UUID) (domain.WorkspaceRole, error)
}

var roleRank = map[domain.WorkspaceRole]int{
	domain.RoleGuest:          0,
	domain.RoleMember:         1,
	domain.RoleProjectManager: 2,
	domain.RoleAdmin:          3,
	domain.RoleOwner:          4,
}

// RoleAtLeast reports whether role meets or exceeds the minimum.
func RoleAtLeast(role, min domain.WorkspaceRole) bool {
	return roleRank[role] >= roleRank[min]
}

// RequireWorkspaceRole ensures the authenticated user holds at least the
// given role in the workspace named by the :workspaceId route param.
func RequireWorkspaceRole(resolver MembershipResolver, min domain.WorkspaceRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}

		workspaceID, err := uuid.Parse(c.Params("workspaceId"))
		if err != nil {
			return apperrors.NewValidationError("invalid workspace id", nil)
		}

		role, err := resolver.MemberRole(c.Context(), workspaceID, principal.User.ID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if !RoleAtLeast(role, min) {
			return apperrors.NewForbidden("insufficient workspace role")
		}
		return c.Next()
	}
}
