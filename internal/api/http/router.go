package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-tracker/internal/api/http/handlers"
	"github.com/spec-kit/task-tracker/internal/auth"
	"github.com/spec-kit/task-tracker/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Workspaces     *handlers.WorkspaceHandler
	Projects       *handlers.ProjectHandler
	Tasks          *handlers.TaskHandler
	AuthMiddleware *auth.AuthMiddleware
	Memberships    auth.MembershipResolver
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Post("/logout", cfg.Auth.Logout)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)
	authProtected.Get("/me", cfg.Auth.Me)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Post("/workspaces", cfg.Workspaces.Create)
	protected.Get("/workspaces", cfg.Workspaces.List)

	asMember := auth.RequireWorkspaceRole(cfg.Memberships, domain.RoleGuest)
	asManager := auth.RequireWorkspaceRole(cfg.Memberships, domain.RoleProjectManager)
	asAdmin := auth.RequireWorkspaceRole(cfg.Memberships, domain.RoleAdmin)

	workspace := protected.Group("/workspaces/:workspaceId")
	workspace.Get("", asMember, cfg.Workspaces.Get)
	workspace.Patch("", asAdmin, cfg.Workspaces.Update)
	workspace.Get("/members", asMember, cfg.Workspaces.ListMembers)
	workspace.Post("/members", asAdmin, cfg.Workspaces.AddMember)
	workspace.Patch("/members/:userId", asAdmin, cfg.Workspaces.ChangeRole)
	workspace.Delete("/members/:userId", asAdmin, cfg.Workspaces.RemoveMember)
	workspace.Get("/labels", asMember, cfg.Workspaces.ListLabels)
	workspace.Post("/labels", asManager, cfg.Workspaces.CreateLabel)
	workspace.Patch("/labels/:labelId", asManager, cfg.Workspaces.UpdateLabel)
	workspace.Get("/projects", asMember, cfg.Projects.List)
	workspace.Post("/projects", asManager, cfg.Projects.Create)

	project := protected.Group("/projects/:projectId")
	project.Get("", cfg.Projects.Get)
	project.Patch("", cfg.Projects.Update)
	project.Post("/statuses", cfg.Projects.AddStatus)
	project.Put("/statuses/:statusId/default", cfg.Projects.SetDefaultStatus)
	project.Post("/transitions", cfg.Projects.AddTransition)
	project.Post("/custom-fields", cfg.Projects.AddCustomField)
	project.Get("/sprints", cfg.Projects.ListSprints)
	project.Post("/sprints", cfg.Projects.CreateSprint)
	project.Patch("/sprints/:sprintId", cfg.Projects.UpdateSprint)
	project.Post("/sprints/:sprintId/start", cfg.Projects.StartSprint)
	project.Post("/sprints/:sprintId/complete", cfg.Projects.CompleteSprint)
	project.Get("/tasks", cfg.Tasks.List)
	project.Post("/tasks", cfg.Tasks.Create)
	project.Get("/tasks/key/:friendlyId", cfg.Tasks.GetByFriendlyID)

	task := protected.Group("/tasks/:taskId")
	task.Get("", cfg.Tasks.Get)
	task.Post("/status", cfg.Tasks.ChangeStatus)
	task.Put("/title", cfg.Tasks.UpdateTitle)
	task.Put("/description", cfg.Tasks.UpdateDescription)
	task.Put("/priority", cfg.Tasks.ChangePriority)
	task.Put("/assignee", cfg.Tasks.Assign)
	task.Put("/due-date", cfg.Tasks.SetDueDate)
	task.Put("/story-points", cfg.Tasks.SetStoryPoints)
	task.Put("/sprint", cfg.Tasks.SetSprint)
	task.Put("/custom-fields", cfg.Tasks.SetCustomFields)
	task.Get("/comments", cfg.Tasks.ListComments)
	task.Post("/comments", cfg.Tasks.AddComment)
	task.Patch("/comments/:commentId", cfg.Tasks.EditComment)
	task.Post("/attachments", cfg.Tasks.AddAttachment)
	task.Delete("/attachments/:attachmentId", cfg.Tasks.RemoveAttachment)
	task.Post("/labels", cfg.Tasks.AddLabel)
	task.Delete("/labels/:labelId", cfg.Tasks.RemoveLabel)
	task.Get("/history", cfg.Tasks.ListHistory)
}
