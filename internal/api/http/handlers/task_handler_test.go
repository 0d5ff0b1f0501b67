package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/spec-kit/task-tracker/internal/service"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// Mutating endpoints must reject a request carrying no authenticated
// principal instead of dereferencing a missing one.
func TestMutatingEndpointsRequirePrincipal(t *testing.T) {
	app := fiber.New()
	handler := NewTaskHandler(service.NewTaskService(service.TaskDependencies{}))

	endpoints := map[string]fiber.Handler{
		"create":        handler.Create,
		"change status": handler.ChangeStatus,
		"assign":        handler.Assign,
		"set due date":  handler.SetDueDate,
		"add comment":   handler.AddComment,
		"add label":     handler.AddLabel,
	}

	for name, endpoint := range endpoints {
		t.Run(name, func(t *testing.T) {
			ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
			defer app.ReleaseCtx(ctx)

			err := endpoint(ctx)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
		})
	}
}
