package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/task-tracker/internal/api/http"
	"github.com/spec-kit/task-tracker/internal/api/http/handlers"
	"github.com/spec-kit/task-tracker/internal/auth"
	"github.com/spec-kit/task-tracker/internal/config"
	"github.com/spec-kit/task-tracker/internal/events"
	"github.com/spec-kit/task-tracker/internal/observability"
	"github.com/spec-kit/task-tracker/internal/persistence"
	"github.com/spec-kit/task-tracker/internal/repository"
	"github.com/spec-kit/task-tracker/internal/service"
	"github.com/spec-kit/task-tracker/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	cache := persistence.NewCache(redis, cfg.Redis.CacheTTL(), logger)

	dispatcher := events.NewInMemoryDispatcher()
	pool := pg.PoolHandle()
	uow := repository.NewUnitOfWork(pool, dispatcher, logger)

	userRepo := repository.NewUserRepository(pool)
	workspaceRepo := repository.NewWorkspaceRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	sprintRepo := repository.NewSprintRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	historyRepo := repository.NewTaskHistoryRepository(pool)
	commentRepo := repository.NewTaskCommentRepository(pool)
	attachmentRepo := repository.NewTaskAttachmentRepository(pool)
	labelRepo := repository.NewLabelRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		UnitOfWork: uow,
	})
	workspaceService := service.NewWorkspaceService(service.WorkspaceDependencies{
		WorkspaceRepo: workspaceRepo,
		UserRepo:      userRepo,
		LabelRepo:     labelRepo,
		UnitOfWork:    uow,
	})
	projectService := service.NewProjectService(service.ProjectDependencies{
		ProjectRepo:   projectRepo,
		WorkspaceRepo: workspaceRepo,
		SprintRepo:    sprintRepo,
		Cache:         cache,
		UnitOfWork:    uow,
	})
	taskService := service.NewTaskService(service.TaskDependencies{
		TaskRepo:       taskRepo,
		ProjectRepo:    projectRepo,
		UserRepo:       userRepo,
		SprintRepo:     sprintRepo,
		HistoryRepo:    historyRepo,
		CommentRepo:    commentRepo,
		AttachmentRepo: attachmentRepo,
		LabelRepo:      labelRepo,
		Cache:          cache,
		UnitOfWork:     uow,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Workspaces:     handlers.NewWorkspaceHandler(workspaceService),
		Projects:       handlers.NewProjectHandler(projectService),
		Tasks:          handlers.NewTaskHandler(taskService),
		AuthMiddleware: authMiddleware,
		Memberships:    workspaceService,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("addr", cfg.App.Addr()))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
