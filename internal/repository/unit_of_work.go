package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/events"
)

// Tx bundles transaction-bound repositories and collects the domain events
// produced while the transaction runs.
type Tx struct {
	Users       UserRepository
	Workspaces  WorkspaceRepository
	Projects    ProjectRepository
	Sprints     SprintRepository
	Tasks       TaskRepository
	TaskHistory TaskHistoryRepository
	Comments    TaskCommentRepository
	Attachments TaskAttachmentRepository
	Labels      LabelRepository

	pending []domain.Event
}

// Record queues events for dispatch after the transaction commits.
func (t *Tx) Record(events ...domain.Event) {
	t.pending = append(t.pending, events...)
}

// UnitOfWork runs a function inside a database transaction. Events recorded
// during the transaction are dispatched exactly once, after commit; a
// rollback discards them.
type UnitOfWork struct {
	pool       *pgxpool.Pool
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewUnitOfWork constructs a unit of work over the given pool.
func NewUnitOfWork(pool *pgxpool.Pool, dispatcher events.Dispatcher, logger *zap.Logger) *UnitOfWork {
	return &UnitOfWork{pool: pool, dispatcher: dispatcher, logger: logger}
}

// Within begins a transaction, invokes fn with transaction-bound
// repositories, and commits. Any error rolls the transaction back and drops
// the recorded events.
func (u *UnitOfWork) Within(ctx context.Context, fn func(tx *Tx) error) error {
	pgxTx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	tx := &Tx{
		Users:       NewUserRepository(pgxTx),
		Workspaces:  NewWorkspaceRepository(pgxTx),
		Projects:    NewProjectRepository(pgxTx),
		Sprints:     NewSprintRepository(pgxTx),
		Tasks:       NewTaskRepository(pgxTx),
		TaskHistory: NewTaskHistoryRepository(pgxTx),
		Comments:    NewTaskCommentRepository(pgxTx),
		Attachments: NewTaskAttachmentRepository(pgxTx),
		Labels:      NewLabelRepository(pgxTx),
	}

	if err := fn(tx); err != nil {
		_ = pgxTx.Rollback(ctx)
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		return err
	}

	for _, event := range tx.pending {
		if err := u.dispatcher.Publish(ctx, event); err != nil {
			u.logger.Warn("event dispatch failed",
				zap.String("event_type", string(event.Type)), zap.Error(err))
		}
	}
	return nil
}
