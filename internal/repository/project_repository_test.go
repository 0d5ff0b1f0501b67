package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/task-tracker/internal/domain"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// stubDB answers Exec with a canned command tag and records the call. The
// paths under test never reach Query or QueryRow.
type stubDB struct {
	tag  pgconn.CommandTag
	err  error
	sql  string
	args []any
}

func (s *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.sql = sql
	s.args = args
	return s.tag, s.err
}

func (s *stubDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("unexpected Query: " + sql)
}

func (s *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("unexpected QueryRow: " + sql)
}

func TestProjectUpdateVersionGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("matched row bumps the version", func(t *testing.T) {
		db := &stubDB{tag: pgconn.NewCommandTag("UPDATE 1")}
		repo := NewProjectRepository(db)

		project := &domain.Project{ID: uuid.New(), Name: "Engineering", NextTaskNumber: 7, Version: 4}
		require.NoError(t, repo.Update(ctx, project))
		assert.EqualValues(t, 5, project.Version)

		require.NotEmpty(t, db.args)
		assert.EqualValues(t, 4, db.args[len(db.args)-1], "WHERE clause must guard on the loaded version")
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		db := &stubDB{tag: pgconn.NewCommandTag("UPDATE 0")}
		repo := NewProjectRepository(db)

		project := &domain.Project{ID: uuid.New(), Version: 4}
		err := repo.Update(ctx, project)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "CONFLICT"))
		assert.EqualValues(t, 4, project.Version, "a rejected write must not advance the in-memory version")
	})
}
