package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-tracker/internal/domain"
)

// UserRepository defines persistence access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	GetByRefreshToken(ctx context.Context, token string) (*domain.User, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, display_name, avatar_url, is_active, external_id,
       refresh_token, refresh_token_expires_at, created_at, created_by, updated_at, updated_by`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, email, password_hash, display_name, avatar_url, is_active, external_id,
                           refresh_token, refresh_token_expires_at, created_at, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Email.String(),
		user.PasswordHash,
		user.DisplayName,
		user.AvatarURL,
		user.IsActive,
		user.ExternalID,
		user.RefreshToken,
		user.RefreshTokenExpiresAt,
		user.CreatedAt,
		user.CreatedBy,
	)
	return err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET display_name=$1, avatar_url=$2, is_active=$3, password_hash=$4,
            refresh_token=$5, refresh_token_expires_at=$6, updated_at=$7, updated_by=$8
        WHERE id=$9`

	cmd, err := r.db.Exec(ctx, query,
		user.DisplayName,
		user.AvatarURL,
		user.IsActive,
		user.PasswordHash,
		user.RefreshToken,
		user.RefreshTokenExpiresAt,
		user.UpdatedAt,
		user.UpdatedBy,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email.String())
}

func (r *userRepository) GetByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE refresh_token=$1`, token)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		user  domain.User
		email string
	)
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.AvatarURL,
		&user.IsActive,
		&user.ExternalID,
		&user.RefreshToken,
		&user.RefreshTokenExpiresAt,
		&user.CreatedAt,
		&user.CreatedBy,
		&user.UpdatedAt,
		&user.UpdatedBy,
	); err != nil {
		return nil, err
	}

	parsed, err := domain.NewEmail(email)
	if err != nil {
		return nil, err
	}
	user.Email = parsed
	return &user, nil
}
