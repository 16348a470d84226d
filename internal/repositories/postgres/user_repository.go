package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/task-manager/internal/models"
	"github.com/adanyl0v/task-manager/internal/repositories"
)

// UserRepository stores users in postgres. The users.email column is
// UNIQUE, so Save reports a duplicate email as repositories.ErrAlreadyExists.
type UserRepository struct {
	logger zerolog.Logger
	db     DB
}

var _ repositories.UserRepository = (*UserRepository)(nil)

func NewUserRepository(logger zerolog.Logger, db DB) *UserRepository {
	return &UserRepository{
		logger: logger,
		db:     db,
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	id, ok := repositories.CanonicalID(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}

	const selectUserByIDQuery = `
SELECT id,
       name,
       email,
       role,
       created_at,
       updated_at
FROM users
WHERE id = $1
`
	return r.selectOne(ctx, selectUserByIDQuery, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const selectUserByEmailQuery = `
SELECT id,
       name,
       email,
       role,
       created_at,
       updated_at
FROM users
WHERE email = $1
`
	return r.selectOne(ctx, selectUserByEmailQuery, models.NormalizeEmail(email))
}

func (r *UserRepository) selectOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var (
		u    models.UserSnapshot
		role string
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Msg("failed to select user")
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	r.logger.Debug().
		Str("user_id", u.ID).
		Msg("selected user")

	u.Role = models.UserRole(role)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return models.RestoreUser(u), nil
}

func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	u := user.Snapshot()
	id, ok := repositories.CanonicalID(u.ID)
	if !ok {
		return repositories.ErrInvalidID
	}
	u.ID = id

	const insertUserQuery = `
INSERT INTO users (id,
                   name,
                   email,
                   role,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.db.Exec(
		ctx,
		insertUserQuery,
		u.ID,
		u.Name,
		u.Email,
		string(u.Role),
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Error().
				Str("email", u.Email).
				Msg("user with this email already exists")
			return repositories.ErrAlreadyExists
		}

		r.logger.Error().
			Err(err).
			Str("user_id", u.ID).
			Msg("failed to insert user")
		return fmt.Errorf("failed to insert user: %w", err)
	}
	r.logger.Debug().
		Str("user_id", u.ID).
		Msg("inserted user")

	return nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const existsUserByEmailQuery = `
SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)
`
	var exists bool
	err := r.db.QueryRow(ctx, existsUserByEmailQuery, models.NormalizeEmail(email)).Scan(&exists)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to check user existence")
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}
