package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/models"
)

// UserRepo implements user persistence over postgres
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser inserts a new user account
func (r *UserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = models.RoleClient
	}

	query := `
		INSERT INTO users (id, username, password_hash, phone, role, telegram_id, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Phone,
		user.Role,
		user.TelegramID,
		user.Rating,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("username or phone already taken")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create user", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by their id
func (r *UserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, phone, role, telegram_id, rating, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get user", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by their unique username
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, phone, role, telegram_id, rating, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get user", err)
	}
	return &user, nil
}

// UpdateUserRole changes a user's role, used to promote station owners
func (r *UserRepo) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) error {
	query := `UPDATE users SET role = $1, updated_at = now() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, role, id)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to update user role", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}

// UpdateUserRating stores a recomputed aggregate rating
func (r *UserRepo) UpdateUserRating(ctx context.Context, id uuid.UUID, rating float64) error {
	query := `UPDATE users SET rating = $1, updated_at = now() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, rating, id)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to update user rating", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}
