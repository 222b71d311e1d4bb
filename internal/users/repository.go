package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateUser(ctx context.Context, email string, passwordHash string) (*WebUser, error) {
	query := `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, password_hash, created_at, updated_at
	`

	var user WebUser
	err := r.db.GetContext(ctx, &user, query, uuid.NewString(), email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return &user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*WebUser, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)
	`
	var user WebUser
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading user by email: %w", err)
	}
	return &user, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (*WebUser, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user WebUser
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading user by ID: %w", err)
	}
	return &user, nil
}

// CountRoles returns how many user_roles rows match userID and role.
func (r *Repository) CountRoles(ctx context.Context, userID, role string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM user_roles
		WHERE user_id = $1 AND role = $2
	`
	var n int
	if err := r.db.GetContext(ctx, &n, query, userID, role); err != nil {
		return 0, fmt.Errorf("error counting role %s for user %s: %w", role, userID, err)
	}
	return n, nil
}

func (r *Repository) GrantRole(ctx context.Context, userID, role string) error {
	query := `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID, role); err != nil {
		return fmt.Errorf("error granting role %s to user %s: %w", role, userID, err)
	}
	return nil
}
