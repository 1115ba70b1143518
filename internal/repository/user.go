package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edupath/counsel/internal/models"
	"github.com/google/uuid"
)

// PostgresUserRepository implements user persistence against PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// EmailExists checks whether a user with the specified email exists.
func (r *PostgresUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new user together with an empty profile and a PROFILE
// stage row, all in one transaction. The generated user ID is written back
// into user.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4)
	`, user.ID, user.Name, user.Email, user.PasswordHash); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO profiles (user_id) VALUES ($1)
	`, user.ID); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_stages (user_id, current_stage) VALUES ($1, $2)
	`, user.ID, models.StageProfile); err != nil {
		return fmt.Errorf("insert stage: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetByEmail fetches a user by email. Returns ErrNotFound if no user exists.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}
