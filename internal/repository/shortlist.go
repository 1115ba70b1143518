package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edupath/counsel/internal/models"
	"github.com/google/uuid"
)

// PostgresShortlistRepository implements shortlist persistence against
// PostgreSQL.
type PostgresShortlistRepository struct {
	DB *sql.DB
}

// NewPostgresShortlistRepository creates a new PostgresShortlistRepository
// using the provided *sql.DB.
func NewPostgresShortlistRepository(db *sql.DB) *PostgresShortlistRepository {
	return &PostgresShortlistRepository{DB: db}
}

// ListByUser returns the user's shortlist rows joined with university
// details, in insertion order.
func (r *PostgresShortlistRepository) ListByUser(ctx context.Context, userID string) ([]models.ShortlistItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT s.university_id, u.name, u.country, s.category, s.locked
		FROM shortlists s JOIN universities u ON u.id = s.university_id
		WHERE s.user_id = $1 ORDER BY s.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list shortlists: %w", err)
	}
	defer rows.Close()

	var items []models.ShortlistItem
	for rows.Next() {
		var it models.ShortlistItem
		if err := rows.Scan(&it.UniversityID, &it.UniversityName, &it.Country, &it.Category, &it.Locked); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CountByUser returns the number of shortlist rows owned by userID.
func (r *PostgresShortlistRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM shortlists WHERE user_id = $1
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count shortlists: %w", err)
	}
	return count, nil
}

// CountLockedByUser returns the number of locked shortlist rows owned by
// userID.
func (r *PostgresShortlistRepository) CountLockedByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM shortlists WHERE user_id = $1 AND locked = true
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count locked shortlists: %w", err)
	}
	return count, nil
}

// Exists checks whether userID already shortlisted universityID.
func (r *PostgresShortlistRepository) Exists(ctx context.Context, userID, universityID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM shortlists WHERE user_id = $1 AND university_id = $2)`,
		userID, universityID,
	).Scan(&exists)
	return exists, err
}

// Get fetches the shortlist row for (userID, universityID). Returns
// ErrNotFound if absent.
func (r *PostgresShortlistRepository) Get(ctx context.Context, userID, universityID string) (*models.Shortlist, error) {
	var s models.Shortlist
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, university_id, category, locked
		FROM shortlists WHERE user_id = $1 AND university_id = $2
	`, userID, universityID).Scan(&s.ID, &s.UserID, &s.UniversityID, &s.Category, &s.Locked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get shortlist: %w", err)
	}
	return &s, nil
}

// Create inserts a new shortlist row. The (user, university) uniqueness is
// enforced by the schema; callers check Exists first to report idempotent
// outcomes instead of errors.
func (r *PostgresShortlistRepository) Create(ctx context.Context, s *models.Shortlist) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO shortlists (id, user_id, university_id, category, locked)
		VALUES ($1, $2, $3, $4, false)
	`, s.ID, s.UserID, s.UniversityID, s.Category)
	if err != nil {
		return fmt.Errorf("insert shortlist: %w", err)
	}
	return nil
}

// Lock marks the shortlist row for (userID, universityID) as locked.
func (r *PostgresShortlistRepository) Lock(ctx context.Context, userID, universityID string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE shortlists SET locked = true WHERE user_id = $1 AND university_id = $2
	`, userID, universityID)
	if err != nil {
		return fmt.Errorf("lock shortlist: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UnlockAndClearTasks releases the lock on (userID, universityID) and
// deletes every task tied to that university, completed ones included, in a
// single transaction.
func (r *PostgresShortlistRepository) UnlockAndClearTasks(ctx context.Context, userID, universityID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE shortlists SET locked = false WHERE user_id = $1 AND university_id = $2
	`, userID, universityID)
	if err != nil {
		return fmt.Errorf("unlock shortlist: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM tasks WHERE user_id = $1 AND university_id = $2
	`, userID, universityID); err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
