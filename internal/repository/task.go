package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edupath/counsel/internal/models"
	"github.com/google/uuid"
)

// PostgresTaskRepository implements task persistence against PostgreSQL.
type PostgresTaskRepository struct {
	DB *sql.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository using the
// provided *sql.DB.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

func scanTasks(rows *sql.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var uniID sql.NullString
		if err := rows.Scan(&t.ID, &t.UserID, &uniID, &t.Title, &t.Description, &t.Status, &t.GeneratedByAI); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if uniID.Valid {
			t.UniversityID = &uniID.String
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ListByUser returns all tasks owned by userID in insertion order.
func (r *PostgresTaskRepository) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, university_id, title, description, status, generated_by_ai
		FROM tasks WHERE user_id = $1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

// ListCompleted returns userID's DONE tasks.
func (r *PostgresTaskRepository) ListCompleted(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, university_id, title, description, status, generated_by_ai
		FROM tasks WHERE user_id = $1 AND status = $2 ORDER BY id
	`, userID, models.TaskDone)
	if err != nil {
		return nil, fmt.Errorf("list completed tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

// ListDetailed returns all tasks owned by userID joined with the university
// name where one is attached.
func (r *PostgresTaskRepository) ListDetailed(ctx context.Context, userID string) ([]models.TaskDetail, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.university_id, t.title, t.description, t.status, t.generated_by_ai,
		       COALESCE(u.name, '')
		FROM tasks t LEFT JOIN universities u ON u.id = t.university_id
		WHERE t.user_id = $1 ORDER BY t.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var details []models.TaskDetail
	for rows.Next() {
		var d models.TaskDetail
		var uniID sql.NullString
		if err := rows.Scan(&d.ID, &d.UserID, &uniID, &d.Title, &d.Description, &d.Status, &d.GeneratedByAI, &d.UniversityName); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if uniID.Valid {
			d.UniversityID = &uniID.String
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// CountPending returns the number of PENDING tasks owned by userID.
func (r *PostgresTaskRepository) CountPending(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND status = $2
	`, userID, models.TaskPending).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending tasks: %w", err)
	}
	return count, nil
}

// Get fetches one task by id, scoped to its owner. Returns ErrNotFound when
// the task does not exist or belongs to another user.
func (r *PostgresTaskRepository) Get(ctx context.Context, userID, taskID string) (*models.Task, error) {
	var t models.Task
	var uniID sql.NullString
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, university_id, title, description, status, generated_by_ai
		FROM tasks WHERE id = $1 AND user_id = $2
	`, taskID, userID).Scan(&t.ID, &t.UserID, &uniID, &t.Title, &t.Description, &t.Status, &t.GeneratedByAI)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if uniID.Valid {
		t.UniversityID = &uniID.String
	}
	return &t, nil
}

// InsertMany inserts the given tasks in one transaction, assigning IDs
// where missing.
func (r *PostgresTaskRepository) InsertMany(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tasks {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.Status == "" {
			t.Status = models.TaskPending
		}
		var uniID sql.NullString
		if t.UniversityID != nil {
			uniID = sql.NullString{String: *t.UniversityID, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, user_id, university_id, title, description, status, generated_by_ai)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, t.ID, t.UserID, uniID, t.Title, t.Description, t.Status, t.GeneratedByAI); err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// MarkDone flips the task's status to DONE. Returns ErrNotFound when the
// task does not exist or belongs to another user.
func (r *PostgresTaskRepository) MarkDone(ctx context.Context, userID, taskID string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE tasks SET status = $3 WHERE id = $1 AND user_id = $2
	`, taskID, userID, models.TaskDone)
	if err != nil {
		return fmt.Errorf("mark task done: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
