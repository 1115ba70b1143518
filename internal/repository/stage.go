package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edupath/counsel/internal/models"
	"github.com/google/uuid"
)

// PostgresStageRepository implements stage persistence against PostgreSQL.
// Stage rows are mutated only through the compare-and-swap methods below.
type PostgresStageRepository struct {
	DB *sql.DB
}

// NewPostgresStageRepository creates a new PostgresStageRepository using the
// provided *sql.DB.
func NewPostgresStageRepository(db *sql.DB) *PostgresStageRepository {
	return &PostgresStageRepository{DB: db}
}

// Get returns the current stage for userID. Returns ErrNotFound if the user
// has no stage row.
func (r *PostgresStageRepository) Get(ctx context.Context, userID string) (models.Stage, error) {
	var stage models.Stage
	err := r.DB.QueryRowContext(ctx, `
		SELECT current_stage FROM user_stages WHERE user_id = $1
	`, userID).Scan(&stage)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get stage: %w", err)
	}
	return stage, nil
}

// Advance moves userID from one stage to the next. The update only matches
// when the stored stage still equals from, which makes concurrent
// transitions lose instead of double-applying; a miss returns
// ErrStageConflict.
func (r *PostgresStageRepository) Advance(ctx context.Context, userID string, from, to models.Stage) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE user_stages SET current_stage = $3 WHERE user_id = $1 AND current_stage = $2
	`, userID, from, to)
	if err != nil {
		return fmt.Errorf("advance stage: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrStageConflict
	}
	return nil
}

// EnterApplication moves userID into the APPLICATION stage and generates the
// application checklist, committing both as one transaction so a generation
// failure never leaves the stage change behind.
//
// When the user is in FINALIZE, at least one locked shortlist is required
// (ErrNoLockedShortlist otherwise) and the stage is advanced. When the user
// is already in APPLICATION the call is idempotent and only fills in missing
// checklists. Any other stage returns ErrWrongStage.
//
// checklist builds the standard tasks for one locked university; it is only
// invoked for universities that have no tasks yet, so partial completion
// never regenerates.
func (r *PostgresStageRepository) EnterApplication(
	ctx context.Context,
	userID string,
	checklist func(universityID, universityName string) []models.Task,
) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var stage models.Stage
	err = tx.QueryRowContext(ctx, `
		SELECT current_stage FROM user_stages WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&stage)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lock stage: %w", err)
	}

	switch stage {
	case models.StageApplication:
		// Already entered; only reconcile missing checklists below.
	case models.StageFinalize:
		var locked int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM shortlists WHERE user_id = $1 AND locked = true
		`, userID).Scan(&locked); err != nil {
			return 0, fmt.Errorf("count locked shortlists: %w", err)
		}
		if locked < 1 {
			return 0, ErrNoLockedShortlist
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE user_stages SET current_stage = $2 WHERE user_id = $1
		`, userID, models.StageApplication); err != nil {
			return 0, fmt.Errorf("advance stage: %w", err)
		}
	default:
		return 0, ErrWrongStage
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT s.university_id, u.name
		FROM shortlists s JOIN universities u ON u.id = s.university_id
		WHERE s.user_id = $1 AND s.locked = true
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("list locked shortlists: %w", err)
	}
	type lockedUni struct{ id, name string }
	var unis []lockedUni
	for rows.Next() {
		var u lockedUni
		if err := rows.Scan(&u.id, &u.name); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan: %w", err)
		}
		unis = append(unis, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("list locked shortlists: %w", err)
	}

	created := 0
	for _, u := range unis {
		var existing int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND university_id = $2
		`, userID, u.id).Scan(&existing); err != nil {
			return 0, fmt.Errorf("count tasks: %w", err)
		}
		if existing > 0 {
			continue
		}
		for _, task := range checklist(u.id, u.name) {
			if task.ID == "" {
				task.ID = uuid.NewString()
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO tasks (id, user_id, university_id, title, description, status, generated_by_ai)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, task.ID, userID, u.id, task.Title, task.Description, models.TaskPending, task.GeneratedByAI); err != nil {
				return 0, fmt.Errorf("insert task: %w", err)
			}
			created++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}
