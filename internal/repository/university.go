package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edupath/counsel/internal/models"
)

// PostgresUniversityRepository reads the static university catalogue.
type PostgresUniversityRepository struct {
	DB *sql.DB
}

// NewPostgresUniversityRepository creates a new PostgresUniversityRepository
// using the provided *sql.DB.
func NewPostgresUniversityRepository(db *sql.DB) *PostgresUniversityRepository {
	return &PostgresUniversityRepository{DB: db}
}

// List returns the whole catalogue ordered by name.
func (r *PostgresUniversityRepository) List(ctx context.Context) ([]models.University, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, country, annual_cost, ranking_tier, competition_level
		FROM universities ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list universities: %w", err)
	}
	defer rows.Close()

	var unis []models.University
	for rows.Next() {
		var u models.University
		if err := rows.Scan(&u.ID, &u.Name, &u.Country, &u.AnnualCost, &u.RankingTier, &u.CompetitionLevel); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		unis = append(unis, u)
	}
	return unis, rows.Err()
}

// Exists checks whether a university with the given id is in the catalogue.
func (r *PostgresUniversityRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM universities WHERE id = $1)`,
		id,
	).Scan(&exists)
	return exists, err
}
