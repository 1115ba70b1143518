package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edupath/counsel/internal/models"
	"github.com/lib/pq"
)

// PostgresProfileRepository implements profile persistence against PostgreSQL.
type PostgresProfileRepository struct {
	DB *sql.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository using
// the provided *sql.DB.
func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{DB: db}
}

// GetByUserID fetches the profile owned by userID. Returns ErrNotFound if
// the profile is missing.
func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	var budgetMax sql.NullInt64
	err := r.DB.QueryRowContext(ctx, `
		SELECT user_id, education_level, major, graduation_year, gpa,
		       target_degree, field_of_study, intake_year, preferred_countries,
		       budget_min, budget_max, funding_type,
		       ielts_status, gre_status, sop_status, profile_completed
		FROM profiles WHERE user_id = $1
	`, userID).Scan(
		&p.UserID, &p.EducationLevel, &p.Major, &p.GraduationYear, &p.GPA,
		&p.TargetDegree, &p.FieldOfStudy, &p.IntakeYear, pq.Array(&p.PreferredCountries),
		&p.BudgetMin, &budgetMax, &p.FundingType,
		&p.IELTSStatus, &p.GREStatus, &p.SOPStatus, &p.Completed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if budgetMax.Valid {
		v := int(budgetMax.Int64)
		p.BudgetMax = &v
	}
	return &p, nil
}

// Save writes all mutable profile fields back to the row owned by
// p.UserID.
func (r *PostgresProfileRepository) Save(ctx context.Context, p *models.Profile) error {
	var budgetMax sql.NullInt64
	if p.BudgetMax != nil {
		budgetMax = sql.NullInt64{Int64: int64(*p.BudgetMax), Valid: true}
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE profiles SET
			education_level = $2, major = $3, graduation_year = $4, gpa = $5,
			target_degree = $6, field_of_study = $7, intake_year = $8, preferred_countries = $9,
			budget_min = $10, budget_max = $11, funding_type = $12,
			ielts_status = $13, gre_status = $14, sop_status = $15, profile_completed = $16
		WHERE user_id = $1
	`, p.UserID, p.EducationLevel, p.Major, p.GraduationYear, p.GPA,
		p.TargetDegree, p.FieldOfStudy, p.IntakeYear, pq.Array(p.PreferredCountries),
		p.BudgetMin, budgetMax, p.FundingType,
		p.IELTSStatus, p.GREStatus, p.SOPStatus, p.Completed)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
