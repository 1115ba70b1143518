package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edupath/counsel/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// universities is the static catalogue inserted at bootstrap. Rows are
// keyed by name, so re-running the seed is a no-op.
var universities = []models.University{
	{Name: "Global Tech Institute", Country: "USA", AnnualCost: 55000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionHigh},
	{Name: "North State University", Country: "USA", AnnualCost: 30000, RankingTier: models.RankMid, CompetitionLevel: models.CompetitionMedium},
	{Name: "City College of Engineering", Country: "USA", AnnualCost: 20000, RankingTier: models.RankLow, CompetitionLevel: models.CompetitionLow},
	{Name: "Royal Science Academy", Country: "UK", AnnualCost: 40000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionHigh},
	{Name: "Central London Poly", Country: "UK", AnnualCost: 25000, RankingTier: models.RankMid, CompetitionLevel: models.CompetitionMedium},
	{Name: "Berlin Tech Hoch", Country: "Germany", AnnualCost: 5000, RankingTier: models.RankMid, CompetitionLevel: models.CompetitionMedium},
	{Name: "Munich Applied Sciences", Country: "Germany", AnnualCost: 2000, RankingTier: models.RankLow, CompetitionLevel: models.CompetitionLow},
	{Name: "Future Systems Univ", Country: "Canada", AnnualCost: 35000, RankingTier: models.RankMid, CompetitionLevel: models.CompetitionMedium},
	{Name: "Massachusetts Inst. of Tech (MIT)", Country: "USA", AnnualCost: 60000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionHigh},
	{Name: "Stanford University", Country: "USA", AnnualCost: 62000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionHigh},
	{Name: "Harvard University", Country: "USA", AnnualCost: 61000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionHigh},
	{Name: "University of Oxford", Country: "UK", AnnualCost: 45000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionHigh},
	{Name: "University of Cambridge", Country: "UK", AnnualCost: 46000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionHigh},
	{Name: "ETH Zurich", Country: "Switzerland", AnnualCost: 2000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionHigh},
	{Name: "EPFL", Country: "Switzerland", AnnualCost: 2000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionHigh},
	{Name: "National Univ. of Singapore (NUS)", Country: "Singapore", AnnualCost: 30000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionHigh},
	{Name: "Nanyang Tech Univ (NTU)", Country: "Singapore", AnnualCost: 28000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionHigh},
	{Name: "University of Toronto", Country: "Canada", AnnualCost: 45000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionMedium},
	{Name: "University of British Columbia", Country: "Canada", AnnualCost: 40000, RankingTier: models.RankMid, CompetitionLevel: models.CompetitionMedium},
	{Name: "University of Melbourne", Country: "Australia", AnnualCost: 38000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionMedium},
	{Name: "University of Sydney", Country: "Australia", AnnualCost: 37000, RankingTier: models.RankMid, CompetitionLevel: models.CompetitionMedium},
	{Name: "Tsinghua University", Country: "China", AnnualCost: 10000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionHigh},
	{Name: "University of Tokyo", Country: "Japan", AnnualCost: 12000, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionHigh},
	{Name: "Technical Univ. of Munich (TUM)", Country: "Germany", AnnualCost: 1500, RankingTier: models.RankHigh, CompetitionLevel: models.CompetitionHigh},
	{Name: "University of Amsterdam", Country: "Netherlands", AnnualCost: 18000, RankingTier: models.RankMid, CompetitionLevel: models.CompetitionMedium},
}

// SeedUniversities inserts the static university catalogue, skipping rows
// that already exist.
func SeedUniversities(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	added := int64(0)
	for _, u := range universities {
		res, err := db.ExecContext(ctx, `
			INSERT INTO universities (id, name, country, annual_cost, ranking_tier, competition_level)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (name) DO NOTHING
		`, uuid.NewString(), u.Name, u.Country, u.AnnualCost, u.RankingTier, u.CompetitionLevel)
		if err != nil {
			return fmt.Errorf("seed university %q: %w", u.Name, err)
		}
		if rows, _ := res.RowsAffected(); rows > 0 {
			added += rows
		}
	}
	if added > 0 {
		log.Info("seeded universities", zap.Int64("added", added))
	}
	return nil
}
