package service

import (
	"github.com/edupath/counsel/internal/apperr"
	"github.com/edupath/counsel/internal/models"
)

// RequireStage fails with Forbidden unless the user's stage exactly matches
// required. Stages are logically ordered but no hierarchy leniency applies.
// A user with no assigned stage fails with BadState, never silently passes.
func RequireStage(stage, required models.Stage) error {
	if stage == "" {
		return apperr.New(apperr.BadState, "user has no stage assigned")
	}
	if stage != required {
		return apperr.New(apperr.Forbidden, "access forbidden: user is in stage %s, required %s", stage, required)
	}
	return nil
}

// RequireProfileIncomplete blocks access once the profile is completed.
// Used by the onboarding endpoints.
func RequireProfileIncomplete(p *models.Profile) error {
	if p != nil && p.Completed {
		return apperr.New(apperr.BadState, "profile already completed, cannot access onboarding")
	}
	return nil
}

// RequireProfileComplete blocks access until onboarding has been completed.
// Used by the dashboard endpoints.
func RequireProfileComplete(p *models.Profile) error {
	if p == nil || !p.Completed {
		return apperr.New(apperr.Forbidden, "profile incomplete, please complete onboarding first")
	}
	return nil
}
