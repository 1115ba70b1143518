package service

import (
	"context"
	"errors"

	"github.com/edupath/counsel/internal/apperr"
	"github.com/edupath/counsel/internal/models"
	"github.com/edupath/counsel/internal/repository"
)

// FinalizeService serves the FINALIZE phase: the shortlist status view and
// the lock/unlock operations. Lock routes through the action engine so its
// guard matches the advisory path; unlock carries the task cleanup cascade.
type FinalizeService struct {
	users      UserRepository
	profiles   ProfileRepository
	stages     StageRepository
	shortlists ShortlistRepository
	engine     *Engine
}

// NewFinalizeService constructs a FinalizeService.
func NewFinalizeService(users UserRepository, profiles ProfileRepository, stages StageRepository, shortlists ShortlistRepository, engine *Engine) *FinalizeService {
	return &FinalizeService{users: users, profiles: profiles, stages: stages, shortlists: shortlists, engine: engine}
}

// Status reports the shortlist rows, the locked count and whether the user
// may proceed to APPLICATION.
func (s *FinalizeService) Status(ctx context.Context, email string) (*models.FinalizeStatus, error) {
	acct, err := loadAccount(ctx, s.users, s.profiles, s.stages, email)
	if err != nil {
		return nil, err
	}

	items, err := s.shortlists.ListByUser(ctx, acct.User.ID)
	if err != nil {
		return nil, err
	}

	locked := 0
	for _, it := range items {
		if it.Locked {
			locked++
		}
	}
	return &models.FinalizeStatus{
		Shortlists:  items,
		LockedCount: locked,
		CanProceed:  locked >= 1,
	}, nil
}

// Lock commits to a shortlisted university via the action engine.
func (s *FinalizeService) Lock(ctx context.Context, email, universityID string) (*models.ActionResult, error) {
	return s.engine.Lock(ctx, email, universityID)
}

// Unlock releases a commitment and deletes every task for that university,
// completed ones included. Already-unlocked rows yield an ignored outcome.
func (s *FinalizeService) Unlock(ctx context.Context, email, universityID string) (*models.ActionResult, error) {
	acct, err := loadAccount(ctx, s.users, s.profiles, s.stages, email)
	if err != nil {
		return nil, err
	}
	if err := RequireStage(acct.Stage, models.StageFinalize); err != nil {
		return nil, err
	}

	sl, err := s.shortlists.Get(ctx, acct.User.ID, universityID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, "university not found in shortlist")
	}
	if err != nil {
		return nil, err
	}
	if !sl.Locked {
		return &models.ActionResult{Status: models.ActionIgnored, Message: "Already unlocked."}, nil
	}

	if err := s.shortlists.UnlockAndClearTasks(ctx, acct.User.ID, universityID); err != nil {
		return nil, err
	}
	return &models.ActionResult{Status: models.ActionSuccess, Message: "University unlocked."}, nil
}
