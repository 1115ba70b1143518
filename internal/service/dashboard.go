package service

import (
	"context"

	"github.com/edupath/counsel/internal/models"
)

// DashboardService serves the post-onboarding views: the summary header,
// the profile strength assessment and the reconciled task list.
type DashboardService struct {
	users    UserRepository
	profiles ProfileRepository
	stages   StageRepository
	tasks    TaskRepository
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(users UserRepository, profiles ProfileRepository, stages StageRepository, tasks TaskRepository) *DashboardService {
	return &DashboardService{users: users, profiles: profiles, stages: stages, tasks: tasks}
}

func (s *DashboardService) completedAccount(ctx context.Context, email string) (*account, error) {
	acct, err := loadAccount(ctx, s.users, s.profiles, s.stages, email)
	if err != nil {
		return nil, err
	}
	if err := RequireProfileComplete(acct.Profile); err != nil {
		return nil, err
	}
	return acct, nil
}

// Summary returns the dashboard header payload.
func (s *DashboardService) Summary(ctx context.Context, email string) (*models.DashboardSummary, error) {
	acct, err := s.completedAccount(ctx, email)
	if err != nil {
		return nil, err
	}
	return &models.DashboardSummary{
		Name:             acct.User.Name,
		Email:            acct.User.Email,
		CurrentStage:     acct.Stage,
		ProfileCompleted: acct.Profile.Completed,
	}, nil
}

// Strength runs the auto-repair pass against completed tasks, persists the
// profile if anything changed, and scores the repaired profile.
func (s *DashboardService) Strength(ctx context.Context, email string) (*models.ProfileStrength, error) {
	acct, err := s.completedAccount(ctx, email)
	if err != nil {
		return nil, err
	}

	done, err := s.tasks.ListCompleted(ctx, acct.User.ID)
	if err != nil {
		return nil, err
	}
	if RepairFromTasks(acct.Profile, done) {
		if err := s.profiles.Save(ctx, acct.Profile); err != nil {
			return nil, err
		}
	}

	return ScoreProfile(acct.Profile), nil
}

// Tasks reconciles gap-driven tasks against the profile and returns the
// full task list. Generation is additive only; repeated calls insert
// nothing new.
func (s *DashboardService) Tasks(ctx context.Context, email string) ([]models.Task, error) {
	acct, err := s.completedAccount(ctx, email)
	if err != nil {
		return nil, err
	}

	existing, err := s.tasks.ListByUser(ctx, acct.User.ID)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]bool, len(existing))
	for _, t := range existing {
		titles[t.Title] = true
	}

	gaps := ProfileGapTasks(acct.Profile, titles, acct.User.ID)
	if len(gaps) == 0 {
		return existing, nil
	}
	if err := s.tasks.InsertMany(ctx, gaps); err != nil {
		return nil, err
	}
	return s.tasks.ListByUser(ctx, acct.User.ID)
}

// CompleteTask marks a task DONE and forward-syncs the profile.
func (s *DashboardService) CompleteTask(ctx context.Context, email, taskID string) (*models.Task, error) {
	acct, err := s.completedAccount(ctx, email)
	if err != nil {
		return nil, err
	}
	return completeUserTask(ctx, s.profiles, s.tasks, acct.Profile, acct.User.ID, taskID)
}
