package service

import (
	"context"

	"github.com/edupath/counsel/internal/apperr"
	"github.com/edupath/counsel/internal/models"
)

// OnboardingService applies the four onboarding forms and the completion
// gate. Every write is refused once the profile is completed; completion is
// monotonic.
type OnboardingService struct {
	users    UserRepository
	profiles ProfileRepository
	stages   StageRepository
}

// NewOnboardingService constructs an OnboardingService.
func NewOnboardingService(users UserRepository, profiles ProfileRepository, stages StageRepository) *OnboardingService {
	return &OnboardingService{users: users, profiles: profiles, stages: stages}
}

func (s *OnboardingService) editableProfile(ctx context.Context, email string) (*models.Profile, error) {
	acct, err := loadAccount(ctx, s.users, s.profiles, s.stages, email)
	if err != nil {
		return nil, err
	}
	if err := RequireProfileIncomplete(acct.Profile); err != nil {
		return nil, err
	}
	if acct.Profile == nil {
		return nil, apperr.New(apperr.NotFound, "profile not found")
	}
	return acct.Profile, nil
}

// SaveAcademic stores the academic background form.
func (s *OnboardingService) SaveAcademic(ctx context.Context, email string, in models.OnboardingAcademic) error {
	p, err := s.editableProfile(ctx, email)
	if err != nil {
		return err
	}
	p.EducationLevel = in.EducationLevel
	p.Major = in.Major
	p.GraduationYear = in.GraduationYear
	p.GPA = in.GPA
	return s.profiles.Save(ctx, p)
}

// SaveGoals stores the study goals form.
func (s *OnboardingService) SaveGoals(ctx context.Context, email string, in models.OnboardingGoals) error {
	p, err := s.editableProfile(ctx, email)
	if err != nil {
		return err
	}
	p.TargetDegree = in.TargetDegree
	p.FieldOfStudy = in.FieldOfStudy
	p.IntakeYear = in.IntakeYear
	p.PreferredCountries = in.PreferredCountries
	return s.profiles.Save(ctx, p)
}

// SaveBudget stores the budget form.
func (s *OnboardingService) SaveBudget(ctx context.Context, email string, in models.OnboardingBudget) error {
	p, err := s.editableProfile(ctx, email)
	if err != nil {
		return err
	}
	p.BudgetMin = in.BudgetMin
	budgetMax := in.BudgetMax
	p.BudgetMax = &budgetMax
	p.FundingType = in.FundingType
	return s.profiles.Save(ctx, p)
}

// SaveReadiness stores the exam and SOP readiness form.
func (s *OnboardingService) SaveReadiness(ctx context.Context, email string, in models.OnboardingReadiness) error {
	p, err := s.editableProfile(ctx, email)
	if err != nil {
		return err
	}
	p.IELTSStatus = models.ExamStatus(in.IELTSStatus)
	p.GREStatus = models.ExamStatus(in.GREStatus)
	p.SOPStatus = models.SOPStatus(in.SOPStatus)
	return s.profiles.Save(ctx, p)
}

// Complete flips the monotonic completion flag after verifying the required
// fields were all submitted. The stage stays PROFILE; moving on is the
// transition engine's job.
func (s *OnboardingService) Complete(ctx context.Context, email string) error {
	p, err := s.editableProfile(ctx, email)
	if err != nil {
		return err
	}
	if p.Major == "" || p.TargetDegree == "" || p.BudgetMax == nil || p.IELTSStatus == "" {
		return apperr.New(apperr.BadRequest, "missing required fields")
	}
	p.Completed = true
	return s.profiles.Save(ctx, p)
}
