package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/edupath/counsel/internal/models"
)

// AdvisorService is the advisory rule engine: a stage-conditioned
// deterministic rule table producing a message and suggested actions. It
// never mutates state; every emitted action is a payload the Engine can
// execute.
type AdvisorService struct {
	users        UserRepository
	profiles     ProfileRepository
	stages       StageRepository
	universities UniversityRepository
	shortlists   ShortlistRepository
	tasks        TaskRepository
}

// NewAdvisorService constructs the advisor over the given repositories.
func NewAdvisorService(users UserRepository, profiles ProfileRepository, stages StageRepository, universities UniversityRepository, shortlists ShortlistRepository, tasks TaskRepository) *AdvisorService {
	return &AdvisorService{users: users, profiles: profiles, stages: stages, universities: universities, shortlists: shortlists, tasks: tasks}
}

// Reason evaluates the rule table against the user's current state.
func (s *AdvisorService) Reason(ctx context.Context, email string) (*models.AdvisorReply, error) {
	acct, err := loadAccount(ctx, s.users, s.profiles, s.stages, email)
	if err != nil {
		return nil, err
	}

	switch acct.Stage {
	case models.StageProfile:
		return s.reasonProfile(acct)
	case models.StageDiscovery:
		return s.reasonDiscovery(ctx, acct)
	case models.StageFinalize:
		return s.reasonFinalize(ctx, acct)
	case models.StageApplication:
		return s.reasonApplication(ctx, acct)
	}

	return &models.AdvisorReply{Message: "I am sleeping.", Actions: []models.AdvisorAction{}, NextSuggestion: "Wait"}, nil
}

func (s *AdvisorService) reasonProfile(acct *account) (*models.AdvisorReply, error) {
	p := acct.Profile
	if p == nil || !p.Completed {
		return &models.AdvisorReply{
			Message:        "Your profile is incomplete. Please finish onboarding to enable my services.",
			Actions:        []models.AdvisorAction{},
			NextSuggestion: "Complete Onboarding",
		}, nil
	}

	if p.GPA < 3.0 {
		return &models.AdvisorReply{
			Message:        "Your GPA is on the lower side. I recommend focusing on strong SOPs or improving test scores before discovery.",
			Actions:        []models.AdvisorAction{},
			NextSuggestion: "Improve Profile",
		}, nil
	}

	msg := "Your academics are strong, but you still need to work on your Exams (IELTS/GRE). You can start exploring universities while you prepare."
	if examStarted(p.IELTSStatus) || examStarted(p.GREStatus) || p.IELTSStatus == models.ExamTaken || p.GREStatus == models.ExamTaken {
		msg = "Your academic and exam profile looks solid. You are ready to start exploring universities!"
	}
	return &models.AdvisorReply{
		Message: msg,
		Actions: []models.AdvisorAction{{
			Type:    models.ActionTransition,
			Label:   "Start Discovery Phase",
			Payload: map[string]any{"target_stage": string(models.StageDiscovery)},
		}},
		NextSuggestion: "Move to Discovery",
	}, nil
}

func (s *AdvisorService) reasonDiscovery(ctx context.Context, acct *account) (*models.AdvisorReply, error) {
	count, err := s.shortlists.CountByUser(ctx, acct.User.ID)
	if err != nil {
		return nil, err
	}
	if count >= 1 {
		return &models.AdvisorReply{
			Message: fmt.Sprintf("You have shortlisted %d universities. Are you ready to finalize your choices?", count),
			Actions: []models.AdvisorAction{{
				Type:    models.ActionTransition,
				Label:   "Move to Finalize Phase",
				Payload: map[string]any{"target_stage": string(models.StageFinalize)},
			}},
			NextSuggestion: "Finalize Choices",
		}, nil
	}

	all, err := s.universities.List(ctx)
	if err != nil {
		return nil, err
	}

	var countries []string
	if acct.Profile != nil {
		countries = acct.Profile.PreferredCountries
	}

	var matches []models.University
	if len(countries) > 0 {
		for _, u := range all {
			if contains(countries, u.Country) {
				matches = append(matches, u)
			}
		}
	}
	// Fallback: first three of the catalogue when nothing matched.
	if len(matches) == 0 {
		matches = all
	}
	if len(matches) > 3 {
		matches = matches[:3]
	}

	actions := make([]models.AdvisorAction, 0, len(matches))
	for _, u := range matches {
		actions = append(actions, models.AdvisorAction{
			Type:    models.ActionShortlist,
			Label:   fmt.Sprintf("Shortlist %s (%s)", u.Name, u.Country),
			Payload: map[string]any{"university_id": u.ID},
		})
	}

	preference := "anywhere"
	if len(countries) > 0 {
		preference = strings.Join(countries, ", ")
	}
	return &models.AdvisorReply{
		Message:        fmt.Sprintf("Based on your preference for %s, here are top recommendations:", preference),
		Actions:        actions,
		NextSuggestion: "Shortlist 2-3 universities",
	}, nil
}

func (s *AdvisorService) reasonFinalize(ctx context.Context, acct *account) (*models.AdvisorReply, error) {
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

	if locked == 0 {
		if len(items) == 0 {
			return &models.AdvisorReply{Message: "No shortlists found.", Actions: []models.AdvisorAction{}, NextSuggestion: "Go back"}, nil
		}
		// No ranking exists; suggest the first row.
		best := items[0]
		return &models.AdvisorReply{
			Message: "You need to commit to at least one university to proceed. I recommend starting with your top choice.",
			Actions: []models.AdvisorAction{{
				Type:    models.ActionLock,
				Label:   fmt.Sprintf("Lock %s", best.UniversityName),
				Payload: map[string]any{"university_id": best.UniversityID},
			}},
			NextSuggestion: "Lock a University",
		}, nil
	}

	return &models.AdvisorReply{
		Message: fmt.Sprintf("Great! You have locked %d universities. You can now proceed to Application.", locked),
		Actions: []models.AdvisorAction{{
			Type:    models.ActionTransition,
			Label:   "Start Application Phase",
			Payload: map[string]any{"target_stage": string(models.StageApplication)},
		}},
		NextSuggestion: "Start Applications",
	}, nil
}

func (s *AdvisorService) reasonApplication(ctx context.Context, acct *account) (*models.AdvisorReply, error) {
	pending, err := s.tasks.CountPending(ctx, acct.User.ID)
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		return &models.AdvisorReply{
			Message:        fmt.Sprintf("You have %d pending application tasks. Keep pushing to meet your deadlines!", pending),
			Actions:        []models.AdvisorAction{},
			NextSuggestion: "Complete Tasks",
		}, nil
	}
	return &models.AdvisorReply{
		Message:        "All applications submitted! Now we wait for the results. Relax and prepare for potential interviews.",
		Actions:        []models.AdvisorAction{},
		NextSuggestion: "Wait for Decisions",
	}, nil
}
