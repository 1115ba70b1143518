package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/edupath/counsel/internal/apperr"
	"github.com/edupath/counsel/internal/models"
	"github.com/edupath/counsel/internal/repository"
)

// transitions holds the legal workflow edges. Every stage has at most one
// successor; anything off this table is forbidden.
var transitions = map[models.Stage]models.Stage{
	models.StageProfile:   models.StageDiscovery,
	models.StageDiscovery: models.StageFinalize,
	models.StageFinalize:  models.StageApplication,
}

// CanTransition reports whether (from, to) is a legal workflow edge. Guards
// and side effects are layered on by the engine; this is only the shape of
// the state machine.
func CanTransition(from, to models.Stage) bool {
	next, ok := transitions[from]
	return ok && next == to
}

// Engine is the single authority for stage transitions and the SHORTLIST
// and LOCK actions. Both the direct lifecycle endpoints and the advisory
// action executor route through it, so guards and side effects cannot
// diverge between entry points.
type Engine struct {
	users        UserRepository
	profiles     ProfileRepository
	stages       StageRepository
	universities UniversityRepository
	shortlists   ShortlistRepository
}

// NewEngine constructs the action engine over the given repositories.
func NewEngine(users UserRepository, profiles ProfileRepository, stages StageRepository, universities UniversityRepository, shortlists ShortlistRepository) *Engine {
	return &Engine{users: users, profiles: profiles, stages: stages, universities: universities, shortlists: shortlists}
}

// Execute dispatches a generic action request for the authenticated user.
func (e *Engine) Execute(ctx context.Context, email string, req models.ActionRequest) (*models.ActionResult, error) {
	switch req.ActionType {
	case models.ActionTransition:
		target, _ := req.Payload["target_stage"].(string)
		if target == "" {
			return nil, apperr.New(apperr.BadRequest, "missing target_stage")
		}
		return e.Transition(ctx, email, models.Stage(target))
	case models.ActionShortlist:
		universityID, _ := req.Payload["university_id"].(string)
		return e.Shortlist(ctx, email, universityID)
	case models.ActionLock:
		universityID, _ := req.Payload["university_id"].(string)
		return e.Lock(ctx, email, universityID)
	default:
		return nil, apperr.New(apperr.BadRequest, "unknown action type")
	}
}

// Transition moves the user along one workflow edge, enforcing the edge's
// guard and triggering its side effects.
func (e *Engine) Transition(ctx context.Context, email string, target models.Stage) (*models.ActionResult, error) {
	acct, err := loadAccount(ctx, e.users, e.profiles, e.stages, email)
	if err != nil {
		return nil, err
	}
	if acct.Stage == "" {
		return nil, apperr.New(apperr.BadState, "user has no stage assigned")
	}
	if !CanTransition(acct.Stage, target) {
		return nil, apperr.New(apperr.Forbidden, "invalid transition for current stage")
	}

	switch target {
	case models.StageDiscovery:
		if err := e.advance(ctx, acct.User.ID, acct.Stage, target); err != nil {
			return nil, err
		}
		return &models.ActionResult{Status: models.ActionSuccess, Message: "Transitioned to Discovery stage."}, nil

	case models.StageFinalize:
		count, err := e.shortlists.CountByUser(ctx, acct.User.ID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.New(apperr.BadRequest, "cannot finalize: no universities shortlisted")
		}
		if err := e.advance(ctx, acct.User.ID, acct.Stage, target); err != nil {
			return nil, err
		}
		return &models.ActionResult{Status: models.ActionSuccess, Message: "Transitioned to Finalize stage."}, nil

	case models.StageApplication:
		created, err := e.enterApplication(ctx, acct.User.ID)
		if err != nil {
			return nil, err
		}
		return &models.ActionResult{
			Status:  models.ActionSuccess,
			Message: fmt.Sprintf("Application phase started. %d tasks generated.", created),
		}, nil
	}

	return nil, apperr.New(apperr.Forbidden, "invalid transition for current stage")
}

// StartApplication serves the dedicated application-start endpoint. Unlike
// the strict TRANSITION edge it is idempotent: calling it while already in
// APPLICATION only reconciles missing checklists.
func (e *Engine) StartApplication(ctx context.Context, email string) (*models.ActionResult, error) {
	acct, err := loadAccount(ctx, e.users, e.profiles, e.stages, email)
	if err != nil {
		return nil, err
	}
	if acct.Stage == "" {
		return nil, apperr.New(apperr.BadState, "user has no stage assigned")
	}
	if acct.Stage != models.StageFinalize && acct.Stage != models.StageApplication {
		return nil, apperr.New(apperr.Forbidden, "invalid stage for application start")
	}

	created, err := e.enterApplication(ctx, acct.User.ID)
	if err != nil {
		return nil, err
	}
	return &models.ActionResult{
		Status:  models.ActionSuccess,
		Message: fmt.Sprintf("Application started. %d tasks generated.", created),
	}, nil
}

// Shortlist adds a university to the user's shortlist with the default
// TARGET category. Legal only in DISCOVERY; a pre-existing row yields an
// ignored outcome instead of an error.
func (e *Engine) Shortlist(ctx context.Context, email, universityID string) (*models.ActionResult, error) {
	acct, err := loadAccount(ctx, e.users, e.profiles, e.stages, email)
	if err != nil {
		return nil, err
	}
	if err := RequireStage(acct.Stage, models.StageDiscovery); err != nil {
		return nil, err
	}
	if universityID == "" {
		return nil, apperr.New(apperr.BadRequest, "missing university_id")
	}

	exists, err := e.universities.Exists(ctx, universityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.NotFound, "university not found")
	}

	shortlisted, err := e.shortlists.Exists(ctx, acct.User.ID, universityID)
	if err != nil {
		return nil, err
	}
	if shortlisted {
		return &models.ActionResult{Status: models.ActionIgnored, Message: "University already shortlisted."}, nil
	}

	if err := e.shortlists.Create(ctx, &models.Shortlist{
		UserID:       acct.User.ID,
		UniversityID: universityID,
		Category:     models.CategoryTarget,
	}); err != nil {
		return nil, err
	}
	return &models.ActionResult{Status: models.ActionSuccess, Message: "University shortlisted."}, nil
}

// Lock commits the user to a shortlisted university. Legal only in
// FINALIZE; an already-locked row yields an ignored outcome.
func (e *Engine) Lock(ctx context.Context, email, universityID string) (*models.ActionResult, error) {
	acct, err := loadAccount(ctx, e.users, e.profiles, e.stages, email)
	if err != nil {
		return nil, err
	}
	if err := RequireStage(acct.Stage, models.StageFinalize); err != nil {
		return nil, err
	}
	if universityID == "" {
		return nil, apperr.New(apperr.BadRequest, "missing university_id")
	}

	s, err := e.shortlists.Get(ctx, acct.User.ID, universityID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, "university not found in shortlist")
	}
	if err != nil {
		return nil, err
	}
	if s.Locked {
		return &models.ActionResult{Status: models.ActionIgnored, Message: "Already locked."}, nil
	}

	if err := e.shortlists.Lock(ctx, acct.User.ID, universityID); err != nil {
		return nil, err
	}
	return &models.ActionResult{Status: models.ActionSuccess, Message: "University locked."}, nil
}

func (e *Engine) advance(ctx context.Context, userID string, from, to models.Stage) error {
	err := e.stages.Advance(ctx, userID, from, to)
	if errors.Is(err, repository.ErrStageConflict) {
		return apperr.New(apperr.Forbidden, "invalid transition for current stage")
	}
	return err
}

func (e *Engine) enterApplication(ctx context.Context, userID string) (int, error) {
	created, err := e.stages.EnterApplication(ctx, userID, ApplicationChecklist(userID))
	switch {
	case errors.Is(err, repository.ErrNoLockedShortlist):
		return 0, apperr.New(apperr.BadRequest, "cannot start application: no universities locked")
	case errors.Is(err, repository.ErrWrongStage):
		return 0, apperr.New(apperr.Forbidden, "invalid transition for current stage")
	case errors.Is(err, repository.ErrNotFound):
		return 0, apperr.New(apperr.BadState, "user has no stage assigned")
	case err != nil:
		return 0, err
	}
	return created, nil
}
