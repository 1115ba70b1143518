// Package service implements the counselling workflow: stage guards, the
// profile strength evaluator, task reconciliation, the stage transition and
// action engine, and the advisory rule engine. Persistence is delegated to
// repository interfaces.
package service

import (
	"context"
	"errors"

	"github.com/edupath/counsel/internal/apperr"
	"github.com/edupath/counsel/internal/models"
	"github.com/edupath/counsel/internal/repository"
)

// UserRepository defines the user persistence operations the services need.
type UserRepository interface {
	// EmailExists returns true if a user with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)
	// Create inserts a user together with its profile and stage rows.
	Create(ctx context.Context, user *models.User) error
	// GetByEmail fetches a user by email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProfileRepository defines profile persistence operations.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Save(ctx context.Context, p *models.Profile) error
}

// StageRepository defines stage persistence operations. Advance and
// EnterApplication are the only ways a stage row changes.
type StageRepository interface {
	Get(ctx context.Context, userID string) (models.Stage, error)
	// Advance performs a compare-and-swap stage move.
	Advance(ctx context.Context, userID string, from, to models.Stage) error
	// EnterApplication advances into APPLICATION and generates checklists
	// atomically; see the repository implementation for the contract.
	EnterApplication(ctx context.Context, userID string, checklist func(universityID, universityName string) []models.Task) (int, error)
}

// UniversityRepository reads the static university catalogue.
type UniversityRepository interface {
	List(ctx context.Context) ([]models.University, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// ShortlistRepository defines shortlist persistence operations.
type ShortlistRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.ShortlistItem, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	CountLockedByUser(ctx context.Context, userID string) (int, error)
	Exists(ctx context.Context, userID, universityID string) (bool, error)
	Get(ctx context.Context, userID, universityID string) (*models.Shortlist, error)
	Create(ctx context.Context, s *models.Shortlist) error
	Lock(ctx context.Context, userID, universityID string) error
	UnlockAndClearTasks(ctx context.Context, userID, universityID string) error
}

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Task, error)
	ListCompleted(ctx context.Context, userID string) ([]models.Task, error)
	ListDetailed(ctx context.Context, userID string) ([]models.TaskDetail, error)
	CountPending(ctx context.Context, userID string) (int, error)
	Get(ctx context.Context, userID, taskID string) (*models.Task, error)
	InsertMany(ctx context.Context, tasks []models.Task) error
	MarkDone(ctx context.Context, userID, taskID string) error
}

// account bundles a user with the profile and stage rows the guards
// operate on. Profile is nil and Stage empty when the rows are missing;
// the guards turn those into the proper error categories.
type account struct {
	User    *models.User
	Profile *models.Profile
	Stage   models.Stage
}

// loadAccount resolves the authenticated email to the user aggregate.
func loadAccount(ctx context.Context, users UserRepository, profiles ProfileRepository, stages StageRepository, email string) (*account, error) {
	user, err := users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}

	acct := &account{User: user}

	profile, err := profiles.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	acct.Profile = profile

	stage, err := stages.Get(ctx, user.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	acct.Stage = stage

	return acct, nil
}

func (a *account) summary() models.UserSummary {
	s := models.UserSummary{
		ID:           a.User.ID,
		Email:        a.User.Email,
		Name:         a.User.Name,
		CurrentStage: a.Stage,
	}
	if a.Profile != nil {
		s.ProfileCompleted = a.Profile.Completed
	}
	return s
}
