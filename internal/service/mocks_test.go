package service

import (
	"context"

	"github.com/edupath/counsel/internal/models"
	"github.com/edupath/counsel/internal/repository"
)

type mockUserRepo struct {
	EmailExistsFunc func(ctx context.Context, email string) (bool, error)
	CreateFunc      func(ctx context.Context, user *models.User) error
	GetByEmailFunc  func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.EmailExistsFunc(ctx, email)
}
func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.CreateFunc(ctx, user)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

type mockProfileRepo struct {
	GetByUserIDFunc func(ctx context.Context, userID string) (*models.Profile, error)
	SaveFunc        func(ctx context.Context, p *models.Profile) error
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return m.GetByUserIDFunc(ctx, userID)
}
func (m *mockProfileRepo) Save(ctx context.Context, p *models.Profile) error {
	return m.SaveFunc(ctx, p)
}

type mockStageRepo struct {
	GetFunc              func(ctx context.Context, userID string) (models.Stage, error)
	AdvanceFunc          func(ctx context.Context, userID string, from, to models.Stage) error
	EnterApplicationFunc func(ctx context.Context, userID string, checklist func(universityID, universityName string) []models.Task) (int, error)
}

func (m *mockStageRepo) Get(ctx context.Context, userID string) (models.Stage, error) {
	return m.GetFunc(ctx, userID)
}
func (m *mockStageRepo) Advance(ctx context.Context, userID string, from, to models.Stage) error {
	return m.AdvanceFunc(ctx, userID, from, to)
}
func (m *mockStageRepo) EnterApplication(ctx context.Context, userID string, checklist func(universityID, universityName string) []models.Task) (int, error) {
	return m.EnterApplicationFunc(ctx, userID, checklist)
}

type mockUniversityRepo struct {
	ListFunc   func(ctx context.Context) ([]models.University, error)
	ExistsFunc func(ctx context.Context, id string) (bool, error)
}

func (m *mockUniversityRepo) List(ctx context.Context) ([]models.University, error) {
	return m.ListFunc(ctx)
}
func (m *mockUniversityRepo) Exists(ctx context.Context, id string) (bool, error) {
	return m.ExistsFunc(ctx, id)
}

type mockShortlistRepo struct {
	ListByUserFunc          func(ctx context.Context, userID string) ([]models.ShortlistItem, error)
	CountByUserFunc         func(ctx context.Context, userID string) (int, error)
	CountLockedByUserFunc   func(ctx context.Context, userID string) (int, error)
	ExistsFunc              func(ctx context.Context, userID, universityID string) (bool, error)
	GetFunc                 func(ctx context.Context, userID, universityID string) (*models.Shortlist, error)
	CreateFunc              func(ctx context.Context, s *models.Shortlist) error
	LockFunc                func(ctx context.Context, userID, universityID string) error
	UnlockAndClearTasksFunc func(ctx context.Context, userID, universityID string) error
}

func (m *mockShortlistRepo) ListByUser(ctx context.Context, userID string) ([]models.ShortlistItem, error) {
	return m.ListByUserFunc(ctx, userID)
}
func (m *mockShortlistRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return m.CountByUserFunc(ctx, userID)
}
func (m *mockShortlistRepo) CountLockedByUser(ctx context.Context, userID string) (int, error) {
	return m.CountLockedByUserFunc(ctx, userID)
}
func (m *mockShortlistRepo) Exists(ctx context.Context, userID, universityID string) (bool, error) {
	return m.ExistsFunc(ctx, userID, universityID)
}
func (m *mockShortlistRepo) Get(ctx context.Context, userID, universityID string) (*models.Shortlist, error) {
	return m.GetFunc(ctx, userID, universityID)
}
func (m *mockShortlistRepo) Create(ctx context.Context, s *models.Shortlist) error {
	return m.CreateFunc(ctx, s)
}
func (m *mockShortlistRepo) Lock(ctx context.Context, userID, universityID string) error {
	return m.LockFunc(ctx, userID, universityID)
}
func (m *mockShortlistRepo) UnlockAndClearTasks(ctx context.Context, userID, universityID string) error {
	return m.UnlockAndClearTasksFunc(ctx, userID, universityID)
}

type mockTaskRepo struct {
	ListByUserFunc    func(ctx context.Context, userID string) ([]models.Task, error)
	ListCompletedFunc func(ctx context.Context, userID string) ([]models.Task, error)
	ListDetailedFunc  func(ctx context.Context, userID string) ([]models.TaskDetail, error)
	CountPendingFunc  func(ctx context.Context, userID string) (int, error)
	GetFunc           func(ctx context.Context, userID, taskID string) (*models.Task, error)
	InsertManyFunc    func(ctx context.Context, tasks []models.Task) error
	MarkDoneFunc      func(ctx context.Context, userID, taskID string) error
}

func (m *mockTaskRepo) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	return m.ListByUserFunc(ctx, userID)
}
func (m *mockTaskRepo) ListCompleted(ctx context.Context, userID string) ([]models.Task, error) {
	return m.ListCompletedFunc(ctx, userID)
}
func (m *mockTaskRepo) ListDetailed(ctx context.Context, userID string) ([]models.TaskDetail, error) {
	return m.ListDetailedFunc(ctx, userID)
}
func (m *mockTaskRepo) CountPending(ctx context.Context, userID string) (int, error) {
	return m.CountPendingFunc(ctx, userID)
}
func (m *mockTaskRepo) Get(ctx context.Context, userID, taskID string) (*models.Task, error) {
	return m.GetFunc(ctx, userID, taskID)
}
func (m *mockTaskRepo) InsertMany(ctx context.Context, tasks []models.Task) error {
	return m.InsertManyFunc(ctx, tasks)
}
func (m *mockTaskRepo) MarkDone(ctx context.Context, userID, taskID string) error {
	return m.MarkDoneFunc(ctx, userID, taskID)
}

// accountMocks returns user, profile and stage mocks resolving the given
// account for any email.
func accountMocks(user *models.User, profile *models.Profile, stage models.Stage) (*mockUserRepo, *mockProfileRepo, *mockStageRepo) {
	users := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	profiles := &mockProfileRepo{
		GetByUserIDFunc: func(ctx context.Context, userID string) (*models.Profile, error) {
			if profile == nil {
				return nil, repository.ErrNotFound
			}
			return profile, nil
		},
		SaveFunc: func(ctx context.Context, p *models.Profile) error { return nil },
	}
	stages := &mockStageRepo{
		GetFunc: func(ctx context.Context, userID string) (models.Stage, error) {
			if stage == "" {
				return "", repository.ErrNotFound
			}
			return stage, nil
		},
	}
	return users, profiles, stages
}
