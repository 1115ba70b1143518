package service

import (
	"context"
	"testing"

	"github.com/edupath/counsel/internal/apperr"
	"github.com/edupath/counsel/internal/models"
	"github.com/edupath/counsel/internal/repository"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.Stage
		want     bool
	}{
		{models.StageProfile, models.StageDiscovery, true},
		{models.StageDiscovery, models.StageFinalize, true},
		{models.StageFinalize, models.StageApplication, true},
		{models.StageProfile, models.StageFinalize, false},
		{models.StageProfile, models.StageApplication, false},
		{models.StageDiscovery, models.StageProfile, false},
		{models.StageApplication, models.StageFinalize, false},
		{models.StageApplication, models.StageApplication, false},
		{"", models.StageDiscovery, false},
		{models.StageProfile, "", false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v; want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func testUser() *models.User {
	return &models.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}
}

func TestTransition_ProfileToDiscovery(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageProfile)
	advanced := false
	stages.AdvanceFunc = func(ctx context.Context, userID string, from, to models.Stage) error {
		advanced = true
		if from != models.StageProfile || to != models.StageDiscovery {
			t.Errorf("Advance(%q, %q); want PROFILE → DISCOVERY", from, to)
		}
		return nil
	}
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, &mockShortlistRepo{})

	res, err := e.Transition(context.Background(), "alice@example.com", models.StageDiscovery)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !advanced {
		t.Error("expected Advance to be called")
	}
	if res.Status != models.ActionSuccess {
		t.Errorf("status = %q; want success", res.Status)
	}
}

func TestTransition_SkipStageForbidden(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageProfile)
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, &mockShortlistRepo{})

	_, err := e.Transition(context.Background(), "alice@example.com", models.StageApplication)
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("error = %v; want Forbidden", err)
	}
}

func TestTransition_NoStageAssigned(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), nil, "")
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, &mockShortlistRepo{})

	_, err := e.Transition(context.Background(), "alice@example.com", models.StageDiscovery)
	if apperr.KindOf(err) != apperr.BadState {
		t.Fatalf("error = %v; want BadState", err)
	}
}

func TestTransition_FinalizeRequiresShortlist(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageDiscovery)
	shortlists := &mockShortlistRepo{
		CountByUserFunc: func(ctx context.Context, userID string) (int, error) { return 0, nil },
	}
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, shortlists)

	_, err := e.Transition(context.Background(), "alice@example.com", models.StageFinalize)
	if apperr.KindOf(err) != apperr.BadRequest {
		t.Fatalf("error = %v; want BadRequest", err)
	}
}

func TestTransition_FinalizeWithShortlist(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageDiscovery)
	stages.AdvanceFunc = func(ctx context.Context, userID string, from, to models.Stage) error { return nil }
	shortlists := &mockShortlistRepo{
		CountByUserFunc: func(ctx context.Context, userID string) (int, error) { return 2, nil },
	}
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, shortlists)

	res, err := e.Transition(context.Background(), "alice@example.com", models.StageFinalize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != models.ActionSuccess {
		t.Errorf("status = %q; want success", res.Status)
	}
}

func TestTransition_StageConflictMapsToForbidden(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageProfile)
	stages.AdvanceFunc = func(ctx context.Context, userID string, from, to models.Stage) error {
		return repository.ErrStageConflict
	}
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, &mockShortlistRepo{})

	_, err := e.Transition(context.Background(), "alice@example.com", models.StageDiscovery)
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("error = %v; want Forbidden on concurrent transition", err)
	}
}

func TestTransition_Application(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageFinalize)
	stages.EnterApplicationFunc = func(ctx context.Context, userID string, checklist func(string, string) []models.Task) (int, error) {
		if got := len(checklist("uni1", "MIT")); got != 3 {
			t.Errorf("checklist produced %d tasks; want 3", got)
		}
		return 3, nil
	}
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, &mockShortlistRepo{})

	res, err := e.Transition(context.Background(), "alice@example.com", models.StageApplication)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Message != "Application phase started. 3 tasks generated." {
		t.Errorf("message = %q", res.Message)
	}
}

func TestTransition_ApplicationWithoutLock(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageFinalize)
	stages.EnterApplicationFunc = func(ctx context.Context, userID string, checklist func(string, string) []models.Task) (int, error) {
		return 0, repository.ErrNoLockedShortlist
	}
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, &mockShortlistRepo{})

	_, err := e.Transition(context.Background(), "alice@example.com", models.StageApplication)
	if apperr.KindOf(err) != apperr.BadRequest {
		t.Fatalf("error = %v; want BadRequest", err)
	}
}

func TestStartApplication_IdempotentInApplication(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageApplication)
	stages.EnterApplicationFunc = func(ctx context.Context, userID string, checklist func(string, string) []models.Task) (int, error) {
		return 0, nil
	}
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, &mockShortlistRepo{})

	res, err := e.StartApplication(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Message != "Application started. 0 tasks generated." {
		t.Errorf("message = %q", res.Message)
	}
}

func TestStartApplication_WrongStage(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageDiscovery)
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, &mockShortlistRepo{})

	_, err := e.StartApplication(context.Background(), "alice@example.com")
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("error = %v; want Forbidden", err)
	}
}

func TestShortlist_Success(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageDiscovery)
	universities := &mockUniversityRepo{
		ExistsFunc: func(ctx context.Context, id string) (bool, error) { return true, nil },
	}
	var created *models.Shortlist
	shortlists := &mockShortlistRepo{
		ExistsFunc: func(ctx context.Context, userID, universityID string) (bool, error) { return false, nil },
		CreateFunc: func(ctx context.Context, s *models.Shortlist) error {
			created = s
			return nil
		},
	}
	e := NewEngine(users, profiles, stages, universities, shortlists)

	res, err := e.Shortlist(context.Background(), "alice@example.com", "uni1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != models.ActionSuccess {
		t.Errorf("status = %q; want success", res.Status)
	}
	if created == nil || created.Category != models.CategoryTarget {
		t.Errorf("created = %+v; want TARGET category", created)
	}
}

func TestShortlist_DuplicateIgnored(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageDiscovery)
	universities := &mockUniversityRepo{
		ExistsFunc: func(ctx context.Context, id string) (bool, error) { return true, nil },
	}
	shortlists := &mockShortlistRepo{
		ExistsFunc: func(ctx context.Context, userID, universityID string) (bool, error) { return true, nil },
	}
	e := NewEngine(users, profiles, stages, universities, shortlists)

	res, err := e.Shortlist(context.Background(), "alice@example.com", "uni1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != models.ActionIgnored {
		t.Errorf("status = %q; want ignored", res.Status)
	}
}

func TestShortlist_UnknownUniversity(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageDiscovery)
	universities := &mockUniversityRepo{
		ExistsFunc: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}
	e := NewEngine(users, profiles, stages, universities, &mockShortlistRepo{})

	_, err := e.Shortlist(context.Background(), "alice@example.com", "nope")
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("error = %v; want NotFound", err)
	}
}

func TestShortlist_WrongStage(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageFinalize)
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, &mockShortlistRepo{})

	_, err := e.Shortlist(context.Background(), "alice@example.com", "uni1")
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("error = %v; want Forbidden", err)
	}
}

func TestLock_Success(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageFinalize)
	locked := false
	shortlists := &mockShortlistRepo{
		GetFunc: func(ctx context.Context, userID, universityID string) (*models.Shortlist, error) {
			return &models.Shortlist{ID: "s1", UserID: userID, UniversityID: universityID}, nil
		},
		LockFunc: func(ctx context.Context, userID, universityID string) error {
			locked = true
			return nil
		},
	}
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, shortlists)

	res, err := e.Lock(context.Background(), "alice@example.com", "uni1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !locked {
		t.Error("expected Lock to be called")
	}
	if res.Status != models.ActionSuccess {
		t.Errorf("status = %q; want success", res.Status)
	}
}

func TestLock_AlreadyLockedIgnored(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageFinalize)
	shortlists := &mockShortlistRepo{
		GetFunc: func(ctx context.Context, userID, universityID string) (*models.Shortlist, error) {
			return &models.Shortlist{ID: "s1", Locked: true}, nil
		},
	}
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, shortlists)

	res, err := e.Lock(context.Background(), "alice@example.com", "uni1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != models.ActionIgnored {
		t.Errorf("status = %q; want ignored", res.Status)
	}
}

func TestLock_NotShortlisted(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageFinalize)
	shortlists := &mockShortlistRepo{
		GetFunc: func(ctx context.Context, userID, universityID string) (*models.Shortlist, error) {
			return nil, repository.ErrNotFound
		},
	}
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, shortlists)

	_, err := e.Lock(context.Background(), "alice@example.com", "uni1")
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("error = %v; want NotFound", err)
	}
}

func TestExecute_Dispatch(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageProfile)
	stages.AdvanceFunc = func(ctx context.Context, userID string, from, to models.Stage) error { return nil }
	e := NewEngine(users, profiles, stages, &mockUniversityRepo{}, &mockShortlistRepo{})

	res, err := e.Execute(context.Background(), "alice@example.com", models.ActionRequest{
		ActionType: models.ActionTransition,
		Payload:    map[string]any{"target_stage": "DISCOVERY"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != models.ActionSuccess {
		t.Errorf("status = %q; want success", res.Status)
	}
}

func TestExecute_MissingTargetStage(t *testing.T) {
	e := NewEngine(&mockUserRepo{}, &mockProfileRepo{}, &mockStageRepo{}, &mockUniversityRepo{}, &mockShortlistRepo{})

	_, err := e.Execute(context.Background(), "alice@example.com", models.ActionRequest{
		ActionType: models.ActionTransition,
		Payload:    map[string]any{},
	})
	if apperr.KindOf(err) != apperr.BadRequest {
		t.Fatalf("error = %v; want BadRequest", err)
	}
}

func TestExecute_UnknownAction(t *testing.T) {
	e := NewEngine(&mockUserRepo{}, &mockProfileRepo{}, &mockStageRepo{}, &mockUniversityRepo{}, &mockShortlistRepo{})

	_, err := e.Execute(context.Background(), "alice@example.com", models.ActionRequest{ActionType: "EXPLODE"})
	if apperr.KindOf(err) != apperr.BadRequest {
		t.Fatalf("error = %v; want BadRequest", err)
	}
}
