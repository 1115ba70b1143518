package service

import (
	"context"
	"testing"

	"github.com/edupath/counsel/internal/apperr"
	"github.com/edupath/counsel/internal/models"
	"github.com/edupath/counsel/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type fakeIssuer struct{}

func (fakeIssuer) Issue(subject string) (string, error) { return "token-" + subject, nil }

func TestSignup_Success(t *testing.T) {
	users := &mockUserRepo{
		EmailExistsFunc: func(ctx context.Context, email string) (bool, error) { return false, nil },
		CreateFunc: func(ctx context.Context, user *models.User) error {
			user.ID = "u1"
			return nil
		},
	}
	s := NewAuthService(users, &mockProfileRepo{}, &mockStageRepo{}, fakeIssuer{})

	session, err := s.Signup(context.Background(), "Alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.AccessToken != "token-alice@example.com" {
		t.Errorf("token = %q", session.AccessToken)
	}
	if session.TokenType != "bearer" {
		t.Errorf("token type = %q; want bearer", session.TokenType)
	}
	if session.User.CurrentStage != models.StageProfile {
		t.Errorf("stage = %q; want PROFILE", session.User.CurrentStage)
	}
	if session.User.ProfileCompleted {
		t.Error("new accounts start with an incomplete profile")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		EmailExistsFunc: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}
	s := NewAuthService(users, &mockProfileRepo{}, &mockStageRepo{}, fakeIssuer{})

	_, err := s.Signup(context.Background(), "Alice", "alice@example.com", "secret123")
	if apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("error = %v; want Conflict", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &models.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: hash}
	users, profiles, stages := accountMocks(user, &models.Profile{UserID: "u1", Completed: true}, models.StageDiscovery)
	s := NewAuthService(users, profiles, stages, fakeIssuer{})

	session, err := s.Login(context.Background(), "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !session.User.ProfileCompleted || session.User.CurrentStage != models.StageDiscovery {
		t.Errorf("user summary = %+v", session.User)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &models.User{ID: "u1", Email: "alice@example.com", PasswordHash: hash}
	users, profiles, stages := accountMocks(user, nil, models.StageProfile)
	s := NewAuthService(users, profiles, stages, fakeIssuer{})

	_, err = s.Login(context.Background(), "alice@example.com", "wrong")
	if apperr.KindOf(err) != apperr.BadRequest {
		t.Fatalf("error = %v; want BadRequest", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, repository.ErrNotFound
		},
	}
	s := NewAuthService(users, &mockProfileRepo{}, &mockStageRepo{}, fakeIssuer{})

	_, err := s.Login(context.Background(), "ghost@example.com", "whatever")
	if apperr.KindOf(err) != apperr.BadRequest {
		t.Fatalf("error = %v; want BadRequest", err)
	}
}

func TestMe(t *testing.T) {
	users, profiles, stages := accountMocks(testUser(), &models.Profile{UserID: "u1", Completed: true}, models.StageFinalize)
	s := NewAuthService(users, profiles, stages, fakeIssuer{})

	summary, err := s.Me(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.ID != "u1" || summary.CurrentStage != models.StageFinalize || !summary.ProfileCompleted {
		t.Errorf("summary = %+v", summary)
	}
}
