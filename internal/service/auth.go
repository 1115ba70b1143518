package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/edupath/counsel/internal/apperr"
	"github.com/edupath/counsel/internal/models"
	"github.com/edupath/counsel/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer mints an access token for a user identity.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// AuthService implements signup, login and identity lookup.
type AuthService struct {
	users    UserRepository
	profiles ProfileRepository
	stages   StageRepository
	tokens   TokenIssuer
}

// NewAuthService constructs an AuthService over the given collaborators.
func NewAuthService(users UserRepository, profiles ProfileRepository, stages StageRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, profiles: profiles, stages: stages, tokens: tokens}
}

// Signup registers a new account. The user, its empty profile and its
// PROFILE stage row are created together; a duplicate email is refused.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.Session, error) {
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "the user with this email already exists in the system")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.session(user, false, models.StageProfile)
}

// Login verifies credentials and returns a fresh session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.New(apperr.BadRequest, "incorrect email or password")
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, apperr.New(apperr.BadRequest, "incorrect email or password")
	}

	acct, err := loadAccount(ctx, s.users, s.profiles, s.stages, email)
	if err != nil {
		return nil, err
	}
	completed := acct.Profile != nil && acct.Profile.Completed
	return s.session(user, completed, acct.Stage)
}

// Me returns the authenticated user's summary.
func (s *AuthService) Me(ctx context.Context, email string) (*models.UserSummary, error) {
	acct, err := loadAccount(ctx, s.users, s.profiles, s.stages, email)
	if err != nil {
		return nil, err
	}
	summary := acct.summary()
	return &summary, nil
}

func (s *AuthService) session(user *models.User, completed bool, stage models.Stage) (*models.Session, error) {
	accessToken, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &models.Session{
		AccessToken: accessToken,
		TokenType:   "bearer",
		User: models.UserSummary{
			ID:               user.ID,
			Email:            user.Email,
			Name:             user.Name,
			ProfileCompleted: completed,
			CurrentStage:     stage,
		},
	}, nil
}
