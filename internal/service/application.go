package service

import (
	"context"

	"github.com/edupath/counsel/internal/models"
)

// ApplicationService serves the APPLICATION phase: starting it (via the
// action engine) and working through the generated checklist.
type ApplicationService struct {
	users    UserRepository
	profiles ProfileRepository
	stages   StageRepository
	tasks    TaskRepository
	engine   *Engine
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(users UserRepository, profiles ProfileRepository, stages StageRepository, tasks TaskRepository, engine *Engine) *ApplicationService {
	return &ApplicationService{users: users, profiles: profiles, stages: stages, tasks: tasks, engine: engine}
}

// Start enters the APPLICATION stage and generates per-university
// checklists. Idempotent: repeated calls only fill in missing checklists.
func (s *ApplicationService) Start(ctx context.Context, email string) (*models.ActionResult, error) {
	return s.engine.StartApplication(ctx, email)
}

// Tasks lists the user's tasks with the owning university's name attached.
func (s *ApplicationService) Tasks(ctx context.Context, email string) ([]models.TaskDetail, error) {
	acct, err := loadAccount(ctx, s.users, s.profiles, s.stages, email)
	if err != nil {
		return nil, err
	}
	return s.tasks.ListDetailed(ctx, acct.User.ID)
}

// CompleteTask marks a checklist task DONE and forward-syncs the profile.
func (s *ApplicationService) CompleteTask(ctx context.Context, email, taskID string) (*models.Task, error) {
	acct, err := loadAccount(ctx, s.users, s.profiles, s.stages, email)
	if err != nil {
		return nil, err
	}
	return completeUserTask(ctx, s.profiles, s.tasks, acct.Profile, acct.User.ID, taskID)
}
