// Package models defines the core data structures for users, profiles,
// counselling stages, universities, shortlists and checklist tasks.
package models

import "time"

// Stage identifies the counselling phase a user is currently in.
// Stages only advance through the defined workflow edges; no endpoint
// may set the value arbitrarily.
type Stage string

const (
	// StageProfile is the initial onboarding phase.
	StageProfile Stage = "PROFILE"
	// StageDiscovery is the university exploration phase.
	StageDiscovery Stage = "DISCOVERY"
	// StageFinalize is the shortlist commitment phase.
	StageFinalize Stage = "FINALIZE"
	// StageApplication is the final application checklist phase.
	StageApplication Stage = "APPLICATION"
)

// RankTier classifies a university's ranking band.
type RankTier string

const (
	RankLow  RankTier = "LOW"
	RankMid  RankTier = "MID"
	RankHigh RankTier = "HIGH"
)

// CompetitionLevel classifies how competitive admission to a university is.
type CompetitionLevel string

const (
	CompetitionLow    CompetitionLevel = "LOW"
	CompetitionMedium CompetitionLevel = "MEDIUM"
	CompetitionHigh   CompetitionLevel = "HIGH"
)

// ShortlistCategory classifies a shortlisted university by admission odds.
type ShortlistCategory string

const (
	CategoryDream  ShortlistCategory = "DREAM"
	CategoryTarget ShortlistCategory = "TARGET"
	CategorySafe   ShortlistCategory = "SAFE"
)

// TaskStatus is the completion state of a checklist task.
type TaskStatus string

const (
	TaskPending TaskStatus = "PENDING"
	TaskDone    TaskStatus = "DONE"
)

// ExamStatus is the progress state of a language or aptitude exam.
type ExamStatus string

const (
	ExamNotTaken   ExamStatus = "Not Taken"
	ExamPlanned    ExamStatus = "Planned"
	ExamPrepared   ExamStatus = "Prepared"
	ExamInProgress ExamStatus = "In Progress"
	ExamTaken      ExamStatus = "Taken"
)

// SOPStatus is the progress state of the statement of purpose.
type SOPStatus string

const (
	SOPNotStarted SOPStatus = "Not Started"
	SOPStarted    SOPStatus = "Started"
	SOPDrafting   SOPStatus = "Drafting"
	SOPDone       SOPStatus = "Done"
	SOPReviewed   SOPStatus = "Reviewed"
	SOPFinalized  SOPStatus = "Finalized"
)

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// Name is the display name chosen at signup.
	Name string
	// Email is the unique login identity.
	Email string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte
	// CreatedAt is the signup timestamp.
	CreatedAt time.Time
}

// Profile accumulates the user's onboarding answers. Exactly one profile
// exists per user, created together with the user at signup.
type Profile struct {
	UserID string

	EducationLevel string
	Major          string
	GraduationYear int
	GPA            float64

	TargetDegree string
	FieldOfStudy string
	IntakeYear   int

	PreferredCountries []string

	BudgetMin int
	// BudgetMax is nil until the budget form has been submitted.
	BudgetMax   *int
	FundingType string

	IELTSStatus ExamStatus
	GREStatus   ExamStatus
	SOPStatus   SOPStatus

	// Completed is monotonic: once true, onboarding writes are refused.
	Completed bool
}

// University is static reference data describing an institution.
type University struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Country          string           `json:"country"`
	AnnualCost       int              `json:"annual_cost"`
	RankingTier      RankTier         `json:"ranking_tier"`
	CompetitionLevel CompetitionLevel `json:"competition_level"`
}

// Shortlist joins a user to a candidate university. At most one row exists
// per (user, university) pair.
type Shortlist struct {
	ID           string
	UserID       string
	UniversityID string
	Category     ShortlistCategory
	// Locked marks an irrevocable-until-unlocked commitment that gates
	// entry into the APPLICATION stage.
	Locked bool
}

// ShortlistItem is a shortlist row joined with its university details,
// as presented by the finalize status view and the advisor.
type ShortlistItem struct {
	UniversityID   string            `json:"university_id"`
	UniversityName string            `json:"university_name"`
	Country        string            `json:"country"`
	Category       ShortlistCategory `json:"category"`
	Locked         bool              `json:"locked"`
}

// Task is a checklist item belonging to a user, optionally tied to a
// university. Tasks are append-only except for status transitions and the
// bulk deletion triggered by unlocking a shortlist.
type Task struct {
	ID     string `json:"id"`
	UserID string `json:"-"`
	// UniversityID is nil for profile-gap tasks.
	UniversityID *string    `json:"university_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       TaskStatus `json:"status"`
	// GeneratedByAI marks tasks inserted on behalf of the advisor.
	GeneratedByAI bool `json:"generated_by_ai"`
}

// TaskDetail is a task joined with its university name for the
// application checklist view.
type TaskDetail struct {
	Task
	UniversityName string `json:"university_name,omitempty"`
}

// UserSummary is the public view of a user returned by auth endpoints.
type UserSummary struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	ProfileCompleted bool   `json:"profile_completed"`
	CurrentStage     Stage  `json:"current_stage"`
}

// Session is the result of a successful signup or login.
type Session struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserSummary `json:"user"`
}

// DashboardSummary is the high-level dashboard header payload.
type DashboardSummary struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	CurrentStage     Stage  `json:"current_stage"`
	ProfileCompleted bool   `json:"profile_completed"`
}

// StrengthComponent is one scored dimension of the profile.
type StrengthComponent struct {
	// Label is Strong, Average or Weak.
	Label string `json:"label"`
	// Value is the display value, e.g. "3.8 CGPA" or "Both Taken".
	Value string `json:"value"`
	// Status is the UI colour hint: success, warning or error.
	Status string `json:"status"`
}

// ProfileStrength is the derived assessment over all dimensions.
type ProfileStrength struct {
	// Label is the overall WEAK/AVERAGE/STRONG verdict.
	Label      string                       `json:"label"`
	Reason     string                       `json:"reason"`
	Components map[string]StrengthComponent `json:"components"`
}

// FinalizeStatus reports the shortlist and lock state during FINALIZE.
type FinalizeStatus struct {
	Shortlists  []ShortlistItem `json:"shortlists"`
	LockedCount int             `json:"locked_count"`
	CanProceed  bool            `json:"can_proceed"`
}

// AdvisorAction is a suggested action the action engine can execute.
// Type and Payload match the shape accepted by ActionRequest.
type AdvisorAction struct {
	Type    string         `json:"type"`
	Label   string         `json:"label"`
	Payload map[string]any `json:"payload"`
}

// AdvisorReply is the advisory rule engine's output for the current state.
type AdvisorReply struct {
	Message        string          `json:"message"`
	Actions        []AdvisorAction `json:"actions"`
	NextSuggestion string          `json:"next_suggestion"`
}

// ActionRequest is a generic action submitted to the action engine,
// either directly or by accepting an advisor suggestion.
type ActionRequest struct {
	ActionType string         `json:"action_type" validate:"required"`
	Payload    map[string]any `json:"payload"`
}

// Action result statuses. Ignored means the request was already satisfied
// and nothing was mutated.
const (
	ActionSuccess = "success"
	ActionIgnored = "ignored"
)

// Action types understood by the action engine.
const (
	ActionTransition = "TRANSITION"
	ActionShortlist  = "SHORTLIST"
	ActionLock       = "LOCK"
)

// ActionResult is the outcome of an executed action.
type ActionResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// OnboardingAcademic carries the academic background form.
type OnboardingAcademic struct {
	EducationLevel string  `json:"education_level" validate:"required"`
	Major          string  `json:"major" validate:"required"`
	GraduationYear int     `json:"graduation_year" validate:"required"`
	GPA            float64 `json:"gpa" validate:"required"`
}

// OnboardingGoals carries the study goals form.
type OnboardingGoals struct {
	TargetDegree       string   `json:"target_degree" validate:"required"`
	FieldOfStudy       string   `json:"field_of_study" validate:"required"`
	IntakeYear         int      `json:"intake_year" validate:"required"`
	PreferredCountries []string `json:"preferred_countries" validate:"required"`
}

// OnboardingBudget carries the budget form.
type OnboardingBudget struct {
	BudgetMin   int    `json:"budget_min"`
	BudgetMax   int    `json:"budget_max" validate:"required"`
	FundingType string `json:"funding_type" validate:"required"`
}

// OnboardingReadiness carries the exam and SOP readiness form.
type OnboardingReadiness struct {
	IELTSStatus string `json:"ielts_status" validate:"required"`
	GREStatus   string `json:"gre_status" validate:"required"`
	SOPStatus   string `json:"sop_status" validate:"required"`
}
