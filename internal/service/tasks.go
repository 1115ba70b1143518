package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edupath/counsel/internal/apperr"
	"github.com/edupath/counsel/internal/models"
	"github.com/edupath/counsel/internal/repository"
)

// ProfileGapTasks derives the checklist tasks a profile still calls for.
// Generation is additive and idempotent: a task is only produced when no
// task with the exact same title exists yet, and nothing is ever removed.
func ProfileGapTasks(p *models.Profile, existingTitles map[string]bool, userID string) []models.Task {
	var out []models.Task
	add := func(title, description string) {
		out = append(out, models.Task{UserID: userID, Title: title, Description: description, Status: models.TaskPending})
	}

	if (p.IELTSStatus == models.ExamNotTaken || p.IELTSStatus == models.ExamPrepared) && !existingTitles["Register for IELTS"] {
		add("Register for IELTS", "You need IELTS for most universities.")
	}
	if (p.GREStatus == models.ExamNotTaken || p.GREStatus == models.ExamPrepared) && !existingTitles["Register for GRE"] {
		add("Register for GRE", "Check if your target course requires GRE.")
	}

	if (p.SOPStatus == models.SOPNotStarted || p.SOPStatus == models.SOPDrafting) && !existingTitles["Finalize SOP"] {
		if p.SOPStatus == models.SOPNotStarted && !existingTitles["Draft SOP"] {
			add("Draft SOP", "Start writing your Statement of Purpose.")
		} else if p.SOPStatus == models.SOPDrafting {
			add("Finalize SOP", "Complete and review your SOP.")
		}
	}

	if (p.BudgetMax == nil || *p.BudgetMax < 20000) && !existingTitles["Explore Scholarships"] {
		add("Explore Scholarships", "Your budget is low or undefined. Look for funding options.")
	}

	return out
}

// ApplicationChecklist returns the builder for the three standard tasks
// generated per locked university on APPLICATION entry.
func ApplicationChecklist(userID string) func(universityID, universityName string) []models.Task {
	return func(universityID, universityName string) []models.Task {
		uni := universityID
		return []models.Task{
			{UserID: userID, UniversityID: &uni, Title: fmt.Sprintf("Draft SOP for %s", universityName), Description: "Customize your Statement of Purpose.", Status: models.TaskPending},
			{UserID: userID, UniversityID: &uni, Title: fmt.Sprintf("Request Transcripts for %s", universityName), Description: "Contact your registrar.", Status: models.TaskPending},
			{UserID: userID, UniversityID: &uni, Title: fmt.Sprintf("Submit Application Form for %s", universityName), Description: "Target submission before deadline.", Status: models.TaskPending},
		}
	}
}

func sopRank(s models.SOPStatus) int {
	switch s {
	case models.SOPStarted:
		return 1
	case models.SOPDrafting:
		return 2
	case models.SOPDone, models.SOPReviewed:
		return 3
	case models.SOPFinalized:
		return 4
	default:
		return 0
	}
}

func advanceSOP(p *models.Profile, target models.SOPStatus) bool {
	if sopRank(p.SOPStatus) >= sopRank(target) {
		return false
	}
	p.SOPStatus = target
	return true
}

// ApplyCompletionSync pushes profile statuses forward after the task with
// the given title was completed. The sync is strictly one-directional: a
// status never regresses, no matter which task completes late.
func ApplyCompletionSync(p *models.Profile, title string) bool {
	dirty := false

	if strings.Contains(title, "SOP") {
		if strings.Contains(title, "Draft") && advanceSOP(p, models.SOPDrafting) {
			dirty = true
		}
		if strings.Contains(title, "Finalize") && advanceSOP(p, models.SOPFinalized) {
			dirty = true
		}
	}
	if strings.Contains(title, "Submit Application") && advanceSOP(p, models.SOPFinalized) {
		dirty = true
	}

	if strings.Contains(title, "IELTS") && strings.Contains(title, "Register") && p.IELTSStatus == models.ExamNotTaken {
		p.IELTSStatus = models.ExamPlanned
		dirty = true
	}
	if strings.Contains(title, "GRE") && strings.Contains(title, "Register") && p.GREStatus == models.ExamNotTaken {
		p.GREStatus = models.ExamPlanned
		dirty = true
	}

	return dirty
}

// completeUserTask marks the task DONE and applies the forward profile sync.
func completeUserTask(ctx context.Context, profiles ProfileRepository, tasks TaskRepository, profile *models.Profile, userID, taskID string) (*models.Task, error) {
	task, err := tasks.Get(ctx, userID, taskID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, "task not found")
	}
	if err != nil {
		return nil, err
	}

	if err := tasks.MarkDone(ctx, userID, taskID); err != nil {
		return nil, err
	}
	task.Status = models.TaskDone

	if profile != nil && ApplyCompletionSync(profile, task.Title) {
		if err := profiles.Save(ctx, profile); err != nil {
			return nil, err
		}
	}

	return task, nil
}
