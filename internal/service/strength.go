package service

import (
	"fmt"
	"strings"

	"github.com/edupath/counsel/internal/models"
)

// Dimension labels and their UI colour hints.
const (
	labelStrong  = "Strong"
	labelAverage = "Average"
	labelWeak    = "Weak"

	statusSuccess = "success"
	statusWarning = "warning"
	statusError   = "error"
)

// percentageScaleCutoff separates GPA-scale values from percentage-scale
// ones for display. Values above it are shown with a % suffix.
const percentageScaleCutoff = 20

// RepairFromTasks forces profile statuses forward based on already-completed
// tasks. Task completion in one code path may not have synced the profile in
// another; this is the self-healing checkpoint run before scoring and after
// completion writes. Returns true if anything changed.
func RepairFromTasks(p *models.Profile, done []models.Task) bool {
	dirty := false
	for _, t := range done {
		if strings.Contains(t.Title, "Submit Application") || strings.Contains(t.Title, "Finalize SOP") {
			if p.SOPStatus != models.SOPFinalized {
				p.SOPStatus = models.SOPFinalized
				dirty = true
			}
		}
		if strings.Contains(t.Title, "Register for IELTS") && p.IELTSStatus == models.ExamNotTaken {
			p.IELTSStatus = models.ExamPlanned
			dirty = true
		}
		if strings.Contains(t.Title, "Register for GRE") && p.GREStatus == models.ExamNotTaken {
			p.GREStatus = models.ExamPlanned
			dirty = true
		}
	}
	return dirty
}

func examStarted(s models.ExamStatus) bool {
	switch s {
	case models.ExamPlanned, models.ExamInProgress, models.ExamPrepared:
		return true
	}
	return false
}

// ScoreProfile derives the three-dimension strength assessment. The overall
// label is worst-of-three: any Weak dimension makes the profile WEAK, then
// any Average makes it AVERAGE.
func ScoreProfile(p *models.Profile) *models.ProfileStrength {
	var academics, exams, sop models.StrengthComponent

	switch {
	case p.GPA >= 3.5:
		academics = models.StrengthComponent{Label: labelStrong, Status: statusSuccess}
	case p.GPA >= 3.0:
		academics = models.StrengthComponent{Label: labelAverage, Status: statusWarning}
	default:
		academics = models.StrengthComponent{Label: labelWeak, Status: statusError}
	}
	if p.GPA > percentageScaleCutoff {
		academics.Value = fmt.Sprintf("%v%%", p.GPA)
	} else {
		academics.Value = fmt.Sprintf("%v CGPA", p.GPA)
	}

	taken := 0
	if p.IELTSStatus == models.ExamTaken {
		taken++
	}
	if p.GREStatus == models.ExamTaken {
		taken++
	}
	switch {
	case taken == 2:
		exams = models.StrengthComponent{Label: labelStrong, Value: "Both Taken", Status: statusSuccess}
	case taken == 1 || examStarted(p.IELTSStatus) || examStarted(p.GREStatus):
		exams = models.StrengthComponent{Label: labelAverage, Value: "In Progress", Status: statusWarning}
	default:
		exams = models.StrengthComponent{Label: labelWeak, Value: "Not Started", Status: statusError}
	}

	sopValue := string(p.SOPStatus)
	if sopValue == "" {
		sopValue = string(models.SOPNotStarted)
	}
	switch p.SOPStatus {
	case models.SOPDone, models.SOPFinalized, models.SOPReviewed:
		sop = models.StrengthComponent{Label: labelStrong, Value: sopValue, Status: statusSuccess}
	case models.SOPDrafting, models.SOPStarted:
		sop = models.StrengthComponent{Label: labelAverage, Value: sopValue, Status: statusWarning}
	default:
		sop = models.StrengthComponent{Label: labelWeak, Value: sopValue, Status: statusError}
	}

	var label, reason string
	labels := []string{academics.Label, exams.Label, sop.Label}
	switch {
	case contains(labels, labelWeak):
		label = "WEAK"
		reason = "Critical gaps found in your profile."
	case contains(labels, labelAverage):
		label = "AVERAGE"
		reason = "Good foundation, but needs improvement."
	default:
		label = "STRONG"
		reason = "You are ready for top universities!"
	}

	return &models.ProfileStrength{
		Label:  label,
		Reason: reason,
		Components: map[string]models.StrengthComponent{
			"academics": academics,
			"exams":     exams,
			"sop":       sop,
		},
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
