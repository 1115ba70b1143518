// Package repository provides PostgreSQL persistence for users, profiles,
// stages, universities, shortlists and tasks.
package repository

import "errors"

var (
	// ErrNotFound is returned when a point lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrStageConflict is returned when a compare-and-swap stage update
	// matched no row, i.e. the stage changed underneath the caller.
	ErrStageConflict = errors.New("stage changed concurrently")
	// ErrNoLockedShortlist is returned when entering APPLICATION without
	// any locked shortlist.
	ErrNoLockedShortlist = errors.New("no locked shortlist")
	// ErrWrongStage is returned when a stage-bound mutation finds the user
	// in a stage it cannot serve.
	ErrWrongStage = errors.New("wrong stage")
)
