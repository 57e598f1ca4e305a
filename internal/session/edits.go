package session

import "strings"

// Structural edits to the exercise sequence are permitted while not-started
// or active, but not during a rest window: the timer targets the current
// exercise by index, and edits mid-rest would desynchronize them.

// canEdit reports whether structural edits are currently permitted.
func (s *Session) canEdit() bool {
	return (s.status == NotStarted || s.status == Active) && !s.resting()
}

// AddExercise appends an exercise to the sequence.
func (s *Session) AddExercise(name, category string, restSec int) bool {
	name = strings.TrimSpace(name)
	if !s.canEdit() || name == "" {
		return false
	}
	if restSec <= 0 {
		restSec = RestSeconds
	}
	s.exercises = append(s.exercises, &Exercise{
		Name:     name,
		Category: category,
		Groups:   s.muscles.Groups(name),
		RestSec:  restSec,
	})
	return true
}

// RemoveExercise deletes the exercise at index i. While the session is
// active the last remaining exercise cannot be removed. Removing at or
// before the current index clamps the current pointer back into range.
func (s *Session) RemoveExercise(i int) bool {
	if !s.canEdit() || i < 0 || i >= len(s.exercises) {
		return false
	}
	if s.status == Active && len(s.exercises) == 1 {
		return false
	}
	s.exercises = append(s.exercises[:i], s.exercises[i+1:]...)
	if i < s.current {
		s.current--
	}
	if s.current >= len(s.exercises) {
		s.current = len(s.exercises) - 1
	}
	if s.current < 0 {
		s.current = 0
	}
	return true
}

// ReorderExercise moves the exercise at from to position to. The current
// pointer tracks the move so the active exercise stays the same: moving the
// current exercise retargets the pointer to its new position; moving across
// it shifts the pointer by one.
func (s *Session) ReorderExercise(from, to int) bool {
	if !s.canEdit() || from < 0 || from >= len(s.exercises) || to < 0 || to >= len(s.exercises) {
		return false
	}
	if from == to {
		return true
	}
	ex := s.exercises[from]
	rest := append(s.exercises[:from:from], s.exercises[from+1:]...)
	s.exercises = append(rest[:to:to], append([]*Exercise{ex}, rest[to:]...)...)

	switch {
	case from == s.current:
		s.current = to
	case from < s.current && to >= s.current:
		s.current--
	case from > s.current && to <= s.current:
		s.current++
	}
	return true
}

// RenameExercise renames every aspect of an exercise in place: the logged
// sets, muscle-group tags, and completed flag all stay with the entry under
// the new name. The new name must be non-empty after trimming, and a rename
// onto a different existing exercise is rejected rather than silently
// overwriting its history.
func (s *Session) RenameExercise(oldName, newName string) bool {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return false
	}
	idx := -1
	for i, ex := range s.exercises {
		if ex.Name == oldName {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	if newName == oldName {
		return true
	}
	for i, ex := range s.exercises {
		if i != idx && ex.Name == newName {
			return false
		}
	}
	s.exercises[idx].Name = newName
	return true
}

// DeleteSet removes a logged set by position and renumbers the remaining
// sets so numbering stays 1-based and contiguous.
func (s *Session) DeleteSet(exIdx, setIdx int) bool {
	if exIdx < 0 || exIdx >= len(s.exercises) {
		return false
	}
	ex := s.exercises[exIdx]
	if setIdx < 0 || setIdx >= len(ex.Sets) {
		return false
	}
	ex.Sets = append(ex.Sets[:setIdx], ex.Sets[setIdx+1:]...)
	for i := range ex.Sets {
		ex.Sets[i].Number = i + 1
	}
	return true
}

// ToggleWarmup flips the warm-up flag on a logged set. Warm-up sets are
// excluded from PR and volume calculations.
func (s *Session) ToggleWarmup(exIdx, setIdx int) bool {
	if exIdx < 0 || exIdx >= len(s.exercises) {
		return false
	}
	ex := s.exercises[exIdx]
	if setIdx < 0 || setIdx >= len(ex.Sets) {
		return false
	}
	ex.Sets[setIdx].Warmup = !ex.Sets[setIdx].Warmup
	return true
}

// Snapshot is a read-only copy of the session for the persistence handoff.
// Saving does not clear the session; sets remain visible and editable.
type Snapshot struct {
	DurationSec int        `json:"duration_sec"`
	Exercises   []Exercise `json:"exercises"`
	PRs         []PR       `json:"prs"`
}

// Snapshot returns a deep copy of the loggable session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		DurationSec: s.durationSec,
		Exercises:   s.Exercises(),
		PRs:         s.PRs(),
	}
}
