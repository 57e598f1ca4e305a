package session

import (
	"testing"
)

func exerciseNames(s *Session) []string {
	exs := s.Exercises()
	names := make([]string, len(exs))
	for i, ex := range exs {
		names[i] = ex.Name
	}
	return names
}

// TestAddExercise verifies adds are accepted pre-start and rejected while
// resting.
func TestAddExercise(t *testing.T) {
	s := newTestSession(t, "Bench Press")
	if !s.AddExercise("Curls", "Arms", 0) {
		t.Error("AddExercise rejected while not-started")
	}
	if s.AddExercise("   ", "Arms", 0) {
		t.Error("AddExercise accepted blank name")
	}

	s.Start()
	s.LogSet(135, 5, false) // starts rest
	if s.AddExercise("Squats", "Compound Lower", 0) {
		t.Error("AddExercise accepted during rest window")
	}
	s.StopRest()
	if !s.AddExercise("Squats", "Compound Lower", 0) {
		t.Error("AddExercise rejected while active and not resting")
	}
}

// TestAddExerciseTagsFromMap verifies muscle groups come from the injected map.
func TestAddExerciseTagsFromMap(t *testing.T) {
	s := newTestSession(t, "Bench Press")
	groups := s.Exercises()[0].Groups
	if len(groups) != 3 {
		t.Fatalf("Bench Press groups = %v, want 3 tags", groups)
	}
}

// TestRemoveExercise verifies index clamping and the minimum-one rule
// during an active session.
func TestRemoveExercise(t *testing.T) {
	s := newTestSession(t, "A", "B", "C")
	s.Start()

	// Advance to C.
	for i := 0; i < 6; i++ {
		s.LogSet(100, 5, false)
		s.StopRest()
	}
	if s.CurrentIndex() != 2 {
		t.Fatalf("current = %d, want 2", s.CurrentIndex())
	}

	// Removing before the current index shifts it back.
	if !s.RemoveExercise(0) {
		t.Fatal("RemoveExercise(0) rejected")
	}
	if s.CurrentIndex() != 1 {
		t.Errorf("current = %d after removing earlier entry, want 1", s.CurrentIndex())
	}

	// Removing the current (last) entry clamps into range.
	if !s.RemoveExercise(1) {
		t.Fatal("RemoveExercise(1) rejected")
	}
	if s.CurrentIndex() != 0 {
		t.Errorf("current = %d, want 0 after clamp", s.CurrentIndex())
	}

	// Minimum one exercise while active.
	if s.RemoveExercise(0) {
		t.Error("removed the last exercise of an active session")
	}
}

// TestRemoveExerciseNotStarted verifies the list can be emptied before start.
func TestRemoveExerciseNotStarted(t *testing.T) {
	s := newTestSession(t, "A")
	if !s.RemoveExercise(0) {
		t.Error("RemoveExercise rejected while not-started")
	}
	if s.Start() {
		t.Error("Start() accepted with empty list")
	}
}

// TestReorderExercise verifies the current pointer tracks moves.
func TestReorderExercise(t *testing.T) {
	s := newTestSession(t, "A", "B", "C", "D")
	s.Start()
	// current = 0 (A)

	// Move the current exercise: pointer follows.
	if !s.ReorderExercise(0, 2) {
		t.Fatal("ReorderExercise(0,2) rejected")
	}
	if got := exerciseNames(s); got[2] != "A" {
		t.Errorf("order = %v, want A at index 2", got)
	}
	if s.CurrentIndex() != 2 {
		t.Errorf("current = %d, want 2 (followed the move)", s.CurrentIndex())
	}

	// Move across the current index from above: pointer shifts up.
	if !s.ReorderExercise(3, 0) {
		t.Fatal("ReorderExercise(3,0) rejected")
	}
	if s.CurrentIndex() != 3 {
		t.Errorf("current = %d, want 3 after crossing move", s.CurrentIndex())
	}
	cur, _ := s.Current()
	if cur.Name != "A" {
		t.Errorf("current exercise = %q, want A", cur.Name)
	}

	// Move across from below: pointer shifts down.
	if !s.ReorderExercise(0, 3) {
		t.Fatal("ReorderExercise(0,3) rejected")
	}
	if s.CurrentIndex() != 2 {
		t.Errorf("current = %d, want 2", s.CurrentIndex())
	}
	cur, _ = s.Current()
	if cur.Name != "A" {
		t.Errorf("current exercise = %q, want A", cur.Name)
	}

	if s.ReorderExercise(0, 9) {
		t.Error("out-of-range reorder accepted")
	}
}

// TestReorderDuringRest verifies structural edits are gated during a rest
// window.
func TestReorderDuringRest(t *testing.T) {
	s := newTestSession(t, "A", "B")
	s.Start()
	s.LogSet(100, 5, false)
	if s.ReorderExercise(0, 1) {
		t.Error("reorder accepted during rest window")
	}
	if s.RemoveExercise(1) {
		t.Error("remove accepted during rest window")
	}
}

// TestRenameExercise verifies set history, tags, and the completed flag
// survive a rename, and collisions are rejected.
func TestRenameExercise(t *testing.T) {
	s := newTestSession(t, "Curls", "Bench Press")
	s.Start()
	s.LogSet(40, 12, false)
	s.StopRest()

	if !s.RenameExercise("Curls", "Bicep Curls") {
		t.Fatal("rename rejected")
	}
	exs := s.Exercises()
	if exs[0].Name != "Bicep Curls" {
		t.Fatalf("name = %q, want Bicep Curls", exs[0].Name)
	}
	if len(exs[0].Sets) != 1 || exs[0].Sets[0].Weight != 40 {
		t.Errorf("sets lost in rename: %+v", exs[0].Sets)
	}
	if len(exs[0].Groups) == 0 {
		t.Error("muscle groups lost in rename")
	}

	if s.RenameExercise("Bicep Curls", "  ") {
		t.Error("rename to blank accepted")
	}
	if s.RenameExercise("Bicep Curls", "Bench Press") {
		t.Error("rename onto an existing exercise accepted")
	}
	if s.RenameExercise("Ghost", "Anything") {
		t.Error("rename of unknown exercise accepted")
	}
	if !s.RenameExercise("Bicep Curls", "Bicep Curls") {
		t.Error("no-op rename rejected")
	}
}

// TestDeleteSetRenumbers verifies deletion by index renumbers the remaining
// sets contiguously.
func TestDeleteSetRenumbers(t *testing.T) {
	s := newTestSession(t, "A")
	s.Start()
	s.LogSet(100, 5, false)
	s.LogSet(105, 5, false)
	s.LogSet(110, 5, false)

	if !s.DeleteSet(0, 1) {
		t.Fatal("DeleteSet rejected")
	}
	sets := s.Exercises()[0].Sets
	if len(sets) != 2 {
		t.Fatalf("sets = %d, want 2", len(sets))
	}
	for i, set := range sets {
		if set.Number != i+1 {
			t.Errorf("set %d number = %d, want %d", i, set.Number, i+1)
		}
	}
	if sets[1].Weight != 110 {
		t.Errorf("surviving set weight = %v, want 110", sets[1].Weight)
	}

	if s.DeleteSet(0, 9) {
		t.Error("out-of-range DeleteSet accepted")
	}
	if s.DeleteSet(5, 0) {
		t.Error("out-of-range exercise index accepted")
	}
}

// TestToggleWarmup verifies the warm-up flag flips in place.
func TestToggleWarmup(t *testing.T) {
	s := newTestSession(t, "A")
	s.Start()
	s.LogSet(60, 10, false)
	if !s.ToggleWarmup(0, 0) {
		t.Fatal("ToggleWarmup rejected")
	}
	if !s.Exercises()[0].Sets[0].Warmup {
		t.Error("warm-up flag not set")
	}
	s.ToggleWarmup(0, 0)
	if s.Exercises()[0].Sets[0].Warmup {
		t.Error("warm-up flag not cleared")
	}
}

// TestSnapshotIsCopy verifies the persistence snapshot does not alias live
// session state.
func TestSnapshotIsCopy(t *testing.T) {
	s := newTestSession(t, "A", "B")
	s.Start()
	s.LogSet(100, 5, false)

	snap := s.Snapshot()
	snap.Exercises[0].Sets[0].Weight = 999
	snap.Exercises[0].Name = "Mutated"

	exs := s.Exercises()
	if exs[0].Sets[0].Weight != 100 {
		t.Error("snapshot mutation leaked into session sets")
	}
	if exs[0].Name != "A" {
		t.Error("snapshot mutation leaked into session exercise name")
	}
	if len(snap.Exercises) != 2 {
		t.Errorf("snapshot exercises = %d, want 2", len(snap.Exercises))
	}
}
