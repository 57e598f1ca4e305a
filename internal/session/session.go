// Package session implements the in-memory workout session state machine:
// exercise sequencing, set logging with session PRs, and the rest-timer /
// superset flow. All operations are synchronous and cannot fail on external
// causes; invalid input is reported as a rejected no-op, never an error.
// Side effects (haptics, alerts) surface as Effects values that the caller
// executes, keeping the machine itself testable without a UI harness.
package session

import (
	"strconv"
	"strings"

	"github.com/bradpignatello/wellivian/internal/pairing"
)

// Status is the lifecycle state of a session.
type Status string

const (
	NotStarted Status = "not-started"
	Active     Status = "active"
	Ended      Status = "ended"
)

// TimerPhase is the rest-timer sub-state.
type TimerPhase string

const (
	TimerIdle        TimerPhase = "idle"
	TimerResting     TimerPhase = "resting"
	TimerSwitchAlert TimerPhase = "switch-alert"
)

const (
	// RestSeconds is the full rest window started after every logged set.
	RestSeconds = 180
	// SwitchAlertSeconds is the countdown value at which superset mode
	// fires the switch-exercises alert.
	SwitchAlertSeconds = 90
	// WorkingSetsPerExercise is the number of sets before advancing to the
	// next exercise.
	WorkingSetsPerExercise = 3
)

// Set is one logged set of an exercise.
type Set struct {
	Number int     `json:"set_number"`
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	Warmup bool    `json:"is_warmup"`
}

// Exercise is an exercise selected into the session, with its logged sets.
type Exercise struct {
	Name      string                `json:"name"`
	Category  string                `json:"category"`
	Groups    []pairing.MuscleGroup `json:"muscle_groups"`
	RestSec   int                   `json:"rest_sec"`
	Sets      []Set                 `json:"sets"`
	Completed bool                  `json:"completed"`
}

// PR records a session personal record for later display.
type PR struct {
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
}

// Timer is the rest-timer sub-state.
type Timer struct {
	Phase     TimerPhase `json:"phase"`
	Remaining int        `json:"remaining_sec"`
}

// Effects describes side effects the caller should perform after an
// operation. The machine never performs them itself.
type Effects struct {
	Vibrate     bool // short haptic pulse
	SwitchAlert bool // superset mid-rest: switch to the paired exercise
	RestDone    bool // rest window elapsed, back to lifting
	WorkoutDone bool // session ended by completing the final set
	NewPR       bool // the logged set was a session PR
	PRCount     int  // on End: number of PRs to enumerate in the summary
}

// Session owns the exercise sequence and all sub-state for one workout.
// It is exclusively owned by the driving caller; no internal locking.
type Session struct {
	status       Status
	exercises    []*Exercise
	current      int
	setCounter   int
	durationSec  int
	supersetMode bool
	timer        Timer
	prs          []PR
	muscles      pairing.Map
}

// New creates a not-started session using the given muscle-group map for
// pairing annotations.
func New(muscles pairing.Map) *Session {
	return &Session{
		status:     NotStarted,
		setCounter: 1,
		timer:      Timer{Phase: TimerIdle},
		muscles:    muscles,
	}
}

// Status returns the session lifecycle state.
func (s *Session) Status() Status { return s.status }

// Timer returns the rest-timer sub-state.
func (s *Session) Timer() Timer { return s.timer }

// Duration returns elapsed active seconds.
func (s *Session) Duration() int { return s.durationSec }

// SetCounter returns the 1-based counter for the next set.
func (s *Session) SetCounter() int { return s.setCounter }

// CurrentIndex returns the index of the active exercise.
func (s *Session) CurrentIndex() int { return s.current }

// SupersetMode reports whether superset alerts are enabled.
func (s *Session) SupersetMode() bool { return s.supersetMode }

// SetSupersetMode toggles superset alerts.
func (s *Session) SetSupersetMode(on bool) { s.supersetMode = on }

// PRs returns a copy of the session PR list.
func (s *Session) PRs() []PR {
	out := make([]PR, len(s.prs))
	copy(out, s.prs)
	return out
}

// Exercises returns a deep copy of the exercise sequence.
func (s *Session) Exercises() []Exercise {
	out := make([]Exercise, len(s.exercises))
	for i, ex := range s.exercises {
		out[i] = *ex
		out[i].Sets = append([]Set(nil), ex.Sets...)
		out[i].Groups = append([]pairing.MuscleGroup(nil), ex.Groups...)
	}
	return out
}

// Current returns a copy of the active exercise, false if the list is empty.
func (s *Session) Current() (Exercise, bool) {
	if s.current < 0 || s.current >= len(s.exercises) {
		return Exercise{}, false
	}
	ex := *s.exercises[s.current]
	ex.Sets = append([]Set(nil), ex.Sets...)
	return ex, true
}

// resting reports whether a rest window is running.
func (s *Session) resting() bool {
	return s.timer.Phase != TimerIdle
}

// Start transitions not-started → active. Rejected (false) if the exercise
// list is empty or the session already started. Resets the duration counter
// and clears the session PR list.
func (s *Session) Start() bool {
	if s.status != NotStarted || len(s.exercises) == 0 {
		return false
	}
	s.status = Active
	s.durationSec = 0
	s.prs = nil
	s.current = 0
	s.setCounter = 1
	s.timer = Timer{Phase: TimerIdle}
	return true
}

// End transitions to ended from any state, cancels the rest timer, and
// reports the PR count for the completion summary.
func (s *Session) End() Effects {
	s.status = Ended
	s.timer = Timer{Phase: TimerIdle}
	return Effects{WorkoutDone: true, PRCount: len(s.prs)}
}

// ParseSet validates raw weight/reps input. Both must parse as non-negative
// numbers; otherwise ok is false and the caller must not log the set.
func ParseSet(weightStr, repsStr string) (weight float64, reps int, ok bool) {
	weightStr = strings.TrimSpace(weightStr)
	repsStr = strings.TrimSpace(repsStr)
	if weightStr == "" || repsStr == "" {
		return 0, 0, false
	}
	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil || weight < 0 {
		return 0, 0, false
	}
	reps, err = strconv.Atoi(repsStr)
	if err != nil || reps < 0 {
		return 0, 0, false
	}
	return weight, reps, true
}

// LogSet appends a set to the current exercise tagged with the current set
// counter, records a PR when the weight beats the session max for that
// exercise (warm-ups never count), starts the 180-second rest window, and
// advances the set counter / exercise pointer. Logging the final set of the
// final exercise ends the session.
//
// Logging during a rest window simply restarts the timer. Rejected
// (ok=false) outside the active state or with negative input.
func (s *Session) LogSet(weight float64, reps int, warmup bool) (Effects, bool) {
	if s.status != Active || weight < 0 || reps < 0 {
		return Effects{}, false
	}
	ex := s.exercises[s.current]

	var fx Effects
	if !warmup && s.isSessionPR(ex, weight) {
		s.prs = append(s.prs, PR{Exercise: ex.Name, Weight: weight, Reps: reps})
		fx.NewPR = true
	}

	ex.Sets = append(ex.Sets, Set{
		Number: s.setCounter,
		Weight: weight,
		Reps:   reps,
		Warmup: warmup,
	})

	// Rest starts after every set; ending the session below cancels it.
	s.timer = Timer{Phase: TimerResting, Remaining: RestSeconds}

	if s.setCounter < WorkingSetsPerExercise {
		s.setCounter++
		return fx, true
	}

	s.setCounter = 1
	ex.Completed = true
	if s.current < len(s.exercises)-1 {
		s.current++
		return fx, true
	}

	end := s.End()
	fx.WorkoutDone = true
	fx.PRCount = end.PRCount
	return fx, true
}

// isSessionPR reports whether weight beats every previously logged working
// set of ex in this session (first working set always qualifies).
func (s *Session) isSessionPR(ex *Exercise, weight float64) bool {
	first := true
	max := 0.0
	for _, set := range ex.Sets {
		if set.Warmup {
			continue
		}
		if first || set.Weight > max {
			max = set.Weight
		}
		first = false
	}
	return first || weight > max
}

// Tick advances the session by one wall-clock second. The duration counter
// runs while active; the rest timer decrements only while resting. Each tick
// is atomic: decrement, check thresholds, at most one phase transition.
func (s *Session) Tick() Effects {
	if s.status != Active {
		return Effects{}
	}
	s.durationSec++

	if !s.resting() {
		return Effects{}
	}

	s.timer.Remaining--
	if s.timer.Remaining <= 0 {
		s.timer = Timer{Phase: TimerIdle}
		return Effects{RestDone: true, Vibrate: true}
	}
	if s.supersetMode && s.timer.Phase == TimerResting && s.timer.Remaining == SwitchAlertSeconds {
		s.timer.Phase = TimerSwitchAlert
		return Effects{SwitchAlert: true, Vibrate: true}
	}
	return Effects{}
}

// StopRest cancels the running rest window, returning to active lifting.
func (s *Session) StopRest() {
	s.timer = Timer{Phase: TimerIdle}
}

// SiblingRatings classifies every other exercise against the current one
// for display. Returns nil when no exercise is active.
func (s *Session) SiblingRatings() map[string]pairing.Rating {
	cur, ok := s.Current()
	if !ok {
		return nil
	}
	ratings := make(map[string]pairing.Rating, len(s.exercises)-1)
	for i, ex := range s.exercises {
		if i == s.current {
			continue
		}
		ratings[ex.Name] = pairing.Classify(cur.Name, ex.Name, s.muscles)
	}
	return ratings
}
