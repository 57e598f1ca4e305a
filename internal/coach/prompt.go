package coach

import (
	"fmt"
	"strings"
)

// SessionContext is the workout state injected into the system prompt.
type SessionContext struct {
	Exercises      []ExerciseContext
	RecentWorkouts []string
	ReadinessScore int
	SleepScore     int
}

// ExerciseContext describes one exercise in the current session.
type ExerciseContext struct {
	Name         string
	MuscleGroups []string
	LastSummary  string
}

// BuildSystemPrompt renders the coaching persona plus current session
// state. The suggestion-block contract lets the frontend render structured
// pairing recommendations.
func BuildSystemPrompt(sc SessionContext) string {
	var b strings.Builder
	b.WriteString("You are a knowledgeable strength training coach. ")
	b.WriteString("Give concise, practical advice about exercise selection, pairing, and progression.\n\n")

	if len(sc.Exercises) > 0 {
		b.WriteString("Current session exercises:\n")
		for _, ex := range sc.Exercises {
			fmt.Fprintf(&b, "- %s", ex.Name)
			if len(ex.MuscleGroups) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(ex.MuscleGroups, ", "))
			}
			if ex.LastSummary != "" {
				fmt.Fprintf(&b, " — last: %s", ex.LastSummary)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(sc.RecentWorkouts) > 0 {
		b.WriteString("Recent workouts:\n")
		for _, w := range sc.RecentWorkouts {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	if sc.ReadinessScore > 0 {
		fmt.Fprintf(&b, "Today's readiness score: %d/100.\n", sc.ReadinessScore)
	}
	if sc.SleepScore > 0 {
		fmt.Fprintf(&b, "Last night's sleep score: %d/100.\n", sc.SleepScore)
	}

	b.WriteString("\nWhen recommending exercises to pair with the current session, ")
	b.WriteString("append a fenced block of the form:\n")
	b.WriteString("```json\n{\"suggestPairings\": [{\"exercise\": \"Name\", \"rating\": \"great\", \"reason\": \"...\"}]}\n```\n")
	b.WriteString("Ratings are one of: great, good, neutral, avoid.")
	return b.String()
}
