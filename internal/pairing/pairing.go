// Package pairing classifies how well two exercises complement each other
// in a superset, based on muscle-group overlap and antagonist heuristics.
package pairing

// MuscleGroup is one of the fixed muscle-group tags an exercise can carry.
type MuscleGroup string

const (
	Chest      MuscleGroup = "chest"
	Back       MuscleGroup = "back"
	Shoulders  MuscleGroup = "shoulders"
	Biceps     MuscleGroup = "biceps"
	Triceps    MuscleGroup = "triceps"
	Quads      MuscleGroup = "quads"
	Hamstrings MuscleGroup = "hamstrings"
	Glutes     MuscleGroup = "glutes"
	Core       MuscleGroup = "core"
	Calves     MuscleGroup = "calves"
)

// Rating is the qualitative pairing classification.
type Rating string

const (
	Great   Rating = "great"
	Good    Rating = "good"
	Neutral Rating = "neutral"
	Avoid   Rating = "avoid"
)

// Map associates exercise names with their muscle-group tags.
type Map map[string][]MuscleGroup

// Groups returns the muscle groups for an exercise, nil if unknown.
func (m Map) Groups(exercise string) []MuscleGroup {
	return m[exercise]
}

// antagonists lists muscle-group pairs that work opposing movements.
// An exercise pair hitting both sides of one of these supersets well.
var antagonists = [][2]MuscleGroup{
	{Chest, Back},
	{Biceps, Triceps},
}

// Classify rates the pairing of two exercises against the given map.
// Unknown exercises (empty tag set) rate neutral. The result is symmetric
// in a and b.
func Classify(a, b string, m Map) Rating {
	tagsA := m.Groups(a)
	tagsB := m.Groups(b)
	if len(tagsA) == 0 || len(tagsB) == 0 {
		return Neutral
	}

	setA := toSet(tagsA)
	setB := toSet(tagsB)

	overlap := 0
	for g := range setA {
		if setB[g] {
			overlap++
		}
	}
	denom := len(setA)
	if len(setB) > denom {
		denom = len(setB)
	}
	ratio := float64(overlap) / float64(denom)

	if isAntagonist(setA, setB) || overlap == 0 {
		return Great
	}
	if ratio > 0.6 {
		return Avoid
	}
	if ratio < 0.3 {
		return Good
	}
	return Neutral
}

func isAntagonist(a, b map[MuscleGroup]bool) bool {
	for _, pair := range antagonists {
		if (a[pair[0]] && b[pair[1]]) || (a[pair[1]] && b[pair[0]]) {
			return true
		}
	}
	return false
}

func toSet(groups []MuscleGroup) map[MuscleGroup]bool {
	set := make(map[MuscleGroup]bool, len(groups))
	for _, g := range groups {
		set[g] = true
	}
	return set
}
