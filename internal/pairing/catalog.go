package pairing

// CatalogEntry is an exercise in the built-in catalog.
type CatalogEntry struct {
	Name           string        `json:"name"`
	Category       string        `json:"category"`
	MuscleGroups   []MuscleGroup `json:"muscle_groups"`
	DefaultRestSec int           `json:"default_rest_sec"`
}

// defaultRest is the standard rest window between working sets.
const defaultRest = 180

// Catalog is the built-in exercise catalog, grouped by training category.
var Catalog = []CatalogEntry{
	// Compound Upper
	{"Weighted Pull-ups", "Compound Upper", []MuscleGroup{Back, Biceps}, defaultRest},
	{"Pull-ups", "Compound Upper", []MuscleGroup{Back, Biceps}, defaultRest},
	{"Chin-ups", "Compound Upper", []MuscleGroup{Back, Biceps}, defaultRest},
	{"Bench Press", "Compound Upper", []MuscleGroup{Chest, Triceps, Shoulders}, defaultRest},
	{"Overhead Press", "Compound Upper", []MuscleGroup{Shoulders, Triceps}, defaultRest},
	{"Dips", "Compound Upper", []MuscleGroup{Chest, Triceps}, defaultRest},
	{"Muscle-ups", "Compound Upper", []MuscleGroup{Back, Chest, Triceps}, defaultRest},

	// Compound Lower
	{"Deadlifts", "Compound Lower", []MuscleGroup{Hamstrings, Glutes, Back}, defaultRest},
	{"Squats", "Compound Lower", []MuscleGroup{Quads, Glutes}, defaultRest},
	{"Front Squats", "Compound Lower", []MuscleGroup{Quads, Core}, defaultRest},
	{"Bulgarian Split Squats", "Compound Lower", []MuscleGroup{Quads, Glutes}, defaultRest},
	{"Lunges", "Compound Lower", []MuscleGroup{Quads, Glutes}, defaultRest},
	{"Step-ups", "Compound Lower", []MuscleGroup{Quads, Glutes}, defaultRest},
	{"Goblet Squats", "Compound Lower", []MuscleGroup{Quads, Core}, defaultRest},
	{"Romanian Deadlifts", "Compound Lower", []MuscleGroup{Hamstrings, Glutes}, defaultRest},

	// Pull
	{"Barbell Rows", "Pull", []MuscleGroup{Back, Biceps}, defaultRest},
	{"Single Arm DB Row", "Pull", []MuscleGroup{Back, Biceps}, defaultRest},
	{"Cable Rows", "Pull", []MuscleGroup{Back, Biceps}, defaultRest},
	{"T-Bar Rows", "Pull", []MuscleGroup{Back, Biceps}, defaultRest},
	{"Face Pulls", "Pull", []MuscleGroup{Shoulders, Back}, defaultRest},
	{"Lat Pulldowns", "Pull", []MuscleGroup{Back, Biceps}, defaultRest},
	{"Seated Cable Rows", "Pull", []MuscleGroup{Back, Biceps}, defaultRest},
	{"Kroc Rows", "Pull", []MuscleGroup{Back, Biceps, Core}, defaultRest},

	// Push
	{"Incline DB Press", "Push", []MuscleGroup{Chest, Shoulders, Triceps}, defaultRest},
	{"Incline DB Bench", "Push", []MuscleGroup{Chest, Shoulders, Triceps}, defaultRest},
	{"DB Shoulder Press", "Push", []MuscleGroup{Shoulders, Triceps}, defaultRest},
	{"Cable Flyes", "Push", []MuscleGroup{Chest}, defaultRest},
	{"Close-Grip Bench", "Push", []MuscleGroup{Triceps, Chest}, defaultRest},
	{"Arnold Press", "Push", []MuscleGroup{Shoulders, Triceps}, defaultRest},
	{"Cable Crossovers", "Push", []MuscleGroup{Chest}, defaultRest},

	// Core
	{"Hanging Leg Raises", "Core", []MuscleGroup{Core}, defaultRest},
	{"Ab Wheel", "Core", []MuscleGroup{Core}, defaultRest},
	{"Planks", "Core", []MuscleGroup{Core}, defaultRest},
	{"Cable Crunches", "Core", []MuscleGroup{Core}, defaultRest},
	{"Russian Twists", "Core", []MuscleGroup{Core}, defaultRest},
	{"Dead Bugs", "Core", []MuscleGroup{Core}, defaultRest},
	{"Pallof Press", "Core", []MuscleGroup{Core}, defaultRest},
	{"Dragon Flags", "Core", []MuscleGroup{Core}, defaultRest},

	// Arms
	{"Curls", "Arms", []MuscleGroup{Biceps}, defaultRest},
	{"Hammer Curls", "Arms", []MuscleGroup{Biceps}, defaultRest},
	{"Preacher Curls", "Arms", []MuscleGroup{Biceps}, defaultRest},
	{"Cable Curls", "Arms", []MuscleGroup{Biceps}, defaultRest},
	{"Tricep Extensions", "Arms", []MuscleGroup{Triceps}, defaultRest},
	{"Overhead Tricep", "Arms", []MuscleGroup{Triceps}, defaultRest},
	{"Cable Tricep", "Arms", []MuscleGroup{Triceps}, defaultRest},
	{"21s", "Arms", []MuscleGroup{Biceps}, defaultRest},

	// Legs
	{"Leg Press", "Legs", []MuscleGroup{Quads, Glutes}, defaultRest},
	{"Calf Raises", "Legs", []MuscleGroup{Calves}, defaultRest},
	{"Leg Curls", "Legs", []MuscleGroup{Hamstrings}, defaultRest},
	{"Leg Extensions", "Legs", []MuscleGroup{Quads}, defaultRest},
	{"Walking Lunges", "Legs", []MuscleGroup{Quads, Glutes}, defaultRest},
	{"Box Jumps", "Legs", []MuscleGroup{Quads, Calves}, defaultRest},
	{"Single Leg Press", "Legs", []MuscleGroup{Quads, Glutes}, defaultRest},
	{"Nordic Curls", "Legs", []MuscleGroup{Hamstrings}, defaultRest},
}

// DefaultMap builds a pairing Map from the built-in catalog.
func DefaultMap() Map {
	m := make(Map, len(Catalog))
	for _, e := range Catalog {
		m[e.Name] = e.MuscleGroups
	}
	return m
}

// Lookup finds a catalog entry by exact name.
func Lookup(name string) (CatalogEntry, bool) {
	for _, e := range Catalog {
		if e.Name == name {
			return e, true
		}
	}
	return CatalogEntry{}, false
}
