// Package catalog holds the fixed exercise list users pick from when adding
// an exercise to a workout.
package catalog

// Exercises is the full catalog in display order.
var Exercises = []string{
	// Push
	"Incline Bench Press",
	"Flat Bench Press",
	"Incline Dumbbell Press",
	"Flat Dumbbell Press",
	"Dumbbell Flies",
	"Tricep Pushdowns",
	"Dips",
	"Cable Fly",
	"Lateral Raises",
	"Skull Crushers",

	// Pull
	"Wide-Grip Weighted Pull-Ups",
	"Narrow-Grip Weighted Pull-Ups",
	"Lat Pulldowns",
	"Barbell Rows",
	"Seated Cable Rows",
	"Face Pulls",
	"Barbell Curls",
	"Preacher Curls",
	"Hammer Curls",
	"Cable Curls",
	"Barbell Shrugs",
	"Dumbbell Shrugs",

	// Legs
	"Barbell Squats",
	"Leg Extensions",
	"Hamstring Curls",
	"Romanian Split Squats",
	"Leg Press",
	"Romanian Deadlifts",
	"Calf Raises",

	// Other
	"Deadlifts",
	"Hip Thrusts",
	"Leg Raises",
	"Plank",
	"Weighted Sit Ups",
	"Cable Abdominal Pulls",
}

// NamePresets are quick-pick workout names offered on the naming screen.
var NamePresets = []string{"Push", "Pull", "Legs", "Upper", "Lower", "Full Body", "Cardio"}

// Contains reports whether name is in the catalog.
func Contains(name string) bool {
	for _, e := range Exercises {
		if e == name {
			return true
		}
	}
	return false
}
