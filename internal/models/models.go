package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutRow is a row ready for insertion into the workouts table.
type WorkoutRow struct {
	ID              uuid.UUID `json:"id"`
	UserID          int       `json:"-"`
	Name            string    `json:"name"`
	PerformedAt     time.Time `json:"performedAt"`
	DurationSeconds *int64    `json:"durationSeconds"`
	Notes           *string   `json:"notes"`
}

// WorkoutExerciseRow is a row for the workout_exercises table.
// ExerciseOrder is 1-based and unique within a workout.
type WorkoutExerciseRow struct {
	ID            uuid.UUID `json:"id"`
	WorkoutID     uuid.UUID `json:"-"`
	ExerciseName  string    `json:"exerciseName"`
	ExerciseOrder int       `json:"exerciseOrder"`
}

// ExerciseSetRow is a row for the exercise_sets table.
// SetOrder is 1-based and unique within an exercise.
type ExerciseSetRow struct {
	ID                uuid.UUID `json:"id"`
	WorkoutExerciseID uuid.UUID `json:"-"`
	SetOrder          int       `json:"setOrder"`
	Reps              *int      `json:"reps"`
	Weight            *float64  `json:"weight"`
}

// WorkoutSummary is a history list entry with aggregate counts.
type WorkoutSummary struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	PerformedAt   time.Time `json:"performedAt"`
	ExerciseCount int       `json:"exerciseCount"`
	SetCount      int       `json:"setCount"`
}

// PreviousSet is the result of a previous-performance lookup: the set at the
// same position in the most recent past workout containing the exercise.
// Reps and Weight are nil when that workout-exercise has no set at the
// requested order.
type PreviousSet struct {
	Reps        *int      `json:"reps"`
	Weight      *float64  `json:"weight"`
	SetOrder    int       `json:"setOrder"`
	PerformedAt time.Time `json:"performedAt"`
}
