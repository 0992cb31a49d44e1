package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claude/easyfit/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PreviousSet looks up the set at the given 1-based position in the most
// recent past workout containing the exercise, scoped to the user.
//
// Only the single latest matching workout is considered; this is a point
// lookup, not a trend. Returns (nil, nil) when the user has never performed
// the exercise. When the latest matching workout has no set at that position,
// the result carries nil reps/weight but still reports the workout's
// performed-at timestamp.
func (db *DB) PreviousSet(ctx context.Context, userID int, exerciseName string, setOrder int) (*models.PreviousSet, error) {
	var exerciseID uuid.UUID
	var performedAt time.Time
	err := db.Pool.QueryRow(ctx,
		`SELECT we.id, w.performed_at
		 FROM workout_exercises we
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE w.user_id = $1 AND we.exercise_name = $2
		 ORDER BY w.performed_at DESC
		 LIMIT 1`,
		userID, exerciseName).Scan(&exerciseID, &performedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying previous exercise: %w", err)
	}

	result := &models.PreviousSet{SetOrder: setOrder, PerformedAt: performedAt}

	err = db.Pool.QueryRow(ctx,
		`SELECT reps, weight, set_order
		 FROM exercise_sets
		 WHERE workout_exercise_id = $1 AND set_order = $2`,
		exerciseID, setOrder).Scan(&result.Reps, &result.Weight, &result.SetOrder)
	if errors.Is(err, pgx.ErrNoRows) {
		// Exercise was performed, but not this many sets.
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying previous set: %w", err)
	}
	return result, nil
}
