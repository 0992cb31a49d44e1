package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/easyfit/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WorkoutDetail is a workout with its exercises and their sets, ordered by
// the persisted order columns.
type WorkoutDetail struct {
	models.WorkoutRow
	Exercises []ExerciseDetail `json:"exercises"`
}

// ExerciseDetail is one workout exercise with its sets.
type ExerciseDetail struct {
	models.WorkoutExerciseRow
	Sets []models.ExerciseSetRow `json:"sets"`
}

// InsertWorkoutTree inserts a workout with all its exercises and sets inside
// one transaction: a failure at any step leaves no partial tree visible.
func (db *DB) InsertWorkoutTree(ctx context.Context, tree *WorkoutDetail) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning workout transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	w := tree.WorkoutRow
	_, err = tx.Exec(ctx,
		`INSERT INTO workouts (id, user_id, name, performed_at, duration_seconds, notes)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		w.ID, w.UserID, w.Name, w.PerformedAt, w.DurationSeconds, w.Notes)
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}

	for _, ex := range tree.Exercises {
		e := ex.WorkoutExerciseRow
		_, err = tx.Exec(ctx,
			`INSERT INTO workout_exercises (id, workout_id, exercise_name, exercise_order)
			 VALUES ($1,$2,$3,$4)`,
			e.ID, e.WorkoutID, e.ExerciseName, e.ExerciseOrder)
		if err != nil {
			return fmt.Errorf("inserting workout exercise %d: %w", e.ExerciseOrder, err)
		}

		if len(ex.Sets) == 0 {
			continue
		}

		query := `INSERT INTO exercise_sets (id, workout_exercise_id, set_order, reps, weight) VALUES `
		args := make([]any, 0, len(ex.Sets)*5)
		valueStrings := make([]string, 0, len(ex.Sets))
		for i, s := range ex.Sets {
			base := i * 5
			valueStrings = append(valueStrings, fmt.Sprintf(
				"($%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5,
			))
			args = append(args, s.ID, s.WorkoutExerciseID, s.SetOrder, s.Reps, s.Weight)
		}
		query += strings.Join(valueStrings, ",")

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting sets for exercise %d: %w", e.ExerciseOrder, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing workout transaction: %w", err)
	}
	return nil
}

// QueryWorkouts lists the user's workout history, newest first, with
// exercise and set counts.
func (db *DB) QueryWorkouts(ctx context.Context, userID int) ([]models.WorkoutSummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT w.id, w.name, w.performed_at,
		 COUNT(DISTINCT we.id), COUNT(es.id)
		 FROM workouts w
		 LEFT JOIN workout_exercises we ON we.workout_id = w.id
		 LEFT JOIN exercise_sets es ON es.workout_exercise_id = we.id
		 WHERE w.user_id = $1
		 GROUP BY w.id, w.name, w.performed_at
		 ORDER BY w.performed_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSummary
	for rows.Next() {
		var s models.WorkoutSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.PerformedAt, &s.ExerciseCount, &s.SetCount); err != nil {
			return nil, fmt.Errorf("scanning workout summary: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetWorkout retrieves a single workout with its full exercise/set tree.
// Returns (nil, nil) when no workout with that id belongs to the user.
func (db *DB) GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (*WorkoutDetail, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, performed_at, duration_seconds, notes
		 FROM workouts
		 WHERE id = $1 AND user_id = $2`,
		workoutID, userID)

	var w models.WorkoutRow
	err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.PerformedAt, &w.DurationSeconds, &w.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}

	detail := &WorkoutDetail{WorkoutRow: w, Exercises: []ExerciseDetail{}}

	exRows, err := db.Pool.Query(ctx,
		`SELECT id, workout_id, exercise_name, exercise_order
		 FROM workout_exercises
		 WHERE workout_id = $1
		 ORDER BY exercise_order ASC`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying workout exercises: %w", err)
	}
	defer exRows.Close()

	byExercise := map[uuid.UUID]int{}
	for exRows.Next() {
		var e models.WorkoutExerciseRow
		if err := exRows.Scan(&e.ID, &e.WorkoutID, &e.ExerciseName, &e.ExerciseOrder); err != nil {
			return nil, fmt.Errorf("scanning workout exercise: %w", err)
		}
		byExercise[e.ID] = len(detail.Exercises)
		detail.Exercises = append(detail.Exercises, ExerciseDetail{WorkoutExerciseRow: e, Sets: []models.ExerciseSetRow{}})
	}
	if err := exRows.Err(); err != nil {
		return nil, err
	}

	setRows, err := db.Pool.Query(ctx,
		`SELECT es.id, es.workout_exercise_id, es.set_order, es.reps, es.weight
		 FROM exercise_sets es
		 JOIN workout_exercises we ON we.id = es.workout_exercise_id
		 WHERE we.workout_id = $1
		 ORDER BY we.exercise_order ASC, es.set_order ASC`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var s models.ExerciseSetRow
		if err := setRows.Scan(&s.ID, &s.WorkoutExerciseID, &s.SetOrder, &s.Reps, &s.Weight); err != nil {
			return nil, fmt.Errorf("scanning exercise set: %w", err)
		}
		if idx, ok := byExercise[s.WorkoutExerciseID]; ok {
			detail.Exercises[idx].Sets = append(detail.Exercises[idx].Sets, s)
		}
	}

	return detail, setRows.Err()
}

// DeleteWorkout removes a workout; exercises and sets go with it via FK
// cascade. Returns false when nothing matched.
func (db *DB) DeleteWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`,
		workoutID, userID)
	if err != nil {
		return false, fmt.Errorf("deleting workout: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateWorkoutName renames a workout. Returns false when nothing matched.
func (db *DB) UpdateWorkoutName(ctx context.Context, workoutID uuid.UUID, userID int, name string) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE workouts SET name = $3 WHERE id = $1 AND user_id = $2`,
		workoutID, userID, name)
	if err != nil {
		return false, fmt.Errorf("renaming workout: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
