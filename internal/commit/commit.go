// Package commit turns a finished workout draft into permanent rows. It is
// the only one-way step in the draft lifecycle: validation happens entirely
// before any write, and the write itself is a single transactional tree
// insert.
package commit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/claude/easyfit/internal/draft"
	"github.com/claude/easyfit/internal/models"
	"github.com/claude/easyfit/internal/storage"
	"github.com/google/uuid"
)

// Policy captures the two validation choices the observed clients disagree
// on; both are configuration rather than hardcoded.
type Policy struct {
	// RequireCompleted rejects drafts containing exercises whose advisory
	// completed flag is still false.
	RequireCompleted bool
	// AllowNullValues lets sets with missing reps or weight commit as NULL
	// columns instead of failing validation.
	AllowNullValues bool
}

// Result is the discriminated outcome of a finish call. Err is a
// human-readable reason; validation failures and storage errors both come
// back this way rather than as Go errors, the caller decides presentation.
type Result struct {
	OK        bool      `json:"ok"`
	WorkoutID uuid.UUID `json:"workoutId,omitzero"`
	Err       string    `json:"error,omitempty"`
}

// TreeStore is the write collaborator. *storage.DB satisfies it.
type TreeStore interface {
	InsertWorkoutTree(ctx context.Context, tree *storage.WorkoutDetail) error
}

var _ TreeStore = (*storage.DB)(nil)

// Committer validates drafts and writes them through a TreeStore.
type Committer struct {
	store  TreeStore
	policy Policy
	log    *slog.Logger
	now    func() time.Time
}

// New creates a Committer with the given validation policy.
func New(store TreeStore, policy Policy, log *slog.Logger) *Committer {
	return &Committer{store: store, policy: policy, log: log, now: time.Now}
}

// Finish validates the draft and inserts the workout tree. Calling it twice
// with the same draft creates two workouts; the caller clears the draft only
// after an OK result, which is what prevents double submits.
func (c *Committer) Finish(ctx context.Context, userID int, w draft.Workout) Result {
	if userID <= 0 {
		return Result{Err: "not authenticated"}
	}

	if msg := c.validate(w); msg != "" {
		return Result{Err: msg}
	}

	name := strings.TrimSpace(w.Name)
	if name == "" {
		name = draft.DefaultName
	}

	now := c.now().UTC()
	var duration *int64
	if !w.StartedAt.IsZero() {
		d := int64(now.Sub(w.StartedAt).Seconds())
		if d < 0 {
			d = 0
		}
		duration = &d
	}

	tree := &storage.WorkoutDetail{
		WorkoutRow: models.WorkoutRow{
			ID:              uuid.New(),
			UserID:          userID,
			Name:            name,
			PerformedAt:     now,
			DurationSeconds: duration,
		},
	}
	for i, ex := range w.Exercises {
		exRow := models.WorkoutExerciseRow{
			ID:            uuid.New(),
			WorkoutID:     tree.ID,
			ExerciseName:  ex.Name,
			ExerciseOrder: i + 1,
		}
		detail := storage.ExerciseDetail{WorkoutExerciseRow: exRow}
		for j, s := range ex.Sets {
			detail.Sets = append(detail.Sets, models.ExerciseSetRow{
				ID:                uuid.New(),
				WorkoutExerciseID: exRow.ID,
				SetOrder:          j + 1,
				Reps:              s.Reps,
				Weight:            s.Weight,
			})
		}
		tree.Exercises = append(tree.Exercises, detail)
	}

	if err := c.store.InsertWorkoutTree(ctx, tree); err != nil {
		c.log.Error("workout commit failed", "user_id", userID, "error", err)
		return Result{Err: "could not save workout"}
	}

	return Result{OK: true, WorkoutID: tree.ID}
}

// validate runs every precondition check before any write. Returns an empty
// string when the draft is committable.
func (c *Committer) validate(w draft.Workout) string {
	if len(w.Exercises) == 0 {
		return "add at least one exercise before saving"
	}
	for i, ex := range w.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			return fmt.Sprintf("exercise %d has no name", i+1)
		}
		if len(ex.Sets) == 0 {
			return fmt.Sprintf("%s has no sets; add at least one", ex.Name)
		}
		if c.policy.RequireCompleted && !ex.Completed {
			return fmt.Sprintf("%s is not marked complete", ex.Name)
		}
		if c.policy.AllowNullValues {
			continue
		}
		for j, s := range ex.Sets {
			if s.Reps == nil || s.Weight == nil {
				return fmt.Sprintf("%s set %d is missing reps or weight", ex.Name, j+1)
			}
		}
	}
	return ""
}
