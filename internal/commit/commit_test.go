package commit

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/claude/easyfit/internal/draft"
	"github.com/claude/easyfit/internal/storage"
	"github.com/google/uuid"
)

// spyStore records the trees it receives.
type spyStore struct {
	calls int
	last  *storage.WorkoutDetail
	err   error
}

func (s *spyStore) InsertWorkoutTree(ctx context.Context, tree *storage.WorkoutDetail) error {
	s.calls++
	s.last = tree
	return s.err
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func validDraft() draft.Workout {
	return draft.Workout{
		Name:      "Push Day",
		StartedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Exercises: []draft.Exercise{
			{
				Name:      "Bench Press",
				Completed: true,
				Sets: []draft.Set{
					{Reps: intPtr(8), Weight: floatPtr(80)},
					{Reps: intPtr(6), Weight: floatPtr(85)},
				},
			},
		},
	}
}

func newCommitter(store TreeStore, policy Policy) *Committer {
	return New(store, policy, slog.Default())
}

// TestFinishHappyPath verifies a valid draft commits with 1-based orders and
// a duration derived from the start time.
func TestFinishHappyPath(t *testing.T) {
	store := &spyStore{}
	c := newCommitter(store, Policy{})
	c.now = func() time.Time {
		return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	}

	res := c.Finish(context.Background(), 1, validDraft())
	if !res.OK {
		t.Fatalf("result = %+v, want OK", res)
	}
	if res.WorkoutID == uuid.Nil {
		t.Error("workout ID not set")
	}
	if store.calls != 1 {
		t.Fatalf("insert calls = %d, want 1", store.calls)
	}

	tree := store.last
	if tree.Name != "Push Day" || tree.UserID != 1 {
		t.Errorf("workout = %+v", tree.WorkoutRow)
	}
	if tree.DurationSeconds == nil || *tree.DurationSeconds != 3600 {
		t.Errorf("duration = %v, want 3600", tree.DurationSeconds)
	}
	if len(tree.Exercises) != 1 {
		t.Fatalf("got %d exercises", len(tree.Exercises))
	}
	ex := tree.Exercises[0]
	if ex.ExerciseOrder != 1 || ex.ExerciseName != "Bench Press" {
		t.Errorf("exercise = %+v", ex.WorkoutExerciseRow)
	}
	if ex.WorkoutID != tree.ID {
		t.Error("exercise not linked to workout")
	}
	for j, set := range ex.Sets {
		if set.SetOrder != j+1 {
			t.Errorf("set %d order = %d, want %d", j, set.SetOrder, j+1)
		}
		if set.WorkoutExerciseID != ex.ID {
			t.Errorf("set %d not linked to exercise", j)
		}
	}
}

// nullStore is a draft.Store that persists nothing.
type nullStore struct{}

func (nullStore) Get(key string) (string, bool, error) { return "", false, nil }
func (nullStore) Set(key, value string) error          { return nil }
func (nullStore) Remove(key string) error              { return nil }

// TestFinishSetOrderAfterRemoval verifies set orders are re-derived from
// positions at commit: after removing the first of three sets, the survivors
// are written with orders 1 and 2 and their own values.
func TestFinishSetOrderAfterRemoval(t *testing.T) {
	sess := draft.NewManager(nullStore{}, slog.Default()).Session(1)
	sess.AddExercise("Bench Press")
	for i, reps := range []int{5, 8, 12} {
		sess.AddSet(0)
		r := reps
		w := 60 + float64(i)*10
		sess.UpdateSet(0, i, draft.SetPatch{Reps: &r, Weight: &w})
	}
	sess.RemoveSet(0, 0)

	store := &spyStore{}
	res := newCommitter(store, Policy{}).Finish(context.Background(), 1, sess.Snapshot())
	if !res.OK {
		t.Fatalf("result = %+v", res)
	}

	sets := store.last.Exercises[0].Sets
	if len(sets) != 2 {
		t.Fatalf("got %d sets, want 2", len(sets))
	}
	if sets[0].SetOrder != 1 || *sets[0].Reps != 8 || *sets[0].Weight != 70 {
		t.Errorf("first set = order %d reps %d weight %v, want 1/8/70",
			sets[0].SetOrder, *sets[0].Reps, *sets[0].Weight)
	}
	if sets[1].SetOrder != 2 || *sets[1].Reps != 12 || *sets[1].Weight != 80 {
		t.Errorf("second set = order %d reps %d weight %v, want 2/12/80",
			sets[1].SetOrder, *sets[1].Reps, *sets[1].Weight)
	}
}

// TestFinishBlankNameFallsBack verifies a whitespace-only name commits under
// the default name.
func TestFinishBlankNameFallsBack(t *testing.T) {
	store := &spyStore{}
	c := newCommitter(store, Policy{})

	w := validDraft()
	w.Name = "   "
	res := c.Finish(context.Background(), 1, w)
	if !res.OK {
		t.Fatalf("result = %+v", res)
	}
	if store.last.Name != draft.DefaultName {
		t.Errorf("name = %q, want %q", store.last.Name, draft.DefaultName)
	}
}

// TestFinishNoStartTime verifies a zero start time yields a nil duration
// rather than a bogus one.
func TestFinishNoStartTime(t *testing.T) {
	store := &spyStore{}
	c := newCommitter(store, Policy{})

	w := validDraft()
	w.StartedAt = time.Time{}
	res := c.Finish(context.Background(), 1, w)
	if !res.OK {
		t.Fatalf("result = %+v", res)
	}
	if store.last.DurationSeconds != nil {
		t.Errorf("duration = %v, want nil", *store.last.DurationSeconds)
	}
}

// TestFinishValidationWritesNothing verifies every rejected draft results in
// zero store calls.
func TestFinishValidationWritesNothing(t *testing.T) {
	noSets := validDraft()
	noSets.Exercises[0].Sets = nil

	unnamed := validDraft()
	unnamed.Exercises[0].Name = "  "

	nilReps := validDraft()
	nilReps.Exercises[0].Sets[1].Reps = nil

	tests := []struct {
		name    string
		w       draft.Workout
		errPart string
	}{
		{"no exercises", draft.Workout{Name: "Empty"}, "at least one exercise"},
		{"exercise without sets", noSets, "has no sets"},
		{"unnamed exercise", unnamed, "has no name"},
		{"nil reps", nilReps, "missing reps or weight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &spyStore{}
			c := newCommitter(store, Policy{})
			res := c.Finish(context.Background(), 1, tt.w)
			if res.OK {
				t.Fatal("invalid draft committed")
			}
			if !strings.Contains(res.Err, tt.errPart) {
				t.Errorf("error = %q, want substring %q", res.Err, tt.errPart)
			}
			if store.calls != 0 {
				t.Errorf("insert calls = %d, want 0", store.calls)
			}
		})
	}
}

// TestFinishUnauthenticated verifies user ID zero is rejected before
// validation or writes.
func TestFinishUnauthenticated(t *testing.T) {
	store := &spyStore{}
	c := newCommitter(store, Policy{})

	res := c.Finish(context.Background(), 0, validDraft())
	if res.OK || res.Err != "not authenticated" {
		t.Errorf("result = %+v", res)
	}
	if store.calls != 0 {
		t.Errorf("insert calls = %d, want 0", store.calls)
	}
}

// TestPolicyRequireCompleted verifies the completed-flag check only applies
// when the policy enables it.
func TestPolicyRequireCompleted(t *testing.T) {
	w := validDraft()
	w.Exercises[0].Completed = false

	res := newCommitter(&spyStore{}, Policy{}).Finish(context.Background(), 1, w)
	if !res.OK {
		t.Errorf("default policy rejected incomplete exercise: %+v", res)
	}

	res = newCommitter(&spyStore{}, Policy{RequireCompleted: true}).Finish(context.Background(), 1, w)
	if res.OK || !strings.Contains(res.Err, "not marked complete") {
		t.Errorf("strict policy result = %+v", res)
	}
}

// TestPolicyAllowNullValues verifies nil reps/weight commit as nil rows when
// the policy allows them.
func TestPolicyAllowNullValues(t *testing.T) {
	w := validDraft()
	w.Exercises[0].Sets[0].Weight = nil

	store := &spyStore{}
	res := newCommitter(store, Policy{AllowNullValues: true}).Finish(context.Background(), 1, w)
	if !res.OK {
		t.Fatalf("result = %+v", res)
	}
	if store.last.Exercises[0].Sets[0].Weight != nil {
		t.Error("nil weight not preserved")
	}
}

// TestFinishStorageError verifies store failures surface as a generic
// message, not the internal error.
func TestFinishStorageError(t *testing.T) {
	store := &spyStore{err: errors.New("connection refused")}
	c := newCommitter(store, Policy{})

	res := c.Finish(context.Background(), 1, validDraft())
	if res.OK {
		t.Fatal("failed insert reported OK")
	}
	if res.Err != "could not save workout" {
		t.Errorf("error = %q", res.Err)
	}
	if strings.Contains(res.Err, "connection refused") {
		t.Error("internal error leaked to client")
	}
}
