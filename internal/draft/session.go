package draft

import (
	"fmt"
	"log/slog"
	"sync"
)

// Manager hands out draft sessions. There is at most one session (and so one
// in-progress workout) per user; repeated calls for the same user return the
// same handle.
type Manager struct {
	store Store
	log   *slog.Logger

	mu       sync.Mutex
	sessions map[int]*Session
}

// NewManager creates a Manager backed by the given store.
func NewManager(store Store, log *slog.Logger) *Manager {
	return &Manager{
		store:    store,
		log:      log,
		sessions: make(map[int]*Session),
	}
}

// Session returns the user's draft session, hydrating it from the store on
// first access. A stored draft that fails to decode is discarded and replaced
// with a fresh default.
func (m *Manager) Session(userID int) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}

	s := &Session{key: draftKey(userID), store: m.store, log: m.log}
	payload, found, err := m.store.Get(s.key)
	switch {
	case err != nil:
		m.log.Warn("loading draft failed, starting fresh", "user_id", userID, "error", err)
		s.w = Default()
	case found:
		s.w = Normalize([]byte(payload))
	default:
		s.w = Default()
	}

	m.sessions[userID] = s
	return s
}

func draftKey(userID int) string {
	return fmt.Sprintf("workout-draft/%d", userID)
}

// Session is one user's draft plus its mutation operations. Mutations are
// applied atomically under a lock and the whole draft is written to the store
// before the call returns; persist failures are logged, never surfaced, so
// the in-memory draft always reflects the latest edit.
//
// All index-based operations are position-based: removing index 2 shifts
// later indices down. Out-of-range indices are absorbed as no-ops because
// screens may race their own navigation.
type Session struct {
	key   string
	store Store
	log   *slog.Logger

	mu sync.Mutex
	w  Workout
}

// Snapshot returns a deep copy of the current draft.
func (s *Session) Snapshot() Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Clone(s.w)
}

// SetName replaces the draft name verbatim; trimming happens at commit.
func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w.Name = name
	s.persist()
}

// AddExercise appends an exercise with no sets and returns its index, so the
// caller can navigate straight to it.
func (s *Session) AddExercise(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w.Exercises = append(s.w.Exercises, Exercise{Name: name, Sets: []Set{}})
	s.persist()
	return len(s.w.Exercises) - 1
}

// RemoveExercise removes the exercise at index; no-op when out of range.
func (s *Session) RemoveExercise(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.w.Exercises) {
		return
	}
	s.w.Exercises = append(s.w.Exercises[:index], s.w.Exercises[index+1:]...)
	s.persist()
}

// AddSet appends a set to the exercise, carrying the previous set's reps and
// weight forward (falling back to the defaults), and returns the new set's
// index. Returns -1 when the exercise index is out of range.
func (s *Session) AddSet(exerciseIndex int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if exerciseIndex < 0 || exerciseIndex >= len(s.w.Exercises) {
		return -1
	}
	ex := &s.w.Exercises[exerciseIndex]

	next := defaultSet()
	if n := len(ex.Sets); n > 0 {
		prev := ex.Sets[n-1]
		if prev.Reps != nil {
			r := *prev.Reps
			next.Reps = &r
		}
		if prev.Weight != nil {
			w := *prev.Weight
			next.Weight = &w
		}
	}

	ex.Sets = append(ex.Sets, next)
	ex.Completed = false
	s.persist()
	return len(ex.Sets) - 1
}

// RemoveSet removes the set at the position; no-op when either index is out
// of range.
func (s *Session) RemoveSet(exerciseIndex, setIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if exerciseIndex < 0 || exerciseIndex >= len(s.w.Exercises) {
		return
	}
	ex := &s.w.Exercises[exerciseIndex]
	if setIndex < 0 || setIndex >= len(ex.Sets) {
		return
	}
	ex.Sets = append(ex.Sets[:setIndex], ex.Sets[setIndex+1:]...)
	ex.Completed = false
	s.persist()
}

// SetPatch is a partial set update; nil fields are left unchanged.
type SetPatch struct {
	Reps   *int     `json:"reps"`
	Weight *float64 `json:"weight"`
}

// UpdateSet applies a partial update to the set at the position, growing the
// set list with default sets when setIndex is beyond the current length. A
// set screen can be reached by direct navigation before its set was
// materialized, so "ensure the set exists" is part of the operation.
func (s *Session) UpdateSet(exerciseIndex, setIndex int, patch SetPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if exerciseIndex < 0 || exerciseIndex >= len(s.w.Exercises) || setIndex < 0 {
		return
	}
	ex := &s.w.Exercises[exerciseIndex]
	for len(ex.Sets) <= setIndex {
		ex.Sets = append(ex.Sets, defaultSet())
	}
	if patch.Reps != nil {
		r := *patch.Reps
		ex.Sets[setIndex].Reps = &r
	}
	if patch.Weight != nil {
		w := *patch.Weight
		ex.Sets[setIndex].Weight = &w
	}
	ex.Completed = false
	s.persist()
}

// CompleteExercise marks the exercise's sets as finalized. No-op when the
// exercise has no sets or the index is out of range.
func (s *Session) CompleteExercise(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.w.Exercises) {
		return
	}
	if len(s.w.Exercises[index].Sets) == 0 {
		return
	}
	s.w.Exercises[index].Completed = true
	s.persist()
}

// MarkIncomplete clears the advisory completed flag.
func (s *Session) MarkIncomplete(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.w.Exercises) {
		return
	}
	s.w.Exercises[index].Completed = false
	s.persist()
}

// Reset discards the draft: in-memory state returns to a fresh default and
// the stored copy is removed.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = Default()
	if err := s.store.Remove(s.key); err != nil {
		s.log.Warn("removing stored draft failed", "key", s.key, "error", err)
	}
}

// persist writes the whole draft through to the store. Caller holds s.mu.
func (s *Session) persist() {
	data, err := Marshal(s.w)
	if err != nil {
		s.log.Warn("encoding draft failed", "key", s.key, "error", err)
		return
	}
	if err := s.store.Set(s.key, string(data)); err != nil {
		s.log.Warn("persisting draft failed", "key", s.key, "error", err)
	}
}
