// Package draft holds the in-progress workout: the mutable draft a user
// builds up screen by screen before committing it to the workout history.
// Every mutation is written through to a durable store so the draft survives
// reloads and restarts.
package draft

import (
	"encoding/json"
	"time"
)

// Defaults applied when a draft or set is created, or when a stored draft is
// missing fields.
const (
	DefaultName   = "Workout"
	DefaultReps   = 8
	DefaultWeight = 80
)

// Set is one logged set. Reps and Weight are nullable while editing; the
// commit validation decides whether nil survives to the database.
type Set struct {
	Reps   *int     `json:"reps"`
	Weight *float64 `json:"weight"`
}

// Exercise is one exercise within the draft. Completed is an advisory
// checkpoint flag; any set mutation clears it.
type Exercise struct {
	Name      string `json:"name"`
	Sets      []Set  `json:"sets"`
	Completed bool   `json:"completed"`
}

// Workout is the draft itself. StartedAt is set once at creation and only
// used to derive the workout duration at commit time. Exercise order equals
// display and insert order.
type Workout struct {
	Name      string     `json:"name"`
	StartedAt time.Time  `json:"startedAt"`
	Exercises []Exercise `json:"exercises"`
}

// Default returns a fresh draft started now.
func Default() Workout {
	return Workout{
		Name:      DefaultName,
		StartedAt: time.Now().UTC(),
		Exercises: []Exercise{},
	}
}

func defaultSet() Set {
	reps := DefaultReps
	weight := float64(DefaultWeight)
	return Set{Reps: &reps, Weight: &weight}
}

// Stored drafts are decoded into these loose shapes first so every field can
// be defaulted independently. Leaf values stay raw until decodeJSON proves
// they hold the right type. Unknown fields are ignored.
type workoutJSON struct {
	Name      json.RawMessage   `json:"name"`
	StartedAt json.RawMessage   `json:"startedAt"`
	Exercises []json.RawMessage `json:"exercises"`
}

type exerciseJSON struct {
	Name      json.RawMessage   `json:"name"`
	Sets      []json.RawMessage `json:"sets"`
	Completed json.RawMessage   `json:"completed"`
}

type setJSON struct {
	Reps   json.RawMessage `json:"reps"`
	Weight json.RawMessage `json:"weight"`
}

// decodeJSON unmarshals raw into v, reporting whether raw held a usable
// value. Absent, null, and type-mismatched values report false.
func decodeJSON(raw json.RawMessage, v any) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// Normalize deserializes a stored draft defensively: missing or invalid
// fields fall back to defaults field by field, a type-mismatched leaf only
// loses that leaf, and corrupt JSON yields a fresh default draft rather than
// an error.
func Normalize(data []byte) Workout {
	var raw workoutJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Default()
	}

	w := Workout{Name: DefaultName, StartedAt: time.Now().UTC(), Exercises: []Exercise{}}
	var name string
	if decodeJSON(raw.Name, &name) {
		w.Name = name
	}
	var started time.Time
	if decodeJSON(raw.StartedAt, &started) && !started.IsZero() {
		w.StartedAt = started
	}
	for _, rawEx := range raw.Exercises {
		var e exerciseJSON
		if !decodeJSON(rawEx, &e) {
			continue
		}
		ex := Exercise{Sets: []Set{}}
		var exName string
		if decodeJSON(e.Name, &exName) {
			ex.Name = exName
		}
		for _, rawSet := range e.Sets {
			var sj setJSON
			set := Set{}
			if decodeJSON(rawSet, &sj) {
				var reps int
				if decodeJSON(sj.Reps, &reps) {
					set.Reps = &reps
				}
				var weight float64
				if decodeJSON(sj.Weight, &weight) {
					set.Weight = &weight
				}
			}
			ex.Sets = append(ex.Sets, set)
		}
		var completed bool
		if decodeJSON(e.Completed, &completed) {
			ex.Completed = completed
		}
		w.Exercises = append(w.Exercises, ex)
	}
	return w
}

// Marshal serializes the draft for the store. The in-memory draft is always
// fully populated, so this is a plain encode.
func Marshal(w Workout) ([]byte, error) {
	return json.Marshal(w)
}

// Clone returns a deep copy safe to hand to readers.
func Clone(w Workout) Workout {
	out := w
	out.Exercises = make([]Exercise, len(w.Exercises))
	for i, ex := range w.Exercises {
		c := ex
		c.Sets = make([]Set, len(ex.Sets))
		for j, s := range ex.Sets {
			cs := Set{}
			if s.Reps != nil {
				r := *s.Reps
				cs.Reps = &r
			}
			if s.Weight != nil {
				wt := *s.Weight
				cs.Weight = &wt
			}
			c.Sets[j] = cs
		}
		out.Exercises[i] = c
	}
	return out
}
