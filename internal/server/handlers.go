package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/claude/easyfit/internal/catalog"
	"github.com/claude/easyfit/internal/draft"
	"github.com/claude/easyfit/internal/picker"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	info, _ := r.Context().Value(userInfoKey).(UserInfo)
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"exercises":   catalog.Exercises,
		"namePresets": catalog.NamePresets,
	})
}

func (s *Server) handlePreviousSet(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}

	exerciseName := r.URL.Query().Get("exerciseName")
	if exerciseName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exerciseName parameter required"})
		return
	}
	setOrder, err := strconv.Atoi(r.URL.Query().Get("setOrder"))
	if err != nil || setOrder < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "setOrder must be a positive integer"})
		return
	}

	prev, err := s.db.PreviousSet(r.Context(), uid, exerciseName, setOrder)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	// prev is nil when the exercise has never been performed.
	writeJSON(w, http.StatusOK, map[string]any{"previous": prev})
}

// pickerGrid is the derived state a picker screen renders: the bands, which
// band the current value sits in, and the tappable values of that band.
type pickerGrid struct {
	Domain    picker.Domain  `json:"domain"`
	Ranges    []picker.Range `json:"ranges"`
	BandIndex int            `json:"bandIndex"`
	Values    []float64      `json:"values"`
	FineSteps []float64      `json:"fineSteps,omitempty"`
}

func buildPickerGrid(r *http.Request, d picker.Domain, fallback float64) pickerGrid {
	value := fallback
	if v := r.URL.Query().Get("value"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			value = parsed
		}
	}

	ranges := picker.BuildRanges(d)
	band := picker.InitialBandIndex(value, d)
	if b := r.URL.Query().Get("band"); b != "" {
		if parsed, err := strconv.Atoi(b); err == nil && parsed >= 0 && parsed < len(ranges) {
			band = parsed
		}
	}

	return pickerGrid{
		Domain:    d,
		Ranges:    ranges,
		BandIndex: band,
		Values:    picker.BuildValues(ranges[band].Start, ranges[band].End, d.Step),
	}
}

func (s *Server) handleRepsPicker(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildPickerGrid(r, picker.Reps, draft.DefaultReps))
}

func (s *Server) handleWeightPicker(w http.ResponseWriter, r *http.Request) {
	grid := buildPickerGrid(r, picker.Weight, draft.DefaultWeight)
	grid.FineSteps = picker.FineSteps
	writeJSON(w, http.StatusOK, grid)
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	workouts, err := s.db.QueryWorkouts(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	detail, err := s.db.GetWorkout(r.Context(), workoutID, uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if detail == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleRenameWorkout(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		name = draft.DefaultName
	}

	found, err := s.db.UpdateWorkoutName(r.Context(), workoutID, uid, name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	found, err := s.db.DeleteWorkout(r.Context(), workoutID, uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
