package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/claude/easyfit/internal/catalog"
	"github.com/claude/easyfit/internal/draft"
	"github.com/go-chi/chi/v5"
)

// draftIndex parses a chi URL param as a zero-based index. Returns -1 for
// anything unparsable; the session absorbs out-of-range indices as no-ops.
func draftIndex(r *http.Request, name string) int {
	idx, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || idx < 0 {
		return -1
	}
	return idx
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.drafts.Session(uid).Snapshot())
}

func (s *Server) handleDiscardDraft(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	s.drafts.Session(uid).Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetDraftName(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	sess := s.drafts.Session(uid)
	sess.SetName(body.Name)
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if !catalog.Contains(body.Name) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown exercise"})
		return
	}

	sess := s.drafts.Session(uid)
	index := sess.AddExercise(body.Name)
	writeJSON(w, http.StatusOK, map[string]any{"index": index, "draft": sess.Snapshot()})
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	sess := s.drafts.Session(uid)
	sess.RemoveExercise(draftIndex(r, "index"))
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleCompleteExercise(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	sess := s.drafts.Session(uid)
	sess.CompleteExercise(draftIndex(r, "index"))
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleMarkIncomplete(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	sess := s.drafts.Session(uid)
	sess.MarkIncomplete(draftIndex(r, "index"))
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	sess := s.drafts.Session(uid)
	index := sess.AddSet(draftIndex(r, "index"))
	if index < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"index": index, "draft": sess.Snapshot()})
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var patch draft.SetPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	sess := s.drafts.Session(uid)
	sess.UpdateSet(draftIndex(r, "index"), draftIndex(r, "set"), patch)
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	sess := s.drafts.Session(uid)
	sess.RemoveSet(draftIndex(r, "index"), draftIndex(r, "set"))
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleFinishDraft(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}

	sess := s.drafts.Session(uid)
	result := s.finisher.Finish(r.Context(), uid, sess.Snapshot())
	if result.OK {
		// Clearing the draft only after a confirmed success is what stops a
		// retry from double-saving.
		sess.Reset()
	}
	writeJSON(w, http.StatusOK, result)
}
