package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/easyfit/internal/commit"
	"github.com/claude/easyfit/internal/draft"
	"github.com/claude/easyfit/internal/models"
	"github.com/claude/easyfit/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"tailscale.com/client/local"
)

// Store is the slice of the storage layer the HTTP handlers need.
// *storage.DB satisfies it; tests substitute fakes.
type Store interface {
	GetOrCreateUser(ctx context.Context, login, displayName string) (int, error)
	QueryWorkouts(ctx context.Context, userID int) ([]models.WorkoutSummary, error)
	GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (*storage.WorkoutDetail, error)
	DeleteWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (bool, error)
	UpdateWorkoutName(ctx context.Context, workoutID uuid.UUID, userID int, name string) (bool, error)
	PreviousSet(ctx context.Context, userID int, exerciseName string, setOrder int) (*models.PreviousSet, error)
}

var _ Store = (*storage.DB)(nil)

// Finisher commits a finished draft. *commit.Committer satisfies it.
type Finisher interface {
	Finish(ctx context.Context, userID int, w draft.Workout) commit.Result
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       Store
	drafts   *draft.Manager
	finisher Finisher
	log      *slog.Logger
	router   chi.Router
	ts       *local.Client
}

// New creates a new Server with all routes configured.
func New(db Store, drafts *draft.Manager, finisher Finisher, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		drafts:   drafts,
		finisher: finisher,
		log:      log,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale attaches a tsnet local client; identity then comes from WhoIs
// instead of the dev fallback.
func (s *Server) SetTailscale(lc *local.Client) {
	s.ts = lc
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Mount attaches an extra handler (e.g. the MCP endpoint) under pattern.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.identity)

		r.Get("/me", s.handleMe)
		r.Get("/exercises", s.handleExercises)
		r.Get("/previous-set", s.handlePreviousSet)
		r.Get("/picker/reps", s.handleRepsPicker)
		r.Get("/picker/weight", s.handleWeightPicker)

		r.Route("/draft", func(r chi.Router) {
			r.Get("/", s.handleGetDraft)
			r.Delete("/", s.handleDiscardDraft)
			r.Put("/name", s.handleSetDraftName)
			r.Post("/finish", s.handleFinishDraft)
			r.Post("/exercises", s.handleAddExercise)
			r.Delete("/exercises/{index}", s.handleRemoveExercise)
			r.Post("/exercises/{index}/complete", s.handleCompleteExercise)
			r.Post("/exercises/{index}/incomplete", s.handleMarkIncomplete)
			r.Post("/exercises/{index}/sets", s.handleAddSet)
			r.Patch("/exercises/{index}/sets/{set}", s.handleUpdateSet)
			r.Delete("/exercises/{index}/sets/{set}", s.handleRemoveSet)
		})

		r.Get("/workouts", s.handleQueryWorkouts)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Patch("/workouts/{id}", s.handleRenameWorkout)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)
	})
}
