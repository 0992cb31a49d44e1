package mcp

import (
	"context"

	"github.com/claude/easyfit/internal/models"
	"github.com/claude/easyfit/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools.
type DataSource interface {
	QueryWorkouts(ctx context.Context, userID int) ([]models.WorkoutSummary, error)
	GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (*storage.WorkoutDetail, error)
	PreviousSet(ctx context.Context, userID int, exerciseName string, setOrder int) (*models.PreviousSet, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
