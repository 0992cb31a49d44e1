package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/easyfit/internal/catalog"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("List the user's workouts, newest first, with exercise and set counts."),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Fetch one workout in full: every exercise in order with its sets."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Workout ID (UUID)"),
	),
)

var toolGetPreviousSet = mcp.NewTool("get_previous_set",
	mcp.WithDescription("Look up the reps and weight the user logged for an exercise at a given set position in their most recent workout containing that exercise."),
	mcp.WithString("exercise_name",
		mcp.Required(),
		mcp.Description("Exact exercise name, e.g. 'Bench Press'"),
	),
	mcp.WithNumber("set_order",
		mcp.Required(),
		mcp.Description("1-based set position within the exercise"),
	),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the exercise catalog and workout name presets."),
)

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := UserIDFromContext(ctx)

	workouts, err := h.ds.QueryWorkouts(ctx, userID)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("querying workouts: " + err.Error()), nil
	}
	return mcp.NewToolResultJSON(workouts)
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := UserIDFromContext(ctx)

	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	workoutID, err := uuid.Parse(id)
	if err != nil {
		return mcp.NewToolResultError("invalid workout ID: " + id), nil
	}

	detail, err := h.ds.GetWorkout(ctx, workoutID, userID)
	if err != nil {
		h.log.Error("mcp get_workout", "error", err)
		return mcp.NewToolResultError("fetching workout: " + err.Error()), nil
	}
	if detail == nil {
		return mcp.NewToolResultError("workout not found: " + id), nil
	}
	return mcp.NewToolResultJSON(detail)
}

func (h *handlers) getPreviousSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := UserIDFromContext(ctx)

	exerciseName, err := req.RequireString("exercise_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	setOrder, err := req.RequireInt("set_order")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if setOrder < 1 {
		return mcp.NewToolResultError("set_order must be a positive integer"), nil
	}

	prev, err := h.ds.PreviousSet(ctx, userID, exerciseName, setOrder)
	if err != nil {
		h.log.Error("mcp get_previous_set", "error", err)
		return mcp.NewToolResultError("looking up previous set: " + err.Error()), nil
	}
	// prev is nil when the user has never performed the exercise.
	return mcp.NewToolResultJSON(map[string]any{"previous": prev})
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(map[string]any{
		"exercises":   catalog.Exercises,
		"namePresets": catalog.NamePresets,
	})
}

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	userID := UserIDFromContext(ctx)

	workouts, err := h.ds.QueryWorkouts(ctx, userID)
	if err != nil {
		h.log.Error("mcp recent_workouts resource", "error", err)
		return nil, err
	}
	data, err := json.MarshalIndent(workouts, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
