package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/ironpulse/internal/calendar"
	"github.com/claude/ironpulse/internal/metrics"
	"github.com/claude/ironpulse/internal/models"
	"github.com/claude/ironpulse/internal/normalize"
	"github.com/claude/ironpulse/internal/planner"
)

// exerciseKey accepts either a stored key or a display name.
func exerciseKey(v string) string {
	if v == "" {
		return ""
	}
	return normalize.ExerciseKey(v)
}

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the exercises of the current program and any other exercise found in the history, with their keys and muscle groups."),
	mcp.WithString("group", mcp.Description("Only list exercises of this muscle group (case-insensitive, e.g. 'Pectoraux')")),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Per-session history of one exercise, most recent first. Each entry has the session date, volume (sum of reps x weight), max weight and total reps."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise key or name (e.g. 'developpe-incline-a-la-smith' or 'Développé incliné à la smith')")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of entries. Defaults to all.")),
)

var toolGetProgressStats = mcp.NewTool("get_progress_stats",
	mcp.WithDescription("Progress summary for one exercise: last and best volume and max weight, and the change between the last two sessions."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise key or name")),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("Query logged sessions with optional date range, exercise and muscle group filters. Returns the sessions (newest first) and their volume, reps and personal record totals."),
	mcp.WithString("from", mcp.Description("First date included (YYYY-MM-DD)")),
	mcp.WithString("to", mcp.Description("Last date included (YYYY-MM-DD)")),
	mcp.WithString("exercise", mcp.Description("Only sessions containing this exercise (key or name)")),
	mcp.WithString("group", mcp.Description("Only sessions containing an exercise of this muscle group")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions. Defaults to all.")),
)

var toolGetPlannedSessions = mcp.NewTool("get_planned_sessions",
	mcp.WithDescription("List planned sessions in date order, optionally restricted to one ISO week."),
	mcp.WithString("week", mcp.Description("ISO week designator (e.g. '2024-W10')")),
)

var toolGetSummary = mcp.NewTool("get_summary",
	mcp.WithDescription("Totals of the last 7 days: session count, volume, reps, personal records, and the number of sessions not yet synced."),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog, err := h.ds.Catalog(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if group := req.GetString("group", ""); group != "" {
		filtered := make([]metrics.CatalogEntry, 0, len(catalog.Exercises))
		for _, e := range catalog.Exercises {
			if strings.EqualFold(e.MuscleGroup, group) {
				filtered = append(filtered, e)
			}
		}
		catalog.Exercises = filtered
	}

	return jsonResult(catalog)
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	history, err := h.ds.ExerciseHistory(ctx, exerciseKey(exercise))
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if limit := req.GetInt("limit", 0); limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return jsonResult(history)
}

func (h *handlers) getProgressStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	stats, err := h.ds.Progress(ctx, exerciseKey(exercise))
	if err != nil {
		h.log.Error("mcp get_progress_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(stats)
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := metrics.Filter{
		From:        req.GetString("from", ""),
		To:          req.GetString("to", ""),
		ExerciseKey: exerciseKey(req.GetString("exercise", "")),
		MuscleGroup: req.GetString("group", ""),
	}
	for _, d := range []string{filter.From, filter.To} {
		if d == "" {
			continue
		}
		if _, err := calendar.ParseDate(d); err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
	}

	report, err := h.ds.Sessions(ctx, filter)
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if limit := req.GetInt("limit", 0); limit > 0 && len(report.Sessions) > limit {
		report.Sessions = report.Sessions[:limit]
	}
	return jsonResult(report)
}

func (h *handlers) getPlannedSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var weekStart string
	if week := req.GetString("week", ""); week != "" {
		start, err := calendar.WeekStart(week)
		if err != nil {
			return mcp.NewToolResultError("invalid week: " + err.Error()), nil
		}
		weekStart = start
	}

	planned, err := h.ds.Planned(ctx)
	if err != nil {
		h.log.Error("mcp get_planned_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if weekStart != "" {
		planned = planner.InWeek(planned, weekStart)
	}
	if planned == nil {
		planned = []models.PlannedEntry{}
	}
	return jsonResult(planned)
}

func (h *handlers) getSummary(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := h.ds.Summary(ctx)
	if err != nil {
		h.log.Error("mcp get_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(summary)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
