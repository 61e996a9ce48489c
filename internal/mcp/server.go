package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("IronPulse", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("IronPulse training journal. Query logged strength sessions, per-exercise history and progress, planned sessions, and the current program. Weights are in kilograms; dates are YYYY-MM-DD."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolGetProgressStats, Handler: h.getProgressStats},
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
		server.ServerTool{Tool: toolGetPlannedSessions, Handler: h.getPlannedSessions},
		server.ServerTool{Tool: toolGetSummary, Handler: h.getSummary},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCurrentProgram, Handler: h.currentProgram},
		server.ServerResource{Resource: resSummary, Handler: h.summary},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resCurrentProgram = mcp.NewResource(
	"ironpulse://current_program",
	"Current Program",
	mcp.WithResourceDescription("The program currently selected, with its days and exercise targets"),
	mcp.WithMIMEType("application/json"),
)

var resSummary = mcp.NewResource(
	"ironpulse://summary",
	"Weekly Summary",
	mcp.WithResourceDescription("Sessions, volume, reps and personal records of the last 7 days, plus sessions pending sync"),
	mcp.WithMIMEType("application/json"),
)
