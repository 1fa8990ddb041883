// Package toolserver provides the shared scaffolding for the MCP tool
// servers: the wrapped mcp-go server, the authenticated HTTP surface, and
// helpers tool handlers use to build results and audit entries.
package toolserver

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/trialworks/sitescout/internal/audit"
	"github.com/trialworks/sitescout/internal/auth"
)

// Tool couples a declared tool with its handler.
type Tool struct {
	Def     mcp.Tool
	Handler server.ToolHandlerFunc
}

// Config holds per-server identity and authorization settings.
type Config struct {
	// Name is the server name reported by /health and the MCP handshake.
	Name string
	// Version is the server version reported in the MCP handshake.
	Version string
	// RequiredScope must be present in every token calling /mcp.
	RequiredScope string
}

// Server wraps the mcp-go server with token validation, audit logging, and
// the plain HTTP endpoints next to /mcp.
type Server struct {
	cfg      Config
	mcp      *server.MCPServer
	verifier *auth.Verifier
	audit    *audit.Logger
	logger   *slog.Logger
}

// New creates and configures a tool server with its tools registered.
func New(cfg Config, verifier *auth.Verifier, auditLog *audit.Logger, tools []Tool, logger *slog.Logger) *Server {
	mcpServer := server.NewMCPServer(
		cfg.Name,
		cfg.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	for _, t := range tools {
		mcpServer.AddTool(t.Def, t.Handler)
	}

	return &Server{
		cfg:      cfg,
		mcp:      mcpServer,
		verifier: verifier,
		audit:    auditLog,
		logger:   logger,
	}
}

// Name returns the configured server name.
func (s *Server) Name() string {
	return s.cfg.Name
}

// MCP exposes the underlying mcp-go server, used by stdio serving and tests.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}
