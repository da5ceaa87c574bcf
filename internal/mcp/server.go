// Package mcp exposes the catalog to MCP clients over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/gamecat/internal/viewer"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes catalog lookup tools.
type Server struct {
	app *viewer.App
	mcp *server.MCPServer
}

// NewServer creates a new MCP server backed by app.
func NewServer(app *viewer.App) *Server {
	s := &Server{app: app}

	s.mcp = server.NewMCPServer(
		"gamecat",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(listGamesTool, s.handleListGames)
	s.mcp.AddTool(getGameTool, s.handleGetGame)
	s.mcp.AddTool(resolveImagesTool, s.handleResolveImages)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
