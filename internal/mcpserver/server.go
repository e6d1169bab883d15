// Package mcpserver exposes the editor's operations as Model Context
// Protocol tools over stdio, so an assistant can inspect and prune its own
// configuration file.
package mcpserver

import (
	"context"

	"claude-config-editor/internal/app"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "claude-config-editor"
	ServerVersion = "0.1.0"
)

// Server is the MCP server over one App.
type Server struct {
	mcpServer *mcpsdk.Server
	app       *app.App
}

// NewServer creates the server and registers its tools.
func NewServer(a *app.App) *Server {
	s := &Server{app: a}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves on stdio, blocking until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context) error {
	s.app.Logs().System.Info("mcp: serving %s on stdio", s.app.Store().Path())
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Connect serves a single session on transport t. Tests use it with the
// in-memory transport.
func (s *Server) Connect(ctx context.Context, t mcpsdk.Transport) (*mcpsdk.ServerSession, error) {
	return s.mcpServer.Connect(ctx, t, nil)
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_projects",
		Description: "List the projects remembered in the Claude config file with their history entry count and serialized size. Sorted by size, largest first, unless sort/dir say otherwise.",
	}, s.handleListProjects)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "delete_projects",
		Description: "Delete projects by path, or the N largest, and save the file. The previous file is copied to <file>.backup first.",
	}, s.handleDeleteProjects)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_mcp_servers",
		Description: "List the MCP servers registered in the Claude config file.",
	}, s.handleListMCPServers)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "add_mcp_server",
		Description: "Register (or replace) an MCP server and save the file, keeping a backup of the previous version.",
	}, s.handleAddMCPServer)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "remove_mcp_server",
		Description: "Remove a registered MCP server and save the file, keeping a backup of the previous version.",
	}, s.handleRemoveMCPServer)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "config_stats",
		Description: "Summarize the Claude config file: total size, project and MCP server counts, settings and cleanup hints.",
	}, s.handleStats)
}
