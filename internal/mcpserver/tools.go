package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"claude-config-editor/internal/app"
	"claude-config-editor/internal/db"
	"claude-config-editor/internal/document"
	"claude-config-editor/internal/store"
	"claude-config-editor/internal/view"

	"github.com/google/uuid"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// load reads the document under a fresh request id so tool calls can be
// matched to journal rows.
func (s *Server) load(ctx context.Context, tool string) (context.Context, *document.Document, error) {
	ctx = app.WithRequestID(ctx, uuid.NewString())
	s.app.Logs().System.Debug("mcp: %s (req=%s)", tool, app.RequestID(ctx))
	doc, err := s.app.Load(ctx)
	if err != nil {
		return ctx, nil, fmt.Errorf("%s: %w", tool, err)
	}
	return ctx, doc, nil
}

func (s *Server) save(ctx context.Context, tool string, doc *document.Document) (SaveInfo, error) {
	res, err := s.app.Save(ctx, doc, db.SourceMCP)
	if err != nil {
		return SaveInfo{}, fmt.Errorf("%s: %w", tool, err)
	}
	return saveInfo(res), nil
}

func saveInfo(res store.SaveResult) SaveInfo {
	info := SaveInfo{Bytes: res.Bytes}
	if res.BackedUp {
		info.Backup = res.BackupPath
	}
	return info
}

func (s *Server) handleListProjects(ctx context.Context, _ *mcpsdk.CallToolRequest, args ListProjectsInput) (*mcpsdk.CallToolResult, ListProjectsOutput, error) {
	state := view.DefaultSort()
	if args.Sort != "" {
		key, err := view.ParseSortKey(args.Sort)
		if err != nil {
			return nil, ListProjectsOutput{}, fmt.Errorf("list_projects: %w", err)
		}
		state.Key = key
	}
	if args.Dir != "" {
		dir, err := view.ParseDirection(args.Dir)
		if err != nil {
			return nil, ListProjectsOutput{}, fmt.Errorf("list_projects: %w", err)
		}
		state.Dir = dir
	}
	if args.Limit < 0 {
		return nil, ListProjectsOutput{}, errors.New("list_projects: limit must not be negative")
	}

	_, doc, err := s.load(ctx, "list_projects")
	if err != nil {
		return nil, ListProjectsOutput{}, err
	}

	all := view.Derive(doc)
	entries := view.Sort(view.Filter(all, args.Filter), state)
	if args.Limit > 0 && len(entries) > args.Limit {
		entries = entries[:args.Limit]
	}

	projects := make([]ProjectInfo, 0, len(entries))
	for _, e := range entries {
		projects = append(projects, ProjectInfo{
			Path:         e.Path,
			HistoryCount: e.HistoryCount,
			SizeBytes:    e.SizeBytes,
			Size:         view.FormatSize(e.SizeBytes),
			SizeClass:    string(view.ClassifySize(e.SizeBytes)),
		})
	}
	return nil, ListProjectsOutput{
		Path:     s.app.Store().Path(),
		Total:    len(all),
		Projects: projects,
	}, nil
}

func (s *Server) handleDeleteProjects(ctx context.Context, _ *mcpsdk.CallToolRequest, args DeleteProjectsInput) (*mcpsdk.CallToolResult, DeleteProjectsOutput, error) {
	switch {
	case args.Largest > 0 && len(args.Paths) > 0:
		return nil, DeleteProjectsOutput{}, errors.New("delete_projects: give either paths or largest, not both")
	case args.Largest <= 0 && len(args.Paths) == 0:
		return nil, DeleteProjectsOutput{}, errors.New("delete_projects: no paths given")
	}

	ctx, doc, err := s.load(ctx, "delete_projects")
	if err != nil {
		return nil, DeleteProjectsOutput{}, err
	}

	entries := view.Derive(doc)
	var notFound []string
	if args.Largest > 0 {
		view.SelectLargest(entries, args.Largest)
	} else {
		for _, p := range args.Paths {
			if !view.Select(entries, p) {
				notFound = append(notFound, p)
			}
		}
	}
	if len(view.SelectedPaths(entries)) == 0 {
		if len(notFound) > 0 {
			return nil, DeleteProjectsOutput{}, fmt.Errorf("delete_projects: not found: %s", strings.Join(notFound, ", "))
		}
		return nil, DeleteProjectsOutput{}, errors.New("delete_projects: nothing to delete")
	}

	_, removed, err := view.DeleteSelected(doc, entries)
	if err != nil {
		return nil, DeleteProjectsOutput{}, fmt.Errorf("delete_projects: %w", err)
	}
	info, err := s.save(ctx, "delete_projects", doc)
	if err != nil {
		return nil, DeleteProjectsOutput{}, err
	}
	return nil, DeleteProjectsOutput{Removed: removed, NotFound: notFound, Save: info}, nil
}

func (s *Server) handleListMCPServers(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListMCPServersInput) (*mcpsdk.CallToolResult, ListMCPServersOutput, error) {
	_, doc, err := s.load(ctx, "list_mcp_servers")
	if err != nil {
		return nil, ListMCPServersOutput{}, err
	}
	servers := doc.MCPServers()
	if servers == nil {
		servers = []document.MCPServer{}
	}
	return nil, ListMCPServersOutput{Servers: servers}, nil
}

func (s *Server) handleAddMCPServer(ctx context.Context, _ *mcpsdk.CallToolRequest, args AddMCPServerInput) (*mcpsdk.CallToolResult, AddMCPServerOutput, error) {
	ctx, doc, err := s.load(ctx, "add_mcp_server")
	if err != nil {
		return nil, AddMCPServerOutput{}, err
	}

	replaced := false
	for _, srv := range doc.MCPServers() {
		if srv.Name == args.Name {
			replaced = true
			break
		}
	}
	if err := doc.AddMCPServer(args.Name, args.Command, args.Args); err != nil {
		return nil, AddMCPServerOutput{}, fmt.Errorf("add_mcp_server: %w", err)
	}
	info, err := s.save(ctx, "add_mcp_server", doc)
	if err != nil {
		return nil, AddMCPServerOutput{}, err
	}
	return nil, AddMCPServerOutput{Name: args.Name, Replaced: replaced, Save: info}, nil
}

func (s *Server) handleRemoveMCPServer(ctx context.Context, _ *mcpsdk.CallToolRequest, args RemoveMCPServerInput) (*mcpsdk.CallToolResult, RemoveMCPServerOutput, error) {
	ctx, doc, err := s.load(ctx, "remove_mcp_server")
	if err != nil {
		return nil, RemoveMCPServerOutput{}, err
	}

	removed, err := doc.RemoveMCPServer(args.Name)
	if err != nil {
		return nil, RemoveMCPServerOutput{}, fmt.Errorf("remove_mcp_server: %w", err)
	}
	if !removed {
		return nil, RemoveMCPServerOutput{}, fmt.Errorf("remove_mcp_server: no server named %q", args.Name)
	}
	info, err := s.save(ctx, "remove_mcp_server", doc)
	if err != nil {
		return nil, RemoveMCPServerOutput{}, err
	}
	return nil, RemoveMCPServerOutput{Name: args.Name, Save: info}, nil
}

func (s *Server) handleStats(ctx context.Context, _ *mcpsdk.CallToolRequest, _ StatsInput) (*mcpsdk.CallToolResult, StatsOutput, error) {
	_, doc, err := s.load(ctx, "config_stats")
	if err != nil {
		return nil, StatsOutput{}, err
	}
	return nil, StatsOutput{
		Path:     s.app.Store().Path(),
		Summary:  view.Summarize(doc),
		Settings: doc.Settings(),
	}, nil
}
