package mcpserver

import (
	"claude-config-editor/internal/document"
	"claude-config-editor/internal/view"
)

// ListProjectsInput is the input for the list_projects tool.
type ListProjectsInput struct {
	Sort   string `json:"sort,omitempty" jsonschema:"Sort key: path, history or size (default: size)"`
	Dir    string `json:"dir,omitempty" jsonschema:"Sort direction: asc or desc (default: desc)"`
	Filter string `json:"filter,omitempty" jsonschema:"Only projects whose path contains this text, case-insensitive"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Return at most this many projects (default: all)"`
}

// ProjectInfo describes one project.
type ProjectInfo struct {
	Path         string `json:"path"`
	HistoryCount int    `json:"history_count"`
	SizeBytes    int    `json:"size_bytes"`
	Size         string `json:"size"`
	SizeClass    string `json:"size_class"`
}

// ListProjectsOutput is the output of the list_projects tool.
type ListProjectsOutput struct {
	Path     string        `json:"path"`
	Total    int           `json:"total"`
	Projects []ProjectInfo `json:"projects"`
}

// DeleteProjectsInput is the input for the delete_projects tool.
type DeleteProjectsInput struct {
	Paths   []string `json:"paths,omitempty" jsonschema:"Project paths to delete"`
	Largest int      `json:"largest,omitempty" jsonschema:"Delete the N largest projects instead of named ones"`
}

// SaveInfo reports the write that followed an edit.
type SaveInfo struct {
	Backup string `json:"backup,omitempty"`
	Bytes  int    `json:"bytes"`
}

// DeleteProjectsOutput is the output of the delete_projects tool.
type DeleteProjectsOutput struct {
	Removed  []string `json:"removed"`
	NotFound []string `json:"not_found,omitempty"`
	Save     SaveInfo `json:"save"`
}

// ListMCPServersInput is the (empty) input for the list_mcp_servers tool.
type ListMCPServersInput struct{}

// ListMCPServersOutput is the output of the list_mcp_servers tool.
type ListMCPServersOutput struct {
	Servers []document.MCPServer `json:"servers"`
}

// AddMCPServerInput is the input for the add_mcp_server tool.
type AddMCPServerInput struct {
	Name    string   `json:"name" jsonschema:"Server name, the key under mcpServers"`
	Command string   `json:"command" jsonschema:"Executable to launch"`
	Args    []string `json:"args,omitempty" jsonschema:"Arguments passed to the command"`
}

// AddMCPServerOutput is the output of the add_mcp_server tool.
type AddMCPServerOutput struct {
	Name     string   `json:"name"`
	Replaced bool     `json:"replaced"`
	Save     SaveInfo `json:"save"`
}

// RemoveMCPServerInput is the input for the remove_mcp_server tool.
type RemoveMCPServerInput struct {
	Name string `json:"name" jsonschema:"Server name to remove"`
}

// RemoveMCPServerOutput is the output of the remove_mcp_server tool.
type RemoveMCPServerOutput struct {
	Name string   `json:"name"`
	Save SaveInfo `json:"save"`
}

// StatsInput is the (empty) input for the config_stats tool.
type StatsInput struct{}

// StatsOutput is the output of the config_stats tool.
type StatsOutput struct {
	Path     string            `json:"path"`
	Summary  view.Summary      `json:"summary"`
	Settings document.Settings `json:"settings"`
}
