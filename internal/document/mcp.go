package document

import (
	"encoding/json"
	"fmt"
)

// MCPServer is the editor's view of one mcpServers entry.
type MCPServer struct {
	Name    string            `json:"name" yaml:"name"`
	Command string            `json:"command" yaml:"command"`
	Args    []string          `json:"args,omitempty" yaml:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	Cwd     string            `json:"cwd,omitempty" yaml:"cwd,omitempty"`
}

type mcpServerFields struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
	Cwd     string            `json:"cwd"`
}

// MCPServers lists the registered servers in document order. Entries whose
// shape does not match are listed by name only.
func (d *Document) MCPServers() []MCPServer {
	servers, ok := d.root.Object(KeyMCPServers)
	if !ok {
		return nil
	}
	out := make([]MCPServer, 0, servers.Len())
	for _, name := range servers.Keys() {
		raw, _ := servers.Get(name)
		var f mcpServerFields
		_ = json.Unmarshal(raw, &f)
		out = append(out, MCPServer{
			Name:    name,
			Command: f.Command,
			Args:    f.Args,
			Env:     f.Env,
			Cwd:     f.Cwd,
		})
	}
	return out
}

// AddMCPServer registers a server as {"command": command, "args": args},
// replacing any server with the same name. The mcpServers object is created
// when missing.
func (d *Document) AddMCPServer(name, command string, args []string) error {
	if name == "" {
		return fmt.Errorf("document: add mcp server: name required")
	}
	if command == "" {
		return fmt.Errorf("document: add mcp server %q: command required", name)
	}
	if args == nil {
		args = []string{}
	}

	servers, ok := d.root.Object(KeyMCPServers)
	if !ok {
		servers = NewObject()
	}
	entry := NewObject()
	if err := entry.SetValue("command", command); err != nil {
		return err
	}
	if err := entry.SetValue("args", args); err != nil {
		return err
	}
	if err := servers.SetValue(name, entry); err != nil {
		return err
	}
	return d.root.SetValue(KeyMCPServers, servers)
}

// RemoveMCPServer deletes the named server and reports whether it existed.
func (d *Document) RemoveMCPServer(name string) (bool, error) {
	servers, ok := d.root.Object(KeyMCPServers)
	if !ok || !servers.Delete(name) {
		return false, nil
	}
	if err := d.root.SetValue(KeyMCPServers, servers); err != nil {
		return false, err
	}
	return true, nil
}
