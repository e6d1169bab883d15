package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"claude-config-editor/internal/app"
	"claude-config-editor/internal/db"
	"claude-config-editor/internal/mcpserver"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Manage MCP server registrations",
	GroupID: "document",
}

var mcpListCmd = &cobra.Command{
	Use:   "list",
	Short: "List MCP servers",
	Args:  cobra.NoArgs,
	RunE:  runMCPList,
}

var mcpAddCmd = &cobra.Command{
	Use:   "add NAME COMMAND [ARGS...]",
	Short: "Add or replace an MCP server and save",
	Example: `  claude-config-editor mcp add files npx -y @modelcontextprotocol/server-filesystem /tmp`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMCPAdd,
}

var mcpRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove an MCP server and save",
	Args:  cobra.ExactArgs(1),
	RunE:  runMCPRemove,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the editor's tools to an MCP client over stdio",
	Long: `Runs a Model Context Protocol server on stdin/stdout exposing tools to
list and delete projects, manage MCP server registrations and summarize
the document. Register it with:

  claude mcp add config-editor -- claude-config-editor mcp serve

Nothing but protocol messages is written to stdout.`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	// Arguments after COMMAND belong to the server, not to us.
	mcpAddCmd.Flags().SetInterspersed(false)

	mcpCmd.AddCommand(mcpListCmd, mcpAddCmd, mcpRemoveCmd, mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPList(cmd *cobra.Command, args []string) error {
	a, doc, err := loadDocument(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	servers := doc.MCPServers()
	out := cmd.OutOrStdout()
	if done, err := writeStructured(out, flagOutput, servers); done {
		return err
	}
	if len(servers) == 0 {
		fmt.Fprintln(out, "No MCP servers.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOMMAND")
	for _, s := range servers {
		line := strings.TrimSpace(strings.Join(append([]string{s.Command}, s.Args...), " "))
		fmt.Fprintf(w, "%s\t%s\n", s.Name, line)
	}
	return w.Flush()
}

func runMCPAdd(cmd *cobra.Command, args []string) error {
	a, doc, err := loadDocument(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	name := args[0]
	if err := doc.AddMCPServer(name, args[1], args[2:]); err != nil {
		return err
	}
	if _, err := a.Save(cmd.Context(), doc, db.SourceCLI); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added MCP server %q.\n", name)
	return nil
}

func runMCPRemove(cmd *cobra.Command, args []string) error {
	a, doc, err := loadDocument(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	name := args[0]
	removed, err := doc.RemoveMCPServer(name)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("mcp remove: no server named %q", name)
	}
	if _, err := a.Save(cmd.Context(), doc, db.SourceCLI); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed MCP server %q.\n", name)
	return nil
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	a, err := openApp(app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Store().Check(); err != nil {
		return fmt.Errorf("mcp serve: %w", err)
	}
	return mcpserver.NewServer(a).Run(cmd.Context())
}
