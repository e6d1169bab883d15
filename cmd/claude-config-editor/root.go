package main

import (
	"context"
	"fmt"
	"os"

	"claude-config-editor/internal/app"
	"claude-config-editor/internal/document"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	flagFile    string
	flagDataDir string
	flagVerbose bool
	flagOutput  string
)

var rootCmd = &cobra.Command{
	Use:   "claude-config-editor",
	Short: "View and prune the Claude Code state file (~/.claude.json)",
	Long: `claude-config-editor inspects ~/.claude.json: the projects it remembers,
their history size, MCP server registrations and a few settings.

Every save copies the current file to <file>.backup first. Saves are
recorded in ~/.claude-config-editor/journal.db.

Run without a command to start the local web editor.`,
	Example: `  claude-config-editor                          # Web editor on http://127.0.0.1:8765
  claude-config-editor tui                      # Terminal editor
  claude-config-editor projects list --limit 10 # Largest projects
  claude-config-editor projects delete --largest 5
  claude-config-editor stats`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: validateGlobalFlags,
	RunE:              runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Config document to edit (default ~/.claude.json)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Editor data directory (default ~/.claude-config-editor)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging, mirrored to stderr")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", formatTable, "Output format for listings: table, json or yaml")

	rootCmd.AddGroup(
		&cobra.Group{ID: "editor", Title: "Editor Commands:"},
		&cobra.Group{ID: "document", Title: "Document Commands:"},
	)

	// Hide the auto-generated completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}

// Execute runs the root command with fang's styled help, errors and
// version flag. Interrupts cancel the command context.
func Execute() error {
	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	)
}

func validateGlobalFlags(cmd *cobra.Command, args []string) error {
	f, err := parseFormat(flagOutput)
	if err != nil {
		return err
	}
	flagOutput = f
	return nil
}

// openApp opens the App with the persistent flags applied on top of opts.
func openApp(opts app.Options) (*app.App, error) {
	opts.TargetPath = flagFile
	opts.DataDir = flagDataDir
	opts.Verbose = flagVerbose
	return app.Open(opts)
}

// loadDocument opens the App and reads the target document. The caller
// closes the App.
func loadDocument(ctx context.Context) (*app.App, *document.Document, error) {
	a, err := openApp(app.Options{})
	if err != nil {
		return nil, nil, err
	}
	doc, err := a.Load(ctx)
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	return a, doc, nil
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	var answer string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &answer); err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}
