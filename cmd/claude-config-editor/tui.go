package main

import (
	"errors"
	"fmt"
	"os"

	"claude-config-editor/internal/app"
	"claude-config-editor/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Short:   "Edit the project list in the terminal",
	GroupID: "editor",
	Args:    cobra.NoArgs,
	RunE:    runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := openApp(app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Store().Check(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("tui: stdin and stdout must be a terminal (use projects/mcp/stats for scripts)")
	}

	p := tea.NewProgram(tui.NewModel(a), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
