package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"claude-config-editor/internal/app"
	"claude-config-editor/internal/view"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyRow is one journal entry in the structured formats.
type historyRow struct {
	ID         int64     `json:"id" yaml:"id"`
	RequestID  string    `json:"requestId" yaml:"requestId"`
	Source     string    `json:"source" yaml:"source"`
	SavedAt    time.Time `json:"savedAt" yaml:"savedAt"`
	Bytes      int       `json:"bytes" yaml:"bytes"`
	Projects   int       `json:"projects" yaml:"projects"`
	MCPServers int       `json:"mcpServers" yaml:"mcpServers"`
	BackupPath *string   `json:"backupPath,omitempty" yaml:"backupPath,omitempty"`
}

var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "Show recent saves from the journal",
	GroupID: "document",
	Args:    cobra.NoArgs,
	RunE:    runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of saves to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := openApp(app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	saves, err := a.RecentSaves(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	rows := make([]historyRow, 0, len(saves))
	for _, s := range saves {
		rows = append(rows, historyRow{
			ID:         s.ID,
			RequestID:  s.RequestID,
			Source:     s.Source,
			SavedAt:    s.SavedAt,
			Bytes:      s.Bytes,
			Projects:   s.Projects,
			MCPServers: s.MCPServers,
			BackupPath: s.BackupPath,
		})
	}
	if done, err := writeStructured(out, flagOutput, rows); done {
		return err
	}
	if len(saves) == 0 {
		fmt.Fprintln(out, "No saves recorded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSOURCE\tSIZE\tPROJECTS\tMCP\tBACKUP")
	for _, s := range saves {
		backup := "-"
		if s.BackupPath != nil {
			backup = *s.BackupPath
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			humanize.Time(s.SavedAt), s.Source, view.FormatSize(s.Bytes), s.Projects, s.MCPServers, backup)
	}
	return w.Flush()
}
