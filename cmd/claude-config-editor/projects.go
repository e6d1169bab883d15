package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"claude-config-editor/internal/db"
	"claude-config-editor/internal/view"

	"github.com/spf13/cobra"
)

var (
	listSort   string
	listAsc    bool
	listFilter string
	listLimit  int

	deleteLargest int
	deleteYes     bool
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Short:   "List or delete remembered projects",
	GroupID: "document",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with history count and size",
	Example: `  claude-config-editor projects list                  # Largest first
  claude-config-editor projects list --sort path --asc
  claude-config-editor projects list --filter work --limit 5`,
	Args: cobra.NoArgs,
	RunE: runProjectsList,
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete [PATH...]",
	Short: "Delete projects and save (with backup)",
	Example: `  claude-config-editor projects delete /old/repo /tmp/scratch
  claude-config-editor projects delete --largest 10 --yes`,
	RunE: runProjectsDelete,
}

// projectRow is one line of `projects list` in the structured formats.
type projectRow struct {
	Path         string `json:"path" yaml:"path"`
	HistoryCount int    `json:"historyCount" yaml:"historyCount"`
	SizeBytes    int    `json:"sizeBytes" yaml:"sizeBytes"`
	SizeClass    string `json:"sizeClass" yaml:"sizeClass"`
}

func init() {
	projectsListCmd.Flags().StringVarP(&listSort, "sort", "s", string(view.SortSize), "Sort key: path, history or size")
	projectsListCmd.Flags().BoolVar(&listAsc, "asc", false, "Ascending order (default descending)")
	projectsListCmd.Flags().StringVar(&listFilter, "filter", "", "Only paths containing this text (case-insensitive)")
	projectsListCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Show at most this many projects (0 = all)")

	projectsDeleteCmd.Flags().IntVar(&deleteLargest, "largest", 0, "Delete the N largest projects instead of named ones")
	projectsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")

	projectsCmd.AddCommand(projectsListCmd, projectsDeleteCmd)
	rootCmd.AddCommand(projectsCmd)
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	key, err := view.ParseSortKey(listSort)
	if err != nil {
		return err
	}
	state := view.SortState{Key: key, Dir: view.Desc}
	if listAsc {
		state.Dir = view.Asc
	}

	a, doc, err := loadDocument(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	entries := view.Sort(view.Filter(view.Derive(doc), listFilter), state)
	if listLimit > 0 && len(entries) > listLimit {
		entries = entries[:listLimit]
	}

	out := cmd.OutOrStdout()
	rows := make([]projectRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, projectRow{
			Path:         e.Path,
			HistoryCount: e.HistoryCount,
			SizeBytes:    e.SizeBytes,
			SizeClass:    string(view.ClassifySize(e.SizeBytes)),
		})
	}
	if done, err := writeStructured(out, flagOutput, rows); done {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No projects.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "HISTORY\tSIZE\t  PATH")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t  %s\n", e.HistoryCount, view.FormatSize(e.SizeBytes), e.Path)
	}
	return w.Flush()
}

func runProjectsDelete(cmd *cobra.Command, args []string) error {
	if deleteLargest > 0 && len(args) > 0 {
		return errors.New("projects delete: give either paths or --largest, not both")
	}
	if deleteLargest <= 0 && len(args) == 0 {
		return errors.New("projects delete: no paths given (or use --largest N)")
	}

	a, doc, err := loadDocument(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	entries := view.Derive(doc)
	if deleteLargest > 0 {
		view.SelectLargest(entries, deleteLargest)
	} else {
		for _, p := range args {
			if !view.Select(entries, p) {
				fmt.Fprintf(cmd.ErrOrStderr(), "not found: %s\n", p)
			}
		}
	}

	selected := view.SelectedPaths(entries)
	if len(selected) == 0 {
		return errors.New("projects delete: nothing to delete")
	}

	out := cmd.OutOrStdout()
	for _, p := range selected {
		fmt.Fprintf(out, "  %s\n", p)
	}
	if !deleteYes && !confirm(cmd, fmt.Sprintf("Delete %d projects from %s?", len(selected), a.Store().Path())) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	_, removed, err := view.DeleteSelected(doc, entries)
	if err != nil {
		return err
	}
	res, err := a.Save(cmd.Context(), doc, db.SourceCLI)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted %d projects, wrote %s.\n", len(removed), view.FormatSize(res.Bytes))
	if res.BackedUp {
		fmt.Fprintf(out, "Backup: %s\n", res.BackupPath)
	}
	return nil
}
