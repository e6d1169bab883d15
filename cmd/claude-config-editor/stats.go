package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"claude-config-editor/internal/document"
	"claude-config-editor/internal/theme"
	"claude-config-editor/internal/view"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Summarize the document and suggest cleanups",
	GroupID: "document",
	Args:    cobra.NoArgs,
	RunE:    runStats,
}

type backupInfo struct {
	Path    string    `json:"path" yaml:"path"`
	Bytes   int64     `json:"bytes" yaml:"bytes"`
	ModTime time.Time `json:"modTime" yaml:"modTime"`
}

type statsReport struct {
	File     string            `json:"file" yaml:"file"`
	Summary  view.Summary      `json:"summary" yaml:"summary"`
	Settings document.Settings `json:"settings" yaml:"settings"`
	Backup   *backupInfo       `json:"backup" yaml:"backup"`
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, doc, err := loadDocument(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	s := view.Summarize(doc)
	settings := doc.Settings()
	out := cmd.OutOrStdout()

	report := statsReport{File: a.Store().Path(), Summary: s, Settings: settings}
	if info, err := os.Stat(a.Store().BackupPath()); err == nil {
		report.Backup = &backupInfo{Path: a.Store().BackupPath(), Bytes: info.Size(), ModTime: info.ModTime()}
	}
	if done, err := writeStructured(out, flagOutput, report); done {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "File:\t%s\n", a.Store().Path())
	fmt.Fprintf(w, "Size:\t%s\n", view.FormatSize(s.TotalBytes))
	fmt.Fprintf(w, "Projects:\t%d\n", s.Projects)
	fmt.Fprintf(w, "MCP servers:\t%d\n", s.MCPServers)
	fmt.Fprintf(w, "Startups:\t%s\n", humanize.Comma(int64(s.Startups)))
	fmt.Fprintf(w, "Theme:\t%s\n", settings.Theme)
	fmt.Fprintf(w, "Auto updates:\t%t\n", settings.AutoUpdates)
	fmt.Fprintf(w, "Auto compact:\t%t\n", settings.AutoCompactEnabled)
	if settings.InstallMethod != "" {
		fmt.Fprintf(w, "Install method:\t%s\n", settings.InstallMethod)
	}
	if b := report.Backup; b != nil {
		fmt.Fprintf(w, "Backup:\t%s (%s, %s)\n", b.Path, humanize.IBytes(uint64(b.Bytes)), humanize.Time(b.ModTime))
	} else {
		fmt.Fprintf(w, "Backup:\tnone\n")
	}
	if err := w.Flush(); err != nil {
		return err
	}

	hint := theme.DefaultStyles().Hint
	fmt.Fprintln(out)
	for _, h := range s.Hints {
		fmt.Fprintln(out, hint.Render("• "+h))
	}
	return nil
}
