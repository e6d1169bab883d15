package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"claude-config-editor/internal/app"
	"claude-config-editor/internal/web"

	"github.com/spf13/cobra"
)

var (
	servePort int
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Serve the web editor on the loopback interface",
	GroupID: "editor",
	Long: `Serves the browser editor and its JSON API on 127.0.0.1.

The target document must exist; the server refuses to start otherwise.
Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	// Bare invocation serves too, so the root carries the same flags.
	for _, c := range []*cobra.Command{serveCmd, rootCmd} {
		c.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config, 8765)")
		c.Flags().BoolVar(&serveOpen, "open", false, "Open the editor in the default browser")
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp(app.Options{Port: servePort, OpenBrowser: serveOpen})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Store().Check(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.New(a)
	url, err := srv.Start(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Editing %s\nServing on %s (Ctrl+C to stop)\n", a.Store().Path(), url)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return err
	}
	a.Logs().System.Info("serve: stopped")
	return nil
}
