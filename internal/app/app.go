// Package app wires the editor's pieces together: its own configuration,
// logs, save journal and the store for the target document.
package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"claude-config-editor/internal/config"
	"claude-config-editor/internal/db"
	"claude-config-editor/internal/logging"
	"claude-config-editor/internal/store"
)

// Options override values from the editor's config file.
type Options struct {
	// DataDir replaces ~/.claude-config-editor.
	DataDir string
	// TargetPath replaces target.path.
	TargetPath string
	// Port replaces server.port when non-zero.
	Port int
	// OpenBrowser forces server.open_browser on.
	OpenBrowser bool
	// Verbose logs at debug level and mirrors the system log to stderr.
	Verbose bool
}

// App holds all application-wide state. It is created once per process and
// shared with the web server, the TUI and the CLI commands.
type App struct {
	config    *config.Config
	state     *config.State
	store     *store.Store
	logs      *logging.Manager
	journal   *db.DB
	dataDir   string
	statePath string
}

// Config returns the editor configuration.
func (a *App) Config() *config.Config { return a.config }

// State returns the persisted TUI state.
func (a *App) State() *config.State { return a.state }

// Store returns the accessor for the target document.
func (a *App) Store() *store.Store { return a.store }

// Logs returns the logging manager.
func (a *App) Logs() *logging.Manager { return a.logs }

// Journal returns the save journal, or nil when it could not be opened.
func (a *App) Journal() *db.DB { return a.journal }

// DataDir returns the editor's data directory.
func (a *App) DataDir() string { return a.dataDir }

// Open loads the editor configuration, opens the logs and the journal and
// resolves the target document path. The target is not required to exist;
// callers that need it call Store().Check().
func Open(opts Options) (*App, error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		d, err := config.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		dataDir = d
	}

	cfg, err := config.Load(filepath.Join(dataDir, "config.json"))
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if opts.Port != 0 {
		cfg.Server.Port = opts.Port
	}
	if opts.OpenBrowser {
		cfg.Server.OpenBrowser = true
	}
	if opts.Verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.ToConsole = true
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	target := opts.TargetPath
	if target == "" {
		target = cfg.Target.Path
	}
	if target == "" {
		target, err = store.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
	}
	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}

	logs, err := logging.NewManager(dataDir, cfg.Logging.Level, cfg.Logging.RotationMB, cfg.Logging.ToConsole)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	statePath := filepath.Join(dataDir, "state.json")
	state, err := config.LoadState(statePath)
	if err != nil {
		logs.System.Warn("app: ignoring unreadable state: %v", err)
		state = &config.State{}
	}

	a := &App{
		config:    cfg,
		state:     state,
		store:     store.New(target),
		logs:      logs,
		dataDir:   dataDir,
		statePath: statePath,
	}

	// The journal is optional: saves keep working without it.
	journal, err := db.Open(filepath.Join(dataDir, db.FileName))
	if err != nil {
		logs.System.Warn("app: save journal unavailable: %v", err)
	} else {
		a.journal = journal
	}

	logs.System.Debug("app: target=%s data_dir=%s", target, dataDir)
	return a, nil
}

// Close persists the TUI state and releases all resources.
func (a *App) Close() error {
	var errs []error

	if a.state != nil && a.statePath != "" {
		if err := config.SaveState(a.state, a.statePath); err != nil {
			errs = append(errs, fmt.Errorf("app: save state: %w", err))
		}
	}

	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("app: close journal: %w", err))
		}
	}

	if a.logs != nil {
		if err := a.logs.Close(); err != nil {
			errs = append(errs, fmt.Errorf("app: close logs: %w", err))
		}
	}

	return errors.Join(errs...)
}
