// Package web serves the editor's browser page and its JSON API on the
// loopback interface.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
	"time"

	"claude-config-editor/internal/app"
)

//go:embed static
var staticFiles embed.FS

// Server is the editor's HTTP server.
type Server struct {
	a   *app.App
	srv *http.Server
	ln  net.Listener
	hub *sseHub

	hubOnce sync.Once
}

// New creates a Server bound to the given App.
func New(a *app.App) *Server {
	return &Server{a: a, hub: newSSEHub()}
}

// Handler returns the routed handler wrapped in access logging. It is what
// Start serves and what tests drive directly.
func (s *Server) Handler() http.Handler {
	s.hubOnce.Do(func() { go s.hub.run() })
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return s.withAccessLog(mux)
}

// Addr returns the listen address, e.g. "127.0.0.1:8765".
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	cfg := s.a.Config().Server
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// URL returns the base URL of the page.
func (s *Server) URL() string {
	return "http://" + s.Addr()
}

// Start binds the configured address, serves in a background goroutine and
// optionally opens the browser. The port is fixed: a busy port is an error.
func (s *Server) Start(ctx context.Context) (string, error) {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return "", fmt.Errorf("web: start: listen %s: %w", s.Addr(), err)
	}
	s.ln = ln

	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// WriteTimeout stays 0: SSE connections are long-lived.
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.a.Logs().System.Error("web: serve: %v", err)
		}
	}()

	url := s.URL()
	s.a.Logs().System.Info("web: listening on %s", url)
	if s.a.Config().Server.OpenBrowser {
		_ = openBrowser(ctx, url)
	}
	return url, nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.hub.stop()
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("web: stop: %w", err)
	}
	return nil
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)

	mux.HandleFunc("GET /api/config", s.handleGetConfig)
	mux.HandleFunc("POST /api/save", s.handleSave)

	mux.HandleFunc("GET /api/projects", s.handleListProjects)
	mux.HandleFunc("GET /api/overview", s.handleOverview)
	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("GET /api/saves", s.handleListSaves)

	mux.HandleFunc("GET /events", s.handleSSE)

	// Everything else, including wrong methods on known paths, is a 404.
	mux.HandleFunc("/", s.handleNotFound)
}

// openBrowser opens url in the system default browser.
func openBrowser(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}
	go func() { _ = cmd.Run() }()
	return nil
}
