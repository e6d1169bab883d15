package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"claude-config-editor/internal/app"
	"claude-config-editor/internal/db"
	"claude-config-editor/internal/document"
	"claude-config-editor/internal/view"
)

// maxSaveBody bounds POST /api/save. Real documents reach a few MiB.
const maxSaveBody = 64 << 20

// jsonResponse writes v as JSON with the given status code.
func jsonResponse(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	// Headers are already sent; an encode error has nowhere to go.
	_ = enc.Encode(v)
}

// jsonOK writes v as a JSON 200 response.
func jsonOK(w http.ResponseWriter, v any) {
	jsonResponse(w, http.StatusOK, v)
}

// jsonError writes {"error": msg} with the given status code.
func jsonError(w http.ResponseWriter, code int, msg string) {
	jsonResponse(w, code, map[string]string{"error": msg})
}

type saveResponse struct {
	Success bool   `json:"success"`
	Backup  string `json:"backup"`
}

type saveFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// saveFailed writes the 500 response for a failed save.
func saveFailed(w http.ResponseWriter, msg string) {
	jsonResponse(w, http.StatusInternalServerError, saveFailure{Error: msg})
}

// handleIndex serves the embedded page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(staticFiles, "static/index.html")
	if err != nil {
		jsonError(w, http.StatusInternalServerError, fmt.Sprintf("web: index: %s", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	jsonError(w, http.StatusNotFound, fmt.Sprintf("not found: %s %s", r.Method, r.URL.Path))
}

// handleGetConfig returns the document as currently stored on disk.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	doc, err := s.a.Load(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonOK(w, struct {
		Path   string             `json:"path"`
		Config *document.Document `json:"config"`
	}{s.a.Store().Path(), doc})
}

// handleSave replaces the document with the request body after backing up
// the current file. A body that is not a JSON object is rejected before the
// file is touched.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSaveBody))
	if err != nil {
		saveFailed(w, fmt.Sprintf("web: save: read body: %s", err))
		return
	}
	doc, err := document.Parse(body)
	if err != nil {
		saveFailed(w, fmt.Sprintf("web: save: invalid document: %s", err))
		return
	}

	res, err := s.a.Save(r.Context(), doc, db.SourceWeb)
	if err != nil {
		saveFailed(w, err.Error())
		return
	}

	s.hub.emit(eventConfigSaved, map[string]any{"path": s.a.Store().Path(), "backup": res.BackupPath, "bytes": res.Bytes})
	jsonOK(w, saveResponse{Success: true, Backup: res.BackupPath})
}

// handleListProjects returns the derived project list, sorted and filtered
// server-side. Query: sort=path|history|size, dir=asc|desc, q=<substring>.
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	state := view.DefaultSort()
	q := r.URL.Query()
	if raw := q.Get("sort"); raw != "" {
		key, err := view.ParseSortKey(raw)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		state.Key = key
	}
	if raw := q.Get("dir"); raw != "" {
		dir, err := view.ParseDirection(raw)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		state.Dir = dir
	}

	doc, err := s.a.Load(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type projectDTO struct {
		view.Entry
		SizeClass view.SizeClass `json:"sizeClass"`
	}
	entries := view.Sort(view.Filter(view.Derive(doc), q.Get("q")), state)
	projects := make([]projectDTO, 0, len(entries))
	for _, e := range entries {
		projects = append(projects, projectDTO{Entry: e, SizeClass: view.ClassifySize(e.SizeBytes)})
	}

	jsonOK(w, struct {
		Path     string         `json:"path"`
		Sort     view.SortState `json:"sort"`
		Projects []projectDTO   `json:"projects"`
		Summary  view.Summary   `json:"summary"`
	}{s.a.Store().Path(), state, projects, view.Summarize(doc)})
}

// handleOverview returns the summary, hints and settings of the document
// as stored on disk.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	doc, err := s.a.Load(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonOK(w, struct {
		Path     string            `json:"path"`
		Summary  view.Summary      `json:"summary"`
		Settings document.Settings `json:"settings"`
	}{s.a.Store().Path(), view.Summarize(doc), doc.Settings()})
}

// exportName is the download name for a document exported at t, e.g.
// claude-config-backup-2026-01-02T03-04-05-000Z.json.
func exportName(t time.Time) string {
	ts := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return "claude-config-backup-" + strings.NewReplacer(":", "-", ".", "-").Replace(ts) + ".json"
}

// handleExport sends the stored document as an indented JSON attachment with
// a timestamped file name. The file on disk is not modified.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.a.Load(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	data, err := doc.Encode()
	if err != nil {
		jsonError(w, http.StatusInternalServerError, fmt.Sprintf("web: export: %s", err))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName(time.Now())))
	w.Write(data)
}

// handleListSaves returns recent save journal rows, newest first.
func (s *Server) handleListSaves(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			jsonError(w, http.StatusBadRequest, fmt.Sprintf("web: saves: invalid limit %q", raw))
			return
		}
		limit = n
	}
	saves, err := s.a.RecentSaves(r.Context(), limit)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, app.ErrNoJournal) {
			code = http.StatusServiceUnavailable
		}
		jsonError(w, code, err.Error())
		return
	}
	jsonOK(w, saves)
}
