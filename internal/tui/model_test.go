package tui

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"claude-config-editor/internal/app"
	"claude-config-editor/internal/view"

	tea "github.com/charmbracelet/bubbletea"
)

const sampleDoc = `{"numStartups":2,"projects":{"/work/a":{"history":[1,2,3]},"/work/big":{"history":[],"blob":"xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"},"/tmp/c":{}},"mcpServers":{}}`

// newTestModel opens an App over a temp target and returns a model that has
// loaded it and received a window size.
func newTestModel(t *testing.T, content string) (Model, *app.App) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.WriteFile(filepath.Join(home, ".claude.json"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	a, err := app.Open(app.Options{})
	if err != nil {
		t.Fatalf("app.Open: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	m := NewModel(a)
	m.copy = func(string) error { return nil }
	m = run(t, m, m.Init())
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, a
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// run executes cmd synchronously and feeds its message back into m.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return update(t, m, cmd())
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

func visiblePaths(m Model) []string {
	var out []string
	for _, e := range m.visible() {
		out = append(out, e.Path)
	}
	return out
}

func TestModel_LoadsAndSortsBySizeDesc(t *testing.T) {
	m, _ := newTestModel(t, sampleDoc)

	if got := visiblePaths(m); !reflect.DeepEqual(got, []string{"/work/big", "/work/a", "/tmp/c"}) {
		t.Errorf("rows = %v", got)
	}
	out := m.View()
	for _, want := range []string{"/work/big", "3 projects", "[ ]"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_SortKeysToggle(t *testing.T) {
	m, a := newTestModel(t, sampleDoc)

	m = press(t, m, "1")
	if m.sort != (view.SortState{Key: view.SortPath, Dir: view.Desc}) {
		t.Errorf("after 1: %+v", m.sort)
	}
	m = press(t, m, "1")
	if got := visiblePaths(m); !reflect.DeepEqual(got, []string{"/tmp/c", "/work/a", "/work/big"}) {
		t.Errorf("path asc rows = %v", got)
	}
	m = press(t, m, "2")
	if got := visiblePaths(m); got[0] != "/work/a" {
		t.Errorf("history desc rows = %v", got)
	}
	if st := a.State(); st.SortKey != "history" || st.SortDir != "desc" {
		t.Errorf("state = %+v", st)
	}
}

func TestModel_SearchFiltersAndPersists(t *testing.T) {
	m, a := newTestModel(t, sampleDoc)

	m = press(t, m, "/", "w", "o", "r", "k")
	if !m.searching {
		t.Fatal("not in search mode")
	}
	if got := visiblePaths(m); len(got) != 2 {
		t.Errorf("filtered rows = %v", got)
	}
	m = press(t, m, "enter")
	if m.searching || a.State().Search != "work" {
		t.Errorf("searching=%v state=%+v", m.searching, a.State())
	}

	// a selects only matching entries.
	m = press(t, m, "a")
	if got := view.SelectedPaths(m.entries); !reflect.DeepEqual(got, []string{"/work/a", "/work/big"}) {
		t.Errorf("selected = %v", got)
	}

	m = press(t, m, "/", "esc")
	if m.search.Value() != "" || len(visiblePaths(m)) != 3 {
		t.Errorf("esc did not clear search: %q", m.search.Value())
	}
}

func TestModel_ToggleAndSelectTop(t *testing.T) {
	m, _ := newTestModel(t, sampleDoc)

	m = press(t, m, "down", " ")
	if got := view.SelectedPaths(m.entries); !reflect.DeepEqual(got, []string{"/work/a"}) {
		t.Errorf("selected = %v", got)
	}
	m = press(t, m, " ")
	if got := view.SelectedPaths(m.entries); len(got) != 0 {
		t.Errorf("selected = %v", got)
	}

	m = press(t, m, "t")
	if got := view.SelectedPaths(m.entries); len(got) != 3 {
		t.Errorf("top selected = %v", got)
	}
	m = press(t, m, "A")
	if got := view.SelectedPaths(m.entries); len(got) != 0 {
		t.Errorf("after A = %v", got)
	}
}

func TestModel_DeleteConfirmAndSave(t *testing.T) {
	m, a := newTestModel(t, sampleDoc)

	m = press(t, m, "d")
	if m.confirmDelete || m.status != "Nothing selected" {
		t.Errorf("delete with empty selection: confirm=%v status=%q", m.confirmDelete, m.status)
	}

	m = press(t, m, " ", "d")
	if !m.confirmDelete {
		t.Fatal("no confirmation prompt")
	}
	m = press(t, m, "n")
	if m.confirmDelete || len(m.entries) != 3 {
		t.Fatalf("cancel: confirm=%v entries=%d", m.confirmDelete, len(m.entries))
	}

	m = press(t, m, "d", "y")
	if len(m.entries) != 2 || !m.dirty {
		t.Fatalf("after delete: entries=%d dirty=%v", len(m.entries), m.dirty)
	}

	next, cmd := m.Update(keyMsg("w"))
	m = run(t, next.(Model), cmd)
	if m.dirty || !strings.Contains(m.status, "backup") {
		t.Errorf("after save: dirty=%v status=%q err=%v", m.dirty, m.status, m.err)
	}

	doc, err := a.Store().Load()
	if err != nil {
		t.Fatal(err)
	}
	projects, _ := doc.Projects()
	if projects.Has("/work/big") || projects.Len() != 2 {
		t.Errorf("saved projects = %v", projects.Keys())
	}
	saves, err := a.RecentSaves(t.Context(), 10)
	if err != nil || len(saves) != 1 || saves[0].Source != "tui" {
		t.Errorf("journal = %+v, %v", saves, err)
	}
}

func TestModel_QuitNeedsSecondPressWhenDirty(t *testing.T) {
	m, _ := newTestModel(t, sampleDoc)

	if _, cmd := m.Update(keyMsg("q")); cmd == nil {
		t.Error("clean q did not quit")
	}

	m = press(t, m, " ", "d", "y")
	next, cmd := m.Update(keyMsg("q"))
	if cmd != nil {
		t.Fatal("dirty q quit immediately")
	}
	m = next.(Model)
	if !m.quitArmed {
		t.Error("quit not armed")
	}
	if _, cmd := m.Update(keyMsg("q")); cmd == nil {
		t.Error("second q did not quit")
	}
}

func TestModel_ReloadDiscardsEdits(t *testing.T) {
	m, _ := newTestModel(t, sampleDoc)
	m = press(t, m, " ", "d", "y")

	next, cmd := m.Update(keyMsg("r"))
	m = run(t, next.(Model), cmd)
	if m.dirty || len(m.entries) != 3 {
		t.Errorf("reload: dirty=%v entries=%d", m.dirty, len(m.entries))
	}
}

func TestModel_Copy(t *testing.T) {
	m, _ := newTestModel(t, sampleDoc)
	var copied string
	m.copy = func(s string) error { copied = s; return nil }

	m = press(t, m, "down")
	next, cmd := m.Update(keyMsg("y"))
	m = run(t, next.(Model), cmd)
	if !strings.Contains(copied, `"history": [`) {
		t.Errorf("copied %q", copied)
	}
	if !strings.HasPrefix(m.status, "Copied /work/a") {
		t.Errorf("status = %q", m.status)
	}

	m.copy = func(string) error { return errors.New("no clipboard") }
	next, cmd = m.Update(keyMsg("y"))
	m = run(t, next.(Model), cmd)
	if m.err == nil {
		t.Error("clipboard failure not reported")
	}
}

func TestModel_RestoresPersistedSort(t *testing.T) {
	m, a := newTestModel(t, sampleDoc)
	a.State().SortKey = "path"
	a.State().SortDir = "asc"
	a.State().Search = "tmp"

	m = NewModel(a)
	if m.sort != (view.SortState{Key: view.SortPath, Dir: view.Asc}) || m.search.Value() != "tmp" {
		t.Errorf("restored sort=%+v search=%q", m.sort, m.search.Value())
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m, _ := newTestModel(t, sampleDoc)

	m = press(t, m, "?")
	if !m.help.Visible() || !strings.Contains(m.View(), "Keybindings") {
		t.Error("help overlay not shown")
	}
	m = press(t, m, "x")
	if m.help.Visible() {
		t.Error("help overlay not dismissed")
	}
}

func TestModel_LoadError(t *testing.T) {
	m, _ := newTestModel(t, `{"projects": `)
	if m.err == nil || m.doc != nil {
		t.Errorf("err=%v doc=%v", m.err, m.doc)
	}
}

func TestTruncateLeft(t *testing.T) {
	if got := truncateLeft("/a/b/c/d", 5); got != "…/c/d" {
		t.Errorf("truncateLeft = %q", got)
	}
	if got := truncateLeft("/a", 5); got != "/a" {
		t.Errorf("truncateLeft = %q", got)
	}
}
