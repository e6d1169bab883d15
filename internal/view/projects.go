// Package view derives the project list shown by every front end from a
// configuration document, and implements the sort, filter, selection and
// deletion rules applied to it.
package view

import (
	"encoding/json"
	"slices"
	"strings"

	"claude-config-editor/internal/document"
)

// TopN is how many entries SelectLargest picks by default.
const TopN = 10

// Entry is one project of the document's projects map.
type Entry struct {
	Path         string `json:"path"`
	HistoryCount int    `json:"historyCount"`
	SizeBytes    int    `json:"sizeBytes"`
	Selected     bool   `json:"selected"`
}

// Derive returns one entry per project, in document order. A document
// without a projects object yields no entries.
func Derive(doc *document.Document) []Entry {
	projects, ok := doc.Projects()
	if !ok {
		return []Entry{}
	}
	entries := make([]Entry, 0, projects.Len())
	for _, path := range projects.Keys() {
		raw, _ := projects.Get(path)
		entries = append(entries, DeriveEntry(path, raw))
	}
	return entries
}

// DeriveEntry builds the entry for a single project value.
func DeriveEntry(path string, raw json.RawMessage) Entry {
	return Entry{
		Path:         path,
		HistoryCount: historyCount(raw),
		SizeBytes:    document.CompactSize(raw),
	}
}

// historyCount is the length of the project's history array, or 0 when the
// project is not an object or history is missing or not an array.
func historyCount(raw json.RawMessage) int {
	var fields struct {
		History json.RawMessage `json:"history"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields.History) == 0 {
		return 0
	}
	var items []json.RawMessage
	if err := json.Unmarshal(fields.History, &items); err != nil {
		return 0
	}
	return len(items)
}

// Matches reports whether e's path contains term, ignoring case. The empty
// term matches everything.
func Matches(e Entry, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Path), strings.ToLower(term))
}

// Filter returns the entries matching term, keeping their order.
func Filter(entries []Entry, term string) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if Matches(e, term) {
			out = append(out, e)
		}
	}
	return out
}

// SetSelected marks every entry matching term as selected or not. It
// modifies entries in place.
func SetSelected(entries []Entry, term string, selected bool) {
	for i := range entries {
		if Matches(entries[i], term) {
			entries[i].Selected = selected
		}
	}
}

// SelectAll selects every entry matching term.
func SelectAll(entries []Entry, term string) { SetSelected(entries, term, true) }

// DeselectAll clears the selection of every entry matching term.
func DeselectAll(entries []Entry, term string) { SetSelected(entries, term, false) }

// Toggle flips the selection of the entry at path and reports whether it
// was found.
func Toggle(entries []Entry, path string) bool {
	for i := range entries {
		if entries[i].Path == path {
			entries[i].Selected = !entries[i].Selected
			return true
		}
	}
	return false
}

// Select marks the entry at path as selected and reports whether it was
// found. Selecting an entry twice leaves it selected.
func Select(entries []Entry, path string) bool {
	for i := range entries {
		if entries[i].Path == path {
			entries[i].Selected = true
			return true
		}
	}
	return false
}

// SelectLargest clears the selection, then selects the n entries with the
// largest SizeBytes. Ties go to the entry that comes first. n <= 0 selects
// nothing.
func SelectLargest(entries []Entry, n int) {
	DeselectAll(entries, "")
	n = max(n, 0)
	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return entries[b].SizeBytes - entries[a].SizeBytes
	})
	for _, i := range idx[:min(n, len(idx))] {
		entries[i].Selected = true
	}
}

// SelectedPaths returns the paths of the selected entries in list order.
func SelectedPaths(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		if e.Selected {
			out = append(out, e.Path)
		}
	}
	return out
}

// DeleteSelected removes the selected entries from doc's projects map and
// returns the remaining entries and the removed paths. The file on disk is
// not touched.
func DeleteSelected(doc *document.Document, entries []Entry) ([]Entry, []string, error) {
	paths := SelectedPaths(entries)
	if len(paths) == 0 {
		return entries, nil, nil
	}
	removed, err := doc.DeleteProjects(paths)
	if err != nil {
		return entries, nil, err
	}
	remaining := make([]Entry, 0, len(entries)-len(paths))
	for _, e := range entries {
		if !e.Selected {
			remaining = append(remaining, e)
		}
	}
	return remaining, removed, nil
}
