package tui

import (
	"claude-config-editor/internal/document"
	"claude-config-editor/internal/store"
)

// ---------------------------------------------------------------------------
// Status and errors
// ---------------------------------------------------------------------------

// ErrorMsg carries an error to be displayed in the status bar.
type ErrorMsg struct{ Err error }

// StatusMsg carries a status string to be displayed in the status bar.
type StatusMsg string

// ---------------------------------------------------------------------------
// Document lifecycle
// ---------------------------------------------------------------------------

// DocumentLoadedMsg carries a document freshly read from disk.
type DocumentLoadedMsg struct {
	Doc *document.Document
}

// DocumentSavedMsg is sent after the working document was written.
type DocumentSavedMsg struct {
	Result store.SaveResult
}
