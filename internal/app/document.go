package app

import (
	"context"
	"errors"
	"fmt"

	"claude-config-editor/internal/db"
	"claude-config-editor/internal/document"
	"claude-config-editor/internal/store"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// WithRequestID attaches a request id to ctx for logging and the journal.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id attached by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Load reads the target document fresh from disk.
func (a *App) Load(ctx context.Context) (*document.Document, error) {
	doc, err := a.store.Load()
	if err != nil {
		a.logs.System.Error("app: load %s (req=%s): %v", a.store.Path(), RequestID(ctx), err)
		return nil, err
	}
	a.logs.System.Debug("app: loaded %s (req=%s)", a.store.Path(), RequestID(ctx))
	return doc, nil
}

// Save backs up and writes doc, then records the save in the journal.
// source is one of the db.Source* constants. Journal
// failures are logged and do not fail the save.
func (a *App) Save(ctx context.Context, doc *document.Document, source string) (store.SaveResult, error) {
	reqID := RequestID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}

	res, err := a.store.Save(doc)
	if err != nil {
		a.logs.System.Error("app: save %s (source=%s req=%s): %v", a.store.Path(), source, reqID, err)
		return res, err
	}
	a.logs.System.Info("app: saved %s (%d bytes, backup=%q, source=%s req=%s)",
		a.store.Path(), res.Bytes, res.BackupPath, source, reqID)

	if a.journal != nil {
		projects, _ := doc.Projects()
		rec := db.SaveRecord{
			RequestID:  reqID,
			Source:     source,
			ConfigPath: a.store.Path(),
			Bytes:      res.Bytes,
			Projects:   projects.Len(),
			MCPServers: len(doc.MCPServers()),
		}
		if res.BackedUp {
			rec.BackupPath = &res.BackupPath
		}
		if _, err := a.journal.RecordSave(ctx, rec); err != nil {
			a.logs.System.Warn("app: journal: %v", err)
		}
	}
	return res, nil
}

// ErrNoJournal is returned by RecentSaves when the journal is unavailable.
var ErrNoJournal = errors.New("save journal unavailable")

// RecentSaves lists the newest journal rows.
func (a *App) RecentSaves(ctx context.Context, limit int) ([]db.SaveRecord, error) {
	if a.journal == nil {
		return nil, fmt.Errorf("app: %w", ErrNoJournal)
	}
	return a.journal.ListSaves(ctx, limit)
}
