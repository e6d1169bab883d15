package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Save sources.
const (
	SourceWeb = "web"
	SourceTUI = "tui"
	SourceCLI = "cli"
	SourceMCP = "mcp"
)

var validSources = map[string]bool{
	SourceWeb: true,
	SourceTUI: true,
	SourceCLI: true,
	SourceMCP: true,
}

// ValidSource reports whether s is an allowed save source.
func ValidSource(s string) bool { return validSources[s] }

// SaveRecord is one journal row.
type SaveRecord struct {
	ID         int64     `json:"id"`
	RequestID  string    `json:"request_id"`
	Source     string    `json:"source"`
	SavedAt    time.Time `json:"saved_at"`
	ConfigPath string    `json:"config_path"`
	BackupPath *string   `json:"backup_path"`
	Bytes      int       `json:"bytes"`
	Projects   int       `json:"projects"`
	MCPServers int       `json:"mcp_servers"`
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// nullString converts "" to NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func scanSave(row scanner) (*SaveRecord, error) {
	var (
		rec     SaveRecord
		savedAt string
		backup  sql.NullString
	)
	if err := row.Scan(&rec.ID, &rec.RequestID, &rec.Source, &savedAt, &rec.ConfigPath,
		&backup, &rec.Bytes, &rec.Projects, &rec.MCPServers); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return nil, fmt.Errorf("parse saved_at %q: %w", savedAt, err)
	}
	rec.SavedAt = t
	if backup.Valid {
		rec.BackupPath = &backup.String
	}
	return &rec, nil
}

// RecordSave inserts rec and returns it with ID filled in. A zero SavedAt
// is set to the current time.
func (d *DB) RecordSave(ctx context.Context, rec SaveRecord) (*SaveRecord, error) {
	if !ValidSource(rec.Source) {
		return nil, fmt.Errorf("record save: invalid source %q", rec.Source)
	}
	if rec.SavedAt.IsZero() {
		rec.SavedAt = time.Now()
	}
	rec.SavedAt = rec.SavedAt.UTC()

	backup := ""
	if rec.BackupPath != nil {
		backup = *rec.BackupPath
	}

	res, err := d.conn.ExecContext(ctx,
		`INSERT INTO saves (request_id, source, saved_at, config_path, backup_path, bytes, projects, mcp_servers)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RequestID, rec.Source, rec.SavedAt.Format(time.RFC3339Nano), rec.ConfigPath,
		nullString(backup), rec.Bytes, rec.Projects, rec.MCPServers,
	)
	if err != nil {
		return nil, fmt.Errorf("record save: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("record save: last insert id: %w", err)
	}
	rec.ID = id
	return &rec, nil
}

// ListSaves returns up to limit rows, newest first. limit <= 0 means 50.
func (d *DB) ListSaves(ctx context.Context, limit int) ([]SaveRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.conn.QueryContext(ctx,
		`SELECT id, request_id, source, saved_at, config_path, backup_path, bytes, projects, mcp_servers
		 FROM saves ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	out := []SaveRecord{}
	for rows.Next() {
		rec, err := scanSave(rows)
		if err != nil {
			return nil, fmt.Errorf("list saves: scan: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return out, nil
}
