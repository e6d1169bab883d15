// Package db keeps the save journal: one SQLite row per completed save of
// the configuration document. Only metadata is recorded, never document
// content.
package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// FileName is the journal's file name inside the data directory.
const FileName = "journal.db"

// DB is an open journal.
type DB struct {
	conn *sql.DB
	path string
}

// Open creates or opens the journal at path and applies any migrations newer
// than the schema version recorded in the file.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("db: create directory: %w", err)
	}

	// busy_timeout lets a second editor process wait for the writer instead
	// of failing with SQLITE_BUSY.
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1)

	d := &DB{conn: conn, path: path}
	if err := d.RunMigrations(); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

// Path returns the journal file path.
func (d *DB) Path() string { return d.path }

// Close closes the connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

type migration struct {
	version int
	name    string
}

// migrations lists the embedded NNN_name.sql files in version order.
func migrations() ([]migration, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("db: read migrations: %w", err)
	}
	var out []migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		prefix, _, _ := strings.Cut(e.Name(), "_")
		v, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("db: migration %s: bad version prefix", e.Name())
		}
		out = append(out, migration{version: v, name: e.Name()})
	}
	return out, nil
}

// SchemaVersion reports the highest migration applied to the file.
func (d *DB) SchemaVersion() (int, error) {
	var v int
	if err := d.conn.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("db: read schema version: %w", err)
	}
	return v, nil
}

// RunMigrations applies pending migrations, each in its own transaction
// together with the user_version bump. Running it again is a no-op.
func (d *DB) RunMigrations() error {
	current, err := d.SchemaVersion()
	if err != nil {
		return err
	}
	list, err := migrations()
	if err != nil {
		return err
	}

	for _, m := range list {
		if m.version <= current {
			continue
		}
		body, err := migrationsFS.ReadFile("migrations/" + m.name)
		if err != nil {
			return fmt.Errorf("db: read migration %s: %w", m.name, err)
		}

		tx, err := d.conn.Begin()
		if err != nil {
			return fmt.Errorf("db: migration %s: %w", m.name, err)
		}
		if _, err := tx.Exec(string(body)); err != nil {
			tx.Rollback()
			return fmt.Errorf("db: migration %s: %w", m.name, err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec("PRAGMA user_version = " + strconv.Itoa(m.version)); err != nil {
			tx.Rollback()
			return fmt.Errorf("db: migration %s: set version: %w", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("db: migration %s: commit: %w", m.name, err)
		}
		current = m.version
	}
	return nil
}
