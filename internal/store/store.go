// Package store reads and writes the configuration document on disk. Every
// call is a complete, stateless operation on the file system; nothing is
// cached between calls.
package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"claude-config-editor/internal/document"
)

// Error taxonomy. Callers test with errors.Is.
var (
	ErrNotFound = errors.New("config file not found")
	ErrParse    = errors.New("config file is not a valid JSON object")
	ErrWrite    = errors.New("config file could not be written")
)

const (
	// DefaultFileName is the document's name under the user's home directory.
	DefaultFileName = ".claude.json"

	backupSuffix = ".backup"
	tmpSuffix    = ".tmp"
)

// DefaultPath returns ~/.claude.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("store: resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Store is the accessor for a single document path.
type Store struct {
	path string
}

// New returns a Store for the document at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the document path.
func (s *Store) Path() string { return s.path }

// BackupPath returns the path of the single backup generation.
func (s *Store) BackupPath() string { return s.path + backupSuffix }

// Check verifies that the document exists. It is the startup precondition
// for serving.
func (s *Store) Check() error {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("store: %s: %w", s.path, ErrNotFound)
		}
		return fmt.Errorf("store: stat %s: %w", s.path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("store: %s is a directory: %w", s.path, ErrNotFound)
	}
	return nil
}

// Load reads and parses the document.
func (s *Store) Load() (*document.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("store: load %s: %w", s.path, ErrNotFound)
		}
		return nil, fmt.Errorf("store: load %s: %w", s.path, err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w: %w", s.path, ErrParse, err)
	}
	return doc, nil
}

// SaveResult describes a completed save.
type SaveResult struct {
	// BackupPath is empty when no previous file existed.
	BackupPath string
	BackedUp   bool
	Bytes      int
}

// Save backs up the current file (if any) to BackupPath, then replaces the
// document with doc. The new content is written to a temporary sibling and
// renamed into place, so a failed write leaves the previous file intact.
// A symlinked target is written through: the link is kept and the file it
// points to is replaced. Concurrent saves are not coordinated.
func (s *Store) Save(doc *document.Document) (SaveResult, error) {
	data, err := doc.Encode()
	if err != nil {
		return SaveResult{}, fmt.Errorf("store: save %s: %w: %w", s.path, ErrWrite, err)
	}

	var res SaveResult
	perm := fs.FileMode(0o644)

	info, err := os.Stat(s.path)
	switch {
	case err == nil:
		perm = info.Mode().Perm()
		if err := copyFile(s.path, s.BackupPath(), info); err != nil {
			return SaveResult{}, fmt.Errorf("store: backup %s: %w: %w", s.path, ErrWrite, err)
		}
		res.BackupPath = s.BackupPath()
		res.BackedUp = true
	case errors.Is(err, fs.ErrNotExist):
		// Nothing to back up.
	default:
		return SaveResult{}, fmt.Errorf("store: stat %s: %w: %w", s.path, ErrWrite, err)
	}

	target := s.path
	if resolved, err := filepath.EvalSymlinks(s.path); err == nil {
		target = resolved
	}
	if err := writeAtomic(target, data, perm); err != nil {
		return res, fmt.Errorf("store: save %s: %w: %w", s.path, ErrWrite, err)
	}
	res.Bytes = len(data)
	return res, nil
}

// copyFile copies src to dst byte-for-byte, keeping mode and modification
// time.
func copyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// writeAtomic writes data to a temp file next to path, syncs it and renames
// it over path.
func writeAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp := path + tmpSuffix
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		os.Remove(tmp)
	}
	return err
}
