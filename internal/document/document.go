// Package document models the Claude Code state file (~/.claude.json) as an
// opaque, order-preserving JSON tree with typed accessors for the few
// top-level fields the editor understands.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Top-level keys the editor reads or edits. Every other key is passed
// through untouched.
const (
	KeyProjects           = "projects"
	KeyMCPServers         = "mcpServers"
	KeyTheme              = "theme"
	KeyAutoUpdates        = "autoUpdates"
	KeyAutoCompactEnabled = "autoCompactEnabled"
	KeyInstallMethod      = "installMethod"
	KeyNumStartups        = "numStartups"
)

// Document is the full configuration document.
type Document struct {
	root *Object
}

// New returns an empty document.
func New() *Document {
	return &Document{root: NewObject()}
}

// Parse decodes data as a configuration document. The top-level value must
// be a JSON object.
func Parse(data []byte) (*Document, error) {
	root, err := ParseObject(data)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// Root exposes the top-level object.
func (d *Document) Root() *Object { return d.root }

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.root.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	root := NewObject()
	if err := root.UnmarshalJSON(data); err != nil {
		return err
	}
	d.root = root
	return nil
}

// Encode renders the document the way it is stored on disk: two-space
// indentation, no HTML or non-ASCII escaping, trailing newline.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("document: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// CompactSize returns the byte length of the compact serialization of the
// whole document.
func (d *Document) CompactSize() int {
	raw, err := d.MarshalJSON()
	if err != nil {
		return 0
	}
	return CompactSize(raw)
}

// CompactSize returns the UTF-8 byte length of raw with insignificant
// whitespace removed. Invalid JSON is measured as-is.
func CompactSize(raw json.RawMessage) int {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return len(raw)
	}
	return buf.Len()
}

// Indent renders a single raw value with the document's indentation.
func Indent(raw json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("document: indent: %w", err)
	}
	return buf.Bytes(), nil
}

// Projects returns the projects map. ok is false when the document has no
// usable projects object.
func (d *Document) Projects() (*Object, bool) {
	return d.root.Object(KeyProjects)
}

// DeleteProjects removes the given project paths and returns the ones that
// were actually present, in the order given.
func (d *Document) DeleteProjects(paths []string) ([]string, error) {
	projects, ok := d.Projects()
	if !ok {
		return nil, nil
	}
	var removed []string
	for _, p := range paths {
		if projects.Delete(p) {
			removed = append(removed, p)
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}
	if err := d.root.SetValue(KeyProjects, projects); err != nil {
		return nil, err
	}
	return removed, nil
}
