package config

import (
	"fmt"
)

// State holds terminal UI state kept between sessions.
// Stored as ~/.claude-config-editor/state.json.
type State struct {
	SortKey string `json:"sort_key"`
	SortDir string `json:"sort_dir"`
	Search  string `json:"search"`
}

// LoadState reads a State from path. A missing file yields an empty State;
// callers fall back to their own defaults for empty fields.
func LoadState(path string) (*State, error) {
	var st State

	if err := loadJSON(path, &st); err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}

	return &st, nil
}

// SaveState writes the state to path as indented JSON.
func SaveState(state *State, path string) error {
	if err := saveJSON(path, state, 0o644); err != nil {
		return fmt.Errorf("state: %w", err)
	}
	return nil
}
