package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortKey names the column entries are ordered by.
type SortKey string

const (
	SortPath    SortKey = "path"
	SortHistory SortKey = "history"
	SortSize    SortKey = "size"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseSortKey accepts the key names, case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(s)); k {
	case SortPath, SortHistory, SortSize:
		return k, nil
	default:
		return "", fmt.Errorf("view: unknown sort key %q (want path, history or size)", s)
	}
}

// ParseDirection accepts "asc" or "desc", case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(s)); d {
	case Asc, Desc:
		return d, nil
	default:
		return "", fmt.Errorf("view: unknown sort direction %q (want asc or desc)", s)
	}
}

// SortState is the current ordering of the project list.
type SortState struct {
	Key SortKey   `json:"key"`
	Dir Direction `json:"dir"`
}

// DefaultSort orders by size, largest first.
func DefaultSort() SortState {
	return SortState{Key: SortSize, Dir: Desc}
}

// Toggle returns the state after the user asks to sort by key: the same key
// flips the direction, a new key starts descending.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		if s.Dir == Asc {
			return SortState{Key: key, Dir: Desc}
		}
		return SortState{Key: key, Dir: Asc}
	}
	return SortState{Key: key, Dir: Desc}
}

// Sort returns a sorted copy of entries. The sort is stable: entries that
// compare equal keep their input order in both directions.
func Sort(entries []Entry, s SortState) []Entry {
	out := slices.Clone(entries)
	compare := compareBy(s.Key)
	if s.Dir == Asc {
		slices.SortStableFunc(out, compare)
	} else {
		slices.SortStableFunc(out, func(a, b Entry) int { return compare(b, a) })
	}
	return out
}

func compareBy(key SortKey) func(a, b Entry) int {
	switch key {
	case SortPath:
		return func(a, b Entry) int { return strings.Compare(a.Path, b.Path) }
	case SortHistory:
		return func(a, b Entry) int { return cmp.Compare(a.HistoryCount, b.HistoryCount) }
	default:
		return func(a, b Entry) int { return cmp.Compare(a.SizeBytes, b.SizeBytes) }
	}
}
