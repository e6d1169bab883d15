package view

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"testing"

	"claude-config-editor/internal/document"
)

func parse(t *testing.T, s string) *document.Document {
	t.Helper()
	d, err := document.Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return d
}

func paths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestDerive_NoProjects(t *testing.T) {
	for _, in := range []string{`{}`, `{"projects":null}`, `{"projects":"x"}`, `{"theme":"dark"}`} {
		if got := Derive(parse(t, in)); len(got) != 0 {
			t.Errorf("Derive(%s) = %v, want empty", in, got)
		}
	}
}

func TestDerive_Scenario(t *testing.T) {
	got := Derive(parse(t, `{"projects": {"/a": {"history": [1,2]}, "/b": {}}}`))
	want := []Entry{
		{Path: "/a", HistoryCount: 2, SizeBytes: len(`{"history":[1,2]}`)},
		{Path: "/b", HistoryCount: 0, SizeBytes: len(`{}`)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Derive() = %+v, want %+v", got, want)
	}
}

func TestDerive_HistoryCount(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`{"history":[]}`, 0},
		{`{"history":[{},{},{}]}`, 3},
		{`{"history":null}`, 0},
		{`{"history":"oops"}`, 0},
		{`{"history":{"a":1}}`, 0},
		{`{"other":[1,2,3]}`, 0},
		{`[1,2]`, 0},
		{`"not an object"`, 0},
	}
	for _, tt := range tests {
		if got := DeriveEntry("/p", []byte(tt.raw)).HistoryCount; got != tt.want {
			t.Errorf("historyCount(%s) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestDerive_SizeIsCompactUTF8Bytes(t *testing.T) {
	e := DeriveEntry("/p", []byte("{ \"history\" : [ \"é\" ] }"))
	if want := len(`{"history":["é"]}`); e.SizeBytes != want {
		t.Errorf("SizeBytes = %d, want %d", e.SizeBytes, want)
	}
}

func sample() []Entry {
	return []Entry{
		{Path: "/b", HistoryCount: 1, SizeBytes: 300},
		{Path: "/a", HistoryCount: 5, SizeBytes: 100},
		{Path: "/d", HistoryCount: 5, SizeBytes: 100},
		{Path: "/c", HistoryCount: 0, SizeBytes: 900},
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		state SortState
		want  []string
	}{
		{SortState{SortSize, Desc}, []string{"/c", "/b", "/a", "/d"}},
		{SortState{SortSize, Asc}, []string{"/a", "/d", "/b", "/c"}},
		{SortState{SortPath, Asc}, []string{"/a", "/b", "/c", "/d"}},
		{SortState{SortPath, Desc}, []string{"/d", "/c", "/b", "/a"}},
		{SortState{SortHistory, Desc}, []string{"/a", "/d", "/b", "/c"}},
		{SortState{SortHistory, Asc}, []string{"/c", "/b", "/a", "/d"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.state.Key, tt.state.Dir), func(t *testing.T) {
			in := sample()
			got := paths(Sort(in, tt.state))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sort() = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(in, sample()) {
				t.Error("Sort modified its input")
			}
		})
	}
}

func TestSort_DescIsReverseOfAscForDistinctKeys(t *testing.T) {
	in := []Entry{{Path: "x", SizeBytes: 3}, {Path: "y", SizeBytes: 1}, {Path: "z", SizeBytes: 2}}
	asc := paths(Sort(in, SortState{SortSize, Asc}))
	desc := paths(Sort(in, SortState{SortSize, Desc}))
	slices.Reverse(desc)
	if !reflect.DeepEqual(asc, desc) {
		t.Errorf("asc %v is not the reverse of desc", asc)
	}
}

func TestSortState_Toggle(t *testing.T) {
	s := DefaultSort()
	if s != (SortState{SortSize, Desc}) {
		t.Fatalf("DefaultSort() = %+v", s)
	}
	s = s.Toggle(SortSize)
	if s != (SortState{SortSize, Asc}) {
		t.Errorf("same key: %+v, want size/asc", s)
	}
	s = s.Toggle(SortSize)
	if s != (SortState{SortSize, Desc}) {
		t.Errorf("same key again: %+v, want size/desc", s)
	}
	s = s.Toggle(SortSize).Toggle(SortPath)
	if s != (SortState{SortPath, Desc}) {
		t.Errorf("new key: %+v, want path/desc", s)
	}
}

func TestParseSortKeyAndDirection(t *testing.T) {
	if k, err := ParseSortKey("History"); err != nil || k != SortHistory {
		t.Errorf("ParseSortKey(History) = %q, %v", k, err)
	}
	if _, err := ParseSortKey("date"); err == nil {
		t.Error("ParseSortKey(date): expected error")
	}
	if d, err := ParseDirection("ASC"); err != nil || d != Asc {
		t.Errorf("ParseDirection(ASC) = %q, %v", d, err)
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("ParseDirection(up): expected error")
	}
}

func TestFilter(t *testing.T) {
	entries := []Entry{{Path: "/Users/me/Work"}, {Path: "/tmp/scratch"}, {Path: "/users/you/play"}}

	if got := paths(Filter(entries, "")); len(got) != 3 {
		t.Errorf("empty term matched %v", got)
	}
	if got := paths(Filter(entries, "USERS")); !reflect.DeepEqual(got, []string{"/Users/me/Work", "/users/you/play"}) {
		t.Errorf("Filter(USERS) = %v", got)
	}
	if got := Filter(entries, "nope"); len(got) != 0 {
		t.Errorf("Filter(nope) = %v", got)
	}
}

func TestSelectAllAndDeselectAll(t *testing.T) {
	entries := []Entry{{Path: "/work/a"}, {Path: "/play/b"}, {Path: "/work/c"}}

	SelectAll(entries, "work")
	if got := SelectedPaths(entries); !reflect.DeepEqual(got, []string{"/work/a", "/work/c"}) {
		t.Errorf("SelectAll(work) selected %v", got)
	}
	SelectAll(entries, "")
	if got := SelectedPaths(entries); len(got) != 3 {
		t.Errorf("SelectAll() selected %v", got)
	}
	DeselectAll(entries, "")
	if got := SelectedPaths(entries); len(got) != 0 {
		t.Errorf("DeselectAll() left %v", got)
	}
}

func TestToggle(t *testing.T) {
	entries := []Entry{{Path: "/a"}, {Path: "/b"}}
	if !Toggle(entries, "/b") || !entries[1].Selected {
		t.Error("Toggle(/b) did not select")
	}
	if !Toggle(entries, "/b") || entries[1].Selected {
		t.Error("second Toggle(/b) did not deselect")
	}
	if Toggle(entries, "/zzz") {
		t.Error("Toggle(missing) = true")
	}
}

func TestSelect_IsIdempotent(t *testing.T) {
	entries := []Entry{{Path: "/a"}, {Path: "/b"}}
	if !Select(entries, "/a") || !Select(entries, "/a") {
		t.Error("Select(/a) not found")
	}
	if got := SelectedPaths(entries); !reflect.DeepEqual(got, []string{"/a"}) {
		t.Errorf("selected after naming /a twice = %v", got)
	}
	if Select(entries, "/zzz") {
		t.Error("Select(missing) = true")
	}
}

func TestSelectLargest_NonPositive(t *testing.T) {
	entries := []Entry{{Path: "/a", SizeBytes: 5, Selected: true}, {Path: "/b", SizeBytes: 9}}
	for _, n := range []int{0, -1} {
		SelectLargest(entries, n)
		if got := SelectedPaths(entries); len(got) != 0 {
			t.Errorf("SelectLargest(%d) selected %v", n, got)
		}
	}
}

func TestSelectLargest(t *testing.T) {
	for _, count := range []int{0, 3, 10, 25} {
		t.Run(fmt.Sprintf("count=%d", count), func(t *testing.T) {
			entries := make([]Entry, count)
			for i := range entries {
				// Sizes repeat so ties are exercised.
				entries[i] = Entry{Path: fmt.Sprintf("/p%02d", i), SizeBytes: (i * 37) % 11, Selected: i%2 == 0}
			}

			SelectLargest(entries, TopN)

			selected := SelectedPaths(entries)
			if len(selected) != min(TopN, count) {
				t.Fatalf("selected %d entries, want %d", len(selected), min(TopN, count))
			}
			minSelected, maxUnselected := 1<<30, -1
			for _, e := range entries {
				if e.Selected {
					minSelected = min(minSelected, e.SizeBytes)
				} else {
					maxUnselected = max(maxUnselected, e.SizeBytes)
				}
			}
			if maxUnselected > minSelected {
				t.Errorf("unselected entry of size %d beats selected entry of size %d", maxUnselected, minSelected)
			}
		})
	}
}

func TestDeleteSelected(t *testing.T) {
	doc := parse(t, `{"projects":{"/a":{"history":[1,2]},"/b":{},"/c":{}},"keep":1}`)
	entries := Derive(doc)
	Toggle(entries, "/a")
	Toggle(entries, "/c")

	remaining, removed, err := DeleteSelected(doc, entries)
	if err != nil {
		t.Fatalf("DeleteSelected: %v", err)
	}
	if !reflect.DeepEqual(removed, []string{"/a", "/c"}) {
		t.Errorf("removed = %v", removed)
	}
	if got := paths(remaining); !reflect.DeepEqual(got, []string{"/b"}) {
		t.Errorf("remaining = %v", got)
	}
	if got := paths(Derive(doc)); !reflect.DeepEqual(got, []string{"/b"}) {
		t.Errorf("document projects = %v", got)
	}
	if !doc.Root().Has("keep") {
		t.Error("unrelated key dropped")
	}
}

func TestDeleteSelected_NothingSelected(t *testing.T) {
	doc := parse(t, `{"projects":{"/a":{}}}`)
	entries := Derive(doc)
	remaining, removed, err := DeleteSelected(doc, entries)
	if err != nil || removed != nil || len(remaining) != 1 {
		t.Errorf("DeleteSelected = %v, %v, %v", remaining, removed, err)
	}
}

func TestClassifySize(t *testing.T) {
	tests := map[int]SizeClass{
		0:       SizeSmall,
		100_000: SizeSmall,
		100_001: SizeMedium,
		500_000: SizeMedium,
		500_001: SizeLarge,
	}
	for n, want := range tests {
		if got := ClassifySize(n); got != want {
			t.Errorf("ClassifySize(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestSummarize(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"numStartups":4,"projects":{`)
	for i := range 21 {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `"/p%d":{}`, i)
	}
	b.WriteString(`}}`)

	s := Summarize(parse(t, b.String()))
	if s.Projects != 21 || s.MCPServers != 0 || s.Startups != 4 {
		t.Errorf("Summarize() = %+v", s)
	}
	if s.TotalBytes != len(b.String()) {
		t.Errorf("TotalBytes = %d, want %d", s.TotalBytes, len(b.String()))
	}
	if len(s.Hints) != 2 || !strings.Contains(s.Hints[0], "21") || !strings.Contains(s.Hints[1], "No MCP") {
		t.Errorf("Hints = %v", s.Hints)
	}

	s = Summarize(parse(t, `{"mcpServers":{"a":{"command":"x"}}}`))
	if len(s.Hints) != 1 || !strings.Contains(s.Hints[0], "1 MCP") {
		t.Errorf("Hints = %v", s.Hints)
	}
}
