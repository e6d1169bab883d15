package document

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func mustParse(t *testing.T, s string) *Document {
	t.Helper()
	d, err := Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse(%s): %v", s, err)
	}
	return d
}

func decodeAny(t *testing.T, data []byte) any {
	t.Helper()
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return v
}

func TestParse_RejectsNonObjects(t *testing.T) {
	for _, in := range []string{``, `[]`, `"x"`, `42`, `null`, `{"a":`, `{} {}`} {
		if _, err := Parse([]byte(in)); err == nil {
			t.Errorf("Parse(%q): expected error", in)
		}
	}
}

func TestObject_PreservesKeyOrder(t *testing.T) {
	d := mustParse(t, `{"zeta":1,"alpha":{"b":2,"a":1},"mid":[3]}`)

	if got, want := d.Root().Keys(), []string{"zeta", "alpha", "mid"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(out), `{"zeta":1,"alpha":{"b":2,"a":1},"mid":[3]}`; got != want {
		t.Errorf("marshal = %s, want %s", got, want)
	}
}

func TestObject_DuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	d := mustParse(t, `{"a":1,"b":2,"a":3}`)
	if got := d.Root().Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("keys = %v", got)
	}
	raw, _ := d.Root().Get("a")
	if string(raw) != "3" {
		t.Errorf("a = %s, want 3", raw)
	}
}

func TestObject_SetAndDelete(t *testing.T) {
	o := NewObject()
	o.Set("x", json.RawMessage(`1`))
	o.Set("y", json.RawMessage(`2`))
	o.Set("x", json.RawMessage(`10`))

	if got := o.Keys(); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Fatalf("keys = %v", got)
	}
	if !o.Delete("x") {
		t.Fatal("Delete(x) = false")
	}
	if o.Delete("x") {
		t.Error("second Delete(x) = true")
	}
	if o.Len() != 1 || o.Has("x") {
		t.Errorf("after delete: len=%d has(x)=%v", o.Len(), o.Has("x"))
	}
}

func TestEncode_IndentedAndUnescaped(t *testing.T) {
	d := mustParse(t, `{"name":"Привет <tag> & co","n":1}`)
	out, err := d.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "Привет <tag> & co") {
		t.Errorf("expected unescaped text, got %s", s)
	}
	if !strings.Contains(s, "\n  \"n\": 1") {
		t.Errorf("expected two-space indentation, got %s", s)
	}
	if !strings.HasSuffix(s, "}\n") {
		t.Errorf("expected trailing newline, got %q", s)
	}
}

func TestEncode_RoundTripsUnknownKeys(t *testing.T) {
	in := `{"projects":{"/a":{"history":[1]}},"userID":"abc","nested":{"deep":[{"x":null}]},"numStartups":7}`
	d := mustParse(t, in)
	out, err := d.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !reflect.DeepEqual(decodeAny(t, out), decodeAny(t, []byte(in))) {
		t.Errorf("round trip changed document:\n%s", out)
	}
}

func TestProjects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
		n    int
	}{
		{"absent", `{}`, false, 0},
		{"null", `{"projects":null}`, false, 0},
		{"array", `{"projects":[]}`, false, 0},
		{"empty", `{"projects":{}}`, true, 0},
		{"two", `{"projects":{"/a":{},"/b":{}}}`, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := mustParse(t, tt.in).Projects()
			if ok != tt.ok || p.Len() != tt.n {
				t.Errorf("Projects() = len %d ok %v, want len %d ok %v", p.Len(), ok, tt.n, tt.ok)
			}
		})
	}
}

func TestDeleteProjects(t *testing.T) {
	d := mustParse(t, `{"projects":{"/a":{"history":[1,2]},"/b":{},"/c":{"x":1}},"other":true}`)

	removed, err := d.DeleteProjects([]string{"/a", "/missing", "/c"})
	if err != nil {
		t.Fatalf("DeleteProjects: %v", err)
	}
	if !reflect.DeepEqual(removed, []string{"/a", "/c"}) {
		t.Errorf("removed = %v", removed)
	}

	p, _ := d.Projects()
	if got := p.Keys(); !reflect.DeepEqual(got, []string{"/b"}) {
		t.Errorf("remaining = %v", got)
	}
	if !d.Root().Has("other") {
		t.Error("unrelated key dropped")
	}
}

func TestDeleteProjects_NoProjects(t *testing.T) {
	d := mustParse(t, `{"theme":"dark"}`)
	removed, err := d.DeleteProjects([]string{"/a"})
	if err != nil || removed != nil {
		t.Errorf("DeleteProjects = %v, %v", removed, err)
	}
	if d.Root().Has(KeyProjects) {
		t.Error("projects key created")
	}
}

func TestMCPServers(t *testing.T) {
	d := mustParse(t, `{"mcpServers":{
		"fs":{"command":"npx","args":["-y","fs"],"env":{"K":"V"},"cwd":"/tmp"},
		"odd":42
	}}`)

	got := d.MCPServers()
	want := []MCPServer{
		{Name: "fs", Command: "npx", Args: []string{"-y", "fs"}, Env: map[string]string{"K": "V"}, Cwd: "/tmp"},
		{Name: "odd"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MCPServers() = %+v, want %+v", got, want)
	}
}

func TestAddAndRemoveMCPServer(t *testing.T) {
	d := mustParse(t, `{"theme":"dark"}`)

	if err := d.AddMCPServer("git", "uvx", nil); err != nil {
		t.Fatalf("AddMCPServer: %v", err)
	}
	raw, _ := d.Root().Get(KeyMCPServers)
	if got, want := string(raw), `{"git":{"command":"uvx","args":[]}}`; got != want {
		t.Errorf("mcpServers = %s, want %s", got, want)
	}

	if err := d.AddMCPServer("", "x", nil); err == nil {
		t.Error("expected error for empty name")
	}
	if err := d.AddMCPServer("x", "", nil); err == nil {
		t.Error("expected error for empty command")
	}

	ok, err := d.RemoveMCPServer("git")
	if err != nil || !ok {
		t.Fatalf("RemoveMCPServer = %v, %v", ok, err)
	}
	if ok, _ := d.RemoveMCPServer("git"); ok {
		t.Error("second remove reported success")
	}
	if n := len(d.MCPServers()); n != 0 {
		t.Errorf("servers left: %d", n)
	}
}

func TestSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		got := mustParse(t, `{}`).Settings()
		want := Settings{Theme: "light"}
		if got != want {
			t.Errorf("Settings() = %+v, want %+v", got, want)
		}
	})
	t.Run("values", func(t *testing.T) {
		got := mustParse(t, `{"theme":"dark","autoUpdates":true,"autoCompactEnabled":true,"installMethod":"npm","numStartups":12}`).Settings()
		want := Settings{Theme: "dark", AutoUpdates: true, AutoCompactEnabled: true, InstallMethod: "npm", NumStartups: 12}
		if got != want {
			t.Errorf("Settings() = %+v, want %+v", got, want)
		}
	})
	t.Run("mistyped", func(t *testing.T) {
		got := mustParse(t, `{"theme":5,"autoUpdates":"yes","numStartups":"many"}`).Settings()
		want := Settings{Theme: "light"}
		if got != want {
			t.Errorf("Settings() = %+v, want %+v", got, want)
		}
	})
}

func TestCompactSize(t *testing.T) {
	if got := CompactSize(json.RawMessage("{ \"a\" : [1, 2] }")); got != len(`{"a":[1,2]}`) {
		t.Errorf("CompactSize = %d", got)
	}
	if got := CompactSize(json.RawMessage(`{"p":"é"}`)); got != len(`{"p":"é"}`) {
		t.Errorf("CompactSize counts bytes: got %d", got)
	}
}

func TestIndent(t *testing.T) {
	got, err := Indent(json.RawMessage(`{"history":[1]}`))
	if err != nil {
		t.Fatalf("Indent: %v", err)
	}
	if want := "{\n  \"history\": [\n    1\n  ]\n}"; string(got) != want {
		t.Errorf("Indent = %q, want %q", got, want)
	}
	if _, err := Indent(json.RawMessage(`{`)); err == nil {
		t.Error("Indent(invalid): expected error")
	}
}
