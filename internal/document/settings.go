package document

import "encoding/json"

// Settings is a read-only view of the scalar settings, with the display
// defaults applied for missing or mistyped values.
type Settings struct {
	Theme              string `json:"theme" yaml:"theme"`
	AutoUpdates        bool   `json:"autoUpdates" yaml:"autoUpdates"`
	AutoCompactEnabled bool   `json:"autoCompactEnabled" yaml:"autoCompactEnabled"`
	InstallMethod      string `json:"installMethod" yaml:"installMethod"`
	NumStartups        int    `json:"numStartups" yaml:"numStartups"`
}

const defaultTheme = "light"

// Settings extracts the known settings fields.
func (d *Document) Settings() Settings {
	s := Settings{Theme: defaultTheme}
	if v, ok := scalar[string](d.root, KeyTheme); ok && v != "" {
		s.Theme = v
	}
	s.AutoUpdates, _ = scalar[bool](d.root, KeyAutoUpdates)
	s.AutoCompactEnabled, _ = scalar[bool](d.root, KeyAutoCompactEnabled)
	s.InstallMethod, _ = scalar[string](d.root, KeyInstallMethod)
	if n, ok := scalar[float64](d.root, KeyNumStartups); ok {
		s.NumStartups = int(n)
	}
	return s
}

func scalar[T any](o *Object, key string) (T, bool) {
	var v T
	raw, ok := o.Get(key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}
