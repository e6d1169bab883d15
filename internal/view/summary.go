package view

import (
	"fmt"

	"claude-config-editor/internal/document"

	"github.com/dustin/go-humanize"
)

// SizeClass buckets a project's serialized size.
type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// Thresholds, in bytes of compact JSON.
const (
	mediumThreshold = 100_000
	largeThreshold  = 500_000

	largeDocument = 5 * 1024 * 1024
	manyProjects  = 20
)

// ClassifySize returns the size class for n bytes.
func ClassifySize(n int) SizeClass {
	switch {
	case n > largeThreshold:
		return SizeLarge
	case n > mediumThreshold:
		return SizeMedium
	default:
		return SizeSmall
	}
}

// FormatSize renders n bytes for display (IEC units).
func FormatSize(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// Summary is the overview of a document.
type Summary struct {
	TotalBytes int      `json:"totalBytes" yaml:"totalBytes"`
	Projects   int      `json:"projects" yaml:"projects"`
	MCPServers int      `json:"mcpServers" yaml:"mcpServers"`
	Startups   int      `json:"numStartups" yaml:"numStartups"`
	Hints      []string `json:"hints" yaml:"hints"`
}

// Summarize computes the overview and the housekeeping hints for doc.
func Summarize(doc *document.Document) Summary {
	projects, _ := doc.Projects()
	s := Summary{
		TotalBytes: doc.CompactSize(),
		Projects:   projects.Len(),
		MCPServers: len(doc.MCPServers()),
		Startups:   doc.Settings().NumStartups,
		Hints:      []string{},
	}

	if s.TotalBytes > largeDocument {
		s.Hints = append(s.Hints, fmt.Sprintf("Config is large (%s). Consider clearing the history of old projects.", FormatSize(s.TotalBytes)))
	}
	if s.Projects > manyProjects {
		s.Hints = append(s.Hints, fmt.Sprintf("Many projects (%d). Delete the ones you no longer use.", s.Projects))
	}
	if s.MCPServers == 0 {
		s.Hints = append(s.Hints, "No MCP servers configured.")
	} else {
		s.Hints = append(s.Hints, fmt.Sprintf("%d MCP server(s) active.", s.MCPServers))
	}
	return s
}
