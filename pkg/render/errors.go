package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-cardkit/pkg/card"
)

// DiagnosticMapping groups diagnostic messages by JSON pointer. Messages
// without a path are document-level.
type DiagnosticMapping struct {
	Paths    map[string][]string
	Document []string
	Errors   int
	Warnings int
}

// MapDiagnostics groups diagnostics for display, dropping blank and
// duplicate messages while preserving order.
func MapDiagnostics(diagnostics []card.Diagnostic) DiagnosticMapping {
	mapping := DiagnosticMapping{Paths: make(map[string][]string)}
	for _, d := range diagnostics {
		switch d.Severity {
		case card.SeverityError:
			mapping.Errors++
		default:
			mapping.Warnings++
		}
		path := strings.TrimSpace(d.Path)
		if path == "" {
			mapping.Document = append(mapping.Document, d.Message)
			continue
		}
		mapping.Paths[path] = append(mapping.Paths[path], d.Message)
	}
	for path, messages := range mapping.Paths {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			delete(mapping.Paths, path)
			continue
		}
		mapping.Paths[path] = normalized
	}
	if len(mapping.Paths) == 0 {
		mapping.Paths = nil
	}
	mapping.Document = normalizeMessages(mapping.Document)
	return mapping
}

// SortedPaths returns the mapped paths in lexical order.
func (m DiagnosticMapping) SortedPaths() []string {
	paths := make([]string, 0, len(m.Paths))
	for path := range m.Paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
