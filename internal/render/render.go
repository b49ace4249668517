// Package render formats draw results for humans. The terminal panes and
// the exported files go through the same functions, so what is on screen is
// exactly what lands on disk.
package render

import (
	"sort"
	"strings"
)

// Display rewrites a stored tag for reading: underscores become spaces.
func Display(tag string) string {
	return strings.ReplaceAll(tag, "_", " ")
}

// TagLine joins a drawn sample into the single comma-separated line shown
// in the result pane and written to the tag export.
func TagLine(tags []string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = Display(t)
	}
	return strings.Join(parts, ", ")
}

// PoolLines returns the whole candidate pool as sorted display lines. The
// input is not modified.
func PoolLines(pool []string) []string {
	lines := make([]string, len(pool))
	for i, t := range pool {
		lines[i] = Display(t)
	}
	sort.Strings(lines)
	return lines
}

// SourceLines returns the provenance URLs sorted for stable output.
func SourceLines(urls []string) []string {
	lines := append([]string(nil), urls...)
	sort.Strings(lines)
	return lines
}
