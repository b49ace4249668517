// Package storage exports draw results to plain text files.
package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"tagdraw/internal/domain"
	"tagdraw/internal/render"
)

// ErrNothingToSave signals that the result has no content for the requested
// export, usually because no draw has happened yet.
var ErrNothingToSave = errors.New("nothing to save yet")

// WriteTags writes the drawn sample as a single comma-separated line,
// replacing any previous file at path. The file content is exactly the
// line shown in the results pane, so it reads back unchanged.
func WriteTags(path string, res *domain.FetchResult) error {
	if res == nil || len(res.Tags) == 0 {
		return ErrNothingToSave
	}
	content := render.TagLine(res.Tags)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write tags to %s: %w", path, err)
	}
	return nil
}

// WriteSources writes the provenance URLs one per line, sorted, replacing
// any previous file at path.
func WriteSources(path string, res *domain.FetchResult) error {
	if res == nil || len(res.SourceURLs) == 0 {
		return ErrNothingToSave
	}
	content := strings.Join(render.SourceLines(res.SourceURLs), "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write sources to %s: %w", path, err)
	}
	return nil
}
