package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
)

// fallbackExportName is used when the result has no usable title.
const fallbackExportName = "highlights"

// ExportName derives the export filename from the document title.
func ExportName(title string) string {
	name := Slugify(title)
	if name == "" {
		name = fallbackExportName
	}
	return name + ".md"
}

// SaveFile writes text to <dir>/<title>.md and returns the written
// path. An empty dir means the current working directory. Exports
// always operate on the live buffer text the caller passes in, so saved
// files reflect in-session edits.
func SaveFile(dir, title, text string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, ExportName(title))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

// CopyClipboard places text on the system clipboard.
func CopyClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// SizeLabel formats the byte size of text for the status bar.
func SizeLabel(text string) string {
	return humanize.Bytes(uint64(len(text)))
}
