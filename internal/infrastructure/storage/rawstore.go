package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"newspulse/internal/ports"
)

// unsafeFilenameExpr strips everything that cannot appear in a
// section- or id-derived filename.
var unsafeFilenameExpr = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// HTMLStore persists raw article documents under a single directory,
// addressed by section and article id.
type HTMLStore struct {
	dir string
}

var _ ports.RawStore = (*HTMLStore)(nil)

// NewHTMLStore ensures the target directory exists.
func NewHTMLStore(dir string) (*HTMLStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create raw store dir: %w", err)
	}
	return &HTMLStore{dir: dir}, nil
}

// Save writes one document as <section>_<id>.html and returns its path.
// The record only references the path; it does not own the file.
func (s *HTMLStore) Save(section, articleID string, body []byte) (string, error) {
	name := fmt.Sprintf("%s_%s.html", sanitize(section), sanitize(articleID))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write raw document: %w", err)
	}
	return path, nil
}

func sanitize(s string) string {
	clean := unsafeFilenameExpr.ReplaceAllString(s, "-")
	if clean == "" {
		return "article"
	}
	return clean
}
