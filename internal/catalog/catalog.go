// Package catalog lists the media directory and validates filenames against the
// title/tag grammar from [models.ParseFilename].
//
// The directory is read on every call; nothing is cached between scans.
package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ktv/internal/models"
	"github.com/desertthunder/ktv/internal/shared"
)

// Rejection records a file that was quarantined during a scan.
type Rejection struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// Catalog is the result of one scan of the media directory.
type Catalog struct {
	Root     string              `json:"root"`
	Entries  []models.MediaEntry `json:"entries"`
	Rejected []Rejection         `json:"rejected"`
}

// Candidates returns the conforming filenames in listing order.
func (c *Catalog) Candidates() []string {
	names := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		names[i] = e.Filename
	}
	return names
}

// Lookup reports whether filename is a conforming entry of the catalog.
func (c *Catalog) Lookup(filename string) (models.MediaEntry, bool) {
	for _, e := range c.Entries {
		if e.Filename == filename {
			return e, true
		}
	}
	return models.MediaEntry{}, false
}

// ListEntries returns the names of the regular files directly inside path, sorted by name.
//
// A missing or unreadable directory is reported as [shared.ErrCatalogUnavailable].
func ListEntries(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Scanner reads a fixed media directory.
type Scanner struct {
	root   string
	logger *log.Logger
}

// NewScanner creates a [Scanner] for root. A nil logger uses [shared.NewLogger].
func NewScanner(root string, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Scanner{root: root, logger: shared.WithLogger(logger, "component", "catalog")}
}

// Root returns the scanned directory.
func (s *Scanner) Root() string {
	return s.root
}

// Path joins filename onto the media root, refusing names that would escape it.
func (s *Scanner) Path(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("%w: %q", shared.ErrInvalidInput, filename)
	}
	return filepath.Join(s.root, filename), nil
}

// Scan lists the media directory and splits it into conforming entries and rejections.
//
// Hidden files are skipped silently. Files without a tag delimiter are quarantined and
// logged rather than failing the scan.
func (s *Scanner) Scan(ctx context.Context) (*Catalog, error) {
	names, err := ListEntries(s.root)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{Root: s.root, Entries: make([]models.MediaEntry, 0, len(names))}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.HasPrefix(name, ".") {
			continue
		}

		entry, err := models.ParseFilename(name)
		if err != nil {
			s.logger.Warn("quarantined media file", "file", name, "error", err)
			cat.Rejected = append(cat.Rejected, Rejection{Filename: name, Reason: err.Error()})
			continue
		}
		cat.Entries = append(cat.Entries, entry)
	}

	s.logger.Debug("scan complete", "root", s.root, "entries", len(cat.Entries), "rejected", len(cat.Rejected))
	return cat, nil
}
