package layouts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/log"
)

// PartitionPrefix names the directory holding a layout's data.
const PartitionPrefix = "extractlayoutid="

// errFound stops the directory walk at the first data file.
var errFound = errors.New("found")

// FilesystemChecker treats a layout as existing when
// <root>/extractlayoutid=<id>/ holds at least one data file.
type FilesystemChecker struct {
	root string
}

var _ domain.LayoutChecker = (*FilesystemChecker)(nil)

// NewFilesystemChecker creates a checker rooted at root.
func NewFilesystemChecker(root string) *FilesystemChecker {
	return &FilesystemChecker{root: root}
}

// LayoutDir returns the directory expected to hold layoutID.
func (c *FilesystemChecker) LayoutDir(layoutID string) string {
	return filepath.Join(c.root, PartitionPrefix+layoutID)
}

// LayoutExists implements domain.LayoutChecker.
func (c *FilesystemChecker) LayoutExists(ctx context.Context, layoutID string) error {
	if layoutID == "" || strings.ContainsAny(layoutID, `/\`) || layoutID == "." || layoutID == ".." {
		return fmt.Errorf("layout %q: %w", layoutID, domain.ErrLayoutNotFound)
	}

	dir := c.LayoutDir(layoutID)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := d.Name()
		if path != dir && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			return errFound
		}
		return nil
	})

	switch {
	case errors.Is(err, errFound):
		return nil
	case err == nil, errors.Is(err, fs.ErrNotExist):
		log.Debug(log.CatLayout, "layout directory missing or empty", "dir", dir)
		return fmt.Errorf("layout %s: %w", layoutID, domain.ErrLayoutNotFound)
	default:
		return fmt.Errorf("failed to read layout directory %s: %w", dir, err)
	}
}

// RegisterLayout creates the layout directory with a marker file so LayoutExists succeeds.
func (c *FilesystemChecker) RegisterLayout(ctx context.Context, layoutID, description string) error {
	if layoutID == "" || strings.ContainsAny(layoutID, `/\`) || layoutID == "." || layoutID == ".." {
		return fmt.Errorf("invalid layout id %q", layoutID)
	}
	dir := c.LayoutDir(layoutID)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "layout.txt"), []byte(description+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write layout marker: %w", err)
	}
	return nil
}
