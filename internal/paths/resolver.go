// Package paths resolves logical product names to storage locations.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidProduct is returned for empty product names or names that escape the root.
var ErrInvalidProduct = errors.New("invalid product name")

// ProductResolver maps a product name to <root>/<product>.
//
// Resolution rules:
//   - "~" or "~/..." roots are expanded to the user's home directory
//   - product names must be a single path element ("extract-types", not "a/b" or "..")
//   - if <root>/<product>/redirect exists, its trimmed content is followed
//     (relative targets are resolved against the product directory)
//
// The redirect lets a product be relocated without changing configuration,
// for example when moving records from a work area to production storage.
type ProductResolver struct {
	root string
}

// NewProductResolver creates a resolver rooted at root.
func NewProductResolver(root string) (*ProductResolver, error) {
	expanded, err := ExpandHome(root)
	if err != nil {
		return nil, err
	}
	if expanded == "" {
		return nil, fmt.Errorf("product root cannot be empty")
	}
	return &ProductResolver{root: filepath.Clean(expanded)}, nil
}

// Root returns the cleaned storage root.
func (r *ProductResolver) Root() string {
	return r.root
}

// ResolveBasePath returns the storage location for product.
func (r *ProductResolver) ResolveBasePath(product string) (string, error) {
	product = strings.TrimSpace(product)
	if product == "" || product == "." || product == ".." ||
		strings.ContainsAny(product, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidProduct, product)
	}
	return followRedirect(filepath.Join(r.root, product)), nil
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// followRedirect checks for a redirect file and follows it if present.
func followRedirect(dir string) string {
	content, err := os.ReadFile(filepath.Join(dir, "redirect")) //nolint:gosec // redirect path is within the product dir
	if err != nil {
		return dir
	}

	target := strings.TrimSpace(string(content))
	if target == "" {
		return dir
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Clean(filepath.Join(dir, target))
}
