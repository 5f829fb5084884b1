package domain

import "context"

// PathResolver maps a logical product name to the storage root of its records.
type PathResolver interface {
	ResolveBasePath(product string) (string, error)
}

// LayoutChecker verifies that a layout definition exists.
// Implementations return an error wrapping ErrLayoutNotFound when it does not.
type LayoutChecker interface {
	LayoutExists(ctx context.Context, layoutID string) error
}

// TabularStore reads and writes extract type records under a location.
type TabularStore interface {
	// ReadAll returns every record stored at or below location.
	// Returns an error wrapping ErrNoData if the location holds no records.
	ReadAll(ctx context.Context, location string) ([]*ExtractType, error)

	// Write persists records at location in a single call.
	Write(ctx context.Context, records []*ExtractType, location string) error
}
