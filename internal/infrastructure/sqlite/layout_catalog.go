package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
)

// LayoutCatalog records which layouts exist in the extract_layouts table.
type LayoutCatalog struct {
	db  *sql.DB
	now func() time.Time
}

var _ domain.LayoutChecker = (*LayoutCatalog)(nil)

func newLayoutCatalog(db *sql.DB) *LayoutCatalog {
	return &LayoutCatalog{db: db, now: time.Now}
}

// LayoutExists returns an error wrapping domain.ErrLayoutNotFound if layoutID is not registered.
func (c *LayoutCatalog) LayoutExists(ctx context.Context, layoutID string) error {
	var found string
	err := c.db.QueryRowContext(ctx,
		`SELECT layout_id FROM extract_layouts WHERE layout_id = ?`, layoutID,
	).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("layout %s: %w", layoutID, domain.ErrLayoutNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to look up layout: %w", err)
	}
	return nil
}

// RegisterLayout adds layoutID to the catalog. Registering an existing id updates its description.
func (c *LayoutCatalog) RegisterLayout(ctx context.Context, layoutID, description string) error {
	layoutID = strings.TrimSpace(layoutID)
	if layoutID == "" {
		return errors.New("layout id is required")
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO extract_layouts (layout_id, description, registered_at) VALUES (?, ?, ?)
		 ON CONFLICT(layout_id) DO UPDATE SET description = excluded.description`,
		layoutID, description, c.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to register layout: %w", err)
	}
	return nil
}

// ListLayouts returns every registered layout id in ascending order.
func (c *LayoutCatalog) ListLayouts(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT layout_id FROM extract_layouts ORDER BY layout_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan layout: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
