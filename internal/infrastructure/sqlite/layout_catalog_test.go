package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
)

func TestLayoutCatalog_LayoutExists(t *testing.T) {
	catalog := setupTestDB(t).LayoutCatalog()
	ctx := context.Background()

	err := catalog.LayoutExists(ctx, "42")
	require.ErrorIs(t, err, domain.ErrLayoutNotFound)

	require.NoError(t, catalog.RegisterLayout(ctx, "42", "sales layout"))
	require.NoError(t, catalog.LayoutExists(ctx, "42"))
}

func TestLayoutCatalog_RegisterIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	catalog := db.LayoutCatalog()
	ctx := context.Background()

	require.NoError(t, catalog.RegisterLayout(ctx, " 7 ", "first"))
	require.NoError(t, catalog.RegisterLayout(ctx, "7", "second"))

	ids, err := catalog.ListLayouts(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"7"}, ids)

	var description string
	require.NoError(t, db.conn.QueryRow(
		"SELECT description FROM extract_layouts WHERE layout_id = ?", "7",
	).Scan(&description))
	require.Equal(t, "second", description)
}

func TestLayoutCatalog_RegisterRejectsEmpty(t *testing.T) {
	catalog := setupTestDB(t).LayoutCatalog()
	require.Error(t, catalog.RegisterLayout(context.Background(), "  ", ""))
}
