package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
)

func TestMemoryStore_PrefixRead(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.ReadAll(ctx, "/base")
	require.ErrorIs(t, err, domain.ErrNoData)

	rec := domain.NewExtractType("a", NewRequest().Fields())
	require.NoError(t, store.Write(ctx, []*domain.ExtractType{rec}, "/base/a"))
	require.NoError(t, store.Write(ctx, []*domain.ExtractType{rec}, "/base-other/a"))

	got, err := store.ReadAll(ctx, "/base/")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 2, store.Len())
	require.Equal(t, []string{"/base-other/a", "/base/a"}, store.Locations())
	require.Equal(t, 2, store.Reads())
	require.Equal(t, 2, store.Writes())
}

func TestStaticLayouts(t *testing.T) {
	layouts := NewStaticLayouts("1")
	ctx := context.Background()

	require.NoError(t, layouts.LayoutExists(ctx, "1"))
	require.ErrorIs(t, layouts.LayoutExists(ctx, "2"), domain.ErrLayoutNotFound)
	layouts.Add("2")
	require.NoError(t, layouts.LayoutExists(ctx, "2"))
	require.Equal(t, 3, layouts.Calls())
}

func TestNewRequest_Options(t *testing.T) {
	req := NewRequest(LayoutID("9"), Without(domain.AttrExtension), Example("x"))
	require.Equal(t, "9", *req.LayoutID)
	require.Nil(t, req.Extension)
	require.Equal(t, "x", req.Example)
}

func TestNewLayoutDB(t *testing.T) {
	db := NewLayoutDB(t, "1", "2")
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM layouts`).Scan(&count))
	require.Equal(t, 2, count)
}
