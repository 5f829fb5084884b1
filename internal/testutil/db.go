package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"
)

// LayoutSchema is a minimal external layout catalog.
const LayoutSchema = `
CREATE TABLE layouts (
	layout_id TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT ''
);
`

// NewLayoutDB creates a file-backed SQLite database holding a layouts table
// with one row per id. The database is closed when the test finishes.
func NewLayoutDB(t *testing.T, ids ...string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "layouts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(LayoutSchema)
	require.NoError(t, err)
	for _, id := range ids {
		_, err = db.Exec(`INSERT INTO layouts (layout_id) VALUES (?)`, id)
		require.NoError(t, err)
	}
	return db
}
