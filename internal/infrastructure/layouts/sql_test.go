package layouts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/testutil"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name    string
		conn    SQLConnection
		want    string
		wantErr bool
	}{
		{
			name: "postgres defaults",
			conn: SQLConnection{Driver: DriverPostgres, Host: "db", User: "etl", Password: "pw", Database: "catalog"},
			want: "host=db port=5432 user=etl password=pw dbname=catalog sslmode=disable",
		},
		{
			name: "postgres explicit",
			conn: SQLConnection{Driver: DriverPostgres, Host: "db", Port: 6432, User: "etl", Password: "pw", Database: "catalog", SSLMode: "require"},
			want: "host=db port=6432 user=etl password=pw dbname=catalog sslmode=require",
		},
		{
			name: "mysql defaults",
			conn: SQLConnection{Driver: DriverMySQL, Host: "db", User: "etl", Password: "pw", Database: "catalog"},
			want: "etl:pw@tcp(db:3306)/catalog?parseTime=true&charset=utf8mb4",
		},
		{
			name: "mysql tls",
			conn: SQLConnection{Driver: DriverMySQL, Host: "db", Port: 3307, User: "etl", Password: "pw", Database: "catalog", SSLMode: "require"},
			want: "etl:pw@tcp(db:3307)/catalog?parseTime=true&charset=utf8mb4&tls=true",
		},
		{
			name:    "unsupported",
			conn:    SQLConnection{Driver: "oracle"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildDSN(tt.conn)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewSQLChecker_Placeholders(t *testing.T) {
	pg, err := NewSQLChecker(nil, DriverPostgres, "catalog.layouts", "layout_id")
	require.NoError(t, err)
	require.Equal(t, "SELECT COUNT(*) FROM catalog.layouts WHERE layout_id = $1", pg.query)

	my, err := NewSQLChecker(nil, DriverMySQL, "layouts", "id")
	require.NoError(t, err)
	require.Equal(t, "SELECT COUNT(*) FROM layouts WHERE id = ?", my.query)
}

func TestNewSQLChecker_RejectsUnsafeIdentifiers(t *testing.T) {
	_, err := NewSQLChecker(nil, DriverMySQL, "layouts; DROP TABLE x", "layout_id")
	require.Error(t, err)
	_, err = NewSQLChecker(nil, DriverMySQL, "layouts", "id OR 1=1")
	require.Error(t, err)
}

func TestSQLChecker_LayoutExists(t *testing.T) {
	db := testutil.NewLayoutDB(t, "42", "42", "7")

	checker, err := NewSQLChecker(db, "sqlite3", "layouts", "layout_id")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, checker.LayoutExists(ctx, "42"))
	require.NoError(t, checker.LayoutExists(ctx, "7"))
	require.ErrorIs(t, checker.LayoutExists(ctx, "8"), domain.ErrLayoutNotFound)
	require.NoError(t, checker.Ping(ctx))
	require.NoError(t, checker.Close(), "a borrowed pool is not closed")
	require.NoError(t, db.Ping())
}

func TestSQLChecker_QueryErrorIsNotNotFound(t *testing.T) {
	db := testutil.NewLayoutDB(t)

	checker, err := NewSQLChecker(db, "sqlite3", "missing_table", "layout_id")
	require.NoError(t, err)

	err = checker.LayoutExists(context.Background(), "42")
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrLayoutNotFound)
}
