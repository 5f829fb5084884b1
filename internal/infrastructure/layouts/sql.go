package layouts

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/log"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SQLConnection describes a relational layout catalog.
type SQLConnection struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// BuildDSN renders conn as a driver-specific connection string.
func BuildDSN(conn SQLConnection) (string, error) {
	switch conn.Driver {
	case DriverPostgres:
		port := conn.Port
		if port == 0 {
			port = 5432
		}
		sslMode := conn.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			conn.Host, port, conn.User, conn.Password, conn.Database, sslMode), nil
	case DriverMySQL:
		port := conn.Port
		if port == 0 {
			port = 3306
		}
		// Format: user:password@tcp(host:port)/dbname?parseTime=true
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
			conn.User, conn.Password, conn.Host, port, conn.Database)
		if conn.SSLMode == "require" {
			dsn += "&tls=true"
		}
		return dsn, nil
	default:
		return "", fmt.Errorf("unsupported sql driver %q", conn.Driver)
	}
}

// SQLChecker looks layouts up in a table: a layout exists when at least one row
// has column = layoutID.
type SQLChecker struct {
	db    *sql.DB
	query string
	owned bool
}

var _ domain.LayoutChecker = (*SQLChecker)(nil)

// OpenSQLChecker opens a pool for conn and checks table.column.
func OpenSQLChecker(conn SQLConnection, table, column string) (*SQLChecker, error) {
	dsn, err := BuildDSN(conn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(conn.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conn.Driver, err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(10 * time.Minute)

	checker, err := NewSQLChecker(db, conn.Driver, table, column)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	checker.owned = true
	log.Debug(log.CatLayout, "sql layout checker ready", "driver", conn.Driver, "host", conn.Host, "table", table)
	return checker, nil
}

// NewSQLChecker checks table.column on an existing pool. driver selects the placeholder style.
func NewSQLChecker(db *sql.DB, driver, table, column string) (*SQLChecker, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid layout table name %q", table)
	}
	if !identifierPattern.MatchString(column) {
		return nil, fmt.Errorf("invalid layout column name %q", column)
	}
	placeholder := "?"
	if driver == DriverPostgres {
		placeholder = "$1"
	}
	return &SQLChecker{
		db:    db,
		query: fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = %s", table, column, placeholder),
	}, nil
}

// LayoutExists implements domain.LayoutChecker.
func (c *SQLChecker) LayoutExists(ctx context.Context, layoutID string) error {
	var count int64
	if err := c.db.QueryRowContext(ctx, c.query, layoutID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count layouts: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("layout %s: %w", layoutID, domain.ErrLayoutNotFound)
	}
	return nil
}

// Ping verifies the connection within ten seconds.
func (c *SQLChecker) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return c.db.PingContext(ctx)
}

// Close releases the pool when the checker opened it.
func (c *SQLChecker) Close() error {
	if !c.owned {
		return nil
	}
	return c.db.Close()
}
