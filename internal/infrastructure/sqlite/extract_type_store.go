package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/log"
)

const extractTypeColumns = `uid, location, layout_id, delimiter, fully_qualified, split_by_size,
	storage_files, archive_type, extension, internal_name, naming_convention, example, observation, created_at`

// ExtractTypeStore implements domain.TabularStore on the extract_types table.
// A record's location is the path it was written to; ReadAll matches by prefix.
type ExtractTypeStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ domain.TabularStore = (*ExtractTypeStore)(nil)

func newExtractTypeStore(db *sql.DB) *ExtractTypeStore {
	return &ExtractTypeStore{db: db, now: time.Now}
}

func scanExtractType(scanner interface{ Scan(...any) error }) (*extractTypeModel, error) {
	var m extractTypeModel
	err := scanner.Scan(
		&m.UID, &m.Location, &m.LayoutID, &m.Delimiter, &m.FullyQualified, &m.SplitBySize,
		&m.StorageFiles, &m.ArchiveType, &m.Extension,
		&m.InternalName, &m.NamingConvention, &m.Example, &m.Observation, &m.CreatedAt,
	)
	return &m, err
}

// ReadAll returns every record stored at location or beneath it, oldest first.
func (s *ExtractTypeStore) ReadAll(ctx context.Context, location string) ([]*domain.ExtractType, error) {
	location = strings.TrimRight(location, "/")
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+extractTypeColumns+` FROM extract_types
		 WHERE location = ? OR location LIKE ? ESCAPE '\'
		 ORDER BY created_at, uid`,
		location, escapeLike(location)+"/%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query extract types: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.ExtractType
	for rows.Next() {
		m, err := scanExtractType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan extract type: %w", err)
		}
		records = append(records, m.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate extract types: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", location, domain.ErrNoData)
	}
	log.Debug(log.CatStore, "read extract types", "location", location, "count", len(records))
	return records, nil
}

// Write inserts records under location in a single transaction.
func (s *ExtractTypeStore) Write(ctx context.Context, records []*domain.ExtractType, location string) error {
	location = strings.TrimRight(location, "/")
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.now()
	for _, r := range records {
		m := toExtractTypeModel(r, location, now)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO extract_types (`+extractTypeColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.UID, m.Location, m.LayoutID, m.Delimiter, m.FullyQualified, m.SplitBySize,
			m.StorageFiles, m.ArchiveType, m.Extension,
			m.InternalName, m.NamingConvention, m.Example, m.Observation, m.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert extract type %s: %w", m.UID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit extract types: %w", err)
	}
	log.Debug(log.CatStore, "wrote extract types", "location", location, "count", len(records))
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
