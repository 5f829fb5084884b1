// Package parquet stores extract types as directories of snappy-compressed parquet files.
package parquet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/log"
)

const (
	// PartFileName is the data file written into each record directory.
	PartFileName = "part-00000.snappy.parquet"
	// SuccessMarker is written after the data file is in place.
	SuccessMarker = "_SUCCESS"
)

// row is the on-disk schema, one column per attribute.
type row struct {
	ExtractTypeUID   string `parquet:"extract_type_uid,snappy"`
	LayoutID         string `parquet:"layout_id,snappy"`
	Delimiter        string `parquet:"delimiter,snappy,dict"`
	FullyQualified   string `parquet:"fully_qualified,snappy,dict"`
	SplitBySize      string `parquet:"split_by_size,snappy,dict"`
	StorageFiles     string `parquet:"storage_files,snappy,dict"`
	ArchiveType      string `parquet:"archive_type,snappy,dict"`
	Extension        string `parquet:"extension,snappy,dict"`
	InternalName     string `parquet:"internal_name,snappy"`
	NamingConvention string `parquet:"naming_convention,snappy"`
	Example          string `parquet:"example,snappy"`
	Observation      string `parquet:"observation,snappy"`
}

func toRow(e *domain.ExtractType) row {
	f := e.Fields()
	return row{
		ExtractTypeUID:   e.UID(),
		LayoutID:         f.LayoutID,
		Delimiter:        f.Delimiter,
		FullyQualified:   f.FullyQualified,
		SplitBySize:      f.SplitBySize,
		StorageFiles:     f.StorageFiles,
		ArchiveType:      f.ArchiveType,
		Extension:        f.Extension,
		InternalName:     f.InternalName,
		NamingConvention: f.NamingConvention,
		Example:          f.Example,
		Observation:      f.Observation,
	}
}

func (r row) toDomain() *domain.ExtractType {
	return domain.NewExtractType(r.ExtractTypeUID, domain.Fields{
		LayoutID:         r.LayoutID,
		Delimiter:        r.Delimiter,
		FullyQualified:   r.FullyQualified,
		SplitBySize:      r.SplitBySize,
		StorageFiles:     r.StorageFiles,
		ArchiveType:      r.ArchiveType,
		Extension:        r.Extension,
		InternalName:     r.InternalName,
		NamingConvention: r.NamingConvention,
		Example:          r.Example,
		Observation:      r.Observation,
	})
}

// Store implements domain.TabularStore on the local filesystem.
type Store struct{}

var _ domain.TabularStore = (*Store)(nil)

// NewStore creates a parquet store. Locations are filesystem paths.
func NewStore() *Store {
	return &Store{}
}

// ReadAll reads every parquet file at or below location.
// Files and directories whose names start with "_" or "." are skipped.
func (s *Store) ReadAll(ctx context.Context, location string) ([]*domain.ExtractType, error) {
	files, err := dataFiles(location)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", location, domain.ErrNoData)
	}

	var records []*domain.ExtractType
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := parquet.ReadFile[row](path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for _, r := range rows {
			records = append(records, r.toDomain())
		}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", location, domain.ErrNoData)
	}
	log.Debug(log.CatStore, "read parquet records", "location", location, "files", len(files), "count", len(records))
	return records, nil
}

// Write replaces the data file in location with records.
// The file is written to a temporary name and renamed into place.
func (s *Store) Write(ctx context.Context, records []*domain.ExtractType, location string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(location, 0750); err != nil {
		return fmt.Errorf("failed to create %s: %w", location, err)
	}

	tmp, err := os.CreateTemp(location, ".part-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	rows := make([]row, len(records))
	for i, r := range records {
		rows[i] = toRow(r)
	}

	w := parquet.NewGenericWriter[row](tmp)
	if _, err := w.Write(rows); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write rows: %w", err)
	}
	if err := w.Close(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync parquet file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close parquet file: %w", err)
	}

	final := filepath.Join(location, PartFileName)
	if err := os.Rename(tmpPath, final); err != nil {
		return fmt.Errorf("failed to move parquet file into place: %w", err)
	}
	if err := os.WriteFile(filepath.Join(location, SuccessMarker), nil, 0600); err != nil {
		return fmt.Errorf("failed to write success marker: %w", err)
	}

	log.Debug(log.CatStore, "wrote parquet records", "location", location, "count", len(records))
	return nil
}

func dataFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(name, ".parquet") {
			files = append(files, path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
