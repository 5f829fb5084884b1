package sqlite

import (
	"time"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
)

// extractTypeModel represents a row of the extract_types table.
type extractTypeModel struct {
	UID              string
	Location         string
	LayoutID         string
	Delimiter        string
	FullyQualified   string
	SplitBySize      string
	StorageFiles     string
	ArchiveType      string
	Extension        string
	InternalName     string
	NamingConvention string
	Example          string
	Observation      string
	CreatedAt        int64 // Unix timestamp
}

func toExtractTypeModel(e *domain.ExtractType, location string, now time.Time) *extractTypeModel {
	f := e.Fields()
	return &extractTypeModel{
		UID:              e.UID(),
		Location:         location,
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
		CreatedAt:        now.Unix(),
	}
}

func (m *extractTypeModel) toDomain() *domain.ExtractType {
	return domain.NewExtractType(m.UID, domain.Fields{
		LayoutID:         m.LayoutID,
		Delimiter:        m.Delimiter,
		FullyQualified:   m.FullyQualified,
		SplitBySize:      m.SplitBySize,
		StorageFiles:     m.StorageFiles,
		ArchiveType:      m.ArchiveType,
		Extension:        m.Extension,
		InternalName:     m.InternalName,
		NamingConvention: m.NamingConvention,
		Example:          m.Example,
		Observation:      m.Observation,
	})
}
