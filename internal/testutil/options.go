// Package testutil provides request builders and in-memory collaborators for registry tests.
package testutil

import "github.com/bigdbm/extractreg/internal/extracttype/domain"

// RequestOption configures a CreateRequest built by NewRequest.
type RequestOption func(*domain.CreateRequest)

// LayoutID sets layout_id.
func LayoutID(id string) RequestOption {
	return func(r *domain.CreateRequest) { r.LayoutID = domain.Ptr(id) }
}

// Delimiter sets delimiter.
func Delimiter(v string) RequestOption {
	return func(r *domain.CreateRequest) { r.Delimiter = domain.Ptr(v) }
}

// FullyQualified sets fully_qualified.
func FullyQualified(v string) RequestOption {
	return func(r *domain.CreateRequest) { r.FullyQualified = domain.Ptr(v) }
}

// SplitBySize sets split_by_size.
func SplitBySize(v string) RequestOption {
	return func(r *domain.CreateRequest) { r.SplitBySize = domain.Ptr(v) }
}

// StorageFiles sets storage_files.
func StorageFiles(v string) RequestOption {
	return func(r *domain.CreateRequest) { r.StorageFiles = domain.Ptr(v) }
}

// ArchiveType sets archive_type.
func ArchiveType(v string) RequestOption {
	return func(r *domain.CreateRequest) { r.ArchiveType = domain.Ptr(v) }
}

// Extension sets extension.
func Extension(v string) RequestOption {
	return func(r *domain.CreateRequest) { r.Extension = domain.Ptr(v) }
}

// InternalName sets internal_name.
func InternalName(v string) RequestOption {
	return func(r *domain.CreateRequest) { r.InternalName = v }
}

// NamingConvention sets naming_convention.
func NamingConvention(v string) RequestOption {
	return func(r *domain.CreateRequest) { r.NamingConvention = v }
}

// Example sets example.
func Example(v string) RequestOption {
	return func(r *domain.CreateRequest) { r.Example = v }
}

// Observation sets observation.
func Observation(v string) RequestOption {
	return func(r *domain.CreateRequest) { r.Observation = v }
}

// Without clears a mandatory attribute so the request is missing it.
func Without(attr domain.Attribute) RequestOption {
	return func(r *domain.CreateRequest) {
		switch attr {
		case domain.AttrLayoutID:
			r.LayoutID = nil
		case domain.AttrDelimiter:
			r.Delimiter = nil
		case domain.AttrFullyQualified:
			r.FullyQualified = nil
		case domain.AttrSplitBySize:
			r.SplitBySize = nil
		case domain.AttrStorageFiles:
			r.StorageFiles = nil
		case domain.AttrArchiveType:
			r.ArchiveType = nil
		case domain.AttrExtension:
			r.Extension = nil
		}
	}
}
