package testutil

import "github.com/bigdbm/extractreg/internal/extracttype/domain"

// StandardRequests returns four distinct valid requests across two layouts.
func StandardRequests() []domain.CreateRequest {
	return []domain.CreateRequest{
		NewRequest(InternalName("daily tsv")),
		NewRequest(
			Delimiter(domain.DelimiterComma), Extension(domain.ExtensionCSV),
			FullyQualified(domain.FullyQualifiedDoubleQuote), ArchiveType(domain.ArchiveGz),
			InternalName("daily csv gz"),
		),
		NewRequest(
			LayoutID("2002"), Delimiter(domain.DelimiterVerticalBar), Extension(domain.ExtensionPSV),
			SplitBySize(domain.SplitBySize250MB), StorageFiles(domain.StorageFilesYes),
		),
		NewRequest(
			LayoutID("2002"), Delimiter(domain.DelimiterParquet), Extension(domain.ExtensionSnappyParquet),
			SplitBySize(domain.SplitBy500Files), ArchiveType(domain.ArchiveZip),
			Observation("columnar"),
		),
	}
}

// StandardLayouts returns the layout ids referenced by StandardRequests.
func StandardLayouts() []string {
	return []string{DefaultLayoutID, "2002"}
}
