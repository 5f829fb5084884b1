package testutil

import "github.com/bigdbm/extractreg/internal/extracttype/domain"

// DefaultLayoutID is the layout referenced by NewRequest unless overridden.
const DefaultLayoutID = "1001"

// NewRequest returns a valid create request (tab separated, one .tsv file)
// with opts applied on top.
func NewRequest(opts ...RequestOption) domain.CreateRequest {
	req := domain.CreateRequest{
		LayoutID:       domain.Ptr(DefaultLayoutID),
		Delimiter:      domain.Ptr(domain.DelimiterTab),
		FullyQualified: domain.Ptr(domain.FullyQualifiedNone),
		SplitBySize:    domain.Ptr(domain.SplitByOneFile),
		StorageFiles:   domain.Ptr(domain.StorageFilesNo),
		ArchiveType:    domain.Ptr(domain.ArchiveNone),
		Extension:      domain.Ptr(domain.ExtensionTSV),
	}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}
