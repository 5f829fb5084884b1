package domain

import (
	"context"
	"fmt"
)

type layoutSet map[string]bool

func (l layoutSet) LayoutExists(ctx context.Context, layoutID string) error {
	if !l[layoutID] {
		return fmt.Errorf("layout %s: %w", layoutID, ErrLayoutNotFound)
	}
	return nil
}

func validRequest() CreateRequest {
	return CreateRequest{
		LayoutID:       Ptr("42"),
		Delimiter:      Ptr(DelimiterComma),
		FullyQualified: Ptr(FullyQualifiedDoubleQuote),
		SplitBySize:    Ptr(SplitBySize4GB),
		StorageFiles:   Ptr(StorageFilesYes),
		ArchiveType:    Ptr(ArchiveZip),
		Extension:      Ptr(ExtensionCSV),
		InternalName:   "monthly",
	}
}
