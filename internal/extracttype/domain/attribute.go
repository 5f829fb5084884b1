package domain

// Attribute names a configurable column of an extract type.
// The string value is the persisted column name.
type Attribute string

const (
	AttrLayoutID         Attribute = "layout_id"
	AttrDelimiter        Attribute = "delimiter"
	AttrFullyQualified   Attribute = "fully_qualified"
	AttrSplitBySize      Attribute = "split_by_size"
	AttrStorageFiles     Attribute = "storage_files"
	AttrArchiveType      Attribute = "archive_type"
	AttrExtension        Attribute = "extension"
	AttrInternalName     Attribute = "internal_name"
	AttrNamingConvention Attribute = "naming_convention"
	AttrExample          Attribute = "example"
	AttrObservation      Attribute = "observation"
)

// AttrUID is the identifier column. It is not an Attribute callers can set or filter on.
const AttrUID = "extract_type_uid"

// Attributes returns every settable attribute in column order.
func Attributes() []Attribute {
	return []Attribute{
		AttrLayoutID,
		AttrDelimiter,
		AttrFullyQualified,
		AttrSplitBySize,
		AttrStorageFiles,
		AttrArchiveType,
		AttrExtension,
		AttrInternalName,
		AttrNamingConvention,
		AttrExample,
		AttrObservation,
	}
}

// IsFreeText reports whether the attribute is an optional human-readable field.
func (a Attribute) IsFreeText() bool {
	switch a {
	case AttrInternalName, AttrNamingConvention, AttrExample, AttrObservation:
		return true
	default:
		return false
	}
}

// IsValid reports whether a is a known attribute.
func (a Attribute) IsValid() bool {
	for _, known := range Attributes() {
		if a == known {
			return true
		}
	}
	return false
}

func (a Attribute) String() string {
	return string(a)
}
