package domain

// Delimiter values.
const (
	DelimiterVerticalBar = "vertical bar sep"
	DelimiterTab         = "tab sep"
	DelimiterComma       = "comma sep"
	DelimiterParquet     = "parquet"
)

// Fully-qualified values. An empty string means fields are not quoted.
const (
	FullyQualifiedNone        = ""
	FullyQualifiedDoubleQuote = `"`
)

// Split-by-size values.
const (
	SplitBySize250MB = "250MB"
	SplitByOneFile   = "One file"
	SplitBy500Files  = "500 files"
	SplitBySize3GB   = "3GB"
	SplitBySize4GB   = "4GB"
)

// Storage-files values.
const (
	StorageFilesYes = "yes"
	StorageFilesNo  = "no"
)

// Archive-type values.
const (
	ArchiveNone = "no"
	ArchiveZip  = "zip"
	ArchiveGz   = "gz"
)

// Extension values.
const (
	ExtensionTSV           = "tsv"
	ExtensionPSV           = "psv"
	ExtensionCSV           = "csv"
	ExtensionSnappyParquet = "snappy.parquet"
)

// Vocabulary maps each enum-bearing attribute to its closed set of allowed values.
// Attributes absent from the vocabulary (layout_id and the free-text fields) are unconstrained.
type Vocabulary struct {
	values map[Attribute][]string
}

// DefaultVocabulary returns the fixed vocabulary used by the registry.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		values: map[Attribute][]string{
			AttrDelimiter:      {DelimiterVerticalBar, DelimiterTab, DelimiterComma, DelimiterParquet},
			AttrFullyQualified: {FullyQualifiedNone, FullyQualifiedDoubleQuote},
			AttrSplitBySize:    {SplitBySize250MB, SplitByOneFile, SplitBy500Files, SplitBySize3GB, SplitBySize4GB},
			AttrStorageFiles:   {StorageFilesYes, StorageFilesNo},
			AttrArchiveType:    {ArchiveNone, ArchiveZip, ArchiveGz},
			AttrExtension:      {ExtensionTSV, ExtensionPSV, ExtensionCSV, ExtensionSnappyParquet},
		},
	}
}

// Allowed returns a copy of the allowed values for attr.
// The second result is false when attr is not governed by the vocabulary.
func (v *Vocabulary) Allowed(attr Attribute) ([]string, bool) {
	values, ok := v.values[attr]
	if !ok {
		return nil, false
	}
	out := make([]string, len(values))
	copy(out, values)
	return out, true
}

// Contains reports whether value is allowed for attr.
// Attributes outside the vocabulary accept any value.
func (v *Vocabulary) Contains(attr Attribute, value string) bool {
	values, ok := v.values[attr]
	if !ok {
		return true
	}
	for _, allowed := range values {
		if value == allowed {
			return true
		}
	}
	return false
}

// Attributes returns the enum-bearing attributes in column order.
func (v *Vocabulary) Attributes() []Attribute {
	var attrs []Attribute
	for _, a := range Attributes() {
		if _, ok := v.values[a]; ok {
			attrs = append(attrs, a)
		}
	}
	return attrs
}
