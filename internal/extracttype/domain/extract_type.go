package domain

// Fields holds every attribute of an extract type except its identifier.
// Fields is comparable: two extract types with equal Fields are semantic duplicates.
type Fields struct {
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
}

// Get returns the value of attr. The second result is false for unknown attributes.
func (f Fields) Get(attr Attribute) (string, bool) {
	switch attr {
	case AttrLayoutID:
		return f.LayoutID, true
	case AttrDelimiter:
		return f.Delimiter, true
	case AttrFullyQualified:
		return f.FullyQualified, true
	case AttrSplitBySize:
		return f.SplitBySize, true
	case AttrStorageFiles:
		return f.StorageFiles, true
	case AttrArchiveType:
		return f.ArchiveType, true
	case AttrExtension:
		return f.Extension, true
	case AttrInternalName:
		return f.InternalName, true
	case AttrNamingConvention:
		return f.NamingConvention, true
	case AttrExample:
		return f.Example, true
	case AttrObservation:
		return f.Observation, true
	default:
		return "", false
	}
}

// ExtractType is a persisted, immutable extract type definition.
type ExtractType struct {
	uid    string
	fields Fields
}

// NewExtractType creates an extract type with the given identifier and attributes.
// It is used both when assembling a new record and when reconstituting a stored one.
func NewExtractType(uid string, fields Fields) *ExtractType {
	return &ExtractType{uid: uid, fields: fields}
}

// UID returns the generated identifier.
func (e *ExtractType) UID() string {
	return e.uid
}

// Fields returns all attributes except the identifier.
func (e *ExtractType) Fields() Fields {
	return e.fields
}

// Get returns the value of attr.
func (e *ExtractType) Get(attr Attribute) (string, bool) {
	return e.fields.Get(attr)
}

// LayoutID returns the referenced layout identifier.
func (e *ExtractType) LayoutID() string { return e.fields.LayoutID }

// Delimiter returns the field delimiter.
func (e *ExtractType) Delimiter() string { return e.fields.Delimiter }

// FullyQualified returns the quoting character, empty for none.
func (e *ExtractType) FullyQualified() string { return e.fields.FullyQualified }

// SplitBySize returns the split policy.
func (e *ExtractType) SplitBySize() string { return e.fields.SplitBySize }

// StorageFiles returns whether storage files are produced.
func (e *ExtractType) StorageFiles() string { return e.fields.StorageFiles }

// ArchiveType returns the archive format.
func (e *ExtractType) ArchiveType() string { return e.fields.ArchiveType }

// Extension returns the output file extension.
func (e *ExtractType) Extension() string { return e.fields.Extension }

// InternalName returns the optional internal name.
func (e *ExtractType) InternalName() string { return e.fields.InternalName }

// NamingConvention returns the optional naming convention note.
func (e *ExtractType) NamingConvention() string { return e.fields.NamingConvention }

// Example returns the optional example.
func (e *ExtractType) Example() string { return e.fields.Example }

// Observation returns the optional observation.
func (e *ExtractType) Observation() string { return e.fields.Observation }

// Matches reports whether every supplied filter value equals the record's value.
func (e *ExtractType) Matches(filters []FilterValue) bool {
	for _, f := range filters {
		v, ok := e.Get(f.Attribute)
		if !ok || v != f.Value {
			return false
		}
	}
	return true
}
