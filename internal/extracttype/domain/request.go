package domain

// Ptr returns a pointer to v. It is a convenience for building requests and filters.
func Ptr[T any](v T) *T {
	return &v
}

// CreateRequest carries the attributes of a new extract type.
// A nil pointer means the caller did not supply the attribute; every pointer field is mandatory.
// The free-text fields are optional and default to the empty string.
type CreateRequest struct {
	LayoutID       *string
	Delimiter      *string
	FullyQualified *string
	SplitBySize    *string
	StorageFiles   *string
	ArchiveType    *string
	Extension      *string

	InternalName     string
	NamingConvention string
	Example          string
	Observation      string
}

// AttributeValue pairs an attribute with a possibly absent value.
type AttributeValue struct {
	Attribute Attribute
	Value     *string
}

// Values returns every attribute of the request in column order, including absent ones.
func (r CreateRequest) Values() []AttributeValue {
	return []AttributeValue{
		{AttrLayoutID, r.LayoutID},
		{AttrDelimiter, r.Delimiter},
		{AttrFullyQualified, r.FullyQualified},
		{AttrSplitBySize, r.SplitBySize},
		{AttrStorageFiles, r.StorageFiles},
		{AttrArchiveType, r.ArchiveType},
		{AttrExtension, r.Extension},
		{AttrInternalName, &r.InternalName},
		{AttrNamingConvention, &r.NamingConvention},
		{AttrExample, &r.Example},
		{AttrObservation, &r.Observation},
	}
}

// Fields returns the request as record attributes. Absent values become empty strings,
// so callers must validate first.
func (r CreateRequest) Fields() Fields {
	return Fields{
		LayoutID:         deref(r.LayoutID),
		Delimiter:        deref(r.Delimiter),
		FullyQualified:   deref(r.FullyQualified),
		SplitBySize:      deref(r.SplitBySize),
		StorageFiles:     deref(r.StorageFiles),
		ArchiveType:      deref(r.ArchiveType),
		Extension:        deref(r.Extension),
		InternalName:     r.InternalName,
		NamingConvention: r.NamingConvention,
		Example:          r.Example,
		Observation:      r.Observation,
	}
}

// FilterValue is a supplied equality filter.
type FilterValue struct {
	Attribute Attribute
	Value     string
}

// QueryFilter selects extract types by attribute equality. Nil fields are wildcards.
type QueryFilter struct {
	LayoutID         *string
	Delimiter        *string
	FullyQualified   *string
	SplitBySize      *string
	StorageFiles     *string
	ArchiveType      *string
	Extension        *string
	InternalName     *string
	NamingConvention *string
	Example          *string
	Observation      *string
}

// Set assigns value to the filter field for attr. It reports false for unknown attributes.
func (q *QueryFilter) Set(attr Attribute, value string) bool {
	v := &value
	switch attr {
	case AttrLayoutID:
		q.LayoutID = v
	case AttrDelimiter:
		q.Delimiter = v
	case AttrFullyQualified:
		q.FullyQualified = v
	case AttrSplitBySize:
		q.SplitBySize = v
	case AttrStorageFiles:
		q.StorageFiles = v
	case AttrArchiveType:
		q.ArchiveType = v
	case AttrExtension:
		q.Extension = v
	case AttrInternalName:
		q.InternalName = v
	case AttrNamingConvention:
		q.NamingConvention = v
	case AttrExample:
		q.Example = v
	case AttrObservation:
		q.Observation = v
	default:
		return false
	}
	return true
}

// Supplied returns only the attributes the caller set, in column order.
func (q QueryFilter) Supplied() []FilterValue {
	all := []AttributeValue{
		{AttrLayoutID, q.LayoutID},
		{AttrDelimiter, q.Delimiter},
		{AttrFullyQualified, q.FullyQualified},
		{AttrSplitBySize, q.SplitBySize},
		{AttrStorageFiles, q.StorageFiles},
		{AttrArchiveType, q.ArchiveType},
		{AttrExtension, q.Extension},
		{AttrInternalName, q.InternalName},
		{AttrNamingConvention, q.NamingConvention},
		{AttrExample, q.Example},
		{AttrObservation, q.Observation},
	}
	var supplied []FilterValue
	for _, av := range all {
		if av.Value != nil {
			supplied = append(supplied, FilterValue{Attribute: av.Attribute, Value: *av.Value})
		}
	}
	return supplied
}

// FilterFromFields returns a filter matching every attribute of f exactly.
func FilterFromFields(f Fields) QueryFilter {
	var q QueryFilter
	for _, attr := range Attributes() {
		v, _ := f.Get(attr)
		q.Set(attr, v)
	}
	return q
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
