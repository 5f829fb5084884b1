package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateRequest_Values(t *testing.T) {
	req := validRequest()
	req.Extension = nil

	values := req.Values()
	require.Len(t, values, len(Attributes()))
	for i, attr := range Attributes() {
		require.Equal(t, attr, values[i].Attribute)
	}
	require.Nil(t, values[6].Value, "extension was not supplied")
	require.NotNil(t, values[10].Value, "free-text fields default to empty strings")
	require.Equal(t, "", *values[10].Value)
}

func TestQueryFilter_Supplied(t *testing.T) {
	var q QueryFilter
	require.Empty(t, q.Supplied())

	require.True(t, q.Set(AttrExtension, ExtensionCSV))
	require.True(t, q.Set(AttrLayoutID, "42"))
	require.True(t, q.Set(AttrObservation, ""))
	require.False(t, q.Set(Attribute("colour"), "red"))

	require.Equal(t, []FilterValue{
		{AttrLayoutID, "42"},
		{AttrExtension, ExtensionCSV},
		{AttrObservation, ""},
	}, q.Supplied(), "supplied filters come back in column order")
}

func TestFilterFromFields_MatchesOnlyItself(t *testing.T) {
	a := NewExtractType("a", validRequest().Fields())
	otherFields := validRequest().Fields()
	otherFields.Example = "different"
	b := NewExtractType("b", otherFields)

	filter := FilterFromFields(a.Fields()).Supplied()
	require.Len(t, filter, 11)
	require.True(t, a.Matches(filter))
	require.False(t, b.Matches(filter))
}

func TestExtractType_Accessors(t *testing.T) {
	e := NewExtractType("uid", validRequest().Fields())

	require.Equal(t, "uid", e.UID())
	require.Equal(t, "42", e.LayoutID())
	require.Equal(t, DelimiterComma, e.Delimiter())
	require.Equal(t, FullyQualifiedDoubleQuote, e.FullyQualified())
	require.Equal(t, SplitBySize4GB, e.SplitBySize())
	require.Equal(t, StorageFilesYes, e.StorageFiles())
	require.Equal(t, ArchiveZip, e.ArchiveType())
	require.Equal(t, ExtensionCSV, e.Extension())
	require.Equal(t, "monthly", e.InternalName())
	require.Empty(t, e.NamingConvention())
	require.Empty(t, e.Example())
	require.Empty(t, e.Observation())

	_, ok := e.Get(Attribute("colour"))
	require.False(t, ok)
	require.False(t, e.Matches([]FilterValue{{Attribute("colour"), ""}}))
}
