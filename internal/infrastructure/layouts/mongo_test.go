package layouts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMongoOptions_WithDefaults(t *testing.T) {
	got, err := MongoOptions{URI: "mongodb://localhost:27017", Database: "catalog"}.withDefaults()
	require.NoError(t, err)
	require.Equal(t, "layouts", got.Collection)
	require.Equal(t, "layout_id", got.Field)

	got, err = MongoOptions{URI: "mongodb+srv://cluster.example.net", Database: "catalog", Collection: "defs", Field: "id"}.withDefaults()
	require.NoError(t, err)
	require.Equal(t, "defs", got.Collection)
	require.Equal(t, "id", got.Field)
}

func TestMongoOptions_Invalid(t *testing.T) {
	_, err := MongoOptions{URI: "http://localhost", Database: "catalog"}.withDefaults()
	require.Error(t, err)

	_, err = MongoOptions{URI: "mongodb://localhost"}.withDefaults()
	require.Error(t, err)

	_, err = NewMongoChecker(MongoOptions{})
	require.Error(t, err)
}
