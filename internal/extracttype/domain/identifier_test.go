package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUIDGenerator_Format(t *testing.T) {
	fixed := uuid.MustParse("3f1c7a52-8d0e-4b8a-9a43-2f7f5d0e9b11")
	now := time.Unix(1718030000, 123456789)

	g := NewUIDGeneratorWith(func() time.Time { return now }, func() uuid.UUID { return fixed })
	require.Equal(t, "3f1c7a52-8d0e-4b8a-9a43-2f7f5d0e9b11_1718030000.123456", g.Next())
}

func TestUIDGenerator_PadsMicroseconds(t *testing.T) {
	fixed := uuid.MustParse("00000000-0000-4000-8000-000000000000")
	now := time.Unix(1700000000, 42000)

	g := NewUIDGeneratorWith(func() time.Time { return now }, func() uuid.UUID { return fixed })
	require.Equal(t, "00000000-0000-4000-8000-000000000000_1700000000.000042", g.Next())
}

func TestUIDGenerator_Default(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}_\d+\.\d{6}$`)
	g := NewUIDGenerator()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		uid := g.Next()
		require.Regexp(t, pattern, uid)
		require.False(t, seen[uid], "uid repeated: %s", uid)
		seen[uid] = true
	}
}
