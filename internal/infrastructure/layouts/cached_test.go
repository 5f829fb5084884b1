package layouts

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
)

type countingChecker struct {
	calls  map[string]int
	exists map[string]bool
	err    error
}

func newCountingChecker(ids ...string) *countingChecker {
	c := &countingChecker{calls: map[string]int{}, exists: map[string]bool{}}
	for _, id := range ids {
		c.exists[id] = true
	}
	return c
}

func (c *countingChecker) LayoutExists(ctx context.Context, layoutID string) error {
	c.calls[layoutID]++
	if c.err != nil {
		return c.err
	}
	if !c.exists[layoutID] {
		return fmt.Errorf("layout %s: %w", layoutID, domain.ErrLayoutNotFound)
	}
	return nil
}

func TestCachedChecker_HitsBackendOncePerID(t *testing.T) {
	inner := newCountingChecker("42", "7")
	checker := NewCachedChecker(inner, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, checker.LayoutExists(ctx, "42"))
	}
	require.NoError(t, checker.LayoutExists(ctx, "7"))

	require.Equal(t, 1, inner.calls["42"])
	require.Equal(t, 1, inner.calls["7"])
}

func TestCachedChecker_MissesAreNotCached(t *testing.T) {
	inner := newCountingChecker()
	checker := NewCachedChecker(inner, time.Minute)
	ctx := context.Background()

	require.ErrorIs(t, checker.LayoutExists(ctx, "42"), domain.ErrLayoutNotFound)
	require.ErrorIs(t, checker.LayoutExists(ctx, "42"), domain.ErrLayoutNotFound)
	require.Equal(t, 2, inner.calls["42"])

	inner.exists["42"] = true
	require.NoError(t, checker.LayoutExists(ctx, "42"))
}

func TestCachedChecker_BackendErrorsPassThrough(t *testing.T) {
	boom := errors.New("connection refused")
	inner := newCountingChecker("42")
	inner.err = boom
	checker := NewCachedChecker(inner, time.Minute)

	require.ErrorIs(t, checker.LayoutExists(context.Background(), "42"), boom)
}

func TestCachedChecker_ZeroTTLDisablesCache(t *testing.T) {
	inner := newCountingChecker("42")
	checker := NewCachedChecker(inner, 0)
	ctx := context.Background()

	require.NoError(t, checker.LayoutExists(ctx, "42"))
	require.NoError(t, checker.LayoutExists(ctx, "42"))
	require.Equal(t, 2, inner.calls["42"])
}

func TestCachedChecker_Forget(t *testing.T) {
	inner := newCountingChecker("42")
	checker := NewCachedChecker(inner, time.Minute)
	ctx := context.Background()

	require.NoError(t, checker.LayoutExists(ctx, "42"))
	require.NoError(t, checker.Forget(ctx, "42"))
	require.NoError(t, checker.LayoutExists(ctx, "42"))
	require.Equal(t, 2, inner.calls["42"])
}
