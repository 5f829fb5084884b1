package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
)

// MemoryStore is an in-memory domain.TabularStore. Records are grouped by the
// location they were written to; ReadAll matches locations by path prefix.
type MemoryStore struct {
	mu       sync.Mutex
	byLoc    map[string][]*domain.ExtractType
	order    []string
	reads    int
	writes   int
	ReadErr  error
	WriteErr error
}

var _ domain.TabularStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byLoc: map[string][]*domain.ExtractType{}}
}

// ReadAll implements domain.TabularStore.
func (s *MemoryStore) ReadAll(ctx context.Context, location string) ([]*domain.ExtractType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}

	location = strings.TrimRight(location, "/")
	var out []*domain.ExtractType
	for _, loc := range s.order {
		if loc == location || strings.HasPrefix(loc, location+"/") {
			out = append(out, s.byLoc[loc]...)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", location, domain.ErrNoData)
	}
	return out, nil
}

// Write implements domain.TabularStore. Writing to an existing location replaces it.
func (s *MemoryStore) Write(ctx context.Context, records []*domain.ExtractType, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.WriteErr != nil {
		return s.WriteErr
	}

	location = strings.TrimRight(location, "/")
	if _, ok := s.byLoc[location]; !ok {
		s.order = append(s.order, location)
	}
	s.byLoc[location] = append([]*domain.ExtractType(nil), records...)
	return nil
}

// Reads returns the number of ReadAll calls.
func (s *MemoryStore) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// Writes returns the number of Write calls.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Locations returns every written location in sorted order.
func (s *MemoryStore) Locations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	locs := append([]string(nil), s.order...)
	sort.Strings(locs)
	return locs
}

// Len returns the total number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, recs := range s.byLoc {
		n += len(recs)
	}
	return n
}

// StaticLayouts is a domain.LayoutChecker over a fixed set of ids.
type StaticLayouts struct {
	mu    sync.Mutex
	ids   map[string]bool
	calls int
	Err   error
}

var _ domain.LayoutChecker = (*StaticLayouts)(nil)

// NewStaticLayouts creates a checker that knows ids.
func NewStaticLayouts(ids ...string) *StaticLayouts {
	l := &StaticLayouts{ids: map[string]bool{}}
	for _, id := range ids {
		l.ids[id] = true
	}
	return l
}

// LayoutExists implements domain.LayoutChecker.
func (l *StaticLayouts) LayoutExists(ctx context.Context, layoutID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.Err != nil {
		return l.Err
	}
	if !l.ids[layoutID] {
		return fmt.Errorf("layout %s: %w", layoutID, domain.ErrLayoutNotFound)
	}
	return nil
}

// Add registers another layout id.
func (l *StaticLayouts) Add(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ids[id] = true
}

// Calls returns the number of LayoutExists calls.
func (l *StaticLayouts) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

// StaticResolver maps every product to Root + "/" + product.
type StaticResolver struct {
	Root string
	Err  error
}

var _ domain.PathResolver = StaticResolver{}

// ResolveBasePath implements domain.PathResolver.
func (r StaticResolver) ResolveBasePath(product string) (string, error) {
	if r.Err != nil {
		return "", r.Err
	}
	return strings.TrimRight(r.Root, "/") + "/" + product, nil
}
