package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UIDGenerator produces extract type identifiers of the form
// "<uuid-v4>_<unix-seconds>.<microseconds>", e.g.
// "3f1c7a52-8d0e-4b8a-9a43-2f7f5d0e9b11_1718030000.123456".
type UIDGenerator struct {
	now     func() time.Time
	newUUID func() uuid.UUID
}

// NewUIDGenerator returns a generator backed by the wall clock and uuid.New.
func NewUIDGenerator() *UIDGenerator {
	return &UIDGenerator{now: time.Now, newUUID: uuid.New}
}

// NewUIDGeneratorWith returns a generator using the given clock and uuid source.
func NewUIDGeneratorWith(now func() time.Time, newUUID func() uuid.UUID) *UIDGenerator {
	return &UIDGenerator{now: now, newUUID: newUUID}
}

// Next returns a new identifier.
func (g *UIDGenerator) Next() string {
	t := g.now()
	return fmt.Sprintf("%s_%d.%06d", g.newUUID().String(), t.Unix(), t.Nanosecond()/int(time.Microsecond))
}
