// Package catalog holds the immutable, ordered collection of stations the
// recommender ranks. A Catalog is validated once when it is built and is
// safe for concurrent reads afterwards.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/couchcryptid/indyradio-service/internal/validation"
)

var (
	// ErrDuplicateStationID is returned when two records share an id.
	ErrDuplicateStationID = errors.New("duplicate station id")
	// ErrStationNotFound is returned by Get for unknown ids.
	ErrStationNotFound = errors.New("station not found")
	// ErrEmptyCatalog is returned when no stations are supplied.
	ErrEmptyCatalog = errors.New("catalog has no stations")
)

// Catalog is an ordered, read-only set of stations with lookup by id.
type Catalog struct {
	stations []domain.Station
	index    map[string]int
}

// New validates every record and returns a catalog that owns a private copy
// of the slice. Integrity problems are reported here so scoring never sees them.
func New(stations []domain.Station) (*Catalog, error) {
	if len(stations) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		stations: make([]domain.Station, len(stations)),
		index:    make(map[string]int, len(stations)),
	}
	for i, s := range stations {
		if err := validation.Struct(s); err != nil {
			return nil, fmt.Errorf("station %d (%q): %w", i, s.ID, err)
		}
		if prev, dup := c.index[s.ID]; dup {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateStationID, s.ID, prev, i)
		}
		c.index[s.ID] = i
		c.stations[i] = s.Clone()
	}
	return c, nil
}

// Len returns the number of stations.
func (c *Catalog) Len() int {
	return len(c.stations)
}

// Stations returns deep copies of the stations in catalog order.
func (c *Catalog) Stations() []domain.Station {
	out := make([]domain.Station, len(c.stations))
	for i, s := range c.stations {
		out[i] = s.Clone()
	}
	return out
}

// Lookup returns the station with the given id.
func (c *Catalog) Lookup(id string) (domain.Station, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Station{}, false
	}
	return c.stations[i].Clone(), true
}

// Get is Lookup with an error for unknown ids.
func (c *Catalog) Get(id string) (domain.Station, error) {
	s, ok := c.Lookup(id)
	if !ok {
		return domain.Station{}, fmt.Errorf("%w: %q", ErrStationNotFound, id)
	}
	return s, nil
}

// CheckReadiness reports whether the catalog holds any stations.
func (c *Catalog) CheckReadiness(_ context.Context) error {
	if c == nil || len(c.stations) == 0 {
		return ErrEmptyCatalog
	}
	return nil
}
