package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/goccy/go-json"
)

//go:embed data/stations.json
var shippedStations []byte

// Load builds the catalog shipped with the binary.
func Load() (*Catalog, error) {
	c, err := Decode(shippedStations)
	if err != nil {
		return nil, fmt.Errorf("load embedded catalog: %w", err)
	}
	return c, nil
}

// LoadFile builds a catalog from a JSON file with the same schema as the
// embedded one. An empty path selects the embedded catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Load()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// Decode parses a JSON array of stations and validates it. Unknown fields
// are rejected so typos in hand-edited catalogs surface early.
func Decode(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var stations []domain.Station
	if err := dec.Decode(&stations); err != nil {
		return nil, fmt.Errorf("decode stations: %w", err)
	}
	return New(stations)
}
