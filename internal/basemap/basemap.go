// Package basemap is the tile source catalog offered to the map front end.
package basemap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mapsketch/annotator/internal/config"
)

// ErrUnknownBasemap is returned when a lookup names no configured source.
var ErrUnknownBasemap = errors.New("unknown basemap")

// Source is one tile layer.
type Source struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// Catalog is an immutable set of tile sources with a default.
type Catalog struct {
	sources map[string]Source
	def     string
}

// New builds a catalog from configuration. Names are case-insensitive.
func New(cfg config.BasemapConfig) (*Catalog, error) {
	c := &Catalog{sources: make(map[string]Source, len(cfg.Sources))}
	for name, s := range cfg.Sources {
		key := strings.ToLower(name)
		c.sources[key] = Source{Name: key, URL: s.URL, Attribution: s.Attribution}
	}

	c.def = strings.ToLower(cfg.Default)
	if _, ok := c.sources[c.def]; !ok {
		return nil, fmt.Errorf("default basemap %q: %w", cfg.Default, ErrUnknownBasemap)
	}
	return c, nil
}

// Lookup returns the source called name.
func (c *Catalog) Lookup(name string) (Source, error) {
	s, ok := c.sources[strings.ToLower(name)]
	if !ok {
		return Source{}, fmt.Errorf("%q: %w", name, ErrUnknownBasemap)
	}
	return s, nil
}

// Default returns the default source.
func (c *Catalog) Default() Source {
	return c.sources[c.def]
}

// Names returns every source name in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.sources))
	for n := range c.sources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// All returns every source ordered by name.
func (c *Catalog) All() []Source {
	out := make([]Source, 0, len(c.sources))
	for _, n := range c.Names() {
		out = append(out, c.sources[n])
	}
	return out
}
