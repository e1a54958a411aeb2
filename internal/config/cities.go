package config

import (
	"fmt"
	"sort"

	"github.com/verte-zerg/bikeshare/internal/model"
)

// CityTable is an immutable city to source mapping.
type CityTable struct {
	sources map[string]model.CitySource
}

// DefaultCitySources returns the built-in city sources.
func DefaultCitySources() []model.CitySource {
	return []model.CitySource{
		{Name: "chicago", File: "chicago.csv", Demographics: true},
		{Name: "new york city", File: "new_york_city.csv", Demographics: true},
		{Name: "washington", File: "washington.csv", Demographics: false},
	}
}

// NewCityTable builds a table from the given sources. Later entries win.
func NewCityTable(sources []model.CitySource) CityTable {
	m := make(map[string]model.CitySource, len(sources))
	for _, src := range sources {
		m[src.Name] = src
	}
	return CityTable{sources: m}
}

// Lookup returns the source for a city.
func (t CityTable) Lookup(city string) (model.CitySource, bool) {
	src, ok := t.sources[city]
	return src, ok
}

// Sources returns a copy of all sources sorted by city name.
func (t CityTable) Sources() []model.CitySource {
	out := make([]model.CitySource, 0, len(t.sources))
	for _, src := range t.sources {
		out = append(out, src)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

func mergeCities(overrides map[string]CityConfig) ([]model.CitySource, error) {
	sources := DefaultCitySources()
	for name, override := range overrides {
		city, ok := model.ParseCity(name)
		if !ok {
			return nil, fmt.Errorf("unknown city %q in config", name)
		}
		for i := range sources {
			if sources[i].Name != city {
				continue
			}
			if override.File != nil {
				sources[i].File = *override.File
			}
			if override.Demographics != nil {
				sources[i].Demographics = *override.Demographics
			}
		}
	}
	return sources, nil
}
