// internal/catalog/catalog.go
//
// Country reference data for the guessing game.
//
// Responsibilities:
//   - Parse the embedded country dataset (name, aliases, capital coordinates,
//     continent, population).
//   - Build a normalized name + alias index once at load time so guess
//     resolution is a deterministic map lookup, not runtime string fuzzing.
//   - Supply Lookup, All, and Random for the session engine.
//
// Design notes:
//   - A Catalog is an explicitly constructed value that callers inject into
//     the engine; there is no package-level singleton.
//   - The Catalog is immutable after New/Load and safe for concurrent reads.
//   - Random takes a *rand.Rand so target selection is seedable in tests.

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/MohammedHany123/globle-bot/assets"
	"github.com/MohammedHany123/globle-bot/internal/geo"
)

// ErrEmpty is returned by Random when the catalog holds no countries.
var ErrEmpty = errors.New("catalog is empty")

// Country is one immutable entry of the reference dataset.
type Country struct {
	Name       string   `json:"name"`    // canonical name, unique key
	Aliases    []string `json:"aliases"` // informal/alternate names, already lowercase in the dataset
	Capital    string   `json:"capital"`
	Lat        float64  `json:"lat"` // capital latitude
	Lng        float64  `json:"lng"` // capital longitude
	Continent  string   `json:"continent"`
	Population int64    `json:"population"`
}

// Coordinates returns the capital's location as a geo.Point.
func (c Country) Coordinates() geo.Point {
	return geo.Point{Lat: c.Lat, Lng: c.Lng}
}

// Hemisphere reports "Northern" or "Southern" based on capital latitude sign.
// Latitude 0 counts as Northern.
func (c Country) Hemisphere() string {
	if c.Lat >= 0 {
		return "Northern"
	}
	return "Southern"
}

// HemisphereEW reports "Eastern" or "Western" based on capital longitude sign.
func (c Country) HemisphereEW() string {
	if c.Lng >= 0 {
		return "Eastern"
	}
	return "Western"
}

// Catalog is the immutable set of known countries with a normalized
// name/alias index.
type Catalog struct {
	countries []Country
	index     map[string]int // normalized name or alias -> countries offset
}

// Load parses the embedded dataset into a Catalog.
func Load() (*Catalog, error) {
	raw, err := assets.CountriesJSON()
	if err != nil {
		return nil, fmt.Errorf("read countries dataset: %w", err)
	}
	var countries []Country
	if err := json.Unmarshal(raw, &countries); err != nil {
		return nil, fmt.Errorf("parse countries dataset: %w", err)
	}
	return New(countries), nil
}

// New builds a Catalog from an explicit country list. Useful for tests that
// want a tiny fixed dataset.
func New(countries []Country) *Catalog {
	c := &Catalog{
		countries: countries,
		index:     make(map[string]int, len(countries)*2),
	}
	for i, country := range countries {
		c.index[Normalize(country.Name)] = i
		for _, alias := range country.Aliases {
			c.index[Normalize(alias)] = i
		}
	}
	return c
}

// Normalize lowercases, trims, and strips periods and apostrophes so that
// "U.S.A." and "usa" resolve identically.
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, ".", "")
	n = strings.ReplaceAll(n, "'", "")
	return n
}

// Lookup resolves a raw name or alias to a Country.
func (c *Catalog) Lookup(name string) (Country, bool) {
	i, ok := c.index[Normalize(name)]
	if !ok {
		return Country{}, false
	}
	return c.countries[i], true
}

// All returns every country in dataset order. The returned slice is shared;
// callers must not mutate it.
func (c *Catalog) All() []Country {
	return c.countries
}

// Len reports the number of countries.
func (c *Catalog) Len() int { return len(c.countries) }

// Random picks a target country uniformly using rng.
func (c *Catalog) Random(rng *rand.Rand) (Country, error) {
	if len(c.countries) == 0 {
		return Country{}, ErrEmpty
	}
	return c.countries[rng.Intn(len(c.countries))], nil
}
