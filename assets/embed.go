package assets

import "embed"

//go:embed countries.json
var FS embed.FS

// CountriesJSON returns the raw embedded country dataset.
func CountriesJSON() ([]byte, error) {
	return FS.ReadFile("countries.json")
}
