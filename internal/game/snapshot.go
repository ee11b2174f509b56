// internal/game/snapshot.go
//
// Full-catalog temperature snapshot for the map-rendering collaborator.
// Every known country is reported with the tier recorded when it was
// guessed, or the neutral "unguessed" tier, plus the fill color the map
// should use.

package game

import "github.com/MohammedHany123/globle-bot/internal/temperature"

// Tile is one country's entry in the map snapshot.
type Tile struct {
	Country string           `json:"country"`
	Tier    temperature.Tier `json:"tier"`
	Color   string           `json:"color"`
}

// Snapshot returns one Tile per catalog country, in dataset order.
func (s *Session) Snapshot() []Tile {
	s.mu.Lock()
	defer s.mu.Unlock()

	guessed := make(map[string]temperature.Tier, len(s.guesses))
	for _, g := range s.guesses {
		guessed[g.Country] = g.Tier
	}

	tiles := make([]Tile, 0, s.catalog.Len())
	for _, c := range s.catalog.All() {
		tier, ok := guessed[c.Name]
		if !ok {
			tier = temperature.Unguessed
		}
		tiles = append(tiles, Tile{
			Country: c.Name,
			Tier:    tier,
			Color:   temperature.Color(tier),
		})
	}
	return tiles
}
