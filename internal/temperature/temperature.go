// internal/temperature/temperature.go
//
// Temperature classification for guesses.
// Maps a capital-to-capital distance to one of seven ordered tiers, plus a
// neutral "unguessed" tier used only in the full-map snapshot.
//
// Tier boundaries (km, strict "<" — a boundary value falls into the colder
// bucket):
//   <500 burning, <1000 very_hot, <2500 hot, <5000 warm,
//   <7500 cool, <10000 cold, otherwise freezing.
//
// Each playable tier carries a hex color and a display label for the map
// renderer and chat-style feedback.

package temperature

// Tier is one of the discrete temperature buckets.
type Tier string

const (
	Burning  Tier = "burning"
	VeryHot  Tier = "very_hot"
	Hot      Tier = "hot"
	Warm     Tier = "warm"
	Cool     Tier = "cool"
	Cold     Tier = "cold"
	Freezing Tier = "freezing"

	// Unguessed is the neutral tier reported for countries that have not
	// been guessed yet. FromDistance never returns it.
	Unguessed Tier = "unguessed"
)

// tierDef couples a tier with its upper distance bound, map color, and label.
type tierDef struct {
	tier  Tier
	maxKm float64 // exclusive upper bound; guesses at exactly maxKm fall into the next tier
	color string
	label string
}

// defs is ordered hottest to coldest. The last entry is open-ended.
var defs = []tierDef{
	{Burning, 500, "#FF0000", "🔥🔥🔥 BURNING HOT!"},
	{VeryHot, 1000, "#FF4500", "🔥🔥 Very Hot"},
	{Hot, 2500, "#FF8C00", "🔥 Hot"},
	{Warm, 5000, "#FFD700", "🌡️ Warm"},
	{Cool, 7500, "#87CEEB", "❄️ Cool"},
	{Cold, 10000, "#4169E1", "❄️❄️ Cold"},
	{Freezing, 0, "#00008B", "❄️❄️❄️ FREEZING!"},
}

// unguessedColor is the default fill used by the map for unguessed countries.
const unguessedColor = "#E8E8E8"

// FromDistance classifies a non-negative distance in kilometers into a tier.
// Total over all non-negative inputs.
func FromDistance(km float64) Tier {
	for _, d := range defs[:len(defs)-1] {
		if km < d.maxKm {
			return d.tier
		}
	}
	return Freezing
}

// Color returns the hex fill color for a tier on the guess map.
func Color(t Tier) string {
	for _, d := range defs {
		if d.tier == t {
			return d.color
		}
	}
	return unguessedColor
}

// Label returns the human-readable feedback text for a tier.
// Unguessed has no label.
func Label(t Tier) string {
	for _, d := range defs {
		if d.tier == t {
			return d.label
		}
	}
	return ""
}

// Hotness returns the rank of a tier, 0 for Burning up to 6 for Freezing.
// Unguessed ranks after Freezing. Useful for ordering and tests.
func Hotness(t Tier) int {
	for i, d := range defs {
		if d.tier == t {
			return i
		}
	}
	return len(defs)
}
