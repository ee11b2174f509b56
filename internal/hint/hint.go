// internal/hint/hint.go
//
// Progressive hints about the target country.
//
// Tier order is fixed and deterministic:
//   0: continent
//   1: hemispheres (north/south and east/west)
//   2: first letter of the capital
//   3: population bracket
//   4: number of letters in the country's name
//
// A hint must never contain the target's name itself; the session engine
// relies on that to keep reveals explicit (win or surrender only).

package hint

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MohammedHany123/globle-bot/internal/catalog"
)

// ErrInvalidTier is returned when the requested tier index is out of range.
var ErrInvalidTier = errors.New("invalid hint tier")

// TierCount is the number of hint tiers available per game.
const TierCount = 5

// ForTier returns the clue for the given 0-based tier.
func ForTier(target catalog.Country, tier int) (string, error) {
	switch tier {
	case 0:
		return fmt.Sprintf("🌍 Continent: %s", target.Continent), nil
	case 1:
		return fmt.Sprintf("🧭 Hemispheres: %s & %s", target.Hemisphere(), target.HemisphereEW()), nil
	case 2:
		first, _ := utf8.DecodeRuneInString(target.Capital)
		return fmt.Sprintf("🏛️ The capital starts with '%c'", first), nil
	case 3:
		return fmt.Sprintf("👥 Population: %s", populationBracket(target.Population)), nil
	case 4:
		letters := utf8.RuneCountInString(strings.ReplaceAll(target.Name, " ", ""))
		return fmt.Sprintf("🔢 The name has %d letters", letters), nil
	default:
		return "", ErrInvalidTier
	}
}

// populationBracket buckets a population count into a coarse label so the
// hint narrows the field without pinpointing a single country.
func populationBracket(n int64) string {
	switch {
	case n < 1_000_000:
		return "under 1 million"
	case n < 10_000_000:
		return "1–10 million"
	case n < 100_000_000:
		return "10–100 million"
	default:
		return "over 100 million"
	}
}
