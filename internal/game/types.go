// internal/game/types.go
//
// Core type definitions for the Globle game engine.
// Defines:
//   - Status: lifecycle of a session (active/won/surrendered).
//   - Trend: direction of change between consecutive guesses.
//   - GuessRecord: one scored guess, immutable once appended.
//   - Stats: read-only summary of a session.

package game

import (
	"errors"

	"github.com/MohammedHany123/globle-bot/internal/temperature"
)

// Failure kinds for session operations. All are recoverable input-validation
// errors; callers surface them as user-facing messages.
var (
	ErrUnknownCountry   = errors.New("unknown country")
	ErrDuplicateGuess   = errors.New("country already guessed")
	ErrSessionNotActive = errors.New("session is not active")
	ErrNoMoreHints      = errors.New("no more hints available")
	ErrCatalogEmpty     = errors.New("catalog is empty")
)

// Status represents the lifecycle state of a session.
// A session leaves StatusActive exactly once and never returns.
type Status string

const (
	StatusActive      Status = "active"
	StatusWon         Status = "won"
	StatusSurrendered Status = "surrendered"
)

// Terminal reports whether the session can no longer be mutated.
func (s Status) Terminal() bool { return s != StatusActive }

// Trend compares a guess's distance with the immediately preceding guess.
type Trend string

const (
	TrendFirst  Trend = "first"  // no preceding guess
	TrendHotter Trend = "hotter" // strictly closer than the previous guess
	TrendColder Trend = "colder" // strictly farther than the previous guess
	TrendSame   Trend = "same"   // exactly the same distance
)

// GuessRecord is one scored guess. Records are append-only and immutable.
type GuessRecord struct {
	Country    string           `json:"country"` // canonical country name
	Player     string           `json:"player,omitempty"`
	DistanceKm float64          `json:"distanceKm"` // 0 iff the guess is the target
	Tier       temperature.Tier `json:"temperature"`
	Trend      Trend            `json:"trend"`
	Index      int              `json:"index"` // 1-based sequence number
	Won        bool             `json:"won"`
}

// Stats is the read-only summary returned by Session.Stats.
// Closest is nil until at least one guess has been made.
type Stats struct {
	GuessCount int          `json:"guessCount"`
	Closest    *GuessRecord `json:"closest,omitempty"`
	Status     Status       `json:"status"`
	Players    []string     `json:"players"`
}
