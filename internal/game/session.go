// internal/game/session.go
//
// Session engine for a single Globle game.
// Responsibilities:
//   - Create sessions with a randomly chosen target country.
//   - Validate guesses (known country, no duplicates, session still active).
//   - Score guesses: great-circle distance, temperature tier, hot/cold trend.
//   - Track state transitions: active → won/surrendered.
//   - Serve hints in a fixed escalating order.
//
// Concurrency:
//   - Each Session carries its own mutex; operations on one session are
//     serialized, sessions never share mutable state, and the injected
//     Catalog is read-only, so distinct sessions may run concurrently.
//
// Notes:
//   - The Catalog and random source are injected at construction; the engine
//     holds no global state.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand"
	"sync"

	"github.com/MohammedHany123/globle-bot/internal/catalog"
	"github.com/MohammedHany123/globle-bot/internal/geo"
	"github.com/MohammedHany123/globle-bot/internal/hint"
	"github.com/MohammedHany123/globle-bot/internal/temperature"
)

// Session holds the state of one game. All mutation goes through its
// methods; after the status turns terminal it is read-only.
type Session struct {
	mu sync.Mutex

	id            string
	catalog       *catalog.Catalog
	target        catalog.Country
	status        Status
	guesses       []GuessRecord
	hintsRevealed int
	players       []string
}

// New starts a session with a target chosen uniformly from cat using rng.
// Fails with ErrCatalogEmpty if cat holds no countries.
func New(cat *catalog.Catalog, rng *mrand.Rand) (*Session, error) {
	target, err := cat.Random(rng)
	if err != nil {
		return nil, ErrCatalogEmpty
	}
	return &Session{
		id:      randomID(),
		catalog: cat,
		target:  target,
		status:  StatusActive,
	}, nil
}

// NewWithTarget starts a session with a fixed target resolved from cat.
// Used by tests and debug tooling; fails with ErrUnknownCountry if the name
// does not resolve.
func NewWithTarget(cat *catalog.Catalog, name string) (*Session, error) {
	target, ok := cat.Lookup(name)
	if !ok {
		return nil, ErrUnknownCountry
	}
	return &Session{
		id:      randomID(),
		catalog: cat,
		target:  target,
		status:  StatusActive,
	}, nil
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Guess validates and scores a raw guess from player, mutating the session.
//
// Validation order:
//   - ErrSessionNotActive if the session is already won or surrendered.
//   - ErrUnknownCountry if the name resolves to nothing in the catalog.
//   - ErrDuplicateGuess if the resolved country was already guessed.
//
// On success the returned record carries distance, temperature, trend, and
// the 1-based guess number; guessing the target flips the status to won.
func (s *Session) Guess(raw, player string) (GuessRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Terminal() {
		return GuessRecord{}, ErrSessionNotActive
	}
	guessed, ok := s.catalog.Lookup(raw)
	if !ok {
		return GuessRecord{}, ErrUnknownCountry
	}
	for _, g := range s.guesses {
		if g.Country == guessed.Name {
			return GuessRecord{}, ErrDuplicateGuess
		}
	}

	dist := geo.Distance(guessed.Coordinates(), s.target.Coordinates())
	rec := GuessRecord{
		Country:    guessed.Name,
		Player:     player,
		DistanceKm: dist,
		Tier:       temperature.FromDistance(dist),
		Trend:      s.trendFor(dist),
		Index:      len(s.guesses) + 1,
		Won:        guessed.Name == s.target.Name,
	}
	s.guesses = append(s.guesses, rec)
	s.trackPlayer(player)
	if rec.Won {
		s.status = StatusWon
	}
	return rec, nil
}

// trendFor compares dist against the previous guess's distance.
func (s *Session) trendFor(dist float64) Trend {
	if len(s.guesses) == 0 {
		return TrendFirst
	}
	last := s.guesses[len(s.guesses)-1].DistanceKm
	switch {
	case dist < last:
		return TrendHotter
	case dist > last:
		return TrendColder
	default:
		return TrendSame
	}
}

// trackPlayer records a player name the first time it appears.
func (s *Session) trackPlayer(player string) {
	if player == "" {
		return
	}
	for _, p := range s.players {
		if p == player {
			return
		}
	}
	s.players = append(s.players, player)
}

// Hint reveals the next clue about the target, in fixed tier order.
// Fails with ErrSessionNotActive on finished sessions and ErrNoMoreHints
// once every tier has been revealed. Returns the clue and its 1-based tier.
func (s *Session) Hint() (string, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Terminal() {
		return "", 0, ErrSessionNotActive
	}
	if s.hintsRevealed >= hint.TierCount {
		return "", 0, ErrNoMoreHints
	}
	clue, err := hint.ForTier(s.target, s.hintsRevealed)
	if err != nil {
		return "", 0, err
	}
	s.hintsRevealed++
	return clue, s.hintsRevealed, nil
}

// HintsRevealed reports how many hints have been given so far.
func (s *Session) HintsRevealed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hintsRevealed
}

// Surrender ends the session and reveals the target.
// Fails with ErrSessionNotActive if the session already finished.
func (s *Session) Surrender() (catalog.Country, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Terminal() {
		return catalog.Country{}, ErrSessionNotActive
	}
	s.status = StatusSurrendered
	return s.target, nil
}

// Stats returns a read-only summary. It never fails and never mutates,
// including on finished sessions.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		GuessCount: len(s.guesses),
		Status:     s.status,
		Players:    append([]string(nil), s.players...),
	}
	for i := range s.guesses {
		if st.Closest == nil || s.guesses[i].DistanceKm < st.Closest.DistanceKm {
			rec := s.guesses[i]
			st.Closest = &rec
		}
	}
	return st
}

// Guesses returns a copy of the guess history in chronological order.
func (s *Session) Guesses() []GuessRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]GuessRecord(nil), s.guesses...)
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
