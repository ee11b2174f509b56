// internal/httpserver/routes_game.go
//
// Game endpoints: create sessions, submit guesses, request hints, surrender,
// read stats, and fetch the full-catalog temperature snapshot for the map
// renderer. Engine failure kinds are mapped to HTTP statuses here; DB writes
// for history/stats are best-effort and never fail the request.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MohammedHany123/globle-bot/internal/game"
	"github.com/MohammedHany123/globle-bot/internal/store"
	"github.com/MohammedHany123/globle-bot/internal/temperature"
)

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Target string `json:"target"` // optional fixed target (testing)
}
type newGameRes struct {
	GameID string `json:"gameId"`
}

// handleNewGame creates a new in-memory session and persists a DB "owner"
// row (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	sess, err := s.newSession(req.Target)
	if err != nil {
		if errors.Is(err, game.ErrUnknownCountry) {
			http.Error(w, `{"error":"unknown_country"}`, http.StatusUnprocessableEntity)
			return
		}
		log.Error().Err(err).Msg("create session")
		http.Error(w, `{"error":"create_failed"}`, http.StatusInternalServerError)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	// Persist owner row; the target never reaches the DB while play is live.
	now := time.Now().UTC().Format(time.RFC3339)
	if me := authedUser(r); me != nil {
		_, err = s.db.Exec(`INSERT INTO games (id, user_id, status, guesses, started_at)
		                    VALUES (?,?,?,0,?)`, sess.ID(), me.ID, game.StatusActive, now)
	} else {
		anon := s.ensureAnonID(w, r)
		_, err = s.db.Exec(`INSERT INTO games (id, anonymous_id, status, guesses, started_at)
		                    VALUES (?,?,?,0,?)`, sess.ID(), anon, game.StatusActive, now)
	}
	if err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID()).Msg("insert game row")
	}

	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID()})
}

// newSession picks a random target (or a fixed one when requested) under the
// rng lock, since math/rand sources are not goroutine-safe.
func (s *Server) newSession(target string) (*game.Session, error) {
	if target != "" {
		return game.NewWithTarget(s.catalog, target)
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return game.New(s.catalog, s.rng)
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID  string `json:"gameId"`
	Country string `json:"country"`
}
type guessRes struct {
	Country     string           `json:"country"`
	DistanceKm  float64          `json:"distanceKm"`
	Temperature temperature.Tier `json:"temperature"`
	Feedback    string           `json:"feedback"`
	Trend       game.Trend       `json:"trend"`
	GuessNumber int              `json:"guessNumber"`
	Won         bool             `json:"won"`
	Target      string           `json:"target,omitempty"` // set only on a win
}

// handleGuess applies a guess to an in-memory session, persists progress,
// and (if won) updates user stats in a best-effort transaction.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.lookupSession(w, r, req.GameID)
	if !ok {
		return
	}

	rec, err := sess.Guess(req.Country, s.playerName(w, r))
	if err != nil {
		writeGameError(w, err)
		return
	}

	s.recordGuess(w, r, sess, rec)

	res := guessRes{
		Country:     rec.Country,
		DistanceKm:  rec.DistanceKm,
		Temperature: rec.Tier,
		Feedback:    temperature.Label(rec.Tier),
		Trend:       rec.Trend,
		GuessNumber: rec.Index,
		Won:         rec.Won,
	}
	if rec.Won {
		res.Target = rec.Country
	}
	_ = json.NewEncoder(w).Encode(res)
}

// hintReq/Res payloads for POST /game/hint.
type hintReq struct {
	GameID string `json:"gameId"`
}
type hintRes struct {
	Hint string `json:"hint"`
	Tier int    `json:"tier"`
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.lookupSession(w, r, req.GameID)
	if !ok {
		return
	}
	clue, tier, err := sess.Hint()
	if err != nil {
		writeGameError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(hintRes{Hint: clue, Tier: tier})
}

// surrenderReq/Res payloads for POST /game/surrender.
type surrenderReq struct {
	GameID string `json:"gameId"`
}
type surrenderRes struct {
	Target  string `json:"target"`
	Capital string `json:"capital"`
}

func (s *Server) handleSurrender(w http.ResponseWriter, r *http.Request) {
	var req surrenderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.lookupSession(w, r, req.GameID)
	if !ok {
		return
	}
	target, err := sess.Surrender()
	if err != nil {
		writeGameError(w, err)
		return
	}
	s.finishGame(r, sess, target.Name, false)
	_ = json.NewEncoder(w).Encode(surrenderRes{Target: target.Name, Capital: target.Capital})
}

// handleDiscard drops a finished (or abandoned) session from the store.
// History rows in the DB are unaffected.
func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	var req surrenderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if err := s.store.Delete(r.Context(), req.GameID); err != nil {
		http.Error(w, `{"error":"delete_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// statsRes payload for GET /game/stats.
type statsRes struct {
	GuessCount int               `json:"guessCount"`
	Status     game.Status       `json:"status"`
	Players    []string          `json:"players"`
	Closest    *game.GuessRecord `json:"closest,omitempty"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r, r.URL.Query().Get("gameId"))
	if !ok {
		return
	}
	st := sess.Stats()
	_ = json.NewEncoder(w).Encode(statsRes{
		GuessCount: st.GuessCount,
		Status:     st.Status,
		Players:    st.Players,
		Closest:    st.Closest,
	})
}

// handleMap returns the temperature snapshot the map renderer consumes.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r, r.URL.Query().Get("gameId"))
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"tiles": sess.Snapshot()})
}

// leaderboardRow is one entry of GET /leaderboard: fastest wins first.
type leaderboardRow struct {
	Player     string `json:"player"`
	Guesses    int    `json:"guesses"`
	Target     string `json:"target"`
	FinishedAt string `json:"finishedAt"`
}

// handleLeaderboard lists the top won games ordered by fewest guesses.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryContext(r.Context(), `
		SELECT COALESCE(u.username, 'guest'), g.guesses, g.target, COALESCE(g.finished_at, '')
		FROM games g LEFT JOIN users u ON u.id = g.user_id
		WHERE g.status = ?
		ORDER BY g.guesses ASC, g.finished_at ASC
		LIMIT 20`, game.StatusWon)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	out := []leaderboardRow{}
	for rows.Next() {
		var row leaderboardRow
		if err := rows.Scan(&row.Player, &row.Guesses, &row.Target, &row.FinishedAt); err == nil {
			out = append(out, row)
		}
	}
	_ = json.NewEncoder(w).Encode(out)
}

// ------------------------------ helpers ------------------------------------

// lookupSession fetches a session by ID, writing a 404 when absent.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request, id string) (*game.Session, bool) {
	if id == "" {
		http.Error(w, `{"error":"missing_game_id"}`, http.StatusBadRequest)
		return nil, false
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		} else {
			http.Error(w, `{"error":"store_error"}`, http.StatusInternalServerError)
		}
		return nil, false
	}
	return sess, true
}

// playerName attributes guesses to the signed-in username, falling back to
// "guest" for anonymous players.
func (s *Server) playerName(w http.ResponseWriter, r *http.Request) string {
	if me := authedUser(r); me != nil {
		return me.Username
	}
	s.ensureAnonID(w, r)
	return "guest"
}

// writeGameError maps engine failure kinds to HTTP statuses.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrUnknownCountry):
		http.Error(w, `{"error":"unknown_country"}`, http.StatusUnprocessableEntity)
	case errors.Is(err, game.ErrDuplicateGuess):
		http.Error(w, `{"error":"duplicate_guess"}`, http.StatusConflict)
	case errors.Is(err, game.ErrSessionNotActive):
		http.Error(w, `{"error":"session_not_active"}`, http.StatusConflict)
	case errors.Is(err, game.ErrNoMoreHints):
		http.Error(w, `{"error":"no_more_hints"}`, http.StatusConflict)
	default:
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
	}
}

// recordGuess persists guess counters and, for finished games, the outcome.
// Best effort: failures are logged, never surfaced to the player.
func (s *Server) recordGuess(w http.ResponseWriter, r *http.Request, sess *game.Session, rec game.GuessRecord) {
	ownerClause, ownerArg := s.ownerFilter(w, r)
	if _, err := s.db.Exec(`UPDATE games SET guesses = guesses + 1 WHERE id=? AND `+ownerClause, sess.ID(), ownerArg); err != nil {
		log.Warn().Err(err).Msg("update guesses")
	}
	if rec.Won {
		s.finishGame(r, sess, rec.Country, true)
	}
}

// finishGame marks the games row terminal, reveals the target in history,
// and bumps user stats on a win.
func (s *Server) finishGame(r *http.Request, sess *game.Session, target string, won bool) {
	status := game.StatusSurrendered
	if won {
		status = game.StatusWon
	}
	guesses := sess.Stats().GuessCount

	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin finish tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	// The per-guess increment is owner-filtered and best-effort, so the final
	// count is written authoritatively here.
	if _, err := tx.Exec(`UPDATE games SET status=?, target=?, guesses=?, finished_at=? WHERE id=?`,
		status, target, guesses, time.Now().UTC().Format(time.RFC3339), sess.ID()); err != nil {
		log.Warn().Err(err).Msg("finish game")
	}
	if me := authedUser(r); me != nil {
		if err := s.bumpStats(tx, me.ID, won, guesses); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit finish tx")
	}
}

// bumpStats increments games played; updates wins, streak, and best guess
// count based on result (within tx).
func (s *Server) bumpStats(tx *sql.Tx, userID string, won bool, guesses int) error {
	var gp, wins, streak int
	var best sql.NullInt64
	row := tx.QueryRow(`SELECT games_played, wins, streak, best_guesses FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak, &best); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
		if !best.Valid || int64(guesses) < best.Int64 {
			best = sql.NullInt64{Int64: int64(guesses), Valid: true}
		}
	} else {
		streak = 0
	}
	_, err := tx.Exec(`UPDATE users SET games_played=?, wins=?, streak=?, best_guesses=? WHERE id=?`,
		gp, wins, streak, best, userID)
	return err
}
