package httpserver

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MohammedHany123/globle-bot/internal/catalog"
	"github.com/MohammedHany123/globle-bot/internal/config"
	"github.com/MohammedHany123/globle-bot/internal/database"
	"github.com/MohammedHany123/globle-bot/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	cfg := &config.Config{
		Addr:           "0",
		LogLevel:       "error",
		ClientOrigin:   "http://localhost:5173",
		JWTSecret:      "test_secret",
		JWTExpiresDays: 1,
		CookieName:     "globle_token",
	}
	return New(store.NewMemoryStore(), cat, db, cfg, nil)
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func getJSON(t *testing.T, s *Server, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return rec
}

func newGame(t *testing.T, s *Server, target string) string {
	t.Helper()
	rec := postJSON(t, s, "/game/new", map[string]string{"target": target})
	if rec.Code != http.StatusOK {
		t.Fatalf("new game: status %d, body %s", rec.Code, rec.Body.String())
	}
	var res newGameRes
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode new game: %v", err)
	}
	if res.GameID == "" {
		t.Fatal("empty game id")
	}
	return res.GameID
}

func TestHealth(t *testing.T) {
	s := testServer(t)
	if rec := getJSON(t, s, "/health", nil); rec.Code != http.StatusOK {
		t.Errorf("health: status %d", rec.Code)
	}
}

func TestGuessFlow(t *testing.T) {
	s := testServer(t)
	id := newGame(t, s, "France")

	// First guess: Berlin is ~878 km from Paris.
	rec := postJSON(t, s, "/game/guess", map[string]string{"gameId": id, "country": "Germany"})
	if rec.Code != http.StatusOK {
		t.Fatalf("guess: status %d, body %s", rec.Code, rec.Body.String())
	}
	var res guessRes
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	if res.Country != "Germany" || res.Temperature != "very_hot" || res.Trend != "first" || res.Won {
		t.Errorf("first guess: %+v", res)
	}
	if math.Abs(res.DistanceKm-878) > 5 {
		t.Errorf("distance = %.1f, want ≈878", res.DistanceKm)
	}
	if res.Feedback == "" {
		t.Error("missing feedback label")
	}

	// Duplicate via alias.
	rec = postJSON(t, s, "/game/guess", map[string]string{"gameId": id, "country": "deutschland"})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate: status %d, want 409", rec.Code)
	}

	// Unknown country.
	rec = postJSON(t, s, "/game/guess", map[string]string{"gameId": id, "country": "Atlantis"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown: status %d, want 422", rec.Code)
	}

	// Winning guess.
	rec = postJSON(t, s, "/game/guess", map[string]string{"gameId": id, "country": "france"})
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	if rec.Code != http.StatusOK || !res.Won || res.Target != "France" || res.DistanceKm != 0 {
		t.Errorf("win: status %d, %+v", rec.Code, res)
	}

	// Guessing after the win is rejected.
	rec = postJSON(t, s, "/game/guess", map[string]string{"gameId": id, "country": "Spain"})
	if rec.Code != http.StatusConflict {
		t.Errorf("guess after win: status %d, want 409", rec.Code)
	}

	// Stats still readable.
	var st statsRes
	if rec := getJSON(t, s, "/game/stats?gameId="+id, &st); rec.Code != http.StatusOK {
		t.Fatalf("stats: status %d", rec.Code)
	}
	if st.GuessCount != 2 || st.Status != "won" {
		t.Errorf("stats: %+v", st)
	}

	// The win shows up on the leaderboard.
	var lb []leaderboardRow
	if rec := getJSON(t, s, "/leaderboard", &lb); rec.Code != http.StatusOK {
		t.Fatalf("leaderboard: status %d", rec.Code)
	}
	if len(lb) != 1 || lb[0].Target != "France" || lb[0].Guesses != 2 {
		t.Errorf("leaderboard: %+v", lb)
	}
}

func TestHintAndSurrender(t *testing.T) {
	s := testServer(t)
	id := newGame(t, s, "Japan")

	var first hintRes
	rec := postJSON(t, s, "/game/hint", map[string]string{"gameId": id})
	if rec.Code != http.StatusOK {
		t.Fatalf("hint: status %d", rec.Code)
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &first)
	if first.Tier != 1 || first.Hint == "" {
		t.Errorf("first hint: %+v", first)
	}

	rec = postJSON(t, s, "/game/surrender", map[string]string{"gameId": id})
	if rec.Code != http.StatusOK {
		t.Fatalf("surrender: status %d", rec.Code)
	}
	var sr surrenderRes
	_ = json.Unmarshal(rec.Body.Bytes(), &sr)
	if sr.Target != "Japan" || sr.Capital != "Tokyo" {
		t.Errorf("surrender reveal: %+v", sr)
	}

	// No more hints after the game ended.
	rec = postJSON(t, s, "/game/hint", map[string]string{"gameId": id})
	if rec.Code != http.StatusConflict {
		t.Errorf("hint after surrender: status %d, want 409", rec.Code)
	}

	// Discard drops the session from the store.
	rec = postJSON(t, s, "/game/discard", map[string]string{"gameId": id})
	if rec.Code != http.StatusOK {
		t.Fatalf("discard: status %d", rec.Code)
	}
	if rec := getJSON(t, s, "/game/stats?gameId="+id, nil); rec.Code != http.StatusNotFound {
		t.Errorf("stats after discard: status %d, want 404", rec.Code)
	}
}

func TestMapSnapshot(t *testing.T) {
	s := testServer(t)
	id := newGame(t, s, "France")
	postJSON(t, s, "/game/guess", map[string]string{"gameId": id, "country": "Spain"})

	var res struct {
		Tiles []struct {
			Country string `json:"country"`
			Tier    string `json:"tier"`
			Color   string `json:"color"`
		} `json:"tiles"`
	}
	if rec := getJSON(t, s, "/game/map?gameId="+id, &res); rec.Code != http.StatusOK {
		t.Fatalf("map: status %d", rec.Code)
	}
	if len(res.Tiles) != s.catalog.Len() {
		t.Fatalf("map has %d tiles, want %d", len(res.Tiles), s.catalog.Len())
	}
	unguessed := 0
	for _, tile := range res.Tiles {
		if tile.Country == "Spain" {
			if tile.Tier != "hot" {
				t.Errorf("Spain tier = %q, want hot", tile.Tier)
			}
		} else if tile.Tier == "unguessed" {
			unguessed++
		}
	}
	if unguessed != s.catalog.Len()-1 {
		t.Errorf("%d unguessed tiles, want %d", unguessed, s.catalog.Len()-1)
	}
}

func TestUnknownGame(t *testing.T) {
	s := testServer(t)
	rec := postJSON(t, s, "/game/guess", map[string]string{"gameId": "missing", "country": "France"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown game: status %d, want 404", rec.Code)
	}
}

func TestSignupAndStats(t *testing.T) {
	s := testServer(t)

	rec := postJSON(t, s, "/auth/signup", map[string]string{"Username": "alice_1", "Password": "hunter2hunter2"})
	if rec.Code != http.StatusOK {
		t.Fatalf("signup: status %d, body %s", rec.Code, rec.Body.String())
	}
	var cookie string
	for _, c := range rec.Result().Cookies() {
		if c.Name == s.cfg.CookieName {
			cookie = c.Value
		}
	}
	if cookie == "" {
		t.Fatal("signup did not set auth cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/stats/me", nil)
	req.Header.Set("Authorization", "Bearer "+cookie)
	out := httptest.NewRecorder()
	s.Router().ServeHTTP(out, req)
	if out.Code != http.StatusOK {
		t.Fatalf("stats/me: status %d, body %s", out.Code, out.Body.String())
	}
	var stats map[string]any
	_ = json.Unmarshal(out.Body.Bytes(), &stats)
	if stats["gamesPlayed"] != float64(0) || stats["wins"] != float64(0) {
		t.Errorf("fresh user stats: %v", stats)
	}

	// Duplicate username is rejected.
	rec = postJSON(t, s, "/auth/signup", map[string]string{"Username": "alice_1", "Password": "hunter2hunter2"})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate signup: status %d, want 409", rec.Code)
	}
}
