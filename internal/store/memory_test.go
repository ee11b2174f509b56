package store

import (
	"context"
	"errors"
	"testing"

	"github.com/MohammedHany123/globle-bot/internal/catalog"
	"github.com/MohammedHany123/globle-bot/internal/game"
)

func newSession(t *testing.T) *game.Session {
	t.Helper()
	cat := catalog.New([]catalog.Country{
		{Name: "France", Capital: "Paris", Lat: 48.8566, Lng: 2.3522, Continent: "Europe", Population: 68_000_000},
	})
	s, err := game.NewWithTarget(cat, "France")
	if err != nil {
		t.Fatalf("NewWithTarget: %v", err)
	}
	return s
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	s := newSession(t)

	if err := m.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := m.Get(ctx, s.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != s {
		t.Error("Get returned a different session pointer")
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	m := NewMemoryStore()
	if _, err := m.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	s := newSession(t)

	_ = m.Save(ctx, s)
	if err := m.Delete(ctx, s.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(ctx, s.ID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: err = %v, want ErrNotFound", err)
	}
}
