package main

import (
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MohammedHany123/globle-bot/internal/catalog"
	"github.com/MohammedHany123/globle-bot/internal/config"
	"github.com/MohammedHany123/globle-bot/internal/database"
	"github.com/MohammedHany123/globle-bot/internal/httpserver"
	"github.com/MohammedHany123/globle-bot/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load country catalog")
	}
	log.Info().Int("countries", cat.Len()).Msg("catalog loaded")

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	mem := store.NewMemoryStore()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	srv := httpserver.New(mem, cat, db, cfg, rng)

	log.Info().Str("port", cfg.Addr).Msg("starting globle server")
	if err := srv.Start(":" + cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
