package main

import (
	"context"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/silvncr/watchword-bot/assets"
	"github.com/silvncr/watchword-bot/internal/commands"
	"github.com/silvncr/watchword-bot/internal/config"
	"github.com/silvncr/watchword-bot/internal/httpserver"
	"github.com/silvncr/watchword-bot/internal/lookup"
	"github.com/silvncr/watchword-bot/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read config")
	}
	setupLogging(cfg.Log)

	var data fs.FS = assets.Data()
	if cfg.Data.Dir != "" {
		data = os.DirFS(cfg.Data.Dir)
		log.Info().Str("dir", cfg.Data.Dir).Msg("using data directory")
	} else {
		log.Info().Msg("using embedded sample data")
	}

	core, err := lookup.Build(data)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}
	logLoaded(core)

	history, err := openHistory(cfg.History)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open history store")
	}
	defer history.Close()

	log.Info().Str("presence", commands.Presence(core.Stats())).Msg("ready")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(core, history, httpserver.Options{
		ClientOrigin: cfg.Server.ClientOrigin,
		Timeout:      cfg.Server.RequestTimeout,
	})
	log.Info().Str("port", cfg.Server.Port).Msg("starting watchword dictionary")
	if err := srv.Run(ctx, ":"+cfg.Server.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		return
	}
	log.Info().Msg("shut down")
}

// logLoaded reports what Build found: one line per canonical version, then
// the totals.
func logLoaded(core *lookup.Service) {
	for _, v := range core.Canonicals() {
		if v.Words == 0 {
			log.Warn().Str("version", v.Canonical).Msg("no wordlist found, skipping")
			continue
		}
		log.Info().Str("version", v.Canonical).Int("words", v.Words).Msg("loaded wordlist")
	}
	st := core.Stats()
	log.Info().Int("words", st.TotalWords).Msg("loaded total words")
	log.Info().
		Int("definitions", st.Definitions).
		Int("combined", st.DefinitionsOriginal).
		Float64("coverage", st.DefinitionCoverage).
		Msg("loaded definitions")
}

func setupLogging(c config.LogConfig) {
	if lvl, err := zerolog.ParseLevel(c.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// openHistory returns a SQLite store when a path is configured, else an
// in-memory ring.
func openHistory(c config.HistoryConfig) (store.Store, error) {
	if c.DB == "" {
		return store.NewMemoryStore(c.Limit), nil
	}
	log.Info().Str("db", c.DB).Msg("opening history database")
	return store.OpenSQLite(c.DB)
}
