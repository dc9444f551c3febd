package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/bot"
	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/lexicon"
	"github.com/domino14/hangman/solver"
)

const (
	GracefulShutdownTimeout = 20 * time.Second
)

func main() {
	// Determine the directory of the executable. We will use this
	// directory to find the data files if an absolute path is not
	// provided for these!
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad-arguments")
	}
	cfg.AdjustRelativePaths(exPath)
	log.Info().Msgf("Loaded config: %v, exPath: %v", cfg.SanitizedSettings(), exPath)

	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Info().Uint64("total-memory-mb", memory.TotalMemory()/1024/1024).Msg("system")

	reg, err := lexicon.NewRegistryFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-load-registry")
	}
	ctx, cancel := context.WithCancel(context.Background())
	// Load the default language up front so the first request is not slow.
	if err := reg.Preload(ctx, language.FromString(cfg.GetString(config.ConfigDefaultLanguage))); err != nil {
		log.Fatal().Err(err).Msg("could-not-preload")
	}

	idleConnsClosed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		// We received an interrupt signal, shut down.
		log.Info().Msg("got quit signal...")
		cancel()
		select {
		case <-idleConnsClosed:
		case <-time.After(GracefulShutdownTimeout):
			log.Error().Msg("shutdown-timed-out")
			os.Exit(1)
		}
	}()

	b := bot.NewBot(cfg, solver.NewSolver(reg))
	if err := bot.Main(ctx, cfg, b); err != nil {
		log.Error().Err(err).Msg("solver-service-failed")
	}
	close(idleConnsClosed)
	log.Info().Msg("server gracefully shutting down")
}
