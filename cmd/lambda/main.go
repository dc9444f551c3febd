package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/bot"
	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/lexicon"
	"github.com/domino14/hangman/solver"
)

var cfg *config.Config
var solveBot *bot.Bot

// replier delivers answers to an event's reply channel; nil when NATS is
// not configured.
var replier bot.Requester

const replyTimeout = 3 * time.Second

func HandleRequest(ctx context.Context, evt bot.LambdaEvent) (*bot.SolveResponse, error) {
	logger := log.With().
		Str("requestID", evt.RequestID).
		Logger()

	resp := solveBot.Solve(&evt.SolveRequest)
	if resp.Error != "" {
		logger.Info().Str("pattern", evt.Pattern).Str("error", resp.Error).Msg("solve-failed")
	}

	if evt.ReplyChannel != "" {
		if replier == nil {
			return nil, errors.New("reply channel given but NATS is not configured")
		}
		data, err := json.Marshal(resp)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("answer-sending-via-nats")
		// We're just waiting for an acknowledgement. The actual data
		// doesn't matter.
		_, err = bot.RequestWithRetry(logger.WithContext(ctx), replier, evt.ReplyChannel, data,
			replyTimeout, bot.DefaultAttempts, 100*time.Millisecond)
		if err != nil {
			logger.Err(err).Msg("answer-delivery-failed")
		}
	}
	logger.Info().Msg("exiting-fn")
	return resp, nil
}

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg = &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad-arguments")
	}
	cfg.AdjustRelativePaths(exPath)
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	reg, err := lexicon.NewRegistryFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-load-registry")
	}
	solveBot = bot.NewBot(cfg, solver.NewSolver(reg))

	if url := cfg.GetString(config.ConfigNatsURL); url != "" {
		nc, err := nats.Connect(url)
		if err != nil {
			log.Fatal().AnErr("natsConnectErr", err).Msg(":(")
		}
		replier = nc
	}

	lambda.Start(HandleRequest)
}
