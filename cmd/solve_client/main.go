package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/domino14/hangman/bot"
	"github.com/domino14/hangman/config"
)

func main() {
	// Connection settings come from the environment and config.yaml; the
	// command line belongs to the request.
	cfg := &config.Config{}
	if err := cfg.Load(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	fs := pflag.NewFlagSet("solve_client", pflag.ExitOnError)
	lang := fs.String("lang", "", "language of the pattern")
	xw := fs.Bool("xw", false, "crossword mode")
	maxWords := fs.Int("max", 0, "maximum number of words; 0 returns all of them")
	timeout := fs.Duration("timeout", bot.DefaultTimeout, "timeout per attempt")
	fs.Parse(os.Args[1:])
	if fs.NArg() == 0 || fs.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "usage: solve_client [--lang L] [--xw] [--max N] PATTERN [INVALID]")
		os.Exit(2)
	}

	nc, err := nats.Connect(cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		log.Fatal().AnErr("natsConnectErr", err).Msg(":(")
	}
	defer nc.Close()

	req := &bot.SolveRequest{
		Pattern:   fs.Arg(0),
		Invalid:   fs.Arg(1),
		Language:  *lang,
		Crossword: *xw,
	}
	if fs.Changed("max") {
		req.MaxWords = maxWords
	}
	c := bot.NewClient(nc, cfg.GetString(config.ConfigSolverSubject))
	c.SetRetry(*timeout, bot.DefaultAttempts, 500*time.Millisecond)
	resp, err := c.Solve(context.Background(), req)
	if err != nil {
		log.Fatal().Err(err).Msg("solve-failed")
	}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("marshal-failed")
	}
	fmt.Println(string(out))
}
