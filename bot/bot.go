// Package bot answers solve requests sent over NATS.
package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/solver"
)

// SolveRequest is the JSON body of a request.
type SolveRequest struct {
	Pattern   string `json:"pattern"`
	Invalid   string `json:"invalid,omitempty"`
	Language  string `json:"language,omitempty"`
	Crossword bool   `json:"crossword,omitempty"`
	// MaxWords caps the returned words; absent means the configured
	// default, 0 or less means all of them.
	MaxWords  *int   `json:"max_words,omitempty"`
}

type LetterCount struct {
	Letter string `json:"letter"`
	Count  int    `json:"count"`
}

// SolveResponse carries either a result or Error.
type SolveResponse struct {
	Input              string        `json:"input,omitempty"`
	Invalid            string        `json:"invalid,omitempty"`
	Language           string        `json:"language,omitempty"`
	Mode               string        `json:"mode,omitempty"`
	State              string        `json:"state,omitempty"`
	MatchingWordsCount int           `json:"matching_words_count"`
	Words              []string      `json:"words,omitempty"`
	LetterFrequency    []LetterCount `json:"letter_frequency,omitempty"`
	Error              string        `json:"error,omitempty"`
}

func errorResponse(message string, err error) *SolveResponse {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &SolveResponse{Error: msg}
}

func responseFromResult(res *solver.HangmanResult) *SolveResponse {
	resp := &SolveResponse{
		Input:              res.Input,
		Invalid:            string(res.Invalid),
		Language:           res.Language.String(),
		Mode:               res.Mode.String(),
		State:              res.State.String(),
		MatchingWordsCount: res.MatchingWordsCount,
		Words:              res.Words,
	}
	for _, lf := range res.LetterFrequency {
		resp.LetterFrequency = append(resp.LetterFrequency, LetterCount{Letter: string(lf.Letter), Count: lf.Count})
	}
	return resp
}

type Bot struct {
	solver      *solver.Solver
	defaultLang language.Language
	maxWords    int
}

func NewBot(cfg *config.Config, s *solver.Solver) *Bot {
	return &Bot{
		solver:      s,
		defaultLang: language.FromString(cfg.GetString(config.ConfigDefaultLanguage)),
		maxWords:    cfg.GetInt(config.ConfigMaxWords),
	}
}

// Solve answers req. Every failure, including an unknown language, is
// reported in the response.
func (bot *Bot) Solve(req *SolveRequest) *SolveResponse {
	lang := bot.defaultLang
	if req.Language != "" {
		var err error
		lang, err = language.Parse(strings.TrimSpace(req.Language))
		if err != nil {
			return errorResponse("Bad language", err)
		}
	}
	mode := solver.HangmanMode
	if req.Crossword {
		mode = solver.CrosswordMode
	}
	maxWords := bot.maxWords
	if req.MaxWords != nil {
		maxWords = *req.MaxWords
	}
	res, err := bot.solver.SolveString(req.Pattern, req.Invalid, lang, mode, maxWords)
	if err != nil {
		return errorResponse("Could not solve", err)
	}
	return responseFromResult(res)
}

// Handle decodes a JSON request and solves it.
func (bot *Bot) Handle(data []byte) *SolveResponse {
	req := &SolveRequest{}
	if err := json.Unmarshal(data, req); err != nil {
		return errorResponse("Could not parse request", err)
	}
	return bot.Solve(req)
}

// Serve answers requests on subject until ctx is done, then drains the
// subscription.
func Serve(ctx context.Context, nc *nats.Conn, subject string, bot *Bot) error {
	sub, err := nc.Subscribe(subject, func(m *nats.Msg) {
		log.Debug().Int("bytes", len(m.Data)).Msg("solve-request")
		resp := bot.Handle(m.Data)
		data, err := json.Marshal(resp)
		if err != nil {
			// Should never happen, ideally, but we need to do something sensible here.
			m.Respond([]byte(err.Error()))
			return
		}
		if err := m.Respond(data); err != nil {
			log.Err(err).Msg("respond-failed")
		}
	})
	if err != nil {
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	if err := nc.LastError(); err != nil {
		return err
	}
	log.Info().Msgf("Listening on [%s]", subject)

	<-ctx.Done()
	log.Info().Msg("draining-subscription")
	return sub.Drain()
}

// Main connects to NATS and serves until ctx is done.
func Main(ctx context.Context, cfg *config.Config, bot *Bot) error {
	nc, err := nats.Connect(cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		return err
	}
	defer nc.Close()
	return Serve(ctx, nc, cfg.GetString(config.ConfigSolverSubject), bot)
}
