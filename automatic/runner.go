package automatic

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/solver"
)

var (
	GamesCounter *expvar.Int
	IsPlaying    *expvar.Int
)

func init() {
	GamesCounter = expvar.NewInt("hangmanGamesCounter")
	IsPlaying = expvar.NewInt("hangmanIsPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// CSVHeader is the first line of the game log.
var CSVHeader = []string{"gameID", "language", "word", "length", "guesses", "wrong", "won", "letters"}

// Runner plays many games in parallel.
type Runner struct {
	solver   *solver.Solver
	threads  int
	maxWrong int
	logfile  io.Writer
}

// NewRunner reads the thread count from cfg and caps it at the number of
// CPUs.
func NewRunner(cfg *config.Config, s *solver.Solver) *Runner {
	threads := min(max(cfg.GetInt(config.ConfigAutoplayThreads), 1), runtime.NumCPU())
	return &Runner{solver: s, threads: threads, maxWrong: DefaultMaxWrong}
}

func (r *Runner) Threads() int {
	return r.threads
}

// SetLogWriter makes Play write one CSV line per game to w.
func (r *Runner) SetLogWriter(w io.Writer) {
	r.logfile = w
}

func (r *Runner) SetMaxWrong(n int) {
	r.maxWrong = n
}

// Play plays numGames games with random secret words of wordLength letters
// (any length if wordLength <= 0). Cancelling ctx stops queueing games; the
// summary covers the games that finished.
func (r *Runner) Play(ctx context.Context, lang language.Language, numGames, wordLength int) (*Summary, error) {
	if numGames <= 0 {
		return nil, fmt.Errorf("number of games must be positive, got %d", numGames)
	}
	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)

	words, err := r.secretWords(lang, wordLength)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("games", numGames).Int("threads", r.threads).Int("words", len(words)).
		Str("lang", lang.String()).Msg("starting-autoplay")

	gr := NewGameRunner(r.solver, lang)
	gr.SetMaxWrong(r.maxWrong)

	results := make(chan *GameResult, 100)
	summary := newSummary(lang, wordLength)
	collected := make(chan error, 1)
	go func() {
		collected <- r.collect(lang, results, summary)
	}()

	GamesCounter.Set(0)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.threads)
queue:
	for i := 0; i < numGames; i++ {
		select {
		case <-gctx.Done():
			log.Info().Int("queued", i).Msg("autoplay-stopping-early")
			break queue
		default:
		}
		word := words[frand.Intn(len(words))]
		g.Go(func() error {
			res, err := gr.PlayGame(word)
			if err != nil {
				return err
			}
			GamesCounter.Add(1)
			results <- res
			return nil
		})
	}
	err = g.Wait()
	close(results)
	if cerr := <-collected; err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	log.Info().Int("games", summary.Games).Int("won", summary.Won).Msg("autoplay-finished")
	return summary, nil
}

func (r *Runner) secretWords(lang language.Language, wordLength int) ([]string, error) {
	lex, err := r.solver.Registry().LexiconFor(lang)
	if err != nil {
		return nil, err
	}
	var words []string
	if wordLength > 0 {
		words = lex.WordsWithLength(wordLength)
	} else {
		words = lo.FlatMap(lex.Lengths(), func(n int, _ int) []string {
			return lex.WordsWithLength(n)
		})
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no %d-letter words in %s", wordLength, lang)
	}
	return words, nil
}

// collect drains results into summary, logging each game when a log writer
// is set.
func (r *Runner) collect(lang language.Language, results <-chan *GameResult, summary *Summary) error {
	var w *csv.Writer
	if r.logfile != nil {
		w = csv.NewWriter(r.logfile)
		w.Write(CSVHeader)
	}
	gameID := 0
	for res := range results {
		gameID++
		summary.add(res)
		if w != nil {
			w.Write([]string{
				strconv.Itoa(gameID),
				lang.String(),
				res.Word,
				strconv.Itoa(len([]rune(res.Word))),
				strconv.Itoa(res.Guesses),
				strconv.Itoa(res.Wrong),
				strconv.FormatBool(res.Won),
				string(res.Letters),
			})
		}
	}
	if w == nil {
		return nil
	}
	w.Flush()
	return w.Error()
}
