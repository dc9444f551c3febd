// Package automatic plays hangman against the solver: it picks secret
// words, always guesses the solver's best letter and records how many
// guesses each game took.
package automatic

import (
	"errors"
	"fmt"
	"slices"

	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/solver"
)

// DefaultMaxWrong is the number of wrong guesses that loses a game.
const DefaultMaxWrong = 6

var ErrNotInLexicon = errors.New("secret word is not in the lexicon")

// GameResult is the record of one game.
type GameResult struct {
	Word    string
	Guesses int
	Wrong   int
	Won     bool
	// Letters holds every guessed letter in order. A whole-word guess is
	// not a letter and is not listed.
	Letters []rune
}

// GameRunner plays single games. It keeps no per-game state and can be
// shared between goroutines.
type GameRunner struct {
	solver   *solver.Solver
	lang     language.Language
	maxWrong int
}

func NewGameRunner(s *solver.Solver, lang language.Language) *GameRunner {
	return &GameRunner{solver: s, lang: lang, maxWrong: DefaultMaxWrong}
}

func (r *GameRunner) SetMaxWrong(n int) {
	r.maxWrong = n
}

// PlayGame plays until word is fully revealed. The game keeps going past
// the maximum number of wrong guesses so that the guess counts stay
// comparable; Won records whether it ended in time.
func (r *GameRunner) PlayGame(word string) (*GameResult, error) {
	lex, err := r.solver.Registry().LexiconFor(r.lang)
	if err != nil {
		return nil, err
	}
	if !lex.HasWord(word) {
		return nil, fmt.Errorf("%w: %q (%s)", ErrNotInLexicon, word, r.lang)
	}
	secret := []rune(word)
	blanks := make([]rune, len(secret))
	for i := range blanks {
		blanks[i] = solver.Wildcard
	}
	p, err := solver.NewPattern(blanks, nil, solver.HangmanMode)
	if err != nil {
		return nil, err
	}

	res := &GameResult{Word: word}
	for !p.IsComplete() {
		sr, err := r.solver.Solve(p, r.lang, 1)
		if err != nil {
			return nil, err
		}
		if sr.State == solver.Contradiction {
			return nil, fmt.Errorf("%w: %q (%s)", ErrNotInLexicon, word, r.lang)
		}
		if _, ok := sr.Solution(); ok {
			// Only the secret itself can be left, so guessing it wins.
			res.Guesses++
			break
		}
		guess, ok := sr.BestGuess()
		if !ok {
			return nil, fmt.Errorf("no letter left to guess for %s", p)
		}
		res.Guesses++
		res.Letters = append(res.Letters, guess)
		if !slices.Contains(secret, guess) {
			res.Wrong++
			if err := p.Exclude(guess); err != nil {
				return nil, err
			}
			continue
		}
		for i, c := range secret {
			if c == guess {
				if err := p.Fix(i, c); err != nil {
					return nil, err
				}
			}
		}
	}
	res.Won = res.Wrong < r.maxWrong
	return res, nil
}
