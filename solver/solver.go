package solver

import (
	"slices"

	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/lexicon"
)

// Solver answers hangman queries against the lexicons of a registry. It
// holds no other state and is safe for concurrent use.
type Solver struct {
	registry *lexicon.Registry
}

func NewSolver(reg *lexicon.Registry) *Solver {
	return &Solver{registry: reg}
}

func (s *Solver) Registry() *lexicon.Registry {
	return s.registry
}

// Solve finds every word of lang that fits p and ranks the letters left to
// guess. At most maxWords words are returned (all of them if maxWords <= 0);
// MatchingWordsCount is always exact. The only error is an unknown
// language: no candidates is a Contradiction result.
func (s *Solver) Solve(p *Pattern, lang language.Language, maxWords int) (*HangmanResult, error) {
	lex, err := s.registry.LexiconFor(lang)
	if err != nil {
		return nil, err
	}
	bucket := lex.WordsWithLength(p.Len())
	matches := bucket
	if p.constrained() {
		matches = FilterSorted(p, bucket)
	}

	words := matches
	if maxWords > 0 && len(words) > maxWords {
		words = words[:maxWords]
	}
	res := &HangmanResult{
		Input:              p.String(),
		Invalid:            p.Excluded(),
		Language:           lang,
		Mode:               p.Mode(),
		MatchingWordsCount: len(matches),
		Words:              slices.Clone(words),
		LetterFrequency:    RankLetters(p, matches),
	}
	switch {
	case len(matches) == 0:
		res.State = Contradiction
	case len(matches) == 1 && p.IsComplete():
		res.State = Solved
	default:
		res.State = InProgress
	}
	return res, nil
}

// SolveString parses pattern and invalid, then calls Solve.
func (s *Solver) SolveString(pattern, invalid string, lang language.Language, mode Mode, maxWords int) (*HangmanResult, error) {
	p, err := ParsePattern(lang, pattern, invalid, mode)
	if err != nil {
		return nil, err
	}
	return s.Solve(p, lang, maxWords)
}
