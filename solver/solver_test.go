package solver

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/testhelpers"
)

func TestSolve(t *testing.T) {
	is := is.New(t)
	s := NewSolver(testhelpers.NewRegistry())

	res, err := s.SolveString("_a_e", "", language.English, HangmanMode, 0)
	is.NoErr(err)
	is.Equal(res.State, InProgress)
	is.Equal(res.MatchingWordsCount, 7)
	is.Equal(res.Words, []string{"bake", "cake", "lake", "make", "rake", "take", "wake"})
	best, ok := res.BestGuess()
	is.True(ok)
	is.Equal(best, 'k')
	_, ok = res.Solution()
	is.True(!ok)

	res, err = s.SolveString("_A_E", "BC", language.English, HangmanMode, 0)
	is.NoErr(err)
	is.Equal(res.Input, "_a_e")
	is.Equal(res.Invalid, []rune{'b', 'c'})
	is.Equal(res.Words, []string{"lake", "make", "rake", "take", "wake"})
	is.Equal(res.LetterFrequency[0], LetterFrequency{Letter: 'k', Count: 5})
}

func TestSolveFiveLetterExample(t *testing.T) {
	is := is.New(t)
	reg := testhelpers.RegistryWith(language.English,
		"baked", "caged", "raped", "paste", "tamed", "based")
	s := NewSolver(reg)
	res, err := s.SolveString("_a_e_", "st", language.English, HangmanMode, 0)
	is.NoErr(err)
	is.Equal(res.State, InProgress)
	is.Equal(res.Words, []string{"baked", "caged", "raped"})
	is.Equal(res.LetterFrequency[0], LetterFrequency{Letter: 'd', Count: 3})
	is.Equal(res.LetterFrequency[1], LetterFrequency{Letter: 'b', Count: 1})
}

func TestSolveWideAlphabet(t *testing.T) {
	is := is.New(t)
	reg := testhelpers.RegistryWith(language.English, testhelpers.WideAlphabetWords()...)
	s := NewSolver(reg)
	res, err := s.SolveString("__", "", language.English, HangmanMode, 0)
	is.NoErr(err)
	is.Equal(res.State, InProgress)
	is.Equal(res.MatchingWordsCount, 71)
	is.Equal(len(res.LetterFrequency), 71)
	is.Equal(res.LetterFrequency[0], LetterFrequency{Letter: 'a', Count: 1})
	res, err = s.SolveString("ω_", "", language.English, CrosswordMode, 0)
	is.NoErr(err)
	is.Equal(res.Words, []string{"ωω"})
	words, err := reg.ReadWordsWithLength(language.English, 2)
	is.NoErr(err)
	is.Equal(len(words), 71)
}

func TestSolveMaxWords(t *testing.T) {
	is := is.New(t)
	s := NewSolver(testhelpers.NewRegistry())
	res, err := s.SolveString("_a_e", "", language.English, HangmanMode, 3)
	is.NoErr(err)
	is.Equal(res.MatchingWordsCount, 7)
	is.Equal(res.Words, []string{"bake", "cake", "lake"})
	// Ranking still covers every candidate.
	is.Equal(res.LetterFrequency[0], LetterFrequency{Letter: 'k', Count: 7})
}

func TestSolveStates(t *testing.T) {
	is := is.New(t)
	s := NewSolver(testhelpers.NewRegistry())

	res, err := s.SolveString("cake", "", language.English, HangmanMode, 10)
	is.NoErr(err)
	is.Equal(res.State, Solved)

	res, err = s.SolveString("ca_e", "", language.English, HangmanMode, 10)
	is.NoErr(err)
	is.Equal(res.State, InProgress)
	word, ok := res.Solution()
	is.True(ok)
	is.Equal(word, "cake")

	res, err = s.SolveString("_a_e", "k", language.English, HangmanMode, 10)
	is.NoErr(err)
	is.Equal(res.State, Contradiction)
	is.Equal(res.MatchingWordsCount, 0)
	is.Equal(len(res.Words), 0)
	is.Equal(len(res.LetterFrequency), 0)
	_, ok = res.BestGuess()
	is.True(!ok)

	// No words of this length at all.
	res, err = s.SolveString("______________", "", language.English, HangmanMode, 10)
	is.NoErr(err)
	is.Equal(res.State, Contradiction)
}

func TestSolveModes(t *testing.T) {
	is := is.New(t)
	s := NewSolver(testhelpers.NewRegistry())
	res, err := s.SolveString("t_e", "", language.English, HangmanMode, 0)
	is.NoErr(err)
	is.Equal(res.Words, []string{"toe"})
	res, err = s.SolveString("t_e", "", language.English, CrosswordMode, 0)
	is.NoErr(err)
	is.Equal(res.Words, []string{"tee", "toe"})
	is.Equal(res.Mode, CrosswordMode)
}

func TestSolveGerman(t *testing.T) {
	is := is.New(t)
	s := NewSolver(testhelpers.NewRegistry())

	res, err := s.SolveString("Gr_ße", "", language.GermanUmlauts, HangmanMode, 0)
	is.NoErr(err)
	is.Equal(res.Words, []string{"größe"})

	res, err = s.SolveString("gr_esse", "", language.German, HangmanMode, 0)
	is.NoErr(err)
	is.Equal(res.Words, []string{"groesse"})

	res, err = s.SolveString("_____", "", language.GermanUmlauts, HangmanMode, 0)
	is.NoErr(err)
	is.Equal(res.Words, []string{"größe", "traum", "ärger"})
}

func TestSolveCandidatesSatisfyPattern(t *testing.T) {
	is := is.New(t)
	s := NewSolver(testhelpers.NewRegistry())
	for _, tc := range []struct {
		pattern, invalid string
		mode             Mode
	}{
		{"_____", "", HangmanMode},
		{"_e___", "o", CrosswordMode},
		{"a____", "", HangmanMode},
		{"___", "t", CrosswordMode},
	} {
		p, err := ParsePattern(language.English, tc.pattern, tc.invalid, tc.mode)
		is.NoErr(err)
		res, err := s.Solve(p, language.English, 0)
		is.NoErr(err)
		for _, w := range res.Words {
			is.True(p.Matches(w))
		}
		again, err := s.Solve(p, language.English, 0)
		is.NoErr(err)
		is.Equal(res, again)
	}
}

func TestSolveErrors(t *testing.T) {
	is := is.New(t)
	s := NewSolver(testhelpers.NewRegistry())
	_, err := s.SolveString("_a_", "", "klingon", HangmanMode, 0)
	is.True(errors.Is(err, language.ErrUnknownLanguage))

	_, err = s.SolveString("_a_", "a", language.English, HangmanMode, 0)
	is.True(errors.Is(err, ErrMalformedPattern))
}
