package solver

import (
	"slices"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/lexicon"
)

func mustPattern(t *testing.T, pattern, invalid string, mode Mode) *Pattern {
	t.Helper()
	p, err := ParsePattern(language.English, pattern, invalid, mode)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestMatches(t *testing.T) {
	is := is.New(t)
	type testcase struct {
		pattern string
		invalid string
		mode    Mode
		word    string
		matches bool
	}
	cases := []testcase{
		{"_a_e", "", HangmanMode, "bake", true},
		{"_a_e", "b", HangmanMode, "bake", false},
		{"_a_e", "", HangmanMode, "bakes", false},
		{"_a_e", "", HangmanMode, "bike", false},
		// Revealed letters occur nowhere else in hangman mode.
		{"t_e", "", HangmanMode, "tee", false},
		{"t_e", "", CrosswordMode, "tee", true},
		{"t_e", "", HangmanMode, "toe", true},
		{"gr_ße", "", HangmanMode, "größe", true},
	}
	for _, tc := range cases {
		p := mustPattern(t, tc.pattern, tc.invalid, tc.mode)
		is.Equal(p.Matches(tc.word), tc.matches)
	}
}

func TestMatchesRequired(t *testing.T) {
	is := is.New(t)
	words := []string{"apple", "belly", "hello", "jelly"}

	p := mustPattern(t, "_____", "", CrosswordMode)
	is.NoErr(p.Require('l', 2))
	is.Equal(Filter(p, words), []string{"belly", "hello", "jelly"})

	p = mustPattern(t, "_____", "", CrosswordMode)
	is.NoErr(p.Require('p', 2))
	is.Equal(Filter(p, words), []string{"apple"})

	// A known position never counts towards a requirement.
	p = mustPattern(t, "__l__", "", CrosswordMode)
	is.NoErr(p.Require('l', 1))
	is.Equal(Filter(p, words), []string{"belly", "hello", "jelly"})
	p = mustPattern(t, "__l__", "", CrosswordMode)
	is.NoErr(p.Require('l', 2))
	is.Equal(len(Filter(p, words)), 0)
}

func TestMatchesCrossSets(t *testing.T) {
	is := is.New(t)
	lex := lexicon.New(language.English, []string{"bat", "cat", "hat", "tea"})
	alph, err := lex.Alphabet()
	is.NoErr(err)
	p := mustPattern(t, "___", "", CrosswordMode)
	is.NoErr(p.SetCrossSets(alph, []lexicon.LetterSet{
		alph.Set('b', 'c'), alph.Full(), alph.Full(),
	}))
	is.Equal(Filter(p, lex.WordsWithLength(3)), []string{"bat", "cat"})
	is.True(p.SetCrossSets(alph, nil) != nil)
}

func TestFilterSortedAgreesWithFilter(t *testing.T) {
	is := is.New(t)
	words := []string{"bake", "bite", "cake", "kite", "lake", "make", "rake", "site", "take", "wake"}
	is.True(slices.IsSorted(words))
	for _, pt := range []string{"c_k_", "_a_e", "s___", "z___", "w__e", "____"} {
		p := mustPattern(t, pt, "", HangmanMode)
		is.Equal(FilterSorted(p, words), Filter(p, words))
	}
	p := mustPattern(t, "c_k_", "", HangmanMode)
	is.Equal(FilterSorted(p, words), []string{"cake"})
}
