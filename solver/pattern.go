// Package solver finds the words that fit a partially revealed pattern and
// ranks the letters worth guessing next.
package solver

import (
	"errors"
	"fmt"
	"slices"
	"unicode"

	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/lexicon"
)

var ErrMalformedPattern = errors.New("malformed pattern")

// Wildcard marks an unknown position.
const Wildcard = '_'

type Mode int

const (
	// HangmanMode: a revealed letter occurs nowhere else in the word.
	HangmanMode Mode = iota
	// CrosswordMode: letters may repeat at unknown positions.
	CrosswordMode
)

func (m Mode) String() string {
	if m == CrosswordMode {
		return "crossword"
	}
	return "hangman"
}

// IsWildcard reports whether r stands for an unknown letter in pattern text.
func IsWildcard(r rune) bool {
	switch r {
	case '_', '-', '?', '.':
		return true
	}
	return false
}

type requirement struct {
	letter rune
	count  int
}

// Pattern is a word with some letters known. It also carries letters known
// not to occur, letters required somewhere among the unknown positions, and
// in crossword mode optional per-position cross sets.
type Pattern struct {
	letters  []rune
	excluded []rune
	required []requirement
	mode     Mode

	alphabet  *lexicon.Alphabet
	crossSets []lexicon.LetterSet
}

// NewPattern builds a pattern from letters (Wildcard for unknown positions) and
// excluded letters. Both must already be normalised.
func NewPattern(letters []rune, excluded []rune, mode Mode) (*Pattern, error) {
	if len(letters) == 0 {
		return nil, fmt.Errorf("%w: empty pattern", ErrMalformedPattern)
	}
	p := &Pattern{letters: slices.Clone(letters), mode: mode}
	for i, r := range p.letters {
		if r != Wildcard && !unicode.IsLetter(r) {
			return nil, fmt.Errorf("%w: %q at position %d is not a letter", ErrMalformedPattern, r, i)
		}
	}
	for _, r := range excluded {
		if IsWildcard(r) || unicode.IsSpace(r) {
			continue
		}
		if !unicode.IsLetter(r) {
			return nil, fmt.Errorf("%w: invalid letter %q is not a letter", ErrMalformedPattern, r)
		}
		if slices.Contains(p.letters, r) {
			return nil, fmt.Errorf("%w: %q is both revealed and invalid", ErrMalformedPattern, r)
		}
		if !slices.Contains(p.excluded, r) {
			p.excluded = append(p.excluded, r)
		}
	}
	slices.Sort(p.excluded)
	return p, nil
}

// ParsePattern reads pattern text the way users type it: case-insensitive, any of
// _ - ? . for unknown letters, whitespace ignored.
func ParsePattern(lang language.Language, pattern, invalid string, mode Mode) (*Pattern, error) {
	n := lang.Normalizer()
	var letters []rune
	for _, r := range n.String(pattern) {
		switch {
		case unicode.IsSpace(r):
		case IsWildcard(r):
			letters = append(letters, Wildcard)
		default:
			letters = append(letters, r)
		}
	}
	return NewPattern(letters, []rune(n.String(invalid)), mode)
}

// Require demands that letter occurs at least count times among the unknown
// positions.
func (p *Pattern) Require(letter rune, count int) error {
	if count <= 0 {
		return fmt.Errorf("%w: required count %d for %q", ErrMalformedPattern, count, letter)
	}
	if slices.Contains(p.excluded, letter) {
		return fmt.Errorf("%w: %q is both required and invalid", ErrMalformedPattern, letter)
	}
	if p.mode == HangmanMode && slices.Contains(p.letters, letter) {
		return fmt.Errorf("%w: %q is revealed and cannot occur elsewhere", ErrMalformedPattern, letter)
	}
	total := count
	for _, req := range p.required {
		if req.letter != letter {
			total += req.count
		}
	}
	if total > p.Len()-p.KnownCount() {
		return fmt.Errorf("%w: more required letters than unknown positions", ErrMalformedPattern)
	}
	for i := range p.required {
		if p.required[i].letter == letter {
			p.required[i].count = count
			return nil
		}
	}
	p.required = append(p.required, requirement{letter: letter, count: count})
	return nil
}

// SetCrossSets restricts every unknown position i to the letters in sets[i].
// Only crossword mode uses this.
func (p *Pattern) SetCrossSets(alph *lexicon.Alphabet, sets []lexicon.LetterSet) error {
	if len(sets) != p.Len() {
		return fmt.Errorf("%w: %d cross sets for %d positions", ErrMalformedPattern, len(sets), p.Len())
	}
	p.alphabet = alph
	p.crossSets = sets
	return nil
}

// Fix reveals letter r at position i.
func (p *Pattern) Fix(i int, r rune) error {
	if i < 0 || i >= len(p.letters) {
		return fmt.Errorf("%w: position %d out of range", ErrMalformedPattern, i)
	}
	if p.letters[i] == r {
		return nil
	}
	if p.letters[i] != Wildcard {
		return fmt.Errorf("%w: position %d is %q, not %q", ErrMalformedPattern, i, p.letters[i], r)
	}
	if slices.Contains(p.excluded, r) {
		return fmt.Errorf("%w: %q is invalid", ErrMalformedPattern, r)
	}
	p.letters[i] = r
	return nil
}

// Exclude marks r as not occurring at any unknown position.
func (p *Pattern) Exclude(r rune) error {
	if slices.Contains(p.letters, r) {
		return fmt.Errorf("%w: %q is both revealed and invalid", ErrMalformedPattern, r)
	}
	if i, found := slices.BinarySearch(p.excluded, r); !found {
		p.excluded = slices.Insert(p.excluded, i, r)
	}
	return nil
}

func (p *Pattern) Clone() *Pattern {
	c := *p
	c.letters = slices.Clone(p.letters)
	c.excluded = slices.Clone(p.excluded)
	c.required = slices.Clone(p.required)
	c.crossSets = slices.Clone(p.crossSets)
	return &c
}

func (p *Pattern) Len() int {
	return len(p.letters)
}

func (p *Pattern) Mode() Mode {
	return p.mode
}

// At returns the letter at position i and whether it is known.
func (p *Pattern) At(i int) (rune, bool) {
	r := p.letters[i]
	return r, r != Wildcard
}

func (p *Pattern) KnownCount() int {
	n := 0
	for _, r := range p.letters {
		if r != Wildcard {
			n++
		}
	}
	return n
}

func (p *Pattern) IsComplete() bool {
	return p.KnownCount() == p.Len()
}

// Excluded returns the invalid letters, sorted.
func (p *Pattern) Excluded() []rune {
	return slices.Clone(p.excluded)
}

// Guessed reports whether r is revealed or excluded.
func (p *Pattern) Guessed(r rune) bool {
	return slices.Contains(p.letters, r) || slices.Contains(p.excluded, r)
}

// String renders the pattern with _ for unknown positions.
func (p *Pattern) String() string {
	return string(p.letters)
}

// constrained reports whether anything beyond the length restricts matches.
func (p *Pattern) constrained() bool {
	return p.KnownCount() > 0 || len(p.excluded) > 0 || len(p.required) > 0 || p.crossSets != nil
}

