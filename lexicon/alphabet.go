package lexicon

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// MaxAlphabetSize should be below 64 so that a LetterSet fits in a
	// 64-bit int.
	MaxAlphabetSize = 62
)

var ErrAlphabetTooLarge = errors.New("exceeded max alphabet size")

// Alphabet maps every letter used by a lexicon to a small index. Indices are
// assigned in rune order so they are stable for a given word list.
type Alphabet struct {
	vals    map[rune]uint8
	letters []rune
}

func distinctLetters(buckets map[int][]string) []rune {
	seen := make(map[rune]struct{})
	for _, words := range buckets {
		for _, w := range words {
			for _, r := range w {
				seen[r] = struct{}{}
			}
		}
	}
	letters := make([]rune, 0, len(seen))
	for r := range seen {
		letters = append(letters, r)
	}
	slices.Sort(letters)
	return letters
}

func newAlphabet(buckets map[int][]string) (*Alphabet, error) {
	letters := distinctLetters(buckets)
	if len(letters) > MaxAlphabetSize {
		return nil, fmt.Errorf("%w: %d letters", ErrAlphabetTooLarge, len(letters))
	}
	vals := make(map[rune]uint8, len(letters))
	for i, r := range letters {
		vals[r] = uint8(i)
	}
	return &Alphabet{vals: vals, letters: letters}, nil
}

// Val returns the index of r and whether r belongs to the alphabet.
func (a *Alphabet) Val(r rune) (uint8, bool) {
	v, ok := a.vals[r]
	return v, ok
}

func (a *Alphabet) Letter(v uint8) rune {
	return a.letters[v]
}

func (a *Alphabet) NumLetters() int {
	return len(a.letters)
}

// Letters returns the alphabet in index order.
func (a *Alphabet) Letters() []rune {
	return slices.Clone(a.letters)
}

// Set builds the LetterSet holding the given letters. Letters outside the
// alphabet are ignored.
func (a *Alphabet) Set(letters ...rune) LetterSet {
	var s LetterSet
	for _, r := range letters {
		if v, ok := a.vals[r]; ok {
			s.Add(v)
		}
	}
	return s
}

// Full is the set of every letter in the alphabet.
func (a *Alphabet) Full() LetterSet {
	if len(a.letters) == 0 {
		return 0
	}
	return LetterSet(1)<<uint(len(a.letters)) - 1
}

// Allows reports whether r is in s.
func (a *Alphabet) Allows(s LetterSet, r rune) bool {
	v, ok := a.vals[r]
	return ok && s.Has(v)
}

// Format lists the letters in s, in alphabet order.
func (a *Alphabet) Format(s LetterSet) string {
	var b strings.Builder
	for i, r := range a.letters {
		if s.Has(uint8(i)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// A LetterSet is a bit mask of alphabet indices. Crossword slots use it to
// record the letters a neighbouring slot still allows at a crossing.
type LetterSet uint64

// TrivialLetterSet allows every possible letter.
const TrivialLetterSet = LetterSet(1)<<MaxAlphabetSize - 1

func (s LetterSet) Has(v uint8) bool {
	return s&(1<<v) != 0
}

func (s *LetterSet) Add(v uint8) {
	*s |= 1 << v
}

func (s *LetterSet) Clear() {
	*s = 0
}

func (s LetterSet) Intersect(o LetterSet) LetterSet {
	return s & o
}

func (s LetterSet) Empty() bool {
	return s == 0
}
