// Package lexicon holds word lists bucketed by length, the sources they are
// loaded from and the registry that loads each language once.
package lexicon

import (
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"

	"github.com/domino14/hangman/language"
)

// Lexicon is an immutable word list for one language. Words are lowercase,
// NFC-normalised and unique; each length bucket is sorted.
type Lexicon struct {
	name       language.Language
	buckets    map[int][]string
	numLetters int
	checksum   uint64
	numWords   int

	alphabetOnce sync.Once
	alphabet     *Alphabet
	alphabetErr  error
}

// New builds a lexicon from raw words. Lines that are empty or contain
// anything other than letters are skipped.
func New(lang language.Language, words []string) *Lexicon {
	n := lang.Normalizer()
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		w = n.String(w)
		if !isSingleWord(w) {
			continue
		}
		normalized = append(normalized, w)
	}
	normalized = lo.Uniq(normalized)

	buckets := lo.GroupBy(normalized, func(w string) int {
		return utf8.RuneCountInString(w)
	})
	for _, b := range buckets {
		slices.Sort(b)
	}
	lex := &Lexicon{
		name:       lang,
		buckets:    buckets,
		numLetters: len(distinctLetters(buckets)),
		numWords:   len(normalized),
	}
	lex.checksum = lex.computeChecksum()
	return lex
}

func isSingleWord(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func (l *Lexicon) computeChecksum() uint64 {
	h := xxhash.New()
	for _, length := range l.Lengths() {
		for _, w := range l.buckets[length] {
			h.Write([]byte(w))
			h.Write([]byte{'\n'})
		}
	}
	return h.Sum64()
}

func (l *Lexicon) Name() language.Language {
	return l.name
}

// WordsWithLength returns the sorted bucket of words with exactly length
// runes. The slice is shared and must not be modified.
func (l *Lexicon) WordsWithLength(length int) []string {
	return l.buckets[length]
}

// Lengths returns the word lengths present, ascending.
func (l *Lexicon) Lengths() []int {
	lengths := lo.Keys(l.buckets)
	slices.Sort(lengths)
	return lengths
}

func (l *Lexicon) NumWords() int {
	return l.numWords
}

// NumLetters is the number of distinct letters used by the words.
func (l *Lexicon) NumLetters() int {
	return l.numLetters
}

// Alphabet indexes the lexicon's letters for cross sets. It is built on
// first use and fails with ErrAlphabetTooLarge when the lexicon uses more
// than MaxAlphabetSize letters; plain word lookups never need it.
func (l *Lexicon) Alphabet() (*Alphabet, error) {
	l.alphabetOnce.Do(func() {
		l.alphabet, l.alphabetErr = newAlphabet(l.buckets)
	})
	return l.alphabet, l.alphabetErr
}

// Checksum is an xxhash of the lexicon content; two lexicons with the same
// words have the same checksum.
func (l *Lexicon) Checksum() uint64 {
	return l.checksum
}

// HasWord reports whether w (already normalised) is in the lexicon.
func (l *Lexicon) HasWord(w string) bool {
	_, found := slices.BinarySearch(l.buckets[utf8.RuneCountInString(w)], w)
	return found
}
