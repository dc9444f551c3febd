package solver

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/domino14/hangman/language"
)

// DefaultWidth is the line width used by HangmanResult.String.
const DefaultWidth = 80

type State int

const (
	InProgress State = iota
	Solved
	Contradiction
)

func (s State) String() string {
	switch s {
	case Solved:
		return "solved"
	case Contradiction:
		return "contradiction"
	default:
		return "in-progress"
	}
}

// HangmanResult is the answer to one solve call.
type HangmanResult struct {
	Input    string
	Invalid  []rune
	Language language.Language
	Mode     Mode
	State    State
	// MatchingWordsCount counts every candidate; Words may be capped.
	MatchingWordsCount int
	Words              []string
	LetterFrequency    []LetterFrequency
}

// BestGuess is the most frequent letter, if there is one.
func (r *HangmanResult) BestGuess() (rune, bool) {
	if len(r.LetterFrequency) == 0 {
		return 0, false
	}
	return r.LetterFrequency[0].Letter, true
}

// Solution returns the word when exactly one candidate is left.
func (r *HangmanResult) Solution() (string, bool) {
	if r.MatchingWordsCount != 1 || len(r.Words) != 1 {
		return "", false
	}
	return r.Words[0], true
}

func (r *HangmanResult) String() string {
	return r.Format(DefaultWidth)
}

// Format renders the result on up to three lines no wider than width:
//
//	Found 3 words (input: _a__e, invalid: st)
//	 words:   baked, caged, raked
//	 letters: k: 2, b: 1, c: 1, ...
func (r *HangmanResult) Format(width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d words (input: %s, invalid: %s)",
		r.MatchingWordsCount, r.Input, string(r.Invalid))
	if len(r.Words) == 0 {
		return b.String()
	}
	const wordsPrefix = " words:   "
	b.WriteString("\n" + wordsPrefix)
	b.WriteString(joinWithMaxLength(r.Words, ", ", width-len(wordsPrefix)))

	if len(r.LetterFrequency) > 0 {
		const lettersPrefix = " letters: "
		letters := make([]string, len(r.LetterFrequency))
		for i, lf := range r.LetterFrequency {
			letters[i] = fmt.Sprintf("%c: %d", lf.Letter, lf.Count)
		}
		b.WriteString("\n" + lettersPrefix)
		b.WriteString(joinWithMaxLength(letters, ", ", width-len(lettersPrefix)))
	}
	return b.String()
}

// joinWithMaxLength joins items with sep, stopping with "..." before the
// result would get longer than maxLen runes.
func joinWithMaxLength(items []string, sep string, maxLen int) string {
	var b strings.Builder
	n := 0
	last := len(items) - 1
	sepLen := utf8.RuneCountInString(sep)
	for i, item := range items {
		curSep, curSepLen := sep, sepLen
		if i == 0 {
			curSep, curSepLen = "", 0
		}
		reserve := 0
		if i != last {
			reserve = sepLen + 3
		}
		itemLen := utf8.RuneCountInString(item)
		if n+curSepLen+itemLen+reserve > maxLen {
			b.WriteString(curSep)
			b.WriteString("...")
			break
		}
		b.WriteString(curSep)
		b.WriteString(item)
		n += curSepLen + itemLen
	}
	return b.String()
}
