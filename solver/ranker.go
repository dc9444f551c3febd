package solver

import (
	"cmp"
	"slices"
)

// LetterFrequency is how often a letter appears in the unknown positions
// of the candidate words.
type LetterFrequency struct {
	Letter rune
	Count  int
}

// RankLetters counts letters over the unknown positions of words. In hangman
// mode a letter counts once per word, so Count is the number of candidates
// a guess would reveal something in; crossword mode counts every
// occurrence. Revealed and excluded letters are never ranked. The result is
// ordered by count, descending, then by letter.
func RankLetters(p *Pattern, words []string) []LetterFrequency {
	counts := make(map[rune]int)
	var seen []rune
	for _, w := range words {
		seen = seen[:0]
		i := 0
		for _, r := range w {
			if _, known := p.At(i); known {
				i++
				continue
			}
			i++
			if p.Guessed(r) {
				continue
			}
			if p.mode == HangmanMode {
				if slices.Contains(seen, r) {
					continue
				}
				seen = append(seen, r)
			}
			counts[r]++
		}
	}

	freqs := make([]LetterFrequency, 0, len(counts))
	for r, c := range counts {
		freqs = append(freqs, LetterFrequency{Letter: r, Count: c})
	}
	slices.SortFunc(freqs, func(a, b LetterFrequency) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Letter, b.Letter)
	})
	return freqs
}
