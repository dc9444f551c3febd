package solver

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// Matches reports whether word fits the pattern. word must be normalised the
// same way as the pattern.
func (p *Pattern) Matches(word string) bool {
	if utf8.RuneCountInString(word) != len(p.letters) {
		return false
	}
	var countsBuf [8]int
	var counts []int
	if len(p.required) <= len(countsBuf) {
		counts = countsBuf[:len(p.required)]
	} else {
		counts = make([]int, len(p.required))
	}

	i := 0
	for _, r := range word {
		known := p.letters[i]
		if known != Wildcard {
			if r != known {
				return false
			}
			i++
			continue
		}
		if slices.Contains(p.excluded, r) {
			return false
		}
		if p.mode == HangmanMode && slices.Contains(p.letters, r) {
			return false
		}
		if p.crossSets != nil && !p.alphabet.Allows(p.crossSets[i], r) {
			return false
		}
		for j, req := range p.required {
			if req.letter == r {
				counts[j]++
			}
		}
		i++
	}
	for j, req := range p.required {
		if counts[j] < req.count {
			return false
		}
	}
	return true
}

// Filter returns the words that match p, in their original order.
func Filter(p *Pattern, words []string) []string {
	var out []string
	for _, w := range words {
		if p.Matches(w) {
			out = append(out, w)
		}
	}
	return out
}

// FilterSorted is Filter for sorted input. When the first letter is known
// only the range of words starting with it is scanned.
func FilterSorted(p *Pattern, words []string) []string {
	first, known := p.At(0)
	if !known {
		return Filter(p, words)
	}
	prefix := string(first)
	start := sort.SearchStrings(words, prefix)
	end := start
	for end < len(words) && strings.HasPrefix(words[end], prefix) {
		end++
	}
	return Filter(p, words[start:end])
}
