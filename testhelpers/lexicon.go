package testhelpers

import (
	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/lexicon"
)

var DefaultConfig = config.DefaultConfig()

// EnglishWords is a tiny English word list used across package tests.
var EnglishWords = []string{
	"ago", "bat", "cat", "hat", "tea", "toe", "tee", "ten",
	"bake", "cake", "lake", "make", "rake", "take", "wake", "kite", "bite", "site",
	"apple", "angle", "ample", "eagle", "hello", "jelly", "belly",
}

// GermanWords keeps its umlauts; the plain "de" lexicon spells them out.
var GermanWords = []string{
	"Haus", "Maus", "Baum", "Raum", "Traum", "Straße", "Größe", "Ärger", "Bär", "Tür",
}

// NewRegistry returns a registry serving en, de and de_umlauts from memory.
func NewRegistry() *lexicon.Registry {
	r := lexicon.NewRegistry()
	r.Register(language.English, lexicon.MemorySource(EnglishWords))
	r.Register(language.GermanUmlauts, lexicon.MemorySource(GermanWords))
	r.Register(language.German, lexicon.WithASCIIUmlauts(lexicon.MemorySource(GermanWords)))
	return r
}

// RegistryWith returns a registry serving words under lang.
func RegistryWith(lang language.Language, words ...string) *lexicon.Registry {
	r := lexicon.NewRegistry()
	r.Register(lang, lexicon.MemorySource(words))
	return r
}

// WideAlphabetWords returns doubled-letter words over 71 distinct letters
// (Greek, Latin and Cyrillic), more than a cross set can index.
func WideAlphabetWords() []string {
	var words []string
	add := func(from rune, n int) {
		for r := from; r < from+rune(n); r++ {
			words = append(words, string(r)+string(r))
		}
	}
	add('α', 25)
	add('a', 26)
	add('а', 20)
	return words
}
