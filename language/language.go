// Package language names the word lists the solver can work with and knows
// how to normalise letters for each of them.
package language

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Language is a lexicon identifier such as "de" or "de_umlauts".
type Language string

const (
	German        Language = "de"
	GermanUmlauts Language = "de_umlauts"
	English       Language = "en"
)

// UmlautSuffix marks the variant of a language that keeps its umlauts.
const UmlautSuffix = "_umlauts"

var ErrUnknownLanguage = errors.New("unknown language")

// UnknownLanguageError is returned when no word list is available for the
// requested language.
type UnknownLanguageError struct {
	Language string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("unknown language: %q", e.Language)
}

func (e *UnknownLanguageError) Is(target error) bool {
	return target == ErrUnknownLanguage
}

// All lists the built-in language identifiers.
func All() []Language {
	return []Language{German, GermanUmlauts, English}
}

// FromString normalises an identifier: surrounding space is dropped, it is
// lowercased and dashes become underscores. It does not check whether the
// language exists.
func FromString(s string) Language {
	s = strings.ToLower(strings.TrimSpace(s))
	return Language(strings.ReplaceAll(s, "-", "_"))
}

// Parse normalises s and rejects identifiers that cannot name a lexicon.
func Parse(s string) (Language, error) {
	l := FromString(s)
	if l == "" {
		return "", &UnknownLanguageError{Language: s}
	}
	for _, r := range l {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", &UnknownLanguageError{Language: s}
		}
	}
	return l, nil
}

func (l Language) String() string {
	return string(l)
}

// Base strips the umlaut suffix: "de_umlauts" becomes "de".
func (l Language) Base() Language {
	return Language(strings.TrimSuffix(string(l), UmlautSuffix))
}

// KeepsUmlauts reports whether this is the umlaut-preserving variant.
func (l Language) KeepsUmlauts() bool {
	return strings.HasSuffix(string(l), UmlautSuffix)
}

// Tag returns the BCP 47 tag used for case mapping. Unknown identifiers map
// to the undetermined tag.
func (l Language) Tag() xlanguage.Tag {
	base := strings.SplitN(string(l.Base()), "_", 2)[0]
	tag, err := xlanguage.Parse(base)
	if err != nil {
		return xlanguage.Und
	}
	return tag
}

// Normalizer lowercases and NFC-normalises text for one language. It is not
// safe for concurrent use; create one per goroutine.
type Normalizer struct {
	caser cases.Caser
}

func (l Language) Normalizer() *Normalizer {
	return &Normalizer{caser: cases.Lower(l.Tag())}
}

func (n *Normalizer) String(s string) string {
	return norm.NFC.String(n.caser.String(s))
}

// Lower is a convenience for one-off normalisation.
func (l Language) Lower(s string) string {
	return l.Normalizer().String(s)
}

var umlautReplacer = strings.NewReplacer(
	"ß", "ss",
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ẞ", "SS",
	"Ä", "Ae",
	"Ö", "Oe",
	"Ü", "Ue",
)

// ReplaceUmlauts spells German umlauts and sharp s with ASCII letters.
func ReplaceUmlauts(s string) string {
	return umlautReplacer.Replace(s)
}

// ContainsUmlaut reports whether s has one of the letters ReplaceUmlauts
// rewrites.
func ContainsUmlaut(s string) bool {
	return strings.ContainsAny(s, "ßäöüẞÄÖÜ")
}
