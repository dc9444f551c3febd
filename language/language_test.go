package language

import (
	"errors"
	"fmt"
	"testing"

	"github.com/matryer/is"
)

func TestFromString(t *testing.T) {
	is := is.New(t)
	is.Equal(FromString("DE"), German)
	is.Equal(FromString(" de-umlauts "), GermanUmlauts)
	is.Equal(FromString("en"), English)
}

func TestParse(t *testing.T) {
	is := is.New(t)
	l, err := Parse("De-Umlauts")
	is.NoErr(err)
	is.Equal(l, GermanUmlauts)

	_, err = Parse("")
	is.True(errors.Is(err, ErrUnknownLanguage))

	_, err = Parse("en/../../etc")
	var ule *UnknownLanguageError
	is.True(errors.As(err, &ule))
	is.Equal(ule.Language, "en/../../etc")
}

func TestUnknownLanguageErrorWrapped(t *testing.T) {
	is := is.New(t)
	err := fmt.Errorf("loading: %w", &UnknownLanguageError{Language: "klingon"})
	is.True(errors.Is(err, ErrUnknownLanguage))
	is.Equal(err.Error(), `loading: unknown language: "klingon"`)
}

func TestBaseAndTag(t *testing.T) {
	is := is.New(t)
	is.Equal(GermanUmlauts.Base(), German)
	is.True(GermanUmlauts.KeepsUmlauts())
	is.True(!German.KeepsUmlauts())
	is.Equal(GermanUmlauts.Tag().String(), "de")
	is.Equal(Language("???").Tag().String(), "und")
}

func TestLower(t *testing.T) {
	is := is.New(t)
	is.Equal(German.Lower("STRAẞE"), "straße")
	is.Equal(GermanUmlauts.Lower("ÄRGER"), "ärger")
	// Decomposed a + combining diaeresis composes to a single rune.
	is.Equal(German.Lower("Ä"), "ä")
}

func TestReplaceUmlauts(t *testing.T) {
	is := is.New(t)
	is.Equal(ReplaceUmlauts("straße"), "strasse")
	is.Equal(ReplaceUmlauts("äöü"), "aeoeue")
	is.True(ContainsUmlaut("größe"))
	is.True(!ContainsUmlaut("groesse"))
}
