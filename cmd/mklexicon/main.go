// mklexicon turns plain word lists into a sqlite lexicon database and the
// manifest that points the registry at it.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/lexicon"
)

type options struct {
	lang     language.Language
	dbPath   string
	manifest string
	inputs   []string
}

// build loads every input, writes one table per language variant and
// returns the manifest entries for them. A list that contains umlauts also
// yields the <lang>_umlauts variant; the plain variant spells them in ASCII.
func build(ctx context.Context, opts options) ([]lexicon.ManifestEntry, error) {
	if len(opts.inputs) == 0 {
		return nil, errors.New("no word lists given")
	}
	var words []string
	for _, in := range opts.inputs {
		src := &lexicon.TextSource{Path: in}
		w, err := src.Load(ctx)
		if err != nil {
			return nil, err
		}
		log.Info().Str("source", src.String()).Int("lines", len(w)).Msg("read-word-list")
		words = append(words, w...)
	}

	base := opts.lang.Base()
	variants := map[language.Language][]string{}
	if slices.ContainsFunc(words, language.ContainsUmlaut) {
		variants[base+language.UmlautSuffix] = words
		ascii := make([]string, len(words))
		for i, w := range words {
			ascii[i] = language.ReplaceUmlauts(w)
		}
		variants[base] = ascii
	} else {
		variants[base] = words
	}

	dbName := filepath.Base(opts.dbPath)
	var entries []lexicon.ManifestEntry
	for _, lang := range []language.Language{base, base + language.UmlautSuffix} {
		w, ok := variants[lang]
		if !ok {
			continue
		}
		lex := lexicon.New(lang, w)
		if err := lexicon.WriteSQLite(ctx, opts.dbPath, lex); err != nil {
			return nil, err
		}
		log.Info().Str("lang", lang.String()).Int("words", lex.NumWords()).
			Str("checksum", fmt.Sprintf("%016x", lex.Checksum())).Msg("wrote-lexicon")
		entries = append(entries, lexicon.ManifestEntry{ID: lang.String(), Path: dbName})
	}
	return entries, nil
}

// writeManifest merges entries into the manifest at path, replacing entries
// with the same id.
func writeManifest(path string, entries []lexicon.ManifestEntry) error {
	m := &lexicon.Manifest{}
	if _, err := os.Stat(path); err == nil {
		if m, err = lexicon.LoadManifestFile(path); err != nil {
			return err
		}
	}
	for _, e := range entries {
		i := slices.IndexFunc(m.Languages, func(old lexicon.ManifestEntry) bool {
			return old.ID == e.ID
		})
		if i == -1 {
			m.Languages = append(m.Languages, e)
		} else {
			m.Languages[i] = e
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	fs := pflag.NewFlagSet("mklexicon", pflag.ExitOnError)
	lang := fs.String("lang", "de", "language of the word lists")
	out := fs.String("out", "./data/words.db", "sqlite file to write")
	manifest := fs.String("manifest", "", "manifest to create or update (default: languages.yaml next to --out)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: mklexicon [--lang L] [--out FILE] [--manifest FILE] WORDLIST...")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	l, err := language.Parse(*lang)
	if err != nil {
		log.Fatal().Err(err).Msg("bad-language")
	}
	opts := options{lang: l, dbPath: *out, manifest: *manifest, inputs: fs.Args()}
	if opts.manifest == "" {
		opts.manifest = filepath.Join(filepath.Dir(opts.dbPath), "languages.yaml")
	}

	entries, err := build(context.Background(), opts)
	if err != nil {
		log.Fatal().Err(err).Msg("build-failed")
	}
	if err := writeManifest(opts.manifest, entries); err != nil {
		log.Fatal().Err(err).Msg("manifest-failed")
	}
	log.Info().Str("manifest", opts.manifest).Msg("done")
}
