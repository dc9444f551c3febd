package lexicon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/hangman/cache"
	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/language"
)

// ManifestName is looked up in the data directory when no manifest is
// configured.
const ManifestName = "languages.yaml"

// Registry maps languages to their sources and loads each lexicon once, on
// first use. Loaded lexicons are shared read-only between goroutines.
type Registry struct {
	mu       sync.RWMutex
	sources  map[language.Language]Source
	lexicons *cache.Cache[*Lexicon]
}

func NewRegistry() *Registry {
	return &Registry{
		sources:  make(map[language.Language]Source),
		lexicons: cache.New[*Lexicon](),
	}
}

// Register sets the source for lang. A lexicon already loaded for lang is
// dropped.
func (r *Registry) Register(lang language.Language, src Source) {
	r.mu.Lock()
	r.sources[lang] = src
	r.mu.Unlock()
	r.lexicons.Evict(lang.String())
}

// Languages returns the registered languages, sorted.
func (r *Registry) Languages() []language.Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	langs := make([]language.Language, 0, len(r.sources))
	for l := range r.sources {
		langs = append(langs, l)
	}
	slices.Sort(langs)
	return langs
}

func (r *Registry) source(lang language.Language) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.sources[lang]
	return src, ok
}

// LexiconFor returns the lexicon for lang, loading it if needed.
func (r *Registry) LexiconFor(lang language.Language) (*Lexicon, error) {
	return r.load(context.Background(), lang)
}

func (r *Registry) load(ctx context.Context, lang language.Language) (*Lexicon, error) {
	src, ok := r.source(lang)
	if !ok {
		return nil, &language.UnknownLanguageError{Language: lang.String()}
	}
	return r.lexicons.Get(lang.String(), func(string) (*Lexicon, error) {
		ts := time.Now()
		// Other callers may join this load; one caller giving up must not
		// fail it for the rest.
		words, err := src.Load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, fmt.Errorf("loading %s from %s: %w", lang, src, err)
		}
		lex := New(lang, words)
		log.Info().Str("language", lang.String()).Str("source", src.String()).
			Int("words", lex.NumWords()).Int("letters", lex.NumLetters()).
			Uint64("checksum", lex.Checksum()).Dur("took", time.Since(ts)).
			Msg("loaded-lexicon")
		return lex, nil
	})
}

// ReadWordsWithLength returns a copy of the words of lang that are exactly
// length letters long. The result is empty, not nil, when there are none.
func (r *Registry) ReadWordsWithLength(lang language.Language, length int) ([]string, error) {
	lex, err := r.LexiconFor(lang)
	if err != nil {
		return nil, err
	}
	words := lex.WordsWithLength(length)
	if words == nil {
		return []string{}, nil
	}
	return slices.Clone(words), nil
}

// Preload loads the given languages in parallel; with no arguments it loads
// every registered language. A failing language does not stop the others.
// Loads already started finish even if ctx is cancelled.
func (r *Registry) Preload(ctx context.Context, langs ...language.Language) error {
	if len(langs) == 0 {
		langs = r.Languages()
	}
	var g errgroup.Group
	for _, lang := range langs {
		lang := lang
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := r.load(ctx, lang)
			return err
		})
	}
	return g.Wait()
}

// Evict forgets the loaded lexicon for lang; the next use reloads it.
func (r *Registry) Evict(lang language.Language) {
	r.lexicons.Evict(lang.String())
}

// Loaded reports whether lang has already been loaded.
func (r *Registry) Loaded(lang language.Language) bool {
	_, ok := r.lexicons.Peek(lang.String())
	return ok
}

// AddManifest registers every entry of m. Relative paths resolve against
// baseDir.
func (r *Registry) AddManifest(m *Manifest, baseDir string) error {
	for _, e := range m.Languages {
		lang, src, err := e.Source(baseDir)
		if err != nil {
			return err
		}
		r.Register(lang, src)
	}
	return nil
}

// NewRegistryFromConfig builds a registry from the configured manifest. With
// no manifest, <data-path>/languages.yaml is used if present; otherwise the
// data directory is scanned for <lang>.txt, <lang>.txt.gz and *.db files.
func NewRegistryFromConfig(cfg *config.Config) (*Registry, error) {
	r := NewRegistry()
	dataPath := cfg.GetString(config.ConfigDataPath)
	manifestPath := cfg.GetString(config.ConfigLexiconManifest)
	if manifestPath == "" {
		candidate := filepath.Join(dataPath, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			manifestPath = candidate
		}
	}
	if manifestPath != "" {
		m, err := LoadManifestFile(manifestPath)
		if err != nil {
			return nil, err
		}
		if err := r.AddManifest(m, filepath.Dir(manifestPath)); err != nil {
			return nil, err
		}
		log.Debug().Str("manifest", manifestPath).Interface("languages", r.Languages()).
			Msg("registry-from-manifest")
		return r, nil
	}
	if err := r.scan(dataPath); err != nil {
		return nil, err
	}
	log.Debug().Str("data-path", dataPath).Interface("languages", r.Languages()).
		Msg("registry-from-scan")
	return r, nil
}

func (r *Registry) scan(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn().Str("dir", dir).Msg("data-path-missing")
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		path := filepath.Join(dir, name)
		switch {
		case strings.HasSuffix(name, ".txt"), strings.HasSuffix(name, ".txt.gz"):
			id := strings.TrimSuffix(strings.TrimSuffix(name, ".gz"), ".txt")
			lang, err := language.Parse(id)
			if err != nil {
				log.Warn().Str("file", name).Msg("skipping-word-list")
				continue
			}
			r.Register(lang, &TextSource{Path: path})
		case strings.HasSuffix(name, ".db"):
			langs, err := SQLiteLanguages(context.Background(), path)
			if err != nil {
				return err
			}
			for _, id := range langs {
				lang, err := language.Parse(id)
				if err != nil {
					log.Warn().Str("file", name).Str("lang", id).Msg("skipping-db-language")
					continue
				}
				r.Register(lang, &SQLiteSource{Path: path, Lang: id})
			}
		}
	}
	return nil
}
