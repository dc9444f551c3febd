package lexicon

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domino14/hangman/language"
)

const (
	FormatText   = "text"
	FormatSQLite = "sqlite"

	UmlautsKeep  = "keep"
	UmlautsASCII = "ascii"
)

// ManifestEntry describes where the words of one language live.
//
//	languages:
//	  - id: en
//	    path: words.db
//	  - id: de_umlauts
//	    path: german.txt.gz
//	  - id: de
//	    path: german.txt.gz
//	    umlauts: ascii
type ManifestEntry struct {
	ID      string `yaml:"id"`
	Path    string `yaml:"path"`
	Format  string `yaml:"format,omitempty"`
	Umlauts string `yaml:"umlauts,omitempty"`
	// Table language inside a sqlite file; defaults to ID.
	Lang string `yaml:"lang,omitempty"`
}

type Manifest struct {
	Languages []ManifestEntry `yaml:"languages"`
}

func LoadManifest(r io.Reader) (*Manifest, error) {
	m := &Manifest{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil {
		if err == io.EOF {
			return m, nil
		}
		return nil, fmt.Errorf("bad manifest: %w", err)
	}
	return m, nil
}

func LoadManifestFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadManifest(f)
}

// Write serialises the manifest, as cmd/mklexicon does.
func (m *Manifest) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}

// Source builds the source for an entry. Relative paths resolve against
// baseDir.
func (e ManifestEntry) Source(baseDir string) (language.Language, Source, error) {
	lang, err := language.Parse(e.ID)
	if err != nil {
		return "", nil, err
	}
	if e.Path == "" {
		return "", nil, fmt.Errorf("language %s: no path", lang)
	}
	path := e.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	format := e.Format
	if format == "" {
		format = formatFromPath(path)
	}
	var src Source
	switch format {
	case FormatText:
		src = &TextSource{Path: path}
	case FormatSQLite:
		table := e.Lang
		if table == "" {
			table = lang.String()
		}
		src = &SQLiteSource{Path: path, Lang: table}
	default:
		return "", nil, fmt.Errorf("language %s: unknown format %q", lang, format)
	}
	switch e.Umlauts {
	case "", UmlautsKeep:
	case UmlautsASCII:
		src = WithASCIIUmlauts(src)
	default:
		return "", nil, fmt.Errorf("language %s: unknown umlauts setting %q", lang, e.Umlauts)
	}
	return lang, src, nil
}

func formatFromPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".db"), strings.HasSuffix(path, ".sqlite"):
		return FormatSQLite
	default:
		return FormatText
	}
}
