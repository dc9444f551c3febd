package lexicon

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/domino14/hangman/language"
)

// A Source produces the raw words of a lexicon. Words are normalised by New,
// so sources may return them in any case or order.
type Source interface {
	Load(ctx context.Context) ([]string, error)
	String() string
}

// TextSource reads one word per line. Paths ending in .gz are decompressed.
type TextSource struct {
	Path string
}

func (s *TextSource) String() string {
	return "text:" + s.Path
}

func (s *TextSource) Load(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(s.Path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Path, err)
		}
		defer gz.Close()
		r = gz
	}
	return readLines(ctx, r)
}

func readLines(ctx context.Context, r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for i := 0; scanner.Scan(); i++ {
		if i%65536 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// MemorySource serves a fixed word list.
type MemorySource []string

func (s MemorySource) String() string {
	return fmt.Sprintf("memory:%d", len(s))
}

func (s MemorySource) Load(ctx context.Context) ([]string, error) {
	return []string(s), nil
}

type umlautSource struct {
	Source
}

// WithASCIIUmlauts wraps a source so that ä ö ü ß are spelled ae oe ue ss.
// This builds the plain "de" lexicon from a list that contains umlauts.
func WithASCIIUmlauts(src Source) Source {
	return &umlautSource{Source: src}
}

func (s *umlautSource) String() string {
	return s.Source.String() + "+ascii-umlauts"
}

func (s *umlautSource) Load(ctx context.Context) ([]string, error) {
	words, err := s.Source.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = language.ReplaceUmlauts(w)
	}
	return out, nil
}
