package lexicon

import (
	"context"
	"database/sql"
	"fmt"
	"unicode/utf8"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS words (
	lang TEXT NOT NULL,
	word TEXT NOT NULL,
	length INTEGER NOT NULL,
	PRIMARY KEY (lang, word)
)`

// SQLiteSource reads the words of one language from a lexicon database
// written by WriteSQLite.
type SQLiteSource struct {
	Path string
	Lang string
}

func (s *SQLiteSource) String() string {
	return fmt.Sprintf("sqlite:%s?lang=%s", s.Path, s.Lang)
}

func (s *SQLiteSource) Load(ctx context.Context) ([]string, error) {
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		"SELECT word FROM words WHERE lang = ? ORDER BY length, word", s.Lang)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// SQLiteLanguages lists the languages stored in a lexicon database.
func SQLiteLanguages(ctx context.Context, path string) ([]string, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT DISTINCT lang FROM words ORDER BY lang")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer rows.Close()
	var langs []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return langs, rows.Err()
}

// WriteSQLite stores the words of lex under its language name, replacing
// whatever was stored for that language before.
func WriteSQLite(ctx context.Context, path string, lex *Lexicon) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	lang := lex.Name().String()
	if _, err := tx.ExecContext(ctx, "DELETE FROM words WHERE lang = ?", lang); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO words (lang, word, length) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, length := range lex.Lengths() {
		for _, w := range lex.WordsWithLength(length) {
			if _, err := stmt.ExecContext(ctx, lang, w, utf8.RuneCountInString(w)); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}
