package automatic

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"

	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/stats"
)

const (
	histogramBins  = 15
	histogramWidth = 40
)

// Summary aggregates the games of one Play call.
type Summary struct {
	Language   language.Language
	WordLength int
	Games      int
	Won        int
	Guesses    stats.Statistic
	Wrong      stats.Statistic

	wrongCounts []float64
}

func newSummary(lang language.Language, wordLength int) *Summary {
	return &Summary{Language: lang, WordLength: wordLength}
}

func (s *Summary) add(res *GameResult) {
	s.Games++
	if res.Won {
		s.Won++
	}
	s.Guesses.Push(float64(res.Guesses))
	s.Wrong.Push(float64(res.Wrong))
	s.wrongCounts = append(s.wrongCounts, float64(res.Wrong))
}

// WinRate is the fraction of games won.
func (s *Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Games)
}

// Histogram buckets the wrong-guess counts of every game.
func (s *Summary) Histogram() histogram.Histogram {
	return histogram.Hist(histogramBins, s.wrongCounts)
}

// Fprint writes the summary with 95% confidence intervals and a histogram
// of wrong guesses.
func (s *Summary) Fprint(w io.Writer) error {
	length := "any"
	if s.WordLength > 0 {
		length = fmt.Sprint(s.WordLength)
	}
	glo, ghi := s.Guesses.ConfidenceInterval(95)
	wlo, whi := s.Wrong.ConfidenceInterval(95)
	_, err := fmt.Fprintf(w,
		"Language: %s, word length: %s\nGames: %d, won: %d (%.1f%%)\n"+
			"Guesses: %.3f (95%% CI %.3f-%.3f, stdev %.3f)\n"+
			"Wrong guesses: %.3f (95%% CI %.3f-%.3f, stdev %.3f, max %g)\n",
		s.Language, length, s.Games, s.Won, 100*s.WinRate(),
		s.Guesses.Mean(), glo, ghi, s.Guesses.Stdev(),
		s.Wrong.Mean(), wlo, whi, s.Wrong.Stdev(), s.Wrong.Max())
	if err != nil {
		return err
	}
	if s.Games == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Wrong guesses per game:"); err != nil {
		return err
	}
	return histogram.Fprint(w, s.Histogram(), histogram.Linear(histogramWidth))
}
