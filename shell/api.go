package shell

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/hangman/crossword"
	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/solver"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func (c CmdOptions) StringArray(key string) []string {
	return c[key]
}

func msg(message string) *Response {
	return &Response{message: message}
}

// cmdLanguage is the -lang option, or the shell's current language.
func (sc *ShellController) cmdLanguage(cmd *shellcmd) (language.Language, error) {
	if l := cmd.options.String("lang"); l != "" {
		return language.Parse(l)
	}
	return sc.lang, nil
}

func (sc *ShellController) solvePattern(cmd *shellcmd, mode solver.Mode) (*solver.HangmanResult, error) {
	if len(cmd.args) == 0 || len(cmd.args) > 2 {
		return nil, fmt.Errorf("usage: %s PATTERN [INVALID]", cmd.cmd)
	}
	lang, err := sc.cmdLanguage(cmd)
	if err != nil {
		return nil, err
	}
	maxWords, err := cmd.options.IntDefault("max", sc.maxWords)
	if err != nil {
		return nil, err
	}
	invalid := ""
	if len(cmd.args) == 2 {
		invalid = cmd.args[1]
	}
	return sc.solver.SolveString(cmd.args[0], invalid, lang, mode, maxWords)
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	res, err := sc.solvePattern(cmd, solver.HangmanMode)
	if err != nil {
		return nil, err
	}
	return msg(res.Format(sc.width)), nil
}

func (sc *ShellController) xw(cmd *shellcmd) (*Response, error) {
	res, err := sc.solvePattern(cmd, solver.CrosswordMode)
	if err != nil {
		return nil, err
	}
	return msg(res.Format(sc.width)), nil
}

func (sc *ShellController) language(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		names := lo.Map(sc.registry.Languages(), func(l language.Language, _ int) string {
			if l == sc.lang {
				return "*" + l.String()
			}
			return l.String()
		})
		return msg("Languages: " + strings.Join(names, ", ")), nil
	}
	lang, err := language.Parse(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.SetLanguage(lang); err != nil {
		return nil, err
	}
	return msg("language set to " + lang.String()), nil
}

func (sc *ShellController) words(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: words LENGTH [-max N] [-lang L]")
	}
	length, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	lang, err := sc.cmdLanguage(cmd)
	if err != nil {
		return nil, err
	}
	maxWords, err := cmd.options.IntDefault("max", sc.maxWords)
	if err != nil {
		return nil, err
	}
	words, err := sc.registry.ReadWordsWithLength(lang, length)
	if err != nil {
		return nil, err
	}
	shown := words
	if maxWords > 0 && len(shown) > maxWords {
		shown = shown[:maxWords]
	}
	out := fmt.Sprintf("%d words of length %d (%s)", len(words), length, lang)
	if len(shown) > 0 {
		out += "\n" + strings.Join(shown, ", ")
		if len(shown) < len(words) {
			out += ", ..."
		}
	}
	return msg(out), nil
}

func (sc *ShellController) solveGraph(g *crossword.Graph, grid *crossword.Grid, lang language.Language) (string, error) {
	res, err := sc.xwSolver.Solve(g, lang)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if grid != nil {
		b.WriteString(grid.Render(res))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "%s after %d passes", res.Status, res.Passes)
	if res.FailedSlot >= 0 {
		fmt.Fprintf(&b, "; no word fits %s", res.Slots[res.FailedSlot].Name)
	}
	for _, s := range res.Slots {
		fmt.Fprintf(&b, "\n%-6s %-12s %4d  %s", s.Name, s.Pattern, s.NumCandidates,
			strings.Join(s.Candidates, ", "))
	}
	return b.String(), nil
}

func (sc *ShellController) grid(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: grid FILE [-lang L]")
	}
	lang, err := sc.cmdLanguage(cmd)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(cmd.args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	grid, err := crossword.ParseGrid(f)
	if err != nil {
		return nil, err
	}
	out, err := sc.solveGraph(grid.Graph(), grid, lang)
	if err != nil {
		return nil, err
	}
	return msg(out), nil
}

func (sc *ShellController) puzzle(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: puzzle FILE [-lang L]")
	}
	f, err := os.Open(cmd.args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := crossword.LoadPuzzle(f)
	if err != nil {
		return nil, err
	}
	lang := sc.lang
	switch {
	case cmd.options.String("lang") != "":
		if lang, err = language.Parse(cmd.options.String("lang")); err != nil {
			return nil, err
		}
	case p.Language != "":
		if lang, err = language.Parse(p.Language); err != nil {
			return nil, err
		}
	}
	g, grid, err := p.Build()
	if err != nil {
		return nil, err
	}
	out, err := sc.solveGraph(g, grid, lang)
	if err != nil {
		return nil, err
	}
	return msg(out), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	lang, err := sc.cmdLanguage(cmd)
	if err != nil {
		return nil, err
	}
	games, err := cmd.options.IntDefault("games", 100)
	if err != nil {
		return nil, err
	}
	length, err := cmd.options.IntDefault("length", 0)
	if err != nil {
		return nil, err
	}
	if logfile := cmd.options.String("log"); logfile != "" {
		f, err := os.Create(logfile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sc.runner.SetLogWriter(f)
		defer sc.runner.SetLogWriter(nil)
	}
	summary, err := sc.runner.Play(sc.ctx, lang, games, length)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	if err := summary.Fprint(&b); err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(b.String(), "\n")), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(fmt.Sprintf("lang: %s\nmax-words: %d\nwidth: %d", sc.lang, sc.maxWords, sc.width)), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set KEY VALUE")
	}
	key, value := cmd.args[0], cmd.args[1]
	switch key {
	case "lang", "language":
		lang, err := language.Parse(value)
		if err != nil {
			return nil, err
		}
		if err := sc.SetLanguage(lang); err != nil {
			return nil, err
		}
	case "max-words", "max":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		sc.maxWords = n
	case "width":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		if n < 20 {
			return nil, errors.New("width must be at least 20")
		}
		sc.width = n
	default:
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	return msg("set " + key + " to " + value), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	var b strings.Builder
	if len(cmd.args) == 0 {
		usage(&b)
	} else {
		usageTopic(&b, cmd.args[0])
	}
	return msg(strings.TrimRight(b.String(), "\n")), nil
}
