package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/lexicon"
	"github.com/domino14/hangman/testhelpers"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -log /path/to/log.csv",
			&shellcmd{"autoplay", nil, CmdOptions{"log": {"/path/to/log.csv"}}},
			nil},
		{"lang en",
			&shellcmd{"lang", []string{"en"}, CmdOptions{}},
			nil},
		{"solve _a_e st -max 5 ",
			&shellcmd{"solve",
				[]string{"_a_e", "st"},
				CmdOptions{"max": {"5"}}},
			nil,
		},
		{"solve -a-e", &shellcmd{"solve", []string{"-a-e"}, CmdOptions{}}, nil},
		{"solve -ake st", &shellcmd{"solve", []string{"-ake", "st"}, CmdOptions{}}, nil},
		{"solve -ake", &shellcmd{"solve", []string{"-ake"}, CmdOptions{}}, nil},
		{"xw -max 3 -ake",
			&shellcmd{"xw", []string{"-ake"}, CmdOptions{"max": {"3"}}},
			nil},
		{"lang -lang", &shellcmd{"lang", []string{"-lang"}, CmdOptions{}}, nil},
		{"solve -- -ab -max", &shellcmd{"solve", []string{"-ab", "-max"}, CmdOptions{}}, nil},
		{`script "my script.lua"`, &shellcmd{"script", []string{"my script.lua"}, CmdOptions{}}, nil},
		{"solve _a_e -max",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func newTestController(t *testing.T, reg *lexicon.Registry) (*ShellController, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDefaultLanguage, "en")
	sc, err := newController(cfg, reg, "", "test")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	sc.out = &out
	t.Cleanup(sc.Cleanup)
	return sc, &out
}

func run(t *testing.T, sc *ShellController, line string) (*Response, error) {
	t.Helper()
	cmd, err := extractFields(line)
	if err != nil {
		t.Fatal(err)
	}
	return sc.dispatch(cmd)
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSolveCommands(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t, testhelpers.NewRegistry())

	r, err := run(t, sc, "solve _a_e")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "Found 7 words (input: _a_e, invalid: )"))

	r, err = run(t, sc, "solve -a-e st")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "Found 6 words (input: _a_e, invalid: st)"))

	r, err = run(t, sc, "solve -ake st")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "Found 6 words (input: _ake, invalid: st)"))

	// tee only fits in crossword mode.
	r, err = run(t, sc, "solve _e_")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "Found 2 words"))
	r, err = run(t, sc, "xw _e_")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "Found 3 words"))

	r, err = run(t, sc, "solve ____ -lang de_umlauts")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "Found 4 words"))

	_, err = run(t, sc, "solve _a_e a")
	is.True(err != nil)
	_, err = run(t, sc, "solve")
	is.True(err != nil)
	_, err = run(t, sc, "solve ___ -lang xx")
	is.True(err != nil)
}

func TestLanguageAndSet(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t, testhelpers.NewRegistry())

	r, err := run(t, sc, "lang")
	is.NoErr(err)
	is.Equal(r.message, "Languages: de, de_umlauts, *en")

	_, err = run(t, sc, "lang de")
	is.NoErr(err)
	is.Equal(sc.lang, language.German)
	_, err = run(t, sc, "lang xx")
	is.True(err != nil)
	is.Equal(sc.lang, language.German)

	_, err = run(t, sc, "set lang en")
	is.NoErr(err)
	_, err = run(t, sc, "set width 30")
	is.NoErr(err)
	r, err = run(t, sc, "solve _a_e")
	is.NoErr(err)
	for _, line := range strings.Split(r.message, "\n")[1:] {
		is.True(len(line) <= 30)
	}

	_, err = run(t, sc, "set max 1")
	is.NoErr(err)
	r, err = run(t, sc, "words 3")
	is.NoErr(err)
	is.Equal(r.message, "8 words of length 3 (en)\nago, ...")

	r, err = run(t, sc, "set")
	is.NoErr(err)
	is.Equal(r.message, "lang: en\nmax-words: 1\nwidth: 30")

	_, err = run(t, sc, "set width 3")
	is.True(err != nil)
	_, err = run(t, sc, "set colour red")
	is.True(err != nil)
}

func TestWords(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t, testhelpers.NewRegistry())
	r, err := run(t, sc, "words 3 -max 2")
	is.NoErr(err)
	is.Equal(r.message, "8 words of length 3 (en)\nago, bat, ...")
	r, err = run(t, sc, "words 9")
	is.NoErr(err)
	is.Equal(r.message, "0 words of length 9 (en)")
	_, err = run(t, sc, "words three")
	is.True(err != nil)
}

func TestGridAndPuzzle(t *testing.T) {
	is := is.New(t)
	reg := testhelpers.RegistryWith(language.English, "bat", "cat", "hat", "at", "an",
		"tea", "toe", "ten")
	sc, _ := newTestController(t, reg)

	r, err := run(t, sc, "grid "+writeFile(t, "grid.txt", "_A_\n#_\n"))
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "_at\n#_#\n\nambiguous after"))
	is.True(strings.Contains(r.message, "1A"))
	is.True(strings.Contains(r.message, "2D"))

	r, err = run(t, sc, "puzzle "+writeFile(t, "p.yaml", `
language: en
slots:
  - name: across
    pattern: _a_
    invalid: bh
  - name: down
    pattern: _o_
intersections:
  - {a: 0, a-pos: 2, b: 1, b-pos: 0}
`))
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "solved after 2 passes"))
	is.True(strings.Contains(r.message, "cat"))
	is.True(strings.Contains(r.message, "toe"))

	_, err = run(t, sc, "grid /does/not/exist")
	is.True(err != nil)
	_, err = run(t, sc, "puzzle "+writeFile(t, "bad.yaml", "colour: red\n"))
	is.True(err != nil)
}

func TestAutoplayCommand(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t, testhelpers.NewRegistry())
	logfile := filepath.Join(t.TempDir(), "games.csv")
	r, err := run(t, sc, "autoplay -games 5 -length 3 -log "+logfile)
	is.NoErr(err)
	is.True(strings.Contains(r.message, "Games: 5"))
	dat, err := os.ReadFile(logfile)
	is.NoErr(err)
	is.Equal(len(strings.Split(strings.TrimSpace(string(dat)), "\n")), 6)

	_, err = run(t, sc, "autoplay -games many")
	is.True(err != nil)
}

func TestScript(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t, testhelpers.NewRegistry())
	path := writeFile(t, "test.lua", `
local words = hangman_words(3)
assert(#words == 8)
assert(words[1] == "ago")
assert(string.find(hangman_solve("_a_e"), "Found 7 words", 1, true))
assert(string.find(hangman_solve("_a_e", "a"), "ERROR", 1, true))
assert(string.find(hangman_xw("_e_"), "Found 3 words", 1, true))
`)
	_, err := run(t, sc, "script "+path)
	is.NoErr(err)

	_, err = run(t, sc, "script "+writeFile(t, "fail.lua", `error("boom")`))
	is.True(err != nil)
	_, err = run(t, sc, "script")
	is.True(err != nil)
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t, testhelpers.NewRegistry())
	r, err := run(t, sc, "help")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "Commands:"))
	r, err = run(t, sc, "help grid")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "grid FILE"))
	r, err = run(t, sc, "help nothing")
	is.NoErr(err)
	is.Equal(r.message, "There is no help text for the topic nothing")
}

func TestStandardModeSwitch(t *testing.T) {
	is := is.New(t)
	sc, out := newTestController(t, testhelpers.NewRegistry())
	sig := make(chan os.Signal, 1)

	is.NoErr(sc.standardModeSwitch("", sig))
	is.NoErr(sc.standardModeSwitch("solve _a_e", sig))
	is.True(strings.HasPrefix(out.String(), "Found 7 words"))

	out.Reset()
	is.NoErr(sc.standardModeSwitch("dance", sig))
	is.True(strings.HasPrefix(out.String(), "Error: unknown command"))

	is.True(sc.standardModeSwitch("exit", sig) != nil)
	is.Equal(<-sig, syscall.SIGINT)
}

func TestRunBatch(t *testing.T) {
	is := is.New(t)
	sc, errOut := newTestController(t, testhelpers.NewRegistry())
	var out bytes.Buffer
	err := sc.RunBatch(strings.NewReader("_a_e\n\nab1\n_a_e st\n"), &out)
	is.NoErr(err)
	results := strings.Split(strings.TrimSpace(out.String()), "\n")
	is.Equal(results[0], "Found 7 words (input: _a_e, invalid: )")
	is.True(strings.HasPrefix(results[1], " words:   bake, cake, lake"))
	is.Equal(results[3], "Found 6 words (input: _a_e, invalid: st)")
	is.True(strings.HasPrefix(errOut.String(), "Error: malformed pattern"))
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t, testhelpers.NewRegistry())
	c := NewShellCompleter(sc)

	matches, n := c.Do([]rune("so"), 2)
	is.Equal(n, 2)
	is.Equal(matches, [][]rune{[]rune("lve")})

	line := []rune("lang d")
	matches, n = c.Do(line, len(line))
	is.Equal(n, 1)
	is.Equal(matches, [][]rune{[]rune("e"), []rune("e_umlauts")})

	line = []rune("autoplay -g")
	matches, _ = c.Do(line, len(line))
	is.Equal(matches, [][]rune{[]rune("ames")})
}
