package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/automatic"
	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/crossword"
	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/lexicon"
	"github.com/domino14/hangman/solver"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
)

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	config     *config.Config
	execPath   string
	gitVersion string

	registry *lexicon.Registry
	solver   *solver.Solver
	xwSolver *crossword.Solver
	runner   *automatic.Runner

	lang     language.Language
	maxWords int
	width    int

	ctx    context.Context
	cancel context.CancelFunc
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController loads the lexicon registry described by cfg. The
// readline instance is only created when Loop starts.
func NewShellController(cfg *config.Config, execPath, gitVersion string) (*ShellController, error) {
	reg, err := lexicon.NewRegistryFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return newController(cfg, reg, execPath, gitVersion)
}

func newController(cfg *config.Config, reg *lexicon.Registry, execPath, gitVersion string) (*ShellController, error) {
	lang, err := language.Parse(cfg.GetString(config.ConfigDefaultLanguage))
	if err != nil {
		return nil, err
	}
	s := solver.NewSolver(reg)
	ctx, cancel := context.WithCancel(context.Background())
	return &ShellController{
		out:        os.Stderr,
		config:     cfg,
		execPath:   execPath,
		gitVersion: gitVersion,
		registry:   reg,
		solver:     s,
		xwSolver:   crossword.NewSolver(reg),
		runner:     automatic.NewRunner(cfg, s),
		lang:       lang,
		maxWords:   cfg.GetInt(config.ConfigMaxWords),
		width:      solver.DefaultWidth,
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

func (sc *ShellController) initReadline() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mhangman>\033[0m ",
		HistoryFile:     "/tmp/hangman-readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	sc.l = l
	sc.out = l.Stderr()
	if w, _, err := readline.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		sc.width = w
	}
	return nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// isOption reports whether field names an option cmd takes. Patterns may
// start with the - wildcard, so -ake or -a-e are arguments.
func isOption(cmd, field string) bool {
	return slices.Contains(commandMetadata[cmd].Options, field)
}

// extractFields splits a line into a command, its arguments and its
// -key value options. Only the options listed for the command in
// commandMetadata are recognised; a bare -- ends option parsing.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	onlyArgs := false
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		switch {
		case onlyArgs:
			cmd.args = append(cmd.args, f)
		case f == "--":
			onlyArgs = true
		case isOption(cmd.cmd, f):
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := f[1:]
			cmd.options[key] = append(cmd.options[key], fields[i+1])
			i++
		default:
			cmd.args = append(cmd.args, f)
		}
	}
	return cmd, nil
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "solve":
		return sc.solve(cmd)
	case "xw":
		return sc.xw(cmd)
	case "lang":
		return sc.language(cmd)
	case "words":
		return sc.words(cmd)
	case "grid":
		return sc.grid(cmd)
	case "puzzle":
		return sc.puzzle(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "script":
		return sc.script(cmd)
	case "set":
		return sc.set(cmd)
	case "help":
		return sc.help(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(cmd.cmd))
		return nil, fmt.Errorf("unknown command %q; try help", cmd.cmd)
	}
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) error {
	cmd, err := extractFields(line)
	if err == errNoData {
		return nil
	} else if err != nil {
		sc.showError(err)
		return nil
	}
	if cmd.cmd == "exit" || cmd.cmd == "bye" {
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")
	}
	resp, err := sc.dispatch(cmd)
	if err != nil {
		sc.showError(err)
		return nil
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

// Execute runs a single command line, as given on the command line of the
// binary.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	if err := sc.standardModeSwitch(line, sig); err != nil {
		log.Debug().Err(err).Msg("execute-stopped")
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	if err := sc.initReadline(); err != nil {
		log.Error().Err(err).Msg("readline-init-failed")
		sig <- syscall.SIGINT
		return
	}
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		if err := sc.standardModeSwitch(line, sig); err != nil {
			log.Debug().Err(err).Msg("")
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// RunBatch reads "PATTERN INVALID" lines from r and writes one result per
// line to w. Bad lines are reported on the shell's error output and
// skipped.
func (sc *ShellController) RunBatch(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		pattern, invalid, _ := strings.Cut(strings.TrimLeft(line, " "), " ")
		p, err := solver.ParsePattern(sc.lang, pattern, invalid, solver.HangmanMode)
		if err != nil {
			sc.showError(err)
			continue
		}
		res, err := sc.solver.Solve(p, sc.lang, sc.width/p.Len()+1)
		if err != nil {
			return err
		}
		showMessage(res.Format(sc.width), w)
	}
	return scanner.Err()
}

// SetLanguage changes the language used when a command does not name one.
func (sc *ShellController) SetLanguage(lang language.Language) error {
	if _, err := sc.registry.LexiconFor(lang); err != nil {
		return err
	}
	sc.lang = lang
	return nil
}

func (sc *ShellController) Cleanup() {
	sc.cancel()
	log.Debug().Msg("shell-cleanup")
}
