package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/hangman/language"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"solve":    {Options: []string{"-lang", "-max"}},
	"xw":       {Options: []string{"-lang", "-max"}},
	"words":    {Options: []string{"-lang", "-max"}},
	"grid":     {Options: []string{"-lang"}},
	"puzzle":   {Options: []string{"-lang"}},
	"autoplay": {Options: []string{"-games", "-length", "-lang", "-log"}},
	"set":      {Args: []string{"lang", "max-words", "width"}},
	"help":     {Args: []string{"solve", "xw", "grid", "puzzle", "autoplay", "script"}},
}

var commandNames = []string{
	"solve", "xw", "lang", "words", "grid", "puzzle", "autoplay", "script",
	"set", "help", "exit",
}

// Do implements the readline.AutoComplete interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// Unbalanced quotes while typing.
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		languages := func() []string {
			return lo.Map(c.sc.registry.Languages(), func(l language.Language, _ int) string {
				return l.String()
			})
		}
		switch {
		case lastCompleteField == "-lang":
			completions = languages()
		case cmdName == "lang" || (cmdName == "set" && (lastCompleteField == "lang" || lastCompleteField == "language")):
			completions = languages()
		default:
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
