package shell

import (
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("hangman_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

func patternArgs(L *lua.LState) []string {
	args := []string{L.CheckString(1)}
	if invalid := L.OptString(2, ""); invalid != "" {
		args = append(args, invalid)
	}
	return args
}

func Solve(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.solve(&shellcmd{
		cmd:     "solve",
		args:    patternArgs(L),
		options: CmdOptions{},
	})
	if err != nil {
		log.Err(err).Msg("error-executing-solve")
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	L.Push(lua.LString(r.message))
	// return number of results pushed to stack.
	return 1
}

func Crossword(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.xw(&shellcmd{
		cmd:     "xw",
		args:    patternArgs(L),
		options: CmdOptions{},
	})
	if err != nil {
		log.Err(err).Msg("error-executing-xw")
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	L.Push(lua.LString(r.message))
	return 1
}

func Words(L *lua.LState) int {
	length := L.CheckInt(1)
	sc := getShell(L)
	words, err := sc.registry.ReadWordsWithLength(sc.lang, length)
	if err != nil {
		log.Err(err).Int("length", length).Msg("error-executing-words")
		return 0
	}
	tb := L.NewTable()
	for _, w := range words {
		tb.Append(lua.LString(w))
	}
	L.Push(tb)
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("hangman_shell", lsc)
	L.SetGlobal("hangman_solve", L.NewFunction(Solve))
	L.SetGlobal("hangman_xw", L.NewFunction(Crossword))
	L.SetGlobal("hangman_words", L.NewFunction(Words))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
