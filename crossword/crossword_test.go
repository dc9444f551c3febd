package crossword

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/lexicon"
	"github.com/domino14/hangman/solver"
	"github.com/domino14/hangman/testhelpers"
)

func threeLetterRegistry() *lexicon.Registry {
	return testhelpers.RegistryWith(language.English,
		"bat", "cat", "hat", "tea", "toe", "ten", "ago")
}

func twoSlots(a, aInvalid, b string) *Graph {
	g := &Graph{}
	g.AddSlot("across", a, aInvalid)
	g.AddSlot("down", b, "")
	g.Cross(0, 2, 1, 0)
	return g
}

func TestAgreedLetterCrossesIntersection(t *testing.T) {
	is := is.New(t)
	res, err := Solve(threeLetterRegistry(), twoSlots("_A_", "", "___"), language.English)
	is.NoErr(err)
	// Every _a_ word ends in t, so the down slot must start with t.
	is.Equal(res.History[0], []string{"_at", "t__"})
	is.Equal(res.Status, Ambiguous)
	is.Equal(res.FailedSlot, -1)
	is.Equal(res.Passes, 3)
	is.Equal(res.Slots[0].Candidates, []string{"bat", "cat", "hat"})
	is.Equal(res.Slots[1].Candidates, []string{"tea", "ten", "toe"})
	is.Equal(res.Slots[1].NumCandidates, 3)
	is.Equal(res.Slots[1].Name, "down")
}

func TestSolved(t *testing.T) {
	is := is.New(t)
	res, err := Solve(threeLetterRegistry(), twoSlots("_a_", "bh", "_o_"), language.English)
	is.NoErr(err)
	is.Equal(res.Status, Solved)
	is.Equal(res.Slots[0].Pattern, "cat")
	is.Equal(res.Slots[1].Pattern, "toe")
	is.Equal(res.Passes, 2)
}

func TestConflictingGivenLetters(t *testing.T) {
	is := is.New(t)
	res, err := Solve(threeLetterRegistry(), twoSlots("_at", "", "e__"), language.English)
	is.NoErr(err)
	is.Equal(res.Status, Contradiction)
	is.Equal(res.FailedSlot, 0)
	is.Equal(res.Passes, 0)
	is.Equal(res.Slots[0].NumCandidates, 0)
}

func TestContradictionDuringPropagation(t *testing.T) {
	is := is.New(t)
	// The down slot forces an e onto the end of _a_, which no word has.
	res, err := Solve(threeLetterRegistry(), twoSlots("_a_", "", "e__"), language.English)
	is.NoErr(err)
	is.Equal(res.Status, Contradiction)
	is.Equal(res.FailedSlot, 0)
	is.Equal(res.Passes, 1)
	is.Equal(res.Slots[0].Pattern, "_ae")
}

func TestCrossSetPruning(t *testing.T) {
	is := is.New(t)
	reg := testhelpers.RegistryWith(language.English, "ab", "ac", "bd", "cx")
	// Both slots start on the same square and every word starts with a, b
	// or c, so nothing is pruned.
	g := &Graph{}
	g.AddSlot("1A", "__", "")
	g.AddSlot("1D", "__", "")
	g.Cross(0, 0, 1, 0)
	res, err := Solve(reg, g, language.English)
	is.NoErr(err)
	is.Equal(res.Status, Ambiguous)
	is.Equal(res.Slots[0].NumCandidates, 4)

	// Down slot must end in x, so it is cx and across starts with c.
	g = &Graph{}
	g.AddSlot("1A", "__", "")
	g.AddSlot("1D", "_x", "")
	g.Cross(0, 0, 1, 0)
	res, err = Solve(reg, g, language.English)
	is.NoErr(err)
	is.Equal(res.Status, Solved)
	is.Equal(res.Slots[0].Pattern, "cx")
	is.Equal(res.Slots[1].Pattern, "cx")
}

func TestMonotonicAndBounded(t *testing.T) {
	is := is.New(t)
	g := twoSlots("_A_", "", "___")
	res, err := Solve(threeLetterRegistry(), g, language.English)
	is.NoErr(err)
	letters := 0
	for _, s := range g.Slots {
		letters += len(s.Pattern)
	}
	is.True(res.Passes <= letters+1)

	prev := []string{"_a_", "___"}
	for _, snap := range res.History {
		for i := range snap {
			before, after := []rune(prev[i]), []rune(snap[i])
			for pos := range before {
				if before[pos] != solver.Wildcard {
					is.Equal(after[pos], before[pos])
				}
			}
		}
		prev = snap
	}
}

func TestMaxWords(t *testing.T) {
	is := is.New(t)
	s := NewSolver(threeLetterRegistry())
	s.SetMaxWords(1)
	res, err := s.Solve(twoSlots("_a_", "", "___"), language.English)
	is.NoErr(err)
	is.Equal(res.Slots[0].Candidates, []string{"bat"})
	is.Equal(res.Slots[0].NumCandidates, 3)
}

func TestMalformedGraphs(t *testing.T) {
	is := is.New(t)
	reg := threeLetterRegistry()
	cases := []*Graph{
		{},
		{Slots: []Slot{{Pattern: "___"}}, Intersections: []Intersection{{A: 0, APos: 0, B: 3, BPos: 0}}},
		{Slots: []Slot{{Pattern: "___"}, {Pattern: "___"}}, Intersections: []Intersection{{A: 0, APos: 3, B: 1, BPos: 0}}},
		{Slots: []Slot{{Pattern: "___"}}, Intersections: []Intersection{{A: 0, APos: 0, B: 0, BPos: 1}}},
		{Slots: []Slot{{Pattern: "___", Length: 4}}},
	}
	for _, g := range cases {
		_, err := Solve(reg, g, language.English)
		is.True(errors.Is(err, ErrMalformedGraph))
	}

	_, err := Solve(reg, twoSlots("_a_", "a", "___"), language.English)
	is.True(errors.Is(err, solver.ErrMalformedPattern))

	_, err = Solve(reg, twoSlots("_a_", "", "___"), "xx")
	is.True(errors.Is(err, language.ErrUnknownLanguage))
}

func TestAlphabetTooLargeForCrossSets(t *testing.T) {
	is := is.New(t)
	reg := testhelpers.RegistryWith(language.English, testhelpers.WideAlphabetWords()...)
	g := &Graph{}
	g.AddSlot("across", "ω_", "")
	g.AddSlot("down", "__", "")
	g.Cross(0, 1, 1, 0)
	_, err := Solve(reg, g, language.English)
	is.True(errors.Is(err, lexicon.ErrAlphabetTooLarge))
}

func TestParseGrid(t *testing.T) {
	is := is.New(t)
	grid, err := ParseGrid(strings.NewReader("_a_\n_#_\n___\n"))
	is.NoErr(err)
	g := grid.Graph()
	names := make([]string, len(g.Slots))
	for i, s := range g.Slots {
		names[i] = s.Name
	}
	is.Equal(names, []string{"1A", "1D", "2D", "3A"})
	is.Equal(g.Slots[0].Pattern, "_a_")
	is.Equal(g.Intersections, []Intersection{
		{A: 0, APos: 0, B: 1, BPos: 0},
		{A: 3, APos: 0, B: 1, BPos: 2},
		{A: 0, APos: 2, B: 2, BPos: 0},
		{A: 3, APos: 2, B: 2, BPos: 2},
	})
}

func TestParseGridErrors(t *testing.T) {
	is := is.New(t)
	_, err := ParseGrid(strings.NewReader("_#_\n#_#\n"))
	is.True(errors.Is(err, ErrMalformedGraph))
	_, err = ParseGrid(strings.NewReader("_1_\n"))
	is.True(errors.Is(err, ErrMalformedGraph))
}

func TestGridSolveAndRender(t *testing.T) {
	is := is.New(t)
	grid, err := ParseGrid(strings.NewReader("_A_\n#_\n"))
	is.NoErr(err)
	reg := testhelpers.RegistryWith(language.English, "bat", "cat", "hat", "at", "an")
	res, err := Solve(reg, grid.Graph(), language.English)
	is.NoErr(err)
	// 1A is _a_; 2D runs down from the a.
	is.Equal(res.Status, Ambiguous)
	is.Equal(grid.Render(res), "_at\n#_#")

	is.Equal(grid.Render(nil), "_A_\n#_#")
}

func TestLoadPuzzle(t *testing.T) {
	is := is.New(t)
	p, err := LoadPuzzle(strings.NewReader(`
language: en
slots:
  - name: across
    pattern: _a_
  - name: down
    pattern: ___
intersections:
  - {a: 0, a-pos: 2, b: 1, b-pos: 0}
`))
	is.NoErr(err)
	is.Equal(p.Language, "en")
	g, grid, err := p.Build()
	is.NoErr(err)
	is.True(grid == nil)
	res, err := Solve(threeLetterRegistry(), g, language.FromString(p.Language))
	is.NoErr(err)
	is.Equal(res.History[0], []string{"_at", "t__"})

	p, err = LoadPuzzle(strings.NewReader("grid: |\n  _a_\n  _#_\n  ___\n"))
	is.NoErr(err)
	g, grid, err = p.Build()
	is.NoErr(err)
	is.True(grid != nil)
	is.Equal(len(g.Slots), 4)

	_, err = LoadPuzzle(strings.NewReader("grid: ab\nslots:\n  - pattern: ab\n"))
	is.True(errors.Is(err, ErrMalformedGraph))
	_, err = LoadPuzzle(strings.NewReader("colour: red\n"))
	is.True(errors.Is(err, ErrMalformedGraph))
}
