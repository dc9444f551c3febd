package crossword

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/domino14/hangman/solver"
)

const blockCell = '#'

type cell struct {
	row, col int
}

// Grid is a rectangular crossword. Every horizontal or vertical run of two or
// more open squares is a slot, numbered in reading order: "1A", "1D", ...
type Grid struct {
	cells     [][]rune
	graph     *Graph
	slotCells [][]cell
}

// ParseGrid reads a grid, one row per line. '#' and spaces are blocks, any
// of _ . ? - is an empty square and letters are given squares. Short rows
// are padded with blocks.
func ParseGrid(r io.Reader) (*Grid, error) {
	var rows [][]rune
	width := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		row := make([]rune, 0, len(line))
		for _, c := range line {
			switch {
			case c == blockCell || c == ' ':
				row = append(row, blockCell)
			case solver.IsWildcard(c):
				row = append(row, solver.Wildcard)
			case unicode.IsLetter(c):
				row = append(row, c)
			default:
				return nil, fmt.Errorf("%w: unexpected %q in row %d", ErrMalformedGraph, c, len(rows)+1)
			}
		}
		rows = append(rows, row)
		width = max(width, len(row))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	for i := range rows {
		for len(rows[i]) < width {
			rows[i] = append(rows[i], blockCell)
		}
	}

	g := &Grid{cells: rows, graph: &Graph{}}
	g.findSlots()
	if len(g.graph.Slots) == 0 {
		return nil, fmt.Errorf("%w: grid has no slots", ErrMalformedGraph)
	}
	return g, nil
}

func (g *Grid) open(row, col int) bool {
	return row >= 0 && row < len(g.cells) && col >= 0 && col < len(g.cells[row]) &&
		g.cells[row][col] != blockCell
}

func (g *Grid) run(start cell, dr, dc int) []cell {
	var cells []cell
	for r, c := start.row, start.col; g.open(r, c); r, c = r+dr, c+dc {
		cells = append(cells, cell{r, c})
	}
	return cells
}

func (g *Grid) addSlot(name string, cells []cell) {
	var pattern strings.Builder
	for _, c := range cells {
		pattern.WriteRune(g.cells[c.row][c.col])
	}
	g.graph.AddSlot(name, pattern.String(), "")
	g.slotCells = append(g.slotCells, cells)
}

func (g *Grid) findSlots() {
	across := make(map[cell][2]int)
	var downSlots []int
	num := 0
	for r := range g.cells {
		for c := range g.cells[r] {
			if !g.open(r, c) {
				continue
			}
			startsAcross := !g.open(r, c-1) && g.open(r, c+1)
			startsDown := !g.open(r-1, c) && g.open(r+1, c)
			if !startsAcross && !startsDown {
				continue
			}
			num++
			if startsAcross {
				cells := g.run(cell{r, c}, 0, 1)
				idx := len(g.slotCells)
				for pos, cl := range cells {
					across[cl] = [2]int{idx, pos}
				}
				g.addSlot(fmt.Sprintf("%dA", num), cells)
			}
			if startsDown {
				downSlots = append(downSlots, len(g.slotCells))
				g.addSlot(fmt.Sprintf("%dD", num), g.run(cell{r, c}, 1, 0))
			}
		}
	}
	for _, d := range downSlots {
		for pos, cl := range g.slotCells[d] {
			if a, ok := across[cl]; ok {
				g.graph.Cross(a[0], a[1], d, pos)
			}
		}
	}
}

func (g *Grid) Graph() *Graph {
	return g.graph
}

// Render draws the grid with every letter the result knows filled in.
func (g *Grid) Render(res *Result) string {
	out := make([][]rune, len(g.cells))
	for i := range g.cells {
		out[i] = append([]rune(nil), g.cells[i]...)
	}
	if res != nil {
		for i, sr := range res.Slots {
			if i >= len(g.slotCells) {
				break
			}
			letters := []rune(sr.Pattern)
			for pos, c := range g.slotCells[i] {
				if pos < len(letters) && letters[pos] != solver.Wildcard {
					out[c.row][c.col] = letters[pos]
				}
			}
		}
	}
	lines := make([]string, len(out))
	for i, row := range out {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
