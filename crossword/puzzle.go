package crossword

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Puzzle is a crossword stored as YAML. It gives either a grid or explicit
// slots and intersections:
//
//	language: en
//	slots:
//	  - name: across
//	    pattern: _a_
//	  - name: down
//	    pattern: ___
//	intersections:
//	  - {a: 0, a-pos: 2, b: 1, b-pos: 0}
type Puzzle struct {
	Language      string         `yaml:"language,omitempty"`
	Grid          string         `yaml:"grid,omitempty"`
	Slots         []Slot         `yaml:"slots,omitempty"`
	Intersections []Intersection `yaml:"intersections,omitempty"`
}

func LoadPuzzle(r io.Reader) (*Puzzle, error) {
	p := &Puzzle{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGraph, err)
	}
	if p.Grid != "" && len(p.Slots) > 0 {
		return nil, fmt.Errorf("%w: puzzle has both a grid and slots", ErrMalformedGraph)
	}
	return p, nil
}

// Build returns the puzzle's graph, and its grid when it has one.
func (p *Puzzle) Build() (*Graph, *Grid, error) {
	if p.Grid != "" {
		grid, err := ParseGrid(strings.NewReader(p.Grid))
		if err != nil {
			return nil, nil, err
		}
		return grid.Graph(), grid, nil
	}
	return &Graph{Slots: p.Slots, Intersections: p.Intersections}, nil, nil
}
