// Package crossword solves a set of crossing word slots by repeatedly
// filtering each slot's candidates and pushing what they agree on into the
// slots that cross it.
package crossword

import (
	"errors"
	"fmt"
)

var ErrMalformedGraph = errors.New("malformed crossword graph")

// Slot is one word of the puzzle. Pattern uses the same syntax as hangman
// patterns; Length, when set, must match it.
type Slot struct {
	Name    string `yaml:"name,omitempty"`
	Pattern string `yaml:"pattern"`
	Invalid string `yaml:"invalid,omitempty"`
	Length  int    `yaml:"length,omitempty"`
}

// Intersection says that position APos of slot A is the same square as
// position BPos of slot B.
type Intersection struct {
	A    int `yaml:"a"`
	APos int `yaml:"a-pos"`
	B    int `yaml:"b"`
	BPos int `yaml:"b-pos"`
}

type Graph struct {
	Slots         []Slot         `yaml:"slots"`
	Intersections []Intersection `yaml:"intersections"`
}

// AddSlot appends a slot and returns its index.
func (g *Graph) AddSlot(name, pattern, invalid string) int {
	g.Slots = append(g.Slots, Slot{Name: name, Pattern: pattern, Invalid: invalid})
	return len(g.Slots) - 1
}

func (g *Graph) Cross(a, aPos, b, bPos int) {
	g.Intersections = append(g.Intersections, Intersection{A: a, APos: aPos, B: b, BPos: bPos})
}

func (g *Graph) slotName(i int) string {
	if g.Slots[i].Name != "" {
		return g.Slots[i].Name
	}
	return fmt.Sprintf("#%d", i)
}

// validate checks intersections against the parsed slot lengths.
func (g *Graph) validate(lengths []int) error {
	if len(g.Slots) == 0 {
		return fmt.Errorf("%w: no slots", ErrMalformedGraph)
	}
	for i, s := range g.Slots {
		if s.Length != 0 && s.Length != lengths[i] {
			return fmt.Errorf("%w: slot %s has length %d but its pattern has %d letters",
				ErrMalformedGraph, g.slotName(i), s.Length, lengths[i])
		}
	}
	for _, x := range g.Intersections {
		if x.A < 0 || x.A >= len(g.Slots) || x.B < 0 || x.B >= len(g.Slots) {
			return fmt.Errorf("%w: intersection %+v refers to a missing slot", ErrMalformedGraph, x)
		}
		if x.A == x.B {
			return fmt.Errorf("%w: slot %s crosses itself", ErrMalformedGraph, g.slotName(x.A))
		}
		if x.APos < 0 || x.APos >= lengths[x.A] || x.BPos < 0 || x.BPos >= lengths[x.B] {
			return fmt.Errorf("%w: intersection %+v is out of range", ErrMalformedGraph, x)
		}
	}
	return nil
}
