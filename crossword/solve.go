package crossword

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/language"
	"github.com/domino14/hangman/lexicon"
	"github.com/domino14/hangman/solver"
)

// DefaultMaxWords caps the candidates reported per slot.
const DefaultMaxWords = 20

type Status int

const (
	Ambiguous Status = iota
	Solved
	Contradiction
)

func (s Status) String() string {
	switch s {
	case Solved:
		return "solved"
	case Contradiction:
		return "contradiction"
	default:
		return "ambiguous"
	}
}

type SlotResult struct {
	Name          string
	Pattern       string
	NumCandidates int
	Candidates    []string
}

type Result struct {
	Status Status
	Slots  []SlotResult
	Passes int
	// FailedSlot is the slot left without candidates, or -1.
	FailedSlot int
	// History holds every slot's pattern after each pass.
	History [][]string
}

type Solver struct {
	registry *lexicon.Registry
	maxWords int
}

func NewSolver(reg *lexicon.Registry) *Solver {
	return &Solver{registry: reg, maxWords: DefaultMaxWords}
}

// SetMaxWords sets how many candidates are reported per slot; n <= 0 reports
// all of them.
func (s *Solver) SetMaxWords(n int) {
	s.maxWords = n
}

// Solve is a shortcut for NewSolver(reg).Solve(g, lang).
func Solve(reg *lexicon.Registry, g *Graph, lang language.Language) (*Result, error) {
	return NewSolver(reg).Solve(g, lang)
}

// Solve propagates constraints until nothing changes or a slot runs out of
// candidates. A contradiction is a result, not an error; errors are
// malformed graphs, unknown languages and lexicons with too many letters
// for cross sets (lexicon.ErrAlphabetTooLarge).
func (s *Solver) Solve(g *Graph, lang language.Language) (*Result, error) {
	lex, err := s.registry.LexiconFor(lang)
	if err != nil {
		return nil, err
	}
	st, err := newState(g, lex, lang)
	if err != nil {
		return nil, err
	}

	res := &Result{FailedSlot: -1}
	if failed := st.seed(); failed >= 0 {
		return s.finish(res, st, Contradiction, failed), nil
	}

	maxPasses := st.passBound()
	for {
		if res.Passes >= maxPasses {
			return nil, fmt.Errorf("crossword propagation did not settle after %d passes", res.Passes)
		}
		res.Passes++
		changed, failed := st.pass()
		res.History = append(res.History, st.snapshot())
		if failed >= 0 {
			log.Debug().Int("pass", res.Passes).Str("slot", g.slotName(failed)).Msg("crossword-contradiction")
			return s.finish(res, st, Contradiction, failed), nil
		}
		if !changed {
			break
		}
	}

	status := Solved
	for _, c := range st.candidates {
		if len(c) != 1 {
			status = Ambiguous
			break
		}
	}
	log.Debug().Int("passes", res.Passes).Stringer("status", status).Msg("crossword-settled")
	return s.finish(res, st, status, -1), nil
}

func (s *Solver) finish(res *Result, st *state, status Status, failed int) *Result {
	res.Status = status
	res.FailedSlot = failed
	res.Slots = make([]SlotResult, len(st.patterns))
	for i, p := range st.patterns {
		cands := st.candidates[i]
		if i == failed {
			cands = nil
		}
		shown := cands
		if s.maxWords > 0 && len(shown) > s.maxWords {
			shown = shown[:s.maxWords]
		}
		res.Slots[i] = SlotResult{
			Name:          st.graph.slotName(i),
			Pattern:       p.String(),
			NumCandidates: len(cands),
			Candidates:    slices.Clone(shown),
		}
	}
	return res
}

type state struct {
	graph      *Graph
	alphabet   *lexicon.Alphabet
	patterns   []*solver.Pattern
	crossSets  [][]lexicon.LetterSet
	candidates [][]string
	letters    int
}

func newState(g *Graph, lex *lexicon.Lexicon, lang language.Language) (*state, error) {
	alph, err := lex.Alphabet()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", lang, err)
	}
	st := &state{
		graph:      g,
		alphabet:   alph,
		patterns:   make([]*solver.Pattern, len(g.Slots)),
		crossSets:  make([][]lexicon.LetterSet, len(g.Slots)),
		candidates: make([][]string, len(g.Slots)),
	}
	lengths := make([]int, len(g.Slots))
	for i, slot := range g.Slots {
		p, err := solver.ParsePattern(lang, slot.Pattern, slot.Invalid, solver.CrosswordMode)
		if err != nil {
			return nil, fmt.Errorf("slot %s: %w", g.slotName(i), err)
		}
		sets := make([]lexicon.LetterSet, p.Len())
		for j := range sets {
			sets[j] = st.alphabet.Full()
		}
		// The pattern reads sets directly, so narrowing st.crossSets[i]
		// restricts the pattern too.
		if err := p.SetCrossSets(st.alphabet, sets); err != nil {
			return nil, err
		}
		st.patterns[i] = p
		st.crossSets[i] = sets
		st.candidates[i] = lex.WordsWithLength(p.Len())
		lengths[i] = p.Len()
		st.letters += p.Len()
	}
	if err := g.validate(lengths); err != nil {
		return nil, err
	}
	return st, nil
}

// passBound is one more than the number of changes propagation can make:
// every pass that does not end the loop fixes a letter or drops a candidate.
func (st *state) passBound() int {
	n := st.letters + 2
	for _, c := range st.candidates {
		n += len(c)
	}
	return n
}

// seed copies letters given in the puzzle across intersections. It returns
// the first slot involved in a conflict, or -1.
func (st *state) seed() int {
	for _, x := range st.graph.Intersections {
		if failed := st.share(x); failed >= 0 {
			return failed
		}
	}
	return -1
}

// share makes a known letter on either side of x known on the other side.
func (st *state) share(x Intersection) int {
	pa, pb := st.patterns[x.A], st.patterns[x.B]
	ra, ka := pa.At(x.APos)
	rb, kb := pb.At(x.BPos)
	switch {
	case ka && kb && ra != rb:
		return x.A
	case ka && !kb:
		if err := pb.Fix(x.BPos, ra); err != nil {
			return x.B
		}
	case kb && !ka:
		if err := pa.Fix(x.APos, rb); err != nil {
			return x.A
		}
	}
	return -1
}

func (st *state) pass() (changed bool, failed int) {
	for i, p := range st.patterns {
		filtered := solver.FilterSorted(p, st.candidates[i])
		if len(filtered) != len(st.candidates[i]) {
			changed = true
		}
		st.candidates[i] = filtered
		if len(filtered) == 0 {
			return true, i
		}
	}

	for i, p := range st.patterns {
		for pos := 0; pos < p.Len(); pos++ {
			if _, known := p.At(pos); known {
				continue
			}
			if r, ok := agreedLetter(st.candidates[i], pos); ok {
				if err := p.Fix(pos, r); err != nil {
					return true, i
				}
				changed = true
			}
		}
	}

	for _, x := range st.graph.Intersections {
		_, knownA := st.patterns[x.A].At(x.APos)
		_, knownB := st.patterns[x.B].At(x.BPos)
		if failed := st.share(x); failed >= 0 {
			return true, failed
		}
		if knownA != knownB {
			changed = true
		}
		if st.narrow(x.B, x.BPos, st.lettersAt(x.A, x.APos)) {
			changed = true
		}
		if st.narrow(x.A, x.APos, st.lettersAt(x.B, x.BPos)) {
			changed = true
		}
	}
	return changed, -1
}

// lettersAt is the set of letters slot i's candidates place at pos.
func (st *state) lettersAt(i, pos int) lexicon.LetterSet {
	var set lexicon.LetterSet
	for _, w := range st.candidates[i] {
		if v, ok := st.alphabet.Val(runeAt(w, pos)); ok {
			set.Add(v)
		}
	}
	return set
}

func (st *state) narrow(i, pos int, allowed lexicon.LetterSet) bool {
	cur := st.crossSets[i][pos]
	next := cur.Intersect(allowed)
	if next == cur {
		return false
	}
	st.crossSets[i][pos] = next
	return true
}

func (st *state) snapshot() []string {
	snap := make([]string, len(st.patterns))
	for i, p := range st.patterns {
		snap[i] = p.String()
	}
	return snap
}

func agreedLetter(words []string, pos int) (rune, bool) {
	if len(words) == 0 {
		return 0, false
	}
	first := runeAt(words[0], pos)
	for _, w := range words[1:] {
		if runeAt(w, pos) != first {
			return 0, false
		}
	}
	return first, true
}

func runeAt(w string, pos int) rune {
	i := 0
	for _, r := range w {
		if i == pos {
			return r
		}
		i++
	}
	return 0
}
