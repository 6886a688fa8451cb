package catalog

import (
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/zyedidia/generic/mapset"

	"secretcode/pkg/engine/buffer"
	"secretcode/pkg/game/puzzle"
)

func revealed(word string, shown func(slot int) bool) string {
	rs := []rune(word)
	for i := range rs {
		if !shown(i) {
			rs[i] = buffer.Blank
		}
	}
	return spaced(rs)
}

type hiddenObject struct {
	label string
	slot  int // -1 for decoys
}

// lostFound hides one object per answer letter among decoys.
type lostFound struct {
	word    string
	objects []hiddenObject
	found   mapset.Set[int]
}

func newLostFound() puzzle.Behavior {
	return &lostFound{
		word: "LANTERN",
		objects: []hiddenObject{
			{gotext.Get("OBJ_ROPE"), 5},
			{gotext.Get("OBJ_SOCK"), -1},
			{gotext.Get("OBJ_LAMP"), 0},
			{gotext.Get("OBJ_EGG"), 4},
			{gotext.Get("OBJ_NEEDLE"), 6},
			{gotext.Get("OBJ_ANCHOR"), 1},
			{gotext.Get("OBJ_BUTTON"), -1},
			{gotext.Get("OBJ_TEAPOT"), 3},
			{gotext.Get("OBJ_NAIL"), 2},
		},
		found: mapset.New[int](),
	}
}

func (l *lostFound) Init(puzzle.Env) puzzle.Scene {
	scene := puzzle.Scene{Lines: []string{
		gotext.Get("LOSTFOUND_RIDDLE"),
		revealed(l.word, func(slot int) bool {
			for i, o := range l.objects {
				if o.slot == slot && l.found.Has(i) {
					return true
				}
			}
			return false
		}),
	}}
	for i, o := range l.objects {
		if !l.found.Has(i) {
			scene.Targets = append(scene.Targets, puzzle.Target{ID: i + 1, Label: o.label})
		}
	}
	return scene
}

func (l *lostFound) Click(env puzzle.Env, target int) error {
	i := target - 1
	if i < 0 || i >= len(l.objects) || l.found.Has(i) {
		return fmt.Errorf("object %d: %w", target, ErrNoTarget)
	}
	l.found.Put(i)
	o := l.objects[i]
	if o.slot < 0 {
		env.Notify(gotext.Get("LOSTFOUND_DECOY", o.label))
	} else {
		env.Notify(gotext.Get("LOSTFOUND_FOUND", o.label))
	}
	env.Show(l.Init(env))
	return nil
}

var cardFaces = []rune("♠♣♥♦★☾☀")

type card struct {
	slot    int
	matched bool
}

// pairs is a memory game; each matched pair uncovers one answer letter.
type pairs struct {
	word  string
	cards []card
	open  int
}

func (p *pairs) Init(env puzzle.Env) puzzle.Scene {
	if p.cards == nil {
		p.deal(env)
	}
	var grid strings.Builder
	scene := puzzle.Scene{}
	for i, c := range p.cards {
		face := '?'
		if c.matched || i == p.open {
			face = cardFaces[c.slot]
		} else {
			scene.Targets = append(scene.Targets, puzzle.Target{ID: i + 1, Label: gotext.Get("CARD", i+1)})
		}
		fmt.Fprintf(&grid, "[%2d %c] ", i+1, face)
	}
	scene.Lines = []string{
		gotext.Get("PAIRS_RIDDLE"),
		strings.TrimSpace(grid.String()),
		revealed(p.word, p.slotMatched),
	}
	return scene
}

func (p *pairs) deal(env puzzle.Env) {
	n := len([]rune(p.word))
	p.cards = make([]card, 0, 2*n)
	for slot := 0; slot < n; slot++ {
		p.cards = append(p.cards, card{slot: slot}, card{slot: slot})
	}
	env.Rand().Shuffle(len(p.cards), func(i, j int) { p.cards[i], p.cards[j] = p.cards[j], p.cards[i] })
	p.open = -1
}

func (p *pairs) slotMatched(slot int) bool {
	for _, c := range p.cards {
		if c.slot == slot && c.matched {
			return true
		}
	}
	return false
}

func (p *pairs) Click(env puzzle.Env, target int) error {
	i := target - 1
	if i < 0 || i >= len(p.cards) || p.cards[i].matched || i == p.open {
		return fmt.Errorf("card %d: %w", target, ErrNoTarget)
	}
	if p.open < 0 {
		p.open = i
		env.Show(p.Init(env))
		return nil
	}
	first := p.open
	p.open = -1
	if p.cards[first].slot == p.cards[i].slot {
		p.cards[first].matched = true
		p.cards[i].matched = true
		env.Notify(gotext.Get("PAIRS_MATCH"))
	} else {
		env.Notify(gotext.Get("PAIRS_MISS", string(cardFaces[p.cards[first].slot]), string(cardFaces[p.cards[i].slot])))
	}
	env.Show(p.Init(env))
	return nil
}

// Hint peeks at every face still hidden.
func (p *pairs) Hint(env puzzle.Env) string {
	if p.cards == nil {
		p.deal(env)
	}
	var sb strings.Builder
	for i, c := range p.cards {
		if !c.matched {
			fmt.Fprintf(&sb, "%d:%c ", i+1, cardFaces[c.slot])
		}
	}
	return strings.TrimSpace(sb.String())
}

var sliceGlyphs = []string{"", "◔", "◑", "◕"}

// slices shows each letter on a rotating slice; the word reads only when
// every slice is turned upright.
type slices struct {
	word  string
	turns []int
}

func (s *slices) Init(env puzzle.Env) puzzle.Scene {
	rs := []rune(s.word)
	if s.turns == nil {
		s.turns = make([]int, len(rs))
		for i := range s.turns {
			s.turns[i] = 1 + env.Rand().Intn(len(sliceGlyphs)-1)
		}
	}
	row := make([]string, len(rs))
	scene := puzzle.Scene{}
	for i, r := range rs {
		if s.turns[i] == 0 {
			row[i] = string(r)
		} else {
			row[i] = sliceGlyphs[s.turns[i]]
		}
		scene.Targets = append(scene.Targets, puzzle.Target{ID: i + 1, Label: gotext.Get("SLICE", i+1)})
	}
	scene.Lines = []string{gotext.Get("SLICES_RIDDLE"), strings.Join(row, " ")}
	if s.aligned() {
		scene.Lines = append(scene.Lines, gotext.Get("SLICES_ALIGNED"))
	}
	return scene
}

func (s *slices) aligned() bool {
	for _, t := range s.turns {
		if t != 0 {
			return false
		}
	}
	return true
}

func (s *slices) Click(env puzzle.Env, target int) error {
	i := target - 1
	if i < 0 || i >= len(s.turns) {
		return fmt.Errorf("slice %d: %w", target, ErrNoTarget)
	}
	s.turns[i] = (s.turns[i] + 1) % len(sliceGlyphs)
	env.Show(s.Init(env))
	return nil
}
