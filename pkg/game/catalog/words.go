package catalog

import (
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/zyedidia/generic/mapset"

	"secretcode/pkg/engine/buffer"
	"secretcode/pkg/engine/keyboard"
	"secretcode/pkg/game/puzzle"
)

func spaced(rs []rune) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// scramble shows the answer's letters out of order; each reset reshuffles.
type scramble struct {
	word  string
	shown []rune
}

func (s *scramble) Reset(env puzzle.Env) {
	rs := []rune(s.word)
	for try := 0; try < 10; try++ {
		env.Rand().Shuffle(len(rs), func(i, j int) { rs[i], rs[j] = rs[j], rs[i] })
		if string(rs) != s.word {
			break
		}
	}
	s.shown = rs
}

func (s *scramble) Init(puzzle.Env) puzzle.Scene {
	return puzzle.Scene{Lines: []string{gotext.Get("SCRAMBLE_RIDDLE"), spaced(s.shown)}}
}

// magnets only lets the player use the fridge magnets on the poster, each as
// often as it appears.
type magnets struct {
	word    string
	letters mapset.Set[rune]
}

func newMagnets(word string) *magnets {
	m := &magnets{word: word, letters: mapset.New[rune]()}
	for _, r := range word {
		m.letters.Put(r)
	}
	return m
}

func (m *magnets) Init(puzzle.Env) puzzle.Scene {
	rs := []rune(m.word)
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return puzzle.Scene{Lines: []string{gotext.Get("MAGNETS_RIDDLE"), spaced(rs)}}
}

func (m *magnets) KeyState(env puzzle.Env) keyboard.State {
	b := env.Buffer()
	full := b.Full()
	var s keyboard.State
	for _, k := range keyboard.Letters {
		r := rune(k)
		s.Set(k, !full && m.letters.Has(r) && b.Count(r) < strings.Count(m.word, string(r)))
	}
	s.Backspace = !b.Empty()
	s.Submit = full
	return s
}

// recital plays a clip on entry; the replay key plays it again instead of
// typing and stays enabled even with a full buffer.
type recital struct {
	clip   string
	replay keyboard.Key
}

func (r recital) Init(env puzzle.Env) puzzle.Scene {
	env.Audio().Play(r.clip)
	return puzzle.Scene{Lines: []string{gotext.Get("RECITAL_RIDDLE", r.replay.String())}}
}

func (r recital) HandleKey(env puzzle.Env, k keyboard.Key) bool {
	if k != r.replay {
		return false
	}
	env.Audio().Play(r.clip)
	return true
}

func (r recital) KeyState(env puzzle.Env) keyboard.State {
	s := keyboard.Default(env.Buffer())
	s.Set(r.replay, true)
	return s
}

// spellings accepts any of several answers.
type spellings struct {
	lines  []string
	accept []string
}

func (s spellings) Init(puzzle.Env) puzzle.Scene {
	return puzzle.Scene{Lines: s.lines}
}

func (s spellings) Check(_ puzzle.Env, answer string) bool {
	for _, a := range s.accept {
		if answer == a {
			return true
		}
	}
	return false
}

// caesar writes each typed letter shifted along the alphabet.
type caesar struct {
	shift int
}

func (c caesar) Init(puzzle.Env) puzzle.Scene {
	return puzzle.Scene{Lines: []string{gotext.Get("CIPHER_RIDDLE", c.shift)}}
}

func (c caesar) HandleKey(env puzzle.Env, k keyboard.Key) bool {
	if !k.IsLetter() {
		return false
	}
	b := env.Buffer()
	shifted := 'A' + (rune(k)-'A'+rune(c.shift))%26
	if err := b.SetRune(b.FirstBlank(), shifted); err != nil {
		env.Notify(err.Error())
	}
	return true
}

// bonus is solvable only with the right passcode: the seed's checksum times
// factor, divided by the passcode, must equal the answer's checksum.
type bonus struct {
	seed   string
	factor int
}

func (b bonus) Init(env puzzle.Env) puzzle.Scene {
	lines := []string{gotext.Get("BONUS_RIDDLE")}
	if env.Passcode() <= 0 {
		lines = append(lines, gotext.Get("BONUS_NO_CODE"))
	}
	return puzzle.Scene{Lines: lines}
}

func (b bonus) Check(env puzzle.Env, answer string) bool {
	code := env.Passcode()
	if code <= 0 {
		return false
	}
	product := checksum(b.seed) * b.factor
	if product%code != 0 {
		return false
	}
	sum := checksum(answer)
	return sum > 0 && product/code == sum
}

// checksum weights each letter's alphabet position by its slot position.
// Blanks contribute nothing.
func checksum(s string) int {
	sum := 0
	for i, r := range s {
		if r == buffer.Blank || r < 'A' || r > 'Z' {
			continue
		}
		sum += int(r-'A'+1) * (i + 1)
	}
	return sum
}
