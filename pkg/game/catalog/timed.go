package catalog

import (
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/zyedidia/generic/mapset"

	"secretcode/pkg/engine/keyboard"
	"secretcode/pkg/game/puzzle"
)

const gallowsLives = 9

// gallows is hangman over a secret word. Correct letters fill every slot
// they occur in; nine wrong letters end the round.
type gallows struct {
	words  []string
	lives  int
	secret string
	used   mapset.Set[rune]
	wrong  int
}

func (g *gallows) Reset(env puzzle.Env) {
	g.secret = g.words[env.Rand().Intn(len(g.words))]
	g.used = mapset.New[rune]()
	g.wrong = 0
}

func (g *gallows) Init(env puzzle.Env) puzzle.Scene {
	env.Lives(g.lives-g.wrong, g.lives)
	return puzzle.Scene{Lines: []string{gotext.Get("GALLOWS_RIDDLE", g.lives)}}
}

func (g *gallows) HandleKey(env puzzle.Env, k keyboard.Key) bool {
	if !k.IsLetter() {
		return true
	}
	r := rune(k)
	if g.used.Has(r) {
		return true
	}
	g.used.Put(r)

	b := env.Buffer()
	hit := false
	for i, s := range g.secret {
		if s == r {
			hit = true
			if err := b.SetRune(i, r); err != nil {
				env.Notify(err.Error())
			}
		}
	}
	if hit {
		if b.Read() == g.secret {
			env.Refresh()
			env.Win()
		}
		return true
	}

	g.wrong++
	env.Lives(g.lives-g.wrong, g.lives)
	if g.wrong >= g.lives {
		env.Notify(gotext.Get("GALLOWS_LOST", g.secret))
		env.Fail(true)
	}
	return true
}

func (g *gallows) KeyState(env puzzle.Env) keyboard.State {
	var s keyboard.State
	for _, k := range keyboard.Letters {
		s.Set(k, !g.used.Has(rune(k)))
	}
	return s
}

func (g *gallows) Check(_ puzzle.Env, answer string) bool {
	return answer == g.secret
}

// countdown asks for a random word before the timer runs out. Submit is never
// enabled; typing the last correct letter wins.
type countdown struct {
	targets  []string
	duration time.Duration
	target   string
}

func (c *countdown) Reset(env puzzle.Env) {
	c.target = c.targets[env.Rand().Intn(len(c.targets))]
	env.Timers().Start(c.duration,
		func(remaining float64) bool {
			env.Countdown(remaining)
			return true
		},
		func() {
			env.Countdown(0)
			env.Notify(gotext.Get("COUNTDOWN_EXPIRED"))
			env.Fail(true)
		},
	)
}

func (c *countdown) Init(env puzzle.Env) puzzle.Scene {
	env.Countdown(1)
	return puzzle.Scene{Lines: []string{
		gotext.Get("COUNTDOWN_RIDDLE", int(c.duration.Seconds())),
		c.target,
	}}
}

func (c *countdown) HandleKey(env puzzle.Env, k keyboard.Key) bool {
	if !k.IsLetter() {
		return false
	}
	b := env.Buffer()
	if err := b.SetRune(b.FirstBlank(), rune(k)); err != nil {
		env.Notify(err.Error())
		return true
	}
	env.Refresh()
	if b.Read() == c.target {
		env.Win()
	}
	return true
}

func (c *countdown) KeyState(env puzzle.Env) keyboard.State {
	s := keyboard.Default(env.Buffer())
	s.Submit = false
	return s
}
