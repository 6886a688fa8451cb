package session

import (
	"math/rand"

	"secretcode/pkg/engine/buffer"
	"secretcode/pkg/engine/timer"
	"secretcode/pkg/game/puzzle"
)

// env is the puzzle.Env handed to one activation. Calls arriving after the
// activation ended are ignored.
type env struct {
	c *Controller
	a *activation
}

func (c *Controller) env(a *activation) puzzle.Env {
	return env{c: c, a: a}
}

func (e env) live() bool { return e.c.active == e.a }

func (e env) Buffer() *buffer.Buffer { return e.c.buf }
func (e env) Timers() *timer.Service { return e.c.timers }
func (e env) Audio() puzzle.Audio { return e.c.audio }
func (e env) Rand() *rand.Rand { return e.c.rng }
func (e env) Passcode() int { return e.c.passcode }

func (e env) Refresh() {
	if e.live() {
		e.c.refresh()
	}
}

func (e env) Show(s puzzle.Scene) {
	if !e.live() {
		return
	}
	if s.Title == "" {
		s.Title = e.a.desc.Title
	}
	e.c.presenter.ShowScene(e.a.desc.Index, s)
}

func (e env) Lives(remaining, total int) {
	if e.live() {
		e.c.presenter.UpdateLives(remaining, total)
	}
}

func (e env) Countdown(remaining float64) {
	if e.live() {
		e.c.presenter.UpdateTimer(remaining)
	}
}

func (e env) Notify(msg string) {
	if e.live() {
		e.c.presenter.Message(msg)
	}
}

func (e env) Win() {
	if e.live() {
		e.c.win(e.a)
	}
}

func (e env) Fail(reset bool) {
	if e.live() {
		e.c.fail(e.a, reset)
	}
}
