// Package gameplay routes player intents to the puzzle session.
package gameplay

import (
	"errors"
	"strconv"

	"github.com/leonelquinteros/gotext"

	engineinput "secretcode/pkg/engine/input"
	"secretcode/pkg/engine/keyboard"
	gamemenu "secretcode/pkg/game/menu"
	"secretcode/pkg/game/session"
	"secretcode/pkg/game/state"
)

// maxPending is the longest number a player can type toward a poster or target.
const maxPending = 2

// Session is the part of the session controller driven by player input.
type Session interface {
	Select(index int) error
	Press(k keyboard.Key) error
	Back() error
	Hint() error
	Click(target int) error
	ResetProgress() error
}

// ProcessIntent handles a high-level input intent from the tiered input
// system and reports whether the player asked to quit.
func ProcessIntent(g *state.Game, s Session, m *gamemenu.Menu, intent engineinput.Intent) (quit bool) {
	if intent.Action == engineinput.ActionNone {
		return false
	}
	g.DismissCover()
	g.DismissAlert()
	defer Sync(g, m)

	if intent.Action == engineinput.ActionQuit {
		return true
	}
	if g.Screen == state.ScreenMenu {
		return menuIntent(g, s, m, intent)
	}
	puzzleIntent(g, s, intent)
	return false
}

// ProcessClick handles a click on scene target id of the open puzzle.
func ProcessClick(g *state.Game, s Session, m *gamemenu.Menu, id int) {
	g.DismissCover()
	g.DismissAlert()
	defer Sync(g, m)
	if g.Screen == state.ScreenPuzzle {
		click(g, s, id)
	}
}

// Sync refreshes the poster menu from the last entries the session showed.
func Sync(g *state.Game, m *gamemenu.Menu) {
	if m != nil {
		m.SetItems(gamemenu.PosterItems(g.Menu))
	}
}

func menuIntent(g *state.Game, s Session, m *gamemenu.Menu, intent engineinput.Intent) bool {
	switch intent.Action {
	case engineinput.ActionDigit:
		pushDigit(g, intent.Rune)
		return false
	case engineinput.ActionBackspace:
		popDigit(g)
		return false
	case engineinput.ActionBack:
		if g.Pending != "" {
			g.Pending = ""
			return false
		}
		return true
	case engineinput.ActionSubmit:
		if n, ok := takePending(g); ok {
			// Rejections are already shown as alerts.
			_ = s.Select(n)
			return false
		}
	}
	if m == nil {
		return false
	}
	closed := m.Handle(intent)
	// Opening a poster also closes the menu; only Quit leaves us on it.
	return closed && g.Screen == state.ScreenMenu
}

func puzzleIntent(g *state.Game, s Session, intent engineinput.Intent) {
	switch intent.Action {
	case engineinput.ActionLetter:
		press(g, s, keyboard.Key(intent.Rune))
	case engineinput.ActionDigit:
		pushDigit(g, intent.Rune)
	case engineinput.ActionBackspace:
		if g.Pending != "" {
			popDigit(g)
			return
		}
		press(g, s, keyboard.Backspace)
	case engineinput.ActionSubmit:
		if n, ok := takePending(g); ok {
			click(g, s, n)
			return
		}
		press(g, s, keyboard.Submit)
	case engineinput.ActionBack:
		g.Pending = ""
		_ = s.Back()
	case engineinput.ActionHint:
		_ = s.Hint()
	}
}

func click(g *state.Game, s Session, id int) {
	if errors.Is(s.Click(id), session.ErrNotClickable) {
		g.AddMessage(gotext.Get("NOTHING_THERE"))
	}
}

func press(g *state.Game, s Session, k keyboard.Key) {
	if err := s.Press(k); errors.Is(err, session.ErrKeyDisabled) {
		g.AddMessage(gotext.Get("KEY_DISABLED", k.String()))
	}
}

func pushDigit(g *state.Game, r rune) {
	if len(g.Pending) >= maxPending {
		g.Pending = g.Pending[1:]
	}
	g.Pending += string(r)
}

func popDigit(g *state.Game) {
	if g.Pending != "" {
		g.Pending = g.Pending[:len(g.Pending)-1]
	}
}

func takePending(g *state.Game) (int, bool) {
	if g.Pending == "" {
		return 0, false
	}
	n, err := strconv.Atoi(g.Pending)
	g.Pending = ""
	return n, err == nil
}
