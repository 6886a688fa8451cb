package gameplay

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	engineinput "secretcode/pkg/engine/input"
	"secretcode/pkg/engine/keyboard"
	gamemenu "secretcode/pkg/game/menu"
	"secretcode/pkg/game/puzzle"
	"secretcode/pkg/game/session"
	"secretcode/pkg/game/state"
)

type fakeSession struct {
	g        *state.Game
	calls    []string
	pressErr error
	clickErr error
}

func (f *fakeSession) Select(index int) error {
	f.calls = append(f.calls, fmt.Sprintf("select %d", index))
	f.g.ShowScene(index, puzzle.Scene{Title: "poster"})
	return nil
}

func (f *fakeSession) Press(k keyboard.Key) error {
	f.calls = append(f.calls, "press "+k.String())
	return f.pressErr
}

func (f *fakeSession) Back() error {
	f.calls = append(f.calls, "back")
	f.g.ShowMenu(f.g.Menu)
	return nil
}

func (f *fakeSession) Hint() error {
	f.calls = append(f.calls, "hint")
	return nil
}

func (f *fakeSession) Click(target int) error {
	f.calls = append(f.calls, fmt.Sprintf("click %d", target))
	return f.clickErr
}

func (f *fakeSession) ResetProgress() error {
	f.calls = append(f.calls, "reset")
	return nil
}

func setup() (*state.Game, *fakeSession, *gamemenu.Menu) {
	g := state.NewGame()
	g.ShowMenu([]session.MenuEntry{
		{Index: 1, Title: "Bubbles"},
		{Index: 2, Title: "Scramble", Solved: true},
		{Index: 3, Title: "Lost & Found"},
	})
	s := &fakeSession{g: g}
	m := gamemenu.New(gamemenu.PosterItems(g.Menu), gamemenu.NewPosterMenuHandler(s))
	return g, s, m
}

func letter(r rune) engineinput.Intent {
	return engineinput.Intent{Action: engineinput.ActionLetter, Rune: r}
}

func digit(r rune) engineinput.Intent {
	return engineinput.Intent{Action: engineinput.ActionDigit, Rune: r}
}

func act(a engineinput.Action) engineinput.Intent {
	return engineinput.Intent{Action: a}
}

func TestProcessIntent_MenuNavigateAndOpen(t *testing.T) {
	g, s, m := setup()

	assert.False(t, ProcessIntent(g, s, m, act(engineinput.ActionMoveDown)))
	// Solved poster 2 is skipped.
	assert.Equal(t, 2, m.Selected())

	assert.False(t, ProcessIntent(g, s, m, act(engineinput.ActionSubmit)))
	assert.Equal(t, []string{"select 3"}, s.calls)
	assert.Equal(t, state.ScreenPuzzle, g.Screen)
}

func TestProcessIntent_MenuTypedNumber(t *testing.T) {
	g, s, m := setup()

	ProcessIntent(g, s, m, digit('1'))
	ProcessIntent(g, s, m, digit('2'))
	ProcessIntent(g, s, m, act(engineinput.ActionBackspace))
	assert.Equal(t, "1", g.Pending)

	ProcessIntent(g, s, m, act(engineinput.ActionSubmit))
	assert.Equal(t, []string{"select 1"}, s.calls)
	assert.Empty(t, g.Pending)
}

func TestProcessIntent_PendingKeepsLastTwoDigits(t *testing.T) {
	g, s, m := setup()
	for _, r := range "314" {
		ProcessIntent(g, s, m, digit(r))
	}
	assert.Equal(t, "14", g.Pending)
}

func TestProcessIntent_QuitPaths(t *testing.T) {
	g, s, m := setup()
	assert.True(t, ProcessIntent(g, s, m, act(engineinput.ActionQuit)))

	g, s, m = setup()
	ProcessIntent(g, s, m, digit('4'))
	assert.False(t, ProcessIntent(g, s, m, act(engineinput.ActionBack)), "escape first clears the typed number")
	assert.True(t, ProcessIntent(g, s, m, act(engineinput.ActionBack)))

	g, s, m = setup()
	// Last item is Quit.
	ProcessIntent(g, s, m, act(engineinput.ActionMoveUp))
	assert.True(t, ProcessIntent(g, s, m, act(engineinput.ActionSubmit)))
}

func TestProcessIntent_PuzzleKeys(t *testing.T) {
	g, s, m := setup()
	_ = s.Select(1)
	s.calls = nil

	ProcessIntent(g, s, m, letter('J'))
	ProcessIntent(g, s, m, act(engineinput.ActionBackspace))
	ProcessIntent(g, s, m, act(engineinput.ActionSubmit))
	ProcessIntent(g, s, m, act(engineinput.ActionHint))
	ProcessIntent(g, s, m, act(engineinput.ActionBack))

	assert.Equal(t, []string{"press J", "press BACK", "press ENTER", "hint", "back"}, s.calls)
	assert.Equal(t, state.ScreenMenu, g.Screen)
}

func TestProcessIntent_PuzzleClickByNumber(t *testing.T) {
	g, s, m := setup()
	_ = s.Select(3)
	s.calls = nil

	ProcessIntent(g, s, m, digit('7'))
	ProcessIntent(g, s, m, act(engineinput.ActionSubmit))
	assert.Equal(t, []string{"click 7"}, s.calls)

	s.clickErr = session.ErrNotClickable
	ProcessIntent(g, s, m, digit('1'))
	ProcessIntent(g, s, m, act(engineinput.ActionSubmit))
	assert.Len(t, g.Messages, 1)
}

func TestProcessIntent_DisabledKeyMessage(t *testing.T) {
	g, s, m := setup()
	_ = s.Select(1)
	s.pressErr = session.ErrKeyDisabled

	ProcessIntent(g, s, m, letter('Q'))
	assert.Len(t, g.Messages, 1)
}

func TestProcessIntent_DismissesCoverAndAlert(t *testing.T) {
	g, s, m := setup()
	g.ShowCover(session.CoverFailure)
	g.Alert("nope")

	ProcessIntent(g, s, m, act(engineinput.ActionMoveDown))
	assert.False(t, g.CoverShown)
	assert.Empty(t, g.AlertText)
}

func TestProcessIntent_NoneIsIgnored(t *testing.T) {
	g, s, m := setup()
	g.ShowCover(session.CoverSuccess)
	assert.False(t, ProcessIntent(g, s, m, act(engineinput.ActionNone)))
	assert.True(t, g.CoverShown)
	assert.Empty(t, s.calls)
}

func TestProcessClick(t *testing.T) {
	g, s, m := setup()
	ProcessClick(g, s, m, 2)
	assert.Empty(t, s.calls, "clicks on the menu screen are ignored")

	_ = s.Select(3)
	s.calls = nil
	g.ShowCover(session.CoverFailure)
	ProcessClick(g, s, m, 2)
	assert.Equal(t, []string{"click 2"}, s.calls)
	assert.False(t, g.CoverShown)
}
