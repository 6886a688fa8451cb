package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"secretcode/pkg/engine/keyboard"
	"secretcode/pkg/game/menu"
	"secretcode/pkg/game/puzzle"
	"secretcode/pkg/game/renderer"
	"secretcode/pkg/game/session"
	"secretcode/pkg/game/state"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeController struct {
	g     *state.Game
	calls []string
}

func (f *fakeController) Select(index int) error {
	f.calls = append(f.calls, fmt.Sprintf("select %d", index))
	f.g.ShowScene(index, puzzle.Scene{Title: "Bubbles"})
	return nil
}

func (f *fakeController) Press(k keyboard.Key) error {
	f.calls = append(f.calls, "press "+k.String())
	return nil
}

func (f *fakeController) Back() error { return nil }
func (f *fakeController) Hint() error { return nil }
func (f *fakeController) Click(int) error { return nil }
func (f *fakeController) ResetProgress() error { return nil }
func (f *fakeController) Tick(dt time.Duration) {}

func newGame() (*state.Game, *fakeController, *menu.Menu) {
	g := state.NewGame()
	g.ShowMenu([]session.MenuEntry{{Index: 1, Title: "Bubbles"}, {Index: 2, Title: "Scramble"}})
	c := &fakeController{g: g}
	return g, c, menu.New(menu.PosterItems(g.Menu), menu.NewPosterMenuHandler(c))
}

func TestRenderFrame_Menu(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)
	r.Init()
	g, _, m := newGame()

	r.RenderFrame(g, m)
	assert.Contains(t, out.String(), "Bubbles")
	assert.Contains(t, out.String(), "Scramble")
	assert.Contains(t, out.String(), renderer.IconSelected)
}

func TestRenderFrame_PuzzleKeyboard(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)
	r.Init()
	g, _, _ := newGame()
	g.ShowScene(4, puzzle.Scene{Title: "Pairs", Lines: []string{"find the pairs"}})
	g.UpdateBuffer("J______")

	r.RenderFrame(g, nil)
	s := out.String()
	assert.Contains(t, s, "#4 Pairs")
	assert.Contains(t, s, "find the pairs")
	assert.Contains(t, s, "J _ _ _ _ _ _")
	assert.True(t, strings.HasSuffix(s, "\r\n"))
}

func TestRun_SelectsThenQuits(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)
	r.Init()
	g, c, m := newGame()

	err := r.Run(context.Background(), RunOptions{
		Game:    g,
		Session: c,
		Menu:    m,
		In:      strings.NewReader("2\rj\x03"),
		Tick:    time.Hour,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"select 2", "press J"}, c.calls)
}

func TestRun_EndsOnEOF(t *testing.T) {
	r := New(&bytes.Buffer{})
	r.Init()
	g, c, m := newGame()

	err := r.Run(context.Background(), RunOptions{Game: g, Session: c, Menu: m, In: strings.NewReader("")})
	require.NoError(t, err)
	assert.Empty(t, c.calls)
}

func TestBell(t *testing.T) {
	var out bytes.Buffer
	b := Bell{Out: &out}
	b.Play("recital")
	b.Stop()
	assert.Equal(t, "\a", out.String())
}
