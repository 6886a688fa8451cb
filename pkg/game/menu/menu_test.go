package menu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	engineinput "secretcode/pkg/engine/input"
	"secretcode/pkg/game/session"
)

type fakeSessions struct {
	selected  []int
	resets    int
	selectErr error
}

func (f *fakeSessions) Select(index int) error {
	f.selected = append(f.selected, index)
	return f.selectErr
}

func (f *fakeSessions) ResetProgress() error {
	f.resets++
	return nil
}

func entries() []session.MenuEntry {
	return []session.MenuEntry{
		{Index: 1, Title: "Bubbles", Solved: true},
		{Index: 2, Title: "Scramble"},
		{Index: 14, Title: "Bonus"},
	}
}

func down() engineinput.Intent { return engineinput.Intent{Action: engineinput.ActionMoveDown} }
func up() engineinput.Intent { return engineinput.Intent{Action: engineinput.ActionMoveUp} }
func submit() engineinput.Intent { return engineinput.Intent{Action: engineinput.ActionSubmit} }

func TestNew_SkipsSolvedPosters(t *testing.T) {
	m := New(PosterItems(entries()), NewPosterMenuHandler(&fakeSessions{}))
	assert.Equal(t, 1, m.Selected())
	assert.Len(t, m.Items(), 5)
}

func TestHandle_WrapsAround(t *testing.T) {
	m := New(PosterItems(entries()), NewPosterMenuHandler(&fakeSessions{}))
	m.Handle(up())
	// Wraps past the solved first poster to Quit.
	assert.Equal(t, 4, m.Selected())
	m.Handle(down())
	assert.Equal(t, 1, m.Selected())
}

func TestActivate_OpensPoster(t *testing.T) {
	s := &fakeSessions{}
	m := New(PosterItems(entries()), NewPosterMenuHandler(s))
	assert.True(t, m.Handle(submit()))
	assert.Equal(t, []int{2}, s.selected)
}

func TestActivate_SolvedPosterIgnored(t *testing.T) {
	s := &fakeSessions{}
	m := New(PosterItems(entries()), NewPosterMenuHandler(s))
	assert.False(t, m.Activate(0))
	assert.Empty(t, s.selected)
}

func TestActivate_SelectErrorShowsHelp(t *testing.T) {
	s := &fakeSessions{selectErr: errors.New("boom")}
	m := New(PosterItems(entries()), NewPosterMenuHandler(s))
	assert.False(t, m.Activate(2))
	assert.Equal(t, "boom", m.HelpText())
}

func TestReset_NeedsConfirmation(t *testing.T) {
	s := &fakeSessions{}
	h := NewPosterMenuHandler(s)
	m := New(PosterItems(entries()), h)

	assert.False(t, m.Activate(3))
	assert.Zero(t, s.resets)
	assert.NotEmpty(t, m.HelpText())

	assert.False(t, m.Activate(3))
	assert.Equal(t, 1, s.resets)
}

func TestReset_NavigationCancelsConfirmation(t *testing.T) {
	s := &fakeSessions{}
	m := New(PosterItems(entries()), NewPosterMenuHandler(s))

	m.Activate(3)
	m.Handle(down())
	m.Handle(up())
	m.Activate(3)
	assert.Zero(t, s.resets)
}

func TestQuit(t *testing.T) {
	h := NewPosterMenuHandler(&fakeSessions{})
	m := New(PosterItems(entries()), h)
	assert.True(t, m.Activate(4))
	assert.True(t, h.ShouldQuit())
}

func TestSetItems_KeepsValidSelection(t *testing.T) {
	m := New(PosterItems(entries()), NewPosterMenuHandler(&fakeSessions{}))
	m.Handle(down())
	assert.Equal(t, 2, m.Selected())

	solved := entries()
	solved[2].Solved = true
	m.SetItems(PosterItems(solved))
	assert.Equal(t, 1, m.Selected(), "selection moves off a poster that became solved")
}
