package state

import (
	"secretcode/pkg/engine/keyboard"
	"secretcode/pkg/game/puzzle"
	"secretcode/pkg/game/session"
)

// Screen is what the front-end should be drawing
type Screen int

// Screens
const (
	ScreenMenu Screen = iota
	ScreenPuzzle
)

const maxMessages = 5

// Game is the presentation state for Secret Code. It implements
// session.Presenter; front-ends only read it.
type Game struct {
	Screen Screen

	Menu []session.MenuEntry

	PuzzleIndex int
	Scene       puzzle.Scene
	Legends     puzzle.Legends

	Keys   keyboard.State
	Buffer string

	Lives    int
	MaxLives int

	HasTimer bool
	Timer    float64 // remaining fraction

	HintAvailable bool
	HintText      string

	Cover      session.Cover
	CoverShown bool

	Victory bool

	AlertText string

	// Pending holds digits typed toward a poster or target number.
	Pending string

	Messages []string
}

// NewGame creates a new presentation state showing an empty menu
func NewGame() *Game {
	return &Game{
		Screen:   ScreenMenu,
		Messages: make([]string, 0),
	}
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}

// DismissCover hides the success/failure cover.
func (g *Game) DismissCover() {
	g.CoverShown = false
}

// DismissAlert clears the current alert.
func (g *Game) DismissAlert() {
	g.AlertText = ""
}

func (g *Game) ShowMenu(entries []session.MenuEntry) {
	g.Screen = ScreenMenu
	g.Menu = entries
	g.PuzzleIndex = 0
	g.Scene = puzzle.Scene{}
	g.Legends = puzzle.Legends{}
	g.Keys = keyboard.State{}
	g.Buffer = ""
	g.Lives, g.MaxLives = 0, 0
	g.HasTimer = false
	g.HintAvailable = false
	g.HintText = ""
	g.Victory = len(entries) > 0
	for _, e := range entries {
		if !e.Solved {
			g.Victory = false
		}
	}
}

func (g *Game) ShowScene(index int, scene puzzle.Scene) {
	g.Screen = ScreenPuzzle
	g.PuzzleIndex = index
	g.Scene = scene
}

func (g *Game) ShowCover(c session.Cover) {
	g.Cover = c
	g.CoverShown = true
}

func (g *Game) ToggleLegend(l puzzle.Legends) {
	g.Legends = l
}

func (g *Game) UpdateKeyboard(s keyboard.State) {
	g.Keys = s
}

func (g *Game) UpdateBuffer(s string) {
	g.Buffer = s
}

func (g *Game) UpdateLives(remaining, total int) {
	g.Lives, g.MaxLives = remaining, total
}

func (g *Game) UpdateTimer(remaining float64) {
	g.HasTimer = true
	g.Timer = remaining
}

func (g *Game) ShowHint(available bool, text string) {
	g.HintAvailable = available
	if text != "" {
		g.HintText = text
	}
}

func (g *Game) ShowVictory() {
	g.Victory = true
}

func (g *Game) Message(msg string) {
	g.AddMessage(msg)
}

func (g *Game) Alert(msg string) {
	g.AlertText = msg
}
