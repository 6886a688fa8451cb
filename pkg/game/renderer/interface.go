package renderer

import (
	"secretcode/pkg/game/menu"
	"secretcode/pkg/game/state"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleTitle
	StyleBuffer
	StyleKeyEnabled
	StyleKeyDisabled
	StyleSelected
	StyleSubtle
	StyleTarget
	StyleHint
	StyleLegend
	StyleSuccess
	StyleFailure
	StyleAlert
	StyleTimer
	StyleLives
)

// Renderer defines the interface for game rendering backends
type Renderer interface {
	// Init initializes the renderer (colors, fonts, window, etc.)
	Init()

	// Clear clears the display
	Clear()

	// RenderFrame renders a complete frame: the menu or the open puzzle,
	// its keyboard, and the message log
	RenderFrame(g *state.Game, m *menu.Menu)

	// StyleText applies a style to text and returns the styled string
	// For TUI this applies ANSI colors, for GUI it may return the text unchanged
	StyleText(text string, style TextStyle) string

	// GetViewportSize returns the current viewport dimensions (rows, cols)
	GetViewportSize() (rows, cols int)
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() {
	if Current != nil {
		Current.Init()
	}
}

// Clear clears the display using the current renderer
func Clear() {
	if Current != nil {
		Current.Clear()
	}
}

// RenderFrame renders a complete game frame
func RenderFrame(g *state.Game, m *menu.Menu) {
	if Current != nil {
		Current.RenderFrame(g, m)
	}
}

// StyleText applies a style to text
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}

// GetViewportSize returns viewport dimensions
func GetViewportSize() (rows, cols int) {
	if Current != nil {
		return Current.GetViewportSize()
	}
	return 24, 80 // sensible defaults
}
