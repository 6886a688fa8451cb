package ebiten

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leonelquinteros/gotext"
	"go.uber.org/zap"

	engineinput "secretcode/pkg/engine/input"
	gamemenu "secretcode/pkg/game/menu"
	"secretcode/pkg/game/renderer"
	"secretcode/pkg/game/state"
)

const (
	defaultWidth  = 900
	defaultHeight = 720
)

// New creates a new Ebiten renderer
func New(log *zap.Logger) *EbitenRenderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &EbitenRenderer{
		windowWidth:  defaultWidth,
		windowHeight: defaultHeight,
		fontSize:     baseFontSize,
		log:          log,
		debounce:     engineinput.Debouncer{Window: debounceWindow},
	}
}

// Init sets up the window and loads fonts.
func (e *EbitenRenderer) Init() {
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(gotext.Get("WINDOW_TITLE"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := e.loadFonts(); err != nil {
		e.log.Error("font load failed", zap.Error(err))
	}
}

// Clear drops the recorded click areas; Ebiten redraws every frame.
func (e *EbitenRenderer) Clear() {
	e.hits = e.hits[:0]
}

// StyleText returns the text unchanged; colors are applied per span in Draw.
func (e *EbitenRenderer) StyleText(text string, style renderer.TextStyle) string {
	return text
}

// GetViewportSize returns the window size in text rows and columns.
func (e *EbitenRenderer) GetViewportSize() (rows, cols int) {
	return int(float64(e.windowHeight) / e.lineHeight()), int(float64(e.windowWidth) / (e.fontSize * 0.6))
}

// RenderFrame points the renderer at the state to draw; the actual drawing
// happens in Draw on Ebiten's schedule.
func (e *EbitenRenderer) RenderFrame(g *state.Game, m *gamemenu.Menu) {
	e.game = g
	e.menu = m
}

// RunOptions configures the window loop.
type RunOptions struct {
	Game    *state.Game
	Session Controller
	Menu    *gamemenu.Menu
}

// Run opens the window and blocks until the player quits or closes it.
func (e *EbitenRenderer) Run(opts RunOptions) error {
	e.session = opts.Session
	e.RenderFrame(opts.Game, opts.Menu)
	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
