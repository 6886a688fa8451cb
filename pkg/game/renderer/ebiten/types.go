// Package ebiten provides an Ebiten-based 2D graphical renderer for Secret Code.
package ebiten

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	engineinput "secretcode/pkg/engine/input"
	"secretcode/pkg/game/gameplay"
	gamemenu "secretcode/pkg/game/menu"
	"secretcode/pkg/game/renderer"
	"secretcode/pkg/game/state"
)

// Controller is the session controller the window drives.
type Controller interface {
	gameplay.Session
	Tick(dt time.Duration)
}

// hitArea is a clickable region recorded while drawing the last frame.
type hitArea struct {
	rect image.Rectangle
	span renderer.Span
}

// EbitenRenderer is the Ebiten-based graphical renderer
type EbitenRenderer struct {
	// Window dimensions
	windowWidth  int
	windowHeight int

	// Font source and cached face
	monoFontSource *text.GoTextFaceSource
	cachedFontSize float64
	cachedMonoFace *text.GoTextFace
	fontSize       float64

	game    *state.Game
	menu    *gamemenu.Menu
	session Controller
	log     *zap.Logger

	debounce engineinput.Debouncer
	pressed  []ebiten.Key
	hits     []hitArea
	quit     bool

	windowOpenedLogged bool
}
