package ebiten

import (
	"image"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	engineinput "secretcode/pkg/engine/input"
	"secretcode/pkg/engine/keyboard"
	"secretcode/pkg/game/gameplay"
)

const debounceWindow = 120 * time.Millisecond

// Update handles input and game logic (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		e.log.Info("window opened", zap.Int("width", w), zap.Int("height", h))
	}
	if e.game == nil || e.session == nil {
		return nil
	}

	e.handleZoom()

	e.pressed = inpututil.AppendJustPressedKeys(e.pressed[:0])
	for _, k := range e.pressed {
		code := keyCode(k)
		if code == "" {
			continue
		}
		ev, ok := e.debounce.Accept(engineinput.RawInput{
			Device:    engineinput.DeviceKeyboard,
			Code:      code,
			Timestamp: time.Now(),
		})
		if !ok {
			continue
		}
		e.dispatch(engineinput.MapToIntent(ev))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		e.handleClick(image.Pt(ebiten.CursorPosition()))
	}

	e.session.Tick(time.Second / time.Duration(ebiten.TPS()))

	if e.quit {
		return ebiten.Termination
	}
	return nil
}

func (e *EbitenRenderer) dispatch(intent engineinput.Intent) {
	if intent.Action == engineinput.ActionNone {
		return
	}
	if gameplay.ProcessIntent(e.game, e.session, e.menu, intent) {
		e.quit = true
	}
}

// handleClick presses the on-screen key or clicks the scene target under p.
func (e *EbitenRenderer) handleClick(p image.Point) {
	for _, h := range e.hits {
		if !p.In(h.rect) {
			continue
		}
		switch {
		case h.span.Target > 0:
			gameplay.ProcessClick(e.game, e.session, e.menu, h.span.Target)
		case h.span.Key == keyboard.Backspace:
			e.dispatch(engineinput.Intent{Action: engineinput.ActionBackspace})
		case h.span.Key == keyboard.Submit:
			e.dispatch(engineinput.Intent{Action: engineinput.ActionSubmit})
		case h.span.Key.IsLetter():
			e.dispatch(engineinput.Intent{Action: engineinput.ActionLetter, Rune: rune(h.span.Key)})
		}
		return
	}
}

// handleZoom handles Ctrl+=/Ctrl+- for font size adjustment
func (e *EbitenRenderer) handleZoom() {
	if !ebiten.IsKeyPressed(ebiten.KeyControl) {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		e.zoom(2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		e.zoom(-2)
	}
}

// keyCode converts an Ebiten key to the raw code the binding layer uses.
func keyCode(k ebiten.Key) string {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	switch k {
	case ebiten.KeyArrowUp:
		return "arrow_up"
	case ebiten.KeyArrowDown:
		return "arrow_down"
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return "enter"
	case ebiten.KeyBackspace:
		return "backspace"
	case ebiten.KeyDelete:
		return "delete"
	case ebiten.KeyEscape:
		return "escape"
	case ebiten.KeyTab:
		return "tab"
	case ebiten.KeyF1:
		return "f1"
	case ebiten.KeyF10:
		return "f10"
	case ebiten.KeySlash:
		if shift {
			return "?"
		}
		return ""
	case ebiten.KeyC:
		if ctrl {
			return "ctrl_c"
		}
	}
	if ctrl {
		return ""
	}

	name := k.String()
	switch {
	case len(name) == 1:
		return strings.ToLower(name)
	case strings.HasPrefix(name, "Digit") && len(name) == 6:
		return name[5:]
	case strings.HasPrefix(name, "Numpad") && len(name) == 7 && name[6] >= '0' && name[6] <= '9':
		return name[6:]
	}
	return ""
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.windowWidth = outsideWidth
	e.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}
