package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"
	"go.uber.org/zap"

	"secretcode/pkg/engine/input"
	"secretcode/pkg/engine/terminal"
	"secretcode/pkg/engine/timer"
	"secretcode/pkg/game/gameplay"
	"secretcode/pkg/game/menu"
	"secretcode/pkg/game/renderer"
	"secretcode/pkg/game/state"
)

// Viewport minimum sizes
const (
	ViewportMinRows = 20
	ViewportMinCols = 40
)

// debounceWindow drops a held Enter or Escape.
const debounceWindow = 120 * time.Millisecond

// Controller is the session controller the terminal loop drives.
type Controller interface {
	gameplay.Session
	Tick(dt time.Duration)
}

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out    io.Writer
	styles map[renderer.TextStyle]color.Style
}

// New creates a new TUI renderer writing to out, or stdout when out is nil.
func New(out io.Writer) *TUIRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TUIRenderer{out: out}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.styles = map[renderer.TextStyle]color.Style{
		renderer.StyleTitle:       {color.FgCyan, color.OpBold},
		renderer.StyleBuffer:      {color.FgWhite, color.OpBold},
		renderer.StyleKeyEnabled:  {color.FgGreen, color.OpBold},
		renderer.StyleKeyDisabled: {color.FgGray},
		renderer.StyleSelected:    {color.FgYellow, color.OpBold},
		renderer.StyleSubtle:      {color.FgGray, color.OpBold},
		renderer.StyleTarget:      {color.FgMagenta},
		renderer.StyleHint:        {color.FgBlue},
		renderer.StyleLegend:      {color.FgYellow},
		renderer.StyleSuccess:     {color.FgGreen, color.OpBold},
		renderer.StyleFailure:     {color.FgRed, color.OpBold},
		renderer.StyleAlert:       {color.FgRed},
		renderer.StyleTimer:       {color.FgYellow},
		renderer.StyleLives:       {color.FgRed},
	}
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	fmt.Fprint(t.out, "\033[H\033[2J")
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	if s, ok := t.styles[style]; ok {
		return s.Sprint(text)
	}
	return text
}

// GetViewportSize returns the viewport dimensions based on terminal size
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	cols, rows = terminal.GetSize()
	if cols < ViewportMinCols {
		cols = ViewportMinCols
	}
	if rows < ViewportMinRows {
		rows = ViewportMinRows
	}
	return rows, cols
}

// RenderFrame renders a complete game frame. Lines end in CRLF since the
// terminal is in raw mode while the game runs.
func (t *TUIRenderer) RenderFrame(g *state.Game, m *menu.Menu) {
	var sb strings.Builder
	for _, line := range renderer.Layout(g, m) {
		for _, span := range line {
			sb.WriteString(t.StyleText(span.Text, span.Style))
		}
		sb.WriteString("\r\n")
	}
	t.Clear()
	fmt.Fprint(t.out, sb.String())
}

// RunOptions configures the terminal event loop.
type RunOptions struct {
	Game    *state.Game
	Session Controller
	Menu    *menu.Menu
	In      io.Reader
	Tick    time.Duration
	// Raw switches stdin to raw mode for the duration of the loop.
	Raw    bool
	Logger *zap.Logger
}

// Run multiplexes key presses and timer ticks until the player quits, the
// input ends, or ctx is done.
func (t *TUIRenderer) Run(ctx context.Context, opts RunOptions) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Raw {
		restore, err := terminal.MakeRaw()
		if err != nil {
			return err
		}
		defer restore()
		fmt.Fprint(t.out, "\033[?25l")
		defer fmt.Fprint(t.out, "\033[?25h")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan input.RawInput)
	readErr := make(chan error, 1)
	go func() {
		readErr <- input.ReadKeys(ctx, input.NewReader(opts.In), keys)
	}()

	ticks := make(chan time.Duration)
	go timer.Pump(ctx, opts.Tick, ticks)

	deb := &input.Debouncer{Window: debounceWindow}
	g, m := opts.Game, opts.Menu
	t.RenderFrame(g, m)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if err != nil {
				log.Error("reading keys", zap.Error(err))
			}
			return err
		case raw := <-keys:
			ev, ok := deb.Accept(raw)
			if !ok {
				continue
			}
			intent := input.MapToIntent(ev)
			log.Debug("intent", zap.String("code", ev.Code), zap.String("action", input.ActionName(intent.Action)))
			if gameplay.ProcessIntent(g, opts.Session, m, intent) {
				return nil
			}
		case dt := <-ticks:
			opts.Session.Tick(dt)
			if !g.HasTimer {
				continue
			}
		}
		t.RenderFrame(g, m)
	}
}

// Bell stands in for audio clips by ringing the terminal bell.
type Bell struct {
	Out io.Writer
}

// Play rings once per clip.
func (b Bell) Play(clip string) {
	fmt.Fprint(b.Out, "\a")
}

// Stop is a no-op; the bell cannot be cut short.
func (b Bell) Stop() {}
