package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"

	engineinput "secretcode/pkg/engine/input"
	"secretcode/pkg/engine/keyboard"
	"secretcode/pkg/game/menu"
	"secretcode/pkg/game/session"
	"secretcode/pkg/game/state"
)

// Icons
const (
	IconSelected    = "▶"
	IconLife        = "♥"
	IconLifeLost    = "♡"
	IconTimerFull   = "█"
	IconTimerEmpty  = "░"
	IconBackspace   = "⌫"
	IconSubmit      = "⏎"
	IconInteractive = "✋"
	IconLateral     = "💡"
)

const timerWidth = 20

// KeyboardRows is the on-screen keyboard layout.
var KeyboardRows = [][]keyboard.Key{
	keys("QWERTYUIOP"),
	keys("ASDFGHJKL"),
	append(keys("ZXCVBNM"), keyboard.Backspace, keyboard.Submit),
}

func keys(s string) []keyboard.Key {
	out := make([]keyboard.Key, 0, len(s))
	for _, r := range s {
		out = append(out, keyboard.Key(r))
	}
	return out
}

// Span is a run of text in one style. Key or Target is set when clicking
// the span should press that key or click that scene target.
type Span struct {
	Text   string
	Style  TextStyle
	Key    keyboard.Key
	Target int
}

// Line is one row of a frame.
type Line []Span

// String returns the unstyled text of the line.
func (l Line) String() string {
	var sb strings.Builder
	for _, s := range l {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func text(s string, style TextStyle) Line {
	return Line{{Text: s, Style: style}}
}

// KeyLabel is how a key is drawn on the on-screen keyboard.
func KeyLabel(k keyboard.Key) string {
	switch k {
	case keyboard.Backspace:
		return IconBackspace
	case keyboard.Submit:
		return IconSubmit
	}
	return k.String()
}

// Layout composes the frame both front-ends draw.
func Layout(g *state.Game, m *menu.Menu) []Line {
	var lines []Line
	if g.Screen == state.ScreenMenu {
		lines = layoutMenu(g, m)
	} else {
		lines = layoutPuzzle(g)
	}

	if g.CoverShown {
		if g.Cover == session.CoverSuccess {
			lines = append(lines, nil, text(gotext.Get("COVER_SUCCESS"), StyleSuccess))
		} else {
			lines = append(lines, nil, text(gotext.Get("COVER_FAILURE"), StyleFailure))
		}
	}
	if g.AlertText != "" {
		lines = append(lines, nil, text("! "+g.AlertText, StyleAlert))
	}
	if len(g.Messages) > 0 {
		lines = append(lines, nil)
		for _, msg := range g.Messages {
			lines = append(lines, text(msg, StyleNormal))
		}
	}
	lines = append(lines, nil, text(BindingsHelp(), StyleSubtle))
	return lines
}

func layoutMenu(g *state.Game, m *menu.Menu) []Line {
	var lines []Line
	title := gotext.Get("MENU_TITLE")
	if m != nil {
		title = m.Title()
	}
	lines = append(lines, text(title, StyleTitle))
	if g.Victory {
		lines = append(lines, text(gotext.Get("VICTORY"), StyleSuccess))
	}
	lines = append(lines, nil)
	if m == nil {
		return lines
	}
	for i, item := range m.Items() {
		prefix := "  "
		style := StyleNormal
		if i == m.Selected() {
			prefix = IconSelected + " "
			style = StyleSelected
		}
		if !item.IsSelectable() {
			style = StyleSubtle
		}
		lines = append(lines, text(prefix+item.GetLabel(), style))
	}
	lines = append(lines, nil, text(m.Instructions(), StyleSubtle))
	if h := m.HelpText(); h != "" {
		lines = append(lines, text(h, StyleHint))
	}
	if g.Pending != "" {
		lines = append(lines, text(gotext.Get("PENDING_POSTER", g.Pending), StyleSelected))
	}
	return lines
}

func layoutPuzzle(g *state.Game) []Line {
	head := Line{{Text: fmt.Sprintf("#%d %s", g.PuzzleIndex, g.Scene.Title), Style: StyleTitle}}
	if g.Legends.Interactive {
		head = append(head, Span{Text: "  " + IconInteractive, Style: StyleLegend})
	}
	if g.Legends.Lateral {
		head = append(head, Span{Text: "  " + IconLateral, Style: StyleLegend})
	}
	lines := []Line{head, nil}

	for _, l := range g.Scene.Lines {
		lines = append(lines, text(l, StyleNormal))
	}
	if len(g.Scene.Targets) > 0 {
		var line Line
		for i, t := range g.Scene.Targets {
			if i > 0 {
				line = append(line, Span{Text: "  "})
			}
			line = append(line, Span{Text: fmt.Sprintf("%d:%s", t.ID, t.Label), Style: StyleTarget, Target: t.ID})
		}
		lines = append(lines, line)
	}
	lines = append(lines, nil)

	if g.HasTimer {
		lines = append(lines, text(TimerBar(g.Timer, barWidth()), StyleTimer))
	}
	if g.MaxLives > 0 {
		lines = append(lines, text(LivesBar(g.Lives, g.MaxLives), StyleLives))
	}
	lines = append(lines, text(spaced(g.Buffer), StyleBuffer), nil)

	for _, row := range KeyboardRows {
		var line Line
		for i, k := range row {
			if i > 0 {
				line = append(line, Span{Text: " "})
			}
			style := StyleKeyDisabled
			if g.Keys.Enabled(k) {
				style = StyleKeyEnabled
			}
			line = append(line, Span{Text: KeyLabel(k), Style: style, Key: k})
		}
		lines = append(lines, line)
	}

	if g.HintAvailable {
		hint := g.HintText
		if hint == "" {
			hint = gotext.Get("HINT_READY")
		}
		lines = append(lines, nil, text(hint, StyleHint))
	}
	if g.Pending != "" {
		lines = append(lines, text(gotext.Get("PENDING_TARGET", g.Pending), StyleSelected))
	}
	return lines
}

func barWidth() int {
	_, cols := GetViewportSize()
	return min(timerWidth, cols/2)
}

// TimerBar draws the remaining fraction as a bar of width cells.
func TimerBar(remaining float64, width int) string {
	if remaining < 0 {
		remaining = 0
	}
	if remaining > 1 {
		remaining = 1
	}
	full := int(remaining*float64(width) + 0.5)
	return strings.Repeat(IconTimerFull, full) + strings.Repeat(IconTimerEmpty, width-full)
}

// LivesBar draws remaining lives out of total.
func LivesBar(remaining, total int) string {
	if remaining < 0 {
		remaining = 0
	}
	if remaining > total {
		remaining = total
	}
	return strings.Repeat(IconLife, remaining) + strings.Repeat(IconLifeLost, total-remaining)
}

func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

// BindingsHelp lists the non-letter bindings, e.g. "Back: escape, tab".
func BindingsHelp() string {
	byAction := engineinput.GetBindingsByAction()
	acts := make([]engineinput.Action, 0, len(byAction))
	for a := range byAction {
		acts = append(acts, a)
	}
	sort.Slice(acts, func(i, j int) bool { return acts[i] < acts[j] })
	parts := make([]string, 0, len(acts))
	for _, a := range acts {
		parts = append(parts, engineinput.ActionName(a)+": "+strings.Join(byAction[a], "/"))
	}
	return strings.Join(parts, "  ")
}
