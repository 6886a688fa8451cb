package input

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceMouse
	DeviceTerminal
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Answer entry
	ActionLetter
	ActionBackspace
	ActionSubmit

	// Menu navigation
	ActionMoveUp
	ActionMoveDown
	ActionDigit

	// Meta / UI
	ActionBack
	ActionHint
	ActionQuit
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
// Rune carries the letter (upper case) or digit for ActionLetter and ActionDigit.
type Intent struct {
	Action Action
	Rune   rune
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "a", "arrow_up", "backspace").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing.
type DebouncedInput struct {
	Device Device
	Code   string
}

// Debouncer drops a repeat of the same control code (enter, escape, ...)
// arriving within Window, so a held Enter submits once. Letters and digits
// always pass; answers like JACUZZI repeat letters.
type Debouncer struct {
	Window time.Duration
	last   RawInput
}

// Accept converts raw to a debounced input, and reports false when raw is a
// repeat that should be dropped.
func (d *Debouncer) Accept(raw RawInput) (DebouncedInput, bool) {
	repeat := d.Window > 0 &&
		utf8.RuneCountInString(raw.Code) > 1 &&
		raw.Code == d.last.Code &&
		raw.Device == d.last.Device &&
		raw.Timestamp.Sub(d.last.Timestamp) < d.Window
	d.last = raw
	if repeat {
		return DebouncedInput{}, false
	}
	return NewDebouncedInput(raw), true
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Single letters and digits are not listed; they always map to
// ActionLetter and ActionDigit.
var bindings = map[string]Action{
	"arrow_up":   ActionMoveUp,
	"arrow_down": ActionMoveDown,

	"backspace": ActionBackspace,
	"delete":    ActionBackspace,

	"enter": ActionSubmit,

	"escape": ActionBack,
	"tab":    ActionBack,

	"?":  ActionHint,
	"f1": ActionHint,

	"ctrl_c": ActionQuit,
	"f10":    ActionQuit,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if in, ok := entry(ev.Code); ok {
		return in
	}
	if act, ok := bindings[strings.ToLower(ev.Code)]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// entry maps single letters and digits.
func entry(code string) (Intent, bool) {
	if utf8.RuneCountInString(code) != 1 {
		return Intent{}, false
	}
	r, _ := utf8.DecodeRuneInString(code)
	switch {
	case r >= 'a' && r <= 'z':
		return Intent{Action: ActionLetter, Rune: r - 'a' + 'A'}, true
	case r >= 'A' && r <= 'Z':
		return Intent{Action: ActionLetter, Rune: r}, true
	case r >= '0' && r <= '9':
		return Intent{Action: ActionDigit, Rune: r}, true
	}
	return Intent{}, false
}

func reserved(code string) bool {
	_, ok := entry(code)
	return ok
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionLetter:
		return "Letter"
	case ActionBackspace:
		return "Backspace"
	case ActionSubmit:
		return "Enter"
	case ActionMoveUp:
		return "Up"
	case ActionMoveDown:
		return "Down"
	case ActionDigit:
		return "Number"
	case ActionBack:
		return "Back"
	case ActionHint:
		return "Hint"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Ensure stable ordering of codes within each action so UI doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single
// code and reports whether it did. Letters and digits are reserved for answer
// entry and cannot be bound.
func SetSingleBinding(action Action, code string) bool {
	if reserved(code) || action == ActionLetter || action == ActionDigit {
		return false
	}
	for c, a := range bindings {
		// ctrl_c always quits
		if c == "ctrl_c" {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && code != "ctrl_c" {
		bindings[strings.ToLower(code)] = action
	}
	return true
}

// ActionByName is the inverse of ActionName, ignoring case.
func ActionByName(name string) (Action, bool) {
	for a := ActionLetter; a <= ActionQuit; a++ {
		if strings.EqualFold(ActionName(a), name) {
			return a, true
		}
	}
	return ActionNone, false
}
