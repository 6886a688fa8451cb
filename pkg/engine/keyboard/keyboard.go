// Package keyboard models the on-screen keyboard: key identities and which
// keys are currently enabled.
package keyboard

import (
	"strings"

	"secretcode/pkg/engine/buffer"
)

// Key identifies one on-screen key: a letter 'A'..'Z', Backspace or Submit.
type Key rune

// Non-letter keys
const (
	Backspace Key = '\b'
	Submit    Key = '\r'
)

// Letters lists the letter keys in keyboard order.
var Letters = func() []Key {
	out := make([]Key, 0, 26)
	for r := 'A'; r <= 'Z'; r++ {
		out = append(out, Key(r))
	}
	return out
}()

// IsLetter reports whether k is one of the 26 letter keys.
func (k Key) IsLetter() bool {
	return k >= 'A' && k <= 'Z'
}

// Valid reports whether k is a key the keyboard has.
func (k Key) Valid() bool {
	return k.IsLetter() || k == Backspace || k == Submit
}

// String returns a short display name.
func (k Key) String() string {
	switch k {
	case Backspace:
		return "BACK"
	case Submit:
		return "ENTER"
	}
	if k.IsLetter() {
		return string(rune(k))
	}
	return "?"
}

// Parse maps a display name or single letter (any case) to a Key.
func Parse(s string) (Key, bool) {
	switch strings.ToLower(s) {
	case "backspace", "back", "bksp":
		return Backspace, true
	case "enter", "submit", "return":
		return Submit, true
	}
	if len(s) == 1 {
		k := Key(strings.ToUpper(s)[0])
		if k.IsLetter() {
			return k, true
		}
	}
	return 0, false
}

// State is the enabled flag of every key.
type State struct {
	letters   [26]bool
	Backspace bool
	Submit    bool
}

// Enabled reports whether k may currently be pressed.
func (s State) Enabled(k Key) bool {
	switch {
	case k == Backspace:
		return s.Backspace
	case k == Submit:
		return s.Submit
	case k.IsLetter():
		return s.letters[k-'A']
	}
	return false
}

// Set changes the enabled flag of k. Unknown keys are ignored.
func (s *State) Set(k Key, enabled bool) {
	switch {
	case k == Backspace:
		s.Backspace = enabled
	case k == Submit:
		s.Submit = enabled
	case k.IsLetter():
		s.letters[k-'A'] = enabled
	}
}

// SetLetters sets every letter key to enabled.
func (s *State) SetLetters(enabled bool) {
	for i := range s.letters {
		s.letters[i] = enabled
	}
}

// EnabledLetters returns the enabled letters in alphabetical order.
func (s State) EnabledLetters() string {
	var sb strings.Builder
	for i, on := range s.letters {
		if on {
			sb.WriteRune(rune('A' + i))
		}
	}
	return sb.String()
}

// Default applies the shared policy: backspace needs something to delete,
// letters need a blank slot, submit needs a full buffer.
func Default(b *buffer.Buffer) State {
	var s State
	full := b.Full()
	s.SetLetters(!full)
	s.Backspace = !b.Empty()
	s.Submit = full
	return s
}
