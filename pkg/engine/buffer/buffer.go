// Package buffer holds the fixed-width answer the player composes on the
// virtual keyboard.
package buffer

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the number of slots in an answer.
const Size = 7

// Blank is the sentinel rendered for an empty slot.
const Blank = '_'

var (
	// ErrPosition is returned when a write targets a slot outside [0, Size).
	ErrPosition = errors.New("buffer position out of range")
	// ErrValue is returned when a write carries anything other than one
	// uppercase letter or the blank sentinel.
	ErrValue = errors.New("buffer value must be a single letter or blank")
)

// Buffer is a fixed window of Size slots. Insert and delete semantics are
// chosen by the caller through the index it targets; Set never shifts.
type Buffer struct {
	slots [Size]rune
}

// New returns a cleared buffer.
func New() *Buffer {
	b := &Buffer{}
	b.Clear()
	return b
}

// Read returns the slots as a string with blanks rendered as Blank.
func (b *Buffer) Read() string {
	return string(b.slots[:])
}

// FirstBlank returns the index of the first blank slot, or Size when full.
func (b *Buffer) FirstBlank() int {
	for i, r := range b.slots {
		if r == Blank {
			return i
		}
	}
	return Size
}

// Set overwrites a single slot. The buffer is left untouched on error.
func (b *Buffer) Set(pos int, value string) error {
	if pos < 0 || pos >= Size {
		return fmt.Errorf("set %d: %w", pos, ErrPosition)
	}
	r, ok := parseValue(value)
	if !ok {
		return fmt.Errorf("set %d to %q: %w", pos, value, ErrValue)
	}
	b.slots[pos] = r
	return nil
}

// SetRune is Set for callers that already hold a rune.
func (b *Buffer) SetRune(pos int, r rune) error {
	return b.Set(pos, string(r))
}

// At returns the slot content at pos, Blank for out-of-range positions.
func (b *Buffer) At(pos int) rune {
	if pos < 0 || pos >= Size {
		return Blank
	}
	return b.slots[pos]
}

// Clear blanks every slot.
func (b *Buffer) Clear() {
	for i := range b.slots {
		b.slots[i] = Blank
	}
}

// Full reports whether no slot is blank.
func (b *Buffer) Full() bool {
	return b.FirstBlank() == Size
}

// Empty reports whether every slot is blank.
func (b *Buffer) Empty() bool {
	for _, r := range b.slots {
		if r != Blank {
			return false
		}
	}
	return true
}

// Count returns how many slots hold letter.
func (b *Buffer) Count(letter rune) int {
	n := 0
	for _, r := range b.slots {
		if r == letter {
			n++
		}
	}
	return n
}

// Letters returns the filled slots in order, without blanks.
func (b *Buffer) Letters() string {
	return strings.ReplaceAll(b.Read(), string(Blank), "")
}

func parseValue(value string) (rune, bool) {
	runes := []rune(value)
	if len(runes) != 1 {
		return 0, false
	}
	r := runes[0]
	if r == Blank || (r >= 'A' && r <= 'Z') {
		return r, true
	}
	return 0, false
}
