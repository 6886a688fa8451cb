// Package menu provides a generic menu system for the game.
package menu

import (
	engineinput "secretcode/pkg/engine/input"
)

// MenuItem represents a single item in a menu.
type MenuItem interface {
	// GetLabel returns the display label for this menu item.
	GetLabel() string
	// IsSelectable returns whether this item can be selected.
	IsSelectable() bool
	// GetHelpText returns optional help text for this item.
	GetHelpText() string
}

// MenuHandler handles menu item selection and activation.
type MenuHandler interface {
	// OnSelect is called when an item is selected (navigated to).
	OnSelect(item MenuItem, index int)
	// OnActivate is called when an item is activated (e.g., Enter pressed).
	// Returns true if the menu should close, and any help text to display.
	OnActivate(item MenuItem, index int) (shouldClose bool, helpText string)
	// GetTitle returns the menu title.
	GetTitle() string
	// GetInstructions returns the menu instructions.
	GetInstructions(selected MenuItem) string
}

// Menu is the selection state of a menu. Unlike a blocking menu loop it is
// fed one intent at a time, so the caller's event loop keeps running timers.
type Menu struct {
	items    []MenuItem
	selected int
	helpText string
	handler  MenuHandler
}

// New creates a menu over items, selecting the first selectable one.
func New(items []MenuItem, handler MenuHandler) *Menu {
	m := &Menu{handler: handler}
	m.SetItems(items)
	return m
}

// SetItems replaces the items, keeping the selection when it is still valid.
func (m *Menu) SetItems(items []MenuItem) {
	m.items = items
	if m.selected < len(items) && items[m.selected].IsSelectable() {
		return
	}
	m.selected = 0
	// Find first selectable item
	for i, item := range items {
		if item.IsSelectable() {
			m.selected = i
			break
		}
	}
}

// Items returns the current items.
func (m *Menu) Items() []MenuItem { return m.items }

// Selected returns the index of the highlighted item.
func (m *Menu) Selected() int { return m.selected }

// HelpText returns the text left by the last activation.
func (m *Menu) HelpText() string { return m.helpText }

// Title returns the handler's title.
func (m *Menu) Title() string { return m.handler.GetTitle() }

// Instructions returns the handler's instructions for the highlighted item.
func (m *Menu) Instructions() string {
	var item MenuItem
	if m.selected >= 0 && m.selected < len(m.items) {
		item = m.items[m.selected]
	}
	return m.handler.GetInstructions(item)
}

// Handle applies one intent and reports whether the menu closed.
func (m *Menu) Handle(intent engineinput.Intent) (closed bool) {
	switch intent.Action {
	case engineinput.ActionMoveUp:
		m.move(-1)
	case engineinput.ActionMoveDown:
		m.move(1)
	case engineinput.ActionSubmit:
		return m.Activate(m.selected)
	}
	return false
}

// Activate activates item i directly.
func (m *Menu) Activate(i int) (closed bool) {
	if i < 0 || i >= len(m.items) || !m.items[i].IsSelectable() {
		return false
	}
	m.selected = i
	shouldClose, helpText := m.handler.OnActivate(m.items[i], i)
	m.helpText = helpText
	return shouldClose
}

// move steps to the next selectable item in dir, wrapping around.
func (m *Menu) move(dir int) {
	n := len(m.items)
	for step := 1; step < n; step++ {
		i := ((m.selected+dir*step)%n + n) % n
		if m.items[i].IsSelectable() {
			m.selected = i
			m.helpText = "" // Clear help text when navigating
			m.handler.OnSelect(m.items[i], i)
			return
		}
	}
}
