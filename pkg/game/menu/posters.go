package menu

import (
	"errors"
	"fmt"

	"github.com/leonelquinteros/gotext"

	"secretcode/pkg/game/session"
)

// PosterAction represents the action type for poster menu items.
type PosterAction int

const (
	PosterActionOpen PosterAction = iota
	PosterActionReset
	PosterActionQuit
)

// PosterItem represents a menu item in the poster menu.
type PosterItem struct {
	Entry  session.MenuEntry
	Action PosterAction
}

// GetLabel returns the display label for this menu item.
func (p *PosterItem) GetLabel() string {
	switch p.Action {
	case PosterActionReset:
		return gotext.Get("MENU_RESET")
	case PosterActionQuit:
		return gotext.Get("MENU_QUIT")
	}
	mark := " "
	if p.Entry.Solved {
		mark = "✓"
	}
	return fmt.Sprintf("%2d. %s %s", p.Entry.Index, p.Entry.Title, mark)
}

// IsSelectable returns whether this item can be selected. Solved posters stay
// visible but cannot be opened again.
func (p *PosterItem) IsSelectable() bool {
	return p.Action != PosterActionOpen || !p.Entry.Solved
}

// GetHelpText returns help text for this menu item.
func (p *PosterItem) GetHelpText() string {
	switch p.Action {
	case PosterActionReset:
		return gotext.Get("MENU_RESET_HELP")
	case PosterActionQuit:
		return gotext.Get("MENU_QUIT_HELP")
	}
	if p.Entry.Solved {
		return gotext.Get("MENU_POSTER_SOLVED")
	}
	return gotext.Get("MENU_POSTER_HELP")
}

// Sessions is the part of the session controller the poster menu drives.
type Sessions interface {
	Select(index int) error
	ResetProgress() error
}

// PosterMenuHandler handles the poster menu.
type PosterMenuHandler struct {
	sessions     Sessions
	confirmReset bool
	shouldQuit   bool
}

// NewPosterMenuHandler creates a handler opening posters on s.
func NewPosterMenuHandler(s Sessions) *PosterMenuHandler {
	return &PosterMenuHandler{sessions: s}
}

// PosterItems builds the menu items for entries plus reset and quit.
func PosterItems(entries []session.MenuEntry) []MenuItem {
	items := make([]MenuItem, 0, len(entries)+2)
	for _, e := range entries {
		items = append(items, &PosterItem{Entry: e, Action: PosterActionOpen})
	}
	items = append(items,
		&PosterItem{Action: PosterActionReset},
		&PosterItem{Action: PosterActionQuit},
	)
	return items
}

// GetTitle returns the menu title.
func (h *PosterMenuHandler) GetTitle() string {
	return gotext.Get("MENU_TITLE")
}

// GetInstructions returns the menu instructions.
func (h *PosterMenuHandler) GetInstructions(selected MenuItem) string {
	if selected == nil {
		return gotext.Get("MENU_INSTRUCTIONS")
	}
	return gotext.Get("MENU_INSTRUCTIONS") + " " + selected.GetHelpText()
}

// OnSelect is called when an item is selected.
func (h *PosterMenuHandler) OnSelect(item MenuItem, index int) {
	h.confirmReset = false
}

// OnActivate opens the poster, or resets or quits. Reset asks for a second
// activation before wiping progress.
func (h *PosterMenuHandler) OnActivate(item MenuItem, index int) (shouldClose bool, helpText string) {
	p, ok := item.(*PosterItem)
	if !ok {
		return false, ""
	}
	switch p.Action {
	case PosterActionQuit:
		h.shouldQuit = true
		return true, ""
	case PosterActionReset:
		if !h.confirmReset {
			h.confirmReset = true
			return false, gotext.Get("MENU_RESET_CONFIRM")
		}
		h.confirmReset = false
		if err := h.sessions.ResetProgress(); err != nil {
			return false, gotext.Get("SAVE_FAILED")
		}
		return false, ""
	}
	h.confirmReset = false
	if err := h.sessions.Select(p.Entry.Index); err != nil {
		if errors.Is(err, session.ErrAlreadySolved) {
			return false, gotext.Get("MENU_POSTER_SOLVED")
		}
		return false, err.Error()
	}
	return true, ""
}

// ShouldQuit returns true if the user selected Quit.
func (h *PosterMenuHandler) ShouldQuit() bool {
	return h.shouldQuit
}
