// Package puzzle defines what a poster puzzle is and the optional
// capabilities a puzzle may implement to change the default answer-entry
// rules.
//
// Every puzzle has a Descriptor. Its New factory returns a Behavior holding
// the puzzle-local state for one activation. The session controller probes
// the Behavior for KeyHandler, KeyStateProvider, Resettable, Checker,
// Clicker and Hinter and falls back to the shared rules for any capability
// that is missing.
package puzzle

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"secretcode/pkg/engine/buffer"
	"secretcode/pkg/engine/keyboard"
	"secretcode/pkg/engine/timer"
)

// Legends selects which category icons are shown beside the puzzle.
type Legends struct {
	Interactive bool
	Lateral     bool
}

// Target is something on the scene the player can click.
type Target struct {
	ID    int
	Label string
}

// Scene is the content a puzzle asks the front-end to show.
type Scene struct {
	Title   string
	Lines   []string
	Targets []Target
}

// Audio plays the puzzle's sound clips.
type Audio interface {
	Play(clip string)
	Stop()
}

// Env is the controller's side of a running puzzle.
type Env interface {
	Buffer() *buffer.Buffer
	Timers() *timer.Service
	Audio() Audio
	Rand() *rand.Rand
	// Passcode is the numeric passcode the game was started with, 0 if none.
	Passcode() int

	// Refresh recomputes the keyboard and redraws the buffer.
	Refresh()
	// Show replaces the displayed scene.
	Show(Scene)
	// Lives updates the remaining-guesses display.
	Lives(remaining, total int)
	// Countdown updates the timer display with the remaining fraction.
	Countdown(remaining float64)
	// Notify adds a message for the player.
	Notify(msg string)

	// Win marks the active puzzle solved and returns to the menu.
	Win()
	// Fail applies the attempt penalty. With reset the puzzle's Reset runs
	// and the buffer is cleared.
	Fail(reset bool)
}

// Behavior is the puzzle-local state of one activation.
type Behavior interface {
	// Init builds the scene. It runs once per activation after Reset.
	Init(env Env) Scene
}

// KeyHandler sees every key before the shared rules. Returning true means
// the key was fully handled.
type KeyHandler interface {
	HandleKey(env Env, k keyboard.Key) bool
}

// KeyStateProvider replaces the default keyboard policy entirely.
type KeyStateProvider interface {
	KeyState(env Env) keyboard.State
}

// Resettable reinitializes puzzle-local state without leaving the puzzle.
type Resettable interface {
	Reset(env Env)
}

// Checker decides whether a submitted answer wins, instead of exact match.
type Checker interface {
	Check(env Env, answer string) bool
}

// Clicker handles clicks on scene targets.
type Clicker interface {
	Click(env Env, target int) error
}

// Hinter runs a hint action and returns the text to show.
type Hinter interface {
	Hint(env Env) string
}

// Descriptor is the fixed description of one poster.
type Descriptor struct {
	Index   int
	Title   string
	Answer  string // empty when a Checker decides
	Legends Legends
	Hint    string
	New     func() Behavior
}

// Plain returns a factory for puzzles with no local state beyond a static scene.
func Plain(lines ...string) func() Behavior {
	return func() Behavior { return static(lines) }
}

type static []string

func (s static) Init(Env) Scene {
	return Scene{Lines: append([]string(nil), s...)}
}

func (d Descriptor) validate() error {
	if d.Index < 0 {
		return fmt.Errorf("puzzle %q: negative index %d", d.Title, d.Index)
	}
	if d.New == nil {
		return fmt.Errorf("puzzle %d: no behavior factory", d.Index)
	}
	if d.Answer != "" {
		if len(d.Answer) != buffer.Size || strings.ToUpper(d.Answer) != d.Answer {
			return fmt.Errorf("puzzle %d: answer %q is not %d uppercase letters", d.Index, d.Answer, buffer.Size)
		}
		for _, r := range d.Answer {
			if r < 'A' || r > 'Z' {
				return fmt.Errorf("puzzle %d: answer %q is not %d uppercase letters", d.Index, d.Answer, buffer.Size)
			}
		}
	}
	return nil
}

// Registry maps poster numbers to descriptors. Numbers may have gaps.
type Registry struct {
	byIndex map[int]Descriptor
}

// NewRegistry validates and indexes ds.
func NewRegistry(ds ...Descriptor) (*Registry, error) {
	r := &Registry{byIndex: make(map[int]Descriptor, len(ds))}
	for _, d := range ds {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byIndex[d.Index]; dup {
			return nil, fmt.Errorf("puzzle %d registered twice", d.Index)
		}
		r.byIndex[d.Index] = d
	}
	return r, nil
}

// Lookup returns the descriptor for index, and false when none is registered.
func (r *Registry) Lookup(index int) (Descriptor, bool) {
	d, ok := r.byIndex[index]
	return d, ok
}

// Indices returns the registered indices in ascending order.
func (r *Registry) Indices() []int {
	out := make([]int, 0, len(r.byIndex))
	for i := range r.byIndex {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Len returns the number of registered puzzles.
func (r *Registry) Len() int {
	return len(r.byIndex)
}
