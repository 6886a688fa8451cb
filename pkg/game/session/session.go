// Package session runs the poster menu and the active puzzle: it owns the
// answer buffer and keyboard state, routes key presses through the puzzle's
// capabilities, and applies the win, fail and hint rules against the
// progress record.
//
// All methods must be called from a single goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/leonelquinteros/gotext"
	"go.uber.org/zap"

	"secretcode/pkg/engine/buffer"
	"secretcode/pkg/engine/keyboard"
	"secretcode/pkg/engine/timer"
	"secretcode/pkg/game/progress"
	"secretcode/pkg/game/puzzle"
)

var (
	ErrNotRegistered  = errors.New("no puzzle with that number")
	ErrAlreadySolved  = errors.New("puzzle already solved")
	ErrPuzzleActive   = errors.New("a puzzle is already open")
	ErrNoActivePuzzle = errors.New("no puzzle is open")
	ErrKeyDisabled    = errors.New("key is disabled")
	ErrHintLocked     = errors.New("hint not available yet")
	ErrNotClickable   = errors.New("puzzle has nothing to click")
)

// Cover is the transient feedback shown after a submission.
type Cover int

const (
	CoverSuccess Cover = iota
	CoverFailure
)

func (c Cover) String() string {
	if c == CoverSuccess {
		return "success"
	}
	return "failure"
}

// MenuEntry is one poster as shown on the menu.
type MenuEntry struct {
	Index  int
	Title  string
	Solved bool
}

// Presenter receives everything the player should see.
type Presenter interface {
	ShowMenu(entries []MenuEntry)
	ShowScene(index int, scene puzzle.Scene)
	ShowCover(c Cover)
	ToggleLegend(l puzzle.Legends)
	UpdateKeyboard(s keyboard.State)
	UpdateBuffer(s string)
	UpdateLives(remaining, total int)
	UpdateTimer(remaining float64)
	ShowHint(available bool, text string)
	ShowVictory()
	Message(msg string)
	Alert(msg string)
}

// Options configures a Controller. Registry, Progress and Presenter are required.
type Options struct {
	Context   context.Context
	Registry  *puzzle.Registry
	Progress  *progress.Store
	Presenter Presenter
	Audio     puzzle.Audio
	Timers    *timer.Service
	Rand      *rand.Rand
	Passcode  int
	Logger    *zap.Logger
}

// Controller is the puzzle-session state machine.
type Controller struct {
	ctx       context.Context
	registry  *puzzle.Registry
	progress  *progress.Store
	presenter Presenter
	audio     puzzle.Audio
	timers    *timer.Service
	rng       *rand.Rand
	passcode  int
	log       *zap.Logger

	buf     *buffer.Buffer
	keys    keyboard.State
	active  *activation
	victory bool
}

type activation struct {
	desc     puzzle.Descriptor
	behavior puzzle.Behavior
}

// New builds a Controller in the menu state and shows the menu.
func New(opts Options) (*Controller, error) {
	if opts.Registry == nil || opts.Progress == nil || opts.Presenter == nil {
		return nil, fmt.Errorf("session: registry, progress and presenter are required")
	}
	c := &Controller{
		ctx:       opts.Context,
		registry:  opts.Registry,
		progress:  opts.Progress,
		presenter: opts.Presenter,
		audio:     opts.Audio,
		timers:    opts.Timers,
		rng:       opts.Rand,
		passcode:  opts.Passcode,
		log:       opts.Logger,
		buf:       buffer.New(),
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	if c.audio == nil {
		c.audio = silence{}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.timers == nil {
		c.timers = timer.New(timer.DefaultTick, c.log)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	c.victory = c.progress.AllSolved(c.registry.Indices())
	c.showMenu()
	return c, nil
}

// Active returns the open puzzle index, and false in the menu.
func (c *Controller) Active() (int, bool) {
	if c.active == nil {
		return 0, false
	}
	return c.active.desc.Index, true
}

// Victory reports whether every registered puzzle is solved.
func (c *Controller) Victory() bool {
	return c.victory
}

// Buffer returns the current answer as displayed.
func (c *Controller) Buffer() string {
	return c.buf.Read()
}

// Keys returns the current keyboard state.
func (c *Controller) Keys() keyboard.State {
	return c.keys
}

// Menu lists every registered poster with its solved flag.
func (c *Controller) Menu() []MenuEntry {
	indices := c.registry.Indices()
	out := make([]MenuEntry, 0, len(indices))
	for _, i := range indices {
		d, _ := c.registry.Lookup(i)
		out = append(out, MenuEntry{Index: i, Title: d.Title, Solved: c.progress.Solved(i)})
	}
	return out
}

// Select opens puzzle index from the menu.
func (c *Controller) Select(index int) error {
	if c.active != nil {
		return c.reject(fmt.Errorf("select %d: %w", index, ErrPuzzleActive), gotext.Get("PUZZLE_ALREADY_OPEN"))
	}
	d, ok := c.registry.Lookup(index)
	if !ok {
		return c.reject(fmt.Errorf("select %d: %w", index, ErrNotRegistered), gotext.Get("PUZZLE_NOT_FOUND", index))
	}
	if c.progress.Solved(index) {
		return c.reject(fmt.Errorf("select %d: %w", index, ErrAlreadySolved), gotext.Get("PUZZLE_ALREADY_SOLVED", index))
	}

	a := &activation{desc: d, behavior: d.New()}
	c.active = a
	c.buf.Clear()
	if r, ok := a.behavior.(puzzle.Resettable); ok {
		r.Reset(c.env(a))
	}
	c.showScene(a)
	c.refresh()
	c.presenter.ToggleLegend(d.Legends)
	c.presenter.ShowHint(c.progress.HintUnlocked(index), "")
	c.log.Info("puzzle opened", zap.Int("puzzle", index), zap.String("title", d.Title))
	return nil
}

// Press handles one key of the on-screen keyboard.
func (c *Controller) Press(k keyboard.Key) error {
	a := c.active
	if a == nil {
		return fmt.Errorf("press %v: %w", k, ErrNoActivePuzzle)
	}
	if !c.keys.Enabled(k) {
		return fmt.Errorf("press %v: %w", k, ErrKeyDisabled)
	}
	if h, ok := a.behavior.(puzzle.KeyHandler); ok && h.HandleKey(c.env(a), k) {
		if c.active == a {
			c.refresh()
		}
		return nil
	}

	switch {
	case k.IsLetter():
		if err := c.buf.SetRune(c.buf.FirstBlank(), rune(k)); err != nil {
			return c.writeFailed(err)
		}
		c.refresh()
	case k == keyboard.Backspace:
		if err := c.buf.SetRune(c.buf.FirstBlank()-1, buffer.Blank); err != nil {
			return c.writeFailed(err)
		}
		c.refresh()
	case k == keyboard.Submit:
		c.submit(a)
	}
	return nil
}

// Back leaves the open puzzle for the menu.
func (c *Controller) Back() error {
	if c.active == nil {
		return fmt.Errorf("back: %w", ErrNoActivePuzzle)
	}
	c.log.Info("puzzle closed", zap.Int("puzzle", c.active.desc.Index))
	c.leave()
	c.showMenu()
	return nil
}

// Hint shows the open puzzle's hint once enough attempts have failed.
func (c *Controller) Hint() error {
	a := c.active
	if a == nil {
		return fmt.Errorf("hint: %w", ErrNoActivePuzzle)
	}
	i := a.desc.Index
	if !c.progress.HintUnlocked(i) {
		c.presenter.Message(gotext.Get("HINT_LOCKED"))
		return fmt.Errorf("hint %d: %w", i, ErrHintLocked)
	}
	text := a.desc.Hint
	if h, ok := a.behavior.(puzzle.Hinter); ok {
		if t := h.Hint(c.env(a)); t != "" {
			text = t
		}
	}
	c.log.Debug("hint shown", zap.Int("puzzle", i))
	c.presenter.ShowHint(true, text)
	return nil
}

// Click forwards a click on a scene target to the open puzzle.
func (c *Controller) Click(target int) error {
	a := c.active
	if a == nil {
		return fmt.Errorf("click %d: %w", target, ErrNoActivePuzzle)
	}
	cl, ok := a.behavior.(puzzle.Clicker)
	if !ok {
		return fmt.Errorf("click %d: %w", target, ErrNotClickable)
	}
	if err := cl.Click(c.env(a), target); err != nil {
		c.presenter.Message(gotext.Get("NOTHING_THERE"))
		return fmt.Errorf("click %d: %w", target, err)
	}
	if c.active == a {
		c.refresh()
	}
	return nil
}

// ResetProgress clears every counter and restarts at the menu.
func (c *Controller) ResetProgress() error {
	if c.active != nil {
		c.leave()
	}
	err := c.progress.Reset(c.ctx)
	if err != nil {
		c.persistFailed(err)
	}
	c.victory = false
	c.log.Info("progress reset")
	c.presenter.Message(gotext.Get("PROGRESS_RESET"))
	c.showMenu()
	return err
}

// Tick moves puzzle timers forward by dt.
func (c *Controller) Tick(dt time.Duration) {
	c.timers.Advance(dt)
}

func (c *Controller) submit(a *activation) {
	answer := c.buf.Read()
	var won bool
	if ch, ok := a.behavior.(puzzle.Checker); ok {
		won = ch.Check(c.env(a), answer)
	} else {
		won = answer == a.desc.Answer
	}
	if won {
		c.win(a)
		return
	}
	_, resettable := a.behavior.(puzzle.Resettable)
	if a.desc.Answer != "" && levenshtein.ComputeDistance(answer, a.desc.Answer) == 1 {
		c.presenter.Message(gotext.Get("NEAR_MISS"))
	}
	c.fail(a, resettable)
}

func (c *Controller) win(a *activation) {
	i := a.desc.Index
	c.leave()
	c.presenter.ShowCover(CoverSuccess)
	if err := c.progress.MarkSolved(c.ctx, i); err != nil {
		c.persistFailed(err)
	}
	c.log.Info("puzzle solved", zap.Int("puzzle", i))
	c.presenter.Message(gotext.Get("PUZZLE_SOLVED", a.desc.Title))
	c.showMenu()
	if c.progress.AllSolved(c.registry.Indices()) {
		c.victory = true
		c.log.Info("all puzzles solved")
		c.presenter.ShowVictory()
	}
}

// fail applies the attempt penalty. The buffer is kept unless reset is set.
func (c *Controller) fail(a *activation, reset bool) {
	i := a.desc.Index
	c.presenter.ShowCover(CoverFailure)
	if err := c.progress.Penalize(c.ctx, i); err != nil {
		c.persistFailed(err)
	}
	c.log.Info("puzzle attempt failed", zap.Int("puzzle", i), zap.Int("counter", c.progress.Get(i)), zap.Bool("reset", reset))
	if reset {
		c.localReset(a)
	}
	c.refresh()
	c.presenter.ShowHint(c.progress.HintUnlocked(i), "")
}

func (c *Controller) localReset(a *activation) {
	c.buf.Clear()
	if r, ok := a.behavior.(puzzle.Resettable); ok {
		r.Reset(c.env(a))
	}
	c.showScene(a)
}

func (c *Controller) leave() {
	c.timers.Cancel()
	c.audio.Stop()
	c.active = nil
	c.buf.Clear()
	c.keys = keyboard.State{}
}

func (c *Controller) refresh() {
	a := c.active
	if a == nil {
		return
	}
	if p, ok := a.behavior.(puzzle.KeyStateProvider); ok {
		c.keys = p.KeyState(c.env(a))
	} else {
		c.keys = keyboard.Default(c.buf)
	}
	c.presenter.UpdateBuffer(c.buf.Read())
	c.presenter.UpdateKeyboard(c.keys)
}

func (c *Controller) showScene(a *activation) {
	scene := a.behavior.Init(c.env(a))
	if scene.Title == "" {
		scene.Title = a.desc.Title
	}
	c.presenter.ShowScene(a.desc.Index, scene)
}

func (c *Controller) showMenu() {
	c.presenter.ShowMenu(c.Menu())
}

func (c *Controller) reject(err error, notice string) error {
	c.log.Debug("request rejected", zap.Error(err))
	c.presenter.Alert(notice)
	return err
}

func (c *Controller) writeFailed(err error) error {
	c.log.Error("buffer write failed", zap.Error(err))
	c.presenter.Alert(gotext.Get("BUFFER_WRITE_FAILED", err.Error()))
	return err
}

func (c *Controller) persistFailed(err error) {
	c.log.Error("progress not saved", zap.Error(err))
	c.presenter.Alert(gotext.Get("SAVE_FAILED"))
}

type silence struct{}

func (silence) Play(string) {}
func (silence) Stop() {}
