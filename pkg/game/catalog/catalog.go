// Package catalog is the fixed set of posters.
package catalog

import (
	"errors"
	"time"

	"github.com/leonelquinteros/gotext"

	"secretcode/pkg/game/puzzle"
)

// ErrNoTarget is returned by clickable puzzles for a target that isn't on the scene.
var ErrNoTarget = errors.New("no such target")

// Options tunes the randomized puzzles.
type Options struct {
	CountdownDuration time.Duration
	CountdownTargets  []string
	GallowsWords      []string
}

// DefaultCountdown is how long the player has to type the countdown word.
const DefaultCountdown = 20 * time.Second

var (
	defaultCountdownTargets = []string{"AVOCADO", "BLANKET", "CAPTAIN", "DOLPHIN", "EMPEROR", "FREIGHT", "GRAVITY"}
	defaultGallowsWords     = []string{"BISCUIT", "KITCHEN", "HOLIDAY", "PENGUIN", "TRUMPET", "GIRAFFE", "MONARCH"}
)

// New builds the registry of every poster.
func New(opts Options) (*puzzle.Registry, error) {
	if opts.CountdownDuration <= 0 {
		opts.CountdownDuration = DefaultCountdown
	}
	if len(opts.CountdownTargets) == 0 {
		opts.CountdownTargets = defaultCountdownTargets
	}
	if len(opts.GallowsWords) == 0 {
		opts.GallowsWords = defaultGallowsWords
	}
	return puzzle.NewRegistry(
		puzzle.Descriptor{
			Index:   1,
			Title:   gotext.Get("BUBBLES_TITLE"),
			Answer:  "JACUZZI",
			Legends: puzzle.Legends{Lateral: true},
			Hint:    gotext.Get("BUBBLES_HINT"),
			New:     puzzle.Plain(gotext.Get("BUBBLES_RIDDLE")),
		},
		puzzle.Descriptor{
			Index:   2,
			Title:   gotext.Get("SCRAMBLE_TITLE"),
			Answer:  "PYRAMID",
			Legends: puzzle.Legends{Interactive: true},
			Hint:    gotext.Get("SCRAMBLE_HINT"),
			New:     func() puzzle.Behavior { return &scramble{word: "PYRAMID"} },
		},
		puzzle.Descriptor{
			Index:   3,
			Title:   gotext.Get("LOSTFOUND_TITLE"),
			Answer:  "LANTERN",
			Legends: puzzle.Legends{Interactive: true},
			Hint:    gotext.Get("LOSTFOUND_HINT"),
			New:     newLostFound,
		},
		puzzle.Descriptor{
			Index:   4,
			Title:   gotext.Get("PAIRS_TITLE"),
			Answer:  "ORCHARD",
			Legends: puzzle.Legends{Interactive: true},
			New:     func() puzzle.Behavior { return &pairs{word: "ORCHARD"} },
		},
		puzzle.Descriptor{
			Index:   5,
			Title:   gotext.Get("GALLOWS_TITLE"),
			Legends: puzzle.Legends{Interactive: true},
			Hint:    gotext.Get("GALLOWS_HINT"),
			New: func() puzzle.Behavior {
				return &gallows{words: opts.GallowsWords, lives: gallowsLives}
			},
		},
		puzzle.Descriptor{
			Index:   6,
			Title:   gotext.Get("COUNTDOWN_TITLE"),
			Legends: puzzle.Legends{Interactive: true},
			Hint:    gotext.Get("COUNTDOWN_HINT"),
			New: func() puzzle.Behavior {
				return &countdown{targets: opts.CountdownTargets, duration: opts.CountdownDuration}
			},
		},
		puzzle.Descriptor{
			Index:   7,
			Title:   gotext.Get("MAGNETS_TITLE"),
			Answer:  "MAGNETS",
			Legends: puzzle.Legends{Interactive: true, Lateral: true},
			Hint:    gotext.Get("MAGNETS_HINT"),
			New:     func() puzzle.Behavior { return newMagnets("MAGNETS") },
		},
		puzzle.Descriptor{
			Index:   8,
			Title:   gotext.Get("RECITAL_TITLE"),
			Answer:  "VIOLINS",
			Legends: puzzle.Legends{Interactive: true},
			Hint:    gotext.Get("RECITAL_HINT"),
			New:     func() puzzle.Behavior { return recital{clip: "recital", replay: 'Z'} },
		},
		puzzle.Descriptor{
			Index:   9,
			Title:   gotext.Get("STAGE_TITLE"),
			Legends: puzzle.Legends{Lateral: true},
			Hint:    gotext.Get("STAGE_HINT"),
			New: func() puzzle.Behavior {
				return spellings{lines: []string{gotext.Get("STAGE_RIDDLE")}, accept: []string{"THEATRE", "THEATER"}}
			},
		},
		puzzle.Descriptor{
			Index:   10,
			Title:   gotext.Get("SLICES_TITLE"),
			Answer:  "SPIRALS",
			Legends: puzzle.Legends{Interactive: true},
			Hint:    gotext.Get("SLICES_HINT"),
			New:     func() puzzle.Behavior { return &slices{word: "SPIRALS"} },
		},
		puzzle.Descriptor{
			Index:   11,
			Title:   gotext.Get("NOTHING_TITLE"),
			Answer:  "NOTHING",
			Legends: puzzle.Legends{Lateral: true},
			Hint:    gotext.Get("NOTHING_HINT"),
			New:     puzzle.Plain(gotext.Get("NOTHING_RIDDLE")),
		},
		puzzle.Descriptor{
			Index:   12,
			Title:   gotext.Get("CIPHER_TITLE"),
			Answer:  "CIPHERS",
			Legends: puzzle.Legends{Lateral: true},
			Hint:    gotext.Get("CIPHER_HINT"),
			New:     func() puzzle.Behavior { return caesar{shift: 3} },
		},
		puzzle.Descriptor{
			Index:   14,
			Title:   gotext.Get("BONUS_TITLE"),
			Legends: puzzle.Legends{Lateral: true},
			Hint:    gotext.Get("BONUS_HINT"),
			New:     func() puzzle.Behavior { return bonus{seed: "RIDDLER", factor: 28} },
		},
	)
}
