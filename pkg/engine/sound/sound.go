// Package sound synthesizes the short tone clips puzzles play.
package sound

import (
	"encoding/binary"
	"math"
	"time"
)

// SampleRate of every rendered clip, in Hz.
const SampleRate = 44100

// bytesPerFrame is 16-bit little-endian stereo.
const bytesPerFrame = 4

// fade keeps note edges from clicking.
const fade = 5 * time.Millisecond

// Note is one tone. A zero Freq is a rest.
type Note struct {
	Freq float64
	Dur  time.Duration
}

// Clips are the named melodies puzzles can ask for.
var Clips = map[string][]Note{
	// Played when the recital poster opens and on each replay.
	"recital": {
		{Freq: 523.25, Dur: 150 * time.Millisecond},
		{Freq: 587.33, Dur: 150 * time.Millisecond},
		{Freq: 659.25, Dur: 400 * time.Millisecond},
		{Freq: 0, Dur: 100 * time.Millisecond},
		{Freq: 659.25, Dur: 400 * time.Millisecond},
		{Freq: 587.33, Dur: 150 * time.Millisecond},
		{Freq: 523.25, Dur: 150 * time.Millisecond},
		{Freq: 392.00, Dur: 150 * time.Millisecond},
	},
}

// Frames returns how many sample frames d lasts.
func Frames(d time.Duration) int {
	return int(d.Seconds() * SampleRate)
}

// Render encodes notes as 16-bit little-endian stereo PCM at volume (0..1).
func Render(notes []Note, volume float64) []byte {
	volume = math.Max(0, math.Min(1, volume))
	total := 0
	for _, n := range notes {
		total += Frames(n.Dur)
	}
	out := make([]byte, total*bytesPerFrame)
	fadeFrames := Frames(fade)
	pos := 0
	for _, n := range notes {
		frames := Frames(n.Dur)
		for i := 0; i < frames; i++ {
			var v float64
			if n.Freq > 0 {
				v = math.Sin(2*math.Pi*n.Freq*float64(i)/SampleRate) * volume * envelope(i, frames, fadeFrames)
			}
			s := uint16(int16(v * math.MaxInt16))
			binary.LittleEndian.PutUint16(out[pos:], s)
			binary.LittleEndian.PutUint16(out[pos+2:], s)
			pos += bytesPerFrame
		}
	}
	return out
}

func envelope(i, frames, fadeFrames int) float64 {
	if fadeFrames <= 0 {
		return 1
	}
	switch {
	case i < fadeFrames:
		return float64(i) / float64(fadeFrames)
	case frames-i < fadeFrames:
		return float64(frames-i) / float64(fadeFrames)
	}
	return 1
}
