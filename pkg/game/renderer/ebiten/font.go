package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	baseFontSize = 18.0
	minFontSize  = 10.0
	maxFontSize  = 40.0
)

// loadFonts parses the embedded Go Mono font.
func (e *EbitenRenderer) loadFonts() error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return fmt.Errorf("load mono font: %w", err)
	}
	e.monoFontSource = src
	return nil
}

// getMonoFontFace returns a cached monospace font face at the current size
func (e *EbitenRenderer) getMonoFontFace() *text.GoTextFace {
	if e.monoFontSource == nil {
		return nil
	}
	if e.cachedMonoFace == nil || e.cachedFontSize != e.fontSize {
		e.cachedFontSize = e.fontSize
		e.cachedMonoFace = &text.GoTextFace{
			Source: e.monoFontSource,
			Size:   e.fontSize,
		}
	}
	return e.cachedMonoFace
}

// lineHeight is the vertical step between frame lines.
func (e *EbitenRenderer) lineHeight() float64 {
	return e.fontSize * 1.5
}

func (e *EbitenRenderer) zoom(delta float64) {
	size := e.fontSize + delta
	if size < minFontSize {
		size = minFontSize
	}
	if size > maxFontSize {
		size = maxFontSize
	}
	e.fontSize = size
}
