package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"secretcode/pkg/game/renderer"
	"secretcode/pkg/game/session"
)

const padding = 24.0

var (
	colorBackground = color.RGBA{18, 18, 24, 255}
	colorKeyFill    = color.RGBA{40, 60, 45, 255}
	colorKeyOff     = color.RGBA{35, 35, 40, 255}
	colorTargetFill = color.RGBA{55, 40, 65, 255}
	colorCoverOK    = color.RGBA{20, 80, 30, 90}
	colorCoverFail  = color.RGBA{90, 20, 20, 90}
)

// styleColors maps text styles to foreground colors
var styleColors = map[renderer.TextStyle]color.Color{
	renderer.StyleNormal:      color.RGBA{220, 220, 220, 255},
	renderer.StyleTitle:       color.RGBA{120, 200, 255, 255},
	renderer.StyleBuffer:      color.RGBA{255, 255, 255, 255},
	renderer.StyleKeyEnabled:  color.RGBA{140, 240, 150, 255},
	renderer.StyleKeyDisabled: color.RGBA{90, 90, 90, 255},
	renderer.StyleSelected:    color.RGBA{255, 220, 90, 255},
	renderer.StyleSubtle:      color.RGBA{130, 130, 140, 255},
	renderer.StyleTarget:      color.RGBA{230, 160, 255, 255},
	renderer.StyleHint:        color.RGBA{120, 160, 255, 255},
	renderer.StyleLegend:      color.RGBA{255, 200, 80, 255},
	renderer.StyleSuccess:     color.RGBA{110, 230, 110, 255},
	renderer.StyleFailure:     color.RGBA{255, 90, 90, 255},
	renderer.StyleAlert:       color.RGBA{255, 120, 80, 255},
	renderer.StyleTimer:       color.RGBA{255, 210, 60, 255},
	renderer.StyleLives:       color.RGBA{255, 80, 110, 255},
}

func styleColor(s renderer.TextStyle) color.Color {
	if c, ok := styleColors[s]; ok {
		return c
	}
	return styleColors[renderer.StyleNormal]
}

// Draw renders the game to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	e.Clear()

	face := e.getMonoFontFace()
	if e.game == nil || face == nil {
		return
	}

	if e.game.CoverShown {
		tint := colorCoverFail
		if e.game.Cover == session.CoverSuccess {
			tint = colorCoverOK
		}
		b := screen.Bounds()
		vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), tint, false)
	}

	lh := e.lineHeight()
	y := padding
	for _, line := range renderer.Layout(e.game, e.menu) {
		x := padding
		for _, span := range line {
			w := text.Advance(span.Text, face)
			if span.Key != 0 || span.Target != 0 {
				e.drawButton(screen, span, x, y, w, lh)
			}
			op := &text.DrawOptions{}
			op.GeoM.Translate(x, y)
			op.ColorScale.ScaleWithColor(styleColor(span.Style))
			text.Draw(screen, span.Text, face, op)
			x += w
		}
		y += lh
	}
}

// drawButton fills the area behind a clickable span and records it for hit testing.
func (e *EbitenRenderer) drawButton(screen *ebiten.Image, span renderer.Span, x, y, w, h float64) {
	fill := colorTargetFill
	switch span.Style {
	case renderer.StyleKeyEnabled:
		fill = colorKeyFill
	case renderer.StyleKeyDisabled:
		fill = colorKeyOff
	}
	const pad = 4
	x0, y0 := x-pad, y-pad/2
	x1, y1 := x+w+pad, y+h-pad
	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), fill, false)
	e.hits = append(e.hits, hitArea{
		rect: image.Rect(int(x0), int(y0), int(x1), int(y1)),
		span: span,
	})
}
