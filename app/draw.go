package app

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"ethos/motion/drag"
	"ethos/motion/geom"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var textFont = &proggy.TinySZ8pt7b

const (
	textHeight = 10
	textOffset = 6
	textIndent = 4
)

var (
	colorBackground = color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
	colorArea       = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	colorBounds     = color.RGBA{R: 0x4b, G: 0x55, B: 0x63, A: 0xff}
	colorTrack      = color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xff}
	colorBar        = color.RGBA{R: 0xf4, G: 0x72, B: 0xb6, A: 0xff}
	colorText       = color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	colorConsole    = color.RGBA{A: 0xff}
	colorPanic      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	boxColors = map[drag.State]color.RGBA{
		drag.Idle:     {R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
		drag.Handling: {R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff},
		drag.Flinging: {R: 0x10, G: 0xb9, B: 0x81, A: 0xff},
	}
)

// layout splits the framebuffer into bands, top to bottom: status text,
// progress bar, drag area and console. Small screens get no text bands.
type layout struct {
	hud     geom.Rect
	bar     geom.Rect
	area    geom.Rect
	console geom.Rect
	// box is the initial, untransformed box.
	box geom.Rect
}

func newLayout(w, h int) layout {
	fw, fh := float64(w), float64(h)
	var l layout
	top, consoleH := 0.0, 0.0
	if w >= 160 && h >= 160 {
		l.hud = geom.RectXYWH(0, 0, fw, 2*textHeight+4)
		top = l.hud.Bottom
		consoleH = 4 * textHeight
		l.console = geom.RectXYWH(0, fh-consoleH, fw, consoleH)
	}

	barH := math.Max(2, math.Round(fh/40))
	l.bar = geom.RectXYWH(textIndent, top+2, math.Max(0, fw-2*textIndent), barH)
	l.area = geom.Rect{Top: l.bar.Bottom + 4, Left: 0, Right: fw, Bottom: fh - consoleH}
	if l.area.Bottom < l.area.Top {
		l.area.Bottom = l.area.Top
	}

	side := math.Floor(math.Min(32, math.Min(l.area.Width(), l.area.Height())/4))
	y := math.Floor(l.area.Top + (l.area.Height()-side)/2)
	l.box = geom.RectXYWH(l.area.Left+side, y, side, side)
	return l
}

// rectInts returns r as pixel x, y, width and height.
func rectInts(r geom.Rect) (x, y, w, h int) {
	return int(math.Round(r.Left)), int(math.Round(r.Top)), int(math.Round(r.Width())), int(math.Round(r.Height()))
}

func (s *System) clear(r geom.Rect, c color.RGBA) {
	x, y, w, h := rectInts(r)
	_ = s.screen.FillRectangle(int16(x), int16(y), int16(w), int16(h), c)
}

// draw repaints everything but the console, which tinyterm keeps up to date
// on its own, and presents the frame.
func (s *System) draw(time.Time) {
	l := s.layout
	s.clear(geom.Rect{Right: float64(s.fb.Width()), Bottom: l.area.Bottom}, colorBackground)

	s.clear(l.area, colorArea)
	if s.cfg.Drag.Bounds.Enabled {
		x, y, w, h := rectInts(l.area.Inset(s.cfg.Drag.Bounds.Inset))
		s.screen.StrokeRectangle(int16(x), int16(y), int16(w), int16(h), colorBounds)
	}

	s.clear(l.bar, colorTrack)
	p := math.Max(0, math.Min(1, s.bar.Progress()))
	filled := l.bar
	filled.Right = filled.Left + math.Round(filled.Width()*p)
	s.clear(filled, colorBar)

	ax, ay, aw, ah := rectInts(l.area)
	view := s.screen.Sub(ax, ay, aw, ah)
	bx, by, bw, bh := rectInts(s.surface.BoundingBox().Translate(-l.area.Left, -l.area.Top))
	_ = view.FillRectangle(int16(bx), int16(by), int16(bw), int16(bh), boxColors[s.dragger.State()])

	if !l.hud.Empty() {
		for i, line := range s.status() {
			y := int16(l.hud.Top) + int16(i+1)*textHeight - 1
			tinyfont.WriteLine(s.screen, textFont, textIndent, y, line, colorText)
		}
	}

	if err := s.screen.Display(); err != nil {
		s.log.Warn("present failed", "err", err)
	}
}

// status returns the two status lines.
func (s *System) status() [2]string {
	a := s.cfg.Animation
	iter := "inf"
	if s.bar.Iterations() != -1 {
		iter = fmt.Sprintf("%d/%d", s.bar.Iterations()-s.bar.IterationsRemaining(), s.bar.Iterations())
	}
	v := s.dragger.Velocity()
	t := s.dragger.Translation()
	return [2]string{
		fmt.Sprintf("%s %v %s %s %.2f", a.Curve, s.bar.Duration(), iter, s.bar.State(), s.bar.Progress()),
		fmt.Sprintf("%s %s v=%.1f,%.1f t=%.0f,%.0f", s.dragger.State(), s.dragger.Axis(), v.X, v.Y, t.X, t.Y),
	}
}
