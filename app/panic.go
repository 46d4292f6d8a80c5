package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
	"unicode/utf8"

	"ethos/hal"

	"tinygo.org/x/tinyfont"
)

// protect runs fn, turning a panic into an error. The panic and its stack go
// to the host log and onto the screen first, so a window does not just close.
func (s *System) protect(fn func() error) (err error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		s.reportPanic(v, debug.Stack())
		err = fmt.Errorf("app: panic: %v", v)
	}()
	return fn()
}

// drawFrame is the redraw callback. Frame callbacks cannot return errors, so
// a panic is kept for the next Step to report.
func (s *System) drawFrame(now time.Time) {
	if s.failed != nil {
		return
	}
	s.failed = s.protect(func() error {
		s.draw(now)
		return nil
	})
}

func (s *System) reportPanic(v any, stack []byte) {
	lines := []string{"ethos panic:", fmt.Sprintf("panic: %v", v)}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	if l := s.h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	s.fb.ClearRGB(colorPanic.R, colorPanic.G, colorPanic.B)
	_, outboxWidth := tinyfont.LineWidth(textFont, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 {
		_ = s.fb.Present()
		return
	}
	cols := int16(s.fb.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}
	maxH := int16(s.fb.Height())

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+textHeight > maxH {
				_ = s.fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			drawTextLine(s.screen, fontWidth, 0, y, chunk)
			y += textHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = s.fb.Present()
}

// drawTextLine draws s on a fixed character grid, top-left at (x0, y0).
func drawTextLine(d *hal.Displayer, fontWidth, x0, y0 int16, s string) {
	x := x0
	for _, r := range s {
		tinyfont.DrawChar(d, textFont, x, y0+textOffset, r, colorConsole)
		x += fontWidth
	}
}

// takeRunes splits s after its first n runes.
func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
