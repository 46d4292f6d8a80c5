package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Displayer draws into a rectangular region of a RGB565 Framebuffer. It
// satisfies drivers.Displayer, so tinyfont can draw on it, and the extra
// methods tinyterm needs, including software ScrollUp.
type Displayer struct {
	fb   Framebuffer
	x, y int
	w, h int
}

// NewDisplayer returns a Displayer covering all of fb.
func NewDisplayer(fb Framebuffer) *Displayer {
	if fb == nil {
		return &Displayer{}
	}
	return &Displayer{fb: fb, w: fb.Width(), h: fb.Height()}
}

// Sub returns a Displayer for the region (x, y, w, h) of d, in d's
// coordinates, clipped to d.
func (d *Displayer) Sub(x, y, w, h int) *Displayer {
	x0, y0 := clampInt(x, 0, d.w), clampInt(y, 0, d.h)
	x1, y1 := clampInt(x+w, 0, d.w), clampInt(y+h, 0, d.h)
	return &Displayer{fb: d.fb, x: d.x + x0, y: d.y + y0, w: x1 - x0, h: y1 - y0}
}

func (d *Displayer) ok() bool {
	return d.fb != nil && d.fb.Format() == PixelFormatRGB565 && d.fb.Buffer() != nil
}

func (d *Displayer) Size() (x, y int16) {
	return int16(d.w), int16(d.h)
}

func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	if !d.ok() {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.w || iy < 0 || iy >= d.h {
		return
	}
	buf := d.fb.Buffer()
	pixel := rgb565(c.R, c.G, c.B)
	off := (d.y+iy)*d.fb.StrideBytes() + (d.x+ix)*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *Displayer) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *Displayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if !d.ok() {
		return nil
	}
	x0 := clampInt(int(x), 0, d.w)
	y0 := clampInt(int(y), 0, d.h)
	x1 := clampInt(int(x)+int(width), 0, d.w)
	y1 := clampInt(int(y)+int(height), 0, d.h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	for py := d.y + y0; py < d.y+y1; py++ {
		row := py * stride
		for px := d.x + x0; px < d.x+x1; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// StrokeRectangle draws a one pixel outline.
func (d *Displayer) StrokeRectangle(x, y, width, height int16, c color.RGBA) {
	if width <= 0 || height <= 0 {
		return
	}
	_ = d.FillRectangle(x, y, width, 1, c)
	_ = d.FillRectangle(x, y+height-1, width, 1, c)
	_ = d.FillRectangle(x, y, 1, height, c)
	_ = d.FillRectangle(x+width-1, y, 1, height, c)
}

// ScrollUp shifts the region up by lines pixels and clears the exposed rows.
func (d *Displayer) ScrollUp(lines int16, bg color.RGBA) error {
	if !d.ok() || lines <= 0 {
		return nil
	}
	n := int(lines)
	if n >= d.h {
		return d.FillRectangle(0, 0, int16(d.w), int16(d.h), bg)
	}

	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	rowBytes := d.w * 2
	for row := 0; row < d.h-n; row++ {
		dst := (d.y+row)*stride + d.x*2
		src := (d.y+row+n)*stride + d.x*2
		if dst < 0 || src+rowBytes > len(buf) {
			break
		}
		copy(buf[dst:dst+rowBytes], buf[src:src+rowBytes])
	}
	return d.FillRectangle(0, int16(d.h-n), int16(d.w), int16(n), bg)
}

func (d *Displayer) SetScroll(line int16) {
	_ = line
}

func (d *Displayer) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
