package geom

// Point is a 2D position in pixels.
type Point struct {
	X, Y float64
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Rect is an axis-aligned rectangle in the top/right/bottom/left form of a
// client bounding box. Right and Bottom are exclusive edges.
type Rect struct {
	Top, Right, Bottom, Left float64
}

// RectXYWH builds a Rect from its origin and size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Top: y, Right: x + w, Bottom: y + h, Left: x}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy, Left: r.Left + dx}
}

// Inset returns r shrunk by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{Top: r.Top + d, Right: r.Right - d, Bottom: r.Bottom - d, Left: r.Left + d}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}
