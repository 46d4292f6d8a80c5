// Package bezier solves unit cubic-Bezier timing curves.
//
// A timing curve starts at (0,0), ends at (1,1) and is shaped by two control
// points. Given a progress x it returns the eased value y. The solver follows
// Blink's UnitBezier: Newton-Raphson first, bisection as the fallback.
package bezier

import (
	"math"
	"time"
)

const (
	newtonIterations = 8
	minSlope         = 1e-6
)

// Curve is an immutable unit cubic-Bezier timing curve.
type Curve struct {
	ax, bx, cx float64
	ay, by, cy float64

	startGradient float64
	endGradient   float64
}

// New derives a curve from the control points (p1x,p1y) and (p2x,p2y).
func New(p1x, p1y, p2x, p2y float64) Curve {
	c := Curve{}
	c.cx = 3.0 * p1x
	c.bx = 3.0*(p2x-p1x) - c.cx
	c.ax = 1.0 - c.cx - c.bx
	c.cy = 3.0 * p1y
	c.by = 3.0*(p2y-p1y) - c.cy
	c.ay = 1.0 - c.cy - c.by

	switch {
	case p1x > 0:
		c.startGradient = p1y / p1x
	case p1y == 0 && p2x > 0:
		c.startGradient = p2y / p2x
	}

	switch {
	case p2x < 1:
		c.endGradient = (p2y - 1) / (p2x - 1)
	case p2x == 1 && p1x < 1:
		c.endGradient = (p1y - 1) / (p1x - 1)
	}
	return c
}

// SolveEpsilon returns the solve tolerance for an animation of duration d.
// Longer animations get a finer tolerance.
func SolveEpsilon(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return 1.0 / (200.0 * ms)
}

// SampleX evaluates the x polynomial at parameter t.
func (c Curve) SampleX(t float64) float64 {
	return ((c.ax*t+c.bx)*t + c.cx) * t
}

// SampleY evaluates the y polynomial at parameter t.
func (c Curve) SampleY(t float64) float64 {
	return ((c.ay*t+c.by)*t + c.cy) * t
}

// SampleDerivativeX evaluates dx/dt at parameter t.
func (c Curve) SampleDerivativeX(t float64) float64 {
	return (3.0*c.ax*t+2.0*c.bx)*t + c.cx
}

// Gradients returns the slopes used to extrapolate outside [0,1].
func (c Curve) Gradients() (start, end float64) {
	return c.startGradient, c.endGradient
}

// solveCurveX finds the parameter t whose x sample is within epsilon of x.
func (c Curve) solveCurveX(x, epsilon float64) float64 {
	t := x
	for i := 0; i < newtonIterations; i++ {
		x2 := c.SampleX(t) - x
		if math.Abs(x2) < epsilon {
			return t
		}
		d2 := c.SampleDerivativeX(t)
		if math.Abs(d2) < minSlope {
			break
		}
		t -= x2 / d2
	}

	lo, hi := 0.0, 1.0
	t = x
	for lo < hi {
		x2 := c.SampleX(t)
		if math.Abs(x2-x) < epsilon {
			return t
		}
		if x > x2 {
			lo = t
		} else {
			hi = t
		}
		next := (hi-lo)*0.5 + lo
		if next == t {
			// Interval collapsed below float resolution.
			return t
		}
		t = next
	}
	return t
}

// Solve returns the eased value for progress x. Epsilon is a hint for the
// required accuracy of the x match; use SolveEpsilon to derive it from a
// duration. Values of x outside [0,1] are extrapolated linearly.
func (c Curve) Solve(x, epsilon float64) float64 {
	if x < 0 {
		return c.startGradient * x
	}
	if x > 1 {
		return 1.0 + c.endGradient*(x-1.0)
	}
	return c.SampleY(c.solveCurveX(x, epsilon))
}
