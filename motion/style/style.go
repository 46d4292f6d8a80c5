// Package style keeps transform state in a string style map, the way an
// element's inline style would, and exposes it to the drag controller.
package style

import (
	"ethos/motion"
	"ethos/motion/geom"
)

// Transform property names, in detection order.
const (
	Transform       = "transform"
	WebkitTransform = "webkitTransform"
	MSTransform     = "msTransform"
)

// WillChange is the style property carrying the compositing hint.
const WillChange = "willChange"

var candidates = []string{Transform, WebkitTransform, MSTransform}

// Detect returns the first transform property name the host supports. A nil
// supported func, or a host supporting none of them, yields Transform.
func Detect(supported func(prop string) bool) string {
	if supported == nil {
		return Transform
	}
	for _, p := range candidates {
		if supported(p) {
			return p
		}
	}
	return Transform
}

// Known reports whether prop is one of the transform property names.
func Known(prop string) bool {
	for _, p := range candidates {
		if p == prop {
			return true
		}
	}
	return false
}

// Map is a style declaration: property name to value.
type Map map[string]string

// Surface is a positioned box whose transform lives in a style Map under a
// configurable property name. Its layout box is the untransformed position;
// BoundingBox reports it moved by the current translation.
type Surface struct {
	prop  string
	box   geom.Rect
	style Map
}

// NewSurface returns a Surface writing its transform to prop. An empty prop
// uses Transform.
func NewSurface(prop string, box geom.Rect) *Surface {
	if prop == "" {
		prop = Transform
	}
	return &Surface{prop: prop, box: box, style: Map{}}
}

// Property returns the transform property name.
func (s *Surface) Property() string { return s.prop }

// Style returns the underlying style map.
func (s *Surface) Style() Map { return s.style }

// Get returns a style value, or "" when unset.
func (s *Surface) Get(prop string) string { return s.style[prop] }

// Set writes a style value. An empty value removes the property.
func (s *Surface) Set(prop, value string) {
	if value == "" {
		delete(s.style, prop)
		return
	}
	s.style[prop] = value
}

// Box returns the untransformed layout box.
func (s *Surface) Box() geom.Rect { return s.box }

// SetBox moves the layout box.
func (s *Surface) SetBox(r geom.Rect) { s.box = r }

// Transform parses the current transform. An unset property is the identity;
// a malformed one is logged and treated as the identity.
func (s *Surface) Transform() geom.Matrix {
	v, ok := s.style[s.prop]
	if !ok {
		return geom.Identity()
	}
	m, err := geom.ParseMatrix(v)
	if err != nil {
		motion.Logger().Warn("style: transform reset to identity", "property", s.prop, "err", err)
		return geom.Identity()
	}
	return m
}

func (s *Surface) SetTransform(m geom.Matrix) {
	s.style[s.prop] = m.String()
}

func (s *Surface) WillChange() string { return s.style[WillChange] }

func (s *Surface) SetWillChange(v string) { s.Set(WillChange, v) }

// BoundingBox returns the layout box moved by the current translation.
func (s *Surface) BoundingBox() geom.Rect {
	m := s.Transform()
	return s.box.Translate(m.TX, m.TY)
}
