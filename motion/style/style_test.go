package style

import (
	"testing"

	"ethos/motion/drag"
	"ethos/motion/geom"
)

var _ drag.Surface = (*Surface)(nil)

func TestDetect(t *testing.T) {
	tests := []struct {
		supported []string
		want      string
	}{
		{nil, Transform},
		{[]string{"transform", "webkitTransform"}, Transform},
		{[]string{"webkitTransform", "msTransform"}, WebkitTransform},
		{[]string{"msTransform"}, MSTransform},
		{[]string{"MozTransform"}, Transform},
	}
	for _, tt := range tests {
		set := map[string]bool{}
		for _, p := range tt.supported {
			set[p] = true
		}
		got := Detect(func(p string) bool { return set[p] })
		if got != tt.want {
			t.Fatalf("Detect(%v) = %q, want %q", tt.supported, got, tt.want)
		}
	}
	if got := Detect(nil); got != Transform {
		t.Fatalf("Detect(nil) = %q, want %q", got, Transform)
	}
}

func TestSurfaceTransform(t *testing.T) {
	s := NewSurface(WebkitTransform, geom.RectXYWH(10, 10, 20, 20))
	if got := s.Transform(); got != geom.Identity() {
		t.Fatalf("Transform() unset = %+v, want identity", got)
	}

	s.SetTransform(geom.Identity().WithTranslation(5, -5))
	if got := s.Get(WebkitTransform); got != "matrix(1, 0, 0, 1, 5, -5)" {
		t.Fatalf("style[%s] = %q", WebkitTransform, got)
	}
	if got := s.Get(Transform); got != "" {
		t.Fatalf("style[transform] = %q, want unset", got)
	}
	if got := s.BoundingBox(); got != geom.RectXYWH(15, 5, 20, 20) {
		t.Fatalf("BoundingBox() = %+v", got)
	}

	s.Set(WebkitTransform, "rotate(45deg)")
	if got := s.Transform(); got != geom.Identity() {
		t.Fatalf("Transform() malformed = %+v, want identity", got)
	}
	s.Set(WebkitTransform, "none")
	if got := s.Transform(); got != geom.Identity() {
		t.Fatalf("Transform() none = %+v, want identity", got)
	}
}

func TestSurfaceWillChange(t *testing.T) {
	s := NewSurface("", geom.Rect{})
	if s.Property() != Transform {
		t.Fatalf("Property() = %q, want %q", s.Property(), Transform)
	}
	s.SetWillChange("transform")
	if s.WillChange() != "transform" {
		t.Fatalf("WillChange() = %q, want transform", s.WillChange())
	}
	s.SetWillChange("")
	if _, ok := s.Style()[WillChange]; ok {
		t.Fatalf("SetWillChange(\"\") left the property set")
	}
}

func TestKnown(t *testing.T) {
	if !Known("msTransform") || Known("opacity") {
		t.Fatalf("Known() mismatch")
	}
}
