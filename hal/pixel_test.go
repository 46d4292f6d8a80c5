package hal

import "testing"

func TestRGB565RoundTripPrimaries(t *testing.T) {
	cases := [][3]uint8{{0, 0, 0}, {255, 255, 255}, {255, 0, 0}, {0, 255, 0}, {0, 0, 255}}
	for _, c := range cases {
		r, g, b := rgb888From565(rgb565(c[0], c[1], c[2]))
		if r != c[0] || g != c[1] || b != c[2] {
			t.Fatalf("rgb888From565(rgb565(%v)) = %d,%d,%d", c, r, g, b)
		}
	}
}

func TestRGB565ToRGBA(t *testing.T) {
	p := rgb565(255, 0, 255)
	src := []byte{byte(p), byte(p >> 8), 0, 0}
	dst := make([]byte, 8)
	rgb565ToRGBA(dst, src)

	want := []byte{255, 0, 255, 255, 0, 0, 0, 255}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("rgb565ToRGBA() = %v, want %v", dst, want)
		}
	}
}
