package hal

import (
	"errors"
	"time"

	"ethos/motion/frame"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeySpace
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerKind is the transition a PointerEvent reports.
type PointerKind uint8

const (
	PointerDown PointerKind = iota + 1
	PointerMove
	PointerUp
)

// PointerEvent is a pointer transition in framebuffer pixels.
type PointerEvent struct {
	Kind PointerKind
	At   time.Time
	X, Y int
	// Touch is set when the event came from a touch screen rather than a mouse.
	Touch bool
}

// Pointer queues pointer events produced by the host. Drain must be called
// from the goroutine that runs the app.
type Pointer interface {
	Drain(fn func(PointerEvent)) int
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Audio plays short tones. Playback is best effort and never blocks the caller.
type Audio interface {
	Tone(freqHz float64, d time.Duration) error
}

// HAL provides the only contact point between the app and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Audio() Audio
	// Frames is the refresh scheduler the runner ticks before every step.
	Frames() frame.Scheduler
}

// Step advances the app by one refresh. now is the refresh timestamp.
type Step func(now time.Time) error

// NewApp builds the app on a HAL and returns its per-refresh step.
type NewApp func(h HAL) (Step, error)

// ErrQuit stops a runner without reporting a failure.
var ErrQuit = errors.New("quit")
